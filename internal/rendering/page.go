package rendering

import (
	"errors"

	"github.com/jonathan/digest-agent/internal/store"
	"github.com/jonathan/digest-agent/internal/types"
)

// Placeholder text for missing values
const (
	DefaultTitle      = "AI Trend Digest"
	DefaultFooter     = "Generated by digest-agent | Runs automatically on a schedule"
	UnknownUpdateTime = "unknown"
	NoData            = "no data"
	NoTitle           = "no title"
	UnknownSource     = "unknown source"
	NoSummary         = "no summary"
	NoAnalysis        = "no analysis"
)

// Error panel messages
const (
	MsgNoResult    = "data file does not exist, please wait for the first workflow run to complete."
	MsgFetchFailed = "data fetch failed."
	msgReadFailed  = "error reading data: "
)

// updateTimeLayout is how the last-update time appears in the header
const updateTimeLayout = "2006-01-02 15:04:05"

// Page is the data passed to the page template.
// A non-empty Error selects the error layout.
type Page struct {
	Title      string
	Footer     string
	UpdateTime string
	Error      string
	Summary    string
	News       []NewsCard
	Trends     []string
}

// NewsCard is one rendered news item with defaults applied
type NewsCard struct {
	Title   string
	Source  string
	Summary string
	Impact  string
	URL     string
}

// BuildPage maps the result of reading the latest store onto a Page.
// readErr is the error returned by the read, if any; every outcome yields a page.
func BuildPage(env *types.Envelope, readErr error, title string) *Page {
	if title == "" {
		title = DefaultTitle
	}
	page := &Page{
		Title:      title,
		Footer:     DefaultFooter,
		UpdateTime: UnknownUpdateTime,
		Summary:    NoData,
	}

	switch {
	case errors.Is(readErr, store.ErrNoResult):
		page.Error = MsgNoResult
		return page
	case readErr != nil:
		page.Error = msgReadFailed + readErr.Error()
		return page
	case env == nil:
		page.Error = MsgNoResult
		return page
	}

	page.UpdateTime = formatUpdateTime(env)

	if !env.IsSuccess() {
		page.Error = MsgFetchFailed
		return page
	}
	digest, err := env.Digest()
	if err != nil {
		page.Error = MsgFetchFailed
		return page
	}

	page.Summary = orDefault(digest.Summary, NoData)
	page.News = make([]NewsCard, 0, len(digest.News))
	for _, item := range digest.News {
		page.News = append(page.News, NewsCard{
			Title:   orDefault(item.Title, NoTitle),
			Source:  orDefault(item.Source, UnknownSource),
			Summary: orDefault(item.Summary, NoSummary),
			Impact:  orDefault(item.Impact, NoAnalysis),
			URL:     item.URL,
		})
	}
	page.Trends = append([]string{}, digest.Trends...)

	return page
}

func formatUpdateTime(env *types.Envelope) string {
	if env.Timestamp == "" {
		return UnknownUpdateTime
	}
	t, err := env.Time()
	if err != nil {
		return env.Timestamp
	}
	return t.Format(updateTimeLayout)
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
