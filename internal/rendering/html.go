package rendering

import (
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/renameio/v2"
	"github.com/jonathan/digest-agent/internal/store"
	"go.uber.org/zap"
)

var parsedPage = template.Must(template.New("page").Parse(pageTemplate))

// RenderHTML executes the page template for p
func RenderHTML(p *Page) (string, error) {
	var result strings.Builder
	if err := parsedPage.Execute(&result, p); err != nil {
		return "", &TemplateError{
			Message: "failed to execute page template",
			Cause:   err,
		}
	}
	return result.String(), nil
}

// Renderer turns the latest stored envelope into a static page on disk
type Renderer struct {
	latest     *store.LatestStore
	outputPath string
	title      string
	logger     *zap.Logger
}

// NewRenderer creates a Renderer that reads latest and writes to outputPath
func NewRenderer(latest *store.LatestStore, outputPath, title string, logger *zap.Logger) *Renderer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Renderer{
		latest:     latest,
		outputPath: outputPath,
		title:      title,
		logger:     logger,
	}
}

// OutputPath returns where the page is written
func (r *Renderer) OutputPath() string {
	return r.outputPath
}

// Render reads the latest store and replaces the output file.
// Problems with the stored data become an error page; only template and
// filesystem failures are returned.
func (r *Renderer) Render() (*Page, error) {
	env, readErr := r.latest.Read()
	if readErr != nil {
		r.logger.Warn("latest result unavailable, rendering error page",
			zap.String("path", r.latest.Path()),
			zap.Error(readErr))
	}

	page := BuildPage(env, readErr, r.title)

	html, err := RenderHTML(page)
	if err != nil {
		return nil, err
	}

	if err := writePage(r.outputPath, html); err != nil {
		return nil, err
	}

	r.logger.Info("rendered digest page",
		zap.String("output", r.outputPath),
		zap.Bool("error_layout", page.Error != ""),
		zap.Int("news", len(page.News)),
		zap.Int("trends", len(page.Trends)))

	return page, nil
}

func writePage(path, html string) error {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return &RenderError{
				Message: fmt.Sprintf("failed to create output directory %s", dir),
				Cause:   err,
			}
		}
	}

	if err := renameio.WriteFile(path, []byte(html), 0644); err != nil {
		return &RenderError{
			Message: fmt.Sprintf("failed to write %s", path),
			Cause:   err,
		}
	}
	return nil
}
