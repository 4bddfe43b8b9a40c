// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/digest-agent/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// truncate shortens s to at most n runes, marking the cut with "..."
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n-3]) + "..."
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(title, boxWidth-4))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintEnvelope outputs a human-readable summary of a stored run.
func (p *Printer) PrintEnvelope(env *types.Envelope) {
	if env == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Status:   %s\n", env.Status))
	sb.WriteString(fmt.Sprintf("Time:     %s\n", env.Timestamp))
	if env.Model != "" {
		sb.WriteString(fmt.Sprintf("Model:    %s\n", env.Model))
	}
	if env.RunID != "" {
		sb.WriteString(fmt.Sprintf("Run:      %s\n", env.RunID))
	}
	if env.Error != "" {
		sb.WriteString(fmt.Sprintf("Error:    %s\n", env.Error))
	}

	digest, err := env.Digest()
	if err != nil {
		p.printBox("DIGEST RUN", strings.TrimSuffix(sb.String(), "\n"))
		return
	}

	sb.WriteString("\n")
	if digest.Summary != "" {
		sb.WriteString(digest.Summary)
		sb.WriteString("\n\n")
	}

	if len(digest.News) > 0 {
		sb.WriteString(fmt.Sprintf("News (%d):\n", len(digest.News)))
		count := min(len(digest.News), maxItemsToShow)
		for i := 0; i < count; i++ {
			item := digest.News[i]
			sb.WriteString(fmt.Sprintf("  • %s", item.Title))
			if item.Source != "" {
				sb.WriteString(fmt.Sprintf(" [%s]", item.Source))
			}
			sb.WriteString("\n")
		}
		if len(digest.News) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(digest.News)-maxItemsToShow))
		}
		sb.WriteString("\n")
	}

	if len(digest.Trends) > 0 {
		sb.WriteString(fmt.Sprintf("Trends: %s\n", strings.Join(digest.Trends, ", ")))
	}

	p.printBox("DIGEST RUN", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintHistory outputs one line per stored run, newest last.
func (p *Printer) PrintHistory(history []types.Envelope, limit int) {
	if len(history) == 0 {
		p.printBox("HISTORY", "No runs recorded yet")
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Runs stored: %d (cap %d)\n\n", len(history), limit))

	successes := 0
	for i := range history {
		env := &history[i]
		news := "-"
		if digest, err := env.Digest(); err == nil {
			news = fmt.Sprintf("%d news", len(digest.News))
		}
		if env.IsSuccess() {
			successes++
		}
		sb.WriteString(fmt.Sprintf("%-25s %-8s %s\n", truncate(env.Timestamp, 25), env.Status, news))
	}
	sb.WriteString(fmt.Sprintf("\nSuccess rate: %d/%d", successes, len(history)))

	p.printBox("HISTORY", sb.String())
}

// PrintStep outputs a single progress line.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintStep(step, message string) {
	fmt.Fprintf(p.out, "[%s] %s\n", step, message)
}
