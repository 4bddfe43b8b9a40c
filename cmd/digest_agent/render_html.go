package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var renderHTMLCmd = &cobra.Command{
	Use:   "render-html",
	Short: "Render the latest result into a standalone HTML page",
	Long: `Reads the latest result file and writes the digest page. Missing, failed or
unreadable results still produce a page showing an error panel; only failures
writing the page itself are reported as errors.

With --watch the page is re-rendered whenever the latest result file changes.`,
	RunE: runRenderHTML,
}

var (
	renderHTMLTitle string
	renderHTMLWatch bool
)

func init() {
	renderHTMLCmd.Flags().StringVar(&renderHTMLTitle, "title", "", "Page title (default from config)")
	renderHTMLCmd.Flags().BoolVarP(&renderHTMLWatch, "watch", "w", false, "Keep running and re-render on every new result")

	rootCmd.AddCommand(renderHTMLCmd)
}

func runRenderHTML(cmd *cobra.Command, _ []string) error {
	if cmd.Flags().Changed("title") {
		cfg.PageTitle = renderHTMLTitle
	}

	r := newRenderer()
	out := cmd.OutOrStdout()

	if renderHTMLWatch {
		_, _ = fmt.Fprintf(out, "Watching %s, writing %s (Ctrl+C to stop)\n", cfg.LatestPath(), r.OutputPath())
		return r.Watch(commandContext(cmd))
	}

	page, err := r.Render()
	if err != nil {
		return err
	}
	if page.Error != "" {
		_, _ = fmt.Fprintf(out, "Rendered %s (error panel: %s)\n", r.OutputPath(), page.Error)
		return nil
	}
	_, _ = fmt.Fprintf(out, "Rendered %s (%d news, %d trends)\n", r.OutputPath(), len(page.News), len(page.Trends))
	return nil
}
