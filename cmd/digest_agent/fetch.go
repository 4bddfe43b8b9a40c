package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/digest-agent/internal/observability"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Ask the model for a digest and store the result",
	Long: `Sends the digest prompt to the configured model, parses the JSON in its reply,
overwrites the latest result file and appends the run to the history file.

A reply that does not contain a JSON object stores nothing. A failed API call
stores a failure record only with --record-failures.`,
	RunE: runFetch,
}

var (
	fetchRecordFailures bool
	fetchPromptFile     string
	fetchTimeout        string
	fetchRender         bool
)

func init() {
	fetchCmd.Flags().BoolVar(&fetchRecordFailures, "record-failures", false, "Store a failure record when the API call fails")
	fetchCmd.Flags().StringVar(&fetchPromptFile, "prompt", "", "Path to a prompt template replacing the built-in one")
	fetchCmd.Flags().StringVar(&fetchTimeout, "timeout", "", "Bound on the API call, e.g. 90s (default from config)")
	fetchCmd.Flags().BoolVar(&fetchRender, "render", false, "Render the HTML page after storing the result")

	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, _ []string) error {
	if cmd.Flags().Changed("record-failures") {
		cfg.RecordFailures = fetchRecordFailures
	}
	if cmd.Flags().Changed("prompt") {
		cfg.PromptFile = fetchPromptFile
	}
	if cmd.Flags().Changed("timeout") {
		cfg.RequestTimeout = fetchTimeout
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := cfg.ValidatePromptFile(); err != nil {
		return err
	}

	ctx := commandContext(cmd)
	out := cmd.OutOrStdout()

	client, err := newClient(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	p, err := newProducer(client, out)
	if err != nil {
		return err
	}

	env, err := p.Run(ctx)
	if err != nil {
		return err
	}

	if cfg.Verbose {
		observability.NewPrinter(out).PrintEnvelope(env)
	}
	_, _ = fmt.Fprintf(out, "Stored digest from %s in %s\n", env.Model, cfg.LatestPath())

	if fetchRender {
		r := newRenderer()
		if _, err := r.Render(); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(out, "Rendered %s\n", r.OutputPath())
	}
	return nil
}
