package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/digest-agent/internal/schemas"
	schemafiles "github.com/jonathan/digest-agent/schemas"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the stored files against their JSON Schemas",
	Long: `Checks the latest result file against the envelope schema and the history file
against the history schema. Files that do not exist yet are reported and skipped.

With --json and --schema a single file is checked instead; --schema takes either
an embedded schema name (envelope.schema.json, history.schema.json) or a path.`,
	RunE: runValidate,
}

var (
	validateSchema string
	validateJSON   string
)

func init() {
	validateCmd.Flags().StringVarP(&validateSchema, "schema", "s", "", "Schema name or path (requires --json)")
	validateCmd.Flags().StringVarP(&validateJSON, "json", "j", "", "JSON file to validate (requires --schema)")
	validateCmd.MarkFlagsRequiredTogether("schema", "json")

	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()

	if validateJSON != "" {
		if err := schemas.ValidateFile(validateSchema, validateJSON); err != nil {
			_, _ = fmt.Fprintf(out, "Validation failed: %s\n", validateJSON)
			return err
		}
		_, _ = fmt.Fprintf(out, "Validation passed: %s\n", validateJSON)
		return nil
	}

	checks := []struct {
		schema string
		path   string
	}{
		{schemafiles.Envelope, cfg.LatestPath()},
		{schemafiles.History, cfg.HistoryPath()},
	}

	var failed []error
	for _, c := range checks {
		if _, err := os.Stat(c.path); os.IsNotExist(err) {
			_, _ = fmt.Fprintf(out, "Skipped (not found): %s\n", c.path)
			continue
		}
		if err := schemas.ValidateFile(c.schema, c.path); err != nil {
			_, _ = fmt.Fprintf(out, "Validation failed: %s\n", c.path)
			failed = append(failed, fmt.Errorf("%s: %w", c.path, err))
			continue
		}
		_, _ = fmt.Fprintf(out, "Validation passed: %s\n", c.path)
	}
	return errors.Join(failed...)
}
