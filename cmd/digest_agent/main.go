// Package main provides the entry point for the digest_agent CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/digest-agent/internal/config"
	"github.com/jonathan/digest-agent/internal/llm"
	"github.com/jonathan/digest-agent/internal/observability"
)

var rootCmd = &cobra.Command{
	Use:   "digest_agent",
	Short: "LLM-generated AI news digest",
	Long: `digest_agent asks a language model for a daily AI news and trend digest,
stores the result and a rolling history as JSON, and renders the latest result
into a standalone HTML page.

Configuration can be loaded from a JSON or YAML file using --config.
Environment variables override file values; command-line flags override both.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

var (
	rootConfigPath string
	rootVerbose    bool
	rootDataDir    string
	rootProvider   string
	rootModel      string
	rootOutput     string

	// Resolved in PersistentPreRunE
	cfg    = config.Defaults()
	logger = zap.NewNop()
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&rootConfigPath, "config", "c", "", "Path to a JSON or YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&rootVerbose, "verbose", "v", false, "Print detailed debug information")
	rootCmd.PersistentFlags().StringVar(&rootDataDir, "data-dir", "", "Directory holding the result and history files")
	rootCmd.PersistentFlags().StringVar(&rootProvider, "provider", "", "Model provider: "+llm.ProviderNames())
	rootCmd.PersistentFlags().StringVar(&rootModel, "model", "", "Model identifier (defaults per provider)")
	rootCmd.PersistentFlags().StringVarP(&rootOutput, "out", "o", "", "Path of the rendered HTML page")
}

// setup resolves configuration and builds the logger before any command runs
func setup(cmd *cobra.Command, _ []string) error {
	resolved, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	cfg = resolved

	logger, err = observability.NewLogger(cfg.Verbose)
	if err != nil {
		return err
	}
	return nil
}

// loadConfig layers defaults, config file, environment and flags, in that order
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	var loaded config.Config
	if rootConfigPath != "" {
		fileCfg, err := config.LoadConfig(rootConfigPath)
		if err != nil {
			return config.Config{}, fmt.Errorf("failed to load config: %w", err)
		}
		loaded = *fileCfg
	}

	loaded.ApplyEnv()

	flags := cmd.Flags()
	if flags.Changed("verbose") {
		loaded.Verbose = rootVerbose
	}
	if flags.Changed("data-dir") {
		loaded.DataDir = rootDataDir
	}
	if flags.Changed("provider") {
		loaded.Provider = rootProvider
	}
	if flags.Changed("model") {
		loaded.Model = rootModel
	}
	if flags.Changed("out") {
		loaded.OutputPath = rootOutput
	}

	merged := loaded.MergeWithDefaults(config.Defaults())
	if err := merged.Validate(); err != nil {
		return config.Config{}, err
	}
	return merged, nil
}

// commandContext returns the command's context, or a background context
// for commands invoked directly rather than through Execute
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
