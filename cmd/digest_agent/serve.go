package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/digest-agent/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the digest page and stored results over HTTP",
	Long: `Starts a read-only HTTP server:

  GET /              the digest page, rendered from the latest result
  GET /api/latest    the latest result envelope
  GET /api/history   the run history (?last=N for the most recent N)
  GET /health        liveness check`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 8080, "Port to listen on")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if servePort < 0 || servePort > 65535 {
		return fmt.Errorf("invalid port %d", servePort)
	}

	srv := server.New(server.Config{
		Port:    servePort,
		Latest:  latestStore(),
		History: historyStore(),
		Title:   cfg.PageTitle,
		Logger:  logger,
	})

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Serving %s on :%d (Ctrl+C to stop)\n", cfg.LatestPath(), servePort)
	return srv.Start(commandContext(cmd))
}
