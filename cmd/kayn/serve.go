package main

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/ironsheep/kayn/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve MCP requests on stdin/stdout",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	setupLogging()
	if cfg.Debug {
		log.Printf("kayn v%s (built %s, commit %s), workers=%d", Version, BuildTime, GitCommit, cfg.Workers)
	}

	server.Version = Version
	if err := server.New(cfg).Run(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
