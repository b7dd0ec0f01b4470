package main

import (
	"fmt"
	"log"
	"os"
	"runtime"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ironsheep/kayn/internal/server"
)

var (
	verbose bool
	workers int
)

var rootCmd = &cobra.Command{
	Use:   "kayn",
	Short: "MCP server for pixel-level image transforms",
	Long: `kayn exposes window filters, thresholding and a multithreaded DCT
as MCP tools over stdin/stdout.

Running kayn without a subcommand starts the server. Configure it in your
MCP client (e.g., Claude Desktop).

Environment variables:
  KAYN_LOG_LEVEL=debug    Enable debug logging
  KAYN_WORKERS=N          DCT worker count when --workers is not set`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runServe,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "log debug output to stderr")
	rootCmd.PersistentFlags().IntVar(&workers, "workers", 0, "DCT/IDCT worker count (default: GOMAXPROCS)")
	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"kayn %s (%s/%s, %s)\n  Build time: %s\n  Git commit: %s\n",
		Version, runtime.GOOS, runtime.GOARCH, runtime.Version(), BuildTime, GitCommit,
	))
}

// resolveConfig merges flags with their environment fallbacks.
func resolveConfig(cmd *cobra.Command) (server.Config, error) {
	cfg := server.Config{
		Workers: workers,
		Debug:   verbose || os.Getenv("KAYN_LOG_LEVEL") == "debug",
	}

	if !cmd.Flags().Changed("workers") {
		if env := os.Getenv("KAYN_WORKERS"); env != "" {
			n, err := strconv.Atoi(env)
			if err != nil {
				return cfg, fmt.Errorf("KAYN_WORKERS: %w", err)
			}
			cfg.Workers = n
		}
	}
	if cfg.Workers < 0 {
		return cfg, fmt.Errorf("worker count must not be negative, got %d", cfg.Workers)
	}
	return cfg, nil
}

// setupLogging sends log output to stderr (stdout is for MCP protocol).
func setupLogging() {
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
}
