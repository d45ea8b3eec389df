package cli

import (
	"github.com/spf13/cobra"

	"github.com/trusteddatanow/catalog/internal/config"
	"github.com/trusteddatanow/catalog/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:   "catalogctl",
	Short: "Maintain the disaster-data resource catalog",
	Long: `catalogctl maintains a community-curated catalog of disaster-response
data resources stored as a flat JSON file.

Each subcommand is a single run-to-completion batch job: ingest merges form
submissions into the catalog, check probes every listed URL for liveness,
and serve exposes a read-only preview API over the catalog file.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the CLI. Errors are returned to main for exit-code handling.
func Execute() error {
	return rootCmd.Execute()
}

// setup resolves configuration and builds the logger shared by all commands.
func setup() (*config.Config, logger.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger.New(cfg.LogLevel, cfg.PrettyLog), nil
}
