package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/trusteddatanow/catalog/internal/catalog"
	"github.com/trusteddatanow/catalog/internal/httpserver"
	"github.com/trusteddatanow/catalog/internal/httpserver/deps"
	"github.com/trusteddatanow/catalog/internal/version"
)

var serveCmd = &cobra.Command{
	Use:   "serve <catalog.json>",
	Short: "Serve a read-only preview API over the catalog file",
	Long: `Exposes the catalog over HTTP for local preview and operations:
GET /api/resources returns the catalog document, GET /api/stats summarizes
it, and /healthz and /readyz report liveness and readiness. Edits by the
maintenance jobs are picked up without restarts.`,
	Args: cobra.ExactArgs(1),
	RunE: runServe,
}

func init() { rootCmd.AddCommand(serveCmd) }

func runServe(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store := catalog.NewStore(args[0])

	d := deps.Deps{
		Logger:    log,
		StartTime: time.Now(),
		Version:   version.Version,
		Commit:    version.Commit,
		BuildDate: version.BuildDate,
		GoVersion: version.GoVersion,
		Catalog:   catalog.NewCache(store),
	}

	server := httpserver.New(cfg.Server.ListenAddr, log, d)

	log.Infof("catalogctl %s (commit=%s, built=%s, go=%s)",
		version.Version, version.Commit, version.BuildDate, version.GoVersion)

	errCh := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		log.Info("shutting down gracefully...")
	case err := <-errCh:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout.Std())
	defer cancel()
	if err := server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	log.Info("server stopped cleanly")
	return nil
}
