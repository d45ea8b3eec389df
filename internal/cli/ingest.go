package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/trusteddatanow/catalog/internal/catalog"
	"github.com/trusteddatanow/catalog/internal/ingest"
	"github.com/trusteddatanow/catalog/internal/sources/forms"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest <catalog.json> <submissions.csv|export-url>",
	Short: "Merge a batch of form submissions into the catalog",
	Long: `Reads a form-submission export (a local CSV file or a sheet-export URL),
normalizes each row into a resource record, and upserts it into the catalog
keyed by canonical URL. Malformed rows are skipped and reported; they never
abort the batch.`,
	Args: cobra.ExactArgs(2),
	RunE: runIngest,
}

func init() { rootCmd.AddCommand(ingestCmd) }

func runIngest(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store := catalog.NewStore(args[0])
	loader := forms.NewLoader(cfg.Forms.FetchTimeout.Std())
	job := ingest.NewJob(store, loader, log)

	_, err = job.Run(ctx, args[1])
	return err
}
