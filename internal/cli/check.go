package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/trusteddatanow/catalog/internal/catalog"
	"github.com/trusteddatanow/catalog/internal/logger"
	"github.com/trusteddatanow/catalog/internal/probe"
	"github.com/trusteddatanow/catalog/internal/redisconn"
	redisstore "github.com/trusteddatanow/catalog/internal/store/redis"
)

var (
	checkAllFlag   bool
	flushCacheFlag bool
)

var checkCmd = &cobra.Command{
	Use:   "check <catalog.json>",
	Short: "Probe every catalog URL for liveness and record the result",
	Long: `Issues a liveness probe against each resource URL across a bounded worker
pool and updates the record's active status. Records checked within the
recheck window are skipped unless --all is given. The catalog is rewritten
once, atomically, at the end of the sweep.`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().BoolVar(&checkAllFlag, "all", false, "check every URL regardless of last checked time")
	checkCmd.Flags().BoolVar(&flushCacheFlag, "flush-cache", false, "drop cached probe outcomes before sweeping")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store := catalog.NewStore(args[0])
	checker := probe.NewChecker(cfg.Probe.Timeout.Std(), cfg.Probe.Retries, cfg.Probe.UserAgent)

	// The probe cache is optional and best effort: a missing redis only
	// costs re-probing.
	var cache probe.OutcomeCache
	if cfg.Redis.Enabled() {
		client, err := redisconn.New(redisconn.ConnectOptions{
			Addr:           cfg.Redis.Addr,
			User:           cfg.Redis.User,
			Password:       cfg.Redis.Password,
			DB:             cfg.Redis.DB,
			DialTimeout:    cfg.Redis.DialTimeout.Std(),
			ReadTimeout:    cfg.Redis.ReadTimeout.Std(),
			WriteTimeout:   cfg.Redis.WriteTimeout.Std(),
			PoolSize:       cfg.Redis.PoolSize,
			ConnectTimeout: cfg.Redis.ConnectTimeout.Std(),
			RetryInterval:  cfg.Redis.RetryInterval.Std(),
			MaxWait:        cfg.Redis.MaxWait.Std(),
			PingTimeout:    cfg.Redis.PingTimeout.Std(),
		}, log)
		if err != nil {
			log.Warn("probe cache unavailable, sweeping without it", logger.Error(err))
		} else {
			defer func() { _ = client.Close() }()
			pcache := redisstore.NewStore(client, cfg.Probe.RecheckWindow.Std())
			if flushCacheFlag {
				if err := pcache.Flush(ctx); err != nil {
					log.Warn("failed to flush probe cache", logger.Error(err))
				}
			}
			cache = pcache
		}
	}

	sweep := probe.NewSweep(store, checker, cache, log, probe.SweepOptions{
		Workers:       cfg.Probe.Workers,
		RecheckWindow: cfg.Probe.RecheckWindow.Std(),
		CheckAll:      checkAllFlag,
	})

	_, err = sweep.Run(ctx)
	return err
}
