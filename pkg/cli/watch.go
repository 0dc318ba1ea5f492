package cli

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/orgwatch/dirsync/pkg/cli/config"
	"github.com/orgwatch/dirsync/pkg/service/worker"
	"github.com/orgwatch/dirsync/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdWatch() *cli.Command {
	var interval time.Duration
	var repoCfg config.Repository
	var dirCfg config.Directory
	var syncCfg config.Sync

	flags := []cli.Flag{
		&cli.DurationFlag{
			Name:        "interval",
			Usage:       "Time between reconciliation runs",
			Value:       10 * time.Minute,
			Sources:     cli.EnvVars("DIRSYNC_WATCH_INTERVAL"),
			Destination: &interval,
		},
	}
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, dirCfg.Flags()...)
	flags = append(flags, syncCfg.Flags()...)

	return &cli.Command{
		Name:    "watch",
		Aliases: []string{"w"},
		Usage:   "Continuously reconcile the directory on a fixed interval",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			uc, cleanup, err := buildUseCases(ctx, &repoCfg, &dirCfg, &syncCfg)
			if err != nil {
				return err
			}
			defer cleanup()

			ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			w := worker.NewSyncWorker(uc, interval)
			if err := w.Start(ctx); err != nil {
				return err
			}

			<-ctx.Done()
			logging.Default().Info("shutdown signal received")
			w.Stop()

			return nil
		},
	}
}
