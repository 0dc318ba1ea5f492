package cli

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/orgwatch/dirsync/pkg/cli/config"
	"github.com/orgwatch/dirsync/pkg/usecase"
	"github.com/orgwatch/dirsync/pkg/utils/logging"
	"github.com/orgwatch/dirsync/pkg/utils/safe"
	"github.com/urfave/cli/v3"
)

func cmdSync() *cli.Command {
	var teamExternalID string
	var userExternalID string
	var repoCfg config.Repository
	var dirCfg config.Directory
	var syncCfg config.Sync

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "team",
			Usage:       "Sync only the team with this external ID (and its channels)",
			Sources:     cli.EnvVars("DIRSYNC_SYNC_TEAM"),
			Destination: &teamExternalID,
		},
		&cli.StringFlag{
			Name:        "user",
			Usage:       "Sync only the user with this external ID",
			Sources:     cli.EnvVars("DIRSYNC_SYNC_USER"),
			Destination: &userExternalID,
		},
	}
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, dirCfg.Flags()...)
	flags = append(flags, syncCfg.Flags()...)

	return &cli.Command{
		Name:    "sync",
		Aliases: []string{"s"},
		Usage:   "Run one full reconciliation of the directory into the local store",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			uc, cleanup, err := buildUseCases(ctx, &repoCfg, &dirCfg, &syncCfg)
			if err != nil {
				return err
			}
			defer cleanup()

			if userExternalID != "" {
				user, err := uc.SyncUserByID(ctx, userExternalID)
				if err != nil {
					return goerr.Wrap(err, "sync failed")
				}
				logging.Default().Info("user synced",
					"id", user.ID,
					"principal_name", user.PrincipalName)
				return nil
			}

			var report *usecase.SyncReport
			if teamExternalID != "" {
				report, err = uc.SyncTeamChannels(ctx, teamExternalID)
			} else {
				report, err = uc.SyncAll(ctx)
			}
			if err != nil {
				return goerr.Wrap(err, "sync failed")
			}

			logging.Default().Info("sync finished",
				"duration", report.FinishedAt.Sub(report.StartedAt).String(),
				"teams_created", report.Teams.Created,
				"teams_updated", report.Teams.Updated,
				"teams_unchanged", report.Teams.Unchanged,
				"teams_failed", report.Teams.Failed,
				"channels_created", report.Channels.Created,
				"channels_updated", report.Channels.Updated,
				"channels_unchanged", report.Channels.Unchanged,
				"channels_failed", report.Channels.Failed,
				"users_created", report.Users.Created,
				"users_updated", report.Users.Updated,
				"users_unchanged", report.Users.Unchanged,
				"users_failed", report.Users.Failed,
			)
			return nil
		},
	}
}

// buildUseCases wires repository, directory service and sync options into
// a ready-to-run use case set. The returned cleanup closes the repository.
func buildUseCases(ctx context.Context, repoCfg *config.Repository, dirCfg *config.Directory, syncCfg *config.Sync) (*usecase.UseCases, func(), error) {
	repo, err := repoCfg.Configure(ctx)
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to initialize repository")
	}
	cleanup := func() {
		safe.Close(ctx, repo)
	}

	dir, err := dirCfg.Configure()
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	opts, err := syncCfg.Configure()
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	return usecase.New(repo, dir, opts.ToOptions()...), cleanup, nil
}
