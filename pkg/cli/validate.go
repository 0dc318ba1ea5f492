package cli

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/orgwatch/dirsync/pkg/cli/config"
	"github.com/orgwatch/dirsync/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdValidate() *cli.Command {
	var syncCfg config.Sync
	var dirCfg config.Directory
	var checkDirectory bool

	var flags []cli.Flag
	flags = append(flags, syncCfg.Flags()...)
	flags = append(flags, dirCfg.Flags()...)
	flags = append(flags, &cli.BoolFlag{
		Name:        "check-directory",
		Usage:       "Also verify the directory service is reachable",
		Sources:     cli.EnvVars("DIRSYNC_CHECK_DIRECTORY"),
		Destination: &checkDirectory,
	})

	return &cli.Command{
		Name:    "validate",
		Aliases: []string{"v"},
		Usage:   "Validate configuration files and optionally check directory connectivity",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.Default()

			opts, err := syncCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "configuration validation failed")
			}

			logger.Info("Configuration validation passed",
				"actor", opts.Actor,
				"concurrency", opts.Concurrency,
				"general_alias_count", len(opts.GeneralAliases),
			)

			if checkDirectory {
				dir, err := dirCfg.Configure()
				if err != nil {
					return goerr.Wrap(err, "directory configuration is invalid")
				}

				// One page of teams is enough to prove connectivity
				for _, err := range dir.ListTeams(ctx) {
					if err != nil {
						return goerr.Wrap(err, "directory connectivity check failed")
					}
					break
				}
				logger.Info("Directory connectivity check passed")
			}

			return nil
		},
	}
}
