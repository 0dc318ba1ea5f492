package config

import (
	"os"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/orgwatch/dirsync/pkg/usecase"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"
)

// SyncOptions is the TOML-backed tuning configuration for reconciliation.
// All fields are optional; zero values fall back to built-in defaults.
type SyncOptions struct {
	Actor          string   `toml:"actor"`
	Concurrency    int      `toml:"concurrency"`
	GeneralAliases []string `toml:"general_aliases"`
}

// Validate checks if the SyncOptions are valid
func (s *SyncOptions) Validate() error {
	if s.Concurrency < 0 {
		return goerr.Wrap(ErrInvalidConfig, "concurrency must not be negative",
			goerr.V("concurrency", s.Concurrency))
	}
	for _, alias := range s.GeneralAliases {
		if strings.TrimSpace(alias) == "" {
			return goerr.Wrap(ErrInvalidConfig, "general channel alias must not be blank")
		}
	}
	return nil
}

// ToOptions converts the configuration to use case options
func (s *SyncOptions) ToOptions() []usecase.Option {
	var opts []usecase.Option
	if s.Actor != "" {
		opts = append(opts, usecase.WithActor(s.Actor))
	}
	if s.Concurrency > 0 {
		opts = append(opts, usecase.WithConcurrency(s.Concurrency))
	}
	if len(s.GeneralAliases) > 0 {
		opts = append(opts, usecase.WithGeneralAliases(s.GeneralAliases...))
	}
	return opts
}

// Sync holds the CLI flag pointing at the sync options file
type Sync struct {
	path string
}

// Flags returns CLI flags for sync tuning configuration
func (s *Sync) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "sync-config",
			Usage:       "Path to sync tuning configuration (TOML, optional)",
			Sources:     cli.EnvVars("DIRSYNC_SYNC_CONFIG"),
			Destination: &s.path,
		},
	}
}

// Configure loads and validates the sync options file. When no path is
// configured, built-in defaults are returned.
func (s *Sync) Configure() (*SyncOptions, error) {
	if s.path == "" {
		return &SyncOptions{}, nil
	}
	return LoadSyncOptions(s.path)
}

// LoadSyncOptions loads sync tuning options from a TOML file
func LoadSyncOptions(path string) (*SyncOptions, error) {
	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, goerr.Wrap(ErrConfigNotFound, "sync config file does not exist",
				goerr.V(ConfigPathKey, path))
		}
		return nil, goerr.Wrap(err, "failed to read sync config file", goerr.V(ConfigPathKey, path))
	}

	var opts SyncOptions
	if err := toml.Unmarshal(data, &opts); err != nil {
		return nil, goerr.Wrap(err, "failed to parse TOML sync config", goerr.V(ConfigPathKey, path))
	}

	if err := opts.Validate(); err != nil {
		return nil, goerr.Wrap(err, "sync config validation failed", goerr.V(ConfigPathKey, path))
	}

	return &opts, nil
}
