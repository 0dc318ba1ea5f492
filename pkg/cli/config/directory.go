package config

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/orgwatch/dirsync/pkg/service/directory"
	"github.com/urfave/cli/v3"
)

// Directory holds CLI flags for the external directory service
type Directory struct {
	baseURL  string
	token    string
	tenantID string
	pageSize int
}

// Flags returns CLI flags for directory configuration
func (d *Directory) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "directory-base-url",
			Usage:       "Base URL of the directory service API",
			Sources:     cli.EnvVars("DIRSYNC_DIRECTORY_BASE_URL"),
			Destination: &d.baseURL,
		},
		&cli.StringFlag{
			Name:        "directory-api-token",
			Usage:       "API token for the directory service",
			Sources:     cli.EnvVars("DIRSYNC_DIRECTORY_API_TOKEN"),
			Destination: &d.token,
		},
		&cli.StringFlag{
			Name:        "directory-tenant-id",
			Usage:       "Tenant ID when the directory service is multi-tenant",
			Sources:     cli.EnvVars("DIRSYNC_DIRECTORY_TENANT_ID"),
			Destination: &d.tenantID,
		},
		&cli.IntFlag{
			Name:        "directory-page-size",
			Usage:       "Number of objects requested per directory API page",
			Value:       100,
			Sources:     cli.EnvVars("DIRSYNC_DIRECTORY_PAGE_SIZE"),
			Destination: &d.pageSize,
		},
	}
}

// Configure builds the directory service client
func (d *Directory) Configure() (directory.Service, error) {
	opts := []directory.Option{directory.WithPageSize(d.pageSize)}
	if d.tenantID != "" {
		opts = append(opts, directory.WithTenant(d.tenantID))
	}

	svc, err := directory.New(d.baseURL, d.token, opts...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to initialize directory service")
	}
	return svc, nil
}
