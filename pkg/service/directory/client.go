package directory

import (
	"context"
	"encoding/json"
	"io"
	"iter"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/orgwatch/dirsync/pkg/domain/model"
	"github.com/orgwatch/dirsync/pkg/utils/safe"
)

const defaultPageSize = 100

// client implements Service against a Graph-style REST API. Collection
// endpoints return `{"value": [...]}` envelopes with an optional
// `@odata.nextLink` continuation URL.
type client struct {
	baseURL    string
	token      string
	tenantID   string
	httpClient *http.Client
	pageSize   int
}

type Option func(*client)

// WithHTTPClient replaces the underlying HTTP client, mainly for tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *client) {
		c.httpClient = hc
	}
}

// WithPageSize sets the $top value requested per page
func WithPageSize(n int) Option {
	return func(c *client) {
		if n > 0 {
			c.pageSize = n
		}
	}
}

// WithTenant scopes all requests to one tenant of a multi-tenant directory
func WithTenant(tenantID string) Option {
	return func(c *client) {
		c.tenantID = tenantID
	}
}

// New creates a directory Service backed by the REST API at baseURL
func New(baseURL, token string, opts ...Option) (Service, error) {
	if baseURL == "" {
		return nil, goerr.New("directory base URL is required")
	}
	if token == "" {
		return nil, goerr.New("directory API token is required")
	}

	c := &client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		pageSize:   defaultPageSize,
	}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

func (c *client) GetTeam(ctx context.Context, externalID string) (*model.Record, error) {
	return c.getObject(ctx, "/teams/"+url.PathEscape(externalID))
}

func (c *client) ListTeams(ctx context.Context) iter.Seq2[*model.Record, error] {
	return c.listObjects(ctx, "/teams")
}

func (c *client) GetChannel(ctx context.Context, teamExternalID, channelExternalID string) (*model.Record, error) {
	return c.getObject(ctx, "/teams/"+url.PathEscape(teamExternalID)+"/channels/"+url.PathEscape(channelExternalID))
}

func (c *client) ListChannels(ctx context.Context, teamExternalID string) iter.Seq2[*model.Record, error] {
	return c.listObjects(ctx, "/teams/"+url.PathEscape(teamExternalID)+"/channels")
}

func (c *client) GetUser(ctx context.Context, externalID string) (*model.Record, error) {
	return c.getObject(ctx, "/users/"+url.PathEscape(externalID))
}

func (c *client) ListUsers(ctx context.Context) iter.Seq2[*model.Record, error] {
	return c.listObjects(ctx, "/users")
}

// endpoint builds the absolute URL for a resource path, scoped to the
// configured tenant when one is set
func (c *client) endpoint(path string) string {
	if c.tenantID != "" {
		return c.baseURL + "/tenants/" + url.PathEscape(c.tenantID) + path
	}
	return c.baseURL + path
}

func (c *client) getObject(ctx context.Context, path string) (*model.Record, error) {
	body, err := c.get(ctx, c.endpoint(path))
	if err != nil {
		return nil, err
	}

	var obj map[string]any
	if err := json.Unmarshal(body, &obj); err != nil {
		return nil, goerr.Wrap(err, "failed to decode directory object", goerr.V("path", path))
	}

	return model.RecordFrom(obj), nil
}

// collectionPage is the Graph-style envelope around listed objects
type collectionPage struct {
	Value    []map[string]any `json:"value"`
	NextLink string           `json:"@odata.nextLink"`
}

func (c *client) listObjects(ctx context.Context, path string) iter.Seq2[*model.Record, error] {
	return func(yield func(*model.Record, error) bool) {
		next := c.endpoint(path) + "?$top=" + strconv.Itoa(c.pageSize)

		for next != "" {
			body, err := c.get(ctx, next)
			if err != nil {
				yield(nil, err)
				return
			}

			var page collectionPage
			if err := json.Unmarshal(body, &page); err != nil {
				yield(nil, goerr.Wrap(err, "failed to decode directory page", goerr.V("path", path)))
				return
			}

			for _, obj := range page.Value {
				if !yield(model.RecordFrom(obj), nil) {
					return
				}
			}

			// nextLink is an absolute continuation URL supplied by the server
			next = page.NextLink
		}
	}
}

func (c *client) get(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to build directory request", goerr.V("url", rawURL))
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, goerr.Wrap(err, "directory request failed", goerr.V("url", rawURL))
	}
	defer safe.Close(ctx, resp.Body)

	body, err := io.ReadAll(io.LimitReader(resp.Body, 16*1024*1024))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read directory response", goerr.V("url", rawURL))
	}

	if resp.StatusCode != http.StatusOK {
		return nil, goerr.New("directory returned non-OK status",
			goerr.V("url", rawURL),
			goerr.V("status", resp.StatusCode),
			goerr.V("body", truncate(string(body), 512)))
	}

	return body, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
