package datacite

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/FZJ-JSC/doi-jekyll/pkg/core"
)

// DefaultTimeout bounds every registry call. The MDS API has no
// streaming responses; anything slower than this is a failure.
const DefaultTimeout = 30 * time.Second

// ClientConfig holds the configuration for the MDS client.
type ClientConfig struct {
	// BaseURL is the provider endpoint base, e.g. "https://mds.datacite.org".
	BaseURL  string
	Username string
	Password string
	// HTTPClient may be injected for testing; a default client with
	// DefaultTimeout is used when nil.
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// Client talks to the DataCite MDS API. Both operations are idempotent
// upserts (repeatable PUT semantics); the client performs no retries.
type Client struct {
	baseURL    string
	username   string
	password   string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a new MDS client.
func NewClient(config ClientConfig) *Client {
	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL:    strings.TrimRight(config.BaseURL, "/"),
		username:   config.Username,
		password:   config.Password,
		httpClient: httpClient,
		logger:     logger,
	}
}

// RegisterMetadata upserts the metadata record for a DOI.
func (c *Client) RegisterMetadata(ctx context.Context, doi string, metadata []byte) error {
	return c.put(ctx, c.baseURL+"/metadata/"+doi, "application/xml;charset=UTF-8", metadata)
}

// RegisterURL upserts the URL mapping for a DOI.
func (c *Client) RegisterURL(ctx context.Context, doi string, url string) error {
	payload := fmt.Sprintf("#Content-Type:text/plain;charset=UTF-8\ndoi= %s\nurl= %s", doi, url)
	c.logger.Debug("url registration payload", "payload", payload)
	return c.put(ctx, c.baseURL+"/doi/"+doi, "text/plain;charset=UTF-8", []byte(payload))
}

func (c *Client) put(ctx context.Context, url, contentType string, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build registry request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.SetBasicAuth(c.username, c.password)

	c.logger.Debug("registry request", "url", url, "bytes", len(body))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("registry request to %s failed: %w", url, err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	c.logger.Debug("registry response", "status", resp.Status, "body", string(respBody))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("registry returned %s: %s: %w",
			resp.Status, strings.TrimSpace(string(respBody)), core.ErrRegistryFailed)
	}

	return nil
}
