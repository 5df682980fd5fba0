// Package upstream fetches report data from a Fava instance.
//
// Fava computes reports lazily, keyed on page visits, so every fetch is a
// two-phase operation: a refresh GET that forces the upstream to recompute
// server-side report state (body discarded), followed by the real data GET.
// The second call must not start before the first completes.
package upstream

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog"
)

// QueryData carries the rendered HTML table of a query result.
type QueryData struct {
	Table string `json:"table"`
}

// QueryEnvelope is the upstream's JSON wrapper around query results.
// Error and Data are both optional; a successful response with no Data
// means the query matched no rows.
type QueryEnvelope struct {
	Success bool       `json:"success"`
	Error   *string    `json:"error"`
	Data    *QueryData `json:"data"`
}

// Client issues the two-phase fetches. It holds no mutable state and is
// safe for concurrent use; the embedded http.Client pools connections.
type Client struct {
	baseURL string
	httpc   *http.Client
	log     zerolog.Logger
}

// NewClient creates a client for the given upstream base URL.
func NewClient(baseURL string, log zerolog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{},
		log:     log,
	}
}

// FetchQueryTable runs a beancount query against the upstream and returns
// its decoded envelope. The refresh call targets the income statement page.
func (c *Client) FetchQueryTable(ctx context.Context, queryString string) (*QueryEnvelope, error) {
	if err := c.refresh(ctx, "/income_statement/"); err != nil {
		return nil, err
	}

	dataURL := c.baseURL + "/api/query_result?query_string=" + url.QueryEscape(queryString)
	body, err := c.get(ctx, dataURL)
	if err != nil {
		return nil, err
	}

	env, err := decodeEnvelope(body)
	if err != nil {
		c.log.Error().Err(err).Str("query", queryString).Msg("undecodable query envelope")
		return nil, err
	}
	return env, nil
}

// FetchAccountPage returns the raw HTML of an account journal page.
// The account page itself is the refresh target: the first GET warms the
// report state, the second reads it.
func (c *Client) FetchAccountPage(ctx context.Context, account string) (string, error) {
	path := "/account/" + url.PathEscape(account) + "/"
	if err := c.refresh(ctx, path); err != nil {
		return "", err
	}
	return c.get(ctx, c.baseURL+path)
}

// refresh performs the state-warming GET. Only transport success matters;
// the body is discarded.
func (c *Client) refresh(ctx context.Context, path string) error {
	if _, err := c.get(ctx, c.baseURL+path); err != nil {
		return fmt.Errorf("refresh %s: %w", path, err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, rawURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("build request for %s: %w", rawURL, err)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return "", fmt.Errorf("GET %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("upstream returned status %d for %s", resp.StatusCode, rawURL)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response of %s: %w", rawURL, err)
	}
	return string(body), nil
}
