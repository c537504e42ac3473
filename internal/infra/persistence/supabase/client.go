// Package supabase reads tables through the Supabase REST (PostgREST) endpoint.
package supabase

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"basecamp/config"

	"github.com/pkg/errors"
)

const (
	defaultTimeout  = 10 * time.Second
	restPathPrefix  = "/rest/v1/"
	clientInfo      = "basecamp-control-center"
	maxErrorBodyLen = 4 << 10
)

// APIError is the error body PostgREST returns for a failed request.
type APIError struct {
	StatusCode int    `json:"-"`
	Code       string `json:"code"`
	Message    string `json:"message"`
	Details    string `json:"details"`
	Hint       string `json:"hint"`
}

// Error returns the server's message unchanged, so it can be shown to users as is.
func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}

	return "supabase request failed with status " + strconv.Itoa(e.StatusCode)
}

// Client issues authenticated REST reads against one Supabase project.
type Client struct {
	baseURL    *url.URL
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a REST client for the configured project.
func NewClient(cfg *config.SupabaseConfig, logger *slog.Logger) (*Client, error) {
	if cfg == nil || cfg.URL == "" {
		return nil, errors.New("supabase url is required")
	}

	baseURL, err := url.Parse(strings.TrimRight(cfg.URL, "/"))
	if err != nil {
		return nil, errors.Wrap(err, "invalid supabase url")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		baseURL: baseURL,
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}, nil
}

// SelectAll fetches every row of table (select=*) and decodes the JSON array into dest.
func (c *Client) SelectAll(ctx context.Context, table string, dest any) error {
	endpoint := c.baseURL.JoinPath(restPathPrefix + url.PathEscape(table))
	endpoint.RawQuery = url.Values{"select": {"*"}}.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return errors.WithStack(err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Client-Info", clientInfo)
	if c.apiKey != "" {
		req.Header.Set("apikey", c.apiKey)
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	c.logger.Debug("[Supabase] Selecting table",
		slog.String("table", table),
		slog.String("endpoint", endpoint.Redacted()),
	)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.WithStack(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errors.WithStack(decodeAPIError(resp))
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return errors.Wrap(err, "failed to decode supabase response")
	}

	return nil
}

func decodeAPIError(resp *http.Response) *APIError {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyLen))
	if err != nil || len(body) == 0 {
		return apiErr
	}

	if err := json.Unmarshal(body, apiErr); err != nil {
		// Gateways in front of PostgREST may answer with plain text.
		apiErr.Message = strings.TrimSpace(string(body))
	}

	return apiErr
}
