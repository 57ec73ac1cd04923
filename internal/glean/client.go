package glean

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/pkg/errors"

	"github.com/kiranmohan-hh/mcp-server/internal/config"
)

const defaultHTTPTimeout = 60 * time.Second

// maximum response body we will buffer; Glean answers are small, this guards
// against a misbehaving proxy streaming forever.
const maxResponseBytes = 8 << 20

// Client posts validated request objects to the Glean REST API. It performs
// no retries, no caching and holds no per-request state; a single instance is
// constructed at process start and shared.
type Client struct {
	baseURL    string
	token      string
	actAs      string
	httpClient *http.Client
}

// NewClient builds a client from config. httpClient may be nil to use a
// default with a conservative overall timeout.
func NewClient(cfg *config.Config, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultHTTPTimeout}
	}
	return &Client{
		baseURL:    cfg.APIBaseURL(),
		token:      cfg.APIToken,
		actAs:      cfg.ActAs,
		httpClient: httpClient,
	}
}

// Search posts a validated search request and returns the decoded response
// unmodified. Non-2xx statuses come back as *APIError.
func (c *Client) Search(ctx context.Context, request map[string]any) (map[string]any, error) {
	return c.post(ctx, "search", request)
}

// Chat posts a validated chat request and returns the decoded response
// unmodified. Non-2xx statuses come back as *APIError.
func (c *Client) Chat(ctx context.Context, request map[string]any) (map[string]any, error) {
	return c.post(ctx, "chat", request)
}

func (c *Client) post(ctx context.Context, route string, request map[string]any) (map[string]any, error) {
	endpoint, err := url.JoinPath(c.baseURL, route)
	if err != nil {
		return nil, errors.Wrap(err, "invalid glean base URL")
	}

	// A caller-supplied timeoutMillis caps this request's deadline; the
	// upstream honors the same field server-side.
	if millis, ok := request["timeoutMillis"].(float64); ok && millis > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(millis)*time.Millisecond)
		defer cancel()
	}

	rawBody, err := json.Marshal(request)
	if err != nil {
		return nil, errors.Wrap(err, "failed to serialize glean request")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(rawBody))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create glean request")
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.token)
	if c.actAs != "" {
		httpReq.Header.Set("X-Scio-Actas", c.actAs)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, errors.Wrapf(err, "glean %s request failed", route)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read glean %s response", route)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, ClassifyStatus(resp.StatusCode, respBody)
	}

	decoded := map[string]any{}
	if len(bytes.TrimSpace(respBody)) > 0 {
		if err := json.Unmarshal(respBody, &decoded); err != nil {
			return nil, errors.Wrapf(err, "malformed glean %s response", route)
		}
	}
	return decoded, nil
}
