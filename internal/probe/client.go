package probe

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-faster/errors"

	"github.com/voltroute/backend/internal/domain"
	"github.com/voltroute/backend/internal/readiness"
)

// maxBody caps how much of a probe response is read.
const maxBody = 64 << 10

// Client queries the liveness and readiness endpoints of a running server.
// The base URL is injected so tests can point it at a mock transport.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return NewClientWithHTTP(baseURL, &http.Client{Timeout: timeout})
}

// NewClientWithHTTP uses hc as is.
func NewClientWithHTTP(baseURL string, hc *http.Client) *Client {
	return &Client{baseURL: strings.TrimSuffix(baseURL, "/"), httpClient: hc}
}

// Live GETs the liveness path and expects 200 with {"status": "ok"}.
func (c *Client) Live(ctx context.Context, path string) (*domain.Status, error) {
	code, body, err := c.get(ctx, path)
	if err != nil {
		return nil, err
	}
	if code != http.StatusOK {
		return nil, errors.Wrapf(domain.ErrUnexpectedStatusCode, "liveness returned %d", code)
	}

	var s domain.Status
	if err := s.UnmarshalJSON(body); err != nil {
		return nil, errors.Wrap(err, "decode liveness response")
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if !s.OK() {
		return &s, errors.Wrapf(domain.ErrNotReady, "status %q", s.Status)
	}
	return &s, nil
}

// Ready GETs the readiness path. A 503 still yields the decoded report,
// together with domain.ErrNotReady.
func (c *Client) Ready(ctx context.Context, path string) (*readiness.Report, error) {
	code, body, err := c.get(ctx, path)
	if err != nil {
		return nil, err
	}
	if code != http.StatusOK && code != http.StatusServiceUnavailable {
		return nil, errors.Wrapf(domain.ErrUnexpectedStatusCode, "readiness returned %d", code)
	}

	var r readiness.Report
	if err := json.Unmarshal(body, &r); err != nil {
		return nil, errors.Wrap(err, "decode readiness response")
	}
	if code == http.StatusServiceUnavailable || !r.Ready() {
		return &r, domain.ErrNotReady
	}
	return &r, nil
}

func (c *Client) get(ctx context.Context, path string) (int, []byte, error) {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return 0, nil, errors.Wrap(err, "create request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, errors.Wrap(err, "send request")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return 0, nil, errors.Wrap(err, "read response")
	}
	return resp.StatusCode, body, nil
}
