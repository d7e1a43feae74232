// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package scholar implements the literature-metadata API client
// (Semantic Scholar Graph API). Every network operation acquires the
// client's rate limiter, issues the request through the retry executor,
// and normalizes 200 responses into the canonical records in pkg/types.
// Any other status or transport failure yields an empty or absent result
// with a diagnostic log line; no error crosses the client boundary from a
// single fetch or search operation.
package scholar

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/pdiddy/paper-tools/internal/httputil"
	"github.com/pdiddy/paper-tools/internal/ratelimit"
	"github.com/pdiddy/paper-tools/pkg/types"
)

// apiBase is the Semantic Scholar Graph API root. Declared as a var so
// tests can substitute an httptest server.
var apiBase = "https://api.semanticscholar.org/graph/v1"

// recommendationsBase is the recommendations API root, which lives
// outside the graph API. Also a var for tests.
var recommendationsBase = "https://api.semanticscholar.org/recommendations/v1"

const defaultUserAgent = "paper-tools/0.1"

// Client queries the literature-metadata API. Each Client owns one rate
// limiter and issues one request at a time; separate Clients share no
// mutable state.
type Client struct {
	httpClient *http.Client
	limiter    *ratelimit.Limiter
	policy     httputil.Policy
	apiKey     string
	userAgent  string
	log        *logrus.Entry
}

// NewClient builds a literature-metadata client from cfg. An empty API key
// is a fully supported mode, subject to the upstream's default rate limits.
func NewClient(cfg types.ClientConfig, log *logrus.Entry) *Client {
	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		limiter:    ratelimit.New(cfg.RateLimitDelay),
		policy: httputil.Policy{
			MaxRetries:    cfg.MaxRetries,
			BackoffFactor: cfg.BackoffFactor,
		},
		apiKey:    cfg.APIKey,
		userAgent: userAgent,
		log:       log,
	}
}

// getJSON performs a rate-limited GET and decodes a 200 response into out.
// The bool result reports success; failures are logged, not returned.
func (c *Client) getJSON(ctx context.Context, url string, out any) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		c.log.WithError(err).Debug("creating request")
		return false
	}
	return c.do(req, out)
}

// postJSON performs a rate-limited POST with a JSON body and decodes a 200
// response into out.
func (c *Client) postJSON(ctx context.Context, url string, payload, out any) bool {
	body, err := json.Marshal(payload)
	if err != nil {
		c.log.WithError(err).Debug("encoding request body")
		return false
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		c.log.WithError(err).Debug("creating request")
		return false
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) bool {
	if err := c.limiter.Wait(req.Context()); err != nil {
		c.log.WithError(err).Debug("rate limiter wait")
		return false
	}

	req.Header.Set("User-Agent", c.userAgent)
	if c.apiKey != "" {
		req.Header.Set("x-api-key", c.apiKey)
	}

	resp, err := httputil.DoWithRetry(c.httpClient, req, c.policy, c.log)
	if err != nil {
		c.log.WithError(err).Debugf("%s %s", req.Method, req.URL.Path)
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.log.Debugf("%s %s returned HTTP %d", req.Method, req.URL.Path, resp.StatusCode)
		return false
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.log.WithError(err).Debugf("parsing %s response", req.URL.Path)
		return false
	}
	return true
}

// listEnvelope is the upstream's paged list shape: {data, total, offset, next}.
// Entries stay as raw field maps until normalization.
type listEnvelope struct {
	Total  int              `json:"total"`
	Offset int              `json:"offset"`
	Next   *int             `json:"next"`
	Data   []map[string]any `json:"data"`
}

func endpoint(format string, args ...any) string {
	return apiBase + fmt.Sprintf(format, args...)
}
