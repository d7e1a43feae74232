// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package arxiv queries the arXiv Atom API and normalizes its feed
// entries into canonical preprint records.
package arxiv

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/pdiddy/paper-tools/internal/httputil"
	"github.com/pdiddy/paper-tools/internal/ratelimit"
	"github.com/pdiddy/paper-tools/pkg/types"
)

// apiBase is a variable so tests can point the client at a local server.
var apiBase = "https://export.arxiv.org/api/query"

const defaultUserAgent = "paper-tools/0.1"

// Sort options for search requests.
const (
	SortByRelevance     = "relevance"
	SortBySubmittedDate = "submittedDate"
	SortByUpdatedDate   = "lastUpdatedDate"

	SortOrderAscending  = "ascending"
	SortOrderDescending = "descending"
)

const defaultMaxResults = 10

// Client is a rate-limited arXiv API client. Lookups report absent
// results as nil or empty values and log the underlying cause; they do
// not surface transport or decoding failures to callers.
type Client struct {
	httpClient *http.Client
	limiter    *ratelimit.Limiter
	policy     httputil.Policy
	userAgent  string
	log        *logrus.Entry
}

// NewClient builds a client from cfg, falling back to package defaults
// for unset fields.
func NewClient(cfg types.ClientConfig, log *logrus.Entry) *Client {
	delay := cfg.RateLimitDelay
	if delay <= 0 {
		delay = ratelimit.DefaultDelay
	}
	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		limiter:    ratelimit.New(delay),
		policy:     httputil.Policy{MaxRetries: cfg.MaxRetries, BackoffFactor: cfg.BackoffFactor},
		userAgent:  userAgent,
		log:        log,
	}
}

// SearchOptions narrow and order a feed query.
type SearchOptions struct {
	SortBy     string
	SortOrder  string
	Start      int
	MaxResults int
}

// GetPaper fetches a single preprint by arXiv ID. Returns nil when the ID
// is unknown or the feed cannot be fetched or parsed.
func (c *Client) GetPaper(ctx context.Context, arxivID string) *types.ArxivPaper {
	id := ExtractID(arxivID)
	if id == "" {
		id = arxivID
	}
	params := url.Values{}
	params.Set("id_list", id)
	params.Set("max_results", "1")

	body, ok := c.fetch(ctx, params)
	if !ok {
		return nil
	}
	defer body.Close()
	return parseEntry(body, c.log)
}

// Search runs a free-text query over all fields.
func (c *Client) Search(ctx context.Context, query string, opts SearchOptions) []types.ArxivPaper {
	return c.searchQuery(ctx, "all:"+quoteTerm(query), opts)
}

// SearchByAuthor finds preprints by author name.
func (c *Client) SearchByAuthor(ctx context.Context, author string, opts SearchOptions) []types.ArxivPaper {
	return c.searchQuery(ctx, "au:"+quoteTerm(author), opts)
}

// SearchByCategory lists recent preprints in a subject category such as
// "cs.LG".
func (c *Client) SearchByCategory(ctx context.Context, category string, opts SearchOptions) []types.ArxivPaper {
	if opts.SortBy == "" {
		opts.SortBy = SortBySubmittedDate
	}
	return c.searchQuery(ctx, "cat:"+category, opts)
}

func (c *Client) searchQuery(ctx context.Context, query string, opts SearchOptions) []types.ArxivPaper {
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}
	sortBy := opts.SortBy
	if sortBy == "" {
		sortBy = SortByRelevance
	}
	sortOrder := opts.SortOrder
	if sortOrder == "" {
		sortOrder = SortOrderDescending
	}

	params := url.Values{}
	params.Set("search_query", query)
	params.Set("start", strconv.Itoa(opts.Start))
	params.Set("max_results", strconv.Itoa(maxResults))
	params.Set("sortBy", sortBy)
	params.Set("sortOrder", sortOrder)

	body, ok := c.fetch(ctx, params)
	if !ok {
		return nil
	}
	defer body.Close()
	return parseFeed(body, c.log)
}

// fetch issues a rate-limited GET and hands back the response body on a
// 200. The caller owns closing the body.
func (c *Client) fetch(ctx context.Context, params url.Values) (io.ReadCloser, bool) {
	if err := c.limiter.Wait(ctx); err != nil {
		c.log.WithError(err).Debug("rate limiter interrupted")
		return nil, false
	}

	reqURL := apiBase + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		c.log.WithError(err).WithField("url", reqURL).Debug("building request")
		return nil, false
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := httputil.DoWithRetry(c.httpClient, req, c.policy, c.log)
	if err != nil {
		c.log.WithError(err).WithField("url", reqURL).Debug("request failed")
		return nil, false
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		c.log.WithFields(logrus.Fields{"url": reqURL, "status": resp.StatusCode}).Debug("unexpected status")
		return nil, false
	}
	return resp.Body, true
}

// quoteTerm wraps multi-word terms in quotes so the feed API matches the
// phrase rather than each word.
func quoteTerm(term string) string {
	term = strings.TrimSpace(term)
	if strings.ContainsRune(term, ' ') {
		return fmt.Sprintf("%q", term)
	}
	return term
}
