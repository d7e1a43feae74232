// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scholar

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/pdiddy/paper-tools/pkg/types"
)

// GetPaper fetches one paper by ID (Semantic Scholar ID, arXiv ID, DOI,
// CORPUS:..., and the other prefixed forms the upstream accepts). It
// returns nil when the paper is absent or the request fails; pass fields
// to override the default PaperFields set.
func (c *Client) GetPaper(ctx context.Context, paperID string, fields ...string) *types.Paper {
	c.log.Debugf("fetching paper %s", paperID)

	var data map[string]any
	if !c.getJSON(ctx, endpoint("/paper/%s?fields=%s", paperID, fieldsParam(fields, PaperFields)), &data) {
		return nil
	}

	p, err := paperFromFields(data)
	if err != nil {
		c.log.WithError(err).Debugf("normalizing paper %s", paperID)
		return nil
	}
	return &p
}

// GetPaperAuthors fetches the authors of a paper, empty on failure.
func (c *Client) GetPaperAuthors(ctx context.Context, paperID string, fields ...string) []types.Author {
	c.log.Debugf("fetching authors of paper %s", paperID)

	var env listEnvelope
	if !c.getJSON(ctx, endpoint("/paper/%s/authors?fields=%s", paperID, fieldsParam(fields, AuthorFields)), &env) {
		return nil
	}

	authors := make([]types.Author, 0, len(env.Data))
	for _, raw := range env.Data {
		authors = append(authors, authorFromFields(raw))
	}
	return authors
}

// GetCitations fetches papers citing paperID. A non-positive limit uses
// the citation page ceiling.
func (c *Client) GetCitations(ctx context.Context, paperID string, limit, offset int) []types.Paper {
	return c.citationList(ctx, paperID, "citations", "citingPaper", limit, offset)
}

// GetReferences fetches papers referenced by paperID.
func (c *Client) GetReferences(ctx context.Context, paperID string, limit, offset int) []types.Paper {
	return c.citationList(ctx, paperID, "references", "citedPaper", limit, offset)
}

// citationList walks one page of the citations or references endpoint.
// Each entry wraps the related paper under envelopeKey.
func (c *Client) citationList(ctx context.Context, paperID, kind, envelopeKey string, limit, offset int) []types.Paper {
	c.log.Debugf("fetching %s of paper %s", kind, paperID)

	if limit <= 0 {
		limit = citationPageLimit
	}

	var env listEnvelope
	u := endpoint("/paper/%s/%s?fields=%s&limit=%d&offset=%d",
		paperID, kind, fieldsParam(nil, CitationFields), limit, offset)
	if !c.getJSON(ctx, u, &env) {
		return nil
	}

	papers := make([]types.Paper, 0, len(env.Data))
	for _, raw := range env.Data {
		inner, ok := raw[envelopeKey].(map[string]any)
		if !ok {
			continue
		}
		p, err := paperFromFields(inner)
		if err != nil {
			c.log.WithError(err).Debugf("dropping %s entry of paper %s", kind, paperID)
			continue
		}
		papers = append(papers, p)
	}
	return papers
}

// SearchOptions holds the optional filters for SearchPapers.
type SearchOptions struct {
	// Year filters by publication year or range (e.g. "2019", "2019-2023").
	Year string

	// Venues restricts results to the named venues.
	Venues []string

	// FieldsOfStudy restricts results to the named fields of study.
	FieldsOfStudy []string

	// PublicationTypes restricts results to the named publication types.
	PublicationTypes []string

	// MinCitations drops papers below the citation threshold when positive.
	MinCitations int

	// Limit caps the page size (default 100). Offset selects the page start.
	Limit  int
	Offset int

	// Fields overrides the default PaperFields request set.
	Fields []string
}

// SearchPapers runs a relevance-ranked paper search with optional filters.
// A failed request yields an empty SearchResult.
func (c *Client) SearchPapers(ctx context.Context, query string, opts SearchOptions) types.SearchResult {
	c.log.Debugf("searching papers: %s", query)

	limit := opts.Limit
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	params := url.Values{
		"query":  {query},
		"limit":  {strconv.Itoa(limit)},
		"offset": {strconv.Itoa(opts.Offset)},
		"fields": {fieldsParam(opts.Fields, PaperFields)},
	}
	if opts.Year != "" {
		params.Set("year", opts.Year)
	}
	if len(opts.Venues) > 0 {
		params.Set("venue", strings.Join(opts.Venues, ","))
	}
	if len(opts.FieldsOfStudy) > 0 {
		params.Set("fieldsOfStudy", strings.Join(opts.FieldsOfStudy, ","))
	}
	if len(opts.PublicationTypes) > 0 {
		params.Set("publicationTypes", strings.Join(opts.PublicationTypes, ","))
	}
	if opts.MinCitations > 0 {
		params.Set("minCitationCount", strconv.Itoa(opts.MinCitations))
	}

	var env listEnvelope
	if !c.getJSON(ctx, apiBase+"/paper/search?"+params.Encode(), &env) {
		return types.SearchResult{Papers: []types.Paper{}}
	}

	result := types.SearchResult{
		Total:      env.Total,
		Offset:     env.Offset,
		NextOffset: env.Next,
		Papers:     make([]types.Paper, 0, len(env.Data)),
	}
	for _, raw := range env.Data {
		p, err := paperFromFields(raw)
		if err != nil {
			c.log.WithError(err).Debug("dropping search entry")
			continue
		}
		result.Papers = append(result.Papers, p)
	}
	return result
}

// batchRequest is the JSON body of the bulk paper endpoint.
type batchRequest struct {
	IDs    []string `json:"ids"`
	Fields []string `json:"fields"`
}

// GetPaperBatch fetches many papers in chunks of at most 500 identifiers
// per request, the upstream batch ceiling. The batch endpoint returns a
// positionally aligned array with null slots for identifiers it cannot
// resolve; null slots are dropped, not reported. A failed chunk is logged
// and skipped while remaining chunks still run.
func (c *Client) GetPaperBatch(ctx context.Context, paperIDs []string, fields ...string) []types.Paper {
	c.log.Debugf("fetching %d papers in bulk", len(paperIDs))

	requested := fields
	if len(requested) == 0 {
		requested = PaperFields
	}

	chunks := ChunkIDs(paperIDs, batchSize)
	var papers []types.Paper
	for i, chunk := range chunks {
		c.log.Debugf("processing chunk %d/%d with %d papers", i+1, len(chunks), len(chunk))

		var data []map[string]any
		payload := batchRequest{IDs: chunk, Fields: requested}
		if !c.postJSON(ctx, apiBase+"/paper/batch", payload, &data) {
			c.log.Debugf("failed to fetch chunk %d/%d", i+1, len(chunks))
			continue
		}

		for _, raw := range data {
			if raw == nil {
				continue
			}
			p, err := paperFromFields(raw)
			if err != nil {
				c.log.WithError(err).Debug("dropping batch entry")
				continue
			}
			papers = append(papers, p)
		}
	}

	c.log.Debugf("fetched %d papers from bulk request", len(papers))
	return papers
}

// recommendationsEnvelope wraps the recommendations endpoint response.
type recommendationsEnvelope struct {
	RecommendedPapers []map[string]any `json:"recommendedPapers"`
}

// GetRecommendations fetches papers related to paperID, empty on failure.
func (c *Client) GetRecommendations(ctx context.Context, paperID string, limit int) []types.Paper {
	c.log.Debugf("fetching recommendations for paper %s", paperID)

	if limit <= 0 {
		limit = defaultSearchLimit
	}

	var env recommendationsEnvelope
	u := fmt.Sprintf("%s/papers/forpaper/%s?fields=%s&limit=%d",
		recommendationsBase, paperID, fieldsParam(nil, PaperFields), limit)
	if !c.getJSON(ctx, u, &env) {
		return nil
	}

	papers := make([]types.Paper, 0, len(env.RecommendedPapers))
	for _, raw := range env.RecommendedPapers {
		p, err := paperFromFields(raw)
		if err != nil {
			c.log.WithError(err).Debug("dropping recommendation entry")
			continue
		}
		papers = append(papers, p)
	}
	return papers
}
