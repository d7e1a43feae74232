// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scholar

import (
	"context"
	"net/url"
	"strconv"

	"github.com/pdiddy/paper-tools/pkg/types"
)

// GetAuthor fetches one author by ID, nil when absent or on failure.
func (c *Client) GetAuthor(ctx context.Context, authorID string, fields ...string) *types.Author {
	c.log.Debugf("fetching author %s", authorID)

	var data map[string]any
	if !c.getJSON(ctx, endpoint("/author/%s?fields=%s", authorID, fieldsParam(fields, AuthorFields)), &data) {
		return nil
	}

	a := authorFromFields(data)
	if a.AuthorID == "" && a.Name == "" {
		c.log.Debugf("author %s normalized to an empty record", authorID)
		return nil
	}
	return &a
}

// GetAuthorPapers fetches one page of an author's papers, empty on failure.
func (c *Client) GetAuthorPapers(ctx context.Context, authorID string, limit, offset int) []types.Paper {
	c.log.Debugf("fetching papers of author %s", authorID)

	if limit <= 0 {
		limit = defaultSearchLimit
	}

	var env listEnvelope
	u := endpoint("/author/%s/papers?fields=%s&limit=%d&offset=%d",
		authorID, fieldsParam(nil, PaperFields), limit, offset)
	if !c.getJSON(ctx, u, &env) {
		return nil
	}

	papers := make([]types.Paper, 0, len(env.Data))
	for _, raw := range env.Data {
		p, err := paperFromFields(raw)
		if err != nil {
			c.log.WithError(err).Debugf("dropping paper of author %s", authorID)
			continue
		}
		papers = append(papers, p)
	}
	return papers
}

// SearchAuthors runs an author name search, empty on failure.
func (c *Client) SearchAuthors(ctx context.Context, query string, limit, offset int) []types.Author {
	c.log.Debugf("searching authors: %s", query)

	if limit <= 0 {
		limit = defaultSearchLimit
	}

	params := url.Values{
		"query":  {query},
		"limit":  {strconv.Itoa(limit)},
		"offset": {strconv.Itoa(offset)},
		"fields": {fieldsParam(nil, AuthorFields)},
	}

	var env listEnvelope
	if !c.getJSON(ctx, apiBase+"/author/search?"+params.Encode(), &env) {
		return nil
	}

	authors := make([]types.Author, 0, len(env.Data))
	for _, raw := range env.Data {
		authors = append(authors, authorFromFields(raw))
	}
	return authors
}
