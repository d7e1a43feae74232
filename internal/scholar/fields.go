// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scholar

import "strings"

// Default field lists requested from the API, comma-joined into the
// fields query parameter. Callers may pass their own subset.
var (
	// PaperFields is the default field set for paper endpoints.
	PaperFields = []string{
		"paperId", "title", "abstract", "authors", "year", "citationCount",
		"referenceCount", "influentialCitationCount", "venue", "url",
		"externalIds", "publicationTypes", "publicationDate", "journal",
		"tldr", "embedding",
	}

	// AuthorFields is the default field set for author endpoints.
	AuthorFields = []string{
		"authorId", "name", "aliases", "affiliations", "homepage",
		"paperCount", "citationCount", "hIndex",
	}

	// CitationFields is the smaller field set used when walking citation
	// and reference lists.
	CitationFields = []string{
		"paperId", "title", "abstract", "authors", "year", "citationCount",
		"venue", "url", "externalIds",
	}
)

// batchSize is the upstream ceiling on identifiers per bulk request.
const batchSize = 500

// defaultSearchLimit caps search result pages when the caller gives no limit.
const defaultSearchLimit = 100

// citationPageLimit is the page size for citation and reference listings.
const citationPageLimit = 1000

// fieldsParam joins a field list into the API's comma-separated form,
// falling back to def when fields is empty.
func fieldsParam(fields, def []string) string {
	if len(fields) == 0 {
		fields = def
	}
	return strings.Join(fields, ",")
}

// ChunkIDs splits ids into consecutive chunks of at most size elements.
// The final chunk holds the remainder.
func ChunkIDs(ids []string, size int) [][]string {
	if size <= 0 || len(ids) == 0 {
		return nil
	}
	chunks := make([][]string, 0, (len(ids)+size-1)/size)
	for start := 0; start < len(ids); start += size {
		end := start + size
		if end > len(ids) {
			end = len(ids)
		}
		chunks = append(chunks, ids[start:end])
	}
	return chunks
}
