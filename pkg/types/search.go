// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// SearchResult is one page of paper search results from the
// literature-metadata API.
type SearchResult struct {
	// Total is the number of papers matching the query across all pages.
	Total int `json:"total" yaml:"total"`

	// Offset is the index of the first paper in this page.
	Offset int `json:"offset" yaml:"offset"`

	// NextOffset is the offset of the following page, nil on the last page.
	NextOffset *int `json:"next_offset" yaml:"next_offset"`

	// Papers holds the normalized records for this page, in rank order.
	Papers []Paper `json:"papers" yaml:"papers"`
}

// IsEmpty reports whether the result carries no papers.
func (r SearchResult) IsEmpty() bool {
	return len(r.Papers) == 0
}

// CitationAnalysis aggregates a paper's citation neighborhood: the papers
// citing it, the papers it references, and recommended follow-up reading.
type CitationAnalysis struct {
	MainPaper        Paper   `json:"main_paper" yaml:"main_paper"`
	CitingPapers     []Paper `json:"citing_papers" yaml:"citing_papers"`
	ReferencedPapers []Paper `json:"referenced_papers" yaml:"referenced_papers"`
	Recommendations  []Paper `json:"recommendations" yaml:"recommendations"`
	TotalCitations   int     `json:"total_citations" yaml:"total_citations"`
	TotalReferences  int     `json:"total_references" yaml:"total_references"`
	Timestamp        string  `json:"analysis_timestamp" yaml:"analysis_timestamp"`
}
