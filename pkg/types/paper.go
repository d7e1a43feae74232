// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the canonical, source-agnostic records shared by
// the paper-tools clients and the library layer. API clients normalize
// upstream payloads (literature-metadata JSON, preprint Atom XML) into
// these shapes; everything downstream consumes only the canonical form.
package types

// ExternalIDs maps a paper onto identifiers in other repositories.
type ExternalIDs struct {
	// ArXiv is the arXiv identifier (e.g. "2301.07041"), empty if unknown.
	ArXiv string `json:"arxiv,omitempty" yaml:"arxiv,omitempty"`

	// DOI is the Digital Object Identifier, empty if unknown.
	DOI string `json:"doi,omitempty" yaml:"doi,omitempty"`

	// CorpusID is the Semantic Scholar corpus identifier, zero if unknown.
	CorpusID int64 `json:"corpus_id,omitempty" yaml:"corpus_id,omitempty"`
}

// Paper is the canonical record for a paper from the literature-metadata
// API. Identifier is never empty in a successfully normalized record;
// missing optional fields hold their zero values rather than being omitted
// from the record.
type Paper struct {
	// Identifier is the source's primary paper ID.
	Identifier string `json:"identifier" yaml:"identifier"`

	// Title is the paper title as returned by the source.
	Title string `json:"title" yaml:"title"`

	// Abstract is the paper abstract, empty when the source has none.
	Abstract string `json:"abstract" yaml:"abstract"`

	// Authors lists the paper authors in source order.
	Authors []Author `json:"authors" yaml:"authors"`

	// Year is the publication year, zero if unknown.
	Year int `json:"year" yaml:"year"`

	// Venue is the publication venue, empty if unknown.
	Venue string `json:"venue" yaml:"venue"`

	// URL is the source's landing page for the paper.
	URL string `json:"url" yaml:"url"`

	// CitationCount is the number of papers citing this one.
	CitationCount int `json:"citation_count" yaml:"citation_count"`

	// ReferenceCount is the number of papers this one references.
	ReferenceCount int `json:"reference_count" yaml:"reference_count"`

	// InfluentialCitationCount is the source's influential-citation tally.
	InfluentialCitationCount int `json:"influential_citation_count" yaml:"influential_citation_count"`

	// PublicationDate is the source-provided date string, passed through verbatim.
	PublicationDate string `json:"publication_date" yaml:"publication_date"`

	// PublicationTypes lists source publication type tags (e.g. "JournalArticle").
	PublicationTypes []string `json:"publication_types" yaml:"publication_types"`

	// ExternalIDs maps the paper onto other repositories.
	ExternalIDs ExternalIDs `json:"external_ids" yaml:"external_ids"`

	// Extra carries source-specific extension fields (journal, tldr,
	// embedding) opaquely. Consumers must not depend on its shape.
	Extra map[string]any `json:"extra,omitempty" yaml:"extra,omitempty"`
}

// AuthorNames returns the author display names in source order.
func (p Paper) AuthorNames() []string {
	names := make([]string, 0, len(p.Authors))
	for _, a := range p.Authors {
		if a.Name != "" {
			names = append(names, a.Name)
		}
	}
	return names
}

// Author is the canonical record for an author from the literature-metadata API.
type Author struct {
	// AuthorID is the source's primary author ID.
	AuthorID string `json:"author_id" yaml:"author_id"`

	// Name is the author display name.
	Name string `json:"name" yaml:"name"`

	// Aliases lists alternate name spellings.
	Aliases []string `json:"aliases" yaml:"aliases"`

	// Affiliations lists institutional affiliations.
	Affiliations []string `json:"affiliations" yaml:"affiliations"`

	// Homepage is the author's homepage URL, empty if unknown.
	Homepage string `json:"homepage" yaml:"homepage"`

	// PaperCount is the number of papers attributed to the author.
	PaperCount int `json:"paper_count" yaml:"paper_count"`

	// CitationCount is the author's total citation tally.
	CitationCount int `json:"citation_count" yaml:"citation_count"`

	// HIndex is the author's h-index.
	HIndex int `json:"h_index" yaml:"h_index"`
}

// ArxivPaper is the canonical record for a paper from the preprint
// repository's Atom feed.
type ArxivPaper struct {
	// ArxivID is the identifier parsed from the entry URL (e.g. "2301.07041v1").
	ArxivID string `json:"arxiv_id" yaml:"arxiv_id"`

	// Title is the whitespace-collapsed entry title, or "Unknown Title"
	// when the entry carries none.
	Title string `json:"title" yaml:"title"`

	// Authors lists author names in feed order.
	Authors []string `json:"authors" yaml:"authors"`

	// Abstract is the whitespace-collapsed entry summary, empty when missing.
	Abstract string `json:"abstract" yaml:"abstract"`

	// PublishedDate is the feed's published timestamp, passed through verbatim.
	PublishedDate string `json:"published_date" yaml:"published_date"`

	// PDFURL is the first entry link typed as a downloadable PDF.
	PDFURL string `json:"pdf_url" yaml:"pdf_url"`

	// Categories lists the entry's category terms (e.g. "cs.LG").
	Categories []string `json:"categories" yaml:"categories"`
}
