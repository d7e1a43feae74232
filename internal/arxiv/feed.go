// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package arxiv

import (
	"encoding/xml"
	"io"
	"regexp"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/pdiddy/paper-tools/pkg/types"
)

// unknownTitle is the placeholder for entries that carry no title.
const unknownTitle = "Unknown Title"

// pdfLinkType marks a feed link as a downloadable document.
const pdfLinkType = "application/pdf"

// Atom feed XML structures.
type atomFeed struct {
	Entries []atomEntry `xml:"entry"`
}

type atomEntry struct {
	ID         string         `xml:"id"`
	Title      string         `xml:"title"`
	Summary    string         `xml:"summary"`
	Published  string         `xml:"published"`
	Authors    []atomAuthor   `xml:"author"`
	Links      []atomLink     `xml:"link"`
	Categories []atomCategory `xml:"category"`
}

type atomAuthor struct {
	Name string `xml:"name"`
}

type atomLink struct {
	Href string `xml:"href,attr"`
	Type string `xml:"type,attr"`
}

type atomCategory struct {
	Term string `xml:"term,attr"`
}

// parseFeed decodes an Atom feed and normalizes its entries. A malformed
// document yields an empty result, logged, never an error: upstream feed
// breakage must not be fatal to the caller.
func parseFeed(r io.Reader, log *logrus.Entry) []types.ArxivPaper {
	var feed atomFeed
	if err := xml.NewDecoder(r).Decode(&feed); err != nil {
		log.WithError(err).Debug("parsing feed")
		return nil
	}

	papers := make([]types.ArxivPaper, 0, len(feed.Entries))
	for _, entry := range feed.Entries {
		paper, ok := normalizeEntry(entry)
		if !ok {
			log.Debug("dropping empty feed entry")
			continue
		}
		papers = append(papers, paper)
	}
	return papers
}

// parseEntry decodes a feed expected to hold a single entry. It returns
// nil when the document is malformed or holds no usable entry.
func parseEntry(r io.Reader, log *logrus.Entry) *types.ArxivPaper {
	papers := parseFeed(r, log)
	if len(papers) == 0 {
		return nil
	}
	return &papers[0]
}

// normalizeEntry maps one Atom entry onto the canonical record. Titles and
// abstracts are whitespace-collapsed; a missing title becomes the
// "Unknown Title" placeholder and a missing abstract the empty string. An
// entry with no title, identifier, or authors carries nothing usable and
// is dropped.
func normalizeEntry(entry atomEntry) (types.ArxivPaper, bool) {
	paper := types.ArxivPaper{
		Title:         collapseWhitespace(entry.Title),
		Abstract:      collapseWhitespace(entry.Summary),
		ArxivID:       idFromURL(entry.ID),
		PublishedDate: entry.Published,
		Authors:       []string{},
		Categories:    []string{},
	}

	if paper.Title == "" && paper.ArxivID == "" && len(entry.Authors) == 0 {
		return types.ArxivPaper{}, false
	}
	if paper.Title == "" {
		paper.Title = unknownTitle
	}

	for _, a := range entry.Authors {
		if name := strings.TrimSpace(a.Name); name != "" {
			paper.Authors = append(paper.Authors, name)
		}
	}

	for _, link := range entry.Links {
		if link.Type == pdfLinkType {
			paper.PDFURL = link.Href
			break
		}
	}

	for _, cat := range entry.Categories {
		if cat.Term != "" {
			paper.Categories = append(paper.Categories, cat.Term)
		}
	}

	return paper, true
}

// idFromURL pulls the arXiv ID out of an entry's absolute URL
// (e.g. "http://arxiv.org/abs/2301.07041v1" → "2301.07041v1").
func idFromURL(idURL string) string {
	const prefix = "/abs/"
	idx := strings.Index(idURL, prefix)
	if idx < 0 {
		return ""
	}
	return idURL[idx+len(prefix):]
}

// collapseWhitespace trims s and folds internal runs of whitespace,
// including the feed's hard-wrapped newlines, into single spaces.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// idPattern matches modern ("2301.07041", optionally versioned) and legacy
// ("cs.AI/0301001" style) arXiv identifiers.
var idPattern = regexp.MustCompile(`(\d{4}\.\d{4,5}(?:v\d+)?|[a-z-]+(?:\.[A-Z]{2})?/\d{7}(?:v\d+)?)`)

// ExtractID returns the arXiv ID from an abs/pdf URL or a bare identifier,
// or "" when the input matches neither form.
func ExtractID(urlOrID string) string {
	s := strings.TrimSpace(strings.TrimPrefix(urlOrID, "arXiv:"))

	if strings.Contains(s, "arxiv.org") {
		return idPattern.FindString(s)
	}
	if m := idPattern.FindString(s); m == s {
		return m
	}
	return ""
}
