// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scholar

import (
	"errors"

	"github.com/pdiddy/paper-tools/pkg/types"
)

// errMissingIdentifier marks a payload that normalized to an empty paper ID.
var errMissingIdentifier = errors.New("payload has no paper identifier")

// canonical field names assigned by the paper rename table.
const (
	fieldIdentifier               = "identifier"
	fieldTitle                    = "title"
	fieldAbstract                 = "abstract"
	fieldAuthors                  = "authors"
	fieldYear                     = "year"
	fieldVenue                    = "venue"
	fieldURL                      = "url"
	fieldCitationCount            = "citation_count"
	fieldReferenceCount           = "reference_count"
	fieldInfluentialCitationCount = "influential_citation_count"
	fieldExternalIDs              = "external_ids"
	fieldPublicationTypes         = "publication_types"
	fieldPublicationDate          = "publication_date"
	fieldExtra                    = "extra"
)

// paperRenames maps upstream JSON keys to canonical Paper field names.
// Keys absent from the table are dropped during normalization. Keys mapped
// to fieldExtra are passed through opaquely.
var paperRenames = map[string]string{
	"paperId":                  fieldIdentifier,
	"title":                    fieldTitle,
	"abstract":                 fieldAbstract,
	"authors":                  fieldAuthors,
	"year":                     fieldYear,
	"venue":                    fieldVenue,
	"url":                      fieldURL,
	"citationCount":            fieldCitationCount,
	"referenceCount":           fieldReferenceCount,
	"influentialCitationCount": fieldInfluentialCitationCount,
	"externalIds":              fieldExternalIDs,
	"publicationTypes":         fieldPublicationTypes,
	"publicationDate":          fieldPublicationDate,
	"journal":                  fieldExtra,
	"tldr":                     fieldExtra,
	"embedding":                fieldExtra,
}

// paperFromFields normalizes an upstream paper payload into the canonical
// record. Missing numeric fields default to 0 and missing optional fields
// to empty values; a payload without a paper identifier is a normalization
// failure, never an empty-ID record.
func paperFromFields(data map[string]any) (types.Paper, error) {
	p := types.Paper{
		Authors:          []types.Author{},
		PublicationTypes: []string{},
	}

	for key, value := range data {
		canonical, known := paperRenames[key]
		if !known {
			continue
		}
		switch canonical {
		case fieldIdentifier:
			p.Identifier = asString(value)
		case fieldTitle:
			p.Title = asString(value)
		case fieldAbstract:
			p.Abstract = asString(value)
		case fieldAuthors:
			for _, raw := range asSlice(value) {
				if m, ok := raw.(map[string]any); ok {
					p.Authors = append(p.Authors, authorFromFields(m))
				}
			}
		case fieldYear:
			p.Year = asInt(value)
		case fieldVenue:
			p.Venue = asString(value)
		case fieldURL:
			p.URL = asString(value)
		case fieldCitationCount:
			p.CitationCount = asInt(value)
		case fieldReferenceCount:
			p.ReferenceCount = asInt(value)
		case fieldInfluentialCitationCount:
			p.InfluentialCitationCount = asInt(value)
		case fieldExternalIDs:
			p.ExternalIDs = externalIDsFromFields(value)
		case fieldPublicationTypes:
			p.PublicationTypes = asStringSlice(value)
		case fieldPublicationDate:
			p.PublicationDate = asString(value)
		case fieldExtra:
			if value == nil {
				continue
			}
			if p.Extra == nil {
				p.Extra = make(map[string]any)
			}
			p.Extra[key] = value
		}
	}

	if p.Identifier == "" {
		return types.Paper{}, errMissingIdentifier
	}
	return p, nil
}

// authorRenames maps upstream JSON keys to canonical Author field names.
var authorRenames = map[string]string{
	"authorId":      "author_id",
	"name":          "name",
	"aliases":       "aliases",
	"affiliations":  "affiliations",
	"homepage":      "homepage",
	"paperCount":    "paper_count",
	"citationCount": "citation_count",
	"hIndex":        "h_index",
}

// authorFromFields normalizes an upstream author payload.
func authorFromFields(data map[string]any) types.Author {
	a := types.Author{
		Aliases:      []string{},
		Affiliations: []string{},
	}
	for key, value := range data {
		switch authorRenames[key] {
		case "author_id":
			a.AuthorID = asString(value)
		case "name":
			a.Name = asString(value)
		case "aliases":
			a.Aliases = asStringSlice(value)
		case "affiliations":
			a.Affiliations = asStringSlice(value)
		case "homepage":
			a.Homepage = asString(value)
		case "paper_count":
			a.PaperCount = asInt(value)
		case "citation_count":
			a.CitationCount = asInt(value)
		case "h_index":
			a.HIndex = asInt(value)
		}
	}
	return a
}

func externalIDsFromFields(value any) types.ExternalIDs {
	m, ok := value.(map[string]any)
	if !ok {
		return types.ExternalIDs{}
	}
	return types.ExternalIDs{
		ArXiv:    asString(m["ArXiv"]),
		DOI:      asString(m["DOI"]),
		CorpusID: int64(asInt(m["CorpusId"])),
	}
}

// JSON decoding yields strings, float64 numbers, []any, and nil for the
// shapes the API returns; anything else normalizes to the zero value.

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func asInt(v any) int {
	switch n := v.(type) {
	case float64:
		return int(n)
	case int:
		return n
	default:
		return 0
	}
}

func asSlice(v any) []any {
	s, _ := v.([]any)
	return s
}

func asStringSlice(v any) []string {
	raw := asSlice(v)
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
