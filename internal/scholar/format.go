// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scholar

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/paper-tools/pkg/types"
)

// FormatPapersTable writes papers as a human-readable table to w.
func FormatPapersTable(papers []types.Paper, w io.Writer) {
	if len(papers) == 0 {
		fmt.Fprintln(w, "No papers found.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-60s  %-24s  %-4s  %-6s  %s\n",
		"#", "Title", "Authors", "Year", "Cites", "Venue")
	fmt.Fprintln(w, strings.Repeat("-", 112))

	for i, p := range papers {
		title := truncate(p.Title, 60)
		year := ""
		if p.Year > 0 {
			year = fmt.Sprintf("%d", p.Year)
		}
		fmt.Fprintf(w, "%-4d  %-60s  %-24s  %-4s  %-6d  %s\n",
			i+1, title, truncate(FormatAuthors(p.AuthorNames()), 24), year, p.CitationCount, truncate(p.Venue, 30))
	}
	fmt.Fprintf(w, "\n%d papers\n", len(papers))
}

// FormatSearchTable writes one page of search results, with paging totals.
func FormatSearchTable(result types.SearchResult, w io.Writer) {
	FormatPapersTable(result.Papers, w)
	if result.Total > len(result.Papers) {
		fmt.Fprintf(w, "(showing offset %d of %d total matches", result.Offset, result.Total)
		if result.NextOffset != nil {
			fmt.Fprintf(w, ", next offset %d", *result.NextOffset)
		}
		fmt.Fprintln(w, ")")
	}
}

// FormatAuthorsTable writes authors as a human-readable table to w.
func FormatAuthorsTable(authors []types.Author, w io.Writer) {
	if len(authors) == 0 {
		fmt.Fprintln(w, "No authors found.")
		return
	}

	fmt.Fprintf(w, "%-12s  %-32s  %-7s  %-7s  %s\n",
		"ID", "Name", "Papers", "Cites", "h-index")
	fmt.Fprintln(w, strings.Repeat("-", 72))

	for _, a := range authors {
		fmt.Fprintf(w, "%-12s  %-32s  %-7d  %-7d  %d\n",
			a.AuthorID, truncate(a.Name, 32), a.PaperCount, a.CitationCount, a.HIndex)
	}
	fmt.Fprintf(w, "\n%d authors\n", len(authors))
}

// FormatJSON writes v as indented JSON to w.
func FormatJSON(v any, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// FormatAuthors joins up to three author names, appending "et al." beyond.
func FormatAuthors(names []string) string {
	if len(names) == 0 {
		return "Unknown"
	}
	if len(names) <= 3 {
		return strings.Join(names, ", ")
	}
	return strings.Join(names[:3], ", ") + ", et al."
}

// truncate shortens s to at most max characters, slicing on rune
// boundaries so multi-byte titles stay valid UTF-8.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
