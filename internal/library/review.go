// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package library

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/pdiddy/paper-tools/pkg/types"
)

// GenerateReview assembles a literature review draft from the notes saved
// under one topic. With no requirements each note contributes its title
// and abstract in order; with requirements the notes are instead grouped
// under each requirement by keyword match against the note content, with
// unmatched notes collected in an "Other" section.
func (l *Library) GenerateReview(topic string, requirements ...string) (string, error) {
	notes, err := l.topicNotes(topic)
	if err != nil {
		return "", err
	}
	if len(notes) == 0 {
		return "", fmt.Errorf("no notes found for topic %q", topic)
	}

	var titles, abstracts, contents []string
	for _, notePath := range notes {
		data, err := os.ReadFile(notePath)
		if err != nil {
			l.log.WithError(err).WithField("path", notePath).Debug("reading note")
			continue
		}
		content := string(data)
		titles = append(titles, noteTitle(content, notePath))
		abstracts = append(abstracts, noteSection(content, "Abstract"))
		contents = append(contents, content)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Literature Review: %s\n\n", topic)
	fmt.Fprintf(&b, "*Generated: %s — %d papers*\n\n", time.Now().Format("2006-01-02"), len(titles))

	if len(requirements) == 0 {
		for i := range titles {
			fmt.Fprintf(&b, "## %d. %s\n\n", i+1, titles[i])
			if abstracts[i] != "" {
				b.WriteString(abstracts[i])
				b.WriteString("\n\n")
			}
		}
		return b.String(), nil
	}

	matched := make([]bool, len(titles))
	for _, req := range requirements {
		fmt.Fprintf(&b, "## %s\n\n", req)
		found := false
		for i := range titles {
			if !matchesKeywords(contents[i], req) {
				continue
			}
			matched[i] = true
			found = true
			fmt.Fprintf(&b, "- **%s**\n", titles[i])
		}
		if found {
			b.WriteString("\n")
		} else {
			b.WriteString("*No matching papers.*\n\n")
		}
	}

	var rest []string
	for i := range titles {
		if !matched[i] {
			rest = append(rest, titles[i])
		}
	}
	if len(rest) > 0 {
		b.WriteString("## Other\n\n")
		for _, title := range rest {
			fmt.Fprintf(&b, "- **%s**\n", title)
		}
		b.WriteString("\n")
	}
	return b.String(), nil
}

// RequirementReview groups papers under free-text requirements by keyword
// match against title and abstract. A paper matching several requirements
// appears under each; with more than one requirement a "Multiple
// Requirements" section lists papers matching two or more of them, and
// unmatched papers land in an "Other" section.
func RequirementReview(papers []types.Paper, requirements []string) string {
	var b strings.Builder
	b.WriteString("# Requirement Review\n\n")
	fmt.Fprintf(&b, "*Generated: %s — %d papers, %d requirements*\n\n",
		time.Now().Format("2006-01-02"), len(papers), len(requirements))

	matchCount := make([]int, len(papers))
	for i, p := range papers {
		for _, req := range requirements {
			if matchesRequirement(p, req) {
				matchCount[i]++
			}
		}
	}

	for _, req := range requirements {
		fmt.Fprintf(&b, "## %s\n\n", req)
		found := false
		for _, p := range papers {
			if !matchesRequirement(p, req) {
				continue
			}
			found = true
			writeReviewItem(&b, p)
		}
		if !found {
			b.WriteString("*No matching papers.*\n\n")
		}
	}

	if len(requirements) > 1 {
		b.WriteString("## Multiple Requirements\n\n")
		found := false
		for i, p := range papers {
			if matchCount[i] >= 2 {
				found = true
				writeReviewItem(&b, p)
			}
		}
		if !found {
			b.WriteString("*No papers match multiple requirements.*\n\n")
		}
	}

	var rest []types.Paper
	for i, p := range papers {
		if matchCount[i] == 0 {
			rest = append(rest, p)
		}
	}
	if len(rest) > 0 {
		b.WriteString("## Other\n\n")
		for _, p := range rest {
			writeReviewItem(&b, p)
		}
	}
	return b.String()
}

// matchesRequirement reports whether any word of the requirement appears
// in the paper's title or abstract, case-insensitive.
func matchesRequirement(p types.Paper, requirement string) bool {
	return matchesKeywords(p.Title+" "+p.Abstract, requirement)
}

// matchesKeywords reports whether any word of the requirement appears in
// text, case-insensitive.
func matchesKeywords(text, requirement string) bool {
	haystack := strings.ToLower(text)
	for _, word := range strings.Fields(strings.ToLower(requirement)) {
		if strings.Contains(haystack, word) {
			return true
		}
	}
	return false
}

func writeReviewItem(b *strings.Builder, p types.Paper) {
	fmt.Fprintf(b, "- **%s**", p.Title)
	if p.Year > 0 {
		fmt.Fprintf(b, " (%d)", p.Year)
	}
	if names := p.AuthorNames(); len(names) > 0 {
		fmt.Fprintf(b, " — %s", strings.Join(names, ", "))
	}
	b.WriteString("\n")
}

// noteSection returns the body of one "## Heading" section of a markdown
// note, trimmed, or "" when the section is absent.
func noteSection(content, heading string) string {
	marker := "## " + heading
	idx := strings.Index(content, marker)
	if idx < 0 {
		return ""
	}
	body := content[idx+len(marker):]
	if end := strings.Index(body, "\n## "); end >= 0 {
		body = body[:end]
	}
	if end := strings.Index(body, "\n---"); end >= 0 {
		body = body[:end]
	}
	return strings.TrimSpace(body)
}
