// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package library maintains a local paper collection: markdown notes
// organized by topic, JSON snapshots, and a searchable index.
package library

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/pdiddy/paper-tools/pkg/types"
)

const (
	defaultNotesDir   = "md_files"
	defaultJSONDir    = "json_files"
	defaultMaxResults = 20

	// maxTitleLen caps the filename a note title produces.
	maxTitleLen = 100
)

// Library manages the on-disk paper collection.
type Library struct {
	notesDir   string
	jsonDir    string
	maxResults int
	log        *logrus.Entry
}

// New builds a library rooted at cfg's directories, falling back to
// package defaults for unset fields.
func New(cfg types.LibraryConfig, log *logrus.Entry) *Library {
	notesDir := cfg.NotesDir
	if notesDir == "" {
		notesDir = defaultNotesDir
	}
	jsonDir := cfg.JSONDir
	if jsonDir == "" {
		jsonDir = defaultJSONDir
	}
	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}
	return &Library{notesDir: notesDir, jsonDir: jsonDir, maxResults: maxResults, log: log}
}

// SavePaper writes a markdown note for a paper under the topic directory
// and returns the path written. An existing note for the same title is
// overwritten.
func (l *Library) SavePaper(paper types.Paper, topic string) (string, error) {
	if paper.Title == "" {
		return "", fmt.Errorf("paper has no title")
	}
	notePath, err := l.notePath(topic, paper.Title)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(notePath, []byte(paperNote(paper)), 0o644); err != nil {
		return "", fmt.Errorf("writing note: %w", err)
	}
	l.log.WithField("path", notePath).Debug("note saved")
	return notePath, nil
}

// SaveArxivPaper writes a markdown note for a preprint record.
func (l *Library) SaveArxivPaper(paper types.ArxivPaper, topic string) (string, error) {
	if paper.Title == "" {
		return "", fmt.Errorf("paper has no title")
	}
	notePath, err := l.notePath(topic, paper.Title)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(notePath, []byte(arxivNote(paper)), 0o644); err != nil {
		return "", fmt.Errorf("writing note: %w", err)
	}
	l.log.WithField("path", notePath).Debug("note saved")
	return notePath, nil
}

func (l *Library) notePath(topic, title string) (string, error) {
	topicDir := filepath.Join(l.notesDir, sanitizeFilename(topic))
	if err := os.MkdirAll(topicDir, 0o755); err != nil {
		return "", fmt.Errorf("creating topic directory: %w", err)
	}
	return filepath.Join(topicDir, sanitizeFilename(title)+".md"), nil
}

func paperNote(p types.Paper) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", p.Title)

	b.WriteString("## Metadata\n\n")
	fmt.Fprintf(&b, "- **Authors**: %s\n", joinOr(p.AuthorNames(), "Unknown"))
	if p.Year > 0 {
		fmt.Fprintf(&b, "- **Year**: %d\n", p.Year)
	}
	if p.Venue != "" {
		fmt.Fprintf(&b, "- **Venue**: %s\n", p.Venue)
	}
	fmt.Fprintf(&b, "- **Citations**: %d\n", p.CitationCount)
	if p.PublicationDate != "" {
		fmt.Fprintf(&b, "- **Published**: %s\n", p.PublicationDate)
	}

	b.WriteString("\n## Links\n\n")
	fmt.Fprintf(&b, "- **Paper ID**: `%s`\n", p.Identifier)
	if p.URL != "" {
		fmt.Fprintf(&b, "- [Semantic Scholar](%s)\n", p.URL)
	}
	if p.ExternalIDs.ArXiv != "" {
		fmt.Fprintf(&b, "- [arXiv](https://arxiv.org/abs/%s)\n", p.ExternalIDs.ArXiv)
	}
	if p.ExternalIDs.DOI != "" {
		fmt.Fprintf(&b, "- **DOI**: %s\n", p.ExternalIDs.DOI)
	}

	if p.Abstract != "" {
		fmt.Fprintf(&b, "\n## Abstract\n\n%s\n", p.Abstract)
	}

	b.WriteString("\n## Notes\n\n<!-- Add your notes here -->\n")
	fmt.Fprintf(&b, "\n---\n*Saved: %s*\n", time.Now().Format("2006-01-02 15:04:05"))
	return b.String()
}

func arxivNote(p types.ArxivPaper) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", p.Title)

	b.WriteString("## Metadata\n\n")
	fmt.Fprintf(&b, "- **Authors**: %s\n", joinOr(p.Authors, "Unknown"))
	if p.PublishedDate != "" {
		fmt.Fprintf(&b, "- **Published**: %s\n", p.PublishedDate)
	}
	if len(p.Categories) > 0 {
		fmt.Fprintf(&b, "- **Categories**: %s\n", strings.Join(p.Categories, ", "))
	}

	b.WriteString("\n## Links\n\n")
	fmt.Fprintf(&b, "- [arXiv](https://arxiv.org/abs/%s)\n", p.ArxivID)
	if p.PDFURL != "" {
		fmt.Fprintf(&b, "- [PDF](%s)\n", p.PDFURL)
	}

	if p.Abstract != "" {
		fmt.Fprintf(&b, "\n## Abstract\n\n%s\n", p.Abstract)
	}

	b.WriteString("\n## Notes\n\n<!-- Add your notes here -->\n")
	fmt.Fprintf(&b, "\n---\n*Saved: %s*\n", time.Now().Format("2006-01-02 15:04:05"))
	return b.String()
}

func joinOr(items []string, fallback string) string {
	if len(items) == 0 {
		return fallback
	}
	return strings.Join(items, ", ")
}

// sanitizeFilename replaces characters unsafe in filenames and truncates
// overlong names.
func sanitizeFilename(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "untitled"
	}
	replacer := strings.NewReplacer(
		"<", "_", ">", "_", ":", "_", `"`, "_",
		"/", "_", `\`, "_", "|", "_", "?", "_", "*", "_",
	)
	name = replacer.Replace(name)
	if len(name) > maxTitleLen {
		name = name[:maxTitleLen]
	}
	return strings.TrimSpace(name)
}
