// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package library

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/paper-tools/pkg/types"
)

func testLog() *logrus.Entry {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return logrus.NewEntry(log)
}

func newTestLibrary(t *testing.T) *Library {
	t.Helper()
	root := t.TempDir()
	return New(types.LibraryConfig{
		NotesDir: filepath.Join(root, "notes"),
		JSONDir:  filepath.Join(root, "json"),
	}, testLog())
}

func samplePaper(title string) types.Paper {
	return types.Paper{
		Identifier:    "abc123",
		Title:         title,
		Abstract:      "A study of transformer architectures.",
		Authors:       []types.Author{{Name: "Ada Lovelace"}, {Name: "Alan Turing"}},
		Year:          2023,
		Venue:         "NeurIPS",
		URL:           "https://www.semanticscholar.org/paper/abc123",
		CitationCount: 42,
		ExternalIDs:   types.ExternalIDs{ArXiv: "2301.07041", DOI: "10.1000/xyz"},
	}
}

func TestSavePaperWritesNote(t *testing.T) {
	lib := newTestLibrary(t)

	path, err := lib.SavePaper(samplePaper("Attention Is All You Need"), "transformers")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	note := string(data)

	assert.Contains(t, note, "# Attention Is All You Need")
	assert.Contains(t, note, "Ada Lovelace, Alan Turing")
	assert.Contains(t, note, "- **Year**: 2023")
	assert.Contains(t, note, "- **Citations**: 42")
	assert.Contains(t, note, "https://arxiv.org/abs/2301.07041")
	assert.Contains(t, note, "10.1000/xyz")
	assert.Contains(t, note, "## Abstract")
	assert.Contains(t, note, "## Notes")
	assert.Equal(t, "transformers", filepath.Base(filepath.Dir(path)))
}

func TestSavePaperRequiresTitle(t *testing.T) {
	lib := newTestLibrary(t)
	_, err := lib.SavePaper(types.Paper{Identifier: "abc"}, "misc")
	require.Error(t, err)
}

func TestSaveArxivPaperWritesNote(t *testing.T) {
	lib := newTestLibrary(t)

	path, err := lib.SaveArxivPaper(types.ArxivPaper{
		ArxivID:    "2301.07041v1",
		Title:      "A Preprint",
		Authors:    []string{"Ada Lovelace"},
		Abstract:   "Short abstract.",
		Categories: []string{"cs.LG"},
		PDFURL:     "http://arxiv.org/pdf/2301.07041v1",
	}, "transformers")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# A Preprint")
	assert.Contains(t, string(data), "cs.LG")
	assert.Contains(t, string(data), "http://arxiv.org/pdf/2301.07041v1")
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "a_b_c", sanitizeFilename(`a/b\c`))
	assert.Equal(t, "what_ why_", sanitizeFilename("what? why*"))
	assert.Equal(t, "untitled", sanitizeFilename("   "))
	long := strings.Repeat("x", 150)
	assert.Len(t, sanitizeFilename(long), 100)
}

func TestTopicsAndStats(t *testing.T) {
	lib := newTestLibrary(t)
	_, err := lib.SavePaper(samplePaper("Paper One"), "transformers")
	require.NoError(t, err)
	_, err = lib.SavePaper(samplePaper("Paper Two"), "transformers")
	require.NoError(t, err)
	_, err = lib.SavePaper(samplePaper("Paper Three"), "graphs")
	require.NoError(t, err)

	topics, err := lib.Topics()
	require.NoError(t, err)
	assert.Equal(t, []string{"graphs", "transformers"}, topics)

	stats, err := lib.Stats()
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalNotes)
	assert.Equal(t, 2, stats.Topics["transformers"])
	assert.Equal(t, 1, stats.Topics["graphs"])
}

func TestTopicsEmptyLibrary(t *testing.T) {
	lib := newTestLibrary(t)
	topics, err := lib.Topics()
	require.NoError(t, err)
	assert.Empty(t, topics)
}

func TestSearchByKeyword(t *testing.T) {
	lib := newTestLibrary(t)
	_, err := lib.SavePaper(samplePaper("Attention Is All You Need"), "transformers")
	require.NoError(t, err)
	_, err = lib.SavePaper(types.Paper{
		Identifier: "def456",
		Title:      "Graph Convolutions",
		Abstract:   "Spectral methods on graphs.",
	}, "graphs")
	require.NoError(t, err)

	matches, err := lib.SearchByKeyword("TRANSFORMER")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "transformers", matches[0].Topic)
	assert.Equal(t, "Attention Is All You Need", matches[0].Title)

	matches, err = lib.SearchByKeyword("nonexistent-term")
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestGenerateReview(t *testing.T) {
	lib := newTestLibrary(t)
	_, err := lib.SavePaper(samplePaper("Attention Is All You Need"), "transformers")
	require.NoError(t, err)
	_, err = lib.SavePaper(samplePaper("BERT"), "transformers")
	require.NoError(t, err)

	review, err := lib.GenerateReview("transformers")
	require.NoError(t, err)
	assert.Contains(t, review, "# Literature Review: transformers")
	assert.Contains(t, review, "2 papers")
	assert.Contains(t, review, "Attention Is All You Need")
	assert.Contains(t, review, "A study of transformer architectures.")
}

func TestGenerateReviewGroupedByRequirement(t *testing.T) {
	lib := newTestLibrary(t)
	_, err := lib.SavePaper(types.Paper{
		Identifier: "abc123",
		Title:      "Attention Is All You Need",
		Abstract:   "A study of transformer architectures.",
	}, "ml")
	require.NoError(t, err)
	_, err = lib.SavePaper(types.Paper{
		Identifier: "def456",
		Title:      "Playing Atari",
		Abstract:   "Deep reinforcement learning agents.",
	}, "ml")
	require.NoError(t, err)

	review, err := lib.GenerateReview("ml", "transformer", "reinforcement", "quantum")
	require.NoError(t, err)

	assert.Contains(t, review, "## transformer")
	assert.Contains(t, review, "## reinforcement")
	assert.Contains(t, review, "- **Attention Is All You Need**")
	assert.Contains(t, review, "- **Playing Atari**")
	assert.Contains(t, review, "*No matching papers.*")
	assert.NotContains(t, review, "## Other")

	transformerSection := review[strings.Index(review, "## transformer"):]
	transformerSection = transformerSection[:strings.Index(transformerSection, "## reinforcement")]
	assert.Contains(t, transformerSection, "Attention Is All You Need")
	assert.NotContains(t, transformerSection, "Playing Atari")
}

func TestGenerateReviewEmptyTopic(t *testing.T) {
	lib := newTestLibrary(t)
	_, err := lib.GenerateReview("nothing-here")
	require.Error(t, err)
}

func TestRequirementReview(t *testing.T) {
	papers := []types.Paper{
		{Title: "Transformer Language Models", Abstract: "attention mechanisms", Year: 2023},
		{Title: "Protein Folding", Abstract: "structure prediction"},
	}
	review := RequirementReview(papers, []string{"attention", "reinforcement"})

	assert.Contains(t, review, "## attention")
	assert.Contains(t, review, "Transformer Language Models")
	assert.Contains(t, review, "## reinforcement")
	assert.Contains(t, review, "*No matching papers.*")
	assert.Contains(t, review, "## Other")
	assert.Contains(t, review, "Protein Folding")
	assert.Contains(t, review, "*No papers match multiple requirements.*")
}

func TestRequirementReviewIntersection(t *testing.T) {
	papers := []types.Paper{
		{Title: "Transformer Language Models", Abstract: "attention mechanisms", Year: 2023},
		{Title: "Protein Folding", Abstract: "structure prediction"},
	}
	review := RequirementReview(papers, []string{"attention", "transformer"})

	section := review[strings.Index(review, "## Multiple Requirements"):]
	if end := strings.Index(section[1:], "\n## "); end >= 0 {
		section = section[:end+1]
	}
	assert.Contains(t, section, "Transformer Language Models")
	assert.NotContains(t, section, "Protein Folding")

	// A single requirement never produces an intersection section.
	review = RequirementReview(papers, []string{"attention"})
	assert.NotContains(t, review, "## Multiple Requirements")
}

func TestIndexRebuildAndQuery(t *testing.T) {
	lib := newTestLibrary(t)
	_, err := lib.SavePaper(samplePaper("Attention Is All You Need"), "transformers")
	require.NoError(t, err)

	idx, err := lib.OpenIndex()
	require.NoError(t, err)
	defer idx.Close()

	ctx := context.Background()
	summary, err := lib.Rebuild(ctx, idx)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Indexed)

	// A second rebuild skips the unchanged note.
	summary, err = lib.Rebuild(ctx, idx)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Skipped)
	assert.Zero(t, summary.Indexed)

	matches, err := idx.Query(ctx, "attention")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "Attention Is All You Need", matches[0].Title)

	matches, err = idx.Query(ctx, "no-such-keyword")
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestIndexDropsDeletedNotes(t *testing.T) {
	lib := newTestLibrary(t)
	path, err := lib.SavePaper(samplePaper("Ephemeral"), "misc")
	require.NoError(t, err)

	idx, err := lib.OpenIndex()
	require.NoError(t, err)
	defer idx.Close()

	ctx := context.Background()
	_, err = lib.Rebuild(ctx, idx)
	require.NoError(t, err)

	require.NoError(t, os.Remove(path))
	_, err = lib.Rebuild(ctx, idx)
	require.NoError(t, err)

	matches, err := idx.Query(ctx, "ephemeral")
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestSaveJSON(t *testing.T) {
	lib := newTestLibrary(t)
	path, err := lib.SaveJSON(map[string]int{"total": 3}, "search results")
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(path, "_search results.json"))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"total": 3`)
}
