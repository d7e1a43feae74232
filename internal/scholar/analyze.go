// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scholar

import (
	"context"
	"time"

	"github.com/pdiddy/paper-tools/pkg/types"
)

// recommendationSampleSize caps the recommendations carried in an analysis.
const recommendationSampleSize = 10

// AnalyzeCitations assembles a paper's citation neighborhood: the paper
// itself, the papers citing it, the papers it references, and a sample of
// recommended follow-up reading. It returns nil when the main paper cannot
// be fetched; missing citation or reference lists leave empty sections.
func (c *Client) AnalyzeCitations(ctx context.Context, paperID string) *types.CitationAnalysis {
	c.log.Debugf("starting citation analysis for %s", paperID)

	main := c.GetPaper(ctx, paperID)
	if main == nil {
		return nil
	}

	citations := c.GetCitations(ctx, paperID, 0, 0)
	references := c.GetReferences(ctx, paperID, 0, 0)

	recommendations := c.GetRecommendations(ctx, paperID, defaultSearchLimit)
	if len(recommendations) > recommendationSampleSize {
		recommendations = recommendations[:recommendationSampleSize]
	}

	c.log.Debugf("citation analysis complete: %d citations, %d references",
		len(citations), len(references))

	return &types.CitationAnalysis{
		MainPaper:        *main,
		CitingPapers:     citations,
		ReferencedPapers: references,
		Recommendations:  recommendations,
		TotalCitations:   len(citations),
		TotalReferences:  len(references),
		Timestamp:        time.Now().Format("2006-01-02 15:04:05"),
	}
}
