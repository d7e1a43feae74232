package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/paper-tools/internal/scholar"
	"github.com/pdiddy/paper-tools/pkg/types"
)

var paperCmd = &cobra.Command{
	Use:   "paper",
	Short: "Look up papers on Semantic Scholar",
	Long: `Paper retrieves individual papers and their graph neighborhood from the
Semantic Scholar API: metadata, authors, citations, references, and
recommendations. Identifiers may be Semantic Scholar IDs, DOI:..., or
ARXIV:... forms.`,
}

var paperGetCmd = &cobra.Command{
	Use:   "get [paper-id]",
	Short: "Fetch one paper's metadata",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client := newScholarClient()
		paper := client.GetPaper(cmd.Context(), args[0], fieldsFlag(cmd)...)
		if paper == nil {
			return fmt.Errorf("paper %q not found", args[0])
		}
		return printResult(cmd, *paper, func() {
			scholar.FormatPapersTable([]types.Paper{*paper}, cmd.OutOrStdout())
		})
	},
}

var paperAuthorsCmd = &cobra.Command{
	Use:   "authors [paper-id]",
	Short: "List a paper's authors",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client := newScholarClient()
		authors := client.GetPaperAuthors(cmd.Context(), args[0])
		if len(authors) == 0 {
			return fmt.Errorf("no authors found for %q", args[0])
		}
		return printResult(cmd, authors, func() {
			scholar.FormatAuthorsTable(authors, cmd.OutOrStdout())
		})
	},
}

var paperCitationsCmd = &cobra.Command{
	Use:   "citations [paper-id]",
	Short: "List papers citing a paper",
	Args:  cobra.ExactArgs(1),
	RunE:  runCitationList((*scholar.Client).GetCitations),
}

var paperReferencesCmd = &cobra.Command{
	Use:   "references [paper-id]",
	Short: "List papers a paper cites",
	Args:  cobra.ExactArgs(1),
	RunE:  runCitationList((*scholar.Client).GetReferences),
}

var paperRecommendCmd = &cobra.Command{
	Use:   "recommend [paper-id]",
	Short: "Recommend related papers",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		client := newScholarClient()
		papers := client.GetRecommendations(cmd.Context(), args[0], limit)
		if len(papers) == 0 {
			return fmt.Errorf("no recommendations for %q", args[0])
		}
		return printResult(cmd, papers, func() {
			scholar.FormatPapersTable(papers, cmd.OutOrStdout())
		})
	},
}

var paperBatchCmd = &cobra.Command{
	Use:   "batch [paper-ids...]",
	Short: "Fetch many papers in one call",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client := newScholarClient()
		papers := client.GetPaperBatch(cmd.Context(), args, fieldsFlag(cmd)...)
		fmt.Fprintf(cmd.ErrOrStderr(), "resolved %d of %d identifiers\n", len(papers), len(args))
		return printResult(cmd, papers, func() {
			scholar.FormatPapersTable(papers, cmd.OutOrStdout())
		})
	},
}

var paperAnalyzeCmd = &cobra.Command{
	Use:   "analyze [paper-id]",
	Short: "Analyze a paper's citation neighborhood",
	Long: `Analyze gathers a paper's citations, references, and recommendations in
one pass and reports the totals. With --save the full analysis is written
to the library's JSON directory.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client := newScholarClient()
		analysis := client.AnalyzeCitations(cmd.Context(), args[0])
		if analysis == nil {
			return fmt.Errorf("paper %q not found", args[0])
		}

		if save, _ := cmd.Flags().GetBool("save"); save {
			path, err := newLibrary().SaveJSON(analysis, "analysis_"+args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "analysis saved:", path)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Paper: %s\n", analysis.MainPaper.Title)
		fmt.Fprintf(out, "Citations: %d, references: %d, recommendations: %d\n",
			analysis.TotalCitations, analysis.TotalReferences, len(analysis.Recommendations))
		return nil
	},
}

// runCitationList builds a RunE for the citations and references
// commands, which differ only in the client method they call.
func runCitationList(fetch func(*scholar.Client, context.Context, string, int, int) []types.Paper) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		offset, _ := cmd.Flags().GetInt("offset")
		client := newScholarClient()
		papers := fetch(client, cmd.Context(), args[0], limit, offset)
		if len(papers) == 0 {
			return fmt.Errorf("no results for %q", args[0])
		}
		return printResult(cmd, papers, func() {
			scholar.FormatPapersTable(papers, cmd.OutOrStdout())
		})
	}
}

// fieldsFlag parses the --fields flag into a slice, empty meaning the
// API defaults.
func fieldsFlag(cmd *cobra.Command) []string {
	raw, _ := cmd.Flags().GetString("fields")
	if raw == "" {
		return nil
	}
	var fields []string
	for _, f := range strings.Split(raw, ",") {
		if f = strings.TrimSpace(f); f != "" {
			fields = append(fields, f)
		}
	}
	return fields
}

// printResult writes v as JSON when --json is set, or calls table
// otherwise.
func printResult(cmd *cobra.Command, v any, table func()) error {
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		return scholar.FormatJSON(v, cmd.OutOrStdout())
	}
	table()
	return nil
}

func init() {
	for _, c := range []*cobra.Command{
		paperGetCmd, paperAuthorsCmd, paperCitationsCmd, paperReferencesCmd,
		paperRecommendCmd, paperBatchCmd,
	} {
		c.Flags().Bool("json", false, "output as JSON")
	}
	paperGetCmd.Flags().String("fields", "", "comma-separated fields to request")
	paperBatchCmd.Flags().String("fields", "", "comma-separated fields to request")
	paperCitationsCmd.Flags().Int("limit", 100, "maximum results")
	paperCitationsCmd.Flags().Int("offset", 0, "pagination offset")
	paperReferencesCmd.Flags().Int("limit", 100, "maximum results")
	paperReferencesCmd.Flags().Int("offset", 0, "pagination offset")
	paperRecommendCmd.Flags().Int("limit", 10, "maximum results")
	paperAnalyzeCmd.Flags().Bool("save", false, "save the analysis to the library JSON directory")

	paperCmd.AddCommand(paperGetCmd, paperAuthorsCmd, paperCitationsCmd,
		paperReferencesCmd, paperRecommendCmd, paperBatchCmd, paperAnalyzeCmd)
	rootCmd.AddCommand(paperCmd)
}
