package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/paper-tools/internal/arxiv"
	"github.com/pdiddy/paper-tools/internal/scholar"
	"github.com/pdiddy/paper-tools/pkg/types"
)

var arxivCmd = &cobra.Command{
	Use:   "arxiv",
	Short: "Query the arXiv preprint API",
}

var arxivGetCmd = &cobra.Command{
	Use:   "get [arxiv-id]",
	Short: "Fetch one preprint by ID or URL",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client := newArxivClient()
		paper := client.GetPaper(cmd.Context(), args[0])
		if paper == nil {
			return fmt.Errorf("preprint %q not found", args[0])
		}
		return printResult(cmd, *paper, func() {
			printArxivPapers(cmd, []types.ArxivPaper{*paper})
		})
	},
}

var arxivSearchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search arXiv preprints",
	Long: `Search queries arXiv by free text, or by author or category when the
corresponding flag is given. Exactly one of the query argument, --author,
or --category must be provided.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		author, _ := cmd.Flags().GetString("author")
		category, _ := cmd.Flags().GetString("category")

		opts := arxiv.SearchOptions{
			Start:      flagInt(cmd, "start"),
			MaxResults: flagInt(cmd, "max-results"),
		}
		opts.SortBy, _ = cmd.Flags().GetString("sort-by")
		opts.SortOrder, _ = cmd.Flags().GetString("sort-order")

		client := newArxivClient()
		var papers []types.ArxivPaper
		switch {
		case author != "":
			papers = client.SearchByAuthor(cmd.Context(), author, opts)
		case category != "":
			papers = client.SearchByCategory(cmd.Context(), category, opts)
		case len(args) == 1:
			papers = client.Search(cmd.Context(), args[0], opts)
		default:
			return fmt.Errorf("provide a query argument, --author, or --category")
		}

		if len(papers) == 0 {
			return fmt.Errorf("no preprints found")
		}
		return printResult(cmd, papers, func() {
			printArxivPapers(cmd, papers)
		})
	},
}

func printArxivPapers(cmd *cobra.Command, papers []types.ArxivPaper) {
	out := cmd.OutOrStdout()
	for _, p := range papers {
		fmt.Fprintf(out, "%-14s  %s\n", p.ArxivID, p.Title)
		fmt.Fprintf(out, "%-14s  %s\n", "", scholar.FormatAuthors(p.Authors))
	}
}

func init() {
	arxivGetCmd.Flags().Bool("json", false, "output as JSON")

	arxivSearchCmd.Flags().String("author", "", "search by author name")
	arxivSearchCmd.Flags().String("category", "", "search by subject category (e.g. cs.LG)")
	arxivSearchCmd.Flags().String("sort-by", "", "sort key: relevance, submittedDate, lastUpdatedDate")
	arxivSearchCmd.Flags().String("sort-order", "", "sort order: ascending, descending")
	arxivSearchCmd.Flags().Int("start", 0, "pagination offset")
	arxivSearchCmd.Flags().Int("max-results", 10, "maximum results")
	arxivSearchCmd.Flags().Bool("json", false, "output as JSON")

	arxivCmd.AddCommand(arxivGetCmd, arxivSearchCmd)
	rootCmd.AddCommand(arxivCmd)
}
