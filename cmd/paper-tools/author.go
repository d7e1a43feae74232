package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/paper-tools/internal/scholar"
	"github.com/pdiddy/paper-tools/pkg/types"
)

var authorCmd = &cobra.Command{
	Use:   "author",
	Short: "Look up authors on Semantic Scholar",
}

var authorGetCmd = &cobra.Command{
	Use:   "get [author-id]",
	Short: "Fetch one author's profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client := newScholarClient()
		author := client.GetAuthor(cmd.Context(), args[0])
		if author == nil {
			return fmt.Errorf("author %q not found", args[0])
		}
		return printResult(cmd, *author, func() {
			scholar.FormatAuthorsTable([]types.Author{*author}, cmd.OutOrStdout())
		})
	},
}

var authorPapersCmd = &cobra.Command{
	Use:   "papers [author-id]",
	Short: "List an author's papers",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client := newScholarClient()
		papers := client.GetAuthorPapers(cmd.Context(), args[0],
			flagInt(cmd, "limit"), flagInt(cmd, "offset"))
		if len(papers) == 0 {
			return fmt.Errorf("no papers found for author %q", args[0])
		}
		return printResult(cmd, papers, func() {
			scholar.FormatPapersTable(papers, cmd.OutOrStdout())
		})
	},
}

func init() {
	authorGetCmd.Flags().Bool("json", false, "output as JSON")
	authorPapersCmd.Flags().Bool("json", false, "output as JSON")
	authorPapersCmd.Flags().Int("limit", 100, "maximum results")
	authorPapersCmd.Flags().Int("offset", 0, "pagination offset")

	authorCmd.AddCommand(authorGetCmd, authorPapersCmd)
	rootCmd.AddCommand(authorCmd)
}
