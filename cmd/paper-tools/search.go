package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/paper-tools/internal/scholar"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search Semantic Scholar for papers and authors",
}

var searchPapersCmd = &cobra.Command{
	Use:   "papers [query]",
	Short: "Full-text paper search with filters",
	Long: `Papers runs a relevance-ranked search over the Semantic Scholar corpus.
Filters narrow by publication year (a single year or a range like
2019-2023), venue, field of study, publication type, and minimum
citation count.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := scholar.SearchOptions{
			Limit:  flagInt(cmd, "limit"),
			Offset: flagInt(cmd, "offset"),
		}
		opts.Year, _ = cmd.Flags().GetString("year")
		opts.Venues = splitFlag(cmd, "venue")
		opts.FieldsOfStudy = splitFlag(cmd, "fields-of-study")
		opts.PublicationTypes = splitFlag(cmd, "publication-types")
		opts.MinCitations = flagInt(cmd, "min-citations")

		client := newScholarClient()
		result := client.SearchPapers(cmd.Context(), args[0], opts)
		if result.IsEmpty() {
			return fmt.Errorf("no papers found for %q", args[0])
		}

		if save, _ := cmd.Flags().GetBool("save-json"); save {
			path, err := newLibrary().SaveJSON(result, "search_"+args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.ErrOrStderr(), "results saved:", path)
		}

		return printResult(cmd, result, func() {
			scholar.FormatSearchTable(result, cmd.OutOrStdout())
		})
	},
}

var searchAuthorsCmd = &cobra.Command{
	Use:   "authors [query]",
	Short: "Search authors by name",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client := newScholarClient()
		authors := client.SearchAuthors(cmd.Context(), args[0],
			flagInt(cmd, "limit"), flagInt(cmd, "offset"))
		if len(authors) == 0 {
			return fmt.Errorf("no authors found for %q", args[0])
		}
		return printResult(cmd, authors, func() {
			scholar.FormatAuthorsTable(authors, cmd.OutOrStdout())
		})
	},
}

func flagInt(cmd *cobra.Command, name string) int {
	v, _ := cmd.Flags().GetInt(name)
	return v
}

func splitFlag(cmd *cobra.Command, name string) []string {
	raw, _ := cmd.Flags().GetString(name)
	if raw == "" {
		return nil
	}
	var values []string
	for _, v := range strings.Split(raw, ",") {
		if v = strings.TrimSpace(v); v != "" {
			values = append(values, v)
		}
	}
	return values
}

func init() {
	searchPapersCmd.Flags().String("year", "", "publication year or range (e.g. 2020 or 2019-2023)")
	searchPapersCmd.Flags().String("venue", "", "venue filter (comma-separated)")
	searchPapersCmd.Flags().String("fields-of-study", "", "field-of-study filter (comma-separated)")
	searchPapersCmd.Flags().String("publication-types", "", "publication type filter (comma-separated)")
	searchPapersCmd.Flags().Int("min-citations", 0, "minimum citation count")
	searchPapersCmd.Flags().Int("limit", 100, "maximum results")
	searchPapersCmd.Flags().Int("offset", 0, "pagination offset")
	searchPapersCmd.Flags().Bool("json", false, "output as JSON")
	searchPapersCmd.Flags().Bool("save-json", false, "save results to the library JSON directory")

	searchAuthorsCmd.Flags().Int("limit", 100, "maximum results")
	searchAuthorsCmd.Flags().Int("offset", 0, "pagination offset")
	searchAuthorsCmd.Flags().Bool("json", false, "output as JSON")

	searchCmd.AddCommand(searchPapersCmd, searchAuthorsCmd)
	rootCmd.AddCommand(searchCmd)
}
