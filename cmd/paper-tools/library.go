package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/pdiddy/paper-tools/internal/library"
	"github.com/pdiddy/paper-tools/internal/scholar"
)

var libraryCmd = &cobra.Command{
	Use:   "library",
	Short: "Manage the local paper note collection",
	Long: `Library maintains markdown paper notes organized into topic
directories, generates literature review drafts from them, and keeps a
searchable index.`,
}

var librarySaveCmd = &cobra.Command{
	Use:   "save [paper-id] [topic]",
	Short: "Fetch a paper and save a markdown note",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		client := newScholarClient()
		paper := client.GetPaper(cmd.Context(), args[0])
		if paper == nil {
			return fmt.Errorf("paper %q not found", args[0])
		}
		path, err := newLibrary().SavePaper(*paper, args[1])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "note saved:", path)
		return nil
	},
}

var librarySaveArxivCmd = &cobra.Command{
	Use:   "save-arxiv [arxiv-id] [topic]",
	Short: "Fetch a preprint and save a markdown note",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		client := newArxivClient()
		paper := client.GetPaper(cmd.Context(), args[0])
		if paper == nil {
			return fmt.Errorf("preprint %q not found", args[0])
		}
		path, err := newLibrary().SaveArxivPaper(*paper, args[1])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "note saved:", path)
		return nil
	},
}

var libraryTopicsCmd = &cobra.Command{
	Use:   "topics",
	Short: "List topics with note counts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		stats, err := newLibrary().Stats()
		if err != nil {
			return err
		}
		if len(stats.Topics) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "library is empty")
			return nil
		}
		topics := make([]string, 0, len(stats.Topics))
		for topic := range stats.Topics {
			topics = append(topics, topic)
		}
		sort.Strings(topics)
		for _, topic := range topics {
			fmt.Fprintf(cmd.OutOrStdout(), "%-30s %d\n", topic, stats.Topics[topic])
		}
		fmt.Fprintf(cmd.OutOrStdout(), "\n%d notes total\n", stats.TotalNotes)
		return nil
	},
}

var librarySearchCmd = &cobra.Command{
	Use:   "search [keyword]",
	Short: "Search notes by keyword",
	Long: `Search scans the note collection for a keyword. With --indexed the
SQLite index is queried instead of reading every note; run "library
index" first to build it.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lib := newLibrary()

		var matches []library.Match
		var err error
		if indexed, _ := cmd.Flags().GetBool("indexed"); indexed {
			idx, openErr := lib.OpenIndex()
			if openErr != nil {
				return openErr
			}
			defer idx.Close()
			matches, err = idx.Query(cmd.Context(), args[0])
		} else {
			matches, err = lib.SearchByKeyword(args[0])
		}
		if err != nil {
			return err
		}

		if len(matches) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "no matches")
			return nil
		}
		for _, m := range matches {
			fmt.Fprintf(cmd.OutOrStdout(), "%-20s %s\n", m.Topic, m.Title)
		}
		return nil
	},
}

var libraryReviewCmd = &cobra.Command{
	Use:   "review [topic] [requirements...]",
	Short: "Generate a literature review draft for a topic",
	Long: `Review assembles a draft from the notes saved under a topic. Extra
arguments are treated as free-text requirements: the notes are then
grouped under each requirement by keyword match instead of listed in
order.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		review, err := newLibrary().GenerateReview(args[0], args[1:]...)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), review)
		return nil
	},
}

var libraryGroupReviewCmd = &cobra.Command{
	Use:   "group-review [query] [requirements...]",
	Short: "Search papers and group them under requirements",
	Long: `Group-review searches Semantic Scholar for the query and assembles a
review that groups the results under each free-text requirement by
keyword match. Papers matching no requirement land in an Other section.`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		client := newScholarClient()
		result := client.SearchPapers(cmd.Context(), args[0], scholar.SearchOptions{
			Limit: flagInt(cmd, "limit"),
		})
		if result.IsEmpty() {
			return fmt.Errorf("no papers found for %q", args[0])
		}
		fmt.Fprint(cmd.OutOrStdout(), library.RequirementReview(result.Papers, args[1:]))
		return nil
	},
}

var libraryIndexCmd = &cobra.Command{
	Use:   "index",
	Short: "Rebuild the note search index",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		lib := newLibrary()
		idx, err := lib.OpenIndex()
		if err != nil {
			return err
		}
		defer idx.Close()

		summary, err := lib.Rebuild(cmd.Context(), idx)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "indexed: %d, updated: %d, skipped: %d (total: %d)\n",
			summary.Indexed, summary.Updated, summary.Skipped, summary.Total())
		return nil
	},
}

func init() {
	librarySearchCmd.Flags().Bool("indexed", false, "query the SQLite index instead of scanning notes")
	libraryGroupReviewCmd.Flags().Int("limit", 50, "maximum search results to group")

	libraryCmd.AddCommand(librarySaveCmd, librarySaveArxivCmd, libraryTopicsCmd,
		librarySearchCmd, libraryReviewCmd, libraryGroupReviewCmd, libraryIndexCmd)
	rootCmd.AddCommand(libraryCmd)
}
