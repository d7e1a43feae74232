package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/paper-tools/internal/secrets"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show the effective service configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		cfg := toolsConfig()
		scholarCfg := cfg.Scholar
		arxivCfg := cfg.Arxiv
		libCfg := cfg.Library
		dlCfg := cfg.PDF

		keyStatus := "not set"
		if scholarCfg.APIKey != "" {
			keyStatus = "set (" + secrets.SemanticScholarKey + ")"
		}

		fmt.Fprintln(out, "Semantic Scholar")
		fmt.Fprintf(out, "  rate limit delay: %s\n", scholarCfg.RateLimitDelay)
		fmt.Fprintf(out, "  max retries:      %d\n", scholarCfg.MaxRetries)
		fmt.Fprintf(out, "  backoff factor:   %.1f\n", scholarCfg.BackoffFactor)
		fmt.Fprintf(out, "  API key:          %s\n", keyStatus)
		fmt.Fprintln(out, "arXiv")
		fmt.Fprintf(out, "  rate limit delay: %s\n", arxivCfg.RateLimitDelay)
		fmt.Fprintf(out, "  max retries:      %d\n", arxivCfg.MaxRetries)
		fmt.Fprintln(out, "Library")
		fmt.Fprintf(out, "  notes dir: %s\n", libCfg.NotesDir)
		fmt.Fprintf(out, "  JSON dir:  %s\n", libCfg.JSONDir)
		fmt.Fprintln(out, "PDF")
		fmt.Fprintf(out, "  download dir: %s\n", dlCfg.DownloadDir)
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the paper-tools version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "paper-tools", version)
	},
}

func init() {
	rootCmd.AddCommand(infoCmd, versionCmd)
}
