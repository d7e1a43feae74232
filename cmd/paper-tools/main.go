// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the paper-tools CLI: rate-limited
// access to the Semantic Scholar and arXiv APIs, PDF handling, and a
// local paper library.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/paper-tools/internal/arxiv"
	"github.com/pdiddy/paper-tools/internal/library"
	"github.com/pdiddy/paper-tools/internal/logging"
	"github.com/pdiddy/paper-tools/internal/scholar"
	"github.com/pdiddy/paper-tools/internal/secrets"
	"github.com/pdiddy/paper-tools/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// secretDefault returns the secret value for key if it exists, or fallback otherwise.
func secretDefault(key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	if v, ok := loadedSecrets[key]; ok {
		return v
	}
	return ""
}

// rootCmd is the base command for the paper-tools CLI.
var rootCmd = &cobra.Command{
	Use:   "paper-tools",
	Short: "Academic paper research from the command line",
	Long: `paper-tools queries the Semantic Scholar and arXiv APIs with built-in
rate limiting and retry, downloads and extracts PDFs, and maintains a
local library of markdown paper notes organized by topic.

Each concern is a subcommand: paper, author, search, arxiv, pdf, and
library.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		debug, _ := cmd.Flags().GetBool("debug")
		logging.Init(debug)

		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./paper-tools.yaml or ~/.config/paper-tools/config.yaml)")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("paper-tools")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "paper-tools"))
		}
	}

	viper.SetEnvPrefix("PAPER_TOOLS")
	viper.AutomaticEnv()

	viper.SetDefault("scholar.timeout", 30*time.Second)
	viper.SetDefault("scholar.rate_limit_delay", time.Second)
	viper.SetDefault("scholar.max_retries", 3)
	viper.SetDefault("scholar.backoff_factor", 2.0)
	viper.SetDefault("arxiv.timeout", 30*time.Second)
	viper.SetDefault("arxiv.rate_limit_delay", time.Second)
	viper.SetDefault("arxiv.max_retries", 3)
	viper.SetDefault("arxiv.backoff_factor", 2.0)
	viper.SetDefault("library.notes_dir", "md_files")
	viper.SetDefault("library.json_dir", "json_files")
	viper.SetDefault("library.max_results", 20)
	viper.SetDefault("pdf.timeout", 60*time.Second)
	viper.SetDefault("pdf.download_dir", "downloads")

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func scholarConfig() types.ClientConfig {
	return types.ClientConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   viper.GetDuration("scholar.timeout"),
			UserAgent: viper.GetString("scholar.user_agent"),
		},
		RateLimitDelay: viper.GetDuration("scholar.rate_limit_delay"),
		MaxRetries:     viper.GetInt("scholar.max_retries"),
		BackoffFactor:  viper.GetFloat64("scholar.backoff_factor"),
		APIKey:         secretDefault(secrets.SemanticScholarKey, viper.GetString("scholar.api_key")),
	}
}

func arxivConfig() types.ClientConfig {
	return types.ClientConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   viper.GetDuration("arxiv.timeout"),
			UserAgent: viper.GetString("arxiv.user_agent"),
		},
		RateLimitDelay: viper.GetDuration("arxiv.rate_limit_delay"),
		MaxRetries:     viper.GetInt("arxiv.max_retries"),
		BackoffFactor:  viper.GetFloat64("arxiv.backoff_factor"),
	}
}

func libraryConfig() types.LibraryConfig {
	return types.LibraryConfig{
		NotesDir:   viper.GetString("library.notes_dir"),
		JSONDir:    viper.GetString("library.json_dir"),
		MaxResults: viper.GetInt("library.max_results"),
	}
}

func pdfConfig() types.PDFConfig {
	return types.PDFConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   viper.GetDuration("pdf.timeout"),
			UserAgent: viper.GetString("pdf.user_agent"),
		},
		DownloadDir: viper.GetString("pdf.download_dir"),
	}
}

// toolsConfig assembles the full effective configuration of every service.
func toolsConfig() types.ToolsConfig {
	return types.ToolsConfig{
		Scholar: scholarConfig(),
		Arxiv:   arxivConfig(),
		Library: libraryConfig(),
		PDF:     pdfConfig(),
	}
}

func newScholarClient() *scholar.Client {
	return scholar.NewClient(scholarConfig(), logging.Component("scholar"))
}

func newArxivClient() *arxiv.Client {
	return arxiv.NewClient(arxivConfig(), logging.Component("arxiv"))
}

func newLibrary() *library.Library {
	return library.New(libraryConfig(), logging.Component("library"))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
