package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/paper-tools/internal/logging"
	"github.com/pdiddy/paper-tools/internal/pdf"
)

var pdfCmd = &cobra.Command{
	Use:   "pdf",
	Short: "Download preprint PDFs and extract their text",
}

var pdfDownloadCmd = &cobra.Command{
	Use:   "download [arxiv-ids...]",
	Short: "Download PDFs by arXiv ID or URL",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d := newDownloader(cmd)
		withMetadata, _ := cmd.Flags().GetBool("metadata")
		var failed int
		for _, id := range args {
			result, err := d.Download(cmd.Context(), id)
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "failed: %s (%v)\n", id, err)
				failed++
				continue
			}
			fmt.Fprintf(cmd.OutOrStdout(), "downloaded: %s (%d bytes)\n", result.Path, result.Size)

			if withMetadata {
				paper := newArxivClient().GetPaper(cmd.Context(), result.ArxivID)
				if paper == nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "  warning: no metadata for %s\n", result.ArxivID)
				}
				metaPath, err := d.WriteMetadata(result, paper)
				if err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "  warning: metadata write failed: %v\n", err)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "metadata:   %s\n", metaPath)
			}
		}
		if failed > 0 {
			return fmt.Errorf("%d download(s) failed", failed)
		}
		return nil
	},
}

var pdfExtractCmd = &cobra.Command{
	Use:   "extract [pdf-path]",
	Short: "Extract text from a local PDF",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := pdf.ExtractText(cmd.Context(), args[0], pageRange(cmd))
		if err != nil {
			return err
		}
		if save, _ := cmd.Flags().GetBool("save"); save {
			path, err := pdf.SaveText(args[0], text)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "text saved:", path)
			return nil
		}
		fmt.Fprint(cmd.OutOrStdout(), text)
		return nil
	},
}

var pdfProcessCmd = &cobra.Command{
	Use:   "process [arxiv-id]",
	Short: "Download a preprint and extract its text in one step",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d := newDownloader(cmd)
		result, text, err := d.Process(cmd.Context(), args[0], pageRange(cmd))
		if err != nil {
			return err
		}
		path, err := pdf.SaveText(result.Path, text)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "downloaded: %s\ntext saved: %s\n", result.Path, path)
		return nil
	},
}

func newDownloader(cmd *cobra.Command) *pdf.Downloader {
	cfg := pdfConfig()
	if dir, _ := cmd.Flags().GetString("dir"); dir != "" {
		cfg.DownloadDir = dir
	}
	noProgress, _ := cmd.Flags().GetBool("no-progress")
	return pdf.NewDownloader(cfg, !noProgress, logging.Component("pdf"))
}

func pageRange(cmd *cobra.Command) pdf.PageRange {
	return pdf.PageRange{
		First: flagInt(cmd, "first-page"),
		Last:  flagInt(cmd, "last-page"),
	}
}

func init() {
	for _, c := range []*cobra.Command{pdfDownloadCmd, pdfProcessCmd} {
		c.Flags().String("dir", "", "download directory (default from config)")
		c.Flags().Bool("no-progress", false, "disable the download progress bar")
	}
	for _, c := range []*cobra.Command{pdfExtractCmd, pdfProcessCmd} {
		c.Flags().Int("first-page", 0, "first page to extract")
		c.Flags().Int("last-page", 0, "last page to extract")
	}
	pdfDownloadCmd.Flags().Bool("metadata", false, "also fetch arXiv metadata into a YAML sidecar")
	pdfExtractCmd.Flags().Bool("save", false, "write text next to the PDF instead of stdout")

	pdfCmd.AddCommand(pdfDownloadCmd, pdfExtractCmd, pdfProcessCmd)
	rootCmd.AddCommand(pdfCmd)
}
