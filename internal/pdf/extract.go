// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdf

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
)

// extractorBin is the external text extractor; a variable so tests can
// substitute a stub.
var extractorBin = "pdftotext"

// PageRange limits extraction to a span of pages. The zero value means
// the whole document.
type PageRange struct {
	First int
	Last  int
}

// ExtractText runs the external extractor over a PDF and returns its
// plain text.
func ExtractText(ctx context.Context, pdfPath string, pages PageRange) (string, error) {
	if _, err := os.Stat(pdfPath); err != nil {
		return "", fmt.Errorf("reading %s: %w", pdfPath, err)
	}
	if _, err := exec.LookPath(extractorBin); err != nil {
		return "", fmt.Errorf("%s not installed: %w", extractorBin, err)
	}

	args := []string{"-layout"}
	if pages.First > 0 {
		args = append(args, "-f", strconv.Itoa(pages.First))
	}
	if pages.Last > 0 {
		args = append(args, "-l", strconv.Itoa(pages.Last))
	}
	args = append(args, pdfPath, "-")

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, extractorBin, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("%s %s: %w (%s)", extractorBin, pdfPath, err, strings.TrimSpace(stderr.String()))
	}
	return stdout.String(), nil
}

// SaveText writes extracted text next to the PDF with a .txt extension
// and returns the path written.
func SaveText(pdfPath, text string) (string, error) {
	txtPath := strings.TrimSuffix(pdfPath, ".pdf") + ".txt"
	if err := os.WriteFile(txtPath, []byte(text), 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", txtPath, err)
	}
	return txtPath, nil
}

// Process downloads a preprint PDF and extracts its text in one step.
func (d *Downloader) Process(ctx context.Context, urlOrID string, pages PageRange) (*DownloadResult, string, error) {
	result, err := d.Download(ctx, urlOrID)
	if err != nil {
		return nil, "", err
	}
	text, err := ExtractText(ctx, result.Path, pages)
	if err != nil {
		return result, "", err
	}
	return result, text, nil
}
