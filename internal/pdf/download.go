// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pdf downloads preprint PDFs and extracts their text.
package pdf

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/schollz/progressbar/v3"
	"github.com/sirupsen/logrus"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/paper-tools/internal/arxiv"
	"github.com/pdiddy/paper-tools/pkg/types"
)

// pdfBase is a variable so tests can point downloads at a local server.
var pdfBase = "https://arxiv.org/pdf"

const (
	defaultDownloadDir = "downloads"
	defaultUserAgent   = "paper-tools/0.1"
)

// DownloadResult describes a completed download.
type DownloadResult struct {
	ArxivID string
	PDFURL  string
	Path    string
	Size    int64
}

// Downloader fetches preprint PDFs into a local directory.
type Downloader struct {
	httpClient *http.Client
	dir        string
	userAgent  string
	progress   bool
	log        *logrus.Entry
}

// NewDownloader builds a downloader from cfg. When progress is true a
// byte-count progress bar is drawn on stderr during downloads.
func NewDownloader(cfg types.PDFConfig, progress bool, log *logrus.Entry) *Downloader {
	dir := cfg.DownloadDir
	if dir == "" {
		dir = defaultDownloadDir
	}
	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	return &Downloader{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		dir:        dir,
		userAgent:  userAgent,
		progress:   progress,
		log:        log,
	}
}

// Download fetches the PDF for an arXiv ID or abs/pdf URL. An existing
// file is reused without a network request.
func (d *Downloader) Download(ctx context.Context, urlOrID string) (*DownloadResult, error) {
	id := arxiv.ExtractID(urlOrID)
	if id == "" {
		return nil, fmt.Errorf("unrecognized arXiv identifier: %q", urlOrID)
	}

	pdfURL := fmt.Sprintf("%s/%s", pdfBase, id)
	destPath := filepath.Join(d.dir, sanitizeID(id)+".pdf")

	if info, err := os.Stat(destPath); err == nil {
		d.log.WithField("path", destPath).Debug("already downloaded")
		return &DownloadResult{ArxivID: id, PDFURL: pdfURL, Path: destPath, Size: info.Size()}, nil
	}

	if err := os.MkdirAll(d.dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating download directory: %w", err)
	}

	size, err := d.fetchFile(ctx, pdfURL, destPath)
	if err != nil {
		return nil, err
	}
	return &DownloadResult{ArxivID: id, PDFURL: pdfURL, Path: destPath, Size: size}, nil
}

// fetchFile streams url to destPath using a temporary file so a partial
// download never lands under the final name.
func (d *Downloader) fetchFile(ctx context.Context, url, destPath string) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", d.userAgent)
	req.Header.Set("Accept", "application/pdf")

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("HTTP request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return 0, fmt.Errorf("no PDF found at %s", url)
	}
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("HTTP %d from %s", resp.StatusCode, url)
	}

	tmpFile, err := os.CreateTemp(filepath.Dir(destPath), ".download-*.tmp")
	if err != nil {
		return 0, fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	var dst io.Writer = tmpFile
	if d.progress {
		bar := progressbar.DefaultBytes(resp.ContentLength, filepath.Base(destPath))
		dst = io.MultiWriter(tmpFile, bar)
	}

	size, copyErr := io.Copy(dst, resp.Body)
	closeErr := tmpFile.Close()
	if copyErr != nil {
		os.Remove(tmpPath)
		return 0, fmt.Errorf("writing download: %w", copyErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return 0, fmt.Errorf("closing temp file: %w", closeErr)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		os.Remove(tmpPath)
		return 0, fmt.Errorf("renaming temp file: %w", err)
	}
	return size, nil
}

// WriteMetadata writes a YAML metadata record next to the downloaded
// PDF and returns the path written.
func (d *Downloader) WriteMetadata(result *DownloadResult, paper *types.ArxivPaper) (string, error) {
	record := metadataRecord{
		ArxivID:    result.ArxivID,
		PDFURL:     result.PDFURL,
		PDFPath:    result.Path,
		ArxivPaper: paper,
	}
	data, err := yaml.Marshal(record)
	if err != nil {
		return "", fmt.Errorf("marshaling metadata: %w", err)
	}

	metaPath := strings.TrimSuffix(result.Path, ".pdf") + ".yaml"
	if err := os.WriteFile(metaPath, data, 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", metaPath, err)
	}
	return metaPath, nil
}

// ReadMetadata loads a metadata record written by WriteMetadata.
func ReadMetadata(metaPath string) (*types.ArxivPaper, error) {
	data, err := os.ReadFile(metaPath)
	if err != nil {
		return nil, err
	}
	var record metadataRecord
	if err := yaml.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", metaPath, err)
	}
	return record.ArxivPaper, nil
}

type metadataRecord struct {
	ArxivID    string            `yaml:"arxiv_id"`
	PDFURL     string            `yaml:"pdf_url"`
	PDFPath    string            `yaml:"pdf_path"`
	ArxivPaper *types.ArxivPaper `yaml:"paper,omitempty"`
}

// sanitizeID makes an arXiv ID safe as a filename; legacy IDs contain a
// slash.
func sanitizeID(id string) string {
	return strings.ReplaceAll(id, "/", "_")
}
