// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdf

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/paper-tools/pkg/types"
)

func testLog() *logrus.Entry {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return logrus.NewEntry(log)
}

func newTestDownloader(t *testing.T, ts *httptest.Server) *Downloader {
	t.Helper()
	orig := pdfBase
	pdfBase = ts.URL
	t.Cleanup(func() { pdfBase = orig })

	return NewDownloader(types.PDFConfig{DownloadDir: t.TempDir()}, false, testLog())
}

func TestDownload(t *testing.T) {
	const content = "%PDF-1.4 fake"
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/2301.07041", r.URL.Path)
		w.Write([]byte(content))
	}))
	defer ts.Close()
	d := newTestDownloader(t, ts)

	result, err := d.Download(context.Background(), "https://arxiv.org/abs/2301.07041")
	require.NoError(t, err)

	assert.Equal(t, "2301.07041", result.ArxivID)
	assert.Equal(t, int64(len(content)), result.Size)
	data, err := os.ReadFile(result.Path)
	require.NoError(t, err)
	assert.Equal(t, content, string(data))
}

func TestDownloadReusesExistingFile(t *testing.T) {
	var calls int
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte("data"))
	}))
	defer ts.Close()
	d := newTestDownloader(t, ts)

	_, err := d.Download(context.Background(), "2301.07041")
	require.NoError(t, err)
	_, err = d.Download(context.Background(), "2301.07041")
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestDownloadNotFound(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()
	d := newTestDownloader(t, ts)

	_, err := d.Download(context.Background(), "2301.99999")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no PDF found")
}

func TestDownloadRejectsBadIdentifier(t *testing.T) {
	d := NewDownloader(types.PDFConfig{DownloadDir: t.TempDir()}, false, testLog())
	_, err := d.Download(context.Background(), "not an id")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unrecognized")
}

func TestDownloadNoPartialFileOnFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()
	d := newTestDownloader(t, ts)

	_, err := d.Download(context.Background(), "2301.07041")
	require.Error(t, err)
	entries, err := os.ReadDir(d.dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestSanitizeID(t *testing.T) {
	assert.Equal(t, "2301.07041", sanitizeID("2301.07041"))
	assert.Equal(t, "cs-lg_0301001", sanitizeID("cs-lg/0301001"))
}

func TestExtractTextMissingFile(t *testing.T) {
	_, err := ExtractText(context.Background(), filepath.Join(t.TempDir(), "absent.pdf"), PageRange{})
	require.Error(t, err)
}

func TestWriteAndReadMetadata(t *testing.T) {
	dir := t.TempDir()
	result := &DownloadResult{
		ArxivID: "2301.07041",
		PDFURL:  "https://arxiv.org/pdf/2301.07041",
		Path:    filepath.Join(dir, "2301.07041.pdf"),
	}
	paper := &types.ArxivPaper{
		ArxivID: "2301.07041",
		Title:   "A Preprint",
		Authors: []string{"Ada Lovelace"},
	}

	d := NewDownloader(types.PDFConfig{DownloadDir: dir}, false, testLog())
	metaPath, err := d.WriteMetadata(result, paper)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "2301.07041.yaml"), metaPath)

	loaded, err := ReadMetadata(metaPath)
	require.NoError(t, err)
	assert.Equal(t, paper, loaded)
}

func TestSaveText(t *testing.T) {
	pdfPath := filepath.Join(t.TempDir(), "paper.pdf")
	txtPath, err := SaveText(pdfPath, "extracted text")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(filepath.Dir(pdfPath), "paper.txt"), txtPath)
	data, err := os.ReadFile(txtPath)
	require.NoError(t, err)
	assert.Equal(t, "extracted text", string(data))
}
