// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package arxiv

import (
	"io"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLog() *logrus.Entry {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return logrus.NewEntry(log)
}

const sampleFeed = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <entry>
    <id>http://arxiv.org/abs/2301.07041v1</id>
    <title>Attention Is
   All You Need</title>
    <summary>  We propose a new
   architecture.  </summary>
    <published>2023-01-17T12:00:00Z</published>
    <author><name>Ada Lovelace</name></author>
    <author><name>Alan Turing</name></author>
    <link href="http://arxiv.org/abs/2301.07041v1" rel="alternate" type="text/html"/>
    <link href="http://arxiv.org/pdf/2301.07041v1" rel="related" type="application/pdf"/>
    <category term="cs.LG"/>
    <category term="stat.ML"/>
  </entry>
</feed>`

func TestParseEntry(t *testing.T) {
	paper := parseEntry(strings.NewReader(sampleFeed), testLog())
	require.NotNil(t, paper)

	assert.Equal(t, "2301.07041v1", paper.ArxivID)
	assert.Equal(t, "Attention Is All You Need", paper.Title)
	assert.Equal(t, "We propose a new architecture.", paper.Abstract)
	assert.Equal(t, "2023-01-17T12:00:00Z", paper.PublishedDate)
	assert.Equal(t, []string{"Ada Lovelace", "Alan Turing"}, paper.Authors)
	assert.Equal(t, "http://arxiv.org/pdf/2301.07041v1", paper.PDFURL)
	assert.Equal(t, []string{"cs.LG", "stat.ML"}, paper.Categories)
}

func TestParseEntryTitleOnly(t *testing.T) {
	feed := `<feed xmlns="http://www.w3.org/2005/Atom">
  <entry><title>Sparse Feed Entry</title></entry>
</feed>`
	paper := parseEntry(strings.NewReader(feed), testLog())
	require.NotNil(t, paper)

	assert.Equal(t, "Sparse Feed Entry", paper.Title)
	assert.Empty(t, paper.ArxivID)
	assert.Empty(t, paper.Abstract)
	assert.Empty(t, paper.Authors)
	assert.Empty(t, paper.Categories)
	assert.Empty(t, paper.PDFURL)
}

func TestParseEntryUntitled(t *testing.T) {
	feed := `<feed xmlns="http://www.w3.org/2005/Atom">
  <entry>
    <id>http://arxiv.org/abs/2301.07041v1</id>
    <author><name>Ada Lovelace</name></author>
  </entry>
</feed>`
	paper := parseEntry(strings.NewReader(feed), testLog())
	require.NotNil(t, paper)
	assert.Equal(t, "Unknown Title", paper.Title)
}

func TestParseEntryMalformedXML(t *testing.T) {
	paper := parseEntry(strings.NewReader("<feed><entry><title>broken"), testLog())
	assert.Nil(t, paper)
}

func TestParseFeedDropsEmptyEntries(t *testing.T) {
	feed := `<feed xmlns="http://www.w3.org/2005/Atom">
  <entry></entry>
  <entry><title>Kept</title></entry>
</feed>`
	papers := parseFeed(strings.NewReader(feed), testLog())
	require.Len(t, papers, 1)
	assert.Equal(t, "Kept", papers[0].Title)
}

func TestExtractID(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"2301.07041", "2301.07041"},
		{"2301.07041v2", "2301.07041v2"},
		{"arXiv:2301.07041", "2301.07041"},
		{"https://arxiv.org/abs/2301.07041v1", "2301.07041v1"},
		{"https://arxiv.org/pdf/2301.07041", "2301.07041"},
		{"cs-lg/0301001", "cs-lg/0301001"},
		{"not an id", ""},
		{"", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ExtractID(tc.in), "input %q", tc.in)
	}
}
