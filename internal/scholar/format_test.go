// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scholar

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "exactly-ten", truncate("exactly-ten", 11))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijk", 10))
}

func TestTruncateKeepsValidUTF8(t *testing.T) {
	title := strings.Repeat("宇", 40)
	got := truncate(title, 10)

	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, strings.Repeat("宇", 7)+"...", got)
}

func TestFormatAuthors(t *testing.T) {
	assert.Equal(t, "Unknown", FormatAuthors(nil))
	assert.Equal(t, "A, B, C", FormatAuthors([]string{"A", "B", "C"}))
	assert.Equal(t, "A, B, C, et al.", FormatAuthors([]string{"A", "B", "C", "D"}))
}
