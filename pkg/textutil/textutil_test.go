package textutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapeXML(t *testing.T) {
	assert.Equal(t, "", EscapeXML(""))

	out := EscapeXML(`<log attr="x"> & stuff </log>`)
	assert.NotContains(t, out, "<")
	assert.NotContains(t, out, ">")
	assert.Contains(t, out, "&lt;")
	assert.Contains(t, out, "&amp;")

	// Thai text passes through untouched.
	assert.Equal(t, "ประชุมคณะทำงาน", EscapeXML("ประชุมคณะทำงาน"))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "abc...", Truncate("abcdef", 3))
	assert.Equal(t, "a b", Truncate("a\nb", 10))

	// Rune-safe for Thai.
	out := Truncate("ประชุมคณะทำงานพัฒนาระบบ", 6)
	assert.True(t, strings.HasSuffix(out, "..."))
	assert.Equal(t, "ประชุม...", out)
}
