// Package textutil provides small text helpers shared by the CLI and the
// extraction layer.
package textutil

import (
	"encoding/xml"
	"strings"
)

// EscapeXML replaces characters with special meaning in XML so user log
// text can be embedded inside XML-delimited prompt templates without
// enabling prompt injection.
func EscapeXML(s string) string {
	var buf strings.Builder
	if err := xml.EscapeText(&buf, []byte(s)); err != nil {
		// EscapeText only fails on invalid UTF-8; return original on error.
		return s
	}
	return buf.String()
}

// Truncate collapses newlines and caps s at maxLen runes, appending an
// ellipsis when the text was cut. Used for log and table output.
func Truncate(s string, maxLen int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	runes := []rune(s)
	if len(runes) > maxLen {
		return string(runes[:maxLen]) + "..."
	}
	return s
}
