// Package textx holds small text helpers shared by the application flows.
package textx

import (
	"strings"
)

// SanitizeText strips control characters from candidate-supplied free text
// such as cover letters. Tabs, newlines and carriage returns survive so
// multi-paragraph text keeps its shape; the result is space-trimmed.
func SanitizeText(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r == '\n' || r == '\r' || r == '\t':
			b.WriteRune(r)
		case r >= 32 && r != 127:
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}
