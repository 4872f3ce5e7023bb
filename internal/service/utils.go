package service

import (
	"strings"
	"unicode/utf8"
)

// sanitizeUTF8 drops invalid byte sequences from generated text before it is
// written to PostgreSQL, which rejects them.
func sanitizeUTF8(s string) string {
	if utf8.ValidString(s) {
		return s
	}
	return strings.ToValidUTF8(s, "")
}
