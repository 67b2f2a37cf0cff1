// Package str converts config field names to environment variable names.
package str

import (
	"strings"
	"unicode"
)

// ToScreamingSnakeCase turns a Go identifier into an environment variable name:
// "LogLevel" gives "LOG_LEVEL", "HTTPPort" gives "HTTP_PORT", "retry-count" gives "RETRY_COUNT".
func ToScreamingSnakeCase(in string) string {
	runes := []rune(strings.TrimSpace(in))
	var sb strings.Builder
	sb.Grow(len(runes) + len(runes)/3)

	pendingSeparator := false
	for i, r := range runes {
		if r == '_' || r == '-' || unicode.IsSpace(r) {
			pendingSeparator = sb.Len() > 0
			continue
		}
		if i > 0 && startsWord(runes, i) {
			pendingSeparator = sb.Len() > 0
		}
		if pendingSeparator {
			sb.WriteByte('_')
			pendingSeparator = false
		}
		sb.WriteRune(unicode.ToUpper(r))
	}
	return sb.String()
}

// startsWord is true on a lower to upper transition, on a letter to digit transition,
// and on the last upper letter of an acronym followed by a lower letter.
func startsWord(runes []rune, i int) bool {
	prev, cur := runes[i-1], runes[i]
	switch {
	case unicode.IsUpper(cur) && (unicode.IsLower(prev) || unicode.IsDigit(prev)):
		return true
	case unicode.IsDigit(cur) && unicode.IsLetter(prev):
		return true
	case unicode.IsUpper(cur) && unicode.IsUpper(prev) && i+1 < len(runes) && unicode.IsLower(runes[i+1]):
		return true
	}
	return false
}
