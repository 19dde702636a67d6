package resolver

import "unicode/utf8"

const ellipsis = "..."

// Truncate shortens s to max runes. Longer text keeps its first max-3
// runes followed by "...".
func Truncate(s string, max int) string {
	if max <= len(ellipsis) || utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max-len(ellipsis)]) + ellipsis
}
