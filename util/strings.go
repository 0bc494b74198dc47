package util

// Trunc returns the first maxRunes runes of s. It is UTF8-safe, but does not care for HTML.
func Trunc(s string, maxRunes int) string {
	if maxRunes <= 0 {
		return ""
	}
	var runes = 0
	for i := range s {
		if runes == maxRunes {
			return s[:i]
		}
		runes++
	}
	return s
}
