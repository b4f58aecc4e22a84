package common

import "strings"

// Slugify lowercases value and collapses everything outside [a-z0-9] into
// single separators. Used for stored file names and download file names.
func Slugify(value, sep string) string {
	var b strings.Builder
	lastSep := true
	for _, r := range strings.ToLower(strings.TrimSpace(value)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastSep = false
		default:
			if !lastSep {
				b.WriteString(sep)
				lastSep = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), sep)
}
