package simplecms

import "strings"

// Slugify derives a URL-safe slug from a title: lowercase, every maximal run
// of characters outside [a-z0-9] collapsed to a single '-', leading and
// trailing '-' trimmed. Total and idempotent; may return "" for titles with no
// alphanumeric characters, which callers must treat as a validation failure.
func Slugify(title string) string {
	var b strings.Builder
	b.Grow(len(title))

	pendingSep := false
	for _, r := range strings.ToLower(title) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingSep && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingSep = false
			b.WriteRune(r)
		} else {
			pendingSep = true
		}
	}

	return b.String()
}
