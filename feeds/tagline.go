package feeds

import "strings"

// ParseTagline splits free-form tag input into a clean tag list. Tags are
// `#`-delimited, surrounding whitespace is trimmed, empties are dropped, and
// duplicates keep their first position. An empty input yields an empty,
// non-nil slice.
func ParseTagline(input string) []string {
	tags := []string{}
	seen := map[string]struct{}{}

	for _, token := range strings.Split(input, "#") {
		name := strings.TrimSpace(token)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		tags = append(tags, name)
	}
	return tags
}

// FormatTagline renders a tag list back into the `#`-delimited editor form.
func FormatTagline(tags []string) string {
	if len(tags) == 0 {
		return ""
	}
	parts := make([]string, 0, len(tags))
	for _, tag := range tags {
		trimmed := strings.TrimSpace(tag)
		if trimmed == "" {
			continue
		}
		parts = append(parts, "#"+trimmed)
	}
	return strings.Join(parts, " ")
}
