package catalog

import "strings"

// Redact removes every literal occurrence of each comma-separated filter term
// from name. Terms are trimmed before matching and applied in the order they
// appear in the filter; matching is plain substring deletion, so terms with
// regex metacharacters behave literally. An empty filter is a no-op.
func Redact(name, filter string) string {
	if filter == "" {
		return name
	}
	for _, term := range strings.Split(filter, ",") {
		term = strings.TrimSpace(term)
		if term == "" {
			continue
		}
		name = strings.ReplaceAll(name, term, "")
	}
	return name
}
