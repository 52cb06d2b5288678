package core

import "strings"

// BuildTasksQuery builds an Obsidian Tasks filter matching the given task
// identifiers. Empty identifiers are skipped. A single fragment is emitted
// bare; multiple fragments are each parenthesized and OR-joined. The result
// is opaque to msbee itself, it is only embedded into the generated section.
func BuildTasksQuery(ids []string) string {
	var fragments []string
	for _, id := range ids {
		if id == "" {
			continue
		}
		fragments = append(fragments, "id includes "+id)
	}

	switch len(fragments) {
	case 0:
		return ""
	case 1:
		return fragments[0]
	}

	for i, f := range fragments {
		fragments[i] = "(" + f + ")"
	}
	return strings.Join(fragments, " OR ")
}
