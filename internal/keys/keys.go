package keys

import (
	"sort"
	"strings"
)

// SpeciesKey normalizes a species name: trimmed, lower-cased, spaces
// replaced with underscores. Two creatures share a species when their keys
// are equal.
func SpeciesKey(name string) string {
	s := strings.TrimSpace(name)
	return strings.ToLower(strings.ReplaceAll(s, " ", "_"))
}

// TeamKey produces a canonical key for a list of species names: each part
// normalized with SpeciesKey, empty parts dropped, sorted and joined with
// underscore. Suitable for stable DB keys.
func TeamKey(names []string) string {
	parts := make([]string, 0, len(names))
	for _, n := range names {
		s := SpeciesKey(n)
		if s == "" {
			continue
		}
		parts = append(parts, s)
	}
	sort.Strings(parts)
	return strings.Join(parts, "_")
}
