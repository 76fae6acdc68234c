// Package label provides deterministic normalization of photo labels.
//
// Labels arrive from two free-form sources, recognition output and
// user-supplied metadata headers. Everything that ends up in a document's
// label set passes through this package first, so normalization rules live
// in exactly one place: lower-case, trimmed, deduplicated, sorted.
package label

import (
	"sort"
	"strings"
)

// Normalize canonicalizes a single label. The empty string means the input
// carried no usable label.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// NormalizeSet normalizes every element of in, drops empties, collapses
// duplicates and sorts the result. The input slice is not modified.
func NormalizeSet(in []string) []string {
	if len(in) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))

	for _, s := range in {
		n := Normalize(s)
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}

	if len(out) == 0 {
		return nil
	}

	sort.Strings(out)
	return out
}

// ParseList parses a comma-delimited label list, e.g. the value of a
// custom-labels metadata header. Malformed input degrades to best-effort
// parsing; an absent or blank value yields nil.
func ParseList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return NormalizeSet(strings.Split(s, ","))
}

// Union returns the normalized set union of the given label sets.
// The result is order-independent: Union(a, b) equals Union(b, a).
func Union(sets ...[]string) []string {
	var all []string
	for _, set := range sets {
		all = append(all, set...)
	}
	return NormalizeSet(all)
}
