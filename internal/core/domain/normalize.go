package domain

import "strings"

// NormalizeScalar turns a raw free-text field value into a comparable key:
// trimmed, with internal whitespace runs collapsed to a single space.
// It is idempotent.
func NormalizeScalar(raw string) string {
	return strings.Join(strings.Fields(raw), " ")
}

// NormalizeTag normalizes a tag value for case-insensitive comparison.
// Display labels keep their original casing separately; only the
// comparison key is lower-cased.
func NormalizeTag(raw string) string {
	return strings.ToLower(NormalizeScalar(raw))
}

// SplitDelimited splits a delimited-list field on sep, normalizes each
// piece and drops empty results. Empty input yields an empty list.
func SplitDelimited(raw, sep string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, sep)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := NormalizeScalar(p); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// foldKey is the comparison key for case-insensitive facet values.
func foldKey(value string) string {
	return NormalizeTag(value)
}
