package scc

import (
	"regexp"
	"strings"
)

var (
	nonAlnumPattern   = regexp.MustCompile(`[^a-zA-Z0-9]`)
	underscorePattern = regexp.MustCompile(`_+`)
)

// Normalize canonicalizes a column label or category value for matching:
// trim, replace non-alphanumeric runs with underscores, lowercase, collapse
// repeated underscores, strip leading/trailing underscores. Idempotent;
// empty input stays empty.
func Normalize(name string) string {
	name = strings.TrimSpace(name)
	name = nonAlnumPattern.ReplaceAllString(name, "_")
	name = strings.ToLower(name)
	name = underscorePattern.ReplaceAllString(name, "_")
	name = strings.Trim(name, "_")
	return name
}

// NormalizeHeaders returns the normalized form of every header in order
func NormalizeHeaders(headers []string) []string {
	normalized := make([]string, len(headers))
	for i, h := range headers {
		normalized[i] = Normalize(h)
	}
	return normalized
}

// foldHeader prepares a header for reference-list matching: reference names
// are lowercase dotted paths, so matching only trims and lowercases.
func foldHeader(header string) string {
	return strings.ToLower(strings.TrimSpace(header))
}
