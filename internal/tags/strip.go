package tags

import (
	"regexp"
	"strings"
)

var nonWordOrSpace = regexp.MustCompile(`[^\w\s]`)

// residual punctuation left behind after removing an ancestor prefix.
const stripCutset = " \t:;,.-–—/)]}"

// StripAncestor removes ancestor's text from the front of name, tolerating
// punctuation differences: "Symphony No. 5" strips from
// "Symphony No.5: II. Andante" even though the dots and spacing differ.
//
// The ancestor is reduced to its word sequence and matched with arbitrary
// non-word characters between words, case-insensitively. When the ancestor
// does not occur as a prefix, name is returned unchanged; callers fall
// back to the unstripped name when the result is empty.
func StripAncestor(name, ancestor string) string {
	fields := strings.Fields(nonWordOrSpace.ReplaceAllString(ancestor, " "))
	if len(fields) == 0 {
		return name
	}

	escaped := make([]string, len(fields))
	for i, f := range fields {
		escaped[i] = regexp.QuoteMeta(f)
	}
	pattern, err := regexp.Compile(`(?i)^\W*` + strings.Join(escaped, `\W*`) + `(.*)$`)
	if err != nil {
		return name
	}

	m := pattern.FindStringSubmatch(name)
	if m == nil {
		return name
	}
	return strings.Trim(m[1], stripCutset)
}

// stripAncestors applies StripAncestor for every ancestor, nearest first
// (the immediate parent usually embeds the higher levels' text already),
// and returns the residue, or fallback when stripping consumed the whole
// name.
func stripAncestors(name string, ancestors []string, fallback string) string {
	s := name
	for _, ancestor := range ancestors {
		s = StripAncestor(s, ancestor)
	}
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}
