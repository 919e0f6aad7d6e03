package tags

import "strings"

// SplitTitle splits a track title of the form "Work: Movement" on its
// first top-level colon, meaning one that is not nested inside
// parentheses, brackets, braces or quotes.
//
// The split is a best-effort heuristic: when no top-level colon exists, or
// either side would be empty, ok is false and both strings are empty.
// Callers must treat a failed split as "no title-derived tags", never as
// an error.
func SplitTitle(title string) (work, movement string, ok bool) {
	depth := 0
	inQuote := rune(0)

	for i, r := range title {
		switch {
		case inQuote != 0:
			if r == inQuote {
				inQuote = 0
			}
		case r == '"' || r == '\'':
			inQuote = r
		case r == '(' || r == '[' || r == '{':
			depth++
		case r == ')' || r == ']' || r == '}':
			if depth > 0 {
				depth--
			}
		case r == ':' && depth == 0:
			work = strings.TrimSpace(title[:i])
			movement = strings.TrimSpace(title[i+1:])
			if work == "" || movement == "" {
				return "", "", false
			}
			return work, movement, true
		}
	}
	return "", "", false
}

// NormalizeTitle removes a leading "Composer: " prefix from a title when
// the prefix matches one of the track's composer last names. Classical
// releases often title tracks "Beethoven: Symphony No. 5 ..."; left in
// place the composer would pollute the title-derived work.
func NormalizeTitle(title string, composers []string) string {
	head, rest, ok := strings.Cut(title, ":")
	if !ok || strings.TrimSpace(rest) == "" {
		return title
	}
	head = strings.TrimSpace(head)
	for _, composer := range composers {
		if strings.EqualFold(head, composerLastName(composer)) {
			return strings.TrimSpace(rest)
		}
	}
	return title
}

// composerLastName extracts a last name from a composer credit, handling
// both "Beethoven, Ludwig van" and "Ludwig van Beethoven" forms.
func composerLastName(composer string) string {
	if before, _, ok := strings.Cut(composer, ","); ok {
		return strings.TrimSpace(before)
	}
	fields := strings.Fields(composer)
	if len(fields) == 0 {
		return ""
	}
	return fields[len(fields)-1]
}
