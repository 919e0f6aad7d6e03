package musicbrainz

import (
	"github.com/handiism/workparts/internal/musicbrainz/dto"
)

// ParentCandidate is one containing work extracted from a lookup response.
type ParentCandidate struct {
	// ID is the candidate's MBID.
	ID string

	// Name is the candidate's title; may be empty when the service
	// returns an unnamed work.
	Name string
}

// ParentSelector chooses which containing work the ascent follows when a
// work has more than one. The traversal itself never inspects candidates,
// so an improved disambiguation (e.g. relation-type filtering) can be
// swapped in without touching the resolver.
type ParentSelector interface {
	// Select picks one candidate from a non-empty list.
	Select(candidates []ParentCandidate) ParentCandidate
}

// LongestName selects the candidate with the longest title, on the theory
// that the longest-named parent is the most specific (lowest) level. Ties
// go to the first candidate encountered. This is a heuristic, not a
// guarantee of semantic correctness.
type LongestName struct{}

// Select implements ParentSelector.
func (LongestName) Select(candidates []ParentCandidate) ParentCandidate {
	best := candidates[0]
	for _, c := range candidates[1:] {
		if len(c.Name) > len(best.Name) {
			best = c
		}
	}
	return best
}

// parentCandidates extracts the containing works from a lookup response:
// relations of type "parts" whose direction is "backward" point from a
// part to its container.
func parentCandidates(resp *dto.WorkResponse) []ParentCandidate {
	var candidates []ParentCandidate
	for _, rel := range resp.Relations {
		if rel.Type != "parts" || rel.Direction != "backward" || rel.Work == nil {
			continue
		}
		if rel.Work.ID == "" {
			continue
		}
		candidates = append(candidates, ParentCandidate{
			ID:   rel.Work.ID,
			Name: rel.Work.Title,
		})
	}
	return candidates
}
