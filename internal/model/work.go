package model

import "fmt"

// Work represents one level of the MusicBrainz work hierarchy.
//
// A Work is immutable after creation. The resolution cache hands out the
// same *Work to every track that reaches it, so nothing may mutate the
// fields once the value has been published.
type Work struct {
	// ID is the MusicBrainz work MBID.
	ID string

	// Name is the work title as returned by the web service.
	Name string

	// ParentID is the MBID of the containing work, or empty if this work
	// is a root (or its parent lookup failed; see Chain.Partial).
	ParentID string
}

// IsRoot reports whether the work has no containing work.
func (w *Work) IsRoot() bool {
	return w.ParentID == ""
}

// Chain is the ordered leaf-to-root sequence of works for one track.
//
// Works[0] is the work recorded on the track (level 0); each following
// element is the parent of the previous one. A complete chain ends in a
// root work. A chain truncated by a fetch failure or a cycle is marked
// Partial and ends at the last successfully resolved work.
type Chain struct {
	// Works holds the resolved works from leaf to root.
	Works []*Work

	// Partial is true when the ascent stopped before reaching a root
	// (unrecoverable fetch failure or cycle detection).
	Partial bool
}

// Len returns the number of resolved works in the chain.
func (c Chain) Len() int {
	return len(c.Works)
}

// Levels returns the highest level index present on the chain: 0 for an
// empty or single-work chain, len-1 otherwise. This is the part_levels
// value emitted by the tag builder.
func (c Chain) Levels() int {
	if len(c.Works) <= 1 {
		return 0
	}
	return len(c.Works) - 1
}

// Root returns the last work of the chain, or nil for an empty chain.
// For a partial chain this is the highest work reached, not a true root.
func (c Chain) Root() *Work {
	if len(c.Works) == 0 {
		return nil
	}
	return c.Works[len(c.Works)-1]
}

// Leaf returns the first work of the chain, or nil for an empty chain.
func (c Chain) Leaf() *Work {
	if len(c.Works) == 0 {
		return nil
	}
	return c.Works[0]
}

// Validate checks the structural invariants of the chain:
//
//   - Works[i].ParentID == Works[i+1].ID for every consecutive pair
//   - no MBID appears twice
//   - a complete (non-partial) chain ends in a root work
//
// The resolver guarantees these by construction; Validate exists so tests
// and the report writer can assert them independently.
func (c Chain) Validate() error {
	seen := make(map[string]struct{}, len(c.Works))
	for i, w := range c.Works {
		if _, dup := seen[w.ID]; dup {
			return fmt.Errorf("work %s appears twice in chain", w.ID)
		}
		seen[w.ID] = struct{}{}
		if i+1 < len(c.Works) && w.ParentID != c.Works[i+1].ID {
			return fmt.Errorf("chain broken at level %d: %s has parent %s, next is %s",
				i, w.ID, w.ParentID, c.Works[i+1].ID)
		}
	}
	if !c.Partial {
		if root := c.Root(); root != nil && !root.IsRoot() {
			return fmt.Errorf("complete chain ends in non-root work %s", root.ID)
		}
	}
	return nil
}
