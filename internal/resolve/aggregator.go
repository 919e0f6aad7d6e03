package resolve

import (
	"fmt"
	"sync"

	"github.com/handiism/workparts/internal/model"
)

// AlbumSummary is the album-level result computed once every track of an
// album has settled.
type AlbumSummary struct {
	// SingleWorkAlbum is true when every fully resolved track of the
	// album reached the same root work.
	SingleWorkAlbum bool

	// WorkPartLevels is the maximum part_levels across the album's
	// tracks.
	WorkPartLevels int

	// Tracks is the number of tracks that completed.
	Tracks int

	// Roots is the number of distinct root works reached.
	Roots int
}

// Aggregator tracks outstanding per-track resolutions per album and
// computes album-wide tags once all tracks settle.
//
// It also carries the host-facing "still processing" signal: Pending
// reports true from the first RegisterTrack until Finalize completes, so
// the caller knows not to write output while resolutions are in flight.
// All methods are safe for concurrent use.
type Aggregator struct {
	mu     sync.Mutex
	albums map[string]*albumState
}

type albumState struct {
	outstanding int
	completed   int
	roots       map[string]struct{}
	maxLevels   int
	finalized   bool
}

// NewAggregator creates an empty aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{albums: make(map[string]*albumState)}
}

// RegisterTrack records that one more track of the album is resolving.
func (a *Aggregator) RegisterTrack(albumKey string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	st := a.albums[albumKey]
	if st == nil {
		st = &albumState{roots: make(map[string]struct{})}
		a.albums[albumKey] = st
	}
	st.outstanding++
}

// CompleteTrack records a settled track resolution and folds its chain
// into the album's aggregate state.
//
// Only complete (non-partial) chains contribute their top work to the
// root set: the highest work of a truncated chain is not a root, and
// counting it would spuriously break single-work detection.
func (a *Aggregator) CompleteTrack(albumKey string, res *model.TrackResolution) {
	a.mu.Lock()
	defer a.mu.Unlock()
	st := a.albums[albumKey]
	if st == nil || st.outstanding == 0 {
		// Completion without registration is a programming error;
		// tolerate it rather than corrupting the counter.
		return
	}
	st.outstanding--
	st.completed++

	if !res.Chain.Partial {
		if root := res.Chain.Root(); root != nil {
			st.roots[root.ID] = struct{}{}
		}
	}
	if levels := res.Chain.Levels(); levels > st.maxLevels {
		st.maxLevels = levels
	}
}

// AlbumComplete reports whether every registered track of the album has
// completed.
func (a *Aggregator) AlbumComplete(albumKey string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	st := a.albums[albumKey]
	return st != nil && st.outstanding == 0 && st.completed > 0
}

// Pending reports whether the host must keep waiting before writing any
// output for the album: true from the first registration until Finalize
// has run.
func (a *Aggregator) Pending(albumKey string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	st := a.albums[albumKey]
	return st != nil && !st.finalized
}

// PendingAlbums returns the number of albums still pending.
func (a *Aggregator) PendingAlbums() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	n := 0
	for _, st := range a.albums {
		if !st.finalized {
			n++
		}
	}
	return n
}

// Finalize computes the album-level summary and clears the album's
// pending signal. It is only valid once all registered tracks have
// completed; calling it earlier or twice is an error.
func (a *Aggregator) Finalize(albumKey string) (AlbumSummary, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	st := a.albums[albumKey]
	if st == nil {
		return AlbumSummary{}, fmt.Errorf("album %q has no registered tracks", albumKey)
	}
	if st.outstanding > 0 {
		return AlbumSummary{}, fmt.Errorf("album %q still has %d outstanding tracks", albumKey, st.outstanding)
	}
	if st.finalized {
		return AlbumSummary{}, fmt.Errorf("album %q already finalized", albumKey)
	}
	st.finalized = true

	return AlbumSummary{
		SingleWorkAlbum: len(st.roots) == 1,
		WorkPartLevels:  st.maxLevels,
		Tracks:          st.completed,
		Roots:           len(st.roots),
	}, nil
}

// Reset discards the album's state entirely, ending its processing
// session.
func (a *Aggregator) Reset(albumKey string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.albums, albumKey)
}
