package model

import "path/filepath"

// Album groups the tracks found in one directory.
//
// The directory path doubles as the aggregation key: every track completion
// is reported against it, and album-level tags are computed once all of the
// album's tracks have settled.
type Album struct {
	// Dir is the directory containing the album's MP3 files. It is also
	// the key used by the aggregator.
	Dir string

	// Tracks contains all submitted tracks of the album.
	Tracks []*Track
}

// Key returns the aggregation key for the album.
func (a *Album) Key() string {
	return a.Dir
}

// Name returns a display name for the album (the directory base name).
func (a *Album) Name() string {
	return filepath.Base(a.Dir)
}
