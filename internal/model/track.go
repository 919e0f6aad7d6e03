package model

import (
	"path/filepath"
	"strings"
)

// Track represents a single MP3 file submitted for work resolution.
//
// The fields are populated from the file's existing ID3 frames before any
// network traffic happens:
//   - Title from TIT2
//   - WorkIDs from the "MusicBrainz Work Id" TXXX frame (may hold several
//     ids; resolution follows the first and records a warning)
//   - Composers from TCOM, used to normalize "Composer: Work" titles
type Track struct {
	// Path is the location of the MP3 file.
	Path string

	// Title is the raw track title from the file.
	Title string

	// WorkIDs holds the MusicBrainz work MBIDs recorded on the track.
	// Empty means the track cannot be resolved.
	WorkIDs []string

	// Composers holds the composer credits from the file, if any.
	Composers []string
}

// LeafWorkID returns the work id resolution will ascend from, or empty
// when the track carries none.
func (t *Track) LeafWorkID() string {
	if len(t.WorkIDs) == 0 {
		return ""
	}
	return t.WorkIDs[0]
}

// DisplayName returns a short human-readable identifier for progress
// output: the title when present, otherwise the file name.
func (t *Track) DisplayName() string {
	if strings.TrimSpace(t.Title) != "" {
		return t.Title
	}
	return filepath.Base(t.Path)
}

// TrackResolution is the per-track result of a hierarchy resolution.
//
// A TrackResolution is created when the track is submitted, mutated only by
// the resolution task that owns it, and becomes read-only once handed to
// the aggregator.
type TrackResolution struct {
	// Track is the submitted track.
	Track *Track

	// Chain is the resolved leaf-to-root chain. May be empty (unknown
	// leaf id) or partial (truncated by error or cycle).
	Chain Chain

	// Warnings accumulates human-readable problems hit during
	// resolution. They end up concatenated in the error tag; an empty
	// slice means the error tag is omitted entirely.
	Warnings []string
}

// Warn appends a warning to the resolution.
func (r *TrackResolution) Warn(msg string) {
	r.Warnings = append(r.Warnings, msg)
}
