// Package model defines the core data structures used throughout workparts.
//
// # Work
//
// Work is one node of the MusicBrainz work hierarchy. Works are immutable
// once created and are shared by reference between all tracks of a run:
//
//	work := &model.Work{ID: "b34b...", Name: "Symphony No. 5", ParentID: ""}
//
// # Chain
//
// Chain is the ordered leaf-to-root sequence of works resolved for one
// track. Index 0 is the work recorded on the track itself; the last element
// is the root (a work with no parent) unless the chain is partial:
//
//	chain.Root()   // the top-level work, or nil for an empty chain
//	chain.Levels() // highest level index present (part_levels)
//
// # Track and Album
//
// Track is one MP3 file submitted for resolution, carrying the raw title,
// the MusicBrainz work ids and the composer credits read from its frames.
// Album groups the tracks of one directory and acts as the aggregation key
// for album-level tags.
package model
