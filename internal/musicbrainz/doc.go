// Package musicbrainz provides work lookups against the MusicBrainz web
// service.
//
// The package handles two concerns:
//
//  1. Fetching a single work by MBID with retry, rate limiting (via the
//     shared transport) and error classification
//  2. Extracting the containing (parent) work from the relations of a
//     lookup response
//
// # Work Lookup
//
//	transport := wshttp.NewClient("workparts", 100, 30*time.Second)
//	client := musicbrainz.NewClient(transport, musicbrainz.Config{
//	    BaseURL:     "https://musicbrainz.org/ws/2",
//	    MaxAttempts: 6,
//	})
//	work, warnings, err := client.LookupWork(ctx, mbid)
//
// # Error Taxonomy
//
// Lookup failures are classified into three kinds:
//
//   - NotFound: the id does not exist; never retried
//   - ServiceUnavailable: transient (503, 429, network error); retried up
//     to MaxAttempts with bounded exponential backoff, then returned as
//     the terminal classification
//   - Malformed: undecodable or structurally wrong response; never
//     retried, treated like not-found by the traversal but logged apart
//
// Use IsNotFound, IsServiceUnavailable and IsMalformed to branch on the
// classification.
//
// # Parent Selection
//
// A work may list several containing works. The client follows exactly
// one, chosen by a ParentSelector; the default LongestName strategy picks
// the candidate with the longest title (the most specific level, usually)
// and records a warning so the ambiguity ends up in the track's error tag.
package musicbrainz
