// Package tags turns resolved work hierarchies into output tags and
// moves them in and out of MP3 files.
//
// # Building tags
//
// The Builder derives the full level-indexed tag set from a settled
// resolution:
//
//	builder := tags.NewBuilder()
//	set := builder.Build(resolution)
//	// set["work_0"], set["part_1"], set["groupheading"], ...
//
// Leaf-level values sit at index 0 and the root at the highest index.
// part_n tags carry the work name with its ancestors' text stripped off,
// so "Symphony No. 5 in C minor: II. Andante con moto" under the parent
// "Symphony No. 5 in C minor" yields part_0 "II. Andante con moto".
//
// # Title heuristics
//
// SplitTitle splits "Work: Movement" titles on the first colon that is
// not nested inside brackets or quotes, and NormalizeTitle removes a
// leading composer prefix first. Both feed the title_work and
// title_movement tags and the {bracketed} suffixes of the extended_*
// tags.
//
// # Reading and writing files
//
// Reader pulls the title, MusicBrainz work ids and composer credits out
// of an MP3's ID3 frames. Writer persists a built Set as TXXX frames
// under a configurable namespace prefix:
//
//	writer := tags.NewWriter("cwp_")
//	err := writer.Write(track.Path, set)
//
// Frames outside the namespace are never touched; frames inside it are
// replaced wholesale on every write.
package tags
