package tags

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/handiism/workparts/internal/model"
)

// Set is a flat collection of output tags, keyed without the namespace
// prefix (the Writer applies it at the file boundary).
type Set map[string]string

// groupSeparator joins the topmost work name to the stripped parts below
// it in the groupheading tag.
const groupSeparator = ":: "

// Builder converts a settled track resolution into the full set of
// level-indexed output tags.
type Builder struct{}

// NewBuilder creates a tag builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Build derives all per-track tags from a resolution:
//
//   - work_n / workid_n for every resolved level, leaf at 0
//   - work_top / workid_top mirroring the highest level
//   - part_n: work_n with ancestor text stripped (fallback: unstripped)
//   - part_levels: the highest level index present
//   - title_work / title_movement from splitting the (normalized) raw
//     title, only when the chain has more than one level
//   - part, groupheading, extended_part, extended_groupheading
//     compositions
//   - error: all accumulated warnings joined, omitted when there are none
//
// A track whose leaf id was unknown still produces a usable set:
// work_0 is empty, part_levels is 0 and the error tag explains why.
func (b *Builder) Build(res *model.TrackResolution) Set {
	set := Set{}
	chain := res.Chain
	n := chain.Len()

	if n == 0 {
		set["work_0"] = ""
		set["part_levels"] = "0"
		b.addError(set, res.Warnings)
		return set
	}

	names := make([]string, n)
	for i, w := range chain.Works {
		names[i] = w.Name
		set[fmt.Sprintf("work_%d", i)] = w.Name
		set[fmt.Sprintf("workid_%d", i)] = w.ID
	}

	root := chain.Root()
	set["work_top"] = root.Name
	set["workid_top"] = root.ID
	set["part_levels"] = strconv.Itoa(chain.Levels())

	// Strip ancestor text from every level that has ancestors.
	parts := make([]string, n)
	for i := 0; i < n-1; i++ {
		parts[i] = stripAncestors(names[i], names[i+1:], names[i])
		set[fmt.Sprintf("part_%d", i)] = parts[i]
	}

	var titleWork, titleMovement string
	if chain.Levels() > 0 {
		normalized := NormalizeTitle(res.Track.Title, res.Track.Composers)
		if w, m, ok := SplitTitle(normalized); ok {
			titleWork, titleMovement = w, m
			set["title_work"] = w
			set["title_movement"] = m
		}
	}

	// part: the display name of the lowest level.
	part := names[0]
	if n > 1 {
		part = parts[0]
	}
	set["part"] = part

	// groupheading: all levels above 0, topmost first, stripped parts
	// below it.
	var groupheading string
	if n > 1 {
		segs := make([]string, 0, n-1)
		for i := n - 2; i >= 1; i-- {
			segs = append(segs, parts[i])
		}
		groupheading = names[n-1]
		if len(segs) > 0 {
			groupheading += groupSeparator + strings.Join(segs, ": ")
		}
		set["groupheading"] = groupheading
	}

	// extended_*: append title-derived text in braces when it adds
	// anything the hierarchy tags don't already carry.
	if groupheading != "" {
		if titleWork != "" && !containsFold(groupheading, titleWork) {
			set["extended_groupheading"] = groupheading + " {" + titleWork + "}"
		} else {
			set["extended_groupheading"] = groupheading
		}
	}
	if titleMovement != "" && !containsFold(part, titleMovement) {
		set["extended_part"] = part + " {" + titleMovement + "}"
	} else {
		set["extended_part"] = part
	}

	b.addError(set, res.Warnings)
	return set
}

// AlbumSet builds the album-level tags merged into every track of an
// album after aggregation finishes.
func AlbumSet(singleWorkAlbum bool, workPartLevels int) Set {
	single := "0"
	if singleWorkAlbum {
		single = "1"
	}
	return Set{
		"single_work_album": single,
		"work_part_levels":  strconv.Itoa(workPartLevels),
	}
}

// Merge returns a copy of the set with overlay's entries added on top.
func (s Set) Merge(overlay Set) Set {
	merged := make(Set, len(s)+len(overlay))
	for k, v := range s {
		merged[k] = v
	}
	for k, v := range overlay {
		merged[k] = v
	}
	return merged
}

func (b *Builder) addError(set Set, warnings []string) {
	if len(warnings) > 0 {
		set["error"] = strings.Join(warnings, "; ")
	}
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
