package tags

import (
	"fmt"
	"strings"

	"github.com/bogem/id3v2"

	"github.com/handiism/workparts/internal/model"
)

// workIDDescription is the TXXX frame description Picard-style taggers use
// for MusicBrainz work MBIDs.
const workIDDescription = "MusicBrainz Work Id"

// Reader extracts the input metadata a resolution needs from MP3 files:
// the track title, the MusicBrainz work ids and the composer credits.
type Reader struct{}

// NewReader creates a Reader.
func NewReader() *Reader {
	return &Reader{}
}

// ReadTrack reads the ID3 frames of the MP3 at path and returns the track
// model for it. A file with no work id frame is a valid read: WorkIDs is
// simply empty and the caller decides whether to skip or warn.
func (r *Reader) ReadTrack(path string) (*model.Track, error) {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer tag.Close()

	track := &model.Track{
		Path:      path,
		Title:     tag.Title(),
		Composers: splitFrameValues(tag.GetTextFrame("TCOM").Text),
	}

	for _, frame := range tag.GetFrames(tag.CommonID("User defined text information frame")) {
		udt, ok := frame.(id3v2.UserDefinedTextFrame)
		if !ok {
			continue
		}
		if strings.EqualFold(udt.Description, workIDDescription) {
			track.WorkIDs = append(track.WorkIDs, splitFrameValues(udt.Value)...)
		}
	}

	return track, nil
}

// splitFrameValues splits a multi-valued ID3 text frame. Writers disagree
// on the separator: ID3v2.4 uses NUL, older taggers use "/" or "; ".
func splitFrameValues(raw string) []string {
	if raw == "" {
		return nil
	}
	split := strings.FieldsFunc(raw, func(r rune) bool {
		return r == 0 || r == '/' || r == ';'
	})
	values := make([]string, 0, len(split))
	for _, v := range split {
		if v = strings.TrimSpace(v); v != "" {
			values = append(values, v)
		}
	}
	return values
}
