package tags

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bogem/id3v2"
)

// Writer persists a tag Set into an MP3 file as namespaced TXXX frames.
//
// Every output tag is written as TXXX with the configured namespace
// prefixed to its description, so "part_0" under namespace "cwp_" becomes
// the frame TXXX:cwp_part_0. Frames outside the namespace are preserved;
// frames inside it are replaced wholesale so stale tags from a previous
// run never survive.
type Writer struct {
	namespace string
}

// NewWriter creates a Writer using namespace as the description prefix.
func NewWriter(namespace string) *Writer {
	return &Writer{namespace: namespace}
}

// Write replaces the namespaced TXXX frames of the MP3 at path with set.
func (w *Writer) Write(path string, set Set) error {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer tag.Close()

	w.replaceFrames(tag, set)

	if err := tag.Save(); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

// replaceFrames rewrites the TXXX frame list: existing frames outside the
// namespace are kept, everything inside it is dropped and re-added from
// set in sorted key order.
func (w *Writer) replaceFrames(tag *id3v2.Tag, set Set) {
	id := tag.CommonID("User defined text information frame")

	var keep []id3v2.UserDefinedTextFrame
	for _, frame := range tag.GetFrames(id) {
		udt, ok := frame.(id3v2.UserDefinedTextFrame)
		if !ok {
			continue
		}
		if !strings.HasPrefix(udt.Description, w.namespace) {
			keep = append(keep, udt)
		}
	}

	tag.DeleteFrames(id)
	for _, udt := range keep {
		tag.AddUserDefinedTextFrame(udt)
	}

	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		tag.AddUserDefinedTextFrame(id3v2.UserDefinedTextFrame{
			Encoding:    id3v2.EncodingUTF8,
			Description: w.namespace + k,
			Value:       set[k],
		})
	}
}
