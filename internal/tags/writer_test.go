package tags

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bogem/id3v2"
)

// newTestMP3 creates an untagged stand-in MP3 file and seeds it with the
// given ID3 frames.
func newTestMP3(t *testing.T, seed func(tag *id3v2.Tag)) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "track.mp3")
	if err := os.WriteFile(path, []byte("not really audio data"), 0644); err != nil {
		t.Fatal(err)
	}

	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		t.Fatalf("open tag: %v", err)
	}
	if seed != nil {
		seed(tag)
	}
	if err := tag.Save(); err != nil {
		t.Fatalf("save tag: %v", err)
	}
	tag.Close()
	return path
}

func userFrames(t *testing.T, path string) map[string]string {
	t.Helper()

	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		t.Fatalf("open tag: %v", err)
	}
	defer tag.Close()

	frames := make(map[string]string)
	for _, frame := range tag.GetFrames(tag.CommonID("User defined text information frame")) {
		if udt, ok := frame.(id3v2.UserDefinedTextFrame); ok {
			frames[udt.Description] = udt.Value
		}
	}
	return frames
}

func TestWriterReplacesNamespacedFrames(t *testing.T) {
	path := newTestMP3(t, func(tag *id3v2.Tag) {
		tag.AddUserDefinedTextFrame(id3v2.UserDefinedTextFrame{
			Encoding: id3v2.EncodingUTF8, Description: "MusicBrainz Work Id", Value: "abc",
		})
		tag.AddUserDefinedTextFrame(id3v2.UserDefinedTextFrame{
			Encoding: id3v2.EncodingUTF8, Description: "cwp_part_0", Value: "stale",
		})
	})

	w := NewWriter("cwp_")
	err := w.Write(path, Set{
		"part_0":      "Allegro",
		"part_levels": "1",
	})
	if err != nil {
		t.Fatalf("Write error: %v", err)
	}

	frames := userFrames(t, path)
	if frames["cwp_part_0"] != "Allegro" {
		t.Errorf("cwp_part_0 = %q, want %q", frames["cwp_part_0"], "Allegro")
	}
	if frames["cwp_part_levels"] != "1" {
		t.Errorf("cwp_part_levels = %q, want %q", frames["cwp_part_levels"], "1")
	}
	// The foreign frame survives; there is exactly one cwp_part_0 left.
	if frames["MusicBrainz Work Id"] != "abc" {
		t.Errorf("foreign TXXX frame lost: %v", frames)
	}
	if len(frames) != 3 {
		t.Errorf("frame count = %d (%v), want 3", len(frames), frames)
	}
}

func TestReaderReadsInputFrames(t *testing.T) {
	path := newTestMP3(t, func(tag *id3v2.Tag) {
		tag.SetTitle("Beethoven: Symphony No. 5: I. Allegro con brio")
		tag.AddTextFrame("TCOM", id3v2.EncodingUTF8, "Beethoven, Ludwig van")
		tag.AddUserDefinedTextFrame(id3v2.UserDefinedTextFrame{
			Encoding: id3v2.EncodingUTF8, Description: "MusicBrainz Work Id", Value: "leaf-id",
		})
	})

	track, err := NewReader().ReadTrack(path)
	if err != nil {
		t.Fatalf("ReadTrack error: %v", err)
	}
	if track.Title != "Beethoven: Symphony No. 5: I. Allegro con brio" {
		t.Errorf("Title = %q", track.Title)
	}
	if track.LeafWorkID() != "leaf-id" {
		t.Errorf("LeafWorkID = %q, want %q", track.LeafWorkID(), "leaf-id")
	}
	if len(track.Composers) != 1 || track.Composers[0] != "Beethoven, Ludwig van" {
		t.Errorf("Composers = %v", track.Composers)
	}
}

func TestReaderSplitsMultipleWorkIDs(t *testing.T) {
	path := newTestMP3(t, func(tag *id3v2.Tag) {
		tag.AddUserDefinedTextFrame(id3v2.UserDefinedTextFrame{
			Encoding: id3v2.EncodingUTF8, Description: "MusicBrainz Work Id", Value: "first-id; second-id",
		})
	})

	track, err := NewReader().ReadTrack(path)
	if err != nil {
		t.Fatalf("ReadTrack error: %v", err)
	}
	if len(track.WorkIDs) != 2 {
		t.Fatalf("WorkIDs = %v, want 2 ids", track.WorkIDs)
	}
	if track.LeafWorkID() != "first-id" {
		t.Errorf("LeafWorkID = %q, want the first id", track.LeafWorkID())
	}
}

func TestReaderMissingFile(t *testing.T) {
	_, err := NewReader().ReadTrack(filepath.Join(t.TempDir(), "nope.mp3"))
	if err == nil {
		t.Fatal("ReadTrack succeeded on a missing file")
	}
}

func TestWriterThenReaderRoundTrip(t *testing.T) {
	path := newTestMP3(t, func(tag *id3v2.Tag) {
		tag.SetTitle("Symphony No. 5: I. Allegro con brio")
		tag.AddUserDefinedTextFrame(id3v2.UserDefinedTextFrame{
			Encoding: id3v2.EncodingUTF8, Description: "MusicBrainz Work Id", Value: "leaf-id",
		})
	})

	if err := NewWriter("cwp_").Write(path, Set{"work_0": "Symphony No. 5"}); err != nil {
		t.Fatalf("Write error: %v", err)
	}

	// Writing output tags must not disturb the input frames.
	track, err := NewReader().ReadTrack(path)
	if err != nil {
		t.Fatalf("ReadTrack error: %v", err)
	}
	if track.LeafWorkID() != "leaf-id" {
		t.Errorf("LeafWorkID = %q after write, want %q", track.LeafWorkID(), "leaf-id")
	}
	if track.Title != "Symphony No. 5: I. Allegro con brio" {
		t.Errorf("Title = %q after write", track.Title)
	}
}
