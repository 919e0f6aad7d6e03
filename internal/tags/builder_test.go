package tags

import (
	"testing"

	"github.com/handiism/workparts/internal/model"
)

func chainOf(works ...*model.Work) model.Chain {
	return model.Chain{Works: works}
}

func TestBuildThreeLevelChain(t *testing.T) {
	res := &model.TrackResolution{
		Track: &model.Track{
			Path:      "/music/beethoven/02.mp3",
			Title:     "Beethoven: Symphony No. 5: II. Andante con moto",
			Composers: []string{"Beethoven, Ludwig van"},
		},
		Chain: chainOf(
			&model.Work{ID: "leaf", Name: "Symphony No. 5 in C minor, Op. 67: II. Andante con moto", ParentID: "mid"},
			&model.Work{ID: "mid", Name: "Symphony No. 5 in C minor, Op. 67", ParentID: "top"},
			&model.Work{ID: "top", Name: "Symphonies"},
		),
	}

	set := NewBuilder().Build(res)

	want := map[string]string{
		"work_0":      "Symphony No. 5 in C minor, Op. 67: II. Andante con moto",
		"workid_0":    "leaf",
		"work_1":      "Symphony No. 5 in C minor, Op. 67",
		"workid_1":    "mid",
		"work_2":      "Symphonies",
		"workid_2":    "top",
		"work_top":    "Symphonies",
		"workid_top":  "top",
		"part_levels": "2",
		"part_0":      "II. Andante con moto",
		"part_1":      "Symphony No. 5 in C minor, Op. 67",
		"part":        "II. Andante con moto",

		"groupheading": "Symphonies:: Symphony No. 5 in C minor, Op. 67",

		// The composer prefix is removed before the title split.
		"title_work":     "Symphony No. 5",
		"title_movement": "II. Andante con moto",

		// Title text already contained in the hierarchy adds nothing.
		"extended_part":         "II. Andante con moto",
		"extended_groupheading": "Symphonies:: Symphony No. 5 in C minor, Op. 67",
	}
	for k, v := range want {
		if set[k] != v {
			t.Errorf("set[%q] = %q, want %q", k, set[k], v)
		}
	}
	if _, ok := set["error"]; ok {
		t.Errorf("error tag present without warnings: %q", set["error"])
	}
}

func TestBuildStripsAncestorDespitePunctuation(t *testing.T) {
	res := &model.TrackResolution{
		Track: &model.Track{Title: "Symphony No.5: Allegro"},
		Chain: chainOf(
			&model.Work{ID: "leaf", Name: "Symphony No.5: Allegro", ParentID: "top"},
			&model.Work{ID: "top", Name: "Symphony No. 5"},
		),
	}

	set := NewBuilder().Build(res)

	if set["part_0"] != "Allegro" {
		t.Errorf("part_0 = %q, want %q", set["part_0"], "Allegro")
	}
	if set["groupheading"] != "Symphony No. 5" {
		t.Errorf("groupheading = %q, want %q", set["groupheading"], "Symphony No. 5")
	}
}

func TestBuildFallsBackWhenNoOverlap(t *testing.T) {
	res := &model.TrackResolution{
		Track: &model.Track{Title: "Comfort ye"},
		Chain: chainOf(
			&model.Work{ID: "leaf", Name: "Comfort ye", ParentID: "top"},
			&model.Work{ID: "top", Name: "Messiah, HWV 56"},
		),
	}

	set := NewBuilder().Build(res)

	// No ancestor text to strip: part_0 equals work_0 unchanged.
	if set["part_0"] != set["work_0"] {
		t.Errorf("part_0 = %q, want work_0 %q", set["part_0"], set["work_0"])
	}
}

func TestBuildExtendedTagsCarryTitleText(t *testing.T) {
	res := &model.TrackResolution{
		Track: &model.Track{Title: "Symphony No.5: Allegro con brio"},
		Chain: chainOf(
			&model.Work{ID: "leaf", Name: "Symphony No.5: Allegro", ParentID: "top"},
			&model.Work{ID: "top", Name: "Symphony No.5"},
		),
	}

	set := NewBuilder().Build(res)

	if set["extended_part"] != "Allegro {Allegro con brio}" {
		t.Errorf("extended_part = %q, want %q", set["extended_part"], "Allegro {Allegro con brio}")
	}
	// title_work is already contained in the groupheading.
	if set["extended_groupheading"] != "Symphony No.5" {
		t.Errorf("extended_groupheading = %q, want %q", set["extended_groupheading"], "Symphony No.5")
	}
}

func TestBuildSingleWorkChain(t *testing.T) {
	res := &model.TrackResolution{
		Track: &model.Track{Title: "Nocturne in E-flat major: Andante"},
		Chain: chainOf(&model.Work{ID: "only", Name: "Nocturne in E-flat major, Op. 9 No. 2"}),
	}

	set := NewBuilder().Build(res)

	if set["part_levels"] != "0" {
		t.Errorf("part_levels = %q, want %q", set["part_levels"], "0")
	}
	if set["part"] != "Nocturne in E-flat major, Op. 9 No. 2" {
		t.Errorf("part = %q, want the work name", set["part"])
	}
	if _, ok := set["groupheading"]; ok {
		t.Error("groupheading present for a single-work chain")
	}
	// Titles are not split when there is no hierarchy above the work.
	if _, ok := set["title_work"]; ok {
		t.Error("title_work present for a single-work chain")
	}
}

func TestBuildEmptyChain(t *testing.T) {
	res := &model.TrackResolution{
		Track:    &model.Track{Title: "Untitled"},
		Warnings: []string{"NotFound: no work with id abc"},
	}

	set := NewBuilder().Build(res)

	if set["work_0"] != "" {
		t.Errorf("work_0 = %q, want empty", set["work_0"])
	}
	if set["part_levels"] != "0" {
		t.Errorf("part_levels = %q, want %q", set["part_levels"], "0")
	}
	if set["error"] != "NotFound: no work with id abc" {
		t.Errorf("error = %q, want the warning text", set["error"])
	}
}

func TestBuildJoinsWarnings(t *testing.T) {
	res := &model.TrackResolution{
		Track:    &model.Track{Title: "Untitled"},
		Chain:    chainOf(&model.Work{ID: "only", Name: "Work"}),
		Warnings: []string{"first warning", "second warning"},
	}

	set := NewBuilder().Build(res)

	if set["error"] != "first warning; second warning" {
		t.Errorf("error = %q, want warnings joined with %q", set["error"], "; ")
	}
}

func TestAlbumSet(t *testing.T) {
	tests := []struct {
		name       string
		single     bool
		levels     int
		wantSingle string
		wantLevels string
	}{
		{"single work album", true, 3, "1", "3"},
		{"mixed album", false, 1, "0", "1"},
		{"flat album", false, 0, "0", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set := AlbumSet(tt.single, tt.levels)
			if set["single_work_album"] != tt.wantSingle {
				t.Errorf("single_work_album = %q, want %q", set["single_work_album"], tt.wantSingle)
			}
			if set["work_part_levels"] != tt.wantLevels {
				t.Errorf("work_part_levels = %q, want %q", set["work_part_levels"], tt.wantLevels)
			}
		})
	}
}

func TestSetMerge(t *testing.T) {
	base := Set{"part_levels": "2", "part": "Allegro"}
	merged := base.Merge(Set{"single_work_album": "1", "part_levels": "3"})

	if merged["single_work_album"] != "1" {
		t.Errorf("merged single_work_album = %q, want %q", merged["single_work_album"], "1")
	}
	if merged["part_levels"] != "3" {
		t.Errorf("merge does not overlay: part_levels = %q", merged["part_levels"])
	}
	if base["part_levels"] != "2" {
		t.Errorf("Merge mutated the receiver: part_levels = %q", base["part_levels"])
	}
}
