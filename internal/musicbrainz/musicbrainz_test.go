package musicbrainz

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	wshttp "github.com/handiism/workparts/internal/http"
	"github.com/handiism/workparts/internal/musicbrainz/dto"
)

func testClient(t *testing.T, handler http.Handler, maxAttempts int) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	transport := wshttp.NewClient("workparts-test", 10000, 5*time.Second)
	client := NewClient(transport, Config{
		BaseURL:         server.URL,
		MaxAttempts:     maxAttempts,
		InitialCooldown: time.Millisecond,
		MaxCooldown:     2 * time.Millisecond,
	})
	return client, server
}

func TestLookupWork_Success(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/work/leaf-id" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("inc"); got != "work-rels" {
			t.Errorf("inc = %q, want work-rels", got)
		}
		w.Write([]byte(`{
			"id": "leaf-id",
			"title": "Symphony No. 5: II. Andante",
			"relations": [
				{"type": "parts", "direction": "backward",
				 "work": {"id": "parent-id", "title": "Symphony No. 5"}},
				{"type": "parts", "direction": "forward",
				 "work": {"id": "child-id", "title": "A fragment"}}
			]
		}`))
	}), 6)

	work, warns, err := client.LookupWork(context.Background(), "leaf-id")
	if err != nil {
		t.Fatalf("LookupWork() error = %v", err)
	}
	if work.ID != "leaf-id" || work.Name != "Symphony No. 5: II. Andante" {
		t.Errorf("unexpected work %+v", work)
	}
	if work.ParentID != "parent-id" {
		t.Errorf("ParentID = %q, want parent-id (forward relations must be ignored)", work.ParentID)
	}
	if len(warns) != 0 {
		t.Errorf("unexpected warnings %v", warns)
	}
}

func TestLookupWork_RootWork(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id": "root-id", "title": "Complete Symphonies", "relations": []}`))
	}), 6)

	work, _, err := client.LookupWork(context.Background(), "root-id")
	if err != nil {
		t.Fatalf("LookupWork() error = %v", err)
	}
	if !work.IsRoot() {
		t.Errorf("work with no backward parts relation should be a root, got parent %q", work.ParentID)
	}
}

func TestLookupWork_MultipleParents(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"id": "leaf-id",
			"title": "Aria",
			"relations": [
				{"type": "parts", "direction": "backward",
				 "work": {"id": "short-id", "title": "Suite"}},
				{"type": "parts", "direction": "backward",
				 "work": {"id": "long-id", "title": "Suite for Orchestra No. 3"}}
			]
		}`))
	}), 6)

	work, warns, err := client.LookupWork(context.Background(), "leaf-id")
	if err != nil {
		t.Fatalf("LookupWork() error = %v", err)
	}
	if work.ParentID != "long-id" {
		t.Errorf("ParentID = %q, want longest-named candidate long-id", work.ParentID)
	}
	if len(warns) != 1 {
		t.Fatalf("warnings = %v, want exactly one multi-parent warning", warns)
	}
}

func TestLookupWork_NotFoundIsNotRetried(t *testing.T) {
	var calls int32
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		http.Error(w, "not found", http.StatusNotFound)
	}), 6)

	_, _, err := client.LookupWork(context.Background(), "missing-id")
	if !IsNotFound(err) {
		t.Fatalf("error = %v, want NotFound", err)
	}
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Errorf("lookup attempts = %d, want 1 (not-found must not be retried)", got)
	}
}

func TestLookupWork_TransientThenSuccess(t *testing.T) {
	const transientFailures = 3
	var calls int32
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) <= transientFailures {
			http.Error(w, "maintenance", http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`{"id": "leaf-id", "title": "Nocturne", "relations": []}`))
	}), 6)

	work, _, err := client.LookupWork(context.Background(), "leaf-id")
	if err != nil {
		t.Fatalf("LookupWork() error = %v", err)
	}
	if work.Name != "Nocturne" {
		t.Errorf("unexpected work %+v", work)
	}
	if got := atomic.LoadInt32(&calls); got != transientFailures+1 {
		t.Errorf("lookup attempts = %d, want %d", got, transientFailures+1)
	}
}

func TestLookupWork_TransientExhaustion(t *testing.T) {
	var calls int32
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		http.Error(w, "maintenance", http.StatusServiceUnavailable)
	}), 6)

	_, _, err := client.LookupWork(context.Background(), "leaf-id")
	if !IsServiceUnavailable(err) {
		t.Fatalf("error = %v, want ServiceUnavailable", err)
	}
	if got := atomic.LoadInt32(&calls); got != 6 {
		t.Errorf("lookup attempts = %d, want exactly 6", got)
	}
}

func TestLookupWork_MalformedResponse(t *testing.T) {
	var calls int32
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Write([]byte(`<metadata>this is not json</metadata>`))
	}), 6)

	_, _, err := client.LookupWork(context.Background(), "leaf-id")
	if !IsMalformed(err) {
		t.Fatalf("error = %v, want Malformed", err)
	}
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Errorf("lookup attempts = %d, want 1 (malformed must not be retried)", got)
	}
}

func TestLookupWork_CanceledContext(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "maintenance", http.StatusServiceUnavailable)
	}), 6)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := client.LookupWork(ctx, "leaf-id")
	if err == nil {
		t.Fatal("LookupWork() with canceled context should fail")
	}
	if _, ok := KindOf(err); ok {
		t.Errorf("cancellation should not be classified as a lookup failure, got %v", err)
	}
}

func TestLongestName_Select(t *testing.T) {
	tests := []struct {
		name       string
		candidates []ParentCandidate
		wantID     string
	}{
		{
			"single",
			[]ParentCandidate{{ID: "a", Name: "Suite"}},
			"a",
		},
		{
			"longest wins",
			[]ParentCandidate{
				{ID: "a", Name: "Suite"},
				{ID: "b", Name: "Suite for Orchestra"},
			},
			"b",
		},
		{
			"tie keeps first encountered",
			[]ParentCandidate{
				{ID: "a", Name: "Suite No. 1"},
				{ID: "b", Name: "Suite No. 2"},
			},
			"a",
		},
		{
			"unnamed candidates fall back to first",
			[]ParentCandidate{
				{ID: "a", Name: ""},
				{ID: "b", Name: ""},
			},
			"a",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LongestName{}.Select(tt.candidates)
			if got.ID != tt.wantID {
				t.Errorf("Select() = %q, want %q", got.ID, tt.wantID)
			}
		})
	}
}

func TestParentCandidates_SkipsIncompleteRelations(t *testing.T) {
	resp := &dto.WorkResponse{
		ID:    "x",
		Title: "X",
		Relations: []dto.Relation{
			{Type: "parts", Direction: "backward", Work: nil},
			{Type: "parts", Direction: "backward", Work: &dto.RelatedWork{ID: "", Title: "nameless"}},
			{Type: "arrangement", Direction: "backward", Work: &dto.RelatedWork{ID: "arr", Title: "Arr"}},
			{Type: "parts", Direction: "backward", Work: &dto.RelatedWork{ID: "ok", Title: "OK"}},
		},
	}

	got := parentCandidates(resp)
	if len(got) != 1 || got[0].ID != "ok" {
		t.Errorf("parentCandidates() = %v, want only the complete backward parts relation", got)
	}
}
