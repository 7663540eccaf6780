package store

import (
	"database/sql"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenCreatesParentDirAndSchema(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "store.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	if s.Path() != path {
		t.Fatalf("expected path %s, got %s", path, s.Path())
	}
}

func TestAppendAndFetchPatchHistory(t *testing.T) {
	s := openTestStore(t)

	if err := s.AppendPatch(PatchLogEntry{
		PatchID: "patch-1", SessionID: "sess-a", Description: "set width", Direction: DirectionApplied, PatchJSON: "{}",
	}); err != nil {
		t.Fatalf("AppendPatch: %v", err)
	}
	if err := s.AppendPatch(PatchLogEntry{
		PatchID: "patch-1", SessionID: "sess-a", Description: "set width", Direction: DirectionUndone, PatchJSON: "{}",
	}); err != nil {
		t.Fatalf("AppendPatch undo: %v", err)
	}

	history, err := s.PatchHistoryForSession("sess-a")
	if err != nil {
		t.Fatalf("PatchHistoryForSession: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("expected 2 entries (applied + undone), got %d", len(history))
	}
	if history[0].Direction != DirectionApplied || history[1].Direction != DirectionUndone {
		t.Fatalf("expected append-only ordering applied then undone, got %v", history)
	}
}

func TestLatestPatchReturnsMostRecentEntry(t *testing.T) {
	s := openTestStore(t)
	s.AppendPatch(PatchLogEntry{PatchID: "p", SessionID: "s", Direction: DirectionApplied, PatchJSON: "{}"})
	s.AppendPatch(PatchLogEntry{PatchID: "p", SessionID: "s", Direction: DirectionUndone, PatchJSON: "{}"})

	latest, err := s.LatestPatch("p")
	if err != nil {
		t.Fatalf("LatestPatch: %v", err)
	}
	if latest.Direction != DirectionUndone {
		t.Fatalf("expected latest direction undone, got %v", latest.Direction)
	}
}

func TestLatestPatchNoRowsError(t *testing.T) {
	s := openTestStore(t)
	_, err := s.LatestPatch("missing")
	if err != sql.ErrNoRows {
		t.Fatalf("expected sql.ErrNoRows, got %v", err)
	}
}

func TestAttestationCacheRoundTrip(t *testing.T) {
	s := openTestStore(t)

	if _, ok, err := s.LookupAttestationReport("abc123"); err != nil || ok {
		t.Fatalf("expected cache miss on empty store, got ok=%v err=%v", ok, err)
	}

	if err := s.CacheAttestationReport("abc123", `{"status":"passed"}`); err != nil {
		t.Fatalf("CacheAttestationReport: %v", err)
	}

	got, ok, err := s.LookupAttestationReport("abc123")
	if err != nil || !ok {
		t.Fatalf("expected cache hit, got ok=%v err=%v", ok, err)
	}
	if got != `{"status":"passed"}` {
		t.Fatalf("unexpected cached report: %s", got)
	}
}

func TestCacheAttestationReportOverwritesExisting(t *testing.T) {
	s := openTestStore(t)
	s.CacheAttestationReport("h", "first")
	s.CacheAttestationReport("h", "second")

	got, _, err := s.LookupAttestationReport("h")
	if err != nil {
		t.Fatalf("LookupAttestationReport: %v", err)
	}
	if got != "second" {
		t.Fatalf("expected overwrite to 'second', got %q", got)
	}
}
