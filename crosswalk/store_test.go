package crosswalk

import (
	"os"
	"path/filepath"
	"testing"
)

func writeCrosswalk(t *testing.T, path string, entries []*Entry) {
	t.Helper()
	if err := Save(path, entries); err != nil {
		t.Fatalf("saving crosswalk: %v", err)
	}
}

func TestLoadWithOverrides_Precedence(t *testing.T) {
	dir := t.TempDir()
	built := filepath.Join(dir, "station_crosswalk.csv")
	overrides := filepath.Join(dir, "manual_overrides.csv")

	writeCrosswalk(t, built, []*Entry{
		{LegacyID: "519", LegacyName: "Pershing Square North", ModernID: "wrong-id", MatchConfidence: "low"},
		{LegacyID: "72", LegacyName: "W 52 St & 11 Ave", ModernID: "id-72", MatchConfidence: "high"},
	})
	writeCrosswalk(t, overrides, []*Entry{
		{LegacyID: "519", LegacyName: "Pershing Square North", ModernID: "corrected-id", MatchConfidence: "high"},
	})

	table, err := LoadWithOverrides(built, overrides)
	if err != nil {
		t.Fatalf("LoadWithOverrides: %v", err)
	}
	if table.Len() != 2 {
		t.Fatalf("len = %d, want 2 (override replaces, never duplicates)", table.Len())
	}
	e, ok := table.Lookup("519")
	if !ok {
		t.Fatal("entry 519 missing after merge")
	}
	if e.ModernID != "corrected-id" {
		t.Errorf("modern_id = %q, want the override row to win", e.ModernID)
	}
	if e2, _ := table.Lookup("72"); e2.ModernID != "id-72" {
		t.Errorf("untouched entry 72 changed: %+v", e2)
	}
}

func TestLoadWithOverrides_MissingOrEmptyOverrides(t *testing.T) {
	dir := t.TempDir()
	built := filepath.Join(dir, "station_crosswalk.csv")
	writeCrosswalk(t, built, []*Entry{{LegacyID: "519", ModernID: "id-519"}})

	table, err := LoadWithOverrides(built, filepath.Join(dir, "missing.csv"))
	if err != nil {
		t.Fatalf("missing override file should not error: %v", err)
	}
	if table.Len() != 1 {
		t.Fatalf("len = %d, want 1", table.Len())
	}

	empty := filepath.Join(dir, "manual_overrides.csv")
	if _, err := EnsureOverrideScaffold(empty); err != nil {
		t.Fatalf("creating scaffold: %v", err)
	}
	table, err = LoadWithOverrides(built, empty)
	if err != nil {
		t.Fatalf("empty override file should not error: %v", err)
	}
	if table.Len() != 1 {
		t.Fatalf("len = %d, want 1 with empty overrides", table.Len())
	}
}

func TestEnsureOverrideScaffold_NeverClobbers(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "manual_overrides.csv")

	created, err := EnsureOverrideScaffold(path)
	if err != nil || !created {
		t.Fatalf("first call: created=%v err=%v, want created", created, err)
	}

	// Simulate an operator edit, then re-run the builder's scaffold step.
	writeCrosswalk(t, path, []*Entry{{LegacyID: "519", ModernID: "hand-fixed"}})
	before, _ := os.ReadFile(path)

	created, err = EnsureOverrideScaffold(path)
	if err != nil {
		t.Fatalf("second call: %v", err)
	}
	if created {
		t.Error("scaffold recreated over an existing override table")
	}
	after, _ := os.ReadFile(path)
	if string(before) != string(after) {
		t.Error("override table modified by scaffold step")
	}
}

func TestLookupModern(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "crosswalk.csv")
	writeCrosswalk(t, path, []*Entry{
		{LegacyID: "519", ModernID: "id-519"},
		{LegacyID: "830", ModernID: ""}, // ghost
	})

	table, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if e, ok := table.LookupModern("id-519"); !ok || e.LegacyID != "519" {
		t.Errorf("LookupModern(id-519) = %+v, %v", e, ok)
	}
	if _, ok := table.LookupModern(""); ok {
		t.Error("ghost entries must not be indexed under an empty modern ID")
	}
	if e, _ := table.Lookup("830"); !e.IsGhost() {
		t.Error("entry 830 should be a ghost")
	}
}
