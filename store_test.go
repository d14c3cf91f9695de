package fund

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestStoreLoadMissing(t *testing.T) {
	s := NewStore(t.TempDir())
	f, err := s.Load()
	if err != nil {
		t.Fatalf("Load() on empty dir failed: %v", err)
	}
	if len(f.Investors) != 0 || !f.TotalUnits.IsZero() {
		t.Errorf("fresh fund is not empty")
	}
	eq(t, "fresh price", f.Price().Decimal(), 1)
}

func TestStoreSaveLoad(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(dir)

	f := buildLivedInFund(t)
	if err := s.Save(f); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	// Both snapshot files exist side by side.
	for _, file := range []string{s.PrivateFile, s.PublicFile} {
		if _, err := os.Stat(file); err != nil {
			t.Errorf("snapshot %s not written: %v", file, err)
		}
	}
	if runtime.GOOS != "windows" {
		info, err := os.Stat(s.PrivateFile)
		if err != nil {
			t.Fatal(err)
		}
		if info.Mode().Perm() != 0600 {
			t.Errorf("private snapshot mode = %v, want 0600", info.Mode().Perm())
		}
	}

	back, err := s.Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if !back.TotalUnits.Equal(f.TotalUnits) {
		t.Errorf("units lost across save/load: %s != %s", back.TotalUnits, f.TotalUnits)
	}
	if back.Find("alice") == nil {
		t.Errorf("investors lost across save/load")
	}
}

func TestStoreSaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(dir)
	if err := s.Save(buildLivedInFund(t)); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if filepath.Ext(e.Name()) != ".json" {
			t.Errorf("stray file after save: %s", e.Name())
		}
	}
	if len(entries) != 2 {
		t.Errorf("expected exactly the two snapshots, got %d files", len(entries))
	}
}

func TestStoreLoadRejectsGarbage(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(dir)
	if err := os.WriteFile(s.PrivateFile, []byte("not json"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Load(); err == nil {
		t.Fatal("Load() accepted garbage")
	}
}
