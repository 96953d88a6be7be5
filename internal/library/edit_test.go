package library

import (
	"os"
	"path/filepath"
	"testing"
)

func TestUpdateMetadata(t *testing.T) {
	s, m := serviceWithModel(t, "benchy", []string{"hull.gcode"})
	created := m.Metadata.TimeCreated

	meta := m.Metadata
	meta.Name = "Benchy XL"
	meta.TimeCreated = ""
	if err := s.UpdateMetadata(m.ID, meta); err != nil {
		t.Fatalf("UpdateMetadata: %v", err)
	}

	loaded, err := LoadMetadata(m.Folder)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Name != "Benchy XL" {
		t.Errorf("Name = %q", loaded.Name)
	}
	if loaded.TimeCreated != created {
		t.Errorf("TimeCreated should survive edits: %q != %q", loaded.TimeCreated, created)
	}
	if loaded.LastModified == "" {
		t.Error("LastModified should be refreshed")
	}

	if cached, ok := s.GetModel(m.ID); !ok || cached.Name() != "Benchy XL" {
		t.Error("cached model should reflect the edit")
	}

	if err := s.UpdateMetadata("ghost", meta); err == nil {
		t.Error("unknown model should fail")
	}
}

func TestDelete(t *testing.T) {
	s, m := serviceWithModel(t, "benchy", []string{"hull.gcode"})
	if err := s.SetActive(m.ID); err != nil {
		t.Fatalf("SetActive: %v", err)
	}

	if err := s.Delete(m.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if _, err := os.Stat(m.Folder); !os.IsNotExist(err) {
		t.Error("model folder should be removed")
	}
	if _, err := os.Stat(filepath.Join(s.RootDir(), "hull.gcode")); !os.IsNotExist(err) {
		t.Error("active root copy should be removed")
	}
	if _, ok := s.GetModel(m.ID); ok {
		t.Error("deleted model should leave the cache")
	}

	if err := s.Delete(m.ID); err == nil {
		t.Error("double delete should fail")
	}
}

func TestRelocate(t *testing.T) {
	s, m := serviceWithModel(t, "benchy", []string{"hull.gcode"})
	oldFolder := m.Folder
	newRoot := filepath.Join(t.TempDir(), "moved-library")

	moved, err := s.Relocate(newRoot)
	if err != nil {
		t.Fatalf("Relocate: %v", err)
	}
	if moved != 1 {
		t.Errorf("moved = %d, expected 1", moved)
	}
	if s.RootDir() != newRoot {
		t.Errorf("RootDir = %q, expected %q", s.RootDir(), newRoot)
	}

	if _, err := os.Stat(filepath.Join(newRoot, "benchy", MetadataFilename)); err != nil {
		t.Errorf("model folder should exist at the new root: %v", err)
	}
	if _, err := os.Stat(oldFolder); !os.IsNotExist(err) {
		t.Error("model folder should be gone from the old root")
	}

	// Relocating to the current root is a no-op
	if moved, err := s.Relocate(newRoot); err != nil || moved != 0 {
		t.Errorf("same-root relocate = %d, %v", moved, err)
	}
}

func TestRelocate_SkipsExisting(t *testing.T) {
	s, _ := serviceWithModel(t, "benchy", nil)
	newRoot := t.TempDir()

	// A folder with the same name already lives at the destination
	blocker := filepath.Join(newRoot, "benchy")
	if err := os.Mkdir(blocker, 0o755); err != nil {
		t.Fatal(err)
	}
	writeFixture(t, filepath.Join(blocker, "keep.txt"), "existing\n")

	moved, err := s.Relocate(newRoot)
	if err != nil {
		t.Fatalf("Relocate: %v", err)
	}
	if moved != 0 {
		t.Errorf("moved = %d, expected 0", moved)
	}
	if _, err := os.Stat(filepath.Join(blocker, "keep.txt")); err != nil {
		t.Errorf("existing destination folder must be untouched: %v", err)
	}
}
