package library

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/zprint/zprint/internal/model"
)

func serviceWithModel(t *testing.T, name string, gcodes []string) (*Service, *model.Model) {
	t.Helper()
	root := t.TempDir()
	folder := filepath.Join(root, name)
	if err := os.Mkdir(folder, 0o755); err != nil {
		t.Fatal(err)
	}

	meta := model.Metadata{Name: name, ModelFile: "part.stl", ModelFiles: []string{"part.stl"}}
	writeFixture(t, filepath.Join(folder, "part.stl"), asciiSTL)
	for _, g := range gcodes {
		writeFixture(t, filepath.Join(folder, g), ";TIME:600\nG28\n")
		meta.GCodes = append(meta.GCodes, model.GCodeEntry{File: g})
	}
	if err := SaveMetadata(folder, meta); err != nil {
		t.Fatal(err)
	}

	s := NewService(root, 1)
	m := &model.Model{ID: name, Folder: folder, Metadata: meta}
	s.models = []*model.Model{m}
	return s, m
}

func TestSetActive(t *testing.T) {
	s, m := serviceWithModel(t, "benchy", []string{"hull.gcode", "deck.gcode"})

	if err := s.SetActive(m.ID); err != nil {
		t.Fatalf("SetActive: %v", err)
	}

	for _, name := range []string{"hull.gcode", "deck.gcode"} {
		if _, err := os.Stat(filepath.Join(s.RootDir(), name)); err != nil {
			t.Errorf("active copy %s missing: %v", name, err)
		}
	}

	meta, err := LoadMetadata(m.Folder)
	if err != nil {
		t.Fatal(err)
	}
	if !meta.Active {
		t.Error("metadata should record the model as active")
	}
	if len(meta.ActiveGCodeFiles) != 2 {
		t.Errorf("ActiveGCodeFiles = %v", meta.ActiveGCodeFiles)
	}
}

func TestSetActive_Collision(t *testing.T) {
	s, m := serviceWithModel(t, "benchy", []string{"hull.gcode"})

	// An unrelated file already owns the plain name in the root
	writeFixture(t, filepath.Join(s.RootDir(), "hull.gcode"), "M104 S200\n")

	if err := s.SetActive(m.ID); err != nil {
		t.Fatalf("SetActive: %v", err)
	}

	meta, err := LoadMetadata(m.Folder)
	if err != nil {
		t.Fatal(err)
	}
	expected := "hull__benchy.gcode"
	if len(meta.ActiveGCodeFiles) != 1 || meta.ActiveGCodeFiles[0] != expected {
		t.Fatalf("ActiveGCodeFiles = %v, expected [%s]", meta.ActiveGCodeFiles, expected)
	}
	if _, err := os.Stat(filepath.Join(s.RootDir(), expected)); err != nil {
		t.Errorf("suffixed copy missing: %v", err)
	}

	// The unrelated file is untouched
	data, err := os.ReadFile(filepath.Join(s.RootDir(), "hull.gcode"))
	if err != nil || string(data) != "M104 S200\n" {
		t.Errorf("pre-existing root file was modified: %q, %v", data, err)
	}
}

func TestSetActive_ReusesIdenticalCopy(t *testing.T) {
	s, m := serviceWithModel(t, "benchy", []string{"hull.gcode"})

	if err := s.SetActive(m.ID); err != nil {
		t.Fatalf("first SetActive: %v", err)
	}
	first, err := os.Stat(filepath.Join(s.RootDir(), "hull.gcode"))
	if err != nil {
		t.Fatal(err)
	}

	// Activating again reuses the identical copy instead of suffixing
	if err := s.SetActive(m.ID); err != nil {
		t.Fatalf("second SetActive: %v", err)
	}
	meta, err := LoadMetadata(m.Folder)
	if err != nil {
		t.Fatal(err)
	}
	if len(meta.ActiveGCodeFiles) != 1 || meta.ActiveGCodeFiles[0] != "hull.gcode" {
		t.Errorf("ActiveGCodeFiles = %v, expected reused plain name", meta.ActiveGCodeFiles)
	}
	second, err := os.Stat(filepath.Join(s.RootDir(), "hull.gcode"))
	if err != nil {
		t.Fatal(err)
	}
	if !second.ModTime().Equal(first.ModTime()) {
		t.Error("identical copy should not be rewritten")
	}
}

func TestSetActive_Errors(t *testing.T) {
	s, m := serviceWithModel(t, "benchy", nil)

	if err := s.SetActive("ghost"); err == nil {
		t.Error("unknown model should fail")
	}
	if err := s.SetActive(m.ID); err == nil {
		t.Error("model without G-code should fail")
	}

	// All recorded G-code files missing on disk
	s2, m2 := serviceWithModel(t, "vase", []string{"body.gcode"})
	if err := os.Remove(filepath.Join(m2.Folder, "body.gcode")); err != nil {
		t.Fatal(err)
	}
	if err := s2.SetActive(m2.ID); err == nil {
		t.Error("activation with no copyable files should fail")
	}
}

func TestSetInactive(t *testing.T) {
	s, m := serviceWithModel(t, "benchy", []string{"hull.gcode"})

	if err := s.SetActive(m.ID); err != nil {
		t.Fatalf("SetActive: %v", err)
	}
	if err := s.SetInactive(m.ID); err != nil {
		t.Fatalf("SetInactive: %v", err)
	}

	if _, err := os.Stat(filepath.Join(s.RootDir(), "hull.gcode")); !os.IsNotExist(err) {
		t.Error("active copy should be removed from the root")
	}
	meta, err := LoadMetadata(m.Folder)
	if err != nil {
		t.Fatal(err)
	}
	if meta.Active || len(meta.ActiveGCodeFiles) != 0 {
		t.Errorf("metadata should be deactivated, got %+v", meta)
	}

	// The folder copy survives deactivation
	if _, err := os.Stat(filepath.Join(m.Folder, "hull.gcode")); err != nil {
		t.Errorf("folder copy should survive: %v", err)
	}
}
