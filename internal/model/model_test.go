package model

import (
	"path/filepath"
	"testing"
	"time"
)

func TestModel_Name(t *testing.T) {
	m := &Model{Folder: "/library/benchy", Metadata: Metadata{Name: "Benchy"}}
	if m.Name() != "Benchy" {
		t.Errorf("Name() = %q, expected %q", m.Name(), "Benchy")
	}

	m.Metadata.Name = ""
	if m.Name() != "benchy" {
		t.Errorf("Name() fallback = %q, expected folder leaf %q", m.Name(), "benchy")
	}
}

func TestModel_PrimaryModelPath(t *testing.T) {
	m := &Model{
		Folder:   "/library/benchy",
		Metadata: Metadata{ModelFile: "benchy.stl", ModelFiles: []string{"benchy.stl", "hull.stl"}},
	}
	expected := filepath.Join("/library/benchy", "benchy.stl")
	if m.PrimaryModelPath() != expected {
		t.Errorf("PrimaryModelPath() = %q, expected %q", m.PrimaryModelPath(), expected)
	}

	// Falls back to the first listed file when model_file is empty
	m.Metadata.ModelFile = ""
	if m.PrimaryModelPath() != expected {
		t.Errorf("PrimaryModelPath() fallback = %q, expected %q", m.PrimaryModelPath(), expected)
	}

	m.Metadata.ModelFiles = nil
	if m.PrimaryModelPath() != "" {
		t.Errorf("PrimaryModelPath() with no files = %q, expected empty", m.PrimaryModelPath())
	}
}

func TestModel_DisplayPrintTime(t *testing.T) {
	m := &Model{Metadata: Metadata{
		GCodes: []GCodeEntry{{File: "a.gcode"}, {File: "b.gcode", PrintTime: "2h 10m"}},
	}}
	if m.DisplayPrintTime() != "2h 10m" {
		t.Errorf("DisplayPrintTime() = %q, expected %q", m.DisplayPrintTime(), "2h 10m")
	}

	m.Metadata.PrintTime = "45m"
	if m.DisplayPrintTime() != "45m" {
		t.Errorf("DisplayPrintTime() = %q, expected model-level %q", m.DisplayPrintTime(), "45m")
	}
}

func TestModel_ActiveGCodeNames(t *testing.T) {
	m := &Model{Metadata: Metadata{
		ActiveGCodeFiles: []string{"part.gcode", "Part.GCODE", "", "lid.gcode", "part.gcode"},
	}}
	names := m.ActiveGCodeNames()
	expected := []string{"part.gcode", "lid.gcode"}
	if len(names) != len(expected) {
		t.Fatalf("ActiveGCodeNames() = %v, expected %v", names, expected)
	}
	for i, name := range expected {
		if names[i] != name {
			t.Errorf("ActiveGCodeNames()[%d] = %q, expected %q", i, names[i], name)
		}
	}
}

func TestMetadata_Touch(t *testing.T) {
	meta := &Metadata{}
	before := time.Now().UTC().Add(-time.Second)
	stamp := meta.Touch()

	if meta.LastModified == "" {
		t.Fatal("Touch() should set LastModified")
	}
	parsed, err := time.Parse(TimeLayout, meta.LastModified)
	if err != nil {
		t.Fatalf("LastModified %q does not match layout: %v", meta.LastModified, err)
	}
	if !parsed.Equal(stamp) {
		t.Errorf("LastModified %v does not round-trip to returned stamp %v", parsed, stamp)
	}
	if stamp.Before(before) {
		t.Errorf("Touch() stamp %v is in the past", stamp)
	}
}
