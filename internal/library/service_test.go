package library

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/zprint/zprint/internal/model"
)

const asciiSTL = `solid cube
facet normal 0 0 1
  outer loop
    vertex 0 0 0
    vertex 10 0 0
    vertex 0 10 0
  endloop
endfacet
facet normal 0 0 1
  outer loop
    vertex 10 0 0
    vertex 10 10 0
    vertex 0 10 0
  endloop
endfacet
endsolid cube
`

const sampleGCode = ";TIME:4500\n;Filament used: 10m\nG28\n"

func writeFixture(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func newModelFolder(t *testing.T, root, name string, meta *model.Metadata) string {
	t.Helper()
	folder := filepath.Join(root, name)
	if err := os.Mkdir(folder, 0o755); err != nil {
		t.Fatal(err)
	}
	writeFixture(t, filepath.Join(folder, "part.stl"), asciiSTL)
	writeFixture(t, filepath.Join(folder, "part.gcode"), sampleGCode)
	if meta != nil {
		if err := SaveMetadata(folder, *meta); err != nil {
			t.Fatal(err)
		}
	}
	return folder
}

func waitForScan(t *testing.T, s *Service, task *ScanTask) {
	t.Helper()
	deadline := time.Now().Add(10 * time.Second)
	for time.Now().Before(deadline) {
		current, ok := s.GetTask(task.ID)
		if !ok {
			t.Fatal("scan task disappeared")
		}
		if current.Status.IsFinished() {
			if current.Status == model.TaskStatusError {
				t.Fatalf("scan failed: %s", current.LastError)
			}
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("scan did not finish in time")
}

func TestScan(t *testing.T) {
	root := t.TempDir()
	newModelFolder(t, root, "benchy", &model.Metadata{
		Name:       "Benchy",
		ModelFile:  "part.stl",
		ModelFiles: []string{"part.stl"},
	})
	newModelFolder(t, root, "untracked_vase", nil)

	// Files directly in the root and hidden folders are not models
	writeFixture(t, filepath.Join(root, "stray.gcode"), sampleGCode)
	if err := os.Mkdir(filepath.Join(root, ".cache"), 0o755); err != nil {
		t.Fatal(err)
	}

	s := NewService(root, 2)
	task, err := s.Scan()
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	waitForScan(t, s, task)

	models := s.Models()
	if len(models) != 2 {
		t.Fatalf("expected 2 models, got %d", len(models))
	}

	// Sorted by display name, case-insensitively
	if models[0].Name() != "Benchy" || models[1].Name() != "untracked_vase" {
		t.Errorf("unexpected order: %s, %s", models[0].Name(), models[1].Name())
	}

	// The untracked folder got a synthesized model.json with G-code metadata
	synth := models[1]
	if synth.Metadata.ModelFile != "part.stl" {
		t.Errorf("synthesized ModelFile = %q", synth.Metadata.ModelFile)
	}
	if len(synth.Metadata.GCodes) != 1 || synth.Metadata.GCodes[0].PrintTime != "1h 15m" {
		t.Errorf("synthesized GCodes = %+v", synth.Metadata.GCodes)
	}
	if _, err := os.Stat(filepath.Join(synth.Folder, MetadataFilename)); err != nil {
		t.Errorf("synthesized model.json was not written: %v", err)
	}

	// Previews were rendered for both
	for _, m := range models {
		if _, err := os.Stat(filepath.Join(m.Folder, PreviewFilename)); err != nil {
			t.Errorf("preview missing for %s: %v", m.Name(), err)
		}
	}
}

func TestScan_RejectsConcurrent(t *testing.T) {
	root := t.TempDir()
	for i := 0; i < 4; i++ {
		newModelFolder(t, root, "model_"+strings.Repeat("x", i+1), nil)
	}

	s := NewService(root, 1)
	task, err := s.Scan()
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if _, err := s.Scan(); err == nil {
		waitForScan(t, s, task)
		t.Skip("first scan finished before the second attempt")
	}
	waitForScan(t, s, task)
}

func TestCreatePackage(t *testing.T) {
	root := t.TempDir()
	src := t.TempDir()
	stl := filepath.Join(src, "widget.stl")
	gcodePath := filepath.Join(src, "widget_2h30m_PLA_Red.gcode")
	writeFixture(t, stl, asciiSTL)
	writeFixture(t, gcodePath, "G28\n")

	s := NewService(root, 1)
	m, err := s.CreatePackage(PackageRequest{
		Name:       "My Widget!",
		ModelFiles: []string{stl},
		GCodeFiles: []string{gcodePath},
	})
	if err != nil {
		t.Fatalf("CreatePackage: %v", err)
	}

	if filepath.Base(m.Folder) != "My_Widget" {
		t.Errorf("folder = %q, expected sanitized name", filepath.Base(m.Folder))
	}
	if m.Metadata.ModelFile != "widget.stl" {
		t.Errorf("ModelFile = %q", m.Metadata.ModelFile)
	}
	if len(m.Metadata.GCodes) != 1 {
		t.Fatalf("GCodes = %+v", m.Metadata.GCodes)
	}
	entry := m.Metadata.GCodes[0]
	if entry.Material != "PLA" || entry.Colour != "Red" || entry.PrintTime != "2h30m" {
		t.Errorf("filename fallback metadata = %+v", entry)
	}
	if m.Metadata.TimeCreated == "" || m.Metadata.LastModified == "" {
		t.Error("timestamps should be set")
	}
	if _, err := time.Parse(model.TimeLayout, m.Metadata.TimeCreated); err != nil {
		t.Errorf("TimeCreated %q: %v", m.Metadata.TimeCreated, err)
	}
	if _, err := os.Stat(filepath.Join(m.Folder, PreviewFilename)); err != nil {
		t.Errorf("preview was not rendered: %v", err)
	}
	if _, err := LoadMetadata(m.Folder); err != nil {
		t.Errorf("model.json unreadable: %v", err)
	}

	// Same display name lands in a suffixed folder
	m2, err := s.CreatePackage(PackageRequest{Name: "My Widget!", ModelFiles: []string{stl}})
	if err != nil {
		t.Fatalf("second CreatePackage: %v", err)
	}
	if filepath.Base(m2.Folder) != "My_Widget_2" {
		t.Errorf("second folder = %q", filepath.Base(m2.Folder))
	}
}

func TestCreatePackage_Validation(t *testing.T) {
	root := t.TempDir()
	s := NewService(root, 1)

	if _, err := s.CreatePackage(PackageRequest{Name: "  ", ModelFiles: []string{"x"}}); err == nil {
		t.Error("blank name should fail")
	}
	if _, err := s.CreatePackage(PackageRequest{Name: "X"}); err == nil {
		t.Error("missing model files should fail")
	}
	if _, err := s.CreatePackage(PackageRequest{Name: "X", ModelFiles: []string{filepath.Join(root, "nope.stl")}}); err == nil {
		t.Error("nonexistent source should fail")
	}

	// Nothing was left behind in the root
	entries, err := os.ReadDir(root)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("library root should stay empty, found %d entries", len(entries))
	}
}

func TestSanitizeFolderName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Benchy", "Benchy"},
		{"My Widget!", "My_Widget"},
		{"  spaced out  ", "spaced_out"},
		{"läuft schön", "l_uft_sch_n"},
		{"???", "model"},
		{"v1.2-final", "v1.2-final"},
	}
	for _, tt := range tests {
		if got := SanitizeFolderName(tt.input); got != tt.expected {
			t.Errorf("SanitizeFolderName(%q) = %q, expected %q", tt.input, got, tt.expected)
		}
	}
}
