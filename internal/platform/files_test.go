package platform

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestCreateDirectoryIfNotExists(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "library")

	if err := CreateDirectoryIfNotExists(dir); err != nil {
		t.Fatalf("CreateDirectoryIfNotExists: %v", err)
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		t.Fatalf("directory was not created: %v", err)
	}

	// Second call on an existing directory is a no-op
	if err := CreateDirectoryIfNotExists(dir); err != nil {
		t.Errorf("existing directory should not error: %v", err)
	}
}

func TestGetDefaultLibraryDir(t *testing.T) {
	dir, err := GetDefaultLibraryDir()
	if err != nil {
		t.Fatalf("GetDefaultLibraryDir: %v", err)
	}
	if !strings.HasSuffix(dir, filepath.Join(DefaultLibraryDirName, ModelsSubdirName)) {
		t.Errorf("default library dir %q should end with %s/%s", dir, DefaultLibraryDirName, ModelsSubdirName)
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}

	expanded := ExpandPath("~/models")
	if expanded != filepath.Join(home, "models") {
		t.Errorf("ExpandPath(~/models) = %q, expected under home", expanded)
	}

	if ExpandPath("") != "" {
		t.Error("ExpandPath(\"\") should stay empty")
	}

	if !filepath.IsAbs(ExpandPath("relative/path")) {
		t.Error("ExpandPath should absolutize relative paths")
	}
}

func TestSameFile(t *testing.T) {
	dir := t.TempDir()
	pathA := filepath.Join(dir, "a.gcode")
	if err := os.WriteFile(pathA, []byte("G28\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if !SameFile(pathA, pathA) {
		t.Error("a file must compare equal to itself")
	}

	// Same size and mtime counts as the same content
	pathB := filepath.Join(dir, "b.gcode")
	if err := os.WriteFile(pathB, []byte("G29\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	stamp := time.Now().Add(-time.Hour).Truncate(time.Second)
	for _, p := range []string{pathA, pathB} {
		if err := os.Chtimes(p, stamp, stamp); err != nil {
			t.Fatal(err)
		}
	}
	if !SameFile(pathA, pathB) {
		t.Error("equal size and mtime should compare as the same file")
	}

	pathC := filepath.Join(dir, "c.gcode")
	if err := os.WriteFile(pathC, []byte("G28\nG29\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if SameFile(pathA, pathC) {
		t.Error("different sizes must not compare as the same file")
	}

	if SameFile("", pathA) || SameFile(pathA, filepath.Join(dir, "missing")) {
		t.Error("empty and missing paths must not compare as the same file")
	}
}
