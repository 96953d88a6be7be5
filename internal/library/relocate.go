package library

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/zprint/zprint/internal/platform"
)

// Relocate moves every model folder into a new library root and switches the
// service over to it. Folders already present at the destination are left in
// place. The move aborts on the first failure, reporting how many folders
// made it across; already moved folders stay at the destination.
func (s *Service) Relocate(newRoot string) (int, error) {
	newRoot = platform.ExpandPath(newRoot)
	oldRoot := s.RootDir()
	if newRoot == "" {
		return 0, fmt.Errorf("new library root must not be empty")
	}
	if newRoot == oldRoot {
		return 0, nil
	}
	if err := platform.CreateDirectoryIfNotExists(newRoot); err != nil {
		return 0, fmt.Errorf("creating new library root: %w", err)
	}

	folders, err := listModelFolders(oldRoot)
	if err != nil {
		return 0, err
	}

	moved := 0
	for _, folder := range folders {
		target := filepath.Join(newRoot, filepath.Base(folder))
		if _, err := os.Stat(target); err == nil {
			continue
		}
		if err := moveFolder(folder, target); err != nil {
			return moved, fmt.Errorf("moved %d of %d folders, then failed on %s: %w",
				moved, len(folders), filepath.Base(folder), err)
		}
		moved++
	}

	s.mu.Lock()
	s.rootDir = newRoot
	s.models = nil
	s.mu.Unlock()
	return moved, nil
}

// moveFolder renames a directory, falling back to copy and delete when the
// destination sits on a different filesystem.
func moveFolder(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}
	if err := copyFolder(src, dst); err != nil {
		os.RemoveAll(dst)
		return err
	}
	return os.RemoveAll(src)
}

func copyFolder(src, dst string) error {
	return filepath.Walk(src, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if info.IsDir() {
			return os.MkdirAll(target, info.Mode().Perm())
		}
		return copyFile(path, target)
	})
}
