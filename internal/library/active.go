package library

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/zprint/zprint/internal/platform"
)

// maxSuffixAttempts bounds collision suffix probing per file
const maxSuffixAttempts = 100

// SetActive copies a model's G-code files into the library root so the
// printer-facing directory holds everything queued for printing. Files whose
// names collide with unrelated files get a folder-derived suffix; files that
// already exist identically in the root are reused without copying. All
// copies made by a failed activation are removed again.
func (s *Service) SetActive(id string) error {
	m, ok := s.GetModel(id)
	if !ok {
		return fmt.Errorf("model not found: %s", id)
	}
	if info, err := os.Stat(m.Folder); err != nil || !info.IsDir() {
		return fmt.Errorf("model folder missing: %s", m.Folder)
	}
	if len(m.Metadata.GCodes) == 0 {
		return fmt.Errorf("model %q has no G-code to activate", m.Name())
	}

	root := s.RootDir()
	leaf := filepath.Base(m.Folder)
	used := make(map[string]bool)
	var recorded []string
	var copied []string
	var missing []string

	rollback := func() {
		for _, path := range copied {
			os.Remove(path)
		}
	}

	for _, entry := range m.Metadata.GCodes {
		src := filepath.Join(m.Folder, entry.File)
		if _, err := os.Stat(src); err != nil {
			missing = append(missing, entry.File)
			continue
		}

		destName, reuse, err := resolveActiveDest(root, entry.File, leaf, src, used)
		if err != nil {
			rollback()
			return err
		}
		used[strings.ToLower(destName)] = true

		if !reuse {
			dest := filepath.Join(root, destName)
			if err := copyFile(src, dest); err != nil {
				rollback()
				return fmt.Errorf("activating %s: %w", entry.File, err)
			}
			copied = append(copied, dest)
		}
		recorded = append(recorded, destName)
	}

	if len(recorded) == 0 {
		return fmt.Errorf("no G-code files found to activate: missing %s", strings.Join(missing, ", "))
	}
	if len(missing) > 0 {
		log.Printf("Activation of %s skipped missing files: %s", m.Name(), strings.Join(missing, ", "))
	}

	m.Metadata.Active = true
	m.Metadata.ActiveGCodeFiles = recorded
	m.Metadata.Touch()
	if err := SaveMetadata(m.Folder, m.Metadata); err != nil {
		rollback()
		return err
	}
	return nil
}

// SetInactive removes the root copies recorded during activation. Copies
// that were already deleted by hand are ignored.
func (s *Service) SetInactive(id string) error {
	m, ok := s.GetModel(id)
	if !ok {
		return fmt.Errorf("model not found: %s", id)
	}

	root := s.RootDir()
	for _, name := range m.ActiveGCodeNames() {
		path := filepath.Join(root, name)
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			log.Printf("Could not remove active copy %s: %v", path, err)
		}
	}

	m.Metadata.Active = false
	m.Metadata.ActiveGCodeFiles = nil
	m.Metadata.Touch()
	return SaveMetadata(m.Folder, m.Metadata)
}

// resolveActiveDest picks the root file name for one activated G-code file.
// The plain name wins when free or already identical; otherwise the model
// folder leaf and then a numeric counter disambiguate. Names claimed earlier
// in the same activation are compared case-insensitively so the set stays
// unique on case-preserving filesystems.
func resolveActiveDest(root, base, leaf, src string, used map[string]bool) (string, bool, error) {
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)

	candidates := make([]string, 0, 2+2*maxSuffixAttempts)
	candidates = append(candidates, base, fmt.Sprintf("%s__%s%s", stem, leaf, ext))
	for i := 2; i <= maxSuffixAttempts; i++ {
		candidates = append(candidates, fmt.Sprintf("%s__%s_%d%s", stem, leaf, i, ext))
	}
	for i := 2; i <= maxSuffixAttempts; i++ {
		candidates = append(candidates, fmt.Sprintf("%s_%d%s", stem, i, ext))
	}

	for _, name := range candidates {
		if used[strings.ToLower(name)] {
			continue
		}
		dest := filepath.Join(root, name)
		if _, err := os.Stat(dest); os.IsNotExist(err) {
			return name, false, nil
		} else if err != nil {
			return "", false, fmt.Errorf("checking destination %s: %w", dest, err)
		}
		if platform.SameFile(src, dest) {
			return name, true, nil
		}
	}
	return "", false, fmt.Errorf("no free destination name for %s", base)
}
