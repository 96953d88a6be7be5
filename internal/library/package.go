package library

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/zprint/zprint/internal/mesh"
	"github.com/zprint/zprint/internal/model"
)

// folderNamePattern matches runs of characters that are unsafe in folder
// names across the supported platforms.
var folderNamePattern = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// PackageRequest describes a new model package to create in the library.
type PackageRequest struct {
	Name          string
	ModelFiles    []string // absolute source paths, at least one required
	GCodeFiles    []string // absolute source paths, optional
	PreviewSource string   // optional image copied instead of rendering
}

// CreatePackage builds a new model folder under the library root: the model
// and G-code files are copied in, a preview is rendered or copied, and
// model.json is written last. Any failure removes the partially built folder.
func (s *Service) CreatePackage(req PackageRequest) (*model.Model, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("model name must not be empty")
	}
	if len(req.ModelFiles) == 0 {
		return nil, fmt.Errorf("at least one model file is required")
	}

	sources := make([]string, 0, len(req.ModelFiles)+len(req.GCodeFiles))
	sources = append(sources, req.ModelFiles...)
	sources = append(sources, req.GCodeFiles...)
	if req.PreviewSource != "" {
		sources = append(sources, req.PreviewSource)
	}
	for _, src := range sources {
		if _, err := os.Stat(src); err != nil {
			return nil, fmt.Errorf("source file missing: %s", src)
		}
	}

	root := s.RootDir()
	if info, err := os.Stat(root); err != nil || !info.IsDir() {
		return nil, fmt.Errorf("library root does not exist: %s", root)
	}

	folder, err := uniqueFolder(root, name)
	if err != nil {
		return nil, err
	}
	if err := os.Mkdir(folder, 0o755); err != nil {
		return nil, fmt.Errorf("creating model folder: %w", err)
	}

	m, err := s.populatePackage(folder, name, req)
	if err != nil {
		os.RemoveAll(folder)
		return nil, err
	}

	s.mu.Lock()
	s.models = append(s.models, m)
	sort.Slice(s.models, func(i, j int) bool {
		return strings.ToLower(s.models[i].Name()) < strings.ToLower(s.models[j].Name())
	})
	s.mu.Unlock()

	return m, nil
}

func (s *Service) populatePackage(folder, name string, req PackageRequest) (*model.Model, error) {
	meta := model.Metadata{Name: name}

	for _, src := range req.ModelFiles {
		base := filepath.Base(src)
		if err := copyFile(src, filepath.Join(folder, base)); err != nil {
			return nil, err
		}
		meta.ModelFiles = append(meta.ModelFiles, base)
	}
	meta.ModelFile = meta.ModelFiles[0]

	for _, src := range req.GCodeFiles {
		base := filepath.Base(src)
		if err := copyFile(src, filepath.Join(folder, base)); err != nil {
			return nil, err
		}
		meta.GCodes = append(meta.GCodes, buildGCodeEntry(filepath.Join(folder, base)))
	}

	if err := s.writePackagePreview(folder, &meta, req); err != nil {
		return nil, err
	}

	now := meta.Touch()
	meta.TimeCreated = now.Format(model.TimeLayout)
	if err := SaveMetadata(folder, meta); err != nil {
		return nil, err
	}

	return &model.Model{
		ID:       filepath.Base(folder),
		Folder:   folder,
		Metadata: meta,
	}, nil
}

// writePackagePreview copies the chosen preview image, or renders one from
// the primary model file. Render failures are tolerated: the gallery shows a
// placeholder instead.
func (s *Service) writePackagePreview(folder string, meta *model.Metadata, req PackageRequest) error {
	if req.PreviewSource != "" {
		base := filepath.Base(req.PreviewSource)
		if err := copyFile(req.PreviewSource, filepath.Join(folder, base)); err != nil {
			return err
		}
		meta.PreviewImage = base
		return nil
	}

	s.mu.RLock()
	opts := mesh.RenderOptions{DarkTheme: s.darkPreviews, Quality: s.previewQuality}
	s.mu.RUnlock()

	img, err := mesh.RenderPreviewFile(filepath.Join(folder, meta.ModelFile), PreviewWidth, PreviewHeight, opts)
	if err != nil {
		return nil
	}
	if err := mesh.WritePNG(filepath.Join(folder, PreviewFilename), img); err != nil {
		return fmt.Errorf("writing preview: %w", err)
	}
	meta.PreviewImage = PreviewFilename
	return nil
}

// SanitizeFolderName converts a display name into a safe folder name.
func SanitizeFolderName(name string) string {
	cleaned := folderNamePattern.ReplaceAllString(strings.TrimSpace(name), "_")
	cleaned = strings.Trim(cleaned, "_.")
	if cleaned == "" {
		cleaned = "model"
	}
	return cleaned
}

// uniqueFolder picks an unused folder path under root for the given name,
// appending _2, _3, ... when the sanitized name is taken.
func uniqueFolder(root, name string) (string, error) {
	base := SanitizeFolderName(name)
	candidate := filepath.Join(root, base)
	for i := 2; ; i++ {
		if _, err := os.Stat(candidate); os.IsNotExist(err) {
			return candidate, nil
		} else if err != nil {
			return "", fmt.Errorf("checking folder name: %w", err)
		}
		if i > 1000 {
			return "", fmt.Errorf("no free folder name for %q", name)
		}
		candidate = filepath.Join(root, fmt.Sprintf("%s_%d", base, i))
	}
}

// copyFile copies src to dst, failing if dst already exists. The source
// modification time is carried over so copies stay recognizable as identical.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("opening %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("creating %s: %w", dst, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return fmt.Errorf("copying to %s: %w", dst, err)
	}
	if err := out.Close(); err != nil {
		os.Remove(dst)
		return fmt.Errorf("copying to %s: %w", dst, err)
	}
	if info, err := os.Stat(src); err == nil {
		os.Chtimes(dst, info.ModTime(), info.ModTime())
	}
	return nil
}
