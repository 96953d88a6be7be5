package model

import (
	"path/filepath"
	"strings"
	"time"
)

// TimeLayout is the timestamp format persisted in model.json (UTC, second
// precision).
const TimeLayout = "2006-01-02T15:04:05Z"

// GCodeEntry describes one sliced G-code file belonging to a model.
type GCodeEntry struct {
	File      string `json:"file"`
	Material  string `json:"material,omitempty"`
	Colour    string `json:"colour,omitempty"`
	PrintTime string `json:"print_time,omitempty"`
}

// Metadata is the persisted model.json content of a library model folder.
type Metadata struct {
	Name             string       `json:"name"`
	ModelFile        string       `json:"model_file,omitempty"`
	ModelFiles       []string     `json:"model_files,omitempty"`
	GCodes           []GCodeEntry `json:"gcodes,omitempty"`
	PreviewImage     string       `json:"preview_image,omitempty"`
	PrintTime        string       `json:"print_time,omitempty"`
	Active           bool         `json:"active"`
	ActiveGCodeFiles []string     `json:"active_gcode_files,omitempty"`
	TimeCreated      string       `json:"time_created,omitempty"`
	LastModified     string       `json:"last_modified,omitempty"`
}

// Model is a library entry: one folder with model files, G-code and metadata.
type Model struct {
	ID       string
	Folder   string
	Metadata Metadata
}

// Name returns the display name, falling back to the folder leaf when the
// metadata has none.
func (m *Model) Name() string {
	if m.Metadata.Name != "" {
		return m.Metadata.Name
	}
	return filepath.Base(m.Folder)
}

// PrimaryModelPath returns the absolute path of the main model file, or empty
// when the model has no files at all.
func (m *Model) PrimaryModelPath() string {
	name := m.Metadata.ModelFile
	if name == "" && len(m.Metadata.ModelFiles) > 0 {
		name = m.Metadata.ModelFiles[0]
	}
	if name == "" {
		return ""
	}
	return filepath.Join(m.Folder, name)
}

// PreviewPath returns the absolute path of the preview image, or empty when
// none has been rendered yet.
func (m *Model) PreviewPath() string {
	if m.Metadata.PreviewImage == "" {
		return ""
	}
	return filepath.Join(m.Folder, m.Metadata.PreviewImage)
}

// DisplayPrintTime returns the print time shown on the gallery card: the
// model-level estimate when set, otherwise the first G-code entry that
// carries one.
func (m *Model) DisplayPrintTime() string {
	if m.Metadata.PrintTime != "" {
		return m.Metadata.PrintTime
	}
	for _, entry := range m.Metadata.GCodes {
		if entry.PrintTime != "" {
			return entry.PrintTime
		}
	}
	return ""
}

// ActiveGCodeNames returns the recorded active G-code file names with empty
// entries dropped and case-insensitive duplicates removed, preserving order.
func (m *Model) ActiveGCodeNames() []string {
	seen := make(map[string]bool, len(m.Metadata.ActiveGCodeFiles))
	names := make([]string, 0, len(m.Metadata.ActiveGCodeFiles))
	for _, name := range m.Metadata.ActiveGCodeFiles {
		if name == "" {
			continue
		}
		key := strings.ToLower(name)
		if seen[key] {
			continue
		}
		seen[key] = true
		names = append(names, name)
	}
	return names
}

// Touch updates LastModified to the current UTC time and returns the stamp.
func (meta *Metadata) Touch() time.Time {
	now := time.Now().UTC().Truncate(time.Second)
	meta.LastModified = now.Format(TimeLayout)
	return now
}
