package library

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/zprint/zprint/internal/model"
)

// MetadataFilename is the per-folder metadata file name.
const MetadataFilename = "model.json"

// LoadMetadata reads and decodes a folder's model.json.
func LoadMetadata(folder string) (model.Metadata, error) {
	var meta model.Metadata
	data, err := os.ReadFile(filepath.Join(folder, MetadataFilename))
	if err != nil {
		return meta, fmt.Errorf("reading %s: %w", MetadataFilename, err)
	}
	if err := json.Unmarshal(data, &meta); err != nil {
		return meta, fmt.Errorf("decoding %s: %w", MetadataFilename, err)
	}
	return meta, nil
}

// SaveMetadata encodes metadata into a folder's model.json. The write goes
// through a temp file and rename so a crash cannot leave a truncated file.
func SaveMetadata(folder string, meta model.Metadata) error {
	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", MetadataFilename, err)
	}
	data = append(data, '\n')

	target := filepath.Join(folder, MetadataFilename)
	tmp, err := os.CreateTemp(folder, MetadataFilename+".tmp-*")
	if err != nil {
		return fmt.Errorf("writing %s: %w", MetadataFilename, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing %s: %w", MetadataFilename, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("writing %s: %w", MetadataFilename, err)
	}
	if err := os.Rename(tmpName, target); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("writing %s: %w", MetadataFilename, err)
	}
	return nil
}
