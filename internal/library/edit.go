package library

import (
	"fmt"
	"log"
	"os"
	"sort"
	"strings"

	"github.com/zprint/zprint/internal/model"
)

// UpdateMetadata replaces a model's metadata and persists it. The creation
// timestamp survives edits that do not carry one.
func (s *Service) UpdateMetadata(id string, meta model.Metadata) error {
	m, ok := s.GetModel(id)
	if !ok {
		return fmt.Errorf("model not found: %s", id)
	}

	if meta.TimeCreated == "" {
		meta.TimeCreated = m.Metadata.TimeCreated
	}
	meta.Touch()
	if err := SaveMetadata(m.Folder, meta); err != nil {
		return err
	}

	s.mu.Lock()
	m.Metadata = meta
	sort.Slice(s.models, func(i, j int) bool {
		return strings.ToLower(s.models[i].Name()) < strings.ToLower(s.models[j].Name())
	})
	s.mu.Unlock()
	return nil
}

// Delete removes a model folder from the library. Active G-code copies in
// the root are cleaned up first so no orphans remain.
func (s *Service) Delete(id string) error {
	m, ok := s.GetModel(id)
	if !ok {
		return fmt.Errorf("model not found: %s", id)
	}

	if m.Metadata.Active {
		if err := s.SetInactive(id); err != nil {
			log.Printf("Deactivating %s before delete: %v", m.Name(), err)
		}
	}

	if err := os.RemoveAll(m.Folder); err != nil {
		return fmt.Errorf("deleting model folder: %w", err)
	}

	s.mu.Lock()
	for i, cached := range s.models {
		if cached.ID == id {
			s.models = append(s.models[:i], s.models[i+1:]...)
			break
		}
	}
	s.mu.Unlock()
	return nil
}
