package library

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/zprint/zprint/internal/gcode"
	"github.com/zprint/zprint/internal/mesh"
	"github.com/zprint/zprint/internal/model"
)

const (
	// PreviewFilename is the rendered preview stored in each model folder
	PreviewFilename = "preview.png"

	// PreviewWidth and PreviewHeight are the raster size of stored previews
	PreviewWidth  = 512
	PreviewHeight = 512
)

// modelFileExtensions are the printable model formats recognized during scans
var modelFileExtensions = map[string]bool{
	".stl": true,
	".3mf": true,
}

// ScanTask tracks one background library scan
type ScanTask struct {
	ID         string
	Status     model.TaskStatus
	Total      int
	Done       int
	LastError  string
	StartedAt  time.Time
	FinishedAt time.Time
}

// Service manages the model library rooted at a single directory
type Service struct {
	mu          sync.RWMutex
	rootDir     string
	maxParallel int
	models      []*model.Model
	tasks       map[string]*ScanTask

	previewQuality float64
	darkPreviews   bool

	onUpdate func(*ScanTask) // callback for UI updates
}

// NewService creates a new library service
func NewService(rootDir string, maxParallel int) *Service {
	if maxParallel < 1 {
		maxParallel = 1
	}
	return &Service{
		rootDir:        rootDir,
		maxParallel:    maxParallel,
		tasks:          make(map[string]*ScanTask),
		previewQuality: 1.0,
	}
}

// SetUpdateCallback sets the callback function for scan task updates
func (s *Service) SetUpdateCallback(callback func(*ScanTask)) {
	s.onUpdate = callback
}

// SetPreviewOptions configures preview rendering for subsequent scans
func (s *Service) SetPreviewOptions(quality float64, dark bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if quality < mesh.MinQualityScale {
		quality = mesh.MinQualityScale
	}
	if quality > 1.0 {
		quality = 1.0
	}
	s.previewQuality = quality
	s.darkPreviews = dark
}

// RootDir returns the current library root directory
func (s *Service) RootDir() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rootDir
}

// SetRootDir switches the library root. Models from the previous root stay
// cached until the next Scan.
func (s *Service) SetRootDir(dir string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rootDir = dir
}

// Models returns the cached library models sorted by display name
func (s *Service) Models() []*model.Model {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*model.Model, len(s.models))
	copy(out, s.models)
	return out
}

// GetModel returns a cached model by ID
func (s *Service) GetModel(id string) (*model.Model, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, m := range s.models {
		if m.ID == id {
			return m, true
		}
	}
	return nil, false
}

// GetTask returns a scan task by ID
func (s *Service) GetTask(id string) (*ScanTask, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	task, exists := s.tasks[id]
	return task, exists
}

// Scan enumerates the library root in the background, loading or synthesizing
// model.json for every model folder and rendering missing previews. Only one
// scan runs at a time.
func (s *Service) Scan() (*ScanTask, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, task := range s.tasks {
		if task.Status.IsActive() || task.Status == model.TaskStatusPending {
			return nil, fmt.Errorf("scan already in progress: %s", task.ID)
		}
	}

	if s.rootDir == "" {
		return nil, fmt.Errorf("library root is not configured")
	}

	task := &ScanTask{
		ID:        generateTaskID(),
		Status:    model.TaskStatusPending,
		StartedAt: time.Now(),
	}
	s.tasks[task.ID] = task

	go s.runScan(task)
	return task, nil
}

// runScan performs the actual directory walk with a bounded worker pool
func (s *Service) runScan(task *ScanTask) {
	s.mu.Lock()
	task.Status = model.TaskStatusRunning
	root := s.rootDir
	workers := s.maxParallel
	quality := s.previewQuality
	dark := s.darkPreviews
	s.mu.Unlock()
	s.notifyUpdate(task)

	folders, err := listModelFolders(root)
	if err != nil {
		s.finishScan(task, nil, err)
		return
	}

	s.mu.Lock()
	task.Total = len(folders)
	s.mu.Unlock()
	s.notifyUpdate(task)

	results := make([]*model.Model, len(folders))
	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup

	for i, folder := range folders {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, folder string) {
			defer wg.Done()
			defer func() { <-sem }()

			m, err := s.loadModelFolder(folder, quality, dark)
			if err != nil {
				log.Printf("Skipping folder %s: %v", folder, err)
			} else {
				results[i] = m
			}

			s.mu.Lock()
			task.Done++
			s.mu.Unlock()
			s.notifyUpdate(task)
		}(i, folder)
	}
	wg.Wait()

	models := make([]*model.Model, 0, len(results))
	for _, m := range results {
		if m != nil {
			models = append(models, m)
		}
	}
	sort.Slice(models, func(i, j int) bool {
		return strings.ToLower(models[i].Name()) < strings.ToLower(models[j].Name())
	})

	s.finishScan(task, models, nil)
}

func (s *Service) finishScan(task *ScanTask, models []*model.Model, err error) {
	s.mu.Lock()
	if err != nil {
		task.Status = model.TaskStatusError
		task.LastError = err.Error()
	} else {
		task.Status = model.TaskStatusCompleted
		s.models = models
	}
	task.FinishedAt = time.Now()
	s.mu.Unlock()
	s.notifyUpdate(task)
}

// listModelFolders returns the immediate subdirectories of root that look
// like model folders: they hold a model.json or at least one model file.
func listModelFolders(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("reading library root: %w", err)
	}

	var folders []string
	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		folder := filepath.Join(root, entry.Name())
		if isModelFolder(folder) {
			folders = append(folders, folder)
		}
	}
	return folders, nil
}

func isModelFolder(folder string) bool {
	if _, err := os.Stat(filepath.Join(folder, MetadataFilename)); err == nil {
		return true
	}
	entries, err := os.ReadDir(folder)
	if err != nil {
		return false
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if modelFileExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
			return true
		}
	}
	return false
}

// loadModelFolder loads an existing model.json or synthesizes one from the
// folder contents, then makes sure a preview exists.
func (s *Service) loadModelFolder(folder string, quality float64, dark bool) (*model.Model, error) {
	meta, err := LoadMetadata(folder)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		meta, err = synthesizeMetadata(folder)
		if err != nil {
			return nil, err
		}
		if err := SaveMetadata(folder, meta); err != nil {
			return nil, err
		}
	}

	m := &model.Model{
		ID:       filepath.Base(folder),
		Folder:   folder,
		Metadata: meta,
	}

	if err := s.ensurePreview(m, quality, dark); err != nil {
		// A missing preview only degrades the gallery card
		log.Printf("Preview for %s unavailable: %v", m.Name(), err)
	}

	return m, nil
}

// ensurePreview renders preview.png when it is missing and a model file is
// available, then records it in the metadata.
func (s *Service) ensurePreview(m *model.Model, quality float64, dark bool) error {
	if path := m.PreviewPath(); path != "" {
		if _, err := os.Stat(path); err == nil {
			return nil
		}
	}

	source := m.PrimaryModelPath()
	if source == "" {
		return fmt.Errorf("no model file to render")
	}

	opts := mesh.RenderOptions{DarkTheme: dark, Quality: quality}
	img, err := mesh.RenderPreviewFile(source, PreviewWidth, PreviewHeight, opts)
	if err != nil {
		return err
	}
	if err := mesh.WritePNG(filepath.Join(m.Folder, PreviewFilename), img); err != nil {
		return err
	}

	m.Metadata.PreviewImage = PreviewFilename
	m.Metadata.Touch()
	return SaveMetadata(m.Folder, m.Metadata)
}

// synthesizeMetadata builds metadata for a folder that predates the app:
// model files become the file list and G-code headers are parsed for
// material, colour and print time.
func synthesizeMetadata(folder string) (model.Metadata, error) {
	entries, err := os.ReadDir(folder)
	if err != nil {
		return model.Metadata{}, fmt.Errorf("reading model folder: %w", err)
	}

	meta := model.Metadata{Name: filepath.Base(folder)}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		ext := strings.ToLower(filepath.Ext(name))
		switch {
		case modelFileExtensions[ext]:
			meta.ModelFiles = append(meta.ModelFiles, name)
		case ext == ".gcode":
			meta.GCodes = append(meta.GCodes, buildGCodeEntry(filepath.Join(folder, name)))
		}
	}
	sort.Strings(meta.ModelFiles)
	sort.Slice(meta.GCodes, func(i, j int) bool { return meta.GCodes[i].File < meta.GCodes[j].File })

	if len(meta.ModelFiles) > 0 {
		meta.ModelFile = meta.ModelFiles[0]
	}

	now := meta.Touch()
	meta.TimeCreated = now.Format(model.TimeLayout)
	return meta, nil
}

// buildGCodeEntry extracts G-code metadata from header comments, falling back
// to the filename convention for anything the headers do not carry.
func buildGCodeEntry(path string) model.GCodeEntry {
	extracted := gcode.ExtractMetadata(path, gcode.DefaultMaxLines)
	fromName := gcode.ParseFilename(path)

	entry := model.GCodeEntry{
		File:      filepath.Base(path),
		Material:  extracted.Material,
		Colour:    extracted.Colour,
		PrintTime: extracted.PrintTime,
	}
	if entry.Material == "" {
		entry.Material = fromName.Material
	}
	if entry.Colour == "" {
		entry.Colour = fromName.Colour
	}
	if entry.PrintTime == "" {
		entry.PrintTime = fromName.PrintTime
	}
	return entry
}

func (s *Service) notifyUpdate(task *ScanTask) {
	if s.onUpdate != nil {
		s.onUpdate(task)
	}
}

// generateTaskID creates a unique task identifier
func generateTaskID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Sprintf("task-%d", time.Now().UnixNano())
	}
	return id.String()
}
