package config

import (
	"fyne.io/fyne/v2"

	"github.com/zprint/zprint/internal/platform"
)

// Theme names
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Settings keys for Fyne preferences
const (
	KeyLibraryPath    = "library_path"
	KeyTheme          = "app_theme"
	KeyMaxParallel    = "max_parallel_scans"
	KeyPreviewQuality = "preview_quality"
	KeyFirstRunDone   = "first_run_done"
)

// Default values
const (
	DefaultTheme          = ThemeLight
	DefaultMaxParallel    = 2
	MaxParallelLimit      = 8
	DefaultPreviewQuality = 1.0
	MinPreviewQuality     = 0.3
)

// Settings manages application configuration
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// GetLibraryPath returns the configured models library directory
func (s *Settings) GetLibraryPath() string {
	dir := s.app.Preferences().String(KeyLibraryPath)
	if dir == "" {
		defaultDir, err := platform.GetDefaultLibraryDir()
		if err != nil {
			defaultDir = "/tmp/zprint-models"
		}
		s.SetLibraryPath(defaultDir)
		return defaultDir
	}
	return dir
}

// SetLibraryPath sets the models library directory
func (s *Settings) SetLibraryPath(dir string) {
	s.app.Preferences().SetString(KeyLibraryPath, dir)
}

// GetTheme returns the configured theme
func (s *Settings) GetTheme() Theme {
	value := s.app.Preferences().String(KeyTheme)
	if value == "" {
		s.SetTheme(DefaultTheme)
		return DefaultTheme
	}
	return Theme(value)
}

// SetTheme sets the application theme
func (s *Settings) SetTheme(theme Theme) {
	if theme != ThemeDark {
		theme = ThemeLight
	}
	s.app.Preferences().SetString(KeyTheme, string(theme))
}

// IsDarkTheme reports whether the dark theme is active
func (s *Settings) IsDarkTheme() bool {
	return s.GetTheme() == ThemeDark
}

// GetMaxParallelScans returns the maximum number of parallel metadata/preview
// workers used during library scans
func (s *Settings) GetMaxParallelScans() int {
	value := s.app.Preferences().Int(KeyMaxParallel)
	if value <= 0 {
		s.SetMaxParallelScans(DefaultMaxParallel)
		return DefaultMaxParallel
	}
	return value
}

// SetMaxParallelScans sets the maximum number of parallel scan workers
func (s *Settings) SetMaxParallelScans(count int) {
	if count < 1 {
		count = 1
	}
	if count > MaxParallelLimit {
		count = MaxParallelLimit
	}
	s.app.Preferences().SetInt(KeyMaxParallel, count)
}

// GetPreviewQuality returns the preview render quality scale (0.3-1.0)
func (s *Settings) GetPreviewQuality() float64 {
	value := s.app.Preferences().Float(KeyPreviewQuality)
	if value == 0 {
		s.SetPreviewQuality(DefaultPreviewQuality)
		return DefaultPreviewQuality
	}
	return value
}

// SetPreviewQuality sets the preview render quality scale
func (s *Settings) SetPreviewQuality(quality float64) {
	if quality < MinPreviewQuality {
		quality = MinPreviewQuality
	}
	if quality > DefaultPreviewQuality {
		quality = DefaultPreviewQuality
	}
	s.app.Preferences().SetFloat(KeyPreviewQuality, quality)
}

// IsFirstRunDone reports whether onboarding already happened
func (s *Settings) IsFirstRunDone() bool {
	return s.app.Preferences().Bool(KeyFirstRunDone)
}

// SetFirstRunDone marks onboarding as completed
func (s *Settings) SetFirstRunDone(done bool) {
	s.app.Preferences().SetBool(KeyFirstRunDone, done)
}
