package ui

import (
	"fmt"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/zprint/zprint/internal/config"
	"github.com/zprint/zprint/internal/library"
	"github.com/zprint/zprint/internal/platform"
)

// SettingsDialog represents the settings configuration dialog
type SettingsDialog struct {
	settings *config.Settings
	library  *library.Service
	window   fyne.Window
	onSaved  func()
	dialog   *dialog.ConfirmDialog

	// UI components
	libraryPathEntry *widget.Entry
	maxParallelEntry *widget.Entry
	qualitySlider    *widget.Slider
	themeSelect      *widget.Select
}

// ShowSettingsDialog opens the settings dialog; onSaved runs after a save
func ShowSettingsDialog(window fyne.Window, settings *config.Settings, librarySvc *library.Service, onSaved func()) {
	sd := &SettingsDialog{
		settings: settings,
		library:  librarySvc,
		window:   window,
		onSaved:  onSaved,
	}
	sd.createUI()
	sd.loadCurrentSettings()
	sd.dialog.Show()
}

// createUI creates the settings dialog UI
func (sd *SettingsDialog) createUI() {
	sd.libraryPathEntry = widget.NewEntry()
	sd.libraryPathEntry.SetPlaceHolder("Library folder path")
	browseBtn := widget.NewButton("Browse", sd.onBrowseDirectory)
	pathRow := container.NewBorder(nil, nil, nil, browseBtn, sd.libraryPathEntry)

	sd.maxParallelEntry = widget.NewEntry()
	sd.maxParallelEntry.SetPlaceHolder(fmt.Sprintf("1-%d", config.MaxParallelLimit))

	sd.qualitySlider = widget.NewSlider(config.MinPreviewQuality, config.DefaultPreviewQuality)
	sd.qualitySlider.Step = 0.1

	sd.themeSelect = widget.NewSelect([]string{string(config.ThemeLight), string(config.ThemeDark)}, nil)

	form := container.NewVBox(
		widget.NewLabel("Library"),
		widget.NewSeparator(),
		widget.NewLabel("Models folder:"),
		pathRow,
		widget.NewLabel("Parallel scan workers:"),
		sd.maxParallelEntry,
		widget.NewSeparator(),
		widget.NewLabel("Appearance"),
		widget.NewSeparator(),
		widget.NewLabel("Preview quality:"),
		sd.qualitySlider,
		widget.NewLabel("Theme:"),
		sd.themeSelect,
	)

	sd.dialog = dialog.NewCustomConfirm("Settings", "Save", "Cancel", form, sd.onSave, sd.window)
	sd.dialog.Resize(fyne.NewSize(SettingsDialogWidth, SettingsDialogHeight))
}

// loadCurrentSettings loads current settings into the UI
func (sd *SettingsDialog) loadCurrentSettings() {
	sd.libraryPathEntry.SetText(sd.settings.GetLibraryPath())
	sd.maxParallelEntry.SetText(strconv.Itoa(sd.settings.GetMaxParallelScans()))
	sd.qualitySlider.SetValue(sd.settings.GetPreviewQuality())
	sd.themeSelect.SetSelected(string(sd.settings.GetTheme()))
}

// onBrowseDirectory handles directory browsing
func (sd *SettingsDialog) onBrowseDirectory() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		sd.libraryPathEntry.SetText(uri.Path())
	}, sd.window)
}

// onSave handles saving the settings
func (sd *SettingsDialog) onSave(confirmed bool) {
	if !confirmed {
		return
	}

	if text := sd.maxParallelEntry.Text; text != "" {
		if parallel, err := strconv.Atoi(text); err == nil {
			sd.settings.SetMaxParallelScans(parallel)
		}
	}
	sd.settings.SetPreviewQuality(sd.qualitySlider.Value)
	if sd.themeSelect.Selected != "" {
		sd.settings.SetTheme(config.Theme(sd.themeSelect.Selected))
	}

	// Moving the library is the heavyweight part: offer relocation when the
	// path changed and folders exist at the old location
	newPath := platform.ExpandPath(sd.libraryPathEntry.Text)
	oldPath := sd.settings.GetLibraryPath()
	if newPath != "" && newPath != oldPath {
		sd.offerRelocation(oldPath, newPath)
		return
	}

	if sd.onSaved != nil {
		sd.onSaved()
	}
}

// offerRelocation asks whether to move existing model folders to the new path
func (sd *SettingsDialog) offerRelocation(oldPath, newPath string) {
	apply := func(moveFolders bool) {
		sd.settings.SetLibraryPath(newPath)
		if moveFolders {
			moved, err := sd.library.Relocate(newPath)
			if err != nil {
				dialog.ShowError(fmt.Errorf("relocation stopped: %w", err), sd.window)
			} else if moved > 0 {
				dialog.ShowInformation("Settings", fmt.Sprintf("Moved %d model folders.", moved), sd.window)
			}
		} else {
			sd.library.SetRootDir(newPath)
		}
		if sd.onSaved != nil {
			sd.onSaved()
		}
	}

	if len(sd.library.Models()) == 0 {
		apply(false)
		return
	}
	dialog.ShowConfirm("Move Library",
		fmt.Sprintf("Move your existing model folders from\n%s\nto\n%s?", oldPath, newPath),
		apply, sd.window)
}
