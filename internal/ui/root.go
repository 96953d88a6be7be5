package ui

import (
	"fmt"
	"log"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/zprint/zprint/internal/config"
	"github.com/zprint/zprint/internal/library"
	"github.com/zprint/zprint/internal/model"
	"github.com/zprint/zprint/internal/platform"
)

// RootUI represents the main gallery window
type RootUI struct {
	window   fyne.Window
	app      fyne.App
	settings *config.Settings
	library  *library.Service

	// UI components
	grid       *fyne.Container
	emptyLabel *widget.Label
	countLabel *widget.Label

	// Notification panel
	notificationContainer *fyne.Container
	notificationLabel     *widget.Label
	notificationSpinner   *widget.ProgressBarInfinite
}

// NewRootUI creates and initializes the gallery window
func NewRootUI(window fyne.Window, app fyne.App, librarySvc *library.Service) *RootUI {
	settings := config.NewSettings(app)

	ui := &RootUI{
		window:   window,
		app:      app,
		settings: settings,
		library:  librarySvc,
	}

	librarySvc.SetUpdateCallback(ui.onScanUpdate)

	window.SetTitle("zPrint")
	ui.setupUI()
	return ui
}

// setupUI creates and arranges all UI components
func (ui *RootUI) setupUI() {
	addBtn := widget.NewButton(IconAdd+" Add Model", ui.onAddModel)
	addBtn.Importance = widget.HighImportance

	reloadBtn := widget.NewButton(IconReload, ui.StartScan)
	reloadBtn.Importance = widget.LowImportance

	folderBtn := widget.NewButton(IconFolder, ui.onOpenLibraryFolder)
	folderBtn.Importance = widget.LowImportance

	themeBtn := widget.NewButton(IconTheme, ui.onToggleTheme)
	themeBtn.Importance = widget.LowImportance

	settingsBtn := widget.NewButton(IconSettings, ui.onShowSettings)
	settingsBtn.Importance = widget.LowImportance

	ui.countLabel = widget.NewLabel("")
	topPanel := container.NewBorder(nil, nil,
		container.NewHBox(reloadBtn, folderBtn, themeBtn, settingsBtn),
		addBtn,
		container.NewCenter(ui.countLabel),
	)

	// Notification panel under the top bar (hidden by default)
	ui.notificationLabel = widget.NewLabel("")
	ui.notificationLabel.Alignment = fyne.TextAlignLeading
	ui.notificationSpinner = widget.NewProgressBarInfinite()
	ui.notificationSpinner.Hide()
	ui.notificationContainer = container.NewHBox(ui.notificationSpinner, container.NewPadded(ui.notificationLabel))
	ui.notificationContainer.Hide()

	topCombined := container.NewVBox(topPanel, ui.notificationContainer)

	ui.emptyLabel = widget.NewLabel("No models yet. Add one or point the library at an existing folder.")
	ui.emptyLabel.Alignment = fyne.TextAlignCenter

	ui.grid = container.NewGridWrap(fyne.NewSize(CardWidth, CardHeight))

	content := container.NewBorder(
		topCombined,
		nil,
		nil,
		nil,
		container.NewScroll(container.NewVBox(ui.emptyLabel, ui.grid)),
	)

	ui.window.SetContent(content)
	log.Printf("UI setup completed successfully")
}

// Refresh rebuilds the gallery from the library cache
func (ui *RootUI) Refresh() {
	models := ui.library.Models()

	ui.grid.RemoveAll()
	for _, m := range models {
		card := NewModelCard(m)
		card.SetCallbacks(ui.onToggleActive, ui.onPreview, ui.onEdit)
		ui.grid.Add(card)
	}

	if len(models) == 0 {
		ui.emptyLabel.Show()
		ui.countLabel.SetText("")
	} else {
		ui.emptyLabel.Hide()
		ui.countLabel.SetText(fmt.Sprintf("%d models", len(models)))
	}
	ui.grid.Refresh()
}

// StartScan kicks off a background library scan
func (ui *RootUI) StartScan() {
	ui.library.SetPreviewOptions(ui.settings.GetPreviewQuality(), ui.settings.IsDarkTheme())
	if _, err := ui.library.Scan(); err != nil {
		ui.showNotification("Scan: "+err.Error(), false)
	}
}

// onScanUpdate handles progress callbacks from the library service. It runs
// on the scanner goroutines.
func (ui *RootUI) onScanUpdate(task *library.ScanTask) {
	switch {
	case task.Status == model.TaskStatusError:
		ui.showNotification("Scan failed: "+task.LastError, false)
		ui.scheduleNotificationHide()
	case task.Status.IsFinished():
		fyne.Do(func() {
			ui.Refresh()
		})
		ui.showNotification(fmt.Sprintf("Loaded %d folders", task.Total), false)
		ui.scheduleNotificationHide()
	default:
		ui.showNotification(fmt.Sprintf("Scanning library %d/%d", task.Done, task.Total), true)
	}
}

// showNotification displays a message in the notification panel. When
// spinning is true, a spinner indicates background activity.
func (ui *RootUI) showNotification(message string, spinning bool) {
	fyne.Do(func() {
		ui.notificationLabel.SetText(message)
		if spinning {
			ui.notificationSpinner.Show()
		} else {
			ui.notificationSpinner.Hide()
		}
		ui.notificationContainer.Show()
		ui.notificationContainer.Refresh()
	})
}

func (ui *RootUI) hideNotification() {
	fyne.Do(func() {
		ui.notificationSpinner.Hide()
		ui.notificationContainer.Hide()
	})
}

func (ui *RootUI) scheduleNotificationHide() {
	go func() {
		time.Sleep(ScanNotifyAutoHide)
		ui.hideNotification()
	}()
}

// onToggleActive activates or deactivates a model's G-code in the root
func (ui *RootUI) onToggleActive(modelID string, active bool) {
	var err error
	if active {
		err = ui.library.SetActive(modelID)
	} else {
		err = ui.library.SetInactive(modelID)
	}
	if err != nil {
		log.Printf("Toggle active for %s: %v", modelID, err)
		dialog.ShowError(err, ui.window)
	}
	ui.Refresh()
}

// onPreview opens the interactive 3D preview
func (ui *RootUI) onPreview(modelID string) {
	m, ok := ui.library.GetModel(modelID)
	if !ok {
		return
	}
	ShowPreviewDialog(ui.window, m, ui.settings)
}

// onEdit opens the edit dialog for a model
func (ui *RootUI) onEdit(modelID string) {
	m, ok := ui.library.GetModel(modelID)
	if !ok {
		return
	}
	ShowEditModelDialog(ui.window, ui.library, m, ui.Refresh)
}

// onAddModel opens the new-model dialog
func (ui *RootUI) onAddModel() {
	ShowNewModelDialog(ui.window, ui.library, func() {
		ui.Refresh()
	})
}

// onOpenLibraryFolder reveals the library root in the system file manager
func (ui *RootUI) onOpenLibraryFolder() {
	if err := platform.RevealInFileManager(ui.library.RootDir()); err != nil {
		dialog.ShowError(err, ui.window)
	}
}

// onToggleTheme flips between the light and dark theme
func (ui *RootUI) onToggleTheme() {
	if ui.settings.IsDarkTheme() {
		ui.settings.SetTheme(config.ThemeLight)
	} else {
		ui.settings.SetTheme(config.ThemeDark)
	}
	ui.applyTheme()
}

// applyTheme installs the configured theme and refreshes the window
func (ui *RootUI) applyTheme() {
	ui.app.Settings().SetTheme(NewAppTheme(ui.settings.IsDarkTheme()))
	ui.window.Canvas().Refresh(ui.window.Content())
}

// onShowSettings shows the settings dialog
func (ui *RootUI) onShowSettings() {
	ShowSettingsDialog(ui.window, ui.settings, ui.library, func() {
		ui.applyTheme()
		ui.StartScan()
	})
}

// MaybeShowWelcome shows the onboarding dialog on the first launch
func (ui *RootUI) MaybeShowWelcome() {
	if ui.settings.IsFirstRunDone() {
		return
	}
	ShowWelcomeDialog(ui.window, ui.settings, func() {
		ui.settings.SetFirstRunDone(true)
		if err := platform.CreateDirectoryIfNotExists(ui.settings.GetLibraryPath()); err != nil {
			log.Printf("Creating library dir: %v", err)
		}
		ui.library.SetRootDir(ui.settings.GetLibraryPath())
		ui.applyTheme()
		ui.StartScan()
	})
}
