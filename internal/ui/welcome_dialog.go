package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/zprint/zprint/internal/config"
	"github.com/zprint/zprint/internal/platform"
)

// ShowWelcomeDialog runs first-launch onboarding: storage location and theme.
// onDone runs after the user confirms.
func ShowWelcomeDialog(window fyne.Window, settings *config.Settings, onDone func()) {
	pathEntry := widget.NewEntry()
	pathEntry.SetText(settings.GetLibraryPath())

	browseBtn := widget.NewButton("Browse", func() {
		dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
			if err != nil || uri == nil {
				return
			}
			pathEntry.SetText(uri.Path())
		}, window)
	})

	themeRadio := widget.NewRadioGroup([]string{"Light", "Dark"}, nil)
	if settings.IsDarkTheme() {
		themeRadio.SetSelected("Dark")
	} else {
		themeRadio.SetSelected("Light")
	}

	form := container.NewVBox(
		widget.NewLabelWithStyle("Welcome to zPrint", fyne.TextAlignCenter, fyne.TextStyle{Bold: true}),
		widget.NewLabel("Choose where your model library lives and how the app should look."),
		widget.NewSeparator(),
		widget.NewLabel("Library folder:"),
		container.NewBorder(nil, nil, nil, browseBtn, pathEntry),
		widget.NewLabel("Theme:"),
		themeRadio,
	)

	d := dialog.NewCustomConfirm("Welcome", "Get Started", "Later", form, func(confirmed bool) {
		if !confirmed {
			onDone()
			return
		}
		if path := platform.ExpandPath(pathEntry.Text); path != "" {
			settings.SetLibraryPath(path)
		}
		if themeRadio.Selected == "Dark" {
			settings.SetTheme(config.ThemeDark)
		} else {
			settings.SetTheme(config.ThemeLight)
		}
		onDone()
	}, window)
	d.Resize(fyne.NewSize(WelcomeDialogWidth, WelcomeDialogHeight))
	d.Show()
}
