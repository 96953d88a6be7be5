package main

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/zprint/zprint/internal/config"
	"github.com/zprint/zprint/internal/library"
	"github.com/zprint/zprint/internal/platform"
	"github.com/zprint/zprint/internal/ui"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "com.zprint.zprint"
	AppName = "zPrint"

	WindowWidth  = 900
	WindowHeight = 640
)

func main() {
	fmt.Printf("%s v%s starting...\n", AppName, version)

	myApp := app.NewWithID(AppID)

	settings := config.NewSettings(myApp)
	myApp.Settings().SetTheme(ui.NewAppTheme(settings.IsDarkTheme()))

	windowTitle := fmt.Sprintf("%s v%s", AppName, version)
	myWindow := myApp.NewWindow(windowTitle)
	myWindow.Resize(fyne.NewSize(WindowWidth, WindowHeight))

	// Initialize services
	libraryDir := settings.GetLibraryPath()
	if err := platform.CreateDirectoryIfNotExists(libraryDir); err != nil {
		fmt.Printf("failed to ensure library dir: %v\n", err)
	}

	librarySvc := library.NewService(libraryDir, settings.GetMaxParallelScans())
	librarySvc.SetPreviewOptions(settings.GetPreviewQuality(), settings.IsDarkTheme())

	// Create and setup UI
	root := ui.NewRootUI(myWindow, myApp, librarySvc)
	root.MaybeShowWelcome()
	root.StartScan()

	myWindow.ShowAndRun()
}
