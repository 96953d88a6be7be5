package ui

import (
	"fmt"
	"log"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/zprint/zprint/internal/config"
	"github.com/zprint/zprint/internal/mesh"
	"github.com/zprint/zprint/internal/model"
)

// PreviewDialog is the interactive 3D view of a model
type PreviewDialog struct {
	window   fyne.Window
	settings *config.Settings
	mesh     *mesh.Mesh

	view       *canvas.Image
	elevSlider *widget.Slider
	azimSlider *widget.Slider
	zoomSlider *widget.Slider

	// renderSeq drops stale renders that finish out of order
	mu          sync.Mutex
	renderSeq   int
	settleTimer *time.Timer

	dialog *dialog.CustomDialog
}

// ShowPreviewDialog loads the model's primary file and opens the 3D view
func ShowPreviewDialog(window fyne.Window, m *model.Model, settings *config.Settings) {
	path := m.PrimaryModelPath()
	if path == "" {
		dialog.ShowInformation("3D View", "This model has no model file to display.", window)
		return
	}

	loaded, err := mesh.Load(path)
	if err != nil {
		dialog.ShowError(fmt.Errorf("loading %s: %w", path, err), window)
		return
	}

	pd := &PreviewDialog{
		window:   window,
		settings: settings,
		mesh:     loaded,
	}
	pd.createUI(m.Name())
	pd.dialog.Show()
	pd.render(1.0)
}

func (pd *PreviewDialog) createUI(title string) {
	pd.view = canvas.NewImageFromImage(nil)
	pd.view.FillMode = canvas.ImageFillContain
	pd.view.SetMinSize(fyne.NewSize(PreviewViewSize, PreviewViewSize))

	pd.elevSlider = widget.NewSlider(PreviewElevationMin, PreviewElevationMax)
	pd.elevSlider.SetValue(mesh.DefaultElevation)
	pd.azimSlider = widget.NewSlider(PreviewAzimuthMin, PreviewAzimuthMax)
	pd.azimSlider.SetValue(mesh.DefaultAzimuth)
	pd.zoomSlider = widget.NewSlider(PreviewMinZoom, PreviewMaxZoom)
	pd.zoomSlider.Step = 0.1
	pd.zoomSlider.SetValue(1.0)

	for _, slider := range []*widget.Slider{pd.elevSlider, pd.azimSlider, pd.zoomSlider} {
		slider.OnChanged = func(float64) { pd.onAngleDrag() }
	}

	controls := container.NewVBox(
		container.NewBorder(nil, nil, widget.NewLabel("Elevation"), nil, pd.elevSlider),
		container.NewBorder(nil, nil, widget.NewLabel("Azimuth  "), nil, pd.azimSlider),
		container.NewBorder(nil, nil, widget.NewLabel("Zoom     "), nil, pd.zoomSlider),
	)

	closeBtn := widget.NewButton("Close", func() { pd.dialog.Hide() })
	content := container.NewBorder(nil, container.NewVBox(controls, closeBtn), nil, nil, pd.view)

	pd.dialog = dialog.NewCustomWithoutButtons(IconCube+" "+title, content, pd.window)
	pd.dialog.Resize(fyne.NewSize(PreviewDialogWidth, PreviewDialogHeight))
}

// onAngleDrag re-renders cheaply during the drag and schedules one
// full-quality render for when the sliders settle
func (pd *PreviewDialog) onAngleDrag() {
	pd.render(PreviewDragQuality)

	pd.mu.Lock()
	if pd.settleTimer != nil {
		pd.settleTimer.Stop()
	}
	pd.settleTimer = time.AfterFunc(PreviewSettleDelay, func() {
		pd.render(1.0)
	})
	pd.mu.Unlock()
}

// render draws the mesh at the current angles in the background
func (pd *PreviewDialog) render(quality float64) {
	pd.mu.Lock()
	pd.renderSeq++
	seq := pd.renderSeq
	pd.mu.Unlock()

	opts := mesh.RenderOptions{
		DarkTheme: pd.settings.IsDarkTheme(),
		Elevation: pd.elevSlider.Value,
		Azimuth:   pd.azimSlider.Value,
		Zoom:      pd.zoomSlider.Value,
		Quality:   quality * pd.settings.GetPreviewQuality(),
	}

	go func() {
		img := mesh.RenderPreview(pd.mesh, PreviewViewSize, PreviewViewSize, opts)
		if img == nil {
			log.Printf("Preview render produced no image")
			return
		}

		pd.mu.Lock()
		stale := seq != pd.renderSeq
		pd.mu.Unlock()
		if stale {
			return
		}

		fyne.Do(func() {
			pd.view.Image = img
			pd.view.Refresh()
		})
	}()
}
