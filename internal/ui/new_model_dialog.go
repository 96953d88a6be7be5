package ui

import (
	"image"
	"log"
	"path/filepath"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"github.com/zprint/zprint/internal/gcode"
	"github.com/zprint/zprint/internal/library"
	"github.com/zprint/zprint/internal/mesh"
	"github.com/zprint/zprint/internal/model"
)

// gcodeRow is one editable G-code line in the new-model dialog
type gcodeRow struct {
	path          string
	materialEntry *widget.Entry
	colourEntry   *widget.Entry
	timeEntry     *widget.Entry
}

// NewModelDialog collects everything needed to create a model package
type NewModelDialog struct {
	window  fyne.Window
	library *library.Service
	onDone  func()

	nameEntry  *widget.Entry
	filesBox   *fyne.Container
	gcodeBox   *fyne.Container
	preview    *canvas.Image
	modelFiles []string
	gcodeRows  []*gcodeRow

	dialog *dialog.CustomDialog
}

// ShowNewModelDialog opens the dialog; onDone runs after a successful create
func ShowNewModelDialog(window fyne.Window, librarySvc *library.Service, onDone func()) {
	nd := &NewModelDialog{
		window:  window,
		library: librarySvc,
		onDone:  onDone,
	}
	nd.createUI()
	nd.dialog.Show()
}

func (nd *NewModelDialog) createUI() {
	nd.nameEntry = widget.NewEntry()
	nd.nameEntry.SetPlaceHolder("Model name")

	nd.filesBox = container.NewVBox()
	nd.gcodeBox = container.NewVBox()

	nd.preview = canvas.NewImageFromImage(nil)
	nd.preview.FillMode = canvas.ImageFillContain
	nd.preview.SetMinSize(fyne.NewSize(CardThumbWidth, CardThumbHeight))

	addModelBtn := widget.NewButton(IconAdd+" Model file", nd.onAddModelFile)
	addGCodeBtn := widget.NewButton(IconAdd+" G-code file", nd.onAddGCodeFile)

	form := container.NewVBox(
		widget.NewLabel("Name:"),
		nd.nameEntry,
		widget.NewSeparator(),
		container.NewBorder(nil, nil, widget.NewLabel("Model files:"), addModelBtn),
		nd.filesBox,
		widget.NewSeparator(),
		container.NewBorder(nil, nil, widget.NewLabel("G-code:"), addGCodeBtn),
		nd.gcodeBox,
		widget.NewSeparator(),
		container.NewCenter(nd.preview),
	)

	createBtn := widget.NewButton("Create", nd.onCreate)
	createBtn.Importance = widget.HighImportance
	cancelBtn := widget.NewButton("Cancel", func() { nd.dialog.Hide() })

	content := container.NewBorder(nil, container.NewHBox(cancelBtn, createBtn), nil, nil,
		container.NewScroll(form))
	nd.dialog = dialog.NewCustomWithoutButtons("New Model", content, nd.window)
	nd.dialog.Resize(fyne.NewSize(NewModelDialogWidth, NewModelDialogHeight))
}

// onAddModelFile picks an STL/3MF file; duplicates by base name are ignored
func (nd *NewModelDialog) onAddModelFile() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		path := reader.URI().Path()
		reader.Close()

		base := strings.ToLower(filepath.Base(path))
		for _, existing := range nd.modelFiles {
			if strings.ToLower(filepath.Base(existing)) == base {
				return
			}
		}
		nd.modelFiles = append(nd.modelFiles, path)
		nd.filesBox.Add(widget.NewLabel(filepath.Base(path)))
		nd.filesBox.Refresh()

		// Derive a default name from the first file
		if nd.nameEntry.Text == "" {
			stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
			nd.nameEntry.SetText(stem)
		}
		if len(nd.modelFiles) == 1 {
			nd.renderDialogPreview(path)
		}
	}, nd.window)
	fd.SetFilter(storage.NewExtensionFileFilter([]string{".stl", ".3mf"}))
	fd.Show()
}

// onAddGCodeFile picks a G-code file and prefills its metadata row
func (nd *NewModelDialog) onAddGCodeFile() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		path := reader.URI().Path()
		reader.Close()

		for _, row := range nd.gcodeRows {
			if strings.EqualFold(filepath.Base(row.path), filepath.Base(path)) {
				return
			}
		}
		nd.addGCodeRow(path)
	}, nd.window)
	fd.SetFilter(storage.NewExtensionFileFilter([]string{".gcode"}))
	fd.Show()
}

// addGCodeRow builds the editable row, prefilled from the file header with
// the filename convention as fallback
func (nd *NewModelDialog) addGCodeRow(path string) {
	extracted := gcode.ExtractMetadata(path, gcode.DefaultMaxLines)
	fromName := gcode.ParseFilename(path)

	row := &gcodeRow{
		path:          path,
		materialEntry: widget.NewEntry(),
		colourEntry:   widget.NewEntry(),
		timeEntry:     widget.NewEntry(),
	}
	row.materialEntry.SetPlaceHolder("Material")
	row.colourEntry.SetPlaceHolder("Colour")
	row.timeEntry.SetPlaceHolder("1h 30m")

	row.materialEntry.SetText(firstNonEmpty(extracted.Material, fromName.Material))
	row.colourEntry.SetText(firstNonEmpty(extracted.Colour, fromName.Colour))
	row.timeEntry.SetText(firstNonEmpty(extracted.PrintTime, fromName.PrintTime))

	nd.gcodeRows = append(nd.gcodeRows, row)
	nd.gcodeBox.Add(container.NewVBox(
		widget.NewLabel(filepath.Base(path)),
		container.NewGridWithColumns(3, row.materialEntry, row.colourEntry, row.timeEntry),
	))
	nd.gcodeBox.Refresh()
}

// renderDialogPreview renders the first model file off the UI thread
func (nd *NewModelDialog) renderDialogPreview(path string) {
	go func() {
		img, err := mesh.RenderPreviewFile(path, int(CardThumbWidth), int(CardThumbHeight),
			mesh.RenderOptions{Quality: PreviewDragQuality})
		if err != nil {
			log.Printf("Dialog preview for %s: %v", path, err)
			return
		}
		nd.setPreviewImage(img)
	}()
}

func (nd *NewModelDialog) setPreviewImage(img image.Image) {
	fyne.Do(func() {
		nd.preview.Image = img
		nd.preview.Refresh()
	})
}

// onCreate validates the form and builds the package
func (nd *NewModelDialog) onCreate() {
	name := strings.TrimSpace(nd.nameEntry.Text)
	if name == "" {
		dialog.ShowInformation("New Model", "Please enter a model name.", nd.window)
		return
	}
	if len(nd.modelFiles) == 0 {
		dialog.ShowInformation("New Model", "Please add at least one model file.", nd.window)
		return
	}

	req := library.PackageRequest{Name: name, ModelFiles: nd.modelFiles}
	for _, row := range nd.gcodeRows {
		req.GCodeFiles = append(req.GCodeFiles, row.path)
	}

	m, err := nd.library.CreatePackage(req)
	if err != nil {
		dialog.ShowError(err, nd.window)
		return
	}

	// Apply any user edits over the extracted G-code metadata
	if nd.applyRowEdits(m) {
		if err := nd.library.UpdateMetadata(m.ID, m.Metadata); err != nil {
			log.Printf("Saving edited G-code metadata: %v", err)
		}
	}

	nd.dialog.Hide()
	if nd.onDone != nil {
		nd.onDone()
	}
}

// applyRowEdits copies edited row values into the created metadata and
// reports whether anything changed
func (nd *NewModelDialog) applyRowEdits(m *model.Model) bool {
	changed := false
	for _, row := range nd.gcodeRows {
		base := filepath.Base(row.path)
		for i := range m.Metadata.GCodes {
			if !strings.EqualFold(m.Metadata.GCodes[i].File, base) {
				continue
			}
			entry := &m.Metadata.GCodes[i]
			for _, edit := range []struct {
				field *string
				value string
			}{
				{&entry.Material, strings.TrimSpace(row.materialEntry.Text)},
				{&entry.Colour, strings.TrimSpace(row.colourEntry.Text)},
				{&entry.PrintTime, strings.TrimSpace(row.timeEntry.Text)},
			} {
				if edit.value != *edit.field {
					*edit.field = edit.value
					changed = true
				}
			}
		}
	}
	return changed
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
