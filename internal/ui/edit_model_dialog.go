package ui

import (
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/zprint/zprint/internal/library"
	"github.com/zprint/zprint/internal/model"
	"github.com/zprint/zprint/internal/platform"
)

// EditModelDialog edits an existing model's metadata
type EditModelDialog struct {
	window    fyne.Window
	library   *library.Service
	model     *model.Model
	onChanged func()

	nameEntry *widget.Entry
	timeEntry *widget.Entry
	gcodeRows []*gcodeRow

	dialog *dialog.CustomDialog
}

// ShowEditModelDialog opens the dialog; onChanged runs after a save or delete
func ShowEditModelDialog(window fyne.Window, librarySvc *library.Service, m *model.Model, onChanged func()) {
	ed := &EditModelDialog{
		window:    window,
		library:   librarySvc,
		model:     m,
		onChanged: onChanged,
	}
	ed.createUI()
	ed.dialog.Show()
}

func (ed *EditModelDialog) createUI() {
	ed.nameEntry = widget.NewEntry()
	ed.nameEntry.SetText(ed.model.Name())

	ed.timeEntry = widget.NewEntry()
	ed.timeEntry.SetPlaceHolder("1h 30m")
	ed.timeEntry.SetText(ed.model.Metadata.PrintTime)

	gcodeBox := container.NewVBox()
	for _, entry := range ed.model.Metadata.GCodes {
		row := &gcodeRow{
			path:          entry.File,
			materialEntry: widget.NewEntry(),
			colourEntry:   widget.NewEntry(),
			timeEntry:     widget.NewEntry(),
		}
		row.materialEntry.SetText(entry.Material)
		row.colourEntry.SetText(entry.Colour)
		row.timeEntry.SetText(entry.PrintTime)
		ed.gcodeRows = append(ed.gcodeRows, row)

		gcodeBox.Add(container.NewVBox(
			widget.NewLabel(entry.File),
			container.NewGridWithColumns(3, row.materialEntry, row.colourEntry, row.timeEntry),
		))
	}

	revealBtn := widget.NewButton(IconFolder+" Show in Folder", func() {
		if err := platform.RevealInFileManager(ed.model.Folder); err != nil {
			dialog.ShowError(err, ed.window)
		}
	})
	revealBtn.Importance = widget.LowImportance
	openBtn := widget.NewButton(IconCube+" Open Model File", func() {
		path := ed.model.PrimaryModelPath()
		if path == "" {
			return
		}
		if err := platform.OpenFileWithDefaultApp(path); err != nil {
			dialog.ShowError(err, ed.window)
		}
	})
	openBtn.Importance = widget.LowImportance

	form := container.NewVBox(
		container.NewHBox(revealBtn, openBtn),
		widget.NewSeparator(),
		widget.NewLabel("Name:"),
		ed.nameEntry,
		widget.NewLabel("Print time:"),
		ed.timeEntry,
		widget.NewSeparator(),
		widget.NewLabel("G-code:"),
		gcodeBox,
	)

	deleteBtn := widget.NewButton(IconDelete+" Delete", ed.onDelete)
	deleteBtn.Importance = widget.DangerImportance
	saveBtn := widget.NewButton("Save", ed.onSave)
	saveBtn.Importance = widget.HighImportance
	cancelBtn := widget.NewButton("Cancel", func() { ed.dialog.Hide() })

	buttons := container.NewBorder(nil, nil, deleteBtn, container.NewHBox(cancelBtn, saveBtn))
	content := container.NewBorder(nil, buttons, nil, nil, container.NewScroll(form))

	ed.dialog = dialog.NewCustomWithoutButtons("Edit "+ed.model.Name(), content, ed.window)
	ed.dialog.Resize(fyne.NewSize(EditDialogWidth, EditDialogHeight))
}

// onSave writes the edited metadata back through the library service
func (ed *EditModelDialog) onSave() {
	name := strings.TrimSpace(ed.nameEntry.Text)
	if name == "" {
		dialog.ShowInformation("Edit Model", "The name must not be empty.", ed.window)
		return
	}

	meta := ed.model.Metadata
	meta.Name = name
	meta.PrintTime = strings.TrimSpace(ed.timeEntry.Text)
	for i, row := range ed.gcodeRows {
		if i >= len(meta.GCodes) {
			break
		}
		meta.GCodes[i].Material = strings.TrimSpace(row.materialEntry.Text)
		meta.GCodes[i].Colour = strings.TrimSpace(row.colourEntry.Text)
		meta.GCodes[i].PrintTime = strings.TrimSpace(row.timeEntry.Text)
	}

	if err := ed.library.UpdateMetadata(ed.model.ID, meta); err != nil {
		dialog.ShowError(err, ed.window)
		return
	}

	ed.dialog.Hide()
	if ed.onChanged != nil {
		ed.onChanged()
	}
}

// onDelete removes the model after confirmation
func (ed *EditModelDialog) onDelete() {
	dialog.ShowConfirm("Delete Model",
		"Delete \""+ed.model.Name()+"\" and all its files? This cannot be undone.",
		func(confirmed bool) {
			if !confirmed {
				return
			}
			if err := ed.library.Delete(ed.model.ID); err != nil {
				dialog.ShowError(err, ed.window)
				return
			}
			ed.dialog.Hide()
			if ed.onChanged != nil {
				ed.onChanged()
			}
		}, ed.window)
}
