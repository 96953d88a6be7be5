package ui

import (
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/zprint/zprint/internal/model"
)

// ModelCard is a gallery tile for one library model
type ModelCard struct {
	widget.BaseWidget

	model *model.Model

	// UI components
	thumbnail   *canvas.Image
	nameLabel   *widget.Label
	timeLabel   *widget.Label
	activeCheck *widget.Check
	previewBtn  *widget.Button
	editBtn     *widget.Button

	// Callbacks
	onToggleActive func(modelID string, active bool)
	onPreview      func(modelID string)
	onEdit         func(modelID string)
}

// NewModelCard creates a card for the given model
func NewModelCard(m *model.Model) *ModelCard {
	if m == nil {
		log.Printf("Warning: NewModelCard called with nil model")
		m = &model.Model{ID: "dummy", Metadata: model.Metadata{Name: "Unknown"}}
	}

	mc := &ModelCard{model: m}
	mc.ExtendBaseWidget(mc)
	mc.createUI()
	mc.updateFromModel()
	return mc
}

// SetCallbacks sets the card action callbacks
func (mc *ModelCard) SetCallbacks(
	onToggleActive func(modelID string, active bool),
	onPreview func(modelID string),
	onEdit func(modelID string),
) {
	mc.onToggleActive = onToggleActive
	mc.onPreview = onPreview
	mc.onEdit = onEdit
}

// SetModel swaps the displayed model, reusing the card widget
func (mc *ModelCard) SetModel(m *model.Model) {
	if m == nil {
		return
	}
	mc.model = m
	mc.updateFromModel()
}

func (mc *ModelCard) createUI() {
	mc.thumbnail = canvas.NewImageFromResource(theme.FileImageIcon())
	mc.thumbnail.FillMode = canvas.ImageFillContain
	mc.thumbnail.SetMinSize(fyne.NewSize(CardThumbWidth, CardThumbHeight))

	mc.nameLabel = widget.NewLabel("")
	mc.nameLabel.TextStyle = fyne.TextStyle{Bold: true}
	mc.nameLabel.Truncation = fyne.TextTruncateEllipsis

	mc.timeLabel = widget.NewLabel("")
	mc.timeLabel.TextStyle = fyne.TextStyle{Monospace: true}

	mc.activeCheck = widget.NewCheck("Active", func(checked bool) {
		if mc.onToggleActive != nil {
			mc.onToggleActive(mc.model.ID, checked)
		}
	})

	mc.previewBtn = widget.NewButton(IconCube+" 3D View", func() {
		if mc.onPreview != nil {
			mc.onPreview(mc.model.ID)
		}
	})
	mc.previewBtn.Importance = widget.LowImportance

	mc.editBtn = widget.NewButton("Edit", func() {
		if mc.onEdit != nil {
			mc.onEdit(mc.model.ID)
		}
	})
	mc.editBtn.Importance = widget.LowImportance
}

// updateFromModel refreshes the card widgets from the model state
func (mc *ModelCard) updateFromModel() {
	mc.nameLabel.SetText(mc.model.Name())

	if t := mc.model.DisplayPrintTime(); t != "" {
		mc.timeLabel.SetText(IconClock + " " + t)
	} else {
		mc.timeLabel.SetText(IconClock + " " + DashPlaceholder)
	}

	// SetChecked would re-trigger the callback
	mc.activeCheck.Checked = mc.model.Metadata.Active
	mc.activeCheck.Refresh()

	if path := mc.model.PreviewPath(); path != "" {
		mc.thumbnail.Resource = nil
		mc.thumbnail.File = path
	} else {
		mc.thumbnail.File = ""
		mc.thumbnail.Resource = theme.FileImageIcon()
	}
	mc.thumbnail.Refresh()
}

// CreateRenderer creates the widget renderer
func (mc *ModelCard) CreateRenderer() fyne.WidgetRenderer {
	buttons := container.NewHBox(mc.previewBtn, mc.editBtn)
	footer := container.NewBorder(nil, nil, mc.activeCheck, buttons)
	content := container.NewVBox(
		mc.thumbnail,
		mc.nameLabel,
		container.NewBorder(nil, nil, mc.timeLabel, nil),
		footer,
	)
	card := container.NewPadded(content)
	return widget.NewSimpleRenderer(card)
}

// MinSize returns the fixed card footprint so the grid stays regular
func (mc *ModelCard) MinSize() fyne.Size {
	base := mc.BaseWidget.MinSize()
	return fyne.NewSize(
		maxFloat32(base.Width, CardWidth),
		maxFloat32(base.Height, CardHeight),
	)
}

func maxFloat32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
