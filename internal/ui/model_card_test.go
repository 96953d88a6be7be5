package ui

import (
	"testing"

	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/theme"

	"github.com/zprint/zprint/internal/model"
)

func TestModelCard(t *testing.T) {
	test.NewApp()

	m := &model.Model{
		ID:     "benchy",
		Folder: "/library/benchy",
		Metadata: model.Metadata{
			Name:   "Benchy",
			GCodes: []model.GCodeEntry{{File: "hull.gcode", PrintTime: "1h 30m"}},
			Active: true,
		},
	}

	card := NewModelCard(m)
	if card.nameLabel.Text != "Benchy" {
		t.Errorf("name label = %q", card.nameLabel.Text)
	}
	if card.timeLabel.Text != IconClock+" 1h 30m" {
		t.Errorf("time label = %q", card.timeLabel.Text)
	}
	if !card.activeCheck.Checked {
		t.Error("active check should mirror the metadata")
	}

	// Toggling the check fires the callback with the model ID
	var gotID string
	var gotActive bool
	card.SetCallbacks(func(id string, active bool) {
		gotID, gotActive = id, active
	}, nil, nil)
	card.activeCheck.SetChecked(false)
	if gotID != "benchy" || gotActive {
		t.Errorf("toggle callback = %q, %v", gotID, gotActive)
	}

	// Swapping the model reuses the widget
	card.SetModel(&model.Model{ID: "vase", Metadata: model.Metadata{Name: "Vase"}})
	if card.nameLabel.Text != "Vase" {
		t.Errorf("name label after SetModel = %q", card.nameLabel.Text)
	}
	if card.timeLabel.Text != IconClock+" "+DashPlaceholder {
		t.Errorf("time label placeholder = %q", card.timeLabel.Text)
	}

	size := card.MinSize()
	if size.Width < CardWidth || size.Height < CardHeight {
		t.Errorf("card min size %v should cover the grid cell", size)
	}
}

func TestModelCard_NilModel(t *testing.T) {
	test.NewApp()
	card := NewModelCard(nil)
	if card.nameLabel.Text != "Unknown" {
		t.Errorf("nil model fallback label = %q", card.nameLabel.Text)
	}
}

func TestAppTheme(t *testing.T) {
	light := NewAppTheme(false)
	dark := NewAppTheme(true)

	lightBg := light.Color(theme.ColorNameBackground, theme.VariantLight)
	darkBg := dark.Color(theme.ColorNameBackground, theme.VariantDark)
	if lightBg == darkBg {
		t.Error("variants should use different backgrounds")
	}

	if light.Size(theme.SizeNamePadding) >= theme.DefaultTheme().Size(theme.SizeNamePadding) {
		t.Error("theme padding should be compact")
	}
}
