package ui

import "time"

// UI-wide constants to avoid magic numbers/strings scattered across the codebase.

// Icons (emojis/symbols)
const (
	IconSettings = "⚙"
	IconReload   = "⟳"
	IconFolder   = "📁"
	IconAdd      = "+"
	IconTheme    = "◐"
	IconCube     = "🧊"
	IconClock    = "🕒"
	IconDelete   = "🗑"
)

// Text fragments
const (
	MiddleDotSeparator = " · "
	DashPlaceholder    = "—"
)

// Gallery card sizing
const (
	CardWidth       float32 = 200
	CardHeight      float32 = 240
	CardThumbWidth  float32 = 184
	CardThumbHeight float32 = 140
)

// Dialog sizing
const (
	NewModelDialogWidth  float32 = 620
	NewModelDialogHeight float32 = 520
	EditDialogWidth      float32 = 560
	EditDialogHeight     float32 = 460
	SettingsDialogWidth  float32 = 500
	SettingsDialogHeight float32 = 360
	WelcomeDialogWidth   float32 = 460
	WelcomeDialogHeight  float32 = 300
	PreviewDialogWidth   float32 = 640
	PreviewDialogHeight  float32 = 560
)

// 3D preview behavior
const (
	PreviewViewSize = 480

	// Slider re-renders run at reduced quality while dragging, then once at
	// full quality after the value settles.
	PreviewDragQuality  = 0.4
	PreviewSettleDelay  = 250 * time.Millisecond
	PreviewMinZoom      = 0.5
	PreviewMaxZoom      = 2.5
	PreviewElevationMin = -90
	PreviewElevationMax = 90
	PreviewAzimuthMin   = 0
	PreviewAzimuthMax   = 360
)

// Scan notification behavior
const (
	ScanNotifyAutoHide = 3 * time.Second
)
