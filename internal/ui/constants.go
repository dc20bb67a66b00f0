package ui

import "time"

// UI-wide constants to avoid magic numbers/strings scattered across the codebase.

// Icons (emojis/symbols)
const (
	IconSettings = "⚙"
	IconFolder   = "📁"
	IconCopy     = "📋"
	IconMagnet   = "🧲"
	IconError    = "❌"
	IconSearch   = "🔍"
)

// Text fragments
const (
	MiddleDotSeparator = " · "
	DashPlaceholder    = "—"
)

// FileURIScheme is the scheme of dropped local files
const FileURIScheme = "file"

// Layout sizing (ResultRow / lists)
const (
	RowMinWidth  float32 = 400
	RowMinHeight float32 = 64

	SearchTypeSelectWidth float32 = 110
)

// Notification behavior
const (
	NotificationAutoHide = 3 * time.Second
)

// Dialog sizing
const (
	SettingsDialogWidth  float32 = 460
	SettingsDialogHeight float32 = 360
)
