package ui

// Package ui contains the Fyne-based desktop user interface for the application.
// It accepts dropped torrent files, forwards the search box to the presenter,
// renders the result list and copies the visible links. All UI strings are
// localized via Localization.
