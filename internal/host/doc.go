package host

// Package host implements the conversion and filtering services the UI
// delegates to: it turns .torrent files into magnet links, publishing one
// event per converted file, and narrows record lists by keyword.
