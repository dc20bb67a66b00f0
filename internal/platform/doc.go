package platform

// Package platform contains OS/platform integration: discovery of .torrent
// files among dropped paths and revealing source files in the file manager.
