// Package cli implements the magnetdrop command line: headless conversion of
// torrent files to magnet links through the same presentation pipeline as
// the desktop window.
package cli
