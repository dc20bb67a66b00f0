package model

import (
	"path/filepath"
	"strings"
)

// Record is one converted torrent entry. ID is assigned on arrival and is
// never derived from the other fields, so identical name/path/link triples
// remain distinct records.
type Record struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
	Path string `json:"path" yaml:"path"`
	Link string `json:"link" yaml:"link"`
}

// HasID reports whether the record carries an identifier.
func (r Record) HasID() bool {
	return r.ID != ""
}

// GetDisplayName returns the name, or the base of the source path when the
// name is unknown. Empty when both are unknown.
func (r Record) GetDisplayName() string {
	if name := strings.TrimSpace(r.Name); name != "" {
		return name
	}
	if r.Path == "" {
		return ""
	}
	return filepath.Base(r.Path)
}
