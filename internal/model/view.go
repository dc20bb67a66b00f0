package model

import (
	"net/url"
)

// ViewState represents what the result list currently shows
type ViewState string

const (
	// ViewStateRows means at least one row is visible
	ViewStateRows ViewState = "Rows"

	// ViewStateNoData means nothing has been converted since the last clear
	ViewStateNoData ViewState = "NoData"

	// ViewStateNoMatches means the active keyword matched nothing
	ViewStateNoMatches ViewState = "NoMatches"

	// ViewStateError means the view could not be produced
	ViewStateError ViewState = "Error"
)

// String returns the string representation of ViewState
func (vs ViewState) String() string {
	return string(vs)
}

// IsPlaceholder returns true if the state renders a single message instead of rows
func (vs ViewState) IsPlaceholder() bool {
	return vs == ViewStateNoData || vs == ViewStateNoMatches || vs == ViewStateError
}

// Row is the presentable projection of a Record.
type Row struct {
	ID   string
	Name string
	Path string
	Link string
	// LinkURL is nil when Link is empty or does not parse; the row then
	// shows the link text without making it activatable.
	LinkURL *url.URL
}

// IsLinkActive reports whether the link can be opened.
func (r Row) IsLinkActive() bool {
	return r.LinkURL != nil
}

// View is a fully rendered result list. A new View always replaces the
// previous one as a whole.
type View struct {
	State   ViewState
	Keyword string
	Rows    []Row
	Err     error
}

// Links returns the link of every visible row, in order.
func (v View) Links() []string {
	links := make([]string, 0, len(v.Rows))
	for _, row := range v.Rows {
		links = append(links, row.Link)
	}
	return links
}

// Len returns the number of visible rows.
func (v View) Len() int {
	return len(v.Rows)
}
