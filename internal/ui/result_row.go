package ui

import (
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/magnetdrop/internal/model"
)

// ResultRow is a compact row widget for one converted torrent
type ResultRow struct {
	widget.BaseWidget

	row          model.Row
	localization *Localization

	// UI components
	nameLabel *widget.Label
	pathLabel *widget.Label
	link      *widget.Hyperlink
	linkText  *widget.Label

	// Action buttons
	revealBtn *widget.Button // reveal source file in file manager
	copyBtn   *widget.Button

	// Callbacks
	onReveal   func(path string)
	onCopyLink func(link string)
}

// NewResultRow creates a new result row widget
func NewResultRow(localization *Localization) *ResultRow {
	rr := &ResultRow{localization: localization}
	rr.ExtendBaseWidget(rr)
	rr.createUI()
	return rr
}

// SetCallbacks sets the action callbacks
func (rr *ResultRow) SetCallbacks(onReveal func(path string), onCopyLink func(link string)) {
	rr.onReveal = onReveal
	rr.onCopyLink = onCopyLink
}

// UpdateRow shows row in the widget
func (rr *ResultRow) UpdateRow(row model.Row) {
	rr.row = row
	rr.updateFromRow()
	rr.Refresh()
}

// Row returns the row currently shown
func (rr *ResultRow) Row() model.Row {
	return rr.row
}

// createUI creates the UI components
func (rr *ResultRow) createUI() {
	rr.nameLabel = widget.NewLabel("")
	rr.nameLabel.TextStyle = fyne.TextStyle{Bold: true}
	rr.nameLabel.Truncation = fyne.TextTruncateEllipsis

	rr.pathLabel = widget.NewLabel("")
	rr.pathLabel.Truncation = fyne.TextTruncateEllipsis
	rr.pathLabel.Importance = widget.LowImportance

	rr.link = widget.NewHyperlink("", nil)
	rr.link.Truncation = fyne.TextTruncateEllipsis

	rr.linkText = widget.NewLabel("")
	rr.linkText.Truncation = fyne.TextTruncateEllipsis
	rr.linkText.TextStyle = fyne.TextStyle{Monospace: true}
	rr.linkText.Hide()

	rr.revealBtn = widget.NewButton(rr.localization.GetText(KeyReveal), func() {
		if rr.onReveal != nil && rr.row.Path != "" {
			rr.onReveal(rr.row.Path)
		}
	})
	rr.revealBtn.Importance = widget.MediumImportance

	rr.copyBtn = widget.NewButton(rr.localization.GetText(KeyCopyLink), func() {
		if rr.onCopyLink != nil && rr.row.Link != "" {
			rr.onCopyLink(rr.row.Link)
		}
	})
	rr.copyBtn.Importance = widget.MediumImportance
}

// updateFromRow updates UI components based on the row
func (rr *ResultRow) updateFromRow() {
	rr.nameLabel.SetText(displayText(rr.row.Name))
	rr.pathLabel.SetText(displayText(rr.row.Path))

	if rr.row.IsLinkActive() {
		rr.link.SetText(rr.row.Link)
		rr.link.SetURL(rr.row.LinkURL)
		rr.link.Show()
		rr.linkText.Hide()
	} else {
		rr.linkText.SetText(displayText(rr.row.Link))
		rr.linkText.Show()
		rr.link.Hide()
	}

	if rr.row.Path == "" {
		rr.revealBtn.Disable()
	} else {
		rr.revealBtn.Enable()
	}
	if rr.row.Link == "" {
		rr.copyBtn.Disable()
	} else {
		rr.copyBtn.Enable()
	}

	rr.revealBtn.SetText(rr.localization.GetText(KeyReveal))
	rr.copyBtn.SetText(rr.localization.GetText(KeyCopyLink))
}

// CreateRenderer creates the widget renderer
func (rr *ResultRow) CreateRenderer() fyne.WidgetRenderer {
	actions := container.NewHBox(rr.revealBtn, rr.copyBtn)
	text := container.NewVBox(
		container.NewBorder(nil, nil, nil, actions, rr.nameLabel),
		rr.pathLabel,
		container.NewStack(rr.link, rr.linkText),
	)
	return widget.NewSimpleRenderer(container.NewVBox(text, widget.NewSeparator()))
}

// MinSize keeps rows readable in narrow windows
func (rr *ResultRow) MinSize() fyne.Size {
	size := rr.BaseWidget.MinSize()
	return fyne.NewSize(max(size.Width, RowMinWidth), max(size.Height, RowMinHeight))
}

// displayText keeps single-line labels single-line; empty values show a dash.
func displayText(s string) string {
	s = strings.NewReplacer("\n", " ", "\r", " ", "\t", " ").Replace(s)
	s = strings.TrimSpace(s)
	if s == "" {
		return DashPlaceholder
	}
	return s
}
