package pipeline

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/ytget/magnetdrop/internal/clipboard"
	"github.com/ytget/magnetdrop/internal/model"
)

// LinkSeparator joins exported links
const LinkSeparator = "\n"

// ExportController copies the links of the visible rows to the clipboard.
type ExportController struct {
	clipboard clipboard.Writer
	visible   func() model.View
	logger    *slog.Logger
}

// NewExportController creates a controller reading rows from visible
func NewExportController(writer clipboard.Writer, visible func() model.View, logger *slog.Logger) *ExportController {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExportController{clipboard: writer, visible: visible, logger: logger}
}

// Export writes the visible links, in row order, to the clipboard and
// returns how many were copied. Nothing is written when no row is visible.
func (e *ExportController) Export() (int, error) {
	links := e.visible().Links()
	if len(links) == 0 {
		return 0, ErrNothingToExport
	}
	if e.clipboard == nil {
		return 0, fmt.Errorf("%w: no clipboard", ErrClipboard)
	}

	if err := e.clipboard.WriteText(strings.Join(links, LinkSeparator)); err != nil {
		e.logger.Warn("copy failed", "links", len(links), "error", err)
		return 0, fmt.Errorf("%w: %w", ErrClipboard, err)
	}

	e.logger.Info("links copied", "count", len(links))
	return len(links), nil
}
