package pipeline

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/ytget/magnetdrop/internal/host"
)

// DropController turns a file drop into a fresh conversion batch.
type DropController struct {
	converter host.Converter
	reset     func() string
	logger    *slog.Logger
}

// NewDropController creates a controller. reset clears the presentation
// state and returns the new batch identifier.
func NewDropController(converter host.Converter, reset func() string, logger *slog.Logger) *DropController {
	if logger == nil {
		logger = slog.Default()
	}
	return &DropController{converter: converter, reset: reset, logger: logger}
}

// HandleDrop clears previous results and submits paths for conversion.
// Invalid drops are rejected before anything is cleared. The returned batch
// identifier is empty when nothing was submitted.
func (d *DropController) HandleDrop(paths []string, fullLink bool) (string, error) {
	if len(paths) == 0 {
		return "", ErrNoPaths
	}
	for i, p := range paths {
		if strings.TrimSpace(p) == "" {
			return "", fmt.Errorf("%w: index %d", ErrInvalidPath, i)
		}
	}

	batch := d.reset()

	req := host.ConvertRequest{
		Batch:    batch,
		Paths:    append([]string(nil), paths...),
		FullLink: fullLink,
	}
	if d.converter == nil {
		d.logger.Error("conversion not submitted", "batch", batch, "error", "no converter")
		return batch, fmt.Errorf("failed to submit conversion: no converter")
	}
	if err := d.converter.SubmitConversion(req); err != nil {
		d.logger.Error("conversion not submitted", "batch", batch, "error", err)
		return batch, fmt.Errorf("failed to submit conversion: %w", err)
	}

	d.logger.Info("conversion submitted", "batch", batch, "paths", len(paths), "full_link", fullLink)
	return batch, nil
}
