package clipboard

import (
	"fmt"

	"github.com/atotto/clipboard"
)

// Writer replaces the system clipboard contents with text.
type Writer interface {
	WriteText(text string) error
}

// WriterFunc adapts a function to Writer
type WriterFunc func(text string) error

// WriteText calls f(text)
func (f WriterFunc) WriteText(text string) error {
	return f(text)
}

// System writes to the OS clipboard through the platform clipboard tool
// (pbcopy, xclip/xsel/wl-copy, or the Windows API).
type System struct{}

// WriteText implements Writer
func (System) WriteText(text string) error {
	if clipboard.Unsupported {
		return fmt.Errorf("clipboard unsupported on this system")
	}
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("failed to write clipboard: %w", err)
	}
	return nil
}
