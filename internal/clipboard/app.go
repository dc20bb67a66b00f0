package clipboard

import (
	"errors"

	"fyne.io/fyne/v2"
)

// App writes through the clipboard of a fyne application. Use it from the
// UI goroutine.
type App struct {
	App fyne.App
}

// WriteText implements Writer
func (a App) WriteText(text string) error {
	if a.App == nil {
		return errors.New("no application")
	}
	cb := a.App.Clipboard()
	if cb == nil {
		return errors.New("application has no clipboard")
	}
	cb.SetContent(text)
	return nil
}
