// Package clipboard adapts the system clipboard for the editor. Reads feed
// paste commands; writes mirror the yank register so yanked text is usable
// outside the app.
package clipboard

import (
	"context"
	"fmt"

	"github.com/atotto/clipboard"
)

// System talks to the OS clipboard.
type System struct{}

// Available reports whether a clipboard backend exists on this platform.
func (System) Available() bool { return !clipboard.Unsupported }

// ReadText returns the clipboard contents.
func (System) ReadText(_ context.Context) (string, error) {
	text, err := clipboard.ReadAll()
	if err != nil {
		return "", fmt.Errorf("read clipboard: %w", err)
	}
	return text, nil
}

// WriteText stores text on the clipboard.
func (System) WriteText(_ context.Context, text string) error {
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("write clipboard: %w", err)
	}
	return nil
}
