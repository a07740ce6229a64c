package vim

import "context"

// Direction is the orientation of a selection range. Extending a selection
// toward the start of the buffer sets Backward so the active endpoint stays
// on the correct side for further extension.
type Direction int

const (
	Forward Direction = iota
	Backward
)

// Host is the capability set the engine consumes from its text widget.
// The widget is the single source of truth for both content and selection;
// the engine never caches either across key events. Positions are rune
// offsets (0 = before the first rune, length = after the last).
type Host interface {
	Text() string
	SetText(text string)
	SelectionStart() int
	SelectionEnd() int
	SetSelectionRange(start, end int, dir Direction)

	// NotifyContentChanged triggers host-side hooks (char count, draft save)
	// after the engine mutates the buffer.
	NotifyContentChanged()
}

// Clipboard reads text from the system clipboard. Implementations may block;
// the engine always calls ReadText off its event loop and treats an error or
// empty string as "no clipboard text", falling back to the yank buffer.
type Clipboard interface {
	ReadText(ctx context.Context) (string, error)
}
