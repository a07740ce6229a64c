// Package vim implements a modal text-editing engine over a host-owned
// buffer: Normal/Insert/Visual/Visual-Line modes, two-key compound commands,
// line motions, a single yank register, and bounded undo/redo. The engine
// holds no copy of the text; it reads and writes through the Host interface
// on every key event.
package vim

import (
	"time"
	"unicode/utf8"

	"promptpad/internal/logger"
)

const (
	maxUndoDepth          = 100
	defaultPendingTimeout = 1000 * time.Millisecond
)

type snapshot struct {
	text   string
	cursor int
}

// Engine is the modal state machine. One instance per host text widget,
// living for the widget's lifetime. All methods must be called from the
// host's event loop; the only internal goroutines (clipboard read, pending
// key expiry) re-enter through the scheduler.
type Engine struct {
	host Host
	clip Clipboard

	schedule     func(func())
	onModeChange func(Mode)
	onYank       func(string)
	onClose      func()

	enabled bool
	mode    Mode

	pending        string
	pendingTimer   *time.Timer
	pendingGen     int
	pendingUntil   time.Time
	pendingTimeout time.Duration

	// Visual anchor/active tracked explicitly so the active endpoint never
	// has to be re-derived from the host's start/end-only selection.
	anchor int
	active int

	yank         string
	yankLinewise bool

	undoStack []snapshot
	redoStack []snapshot

	pasteBusy bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithClipboard sets the system clipboard used by paste commands.
func WithClipboard(c Clipboard) Option {
	return func(e *Engine) { e.clip = c }
}

// WithModeCallback registers a callback invoked on every mode transition.
func WithModeCallback(fn func(Mode)) Option {
	return func(e *Engine) { e.onModeChange = fn }
}

// WithYankCallback registers a callback invoked with the yanked or deleted
// text so the host can mirror it to the system clipboard.
func WithYankCallback(fn func(string)) Option {
	return func(e *Engine) { e.onYank = fn }
}

// WithCloseCallback registers the callback invoked on `q`.
func WithCloseCallback(fn func()) Option {
	return func(e *Engine) { e.onClose = fn }
}

// WithPendingTimeout overrides the compound-key expiry window.
func WithPendingTimeout(d time.Duration) Option {
	return func(e *Engine) { e.pendingTimeout = d }
}

// WithScheduler sets how asynchronous completions (clipboard reads, pending
// key expiry) are delivered back onto the host's event loop. The default
// runs them inline on the calling goroutine, which is only safe for
// single-threaded hosts and tests.
func WithScheduler(fn func(func())) Option {
	return func(e *Engine) { e.schedule = fn }
}

// New creates a disabled engine attached to host. While disabled the widget
// behaves as a plain text box (Insert mode, no keys intercepted).
func New(host Host, opts ...Option) *Engine {
	e := &Engine{
		host:           host,
		mode:           Insert,
		pendingTimeout: defaultPendingTimeout,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.schedule == nil {
		e.schedule = func(fn func()) { fn() }
	}
	return e
}

// SetScheduler replaces the async completion scheduler. Hosts that only
// obtain their event loop after construction (e.g. a Bubble Tea program)
// wire it here before the first key event.
func (e *Engine) SetScheduler(fn func(func())) {
	if fn != nil {
		e.schedule = fn
	}
}

// SetCloseCallback replaces the `q` close callback.
func (e *Engine) SetCloseCallback(fn func()) {
	e.onClose = fn
}

// Enabled reports whether modal editing is active.
func (e *Engine) Enabled() bool { return e.enabled }

// Mode returns the current mode.
func (e *Engine) Mode() Mode { return e.mode }

// SetEnabled toggles modal editing. Enabling enters Normal mode with block
// cursor semantics; disabling returns the widget to plain text-box behavior
// and cancels any pending compound-key timer.
func (e *Engine) SetEnabled(on bool) {
	if e.enabled == on {
		return
	}
	e.enabled = on
	e.clearPending()
	if !on {
		if e.host != nil {
			caret := e.cursor()
			e.host.SetSelectionRange(caret, caret, Forward)
		}
		e.transition(Insert)
		return
	}
	if e.host != nil {
		e.blockCursor(e.cursor())
	}
	e.transition(Normal)
}

// Cleanup cancels timers. Must be called when the host widget is torn down.
func (e *Engine) Cleanup() {
	e.clearPending()
}

// HandleKey dispatches one key event. Keys arrive in Bubble Tea string form
// ("a", "G", "esc", "ctrl+[", "backspace"). The return value tells the host
// whether the event was fully handled and default behavior should be
// suppressed.
func (e *Engine) HandleKey(key string) bool {
	if !e.enabled || e.host == nil {
		return false
	}
	key = normalizeKey(key)

	// While a clipboard paste is in flight the buffer is about to change
	// under us; command-mode keys are consumed and dropped until it lands.
	if e.pasteBusy && e.mode != Insert {
		return true
	}

	switch e.mode {
	case Normal:
		return e.handleNormal(key)
	case Insert:
		return e.handleInsert(key)
	case Visual, VisualLine:
		return e.handleVisual(key)
	}
	return false
}

// normalizeKey folds the Ctrl+[ alias onto Escape.
func normalizeKey(key string) string {
	if key == "ctrl+[" {
		return "esc"
	}
	return key
}

// printableKey reports whether key is a single printable rune with no
// modifier, i.e. something the host widget would otherwise insert.
func printableKey(key string) bool {
	return utf8.RuneCountInString(key) == 1
}

func (e *Engine) handleInsert(key string) bool {
	if key != "esc" {
		// Pass-through: the host widget's native insertion applies.
		return false
	}
	e.saveState()
	caret := max(e.cursor()-1, 0)
	e.transition(Normal)
	e.blockCursor(caret)
	return true
}

// transition switches modes, clearing any pending compound key so no
// two-key state leaks across mode boundaries.
func (e *Engine) transition(to Mode) {
	e.clearPending()
	if to == e.mode {
		return
	}
	logger.Debug("vim: mode %s -> %s", e.mode, to)
	e.mode = to
	if e.onModeChange != nil {
		e.onModeChange(to)
	}
}

// enterInsert collapses the selection to a zero-width caret so typed text
// never silently overwrites a selection.
func (e *Engine) enterInsert(caret int) {
	n := e.textLen()
	caret = clamp(caret, 0, n)
	e.host.SetSelectionRange(caret, caret, Forward)
	e.transition(Insert)
}

func (e *Engine) enterVisual(mode Mode) {
	cur := e.cursor()
	n := e.textLen()
	if n > 0 && cur >= n {
		cur = n - 1
	}
	e.anchor, e.active = cur, cur
	e.transition(mode)
	e.applyVisualSelection()
}

// cursor is the caret position the engine operates on: the start of the
// host selection (the block cursor is a 1-char selection in Normal mode).
func (e *Engine) cursor() int {
	return clamp(e.host.SelectionStart(), 0, e.textLen())
}

func (e *Engine) textLen() int {
	return utf8.RuneCountInString(e.host.Text())
}

// blockCursor re-applies Normal-mode cursor semantics at pos: a 1-char
// selection when a char is under the cursor, the last char at end of
// buffer, a zero-width caret on an empty buffer.
func (e *Engine) blockCursor(pos int) {
	n := e.textLen()
	switch {
	case n == 0:
		e.host.SetSelectionRange(0, 0, Forward)
	case pos >= n:
		e.host.SetSelectionRange(n-1, n, Forward)
	default:
		pos = max(pos, 0)
		e.host.SetSelectionRange(pos, pos+1, Forward)
	}
}

// selectionBounds returns the host selection clamped into the buffer with
// start <= end.
func (e *Engine) selectionBounds() (int, int) {
	n := e.textLen()
	s := clamp(e.host.SelectionStart(), 0, n)
	en := clamp(e.host.SelectionEnd(), 0, n)
	if s > en {
		s, en = en, s
	}
	return s, en
}

func (e *Engine) setText(text string) {
	e.host.SetText(text)
	e.host.NotifyContentChanged()
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
