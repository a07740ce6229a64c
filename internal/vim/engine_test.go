package vim

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeHost is an in-memory stand-in for the host text widget.
type fakeHost struct {
	text     string
	selStart int
	selEnd   int
	dir      Direction
	notified int
}

func (h *fakeHost) Text() string            { return h.text }
func (h *fakeHost) SetText(s string)        { h.text = s }
func (h *fakeHost) SelectionStart() int     { return h.selStart }
func (h *fakeHost) SelectionEnd() int       { return h.selEnd }
func (h *fakeHost) NotifyContentChanged()   { h.notified++ }
func (h *fakeHost) SetSelectionRange(start, end int, dir Direction) {
	h.selStart, h.selEnd, h.dir = start, end, dir
}

// dropAsync discards scheduler callbacks; tests that rely on the lazy
// pending-key deadline use it so timer goroutines never touch the engine.
func dropAsync(func()) {}

func newTestEngine(t *testing.T, text string, cursor int, opts ...Option) (*Engine, *fakeHost) {
	t.Helper()
	h := &fakeHost{text: text, selStart: cursor, selEnd: cursor}
	opts = append([]Option{WithScheduler(dropAsync)}, opts...)
	e := New(h, opts...)
	e.SetEnabled(true)
	t.Cleanup(e.Cleanup)
	return e, h
}

// checkBounds asserts the standing selection invariant.
func checkBounds(t *testing.T, h *fakeHost) {
	t.Helper()
	n := len([]rune(h.text))
	require.GreaterOrEqual(t, h.selStart, 0, "selection start must be non-negative")
	require.LessOrEqual(t, h.selStart, h.selEnd, "selection start must not exceed end")
	require.LessOrEqual(t, h.selEnd, n, "selection end must not exceed buffer length")
}

func TestNewStartsDisabledInInsert(t *testing.T) {
	h := &fakeHost{text: "hello"}
	e := New(h)
	assert.False(t, e.Enabled())
	assert.Equal(t, Insert, e.Mode())
	assert.False(t, e.HandleKey("x"), "disabled engine must not intercept keys")
	assert.Equal(t, "hello", h.text)
}

func TestEnableAppliesBlockCursor(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		cursor    int
		wantStart int
		wantEnd   int
	}{
		{"mid buffer", "hello", 2, 2, 3},
		{"end of buffer", "hello", 5, 4, 5},
		{"empty buffer", "", 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, h := newTestEngine(t, tt.text, tt.cursor)
			assert.Equal(t, Normal, e.Mode())
			assert.Equal(t, tt.wantStart, h.selStart)
			assert.Equal(t, tt.wantEnd, h.selEnd)
			checkBounds(t, h)
		})
	}
}

func TestDisableReturnsToInsertAndCancelsPending(t *testing.T) {
	e, h := newTestEngine(t, "hello", 0)
	require.True(t, e.HandleKey("g"))
	e.SetEnabled(false)
	assert.Equal(t, Insert, e.Mode())
	assert.Empty(t, e.pending, "disable must cancel the pending compound key")
	assert.Equal(t, h.selStart, h.selEnd, "disable must collapse the block selection")

	// Re-enabling goes straight back to Normal with block cursor.
	e.SetEnabled(true)
	assert.Equal(t, Normal, e.Mode())
	assert.Equal(t, h.selStart+1, h.selEnd)
}

func TestDoubleEscapeIsIdempotent(t *testing.T) {
	e, h := newTestEngine(t, "hello", 2)
	require.True(t, e.HandleKey("esc"))
	text, s, en, mode := h.text, h.selStart, h.selEnd, e.Mode()
	require.True(t, e.HandleKey("esc"))
	assert.Equal(t, text, h.text)
	assert.Equal(t, s, h.selStart)
	assert.Equal(t, en, h.selEnd)
	assert.Equal(t, mode, e.Mode())
}

func TestInsertModeEntry(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		cursor    int
		key       string
		wantCaret int
		wantText  string
	}{
		{"i at caret", "hello", 2, "i", 2, "hello"},
		{"I line start", "ab\ncd", 4, "I", 3, "ab\ncd"},
		{"a moves right", "hello", 2, "a", 3, "hello"},
		{"A line end", "ab\ncd", 0, "A", 2, "ab\ncd"},
		{"o opens below", "ab\ncd", 0, "o", 3, "ab\n\ncd"},
		{"O opens above", "ab\ncd", 4, "O", 3, "ab\n\ncd"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, h := newTestEngine(t, tt.text, tt.cursor)
			require.True(t, e.HandleKey(tt.key))
			assert.Equal(t, Insert, e.Mode())
			assert.Equal(t, tt.wantText, h.text)
			assert.Equal(t, tt.wantCaret, h.selStart)
			assert.Equal(t, tt.wantCaret, h.selEnd, "insert entry must leave a zero-width caret")
			checkBounds(t, h)
		})
	}
}

func TestEscapeFromInsertMovesCaretLeft(t *testing.T) {
	e, h := newTestEngine(t, "hello", 0)
	require.True(t, e.HandleKey("a")) // caret at 1
	require.True(t, e.HandleKey("esc"))
	assert.Equal(t, Normal, e.Mode())
	assert.Equal(t, 0, h.selStart)
	assert.Equal(t, 1, h.selEnd)
}

func TestCtrlBracketActsAsEscape(t *testing.T) {
	e, _ := newTestEngine(t, "hello", 0)
	require.True(t, e.HandleKey("i"))
	require.True(t, e.HandleKey("ctrl+["))
	assert.Equal(t, Normal, e.Mode())
}

func TestInsertModeIsPassThrough(t *testing.T) {
	e, h := newTestEngine(t, "hello", 0)
	require.True(t, e.HandleKey("i"))
	for _, key := range []string{"x", "d", "enter", "backspace", "left"} {
		assert.False(t, e.HandleKey(key), "insert mode must not intercept %q", key)
	}
	assert.Equal(t, "hello", h.text)
}

func TestUnmappedPrintableIsConsumed(t *testing.T) {
	e, h := newTestEngine(t, "hello", 0)
	for _, key := range []string{"z", "w", "0", "9", "?", "é"} {
		assert.True(t, e.HandleKey(key), "stray printable %q must be consumed", key)
	}
	assert.Equal(t, "hello", h.text, "consumed keys must never reach the buffer")
}

func TestNonPrintableFallsThrough(t *testing.T) {
	e, _ := newTestEngine(t, "hello", 0)
	assert.False(t, e.HandleKey("enter"))
	assert.False(t, e.HandleKey("ctrl+s"))
	assert.False(t, e.HandleKey("up"))
}

func TestHorizontalMotion(t *testing.T) {
	e, h := newTestEngine(t, "abc", 1)
	require.True(t, e.HandleKey("l"))
	assert.Equal(t, 2, h.selStart)
	require.True(t, e.HandleKey("l")) // clamped at last char
	assert.Equal(t, 2, h.selStart)
	require.True(t, e.HandleKey("h"))
	require.True(t, e.HandleKey("backspace"))
	assert.Equal(t, 0, h.selStart)
	require.True(t, e.HandleKey("h")) // clamped at 0
	assert.Equal(t, 0, h.selStart)
	checkBounds(t, h)
}

func TestGoToBufferEnd(t *testing.T) {
	e, h := newTestEngine(t, "ab\ncd", 0)
	require.True(t, e.HandleKey("G"))
	assert.Equal(t, 4, h.selStart)
	assert.Equal(t, 5, h.selEnd)
}

func TestCompoundWithinTimeout(t *testing.T) {
	e, h := newTestEngine(t, "ab\ncd", 4)
	require.True(t, e.HandleKey("g"))
	require.True(t, e.HandleKey("g"))
	assert.Equal(t, 0, h.selStart, "gg within the timeout must move to buffer start")
	assert.Equal(t, 1, h.selEnd)
}

func TestCompoundExpires(t *testing.T) {
	e, h := newTestEngine(t, "ab\ncd", 4, WithPendingTimeout(20*time.Millisecond))
	require.True(t, e.HandleKey("g"))
	time.Sleep(50 * time.Millisecond)
	require.True(t, e.HandleKey("g"))
	assert.Equal(t, 4, h.selStart, "an expired pending key must not complete a compound")

	// The second g started a fresh pending wait, so one more g completes it.
	require.True(t, e.HandleKey("g"))
	assert.Equal(t, 0, h.selStart)
}

func TestMismatchedCompoundIsDropped(t *testing.T) {
	e, h := newTestEngine(t, "ab\ncd", 0)
	require.True(t, e.HandleKey("g"))
	require.True(t, e.HandleKey("d"), "a mismatched pair is consumed without effect")
	assert.Equal(t, "ab\ncd", h.text)
	assert.Empty(t, e.pending, "a mismatched pair must clear the pending key")

	// The d above was swallowed by the pair, so dd still works afterwards.
	require.True(t, e.HandleKey("d"))
	require.True(t, e.HandleKey("d"))
	assert.Equal(t, "cd", h.text)
}

func TestCloseCallback(t *testing.T) {
	closed := false
	e, _ := newTestEngine(t, "hello", 0, WithCloseCallback(func() { closed = true }))
	require.True(t, e.HandleKey("q"))
	assert.True(t, closed)
}

func TestModeChangeCallback(t *testing.T) {
	var seen []Mode
	h := &fakeHost{text: "hello"}
	e := New(h, WithScheduler(dropAsync), WithModeCallback(func(m Mode) { seen = append(seen, m) }))
	e.SetEnabled(true)
	e.HandleKey("v")
	e.HandleKey("esc")
	e.HandleKey("i")
	assert.Equal(t, []Mode{Normal, Visual, Normal, Insert}, seen)
}

func TestSelectionInvariantUnderKeySequence(t *testing.T) {
	// A long, deliberately messy sequence; after every event the host
	// selection must stay within the buffer.
	keys := []string{
		"v", "l", "l", "j", "y", "p", "d", "d", "V", "j", "d", "esc",
		"o", "esc", "x", "u", "U", "g", "g", "G", "k", "h", "P", "A",
		"esc", "O", "esc", "d", "d", "u", "u", "u", "u",
	}
	e, h := newTestEngine(t, "first line\nsecond\nthird one", 3)
	for _, key := range keys {
		e.HandleKey(key)
		checkBounds(t, h)
	}
}
