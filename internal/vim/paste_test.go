package vim

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestYankLinePasteDuplicatesBelow(t *testing.T) {
	e, h := newTestEngine(t, "abc\ndef", 1)
	require.True(t, e.HandleKey("y"))
	require.True(t, e.HandleKey("y"))
	assert.Equal(t, "abc\n", e.yank)
	require.True(t, e.HandleKey("p"))
	assert.Equal(t, "abc\nabc\ndef", h.text)
	assert.Len(t, h.text, len("abc\ndef")+len("abc")+1,
		"buffer grows by exactly line length plus one")
	checkBounds(t, h)
}

func TestDeleteLinePasteRestoresBuffer(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		cursor    int
		wantCaret int
	}{
		{"first line", "a\nb\nc", 0, 0},
		{"middle line", "a\nb\nc", 2, 2},
		{"last line", "a\nb\nc", 4, 4},
		{"only line", "a", 0, 0},
		{"only line mid word", "only", 2, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, h := newTestEngine(t, tt.text, tt.cursor)
			require.True(t, e.HandleKey("d"))
			require.True(t, e.HandleKey("d"))
			require.True(t, e.HandleKey("p"))
			assert.Equal(t, tt.text, h.text, "dd then p must restore the buffer exactly")
			assert.Equal(t, tt.wantCaret, h.selStart, "cursor must land back on the start of the restored line")
		})
	}
}

func TestDeleteLineYanksTrailingNewline(t *testing.T) {
	e, h := newTestEngine(t, "a\nb\nc", 0)
	require.True(t, e.HandleKey("d"))
	require.True(t, e.HandleKey("d"))
	assert.Equal(t, "a\n", e.yank)
	assert.Equal(t, "b\nc", h.text)
}

func TestDeleteLastLineRemovesPrecedingNewline(t *testing.T) {
	e, h := newTestEngine(t, "a\nb\nc", 4)
	require.True(t, e.HandleKey("d"))
	require.True(t, e.HandleKey("d"))
	assert.Equal(t, "c", e.yank)
	assert.Equal(t, "a\nb", h.text)
	assert.Equal(t, 2, h.selStart, "cursor moves to the new last line")
}

func TestDeleteOnlyLineLeavesEmptyBuffer(t *testing.T) {
	e, h := newTestEngine(t, "only line", 3)
	require.True(t, e.HandleKey("d"))
	require.True(t, e.HandleKey("d"))
	assert.Equal(t, "", h.text)
	assert.Equal(t, 0, h.selStart)
	assert.Equal(t, 0, h.selEnd)
}

func TestCharwisePasteAfterAndBefore(t *testing.T) {
	e, h := newTestEngine(t, "abcd", 1)
	require.True(t, e.HandleKey("v"))
	require.True(t, e.HandleKey("l"))
	require.True(t, e.HandleKey("y"))
	assert.Equal(t, "bc", e.yank)
	assert.False(t, e.yankLinewise)

	require.True(t, e.HandleKey("p")) // after the caret char at 1
	assert.Equal(t, "abbccd", h.text)

	e2, h2 := newTestEngine(t, "abcd", 1)
	e2.yank = "XY"
	require.True(t, e2.HandleKey("P"))
	assert.Equal(t, "aXYbcd", h2.text)
	assert.Equal(t, 2, h2.selStart, "cursor lands on the last pasted char")
}

func TestPasteEmptyYankIsNoOp(t *testing.T) {
	e, h := newTestEngine(t, "abc", 0)
	require.True(t, e.HandleKey("p"))
	assert.Equal(t, "abc", h.text)
	assert.Empty(t, e.undoStack, "a no-op paste must not push a snapshot")
}

func TestXDeletesCharUnderCaretWithoutYank(t *testing.T) {
	e, h := newTestEngine(t, "abc", 1)
	e.yank = "kept"
	require.True(t, e.HandleKey("x"))
	assert.Equal(t, "ac", h.text)
	assert.Equal(t, "kept", e.yank, "x must not touch the yank register")
	assert.Equal(t, 1, h.selStart)
}

func TestYankCallbackMirrorsDeletes(t *testing.T) {
	var mirrored []string
	e, _ := newTestEngine(t, "ab\ncd", 0,
		WithYankCallback(func(s string) { mirrored = append(mirrored, s) }))
	require.True(t, e.HandleKey("y"))
	require.True(t, e.HandleKey("y"))
	require.True(t, e.HandleKey("d"))
	require.True(t, e.HandleKey("d"))
	assert.Equal(t, []string{"ab\n", "ab\n"}, mirrored)
}

// fakeClipboard resolves with fixed text or an error.
type fakeClipboard struct {
	text string
	err  error
}

func (c fakeClipboard) ReadText(context.Context) (string, error) { return c.text, c.err }

// newAsyncEngine wires a channel scheduler so the test controls when the
// clipboard completion lands.
func newAsyncEngine(t *testing.T, text string, cursor int, clip Clipboard) (*Engine, *fakeHost, chan func()) {
	t.Helper()
	sched := make(chan func(), 4)
	h := &fakeHost{text: text, selStart: cursor, selEnd: cursor}
	e := New(h, WithClipboard(clip), WithScheduler(func(fn func()) { sched <- fn }))
	e.SetEnabled(true)
	t.Cleanup(e.Cleanup)
	return e, h, sched
}

func TestClipboardPasteOverridesYank(t *testing.T) {
	e, h, sched := newAsyncEngine(t, "abc", 0, fakeClipboard{text: "CLIP"})
	e.yank = "yanked"
	require.True(t, e.HandleKey("p"))
	(<-sched)()
	assert.Equal(t, "aCLIPbc", h.text, "non-empty clipboard text wins over the yank buffer")
}

func TestClipboardErrorFallsBackToYank(t *testing.T) {
	e, h, sched := newAsyncEngine(t, "abc", 0, fakeClipboard{err: errors.New("denied")})
	e.yank = "YB"
	require.True(t, e.HandleKey("p"))
	(<-sched)()
	assert.Equal(t, "aYBbc", h.text)
}

func TestClipboardEmptyFallsBackToYank(t *testing.T) {
	e, h, sched := newAsyncEngine(t, "abc", 0, fakeClipboard{})
	e.yank = "YB"
	require.True(t, e.HandleKey("p"))
	(<-sched)()
	assert.Equal(t, "aYBbc", h.text)
}

func TestPasteInFlightGuardDropsKeys(t *testing.T) {
	e, h, sched := newAsyncEngine(t, "abc", 0, fakeClipboard{text: "CLIP"})
	require.True(t, e.HandleKey("p"))

	// The read has not resolved yet; mutating keys are consumed, not run.
	assert.True(t, e.HandleKey("x"))
	assert.True(t, e.HandleKey("d"))
	assert.Equal(t, "abc", h.text)

	(<-sched)()
	assert.Equal(t, "aCLIPbc", h.text)

	// After the paste lands, keys work again.
	require.True(t, e.HandleKey("g"))
	require.True(t, e.HandleKey("g"))
	assert.Equal(t, 0, h.selStart)
}

func TestPasteIgnoredAfterDisable(t *testing.T) {
	e, h, sched := newAsyncEngine(t, "abc", 0, fakeClipboard{text: "CLIP"})
	require.True(t, e.HandleKey("p"))
	e.SetEnabled(false)
	(<-sched)()
	assert.Equal(t, "abc", h.text, "a paste resolving after disable must be ignored")
}
