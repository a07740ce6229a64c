package vim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineBounds(t *testing.T) {
	r := []rune("ab\ncd\nef")
	assert.Equal(t, 0, lineStartAt(r, 0))
	assert.Equal(t, 0, lineStartAt(r, 2)) // on the newline itself
	assert.Equal(t, 3, lineStartAt(r, 4))
	assert.Equal(t, 6, lineStartAt(r, 8))
	assert.Equal(t, 2, lineEndAt(r, 0))
	assert.Equal(t, 2, lineEndAt(r, 2))
	assert.Equal(t, 5, lineEndAt(r, 3))
	assert.Equal(t, 8, lineEndAt(r, 7))
}

func TestLineMotionPreservesColumn(t *testing.T) {
	// Line lengths 6, 2, 8: moving through the short middle line clamps
	// the column, moving on keeps the clamped position's own column.
	r := []rune("abcdef\nxy\nlongline")
	pos := 4 // col 4 on the first line
	pos = lineDown(r, pos)
	assert.Equal(t, 7+2, pos, "column clamps to the short line's length")
	pos = lineDown(r, pos)
	assert.Equal(t, 10+2, pos)
	pos = lineUp(r, pos)
	assert.Equal(t, 7+2, pos)
}

func TestLineMotionAtBufferEdges(t *testing.T) {
	r := []rune("ab\ncd")
	assert.Equal(t, 1, lineUp(r, 1), "k on the first line is a no-op")
	assert.Equal(t, 4, lineDown(r, 4), "j on the last line is a no-op")

	single := []rune("no newline here")
	assert.Equal(t, 5, lineUp(single, 5))
	assert.Equal(t, 5, lineDown(single, 5))
}

func TestVerticalMotionThroughEngine(t *testing.T) {
	e, h := newTestEngine(t, "abcdef\nxy\nlongline", 4)
	require.True(t, e.HandleKey("j"))
	assert.Equal(t, 9, h.selStart)
	require.True(t, e.HandleKey("j"))
	assert.Equal(t, 12, h.selStart)
	require.True(t, e.HandleKey("k"))
	assert.Equal(t, 9, h.selStart)
	require.True(t, e.HandleKey("k"))
	assert.Equal(t, 2, h.selStart, "column from the clamped position carries back up")
}

func TestVerticalMotionOnSingleLineIsNoOp(t *testing.T) {
	e, h := newTestEngine(t, "just one line", 5)
	require.True(t, e.HandleKey("j"))
	require.True(t, e.HandleKey("k"))
	assert.Equal(t, 5, h.selStart)
	assert.Equal(t, 6, h.selEnd)
}
