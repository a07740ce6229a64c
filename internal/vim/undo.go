package vim

import "promptpad/internal/logger"

// saveState pushes {text, cursor} onto the undo stack and clears the redo
// stack (linear history; a new edit discards any branching redo). It is
// called immediately before every mutating command and on Insert mode
// entry/exit, which collapses one insert session into a single undo step.
// Consecutive snapshots of the same text are deduplicated; the stack is
// bounded with FIFO eviction.
func (e *Engine) saveState() {
	e.redoStack = e.redoStack[:0]
	text := e.host.Text()
	if n := len(e.undoStack); n > 0 && e.undoStack[n-1].text == text {
		logger.Debug("vim: duplicate snapshot skipped (depth %d)", n)
		return
	}
	e.undoStack = append(e.undoStack, snapshot{text: text, cursor: e.cursor()})
	if len(e.undoStack) > maxUndoDepth {
		e.undoStack = e.undoStack[1:]
	}
	logger.Debug("vim: snapshot saved (depth %d)", len(e.undoStack))
}

// undo skips snapshots whose text matches the current buffer (the Insert
// entry snapshot when the session changed nothing, or the exit snapshot
// when it did), so one `u` always lands on the previous distinct text.
func (e *Engine) undo() {
	text := e.host.Text()
	n := len(e.undoStack)
	for n > 0 && e.undoStack[n-1].text == text {
		n--
	}
	if n == 0 {
		e.undoStack = e.undoStack[:0]
		return
	}
	e.redoStack = append(e.redoStack, snapshot{text: text, cursor: e.cursor()})
	top := e.undoStack[n-1]
	e.undoStack = e.undoStack[:n-1]
	e.restore(top)
	logger.Debug("vim: undo (depth %d, redo %d)", len(e.undoStack), len(e.redoStack))
}

func (e *Engine) redo() {
	n := len(e.redoStack)
	if n == 0 {
		return
	}
	e.undoStack = append(e.undoStack, snapshot{text: e.host.Text(), cursor: e.cursor()})
	top := e.redoStack[n-1]
	e.redoStack = e.redoStack[:n-1]
	e.restore(top)
	logger.Debug("vim: redo (depth %d, redo %d)", len(e.undoStack), len(e.redoStack))
}

// restore puts buffer and cursor back without touching the mode; Visual
// state is not re-applied after undo/redo.
func (e *Engine) restore(s snapshot) {
	e.setText(s.text)
	if e.mode == Normal {
		e.blockCursor(s.cursor)
		return
	}
	caret := clamp(s.cursor, 0, e.textLen())
	e.host.SetSelectionRange(caret, caret, Forward)
}
