package vim

import "time"

func (e *Engine) handleNormal(key string) bool {
	if first, ok := e.takePending(); ok {
		e.runCompound(first + key)
		return true
	}

	switch key {
	case "esc":
		e.blockCursor(e.cursor())
	case "h", "backspace":
		e.blockCursor(max(e.cursor()-1, 0))
	case "l":
		e.blockCursor(e.cursor() + 1)
	case "j":
		r := []rune(e.host.Text())
		e.blockCursor(lineDown(r, e.cursor()))
	case "k":
		r := []rune(e.host.Text())
		e.blockCursor(lineUp(r, e.cursor()))
	case "G":
		e.blockCursor(e.textLen())
	case "i":
		e.saveState()
		e.enterInsert(e.cursor())
	case "I":
		r := []rune(e.host.Text())
		e.saveState()
		e.enterInsert(lineStartAt(r, e.cursor()))
	case "a":
		e.saveState()
		e.enterInsert(e.cursor() + 1)
	case "A":
		r := []rune(e.host.Text())
		e.saveState()
		e.enterInsert(lineEndAt(r, e.cursor()))
	case "o":
		e.openLineBelow()
	case "O":
		e.openLineAbove()
	case "v":
		e.enterVisual(Visual)
	case "V":
		e.enterVisual(VisualLine)
	case "x":
		e.deleteChar()
	case "u":
		e.undo()
	case "U":
		e.redo()
	case "p":
		e.pasteNormal(true)
	case "P":
		e.pasteNormal(false)
	case "q":
		if e.onClose != nil {
			e.onClose()
		}
	case "g", "d", "y":
		e.setPending(key)
	default:
		// Stray printable characters are consumed so a mistyped command
		// never leaks into the buffer. Everything else (enter, arrows,
		// modifier chords) is left for the host.
		return printableKey(key)
	}
	return true
}

// runCompound executes a completed two-key command. Non-matching pairs are
// consumed without effect; operator+motion combinations beyond these are
// unsupported.
func (e *Engine) runCompound(cmd string) {
	switch cmd {
	case "gg":
		e.blockCursor(0)
	case "dd":
		e.deleteLine()
	case "yy":
		e.yankLine()
	}
}

// setPending starts a compound-key wait that expires after pendingTimeout.
func (e *Engine) setPending(key string) {
	e.clearPending()
	e.pending = key
	e.pendingUntil = time.Now().Add(e.pendingTimeout)
	gen := e.pendingGen
	e.pendingTimer = time.AfterFunc(e.pendingTimeout, func() {
		e.schedule(func() { e.expirePending(gen) })
	})
}

// takePending consumes the pending key if one is set and still within its
// window. An expired key is dropped with no side effect.
func (e *Engine) takePending() (string, bool) {
	if e.pending == "" {
		return "", false
	}
	expired := time.Now().After(e.pendingUntil)
	key := e.pending
	e.clearPending()
	if expired {
		return "", false
	}
	return key, true
}

func (e *Engine) expirePending(gen int) {
	if gen != e.pendingGen {
		return
	}
	e.clearPending()
}

func (e *Engine) clearPending() {
	e.pendingGen++
	e.pending = ""
	if e.pendingTimer != nil {
		e.pendingTimer.Stop()
		e.pendingTimer = nil
	}
}
