package vim

func (e *Engine) handleVisual(key string) bool {
	if first, ok := e.takePending(); ok {
		// Only gg is meaningful here: extend the selection to the buffer
		// start. Any other pair is consumed without effect.
		if first == "g" && key == "g" {
			e.active = 0
			e.applyVisualSelection()
		}
		return true
	}

	switch key {
	case "esc":
		caret := clamp(e.active, 0, e.textLen())
		e.transition(Normal)
		e.blockCursor(caret)
	case "h":
		e.active--
		e.applyVisualSelection()
	case "l":
		e.active++
		e.applyVisualSelection()
	case "j":
		e.extendVertically(1)
	case "k":
		e.extendVertically(-1)
	case "g":
		e.setPending(key)
	case "G":
		e.active = e.textLen() - 1
		e.applyVisualSelection()
	case "y":
		e.visualYank()
	case "d":
		e.visualDelete()
	case "p":
		e.visualPaste()
	default:
		return printableKey(key)
	}
	return true
}

// extendVertically moves the active endpoint one line up or down. In
// Visual the column is preserved like a j/k motion; in VisualLine the
// endpoint snaps to the boundary of the newly covered line (start when
// moving up, end when moving down) so the selection always covers whole
// lines.
func (e *Engine) extendVertically(dir int) {
	r := []rune(e.host.Text())
	active := clamp(e.active, 0, max(len(r)-1, 0))
	if e.mode == Visual {
		if dir > 0 {
			e.active = lineDown(r, active)
		} else {
			e.active = lineUp(r, active)
		}
		e.applyVisualSelection()
		return
	}
	if dir > 0 {
		end := lineEndAt(r, active)
		if end < len(r) {
			e.active = lineEndAt(r, end+1)
		}
	} else {
		start := lineStartAt(r, active)
		if start > 0 {
			e.active = lineStartAt(r, start-1)
		}
	}
	e.applyVisualSelection()
}

// applyVisualSelection projects anchor/active onto the host selection. The
// anchored character stays covered; when the active endpoint is before the
// anchor the range is set with Backward orientation so the caret rendering
// and further extension stay on the moving end.
func (e *Engine) applyVisualSelection() {
	r := []rune(e.host.Text())
	n := len(r)
	if n == 0 {
		e.host.SetSelectionRange(0, 0, Forward)
		return
	}
	a := clamp(e.anchor, 0, n-1)
	v := clamp(e.active, 0, n-1)
	e.anchor, e.active = a, v

	if e.mode == VisualLine {
		if v >= a {
			e.host.SetSelectionRange(lineStartAt(r, a), lineEndAt(r, v), Forward)
		} else {
			e.host.SetSelectionRange(lineStartAt(r, v), lineEndAt(r, a), Backward)
		}
		return
	}
	if v >= a {
		e.host.SetSelectionRange(a, v+1, Forward)
	} else {
		e.host.SetSelectionRange(v, a+1, Backward)
	}
}

// visualYank implements Visual `y`: yank the selection, mirror it
// externally, collapse to a caret at the selection start.
func (e *Engine) visualYank() {
	start, end := e.selectionBounds()
	r := []rune(e.host.Text())
	e.setYank(string(r[start:end]), e.mode == VisualLine)
	e.transition(Normal)
	e.blockCursor(start)
}

// visualDelete implements Visual `d`: yank first, then delete.
func (e *Engine) visualDelete() {
	start, end := e.selectionBounds()
	if start == end {
		e.transition(Normal)
		e.blockCursor(start)
		return
	}
	e.saveState()
	r := []rune(e.host.Text())
	e.setYank(string(r[start:end]), e.mode == VisualLine)
	out := make([]rune, 0, len(r)-(end-start))
	out = append(out, r[:start]...)
	out = append(out, r[end:]...)
	e.setText(string(out))
	e.transition(Normal)
	e.blockCursor(start)
}

// visualPaste replaces the selection with clipboard-or-yank text.
func (e *Engine) visualPaste() {
	start, end := e.selectionBounds()
	e.withClipboardText(func(text string, _ bool) {
		if text == "" {
			e.transition(Normal)
			e.blockCursor(start)
			return
		}
		e.saveState()
		r := []rune(e.host.Text())
		n := len(r)
		s := clamp(start, 0, n)
		en := clamp(end, 0, n)
		ins := []rune(text)
		out := make([]rune, 0, n-(en-s)+len(ins))
		out = append(out, r[:s]...)
		out = append(out, ins...)
		out = append(out, r[en:]...)
		e.setText(string(out))
		e.transition(Normal)
		e.blockCursor(s)
	})
}
