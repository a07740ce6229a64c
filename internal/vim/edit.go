package vim

import (
	"context"
	"strings"
)

// setYank overwrites the single yank register and mirrors the text to the
// host's yank callback. The register is never cleared implicitly.
func (e *Engine) setYank(text string, linewise bool) {
	e.yank = text
	e.yankLinewise = linewise
	if text != "" && e.onYank != nil {
		e.onYank(text)
	}
}

// deleteChar implements `x`: delete the character under the caret with an
// undo snapshot and no yank.
func (e *Engine) deleteChar() {
	r := []rune(e.host.Text())
	cur := e.cursor()
	if cur >= len(r) {
		return
	}
	e.saveState()
	out := make([]rune, 0, len(r)-1)
	out = append(out, r[:cur]...)
	out = append(out, r[cur+1:]...)
	e.setText(string(out))
	e.blockCursor(cur)
}

// lineExtent returns the current line's text for yanking, including its
// trailing newline when the line is not the last one, so repeated dd/p
// reconstructs the original text losslessly.
func lineExtent(r []rune, pos int) (start, end int, text string, lastLine bool) {
	start = lineStartAt(r, pos)
	end = lineEndAt(r, pos)
	if end < len(r) {
		return start, end, string(r[start : end+1]), false
	}
	return start, end, string(r[start:end]), true
}

// deleteLine implements `dd`: yank the current line (with trailing newline
// when present) then delete it. Deleting the last line also removes the
// newline that preceded it; deleting the only line leaves an empty buffer
// with the cursor at 0.
func (e *Engine) deleteLine() {
	e.saveState()
	r := []rune(e.host.Text())
	cur := e.cursor()
	start, end, yanked, lastLine := lineExtent(r, cur)
	e.setYank(yanked, true)

	var out []rune
	var caret int
	if !lastLine {
		out = make([]rune, 0, len(r)-(end+1-start))
		out = append(out, r[:start]...)
		out = append(out, r[end+1:]...)
		caret = start
	} else {
		cut := start
		if cut > 0 {
			cut--
		}
		out = append(out, r[:cut]...)
		caret = lineStartAt(out, min(cut, len(out)))
	}
	e.setText(string(out))
	e.blockCursor(caret)
}

// yankLine implements `yy` with the same line extraction as deleteLine.
func (e *Engine) yankLine() {
	r := []rune(e.host.Text())
	if len(r) == 0 {
		return
	}
	_, _, yanked, _ := lineExtent(r, e.cursor())
	e.setYank(yanked, true)
}

// openLineBelow implements `o`: snapshot, insert a newline at the end of
// the current line, and enter Insert on the new line.
func (e *Engine) openLineBelow() {
	e.saveState()
	r := []rune(e.host.Text())
	end := lineEndAt(r, e.cursor())
	e.setText(string(r[:end]) + "\n" + string(r[end:]))
	e.enterInsert(end + 1)
}

// openLineAbove implements `O`.
func (e *Engine) openLineAbove() {
	e.saveState()
	r := []rune(e.host.Text())
	start := lineStartAt(r, e.cursor())
	e.setText(string(r[:start]) + "\n" + string(r[start:]))
	e.enterInsert(start)
}

// pasteNormal implements `p` (after) and `P` (before).
func (e *Engine) pasteNormal(after bool) {
	e.withClipboardText(func(text string, fromYank bool) {
		e.applyPaste(text, fromYank, after)
	})
}

// withClipboardText resolves the paste source. With a clipboard configured
// it issues a single asynchronous read and delivers the result through the
// scheduler; rejection or empty text falls back to the yank buffer. The
// triggering key event has already been reported handled by then, so the
// pasteBusy guard drops command-mode keys until the apply lands.
func (e *Engine) withClipboardText(apply func(text string, fromYank bool)) {
	if e.clip == nil {
		apply(e.yank, true)
		return
	}
	e.pasteBusy = true
	go func() {
		text, err := e.clip.ReadText(context.Background())
		e.schedule(func() {
			e.pasteBusy = false
			if !e.enabled || e.host == nil {
				return
			}
			if err != nil || text == "" {
				apply(e.yank, true)
				return
			}
			apply(text, false)
		})
	}()
}

// applyPaste inserts text at the caret. Linewise yanks paste whole lines:
// text carrying its trailing newline goes in at the current line start
// (which makes dd followed by p restore the buffer exactly, cursor line
// included), text without one is appended as a new line below. Charwise
// text inserts after or before the caret and leaves the cursor on the last
// pasted character.
func (e *Engine) applyPaste(text string, fromYank bool, after bool) {
	if text == "" {
		return
	}
	e.saveState()
	r := []rune(e.host.Text())
	n := len(r)
	cur := clamp(e.cursor(), 0, n)
	ins := []rune(text)

	linewise := fromYank && e.yankLinewise
	var at, caret int
	switch {
	case linewise && after && strings.HasSuffix(text, "\n"):
		at = lineStartAt(r, cur)
		caret = cur
	case linewise && after:
		if n == 0 {
			// Nothing to append below; the yank becomes the buffer.
			at, caret = 0, 0
			break
		}
		at = lineEndAt(r, cur)
		ins = append([]rune{'\n'}, ins...)
		caret = at + 1
	case linewise:
		if !strings.HasSuffix(text, "\n") {
			ins = append(ins, '\n')
		}
		at = lineStartAt(r, cur)
		caret = at
	case after && n > 0:
		at = min(cur+1, n)
		caret = at + len(ins) - 1
	default:
		at = cur
		caret = at + len(ins) - 1
	}

	out := make([]rune, 0, n+len(ins))
	out = append(out, r[:at]...)
	out = append(out, ins...)
	out = append(out, r[at:]...)
	e.setText(string(out))
	e.blockCursor(caret)
}
