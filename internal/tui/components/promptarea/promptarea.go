// Package promptarea implements the prompt editing widget. It stores the
// buffer as a flat rune slice with a selection range over it, which is the
// surface the vim engine drives, and handles plain typing itself.
package promptarea

import (
	"strings"

	"promptpad/internal/vim"
)

// Model is the prompt editor state. Methods mutate through the pointer
// receiver so the vim engine and the update loop observe the same buffer.
type Model struct {
	text     []rune
	selStart int
	selEnd   int
	dir      vim.Direction

	width        int
	height       int
	scrollOffset int
	placeholder  string
	focused      bool

	onChange func()
}

func New(width, height int) *Model {
	return &Model{
		width:  width,
		height: height,
	}
}

// OnChange registers a callback fired whenever the buffer content changes,
// from typing or from vim commands alike.
func (m *Model) OnChange(fn func()) { m.onChange = fn }

func (m *Model) SetPlaceholder(s string) { m.placeholder = s }

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.adjustScroll()
}

func (m *Model) Focus()        { m.focused = true }
func (m *Model) Blur()         { m.focused = false }
func (m *Model) Focused() bool { return m.focused }

// Value returns the buffer contents.
func (m *Model) Value() string { return string(m.text) }

// SetValue replaces the buffer and collapses the caret to the end.
func (m *Model) SetValue(s string) {
	m.text = []rune(s)
	m.selStart = len(m.text)
	m.selEnd = m.selStart
	m.dir = vim.Forward
	m.adjustScroll()
}

// Reset clears the buffer.
func (m *Model) Reset() { m.SetValue("") }

func (m *Model) CharCount() int { return len(m.text) }

// Text implements vim.Host.
func (m *Model) Text() string { return string(m.text) }

// SetText implements vim.Host.
func (m *Model) SetText(s string) {
	m.text = []rune(s)
	m.clampSelection()
}

// SelectionStart implements vim.Host.
func (m *Model) SelectionStart() int { return m.selStart }

// SelectionEnd implements vim.Host.
func (m *Model) SelectionEnd() int { return m.selEnd }

// SetSelectionRange implements vim.Host.
func (m *Model) SetSelectionRange(start, end int, dir vim.Direction) {
	m.selStart = start
	m.selEnd = end
	m.dir = dir
	m.clampSelection()
	m.adjustScroll()
}

// NotifyContentChanged implements vim.Host.
func (m *Model) NotifyContentChanged() {
	if m.onChange != nil {
		m.onChange()
	}
}

// InsertText inserts typed text at the caret, replacing any active
// selection first.
func (m *Model) InsertText(s string) {
	if s == "" {
		return
	}
	m.deleteSelection()
	ins := []rune(s)
	out := make([]rune, 0, len(m.text)+len(ins))
	out = append(out, m.text[:m.selStart]...)
	out = append(out, ins...)
	out = append(out, m.text[m.selStart:]...)
	m.text = out
	m.selStart += len(ins)
	m.selEnd = m.selStart
	m.adjustScroll()
	m.NotifyContentChanged()
}

// InsertNewline inserts a line break at the caret.
func (m *Model) InsertNewline() { m.InsertText("\n") }

// Backspace deletes the selection, or the rune before the caret.
func (m *Model) Backspace() {
	if m.selEnd > m.selStart {
		m.deleteSelection()
		m.adjustScroll()
		m.NotifyContentChanged()
		return
	}
	if m.selStart == 0 {
		return
	}
	out := make([]rune, 0, len(m.text)-1)
	out = append(out, m.text[:m.selStart-1]...)
	out = append(out, m.text[m.selStart:]...)
	m.text = out
	m.selStart--
	m.selEnd = m.selStart
	m.adjustScroll()
	m.NotifyContentChanged()
}

// deleteSelection removes [selStart, selEnd) and collapses the caret to
// its start. It does not notify; callers do after the whole edit.
func (m *Model) deleteSelection() {
	if m.selEnd <= m.selStart {
		return
	}
	out := make([]rune, 0, len(m.text)-(m.selEnd-m.selStart))
	out = append(out, m.text[:m.selStart]...)
	out = append(out, m.text[m.selEnd:]...)
	m.text = out
	m.selEnd = m.selStart
}

// MoveCaret shifts a collapsed caret by delta runes. Arrow keys in Insert
// mode use this; vim motions go through SetSelectionRange instead.
func (m *Model) MoveCaret(delta int) {
	pos := m.selStart + delta
	if pos < 0 {
		pos = 0
	}
	if pos > len(m.text) {
		pos = len(m.text)
	}
	m.selStart = pos
	m.selEnd = pos
	m.adjustScroll()
}

func (m *Model) clampSelection() {
	n := len(m.text)
	if m.selStart < 0 {
		m.selStart = 0
	}
	if m.selStart > n {
		m.selStart = n
	}
	if m.selEnd < m.selStart {
		m.selEnd = m.selStart
	}
	if m.selEnd > n {
		m.selEnd = n
	}
}

// lines splits the buffer for rendering. An empty buffer is one empty line.
func (m *Model) lines() []string {
	return strings.Split(string(m.text), "\n")
}

// caretRow returns the row holding the caret (the selection start).
func (m *Model) caretRow() int {
	row := 0
	for i := 0; i < m.selStart && i < len(m.text); i++ {
		if m.text[i] == '\n' {
			row++
		}
	}
	return row
}

// adjustScroll keeps the caret row inside the visible window.
func (m *Model) adjustScroll() {
	if m.height <= 0 {
		return
	}
	row := m.caretRow()
	if row < m.scrollOffset {
		m.scrollOffset = row
	}
	if row >= m.scrollOffset+m.height {
		m.scrollOffset = row - m.height + 1
	}
}
