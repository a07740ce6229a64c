package promptarea

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	cursorStyle      = lipgloss.NewStyle().Background(lipgloss.Color("7")).Foreground(lipgloss.Color("0"))
	selectionStyle   = lipgloss.NewStyle().Background(lipgloss.Color("240"))
	placeholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

func (m *Model) View() string {
	rows := m.lines()

	showPlaceholder := len(m.text) == 0 && m.placeholder != ""

	height := m.height
	if height <= 0 {
		height = len(rows)
	}

	// Absolute offset of each row's first rune.
	starts := make([]int, len(rows))
	off := 0
	for i, row := range rows {
		starts[i] = off
		off += len([]rune(row)) + 1
	}

	var out []string
	for i := 0; i < height; i++ {
		row := m.scrollOffset + i
		var line string
		switch {
		case row == 0 && showPlaceholder:
			line = m.renderPlaceholder()
		case row < len(rows):
			line = m.renderRow(starts[row], rows[row])
		}

		// ">" marks the first line of the prompt, padding aligns the rest.
		if row == 0 {
			line = "> " + line
		} else {
			line = "  " + line
		}
		out = append(out, line)
	}

	return strings.Join(out, "\n")
}

// renderRow styles one line, highlighting the slice of the selection that
// falls on it. A selection covering the line's newline shows a trailing
// highlighted cell, as does a caret sitting past the end of the line.
func (m *Model) renderRow(rowStart int, row string) string {
	r := []rune(row)
	rowEnd := rowStart + len(r)

	if m.selEnd <= m.selStart {
		// Collapsed caret.
		if !m.focused || m.selStart < rowStart || m.selStart > rowEnd {
			return row
		}
		col := m.selStart - rowStart
		if col >= len(r) {
			return row + cursorStyle.Render(" ")
		}
		return string(r[:col]) + cursorStyle.Render(string(r[col])) + string(r[col+1:])
	}

	style := selectionStyle
	if m.selEnd == m.selStart+1 {
		style = cursorStyle
	}

	from := max(m.selStart, rowStart)
	to := min(m.selEnd, rowEnd)
	if from > rowEnd || to < rowStart || from > to {
		return row
	}
	startCol := from - rowStart
	endCol := to - rowStart

	seg := string(r[startCol:endCol])
	// The selection extends onto this line's newline or past the buffer.
	if m.selEnd > rowEnd {
		seg += " "
	}
	if seg == "" {
		return row
	}
	return string(r[:startCol]) + style.Render(seg) + string(r[endCol:])
}

func (m *Model) renderPlaceholder() string {
	p := []rune(m.placeholder)
	if len(p) == 0 {
		return ""
	}
	if !m.focused {
		return placeholderStyle.Render(m.placeholder)
	}
	return cursorStyle.Render(string(p[0])) + placeholderStyle.Render(string(p[1:]))
}
