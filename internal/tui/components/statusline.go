package components

import (
	"time"

	"github.com/charmbracelet/lipgloss"
)

// StatuslineMessageType represents the type of statusline message
type StatuslineMessageType int

const (
	StatuslineInfo StatuslineMessageType = iota
	StatuslineWarning
	StatuslineError
)

// StatuslineMessage represents a transient message above the footer, such
// as yank confirmations and clipboard or database errors.
type StatuslineMessage struct {
	Type     StatuslineMessageType
	Text     string
	Duration time.Duration
	ShowTime time.Time
}

// Expired reports whether the message should no longer be shown. A zero
// Duration means the message stays until replaced.
func (m *StatuslineMessage) Expired() bool {
	if m == nil || m.Duration == 0 {
		return false
	}
	return time.Since(m.ShowTime) > m.Duration
}

// StatuslineComponent handles the rendering of the statusline
type StatuslineComponent struct {
	message *StatuslineMessage
	width   int
}

// NewStatuslineComponent creates a new statusline component
func NewStatuslineComponent(message *StatuslineMessage, width int) *StatuslineComponent {
	return &StatuslineComponent{
		message: message,
		width:   width,
	}
}

// Render renders the statusline
func (s *StatuslineComponent) Render() string {
	if s.message == nil || s.message.Expired() {
		return lipgloss.NewStyle().
			Background(lipgloss.Color("0")).
			Width(s.width).
			Render(" ")
	}

	var fg lipgloss.Color
	switch s.message.Type {
	case StatuslineWarning:
		fg = lipgloss.Color("226") // Yellow
	case StatuslineError:
		fg = lipgloss.Color("196") // Red
	default:
		fg = lipgloss.Color("252") // Light gray for info
	}

	return lipgloss.NewStyle().
		Foreground(fg).
		Background(lipgloss.Color("0")).
		Width(s.width).
		Padding(0, 1).
		Render(s.message.Text)
}
