package components

import (
	"github.com/charmbracelet/lipgloss"

	"promptpad/internal/vim"
)

// ModeIndicatorComponent handles the rendering of the vim mode indicator
type ModeIndicatorComponent struct {
	mode    vim.Mode
	enabled bool
}

// NewModeIndicatorComponent creates a new mode indicator component
func NewModeIndicatorComponent(mode vim.Mode, enabled bool) *ModeIndicatorComponent {
	return &ModeIndicatorComponent{
		mode:    mode,
		enabled: enabled,
	}
}

func (m *ModeIndicatorComponent) label() string {
	if !m.enabled {
		return " EDIT "
	}
	switch m.mode {
	case vim.Normal:
		return " NORMAL "
	case vim.Insert:
		return " INSERT "
	case vim.Visual:
		return " VISUAL "
	case vim.VisualLine:
		return " V-LINE "
	}
	return ""
}

// Render renders the vim mode indicator with colored background
func (m *ModeIndicatorComponent) Render() string {
	var modeColor string
	switch {
	case !m.enabled:
		modeColor = "8" // Gray background when vim mode is off
	case m.mode == vim.Normal:
		modeColor = "4" // Blue background for normal mode
	case m.mode == vim.Insert:
		modeColor = "2" // Green background for insert mode
	default:
		modeColor = "5" // Magenta background for both visual modes
	}

	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("0")). // Black text
		Background(lipgloss.Color(modeColor)).
		Render(m.label())
}

// Width returns the width of the mode indicator
func (m *ModeIndicatorComponent) Width() int {
	return len(m.label())
}
