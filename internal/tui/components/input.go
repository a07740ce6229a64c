package components

import (
	"github.com/charmbracelet/lipgloss"

	"promptpad/internal/tui/components/promptarea"
)

// InputComponent handles the rendering of the prompt input area
type InputComponent struct {
	prompt *promptarea.Model
	width  int
}

// NewInputComponent creates a new input component
func NewInputComponent(prompt *promptarea.Model, width int) *InputComponent {
	return &InputComponent{
		prompt: prompt,
		width:  width,
	}
}

// Render renders the input area with border and styling
func (i *InputComponent) Render() string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(i.width-2).
		Padding(0, 1).
		Render(i.prompt.View())
}
