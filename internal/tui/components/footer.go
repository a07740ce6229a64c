package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"promptpad/internal/vim"
)

// FooterComponent handles the rendering of the status bar footer
type FooterComponent struct {
	mode       vim.Mode
	vimEnabled bool
	width      int
	charCount  int
	modelName  string
}

// NewFooterComponent creates a new footer component
func NewFooterComponent(mode vim.Mode, vimEnabled bool, width int) *FooterComponent {
	return &FooterComponent{
		mode:       mode,
		vimEnabled: vimEnabled,
		width:      width,
	}
}

// UpdateInfo sets the buffer char count and model name shown on the right.
func (f *FooterComponent) UpdateInfo(charCount int, modelName string) {
	f.charCount = charCount
	f.modelName = modelName
}

// Render renders the complete footer with mode indicator and status bar
func (f *FooterComponent) Render() string {
	modeIndicator := NewModeIndicatorComponent(f.mode, f.vimEnabled)
	modeIndicatorRendered := modeIndicator.Render()
	remainingWidth := f.width - modeIndicator.Width()

	countText := fmt.Sprintf("%d chars", f.charCount)
	vimText := "vim: on (ctrl+v)"
	if !f.vimEnabled {
		vimText = "vim: off (ctrl+v)"
	}

	// Layout: promptpad | chars | vim toggle | model
	sections := []string{"promptpad", countText, vimText, f.modelName}

	totalContentWidth := 0
	for _, section := range sections {
		totalContentWidth += len(section)
	}
	separatorCount := len(sections) - 1
	availableWidth := remainingWidth - totalContentWidth - separatorCount*3 - 2

	extraSpacePerGap := availableWidth / separatorCount
	if extraSpacePerGap < 0 {
		extraSpacePerGap = 0
	}
	separator := strings.Repeat(" ", 3+extraSpacePerGap)

	barStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")).
		Background(lipgloss.Color("236"))

	composedFooter := barStyle.Render(strings.Join(sections, separator))

	paddingNeeded := remainingWidth - lipgloss.Width(composedFooter) - 2
	if paddingNeeded > 0 {
		composedFooter += barStyle.Render(strings.Repeat(" ", paddingNeeded))
	}

	mainFooter := lipgloss.NewStyle().
		Background(lipgloss.Color("236")).
		Width(remainingWidth).
		Padding(0, 1).
		Render(composedFooter)

	return modeIndicatorRendered + mainFooter
}
