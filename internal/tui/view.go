package tui

import (
	"promptpad/internal/tui/components"
)

// View renders the TUI
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	processingHeight := 0
	if m.processing {
		processingHeight = 2 // 1 line for content + 1 for spacing
	}

	// Heights: total - input box (text rows + border) - statusline - footer.
	inputHeight := promptHeight + 2
	paneHeight := m.viewport.height - inputHeight - processingHeight - 2

	entries := make([]components.HistoryEntry, 0, len(m.recent))
	for _, p := range m.recent {
		entries = append(entries, components.HistoryEntry{
			Body:        p.Body,
			SubmittedAt: p.CreatedAt,
		})
	}
	pane := components.NewHistoryPaneComponent(entries, m.refined, paneHeight, m.viewport.width).Render()

	var processingIndicator string
	if m.processing && m.spinner != nil {
		processingIndicator = "\n  " + m.spinner.Render() + "\n"
	}

	input := components.NewInputComponent(m.prompt, m.viewport.width).Render()

	statusline := components.NewStatuslineComponent(m.status, m.viewport.width).Render()

	footer := components.NewFooterComponent(m.engine.Mode(), m.engine.Enabled(), m.viewport.width)
	footer.UpdateInfo(m.prompt.CharCount(), m.cfg.Model)

	return pane + processingIndicator + "\n" + input + "\n" + statusline + "\n" + footer.Render()
}
