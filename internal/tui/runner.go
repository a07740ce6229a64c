package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// RunTUI starts the TUI interface. Engine callbacks that arrive off the
// update loop are routed back in through the program's message queue.
func RunTUI(m Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen())

	m.engine.SetScheduler(func(fn func()) {
		p.Send(ApplyMsg{Fn: fn})
	})
	m.engine.SetCloseCallback(func() {
		p.Send(CloseRequestMsg{})
	})
	defer m.engine.Cleanup()

	_, err := p.Run()
	return err
}
