package tui

import (
	"context"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"promptpad/internal/clipboard"
	"promptpad/internal/history"
	"promptpad/internal/logger"
	"promptpad/internal/tui/components"
	"promptpad/internal/vim"
)

const draftSaveInterval = 2 * time.Second

func draftTick() tea.Cmd {
	return tea.Tick(draftSaveInterval, func(time.Time) tea.Msg { return draftTickMsg{} })
}

func spinnerTick() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(time.Time) tea.Msg { return spinnerTickMsg{} })
}

// Init starts the draft autosave loop.
func (m Model) Init() tea.Cmd {
	return draftTick()
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.viewport.width = msg.Width
		m.viewport.height = msg.Height
		m.prompt.SetSize(msg.Width-6, promptHeight) // Account for border padding + prefix
		m.ready = true
		return m, nil

	case ApplyMsg:
		msg.Fn()
		m.drainShared()
		return m, nil

	case CloseRequestMsg:
		m.saveDraftNow()
		return m, tea.Quit

	case tea.KeyMsg:
		return m.handleKey(msg)

	case draftTickMsg:
		if m.shared.draftDirty && m.prompt.Value() != m.lastSavedDraft {
			body := m.prompt.Value()
			if err := m.store.SaveDraft(body); err != nil {
				logger.Error("tui: failed to save draft: %v", err)
			} else {
				m.lastSavedDraft = body
			}
		}
		m.shared.draftDirty = false
		return m, draftTick()

	case spinnerTickMsg:
		if !m.processing || m.spinner == nil {
			return m, nil
		}
		m.spinner.Tick()
		return m, spinnerTick()

	case SubmitResultMsg:
		if msg.Err != nil {
			logger.Error("tui: failed to save prompt: %v", msg.Err)
			m.setStatus(components.StatuslineError, "failed to save prompt")
			return m, nil
		}
		m.recent = append([]history.Prompt{msg.Prompt}, m.recent...)
		if len(m.recent) > m.cfg.HistoryLimit {
			m.recent = m.recent[:m.cfg.HistoryLimit]
		}
		m.setStatus(components.StatuslineInfo, "prompt saved and copied")
		return m, nil

	case RefineResultMsg:
		m.processing = false
		m.spinner = nil
		if msg.Err != nil {
			logger.Error("tui: refinement failed: %v", msg.Err)
			m.setStatus(components.StatuslineError, "refinement failed")
			return m, nil
		}
		m.refined = msg.Text
		m.setStatus(components.StatuslineInfo, "refined prompt ready (ctrl+y to use)")
		return m, nil
	}

	return m, nil
}

// handleKey routes key presses: app-level bindings first, then the vim
// engine, then plain editing when the editor accepts typed input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	switch {
	case key == "ctrl+c":
		m.saveDraftNow()
		return m, tea.Quit

	case key == "ctrl+v":
		enabled := !m.engine.Enabled()
		m.engine.SetEnabled(enabled)
		if enabled {
			m.setStatus(components.StatuslineInfo, "vim mode on")
		} else {
			m.setStatus(components.StatuslineInfo, "vim mode off")
		}
		return m, nil

	case key == "ctrl+s":
		return m.submit()

	case key == "enter" && m.engine.Enabled() && m.engine.Mode() == vim.Normal:
		// Enter submits in Normal mode
		return m.submit()

	case key == "ctrl+g":
		return m.refine()

	case key == "ctrl+y":
		if m.refined == "" {
			return m, nil
		}
		m.prompt.SetValue(m.refined)
		m.refined = ""
		m.shared.draftDirty = true
		if m.engine.Enabled() && m.engine.Mode() == vim.Normal {
			// Re-apply the block cursor over the new text.
			m.engine.HandleKey("esc")
		}
		return m, nil
	}

	if m.engine.HandleKey(key) {
		m.drainShared()
		return m, nil
	}

	// Plain typing: only when vim mode is off or the editor is inserting.
	if m.engine.Enabled() && m.engine.Mode() != vim.Insert {
		return m, nil
	}
	switch {
	case key == "enter":
		m.prompt.InsertNewline()
	case key == "backspace":
		m.prompt.Backspace()
	case key == "left":
		m.prompt.MoveCaret(-1)
	case key == "right":
		m.prompt.MoveCaret(1)
	case msg.Type == tea.KeyRunes:
		m.prompt.InsertText(string(msg.Runes))
	case key == " ":
		m.prompt.InsertText(" ")
	}
	return m, nil
}

// submit persists the buffer as a history entry and clears the editor.
func (m Model) submit() (tea.Model, tea.Cmd) {
	body := m.prompt.Value()
	if strings.TrimSpace(body) == "" || m.processing {
		return m, nil
	}

	m.prompt.Reset()
	m.refined = ""
	m.lastSavedDraft = ""
	m.shared.draftDirty = false
	if m.engine.Enabled() && m.engine.Mode() != vim.Insert {
		m.engine.HandleKey("esc")
	}

	store := m.store
	return m, func() tea.Msg {
		p, err := store.Add(body)
		if err == nil {
			if derr := store.ClearDraft(); derr != nil {
				logger.Error("tui: failed to clear draft: %v", derr)
			}
		}
		if clip := (clipboard.System{}); clip.Available() {
			if cerr := clip.WriteText(context.Background(), body); cerr != nil {
				logger.Error("tui: failed to copy submitted prompt: %v", cerr)
			}
		}
		return SubmitResultMsg{Prompt: p, Err: err}
	}
}

// refine sends the buffer to the model for rewriting.
func (m Model) refine() (tea.Model, tea.Cmd) {
	if m.agent == nil {
		m.setStatus(components.StatuslineWarning, "set ANTHROPIC_API_KEY to enable refinement")
		return m, nil
	}
	body := m.prompt.Value()
	if strings.TrimSpace(body) == "" || m.processing {
		return m, nil
	}

	m.processing = true
	m.spinner = components.NewSpinnerComponent("refining prompt")

	ag := m.agent
	request := func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()
		text, err := ag.Refine(ctx, body)
		return RefineResultMsg{Text: text, Err: err}
	}
	return m, tea.Batch(spinnerTick(), request)
}

// saveDraftNow flushes the draft synchronously, for shutdown paths.
func (m *Model) saveDraftNow() {
	if err := m.store.SaveDraft(m.prompt.Value()); err != nil {
		logger.Error("tui: failed to save draft on exit: %v", err)
	}
}
