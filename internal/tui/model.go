package tui

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"promptpad/internal/agent"
	"promptpad/internal/clipboard"
	"promptpad/internal/history"
	"promptpad/internal/logger"
	"promptpad/internal/settings"
	"promptpad/internal/tui/components"
	"promptpad/internal/tui/components/promptarea"
	"promptpad/internal/vim"
)

// promptHeight is the number of text rows in the input box.
const promptHeight = 4

// sharedState carries signals out of engine callbacks, which run inside
// the update loop but cannot touch the value-typed Model directly.
type sharedState struct {
	draftDirty bool
	notice     string
}

// Model represents the Bubble Tea model for the TUI
type Model struct {
	prompt *promptarea.Model
	engine *vim.Engine
	store  *history.Store
	agent  *agent.Agent
	cfg    settings.Settings
	shared *sharedState

	viewport struct {
		width  int
		height int
	}
	ready bool

	processing bool
	spinner    *components.SpinnerComponent

	recent  []history.Prompt
	refined string
	status  *components.StatuslineMessage

	lastSavedDraft string
}

// ApplyMsg delivers a deferred engine callback (clipboard completions,
// pending-key expiry) into the update loop.
type ApplyMsg struct {
	Fn func()
}

// CloseRequestMsg is sent when the editor's close command (q) fires.
type CloseRequestMsg struct{}

// SubmitResultMsg reports the outcome of persisting a submitted prompt.
type SubmitResultMsg struct {
	Prompt history.Prompt
	Err    error
}

// RefineResultMsg reports the outcome of a prompt refinement request.
type RefineResultMsg struct {
	Text string
	Err  error
}

type draftTickMsg struct{}

type spinnerTickMsg struct{}

// NewModel assembles the TUI state. A nil ag disables refinement.
func NewModel(store *history.Store, ag *agent.Agent, cfg settings.Settings) Model {
	prompt := promptarea.New(80, promptHeight)
	prompt.SetPlaceholder("Compose a prompt...")
	prompt.Focus()

	shared := &sharedState{}
	prompt.OnChange(func() { shared.draftDirty = true })

	clip := clipboard.System{}
	opts := []vim.Option{
		vim.WithPendingTimeout(time.Duration(cfg.PendingTimeoutMs) * time.Millisecond),
		vim.WithYankCallback(func(text string) {
			shared.notice = fmt.Sprintf("yanked %d chars", utf8.RuneCountInString(text))
			go func() {
				if err := clip.WriteText(context.Background(), text); err != nil {
					logger.Error("tui: clipboard write failed: %v", err)
				}
			}()
		}),
	}
	if clip.Available() {
		opts = append(opts, vim.WithClipboard(clip))
	}

	eng := vim.New(prompt, opts...)

	m := Model{
		prompt: prompt,
		engine: eng,
		store:  store,
		agent:  ag,
		cfg:    cfg,
		shared: shared,
	}

	if draft, err := store.LoadDraft(); err != nil {
		logger.Error("tui: failed to load draft: %v", err)
	} else if draft != "" {
		prompt.SetValue(draft)
		m.lastSavedDraft = draft
	}
	if recent, err := store.Recent(cfg.HistoryLimit); err != nil {
		logger.Error("tui: failed to load history: %v", err)
	} else {
		m.recent = recent
	}

	// Enabling after the draft is in place puts the block cursor on real text.
	if cfg.VimEnabled {
		eng.SetEnabled(true)
	}

	return m
}

// setStatus shows a transient statusline message.
func (m *Model) setStatus(kind components.StatuslineMessageType, text string) {
	m.status = &components.StatuslineMessage{
		Type:     kind,
		Text:     text,
		Duration: 4 * time.Second,
		ShowTime: time.Now(),
	}
}

// drainShared applies signals engine callbacks left behind.
func (m *Model) drainShared() {
	if m.shared.notice != "" {
		m.setStatus(components.StatuslineInfo, m.shared.notice)
		m.shared.notice = ""
	}
}
