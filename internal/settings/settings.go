// Package settings loads and stores user configuration as JSON under the
// user's config directory.
package settings

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Settings is the user-facing configuration.
type Settings struct {
	// VimEnabled controls whether the prompt editor starts in vim mode.
	VimEnabled bool `json:"vim_enabled" jsonschema:"title=Vim mode,description=Start the prompt editor with vim keybindings enabled,default=true"`

	// PendingTimeoutMs is how long a compound command prefix (g/d/y) waits
	// for its second key before being dropped.
	PendingTimeoutMs int `json:"pending_timeout_ms" jsonschema:"title=Compound key timeout,description=Milliseconds a compound command prefix waits for its second key,default=1000,minimum=100,maximum=10000"`

	// HistoryLimit caps how many past prompts the history view loads.
	HistoryLimit int `json:"history_limit" jsonschema:"title=History limit,description=Maximum number of past prompts shown in the history view,default=50,minimum=1,maximum=1000"`

	// Model names the Anthropic model used for prompt refinement.
	Model string `json:"model" jsonschema:"title=Model,description=Anthropic model used to refine prompts,default=claude-sonnet-4-20250514"`
}

// Default returns the settings used when no file exists.
func Default() Settings {
	return Settings{
		VimEnabled:       true,
		PendingTimeoutMs: 1000,
		HistoryLimit:     50,
		Model:            "claude-sonnet-4-20250514",
	}
}

var (
	mu   sync.RWMutex
	path string
)

func init() {
	dir, err := os.UserConfigDir()
	if err != nil {
		return
	}
	path = filepath.Join(dir, "promptpad", "settings.json")
}

// SetPath overrides the settings file location (used by tests and the
// -config flag).
func SetPath(p string) {
	mu.Lock()
	defer mu.Unlock()
	path = p
}

// Load reads the settings file, filling unset fields with defaults. A
// missing file yields the defaults without error.
func Load() (Settings, error) {
	mu.RLock()
	defer mu.RUnlock()

	s := Default()
	if path == "" {
		return s, nil
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return s, fmt.Errorf("failed to read settings: %w", err)
	}
	if err := json.Unmarshal(data, &s); err != nil {
		return Default(), fmt.Errorf("failed to parse settings: %w", err)
	}
	if s.PendingTimeoutMs <= 0 {
		s.PendingTimeoutMs = Default().PendingTimeoutMs
	}
	if s.HistoryLimit <= 0 {
		s.HistoryLimit = Default().HistoryLimit
	}
	if s.Model == "" {
		s.Model = Default().Model
	}
	return s, nil
}

// Save writes the settings file, creating its directory if needed.
func Save(s Settings) error {
	mu.Lock()
	defer mu.Unlock()

	if path == "" {
		return fmt.Errorf("no settings path available")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}
	return nil
}
