package updater

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// State is the persisted update-check bookkeeping, stored as JSON next to
// the version file.
type State struct {
	Enabled     bool      `json:"enabled"`
	AutoCheck   bool      `json:"auto_check"`
	LastCheck   time.Time `json:"last_check"`
	SkipVersion string    `json:"skip_version,omitempty"`
}

func defaultState() State {
	return State{Enabled: true, AutoCheck: true}
}

// LoadState reads the state file, returning defaults when it is missing or
// unreadable.
func LoadState(path string) State {
	data, err := os.ReadFile(path)
	if err != nil {
		return defaultState()
	}
	state := defaultState()
	if err := json.Unmarshal(data, &state); err != nil {
		return defaultState()
	}
	return state
}

// SaveState writes the state file, creating the parent directory if needed.
func SaveState(path string, state State) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0644)
}
