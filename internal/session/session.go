// Package session persists reader state between runs so the next launch
// restores the last open document and the panel layout.
package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Panels narrower than this are unusable; persisted widths below it are
// replaced with the defaults on load.
const minPanelWidth = 16

// State is what survives between reader runs.
type State struct {
	ActiveSlug string `json:"active_slug,omitempty"`
	Section    string `json:"section,omitempty"`
	ShowList   bool   `json:"show_list"`
	ShowTOC    bool   `json:"show_toc"`
	ListWidth  int    `json:"list_width,omitempty"`
	TOCWidth   int    `json:"toc_width,omitempty"`
}

// Default returns the state for a first run.
func Default() State {
	return State{
		Section:   "posts",
		ShowList:  true,
		ShowTOC:   true,
		ListWidth: 32,
		TOCWidth:  28,
	}
}

// statePath places the state file inside the content directory's
// dot-directory, next to the index database.
func statePath(contentPath string) string {
	return filepath.Join(contentPath, ".folio", "state.json")
}

// Load restores reader state from the content directory. A missing file
// yields the defaults; a corrupt or unreadable one also falls back but
// reports the error so the caller can surface it.
func Load(contentPath string) (State, error) {
	state := Default()

	data, err := os.ReadFile(statePath(contentPath))
	if err != nil {
		if os.IsNotExist(err) {
			return state, nil
		}
		return state, fmt.Errorf("read reader state: %w", err)
	}
	if err := json.Unmarshal(data, &state); err != nil {
		return Default(), fmt.Errorf("parse reader state: %w", err)
	}
	return state.normalized(), nil
}

// normalized repairs values an older build or a hand edit could have left
// out of range.
func (s State) normalized() State {
	def := Default()
	if s.Section != "posts" && s.Section != "projects" {
		s.Section = def.Section
	}
	if s.ListWidth < minPanelWidth {
		s.ListWidth = def.ListWidth
	}
	if s.TOCWidth < minPanelWidth {
		s.TOCWidth = def.TOCWidth
	}
	return s
}

// Save writes reader state atomically: staged beside the final path, then
// renamed into place. SSH sessions share this file, so a save interrupted
// mid-write must never leave a half-written state for another session.
func Save(contentPath string, state State) error {
	path := statePath(contentPath)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("encode reader state: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write reader state: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("write reader state: %w", err)
	}
	return nil
}
