package dashboard

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// PreferenceStore persists the filter selections between sessions.
// The derivation functions never use it; callers load and save around them.
type PreferenceStore interface {
	Load() (Filters, error)
	Save(Filters) error
}

var (
	_ PreferenceStore = (*FilePreferences)(nil)
	_ PreferenceStore = (*MemoryPreferences)(nil)
)

// FilePreferences stores filters as JSON in a single file
type FilePreferences struct {
	Path string
}

// NewFilePreferences returns a store at path, or at DefaultPreferencesPath when path is empty
func NewFilePreferences(path string) (*FilePreferences, error) {
	if path == "" {
		var err error
		path, err = DefaultPreferencesPath()
		if err != nil {
			return nil, err
		}
	}
	return &FilePreferences{Path: path}, nil
}

// DefaultPreferencesPath returns the per-user preferences file location
func DefaultPreferencesPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate config directory: %w", err)
	}
	return filepath.Join(dir, "intakeflow", "preferences.json"), nil
}

// Load reads the saved filters. A missing file yields DefaultFilters.
func (p *FilePreferences) Load() (Filters, error) {
	raw, err := os.ReadFile(p.Path)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultFilters(), nil
	}
	if err != nil {
		return Filters{}, fmt.Errorf("failed to read preferences: %w", err)
	}

	var f Filters
	if err := json.Unmarshal(raw, &f); err != nil {
		return Filters{}, fmt.Errorf("failed to parse preferences %s: %w", p.Path, err)
	}
	return f.normalized(), nil
}

// Save writes the filters, replacing the file atomically
func (p *FilePreferences) Save(f Filters) error {
	raw, err := json.MarshalIndent(f.normalized(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode preferences: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(p.Path), 0o755); err != nil {
		return fmt.Errorf("failed to create preferences directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(p.Path), ".preferences-*")
	if err != nil {
		return fmt.Errorf("failed to write preferences: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write preferences: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write preferences: %w", err)
	}
	if err := os.Rename(tmp.Name(), p.Path); err != nil {
		return fmt.Errorf("failed to write preferences: %w", err)
	}
	return nil
}

// MemoryPreferences keeps filters in memory
type MemoryPreferences struct {
	mu      sync.Mutex
	filters *Filters
}

// Load returns the saved filters or DefaultFilters
func (m *MemoryPreferences) Load() (Filters, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.filters == nil {
		return DefaultFilters(), nil
	}
	return *m.filters, nil
}

// Save stores the filters
func (m *MemoryPreferences) Save(f Filters) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	f = f.normalized()
	m.filters = &f
	return nil
}
