// Package progress handles the on-disk progress document.
package progress

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/verte-zerg/typesmart/internal/model"
	"github.com/verte-zerg/typesmart/internal/theme"
)

// Store owns the progress document path.
type Store struct {
	path string
}

// NewStore returns a Store for the given document path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the canonical document path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the document. The returned document is always usable: when the
// file is missing it holds defaults and err is nil; when the file cannot be
// read or decoded it holds defaults and err describes the problem.
func (s *Store) Load() (*model.Progress, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return model.NewProgress(), nil
		}
		return model.NewProgress(), fmt.Errorf("failed to read progress: %w", err)
	}
	p := model.NewProgress()
	if err := json.Unmarshal(data, p); err != nil {
		return model.NewProgress(), fmt.Errorf("failed to decode progress: %w", err)
	}
	sanitize(p)
	return p, nil
}

// Save writes the document to a temp file and renames it over the canonical path.
func (s *Store) Save(p *model.Progress) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode progress: %w", err)
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create progress dir: %w", err)
	}
	tmpFile, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp progress: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("failed to write progress: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("failed to sync progress: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close progress: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		return fmt.Errorf("failed to replace progress: %w", err)
	}
	return nil
}

// sanitize repairs values an older or hand-edited document may carry.
func sanitize(p *model.Progress) {
	if !theme.Valid(p.Theme) {
		p.Theme = model.DefaultTheme
	}
	if p.Level < 1 {
		p.Level = 1
	}
	if p.CurrentSet < 0 {
		p.CurrentSet = 0
	}
	p.TotalWords = max(p.TotalWords, 0)
	p.TotalErrors = max(p.TotalErrors, 0)
	p.TotalTime = max(p.TotalTime, 0)
	p.Streak = max(p.Streak, 0)
	if p.Heatmap == nil {
		p.Heatmap = model.Heatmap{}
	}
	if p.CustomLessons == nil {
		p.CustomLessons = []string{}
	}
}
