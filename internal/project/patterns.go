package project

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/piwi3910/FurniCraft/internal/catalog"
	"github.com/piwi3910/FurniCraft/internal/model"
)

// DefaultPatternsPath returns ~/.furnicraft/patterns.json.
func DefaultPatternsPath() string {
	return filepath.Join(DefaultConfigDir(), "patterns.json")
}

// PatternLibrary is a pattern catalogue kept in a JSON file. It serves the
// catalogue offline when no database is configured.
type PatternLibrary struct {
	path string

	mu       sync.Mutex
	patterns []model.Pattern
}

var _ catalog.Client = (*PatternLibrary)(nil)

type patternFile struct {
	Patterns []model.Pattern `json:"patterns"`
}

// OpenPatternLibrary loads the library at path. A missing file yields an
// empty library that is created on the first insert.
func OpenPatternLibrary(path string) (*PatternLibrary, error) {
	lib := &PatternLibrary{path: path, patterns: []model.Pattern{}}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return lib, nil
		}
		return nil, err
	}
	var f patternFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse pattern library: %w", err)
	}
	if f.Patterns != nil {
		lib.patterns = f.Patterns
	}
	return lib, nil
}

// ListPatterns returns a copy of every pattern.
func (l *PatternLibrary) ListPatterns(_ context.Context) ([]model.Pattern, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]model.Pattern, len(l.patterns))
	copy(out, l.patterns)
	return out, nil
}

func (l *PatternLibrary) GetPattern(_ context.Context, id string) (model.Pattern, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, p := range l.patterns {
		if p.ID == id {
			return p, nil
		}
	}
	return model.Pattern{}, fmt.Errorf("pattern %s: %w", id, catalog.ErrNotFound)
}

// InsertPattern adds or replaces a pattern and rewrites the file.
func (l *PatternLibrary) InsertPattern(_ context.Context, p model.Pattern) (model.Pattern, error) {
	if p.ID == "" {
		p.ID = uuid.New().String()[:8]
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	p = p.Normalized()

	l.mu.Lock()
	defer l.mu.Unlock()
	replaced := false
	for i := range l.patterns {
		if l.patterns[i].ID == p.ID {
			l.patterns[i] = p
			replaced = true
			break
		}
	}
	if !replaced {
		l.patterns = append(l.patterns, p)
	}
	if err := writeJSON(l.path, patternFile{Patterns: l.patterns}); err != nil {
		return model.Pattern{}, fmt.Errorf("failed to save pattern library: %w", err)
	}
	return p, nil
}

// Len returns the number of stored patterns.
func (l *PatternLibrary) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.patterns)
}
