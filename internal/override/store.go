// Package override persists admin-authored puzzles in a flat JSON file
// keyed by ISO date. Overrides take precedence over generated puzzles.
package override

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/statpadgame/statpad-data/internal/game"
)

// ErrConflict reports a malformed override file or record. Surfaced to the
// admin caller, never swallowed.
var ErrConflict = errors.New("override record conflict")

// Store is a file-backed keyed record store of date -> puzzle. Writes are
// atomic (temp file + rename) and serialized in-process; the deployment
// assumption is a single writer.
type Store struct {
	mu   sync.Mutex
	path string
}

// NewStore creates a store over the given file path. The file may not exist
// yet; it is created on the first write.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Get returns the override for a date, if one exists. Implements
// game.OverrideSource.
func (s *Store) Get(date string) (*game.Puzzle, bool, error) {
	all, err := s.load()
	if err != nil {
		return nil, false, err
	}
	p, ok := all[date]
	if !ok {
		return nil, false, nil
	}
	if err := p.Validate(); err != nil {
		return nil, false, fmt.Errorf("%w: %s: %v", ErrConflict, date, err)
	}
	return p, true, nil
}

// Set creates or overwrites the override for a date. The puzzle is validated
// before anything touches the file. The caller's puzzle is not modified; the
// stored copy carries the date key.
func (s *Store) Set(date string, p *game.Puzzle) error {
	if err := p.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrConflict, err)
	}
	stored := *p
	stored.Date = date

	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.loadLocked()
	if err != nil {
		return err
	}
	all[date] = &stored
	return s.writeLocked(all)
}

// Delete removes the override for a date. Deleting a missing key is a no-op.
func (s *Store) Delete(date string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.loadLocked()
	if err != nil {
		return err
	}
	if _, ok := all[date]; !ok {
		return nil
	}
	delete(all, date)
	return s.writeLocked(all)
}

// List returns all overrides sorted by date.
func (s *Store) List() ([]*game.Puzzle, error) {
	all, err := s.load()
	if err != nil {
		return nil, err
	}
	dates := make([]string, 0, len(all))
	for d := range all {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	out := make([]*game.Puzzle, 0, len(dates))
	for _, d := range dates {
		out = append(out, all[d])
	}
	return out, nil
}

func (s *Store) load() (map[string]*game.Puzzle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked()
}

func (s *Store) loadLocked() (map[string]*game.Puzzle, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]*game.Puzzle{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read override store: %w", err)
	}

	all := map[string]*game.Puzzle{}
	if len(data) == 0 {
		return all, nil
	}
	if err := json.Unmarshal(data, &all); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", ErrConflict, s.path, err)
	}
	return all, nil
}

// writeLocked replaces the store file atomically so readers never observe a
// partial write.
func (s *Store) writeLocked(all map[string]*game.Puzzle) error {
	data, err := json.MarshalIndent(all, "", "  ")
	if err != nil {
		return fmt.Errorf("encode override store: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create override dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".overrides-*.json")
	if err != nil {
		return fmt.Errorf("create temp override file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write override store: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close override store: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace override store: %w", err)
	}
	return nil
}
