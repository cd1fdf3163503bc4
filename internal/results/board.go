// Package results keeps an in-memory daily board of scored submissions.
// The board is display-only: the scorer never reads it, and nothing is
// persisted across restarts.
package results

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/statpadgame/statpad-data/internal/game"
)

// Entry is one recorded submission result.
type Entry struct {
	ID         string    `json:"id"`
	Date       string    `json:"date"`
	Name       string    `json:"name,omitempty"`
	Total      float64   `json:"total"`
	Percentile float64   `json:"percentile"`
	Tier       game.Tier `json:"tier"`
	ShareLine  string    `json:"share_line"`
	CreatedAt  time.Time `json:"created_at"`
}

// Board records scored submissions per date.
type Board struct {
	mu      sync.RWMutex
	byDate  map[string][]Entry
	byID    map[string]Entry
	maxDays int
}

// NewBoard creates a board that retains entries for at most maxDays distinct
// dates; older dates are evicted as new ones appear.
func NewBoard(maxDays int) *Board {
	if maxDays < 1 {
		maxDays = 7
	}
	return &Board{
		byDate:  make(map[string][]Entry),
		byID:    make(map[string]Entry),
		maxDays: maxDays,
	}
}

// Record stores a scored submission and returns its entry with a fresh id.
func (b *Board) Record(name string, result *game.ScoreResult) Entry {
	e := Entry{
		ID:         uuid.NewString(),
		Date:       result.Date,
		Name:       name,
		Total:      result.Total,
		Percentile: result.Percentile,
		Tier:       result.Tier,
		ShareLine:  result.ShareLine,
		CreatedAt:  time.Now().UTC(),
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.byDate[e.Date] = append(b.byDate[e.Date], e)
	b.byID[e.ID] = e
	b.evictLocked()
	return e
}

// Get returns a recorded entry by id.
func (b *Board) Get(id string) (Entry, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	e, ok := b.byID[id]
	return e, ok
}

// Top returns up to n entries for a date, best total first.
func (b *Board) Top(date string, n int) []Entry {
	b.mu.RLock()
	entries := append([]Entry(nil), b.byDate[date]...)
	b.mu.RUnlock()

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Total > entries[j].Total
	})
	if n > 0 && len(entries) > n {
		entries = entries[:n]
	}
	return entries
}

// evictLocked drops the oldest dates once more than maxDays are tracked.
func (b *Board) evictLocked() {
	if len(b.byDate) <= b.maxDays {
		return
	}
	dates := make([]string, 0, len(b.byDate))
	for d := range b.byDate {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	for _, d := range dates[:len(dates)-b.maxDays] {
		for _, e := range b.byDate[d] {
			delete(b.byID, e.ID)
		}
		delete(b.byDate, d)
	}
}
