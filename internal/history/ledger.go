// Package history keeps the local list of recently visited plans in a JSON
// file: an array of {id, title}, most recent first, one entry per plan.
package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/alexanderramin/mintabi/internal/domain"
)

// DefaultLimit is the number of entries kept when no limit is configured.
const DefaultLimit = 5

// Ledger is a file-backed history list. Limit caps the list on every write;
// zero keeps everything.
type Ledger struct {
	path  string
	limit int
	now   func() time.Time

	mu sync.Mutex
}

func NewLedger(path string, limit int) *Ledger {
	if limit < 0 {
		limit = 0
	}
	return &Ledger{path: path, limit: limit, now: time.Now}
}

func (l *Ledger) Path() string { return l.path }

// List returns the entries most recent first. A missing file is an empty list.
func (l *Ledger) List() ([]domain.HistoryEntry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.load()
}

// Record moves id to the front with the given title, adding it if absent.
func (l *Ledger) Record(id, title string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: history entry without id", domain.ErrMalformedInput)
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	entries, err := l.load()
	if err != nil {
		return err
	}
	entry := domain.HistoryEntry{ID: id, Title: title, LastVisited: l.now().UnixMilli()}
	next := make([]domain.HistoryEntry, 0, len(entries)+1)
	next = append(next, entry)
	for _, e := range entries {
		if e.ID != id {
			next = append(next, e)
		}
	}
	return l.save(next)
}

// Remove drops id. Removing an unknown id is not an error.
func (l *Ledger) Remove(id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	entries, err := l.load()
	if err != nil {
		return err
	}
	next := entries[:0]
	for _, e := range entries {
		if e.ID != id {
			next = append(next, e)
		}
	}
	return l.save(next)
}

func (l *Ledger) load() ([]domain.HistoryEntry, error) {
	data, err := os.ReadFile(l.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading history: %w", err)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, nil
	}
	var entries []domain.HistoryEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("decoding history %s: %w", l.path, err)
	}
	return dedupe(entries), nil
}

func (l *Ledger) save(entries []domain.HistoryEntry) error {
	if l.limit > 0 && len(entries) > l.limit {
		entries = entries[:l.limit]
	}
	if entries == nil {
		entries = []domain.HistoryEntry{}
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encoding history: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return fmt.Errorf("creating history directory: %w", err)
	}
	tmp := l.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing history: %w", err)
	}
	if err := os.Rename(tmp, l.path); err != nil {
		return fmt.Errorf("replacing history: %w", err)
	}
	return nil
}

// dedupe keeps the first occurrence of every id; files edited by hand may
// repeat one.
func dedupe(entries []domain.HistoryEntry) []domain.HistoryEntry {
	seen := make(map[string]bool, len(entries))
	out := entries[:0]
	for _, e := range entries {
		if seen[e.ID] {
			continue
		}
		seen[e.ID] = true
		out = append(out, e)
	}
	return out
}
