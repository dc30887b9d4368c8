package journal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// fileJournal keeps all entries in memory and snapshots them to one JSON
// file via temp file + rename.
type fileJournal struct {
	mu      sync.Mutex
	path    string
	entries []Entry
	nextID  int64
}

func openFile(path string) (*fileJournal, error) {
	j := &fileJournal{path: path, nextID: 1}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return j, nil
	}
	if err != nil {
		return nil, fmt.Errorf("journal open: %w", err)
	}
	if err := json.Unmarshal(data, &j.entries); err != nil {
		return nil, fmt.Errorf("journal open %s: %w", path, err)
	}
	for _, e := range j.entries {
		if e.ID >= j.nextID {
			j.nextID = e.ID + 1
		}
	}
	return j, nil
}

func (j *fileJournal) Add(_ context.Context, e Entry) (Entry, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	e.ID = j.nextID
	j.nextID++
	if e.Created.IsZero() {
		e.Created = time.Now()
	}
	j.entries = append(j.entries, e)
	if err := j.saveLocked(); err != nil {
		j.entries = j.entries[:len(j.entries)-1]
		j.nextID--
		return Entry{}, err
	}
	return e, nil
}

func (j *fileJournal) List(_ context.Context, f Filter) ([]Entry, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	out := make([]Entry, 0, len(j.entries))
	// Newest first.
	for i := len(j.entries) - 1; i >= 0; i-- {
		e := j.entries[i]
		if !matches(e, f) {
			continue
		}
		out = append(out, e)
		if f.Limit > 0 && len(out) >= f.Limit {
			break
		}
	}
	return out, nil
}

func matches(e Entry, f Filter) bool {
	if f.Room != "" && e.Room != f.Room {
		return false
	}
	if f.Batch != "" && e.Batch != f.Batch {
		return false
	}
	if f.Category != "" && e.Category != f.Category {
		return false
	}
	if !f.Since.IsZero() && e.Created.Before(f.Since) {
		return false
	}
	return true
}

func (j *fileJournal) Count(_ context.Context, room string) (int, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if room == "" {
		return len(j.entries), nil
	}
	n := 0
	for _, e := range j.entries {
		if e.Room == room {
			n++
		}
	}
	return n, nil
}

func (j *fileJournal) Last(_ context.Context, room string) (Entry, bool, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	for i := len(j.entries) - 1; i >= 0; i-- {
		if room == "" || j.entries[i].Room == room {
			return j.entries[i], true, nil
		}
	}
	return Entry{}, false, nil
}

func (j *fileJournal) Close() error { return nil }

func (j *fileJournal) saveLocked() error {
	data, err := json.MarshalIndent(j.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("journal save: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(j.path), 0o755); err != nil {
		return fmt.Errorf("journal save: %w", err)
	}
	tmp := j.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("journal save: %w", err)
	}
	if err := os.Rename(tmp, j.path); err != nil {
		return fmt.Errorf("journal save: %w", err)
	}
	return nil
}
