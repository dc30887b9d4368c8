package batch

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"growroomd/pkg/logx"
)

// StageChange is one row of a batch's audit trail.
type StageChange struct {
	Stage string    `json:"stage"`
	Date  time.Time `json:"date"`
	Note  string    `json:"note,omitempty"`
}

// Batch is one group of plants moving through the veg pipeline together.
type Batch struct {
	BatchID         string        `json:"batch_id"`
	Name            string        `json:"name"`
	StartDate       time.Time     `json:"start_date"`
	Stage           string        `json:"stage"`
	PlantCount      int           `json:"plant_count"`
	Strain          string        `json:"strain,omitempty"`
	DestinationRoom string        `json:"destination_room,omitempty"`
	Notes           string        `json:"notes,omitempty"`
	Active          bool          `json:"active"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
	StageHistory    []StageChange `json:"stage_history,omitempty"`
}

// Store keeps batches in memory, grouped by veg room, and mirrors each room
// to data/batches/<room>.json. Writes are queued to a single worker so the
// lifecycle operations never block on disk.
type Store struct {
	dir string
	log logx.Logger

	mu    sync.RWMutex
	rooms map[string]map[string]*Batch // roomID -> batchID -> batch

	persistCh chan string
	done      chan struct{}
	closeOnce sync.Once
}

// NewStore loads every <room>.json snapshot under dir and starts the
// persistence worker.
func NewStore(dir string, log logx.Logger) (*Store, error) {
	s := &Store{
		dir:       dir,
		log:       log,
		rooms:     map[string]map[string]*Batch{},
		persistCh: make(chan string, 64),
		done:      make(chan struct{}),
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	go s.persistLoop()
	return s, nil
}

func (s *Store) load() error {
	entries, err := os.ReadDir(s.dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("batch store load: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		roomID := e.Name()[:len(e.Name())-len(".json")]
		data, err := os.ReadFile(filepath.Join(s.dir, e.Name()))
		if err != nil {
			return fmt.Errorf("batch store load %s: %w", e.Name(), err)
		}
		var batches []*Batch
		if err := json.Unmarshal(data, &batches); err != nil {
			return fmt.Errorf("batch store load %s: %w", e.Name(), err)
		}
		m := make(map[string]*Batch, len(batches))
		for _, b := range batches {
			m[b.BatchID] = b
		}
		s.rooms[roomID] = m
	}
	return nil
}

// persistLoop serializes room snapshots. Duplicate requests for a room that
// is already queued coalesce naturally because the snapshot reads current
// in-memory state at write time.
func (s *Store) persistLoop() {
	for roomID := range s.persistCh {
		if err := s.writeRoom(roomID); err != nil {
			s.log.Error("batch snapshot failed",
				logx.String("room", roomID),
				logx.Err(err),
			)
		}
	}
	close(s.done)
}

func (s *Store) writeRoom(roomID string) error {
	s.mu.RLock()
	m := s.rooms[roomID]
	batches := make([]*Batch, 0, len(m))
	for _, b := range m {
		cp := *b
		batches = append(batches, &cp)
	}
	s.mu.RUnlock()

	sort.Slice(batches, func(i, j int) bool { return batches[i].BatchID < batches[j].BatchID })

	data, err := json.MarshalIndent(batches, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return err
	}
	path := filepath.Join(s.dir, roomID+".json")
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// markDirty queues a room for persistence. Non-blocking: if the queue is
// full a later mutation will re-queue it.
func (s *Store) markDirty(roomID string) {
	select {
	case s.persistCh <- roomID:
	default:
		s.log.Warn("batch persist queue full", logx.String("room", roomID))
	}
}

// Close drains the persistence queue and flushes every room synchronously.
func (s *Store) Close() error {
	s.closeOnce.Do(func() {
		close(s.persistCh)
		<-s.done
	})
	s.mu.RLock()
	ids := make([]string, 0, len(s.rooms))
	for id := range s.rooms {
		ids = append(ids, id)
	}
	s.mu.RUnlock()
	var firstErr error
	for _, id := range ids {
		if err := s.writeRoom(id); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Get returns a copy of one batch.
func (s *Store) Get(roomID, batchID string) (Batch, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.rooms[roomID][batchID]
	if !ok {
		return Batch{}, false
	}
	return *b, true
}

// List returns copies of a room's batches sorted by ID. activeOnly filters
// out retired batches.
func (s *Store) List(roomID string, activeOnly bool) []Batch {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Batch, 0, len(s.rooms[roomID]))
	for _, b := range s.rooms[roomID] {
		if activeOnly && !b.Active {
			continue
		}
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].BatchID < out[j].BatchID })
	return out
}

// ActiveCount implements registry.BatchCounter.
func (s *Store) ActiveCount(roomID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, b := range s.rooms[roomID] {
		if b.Active {
			n++
		}
	}
	return n
}

// put inserts or replaces a batch and queues the room snapshot.
func (s *Store) put(roomID string, b Batch) {
	s.mu.Lock()
	m := s.rooms[roomID]
	if m == nil {
		m = map[string]*Batch{}
		s.rooms[roomID] = m
	}
	cp := b
	m[b.BatchID] = &cp
	s.mu.Unlock()
	s.markDirty(roomID)
}
