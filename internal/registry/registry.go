// Package registry tracks the grow rooms the scheduler manages. Rooms are
// registered explicitly and persisted to a single rooms.json snapshot so a
// restart restores the fleet without re-registration.
package registry

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"growroomd/internal/protocol"
	"growroomd/pkg/logx"
)

var (
	ErrNotFound      = errors.New("room not registered")
	ErrExists        = errors.New("room already registered")
	ErrInvalidType   = errors.New("invalid room type")
	ErrActiveBatches = errors.New("room has active batches")
	ErrNotStarted    = errors.New("room has no start date")
	ErrWrongType     = errors.New("operation not valid for this room type")
)

// Room is one managed grow space. StartDate is nil for a flower room that
// has been registered but not yet loaded with plants; veg rooms never carry
// a room-level start date (their batches do).
type Room struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Type           string     `json:"type"`
	StartDate      *time.Time `json:"start_date,omitempty"`
	CalendarTarget string     `json:"calendar_target,omitempty"`
	TodoTarget     string     `json:"todo_target,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// BatchCounter reports how many active batches a room currently holds.
// The batch service implements this; the registry uses it to refuse
// unregistering a room that still has live plants.
type BatchCounter interface {
	ActiveCount(roomID string) int
}

// Registry owns the room set and its on-disk snapshot.
type Registry struct {
	mu      sync.RWMutex
	rooms   map[string]*Room
	path    string
	log     logx.Logger
	batches BatchCounter // optional
}

// New loads (or initializes) the registry snapshot at path.
func New(path string, log logx.Logger) (*Registry, error) {
	r := &Registry{
		rooms: map[string]*Room{},
		path:  path,
		log:   log,
	}
	if err := r.load(); err != nil {
		return nil, err
	}
	return r, nil
}

// SetBatchCounter wires the batch service in after construction (the two
// services reference each other).
func (r *Registry) SetBatchCounter(bc BatchCounter) {
	r.mu.Lock()
	r.batches = bc
	r.mu.Unlock()
}

// NormalizeID lowercases a room identifier and collapses whitespace to
// underscores, so "Flower 1" and "flower_1" address the same room.
func NormalizeID(id string) string {
	id = strings.TrimSpace(strings.ToLower(id))
	return strings.Join(strings.Fields(id), "_")
}

// Register adds a room. Type must be "flower" or "veg". A flower room may be
// registered with a start date already known; veg rooms ignore it.
func (r *Registry) Register(room Room) (*Room, error) {
	room.ID = NormalizeID(room.ID)
	if room.ID == "" {
		return nil, fmt.Errorf("register: empty room id")
	}
	if room.Type != protocol.RoomTypeFlower && room.Type != protocol.RoomTypeVeg {
		return nil, fmt.Errorf("register %s: %w: %q", room.ID, ErrInvalidType, room.Type)
	}
	if room.Name == "" {
		room.Name = room.ID
	}
	if room.Type == protocol.RoomTypeVeg {
		room.StartDate = nil
	}
	now := time.Now()
	room.CreatedAt = now
	room.UpdatedAt = now

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rooms[room.ID]; ok {
		return nil, fmt.Errorf("register %s: %w", room.ID, ErrExists)
	}
	r.rooms[room.ID] = &room
	if err := r.saveLocked(); err != nil {
		delete(r.rooms, room.ID)
		return nil, err
	}
	r.log.Info("room registered",
		logx.String("room", room.ID),
		logx.String("type", room.Type),
	)
	cp := room
	return &cp, nil
}

// Unregister removes a room. A veg room with active batches is refused so
// live plants can't be orphaned.
func (r *Registry) Unregister(id string) error {
	id = NormalizeID(id)

	r.mu.Lock()
	defer r.mu.Unlock()
	room, ok := r.rooms[id]
	if !ok {
		return fmt.Errorf("unregister %s: %w", id, ErrNotFound)
	}
	if room.Type == protocol.RoomTypeVeg && r.batches != nil {
		if n := r.batches.ActiveCount(id); n > 0 {
			return fmt.Errorf("unregister %s: %w (%d)", id, ErrActiveBatches, n)
		}
	}
	delete(r.rooms, id)
	if err := r.saveLocked(); err != nil {
		r.rooms[id] = room
		return err
	}
	r.log.Info("room unregistered", logx.String("room", id))
	return nil
}

// SetStartDate sets (or resets) a flower room's cycle start date.
func (r *Registry) SetStartDate(id string, start time.Time) (*Room, error) {
	id = NormalizeID(id)

	r.mu.Lock()
	defer r.mu.Unlock()
	room, ok := r.rooms[id]
	if !ok {
		return nil, fmt.Errorf("set start date %s: %w", id, ErrNotFound)
	}
	if room.Type != protocol.RoomTypeFlower {
		return nil, fmt.Errorf("set start date %s: %w", id, ErrWrongType)
	}
	prev := room.StartDate
	s := start
	room.StartDate = &s
	room.UpdatedAt = time.Now()
	if err := r.saveLocked(); err != nil {
		room.StartDate = prev
		return nil, err
	}
	r.log.Info("cycle start date set",
		logx.String("room", id),
		logx.Date("start", start),
	)
	cp := *room
	return &cp, nil
}

// SetTargets updates a room's calendar and to-do destinations. Empty values
// leave the existing targets unchanged.
func (r *Registry) SetTargets(id, calendar, todo string) (*Room, error) {
	id = NormalizeID(id)

	r.mu.Lock()
	defer r.mu.Unlock()
	room, ok := r.rooms[id]
	if !ok {
		return nil, fmt.Errorf("set targets %s: %w", id, ErrNotFound)
	}
	if calendar != "" {
		room.CalendarTarget = calendar
	}
	if todo != "" {
		room.TodoTarget = todo
	}
	room.UpdatedAt = time.Now()
	if err := r.saveLocked(); err != nil {
		return nil, err
	}
	cp := *room
	return &cp, nil
}

// Get returns a copy of the room.
func (r *Registry) Get(id string) (*Room, error) {
	id = NormalizeID(id)
	r.mu.RLock()
	defer r.mu.RUnlock()
	room, ok := r.rooms[id]
	if !ok {
		return nil, fmt.Errorf("get %s: %w", id, ErrNotFound)
	}
	cp := *room
	return &cp, nil
}

// List returns copies of all rooms, sorted by ID.
func (r *Registry) List() []Room {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Room, 0, len(r.rooms))
	for _, room := range r.rooms {
		out = append(out, *room)
	}
	sortRooms(out)
	return out
}

func sortRooms(rooms []Room) {
	for i := 1; i < len(rooms); i++ {
		for j := i; j > 0 && rooms[j].ID < rooms[j-1].ID; j-- {
			rooms[j], rooms[j-1] = rooms[j-1], rooms[j]
		}
	}
}

type snapshot struct {
	Rooms []Room `json:"rooms"`
}

func (r *Registry) load() error {
	data, err := os.ReadFile(r.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("registry load: %w", err)
	}
	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("registry load %s: %w", r.path, err)
	}
	for i := range snap.Rooms {
		room := snap.Rooms[i]
		r.rooms[room.ID] = &room
	}
	return nil
}

// saveLocked writes the snapshot via temp file + rename. Callers hold r.mu.
func (r *Registry) saveLocked() error {
	snap := snapshot{Rooms: make([]Room, 0, len(r.rooms))}
	for _, room := range r.rooms {
		snap.Rooms = append(snap.Rooms, *room)
	}
	sortRooms(snap.Rooms)

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("registry save: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		return fmt.Errorf("registry save: %w", err)
	}
	tmp := r.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("registry save: %w", err)
	}
	if err := os.Rename(tmp, r.path); err != nil {
		return fmt.Errorf("registry save: %w", err)
	}
	return nil
}
