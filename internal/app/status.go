package app

import (
	"context"
	"time"

	"growroomd/internal/batch"
	"growroomd/internal/phase"
	"growroomd/internal/protocol"
	"growroomd/internal/registry"
)

// RoomStatus is the read-path projection for one room. Flower fields are
// populated for flower rooms, Batches for veg rooms.
type RoomStatus struct {
	Room registry.Room `json:"room"`

	Started bool                `json:"started"`
	Flower  *phase.FlowerStatus `json:"flower,omitempty"`

	// NextTaskDay/NextTask point at the next protocol entry on or after
	// the current day; zero when the table is exhausted.
	NextTaskDay int    `json:"next_task_day,omitempty"`
	NextTask    string `json:"next_task,omitempty"`

	Batches []batch.View      `json:"batches,omitempty"`
	VegEnv  *phase.EnvTargets `json:"veg_env,omitempty"`

	JournalEntries int    `json:"journal_entries"`
	LastJournal    string `json:"last_journal,omitempty"`
}

// Status builds the projection for a room at the current time.
func (a *App) Status(ctx context.Context, roomID string) (RoomStatus, error) {
	return a.statusAt(ctx, roomID, time.Now())
}

func (a *App) statusAt(ctx context.Context, roomID string, now time.Time) (RoomStatus, error) {
	room, err := a.Rooms.Get(roomID)
	if err != nil {
		return RoomStatus{}, err
	}
	st := RoomStatus{Room: *room}

	switch room.Type {
	case protocol.RoomTypeFlower:
		if room.StartDate != nil {
			if fs, ok := phase.Flower(*room.StartDate, now); ok {
				st.Started = true
				st.Flower = &fs
				if day, task, ok := protocol.FlowerTable.Next(fs.Day); ok {
					st.NextTaskDay = day
					st.NextTask = task.Title
				}
			}
		}
	case protocol.RoomTypeVeg:
		st.Batches = a.Batches.List(room.ID, true)
		st.Started = len(st.Batches) > 0
		env := phase.EnvVeg()
		st.VegEnv = &env
	}

	if n, err := a.Journal.Count(ctx, room.ID); err == nil {
		st.JournalEntries = n
	}
	if e, ok, err := a.Journal.Last(ctx, room.ID); err == nil && ok {
		st.LastJournal = e.Message
	}
	return st, nil
}
