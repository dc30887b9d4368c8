// Package extsched defines the external scheduling collaborators the task
// generator writes into: a calendar surface and a to-do surface. The daemon
// ships a log-only implementation; real backends (CalDAV, Google Calendar,
// home-automation bridges) plug in behind the same two interfaces.
package extsched

import (
	"context"
	"time"

	"growroomd/pkg/logx"
)

// Event is a calendar entry. AllDay events carry only Date; timed events
// carry Start and End.
type Event struct {
	Target      string
	Summary     string
	Description string
	AllDay      bool
	Date        time.Time
	Start       time.Time
	End         time.Time
}

// Item is a to-do entry with an optional due date.
type Item struct {
	Target      string
	Summary     string
	Description string
	Due         time.Time
	Priority    string
}

// Calendar accepts protocol events. Implementations that cannot represent
// all-day events should fail CreateEvent for them; the generator retries
// with a timed fallback.
type Calendar interface {
	CreateEvent(ctx context.Context, ev Event) error
}

// Todo accepts protocol checklist items.
type Todo interface {
	AddItem(ctx context.Context, it Item) error
}

// LogCalendar records events to the log instead of an external service.
// Useful in dry runs and as the default when no backend is configured.
type LogCalendar struct {
	Log logx.Logger
}

func (c LogCalendar) CreateEvent(_ context.Context, ev Event) error {
	if ev.AllDay {
		c.Log.Info("calendar event (all-day)",
			logx.String("target", ev.Target),
			logx.String("summary", ev.Summary),
			logx.Date("date", ev.Date),
		)
		return nil
	}
	c.Log.Info("calendar event (timed)",
		logx.String("target", ev.Target),
		logx.String("summary", ev.Summary),
		logx.Time("start", ev.Start),
		logx.Time("end", ev.End),
	)
	return nil
}

// LogTodo records to-do items to the log instead of an external service.
type LogTodo struct {
	Log logx.Logger
}

func (t LogTodo) AddItem(_ context.Context, it Item) error {
	t.Log.Info("todo item",
		logx.String("target", it.Target),
		logx.String("summary", it.Summary),
		logx.Date("due", it.Due),
		logx.String("priority", it.Priority),
	)
	return nil
}
