// Package taskgen turns a protocol table into dated calendar events and
// to-do items for one room or batch. Generation is best-effort: individual
// entry failures are logged and skipped so one broken day never blocks the
// rest of the cycle.
package taskgen

import (
	"context"
	"fmt"
	"strings"
	"time"

	"growroomd/internal/extsched"
	"growroomd/internal/protocol"
	"growroomd/pkg/logx"
)

// Options tune a generation run.
type Options struct {
	// SkipPast drops entries whose date is before today. Flower runs
	// default to generating the full cycle (a mid-cycle re-register wants
	// the history visible); veg runs default to skipping.
	SkipPast bool
	// Today anchors the SkipPast comparison. Zero means time.Now().
	Today time.Time
}

// Request describes one generation run.
type Request struct {
	RoomID  string
	BatchID string // empty for flower rooms
	Start   time.Time
	Offset  int // stage offset for veg batches, 0 for flower
	Table   protocol.Table

	// ContextNote is prepended to every entry body. Batch runs use it to
	// carry the batch name/strain so items from parallel batches stay
	// attributable on the external surfaces.
	ContextNote string

	CalendarTarget string
	TodoTarget     string
}

// Result counts what a run produced.
type Result struct {
	Events  int
	Items   int
	Skipped int
	Failed  int
}

// Generator writes protocol tasks into the external surfaces.
type Generator struct {
	cal  extsched.Calendar
	todo extsched.Todo
	log  logx.Logger
}

func New(cal extsched.Calendar, todo extsched.Todo, log logx.Logger) *Generator {
	return &Generator{cal: cal, todo: todo, log: log}
}

// Generate walks the table and emits one calendar event and one to-do item
// per entry. The two surfaces are independent: a calendar failure does not
// suppress the to-do item and vice versa.
func (g *Generator) Generate(ctx context.Context, req Request, opts Options) Result {
	today := opts.Today
	if today.IsZero() {
		today = time.Now()
	}
	today = dateOnly(today)
	start := dateOnly(req.Start)

	var res Result
	for _, day := range req.Table.Days() {
		if day <= req.Offset {
			continue // already behind this batch's stage
		}
		task := req.Table[day]
		// Day 1 falls on the start date itself.
		date := start.AddDate(0, 0, day-1-req.Offset)
		if opts.SkipPast && date.Before(today) {
			res.Skipped++
			continue
		}
		summary := Summary(req.RoomID, req.BatchID, day, task.Title)
		body := task.Description
		if req.ContextNote != "" {
			body = req.ContextNote + "\n\n" + body
		}

		if req.CalendarTarget != "" {
			if g.createEvent(ctx, req.CalendarTarget, summary, body, date) {
				res.Events++
			} else {
				res.Failed++
			}
		}
		if req.TodoTarget != "" {
			it := extsched.Item{
				Target:      req.TodoTarget,
				Summary:     summary,
				Description: body,
				Due:         date,
				Priority:    string(task.Priority),
			}
			if err := g.todo.AddItem(ctx, it); err != nil {
				g.log.Warn("todo item failed",
					logx.String("summary", summary),
					logx.Err(err),
				)
				res.Failed++
			} else {
				res.Items++
			}
		}
	}
	g.log.Info("task generation complete",
		logx.String("room", req.RoomID),
		logx.String("batch", req.BatchID),
		logx.Int("events", res.Events),
		logx.Int("items", res.Items),
		logx.Int("skipped", res.Skipped),
		logx.Int("failed", res.Failed),
	)
	return res
}

// createEvent tries an all-day event first and falls back to a timed
// 08:00-09:00 block for backends that reject all-day entries.
func (g *Generator) createEvent(ctx context.Context, target, summary, body string, date time.Time) bool {
	ev := extsched.Event{
		Target:      target,
		Summary:     summary,
		Description: body,
		AllDay:      true,
		Date:        date,
	}
	err := g.cal.CreateEvent(ctx, ev)
	if err == nil {
		return true
	}
	g.log.Debug("all-day event rejected, retrying timed",
		logx.String("summary", summary),
		logx.Err(err),
	)
	ev.AllDay = false
	ev.Start = date.Add(8 * time.Hour)
	ev.End = date.Add(9 * time.Hour)
	if err := g.cal.CreateEvent(ctx, ev); err != nil {
		g.log.Warn("calendar event failed",
			logx.String("summary", summary),
			logx.Err(err),
		)
		return false
	}
	return true
}

// Summary renders the task line shown on external surfaces. The room id is
// uppercased for visibility in shared calendars; batch-scoped tasks carry
// the batch id so parallel batches stay distinguishable.
func Summary(roomID, batchID string, day int, title string) string {
	if batchID != "" {
		return fmt.Sprintf("[%s:%s] Day %d: %s", strings.ToUpper(roomID), batchID, day, title)
	}
	return fmt.Sprintf("[%s] Day %d: %s", strings.ToUpper(roomID), day, title)
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
