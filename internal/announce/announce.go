// Package announce runs the daily protocol digest: every morning it checks
// each room (and each active veg batch) against the protocol tables and
// publishes a task_today event for anything due, so chat notifiers and
// dashboards surface the day's work without polling.
package announce

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"growroomd/internal/batch"
	"growroomd/internal/eventbus"
	"growroomd/internal/phase"
	"growroomd/internal/protocol"
	"growroomd/internal/registry"
	"growroomd/internal/taskgen"
	"growroomd/pkg/logx"
)

// Service schedules the daily announcement.
type Service struct {
	rooms   *registry.Registry
	batches *batch.Service
	bus     eventbus.Bus
	log     logx.Logger

	cron *cron.Cron
	now  func() time.Time
}

func New(rooms *registry.Registry, batches *batch.Service, bus eventbus.Bus, log logx.Logger) *Service {
	return &Service{
		rooms:   rooms,
		batches: batches,
		bus:     bus,
		log:     log,
		now:     time.Now,
	}
}

// Start schedules the daily run at hhmm ("HH:MM") in tz (IANA name, empty
// means local time). Calling Start again reschedules.
func (s *Service) Start(hhmm, tz string) error {
	spec, err := parseHHMM(hhmm)
	if err != nil {
		return err
	}
	loc := time.Local
	if tz != "" {
		loc, err = time.LoadLocation(tz)
		if err != nil {
			return fmt.Errorf("announce: bad timezone %q: %w", tz, err)
		}
	}

	s.Stop()
	c := cron.New(cron.WithLocation(loc))
	if _, err := c.AddFunc(spec, s.Run); err != nil {
		return fmt.Errorf("announce: schedule %q: %w", spec, err)
	}
	c.Start()
	s.cron = c
	s.log.Info("daily announce scheduled",
		logx.String("time", hhmm),
		logx.String("tz", loc.String()),
	)
	return nil
}

// Stop halts the schedule. Safe to call when never started.
func (s *Service) Stop() {
	if s.cron != nil {
		s.cron.Stop()
		s.cron = nil
	}
}

// Run performs one announcement pass immediately. Exposed so the CLI can
// trigger it on demand.
func (s *Service) Run() {
	today := s.now()
	published := 0
	for _, room := range s.rooms.List() {
		switch room.Type {
		case protocol.RoomTypeFlower:
			published += s.announceFlower(room, today)
		case protocol.RoomTypeVeg:
			published += s.announceVeg(room, today)
		}
	}
	s.log.Info("daily announce complete", logx.Int("tasks", published))
}

func (s *Service) announceFlower(room registry.Room, today time.Time) int {
	if room.StartDate == nil {
		return 0
	}
	day, ok := phase.CurrentDay(*room.StartDate, today)
	if !ok {
		return 0
	}
	task, due := protocol.FlowerTable[day]
	if !due {
		return 0
	}
	ph, ec, dryback := phase.ForDay(day)
	s.bus.Publish(eventbus.Event{
		Type: eventbus.TypeTaskToday,
		Data: map[string]any{
			"room":     room.ID,
			"day":      day,
			"summary":  taskgen.Summary(room.ID, "", day, task.Title),
			"phase":    ph,
			"ec":       ec,
			"dryback":  dryback,
			"priority": string(task.Priority),
		},
	})
	return 1
}

func (s *Service) announceVeg(room registry.Room, today time.Time) int {
	n := 0
	for _, v := range s.batches.List(room.ID, true) {
		if v.Stage == protocol.StageMother {
			continue
		}
		day, ok := phase.ProtocolDay(v.StartDate, today, v.Stage)
		if !ok {
			continue
		}
		task, due := protocol.VegTable[day]
		if !due {
			continue
		}
		s.bus.Publish(eventbus.Event{
			Type: eventbus.TypeTaskToday,
			Data: map[string]any{
				"room":     room.ID,
				"batch":    v.BatchID,
				"day":      day,
				"summary":  taskgen.Summary(room.ID, v.BatchID, day, task.Title),
				"stage":    v.Stage,
				"ec":       protocol.StageEC(v.Stage),
				"priority": string(task.Priority),
			},
		})
		n++
	}
	return n
}

// parseHHMM converts "HH:MM" to a daily cron spec.
func parseHHMM(s string) (string, error) {
	if s == "" {
		s = "07:00"
	}
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return "", fmt.Errorf("announce: bad time %q (want HH:MM)", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return "", fmt.Errorf("announce: bad hour in %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return "", fmt.Errorf("announce: bad minute in %q", s)
	}
	return fmt.Sprintf("%d %d * * *", m, h), nil
}
