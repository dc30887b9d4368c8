package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"growroomd/internal/batch"
	"growroomd/internal/config"
	"growroomd/internal/journal"
	"growroomd/internal/protocol"
	"growroomd/internal/registry"
	"growroomd/pkg/logx"
)

func newApp(t *testing.T) *App {
	t.Helper()
	cfg := &config.Config{
		Data: config.DataConfig{Dir: t.TempDir()},
		Rooms: []config.RoomConfig{
			{ID: "flower_1", Type: protocol.RoomTypeFlower, CalendarTarget: "cal", TodoTarget: "todo"},
			{ID: "veg_1", Type: protocol.RoomTypeVeg, CalendarTarget: "cal", TodoTarget: "todo"},
		},
	}
	a, err := New(cfg, logx.Nop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { _ = a.Close() })
	return a
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestBootstrapRooms(t *testing.T) {
	a := newApp(t)
	rooms := a.Rooms.List()
	if len(rooms) != 2 {
		t.Fatalf("rooms = %d, want 2 from config", len(rooms))
	}
	// Bootstrapping again must not duplicate or reset.
	if err := a.bootstrapRooms(); err != nil {
		t.Fatalf("re-bootstrap: %v", err)
	}
	if len(a.Rooms.List()) != 2 {
		t.Fatal("re-bootstrap changed room count")
	}
}

func TestFlowerStatusProjection(t *testing.T) {
	a := newApp(t)
	ctx := context.Background()

	st, err := a.Status(ctx, "flower_1")
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if st.Started || st.Flower != nil {
		t.Fatalf("unstarted room projected as started: %+v", st)
	}

	if _, err := a.Rooms.SetStartDate("flower_1", date(2026, 6, 1)); err != nil {
		t.Fatalf("SetStartDate: %v", err)
	}
	st, err = a.statusAt(ctx, "flower_1", date(2026, 6, 24)) // day 24
	if err != nil {
		t.Fatalf("statusAt: %v", err)
	}
	if !st.Started || st.Flower == nil {
		t.Fatal("started room projected as unstarted")
	}
	if st.Flower.Day != 24 || st.Flower.Phase != protocol.PhaseBulk {
		t.Fatalf("flower = %+v", st.Flower)
	}
	// Day 24 has no table entry; next is day 25.
	if st.NextTaskDay != 25 || st.NextTask == "" {
		t.Fatalf("next task = day %d %q", st.NextTaskDay, st.NextTask)
	}
	if st.Flower.EstimatedHarvest != date(2026, 8, 16) {
		t.Fatalf("estimated harvest = %s", st.Flower.EstimatedHarvest.Format("2006-01-02"))
	}
}

func TestVegStatusProjection(t *testing.T) {
	a := newApp(t)
	ctx := context.Background()

	if _, err := a.Batches.Add(ctx, batch.AddRequest{
		RoomID: "veg_1", BatchID: "b1", StartDate: date(2026, 6, 1), Stage: protocol.StageClone, PlantCount: 24,
	}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if _, err := a.Journal.Add(ctx, journal.Entry{Room: "veg_1", Message: "domes on"}); err != nil {
		t.Fatalf("journal: %v", err)
	}

	st, err := a.statusAt(ctx, "veg_1", date(2026, 6, 3))
	if err != nil {
		t.Fatalf("statusAt: %v", err)
	}
	if !st.Started || len(st.Batches) != 1 {
		t.Fatalf("status = %+v", st)
	}
	if st.Batches[0].ProtocolDay != 3 {
		t.Fatalf("protocol day = %d, want 3", st.Batches[0].ProtocolDay)
	}
	if st.JournalEntries != 1 || st.LastJournal != "domes on" {
		t.Fatalf("journal projection = %d %q", st.JournalEntries, st.LastJournal)
	}
}

func TestGenerateFlowerTasksPreconditions(t *testing.T) {
	a := newApp(t)
	ctx := context.Background()

	if _, err := a.GenerateFlowerTasks(ctx, "veg_1"); !errors.Is(err, registry.ErrWrongType) {
		t.Fatalf("veg room err = %v, want ErrWrongType", err)
	}
	if _, err := a.GenerateFlowerTasks(ctx, "flower_1"); !errors.Is(err, registry.ErrNotStarted) {
		t.Fatalf("unstarted room err = %v, want ErrNotStarted", err)
	}

	if _, err := a.Rooms.SetStartDate("flower_1", date(2026, 6, 1)); err != nil {
		t.Fatalf("SetStartDate: %v", err)
	}
	res, err := a.GenerateFlowerTasks(ctx, "flower_1")
	if err != nil {
		t.Fatalf("GenerateFlowerTasks: %v", err)
	}
	if res.Events != len(protocol.FlowerTable) {
		t.Fatalf("events = %d, want full table %d", res.Events, len(protocol.FlowerTable))
	}
}

func TestTransferScenario(t *testing.T) {
	a := newApp(t)
	ctx := context.Background()

	if _, err := a.Batches.Add(ctx, batch.AddRequest{
		RoomID: "veg_1", BatchID: "b1", StartDate: date(2026, 4, 15),
		Stage: protocol.StageLateVeg, DestinationRoom: "flower_1", PlantCount: 30,
	}); err != nil {
		t.Fatalf("Add: %v", err)
	}

	flip := date(2026, 6, 1)
	if _, err := a.Batches.MoveToFlower(ctx, "veg_1", "b1", "", flip); err != nil {
		t.Fatalf("MoveToFlower: %v", err)
	}

	// Veg side is empty, flower side is on day 22 three weeks later.
	veg, err := a.statusAt(ctx, "veg_1", date(2026, 6, 22))
	if err != nil {
		t.Fatalf("veg status: %v", err)
	}
	if len(veg.Batches) != 0 {
		t.Fatalf("veg still holds %d active batches", len(veg.Batches))
	}
	fl, err := a.statusAt(ctx, "flower_1", date(2026, 6, 22))
	if err != nil {
		t.Fatalf("flower status: %v", err)
	}
	if fl.Flower == nil || fl.Flower.Day != 22 || fl.Flower.Phase != protocol.PhaseBulk {
		t.Fatalf("flower = %+v", fl.Flower)
	}
}
