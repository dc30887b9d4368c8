package batch

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"growroomd/internal/eventbus"
	"growroomd/internal/extsched"
	"growroomd/internal/protocol"
	"growroomd/internal/registry"
	"growroomd/internal/taskgen"
	"growroomd/pkg/logx"
)

type captureCalendar struct{ events []extsched.Event }

func (c *captureCalendar) CreateEvent(_ context.Context, ev extsched.Event) error {
	c.events = append(c.events, ev)
	return nil
}

type captureTodo struct{ items []extsched.Item }

func (t *captureTodo) AddItem(_ context.Context, it extsched.Item) error {
	t.items = append(t.items, it)
	return nil
}

type fixture struct {
	svc   *Service
	store *Store
	rooms *registry.Registry
	bus   eventbus.Bus
	cal   *captureCalendar
	todo  *captureTodo
	now   time.Time
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dir := t.TempDir()

	rooms, err := registry.New(filepath.Join(dir, "rooms.json"), logx.Nop())
	if err != nil {
		t.Fatalf("registry: %v", err)
	}
	if _, err := rooms.Register(registry.Room{
		ID: "veg_1", Type: protocol.RoomTypeVeg,
		CalendarTarget: "cal.veg", TodoTarget: "todo.veg",
	}); err != nil {
		t.Fatalf("register veg: %v", err)
	}
	if _, err := rooms.Register(registry.Room{
		ID: "flower_1", Type: protocol.RoomTypeFlower,
		CalendarTarget: "cal.flower", TodoTarget: "todo.flower",
	}); err != nil {
		t.Fatalf("register flower: %v", err)
	}

	store, err := NewStore(filepath.Join(dir, "batches"), logx.Nop())
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	rooms.SetBatchCounter(store)

	cal := &captureCalendar{}
	todo := &captureTodo{}
	bus := eventbus.New()
	svc := NewService(store, rooms, taskgen.New(cal, todo, logx.Nop()), bus, logx.Nop())

	f := &fixture{svc: svc, store: store, rooms: rooms, bus: bus, cal: cal, todo: todo, now: date(2026, 6, 1)}
	svc.now = func() time.Time { return f.now }
	return f
}

func drain(ch <-chan eventbus.Event) []eventbus.Event {
	var out []eventbus.Event
	for {
		select {
		case ev := <-ch:
			out = append(out, ev)
		default:
			return out
		}
	}
}

func TestAddBatch(t *testing.T) {
	f := newFixture(t)
	ch, unsub := f.bus.Subscribe(16)
	defer unsub()

	b, err := f.svc.Add(context.Background(), AddRequest{
		RoomID:     "veg_1",
		BatchID:    "Batch A",
		Stage:      protocol.StageClone,
		PlantCount: 48,
		Strain:     "gelato",
	})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if b.BatchID != "batch_a" {
		t.Fatalf("batch id = %q, want batch_a", b.BatchID)
	}
	if !b.Active {
		t.Fatal("new batch not active")
	}
	if len(b.StageHistory) != 1 || b.StageHistory[0].Stage != protocol.StageClone {
		t.Fatalf("stage history = %+v", b.StageHistory)
	}

	// Clone batch starting today gets the full veg table ahead of it.
	if len(f.cal.events) != len(protocol.VegTable) {
		t.Fatalf("calendar events = %d, want %d", len(f.cal.events), len(protocol.VegTable))
	}
	if !strings.HasPrefix(f.cal.events[0].Summary, "[VEG_1:batch_a] Day 1:") {
		t.Fatalf("summary = %q", f.cal.events[0].Summary)
	}
	if !strings.HasPrefix(f.cal.events[0].Description, "Batch batch_a (gelato)\n\n") {
		t.Fatalf("event body = %q, want batch context prefix", f.cal.events[0].Description)
	}

	evs := drain(ch)
	if len(evs) != 1 || evs[0].Type != eventbus.TypeBatchAdded {
		t.Fatalf("events = %+v", evs)
	}
	if evs[0].Data["batch"] != "batch_a" {
		t.Fatalf("event payload = %+v", evs[0].Data)
	}
}

func TestAddDerivesBatchID(t *testing.T) {
	f := newFixture(t)
	b, err := f.svc.Add(context.Background(), AddRequest{
		RoomID: "veg_1", Name: "Run 42", PlantCount: 24,
	})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	// Name plus creation timestamp: "today" in the fixture is 2026-06-01.
	if want := "run_42_20260601_000000"; b.BatchID != want {
		t.Fatalf("batch id = %q, want %q", b.BatchID, want)
	}
	if b.Name != "Run 42" {
		t.Fatalf("name = %q", b.Name)
	}

	// Neither a name nor an explicit id is an error.
	if _, err := f.svc.Add(context.Background(), AddRequest{RoomID: "veg_1"}); err == nil {
		t.Fatal("expected error for nameless batch")
	}
}

func TestAddToFlowerRoomFails(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Add(context.Background(), AddRequest{RoomID: "flower_1", BatchID: "b1"})
	if !errors.Is(err, ErrNotVegRoom) {
		t.Fatalf("err = %v, want ErrNotVegRoom", err)
	}
}

func TestAddMotherSkipsSchedule(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Add(context.Background(), AddRequest{
		RoomID: "veg_1", BatchID: "moms", Stage: protocol.StageMother,
	})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if len(f.cal.events) != 0 || len(f.todo.items) != 0 {
		t.Fatalf("mother batch generated %d/%d tasks", len(f.cal.events), len(f.todo.items))
	}
}

func TestUpdateStageChange(t *testing.T) {
	f := newFixture(t)
	if _, err := f.svc.Add(context.Background(), AddRequest{RoomID: "veg_1", BatchID: "b1"}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	f.cal.events = nil
	ch, unsub := f.bus.Subscribe(16)
	defer unsub()

	stage := protocol.StagePreVeg
	b, err := f.svc.Update(context.Background(), UpdateRequest{
		RoomID: "veg_1", BatchID: "b1", Stage: &stage, StageNote: "roots solid",
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if b.Stage != protocol.StagePreVeg {
		t.Fatalf("stage = %s", b.Stage)
	}
	if len(b.StageHistory) != 2 || b.StageHistory[1].Note != "roots solid" {
		t.Fatalf("history = %+v", b.StageHistory)
	}

	// Stage changes never regenerate tasks.
	if len(f.cal.events) != 0 {
		t.Fatalf("stage change generated %d events", len(f.cal.events))
	}
	evs := drain(ch)
	if len(evs) != 1 || evs[0].Type != eventbus.TypeStageChanged {
		t.Fatalf("events = %+v", evs)
	}
	if evs[0].Data["from"] != protocol.StageClone || evs[0].Data["to"] != protocol.StagePreVeg {
		t.Fatalf("payload = %+v", evs[0].Data)
	}
}

func TestUpdateActiveFlag(t *testing.T) {
	f := newFixture(t)
	if _, err := f.svc.Add(context.Background(), AddRequest{RoomID: "veg_1", BatchID: "b1"}); err != nil {
		t.Fatalf("Add: %v", err)
	}

	// Retire without a flower hand-off.
	off := false
	b, err := f.svc.Update(context.Background(), UpdateRequest{RoomID: "veg_1", BatchID: "b1", Active: &off})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if b.Active {
		t.Fatal("batch still active after --active=false")
	}
	if f.store.ActiveCount("veg_1") != 0 {
		t.Fatal("active count nonzero after retire")
	}

	// Retired batches stay editable for after-the-fact corrections.
	notes := "lost to root rot"
	b, err = f.svc.Update(context.Background(), UpdateRequest{RoomID: "veg_1", BatchID: "b1", Notes: &notes})
	if err != nil {
		t.Fatalf("Update retired: %v", err)
	}
	if b.Notes != notes {
		t.Fatalf("notes = %q", b.Notes)
	}
}

func TestUpdateIntoMotherRejected(t *testing.T) {
	f := newFixture(t)
	if _, err := f.svc.Add(context.Background(), AddRequest{RoomID: "veg_1", BatchID: "b1"}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	stage := protocol.StageMother
	_, err := f.svc.Update(context.Background(), UpdateRequest{RoomID: "veg_1", BatchID: "b1", Stage: &stage})
	if !errors.Is(err, ErrMotherLocked) {
		t.Fatalf("err = %v, want ErrMotherLocked", err)
	}
}

func TestMoveToFlower(t *testing.T) {
	f := newFixture(t)
	if _, err := f.svc.Add(context.Background(), AddRequest{
		RoomID: "veg_1", BatchID: "b1", Stage: protocol.StageLateVeg, DestinationRoom: "flower_1",
	}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	f.cal.events = nil
	f.todo.items = nil
	ch, unsub := f.bus.Subscribe(16)
	defer unsub()

	flip := date(2026, 6, 15)
	b, err := f.svc.MoveToFlower(context.Background(), "veg_1", "b1", "", flip)
	if err != nil {
		t.Fatalf("MoveToFlower: %v", err)
	}
	if b.Active {
		t.Fatal("moved batch still active")
	}
	last := b.StageHistory[len(b.StageHistory)-1]
	if !strings.HasPrefix(last.Note, "Moved to Flower") {
		t.Fatalf("history note = %q, want Moved to Flower tag", last.Note)
	}

	// Flower room flipped.
	fl, err := f.rooms.Get("flower_1")
	if err != nil {
		t.Fatalf("Get flower: %v", err)
	}
	if fl.StartDate == nil || !fl.StartDate.Equal(flip) {
		t.Fatalf("flower start = %v, want %s", fl.StartDate, flip.Format("2006-01-02"))
	}

	// Full 84-day protocol generated against the flower room's targets.
	if len(f.cal.events) != len(protocol.FlowerTable) {
		t.Fatalf("flower events = %d, want %d", len(f.cal.events), len(protocol.FlowerTable))
	}
	if f.cal.events[0].Target != "cal.flower" {
		t.Fatalf("target = %q", f.cal.events[0].Target)
	}
	if !strings.HasPrefix(f.cal.events[0].Summary, "[FLOWER_1] Day 1:") {
		t.Fatalf("summary = %q", f.cal.events[0].Summary)
	}

	evs := drain(ch)
	if len(evs) != 1 || evs[0].Type != eventbus.TypeBatchMoved {
		t.Fatalf("events = %+v", evs)
	}

	// Veg room no longer blocks unregistration.
	if f.store.ActiveCount("veg_1") != 0 {
		t.Fatal("active count nonzero after move")
	}
}

func TestMoveToFlowerRerunSucceeds(t *testing.T) {
	f := newFixture(t)
	if _, err := f.svc.Add(context.Background(), AddRequest{
		RoomID: "veg_1", BatchID: "b1", Stage: protocol.StageLateVeg, DestinationRoom: "flower_1",
	}); err != nil {
		t.Fatalf("Add: %v", err)
	}

	flip := date(2026, 6, 15)
	b, err := f.svc.MoveToFlower(context.Background(), "veg_1", "b1", "", flip)
	if err != nil {
		t.Fatalf("first move: %v", err)
	}
	histLen := len(b.StageHistory)
	f.cal.events = nil

	// Re-running the move on the already-retired batch still succeeds:
	// the operator uses it to repeat the flower-room sweep after a
	// downstream failure.
	b2, err := f.svc.MoveToFlower(context.Background(), "veg_1", "b1", "", flip)
	if err != nil {
		t.Fatalf("second move: %v", err)
	}
	if b2.Active {
		t.Fatal("batch reactivated by re-run")
	}
	if len(b2.StageHistory) != histLen {
		t.Fatalf("history grew on re-run: %d -> %d", histLen, len(b2.StageHistory))
	}
	if len(f.cal.events) != len(protocol.FlowerTable) {
		t.Fatalf("re-run generated %d events, want %d", len(f.cal.events), len(protocol.FlowerTable))
	}
}

func TestPolicyControlsSkipPast(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// Default policy: a batch started 12 days ago only gets the veg days
	// still ahead of it.
	start := date(2026, 5, 20)
	if _, err := f.svc.Add(ctx, AddRequest{
		RoomID: "veg_1", BatchID: "b1", StartDate: start, DestinationRoom: "flower_1",
	}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if len(f.cal.events) >= len(protocol.VegTable) {
		t.Fatalf("default policy generated %d events, want past days skipped", len(f.cal.events))
	}

	// With the veg knob off a regeneration materializes the full table.
	f.svc.SetPolicy(Policy{VegSkipPast: false})
	f.cal.events = nil
	if _, err := f.svc.GenerateTasks(ctx, "veg_1", "b1"); err != nil {
		t.Fatalf("GenerateTasks: %v", err)
	}
	if len(f.cal.events) != len(protocol.VegTable) {
		t.Fatalf("events = %d, want full table %d", len(f.cal.events), len(protocol.VegTable))
	}

	// The flower knob governs the sweep run by a move.
	f.svc.SetPolicy(Policy{FlowerSkipPast: true})
	f.cal.events = nil
	if _, err := f.svc.MoveToFlower(ctx, "veg_1", "b1", "", date(2026, 5, 1)); err != nil {
		t.Fatalf("MoveToFlower: %v", err)
	}
	if len(f.cal.events) >= len(protocol.FlowerTable) {
		t.Fatalf("flower sweep generated %d events, want past days skipped", len(f.cal.events))
	}
}

func TestMoveNeedsFlowerDestination(t *testing.T) {
	f := newFixture(t)
	if _, err := f.svc.Add(context.Background(), AddRequest{RoomID: "veg_1", BatchID: "b1"}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	// No destination on the batch and none given.
	if _, err := f.svc.MoveToFlower(context.Background(), "veg_1", "b1", "", f.now); !errors.Is(err, registry.ErrNotFound) {
		t.Fatalf("err = %v, want registry.ErrNotFound", err)
	}
	// A veg room as destination is refused.
	if _, err := f.svc.MoveToFlower(context.Background(), "veg_1", "b1", "veg_1", f.now); !errors.Is(err, ErrNotFlowerRoom) {
		t.Fatalf("err = %v, want ErrNotFlowerRoom", err)
	}
}

func TestListViewsAndEvent(t *testing.T) {
	f := newFixture(t)
	start := date(2026, 5, 11) // 22 days before "today" (2026-06-01)
	if _, err := f.svc.Add(context.Background(), AddRequest{
		RoomID: "veg_1", BatchID: "b1", StartDate: start, Stage: protocol.StageEarlyVeg,
	}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	ch, unsub := f.bus.Subscribe(16)
	defer unsub()

	views := f.svc.List("veg_1", true)
	if len(views) != 1 {
		t.Fatalf("views = %d", len(views))
	}
	// 22 elapsed days + EarlyVeg offset 21 = protocol day 43.
	if views[0].ProtocolDay != 43 {
		t.Fatalf("protocol day = %d, want 43", views[0].ProtocolDay)
	}
	if views[0].StageEC != protocol.ECEarlyVeg {
		t.Fatalf("stage EC = %.1f", views[0].StageEC)
	}

	evs := drain(ch)
	if len(evs) != 1 || evs[0].Type != eventbus.TypeBatchesList {
		t.Fatalf("events = %+v", evs)
	}
	if evs[0].Data["count"] != 1 {
		t.Fatalf("payload = %+v", evs[0].Data)
	}
}

func TestStorePersistenceRoundTrip(t *testing.T) {
	f := newFixture(t)
	if _, err := f.svc.Add(context.Background(), AddRequest{RoomID: "veg_1", BatchID: "b1", PlantCount: 12}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := f.store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	store2, err := NewStore(f.store.dir, logx.Nop())
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	defer store2.Close()
	b, ok := store2.Get("veg_1", "b1")
	if !ok {
		t.Fatal("batch lost on reload")
	}
	if b.PlantCount != 12 || !b.Active {
		t.Fatalf("reloaded batch = %+v", b)
	}
}
