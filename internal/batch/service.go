// Package batch implements the veg-room batch pipeline: groups of plants
// that move through Clone → PreVeg → EarlyVeg → LateVeg and eventually hand
// off to a flower room, flipping that room's 84-day cycle.
package batch

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"growroomd/internal/eventbus"
	"growroomd/internal/phase"
	"growroomd/internal/protocol"
	"growroomd/internal/registry"
	"growroomd/internal/taskgen"
	"growroomd/pkg/logx"
)

var (
	ErrBatchNotFound = errors.New("batch not found")
	ErrBatchExists   = errors.New("batch already exists")
	ErrBatchRetired  = errors.New("batch is not active")
	ErrInvalidStage  = errors.New("invalid stage")
	ErrMotherLocked  = errors.New("mother is only assignable at creation")
	ErrNotVegRoom    = errors.New("batches live in veg rooms")
	ErrNotFlowerRoom = errors.New("destination must be a flower room")
)

// Policy carries the task-generation knobs sourced from config.
type Policy struct {
	// VegSkipPast drops veg protocol days already behind today's date.
	VegSkipPast bool
	// FlowerSkipPast does the same for the flower sweep run on a move.
	FlowerSkipPast bool
}

// DefaultPolicy matches the common case: veg batches only want the days
// still ahead of them, flower rooms want the full cycle visible.
func DefaultPolicy() Policy {
	return Policy{VegSkipPast: true, FlowerSkipPast: false}
}

// Service owns batch lifecycle and the veg side of task generation.
type Service struct {
	store  *Store
	rooms  *registry.Registry
	gen    *taskgen.Generator
	bus    eventbus.Bus
	log    logx.Logger
	policy Policy

	// now is swappable in tests.
	now func() time.Time
}

func NewService(store *Store, rooms *registry.Registry, gen *taskgen.Generator, bus eventbus.Bus, log logx.Logger) *Service {
	return &Service{
		store:  store,
		rooms:  rooms,
		gen:    gen,
		bus:    bus,
		log:    log,
		policy: DefaultPolicy(),
		now:    time.Now,
	}
}

// SetPolicy replaces the generation policy. Called at wiring time and on
// config reload, before any concurrent use.
func (s *Service) SetPolicy(p Policy) { s.policy = p }

// AddRequest creates a batch in a veg room. BatchID is optional: when empty
// the id is derived from the name and the creation timestamp.
type AddRequest struct {
	RoomID          string
	BatchID         string
	Name            string
	StartDate       time.Time
	Stage           string
	PlantCount      int
	Strain          string
	DestinationRoom string
	Notes           string
}

// Add registers a new batch and generates its remaining veg protocol tasks.
// Task generation is best-effort; the batch is committed regardless.
func (s *Service) Add(ctx context.Context, req AddRequest) (Batch, error) {
	room, err := s.rooms.Get(req.RoomID)
	if err != nil {
		return Batch{}, err
	}
	if room.Type != protocol.RoomTypeVeg {
		return Batch{}, fmt.Errorf("add batch to %s: %w", room.ID, ErrNotVegRoom)
	}
	if req.Stage == "" {
		req.Stage = protocol.StageClone
	}
	if !protocol.ValidStage(req.Stage) {
		return Batch{}, fmt.Errorf("add batch: %w: %q", ErrInvalidStage, req.Stage)
	}
	now := s.now()
	id := normalizeBatchID(req.BatchID)
	if id == "" {
		base := normalizeBatchID(req.Name)
		if base == "" {
			return Batch{}, fmt.Errorf("add batch: empty batch name")
		}
		id = base + "_" + now.Format("20060102_150405")
	}
	if _, ok := s.store.Get(room.ID, id); ok {
		return Batch{}, fmt.Errorf("add batch %s: %w", id, ErrBatchExists)
	}

	start := req.StartDate
	if start.IsZero() {
		start = now
	}
	b := Batch{
		BatchID:         id,
		Name:            orDefault(req.Name, id),
		StartDate:       start,
		Stage:           req.Stage,
		PlantCount:      req.PlantCount,
		Strain:          req.Strain,
		DestinationRoom: registry.NormalizeID(req.DestinationRoom),
		Notes:           req.Notes,
		Active:          true,
		CreatedAt:       now,
		UpdatedAt:       now,
		StageHistory: []StageChange{
			{Stage: req.Stage, Date: now, Note: "created"},
		},
	}
	s.store.put(room.ID, b)

	// Mother batches get no scheduled protocol: they are maintained, not
	// progressed. Everything else picks up the veg table at its stage row.
	if b.Stage != protocol.StageMother {
		s.gen.Generate(ctx, taskgen.Request{
			RoomID:         room.ID,
			BatchID:        b.BatchID,
			Start:          b.StartDate,
			Offset:         protocol.StageOffsets[b.Stage],
			Table:          protocol.VegTable,
			ContextNote:    batchContext(b),
			CalendarTarget: room.CalendarTarget,
			TodoTarget:     room.TodoTarget,
		}, taskgen.Options{SkipPast: s.policy.VegSkipPast, Today: now})
	}

	s.bus.Publish(eventbus.Event{
		Type: eventbus.TypeBatchAdded,
		Data: map[string]any{
			"room":        room.ID,
			"batch":       b.BatchID,
			"name":        b.Name,
			"stage":       b.Stage,
			"plant_count": b.PlantCount,
			"strain":      b.Strain,
		},
	})
	s.log.Info("batch added",
		logx.String("room", room.ID),
		logx.String("batch", b.BatchID),
		logx.String("stage", b.Stage),
		logx.Int("plants", b.PlantCount),
	)
	return b, nil
}

// UpdateRequest carries partial batch edits. Nil pointers leave the field
// untouched.
type UpdateRequest struct {
	RoomID  string
	BatchID string

	Name            *string
	Stage           *string
	PlantCount      *int
	Strain          *string
	DestinationRoom *string
	Notes           *string
	Active          *bool
	StageNote       string
}

// Update edits a batch in place. Retired batches stay editable: notes and
// counts get corrected after the fact, and Active=false retires a batch
// without a flower hand-off. A stage change appends to the audit trail
// and publishes a stage_changed event; it deliberately does NOT regenerate
// tasks — the stage offset math already keeps the table aligned.
func (s *Service) Update(ctx context.Context, req UpdateRequest) (Batch, error) {
	roomID := registry.NormalizeID(req.RoomID)
	id := normalizeBatchID(req.BatchID)
	b, ok := s.store.Get(roomID, id)
	if !ok {
		return Batch{}, fmt.Errorf("update %s/%s: %w", roomID, id, ErrBatchNotFound)
	}

	stageChanged := false
	prevStage := b.Stage
	if req.Stage != nil && *req.Stage != b.Stage {
		if !protocol.ValidStage(*req.Stage) {
			return Batch{}, fmt.Errorf("update %s: %w: %q", id, ErrInvalidStage, *req.Stage)
		}
		if *req.Stage == protocol.StageMother {
			return Batch{}, fmt.Errorf("update %s: %w", id, ErrMotherLocked)
		}
		b.Stage = *req.Stage
		stageChanged = true
	}
	if req.Name != nil {
		b.Name = *req.Name
	}
	if req.PlantCount != nil {
		b.PlantCount = *req.PlantCount
	}
	if req.Strain != nil {
		b.Strain = *req.Strain
	}
	if req.DestinationRoom != nil {
		b.DestinationRoom = registry.NormalizeID(*req.DestinationRoom)
	}
	if req.Notes != nil {
		b.Notes = *req.Notes
	}
	if req.Active != nil {
		b.Active = *req.Active
	}

	now := s.now()
	b.UpdatedAt = now
	if stageChanged {
		b.StageHistory = append(b.StageHistory, StageChange{
			Stage: b.Stage,
			Date:  now,
			Note:  req.StageNote,
		})
	}
	s.store.put(roomID, b)

	if stageChanged {
		s.bus.Publish(eventbus.Event{
			Type: eventbus.TypeStageChanged,
			Data: map[string]any{
				"room":  roomID,
				"batch": b.BatchID,
				"from":  prevStage,
				"to":    b.Stage,
			},
		})
		s.log.Info("batch stage changed",
			logx.String("room", roomID),
			logx.String("batch", b.BatchID),
			logx.String("from", prevStage),
			logx.String("to", b.Stage),
		)
	}
	return b, nil
}

// MoveToFlower retires a veg batch and flips its destination flower room:
// the batch is deactivated, the flower room's start date is set, and the
// full 84-day flower protocol is generated.
//
// The deactivation commits first. If setting the start date or generating
// tasks fails afterwards, the batch stays retired and the failure is
// logged and returned — the operator re-runs the move, which tolerates an
// already-retired batch and simply repeats the flower-room steps.
func (s *Service) MoveToFlower(ctx context.Context, vegRoomID, batchID, flowerRoomID string, start time.Time) (Batch, error) {
	vegRoomID = registry.NormalizeID(vegRoomID)
	batchID = normalizeBatchID(batchID)
	b, ok := s.store.Get(vegRoomID, batchID)
	if !ok {
		return Batch{}, fmt.Errorf("move %s/%s: %w", vegRoomID, batchID, ErrBatchNotFound)
	}

	if flowerRoomID == "" {
		flowerRoomID = b.DestinationRoom
	}
	flower, err := s.rooms.Get(flowerRoomID)
	if err != nil {
		return Batch{}, err
	}
	if flower.Type != protocol.RoomTypeFlower {
		return Batch{}, fmt.Errorf("move %s: %w: %s", batchID, ErrNotFlowerRoom, flower.ID)
	}

	now := s.now()
	if start.IsZero() {
		start = now
	}

	// Point of no return: the batch leaves the veg pipeline here. A
	// re-run on an already-retired batch skips straight to the flower
	// room steps without stacking a second history entry.
	if b.Active {
		b.Active = false
		b.UpdatedAt = now
		b.StageHistory = append(b.StageHistory, StageChange{
			Stage: b.Stage,
			Date:  now,
			Note:  "Moved to Flower (" + flower.ID + ")",
		})
		s.store.put(vegRoomID, b)
	}

	var moveErr error
	if _, err := s.rooms.SetStartDate(flower.ID, start); err != nil {
		s.log.Error("move committed but start date failed",
			logx.String("batch", batchID),
			logx.String("flower_room", flower.ID),
			logx.Err(err),
		)
		moveErr = err
	} else {
		s.gen.Generate(ctx, taskgen.Request{
			RoomID:         flower.ID,
			Start:          start,
			Table:          protocol.FlowerTable,
			CalendarTarget: flower.CalendarTarget,
			TodoTarget:     flower.TodoTarget,
		}, taskgen.Options{SkipPast: s.policy.FlowerSkipPast, Today: now})
	}

	s.bus.Publish(eventbus.Event{
		Type: eventbus.TypeBatchMoved,
		Data: map[string]any{
			"veg_room":    vegRoomID,
			"batch":       b.BatchID,
			"flower_room": flower.ID,
			"start_date":  start.Format("2006-01-02"),
			"plant_count": b.PlantCount,
		},
	})
	s.log.Info("batch moved to flower",
		logx.String("batch", b.BatchID),
		logx.String("from", vegRoomID),
		logx.String("to", flower.ID),
		logx.Date("start", start),
	)
	return b, moveErr
}

// View is a batch decorated with its live protocol position.
type View struct {
	Batch
	ProtocolDay int     `json:"protocol_day"`
	StageEC     float64 `json:"stage_ec"`
}

// List returns a room's batches with protocol positions and publishes a
// batches_list event for downstream dashboards.
func (s *Service) List(roomID string, activeOnly bool) []View {
	roomID = registry.NormalizeID(roomID)
	batches := s.store.List(roomID, activeOnly)
	now := s.now()

	views := make([]View, 0, len(batches))
	summaries := make([]map[string]any, 0, len(batches))
	for _, b := range batches {
		day, _ := phase.ProtocolDay(b.StartDate, now, b.Stage)
		views = append(views, View{Batch: b, ProtocolDay: day, StageEC: protocol.StageEC(b.Stage)})
		summaries = append(summaries, map[string]any{
			"batch":        b.BatchID,
			"stage":        b.Stage,
			"protocol_day": day,
			"plant_count":  b.PlantCount,
			"active":       b.Active,
		})
	}
	s.bus.Publish(eventbus.Event{
		Type: eventbus.TypeBatchesList,
		Data: map[string]any{
			"room":    roomID,
			"count":   len(views),
			"batches": summaries,
		},
	})
	return views
}

// Get returns one batch with its protocol position.
func (s *Service) Get(roomID, batchID string) (View, error) {
	roomID = registry.NormalizeID(roomID)
	batchID = normalizeBatchID(batchID)
	b, ok := s.store.Get(roomID, batchID)
	if !ok {
		return View{}, fmt.Errorf("get %s/%s: %w", roomID, batchID, ErrBatchNotFound)
	}
	day, _ := phase.ProtocolDay(b.StartDate, s.now(), b.Stage)
	return View{Batch: b, ProtocolDay: day, StageEC: protocol.StageEC(b.Stage)}, nil
}

// GenerateTasks re-runs veg task generation for one batch under the current
// policy. Used after a target change or an external-surface wipe.
func (s *Service) GenerateTasks(ctx context.Context, roomID, batchID string) (taskgen.Result, error) {
	room, err := s.rooms.Get(roomID)
	if err != nil {
		return taskgen.Result{}, err
	}
	b, ok := s.store.Get(room.ID, normalizeBatchID(batchID))
	if !ok {
		return taskgen.Result{}, fmt.Errorf("generate %s/%s: %w", room.ID, batchID, ErrBatchNotFound)
	}
	if !b.Active {
		return taskgen.Result{}, fmt.Errorf("generate %s: %w", b.BatchID, ErrBatchRetired)
	}
	res := s.gen.Generate(ctx, taskgen.Request{
		RoomID:         room.ID,
		BatchID:        b.BatchID,
		Start:          b.StartDate,
		Offset:         protocol.StageOffsets[b.Stage],
		Table:          protocol.VegTable,
		ContextNote:    batchContext(b),
		CalendarTarget: room.CalendarTarget,
		TodoTarget:     room.TodoTarget,
	}, taskgen.Options{SkipPast: s.policy.VegSkipPast, Today: s.now()})
	return res, nil
}

// batchContext is the note prepended to every generated entry body so
// calendar and to-do items stay attributable when batches run in parallel.
func batchContext(b Batch) string {
	if b.Strain != "" {
		return fmt.Sprintf("Batch %s (%s)", b.Name, b.Strain)
	}
	return "Batch " + b.Name
}

func normalizeBatchID(id string) string {
	id = strings.TrimSpace(strings.ToLower(id))
	return strings.Join(strings.Fields(id), "_")
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
