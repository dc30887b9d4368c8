// Package app wires the scheduler's services together: registry, batch
// pipeline, task generation, journal, event bus, daily announce and the
// optional Telegram notifier. Both the daemon and the CLI build an App;
// the daemon additionally calls Run to start the long-lived pieces.
package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"growroomd/internal/announce"
	"growroomd/internal/batch"
	"growroomd/internal/config"
	"growroomd/internal/eventbus"
	"growroomd/internal/extsched"
	"growroomd/internal/journal"
	"growroomd/internal/protocol"
	"growroomd/internal/registry"
	"growroomd/internal/taskgen"
	"growroomd/pkg/logx"
)

// App holds every constructed service.
type App struct {
	Cfg *config.Config
	Log logx.Logger

	// DataDir is the resolved state directory; journal photos live under
	// DataDir/journal and exports under DataDir/exports.
	DataDir string

	Bus      eventbus.Bus
	Rooms    *registry.Registry
	Store    *batch.Store
	Batches  *batch.Service
	Gen      *taskgen.Generator
	Journal  journal.Journal
	Announce *announce.Service
	Notify   Starter
}

// Starter is what Run needs from the optional notifier.
type Starter interface {
	Start(ctx context.Context) error
	Stop()
}

// New constructs the service graph and bootstraps the data directory and
// any rooms declared in config.
func New(cfg *config.Config, log logx.Logger) (*App, error) {
	dataDir := cfg.Data.Dir
	if dataDir == "" {
		dataDir = "./data"
	}
	batchDir := filepath.Join(dataDir, "batches")
	if err := os.MkdirAll(batchDir, 0o755); err != nil {
		return nil, fmt.Errorf("app: data dir: %w", err)
	}

	bus := eventbus.New()

	rooms, err := registry.New(filepath.Join(dataDir, "rooms.json"), log.With(logx.String("svc", "registry")))
	if err != nil {
		return nil, err
	}

	store, err := batch.NewStore(batchDir, log.With(logx.String("svc", "batchstore")))
	if err != nil {
		return nil, err
	}
	rooms.SetBatchCounter(store)

	genLog := log.With(logx.String("svc", "taskgen"))
	gen := taskgen.New(
		extsched.LogCalendar{Log: genLog},
		extsched.LogTodo{Log: genLog},
		genLog,
	)

	jcfg := journal.Config{Driver: cfg.Journal.Driver, Path: cfg.Journal.Path}
	if jcfg.Path == "" {
		ext := "json"
		if jcfg.Driver == "sqlite" {
			ext = "db"
		}
		jcfg.Path = filepath.Join(dataDir, "journal."+ext)
	}
	jr, err := journal.Open(jcfg)
	if err != nil {
		return nil, err
	}

	batches := batch.NewService(store, rooms, gen, bus, log.With(logx.String("svc", "batch")))
	batches.SetPolicy(batch.Policy{
		VegSkipPast:    cfg.Tasks.VegSkipPast(),
		FlowerSkipPast: cfg.Tasks.FlowerSkipPast(),
	})
	ann := announce.New(rooms, batches, bus, log.With(logx.String("svc", "announce")))

	a := &App{
		Cfg:      cfg,
		Log:      log,
		DataDir:  dataDir,
		Bus:      bus,
		Rooms:    rooms,
		Store:    store,
		Batches:  batches,
		Gen:      gen,
		Journal:  jr,
		Announce: ann,
	}
	if err := a.bootstrapRooms(); err != nil {
		return nil, err
	}
	return a, nil
}

// bootstrapRooms registers config-declared rooms that are not in the
// snapshot yet. Existing rooms keep their persisted state.
func (a *App) bootstrapRooms() error {
	for _, rc := range a.Cfg.Rooms {
		if _, err := a.Rooms.Get(rc.ID); err == nil {
			continue
		}
		_, err := a.Rooms.Register(registry.Room{
			ID:             rc.ID,
			Name:           rc.Name,
			Type:           rc.Type,
			CalendarTarget: rc.CalendarTarget,
			TodoTarget:     rc.TodoTarget,
		})
		if err != nil && !errors.Is(err, registry.ErrExists) {
			return err
		}
	}
	return nil
}

// Run starts the long-lived daemon pieces and blocks until ctx is done.
func (a *App) Run(ctx context.Context) error {
	if a.Cfg.Announce.Enabled {
		if err := a.Announce.Start(a.Cfg.Announce.Time, a.Cfg.Announce.Timezone); err != nil {
			return err
		}
		defer a.Announce.Stop()
	}
	if a.Notify != nil {
		if err := a.Notify.Start(ctx); err != nil {
			// Notification is an outer surface; the scheduler keeps
			// running without it.
			a.Log.Error("notifier start failed", logx.Err(err))
		} else {
			defer a.Notify.Stop()
		}
	}
	<-ctx.Done()
	return nil
}

// ApplyConfig reacts to a hot reload: announce reschedule and generation
// policy. Data paths and drivers need a restart.
func (a *App) ApplyConfig(cfg *config.Config) {
	a.Cfg = cfg
	a.Batches.SetPolicy(batch.Policy{
		VegSkipPast:    cfg.Tasks.VegSkipPast(),
		FlowerSkipPast: cfg.Tasks.FlowerSkipPast(),
	})
	if cfg.Announce.Enabled {
		if err := a.Announce.Start(cfg.Announce.Time, cfg.Announce.Timezone); err != nil {
			a.Log.Warn("announce reschedule failed", logx.Err(err))
		}
	} else {
		a.Announce.Stop()
	}
}

// Close flushes and releases storage.
func (a *App) Close() error {
	var firstErr error
	if err := a.Store.Close(); err != nil {
		firstErr = err
	}
	if err := a.Journal.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}

// GenerateFlowerTasks (re)generates the 84-day protocol for a flower room.
// The room must have a start date.
func (a *App) GenerateFlowerTasks(ctx context.Context, roomID string) (taskgen.Result, error) {
	room, err := a.Rooms.Get(roomID)
	if err != nil {
		return taskgen.Result{}, err
	}
	if room.Type != protocol.RoomTypeFlower {
		return taskgen.Result{}, fmt.Errorf("generate %s: %w", room.ID, registry.ErrWrongType)
	}
	if room.StartDate == nil {
		return taskgen.Result{}, fmt.Errorf("generate %s: %w", room.ID, registry.ErrNotStarted)
	}
	res := a.Gen.Generate(ctx, taskgen.Request{
		RoomID:         room.ID,
		Start:          *room.StartDate,
		Table:          protocol.FlowerTable,
		CalendarTarget: room.CalendarTarget,
		TodoTarget:     room.TodoTarget,
	}, taskgen.Options{SkipPast: a.Cfg.Tasks.FlowerSkipPast()})
	return res, nil
}
