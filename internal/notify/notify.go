// Package notify forwards scheduler events to a Telegram chat. It consumes
// the event bus, renders each event as a short text message, and sends
// through a rate limiter so a burst of lifecycle events cannot trip
// Telegram's flood control.
package notify

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
	tele "gopkg.in/telebot.v4"

	"growroomd/internal/eventbus"
	"growroomd/pkg/logx"
)

// Config for the notifier.
type Config struct {
	Token      string
	ChatID     int64
	RatePerSec int // default 1
	QueueSize  int // default 64
}

// Sender abstracts the Telegram client so tests can capture messages.
type Sender interface {
	Send(to tele.Recipient, what any, opts ...any) (*tele.Message, error)
}

// Service is the bus-to-Telegram bridge.
type Service struct {
	cfg    Config
	bot    Sender
	bus    eventbus.Bus
	log    logx.Logger
	limit  *rate.Limiter
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New builds the notifier. The Telegram client is created lazily in Start
// so construction never blocks on the network.
func New(cfg Config, bus eventbus.Bus, log logx.Logger) *Service {
	if cfg.RatePerSec <= 0 {
		cfg.RatePerSec = 1
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 64
	}
	return &Service{
		cfg:   cfg,
		bus:   bus,
		log:   log,
		limit: rate.NewLimiter(rate.Limit(cfg.RatePerSec), cfg.RatePerSec),
	}
}

// SetSender injects a client (tests, or a pre-built bot).
func (s *Service) SetSender(b Sender) { s.bot = b }

// Start connects to Telegram (unless a Sender was injected) and begins
// consuming the bus. Non-blocking.
func (s *Service) Start(ctx context.Context) error {
	if s.bot == nil {
		b, err := tele.NewBot(tele.Settings{
			Token:  s.cfg.Token,
			Poller: &tele.LongPoller{Timeout: 30 * time.Second},
		})
		if err != nil {
			return fmt.Errorf("notify: telegram init: %w", err)
		}
		s.bot = b
	}

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	ch, unsub := s.bus.Subscribe(s.cfg.QueueSize)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer unsub()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-ch:
				if !ok {
					return
				}
				s.deliver(ctx, ev)
			}
		}
	}()
	s.log.Info("telegram notifier started", logx.Int64("chat_id", s.cfg.ChatID))
	return nil
}

// Stop halts consumption and waits for the worker.
func (s *Service) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
}

func (s *Service) deliver(ctx context.Context, ev eventbus.Event) {
	text := Render(ev)
	if text == "" {
		return
	}
	if err := s.limit.Wait(ctx); err != nil {
		return
	}
	_, err := s.bot.Send(tele.ChatID(s.cfg.ChatID), text, tele.ModeMarkdown)
	if err != nil {
		s.log.Warn("telegram send failed",
			logx.String("event", ev.Type),
			logx.Err(err),
		)
	}
}

// Render turns a bus event into message text. Unknown event types render
// empty and are skipped.
func Render(ev eventbus.Event) string {
	d := ev.Data
	switch ev.Type {
	case eventbus.TypeBatchAdded:
		return fmt.Sprintf("🌱 *Batch added* `%v` in `%v`\nStage: %v | Plants: %v",
			d["batch"], d["room"], d["stage"], d["plant_count"])
	case eventbus.TypeStageChanged:
		return fmt.Sprintf("🔁 *Stage change* `%v`: %v → %v", d["batch"], d["from"], d["to"])
	case eventbus.TypeBatchMoved:
		return fmt.Sprintf("🌸 *Moved to flower* `%v`: %v → %v\nCycle starts %v",
			d["batch"], d["veg_room"], d["flower_room"], d["start_date"])
	case eventbus.TypeTaskToday:
		var b strings.Builder
		fmt.Fprintf(&b, "📋 *Today:* %v", d["summary"])
		extra := make([]string, 0, 3)
		if v, ok := d["phase"]; ok {
			extra = append(extra, fmt.Sprintf("phase %v", v))
		}
		if v, ok := d["stage"]; ok {
			extra = append(extra, fmt.Sprintf("stage %v", v))
		}
		if v, ok := d["ec"]; ok {
			extra = append(extra, fmt.Sprintf("EC %v", v))
		}
		if v, ok := d["dryback"]; ok {
			extra = append(extra, fmt.Sprintf("dryback %v", v))
		}
		if len(extra) > 0 {
			b.WriteString("\n_" + strings.Join(extra, " | ") + "_")
		}
		return b.String()
	case eventbus.TypeBatchesList:
		// Dashboard event; too chatty for chat unless small.
		batches, _ := d["batches"].([]map[string]any)
		if len(batches) == 0 {
			return ""
		}
		lines := make([]string, 0, len(batches))
		for _, b := range batches {
			lines = append(lines, fmt.Sprintf("• `%v` %v (day %v)", b["batch"], b["stage"], b["protocol_day"]))
		}
		sort.Strings(lines)
		return fmt.Sprintf("🪴 *Batches in* `%v`:\n%s", d["room"], strings.Join(lines, "\n"))
	default:
		return ""
	}
}
