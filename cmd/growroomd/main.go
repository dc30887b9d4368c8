// growroomd is the cultivation scheduler daemon. It loads the config,
// bootstraps rooms, runs the daily announce schedule and the optional
// Telegram notifier, and hot-reloads configuration on file change.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/coreos/go-systemd/v22/daemon"

	"growroomd/internal/app"
	"growroomd/internal/config"
	"growroomd/internal/notify"
	"growroomd/pkg/logx"
)

func main() {
	configPath := flag.String("config", "./config.yaml", "path to config file (yaml or json)")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintln(os.Stderr, "growroomd:", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	mgr := config.NewManager(configPath)
	cfg, err := mgr.Load()
	if err != nil {
		return fmt.Errorf("load config %s: %w", configPath, err)
	}

	logSvc, log := logx.New(logx.Config{
		Level:   cfg.Logging.Level,
		Console: cfg.Logging.Console || !cfg.Logging.File.Enabled,
		File: logx.FileConfig{
			Enabled: cfg.Logging.File.Enabled,
			Path:    cfg.Logging.File.Path,
		},
	})
	defer logSvc.Close()
	mgr.SetLogger(log.With(logx.String("svc", "config")))

	a, err := app.New(cfg, log)
	if err != nil {
		return err
	}
	defer a.Close()

	if nc := cfg.Notify; nc != nil && nc.Enabled && nc.Token != "" {
		a.Notify = notify.New(notify.Config{
			Token:      nc.Token,
			ChatID:     nc.ChatID,
			RatePerSec: nc.RatePerSec,
			QueueSize:  nc.QueueSize,
		}, a.Bus, log.With(logx.String("svc", "notify")))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Hot reload: logging applies in place, announce reschedules.
	updates := mgr.Subscribe(1)
	defer mgr.Unsubscribe(updates)
	go func() {
		for next := range updates {
			if next == nil {
				continue
			}
			logSvc.Apply(logx.Config{
				Level:   next.Logging.Level,
				Console: next.Logging.Console || !next.Logging.File.Enabled,
				File: logx.FileConfig{
					Enabled: next.Logging.File.Enabled,
					Path:    next.Logging.File.Path,
				},
			})
			a.ApplyConfig(next)
		}
	}()
	go func() {
		if err := mgr.Watch(ctx); err != nil {
			log.Warn("config watch stopped", logx.Err(err))
		}
	}()

	if sent, err := daemon.SdNotify(false, daemon.SdNotifyReady); err != nil {
		log.Warn("sd_notify failed", logx.Err(err))
	} else if sent {
		log.Debug("sd_notify ready sent")
	}

	log.Info("growroomd started",
		logx.String("config", configPath),
		logx.Int("rooms", len(a.Rooms.List())),
	)
	err = a.Run(ctx)

	_, _ = daemon.SdNotify(false, daemon.SdNotifyStopping)
	log.Info("growroomd stopped")
	return err
}
