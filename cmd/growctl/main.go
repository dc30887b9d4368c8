// growctl is the operator CLI. It works directly against the same data
// directory as the daemon: registry snapshot, batch files and journal.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"growroomd/internal/app"
	"growroomd/internal/config"
	"growroomd/pkg/logx"
)

var configPath string

func main() {
	root := &cobra.Command{
		Use:           "growctl",
		Short:         "Manage grow rooms, batches and protocol tasks",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "./config.yaml", "path to config file")

	root.AddCommand(
		roomsCmd(),
		registerCmd(),
		setTargetsCmd(),
		unregisterCmd(),
		setStartDateCmd(),
		generateTasksCmd(),
		statusCmd(),
		addBatchCmd(),
		updateBatchCmd(),
		moveToFlowerCmd(),
		listBatchesCmd(),
		journalCmd(),
		announceCmd(),
		feedCmd(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "growctl:", err)
		os.Exit(1)
	}
}

// withApp loads config, builds the service graph, runs fn and flushes.
func withApp(fn func(a *app.App) error) error {
	mgr := config.NewManager(configPath)
	cfg, err := mgr.Load()
	if err != nil {
		return fmt.Errorf("load config %s: %w", configPath, err)
	}
	// CLI runs log warnings only; command output goes to stdout.
	log := logx.NewConsole("WARN")

	a, err := app.New(cfg, log)
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(a)
}

func parseDate(s string) (time.Time, error) {
	if s == "" || s == "today" {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("bad date %q (want YYYY-MM-DD)", s)
	}
	return t, nil
}
