package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"growroomd/internal/app"
	"growroomd/internal/registry"
)

func roomsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rooms",
		Short: "List registered rooms",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(a *app.App) error {
				for _, r := range a.Rooms.List() {
					start := "-"
					if r.StartDate != nil {
						start = r.StartDate.Format("2006-01-02")
					}
					fmt.Printf("%-16s %-8s start=%-12s %s\n", r.ID, r.Type, start, r.Name)
				}
				return nil
			})
		},
	}
}

func registerCmd() *cobra.Command {
	var (
		name, roomType     string
		calTarget, todoTgt string
	)
	cmd := &cobra.Command{
		Use:   "register <room-id>",
		Short: "Register a grow room",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(a *app.App) error {
				room, err := a.Rooms.Register(registry.Room{
					ID:             args[0],
					Name:           name,
					Type:           roomType,
					CalendarTarget: calTarget,
					TodoTarget:     todoTgt,
				})
				if err != nil {
					return err
				}
				fmt.Printf("registered %s (%s)\n", room.ID, room.Type)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&roomType, "type", "flower", "room type: flower or veg")
	cmd.Flags().StringVar(&calTarget, "calendar", "", "calendar target")
	cmd.Flags().StringVar(&todoTgt, "todo", "", "to-do list target")
	return cmd
}

func setTargetsCmd() *cobra.Command {
	var calTarget, todoTgt string
	cmd := &cobra.Command{
		Use:   "set-targets <room-id>",
		Short: "Change a room's calendar and to-do destinations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(a *app.App) error {
				room, err := a.Rooms.SetTargets(args[0], calTarget, todoTgt)
				if err != nil {
					return err
				}
				fmt.Printf("%s targets: calendar=%s todo=%s\n", room.ID, room.CalendarTarget, room.TodoTarget)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&calTarget, "calendar", "", "calendar target")
	cmd.Flags().StringVar(&todoTgt, "todo", "", "to-do list target")
	return cmd
}

func unregisterCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unregister <room-id>",
		Short: "Remove a room (refused while it has active batches)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(a *app.App) error {
				if err := a.Rooms.Unregister(args[0]); err != nil {
					return err
				}
				fmt.Printf("unregistered %s\n", args[0])
				return nil
			})
		},
	}
}

func setStartDateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set-start-date <flower-room> <date>",
		Short: "Set a flower room's cycle start date (YYYY-MM-DD or 'today')",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := parseDate(args[1])
			if err != nil {
				return err
			}
			return withApp(func(a *app.App) error {
				room, err := a.Rooms.SetStartDate(args[0], start)
				if err != nil {
					return err
				}
				fmt.Printf("%s cycle starts %s\n", room.ID, start.Format("2006-01-02"))
				return nil
			})
		},
	}
}

func generateTasksCmd() *cobra.Command {
	var batchID string
	cmd := &cobra.Command{
		Use:   "generate-tasks <room-id>",
		Short: "Generate protocol tasks for a flower room or a veg batch",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(a *app.App) error {
				ctx := context.Background()
				if batchID != "" {
					r, err := a.Batches.GenerateTasks(ctx, args[0], batchID)
					if err != nil {
						return err
					}
					fmt.Printf("generated %d events, %d items (%d skipped, %d failed)\n",
						r.Events, r.Items, r.Skipped, r.Failed)
					return nil
				}
				r, err := a.GenerateFlowerTasks(ctx, args[0])
				if err != nil {
					return err
				}
				fmt.Printf("generated %d events, %d items (%d skipped, %d failed)\n",
					r.Events, r.Items, r.Skipped, r.Failed)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&batchID, "batch", "", "generate for this veg batch instead")
	return cmd
}

func statusCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "status <room-id>",
		Short: "Show a room's protocol position",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(a *app.App) error {
				st, err := a.Status(context.Background(), args[0])
				if err != nil {
					return err
				}
				if asJSON {
					enc := json.NewEncoder(os.Stdout)
					enc.SetIndent("", "  ")
					return enc.Encode(st)
				}
				printStatus(st)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "emit JSON")
	return cmd
}

func printStatus(st app.RoomStatus) {
	fmt.Printf("%s (%s) — %s\n", st.Room.ID, st.Room.Type, st.Room.Name)
	if f := st.Flower; f != nil {
		fmt.Printf("  Day %d / Week %d — %s phase (day %d of phase, %d%%)\n",
			f.Day, f.Week, f.Phase, f.DaysInPhase, f.PhaseProgress)
		fmt.Printf("  EC %.1f | dryback %s | cycle %d%%\n", f.RecommendedEC, f.TargetDryback, f.CycleProgress)
		if f.HarvestWindow {
			fmt.Printf("  HARVEST WINDOW OPEN (est. %s)\n", f.EstimatedHarvest.Format("2006-01-02"))
		} else {
			fmt.Printf("  %d days to harvest (est. %s)\n", f.DaysRemaining, f.EstimatedHarvest.Format("2006-01-02"))
		}
		if st.NextTask != "" {
			fmt.Printf("  Next: day %d — %s\n", st.NextTaskDay, st.NextTask)
		}
	} else if st.Room.Type == "flower" {
		fmt.Println("  cycle not started")
	}
	for _, b := range st.Batches {
		fmt.Printf("  batch %-12s %-10s day %-3d plants=%d\n", b.BatchID, b.Stage, b.ProtocolDay, b.PlantCount)
	}
	if st.JournalEntries > 0 {
		fmt.Printf("  journal: %d entries, last: %s\n", st.JournalEntries, st.LastJournal)
	}
}
