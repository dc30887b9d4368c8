package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"growroomd/internal/app"
	"growroomd/internal/journal"
	"growroomd/internal/protocol"
)

func journalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "journal",
		Short: "Grow log entries",
	}
	cmd.AddCommand(journalAddCmd(), journalListCmd(), journalExportCmd())
	return cmd
}

func journalAddCmd() *cobra.Command {
	var (
		batchID, category, photo string
		day                      int
	)
	cmd := &cobra.Command{
		Use:   "add <room-id> <message>",
		Short: "Record a journal entry, optionally attaching a photo",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(a *app.App) error {
				stored := ""
				if photo != "" {
					p, err := journal.ImportPhoto(filepath.Join(a.DataDir, "journal"), args[0], photo, time.Now())
					if err != nil {
						return err
					}
					stored = p
				}
				e, err := a.Journal.Add(context.Background(), journal.Entry{
					Room:     args[0],
					Batch:    batchID,
					Day:      day,
					Category: category,
					Message:  args[1],
					Photo:    stored,
				})
				if err != nil {
					return err
				}
				fmt.Printf("journal entry #%d recorded\n", e.ID)
				if e.Photo != "" {
					fmt.Printf("photo stored at %s\n", e.Photo)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&batchID, "batch", "", "batch the entry concerns")
	cmd.Flags().StringVar(&category, "category", "", "entry category (feed, ipm, observation, ...)")
	cmd.Flags().IntVar(&day, "day", 0, "protocol day the entry concerns")
	cmd.Flags().StringVar(&photo, "photo", "", "local image to copy into the journal")
	return cmd
}

func journalListCmd() *cobra.Command {
	var (
		room, batchID, category string
		limit                   int
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List journal entries, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(a *app.App) error {
				entries, err := a.Journal.List(context.Background(), journal.Filter{
					Room:     room,
					Batch:    batchID,
					Category: category,
					Limit:    limit,
				})
				if err != nil {
					return err
				}
				for _, e := range entries {
					tag := e.Room
					if e.Batch != "" {
						tag += ":" + e.Batch
					}
					line := fmt.Sprintf("#%-4d %s [%s] %s", e.ID, e.Created.Format("2006-01-02 15:04"), tag, e.Message)
					if e.Photo != "" {
						line += " (photo)"
					}
					fmt.Println(line)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&room, "room", "", "filter by room")
	cmd.Flags().StringVar(&batchID, "batch", "", "filter by batch")
	cmd.Flags().StringVar(&category, "category", "", "filter by category")
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum entries (0 = all)")
	return cmd
}

func journalExportCmd() *cobra.Command {
	var (
		room, format, dir string
		toStdout          bool
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export journal entries to a timestamped CSV or JSON file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(a *app.App) error {
				ctx := context.Background()
				f := journal.Filter{Room: room}
				if toStdout {
					switch format {
					case "csv":
						return journal.ExportCSV(ctx, a.Journal, f, os.Stdout)
					case "json":
						return journal.ExportJSON(ctx, a.Journal, f, os.Stdout)
					default:
						return fmt.Errorf("unknown format %q (want csv or json)", format)
					}
				}
				if dir == "" {
					dir = filepath.Join(a.DataDir, "exports")
				}
				path, err := journal.ExportToFile(ctx, a.Journal, f, dir, format, time.Now())
				if err != nil {
					return err
				}
				fmt.Printf("exported to %s\n", path)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&room, "room", "", "filter by room")
	cmd.Flags().StringVar(&format, "format", "csv", "output format: csv or json")
	cmd.Flags().StringVar(&dir, "dir", "", "output directory (default <data>/exports)")
	cmd.Flags().BoolVar(&toStdout, "stdout", false, "write to stdout instead of a file")
	return cmd
}

func announceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "announce",
		Short: "Run the daily task announcement once, now",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(a *app.App) error {
				a.Announce.Run()
				return nil
			})
		},
	}
}

func feedCmd() *cobra.Command {
	var liters int
	cmd := &cobra.Command{
		Use:   "feed <phase>",
		Short: "Print the feed recipe for a flower phase (Stretch, Bulk, Finish)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if liters > 0 {
				out := protocol.MixForTank(args[0], liters)
				if out == "" {
					return fmt.Errorf("unknown phase %q", args[0])
				}
				fmt.Println(out)
				return nil
			}
			// No size given: print the recipe for each common tank.
			printed := false
			for _, l := range protocol.TankSizes {
				if out := protocol.MixForTank(args[0], l); out != "" {
					fmt.Println(out)
					fmt.Println()
					printed = true
				}
			}
			if !printed {
				return fmt.Errorf("unknown phase %q", args[0])
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&liters, "liters", 0, "tank size in liters (0 = show all common sizes)")
	return cmd
}
