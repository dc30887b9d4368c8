package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"growroomd/internal/app"
	"growroomd/internal/batch"
)

func addBatchCmd() *cobra.Command {
	var (
		id, stage, strain string
		dest, startStr    string
		plants            int
		notes             string
	)
	cmd := &cobra.Command{
		Use:   "add-batch <veg-room> <name>",
		Short: "Create a batch in a veg room and schedule its protocol",
		Long: "The batch id is derived from the name and the creation timestamp; " +
			"pass --id to pin an explicit one instead.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := parseDate(startStr)
			if err != nil {
				return err
			}
			return withApp(func(a *app.App) error {
				b, err := a.Batches.Add(context.Background(), batch.AddRequest{
					RoomID:          args[0],
					BatchID:         id,
					Name:            args[1],
					StartDate:       start,
					Stage:           stage,
					PlantCount:      plants,
					Strain:          strain,
					DestinationRoom: dest,
					Notes:           notes,
				})
				if err != nil {
					return err
				}
				fmt.Printf("added %s to %s (stage %s, %d plants)\n", b.BatchID, args[0], b.Stage, b.PlantCount)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "explicit batch id (default: derived from name + timestamp)")
	cmd.Flags().StringVar(&stage, "stage", "Clone", "initial stage (Clone, PreVeg, EarlyVeg, LateVeg, Mother)")
	cmd.Flags().StringVar(&startStr, "start", "today", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&plants, "plants", 0, "plant count")
	cmd.Flags().StringVar(&strain, "strain", "", "strain name")
	cmd.Flags().StringVar(&dest, "dest", "", "destination flower room")
	cmd.Flags().StringVar(&notes, "notes", "", "free-form notes")
	return cmd
}

func updateBatchCmd() *cobra.Command {
	var (
		name, stage, strain string
		dest, notes, note   string
		plants              int
		active              bool
	)
	cmd := &cobra.Command{
		Use:   "update-batch <veg-room> <batch-id>",
		Short: "Edit a batch; --stage advances it and records the change",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(a *app.App) error {
				req := batch.UpdateRequest{
					RoomID:    args[0],
					BatchID:   args[1],
					StageNote: note,
				}
				if cmd.Flags().Changed("name") {
					req.Name = &name
				}
				if cmd.Flags().Changed("stage") {
					req.Stage = &stage
				}
				if cmd.Flags().Changed("plants") {
					req.PlantCount = &plants
				}
				if cmd.Flags().Changed("strain") {
					req.Strain = &strain
				}
				if cmd.Flags().Changed("dest") {
					req.DestinationRoom = &dest
				}
				if cmd.Flags().Changed("notes") {
					req.Notes = &notes
				}
				if cmd.Flags().Changed("active") {
					req.Active = &active
				}
				b, err := a.Batches.Update(context.Background(), req)
				if err != nil {
					return err
				}
				fmt.Printf("updated %s (stage %s)\n", b.BatchID, b.Stage)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&stage, "stage", "", "new stage")
	cmd.Flags().IntVar(&plants, "plants", 0, "plant count")
	cmd.Flags().StringVar(&strain, "strain", "", "strain name")
	cmd.Flags().StringVar(&dest, "dest", "", "destination flower room")
	cmd.Flags().StringVar(&notes, "notes", "", "free-form notes")
	cmd.Flags().StringVar(&note, "note", "", "note recorded with a stage change")
	cmd.Flags().BoolVar(&active, "active", true, "set the active flag (--active=false retires without a move)")
	return cmd
}

func moveToFlowerCmd() *cobra.Command {
	var startStr string
	cmd := &cobra.Command{
		Use:   "move-to-flower <veg-room> <batch-id> [flower-room]",
		Short: "Retire a batch from veg and flip its flower room",
		Long: "Deactivates the batch, sets the flower room's cycle start date and " +
			"generates the 84-day protocol. Without [flower-room] the batch's " +
			"destination room is used.",
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := parseDate(startStr)
			if err != nil {
				return err
			}
			flowerRoom := ""
			if len(args) == 3 {
				flowerRoom = args[2]
			}
			return withApp(func(a *app.App) error {
				b, err := a.Batches.MoveToFlower(context.Background(), args[0], args[1], flowerRoom, start)
				if err != nil {
					return err
				}
				fmt.Printf("moved %s to flower, cycle starts %s\n", b.BatchID, start.Format("2006-01-02"))
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&startStr, "start", "today", "flower cycle start date")
	return cmd
}

func listBatchesCmd() *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "list-batches <veg-room>",
		Short: "List a veg room's batches with protocol positions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(a *app.App) error {
				for _, b := range a.Batches.List(args[0], !all) {
					state := "active"
					if !b.Active {
						state = "retired"
					}
					fmt.Printf("%-12s %-10s day %-3d EC %.1f plants=%-4d %s\n",
						b.BatchID, b.Stage, b.ProtocolDay, b.StageEC, b.PlantCount, state)
				}
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "include retired batches")
	return cmd
}
