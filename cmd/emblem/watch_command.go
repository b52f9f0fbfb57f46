package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"emblem/internal/icons"
	"emblem/internal/ipc"
)

func newWatchCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Stream icon collection changes until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.State()
				if err != nil {
					return err
				}
				state := resp.State
				if err := printWatchState(cmd, state, asJSON); err != nil {
					return err
				}

				for {
					if err := cmd.Context().Err(); err != nil {
						return err
					}
					watched, err := client.Watch(ipc.WatchRequest{SinceRevision: state.Revision})
					if err != nil {
						return err
					}
					if !watched.Changed || watched.State == nil {
						continue
					}
					state = *watched.State
					if err := printWatchState(cmd, state, asJSON); err != nil {
						return err
					}
				}
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit each state as JSON")
	return cmd
}

func printWatchState(cmd *cobra.Command, state icons.CollectionState, asJSON bool) error {
	if asJSON {
		return writeJSON(cmd, state)
	}
	active := "default"
	if record := state.ActiveRecord(); record != nil {
		active = fmt.Sprintf("%s (%s)", record.Name, truncateID(record.ID))
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s revision=%d icons=%d active=%s\n",
		time.Now().Format("15:04:05"), state.Revision, len(state.Records), active)
	return nil
}
