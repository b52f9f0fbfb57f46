package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"emblem/internal/icons"
	"emblem/internal/ipc"
)

func newListCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored icons and the active selection",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.State()
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd, resp.State)
				}

				stdout := cmd.OutOrStdout()
				if len(resp.State.Records) == 0 {
					fmt.Fprintln(stdout, "No custom icons stored; the default icon is active")
					return nil
				}

				rows := make([][]string, 0, len(resp.State.Records))
				for _, record := range resp.State.Records {
					rows = append(rows, []string{
						truncateID(record.ID),
						record.Name,
						string(record.MediaKind),
						record.CreatedAt.Local().Format("2006-01-02 15:04"),
						activeMarker(record.ID, resp.State.Active),
					})
				}
				fmt.Fprintln(stdout, renderTable([]string{"ID", "Name", "Kind", "Created", "Active"}, rows))
				if resp.State.Active == icons.DefaultSelection {
					fmt.Fprintln(stdout, "Active: default icon")
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit the collection state as JSON")
	return cmd
}

func activeMarker(id, active string) string {
	if id == active {
		return "*"
	}
	return ""
}
