package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"emblem/internal/ipc"
)

func newRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <icon-id>",
		Aliases: []string{"rm"},
		Short:   "Delete a stored icon",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			selector := strings.TrimSpace(args[0])
			if selector == "" {
				return fmt.Errorf("icon id is required")
			}
			return ctx.withClient(func(client *ipc.Client) error {
				id, err := resolveIconID(client, selector)
				if err != nil {
					return err
				}
				resp, err := client.DeleteIcon(id)
				if err != nil {
					return err
				}
				if err := domainError(resp.OK, resp.Error, resp.ErrorKind); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed icon %s\n", truncateID(id))
				return nil
			})
		},
	}
}
