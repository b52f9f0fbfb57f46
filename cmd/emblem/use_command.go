package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"emblem/internal/icons"
	"emblem/internal/ipc"
)

func newUseCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "use <icon-id|default>",
		Short: "Switch the active icon",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			selector := strings.TrimSpace(args[0])
			if selector == "" {
				return fmt.Errorf("selector must be an icon id or %q", icons.DefaultSelection)
			}
			return ctx.withClient(func(client *ipc.Client) error {
				id, err := resolveIconID(client, selector)
				if err != nil {
					return err
				}
				resp, err := client.SwitchIcon(id)
				if err != nil {
					return err
				}
				if err := domainError(resp.OK, resp.Error, resp.ErrorKind); err != nil {
					return err
				}
				if id == icons.DefaultSelection {
					fmt.Fprintln(cmd.OutOrStdout(), "Default icon restored")
				} else {
					fmt.Fprintf(cmd.OutOrStdout(), "Active icon is now %s\n", truncateID(id))
				}
				return nil
			})
		},
	}
}
