package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"emblem/internal/ipc"
	"emblem/internal/render"
	"emblem/internal/validate"
)

func newUploadCommand(ctx *commandContext) *cobra.Command {
	var name string
	var activate bool

	cmd := &cobra.Command{
		Use:   "upload <image-file>",
		Short: "Transform an image and store it as a custom icon",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			path := args[0]
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read image: %w", err)
			}

			displayName := strings.TrimSpace(name)
			if displayName == "" {
				base := filepath.Base(path)
				displayName = strings.TrimSuffix(base, filepath.Ext(base))
			}

			return ctx.withClient(func(client *ipc.Client) error {
				// Check capacity before spending work on the transform. The
				// store re-checks inside its transaction; this only fails
				// fast.
				state, err := client.State()
				if err != nil {
					return err
				}
				if err := validate.Capacity(len(state.State.Records), cfg.Limits.MaxIcons); err != nil {
					return err
				}

				mediaType := detectMediaType(path, data)
				assets, err := render.New(cfg).ProcessUpload(cmd.Context(), data, mediaType)
				if err != nil {
					return err
				}

				resp, err := client.SaveIcon(ipc.SaveIconRequest{Name: displayName, Assets: *assets})
				if err != nil {
					return err
				}
				if err := domainError(resp.OK, resp.Error, resp.ErrorKind); err != nil {
					return err
				}

				stdout := cmd.OutOrStdout()
				fmt.Fprintf(stdout, "Stored icon %q (%s)\n", resp.Record.Name, truncateID(resp.Record.ID))

				if !activate {
					return nil
				}
				switched, err := client.SwitchIcon(resp.Record.ID)
				if err != nil {
					return err
				}
				if err := domainError(switched.OK, switched.Error, switched.ErrorKind); err != nil {
					return err
				}
				fmt.Fprintf(stdout, "Active icon is now %q\n", resp.Record.Name)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "Display name for the icon (defaults to the file name)")
	cmd.Flags().BoolVar(&activate, "use", false, "Switch to the icon after storing it")
	return cmd
}
