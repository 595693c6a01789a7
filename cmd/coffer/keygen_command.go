package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"coffer/internal/config"
)

func newKeygenCommand(ctx *commandContext) *cobra.Command {
	var targetPath string
	var size int

	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Create the secret signing key file",
		RunE: func(cmd *cobra.Command, args []string) error {
			target := strings.TrimSpace(targetPath)
			if target == "" {
				cfg, err := ctx.ensureConfig()
				if err != nil {
					return err
				}
				target = cfg.Storage.KeyFile
			} else {
				expanded, err := config.ExpandPath(target)
				if err != nil {
					return fmt.Errorf("resolve key path: %w", err)
				}
				target = expanded
			}

			if err := config.WriteKeyFile(target, size); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote new secret key to %s\n", target)
			fmt.Fprintln(out, "Files signed under a previous key will fail verification.")
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetPath, "path", "p", "", "Destination for the key file")
	cmd.Flags().IntVar(&size, "size", config.DefaultKeyBytes, "Key length in bytes")
	return cmd
}
