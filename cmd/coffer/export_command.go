package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"coffer/internal/config"
	"coffer/internal/storage"
)

func newExportCommand(ctx *commandContext) *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "export <name>",
		Short: "Write a verified payload from the signed store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withManager(cmd, func(store *storage.Manager, _ *slog.Logger) error {
				payload, err := store.ReadFile(args[0])
				if err != nil {
					return err
				}

				if outputPath == "" {
					_, err := cmd.OutOrStdout().Write(payload)
					return err
				}

				target, err := config.ExpandPath(outputPath)
				if err != nil {
					return fmt.Errorf("resolve output path: %w", err)
				}
				if err := os.WriteFile(target, payload, 0o644); err != nil {
					return fmt.Errorf("write export: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Exported %s to %s\n", args[0], target)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write the payload to a file instead of stdout")
	return cmd
}
