package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"coffer/internal/config"
	"coffer/internal/seed"
	"coffer/internal/storage"
)

func newImportCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "import <dir>",
		Short: "Install a directory of default payloads into the signed store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := config.ExpandPath(args[0])
			if err != nil {
				return fmt.Errorf("resolve payload directory: %w", err)
			}
			return ctx.withManager(cmd, func(store *storage.Manager, logger *slog.Logger) error {
				report, err := seed.Install(cmd.Context(), store, dir, logger)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if len(report.Installed) == 0 {
					fmt.Fprintln(out, "No payloads found to install")
					return nil
				}
				fmt.Fprintf(out, "Installed %d payloads:\n", len(report.Installed))
				for _, name := range report.Installed {
					fmt.Fprintf(out, "  %s\n", name)
				}
				return nil
			})
		},
	}
}
