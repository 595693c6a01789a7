package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"coffer/internal/storage"
)

func newVerifyCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "verify [prefix]",
		Short: "Check signatures across the file-backed store",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prefix := ""
			if len(args) == 1 {
				prefix = args[0]
			}
			return ctx.withManager(cmd, func(store *storage.Manager, _ *slog.Logger) error {
				names, err := store.ListFiles(prefix)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(names) == 0 {
					fmt.Fprintln(out, "No signed files to verify")
					return nil
				}

				failed := 0
				rows := make([][]string, 0, len(names))
				for _, name := range names {
					ok, err := store.VerifyFile(name)
					status := "OK"
					switch {
					case err != nil:
						failed++
						status = "ERROR: " + err.Error()
					case !ok:
						failed++
						status = "FAILED"
					}
					rows = append(rows, []string{name, status})
				}
				writeRows(out, []string{"Name", "Status"}, rows, []columnAlignment{alignLeft, alignLeft})

				if failed > 0 {
					return fmt.Errorf("%d of %d signed files failed verification", failed, len(names))
				}
				fmt.Fprintf(out, "All %d signed files verified\n", len(names))
				return nil
			})
		},
	}
}
