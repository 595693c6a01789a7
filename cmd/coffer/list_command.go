package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"coffer/internal/storage"
)

func newListCommand(ctx *commandContext) *cobra.Command {
	var filesOnly bool
	var long bool

	cmd := &cobra.Command{
		Use:   "list [prefix]",
		Short: "List stored configuration objects",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prefix := ""
			if len(args) == 1 {
				prefix = args[0]
			}
			return ctx.withManager(cmd, func(store *storage.Manager, _ *slog.Logger) error {
				if filesOnly {
					return listFiles(cmd, store, prefix, long)
				}
				return listActive(cmd, store, prefix, long)
			})
		},
	}

	cmd.Flags().BoolVar(&filesOnly, "files", false, "List the signed file store instead of the active store")
	cmd.Flags().BoolVarP(&long, "long", "l", false, "Include size and update time columns")
	return cmd
}

func listActive(cmd *cobra.Command, store *storage.Manager, prefix string, long bool) error {
	out := cmd.OutOrStdout()
	if !long {
		names, err := store.ListActive(cmd.Context(), prefix)
		if err != nil {
			return err
		}
		printNames(out, names)
		return nil
	}

	records, err := store.Records(cmd.Context(), prefix)
	if err != nil {
		return err
	}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			record.Name,
			humanize.IBytes(uint64(len(record.Payload))),
			record.UpdatedAt.UTC().Format("2006-01-02 15:04"),
		})
	}
	printRows(out, rows)
	return nil
}

func listFiles(cmd *cobra.Command, store *storage.Manager, prefix string, long bool) error {
	out := cmd.OutOrStdout()
	if !long {
		names, err := store.ListFiles(prefix)
		if err != nil {
			return err
		}
		printNames(out, names)
		return nil
	}

	entries, err := store.FileEntries(prefix)
	if err != nil {
		return err
	}
	rows := make([][]string, 0, len(entries))
	for _, entry := range entries {
		rows = append(rows, []string{
			entry.Name,
			humanize.IBytes(uint64(entry.Size)),
			entry.ModTime.UTC().Format("2006-01-02 15:04"),
		})
	}
	printRows(out, rows)
	return nil
}

func printNames(out io.Writer, names []string) {
	if len(names) == 0 {
		if shouldRenderTable(out) {
			fmt.Fprintln(out, "No objects stored")
		}
		return
	}
	for _, name := range names {
		fmt.Fprintln(out, name)
	}
}

func printRows(out io.Writer, rows [][]string) {
	if len(rows) == 0 {
		if shouldRenderTable(out) {
			fmt.Fprintln(out, "No objects stored")
		}
		return
	}
	writeRows(out, []string{"Name", "Size", "Updated"}, rows, []columnAlignment{alignLeft, alignRight, alignLeft})
}
