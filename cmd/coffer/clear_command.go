package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"coffer/internal/settings"
)

func newClearCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear <name> <path>",
		Short: "Remove a value or subtree from a configuration object",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withService(cmd, func(svc *settings.Service) error {
				obj, err := svc.Open(args[0])
				if err != nil {
					return err
				}
				if err := obj.Clear(cmd.Context(), args[1]).Save(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Saved %s\n", args[0])
				return nil
			})
		},
	}
}
