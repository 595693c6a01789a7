package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"coffer/internal/settings"
)

func newSetCommand(ctx *commandContext) *cobra.Command {
	var asBool bool
	var asInt bool
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "set <name> <path> <value>",
		Short: "Set a value in a configuration object and persist it",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := parseSetValue(args[2], asBool, asInt, asJSON)
			if err != nil {
				return err
			}
			return ctx.withService(cmd, func(svc *settings.Service) error {
				obj, err := svc.Open(args[0])
				if err != nil {
					return err
				}
				if err := obj.Set(cmd.Context(), args[1], value).Save(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Saved %s\n", args[0])
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&asBool, "bool", false, "Parse the value as a boolean")
	cmd.Flags().BoolVar(&asInt, "int", false, "Parse the value as an integer")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Parse the value as JSON (objects become subtrees)")
	return cmd
}

func parseSetValue(raw string, asBool, asInt, asJSON bool) (any, error) {
	chosen := 0
	for _, flag := range []bool{asBool, asInt, asJSON} {
		if flag {
			chosen++
		}
	}
	if chosen > 1 {
		return nil, errors.New("only one of --bool, --int, --json may be given")
	}

	switch {
	case asBool:
		value, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("parse boolean %q: %w", raw, err)
		}
		return value, nil
	case asInt:
		value, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse integer %q: %w", raw, err)
		}
		return value, nil
	case asJSON:
		var value any
		if err := json.Unmarshal([]byte(raw), &value); err != nil {
			return nil, fmt.Errorf("parse JSON value: %w", err)
		}
		return value, nil
	default:
		return raw, nil
	}
}
