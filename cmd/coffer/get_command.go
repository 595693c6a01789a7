package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"coffer/internal/settings"
	"coffer/internal/tree"
	"coffer/internal/treexml"
)

func newGetCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "get <name> [path]",
		Short: "Print a value or subtree from a configuration object",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 2 {
				path = args[1]
			}
			return ctx.withService(cmd, func(svc *settings.Service) error {
				obj, err := svc.Open(args[0])
				if err != nil {
					return err
				}
				node, err := obj.Get(cmd.Context(), path)
				if err != nil {
					return err
				}
				return printNode(cmd.OutOrStdout(), path, node)
			})
		},
	}
}

// printNode writes a leaf as its bare string and any subtree as the
// hierarchical text it would persist as. Absent values print nothing.
func printNode(out io.Writer, path string, node tree.Node) error {
	switch n := node.(type) {
	case nil:
		return nil
	case tree.Leaf:
		fmt.Fprintln(out, n.String())
		return nil
	case *tree.Map:
		text, err := treexml.Encode(n)
		if err != nil {
			return err
		}
		fmt.Fprint(out, text)
		return nil
	case tree.List:
		wrapper := tree.NewMap()
		wrapper.Set(lastSegment(path), n)
		text, err := treexml.Encode(wrapper)
		if err != nil {
			return err
		}
		fmt.Fprint(out, text)
		return nil
	default:
		return fmt.Errorf("unsupported node type %T", node)
	}
}

func lastSegment(path string) string {
	if i := strings.LastIndex(path, "."); i >= 0 {
		return path[i+1:]
	}
	return path
}
