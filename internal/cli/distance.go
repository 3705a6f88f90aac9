package cli

import (
	"context"
	"fmt"

	"restack-cli/internal/model"
	"restack-cli/internal/order"
	"restack-cli/internal/store"

	"github.com/spf13/cobra"
)

func newDistanceCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "distance <stack-id> <slot-a> <slot-b>",
		Short: "Print index(a) - index(b) over the stack's slots (series:top | series:<commit>)",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, ok := model.ParseDropTarget(args[1])
			if !ok {
				return writeErr(cmd, fmt.Errorf("invalid slot %q (expected series:top or series:<commit>)", args[1]))
			}
			b, ok := model.ParseDropTarget(args[2])
			if !ok {
				return writeErr(cmd, fmt.Errorf("invalid slot %q (expected series:top or series:<commit>)", args[2]))
			}
			return withWorkspace(cmd, app, func(ctx context.Context, w *store.Workspace) error {
				st, err := w.Stack(ctx, args[0])
				if err != nil {
					return err
				}
				return writeOut(cmd, app, map[string]any{"data": map[string]any{
					"distance": order.Distance(st, a, b),
					"a":        a.String(),
					"b":        b.String(),
				}})
			})
		},
	}
}

func slotStrings(ts []model.DropTarget) []string {
	out := make([]string, 0, len(ts))
	for _, t := range ts {
		out = append(out, t.String())
	}
	return out
}
