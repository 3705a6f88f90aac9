package cli

import (
	"context"

	"restack-cli/internal/order"
	"restack-cli/internal/store"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newStacksCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stacks",
		Short: "Inspect stacks",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List stacks in lane order",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withWorkspace(cmd, app, func(ctx context.Context, w *store.Workspace) error {
				recs, err := w.StackRecords(ctx)
				if err != nil {
					return err
				}
				return writeOut(cmd, app, map[string]any{"data": recs})
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show <stack-id>",
		Short: "Show one stack with its drop slots",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withWorkspace(cmd, app, func(ctx context.Context, w *store.Workspace) error {
				recs, err := w.StackRecords(ctx)
				if err != nil {
					return err
				}
				picked, err := pickStacks(recs, args)
				if err != nil {
					return err
				}
				st, err := w.Stack(ctx, args[0])
				if err != nil {
					return err
				}
				return writeOut(cmd, app, map[string]any{
					"data": picked[0],
					"meta": map[string]any{"slots": slotStrings(order.Slots(st))},
				})
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:     "rm <stack-id>",
		Aliases: []string{"delete"},
		Short:   "Delete a stack and its lane",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withWorkspace(cmd, app, func(ctx context.Context, w *store.Workspace) error {
				if err := w.DeleteStack(ctx, args[0]); err != nil {
					return err
				}
				app.log.Info("stack deleted", zap.String("stack", args[0]))
				return writeOut(cmd, app, map[string]any{"data": map[string]any{"deleted": args[0]}})
			})
		},
	})

	return cmd
}
