package cli

import (
	"context"

	"restack-cli/internal/model"
	"restack-cli/internal/store"

	"github.com/spf13/cobra"
)

type laneOut struct {
	StackID string `json:"stackId"`
	Title   string `json:"title,omitempty"`
}

func lanesOut(ls []model.Lane) []laneOut {
	out := make([]laneOut, 0, len(ls))
	for _, l := range ls {
		out = append(out, laneOut{StackID: l.StackID, Title: l.Title})
	}
	return out
}

func newLanesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lanes",
		Short: "Inspect and reorder board lanes",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List lanes left to right",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withWorkspace(cmd, app, func(ctx context.Context, w *store.Workspace) error {
				ls, err := w.Lanes(ctx)
				if err != nil {
					return err
				}
				return writeOut(cmd, app, map[string]any{"data": lanesOut(ls)})
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "reorder <stack-id>...",
		Short: "Set the full lane order (every stack exactly once)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withWorkspace(cmd, app, func(ctx context.Context, w *store.Workspace) error {
				if err := w.ReorderLanes(ctx, args); err != nil {
					return err
				}
				ls, err := w.Lanes(ctx)
				if err != nil {
					return err
				}
				return writeOut(cmd, app, map[string]any{"data": lanesOut(ls)})
			})
		},
	})

	return cmd
}
