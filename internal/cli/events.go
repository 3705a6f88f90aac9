package cli

import (
	"context"

	"restack-cli/internal/store"

	"github.com/spf13/cobra"
)

func newEventsCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "events",
		Short: "List recorded reorder events (newest first)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withWorkspace(cmd, app, func(ctx context.Context, w *store.Workspace) error {
				evs, err := w.Events(ctx, limit)
				if err != nil {
					return err
				}
				return writeOut(cmd, app, map[string]any{"data": evs})
			})
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 50, "Max events to return (0 = all)")
	return cmd
}
