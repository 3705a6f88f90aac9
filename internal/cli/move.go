package cli

import (
	"context"
	"errors"
	"strings"

	"restack-cli/internal/drag"
	"restack-cli/internal/model"
	"restack-cli/internal/store"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newMoveCmd(app *App) *cobra.Command {
	var (
		series        string
		top           bool
		after         string
		allowAdjacent bool
	)

	cmd := &cobra.Command{
		Use:   "move <stack-id> <commit>",
		Short: "Move a commit to the top of a series or after another commit",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			series = strings.TrimSpace(series)
			after = strings.TrimSpace(after)
			if series == "" {
				return writeErr(cmd, errors.New("missing --series"))
			}
			if top == (after != "") {
				return writeErr(cmd, errors.New("pass exactly one of --top or --after <commit>"))
			}
			target := model.DropTarget{SeriesName: series, Anchor: model.AnchorTop}
			if after != "" {
				target.Anchor = model.After(model.CommitID(after))
			}
			stackID, commit := args[0], model.CommitID(args[1])

			return withWorkspace(cmd, app, func(ctx context.Context, w *store.Workspace) error {
				st, err := w.Stack(ctx, stackID)
				if err != nil {
					return err
				}
				from, _ := st.SeriesOf(commit)
				res, err := drag.Apply(ctx, w, st, model.DragPayload{
					SourceStackID:    stackID,
					SourceSeriesName: from,
					CommitID:         commit,
				}, target, app.cfg.Drag.SuppressAdjacent && !allowAdjacent)
				if err != nil {
					return err
				}
				app.log.Info("move", zap.String("stack", stackID), zap.String("commit", string(commit)),
					zap.String("target", target.String()), zap.Stringer("outcome", res.Outcome))
				return writeOut(cmd, app, map[string]any{"data": map[string]any{
					"outcome": res.Outcome.String(),
					"stackId": stackID,
					"target":  target.String(),
					"series":  model.Records(res.Stack),
				}})
			})
		},
	}

	cmd.Flags().StringVar(&series, "series", "", "Target series")
	cmd.Flags().BoolVar(&top, "top", false, "Move to the top of the series")
	cmd.Flags().StringVar(&after, "after", "", "Move directly after this commit")
	cmd.Flags().BoolVar(&allowAdjacent, "allow-adjacent", false, "Do not ignore moves onto the commit's own or the preceding slot")
	return cmd
}
