package cli

import (
	"context"
	"io"
	"os"

	"restack-cli/internal/model"
	"restack-cli/internal/store"

	"github.com/spf13/cobra"
)

func newImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.yaml|->",
		Short: "Create or replace stacks from a YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var r io.Reader = cmd.InOrStdin()
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return writeErr(cmd, err)
				}
				defer f.Close()
				r = f
			}
			file, err := store.ReadFile(r)
			if err != nil {
				return writeErr(cmd, err)
			}
			return withWorkspace(cmd, app, func(ctx context.Context, w *store.Workspace) error {
				n, err := w.Import(ctx, file)
				if err != nil {
					return err
				}
				return writeOut(cmd, app, map[string]any{"data": map[string]any{"imported": n}})
			})
		},
	}
}

func newExportCmd(app *App) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export [stack-id...]",
		Short: "Write stacks as YAML (all stacks in lane order by default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withWorkspace(cmd, app, func(ctx context.Context, w *store.Workspace) error {
				file, err := w.Export(ctx)
				if err != nil {
					return err
				}
				if len(args) > 0 {
					if file.Stacks, err = pickStacks(file.Stacks, args); err != nil {
						return err
					}
				}
				if out == "" || out == "-" {
					return store.WriteFile(cmd.OutOrStdout(), file)
				}
				f, err := os.Create(out)
				if err != nil {
					return err
				}
				if err := store.WriteFile(f, file); err != nil {
					_ = f.Close()
					return err
				}
				return f.Close()
			})
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (default: stdout)")
	return cmd
}

func pickStacks(all []model.StackRecord, ids []string) ([]model.StackRecord, error) {
	byID := make(map[string]model.StackRecord, len(all))
	for _, s := range all {
		byID[s.ID] = s
	}
	out := make([]model.StackRecord, 0, len(ids))
	for _, id := range ids {
		s, ok := byID[id]
		if !ok {
			return nil, store.NotFoundError{Kind: "stack", ID: id}
		}
		out = append(out, s)
	}
	return out, nil
}
