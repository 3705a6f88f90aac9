package cli

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"restack-cli/internal/config"
	"restack-cli/internal/store"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newInitCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the workspace database and a default restack.yaml",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withWorkspace(cmd, app, func(ctx context.Context, w *store.Workspace) error {
				cfgPath := filepath.Join(app.Dir, config.FileName)
				created, err := writeDefaultConfig(cfgPath)
				if err != nil {
					return err
				}
				return writeOut(cmd, app, map[string]any{"data": map[string]any{
					"dir":           app.Dir,
					"config":        cfgPath,
					"configCreated": created,
				}})
			})
		},
	}
}

// writeDefaultConfig writes the drag defaults to path unless it exists.
func writeDefaultConfig(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return false, err
	}
	d := config.Defaults()
	b, err := yaml.Marshal(map[string]any{
		"drag": map[string]any{
			"activationDelay":  d.Drag.ActivationDelay.String(),
			"suppressAdjacent": d.Drag.SuppressAdjacent,
		},
	})
	if err != nil {
		return false, err
	}
	return true, os.WriteFile(path, b, 0o644)
}
