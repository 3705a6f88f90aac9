package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"restack-cli/internal/config"
	"restack-cli/internal/format"
	"restack-cli/internal/logging"
	"restack-cli/internal/store"
	"restack-cli/internal/tui"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type App struct {
	Dir      string
	Format   string
	Pretty   bool
	LogLevel string

	cfg    config.Config
	loader *config.Loader
	log    *zap.Logger
}

func NewRootCmd() *cobra.Command {
	app := &App{loader: config.NewLoader(), log: zap.NewNop()}

	cmd := &cobra.Command{
		Use:          "restack",
		Short:        "Reorder stacked commits and lanes (TUI + scriptable CLI)",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Open the board
  restack

  # Load stacks from a file, then move a commit to the top of series B
  restack import stacks.yaml
  restack move s1 c1 --series B --top

  # How far apart are two slots?
  restack distance s1 A:top B:c3
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return runBoard(cmd.Context(), app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&app.Dir, "dir", "", "Workspace directory (default: nearest .restack, or ./.restack)")
	cmd.PersistentFlags().StringVar(&app.Format, "format", "json", "Output format (json|edn)")
	cmd.PersistentFlags().BoolVar(&app.Pretty, "pretty", false, "Pretty-print output")
	cmd.PersistentFlags().StringVar(&app.LogLevel, "log-level", "info", "Log level (debug|info|warn|error)")

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return app.configure(cmd)
	}
	cmd.PersistentPostRunE = func(cmd *cobra.Command, args []string) error {
		_ = app.log.Sync()
		return nil
	}

	cmd.AddCommand(newInitCmd(app))
	cmd.AddCommand(newImportCmd(app))
	cmd.AddCommand(newExportCmd(app))
	cmd.AddCommand(newStacksCmd(app))
	cmd.AddCommand(newMoveCmd(app))
	cmd.AddCommand(newDistanceCmd(app))
	cmd.AddCommand(newLanesCmd(app))
	cmd.AddCommand(newEventsCmd(app))
	cmd.AddCommand(newDocsCmd(app))

	return cmd
}

// configure resolves the workspace dir, then layers restack.yaml, RESTACK_*
// env and flags into app.cfg and opens the log file.
func (app *App) configure(cmd *cobra.Command) error {
	root := cmd.Root().PersistentFlags()
	for key, name := range map[string]string{
		"dir":       "dir",
		"format":    "format",
		"pretty":    "pretty",
		"log.level": "log-level",
	} {
		if err := app.loader.BindFlag(key, root.Lookup(name)); err != nil {
			return err
		}
	}

	dir := app.Dir
	if dir == "" {
		dir = envOr("RESTACK_DIR", "")
	}
	if dir == "" {
		d, err := store.DefaultDir()
		if err != nil {
			return err
		}
		dir = d
	}

	cfg, err := app.loader.Load(dir, config.UserConfigDir())
	if err != nil {
		return writeErr(cmd, err)
	}
	if cfg.Dir == "" {
		cfg.Dir = dir
	}
	if cfg.Log.File == "" {
		cfg.Log.File = filepath.Join(cfg.Dir, "restack.log")
	}
	app.cfg = cfg
	app.Dir, app.Format, app.Pretty, app.LogLevel = cfg.Dir, cfg.Format, cfg.Pretty, cfg.Log.Level

	log, err := logging.New(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		return writeErr(cmd, err)
	}
	app.log = log.With(zap.String("cmd", cmd.CommandPath()))
	if used := app.loader.ConfigFileUsed(); used != "" {
		app.log.Debug("config loaded", zap.String("file", used))
	}
	return nil
}

func (app *App) open(ctx context.Context) (*store.Workspace, error) {
	return store.Store{Dir: app.Dir}.Open(ctx, app.log.Named("store"))
}

// withWorkspace opens the workspace for the duration of fn.
func withWorkspace(cmd *cobra.Command, app *App, fn func(ctx context.Context, w *store.Workspace) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	w, err := app.open(ctx)
	if err != nil {
		return writeErr(cmd, err)
	}
	defer w.Close()
	if err := fn(ctx, w); err != nil {
		return writeErr(cmd, err)
	}
	return nil
}

func runBoard(ctx context.Context, app *App) error {
	if ctx == nil {
		ctx = context.Background()
	}
	w, err := app.open(ctx)
	if err != nil {
		return err
	}
	defer w.Close()
	return tui.Run(ctx, w, tui.Options{
		ActivationDelay:  app.cfg.Drag.ActivationDelay,
		SuppressAdjacent: app.cfg.Drag.SuppressAdjacent,
		Logger:           app.log.Named("tui"),
	})
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Output{Format: app.Format, Pretty: app.Pretty}.Write(cmd.OutOrStdout(), v)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}

func envOr(k, d string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return d
}
