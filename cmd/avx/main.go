package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/avocadotools/avx/internal/container"
	"github.com/avocadotools/avx/internal/logging"
	"github.com/avocadotools/avx/internal/registry"
	"github.com/avocadotools/avx/internal/remote"
	"github.com/avocadotools/avx/internal/target"
	"github.com/avocadotools/avx/internal/tui"
)

// application wires the core components behind the CLI.
type application struct {
	roots    []string
	folder   string
	logLevel string
	logFile  string

	reg      *registry.Registry
	manager  *container.Manager
	explorer *remote.Explorer
	store    *target.Store
}

func main() {
	app := &application{}

	root := &cobra.Command{
		Use:           "avx",
		Short:         "Explore avocado build volumes from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			// Explorer containers serve this process only.
			if app.manager != nil {
				app.manager.CleanupAll(context.Background())
			}
			logging.Sync()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return tui.Run(app.reg, app.manager, app.explorer, app.store)
		},
	}

	root.PersistentFlags().StringSliceVar(&app.roots, "root", []string{"."}, "directories to scan for avocado projects")
	root.PersistentFlags().StringVar(&app.folder, "folder", "", "operate on a single project folder")
	root.PersistentFlags().StringVar(&app.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&app.logFile, "log-file", "", "write logs to a file instead of stderr")

	root.AddCommand(
		app.targetsCmd(),
		app.targetCmd(),
		app.lsCmd(),
		app.catCmd(),
		app.execCmd(),
		app.cleanupCmd(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func (app *application) setup(cmd *cobra.Command) error {
	logCfg := logging.Config{Level: app.logLevel, Format: "console", OutputPath: "stderr"}
	if app.logFile != "" {
		logCfg.Format = "json"
		logCfg.OutputPath = app.logFile
	} else if cmd.Name() == "avx" {
		// The dashboard owns the terminal; keep stderr clean.
		logCfg.OutputPath = filepath.Join(os.TempDir(), "avx.log")
		logCfg.Format = "json"
	}
	if err := logging.Init(logCfg); err != nil {
		return fmt.Errorf("logging init: %w", err)
	}

	app.reg = registry.New(app.roots...)
	app.manager = container.NewManager(container.ExecRunner{})
	app.explorer = remote.NewExplorer(app.manager)
	app.store = target.NewStore()
	app.store.Subscribe(func(folder, t string) {
		logging.Info("target changed", zap.String("folder", folder), zap.String("target", t))
	})

	// Seed selections from per-project defaults.
	for _, p := range app.reg.Rescan() {
		if p.DefaultTarget == "" {
			continue
		}
		if _, ok := app.store.Get(p.Folder); !ok {
			app.store.Set(p.Folder, p.DefaultTarget)
		}
	}
	return nil
}

// resolveFolder picks the project folder a command operates on: the
// --folder flag if given, else the single open project.
func (app *application) resolveFolder() (string, error) {
	if app.folder != "" {
		return filepath.Abs(app.folder)
	}
	folders := app.reg.Folders()
	switch len(folders) {
	case 0:
		return "", fmt.Errorf("no avocado projects found under %v", app.roots)
	case 1:
		return folders[0], nil
	default:
		return "", fmt.Errorf("%d projects found; pass --folder", len(folders))
	}
}
