// Package cli implements the dashview command tree: list views over the
// persisted mirrors, seeding from the backend, the change watcher, and the
// resource pool.
package cli

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ganot/dashview/internal/config"
	"github.com/ganot/dashview/internal/mirror"
	"github.com/ganot/dashview/internal/notify"
	"github.com/ganot/dashview/internal/sqlite"
)

// App carries the wiring shared by all subcommands.
type App struct {
	cfg    config.Config
	logger *slog.Logger
	store  mirror.Store
	bus    notify.Bus
	// fileDir is set when the file driver is active; it is the directory
	// the change watcher observes.
	fileDir string

	db *sqlite.DB
}

// NewRootCmd builds the dashview command tree.
func NewRootCmd() *cobra.Command {
	app := &App{bus: notify.NewMemoryBus()}

	cmd := &cobra.Command{
		Use:           "dashview",
		Short:         "Business-dashboard list views over persisted mirrors",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("config error: %w", err)
		}
		app.cfg = cfg
		app.logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: parseLogLevel(cfg.Log.Level),
		}))
		return app.openStore()
	}
	cmd.PersistentPostRunE = func(cmd *cobra.Command, args []string) error {
		return app.close()
	}

	cmd.AddCommand(
		newProjectsCmd(app),
		newInvoicesCmd(app),
		newOrdersCmd(app),
		newSeedCmd(app),
		newWatchCmd(app),
		newResourcesCmd(app),
	)
	return cmd
}

func (a *App) openStore() error {
	switch a.cfg.Storage.Driver {
	case config.DriverFile:
		store, err := mirror.NewFileStore(a.cfg.Storage.Path)
		if err != nil {
			return err
		}
		a.store = store
		a.fileDir = store.Dir()
	case config.DriverSQLite:
		if err := a.openDB(a.cfg.Storage.Path); err != nil {
			return err
		}
		a.store = mirror.NewSQLiteStore(a.db)
	default:
		return fmt.Errorf("unknown storage driver %q", a.cfg.Storage.Driver)
	}
	return nil
}

// openDB opens (and migrates) the resource database. With the file driver
// the database sits inside the mirror directory.
func (a *App) openDB(path string) error {
	if a.db != nil {
		return nil
	}
	if a.cfg.Storage.Driver == config.DriverFile {
		path = filepath.Join(a.cfg.Storage.Path, "dashview.db")
	}
	db, err := sqlite.New(path)
	if err != nil {
		return err
	}
	if err := db.RunMigrations(); err != nil {
		db.Close()
		return err
	}
	a.db = db
	return nil
}

func (a *App) close() error {
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
