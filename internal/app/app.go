package app

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dori/horas/internal/config"
	"github.com/dori/horas/internal/db"
	"github.com/dori/horas/internal/notify"
	"github.com/dori/horas/internal/session"
	"github.com/gofrs/flock"
)

// App holds the application state and dependencies
type App struct {
	Config   config.Config
	DB       *db.DB
	Notifier *notify.Notifier
	Tracker  *session.Tracker
	Location *time.Location
	lockFile *flock.Flock
}

// Options controls how the app is opened.
type Options struct {
	ConfigPath string
	// Lock requests an exclusive single-instance lock. Quick one-shot
	// commands skip it, only interactive sessions need exclusivity.
	Lock bool
}

// New creates a new application instance
func New(opts Options) (*App, error) {
	path := opts.ConfigPath
	if path == "" {
		path = config.DefaultPath()
	}

	cfg, err := config.LoadConfigFromFile(path)
	if err != nil {
		return nil, err
	}

	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	// Ensure data directory exists
	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	notifier := notify.NewNotifier()
	if cfg.Notifications.Enabled != nil {
		notifier.SetEnabled(*cfg.Notifications.Enabled)
	}

	app := &App{
		Config:   cfg,
		Notifier: notifier,
		Location: loc,
	}

	if opts.Lock {
		if err := app.acquireLock(); err != nil {
			return nil, err
		}
	}

	// Open database
	database, err := db.Open(cfg.DBPath())
	if err != nil {
		app.releaseLock()
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	app.DB = database
	app.Tracker = session.NewTracker(database, loc, nil)

	return app, nil
}

// acquireLock acquires an exclusive file lock to prevent multiple instances
func (a *App) acquireLock() error {
	lockPath := filepath.Join(a.Config.DataDir, "horas.lock")
	a.lockFile = flock.New(lockPath)

	locked, err := a.lockFile.TryLock()
	if err != nil {
		return fmt.Errorf("failed to acquire lock: %w", err)
	}

	if !locked {
		return fmt.Errorf("another instance of horas is already running")
	}

	return nil
}

// releaseLock releases the file lock
func (a *App) releaseLock() {
	if a.lockFile != nil {
		a.lockFile.Unlock()
	}
}

// Close cleans up application resources
func (a *App) Close() error {
	var errs []error

	if a.DB != nil {
		if err := a.DB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		}
	}

	a.releaseLock()

	if len(errs) > 0 {
		return errs[0]
	}
	return nil
}
