// Package bootstrap opens a collection with its scheduler and manages their lifecycle.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sync"

	"github.com/at-ishikawa/cardsched/internal/config"
	"github.com/at-ishikawa/cardsched/internal/database"
	"github.com/at-ishikawa/cardsched/internal/deck"
	"github.com/at-ishikawa/cardsched/internal/scheduler"
	"github.com/at-ishikawa/cardsched/internal/store"
)

// App is an opened collection. Close releases it.
type App struct {
	mu    sync.Mutex
	hooks []func(ctx context.Context) error

	Config    *config.Config
	Store     *store.SQLStore
	Scheduler *scheduler.Scheduler
}

// New creates an App that holds nothing yet.
func New() *App {
	return &App{}
}

// Open connects to the configured database, applies pending migrations and
// starts a scheduler with the deck options stored in the collection.
func Open(ctx context.Context, cfg *config.Config, opts ...scheduler.Option) (*App, error) {
	if cfg.Database.Driver == database.DriverSQLite && cfg.Database.Path != database.MemoryPath {
		if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0755); err != nil {
			return nil, fmt.Errorf("os.MkdirAll(%s) > %w", filepath.Dir(cfg.Database.Path), err)
		}
	}
	db, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("database.Connect() > %w", err)
	}

	app := New()
	app.Config = cfg
	app.AddShutdownHook(func(ctx context.Context) error {
		slog.Debug("closing the collection", "driver", cfg.Database.Driver)
		return db.Close()
	})

	if err := database.Migrate(db); err != nil {
		return nil, errors.Join(fmt.Errorf("database.Migrate() > %w", err), app.Close(ctx))
	}
	app.Store = store.NewSQLStore(db)

	deckOpts, err := deck.Load(ctx, app.Store, cfg.Deck)
	if err != nil {
		return nil, errors.Join(fmt.Errorf("deck.Load() > %w", err), app.Close(ctx))
	}
	opts = append([]scheduler.Option{
		scheduler.WithLogger(slog.Default()),
		scheduler.WithUndoDepth(cfg.Session.UndoDepth),
	}, opts...)
	app.Scheduler, err = scheduler.New(ctx, app.Store, deckOpts, opts...)
	if err != nil {
		return nil, errors.Join(fmt.Errorf("scheduler.New() > %w", err), app.Close(ctx))
	}
	return app, nil
}

// AddShutdownHook registers a function to call on Close.
// Hooks run in reverse order (LIFO). Thread-safe.
func (a *App) AddShutdownHook(fn func(ctx context.Context) error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.hooks = append(a.hooks, fn)
}

// Run executes run until it returns or the process is interrupted, then closes the App.
func (a *App) Run(ctx context.Context, run func(ctx context.Context) error) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt)
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		errCh <- run(ctx)
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		return a.Close(context.Background())
	case err := <-errCh:
		return errors.Join(err, a.Close(context.Background()))
	}
}

// Close runs the shutdown hooks once. Later calls do nothing.
func (a *App) Close(ctx context.Context) error {
	a.mu.Lock()
	hooks := a.hooks
	a.hooks = nil
	a.mu.Unlock()

	var errs []error
	for i := len(hooks) - 1; i >= 0; i-- {
		if err := hooks[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
