package bootstrap

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/cardsched/internal/config"
	"github.com/at-ishikawa/cardsched/internal/scheduler"
	"github.com/at-ishikawa/cardsched/internal/testutil"
)

func loadTestConfig(t *testing.T) *config.Config {
	t.Helper()
	loader, err := config.NewConfigLoader(testutil.SetupTestConfig(t, t.TempDir()))
	require.NoError(t, err)
	cfg, err := loader.Load()
	require.NoError(t, err)
	return cfg
}

func TestOpen(t *testing.T) {
	ctx := context.Background()
	cfg := loadTestConfig(t)
	cfg.Database.Path = filepath.Join(t.TempDir(), "nested", "collection.db")

	app, err := Open(ctx, cfg)
	require.NoError(t, err)

	require.NoError(t, app.Store.SetDeckVar(ctx, "newCardsPerDay", "5"))
	assert.Equal(t, scheduler.Counts{}, app.Scheduler.Counts())
	assert.Equal(t, 10, app.Scheduler.Options().NewCardsPerDay)
	assert.Equal(t, 5, app.Scheduler.UndoStack().Depth())
	require.NoError(t, app.Close(ctx))

	// Deck variables stored in the collection override the config.
	app, err = Open(ctx, cfg)
	require.NoError(t, err)
	defer app.Close(ctx)
	assert.Equal(t, 5, app.Scheduler.Options().NewCardsPerDay)
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	cfg := loadTestConfig(t)
	cfg.Database.Driver = "postgres"

	_, err := Open(context.Background(), cfg)
	assert.Error(t, err)
}

func TestApp_Run(t *testing.T) {
	t.Run("run returns nil", func(t *testing.T) {
		app := New()
		err := app.Run(context.Background(), func(ctx context.Context) error {
			return nil
		})
		assert.NoError(t, err)
	})

	t.Run("run returns error", func(t *testing.T) {
		app := New()
		want := errors.New("run failed")
		err := app.Run(context.Background(), func(ctx context.Context) error {
			return want
		})
		assert.ErrorIs(t, err, want)
	})

	t.Run("shutdown hooks run in LIFO order on context cancel", func(t *testing.T) {
		app := New()
		var mu sync.Mutex
		var order []string
		for _, name := range []string{"first", "second", "third"} {
			app.AddShutdownHook(func(ctx context.Context) error {
				mu.Lock()
				defer mu.Unlock()
				order = append(order, name)
				return nil
			})
		}

		ctx, cancel := context.WithCancel(context.Background())
		err := app.Run(ctx, func(ctx context.Context) error {
			cancel()
			<-ctx.Done()
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"third", "second", "first"}, order)
	})

	t.Run("hooks run once after run returns", func(t *testing.T) {
		app := New()
		calls := 0
		app.AddShutdownHook(func(ctx context.Context) error {
			calls++
			return errors.New("close failed")
		})

		err := app.Run(context.Background(), func(ctx context.Context) error {
			return nil
		})
		assert.EqualError(t, err, "close failed")
		assert.NoError(t, app.Close(context.Background()))
		assert.Equal(t, 1, calls)
	})
}
