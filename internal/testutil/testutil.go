// Package testutil provides shared test helpers for config files and collection fixtures.
package testutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/cardsched/internal/card"
	"github.com/at-ishikawa/cardsched/internal/config"
	"github.com/at-ishikawa/cardsched/internal/database"
	"github.com/at-ishikawa/cardsched/internal/fact"
	"github.com/at-ishikawa/cardsched/internal/store"
)

// SetupTestConfig writes a config file using a SQLite collection inside tmpDir.
// Returns the path to the generated config file.
func SetupTestConfig(t *testing.T, tmpDir string) string {
	t.Helper()

	configContent := fmt.Sprintf(`database:
  driver: sqlite
  path: %s
deck:
  new_cards_per_day: 10
  leech_fails: 8
session:
  undo_depth: 5
`, filepath.Join(tmpDir, "collection.db"))

	configPath := filepath.Join(tmpDir, "config.yml")
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0644))
	return configPath
}

// NewCollection returns a store on a migrated in-memory SQLite database.
func NewCollection(t *testing.T) *store.SQLStore {
	t.Helper()
	db, err := database.Connect(context.Background(), config.DatabaseConfig{
		Driver: database.DriverSQLite,
		Path:   database.MemoryPath,
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.Migrate(db))
	return store.NewSQLStore(db)
}

// AddFact creates a fact with the given tags and one card per template.
// Each card is stored with its tag index rebuilt. The created cards are returned in order.
func AddFact(t *testing.T, st store.Store, tags string, cards ...card.Card) []*card.Card {
	t.Helper()
	ctx := context.Background()

	f := &fact.Fact{Tags: tags}
	require.NoError(t, st.CreateFact(ctx, f))

	created := make([]*card.Card, 0, len(cards))
	for i := range cards {
		c := cards[i]
		c.FactID = f.ID
		c.Ordinal = i
		if c.Factor == 0 {
			c.Factor = card.InitialFactor
		}
		require.NoError(t, st.CreateCard(ctx, &c))
		created = append(created, &c)
	}
	require.NoError(t, st.SyncCardTags(ctx, f.ID))
	return created
}

// NewCard returns a card template waiting in the new queue.
func NewCard(due float64) card.Card {
	return card.Card{Type: card.QueueNew, Queue: card.QueueNew, Due: due, Created: due}
}

// ReviewCard returns a card template waiting in the review queue.
func ReviewCard(due, interval float64, successive int) card.Card {
	return card.Card{
		Type:         card.QueueReview,
		Queue:        card.QueueReview,
		Due:          due,
		Interval:     interval,
		LastInterval: interval / 2,
		Reps:         successive,
		Successive:   successive,
		YesCount:     successive,
	}
}

// FailedCard returns a card template waiting in the failed queue.
func FailedCard(due float64, lapses int) card.Card {
	return card.Card{
		Type:   card.QueueFailed,
		Queue:  card.QueueFailed,
		Due:    due,
		Reps:   lapses + 1,
		Lapses: lapses,
	}
}
