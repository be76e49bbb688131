package main

import (
	"bytes"
	"context"
	"log/slog"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/cardsched/internal/card"
	"github.com/at-ishikawa/cardsched/internal/deck"
	"github.com/at-ishikawa/cardsched/internal/scheduler"
	"github.com/at-ishikawa/cardsched/internal/testutil"
)

func TestSetupLogger(t *testing.T) {
	tests := []struct {
		name      string
		debugMode bool
		wantLevel slog.Level
	}{
		{
			name:      "debug mode enabled",
			debugMode: true,
			wantLevel: slog.LevelDebug,
		},
		{
			name:      "debug mode disabled",
			debugMode: false,
			wantLevel: slog.LevelInfo,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupLogger(tt.debugMode)
			logger := slog.Default()
			assert.NotNil(t, logger)
			assert.Equal(t, tt.wantLevel <= slog.LevelDebug, logger.Enabled(context.Background(), slog.LevelDebug))
		})
	}
}

func TestNewRootCommand(t *testing.T) {
	cmd := newRootCommand()

	assert.Equal(t, "cardsched", cmd.Use)
	for _, name := range []string{"study", "counts", "stats", "migrate", "add", "cards", "deck"} {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, sub.Name())
	}
	assert.NotNil(t, cmd.PersistentFlags().Lookup("config"))
	assert.NotNil(t, cmd.PersistentFlags().Lookup("debug"))
}

func TestModeFlag(t *testing.T) {
	tests := []struct {
		value   string
		want    ModeFlag
		wantErr bool
	}{
		{value: "standard", want: scheduler.ModeStandard},
		{value: "review_early", want: scheduler.ModeReviewEarly},
		{value: "learn_more", want: scheduler.ModeLearnMore},
		{value: "cram", want: scheduler.ModeCram},
		{value: "marathon", want: scheduler.ModeStandard, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			m := ModeFlag(scheduler.ModeStandard)
			err := m.Set(tt.value)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, m)
			assert.Equal(t, string(tt.want), m.String())
		})
	}
	assert.Equal(t, "ModeFlag", (*ModeFlag)(nil).Type())
	assert.Equal(t, "", (*ModeFlag)(nil).String())
}

func TestParseIDs(t *testing.T) {
	ids, err := parseIDs([]string{"3", "10"})
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 10}, ids)

	_, err = parseIDs([]string{"3", "x"})
	assert.Error(t, err)
}

func TestStatsCommand_InvalidFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "month without year", args: []string{"--month", "3"}, want: "--month requires --year"},
		{name: "invalid month", args: []string{"--year", "2025", "--month", "13"}, want: "--month must be between 1 and 12"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := newStatsCommand()
			cmd.SetArgs(tt.args)
			err := cmd.Execute()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestStudyCommand_CramRequiresTags(t *testing.T) {
	cmd := newStudyCommand()
	cmd.SetArgs([]string{"--mode", "cram"})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--tags is required")
}

// execute runs the root command against the collection of the test config.
func execute(t *testing.T, stdin string, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCommand()
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	require.NoError(t, cmd.Execute(), strings.Join(args, " "))
	return out.String()
}

func TestCommands_Collection(t *testing.T) {
	oldConfigFile := configFile
	defer func() { configFile = oldConfigFile }()
	cfgPath := testutil.SetupTestConfig(t, t.TempDir())

	out := execute(t, "", "--config", cfgPath, "migrate")
	assert.Contains(t, out, "The collection is up to date.")

	out = execute(t, "", "--config", cfgPath, "add", "--tags", "verbs", "--cards", "2")
	assert.Contains(t, out, "Added fact 1 with cards [1 2]")

	out = execute(t, "", "--config", cfgPath, "counts", "--yaml")
	assert.Contains(t, out, "new: 2\n")

	out = execute(t, "3\nq\n", "--config", cfgPath, "study")
	assert.Contains(t, out, "Starting a standard session: 0 failed, 0 review and 2 new cards")
	assert.Contains(t, out, "1 cards answered.")

	out = execute(t, "", "--config", cfgPath, "counts")
	assert.Contains(t, out, "Answered today: 1 (1 new)")

	execute(t, "", "--config", cfgPath, "cards", "suspend", "2")
	out = execute(t, "", "--config", cfgPath, "counts", "--yaml")
	assert.Contains(t, out, "new: 0\n")
	execute(t, "", "--config", cfgPath, "cards", "unsuspend", "2")

	execute(t, "", "--config", cfgPath, "deck", "set", "newCardsPerDay", "5")
	out = execute(t, "", "--config", cfgPath, "deck", "show")
	assert.Contains(t, out, "newCardsPerDay: \"5\"")

	out = execute(t, "", "--config", cfgPath, "stats")
	assert.Contains(t, out, "Review Statistics Report")
	assert.Contains(t, out, "Totals:")
}

func TestDeckSetCommand_UnknownVariable(t *testing.T) {
	cmd := newRootCommand()
	cmd.SetArgs([]string{"deck", "set", "new_cards_per_day", "5"})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown deck variable")
}

func TestAddFact_NewCardOrder(t *testing.T) {
	now := time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC)
	draws := []float64{0.2, 0.9, 0.5}

	tests := []struct {
		name   string
		order  deck.NewCardOrder
		wantDs []float64
	}{
		{
			name:   "random order spreads facts over the last day",
			order:  deck.NewCardsRandom,
			wantDs: []float64{0.2 * 86400, 0.2 * 86400, 0.9 * 86400, 0.9 * 86400, 0.5 * 86400, 0.5 * 86400},
		},
		{
			name:   "old first keeps creation time",
			order:  deck.NewCardsOldFirst,
			wantDs: []float64{0, 0, 0, 0, 0, 0},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			st := testutil.NewCollection(t)
			i := 0
			gen := func() float64 {
				v := draws[i]
				i++
				return v
			}

			var ids []int64
			for range draws {
				_, created, err := addFact(ctx, st, "verbs", 2, tt.order, now, gen)
				require.NoError(t, err)
				ids = append(ids, created...)
			}

			var dues []float64
			for k, id := range ids {
				c, err := st.Card(ctx, id)
				require.NoError(t, err)
				assert.InDelta(t, card.Seconds(now)-tt.wantDs[k], c.Due, 0.001)
				dues = append(dues, c.Due)
			}
			if tt.order == deck.NewCardsRandom {
				assert.False(t, sort.Float64sAreSorted(dues), "due order follows insertion order")
				assert.Equal(t, 3, i)
			} else {
				assert.Zero(t, i)
			}
		})
	}
}
