package scheduler

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/cardsched/internal/card"
	"github.com/at-ishikawa/cardsched/internal/testutil"
)

func TestScheduler_SuspendCards(t *testing.T) {
	ctx := context.Background()
	st := testutil.NewCollection(t)
	first := testutil.AddFact(t, st, "", testutil.ReviewCard(nowSeconds()-secondsPerDay, 5, 3))[0]
	testutil.AddFact(t, st, "", testutil.ReviewCard(nowSeconds()-secondsPerDay, 8, 3))

	s := newTestScheduler(t, st, testOptions(), &testClock{now: testNow})
	require.Equal(t, 2, s.Counts().Review)

	require.NoError(t, s.SuspendCards(ctx, nil))
	require.NoError(t, s.SuspendCards(ctx, []int64{first.ID}))
	assert.Equal(t, 1, s.Counts().Review)
	stored, err := st.Card(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, card.QueueSuspended, stored.Queue)
	assert.Equal(t, card.QueueReview, stored.Type)

	require.NoError(t, s.UnsuspendCards(ctx, []int64{first.ID}))
	assert.Equal(t, 2, s.Counts().Review)
	stored, err = st.Card(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, card.QueueReview, stored.Queue)
}

func TestScheduler_BuryFact(t *testing.T) {
	ctx := context.Background()
	st := testutil.NewCollection(t)
	cards := testutil.AddFact(t, st, "",
		testutil.ReviewCard(nowSeconds()-secondsPerDay, 5, 3),
		testutil.NewCard(1),
	)
	suspended := testutil.ReviewCard(nowSeconds()-secondsPerDay, 5, 3)
	suspended.Queue = card.QueueSuspended
	other := testutil.AddFact(t, st, "", suspended)[0]

	s := newTestScheduler(t, st, testOptions(), &testClock{now: testNow})
	require.Equal(t, Counts{Review: 1, New: 1, NewAvailable: 1}, s.Counts())

	require.NoError(t, s.BuryFact(ctx, cards[0].FactID))
	assert.Equal(t, Counts{}, s.Counts())
	for _, c := range cards {
		stored, err := st.Card(ctx, c.ID)
		require.NoError(t, err)
		assert.Equal(t, card.QueueBuried, stored.Queue)
	}

	require.NoError(t, s.UnburyAll(ctx))
	assert.Equal(t, Counts{Review: 1, New: 1, NewAvailable: 1}, s.Counts())

	// Suspended cards are left alone.
	stored, err := st.Card(ctx, other.ID)
	require.NoError(t, err)
	assert.Equal(t, card.QueueSuspended, stored.Queue)
}

func TestScheduler_RebuildTypes(t *testing.T) {
	ctx := context.Background()
	st := testutil.NewCollection(t)

	stale := testutil.ReviewCard(nowSeconds()-secondsPerDay, 5, 3)
	stale.Type = card.QueueFailed
	stale.Queue = card.QueueFailed
	suspended := testutil.NewCard(1)
	suspended.Type = card.QueueReview
	suspended.Queue = card.QueueSuspended
	cards := testutil.AddFact(t, st, "", stale, suspended)

	s := newTestScheduler(t, st, testOptions(), &testClock{now: testNow})
	require.Equal(t, 0, s.Counts().Review)

	require.NoError(t, s.RebuildTypes(ctx))
	assert.Equal(t, 1, s.Counts().Review)

	got, err := st.Card(ctx, cards[0].ID)
	require.NoError(t, err)
	assert.Equal(t, card.QueueReview, got.Type)
	assert.Equal(t, card.QueueReview, got.Queue)

	got, err = st.Card(ctx, cards[1].ID)
	require.NoError(t, err)
	assert.Equal(t, card.QueueNew, got.Type)
	assert.Equal(t, card.QueueSuspended, got.Queue)
}

func TestScheduler_RebuildTypes_KeepsCramMarkers(t *testing.T) {
	ctx := context.Background()
	st := testutil.NewCollection(t)
	drilled := testutil.AddFact(t, st, "verbs", testutil.ReviewCard(nowSeconds()+10*secondsPerDay, 10, 3))[0]
	testutil.AddFact(t, st, "verbs", testutil.ReviewCard(nowSeconds()+3*secondsPerDay, 4, 2))

	s := newTestScheduler(t, st, testOptions(), &testClock{now: testNow})
	require.NoError(t, s.SetupCramScheduler(ctx, []string{"verbs"}, ""))

	c, err := s.GetCard(ctx)
	require.NoError(t, err)
	require.Equal(t, drilled.ID, c.ID)
	require.NoError(t, s.AnswerCard(ctx, c, card.EaseMid))

	require.NoError(t, s.RebuildTypes(ctx))
	assert.Equal(t, ModeCram, s.Mode().Name())
	assert.Equal(t, 1, s.Counts().Review)

	stored, err := st.Card(ctx, drilled.ID)
	require.NoError(t, err)
	assert.Equal(t, card.QueueBuriedSession, stored.Type)
	assert.Equal(t, card.QueueReview, stored.Queue)

	require.NoError(t, s.FinishScheduler(ctx))
	stored, err = st.Card(ctx, drilled.ID)
	require.NoError(t, err)
	assert.Equal(t, card.QueueReview, stored.Type)
	assert.Equal(t, card.QueueReview, stored.Queue)
}
