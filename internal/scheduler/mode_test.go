package scheduler

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/cardsched/internal/card"
	"github.com/at-ishikawa/cardsched/internal/revlog"
	"github.com/at-ishikawa/cardsched/internal/testutil"
)

func TestParseModeName(t *testing.T) {
	for _, name := range []string{ModeStandard, ModeReviewEarly, ModeLearnMore, ModeCram} {
		got, err := ParseModeName(name)
		require.NoError(t, err)
		assert.Equal(t, name, got)
	}

	_, err := ParseModeName("marathon")
	assert.ErrorIs(t, err, ErrUnknownMode)
}

func TestCramOrderSQL(t *testing.T) {
	tests := []struct {
		order   string
		want    string
		wantErr error
	}{
		{order: "", want: "`interval` DESC"},
		{order: "interval", want: "`interval`"},
		{order: "due desc", want: "due DESC"},
		{order: "factor", want: "factor"},
		{order: "random", wantErr: ErrInvalidCramOrder},
	}

	for _, tt := range tests {
		t.Run(tt.order, func(t *testing.T) {
			got, err := cramOrderSQL(tt.order)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestScheduler_SetMode_Nil(t *testing.T) {
	s := newBareScheduler(t, testOptions(), testNow)
	assert.Panics(t, func() { s.SetMode(nil) })
}

func TestScheduler_SetupCramScheduler_InvalidOrder(t *testing.T) {
	s := newTestScheduler(t, testutil.NewCollection(t), testOptions(), &testClock{now: testNow})
	err := s.SetupCramScheduler(context.Background(), []string{"verbs"}, "random")
	assert.ErrorIs(t, err, ErrInvalidCramOrder)
	assert.Equal(t, ModeStandard, s.Mode().Name())
}

func TestScheduler_Cram(t *testing.T) {
	ctx := context.Background()
	st := testutil.NewCollection(t)
	drilled := testutil.AddFact(t, st, "verbs", testutil.ReviewCard(nowSeconds()+10*secondsPerDay, 10, 3))[0]
	failing := testutil.AddFact(t, st, "verbs", testutil.ReviewCard(nowSeconds()+3*secondsPerDay, 4, 2))[0]
	untagged := testutil.AddFact(t, st, "nouns", testutil.ReviewCard(nowSeconds()-secondsPerDay, 5, 3))[0]

	s := newTestScheduler(t, st, testOptions(), &testClock{now: testNow})
	require.Equal(t, 1, s.Counts().Review)

	require.NoError(t, s.SetupCramScheduler(ctx, []string{"verbs"}, ""))
	assert.Equal(t, ModeCram, s.Mode().Name())
	assert.Equal(t, Counts{Review: 2}, s.Counts())

	// Longest interval first.
	c, err := s.GetCard(ctx)
	require.NoError(t, err)
	require.Equal(t, drilled.ID, c.ID)
	require.NoError(t, s.AnswerCard(ctx, c, card.EaseMid))
	assert.InDelta(t, 12.5, c.Interval, 1e-9)
	assert.InDelta(t, 5.0, c.LastInterval, 1e-9)
	assert.InDelta(t, 2.5, c.Factor, 1e-9)
	assert.Equal(t, card.QueueBuriedSession, c.Type)

	c, err = s.GetCard(ctx)
	require.NoError(t, err)
	require.Equal(t, failing.ID, c.ID)
	require.NoError(t, s.AnswerCard(ctx, c, card.EaseFailed))
	assert.Equal(t, Counts{Failed: 1, RepsToday: 2}, s.Counts())

	// Failed cards come back in the same session.
	c, err = s.GetCard(ctx)
	require.NoError(t, err)
	require.Equal(t, failing.ID, c.ID)
	require.NoError(t, s.AnswerCard(ctx, c, card.EaseMid))

	// Cramming is over: the set aside cards are restored and Standard picks up the due card.
	c, err = s.GetCard(ctx)
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, untagged.ID, c.ID)
	assert.Same(t, s.standard, s.Mode())

	for _, id := range []int64{drilled.ID, failing.ID} {
		stored, err := st.Card(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, card.QueueReview, stored.Type)
		assert.Equal(t, card.QueueReview, stored.Queue)
	}

	entries, err := st.Reviews(ctx, 0)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	for _, e := range entries {
		assert.Equal(t, revlog.KindCram, e.Kind)
	}
}

func TestScheduler_ReviewEarly(t *testing.T) {
	ctx := context.Background()
	st := testutil.NewCollection(t)
	early := testutil.AddFact(t, st, "", testutil.ReviewCard(nowSeconds()+5*secondsPerDay, 10, 3))[0]

	s := newTestScheduler(t, st, testOptions(), &testClock{now: testNow})
	require.Zero(t, s.Counts().Review)

	require.NoError(t, s.SetupReviewEarlyScheduler(ctx))
	assert.Equal(t, ModeReviewEarly, s.Mode().Name())
	assert.Equal(t, 1, s.Counts().Review)

	c, err := s.GetCard(ctx)
	require.NoError(t, err)
	require.Equal(t, early.ID, c.ID)
	require.NoError(t, s.AnswerCard(ctx, c, card.EaseMid))
	assert.Equal(t, card.QueueBuriedSession, c.Queue)
	assert.InDelta(t, 2.5, c.Factor, 1e-9)
	// Only the days actually waited count.
	assert.Less(t, c.Interval, 10*2.5)

	c, err = s.GetCard(ctx)
	require.NoError(t, err)
	assert.Nil(t, c)
	assert.Same(t, s.standard, s.Mode())

	stored, err := st.Card(ctx, early.ID)
	require.NoError(t, err)
	assert.Equal(t, card.QueueReview, stored.Queue)
}

func TestScheduler_LearnMore(t *testing.T) {
	ctx := context.Background()
	st := testutil.NewCollection(t)
	for i := range 3 {
		testutil.AddFact(t, st, "", testutil.NewCard(float64(i+1)))
	}

	opts := testOptions()
	opts.NewCardsPerDay = 1
	s := newTestScheduler(t, st, opts, &testClock{now: testNow})
	assert.Equal(t, Counts{New: 1, NewAvailable: 3}, s.Counts())

	require.NoError(t, s.SetupLearnMoreScheduler(ctx))
	assert.Equal(t, ModeLearnMore, s.Mode().Name())
	assert.Equal(t, Counts{New: 3, NewAvailable: 3}, s.Counts())

	require.NoError(t, s.FinishScheduler(ctx))
	assert.Same(t, s.standard, s.Mode())
	assert.Equal(t, Counts{New: 1, NewAvailable: 3}, s.Counts())
}

func TestStandardMode_NextCardID_FailedLast(t *testing.T) {
	ctx := context.Background()
	st := testutil.NewCollection(t)
	// Failed 100 seconds ago, so not due again before delay0 passes.
	failed := testutil.AddFact(t, st, "", testutil.FailedCard(nowSeconds()-100, 1))[0]
	const unrelatedFact = int64(999)

	tests := []struct {
		name         string
		check        bool
		wantRecounts bool
	}{
		{name: "shown early without a recount", check: false, wantRecounts: false},
		{name: "recounted before showing it early", check: true, wantRecounts: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestScheduler(t, st, testOptions(), &testClock{now: testNow})
			require.Equal(t, 1, s.Counts().Failed)
			s.spacedFacts[unrelatedFact] = nowSeconds() + 3600

			id, err := s.mode.NextCardID(ctx, s, tt.check)
			require.NoError(t, err)
			assert.Equal(t, failed.ID, id)
			if tt.wantRecounts {
				assert.NotContains(t, s.spacedFacts, unrelatedFact)
			} else {
				assert.Contains(t, s.spacedFacts, unrelatedFact)
			}
		})
	}
}
