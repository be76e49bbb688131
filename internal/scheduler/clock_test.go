package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/cardsched/internal/card"
	"github.com/at-ishikawa/cardsched/internal/testutil"
)

func TestScheduler_UpdateCutoff(t *testing.T) {
	jst := time.FixedZone("JST", 9*60*60)

	tests := []struct {
		name      string
		now       time.Time
		utcOffset int
		loc       *time.Location
		want      time.Time
	}{
		{
			name: "midnight in UTC",
			now:  time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC),
			loc:  time.UTC,
			want: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "day ends at 4am",
			now:       time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC),
			utcOffset: 4 * 3600,
			loc:       time.UTC,
			want:      time.Date(2024, 3, 5, 4, 0, 0, 0, time.UTC),
		},
		{
			name:      "before 4am still belongs to the previous day",
			now:       time.Date(2024, 3, 4, 2, 0, 0, 0, time.UTC),
			utcOffset: 4 * 3600,
			loc:       time.UTC,
			want:      time.Date(2024, 3, 4, 4, 0, 0, 0, time.UTC),
		},
		{
			name:      "local zone shifts the boundary",
			now:       time.Date(2024, 3, 4, 10, 0, 0, 0, jst),
			utcOffset: -5 * 3600,
			loc:       jst,
			want:      time.Date(2024, 3, 5, 4, 0, 0, 0, jst),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := testOptions()
			opts.UTCOffset = tt.utcOffset
			opts.Location = tt.loc
			s := newBareScheduler(t, opts, tt.now)

			assert.Equal(t, float64(tt.want.Unix()), s.FailedCutoff())
			assert.Equal(t, s.FailedCutoff(), s.DueCutoff())
			assert.Greater(t, s.FailedCutoff(), card.Seconds(tt.now))
			assert.LessOrEqual(t, s.FailedCutoff(), card.Seconds(tt.now.Add(24*time.Hour)))
		})
	}
}

func TestScheduler_UpdateCutoff_NotPerDay(t *testing.T) {
	opts := testOptions()
	opts.PerDay = false
	s := newBareScheduler(t, opts, testNow)

	assert.Equal(t, card.Seconds(testNow), s.DueCutoff())
	assert.Equal(t, float64(time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC).Unix()), s.FailedCutoff())
}

func TestScheduler_CheckDay_Rollover(t *testing.T) {
	ctx := context.Background()
	st := testutil.NewCollection(t)
	clock := &testClock{now: testNow}

	// Due one hour into the next day.
	dueTomorrow := float64(time.Date(2024, 3, 5, 1, 0, 0, 0, time.UTC).Unix())
	review := testutil.AddFact(t, st, "", testutil.ReviewCard(dueTomorrow, 3, 2))[0]

	s := newTestScheduler(t, st, testOptions(), clock)
	oldCutoff := s.FailedCutoff()
	assert.Zero(t, s.Counts().Review)

	c, err := s.GetCard(ctx)
	require.NoError(t, err)
	assert.Nil(t, c)

	clock.now = testNow.Add(16 * time.Hour)
	c, err = s.GetCard(ctx)
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, review.ID, c.ID)
	assert.Equal(t, oldCutoff+secondsPerDay, s.FailedCutoff())
	assert.Equal(t, 1, s.Counts().Review)
}
