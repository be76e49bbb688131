package card

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEase(t *testing.T) {
	tests := []struct {
		name    string
		value   int
		want    Ease
		wantErr bool
	}{
		{name: "failed", value: 1, want: EaseFailed},
		{name: "easy", value: 4, want: EaseEasy},
		{name: "zero", value: 0, wantErr: true},
		{name: "five", value: 5, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseEase(tt.value)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidEase)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCard_State(t *testing.T) {
	tests := []struct {
		name string
		card Card
		want State
	}{
		{name: "never answered", card: Card{Reps: 0, Interval: 30}, want: StateNew},
		{name: "short interval", card: Card{Reps: 3, Interval: 21}, want: StateYoung},
		{name: "long interval", card: Card{Reps: 8, Interval: 21.5}, want: StateMature},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.card.State())
		})
	}
}

func TestCard_CardType(t *testing.T) {
	tests := []struct {
		name string
		card Card
		want int
	}{
		{name: "new", card: Card{}, want: QueueNew},
		{name: "failed last time", card: Card{Reps: 2, Successive: 0}, want: QueueFailed},
		{name: "on a streak", card: Card{Reps: 2, Successive: 2}, want: QueueReview},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.card.CardType())
		})
	}
}

func TestCard_FuzzOr(t *testing.T) {
	calls := 0
	gen := func() float64 {
		calls++
		return 0.25
	}

	c := Card{}
	assert.Equal(t, 0.25, c.FuzzOr(gen))
	assert.Equal(t, 0.25, c.FuzzOr(gen))
	assert.Equal(t, 1, calls)

	preset := Card{Fuzz: 0.75}
	assert.Equal(t, 0.75, preset.FuzzOr(gen))
	assert.Equal(t, 1, calls)
}

func TestCard_ThinkingTime(t *testing.T) {
	start := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		start time.Time
		now   time.Time
		want  time.Duration
	}{
		{name: "timer not started", now: start, want: 0},
		{name: "within limit", start: start, now: start.Add(12 * time.Second), want: 12 * time.Second},
		{name: "clamped to a minute", start: start, now: start.Add(5 * time.Minute), want: time.Minute},
		{name: "clock went backwards", start: start, now: start.Add(-time.Second), want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Card{}
			c.StartTimer(tt.start)
			assert.Equal(t, tt.want, c.ThinkingTime(tt.now))
		})
	}
}

func TestCard_UpdateStats(t *testing.T) {
	now := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)

	t.Run("failure resets the streak", func(t *testing.T) {
		c := Card{Reps: 4, Successive: 3, Lapses: 1, YesCount: 3, NoCount: 1}
		c.StartTimer(now.Add(-10 * time.Second))
		c.UpdateStats(EaseFailed, now)

		assert.Equal(t, 5, c.Reps)
		assert.Equal(t, 0, c.Successive)
		assert.Equal(t, 2, c.Lapses)
		assert.Equal(t, 2, c.NoCount)
		assert.Equal(t, 10.0, c.ReviewTime)
		assert.Equal(t, 2.0, c.AverageTime)
		assert.Equal(t, Seconds(now), c.Modified)
		assert.Equal(t, Seconds(now), c.FirstAnswered)
	})

	t.Run("success extends the streak", func(t *testing.T) {
		c := Card{Reps: 1, FirstAnswered: 100}
		c.UpdateStats(EaseMid, now)

		assert.Equal(t, 2, c.Reps)
		assert.Equal(t, 1, c.Successive)
		assert.Equal(t, 0, c.Lapses)
		assert.Equal(t, 1, c.YesCount)
		assert.Equal(t, 100.0, c.FirstAnswered)
	})
}

func TestSecondsRoundTrip(t *testing.T) {
	now := time.Date(2025, 3, 4, 5, 6, 7, 500_000_000, time.UTC)
	assert.Equal(t, 1741064767.5, Seconds(now))
	assert.True(t, now.Equal(Time(Seconds(now))))
}
