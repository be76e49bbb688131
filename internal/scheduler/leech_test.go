package scheduler

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/at-ishikawa/cardsched/internal/card"
	"github.com/at-ishikawa/cardsched/internal/fact"
	mock_store "github.com/at-ishikawa/cardsched/internal/mocks/store"
	"github.com/at-ishikawa/cardsched/internal/store"
	"github.com/at-ishikawa/cardsched/internal/testutil"
)

func intPtr(v int) *int {
	return &v
}

func TestScheduler_IsLeech(t *testing.T) {
	tests := []struct {
		name       string
		leechFails *int
		card       card.Card
		want       bool
	}{
		{name: "threshold reached", leechFails: intPtr(8), card: card.Card{Reps: 9, Lapses: 8}, want: true},
		{name: "below threshold", leechFails: intPtr(8), card: card.Card{Reps: 8, Lapses: 7}, want: false},
		{name: "between repeats", leechFails: intPtr(8), card: card.Card{Reps: 11, Lapses: 10}, want: false},
		{name: "half threshold later", leechFails: intPtr(8), card: card.Card{Reps: 13, Lapses: 12}, want: true},
		{name: "one threshold later", leechFails: intPtr(8), card: card.Card{Reps: 17, Lapses: 16}, want: true},
		{name: "threshold of one", leechFails: intPtr(1), card: card.Card{Reps: 4, Lapses: 3}, want: true},
		{name: "last answer passed", leechFails: intPtr(8), card: card.Card{Reps: 9, Lapses: 8, Successive: 1}, want: false},
		{name: "disabled", card: card.Card{Reps: 9, Lapses: 8}, want: false},
		{name: "zero threshold", leechFails: intPtr(0), card: card.Card{Reps: 9, Lapses: 8}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := testOptions()
			opts.LeechFails = tt.leechFails
			s := newBareScheduler(t, opts, testNow)
			assert.Equal(t, tt.want, s.isLeech(&tt.card))
		})
	}
}

func TestScheduler_HandleLeech(t *testing.T) {
	tests := []struct {
		name          string
		suspend       bool
		wantQueue     int
		wantSuspended bool
		wantFailed    int
	}{
		{
			name:          "suspended",
			suspend:       true,
			wantQueue:     card.QueueSuspended,
			wantSuspended: true,
			wantFailed:    0,
		},
		{
			name:       "only tagged",
			suspend:    false,
			wantQueue:  card.QueueFailed,
			wantFailed: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			st := testutil.NewCollection(t)
			tmpl := testutil.ReviewCard(nowSeconds()-secondsPerDay, 5, 3)
			tmpl.Lapses = 7
			leech := testutil.AddFact(t, st, "verbs", tmpl)[0]

			opts := testOptions()
			opts.LeechFails = intPtr(8)
			opts.SuspendLeeches = tt.suspend
			s := newTestScheduler(t, st, opts, &testClock{now: testNow})

			var tagged []int64
			s.AddTagListener(func(_ context.Context, factID int64) {
				tagged = append(tagged, factID)
			})

			c, err := s.GetCard(ctx)
			require.NoError(t, err)
			require.Equal(t, leech.ID, c.ID)
			require.NoError(t, s.AnswerCard(ctx, c, card.EaseFailed))

			assert.True(t, c.LeechFlag)
			assert.Equal(t, tt.wantSuspended, c.SuspendedFlag)
			assert.Equal(t, tt.wantQueue, c.Queue)
			assert.Equal(t, []int64{leech.FactID}, tagged)
			assert.Equal(t, tt.wantFailed, s.Counts().Failed)

			f, err := st.Fact(ctx, leech.FactID)
			require.NoError(t, err)
			assert.Equal(t, "Leech verbs", f.Tags)

			ids, err := st.TagIDs(ctx, []string{"Leech"})
			require.NoError(t, err)
			assert.Len(t, ids, 1)

			stored, err := st.Card(ctx, leech.ID)
			require.NoError(t, err)
			assert.Equal(t, tt.wantQueue, stored.Queue)
		})
	}
}

func TestScheduler_HandleLeech_Mock(t *testing.T) {
	inTx := func(m *mock_store.MockStore) {
		m.EXPECT().InTx(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, fn func(store.Store) error) error {
				return fn(m)
			})
	}

	tests := []struct {
		name      string
		setupMock func(m *mock_store.MockStore)
	}{
		{
			name: "suspend failure is returned from the tagging transaction",
			setupMock: func(m *mock_store.MockStore) {
				inTx(m)
				m.EXPECT().Fact(gomock.Any(), int64(3)).Return(&fact.Fact{ID: 3, Tags: "verbs"}, nil)
				m.EXPECT().UpdateFactTags(gomock.Any(), gomock.Any()).Return(nil)
				m.EXPECT().SyncCardTags(gomock.Any(), int64(3)).Return(nil)
				m.EXPECT().Update(gomock.Any(), "cards", gomock.Any(), "id IN (?)", []int64{7}).
					Return(int64(0), errors.New("database is locked"))
			},
		},
		{
			name: "missing fact",
			setupMock: func(m *mock_store.MockStore) {
				inTx(m)
				m.EXPECT().Fact(gomock.Any(), int64(3)).Return(nil, store.ErrNotFound)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			m := mock_store.NewMockStore(ctrl)
			tt.setupMock(m)

			opts := testOptions()
			opts.LeechFails = intPtr(8)
			opts.SuspendLeeches = true
			s := newBareScheduler(t, opts, testNow)
			s.store = m
			var tagged []int64
			s.AddTagListener(func(_ context.Context, factID int64) {
				tagged = append(tagged, factID)
			})

			c := &card.Card{ID: 7, FactID: 3, Queue: card.QueueFailed, Reps: 9, Lapses: 8}
			err := s.handleLeech(context.Background(), c)
			assert.Error(t, err)
			assert.Empty(t, tagged)
			assert.False(t, c.LeechFlag)
			assert.False(t, c.SuspendedFlag)
			assert.Equal(t, card.QueueFailed, c.Queue)
		})
	}
}
