package scheduler

import (
	"context"
	"fmt"

	"github.com/at-ishikawa/cardsched/internal/card"
	"github.com/at-ishikawa/cardsched/internal/store"
)

// ReviewEarlyMode shows reviews that are not due yet, soonest first.
// Cards answered correctly are set aside until the mode finishes.
type ReviewEarlyMode struct {
	*StandardMode
}

func (m *ReviewEarlyMode) Name() string {
	return ModeReviewEarly
}

func (m *ReviewEarlyMode) FillReviewQueue(ctx context.Context, s *Scheduler) error {
	if s.revCount == 0 || !s.revQueue.empty() {
		return nil
	}
	q, err := s.mode.CardLimit(ctx, s,
		store.CardQuery("c.queue = ? AND c.due > ?", card.QueueReview, s.dueCutoff),
		s.opts.RevActive, s.opts.RevInactive)
	if err != nil {
		return err
	}
	items, err := s.store.QueryItems(ctx, q.Order("due", s.opts.QueueLimit))
	if err != nil {
		return fmt.Errorf("store.QueryItems(review early) > %w", err)
	}
	s.revQueue.set(items)
	return nil
}

func (m *ReviewEarlyMode) RebuildCounts(ctx context.Context, s *Scheduler) error {
	if err := m.StandardMode.RebuildCounts(ctx, s); err != nil {
		return err
	}
	n, err := s.count(ctx,
		store.CardQuery("c.queue = ? AND c.due > ?", card.QueueReview, s.dueCutoff),
		s.opts.RevActive, s.opts.RevInactive)
	if err != nil {
		return err
	}
	s.revCount = n
	return nil
}

func (m *ReviewEarlyMode) PreSave(_ *Scheduler, c *card.Card, ease card.Ease) {
	if ease > card.EaseFailed {
		c.Queue = card.QueueBuriedSession
	}
}

func (m *ReviewEarlyMode) Finish(ctx context.Context, s *Scheduler) error {
	return finishSpecial(ctx, s)
}
