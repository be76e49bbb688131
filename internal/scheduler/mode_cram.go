package scheduler

import (
	"context"
	"errors"
	"fmt"

	"github.com/at-ishikawa/cardsched/internal/card"
	"github.com/at-ishikawa/cardsched/internal/store"
)

var ErrInvalidCramOrder = errors.New("invalid cram order")

var cramOrders = map[string]string{
	"":              "`interval` DESC",
	"interval":      "`interval`",
	"interval desc": "`interval` DESC",
	"due":           "due",
	"due desc":      "due DESC",
	"factor":        "factor",
	"created":       "created",
	"modified":      "modified",
}

func cramOrderSQL(order string) (string, error) {
	orderBy, ok := cramOrders[order]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidCramOrder, order)
	}
	return orderBy, nil
}

// CramMode drills every card with one of its tags, due or not.
// Answers do not advance the cards' real schedule: the last interval is kept,
// and answered cards are set aside until the mode finishes. Failed cards are repeated.
type CramMode struct {
	*StandardMode
	tags    []string
	orderBy string

	lastInterval float64
}

func (m *CramMode) Name() string {
	return ModeCram
}

func (m *CramMode) Tags() []string {
	return m.tags
}

func (m *CramMode) NextCardID(ctx context.Context, s *Scheduler, check bool) (int64, error) {
	if err := s.checkDay(ctx); err != nil {
		return 0, err
	}
	s.purgeSpacedFacts()

	if !s.failedQueue.empty() && s.opts.FailedCardMax != 0 && s.failedSoonCount >= s.opts.FailedCardMax {
		return s.take(&s.failedQueue, fromFailed), nil
	}
	hasRev, err := s.revNoSpaced(ctx)
	if err != nil {
		return 0, err
	}
	if hasRev {
		return s.take(&s.revQueue, fromReview), nil
	}
	if !s.failedQueue.empty() {
		return s.take(&s.failedQueue, fromFailed), nil
	}
	if check {
		if err := s.Reset(ctx); err != nil {
			return 0, err
		}
		return s.mode.NextCardID(ctx, s, false)
	}
	if err := s.FinishScheduler(ctx); err != nil {
		return 0, err
	}
	return s.mode.NextCardID(ctx, s, true)
}

func (m *CramMode) cardsToCram() store.Query {
	return store.CardQuery("c.queue BETWEEN ? AND ? AND c.type >= 0", card.QueueFailed, card.QueueNew)
}

func (m *CramMode) FillReviewQueue(ctx context.Context, s *Scheduler) error {
	if s.revCount == 0 || !s.revQueue.empty() {
		return nil
	}
	q, err := s.mode.CardLimit(ctx, s, m.cardsToCram(), nil, nil)
	if err != nil {
		return err
	}
	items, err := s.store.QueryItems(ctx, q.Order(m.orderBy, s.opts.QueueLimit))
	if err != nil {
		return fmt.Errorf("store.QueryItems(cram) > %w", err)
	}
	s.revQueue.set(items)
	return nil
}

func (m *CramMode) RebuildCounts(ctx context.Context, s *Scheduler) error {
	n, err := s.count(ctx, m.cardsToCram(), nil, nil)
	if err != nil {
		return err
	}
	s.revCount = n
	s.failedSoonCount = s.failedQueue.len()
	s.newAvail = 0
	s.newCount = 0
	return nil
}

func (m *CramMode) AnswerCard(ctx context.Context, s *Scheduler, c *card.Card, ease card.Ease) error {
	m.lastInterval = c.LastInterval
	oldQueue := card.QueueFailed
	if s.selected.cardID == c.ID && s.selected.from == fromReview {
		oldQueue = card.QueueReview
	}
	if err := s.answerCard(ctx, c, ease, answerHooks{oldQueue: oldQueue, cram: true}); err != nil {
		return err
	}
	if ease == card.EaseFailed {
		s.failedQueue.push(QueueItem{CardID: c.ID, FactID: c.FactID, Due: c.Due})
	}
	return nil
}

func (m *CramMode) PreSave(_ *Scheduler, c *card.Card, _ card.Ease) {
	c.LastInterval = m.lastInterval
	c.Type = card.QueueBuriedSession
}

// CardLimit ignores the deck's tag filters: only the cram tags count.
func (m *CramMode) CardLimit(ctx context.Context, s *Scheduler, q store.Query, _, _ []string) (store.Query, error) {
	return s.limitByTags(ctx, q, m.tags, nil)
}

func (m *CramMode) Finish(ctx context.Context, s *Scheduler) error {
	return finishSpecial(ctx, s)
}
