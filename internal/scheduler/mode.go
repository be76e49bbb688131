package scheduler

import (
	"context"
	"errors"
	"fmt"

	"github.com/at-ishikawa/cardsched/internal/card"
	"github.com/at-ishikawa/cardsched/internal/store"
)

var ErrUnknownMode = errors.New("unknown scheduling mode")

// Mode names.
const (
	ModeStandard    = "standard"
	ModeReviewEarly = "review_early"
	ModeLearnMore   = "learn_more"
	ModeCram        = "cram"
)

// Mode is a bundle of the scheduling behaviors that differ between study modes.
// Modes are stateless apart from their own settings; the session state lives in the Scheduler.
type Mode interface {
	Name() string
	// NextCardID pops the next card to show, or returns 0 when nothing is due.
	// With check set, an empty result triggers a recount before giving up.
	NextCardID(ctx context.Context, s *Scheduler, check bool) (int64, error)
	FillReviewQueue(ctx context.Context, s *Scheduler) error
	RebuildCounts(ctx context.Context, s *Scheduler) error
	AnswerCard(ctx context.Context, s *Scheduler, c *card.Card, ease card.Ease) error
	// PreSave adjusts an answered card right before it is written.
	PreSave(s *Scheduler, c *card.Card, ease card.Ease)
	// CardLimit restricts q to the cards studied in this mode.
	CardLimit(ctx context.Context, s *Scheduler, q store.Query, active, inactive []string) (store.Query, error)
}

// Finisher is implemented by modes that fall back to Standard when they run out of cards.
type Finisher interface {
	Finish(ctx context.Context, s *Scheduler) error
}

// ParseModeName validates a mode name given by the user.
func ParseModeName(name string) (string, error) {
	switch name {
	case ModeStandard, ModeReviewEarly, ModeLearnMore, ModeCram:
		return name, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMode, name)
}

// SetMode switches the active mode without recounting. A nil mode is a programming error.
func (s *Scheduler) SetMode(m Mode) {
	if m == nil {
		panic("scheduler: nil mode")
	}
	s.mode = m
	s.logger.Info("scheduling mode set", "mode", m.Name())
}

func (s *Scheduler) SetupStandardScheduler(ctx context.Context) error {
	s.SetMode(s.standard)
	return s.Reset(ctx)
}

func (s *Scheduler) SetupReviewEarlyScheduler(ctx context.Context) error {
	s.SetMode(&ReviewEarlyMode{StandardMode: s.standard})
	return s.Reset(ctx)
}

func (s *Scheduler) SetupLearnMoreScheduler(ctx context.Context) error {
	s.SetMode(&LearnMoreMode{StandardMode: s.standard})
	return s.Reset(ctx)
}

// SetupCramScheduler studies every card carrying one of the tags regardless of its due date.
func (s *Scheduler) SetupCramScheduler(ctx context.Context, tags []string, order string) error {
	orderBy, err := cramOrderSQL(order)
	if err != nil {
		return err
	}
	s.failedQueue.clear()
	s.SetMode(&CramMode{StandardMode: s.standard, tags: tags, orderBy: orderBy})
	return s.Reset(ctx)
}

// FinishScheduler ends a special mode: cards it set aside are restored and Standard is active again.
func (s *Scheduler) FinishScheduler(ctx context.Context) error {
	if f, ok := s.mode.(Finisher); ok {
		if err := f.Finish(ctx, s); err != nil {
			return err
		}
	}
	s.SetMode(s.standard)
	return s.Reset(ctx)
}

// restoreBuried returns the cards set aside during a special session to their queue.
func (s *Scheduler) restoreBuried(ctx context.Context) error {
	return s.store.InTx(ctx, func(st store.Store) error {
		if _, err := st.Update(ctx, "cards", store.Values{
			"type": store.Expr("CASE WHEN successive != 0 THEN 1 WHEN reps != 0 THEN 0 ELSE 2 END"),
		}, "type = ?", card.QueueBuriedSession); err != nil {
			return fmt.Errorf("restore buried types > %w", err)
		}
		if _, err := st.Update(ctx, "cards", store.Values{
			"queue": store.Expr("type"),
		}, "queue = ?", card.QueueBuriedSession); err != nil {
			return fmt.Errorf("restore buried queues > %w", err)
		}
		return nil
	})
}

// finishSpecial is shared by the modes that fall back to Standard.
func finishSpecial(ctx context.Context, s *Scheduler) error {
	s.failedQueue.clear()
	return s.restoreBuried(ctx)
}

// StandardMode is the everyday scheduling.
type StandardMode struct{}

func (m *StandardMode) Name() string {
	return ModeStandard
}

func (m *StandardMode) NextCardID(ctx context.Context, s *Scheduler, check bool) (int64, error) {
	if err := s.checkDay(ctx); err != nil {
		return 0, err
	}
	s.purgeSpacedFacts()
	if err := s.fillLearnQueue(ctx); err != nil {
		return 0, err
	}

	// Failed card due to be shown again, or too many failed cards waiting?
	if !s.learnQueue.empty() {
		head := s.learnQueue.head()
		now := s.nowSeconds()
		if (s.opts.Delay0 != 0 && head.Due+s.opts.Delay0 < now) ||
			(s.opts.FailedCardMax != 0 && s.failedSoonCount >= s.opts.FailedCardMax) {
			return s.take(&s.learnQueue, fromLearn), nil
		}
	}

	hasNew, err := s.newNoSpaced(ctx)
	if err != nil {
		return 0, err
	}
	if hasNew && s.timeForNewCard() {
		if id := s.takeNewCard(); id != 0 {
			return id, nil
		}
	}

	hasRev, err := s.revNoSpaced(ctx)
	if err != nil {
		return 0, err
	}
	if hasRev {
		return s.take(&s.revQueue, fromReview), nil
	}

	if s.newCount != 0 {
		if id := s.takeNewCard(); id != 0 {
			return id, nil
		}
	}

	// Failed cards are shown early once nothing else is left, after the recount.
	if !check && (s.opts.CollapseTime != 0 || s.opts.Delay0 == 0) && !s.learnQueue.empty() {
		return s.take(&s.learnQueue, fromLearn), nil
	}

	return s.exhausted(ctx, check)
}

// exhausted is reached when no queue has a card: recount once, then leave a special mode.
func (s *Scheduler) exhausted(ctx context.Context, check bool) (int64, error) {
	if check {
		s.UpdateCutoff()
		if err := s.Reset(ctx); err != nil {
			return 0, err
		}
		return s.mode.NextCardID(ctx, s, false)
	}
	if _, ok := s.mode.(Finisher); ok {
		if err := s.FinishScheduler(ctx); err != nil {
			return 0, err
		}
		return s.mode.NextCardID(ctx, s, true)
	}
	return 0, nil
}

func (s *Scheduler) take(q *queue, from queueKind) int64 {
	item := q.pop()
	s.selected = selection{cardID: item.CardID, from: from}
	return item.CardID
}

func (m *StandardMode) FillReviewQueue(ctx context.Context, s *Scheduler) error {
	if s.revCount == 0 || !s.revQueue.empty() {
		return nil
	}
	q, err := s.mode.CardLimit(ctx, s,
		store.CardQuery("c.queue = ? AND c.due < ?", card.QueueReview, s.dueCutoff),
		s.opts.RevActive, s.opts.RevInactive)
	if err != nil {
		return err
	}
	items, err := s.store.QueryItems(ctx, q.Order(s.opts.ReviewCardOrder.SQL(), s.opts.QueueLimit))
	if err != nil {
		return fmt.Errorf("store.QueryItems(review) > %w", err)
	}
	s.revQueue.set(items)
	return nil
}

func (m *StandardMode) RebuildCounts(ctx context.Context, s *Scheduler) error {
	var err error
	if s.failedSoonCount, err = s.count(ctx,
		store.CardQuery("c.queue = ? AND c.due < ?", card.QueueFailed, s.failedCutoff),
		s.opts.RevActive, s.opts.RevInactive); err != nil {
		return err
	}
	if s.revCount, err = s.count(ctx,
		store.CardQuery("c.queue = ? AND c.due < ?", card.QueueReview, s.dueCutoff),
		s.opts.RevActive, s.opts.RevInactive); err != nil {
		return err
	}
	if s.newAvail, err = s.count(ctx,
		store.CardQuery("c.queue = ? AND c.due < ?", card.QueueNew, s.dueCutoff),
		s.opts.NewActive, s.opts.NewInactive); err != nil {
		return err
	}
	s.updateNewCountToday()
	return nil
}

// count returns the number of cards matching q within the mode's card limit.
func (s *Scheduler) count(ctx context.Context, q store.Query, active, inactive []string) (int, error) {
	q, err := s.mode.CardLimit(ctx, s, q, active, inactive)
	if err != nil {
		return 0, err
	}
	n, err := s.store.QueryScalar(ctx, q.Count())
	if err != nil {
		return 0, fmt.Errorf("store.QueryScalar(%s) > %w", q.Where[0], err)
	}
	return int(n), nil
}

func (m *StandardMode) AnswerCard(ctx context.Context, s *Scheduler, c *card.Card, ease card.Ease) error {
	return s.answerCard(ctx, c, ease, answerHooks{
		oldQueue:      c.Queue,
		spaceSiblings: true,
	})
}

func (m *StandardMode) PreSave(*Scheduler, *card.Card, card.Ease) {}

func (m *StandardMode) CardLimit(ctx context.Context, s *Scheduler, q store.Query, active, inactive []string) (store.Query, error) {
	return s.limitByTags(ctx, q, active, inactive)
}
