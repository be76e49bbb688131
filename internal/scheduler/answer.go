package scheduler

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/at-ishikawa/cardsched/internal/card"
	"github.com/at-ishikawa/cardsched/internal/revlog"
	"github.com/at-ishikawa/cardsched/internal/statistics"
	"github.com/at-ishikawa/cardsched/internal/store"
)

// answerHooks are the parts of answering that differ between modes.
type answerHooks struct {
	// oldQueue is the queue the card was shown from.
	oldQueue int
	// spaceSiblings pushes back the due sibling cards of the fact in storage.
	// Otherwise the fact is only spaced in memory.
	spaceSiblings bool
	cram          bool
}

// AnswerCard records the answer to c, reschedules it and updates the counts.
// On success c holds the stored state of the card.
func (s *Scheduler) AnswerCard(ctx context.Context, c *card.Card, ease card.Ease) error {
	if !ease.Valid() {
		return fmt.Errorf("%w: %d", card.ErrInvalidEase, int(ease))
	}
	return s.mode.AnswerCard(ctx, s, c, ease)
}

func (s *Scheduler) answerCard(ctx context.Context, c *card.Card, ease card.Ease, hooks answerHooks) error {
	nowTime := s.now()
	now := card.Seconds(nowTime)
	snapshot := revlog.NewSnapshot("Answer Card", c, nowTime)

	next := *c
	oldState := next.State()
	lastDelay := (now - next.Due) / secondsPerDay
	thinking := next.ThinkingTime(nowTime)
	_, special := s.mode.(Finisher)

	last := next.Interval
	next.Interval = nextInterval(s.opts, &next, s.adjustedDelay(&next), ease, next.FuzzOr(s.rand))
	// Reviewing early keeps the interval the card was on.
	if lastDelay >= 0 {
		next.LastInterval = last
	}
	if !next.IsNew() {
		next.LastDue = next.Due
	}
	next.Due = s.nextDue(&next, ease, oldState, hooks.cram, now)
	next.LastFactor = next.Factor
	if !special {
		updateFactor(&next, ease, s.averageFactor)
	}

	next.UpdateStats(ease, nowTime)
	next.Type = next.CardType()
	next.Queue = next.Type
	if ease != card.EaseFailed {
		next.Due = max(next.Due, s.dueCutoff+1)
	}
	s.mode.PreSave(s, &next, ease)

	var siblings siblingCounts
	err := s.store.InTx(ctx, func(st store.Store) error {
		if hooks.spaceSiblings {
			var err error
			if siblings, err = s.spaceSiblings(ctx, st, &next, now); err != nil {
				return err
			}
		}
		if _, err := st.Update(ctx, "cards", next.AnswerValues(), "id = ?", next.ID); err != nil {
			return fmt.Errorf("update card %d > %w", next.ID, err)
		}
		entry := revlog.NewEntry(&next, ease, lastDelay, revlog.KindFor(oldState, hooks.oldQueue, hooks.cram), nowTime)
		if err := st.AppendReview(ctx, entry); err != nil {
			return fmt.Errorf("store.AppendReview() > %w", err)
		}
		return s.recordStats(ctx, st, oldState, ease, thinking)
	})
	if err != nil {
		return err
	}

	s.adjustCounts(&next, ease, hooks.oldQueue, siblings)
	s.spacedFacts[next.FactID] = now + s.opts.NewSpacing
	*c = next
	s.undo.Push(snapshot)
	s.repsToday++

	s.logger.Debug("card answered",
		"card_id", c.ID,
		"ease", ease,
		"interval", c.Interval,
		"factor", c.Factor,
	)

	if s.isLeech(c) {
		return s.handleLeech(ctx, c)
	}
	return nil
}

// adjustCounts updates the cached counts once an answer was stored.
func (s *Scheduler) adjustCounts(c *card.Card, ease card.Ease, oldQueue int, siblings siblingCounts) {
	if ease == card.EaseFailed && c.Due < s.failedCutoff {
		s.failedSoonCount++
	}
	switch oldQueue {
	case card.QueueFailed:
		s.failedSoonCount--
	case card.QueueReview:
		s.revCount--
	default:
		s.newAvail--
		s.newSeenToday++
		s.newCount = max(s.newCount-1, 0)
	}
	s.failedSoonCount = max(s.failedSoonCount, 0)
	s.revCount = max(s.revCount-siblings.review, 0)
	s.newAvail = max(s.newAvail-siblings.new, 0)
	s.newCount = min(s.newCount, s.newAvail)
}

// siblingCounts are the sibling cards pushed out of today's review and new counts.
type siblingCounts struct {
	review int
	new    int
}

// spaceSiblings pushes back the other due cards of the fact so they are not shown right after c.
func (s *Scheduler) spaceSiblings(ctx context.Context, st store.Store, c *card.Card, now float64) (siblingCounts, error) {
	before, err := s.dueSiblings(ctx, st, c)
	if err != nil {
		return siblingCounts{}, err
	}

	revSpacing := strconv.FormatFloat(s.opts.RevSpacing, 'f', -1, 64)
	newDue := strconv.FormatFloat(now+s.opts.NewSpacing, 'f', -1, 64)
	due := "CASE WHEN queue = 1 THEN due + 86400 * (CASE WHEN `interval` * " + revSpacing + " < 1 THEN 0" +
		" ELSE `interval` * " + revSpacing + " END) WHEN queue = 2 THEN " + newDue + " END"
	if _, err := st.Update(ctx, "cards", store.Values{
		"due":      store.Expr(due),
		"modified": now,
	}, "id != ? AND fact_id = ? AND due < ? AND queue BETWEEN 1 AND 2", c.ID, c.FactID, s.dueCutoff); err != nil {
		return siblingCounts{}, fmt.Errorf("space siblings of card %d > %w", c.ID, err)
	}

	after, err := s.dueSiblings(ctx, st, c)
	if err != nil {
		return siblingCounts{}, err
	}
	return siblingCounts{
		review: before.review - after.review,
		new:    before.new - after.new,
	}, nil
}

func (s *Scheduler) dueSiblings(ctx context.Context, st store.Store, c *card.Card) (siblingCounts, error) {
	siblings := store.CardQuery("c.id != ? AND c.fact_id = ? AND c.due < ?", c.ID, c.FactID, s.dueCutoff)
	review, err := st.QueryScalar(ctx, siblings.And("c.queue = ?", card.QueueReview).Count())
	if err != nil {
		return siblingCounts{}, fmt.Errorf("store.QueryScalar(review siblings) > %w", err)
	}
	newCards, err := st.QueryScalar(ctx, siblings.And("c.queue = ?", card.QueueNew).Count())
	if err != nil {
		return siblingCounts{}, fmt.Errorf("store.QueryScalar(new siblings) > %w", err)
	}
	return siblingCounts{review: int(review), new: int(newCards)}, nil
}

// recordStats counts the answer in the global stats and in the stats of the current day.
func (s *Scheduler) recordStats(ctx context.Context, st store.Store, oldState card.State, ease card.Ease, thinking time.Duration) error {
	days := []struct {
		kind statistics.Kind
		day  string
	}{
		{statistics.KindGlobal, ""},
		{statistics.KindDaily, s.day().Format(statistics.DayLayout)},
	}
	for _, d := range days {
		stats, err := st.Stats(ctx, d.kind, d.day)
		if err != nil {
			return fmt.Errorf("store.Stats(%d, %q) > %w", d.kind, d.day, err)
		}
		stats.Record(oldState, ease, thinking)
		if err := st.SaveStats(ctx, stats); err != nil {
			return fmt.Errorf("store.SaveStats(%d, %q) > %w", d.kind, d.day, err)
		}
	}
	return nil
}
