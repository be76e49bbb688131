package scheduler

import (
	"context"
	"fmt"

	"github.com/at-ishikawa/cardsched/internal/card"
	"github.com/at-ishikawa/cardsched/internal/fact"
	"github.com/at-ishikawa/cardsched/internal/store"
)

// isLeech reports whether the failure just recorded on c makes it a leech.
// It fires when the threshold is reached and again every half threshold failures after it.
func (s *Scheduler) isLeech(c *card.Card) bool {
	fmax, ok := s.opts.LeechThreshold()
	if !ok || fmax <= 0 {
		return false
	}
	lapses := c.Lapses
	return !c.IsRev() && lapses >= fmax && (fmax-lapses)%max(fmax/2, 1) == 0
}

// handleLeech tags the fact of c as a leech and suspends c when configured to.
// Both writes are stored together or not at all.
func (s *Scheduler) handleLeech(ctx context.Context, c *card.Card) error {
	s.logger.Info("card is a leech", "card_id", c.ID, "lapses", c.Lapses)

	err := s.store.InTx(ctx, func(st store.Store) error {
		f, err := st.Fact(ctx, c.FactID)
		if err != nil {
			return fmt.Errorf("store.Fact(%d) > %w", c.FactID, err)
		}
		f.Tags = fact.Canonify(fact.AddTags(fact.LeechTag, f.Tags))
		f.Modified = s.nowSeconds()
		if err := st.UpdateFactTags(ctx, f); err != nil {
			return fmt.Errorf("store.UpdateFactTags(%d) > %w", f.ID, err)
		}
		if err := st.SyncCardTags(ctx, f.ID); err != nil {
			return fmt.Errorf("store.SyncCardTags(%d) > %w", f.ID, err)
		}
		if s.opts.SuspendLeeches {
			return s.suspend(ctx, st, []int64{c.ID})
		}
		return nil
	})
	if err != nil {
		return err
	}

	for _, l := range s.listeners {
		l(ctx, c.FactID)
	}
	c.LeechFlag = true
	if s.opts.SuspendLeeches {
		c.Queue = card.QueueSuspended
		c.SuspendedFlag = true
	}
	return s.Reset(ctx)
}
