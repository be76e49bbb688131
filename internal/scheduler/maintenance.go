package scheduler

import (
	"context"
	"fmt"

	"github.com/at-ishikawa/cardsched/internal/card"
	"github.com/at-ishikawa/cardsched/internal/store"
)

// SuspendCards takes the cards out of every queue until they are unsuspended.
func (s *Scheduler) SuspendCards(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	if err := s.suspend(ctx, s.store, ids); err != nil {
		return err
	}
	return s.Reset(ctx)
}

func (s *Scheduler) suspend(ctx context.Context, st store.Store, ids []int64) error {
	if _, err := st.Update(ctx, "cards", store.Values{
		"queue":    card.QueueSuspended,
		"modified": s.nowSeconds(),
	}, "id IN (?)", ids); err != nil {
		return fmt.Errorf("suspend cards > %w", err)
	}
	return nil
}

func (s *Scheduler) UnsuspendCards(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	if _, err := s.store.Update(ctx, "cards", store.Values{
		"queue":    store.Expr("type"),
		"modified": s.nowSeconds(),
	}, "queue = ? AND id IN (?)", card.QueueSuspended, ids); err != nil {
		return fmt.Errorf("unsuspend cards > %w", err)
	}
	return s.Reset(ctx)
}

// BuryFact hides the cards of a fact until UnburyAll is called.
func (s *Scheduler) BuryFact(ctx context.Context, factID int64) error {
	if _, err := s.store.Update(ctx, "cards", store.Values{
		"queue":    card.QueueBuried,
		"modified": s.nowSeconds(),
	}, "fact_id = ? AND queue >= 0", factID); err != nil {
		return fmt.Errorf("bury fact %d > %w", factID, err)
	}
	return s.Reset(ctx)
}

func (s *Scheduler) UnburyAll(ctx context.Context) error {
	if _, err := s.store.Exec(ctx, "UPDATE cards SET queue = type WHERE queue = ?", card.QueueBuried); err != nil {
		return fmt.Errorf("unbury cards > %w", err)
	}
	return s.Reset(ctx)
}

// RebuildTypes recomputes the type of every card from its history and moves
// the cards that are not suspended or buried back to the matching queue.
// Cards set aside by a special session keep their marker.
func (s *Scheduler) RebuildTypes(ctx context.Context) error {
	err := s.store.InTx(ctx, func(st store.Store) error {
		if _, err := st.Exec(ctx,
			"UPDATE cards SET type = CASE WHEN successive != 0 THEN 1 WHEN reps != 0 THEN 0 ELSE 2 END WHERE type >= 0"); err != nil {
			return fmt.Errorf("rebuild card types > %w", err)
		}
		if _, err := st.Exec(ctx, "UPDATE cards SET queue = type WHERE queue >= 0 AND type >= 0"); err != nil {
			return fmt.Errorf("rebuild card queues > %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	return s.Reset(ctx)
}

// Undo reverts the last answer and drops its review log entry, so today's counts forget it.
func (s *Scheduler) Undo(ctx context.Context) (string, error) {
	snap, ok := s.undo.Pop()
	if !ok {
		return "", ErrNothingToUndo
	}
	err := s.store.InTx(ctx, func(st store.Store) error {
		if _, err := st.Update(ctx, "cards", snap.Values, "id = ?", snap.CardID); err != nil {
			return fmt.Errorf("undo %s > %w", snap.Name, err)
		}
		if _, err := st.Exec(ctx, "DELETE FROM review_history WHERE card_id = ? AND time = ?",
			snap.CardID, card.Seconds(snap.CreatedAt)); err != nil {
			return fmt.Errorf("delete review of card %d > %w", snap.CardID, err)
		}
		return nil
	})
	if err != nil {
		s.undo.Push(snap)
		return "", err
	}
	s.logger.Info("undone", "name", snap.Name, "card_id", snap.CardID)
	return snap.Name, s.Reset(ctx)
}
