package scheduler

import (
	"context"
	"fmt"

	"github.com/at-ishikawa/cardsched/internal/card"
	"github.com/at-ishikawa/cardsched/internal/deck"
	"github.com/at-ishikawa/cardsched/internal/store"
)

// QueueItem is a card waiting in one of the in-memory queues.
type QueueItem = store.Item

// queue holds items in the order they are shown.
type queue struct {
	items []QueueItem
}

func (q *queue) len() int {
	return len(q.items)
}

func (q *queue) empty() bool {
	return len(q.items) == 0
}

func (q *queue) head() QueueItem {
	return q.items[0]
}

func (q *queue) pop() QueueItem {
	item := q.items[0]
	q.items = q.items[1:]
	return item
}

func (q *queue) push(item QueueItem) {
	q.items = append(q.items, item)
}

func (q *queue) set(items []QueueItem) {
	q.items = items
}

func (q *queue) clear() {
	q.items = nil
}

// spacedCards are new cards held back until their sibling spacing expires.
type spacedCards struct {
	Space   float64
	CardIDs []int64
}

const defaultSpacedCacheRatio = 6

// cacheSpaced reports whether new cards dropped by spacing are worth caching:
// only when they are likely to expire before the queue is refilled.
func (s *Scheduler) cacheSpaced() bool {
	ratio := s.opts.SpacedCacheRatio
	if ratio <= 0 {
		ratio = defaultSpacedCacheRatio
	}
	return s.opts.NewSpacing < float64(s.opts.QueueLimit*ratio)
}

// removeSpaced drops the items at the head of q whose fact was shown recently.
// Dropped new cards are cached, to be offered again once spacing expires.
func (s *Scheduler) removeSpaced(q *queue, newQueue bool) {
	cache := newQueue && s.cacheSpaced()
	var popped []int64
	var space float64
	for !q.empty() {
		item := q.head()
		until, ok := s.spacedFacts[item.FactID]
		if !ok {
			break
		}
		q.pop()
		if cache {
			popped = append(popped, item.CardID)
			space = until
		}
	}
	if len(popped) > 0 {
		s.spacedCards = append(s.spacedCards, spacedCards{Space: space, CardIDs: popped})
	}
}

// purgeSpacedFacts forgets the facts whose spacing expired.
func (s *Scheduler) purgeSpacedFacts() {
	now := s.nowSeconds()
	for factID, until := range s.spacedFacts {
		if until < now {
			delete(s.spacedFacts, factID)
		}
	}
}

// refill makes sure q has a showable head, filling it from storage at most once.
func (s *Scheduler) refill(ctx context.Context, q *queue, fill func(context.Context) error, newQueue bool) (bool, error) {
	s.removeSpaced(q, newQueue)
	if !q.empty() {
		return true, nil
	}
	if err := fill(ctx); err != nil {
		return false, err
	}
	s.removeSpaced(q, newQueue)
	return !q.empty(), nil
}

func (s *Scheduler) revNoSpaced(ctx context.Context) (bool, error) {
	return s.refill(ctx, &s.revQueue, func(ctx context.Context) error {
		return s.mode.FillReviewQueue(ctx, s)
	}, false)
}

func (s *Scheduler) newNoSpaced(ctx context.Context) (bool, error) {
	return s.refill(ctx, &s.newQueue, s.fillNewQueue, true)
}

func (s *Scheduler) fillLearnQueue(ctx context.Context) error {
	if s.failedSoonCount == 0 || !s.learnQueue.empty() {
		return nil
	}
	q, err := s.mode.CardLimit(ctx, s,
		store.CardQuery("c.queue = ? AND c.due < ?", card.QueueFailed, s.failedCutoff),
		s.opts.RevActive, s.opts.RevInactive)
	if err != nil {
		return err
	}
	items, err := s.store.QueryItems(ctx, q.Order("due", s.opts.QueueLimit))
	if err != nil {
		return fmt.Errorf("store.QueryItems(learn) > %w", err)
	}
	s.learnQueue.set(items)
	return nil
}

func (s *Scheduler) fillNewQueue(ctx context.Context) error {
	if s.newCount == 0 || !s.newQueue.empty() || len(s.spacedCards) > 0 {
		return nil
	}
	q, err := s.mode.CardLimit(ctx, s,
		store.CardQuery("c.queue = ? AND c.due < ?", card.QueueNew, s.dueCutoff),
		s.opts.NewActive, s.opts.NewInactive)
	if err != nil {
		return err
	}
	items, err := s.store.QueryItems(ctx, q.Order(s.opts.NewCardOrder.SQL(), s.opts.QueueLimit))
	if err != nil {
		return fmt.Errorf("store.QueryItems(new) > %w", err)
	}
	s.newQueue.set(items)
	return nil
}

// takeNewCard returns the next new card, preferring cached spaced cards whose spacing expired.
func (s *Scheduler) takeNewCard() int64 {
	now := s.nowSeconds()
	if len(s.spacedCards) > 0 && s.spacedCards[0].Space < now {
		return s.takeSpacedCard(now)
	}
	if !s.newQueue.empty() {
		item := s.newQueue.pop()
		s.selected = selection{cardID: item.CardID, from: fromNew}
		return item.CardID
	}
	if len(s.spacedCards) > 0 {
		return s.takeSpacedCard(now)
	}
	return 0
}

func (s *Scheduler) takeSpacedCard(now float64) int64 {
	bucket := s.spacedCards[0]
	s.spacedCards = s.spacedCards[1:]
	id := bucket.CardIDs[0]
	if rest := bucket.CardIDs[1:]; len(rest) > 0 {
		s.spacedCards = append(s.spacedCards, spacedCards{
			Space:   now + s.opts.NewSpacing,
			CardIDs: rest,
		})
	}
	s.selected = selection{cardID: id, from: fromNew}
	return id
}

// timeForNewCard reports whether a new card is shown instead of a review now.
func (s *Scheduler) timeForNewCard() bool {
	if s.newCount == 0 {
		return false
	}
	switch s.opts.NewCardSpacing {
	case deck.NewCardsLast:
		return false
	case deck.NewCardsFirst:
		return true
	}
	if s.newCardModulus == 0 {
		return false
	}
	return s.repsToday%s.newCardModulus == 0
}

// newCardModulus spreads new cards evenly over the reviews of the day.
func newCardModulus(spacing deck.NewCardSpacing, newCount, revCount int) int {
	if spacing != deck.NewCardsDistribute || newCount == 0 {
		return 0
	}
	modulus := (newCount + revCount) / newCount
	if revCount > 0 {
		modulus = max(2, modulus)
	}
	return modulus
}
