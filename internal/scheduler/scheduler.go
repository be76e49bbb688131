// Package scheduler decides which card is shown next and how answers reschedule cards.
//
// A Scheduler is bound to one opened collection. It is not safe for concurrent use;
// callers serialize GetCard, AnswerCard and the maintenance operations.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/at-ishikawa/cardsched/internal/card"
	"github.com/at-ishikawa/cardsched/internal/deck"
	"github.com/at-ishikawa/cardsched/internal/revlog"
	"github.com/at-ishikawa/cardsched/internal/store"
)

const secondsPerDay = 86400.0

var ErrNothingToUndo = errors.New("nothing to undo")

// TagListener is notified after the tags of a fact changed.
type TagListener func(ctx context.Context, factID int64)

// Counts are the cached queue sizes shown to the user.
type Counts struct {
	Failed       int `yaml:"failed"`
	Review       int `yaml:"review"`
	New          int `yaml:"new"`
	NewAvailable int `yaml:"new_available"`
	RepsToday    int `yaml:"reps_today"`
	NewSeenToday int `yaml:"new_seen_today"`
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithClock replaces the wall clock.
func WithClock(now func() time.Time) Option {
	return func(s *Scheduler) {
		s.now = now
	}
}

// WithRand replaces the source of card fuzz values in [0, 1).
func WithRand(r func() float64) Option {
	return func(s *Scheduler) {
		s.rand = r
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Scheduler) {
		s.logger = logger
	}
}

// WithUndoDepth bounds the number of answers that can be undone.
func WithUndoDepth(depth int) Option {
	return func(s *Scheduler) {
		s.undo = revlog.NewUndoStack(depth)
	}
}

type queueKind int

const (
	fromNone queueKind = iota
	fromLearn
	fromReview
	fromNew
	fromFailed
)

// Scheduler is the study session of one collection.
type Scheduler struct {
	store  store.Store
	opts   deck.Options
	logger *slog.Logger
	now    func() time.Time
	rand   func() float64

	mode     Mode
	standard *StandardMode

	failedCutoff float64
	dueCutoff    float64

	learnQueue  queue
	revQueue    queue
	newQueue    queue
	failedQueue queue
	spacedFacts map[int64]float64
	spacedCards []spacedCards
	selected    selection

	failedSoonCount int
	revCount        int
	newAvail        int
	newCount        int
	repsToday       int
	newSeenToday    int
	newCardModulus  int
	averageFactor   float64

	undo      *revlog.UndoStack
	listeners []TagListener
}

// selection remembers where the last card handed out came from.
type selection struct {
	cardID int64
	from   queueKind
}

// New opens a session in Standard mode. Cards left buried by an unfinished
// special session are restored first.
func New(ctx context.Context, st store.Store, opts deck.Options, options ...Option) (*Scheduler, error) {
	s := &Scheduler{
		store:       st,
		opts:        opts,
		logger:      slog.Default(),
		now:         time.Now,
		rand:        rand.Float64,
		spacedFacts: make(map[int64]float64),
		undo:        revlog.NewUndoStack(revlog.DefaultUndoDepth),
	}
	for _, o := range options {
		o(s)
	}
	if s.opts.Location == nil {
		s.opts.Location = time.Local
	}
	s.standard = &StandardMode{}
	s.mode = s.standard

	s.UpdateCutoff()
	if err := s.restoreBuried(ctx); err != nil {
		return nil, err
	}
	if err := s.Reset(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Scheduler) nowSeconds() float64 {
	return card.Seconds(s.now())
}

func (s *Scheduler) Options() deck.Options {
	return s.opts
}

func (s *Scheduler) Mode() Mode {
	return s.mode
}

func (s *Scheduler) UndoStack() *revlog.UndoStack {
	return s.undo
}

func (s *Scheduler) AddTagListener(l TagListener) {
	s.listeners = append(s.listeners, l)
}

func (s *Scheduler) Counts() Counts {
	return Counts{
		Failed:       s.failedSoonCount,
		Review:       s.revCount,
		New:          s.newCount,
		NewAvailable: s.newAvail,
		RepsToday:    s.repsToday,
		NewSeenToday: s.newSeenToday,
	}
}

// GetCard returns the next card to show with its timer started, or nil when nothing is due.
func (s *Scheduler) GetCard(ctx context.Context) (*card.Card, error) {
	id, err := s.mode.NextCardID(ctx, s, true)
	if err != nil {
		return nil, err
	}
	if id == 0 {
		return nil, nil
	}
	c, err := s.store.Card(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("store.Card(%d) > %w", id, err)
	}
	c.FuzzOr(s.rand)
	c.StartTimer(s.now())
	return c, nil
}

// Reset recounts the queues from storage and empties them. The Cram failure list survives.
func (s *Scheduler) Reset(ctx context.Context) error {
	s.learnQueue.clear()
	s.revQueue.clear()
	s.newQueue.clear()
	clear(s.spacedFacts)
	s.spacedCards = nil
	s.selected = selection{}

	if err := s.rebuildDayCounts(ctx); err != nil {
		return err
	}
	if err := s.mode.RebuildCounts(ctx, s); err != nil {
		return err
	}
	s.newCardModulus = newCardModulus(s.opts.NewCardSpacing, s.newCount, s.revCount)

	s.logger.Debug("scheduler reset",
		"mode", s.mode.Name(),
		"failed", s.failedSoonCount,
		"review", s.revCount,
		"new", s.newCount,
		"modulus", s.newCardModulus,
	)
	return nil
}

// rebuildDayCounts loads what is shared by every mode: today's answers and the average factor.
func (s *Scheduler) rebuildDayCounts(ctx context.Context) error {
	dayStart := s.failedCutoff - secondsPerDay
	reps, err := s.store.CountReviews(ctx, dayStart, false)
	if err != nil {
		return fmt.Errorf("store.CountReviews() > %w", err)
	}
	seen, err := s.store.CountReviews(ctx, dayStart, true)
	if err != nil {
		return fmt.Errorf("store.CountReviews(first) > %w", err)
	}
	s.repsToday = reps
	s.newSeenToday = seen

	avg, err := s.store.QueryScalar(ctx, store.Query{
		Select: "avg(c.factor)",
		Where:  []string{"c.type = ?"},
		Args:   []any{card.QueueReview},
	})
	if err != nil {
		return fmt.Errorf("store.QueryScalar(average factor) > %w", err)
	}
	if avg == 0 {
		avg = card.InitialFactor
	}
	s.averageFactor = max(avg, minimumAverageFactor)
	return nil
}

func (s *Scheduler) updateNewCountToday() {
	s.newCount = max(min(s.newAvail, s.opts.NewCardsPerDay-s.newSeenToday), 0)
}
