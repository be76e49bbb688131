// Package card provides the per-card scheduling state and the answer grades.
package card

import (
	"errors"
	"fmt"
	"math"
	"time"
)

const (
	// MatureThreshold is the interval in days above which a card is mature.
	MatureThreshold = 21.0
	// InitialFactor is the ease factor given when nothing better is known.
	InitialFactor = 2.5
	// MinimumFactor is the hard floor for the ease factor.
	MinimumFactor = 1.3

	maxThinkingTime = 60 * time.Second
)

// Queue values. The type column shares the 0..2 values.
const (
	QueueBuriedSession = -3
	QueueBuried        = -2
	QueueSuspended     = -1
	QueueFailed        = 0
	QueueReview        = 1
	QueueNew           = 2
)

// Ease is the recall grade given by the user.
type Ease int

const (
	EaseFailed Ease = iota + 1
	EaseHard
	EaseMid
	EaseEasy
)

var ErrInvalidEase = errors.New("ease must be between 1 and 4")

// ParseEase converts an integer answer into an Ease.
func ParseEase(v int) (Ease, error) {
	e := Ease(v)
	if !e.Valid() {
		return 0, fmt.Errorf("%w: %d", ErrInvalidEase, v)
	}
	return e, nil
}

func (e Ease) Valid() bool {
	return e >= EaseFailed && e <= EaseEasy
}

func (e Ease) String() string {
	switch e {
	case EaseFailed:
		return "failed"
	case EaseHard:
		return "hard"
	case EaseMid:
		return "mid"
	case EaseEasy:
		return "easy"
	}
	return fmt.Sprintf("ease(%d)", int(e))
}

// State is the maturity of a card.
type State string

const (
	StateNew    State = "new"
	StateYoung  State = "young"
	StateMature State = "mature"
)

// Card is a row of the cards table.
// Timestamps are seconds since the epoch and intervals are days.
type Card struct {
	ID            int64   `db:"id" yaml:"id"`
	FactID        int64   `db:"fact_id" yaml:"fact_id"`
	Ordinal       int     `db:"ordinal" yaml:"ordinal"`
	Created       float64 `db:"created" yaml:"created"`
	Modified      float64 `db:"modified" yaml:"modified"`
	Type          int     `db:"type" yaml:"type"`
	Queue         int     `db:"queue" yaml:"queue"`
	Interval      float64 `db:"interval" yaml:"interval"`
	LastInterval  float64 `db:"last_interval" yaml:"last_interval"`
	Due           float64 `db:"due" yaml:"due"`
	LastDue       float64 `db:"last_due" yaml:"last_due"`
	Factor        float64 `db:"factor" yaml:"factor"`
	LastFactor    float64 `db:"last_factor" yaml:"last_factor"`
	Reps          int     `db:"reps" yaml:"reps"`
	Successive    int     `db:"successive" yaml:"successive"`
	Lapses        int     `db:"lapses" yaml:"lapses"`
	YesCount      int     `db:"yes_count" yaml:"yes_count"`
	NoCount       int     `db:"no_count" yaml:"no_count"`
	FirstAnswered float64 `db:"first_answered" yaml:"first_answered"`
	AverageTime   float64 `db:"average_time" yaml:"average_time"`
	ReviewTime    float64 `db:"review_time" yaml:"review_time"`

	// Fuzz positions the interval inside its preset range. Zero means not generated yet.
	Fuzz          float64   `db:"-" yaml:"-"`
	LeechFlag     bool      `db:"-" yaml:"-"`
	SuspendedFlag bool      `db:"-" yaml:"-"`
	timerStarted  time.Time `db:"-" yaml:"-"`
}

// IsNew reports whether the card has never been answered.
func (c *Card) IsNew() bool {
	return c.Reps == 0
}

// IsRev reports whether the last answer was a success.
func (c *Card) IsRev() bool {
	return c.Successive != 0
}

func (c *Card) State() State {
	if c.IsNew() {
		return StateNew
	}
	if c.Interval > MatureThreshold {
		return StateMature
	}
	return StateYoung
}

// CardType returns the queue the card belongs to from its answer history.
func (c *Card) CardType() int {
	if c.IsRev() {
		return QueueReview
	}
	if !c.IsNew() {
		return QueueFailed
	}
	return QueueNew
}

// FuzzOr returns the fuzz value, generating it with gen when it is still zero.
func (c *Card) FuzzOr(gen func() float64) float64 {
	if c.Fuzz == 0 {
		c.Fuzz = gen()
	}
	return c.Fuzz
}

func (c *Card) StartTimer(now time.Time) {
	c.timerStarted = now
}

// ThinkingTime returns the time since the timer started, clamped to [0, 60s].
// A card whose timer never started reports zero.
func (c *Card) ThinkingTime(now time.Time) time.Duration {
	if c.timerStarted.IsZero() {
		return 0
	}
	d := now.Sub(c.timerStarted)
	if d < 0 {
		return 0
	}
	return min(d, maxThinkingTime)
}

// UpdateStats records an answer in the repetition counters.
func (c *Card) UpdateStats(ease Ease, now time.Time) {
	thinking := c.ThinkingTime(now).Seconds()
	if math.IsNaN(thinking) {
		thinking = 0
	}

	c.Reps++
	if ease == EaseFailed {
		c.Successive = 0
		c.Lapses++
		c.NoCount++
	} else {
		c.Successive++
		c.YesCount++
	}
	if c.FirstAnswered == 0 {
		c.FirstAnswered = Seconds(now)
	}
	c.ReviewTime += thinking
	c.AverageTime = c.ReviewTime / float64(c.Reps)
	c.Modified = Seconds(now)
}

// AnswerValues returns the columns written when a card is answered.
func (c *Card) AnswerValues() map[string]any {
	return map[string]any{
		"type":           c.Type,
		"queue":          c.Queue,
		"interval":       c.Interval,
		"last_interval":  c.LastInterval,
		"due":            c.Due,
		"last_due":       c.LastDue,
		"factor":         c.Factor,
		"last_factor":    c.LastFactor,
		"reps":           c.Reps,
		"successive":     c.Successive,
		"lapses":         c.Lapses,
		"yes_count":      c.YesCount,
		"no_count":       c.NoCount,
		"first_answered": c.FirstAnswered,
		"average_time":   c.AverageTime,
		"review_time":    c.ReviewTime,
		"modified":       c.Modified,
	}
}

// Seconds converts t to fractional seconds since the epoch.
func Seconds(t time.Time) float64 {
	return float64(t.Unix()) + float64(t.Nanosecond())/float64(time.Second)
}

// Time converts fractional epoch seconds back into a time.Time.
func Time(sec float64) time.Time {
	whole, frac := math.Modf(sec)
	return time.Unix(int64(whole), int64(frac*float64(time.Second)))
}
