// Package revlog provides the review history entries and the undo snapshots taken before an answer.
package revlog

import (
	"time"

	"github.com/at-ishikawa/cardsched/internal/card"
)

// Kind classifies a review by the state the card was in before it.
type Kind int

const (
	KindLearn Kind = iota
	KindReview
	KindNew
	KindCram
)

func (k Kind) String() string {
	switch k {
	case KindLearn:
		return "learn"
	case KindReview:
		return "review"
	case KindNew:
		return "new"
	case KindCram:
		return "cram"
	}
	return "unknown"
}

// KindFor returns the review kind for a card answered in oldState.
func KindFor(oldState card.State, oldQueue int, cram bool) Kind {
	switch {
	case cram:
		return KindCram
	case oldState == card.StateNew:
		return KindNew
	case oldQueue == card.QueueFailed:
		return KindLearn
	default:
		return KindReview
	}
}

// Entry is a row of the review_history table. Entries are never updated.
type Entry struct {
	CardID       int64   `db:"card_id"`
	Time         float64 `db:"time"`
	LastInterval float64 `db:"last_interval"`
	NextInterval float64 `db:"next_interval"`
	Ease         int     `db:"ease"`
	Delay        float64 `db:"delay"`
	LastFactor   float64 `db:"last_factor"`
	NextFactor   float64 `db:"next_factor"`
	Reps         int     `db:"reps"`
	ThinkingTime float64 `db:"thinking_time"`
	YesCount     int     `db:"yes_count"`
	NoCount      int     `db:"no_count"`
	Kind         Kind    `db:"kind"`
}

// NewEntry builds the log entry for an answered card. delay is the lateness in days.
func NewEntry(c *card.Card, ease card.Ease, delay float64, kind Kind, now time.Time) Entry {
	return Entry{
		CardID:       c.ID,
		Time:         card.Seconds(now),
		LastInterval: c.LastInterval,
		NextInterval: c.Interval,
		Ease:         int(ease),
		Delay:        delay,
		LastFactor:   c.LastFactor,
		NextFactor:   c.Factor,
		Reps:         c.Reps,
		ThinkingTime: c.ThinkingTime(now).Seconds(),
		YesCount:     c.YesCount,
		NoCount:      c.NoCount,
		Kind:         kind,
	}
}
