// Package statistics provides answer counters per maturity tier and the daily/global aggregates.
package statistics

import (
	"time"

	"github.com/at-ishikawa/cardsched/internal/card"
)

// Tier is the maturity bucket an answer is counted in.
type Tier int

const (
	TierNew Tier = iota
	TierYoung
	TierMature
)

var tierNames = [...]string{"new", "young", "mature"}

func (t Tier) String() string {
	if t < TierNew || t > TierMature {
		return "unknown"
	}
	return tierNames[t]
}

func TierFor(state card.State) Tier {
	switch state {
	case card.StateNew:
		return TierNew
	case card.StateMature:
		return TierMature
	default:
		return TierYoung
	}
}

// Counters holds answer counts indexed by tier and ease. Index 0 of the ease is unused by answers.
type Counters [3][5]int

func (c *Counters) Add(t Tier, e card.Ease) {
	c[t][e]++
}

func (c *Counters) Get(t Tier, e card.Ease) int {
	return c[t][e]
}

// Total returns all answers counted in the tier.
func (c *Counters) Total(t Tier) int {
	total := 0
	for _, n := range c[t] {
		total += n
	}
	return total
}

// Kind separates the single global row from the per-day rows.
type Kind int

const (
	KindGlobal Kind = iota
	KindDaily
)

// DayLayout formats the day key of daily stats.
const DayLayout = "2006-01-02"

// Stats aggregates answers over the whole collection or over a single day.
type Stats struct {
	ID          int64
	Kind        Kind
	Day         string
	Reps        int
	ReviewTime  float64
	AverageTime float64
	NewCards    int
	Answers     Counters
}

// Record counts one answer given to a card that was in oldState.
func (s *Stats) Record(oldState card.State, ease card.Ease, thinking time.Duration) {
	s.Reps++
	if oldState == card.StateNew {
		s.NewCards++
	}
	s.Answers.Add(TierFor(oldState), ease)
	s.ReviewTime += thinking.Seconds()
	s.AverageTime = s.ReviewTime / float64(s.Reps)
}

// MatureRetention returns the share of mature answers that were not failures.
func (s *Stats) MatureRetention() float64 {
	total := s.Answers.Total(TierMature)
	if total == 0 {
		return 0
	}
	return float64(total-s.Answers.Get(TierMature, card.EaseFailed)) / float64(total)
}
