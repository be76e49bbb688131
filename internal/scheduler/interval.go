package scheduler

import (
	"github.com/at-ishikawa/cardsched/internal/card"
	"github.com/at-ishikawa/cardsched/internal/deck"
)

const (
	// boostThreshold is the interval in days (about 4 hours) above which a young interval is boosted.
	boostThreshold = 0.166
	hardMultiplier = 1.2
	easyBonus      = 1.3
	// learntInterval is the last interval in days from which a card counts as learnt.
	learntInterval = 7.0

	failedFactorPenalty = 0.20
	hardFactorPenalty   = 0.15
	easyFactorBonus     = 0.10

	minimumAverageFactor = 1.7
	// noDelayBonus is the Delay1 value kept by old collections to mean no bonus.
	noDelayBonus = 600
)

// NextInterval returns the interval in days c would get if answered with ease now.
func (s *Scheduler) NextInterval(c *card.Card, ease card.Ease) float64 {
	return nextInterval(s.opts, c, s.adjustedDelay(c), ease, c.FuzzOr(s.rand))
}

// adjustedDelay is how many days before the end of the study day c was due;
// negative when reviewed early. It does not depend on per_day.
func (s *Scheduler) adjustedDelay(c *card.Card) float64 {
	if c.IsNew() {
		return 0
	}
	// Cards due after the cutoff get the same formula: the delay is simply negative.
	return (s.failedCutoff - c.Due) / secondsPerDay
}

// nextInterval computes the interval in days after answering c with ease,
// delay days late and fuzz in [0, 1) placing the result within its range.
func nextInterval(opts deck.Options, c *card.Card, delay float64, ease card.Ease, fuzz float64) float64 {
	interval := c.Interval

	// Reviewed early: credit only the time actually waited.
	if delay < 0 {
		interval = max(c.LastInterval, c.Interval+delay)
		if interval < opts.MidIntervalMin {
			interval = 0
		}
		delay = 0
	}

	switch {
	case ease == card.EaseFailed:
		interval *= opts.Delay2
		if interval < opts.HardIntervalMin {
			interval = 0
		}
	case interval == 0:
		lo, hi := intervalRange(opts, ease)
		interval = lo + fuzz*(hi-lo)
	default:
		if interval < opts.HardIntervalMax && interval > boostThreshold {
			mid := (opts.MidIntervalMin + opts.MidIntervalMax) / 2
			interval = mid / c.Factor
		}
		switch ease {
		case card.EaseHard:
			interval = (interval + delay/4) * hardMultiplier
		case card.EaseMid:
			interval = (interval + delay/2) * c.Factor
		case card.EaseEasy:
			interval = (interval + delay) * c.Factor * easyBonus
		}
		interval *= 0.95 + fuzz*0.10
	}
	return interval
}

// intervalRange returns the preset range of a first successful answer.
func intervalRange(opts deck.Options, ease card.Ease) (float64, float64) {
	switch ease {
	case card.EaseHard:
		return opts.HardIntervalMin, opts.HardIntervalMax
	case card.EaseMid:
		return opts.MidIntervalMin, opts.MidIntervalMax
	case card.EaseEasy:
		return opts.EasyIntervalMin, opts.EasyIntervalMax
	}
	return 0, 0
}

// nextDue returns when c is shown again. Failed mature cards may be held until a later day.
func (s *Scheduler) nextDue(c *card.Card, ease card.Ease, oldState card.State, cram bool, now float64) float64 {
	if ease == card.EaseFailed {
		if !cram && oldState == card.StateMature && s.opts.Delay1 != 0 && s.opts.Delay1 != noDelayBonus {
			return s.failedCutoff + (s.opts.Delay1-1)*secondsPerDay
		}
		return now
	}
	return now + c.Interval*secondsPerDay
}

// updateFactor adjusts the ease factor of c answered with ease.
// Factor penalties only apply once the card is learnt; factors never drop below card.MinimumFactor.
func updateFactor(c *card.Card, ease card.Ease, averageFactor float64) {
	if c.IsNew() {
		c.Factor = averageFactor
	}
	if c.IsRev() && c.LastInterval >= learntInterval {
		switch ease {
		case card.EaseFailed:
			c.Factor -= failedFactorPenalty
		case card.EaseHard:
			c.Factor -= hardFactorPenalty
		}
	}
	if ease == card.EaseEasy {
		c.Factor += easyFactorBonus
	}
	c.Factor = max(card.MinimumFactor, c.Factor)
}
