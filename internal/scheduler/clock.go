package scheduler

import (
	"context"
	"time"

	"github.com/at-ishikawa/cardsched/internal/card"
)

// UpdateCutoff recomputes the end of the current study day.
// The day ends at local midnight shifted by the configured UTC offset,
// never in the past and never more than a day ahead.
func (s *Scheduler) UpdateCutoff() {
	now := s.now()
	loc := s.opts.Location

	offset := time.Duration(s.opts.UTCOffset) * time.Second
	d := now.UTC().Add(-offset).Add(24 * time.Hour)
	_, zoneOffset := now.In(loc).Zone()
	newDay := s.opts.UTCOffset + zoneOffset

	cutoff := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, newDay, 0, loc)
	for cutoff.Before(now) {
		cutoff = cutoff.Add(24 * time.Hour)
	}
	if limit := now.Add(24 * time.Hour); cutoff.After(limit) {
		cutoff = limit
	}

	s.failedCutoff = float64(cutoff.Unix())
	if s.opts.PerDay {
		s.dueCutoff = s.failedCutoff
	} else {
		s.dueCutoff = card.Seconds(now)
	}
	s.logger.Debug("day cutoff updated",
		"failed_cutoff", cutoff.Format(time.RFC3339),
		"per_day", s.opts.PerDay,
	)
}

// checkDay starts a new day once the current one is over.
func (s *Scheduler) checkDay(ctx context.Context) error {
	if s.nowSeconds() <= s.failedCutoff {
		return nil
	}
	s.UpdateCutoff()
	return s.Reset(ctx)
}

// FailedCutoff returns the end of the study day as seconds since the epoch.
func (s *Scheduler) FailedCutoff() float64 {
	return s.failedCutoff
}

// DueCutoff returns the instant cards must be due by to be shown.
func (s *Scheduler) DueCutoff() float64 {
	return s.dueCutoff
}

// day returns the calendar day in progress, used as the key of daily stats.
func (s *Scheduler) day() time.Time {
	return card.Time(s.failedCutoff - secondsPerDay).In(s.opts.Location)
}
