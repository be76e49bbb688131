package scheduler

import (
	"context"
)

// LearnMoreMode lifts the daily cap on new cards.
type LearnMoreMode struct {
	*StandardMode
}

func (m *LearnMoreMode) Name() string {
	return ModeLearnMore
}

func (m *LearnMoreMode) RebuildCounts(ctx context.Context, s *Scheduler) error {
	if err := m.StandardMode.RebuildCounts(ctx, s); err != nil {
		return err
	}
	s.newCount = s.newAvail
	s.spacedCards = nil
	return nil
}

func (m *LearnMoreMode) Finish(ctx context.Context, s *Scheduler) error {
	return finishSpecial(ctx, s)
}
