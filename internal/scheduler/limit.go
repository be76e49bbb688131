package scheduler

import (
	"context"
	"fmt"

	"github.com/at-ishikawa/cardsched/internal/store"
)

const cardTagsSubquery = "c.id %s (SELECT card_id FROM card_tags WHERE tag_id IN (?))"

// limitByTags restricts q to cards carrying one of the active tags and none of the inactive ones.
// An active list naming no known tag matches nothing.
func (s *Scheduler) limitByTags(ctx context.Context, q store.Query, active, inactive []string) (store.Query, error) {
	if len(active) > 0 {
		ids, err := s.store.TagIDs(ctx, active)
		if err != nil {
			return q, fmt.Errorf("store.TagIDs(active) > %w", err)
		}
		if len(ids) == 0 {
			return q.And("1 = 0"), nil
		}
		q = q.And(fmt.Sprintf(cardTagsSubquery, "IN"), ids)
	}
	if len(inactive) > 0 {
		ids, err := s.store.TagIDs(ctx, inactive)
		if err != nil {
			return q, fmt.Errorf("store.TagIDs(inactive) > %w", err)
		}
		if len(ids) > 0 {
			q = q.And(fmt.Sprintf(cardTagsSubquery, "NOT IN"), ids)
		}
	}
	return q, nil
}
