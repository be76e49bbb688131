package store

import (
	"fmt"
	"strings"

	"github.com/at-ishikawa/cardsched/internal/card"
	"github.com/at-ishikawa/cardsched/internal/statistics"
)

// statsRow is a row of the stats table, one column per tier and ease.
type statsRow struct {
	ID          int64   `db:"id"`
	Type        int     `db:"type"`
	Day         string  `db:"day"`
	Reps        int     `db:"reps"`
	ReviewTime  float64 `db:"review_time"`
	AverageTime float64 `db:"average_time"`
	NewCards    int     `db:"new_cards"`

	NewEase0    int `db:"new_ease0"`
	NewEase1    int `db:"new_ease1"`
	NewEase2    int `db:"new_ease2"`
	NewEase3    int `db:"new_ease3"`
	NewEase4    int `db:"new_ease4"`
	YoungEase0  int `db:"young_ease0"`
	YoungEase1  int `db:"young_ease1"`
	YoungEase2  int `db:"young_ease2"`
	YoungEase3  int `db:"young_ease3"`
	YoungEase4  int `db:"young_ease4"`
	MatureEase0 int `db:"mature_ease0"`
	MatureEase1 int `db:"mature_ease1"`
	MatureEase2 int `db:"mature_ease2"`
	MatureEase3 int `db:"mature_ease3"`
	MatureEase4 int `db:"mature_ease4"`
}

func (r *statsRow) counters() [3][5]*int {
	return [3][5]*int{
		{&r.NewEase0, &r.NewEase1, &r.NewEase2, &r.NewEase3, &r.NewEase4},
		{&r.YoungEase0, &r.YoungEase1, &r.YoungEase2, &r.YoungEase3, &r.YoungEase4},
		{&r.MatureEase0, &r.MatureEase1, &r.MatureEase2, &r.MatureEase3, &r.MatureEase4},
	}
}

func newStatsRow(s *statistics.Stats) *statsRow {
	r := &statsRow{
		ID:          s.ID,
		Type:        int(s.Kind),
		Day:         s.Day,
		Reps:        s.Reps,
		ReviewTime:  s.ReviewTime,
		AverageTime: s.AverageTime,
		NewCards:    s.NewCards,
	}
	for t, eases := range r.counters() {
		for e, p := range eases {
			*p = s.Answers.Get(statistics.Tier(t), card.Ease(e))
		}
	}
	return r
}

func (r *statsRow) toStats() *statistics.Stats {
	s := &statistics.Stats{
		ID:          r.ID,
		Kind:        statistics.Kind(r.Type),
		Day:         r.Day,
		Reps:        r.Reps,
		ReviewTime:  r.ReviewTime,
		AverageTime: r.AverageTime,
		NewCards:    r.NewCards,
	}
	for t, eases := range r.counters() {
		for e, p := range eases {
			s.Answers[t][e] = *p
		}
	}
	return s
}

func statsColumns() []string {
	columns := []string{"type", "day", "reps", "review_time", "average_time", "new_cards"}
	for _, tier := range []string{"new", "young", "mature"} {
		for e := range 5 {
			columns = append(columns, fmt.Sprintf("%s_ease%d", tier, e))
		}
	}
	return columns
}

func statsAssignments() string {
	columns := statsColumns()
	sets := make([]string, len(columns))
	for i, column := range columns {
		sets[i] = column + " = :" + column
	}
	return strings.Join(sets, ", ")
}
