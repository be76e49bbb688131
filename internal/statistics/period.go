package statistics

import (
	"fmt"
	"sort"
	"time"

	"github.com/at-ishikawa/cardsched/internal/card"
	"github.com/at-ishikawa/cardsched/internal/revlog"
)

// PeriodStatistics holds review counts for a month ("2025-01") or a year ("2025").
type PeriodStatistics struct {
	Period       string  `yaml:"period"`
	NewCards     int     `yaml:"new_cards"`
	Reviews      int     `yaml:"reviews"`
	Lapses       int     `yaml:"lapses"`
	UniqueCards  int     `yaml:"unique_cards"`
	ThinkingTime float64 `yaml:"thinking_time_seconds"`
}

// AggregateStatistics holds the totals across all periods.
type AggregateStatistics struct {
	NewCards    int `yaml:"new_cards"`
	Reviews     int `yaml:"reviews"`
	Lapses      int `yaml:"lapses"`
	UniqueCards int `yaml:"unique_cards"`
}

type StatisticsResult struct {
	Periods   []PeriodStatistics  `yaml:"periods"`
	Aggregate AggregateStatistics `yaml:"aggregate"`
}

type periodData struct {
	newCards     int
	reviews      int
	lapses       int
	thinkingTime float64
	unique       map[int64]struct{}
}

// CalculateStatistics groups review history entries by month in loc.
// year and month filter the entries; 0 means no filter.
func CalculateStatistics(entries []revlog.Entry, loc *time.Location, year, month int) StatisticsResult {
	stats := make(map[string]*periodData)
	globalUnique := make(map[int64]struct{})

	for _, e := range entries {
		at := card.Time(e.Time).In(loc)
		if !matchesFilter(at.Year(), int(at.Month()), year, month) {
			continue
		}

		period := fmt.Sprintf("%d-%02d", at.Year(), int(at.Month()))
		data := ensurePeriodExists(stats, period)
		if e.Kind == revlog.KindNew {
			data.newCards++
		} else {
			data.reviews++
		}
		if e.Ease == int(card.EaseFailed) {
			data.lapses++
		}
		data.thinkingTime += e.ThinkingTime
		data.unique[e.CardID] = struct{}{}
		globalUnique[e.CardID] = struct{}{}
	}

	return buildResult(stats, globalUnique)
}

func ensurePeriodExists(stats map[string]*periodData, period string) *periodData {
	if stats[period] == nil {
		stats[period] = &periodData{unique: make(map[int64]struct{})}
	}
	return stats[period]
}

func matchesFilter(entryYear, entryMonth, filterYear, filterMonth int) bool {
	if filterYear == 0 {
		return true
	}
	if entryYear != filterYear {
		return false
	}
	if filterMonth == 0 {
		return true
	}
	return entryMonth == filterMonth
}

func buildResult(stats map[string]*periodData, globalUnique map[int64]struct{}) StatisticsResult {
	periods := make([]PeriodStatistics, 0, len(stats))

	var aggregate AggregateStatistics
	for period, data := range stats {
		periods = append(periods, PeriodStatistics{
			Period:       period,
			NewCards:     data.newCards,
			Reviews:      data.reviews,
			Lapses:       data.lapses,
			UniqueCards:  len(data.unique),
			ThinkingTime: data.thinkingTime,
		})
		aggregate.NewCards += data.newCards
		aggregate.Reviews += data.reviews
		aggregate.Lapses += data.lapses
	}
	aggregate.UniqueCards = len(globalUnique)

	// Newest first
	sort.Slice(periods, func(i, j int) bool {
		return periods[i].Period > periods[j].Period
	})

	return StatisticsResult{
		Periods:   periods,
		Aggregate: aggregate,
	}
}
