package cli

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/at-ishikawa/cardsched/internal/card"
	"github.com/at-ishikawa/cardsched/internal/scheduler"
	"github.com/at-ishikawa/cardsched/internal/statistics"
)

// WriteCounts prints the queue sizes of today, as YAML when asYAML is set.
func WriteCounts(w io.Writer, counts scheduler.Counts, asYAML bool) error {
	if asYAML {
		return writeYAML(w, counts)
	}
	_, err := fmt.Fprintf(w, "Failed: %d\nReview: %d\nNew: %d (%d available)\nAnswered today: %d (%d new)\n",
		counts.Failed, counts.Review, counts.New, counts.NewAvailable, counts.RepsToday, counts.NewSeenToday)
	return err
}

// WriteStatsReport prints the review history per month followed by the answer totals.
func WriteStatsReport(w io.Writer, result statistics.StatisticsResult, global *statistics.Stats) error {
	if len(result.Periods) == 0 {
		_, err := fmt.Fprintln(w, "No reviews found for the specified period.")
		return err
	}

	fmt.Fprintln(w, "Review Statistics Report")
	fmt.Fprintln(w, "========================")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%-10s  %8s  %8s  %8s  %8s  %10s\n", "Period", "New", "Reviews", "Lapses", "Cards", "Time")
	fmt.Fprintf(w, "%-10s  %8s  %8s  %8s  %8s  %10s\n", "------", "---", "-------", "------", "-----", "----")
	for _, s := range result.Periods {
		fmt.Fprintf(w, "%-10s  %8d  %8d  %8d  %8d  %9.0fs\n",
			s.Period, s.NewCards, s.Reviews, s.Lapses, s.UniqueCards, s.ThinkingTime)
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%-10s  %8d  %8d  %8d  %8d\n",
		"Totals:",
		result.Aggregate.NewCards,
		result.Aggregate.Reviews,
		result.Aggregate.Lapses,
		result.Aggregate.UniqueCards,
	)

	if global == nil || global.Reps == 0 {
		return nil
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%-8s", "Answers")
	for e := card.EaseFailed; e <= card.EaseEasy; e++ {
		fmt.Fprintf(w, "  %8s", e)
	}
	fmt.Fprintln(w)
	for _, tier := range []statistics.Tier{statistics.TierNew, statistics.TierYoung, statistics.TierMature} {
		fmt.Fprintf(w, "%-8s", tier)
		for e := card.EaseFailed; e <= card.EaseEasy; e++ {
			fmt.Fprintf(w, "  %8d", global.Answers.Get(tier, e))
		}
		fmt.Fprintln(w)
	}
	_, err := fmt.Fprintf(w, "\nMature retention: %.1f%%\n", global.MatureRetention()*100)
	return err
}

// WriteStatsYAML prints the same report as WriteStatsReport in YAML.
func WriteStatsYAML(w io.Writer, result statistics.StatisticsResult) error {
	return writeYAML(w, result)
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("yaml.Encode() > %w", err)
	}
	return enc.Close()
}
