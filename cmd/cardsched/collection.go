package main

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/at-ishikawa/cardsched/internal/bootstrap"
	"github.com/at-ishikawa/cardsched/internal/card"
	"github.com/at-ishikawa/cardsched/internal/cli"
	"github.com/at-ishikawa/cardsched/internal/deck"
	"github.com/at-ishikawa/cardsched/internal/fact"
	"github.com/at-ishikawa/cardsched/internal/statistics"
	"github.com/at-ishikawa/cardsched/internal/store"
)

func newCountsCommand() *cobra.Command {
	var asYAML bool
	cmd := &cobra.Command{
		Use:   "counts",
		Short: "Show the number of cards due today",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), func(ctx context.Context, app *bootstrap.App) error {
				return cli.WriteCounts(cmd.OutOrStdout(), app.Scheduler.Counts(), asYAML)
			})
		},
	}
	cmd.Flags().BoolVar(&asYAML, "yaml", false, "Output as YAML")
	return cmd
}

func newStatsCommand() *cobra.Command {
	var (
		year, month int
		asYAML      bool
	)

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show monthly/yearly report of the review history",
		RunE: func(cmd *cobra.Command, args []string) error {
			if month != 0 && year == 0 {
				return fmt.Errorf("--month requires --year to be specified")
			}
			if month < 0 || month > 12 {
				return fmt.Errorf("--month must be between 1 and 12")
			}

			return withApp(cmd.Context(), func(ctx context.Context, app *bootstrap.App) error {
				entries, err := app.Store.Reviews(ctx, 0)
				if err != nil {
					return fmt.Errorf("store.Reviews() > %w", err)
				}
				result := statistics.CalculateStatistics(entries, app.Scheduler.Options().Location, year, month)
				if asYAML {
					return cli.WriteStatsYAML(cmd.OutOrStdout(), result)
				}

				global, err := app.Store.Stats(ctx, statistics.KindGlobal, "")
				if err != nil {
					return fmt.Errorf("store.Stats() > %w", err)
				}
				return cli.WriteStatsReport(cmd.OutOrStdout(), result, global)
			})
		},
	}

	cmd.Flags().IntVar(&year, "year", 0, "Filter by year (e.g., 2025)")
	cmd.Flags().IntVar(&month, "month", 0, "Filter by month (1-12), requires --year")
	cmd.Flags().BoolVar(&asYAML, "yaml", false, "Output as YAML")
	return cmd
}

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or upgrade the collection schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Opening the collection applies the pending migrations.
			return withApp(cmd.Context(), func(ctx context.Context, app *bootstrap.App) error {
				fmt.Fprintln(cmd.OutOrStdout(), "The collection is up to date.")
				return nil
			})
		},
	}
}

func newAddCommand() *cobra.Command {
	var (
		tags  string
		cards int
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a fact with new cards",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cards < 1 {
				return fmt.Errorf("--cards must be at least 1")
			}
			return withApp(cmd.Context(), func(ctx context.Context, app *bootstrap.App) error {
				order := app.Scheduler.Options().NewCardOrder
				f, created, err := addFact(ctx, app.Store, tags, cards, order, time.Now(), rand.Float64)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added fact %d with cards %v\n", f.ID, created)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&tags, "tags", "", "Space separated tags of the fact")
	cmd.Flags().IntVar(&cards, "cards", 1, "Number of cards of the fact")
	return cmd
}

// addFact stores a fact with n new cards due now. With the random new card order the
// cards of the fact share a due time drawn from the last day, so the queue shuffles facts.
func addFact(ctx context.Context, st store.Store, tags string, n int, order deck.NewCardOrder, now time.Time, gen func() float64) (*fact.Fact, []int64, error) {
	f := &fact.Fact{Tags: fact.Canonify(tags), Modified: card.Seconds(now)}
	due := card.Seconds(now)
	if order == deck.NewCardsRandom {
		due -= gen() * 86400
	}
	ids := make([]int64, 0, n)
	err := st.InTx(ctx, func(st store.Store) error {
		if err := st.CreateFact(ctx, f); err != nil {
			return fmt.Errorf("store.CreateFact() > %w", err)
		}
		for i := range n {
			c := &card.Card{
				FactID:   f.ID,
				Ordinal:  i,
				Created:  card.Seconds(now),
				Modified: card.Seconds(now),
				Type:     card.QueueNew,
				Queue:    card.QueueNew,
				Due:      due,
				Factor:   card.InitialFactor,
			}
			if err := st.CreateCard(ctx, c); err != nil {
				return fmt.Errorf("store.CreateCard() > %w", err)
			}
			ids = append(ids, c.ID)
		}
		return st.SyncCardTags(ctx, f.ID)
	})
	if err != nil {
		return nil, nil, err
	}
	return f, ids, nil
}

func newCardsCommand() *cobra.Command {
	cardsCommand := &cobra.Command{
		Use:   "cards",
		Short: "Suspend, bury and repair cards",
	}

	cardsCommand.AddCommand(
		&cobra.Command{
			Use:   "suspend <card id>...",
			Short: "Remove cards from review until they are unsuspended",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				ids, err := parseIDs(args)
				if err != nil {
					return err
				}
				return withApp(cmd.Context(), func(ctx context.Context, app *bootstrap.App) error {
					return app.Scheduler.SuspendCards(ctx, ids)
				})
			},
		},
		&cobra.Command{
			Use:   "unsuspend <card id>...",
			Short: "Return suspended cards to their queue",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				ids, err := parseIDs(args)
				if err != nil {
					return err
				}
				return withApp(cmd.Context(), func(ctx context.Context, app *bootstrap.App) error {
					return app.Scheduler.UnsuspendCards(ctx, ids)
				})
			},
		},
		&cobra.Command{
			Use:   "bury <fact id>",
			Short: "Hide the cards of a fact until they are unburied",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				ids, err := parseIDs(args)
				if err != nil {
					return err
				}
				return withApp(cmd.Context(), func(ctx context.Context, app *bootstrap.App) error {
					return app.Scheduler.BuryFact(ctx, ids[0])
				})
			},
		},
		&cobra.Command{
			Use:   "unbury",
			Short: "Return every buried card to its queue",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return withApp(cmd.Context(), func(ctx context.Context, app *bootstrap.App) error {
					return app.Scheduler.UnburyAll(ctx)
				})
			},
		},
		&cobra.Command{
			Use:   "rebuild-types",
			Short: "Recompute the type and queue of every card from its history",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return withApp(cmd.Context(), func(ctx context.Context, app *bootstrap.App) error {
					return app.Scheduler.RebuildTypes(ctx)
				})
			},
		},
	)
	return cardsCommand
}

func parseIDs(args []string) ([]int64, error) {
	ids := make([]int64, 0, len(args))
	for _, arg := range args {
		id, err := strconv.ParseInt(arg, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid id %q: %w", arg, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func newDeckCommand() *cobra.Command {
	deckCommand := &cobra.Command{
		Use:   "deck",
		Short: "Show or change the scheduling options stored in the collection",
	}

	deckCommand.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Show the deck variables overriding the config file",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return withApp(cmd.Context(), func(ctx context.Context, app *bootstrap.App) error {
					vars, err := app.Store.DeckVars(ctx)
					if err != nil {
						return fmt.Errorf("store.DeckVars() > %w", err)
					}
					if len(vars) == 0 {
						return nil
					}
					return yaml.NewEncoder(cmd.OutOrStdout()).Encode(vars)
				})
			},
		},
		&cobra.Command{
			Use:   "set <name> <value>",
			Short: "Store a deck variable in the collection",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				name, value := args[0], args[1]
				if !deck.IsVar(name) {
					return fmt.Errorf("%w: unknown deck variable %q", deck.ErrInvalidOption, name)
				}
				return withApp(cmd.Context(), func(ctx context.Context, app *bootstrap.App) error {
					opts := app.Scheduler.Options()
					if err := opts.Apply(map[string]string{name: value}); err != nil {
						return err
					}
					return app.Store.SetDeckVar(ctx, name, value)
				})
			},
		},
	)
	return deckCommand
}
