package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/at-ishikawa/cardsched/internal/bootstrap"
	"github.com/at-ishikawa/cardsched/internal/cli"
	"github.com/at-ishikawa/cardsched/internal/scheduler"
)

type ModeFlag string

// Set implements pflag.Value.
func (m *ModeFlag) Set(v string) error {
	name, err := scheduler.ParseModeName(v)
	if err != nil {
		return fmt.Errorf("invalid value %q, valid values are %q, %q, %q or %q",
			v, scheduler.ModeStandard, scheduler.ModeReviewEarly, scheduler.ModeLearnMore, scheduler.ModeCram)
	}
	*m = ModeFlag(name)
	return nil
}

// String implements pflag.Value.
func (m *ModeFlag) String() string {
	if m == nil {
		return ""
	}
	return string(*m)
}

// Type implements pflag.Value.
func (m *ModeFlag) Type() string {
	return "ModeFlag"
}

var (
	_ pflag.Value = (*ModeFlag)(nil)
)

func newStudyCommand() *cobra.Command {
	mode := ModeFlag(scheduler.ModeStandard)
	var (
		tags  []string
		order string
	)

	cmd := &cobra.Command{
		Use:   "study",
		Short: "Study the due cards interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			if mode == scheduler.ModeCram && len(tags) == 0 {
				return fmt.Errorf("--tags is required in %s mode", scheduler.ModeCram)
			}

			return withApp(cmd.Context(), func(ctx context.Context, app *bootstrap.App) error {
				s := app.Scheduler
				if err := setupMode(ctx, s, string(mode), tags, order); err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				counts := s.Counts()
				fmt.Fprintf(out, "Starting a %s session: %d failed, %d review and %d new cards\n\n",
					mode, counts.Failed, counts.Review, counts.New)

				session := cli.NewStudySession(s, cmd.InOrStdin(), out)
				if err := session.Run(ctx, session); err != nil {
					return err
				}
				fmt.Fprintf(out, "%d cards answered.\n", session.Answered())
				return s.FinishScheduler(ctx)
			})
		},
	}

	flags := cmd.Flags()
	flags.Var(&mode, "mode", "Scheduling mode. Options: standard, review_early, learn_more, cram")
	flags.StringSliceVar(&tags, "tags", nil, "Tags of the cards to cram")
	flags.StringVar(&order, "order", "", "Cram order. Options: interval, interval desc, due, due desc, factor, created, modified")
	return cmd
}

func setupMode(ctx context.Context, s *scheduler.Scheduler, mode string, tags []string, order string) error {
	switch mode {
	case scheduler.ModeReviewEarly:
		return s.SetupReviewEarlyScheduler(ctx)
	case scheduler.ModeLearnMore:
		return s.SetupLearnMoreScheduler(ctx)
	case scheduler.ModeCram:
		return s.SetupCramScheduler(ctx, tags, order)
	}
	return s.SetupStandardScheduler(ctx)
}
