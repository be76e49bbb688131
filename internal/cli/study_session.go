package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/at-ishikawa/cardsched/internal/card"
	"github.com/at-ishikawa/cardsched/internal/scheduler"
)

//go:generate mockgen -source=study_session.go -destination=../mocks/cli/mock_scheduler.go -package=mock_cli Scheduler

// Scheduler is the part of the scheduler a study session drives.
type Scheduler interface {
	GetCard(ctx context.Context) (*card.Card, error)
	AnswerCard(ctx context.Context, c *card.Card, ease card.Ease) error
	NextInterval(c *card.Card, ease card.Ease) float64
	Counts() scheduler.Counts
	Undo(ctx context.Context) (string, error)
}

// StudySession shows due cards one by one and records the grade typed for each.
type StudySession struct {
	*InteractiveStudyCLI
	scheduler Scheduler
	current   *card.Card
	answered  int
}

func NewStudySession(s Scheduler, stdin io.Reader, stdout io.Writer) *StudySession {
	return &StudySession{
		InteractiveStudyCLI: newInteractiveStudyCLI(stdin, stdout),
		scheduler:           s,
	}
}

// Answered returns the number of cards answered in this session.
func (r *StudySession) Answered() int {
	return r.answered
}

func (r *StudySession) Session(ctx context.Context) error {
	if r.current == nil {
		c, err := r.scheduler.GetCard(ctx)
		if err != nil {
			return fmt.Errorf("scheduler.GetCard() > %w", err)
		}
		if c == nil {
			r.println("Congratulations! No more cards are due.")
			return errEnd
		}
		r.current = c
	}
	c := r.current

	r.printCounts()
	r.printCard(c)

	input, err := r.stdinReader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			return errEnd
		}
		return fmt.Errorf("error reading input: %w", err)
	}

	switch strings.TrimSpace(input) {
	case "q", "quit":
		return errEnd
	case "u", "undo":
		return r.undo(ctx)
	}

	ease, err := parseEase(input)
	if err != nil {
		r.println(r.red.Sprint("Answer with 1 to 4, u to undo or q to quit."))
		return nil
	}
	if err := r.scheduler.AnswerCard(ctx, c, ease); err != nil {
		return fmt.Errorf("scheduler.AnswerCard(%d) > %w", c.ID, err)
	}
	r.current = nil
	r.answered++

	if ease == card.EaseFailed {
		r.printf("❌ %s\n", r.red.Sprint("The card will be shown again soon."))
	} else {
		r.printf("✅ %s\n", r.green.Sprintf("Next review in %s.", FormatInterval(c.Interval)))
	}
	if c.LeechFlag {
		msg := "The card is a leech."
		if c.SuspendedFlag {
			msg += " It has been suspended."
		}
		r.println(r.red.Sprint(msg))
	}
	r.println()
	return nil
}

func (r *StudySession) undo(ctx context.Context) error {
	name, err := r.scheduler.Undo(ctx)
	if errors.Is(err, scheduler.ErrNothingToUndo) {
		r.println("Nothing to undo.")
		return nil
	}
	if err != nil {
		return fmt.Errorf("scheduler.Undo() > %w", err)
	}
	// The card on screen goes back to its queue.
	r.current = nil
	r.answered = max(r.answered-1, 0)
	r.printf("Undone: %s\n\n", r.italic.Sprint(name))
	return nil
}

func (r *StudySession) printCounts() {
	counts := r.scheduler.Counts()
	r.printf("%s  %s  %s\n",
		r.red.Sprintf("failed %d", counts.Failed),
		r.bold.Sprintf("review %d", counts.Review),
		r.green.Sprintf("new %d", counts.New),
	)
}

func (r *StudySession) printCard(c *card.Card) {
	r.printf("%s (fact %d, %s", r.bold.Sprintf("Card %d", c.ID), c.FactID, c.State())
	if !c.IsNew() {
		r.printf(", interval %s, factor %.2f", FormatInterval(c.Interval), c.Factor)
	}
	r.printf(")\n")

	choices := make([]string, 0, 4)
	for _, ease := range []card.Ease{card.EaseFailed, card.EaseHard, card.EaseMid, card.EaseEasy} {
		next := "soon"
		if ease != card.EaseFailed {
			next = FormatInterval(r.scheduler.NextInterval(c, ease))
		}
		choices = append(choices, fmt.Sprintf("%d %s (%s)", ease, ease, next))
	}
	r.printf("%s: ", strings.Join(choices, "  "))
}

func parseEase(input string) (card.Ease, error) {
	v, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", card.ErrInvalidEase, input)
	}
	return card.ParseEase(v)
}

// FormatInterval renders an interval in days with the largest fitting unit.
func FormatInterval(days float64) string {
	switch {
	case days < 1.0/24:
		return fmt.Sprintf("%.0f minutes", days*24*60)
	case days < 1:
		return fmt.Sprintf("%.1f hours", days*24)
	case days < 30:
		return fmt.Sprintf("%.1f days", days)
	case days < 365:
		return fmt.Sprintf("%.1f months", days/30)
	}
	return fmt.Sprintf("%.1f years", days/365)
}
