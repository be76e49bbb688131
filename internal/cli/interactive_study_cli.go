package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/fatih/color"
)

var errEnd = errors.New("end")

// InteractiveStudyCLI holds the terminal state shared by interactive sessions.
type InteractiveStudyCLI struct {
	stdinReader  *bufio.Reader
	stdoutWriter io.Writer
	bold         *color.Color
	italic       *color.Color
	red          *color.Color
	green        *color.Color
}

func newInteractiveStudyCLI(stdin io.Reader, stdout io.Writer) *InteractiveStudyCLI {
	return &InteractiveStudyCLI{
		stdinReader:  bufio.NewReader(stdin),
		stdoutWriter: stdout,
		bold:         color.New(color.Bold),
		italic:       color.New(color.Italic),
		red:          color.New(color.FgRed),
		green:        color.New(color.FgGreen),
	}
}

//go:generate mockgen -source=interactive_study_cli.go -destination=../mocks/cli/mock_session.go -package=mock_cli Session

type Session interface {
	Session(ctx context.Context) error
}

// Run repeats session until it ends, fails, or the process is interrupted.
func (cli *InteractiveStudyCLI) Run(ctx context.Context, session Session) error {
	ctx, cancel := signal.NotifyContext(
		ctx,
		os.Interrupt,
	)
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		defer close(errCh)

		for {
			select {
			case <-ctx.Done():
				return
			default:
			}

			if err := session.Session(ctx); err != nil {
				if !errors.Is(err, errEnd) {
					errCh <- err
				}
				return
			}
		}
	}()
	select {
	case <-ctx.Done():
		cli.println("Received interrupt signal, exiting...")
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("error: %w", err)
		}
	}
	return nil
}

func (cli *InteractiveStudyCLI) println(a ...any) {
	if cli.stdoutWriter == nil {
		return
	}
	_, _ = fmt.Fprintln(cli.stdoutWriter, a...)
}

func (cli *InteractiveStudyCLI) printf(format string, a ...any) {
	if cli.stdoutWriter == nil {
		return
	}
	_, _ = fmt.Fprintf(cli.stdoutWriter, format, a...)
}
