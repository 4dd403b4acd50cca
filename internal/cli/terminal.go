package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/alexanderramin/pomo/internal/cli/formatter"
	"github.com/alexanderramin/pomo/internal/stats"
	"github.com/alexanderramin/pomo/internal/timer"
	"github.com/charmbracelet/huh"
)

const barWidth = 30

// Terminal renders countdowns and asks timer questions on a terminal. On a
// TTY the status line is redrawn in place and questions use huh confirms;
// otherwise it prints a line per minute and reads y/n answers.
type Terminal struct {
	in          io.Reader
	out         io.Writer
	interactive bool
	stats       *stats.Engine

	bar       *formatter.CountdownBar
	lastStart time.Time
	midLine   bool
}

func NewTerminal(in io.Reader, out io.Writer, interactive bool, engine *stats.Engine) *Terminal {
	return &Terminal{
		in:          in,
		out:         out,
		interactive: interactive,
		stats:       engine,
		bar:         formatter.NewCountdownBar(barWidth),
	}
}

// Bind redirects the terminal to a command's streams.
func (t *Terminal) Bind(in io.Reader, out io.Writer) {
	t.in = in
	t.out = out
}

func (t *Terminal) Interactive() bool { return t.interactive }

func (t *Terminal) today() int {
	if t.stats == nil {
		return 0
	}
	return stats.PomodoroCount(t.stats.Today())
}

func (t *Terminal) Tick(s timer.Status) {
	if !s.StartedAt.Equal(t.lastStart) {
		t.lastStart = s.StartedAt
		t.endLine()
		fmt.Fprintln(t.out, formatter.FormatSessionHeader(s, t.today()))
	}

	line := formatter.FormatTick(s, t.bar.View(s.Elapsed(), s.Kind.IsBreak()))
	switch {
	case t.interactive:
		fmt.Fprintf(t.out, "\r%s\x1b[K", line)
		t.midLine = true
	case s.Remaining == s.Total || s.Remaining == 0 || s.Remaining%time.Minute == 0:
		fmt.Fprintln(t.out, line)
	}
	if s.Remaining == 0 {
		t.endLine()
	}
}

func (t *Terminal) Show(e timer.Event) {
	text := formatter.FormatEvent(e, t.today())
	if text == "" {
		return
	}
	t.endLine()
	fmt.Fprintln(t.out, text)
}

func (t *Terminal) endLine() {
	if t.midLine {
		fmt.Fprintln(t.out)
		t.midLine = false
	}
}

// Confirm asks a yes/no question. Aborting a huh confirm counts as "no".
func (t *Terminal) Confirm(ctx context.Context, question string) (bool, error) {
	t.endLine()
	if !t.interactive {
		return promptYesNo(t.in, t.out, question+" (y/n): ", false)
	}

	var yes bool
	err := t.runForm(ctx, wizardConfirm(question, &yes))
	if errors.Is(err, huh.ErrUserAborted) {
		return false, nil
	}
	return yes, err
}

// Acknowledge prints message and waits for Enter.
func (t *Terminal) Acknowledge(_ context.Context, message string) error {
	t.endLine()
	_, err := promptLine(t.in, t.out, message+" ")
	return err
}

func (t *Terminal) runForm(ctx context.Context, form *huh.Form) error {
	return form.WithInput(t.in).WithOutput(t.out).RunWithContext(ctx)
}

// SignalInterrupts cancels the returned context on Ctrl+C. Installed around
// each countdown so Ctrl+C pauses the timer instead of killing the process.
func SignalInterrupts(ctx context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(ctx, os.Interrupt)
}
