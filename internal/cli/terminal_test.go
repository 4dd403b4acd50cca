package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/pomo/internal/stats"
	"github.com/alexanderramin/pomo/internal/testutil"
	"github.com/alexanderramin/pomo/internal/timer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTerminal_TickPrintsHeaderOncePerCountdown(t *testing.T) {
	var out bytes.Buffer
	engine := stats.NewEngine(stats.NewMemoryLog(nil), func() time.Time { return testStart })
	term := NewTerminal(strings.NewReader(""), &out, false, engine)

	started := testStart
	for _, remaining := range []time.Duration{2 * time.Minute, 90 * time.Second, time.Minute, 0} {
		term.Tick(timer.Status{
			Kind:      timer.KindPomodoro,
			Total:     2 * time.Minute,
			Remaining: remaining,
			Task:      "Write",
			StartedAt: started,
		})
	}

	text := out.String()
	assert.Equal(t, 1, strings.Count(text, "Started at 09:00:00"))
	assert.Contains(t, text, "Time remaining 02:00")
	assert.Contains(t, text, "Time remaining 01:00")
	assert.Contains(t, text, "Time remaining 00:00")
	assert.NotContains(t, text, "01:30", "non-interactive output prints whole minutes only")
}

func TestTerminal_InteractiveRedrawsLine(t *testing.T) {
	var out bytes.Buffer
	term := NewTerminal(strings.NewReader(""), &out, true, nil)

	term.Tick(timer.Status{Kind: timer.KindShortBreak, Total: 2 * time.Second, Remaining: time.Second, StartedAt: testStart})
	term.Show(timer.Event{Kind: timer.EventBreakInterrupted})

	text := out.String()
	assert.Contains(t, text, "\r")
	assert.Contains(t, text, "00:01\x1b[K\n", "interrupt message starts on a fresh line")
	assert.Contains(t, text, "Break interrupted.")
}

func TestTerminal_ConfirmAndAcknowledge(t *testing.T) {
	var out bytes.Buffer
	term := NewTerminal(strings.NewReader("y\n\n"), &out, false, nil)
	ctx := context.Background()

	ok, err := term.Confirm(ctx, "Do you want to mark this session as complete?")
	require.NoError(t, err)
	assert.True(t, ok)
	require.NoError(t, term.Acknowledge(ctx, "Press ENTER to start long break..."))

	assert.Contains(t, out.String(), "Do you want to mark this session as complete? (y/n): ")
	assert.Contains(t, out.String(), "Press ENTER to start long break... ")

	_, err = term.Confirm(ctx, "Start another pomodoro?")
	assert.Error(t, err, "input exhausted")
}

func TestTerminal_DrivesMachine(t *testing.T) {
	var out bytes.Buffer
	log := stats.NewMemoryLog(nil)
	clock := testutil.NewFakeClock(testStart)
	term := NewTerminal(strings.NewReader("n\n"), &out, false, stats.NewEngine(log, clock.Now))

	var cancel context.CancelFunc
	m, err := timer.New(log,
		timer.WithConfig(timer.Config{Pomodoro: 3 * time.Second, ShortBreak: time.Second, LongBreak: time.Second, PomodorosUntilLongBreak: 4}),
		timer.WithClock(clock),
		timer.WithDisplay(term),
		timer.WithPrompter(term),
		timer.WithInterrupts(func(ctx context.Context) (context.Context, context.CancelFunc) {
			var c context.Context
			c, cancel = context.WithCancel(ctx)
			return c, cancel
		}),
	)
	require.NoError(t, err)
	clock.OnAfter(func(n int) {
		if n == 2 {
			cancel()
		}
	})

	outcome, err := m.RunPomodoro(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, timer.OutcomeCancelled, outcome)
	assert.Contains(t, out.String(), "Timer paused!")
	assert.Contains(t, out.String(), "Session cancelled.")
	assert.Empty(t, log.Sessions())
}

func TestWarnPersist(t *testing.T) {
	env := testApp(t)
	root := NewRootCmd(env.app)
	var buf bytes.Buffer
	root.SetErr(&buf)

	assert.NoError(t, warnPersist(root, nil))
	other := errors.New("boom")
	assert.Equal(t, other, warnPersist(root, other))
}
