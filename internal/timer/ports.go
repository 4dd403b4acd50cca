package timer

import (
	"context"
	"time"

	"github.com/alexanderramin/pomo/internal/domain"
)

// Clock abstracts wall time so countdowns can be driven by tests.
type Clock interface {
	Now() time.Time
	After(d time.Duration) <-chan time.Time
}

type realClock struct{}

func (realClock) Now() time.Time                         { return time.Now() }
func (realClock) After(d time.Duration) <-chan time.Time { return time.After(d) }

// Recorder persists finished pomodoros. *stats.Log satisfies it.
type Recorder interface {
	Append(ctx context.Context, rec domain.SessionRecord) error
}

// TaskCounter credits a pomodoro to a task. *tasks.Registry satisfies it.
type TaskCounter interface {
	IncrementPomodoro(ctx context.Context, id int) error
}

// EventKind identifies a user-facing transition announced through Display.
type EventKind int

const (
	EventPomodoroComplete EventKind = iota
	EventBreakSelected
	EventBreakStarted
	EventBreakComplete
	EventBreakInterrupted
	EventPaused
	EventCountedAfterInterrupt
	EventCancelled
	EventWarning
)

// Event carries the details of a transition.
type Event struct {
	Kind  EventKind
	Count int
	Break Kind
	Err   error
}

// Display renders countdown ticks and transitions.
type Display interface {
	Tick(Status)
	Show(Event)
}

// Prompter asks the user questions between countdowns.
type Prompter interface {
	Confirm(ctx context.Context, question string) (bool, error)
	Acknowledge(ctx context.Context, message string) error
}

// InterruptSource derives a context that is cancelled when the user asks to
// stop the current countdown.
type InterruptSource func(ctx context.Context) (context.Context, context.CancelFunc)

type noDisplay struct{}

func (noDisplay) Tick(Status) {}
func (noDisplay) Show(Event)  {}

type declinePrompter struct{}

func (declinePrompter) Confirm(context.Context, string) (bool, error) { return false, nil }
func (declinePrompter) Acknowledge(context.Context, string) error     { return nil }

func noInterrupts(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithCancel(ctx)
}
