package timer

import (
	"fmt"
	"time"

	"github.com/alexanderramin/pomo/internal/domain"
)

// Kind is the countdown being run. It shares values with domain.SessionType.
type Kind = domain.SessionType

const (
	KindPomodoro   = domain.SessionPomodoro
	KindShortBreak = domain.SessionShortBreak
	KindLongBreak  = domain.SessionLongBreak
)

// State is the machine's position in the session cycle.
type State int

const (
	StateIdle State = iota
	StateRunning
	StateCompleted
	StateInterrupted
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateCompleted:
		return "completed"
	case StateInterrupted:
		return "interrupted"
	default:
		return "idle"
	}
}

// Outcome reports how a countdown ended.
type Outcome int

const (
	// OutcomeCompleted means the countdown reached zero.
	OutcomeCompleted Outcome = iota
	// OutcomeCountedAfterInterrupt means a pomodoro was interrupted and the
	// user chose to count it anyway.
	OutcomeCountedAfterInterrupt
	// OutcomeCancelled means the countdown was interrupted and discarded.
	OutcomeCancelled
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCompleted:
		return "completed"
	case OutcomeCountedAfterInterrupt:
		return "counted_after_interrupt"
	default:
		return "cancelled"
	}
}

// Status is a snapshot of a running countdown, reported on every tick.
type Status struct {
	Kind      Kind
	State     State
	Remaining time.Duration
	Total     time.Duration
	Task      string
	Count     int
	StartedAt time.Time
}

// Clock renders the remaining time as MM:SS.
func (s Status) Clock() string {
	return FormatClock(s.Remaining)
}

// Elapsed returns the fraction of the countdown already spent, in [0, 1].
func (s Status) Elapsed() float64 {
	if s.Total <= 0 {
		return 1
	}
	f := 1 - float64(s.Remaining)/float64(s.Total)
	return min(max(f, 0), 1)
}

// FormatClock renders d as MM:SS, rounding partial seconds up so a fresh
// 25 minute countdown shows 25:00. Minutes are not wrapped into hours.
func FormatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int((d + time.Second - 1) / time.Second)
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}

// Label is the human name of a countdown kind.
func Label(kind Kind) string {
	switch kind {
	case KindShortBreak:
		return "short break"
	case KindLongBreak:
		return "long break"
	default:
		return "pomodoro"
	}
}
