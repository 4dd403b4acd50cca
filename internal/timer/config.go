package timer

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidConfig is returned when a Config has a non-positive field.
var ErrInvalidConfig = errors.New("invalid timer config")

// Config holds the session lengths and the long-break cadence.
type Config struct {
	Pomodoro                time.Duration
	ShortBreak              time.Duration
	LongBreak               time.Duration
	PomodorosUntilLongBreak int
}

// DefaultConfig returns 25/5/15 minutes with a long break every 4 pomodoros.
func DefaultConfig() Config {
	return Config{
		Pomodoro:                25 * time.Minute,
		ShortBreak:              5 * time.Minute,
		LongBreak:               15 * time.Minute,
		PomodorosUntilLongBreak: 4,
	}
}

func (c Config) Validate() error {
	switch {
	case c.Pomodoro <= 0:
		return fmt.Errorf("%w: pomodoro duration must be positive", ErrInvalidConfig)
	case c.ShortBreak <= 0:
		return fmt.Errorf("%w: short break duration must be positive", ErrInvalidConfig)
	case c.LongBreak <= 0:
		return fmt.Errorf("%w: long break duration must be positive", ErrInvalidConfig)
	case c.PomodorosUntilLongBreak <= 0:
		return fmt.Errorf("%w: pomodoros until long break must be positive", ErrInvalidConfig)
	}
	return nil
}

// DurationFor returns the configured length of a countdown kind.
func (c Config) DurationFor(kind Kind) time.Duration {
	switch kind {
	case KindShortBreak:
		return c.ShortBreak
	case KindLongBreak:
		return c.LongBreak
	default:
		return c.Pomodoro
	}
}
