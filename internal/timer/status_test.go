package timer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatClock(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{0, "00:00"},
		{-time.Second, "00:00"},
		{25 * time.Minute, "25:00"},
		{24*time.Minute + 59*time.Second, "24:59"},
		{1500 * time.Millisecond, "00:02"},
		{90 * time.Minute, "90:00"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatClock(tt.in))
		})
	}
}

func TestStatusElapsed(t *testing.T) {
	s := Status{Total: 10 * time.Second, Remaining: 4 * time.Second}
	assert.InDelta(t, 0.6, s.Elapsed(), 1e-9)
	assert.Equal(t, 1.0, Status{}.Elapsed())
}

func TestConfigDurationFor(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 25*time.Minute, cfg.DurationFor(KindPomodoro))
	assert.Equal(t, 5*time.Minute, cfg.DurationFor(KindShortBreak))
	assert.Equal(t, 15*time.Minute, cfg.DurationFor(KindLongBreak))
	assert.NoError(t, cfg.Validate())
}
