package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  time.Time
	}{
		{"rfc3339", "2025-01-02T03:04:05Z", time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)},
		{"rfc3339 offset", "2025-01-02T03:04:05+02:00", time.Date(2025, 1, 2, 1, 4, 5, 0, time.UTC)},
		{"naive micro", "2025-01-02T03:04:05.250000", time.Date(2025, 1, 2, 3, 4, 5, 250000000, time.Local)},
		{"naive", "2025-01-02T03:04:05", time.Date(2025, 1, 2, 3, 4, 5, 0, time.Local)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTimestamp(tt.input)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got.Time()), "got %s", got.Time())
		})
	}

	_, err := ParseTimestamp("yesterday")
	assert.Error(t, err)
}

func TestTimestamp_NullDecodesToZero(t *testing.T) {
	var holder struct {
		At *Timestamp `json:"at"`
		On Timestamp  `json:"on"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"at": null, "on": null}`), &holder))
	assert.Nil(t, holder.At)
	assert.True(t, holder.On.IsZero())
}

func TestDate_AddDaysAcrossMonth(t *testing.T) {
	d := Date{Year: 2025, Month: time.March, Day: 1}
	assert.Equal(t, Date{Year: 2025, Month: time.February, Day: 28}, d.AddDays(-1))
	assert.Equal(t, "2025-03-02", d.AddDays(1).String())
	assert.True(t, d.AddDays(-1).Before(d))
	assert.False(t, d.Before(d))
}

func TestNewPomodoroRecord(t *testing.T) {
	rec := NewPomodoroRecord("", 25*time.Minute, testNow)
	assert.Equal(t, GeneralWork, rec.Task)
	assert.Equal(t, 1500, rec.Duration)
	assert.True(t, rec.CountsAsPomodoro())
	assert.Equal(t, Date{Year: 2025, Month: time.June, Day: 15}, rec.DayIn(time.UTC))
}

func TestDate_TextRoundTrip(t *testing.T) {
	d := Date{Year: 2025, Month: time.June, Day: 8}
	text, err := d.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "2025-06-08", string(text))

	var back Date
	require.NoError(t, back.UnmarshalText(text))
	assert.Equal(t, d, back)
	assert.Error(t, back.UnmarshalText([]byte("June 8")))
}
