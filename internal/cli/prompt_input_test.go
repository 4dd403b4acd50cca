package cli

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPromptYesNo(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		input      string
		defaultYes bool
		want       bool
	}{
		{name: "yes lowercase lf", input: "y\n", want: true},
		{name: "yes word lf", input: "yes\n", want: true},
		{name: "yes mixed case lf", input: "YeS\n", want: true},
		{name: "yes lowercase cr", input: "y\r", want: true},
		{name: "no default lf", input: "\n", want: false},
		{name: "no explicit cr", input: "n\r", want: false},
		{name: "empty input defaults yes", input: "\n", defaultYes: true, want: true},
		{name: "explicit no overrides yes default", input: "n\n", defaultYes: true, want: false},
		{name: "anything else is no", input: "maybe\n", want: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var out bytes.Buffer
			got, err := promptYesNo(strings.NewReader(tc.input), &out, "Confirm? (y/n): ", tc.defaultYes)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, "Confirm? (y/n): ", out.String())
		})
	}
}

func TestPromptYesNo_EOF(t *testing.T) {
	t.Parallel()

	got, err := promptYesNo(strings.NewReader(""), io.Discard, "Confirm? ", true)
	assert.ErrorIs(t, err, io.EOF)
	assert.False(t, got)
}

func TestReadPromptLine_EOFWithoutNewline(t *testing.T) {
	t.Parallel()

	got, err := readPromptLine(strings.NewReader("yes"))
	assert.NoError(t, err)
	assert.Equal(t, "yes", got)
}

func TestReadPromptLine_ConsecutiveLines(t *testing.T) {
	t.Parallel()

	in := strings.NewReader("first\nsecond\n")
	a, err := readPromptLine(in)
	require.NoError(t, err)
	b, err := readPromptLine(in)
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second"}, []string{a, b})
}
