package prompt

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseChoice(t *testing.T) {
	options := []string{"none", "xdata", "ydata"}

	tests := []struct {
		in     string
		want   int
		wantOK bool
	}{
		{"none", 0, true},
		{"XDATA", 1, true},
		{"y", 2, true},
		{"n", 0, true},
		{"3", 2, true},
		{"0", 0, false},
		{"", 0, false},
		{"zdata", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseChoice(tt.in, options)
		assert.Equal(t, tt.wantOK, ok, "input %q", tt.in)
		if tt.wantOK {
			assert.Equal(t, tt.want, got, "input %q", tt.in)
		}
	}

	// ambiguous prefix
	_, ok := ParseChoice("p", []string{"paired-list", "png"})
	assert.False(t, ok)
}

func TestParseSelection(t *testing.T) {
	picked, rejected := ParseSelection("2 1 2 x 9 0", 3)
	assert.Equal(t, []int{1, 0}, picked)
	require.Len(t, rejected, 4)
	assert.Equal(t, "2", rejected[0].Token)
	assert.Contains(t, rejected[0].String(), "multiple entries")
	assert.Equal(t, "x", rejected[1].Token)
	assert.Equal(t, "9", rejected[2].Token)
	assert.Equal(t, "0", rejected[3].Token)
}

func TestConsoleRetriesInvalidInput(t *testing.T) {
	in := strings.NewReader(strings.Join([]string{
		"maybe", "y", // Confirm
		"abc", "",    // AskNumber falls back to the default
		"2.5",        // AskNumber
		"q", "xdata", // AskChoice
		"Time [s]",   // AskText
		"3 1 7",      // AskSelection
	}, "\n"))
	var out bytes.Buffer
	c := NewConsole(in, &out)

	ok, err := c.Confirm("Proceed?")
	require.NoError(t, err)
	assert.True(t, ok)

	v, err := c.AskNumber("Offset?", 0)
	require.NoError(t, err)
	assert.Equal(t, 0.0, v)

	v, err = c.AskNumber("Scale?", 1)
	require.NoError(t, err)
	assert.Equal(t, 2.5, v)

	i, err := c.AskChoice("Type", []string{"none", "xdata", "ydata"})
	require.NoError(t, err)
	assert.Equal(t, 1, i)

	text, err := c.AskText("Description?")
	require.NoError(t, err)
	assert.Equal(t, "Time [s]", text)

	sel, err := c.AskSelection("Files", 3)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 0}, sel)

	assert.Contains(t, out.String(), "Invalid input.")
	assert.Contains(t, out.String(), "Number '7' is invalid.")

	_, err = c.Confirm("More?")
	assert.ErrorIs(t, err, ErrAborted)
}

func TestScript(t *testing.T) {
	s := NewScript(true, "desc", Default, 2.0, "y", []int{0, 0, 5, 1})

	ok, err := s.Confirm("q1")
	require.NoError(t, err)
	assert.True(t, ok)

	text, err := s.AskText("q2")
	require.NoError(t, err)
	assert.Equal(t, "desc", text)

	v, err := s.AskNumber("q3", 1.5)
	require.NoError(t, err)
	assert.Equal(t, 1.5, v)

	v, err = s.AskNumber("q4", 1.5)
	require.NoError(t, err)
	assert.Equal(t, 2.0, v)

	i, err := s.AskChoice("q5", []string{"none", "xdata", "ydata"})
	require.NoError(t, err)
	assert.Equal(t, 2, i)

	sel, err := s.AskSelection("q6", 3)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1}, sel)

	_, err = s.Confirm("q7")
	assert.ErrorIs(t, err, ErrScriptExhausted)
	assert.Equal(t, []string{"q1", "q2", "q3", "q4", "q5", "q6", "q7"}, s.Asked)
}

func TestScriptTypeMismatch(t *testing.T) {
	s := NewScript("yes")
	_, err := s.Confirm("q")
	assert.Error(t, err)
}
