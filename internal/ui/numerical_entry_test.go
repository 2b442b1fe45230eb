package ui_test

import (
	"testing"

	"fyne.io/fyne/v2/driver/mobile"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/tartampluch/go-birthday-countdown/internal/ui"
)

func TestNumericalEntry_TypedRune(t *testing.T) {
	test.NewTempApp(t)
	entry := ui.NewNumericalEntry()
	window := test.NewWindow(entry)
	defer window.Close()

	tests := []struct {
		name     string
		input    rune
		accepted bool
	}{
		{"Digit_Zero", '0', true},
		{"Digit_Nine", '9', true},
		{"Digit_Five", '5', true},
		{"Letter_a", 'a', false},
		{"Letter_Z", 'Z', false},
		{"Symbol_Dash", '-', false},
		{"Symbol_Space", ' ', false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry.SetText("")
			test.Type(entry, string(tt.input))

			if tt.accepted {
				assert.Equal(t, string(tt.input), entry.Text, "input should be accepted")
			} else {
				assert.Empty(t, entry.Text, "input should be rejected")
			}
		})
	}
}

func TestNumericalEntry_Keyboard(t *testing.T) {
	entry := ui.NewNumericalEntry()
	assert.Equal(t, mobile.NumberKeyboard, entry.Keyboard())
}

func TestNumericalEntry_IntRoundTrip(t *testing.T) {
	test.NewTempApp(t)
	entry := ui.NewNumericalEntry()

	entry.SetInt(29)
	n, ok := entry.Int()
	assert.True(t, ok)
	assert.Equal(t, 29, n)

	// SetText bypasses TypedRune, so non-digits can still arrive.
	entry.SetText("abc")
	_, ok = entry.Int()
	assert.False(t, ok)
}

func TestRangeEntry_Validator(t *testing.T) {
	test.NewTempApp(t)
	limit := 30
	entry := ui.NewRangeEntry(15, 1, func() int { return limit }, "nan", "range")

	assert.NoError(t, entry.Validate())

	entry.SetText("31")
	assert.EqualError(t, entry.Validate(), "range")

	limit = 31
	assert.NoError(t, entry.Validate(), "upper bound follows the other field")

	entry.SetText("0")
	assert.EqualError(t, entry.Validate(), "range")

	entry.SetText("")
	assert.EqualError(t, entry.Validate(), "nan")
}
