package ui

import (
	"errors"
	"strconv"

	"fyne.io/fyne/v2/driver/mobile"
	"fyne.io/fyne/v2/widget"
)

// NumericalEntry is an Entry that only accepts digits from the keyboard.
// Pasted text is not filtered; attach a Validator for that.
type NumericalEntry struct {
	widget.Entry
}

// NewNumericalEntry creates a new instance of NumericalEntry.
func NewNumericalEntry() *NumericalEntry {
	entry := &NumericalEntry{}
	entry.ExtendBaseWidget(entry)
	return entry
}

// NewRangeEntry creates a NumericalEntry holding value whose validator
// rejects anything outside [minValue, maxValue()]. maxValue is evaluated
// on each validation so it can depend on another field.
func NewRangeEntry(value, minValue int, maxValue func() int, errNumber, errRange string) *NumericalEntry {
	entry := NewNumericalEntry()
	entry.SetInt(value)
	entry.Validator = func(s string) error {
		n, err := strconv.Atoi(s)
		if err != nil {
			return errors.New(errNumber)
		}
		if n < minValue || n > maxValue() {
			return errors.New(errRange)
		}
		return nil
	}
	return entry
}

// TypedRune filters characters to allow only digits (0-9).
func (e *NumericalEntry) TypedRune(r rune) {
	if r >= '0' && r <= '9' {
		e.Entry.TypedRune(r)
	}
}

// Keyboard shows a numeric keypad on mobile devices.
func (e *NumericalEntry) Keyboard() mobile.KeyboardType {
	return mobile.NumberKeyboard
}

// Int parses the current text.
func (e *NumericalEntry) Int() (int, bool) {
	n, err := strconv.Atoi(e.Text)
	return n, err == nil
}

// SetInt replaces the text with n.
func (e *NumericalEntry) SetInt(n int) {
	e.SetText(strconv.Itoa(n))
}
