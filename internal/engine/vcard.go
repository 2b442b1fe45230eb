package engine

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/emersion/go-vcard"
	"github.com/tartampluch/go-birthday-countdown/internal/config"
)

// LoadTarget reads the target date from the BDAY of a contact in a .vcf file.
// When contact is empty the first card with a usable birthday wins; otherwise
// the card whose name matches contact (case-insensitive).
func LoadTarget(path, contact string) (Target, error) {
	f, err := os.Open(path)
	if err != nil {
		return Target{}, fmt.Errorf("%s: %w", config.ErrVCardOpen, err)
	}
	// Best effort close. Errors in Close() for read-only files are rarely actionable here.
	defer func() { _ = f.Close() }()

	t, err := DecodeTarget(f, contact)
	if err != nil {
		return Target{}, err
	}

	slog.Info(config.MsgVCardTarget,
		config.LogKeyComponent, config.CompVCard,
		config.LogKeyPath, path,
		config.LogKeyName, t.Name,
		config.LogKeyMonth, int(t.Month),
		config.LogKeyDay, t.Day)
	return t, nil
}

// DecodeTarget scans a vCard stream; see LoadTarget.
func DecodeTarget(r io.Reader, contact string) (Target, error) {
	decoder := vcard.NewDecoder(r)

	for {
		card, err := decoder.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// A malformed card aborts the decoder stream; nothing after it is readable.
			slog.Warn(config.MsgVCardSkipped,
				config.LogKeyComponent, config.CompVCard,
				config.LogKeyError, err)
			break
		}

		name := cardName(card)
		if contact != "" && !strings.EqualFold(strings.TrimSpace(name), strings.TrimSpace(contact)) {
			continue
		}

		bday := card.Get(config.VCardBDAY)
		if bday == nil || bday.Value == "" {
			continue
		}

		date, err := parseDate(bday.Value)
		if err != nil {
			slog.Debug(config.MsgVCardDate,
				config.LogKeyComponent, config.CompVCard,
				config.LogKeyValue, bday.Value)
			continue
		}

		return Target{Month: date.Month(), Day: date.Day(), Name: name}, nil
	}

	return Target{}, errors.New(config.ErrVCardNoBDAY)
}

// cardName applies the FN (Formatted) > N (Structured) strategy.
func cardName(card vcard.Card) string {
	if fn := card.Get(config.VCardFN); fn != nil && fn.Value != "" {
		return fn.Value
	}
	if n := card.Name(); n != nil {
		full := strings.TrimSpace(strings.Join([]string{n.GivenName, n.FamilyName}, " "))
		if full != "" {
			return full
		}
	}
	return config.DefaultName
}

// parseDate handles the vCard date forms seen in the wild.
// Dates without a year are placed in a leap year so --02-29 survives.
func parseDate(value string) (time.Time, error) {
	formatsWithYear := []string{
		config.DateFormatFullDash,
		config.DateFormatFullBasic,
		config.DateFormatRFC3339,
		config.DateFormatFullT,
	}
	for _, f := range formatsWithYear {
		if t, err := time.Parse(f, value); err == nil {
			return t, nil
		}
	}

	formatsWithoutYear := []string{config.DateFormatNoYearD, config.DateFormatNoYearB}
	for _, f := range formatsWithoutYear {
		if t, err := time.Parse(f, value); err == nil {
			return time.Date(config.DefaultLeapYear, t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}

	return time.Time{}, errors.New(config.ErrDateParse)
}
