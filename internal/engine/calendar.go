package engine

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/emersion/go-ical"
	"github.com/google/uuid"
	"github.com/tartampluch/go-birthday-countdown/internal/config"
)

// ExportOptions controls the generated calendar.
type ExportOptions struct {
	// Summary is the localized event title. Empty falls back to the target name.
	Summary string
	// ReminderTrigger is an ISO8601 duration (e.g. "-P1D"). Empty disables the alarm.
	ReminderTrigger string
}

// ExportCalendar writes an iCalendar document holding one all-day event on
// the next occurrence of target, repeating every year.
func ExportCalendar(w io.Writer, target Target, now time.Time, opts ExportOptions) error {
	cal := ical.NewCalendar()
	cal.Props.SetText(config.PropVersion, config.ICalVersion)
	cal.Props.SetText(config.PropProdid, config.ICalProdid)
	cal.Props.SetText(config.PropXWRCalName, config.ICalCalName)
	cal.Props.SetText(config.PropCalScale, config.ICalScale)
	cal.Props.SetText(config.PropMethod, config.ICalMethod)

	summary := opts.Summary
	if summary == "" {
		summary = target.Name
	}

	// Today's occurrence is still worth exporting, so start from Last when it is today.
	reading := Calculate(now, target)
	start := reading.Next
	if reading.IsToday {
		start = reading.Last
	}

	event := ical.NewEvent()
	event.Props.SetText(config.PropUID, EventUID(target))
	event.Props.SetText(config.PropSummary, summary)

	dtStamp := ical.NewProp(config.PropDTStamp)
	dtStamp.SetDateTime(now.UTC())
	event.Props.Set(dtStamp)

	dtStart := ical.NewProp(config.PropDTStart)
	dtStart.SetDate(start)
	event.Props.Set(dtStart)

	// Set the rule manually to avoid a VALUE=TEXT parameter.
	rrule := ical.NewProp(config.PropRRule)
	rrule.Value = config.ICalYearly
	if target.IsLeapDay() {
		rrule.Value = config.ICalYearlyLeapDay
	}
	event.Props.Set(rrule)

	if opts.ReminderTrigger != "" {
		addAlarm(event, opts.ReminderTrigger, summary)
	}

	cal.Children = append(cal.Children, event.Component)

	if err := ical.NewEncoder(w).Encode(cal); err != nil {
		return fmt.Errorf("%s: %w", config.ErrICalEncode, err)
	}
	return nil
}

// ExportCalendarFile writes ExportCalendar output to path with owner-only permissions.
func ExportCalendarFile(path string, target Target, now time.Time, opts ExportOptions) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, config.FilePermUserRW)
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrExportWrite, err)
	}

	if err := ExportCalendar(f, target, now, opts); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%s: %w", config.ErrExportWrite, err)
	}

	slog.Info(config.MsgExportDone,
		config.LogKeyComponent, config.CompCalendar,
		config.LogKeyPath, path)
	return nil
}

// EventUID is stable for a given target so re-imports update the same event.
func EventUID(target Target) string {
	name := fmt.Sprintf(config.FormatUIDName, target.Name, int(target.Month), target.Day, config.AppID)
	id := uuid.NewSHA1(uuid.NameSpaceURL, []byte(name))
	return fmt.Sprintf(config.FormatUID, id.String(), config.ICalDomain)
}

// addAlarm appends a DISPLAY alarm (notification) to the event.
func addAlarm(event *ical.Event, trigger, description string) {
	alarm := ical.NewComponent(config.ICalComponent)
	alarm.Props.SetText(config.PropAction, config.ICalAction)
	alarm.Props.SetText(config.PropDescription, description)

	// Set trigger manually to avoid "VALUE=TEXT" param
	triggerProp := ical.NewProp(config.PropTrigger)
	triggerProp.Value = trigger
	alarm.Props.Set(triggerProp)

	event.Children = append(event.Children, alarm)
}
