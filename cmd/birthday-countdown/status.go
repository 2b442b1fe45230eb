package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/tartampluch/go-birthday-countdown/internal/config"
	"github.com/tartampluch/go-birthday-countdown/internal/engine"
	"github.com/tartampluch/go-birthday-countdown/internal/locale"
)

// writeStatus prints one reading as a two column table.
func writeStatus(w io.Writer, tr *locale.Translator, target engine.Target, r engine.Reading) {
	bold := color.New(color.Bold)
	accent := color.New(color.FgHiMagenta, color.Bold)
	name := map[string]any{"Name": target.Name}

	_, _ = fmt.Fprintln(w, accent.Sprint(tr.Msg(config.TKeyWinTitle)))

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint(tr.Msg(config.TKeyLblName)), target.Name)
	tbl.AddRow(bold.Sprint(tr.Msg(config.TKeyStatusNext)), tr.MsgData(config.TKeyStatusDate, map[string]any{
		"Month": tr.MonthName(r.Next.Month()),
		"Day":   r.Next.Day(),
		"Year":  r.Next.Year(),
	}))

	if !r.IsToday {
		tbl.AddRow(bold.Sprint(tr.Msg(config.TKeyStatusRemaining)), remaining(tr, r.Remaining))
	}
	snap := engine.Snapshot{Target: target, Reading: r, DisplayedPercent: r.TargetPercent}
	tbl.AddRow(bold.Sprint(tr.Msg(config.TKeyStatusProgress)), snap.PercentLabel())
	tbl.RightAlign(0)

	_, _ = fmt.Fprintln(w, tbl)

	if r.IsToday {
		_, _ = fmt.Fprintln(w, accent.Sprint(tr.MsgData(config.TKeyModalTitle, name)))
		_, _ = fmt.Fprintln(w, tr.MsgData(config.TKeyCelebrateMessage, name))
	}
}

func remaining(tr *locale.Translator, r engine.Remaining) string {
	parts := []string{
		fmt.Sprintf(config.FormatUnit, r.Days, tr.Msg(config.TKeyUnitDays)),
		fmt.Sprintf(config.FormatUnit, r.Hours, tr.Msg(config.TKeyUnitHours)),
		fmt.Sprintf(config.FormatUnit, r.Minutes, tr.Msg(config.TKeyUnitMinutes)),
		fmt.Sprintf(config.FormatUnit, r.Seconds, tr.Msg(config.TKeyUnitSeconds)),
	}
	return strings.Join(parts, " ")
}
