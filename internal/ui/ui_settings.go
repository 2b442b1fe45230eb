package ui

import (
	"errors"
	"log/slog"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-birthday-countdown/internal/config"
	"github.com/tartampluch/go-birthday-countdown/internal/engine"
)

// settingsWidgets holds references to UI elements to simplify data retrieval during save.
type settingsWidgets struct {
	langSelect   *widget.Select
	nameEntry    *widget.Entry
	monthEntry   *NumericalEntry
	dayEntry     *NumericalEntry
	volumeSlider *widget.Slider
}

// ShowSettingsWindow displays the session settings form. Changes apply to
// the running countdown only; nothing is written back to the config file.
func (app *CountdownApp) ShowSettingsWindow() {
	if app.settingsWindow != nil {
		slog.Debug(config.MsgSettingsFocus, config.LogKeyComponent, config.CompUISet)
		app.settingsWindow.RequestFocus()
		return
	}

	slog.Info(config.MsgSettingsOpen, config.LogKeyComponent, config.CompUISet)
	w := app.App.NewWindow(app.Tr.Msg(config.TKeyWinSettings))
	app.settingsWindow = w

	sw := app.buildSettingsWidgets()

	itemLang := widget.NewFormItem(app.Tr.Msg(config.TKeyLblLanguage), sw.langSelect)
	itemName := widget.NewFormItem(app.Tr.Msg(config.TKeyLblName), sw.nameEntry)
	itemMonth := widget.NewFormItem(app.Tr.Msg(config.TKeyLblMonth), sw.monthEntry)
	itemDay := widget.NewFormItem(app.Tr.Msg(config.TKeyLblDay), sw.dayEntry)
	form := widget.NewForm(itemLang, itemName, itemMonth, itemDay)

	if app.Volume != nil {
		form.Append(app.Tr.Msg(config.TKeyLblVolume), sw.volumeSlider)
	}

	btnSave := widget.NewButtonWithIcon(app.Tr.Msg(config.TKeyBtnSave), theme.DocumentSaveIcon(), func() {
		if err := app.saveSettings(sw); err != nil {
			dialog.ShowError(err, w)
			return
		}
		w.Close()
	})
	btnSave.Importance = widget.HighImportance
	btnCancel := widget.NewButtonWithIcon(app.Tr.Msg(config.TKeyBtnCancel), theme.CancelIcon(), func() { w.Close() })

	content := container.NewPadded(container.NewVBox(
		form,
		container.NewGridWithColumns(2, btnCancel, btnSave),
	))

	w.SetContent(content)
	w.Resize(fyne.NewSize(config.SettingsWindowWidth, content.MinSize().Height))
	w.SetFixedSize(true)
	w.SetOnClosed(func() { app.settingsWindow = nil })
	w.Show()
}

func (app *CountdownApp) buildSettingsWidgets() *settingsWidgets {
	sw := &settingsWidgets{}

	sw.langSelect = widget.NewSelect(app.Tr.Languages(), nil)
	sw.langSelect.SetSelected(app.Tr.Language())

	sw.nameEntry = widget.NewEntry()
	sw.nameEntry.SetText(app.target.Name)

	errNumber := app.Tr.Msg(config.TKeyErrNumber)
	sw.monthEntry = NewRangeEntry(int(app.target.Month), int(time.January),
		func() int { return int(time.December) }, errNumber, app.Tr.Msg(config.TKeyErrMonth))

	// The day limit follows whatever month is currently typed.
	sw.dayEntry = NewRangeEntry(app.target.Day, 1, func() int {
		if m, ok := sw.monthEntry.Int(); ok && m >= int(time.January) && m <= int(time.December) {
			return config.DaysIn(time.Month(m))
		}
		return config.DaysIn(time.January)
	}, errNumber, app.Tr.Msg(config.TKeyErrDay))
	sw.monthEntry.OnChanged = func(string) { _ = sw.dayEntry.Validate() }

	sw.volumeSlider = widget.NewSlider(0, 1)
	sw.volumeSlider.Step = 0.05
	if app.Volume != nil {
		sw.volumeSlider.SetValue(app.Volume.Volume())
	}
	return sw
}

// saveSettings validates the form and applies it to the running session.
func (app *CountdownApp) saveSettings(sw *settingsWidgets) error {
	if err := sw.monthEntry.Validate(); err != nil {
		return err
	}
	if err := sw.dayEntry.Validate(); err != nil {
		return err
	}
	month, _ := sw.monthEntry.Int()
	day, _ := sw.dayEntry.Int()
	if err := config.ValidateDate(time.Month(month), day); err != nil {
		return errors.New(app.Tr.Msg(config.TKeyErrDay))
	}

	name := strings.TrimSpace(sw.nameEntry.Text)
	if name == "" {
		name = app.target.Name
	}
	target := engine.Target{Month: time.Month(month), Day: day, Name: name}

	slog.Info(config.MsgSettingsSaved,
		config.LogKeyComponent, config.CompUISet,
		config.LogKeyLang, sw.langSelect.Selected,
		config.LogKeyName, target.Name,
		config.LogKeyMonth, month,
		config.LogKeyDay, day,
	)

	if sw.langSelect.Selected != "" {
		app.Tr.SetLanguage(sw.langSelect.Selected)
		app.Settings.Language = app.Tr.Language()
	}
	if app.Volume != nil {
		app.Volume.SetVolume(sw.volumeSlider.Value)
		app.Settings.Volume = sw.volumeSlider.Value
	}

	if target != app.target {
		app.target = target
		app.Settings.Month, app.Settings.Day, app.Settings.Name = target.Month, day, name
		app.Loop.SetTarget(target)
	}

	app.applyLanguage()
	return nil
}
