package ui

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-birthday-countdown/internal/config"
	"github.com/tartampluch/go-birthday-countdown/internal/engine"
	"github.com/tartampluch/go-birthday-countdown/internal/locale"
)

// Controller is the part of engine.Countdown the window talks to.
type Controller interface {
	Run(ctx context.Context)
	DismissModal()
	ConfettiFinished()
	SetTarget(t engine.Target)
}

// VolumeControl adjusts the celebration sound at runtime.
type VolumeControl interface {
	Volume() float64
	SetVolume(v float64)
}

// CountdownApp renders engine snapshots in a Fyne window.
type CountdownApp struct {
	App      fyne.App
	Window   fyne.Window
	Ctx      context.Context
	Settings config.Settings
	Tr       *locale.Translator
	Loop     Controller
	Volume   VolumeControl // optional
	Clock    engine.Clock

	target engine.Target
	last   engine.Snapshot
	dark   bool

	confettiShown  bool
	modalDismissed bool // until the loop reports the modal closed
	settingsWindow fyne.Window

	ring            *ProgressRing
	progressHeader  *widget.Label
	countdownCard   *widget.Card
	countdownHeader *widget.Label
	unitValues      [config.LayoutColumnsUnits]*widget.Label
	unitNames       [config.LayoutColumnsUnits]*widget.Label
	revisit         *widget.Label
	celebrateCard   *widget.Card
	celebrateHeader *widget.Label
	celebrateMsg    *widget.Label
	confetti        *ConfettiLayer
	modal           *widget.PopUp
	modalTitle      *widget.Label
	modalMsg        *widget.Label
	modalClose      *widget.Button
	footerCopyright *widget.Label
	footerPurpose   *widget.Label
	btnTheme        *widget.Button
	btnSettings     *widget.Button
	btnExport       *widget.Button
}

// NewCountdownApp wires the window to a countdown loop. The loop's snapshot
// callback must be pointed at OnSnapshot by the caller before Run.
func NewCountdownApp(a fyne.App, ctx context.Context, s config.Settings, target engine.Target, loop Controller, tr *locale.Translator) *CountdownApp {
	return &CountdownApp{
		App:      a,
		Ctx:      ctx,
		Settings: s,
		Tr:       tr,
		Loop:     loop,
		Clock:    engine.RealClock{},
		target:   target,
		dark:     s.Dark,
	}
}

// Run shows the window and blocks until it is closed or ctx is cancelled.
func (app *CountdownApp) Run() {
	app.BuildWindow()

	loopCtx, stop := context.WithCancel(app.Ctx)
	defer stop()
	go app.Loop.Run(loopCtx)

	go func() {
		<-loopCtx.Done()
		slog.Info(config.MsgCtxCancel, config.LogKeyComponent, config.CompUI)
		fyne.Do(app.App.Quit)
	}()

	app.Window.ShowAndRun()
}

// OnSnapshot is the loop callback; it hops onto the Fyne main goroutine.
func (app *CountdownApp) OnSnapshot(s engine.Snapshot) {
	fyne.Do(func() { app.Render(s) })
}

// BuildWindow creates the main window and all widgets.
func (app *CountdownApp) BuildWindow() {
	app.App.Settings().SetTheme(NewCountdownTheme(app.dark))

	w := app.App.NewWindow(app.Tr.Msg(config.TKeyWinTitle))
	app.Window = w

	// --- Top bar ---
	app.btnExport = widget.NewButtonWithIcon("", theme.DocumentSaveIcon(), app.showExportDialog)
	app.btnSettings = widget.NewButtonWithIcon("", theme.SettingsIcon(), app.ShowSettingsWindow)
	app.btnTheme = widget.NewButtonWithIcon("", themeIcon(app.dark), app.ToggleDark)
	topBar := container.NewHBox(layout.NewSpacer(), app.btnExport, app.btnSettings, app.btnTheme)

	// --- Progress card ---
	app.ring = NewProgressRing()
	app.ring.SetDark(app.dark)
	app.progressHeader = centeredLabel()
	progressCard := widget.NewCard("", "", container.NewVBox(app.progressHeader, container.NewCenter(app.ring)))

	// --- Countdown card ---
	app.countdownHeader = centeredLabel()
	app.countdownHeader.TextStyle = fyne.TextStyle{Bold: true}
	units := make([]fyne.CanvasObject, 0, config.LayoutColumnsUnits)
	for i := range app.unitValues {
		value := centeredLabel()
		value.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
		value.Importance = widget.HighImportance
		value.SizeName = theme.SizeNameHeadingText
		name := centeredLabel()
		name.SizeName = theme.SizeNameCaptionText
		app.unitValues[i], app.unitNames[i] = value, name
		units = append(units, container.NewVBox(value, name))
	}
	app.revisit = centeredLabel()
	app.revisit.Wrapping = fyne.TextWrapWord
	app.countdownCard = widget.NewCard("", "", container.NewVBox(
		app.countdownHeader,
		container.NewGridWithColumns(config.LayoutColumnsUnits, units...),
		app.revisit,
	))

	// --- Celebration card ---
	app.celebrateHeader = centeredLabel()
	app.celebrateHeader.TextStyle = fyne.TextStyle{Bold: true}
	app.celebrateHeader.Importance = widget.HighImportance
	app.celebrateMsg = centeredLabel()
	app.celebrateMsg.Wrapping = fyne.TextWrapWord
	app.celebrateCard = widget.NewCard("", "", container.NewVBox(app.celebrateHeader, app.celebrateMsg))
	app.celebrateCard.Hide()

	// --- Footer ---
	app.footerCopyright = centeredLabel()
	app.footerPurpose = centeredLabel()
	app.footerPurpose.Wrapping = fyne.TextWrapWord
	app.footerPurpose.SizeName = theme.SizeNameCaptionText
	app.footerPurpose.TextStyle = fyne.TextStyle{Italic: true}
	footer := container.NewVBox(app.footerCopyright, app.footerPurpose)

	// --- Modal ---
	app.modalTitle = centeredLabel()
	app.modalTitle.TextStyle = fyne.TextStyle{Bold: true}
	app.modalTitle.Importance = widget.HighImportance
	app.modalTitle.SizeName = theme.SizeNameSubHeadingText
	app.modalMsg = centeredLabel()
	app.modalClose = widget.NewButtonWithIcon("", theme.CancelIcon(), app.dismissModal)
	app.modalClose.Importance = widget.HighImportance
	app.modal = widget.NewModalPopUp(
		container.NewPadded(container.NewVBox(app.modalTitle, app.modalMsg, app.modalClose)),
		w.Canvas())

	// --- Confetti ---
	app.confetti = NewConfettiLayer(uint64(app.Clock.Now().UnixNano()))
	app.confetti.OnFinished = app.Loop.ConfettiFinished

	body := container.NewBorder(topBar, footer, nil, nil,
		container.NewVBox(layout.NewSpacer(), progressCard, app.countdownCard, app.celebrateCard, layout.NewSpacer()))

	w.SetContent(container.NewStack(container.NewPadded(body), app.confetti))
	w.Resize(fyne.NewSize(config.WindowWidth, config.WindowHeight))
	w.SetMaster()

	// Until the loop publishes, show the reading with an empty ring.
	app.last = engine.Snapshot{Target: app.target, Reading: engine.Calculate(app.Clock.Now(), app.target)}
	app.applyLanguage()
}

func centeredLabel() *widget.Label {
	l := widget.NewLabel("")
	l.Alignment = fyne.TextAlignCenter
	return l
}

// applyLanguage refreshes every static label after a language switch.
func (app *CountdownApp) applyLanguage() {
	if app.Window == nil {
		return
	}
	app.Window.SetTitle(app.Tr.Msg(config.TKeyWinTitle))
	app.btnExport.SetText(app.Tr.Msg(config.TKeyBtnExport))
	app.btnSettings.SetText(app.Tr.Msg(config.TKeyBtnSettings))
	app.btnTheme.SetText(app.Tr.Msg(config.TKeyBtnTheme))
	app.modalClose.SetText(app.Tr.Msg(config.TKeyBtnClose))
	app.modalMsg.SetText(app.Tr.Msg(config.TKeyModalMessage))
	app.celebrateHeader.SetText(app.Tr.Msg(config.TKeyCelebrateHeader))
	app.footerPurpose.SetText(app.Settings.FooterPurpose)

	unitKeys := [config.LayoutColumnsUnits]string{
		config.TKeyUnitDays, config.TKeyUnitHours, config.TKeyUnitMinutes, config.TKeyUnitSeconds,
	}
	for i, key := range unitKeys {
		app.unitNames[i].SetText(app.Tr.Msg(key))
	}
	app.Render(app.last)
}

// Render draws a snapshot. It must run on the Fyne main goroutine.
func (app *CountdownApp) Render(s engine.Snapshot) {
	if app.Window == nil {
		return
	}
	app.last = s
	name := map[string]any{"Name": s.Target.Name}

	app.ring.SetProgress(s.DisplayedPercent, s.PercentLabel())

	if s.IsToday() {
		app.progressHeader.SetText(app.Tr.Msg(config.TKeyCelebrateToday))
		app.countdownCard.Hide()
		app.celebrateCard.Show()
	} else {
		app.progressHeader.SetText(app.Tr.Msg(config.TKeyProgressHeader))
		app.celebrateCard.Hide()
		app.countdownCard.Show()
	}

	r := s.Reading.Remaining
	for i, v := range [config.LayoutColumnsUnits]int{r.Days, r.Hours, r.Minutes, r.Seconds} {
		app.unitValues[i].SetText(fmt.Sprintf(config.FormatTwoDigits, v))
	}
	app.countdownHeader.SetText(app.Tr.MsgData(config.TKeyCountdownHeader, name))
	app.revisit.SetText(app.Tr.MsgData(config.TKeyRevisit, map[string]any{
		"Month": app.Tr.MonthName(s.Target.Month),
		"Day":   s.Target.Day,
	}))
	app.celebrateMsg.SetText(app.Tr.MsgData(config.TKeyCelebrateMessage, name))
	app.modalTitle.SetText(app.Tr.MsgData(config.TKeyModalTitle, name))

	app.renderConfetti(s)
	app.renderModal(s)

	year := s.Reading.Now.Year()
	if s.Reading.Now.IsZero() {
		year = app.Clock.Now().Year()
	}
	app.footerCopyright.SetText(app.Tr.MsgData(config.TKeyFooterCopyright, map[string]any{
		"Year":   year,
		"Author": app.Settings.FooterAuthor,
	}))
}

func (app *CountdownApp) renderConfetti(s engine.Snapshot) {
	switch {
	case s.ConfettiVisible && !app.confettiShown:
		app.confettiShown = true
		app.confetti.Start(app.Settings.ConfettiParticles, app.Settings.ConfettiRecycle)
	case !s.ConfettiVisible && app.confettiShown:
		app.confettiShown = false
		if app.confetti.Running() {
			app.confetti.Stop()
		}
	}
}

func (app *CountdownApp) renderModal(s engine.Snapshot) {
	// Snapshots queued before the dismissal reached the loop still carry the modal.
	if !s.ModalVisible {
		app.modalDismissed = false
	}
	switch {
	case s.ModalVisible && !app.modalDismissed && !app.modal.Visible():
		app.modal.Show()
	case !s.ModalVisible && app.modal.Visible():
		app.modal.Hide()
	}
}

func (app *CountdownApp) dismissModal() {
	app.modalDismissed = true
	app.modal.Hide()
	slog.Debug(config.MsgModalDismissed, config.LogKeyComponent, config.CompUI)
	app.Loop.DismissModal()
}

// ToggleDark flips between the light and dark themes.
func (app *CountdownApp) ToggleDark() {
	app.dark = !app.dark
	app.App.Settings().SetTheme(NewCountdownTheme(app.dark))
	app.ring.SetDark(app.dark)
	app.btnTheme.SetIcon(themeIcon(app.dark))
}

// themeIcon shows the variant the button switches to.
func themeIcon(dark bool) fyne.Resource {
	if dark {
		return theme.VisibilityIcon()
	}
	return theme.VisibilityOffIcon()
}

// Dark reports the active theme variant.
func (app *CountdownApp) Dark() bool { return app.dark }

// exportSummary is the localized calendar event title.
func (app *CountdownApp) exportSummary() string {
	return app.Tr.MsgData(config.TKeyEvtSummary, map[string]any{"Name": app.target.Name})
}

// Export writes the calendar of the current target to w.
func (app *CountdownApp) Export(w io.Writer) error {
	return engine.ExportCalendar(w, app.target, app.Clock.Now(), engine.ExportOptions{
		Summary: app.exportSummary(),
	})
}

func (app *CountdownApp) showExportDialog() {
	d := dialog.NewFileSave(func(wc fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, app.Window)
			return
		}
		if wc == nil {
			return
		}
		defer func() { _ = wc.Close() }()

		if err := app.Export(wc); err != nil {
			slog.Error(config.ErrExportWrite,
				config.LogKeyComponent, config.CompUI,
				config.LogKeyError, err)
			dialog.ShowError(err, app.Window)
			return
		}
		slog.Info(config.MsgExportDone,
			config.LogKeyComponent, config.CompUI,
			config.LogKeyPath, wc.URI().Path())
	}, app.Window)
	d.SetFileName(config.DefaultExport)
	d.Show()
}
