// Package tui renders the countdown in a terminal with Bubble Tea.
package tui

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/reflow/wordwrap"
	"github.com/tartampluch/go-birthday-countdown/internal/config"
	"github.com/tartampluch/go-birthday-countdown/internal/effects"
	"github.com/tartampluch/go-birthday-countdown/internal/engine"
	"github.com/tartampluch/go-birthday-countdown/internal/locale"
)

// Controller is the part of engine.Countdown the terminal talks to.
type Controller interface {
	DismissModal()
	ConfettiFinished()
}

// SnapshotMsg carries a loop snapshot into the Bubble Tea program.
type SnapshotMsg engine.Snapshot

type frameMsg time.Time

// Model is the Bubble Tea model of the terminal countdown.
type Model struct {
	loop     Controller
	tr       *locale.Translator
	settings config.Settings
	theme    Theme
	dark     bool

	snap          engine.Snapshot
	width         int
	confetti      *effects.Confetti
	confettiShown bool
	modalOpen     bool
	modalClosed   bool // dismissed here, not yet reported closed by the loop
}

// New builds a model showing the reading of target at now until the first
// snapshot arrives.
func New(loop Controller, tr *locale.Translator, s config.Settings, target engine.Target, now time.Time) Model {
	return Model{
		loop:     loop,
		tr:       tr,
		settings: s,
		theme:    NewTheme(s.Dark),
		dark:     s.Dark,
		snap:     engine.Snapshot{Target: target, Reading: engine.Calculate(now, target)},
		width:    config.TerminalFallbackCol,
		confetti: effects.NewConfetti(uint64(now.UnixNano())),
	}
}

// Run starts countdown and blocks until the user quits or ctx is cancelled.
func Run(ctx context.Context, countdown *engine.Countdown, m Model, opts ...tea.ProgramOption) error {
	slog.Info(config.MsgTUIStart, config.LogKeyComponent, config.CompTUI)

	p := tea.NewProgram(m, opts...)
	countdown.OnSnapshot = func(s engine.Snapshot) { p.Send(SnapshotMsg(s)) }

	loopCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go countdown.Run(loopCtx)
	go func() {
		<-loopCtx.Done()
		p.Quit()
	}()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("%s: %w", config.ErrTUIFailed, err)
	}
	return nil
}

// Init implements tea.Model. Snapshots drive every redraw.
func (m Model) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = max(msg.Width, config.TerminalMinWidth)
		m.confetti.Resize(m.fieldSize())
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case SnapshotMsg:
		return m.applySnapshot(engine.Snapshot(msg))

	case frameMsg:
		if !m.confetti.Running() {
			return m, nil
		}
		if !m.confetti.Step(config.ConfettiFrameRate) {
			return m, notify(m.loop.ConfettiFinished)
		}
		return m, nextFrame()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	slog.Debug(config.MsgTUIKey, config.LogKeyComponent, config.CompTUI, config.LogKeyKey, msg.String())

	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "enter", " ":
		if m.modalOpen {
			m.modalOpen = false
			m.modalClosed = true
			slog.Debug(config.MsgModalDismissed, config.LogKeyComponent, config.CompTUI)
			return m, notify(m.loop.DismissModal)
		}
	case "d":
		m.dark = !m.dark
		m.theme = NewTheme(m.dark)
	}
	return m, nil
}

func (m Model) applySnapshot(s engine.Snapshot) (tea.Model, tea.Cmd) {
	m.snap = s
	if !s.ModalVisible {
		m.modalClosed = false
	}
	m.modalOpen = s.ModalVisible && !m.modalClosed

	var cmd tea.Cmd
	switch {
	case s.ConfettiVisible && !m.confettiShown:
		m.confettiShown = true
		w, h := m.fieldSize()
		cols, rows := int(w/config.TerminalCellSize), int(h/config.TerminalCellSize)
		m.confetti.Start(w, h, min(m.settings.ConfettiParticles, cols*rows), m.settings.ConfettiRecycle)
		if m.confetti.Running() {
			cmd = nextFrame()
		} else {
			cmd = notify(m.loop.ConfettiFinished)
		}
	case !s.ConfettiVisible && m.confettiShown:
		m.confettiShown = false
		m.confetti.Stop()
	}
	return m, cmd
}

// notify calls back into the loop off the program goroutine, since the loop
// itself may be blocked sending a snapshot to the program.
func notify(f func()) tea.Cmd {
	return func() tea.Msg {
		f()
		return nil
	}
}

func nextFrame() tea.Cmd {
	return tea.Tick(config.ConfettiFrameRate, func(t time.Time) tea.Msg { return frameMsg(t) })
}

func (m Model) fieldSize() (float64, float64) {
	return float64(m.width) * config.TerminalCellSize, config.TerminalConfettiRow * config.TerminalCellSize
}

// Dark reports the active palette.
func (m Model) Dark() bool { return m.dark }

// View implements tea.Model.
func (m Model) View() string {
	s := m.snap
	name := map[string]any{"Name": s.Target.Name}
	center := func(str string) string { return lipgloss.PlaceHorizontal(m.width, lipgloss.Center, str) }

	var b strings.Builder
	line := func(str string) {
		b.WriteString(center(str))
		b.WriteString("\n")
	}

	line(m.theme.Title.Render(m.tr.Msg(config.TKeyWinTitle)))
	b.WriteString("\n")

	if s.IsToday() {
		line(m.theme.Header.Render(m.tr.Msg(config.TKeyCelebrateToday)))
	} else {
		line(m.theme.Header.Render(m.tr.Msg(config.TKeyProgressHeader)))
	}
	line(m.progressBar())
	b.WriteString("\n")

	if s.IsToday() {
		line(m.theme.Title.Render(m.tr.Msg(config.TKeyCelebrateHeader)))
		line(m.tr.MsgData(config.TKeyCelebrateMessage, name))
	} else {
		line(m.theme.Header.Render(m.tr.MsgData(config.TKeyCountdownHeader, name)))
		line(m.units())
		line(m.theme.Muted.Render(m.tr.MsgData(config.TKeyRevisit, map[string]any{
			"Month": m.tr.MonthName(s.Target.Month),
			"Day":   s.Target.Day,
		})))
	}

	if m.modalOpen {
		b.WriteString("\n")
		line(m.theme.Modal.Render(lipgloss.JoinVertical(lipgloss.Center,
			m.theme.Title.Render(m.tr.MsgData(config.TKeyModalTitle, name)),
			m.tr.Msg(config.TKeyModalMessage),
		)))
	}

	if m.confetti.Running() {
		b.WriteString(m.confettiGrid())
	}

	b.WriteString("\n")
	b.WriteString(m.footer())
	b.WriteString("\n")
	line(m.theme.Help.Render(m.tr.Msg(config.TKeyTUIHelp)))
	return b.String()
}

func (m Model) progressBar() string {
	width := min(config.TerminalBarWidth, m.width-len("100%")-2)
	p := math.Max(config.PercentMin, math.Min(config.PercentMax, m.snap.DisplayedPercent))
	filled := int(math.Round(p / config.PercentMax * float64(width)))

	return m.theme.BarFull.Render(strings.Repeat(config.TerminalBarFull, filled)) +
		m.theme.BarEmpty.Render(strings.Repeat(config.TerminalBarEmpty, width-filled)) +
		" " + m.theme.Percent.Render(m.snap.PercentLabel())
}

func (m Model) units() string {
	r := m.snap.Reading.Remaining
	values := [config.LayoutColumnsUnits]int{r.Days, r.Hours, r.Minutes, r.Seconds}
	keys := [config.LayoutColumnsUnits]string{
		config.TKeyUnitDays, config.TKeyUnitHours, config.TKeyUnitMinutes, config.TKeyUnitSeconds,
	}

	cols := make([]string, 0, len(values))
	for i, v := range values {
		cols = append(cols, lipgloss.JoinVertical(lipgloss.Center,
			m.theme.Unit.Render(fmt.Sprintf(config.FormatTwoDigits, v)),
			m.theme.UnitName.Render(m.tr.Msg(keys[i])),
		))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cols...)
}

// confettiGrid rasterizes the falling particles onto terminal cells.
func (m Model) confettiGrid() string {
	rows := make([][]string, config.TerminalConfettiRow)
	for y := range rows {
		rows[y] = make([]string, m.width)
		for x := range rows[y] {
			rows[y][x] = " "
		}
	}

	for _, p := range m.confetti.Particles() {
		if p.Landed {
			continue
		}
		x, y := int(p.X/config.TerminalCellSize), int(p.Y/config.TerminalCellSize)
		if p.Y < 0 || y >= len(rows) || x < 0 || x >= m.width {
			continue
		}
		c, _ := colorful.MakeColor(p.Color)
		rows[y][x] = lipgloss.NewStyle().Foreground(lipgloss.Color(c.Hex())).Render(config.TerminalConfettiCh)
	}

	var b strings.Builder
	for _, row := range rows {
		b.WriteString(strings.Join(row, ""))
		b.WriteString("\n")
	}
	return b.String()
}

// footer wraps the copyright and purpose lines to the terminal width.
func (m Model) footer() string {
	year := m.snap.Reading.Now.Year()
	copyright := m.tr.MsgData(config.TKeyFooterCopyright, map[string]any{
		"Year":   year,
		"Author": m.settings.FooterAuthor,
	})
	text := copyright + "\n" + m.settings.FooterPurpose
	return m.theme.Muted.Render(wordwrap.String(text, m.width))
}
