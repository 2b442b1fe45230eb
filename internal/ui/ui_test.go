package ui

import (
	"bytes"
	"context"
	"testing"
	"time"

	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/theme"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-birthday-countdown/internal/config"
	"github.com/tartampluch/go-birthday-countdown/internal/engine"
	"github.com/tartampluch/go-birthday-countdown/internal/locale"
)

// -----------------------------------------------------------------------------
// Mocks
// -----------------------------------------------------------------------------

// MockLoop stands in for engine.Countdown using testify/mock.
type MockLoop struct {
	mock.Mock
}

func (m *MockLoop) Run(ctx context.Context)   { m.Called(ctx) }
func (m *MockLoop) DismissModal()             { m.Called() }
func (m *MockLoop) ConfettiFinished()         { m.Called() }
func (m *MockLoop) SetTarget(t engine.Target) { m.Called(t) }

// MockClock controls time for deterministic testing.
type MockClock struct {
	CurrentTime time.Time
}

func (m MockClock) Now() time.Time {
	return m.CurrentTime
}

// fakeVolume records the volume set by the settings window.
type fakeVolume struct{ v float64 }

func (f *fakeVolume) Volume() float64     { return f.v }
func (f *fakeVolume) SetVolume(v float64) { f.v = v }

// -----------------------------------------------------------------------------
// Test Setup Helper
// -----------------------------------------------------------------------------

var alice = engine.Target{Month: time.June, Day: 15, Name: "Alice"}

var anim = engine.AnimatorOptions{
	Smoothing:     config.DefaultSmoothing,
	SnapThreshold: config.DefaultSnapThreshold,
	RampStep:      config.DefaultRampStep,
}

func testSettings() config.Settings {
	return config.Settings{
		Month:             alice.Month,
		Day:               alice.Day,
		Name:              alice.Name,
		ConfettiParticles: 30,
		Volume:            config.DefaultVolume,
		Language:          "en",
		FooterAuthor:      "Tester",
		FooterPurpose:     "Counting down.",
	}
}

// setupTestApp builds the window on a headless Fyne app at the given instant.
func setupTestApp(t *testing.T, now time.Time) (*CountdownApp, *MockLoop) {
	t.Helper()
	a := test.NewTempApp(t)

	loop := new(MockLoop)
	app := NewCountdownApp(a, context.Background(), testSettings(), alice, loop, locale.New("en"))
	app.Clock = MockClock{CurrentTime: now}
	app.BuildWindow()
	t.Cleanup(func() { app.Window.Close() })

	return app, loop
}

// settled returns the snapshot the loop would publish once animation ends.
func settled(tr *engine.Tracker, now time.Time) engine.Snapshot {
	tr.Sample(now)
	for tr.Animate() {
	}
	return tr.Snapshot()
}

// -----------------------------------------------------------------------------
// Rendering
// -----------------------------------------------------------------------------

func TestRender_Counting(t *testing.T) {
	now := time.Date(2025, 12, 15, 10, 0, 0, 0, time.UTC)
	app, _ := setupTestApp(t, now)

	app.Render(settled(engine.NewTracker(alice, anim), now))

	assert.True(t, app.countdownCard.Visible())
	assert.False(t, app.celebrateCard.Visible())
	assert.Equal(t, "Next Birthday Progress", app.progressHeader.Text)
	assert.Equal(t, "Alice's Next Birthday In:", app.countdownHeader.Text)
	assert.Equal(t, "Come back every June 15 to celebrate!", app.revisit.Text)

	values := []string{}
	for _, l := range app.unitValues {
		values = append(values, l.Text)
	}
	assert.Equal(t, []string{"181", "14", "00", "00"}, values)
	assert.Equal(t, "Days", app.unitNames[0].Text)

	assert.Equal(t, "50%", app.ring.Label())
	assert.InDelta(t, 50.25, app.ring.Percent(), 0.01)
	assert.Equal(t, "© 2025 Tester. All Rights Reserved.", app.footerCopyright.Text)
	assert.Equal(t, "Counting down.", app.footerPurpose.Text)

	assert.False(t, app.confetti.Running())
	assert.False(t, app.modal.Visible())
}

func TestRender_CelebrationSequence(t *testing.T) {
	now := time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC)
	app, loop := setupTestApp(t, now)
	loop.On("DismissModal").Return().Once()
	loop.On("ConfettiFinished").Return().Once()

	tr := engine.NewTracker(alice, anim)
	tr.Sample(now)

	// Pending: confetti only.
	app.Render(tr.Snapshot())
	assert.Equal(t, "Celebrating Today!", app.progressHeader.Text)
	assert.False(t, app.countdownCard.Visible())
	assert.True(t, app.celebrateCard.Visible())
	assert.Equal(t, "Hope Alice has a fantastic day!", app.celebrateMsg.Text)
	assert.True(t, app.confetti.Running())
	assert.False(t, app.modal.Visible())

	// Ramp completes while pending.
	for tr.Animate() {
	}
	app.Render(tr.Snapshot())
	assert.Equal(t, "100%", app.ring.Label())

	// Delay elapsed: modal shows.
	require.True(t, tr.Activate())
	app.Render(tr.Snapshot())
	assert.True(t, app.modal.Visible())
	assert.Equal(t, "Happy Birthday Alice!", app.modalTitle.Text)

	// Closing the modal is reported to the loop.
	test.Tap(app.modalClose)
	assert.False(t, app.modal.Visible())
	loop.AssertCalled(t, "DismissModal")

	// The confetti empties on its own and reports back once.
	for i := 0; app.confetti.Running(); i++ {
		require.Less(t, i, 10_000, "confetti never finished")
		app.confetti.Advance(config.ConfettiFrameRate)
	}
	loop.AssertNumberOfCalls(t, "ConfettiFinished", 1)
	assert.False(t, app.confetti.Visible())

	// The loop's next snapshot agrees; nothing restarts.
	tr.DismissModal()
	tr.ConfettiFinished()
	app.Render(tr.Snapshot())
	assert.False(t, app.confetti.Running())
	assert.False(t, app.modal.Visible())
}

func TestRender_QueuedSnapshotDoesNotReopenModal(t *testing.T) {
	now := time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC)
	app, loop := setupTestApp(t, now)
	loop.On("DismissModal").Return().Once()

	tr := engine.NewTracker(alice, anim)
	tr.Sample(now)
	require.True(t, tr.Activate())
	open := tr.Snapshot()
	require.True(t, open.ModalVisible)

	app.Render(open)
	require.True(t, app.modal.Visible())
	test.Tap(app.modalClose)

	// Published before the loop handled the dismissal.
	app.Render(open)
	assert.False(t, app.modal.Visible())

	tr.DismissModal()
	app.Render(tr.Snapshot())
	assert.False(t, app.modal.Visible())

	// Once the loop has reported it closed, a new request shows it again.
	app.Render(open)
	assert.True(t, app.modal.Visible())
}

func TestRender_LeavingCelebrationStopsConfetti(t *testing.T) {
	now := time.Date(2025, 6, 15, 23, 59, 59, 0, time.UTC)
	app, loop := setupTestApp(t, now)

	tr := engine.NewTracker(alice, anim)
	tr.Sample(now)
	app.Render(tr.Snapshot())
	require.True(t, app.confetti.Running())

	app.Render(settled(tr, now.Add(time.Second)))
	assert.False(t, app.confetti.Running())
	assert.True(t, app.countdownCard.Visible())
	loop.AssertNotCalled(t, "ConfettiFinished")
}

// -----------------------------------------------------------------------------
// Theme, Export & Localization
// -----------------------------------------------------------------------------

func TestToggleDark(t *testing.T) {
	app, _ := setupTestApp(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	require.False(t, app.Dark())

	app.ToggleDark()
	assert.True(t, app.Dark())
	th, ok := app.App.Settings().Theme().(*CountdownTheme)
	require.True(t, ok)
	assert.True(t, th.Dark)
	assert.True(t, app.ring.dark)

	app.ToggleDark()
	assert.False(t, app.Dark())
}

func TestToggleDark_SwapsIcon(t *testing.T) {
	app, _ := setupTestApp(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, theme.VisibilityOffIcon().Name(), app.btnTheme.Icon.Name())

	app.ToggleDark()
	assert.Equal(t, theme.VisibilityIcon().Name(), app.btnTheme.Icon.Name())

	app.ToggleDark()
	assert.Equal(t, theme.VisibilityOffIcon().Name(), app.btnTheme.Icon.Name())
}

func TestExport_UsesLocalizedSummary(t *testing.T) {
	app, _ := setupTestApp(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))

	var buf bytes.Buffer
	require.NoError(t, app.Export(&buf))
	assert.Contains(t, buf.String(), "SUMMARY:Alice's birthday")
	assert.Contains(t, buf.String(), "DTSTART;VALUE=DATE:20250615")
}

// -----------------------------------------------------------------------------
// Settings Window
// -----------------------------------------------------------------------------

func TestSettings_SaveAppliesToSession(t *testing.T) {
	app, loop := setupTestApp(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	vol := &fakeVolume{v: 0.7}
	app.Volume = vol

	bob := engine.Target{Month: time.February, Day: 29, Name: "Bob"}
	loop.On("SetTarget", bob).Return().Once()

	sw := app.buildSettingsWidgets()
	assert.Equal(t, "6", sw.monthEntry.Text)
	assert.Equal(t, "15", sw.dayEntry.Text)
	assert.InDelta(t, 0.7, sw.volumeSlider.Value, 1e-9)

	sw.langSelect.SetSelected("fr")
	sw.nameEntry.SetText("  Bob ")
	sw.monthEntry.SetText("2")
	sw.dayEntry.SetText("29")
	sw.volumeSlider.SetValue(0.25)

	require.NoError(t, app.saveSettings(sw))
	loop.AssertExpectations(t)

	assert.Equal(t, "fr", app.Tr.Language())
	assert.Equal(t, "Paramètres", app.btnSettings.Text)
	assert.InDelta(t, 0.25, vol.v, 1e-9)
	assert.Equal(t, time.February, app.Settings.Month)
	assert.Equal(t, bob, app.target)
}

func TestSettings_RejectsImpossibleDate(t *testing.T) {
	app, loop := setupTestApp(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))

	sw := app.buildSettingsWidgets()
	sw.monthEntry.SetText("2")
	sw.dayEntry.SetText("30")
	assert.EqualError(t, app.saveSettings(sw), "Day does not exist in that month")

	sw.monthEntry.SetText("13")
	assert.EqualError(t, app.saveSettings(sw), "Month must be between 1 and 12")

	loop.AssertNotCalled(t, "SetTarget", mock.Anything)
	assert.Equal(t, alice, app.target)
}

func TestSettings_UnchangedTargetIsNotResent(t *testing.T) {
	app, loop := setupTestApp(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))

	require.NoError(t, app.saveSettings(app.buildSettingsWidgets()))
	loop.AssertNotCalled(t, "SetTarget", mock.Anything)
}

func TestShowSettingsWindow_Singleton(t *testing.T) {
	app, _ := setupTestApp(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))

	app.ShowSettingsWindow()
	first := app.settingsWindow
	require.NotNil(t, first)

	app.ShowSettingsWindow()
	assert.Same(t, first, app.settingsWindow)

	first.Close()
	assert.Nil(t, app.settingsWindow)
}

// -----------------------------------------------------------------------------
// Widgets
// -----------------------------------------------------------------------------

func TestProgressRing_Segments(t *testing.T) {
	test.NewTempApp(t)
	ring := NewProgressRing()
	w := test.NewWindow(ring)
	defer w.Close()

	r := test.WidgetRenderer(ring).(*ringRenderer)
	assert.Zero(t, r.filledSegments())

	ring.SetProgress(50, "50%")
	assert.Equal(t, config.RingSegments/2, r.filledSegments())
	assert.Equal(t, "50%", r.text.Text)

	ring.SetProgress(150, "100%")
	assert.Equal(t, 100.0, ring.Percent())
	assert.Equal(t, config.RingSegments, r.filledSegments())
}

func TestConfettiLayer_DrawsParticles(t *testing.T) {
	test.NewTempApp(t)
	layer := NewConfettiLayer(5)
	w := test.NewWindow(layer)
	defer w.Close()
	w.Resize(w.Canvas().Size().AddWidthHeight(200, 200))
	layer.Resize(w.Canvas().Size())

	done := 0
	layer.OnFinished = func() { done++ }
	layer.Start(10, false)
	require.True(t, layer.Visible())

	r := test.WidgetRenderer(layer).(*confettiRenderer)
	assert.Len(t, r.pieces, 10)

	for i := 0; layer.Running(); i++ {
		require.Less(t, i, 10_000)
		layer.Advance(config.ConfettiFrameRate)
	}
	assert.Equal(t, 1, done)
	assert.False(t, layer.Visible())
	assert.Zero(t, r.visiblePieces())
}
