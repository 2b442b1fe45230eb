package effects

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-birthday-countdown/internal/config"
	"github.com/tartampluch/go-birthday-countdown/internal/engine"
)

var _ engine.AudioCue = (*BeepPlayer)(nil)

// fakeSpeaker replaces the package speaker hooks for one test.
type fakeSpeaker struct {
	inits   int
	plays   int
	samples int
	initErr error
	block   bool // keep the stream pending so Play waits for ctx
}

func installSpeaker(t *testing.T, f *fakeSpeaker) {
	t.Helper()
	origInit, origPlay, origClear := speakerInit, speakerPlay, speakerClear
	t.Cleanup(func() {
		speakerInit, speakerPlay, speakerClear = origInit, origPlay, origClear
	})

	speakerInit = func(beep.SampleRate, int) error {
		f.inits++
		return f.initErr
	}
	speakerPlay = func(s ...beep.Streamer) {
		f.plays++
		if f.block {
			return
		}
		buf := make([][2]float64, 512)
		for _, st := range s {
			for {
				n, ok := st.Stream(buf)
				f.samples += n
				if !ok {
					break
				}
			}
		}
	}
	speakerClear = func() {}
}

func TestGain(t *testing.T) {
	g, silent := Gain(1)
	assert.False(t, silent)
	assert.Equal(t, 0.0, g)

	g, silent = Gain(0.5)
	assert.False(t, silent)
	assert.InDelta(t, -1.0, g, 1e-9, "half amplitude is one step down in base 2")

	g, _ = Gain(config.DefaultVolume)
	assert.InDelta(t, math.Log2(0.7), g, 1e-9)

	_, silent = Gain(0)
	assert.True(t, silent)

	g, _ = Gain(3)
	assert.Equal(t, 0.0, g, "clamped to full volume")
}

func TestTune_Length(t *testing.T) {
	sr := beep.SampleRate(config.AudioSampleRate)
	tune, err := Tune(sr)
	require.NoError(t, err)

	var want time.Duration
	for _, n := range birthdayTune {
		want += n.dur
	}

	buf := make([][2]float64, 1024)
	total := 0
	for {
		n, ok := tune.Stream(buf)
		total += n
		if !ok {
			break
		}
	}
	assert.InDelta(t, sr.N(want), total, float64(len(birthdayTune)), "one sample of rounding per note")
}

func TestBeepPlayer_PlaysTuneOnce(t *testing.T) {
	f := &fakeSpeaker{}
	installSpeaker(t, f)

	p := NewBeepPlayer(config.Settings{SoundEnabled: true, Volume: 0.7})
	p.Play(context.Background())
	p.Play(context.Background())

	assert.Equal(t, 1, f.inits, "speaker is initialized lazily once")
	assert.Equal(t, 2, f.plays)
	assert.Positive(t, f.samples)
}

func TestBeepPlayer_SkipsWhenDisabledOrMuted(t *testing.T) {
	f := &fakeSpeaker{}
	installSpeaker(t, f)

	NewBeepPlayer(config.Settings{SoundEnabled: false, Volume: 1}).Play(context.Background())
	NewBeepPlayer(config.Settings{SoundEnabled: true, Volume: 0}).Play(context.Background())

	assert.Zero(t, f.inits)
	assert.Zero(t, f.plays)
}

func TestBeepPlayer_InitFailureIsSilent(t *testing.T) {
	f := &fakeSpeaker{initErr: errors.New("no device")}
	installSpeaker(t, f)

	p := NewBeepPlayer(config.Settings{SoundEnabled: true, Volume: 1})
	assert.NotPanics(t, func() { p.Play(context.Background()) })
	p.Play(context.Background())

	assert.Equal(t, 1, f.inits)
	assert.Zero(t, f.plays)
	assert.ErrorContains(t, p.initErr, config.ErrAudioInit)
}

func TestBeepPlayer_CancelStopsPlayback(t *testing.T) {
	f := &fakeSpeaker{block: true}
	installSpeaker(t, f)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		NewBeepPlayer(config.Settings{SoundEnabled: true, Volume: 1}).Play(ctx)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Play did not return after cancel")
	}
}

func TestDecodeFile_Errors(t *testing.T) {
	dir := t.TempDir()

	_, _, err := decodeFile(filepath.Join(dir, "song.ogg"))
	assert.ErrorContains(t, err, config.ErrAudioFormat)

	_, _, err = decodeFile(filepath.Join(dir, "missing.wav"))
	assert.ErrorContains(t, err, config.ErrAudioOpen)

	bad := filepath.Join(dir, "bad.wav")
	require.NoError(t, os.WriteFile(bad, []byte("not audio"), 0o600))
	_, _, err = decodeFile(bad)
	assert.ErrorContains(t, err, config.ErrAudioDecode)
}

func TestBeepPlayer_BadFileIsSilent(t *testing.T) {
	f := &fakeSpeaker{}
	installSpeaker(t, f)

	p := NewBeepPlayer(config.Settings{SoundEnabled: true, Volume: 1, SoundFile: "/nonexistent/birthday.mp3"})
	p.Play(context.Background())

	assert.Equal(t, 1, f.inits)
	assert.Zero(t, f.plays)
}

func TestBeepPlayer_SetVolume(t *testing.T) {
	f := &fakeSpeaker{}
	installSpeaker(t, f)

	p := NewBeepPlayer(config.Settings{SoundEnabled: true, Volume: 0.7})
	assert.Equal(t, 0.7, p.Volume())

	p.SetVolume(0)
	p.Play(context.Background())
	assert.Zero(t, f.plays, "muted through the setter")

	p.SetVolume(1)
	p.Play(context.Background())
	assert.Equal(t, 1, f.plays)
}
