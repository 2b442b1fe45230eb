package effects

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/generators"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"
	"github.com/tartampluch/go-birthday-countdown/internal/config"
)

// note is one step of the built-in tune.
type note struct {
	freq float64 // Hz, 0 for a rest
	dur  time.Duration
}

// birthdayTune is the opening phrase of the traditional song.
var birthdayTune = []note{
	{392.00, 300 * time.Millisecond}, // G4
	{392.00, 100 * time.Millisecond}, // G4
	{440.00, 400 * time.Millisecond}, // A4
	{392.00, 400 * time.Millisecond}, // G4
	{523.25, 400 * time.Millisecond}, // C5
	{493.88, 800 * time.Millisecond}, // B4
	{0, 200 * time.Millisecond},
	{392.00, 300 * time.Millisecond}, // G4
	{392.00, 100 * time.Millisecond}, // G4
	{440.00, 400 * time.Millisecond}, // A4
	{392.00, 400 * time.Millisecond}, // G4
	{587.33, 400 * time.Millisecond}, // D5
	{523.25, 800 * time.Millisecond}, // C5
}

// Speaker hooks, swapped in tests.
var (
	speakerInit  = speaker.Init
	speakerPlay  = speaker.Play
	speakerClear = speaker.Clear
)

// BeepPlayer plays either SoundFile (mp3 or wav) or the built-in tune.
type BeepPlayer struct {
	Enabled   bool
	SoundFile string

	mu     sync.RWMutex
	volume float64 // linear, 0..1

	initOnce sync.Once
	initErr  error
}

// NewBeepPlayer builds a player from the loaded settings.
func NewBeepPlayer(s config.Settings) *BeepPlayer {
	return &BeepPlayer{
		Enabled:   s.SoundEnabled,
		SoundFile: s.SoundFile,
		volume:    s.Volume,
	}
}

// SetVolume changes the linear volume used by later plays.
func (p *BeepPlayer) SetVolume(v float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.volume = v
}

// Volume returns the linear volume.
func (p *BeepPlayer) Volume() float64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.volume
}

// Play blocks until the sound ends or ctx is cancelled.
func (p *BeepPlayer) Play(ctx context.Context) {
	linear := p.Volume()
	gain, silent := Gain(linear)
	if !p.Enabled || silent {
		slog.Debug(config.MsgAudioSkipped,
			config.LogKeyComponent, config.CompAudio,
			config.LogKeyVolume, linear)
		return
	}

	p.initOnce.Do(func() {
		sr := beep.SampleRate(config.AudioSampleRate)
		if err := speakerInit(sr, sr.N(config.AudioBufferWindow)); err != nil {
			p.initErr = fmt.Errorf("%s: %w", config.ErrAudioInit, err)
		}
	})
	if p.initErr != nil {
		p.skip(p.initErr)
		return
	}

	stream, closer, err := p.source()
	if err != nil {
		p.skip(err)
		return
	}
	defer func() { _ = closer.Close() }()

	done := make(chan struct{})
	volume := &effects.Volume{
		Streamer: stream,
		Base:     config.AudioVolumeBase,
		Volume:   gain,
	}
	speakerPlay(beep.Seq(volume, beep.Callback(func() { close(done) })))

	slog.Info(config.MsgAudioPlayed,
		config.LogKeyComponent, config.CompAudio,
		config.LogKeyVolume, linear,
		config.LogKeyFile, p.SoundFile)

	select {
	case <-done:
	case <-ctx.Done():
		speakerClear()
	}
}

func (p *BeepPlayer) skip(err error) {
	slog.Debug(config.MsgAudioSkipped,
		config.LogKeyComponent, config.CompAudio,
		config.LogKeyError, err)
}

// source returns the stream to play resampled to the speaker rate.
func (p *BeepPlayer) source() (beep.Streamer, io.Closer, error) {
	sr := beep.SampleRate(config.AudioSampleRate)
	if p.SoundFile == "" {
		tune, err := Tune(sr)
		return tune, io.NopCloser(nil), err
	}

	stream, format, err := decodeFile(p.SoundFile)
	if err != nil {
		return nil, nil, err
	}
	if format.SampleRate == sr {
		return stream, stream, nil
	}
	return beep.Resample(4, format.SampleRate, sr, stream), stream, nil
}

func decodeFile(path string) (beep.StreamSeekCloser, beep.Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != config.ExtMP3 && ext != config.ExtWAV {
		return nil, beep.Format{}, fmt.Errorf("%s: %q", config.ErrAudioFormat, ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, beep.Format{}, fmt.Errorf("%s: %w", config.ErrAudioOpen, err)
	}

	var (
		stream beep.StreamSeekCloser
		format beep.Format
	)
	if ext == config.ExtMP3 {
		stream, format, err = mp3.Decode(f)
	} else {
		stream, format, err = wav.Decode(f)
	}
	if err != nil {
		_ = f.Close()
		return nil, beep.Format{}, fmt.Errorf("%s: %w", config.ErrAudioDecode, err)
	}
	return stream, format, nil
}

// Tune synthesizes the built-in melody at sample rate sr.
func Tune(sr beep.SampleRate) (beep.Streamer, error) {
	var parts []beep.Streamer
	for _, n := range birthdayTune {
		if n.freq == 0 {
			parts = append(parts, beep.Silence(sr.N(n.dur)))
			continue
		}
		tone, err := generators.SineTone(sr, n.freq)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", config.ErrAudioInit, err)
		}
		parts = append(parts,
			beep.Take(sr.N(n.dur-config.AudioNoteGap), tone),
			beep.Silence(sr.N(config.AudioNoteGap)))
	}
	return beep.Seq(parts...), nil
}

// Gain maps a linear volume onto the logarithmic scale of effects.Volume.
// silent is true when nothing should be heard.
func Gain(linear float64) (gain float64, silent bool) {
	if linear <= 0 {
		return 0, true
	}
	if linear > 1 {
		linear = 1
	}
	return math.Log(linear) / math.Log(config.AudioVolumeBase), false
}
