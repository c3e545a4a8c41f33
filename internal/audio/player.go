// Package audio synthesizes the signal cues and plays them on the speaker.
package audio

import (
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/speaker"

	"github.com/specialistvlad/speechtimer/internal/engine"
)

// Sink consumes finished audio streams. Play must not block until the
// stream has been heard.
type Sink interface {
	Play(beep.Streamer)
}

// Player turns engine cues into beep sequences.
type Player struct {
	sink   Sink
	rate   beep.SampleRate
	volume float64
	logger *slog.Logger
}

// PlayerOption configures a Player.
type PlayerOption func(*Player)

// WithSink replaces the speaker with another sink.
func WithSink(s Sink) PlayerOption {
	return func(p *Player) { p.sink = s }
}

// WithSampleRate sets the synthesis sample rate.
func WithSampleRate(r beep.SampleRate) PlayerOption {
	return func(p *Player) { p.rate = r }
}

// WithVolume sets the gain exponent in base 2. Zero leaves the tone untouched.
func WithVolume(v float64) PlayerOption {
	return func(p *Player) { p.volume = v }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) PlayerOption {
	return func(p *Player) { p.logger = l }
}

// NewPlayer creates a Player that plays on the system speaker unless another
// sink is given.
func NewPlayer(opts ...PlayerOption) *Player {
	p := &Player{
		rate:   DefaultSampleRate,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.sink == nil {
		p.sink = NewSpeaker(p.rate, p.logger)
	}
	return p
}

// Play implements engine.AudioPlayer.
func (p *Player) Play(c engine.Cue) {
	if c.Tones <= 0 {
		return
	}
	p.logger.Debug("Playing cue.", "signal", c.Signal.String(), "tones", c.Tones)
	p.sink.Play(p.Stream(c.Tones))
}

// Stream returns the volume-adjusted sequence for tones beeps.
func (p *Player) Stream(tones int) beep.Streamer {
	return &effects.Volume{
		Streamer: Sequence(p.rate, tones),
		Base:     2,
		Volume:   p.volume,
	}
}

// Speaker is a Sink backed by the system audio device. The device is opened on
// first use; if that fails every cue is dropped and the failure is logged once.
type Speaker struct {
	rate    beep.SampleRate
	logger  *slog.Logger
	once    sync.Once
	initErr error
}

// NewSpeaker creates a lazily initialized speaker sink.
func NewSpeaker(rate beep.SampleRate, logger *slog.Logger) *Speaker {
	return &Speaker{rate: rate, logger: logger}
}

// Play queues s on the speaker mixer and returns immediately.
func (s *Speaker) Play(st beep.Streamer) {
	s.once.Do(func() {
		s.initErr = speaker.Init(s.rate, s.rate.N(time.Second/10))
		if s.initErr != nil {
			s.logger.Error("Audio device unavailable, cues disabled.", "error", s.initErr)
		}
	})
	if s.initErr != nil {
		return
	}
	speaker.Play(st)
}
