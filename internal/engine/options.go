package engine

import (
	"log/slog"
	"time"

	"github.com/specialistvlad/speechtimer/internal/clock"
	"github.com/specialistvlad/speechtimer/internal/preset"
)

// DefaultTickInterval is the nominal period between ticks while running.
const DefaultTickInterval = 100 * time.Millisecond

// Option configures an Engine.
type Option func(*Engine)

// WithClock sets the clock used to take the start reference.
func WithClock(c clock.Clock) Option {
	return func(e *Engine) { e.clock = c }
}

// WithTickInterval sets the period of the repeating tick task.
func WithTickInterval(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.interval = d
		}
	}
}

// WithPreset sets the initial preset. It is trusted and not validated.
func WithPreset(p preset.Preset) Option {
	return func(e *Engine) { e.preset = p }
}

// WithRenderer sets the display collaborator.
func WithRenderer(r Renderer) Option {
	return func(e *Engine) { e.renderer = r }
}

// WithAudio sets the audio collaborator.
func WithAudio(a AudioPlayer) Option {
	return func(e *Engine) { e.audio = a }
}

// WithObserver adds an event observer.
func WithObserver(o Observer) Option {
	return func(e *Engine) { e.observers = append(e.observers, o) }
}

// WithMuted sets the initial mute flag.
func WithMuted(muted bool) Option {
	return func(e *Engine) { e.muted = muted }
}

// WithLogger sets the engine's logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}
