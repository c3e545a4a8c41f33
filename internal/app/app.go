package app

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/specialistvlad/speechtimer/internal/audio"
	"github.com/specialistvlad/speechtimer/internal/clock"
	"github.com/specialistvlad/speechtimer/internal/config"
	"github.com/specialistvlad/speechtimer/internal/console"
	"github.com/specialistvlad/speechtimer/internal/ctxlog"
	"github.com/specialistvlad/speechtimer/internal/engine"
	"github.com/specialistvlad/speechtimer/internal/metrics"
	"github.com/specialistvlad/speechtimer/internal/preset"
	"github.com/specialistvlad/speechtimer/internal/render"
	"github.com/specialistvlad/speechtimer/internal/scheduler"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	config *Config
	clock  clock.Clock

	presets  []preset.Preset
	loop     *scheduler.Loop
	engine   *engine.Engine
	terminal *render.Terminal
	metrics  *metrics.Metrics
	console  *console.Console

	audioSink  audio.Sink
	httpServer *http.Server
}

// Option customizes an App, mainly for tests.
type Option func(*App)

// WithClock replaces the wall clock.
func WithClock(c clock.Clock) Option {
	return func(a *App) { a.clock = c }
}

// WithAudioSink replaces the speaker.
func WithAudioSink(s audio.Sink) Option {
	return func(a *App) { a.audioSink = s }
}

// NewApp is the constructor for the main application. The timer display is
// written to outW and logs to logW. Presets are the built-ins merged with the
// library found by loader under cfg.PresetsPath.
func NewApp(outW, logW io.Writer, cfg *Config, loader config.PresetLoader, opts ...Option) (*App, error) {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	a := &App{
		outW:   outW,
		logger: logger,
		config: cfg,
		clock:  clock.Real(),
	}
	for _, opt := range opts {
		opt(a)
	}

	presets, err := loadPresets(ctx, loader, cfg.PresetsPath)
	if err != nil {
		return nil, err
	}
	initial, err := selectPreset(presets, cfg.Preset)
	if err != nil {
		return nil, err
	}
	a.presets = presets
	logger.Debug("Presets ready.", "count", len(presets), "initial", initial.Name)

	var termOpts []render.Option
	if cfg.Plain {
		termOpts = append(termOpts, render.Plain())
	}
	a.terminal = render.NewTerminal(outW, termOpts...)
	a.metrics = metrics.New()
	a.loop = scheduler.NewLoop(a.clock)

	playerOpts := []audio.PlayerOption{audio.WithVolume(cfg.Volume), audio.WithLogger(logger)}
	if a.audioSink != nil {
		playerOpts = append(playerOpts, audio.WithSink(a.audioSink))
	}

	a.engine = engine.New(a.loop,
		engine.WithClock(a.clock),
		engine.WithTickInterval(cfg.TickInterval),
		engine.WithPreset(initial),
		engine.WithRenderer(a.terminal),
		engine.WithAudio(audio.NewPlayer(playerOpts...)),
		engine.WithObserver(a.metrics),
		engine.WithMuted(!cfg.Sound),
		engine.WithLogger(logger),
	)
	a.console = console.New(a.engine, presets, a.terminal, logger)
	logger.Debug("Engine and console wired.")

	return a, nil
}

// Presets returns every preset available for selection, built-ins first.
func (a *App) Presets() []preset.Preset {
	out := make([]preset.Preset, len(a.presets))
	copy(out, a.presets)
	return out
}

// Engine returns the application's engine. It must only be used on the loop
// goroutine while Run is active. This is primarily for testing.
func (a *App) Engine() *engine.Engine {
	return a.engine
}

// Metrics returns the application's metrics observer.
func (a *App) Metrics() *metrics.Metrics {
	return a.metrics
}
