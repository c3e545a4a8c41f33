package engine

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/looplab/fsm"
	"github.com/specialistvlad/speechtimer/internal/clock"
	"github.com/specialistvlad/speechtimer/internal/preset"
	"github.com/specialistvlad/speechtimer/internal/scheduler"
	"github.com/specialistvlad/speechtimer/internal/signal"
)

// Run states and the events moving between them.
const (
	stateStopped = "stopped"
	stateRunning = "running"

	eventStart = "start"
	eventPause = "pause"
)

// Status texts shown next to the clock.
const (
	StatusReady  = "Ready"
	StatusTiming = "Timing..."
	StatusPaused = "Paused"
	statusSignal = " Signal"
	statusPreset = "Selected: "
)

// Engine is the timer core. See the package documentation.
type Engine struct {
	clock    clock.Clock
	sched    scheduler.Scheduler
	interval time.Duration
	logger   *slog.Logger

	run  *fsm.FSM
	task scheduler.Task

	start  time.Time
	state  State
	preset preset.Preset
	status string
	muted  bool

	renderer  Renderer
	audio     AudioPlayer
	observers []Observer
}

// New creates a stopped Engine at 00:00 that requests its ticks from sched.
func New(sched scheduler.Scheduler, opts ...Option) *Engine {
	if sched == nil {
		panic("engine: nil scheduler")
	}

	e := &Engine{
		clock:    clock.Real(),
		sched:    sched,
		interval: DefaultTickInterval,
		preset:   preset.Default(),
		status:   StatusReady,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(e)
	}

	e.run = fsm.NewFSM(
		stateStopped,
		fsm.Events{
			{Name: eventStart, Src: []string{stateStopped}, Dst: stateRunning},
			{Name: eventPause, Src: []string{stateRunning}, Dst: stateStopped},
		},
		fsm.Callbacks{
			"enter_" + stateRunning: func(_ context.Context, _ *fsm.Event) { e.onEnterRunning() },
			"leave_" + stateRunning: func(_ context.Context, _ *fsm.Event) { e.onLeaveRunning() },
		},
	)

	return e
}

func (e *Engine) onEnterRunning() {
	e.state.Running = true
	e.task = e.sched.Every(e.interval, e.tick)
}

func (e *Engine) onLeaveRunning() {
	if e.task != nil {
		e.task.Stop()
		e.task = nil
	}
	e.state.Running = false
}

// tick adapts Tick to the scheduler callback signature.
func (e *Engine) tick(now time.Time) {
	e.Tick(now)
}

// Start begins or resumes timing. It does nothing if already running.
func (e *Engine) Start() {
	if !e.run.Can(eventStart) {
		return
	}

	e.start = e.clock.Now().Add(-e.state.Elapsed)
	if err := e.run.Event(context.Background(), eventStart); err != nil {
		e.logger.Error("Failed to enter running state.", "error", err)
		return
	}

	e.status = StatusTiming
	e.logger.Debug("Timer started.", "elapsed", e.state.Elapsed, "preset", e.preset.Name)
	e.emit(Event{Kind: EventStarted})
	e.render()
}

// Pause stops timing and freezes elapsed time at its last ticked value. It
// does nothing if already paused.
func (e *Engine) Pause() {
	if !e.stop() {
		return
	}

	e.status = StatusPaused
	e.logger.Debug("Timer paused.", "elapsed", e.state.Elapsed)
	e.emit(Event{Kind: EventPaused})
	e.render()
}

// stop leaves the running state and reports whether the timer was running.
func (e *Engine) stop() bool {
	if !e.run.Can(eventPause) {
		return false
	}
	if err := e.run.Event(context.Background(), eventPause); err != nil {
		e.logger.Error("Failed to leave running state.", "error", err)
		return false
	}
	return true
}

// Toggle pauses a running timer and starts a stopped one.
func (e *Engine) Toggle() {
	if e.state.Running {
		e.Pause()
		return
	}
	e.Start()
}

// Reset stops the timer and clears elapsed time and the signal.
func (e *Engine) Reset() {
	e.reset()
	e.status = StatusReady
	e.emit(Event{Kind: EventReset})
	e.render()
}

func (e *Engine) reset() {
	e.stop()
	e.state.Elapsed = 0
	e.state.Signal = signal.None
	e.logger.Debug("Timer reset.")
}

// Tick recomputes elapsed time from now and evaluates the signal. Ticks that
// arrive while stopped are ignored. The returned transition is nil unless the
// timer entered a new signal band.
func (e *Engine) Tick(now time.Time) (State, *Transition) {
	if !e.state.Running {
		return e.state, nil
	}

	elapsed := now.Sub(e.start)
	if elapsed > e.state.Elapsed {
		e.state.Elapsed = elapsed
	}

	var tr *Transition
	next := e.EvaluateSignal(e.state.Elapsed.Seconds())
	if next != signal.None && next != e.state.Signal {
		tr = &Transition{From: e.state.Signal, To: next, Tones: next.ToneCount()}
		e.state.Signal = next
		e.status = next.Title() + statusSignal
	}

	e.emit(Event{Kind: EventTick})
	if tr != nil {
		e.logger.Info("Signal changed.", "from", tr.From.String(), "to", tr.To.String(), "elapsed", FormatClock(e.state.Elapsed))
		e.emit(Event{Kind: EventTransition, Transition: tr})
		e.cue(tr)
	}
	e.render()

	return e.state, tr
}

// SetPreset validates p and makes it the active preset, resetting the timer.
// An invalid preset leaves the engine untouched and returns a
// *preset.ValidationError.
func (e *Engine) SetPreset(p preset.Preset) error {
	if err := preset.Validate(p); err != nil {
		e.RejectPreset(p, err)
		return err
	}

	e.preset = p
	e.reset()
	e.status = statusPreset + p.Name
	e.logger.Info("Preset selected.", "preset", p.Name, "green", p.Green, "yellow", p.Yellow, "red", p.Red)
	e.emit(Event{Kind: EventPresetChanged})
	e.render()
	return nil
}

// RejectPreset reports a preset that failed validation before it reached
// the engine. The active preset and timer are left alone.
func (e *Engine) RejectPreset(p preset.Preset, err error) {
	e.logger.Debug("Preset rejected.", "preset", p.Name, "error", err)
	e.emit(Event{Kind: EventPresetRejected, Preset: p, Err: err})
}

// EvaluateSignal returns the band for elapsedSeconds under the active preset.
func (e *Engine) EvaluateSignal(elapsedSeconds float64) signal.Signal {
	return signal.Evaluate(e.preset, elapsedSeconds)
}

// SetMuted turns audio cues off or on.
func (e *Engine) SetMuted(muted bool) {
	if e.muted == muted {
		return
	}
	e.muted = muted
	e.emit(Event{Kind: EventMuteChanged})
	e.render()
}

// ToggleMute flips the mute flag and returns the new value.
func (e *Engine) ToggleMute() bool {
	e.SetMuted(!e.muted)
	return e.muted
}

func (e *Engine) Muted() bool { return e.muted }
func (e *Engine) State() State { return e.state }
func (e *Engine) Preset() preset.Preset { return e.preset }
func (e *Engine) Status() string { return e.status }

// Frame returns the current display frame.
func (e *Engine) Frame() Frame {
	return Frame{
		Clock:   FormatClock(e.state.Elapsed),
		Signal:  e.state.Signal,
		Status:  e.status,
		Preset:  e.preset.Name,
		Running: e.state.Running,
		Muted:   e.muted,
	}
}

// Refresh renders the current frame without changing state.
func (e *Engine) Refresh() {
	e.render()
}

func (e *Engine) render() {
	if e.renderer != nil {
		e.renderer.Render(e.Frame())
	}
}

func (e *Engine) cue(tr *Transition) {
	if e.muted || e.audio == nil || tr.Tones == 0 {
		return
	}
	e.audio.Play(Cue{Signal: tr.To, Tones: tr.Tones})
}

func (e *Engine) emit(ev Event) {
	if len(e.observers) == 0 {
		return
	}
	ev.State = e.state
	if ev.Kind != EventPresetRejected {
		ev.Preset = e.preset
	}
	ev.Muted = e.muted
	for _, o := range e.observers {
		o.Observe(ev)
	}
}
