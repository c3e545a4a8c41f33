package engine

import (
	"fmt"
	"time"

	"github.com/specialistvlad/speechtimer/internal/preset"
	"github.com/specialistvlad/speechtimer/internal/signal"
)

// State is a snapshot of the timer.
type State struct {
	Elapsed time.Duration
	Running bool
	Signal  signal.Signal
}

// ElapsedMs returns the elapsed time in whole milliseconds.
func (s State) ElapsedMs() int64 {
	return s.Elapsed.Milliseconds()
}

// Transition records the timer entering a higher signal band.
type Transition struct {
	From  signal.Signal
	To    signal.Signal
	Tones int
}

// Cue asks the audio collaborator to play Tones beeps.
type Cue struct {
	Signal signal.Signal
	Tones  int
}

// Frame is everything a renderer needs to draw the timer.
type Frame struct {
	Clock   string
	Signal  signal.Signal
	Status  string
	Preset  string
	Running bool
	Muted   bool
}

// Renderer draws frames.
type Renderer interface {
	Render(Frame)
}

// AudioPlayer plays cues. It is never called while the engine is muted.
type AudioPlayer interface {
	Play(Cue)
}

// Observer receives every engine event, e.g. for metrics.
type Observer interface {
	Observe(Event)
}

// EventKind identifies what happened inside the engine.
type EventKind int

const (
	EventTick EventKind = iota
	EventTransition
	EventStarted
	EventPaused
	EventReset
	EventPresetChanged
	EventPresetRejected
	EventMuteChanged
)

func (k EventKind) String() string {
	switch k {
	case EventTick:
		return "tick"
	case EventTransition:
		return "transition"
	case EventStarted:
		return "started"
	case EventPaused:
		return "paused"
	case EventReset:
		return "reset"
	case EventPresetChanged:
		return "preset_changed"
	case EventPresetRejected:
		return "preset_rejected"
	case EventMuteChanged:
		return "mute_changed"
	default:
		return fmt.Sprintf("event(%d)", int(k))
	}
}

// Event is delivered to Observers.
type Event struct {
	Kind       EventKind
	State      State
	Preset     preset.Preset
	Transition *Transition
	Muted      bool
	Err        error
}

// FormatClock renders d as zero-padded "MM:SS", truncating to whole seconds.
// Minutes are not capped at 99.
func FormatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int64(d / time.Second)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}
