// Package render draws the timer on a terminal.
package render

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/gookit/color"

	"github.com/specialistvlad/speechtimer/internal/engine"
	"github.com/specialistvlad/speechtimer/internal/signal"
)

const clearLine = "\r\x1b[2K"

var signalStyles = map[signal.Signal]color.Style{
	signal.None:   color.New(color.FgWhite, color.OpBold),
	signal.Green:  color.New(color.FgBlack, color.BgGreen, color.OpBold),
	signal.Yellow: color.New(color.FgBlack, color.BgYellow, color.OpBold),
	signal.Red:    color.New(color.FgWhite, color.BgRed, color.OpBold),
}

// Terminal renders frames as a single, continuously redrawn status line. In
// plain mode it writes one uncolored line per change instead, which suits
// pipes and log files.
type Terminal struct {
	mu    sync.Mutex
	w     io.Writer
	plain bool
	last  string
}

// Option configures a Terminal.
type Option func(*Terminal)

// Plain disables colors and in-place redraws.
func Plain() Option {
	return func(t *Terminal) { t.plain = true }
}

// NewTerminal creates a renderer writing to w.
func NewTerminal(w io.Writer, opts ...Option) *Terminal {
	t := &Terminal{w: w}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Render implements engine.Renderer. Frames that would print the same text
// as the previous one are skipped.
func (t *Terminal) Render(f engine.Frame) {
	t.mu.Lock()
	defer t.mu.Unlock()

	line := Line(f)
	if line == t.last {
		return
	}
	t.last = line

	if t.plain {
		fmt.Fprintln(t.w, line)
		return
	}
	fmt.Fprint(t.w, clearLine+t.styled(f))
}

// Printf writes a message on its own line without losing the status line,
// which is redrawn on the next frame.
func (t *Terminal) Printf(format string, args ...any) {
	t.mu.Lock()
	defer t.mu.Unlock()

	msg := strings.TrimRight(fmt.Sprintf(format, args...), "\n")
	if t.plain {
		fmt.Fprintln(t.w, msg)
		return
	}
	fmt.Fprint(t.w, clearLine+msg+"\n")
	t.last = ""
}

// Line is the uncolored text of a frame, e.g.
// "04:01 [GREEN] Green Signal | Ice Breaker".
func Line(f engine.Frame) string {
	var b strings.Builder
	b.WriteString(f.Clock)
	b.WriteString(" [")
	b.WriteString(strings.ToUpper(f.Signal.String()))
	b.WriteString("] ")
	b.WriteString(f.Status)
	b.WriteString(" | ")
	b.WriteString(f.Preset)
	if f.Muted {
		b.WriteString(" | muted")
	}
	return b.String()
}

func (t *Terminal) styled(f engine.Frame) string {
	style, ok := signalStyles[f.Signal]
	if !ok {
		style = signalStyles[signal.None]
	}
	clock := style.Sprint(" " + f.Clock + " ")
	rest := fmt.Sprintf(" %s %s", f.Status, color.Gray.Sprint("| "+f.Preset))
	if f.Muted {
		rest += color.Gray.Sprint(" | muted")
	}
	return clock + rest
}
