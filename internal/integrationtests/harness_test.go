package integrationtests

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/faiface/beep"
	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/speechtimer/internal/app"
	"github.com/specialistvlad/speechtimer/internal/audio"
	"github.com/specialistvlad/speechtimer/internal/clock"
	"github.com/specialistvlad/speechtimer/internal/testutil"
)

const waitFor = 5 * time.Second

// toneSink records how many beeps each played cue contains.
type toneSink struct {
	mu    sync.Mutex
	tones []int
}

func (s *toneSink) Play(st beep.Streamer) {
	n := 0
	buf := make([][2]float64, 4096)
	for {
		k, ok := st.Stream(buf)
		n += k
		if !ok {
			break
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tones = append(s.tones, tonesIn(n))
}

func (s *toneSink) played() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]int(nil), s.tones...)
}

// tonesIn inverts the sequence length formula of audio.Sequence.
func tonesIn(samples int) int {
	tone := audio.DefaultSampleRate.N(audio.ToneDuration)
	spacing := audio.DefaultSampleRate.N(audio.ToneSpacing)
	return (samples-tone)/spacing + 1
}

// session runs an App against a fake clock and a scripted console.
type session struct {
	t     *testing.T
	clock *clock.Fake
	sink  *toneSink
	app   *app.App
	out   *testutil.SafeBuffer
	logs  *testutil.SafeBuffer
	input *io.PipeWriter
	done  chan error
}

func startSession(t *testing.T, cfg app.Config) *session {
	t.Helper()

	s := &session{
		t:     t,
		clock: clock.NewFake(time.Date(2025, 3, 1, 18, 0, 0, 0, time.UTC)),
		sink:  &toneSink{},
		done:  make(chan error, 1),
	}
	if cfg.TickInterval == 0 {
		cfg.TickInterval = time.Second
	}
	s.app, s.out, s.logs = app.SetupAppTest(t, cfg, app.WithClock(s.clock), app.WithAudioSink(s.sink))

	pr, pw := io.Pipe()
	s.input = pw
	go func() { s.done <- s.app.Run(context.Background(), pr) }()

	t.Cleanup(func() { pw.Close() })
	return s
}

// send types a console line.
func (s *session) send(line string) {
	s.t.Helper()
	_, err := fmt.Fprintln(s.input, line)
	require.NoError(s.t, err)
}

// start sends "start" and waits until the ticker exists.
func (s *session) start() {
	s.t.Helper()
	s.send("start")
	require.Eventually(s.t, func() bool { return s.clock.Tickers() == 1 }, waitFor, time.Millisecond)
}

// pause sends "pause" and waits until the ticker is gone.
func (s *session) pause() {
	s.t.Helper()
	s.send("pause")
	require.Eventually(s.t, func() bool { return s.clock.Tickers() == 0 }, waitFor, time.Millisecond)
}

// advance moves the clock and waits for line to be displayed.
func (s *session) advance(d time.Duration, line string) {
	s.t.Helper()
	s.clock.Advance(d)
	s.expect(line)
}

func (s *session) expect(line string) {
	s.t.Helper()
	require.Eventually(s.t, func() bool {
		return strings.Contains(s.out.String(), line)
	}, waitFor, time.Millisecond, "display never showed %q; got:\n%s", line, s.out.String())
}

// quit ends the session and requires a clean exit.
func (s *session) quit() {
	s.t.Helper()
	s.send("q")
	select {
	case err := <-s.done:
		require.NoError(s.t, err)
	case <-time.After(waitFor):
		s.t.Fatal("app did not quit")
	}
}
