package app

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/faiface/beep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/speechtimer/internal/clock"
	"github.com/specialistvlad/speechtimer/internal/config"
	"github.com/specialistvlad/speechtimer/internal/hcl"
	"github.com/specialistvlad/speechtimer/internal/testutil"
)

type captureSink struct {
	mu    sync.Mutex
	count int
}

func (c *captureSink) Play(beep.Streamer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.count++
}

func (c *captureSink) played() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.count
}

func TestNewConfig(t *testing.T) {
	base := ConfigFromSettings(config.DefaultSettings())

	_, err := NewConfig(base)
	require.NoError(t, err)

	testCases := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{name: "zero tick", mutate: func(c *Config) { c.TickInterval = 0 }, errMsg: "tick interval"},
		{name: "no preset", mutate: func(c *Config) { c.Preset = "" }, errMsg: "preset is a required"},
		{name: "bad format", mutate: func(c *Config) { c.LogFormat = "xml" }, errMsg: "invalid log-format"},
		{name: "bad level", mutate: func(c *Config) { c.LogLevel = "trace" }, errMsg: "invalid log-level"},
		{name: "bad port", mutate: func(c *Config) { c.HealthcheckPort = 70000 }, errMsg: "invalid healthcheck-port"},
		{name: "bad volume", mutate: func(c *Config) { c.Volume = 11 }, errMsg: "invalid volume"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := base
			tc.mutate(&cfg)
			_, err := NewConfig(cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.errMsg)
		})
	}
}

func TestNewApp_MergesPresetLibrary(t *testing.T) {
	lib := `
preset "Keynote" {
  green  = minutes(15)
  yellow = minutes(18)
  red    = minutes(20)
}

preset "Table Topics" {
  green  = mmss("1:15")
  yellow = mmss("1:45")
  red    = mmss("2:15")
}
`
	dir := testutil.WriteFiles(t, map[string]string{"club.hcl": lib})

	a, _, logs := SetupAppTest(t, Config{PresetsPath: dir, Preset: "keynote"})

	presets := a.Presets()
	require.Len(t, presets, 6)
	assert.Equal(t, "Table Topics", presets[2].Name)
	assert.Equal(t, 75, presets[2].Green, "library presets replace built-ins in place")
	assert.Equal(t, "Keynote", presets[5].Name)
	assert.Equal(t, "Keynote", a.Engine().Preset().Name)
	testutil.AssertLogged(t, logs, "Preset library loaded.")
}

func TestNewApp_Errors(t *testing.T) {
	cfg, err := NewConfig(Config{
		Preset:       "Keynote",
		TickInterval: time.Second,
		LogFormat:    "text",
		LogLevel:     "info",
	})
	require.NoError(t, err)

	_, err = NewApp(io.Discard, io.Discard, cfg, hcl.NewLoader())
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown preset "Keynote"`)

	cfg.PresetsPath = testutil.WriteFiles(t, map[string]string{"bad.hcl": `preset "Bad" {`})
	_, err = NewApp(io.Discard, io.Discard, cfg, hcl.NewLoader())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load preset library")
	assert.Contains(t, err.Error(), "bad.hcl")
}

func TestRun_QuitFromConsole(t *testing.T) {
	a, out, logs := SetupAppTest(t, Config{})

	err := a.Run(context.Background(), strings.NewReader("l\nq\n"))

	require.NoError(t, err)
	assert.Contains(t, out.String(), "00:00 [NONE] Ready | Ice Breaker")
	assert.Contains(t, out.String(), "* 1. Ice Breaker (4:00 - 5:00 - 6:00)")
	assert.Contains(t, logs.String(), "Quit requested.")
}

func TestRun_ContextCancelIsCleanExit(t *testing.T) {
	a, _, logs := SetupAppTest(t, Config{})
	ctx, cancel := context.WithCancel(context.Background())

	pr, pw := io.Pipe()
	defer pw.Close()

	done := make(chan error, 1)
	go func() { done <- a.Run(ctx, pr) }()

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancellation")
	}
	assert.Contains(t, logs.String(), "Interrupted.")
}

func TestRun_SignalsThroughTheLoop(t *testing.T) {
	fake := clock.NewFake(time.Date(2025, 3, 1, 18, 0, 0, 0, time.UTC))
	sink := &captureSink{}
	a, out, _ := SetupAppTest(t,
		Config{Preset: "1 Minute", Sound: true, TickInterval: time.Second},
		WithClock(fake), WithAudioSink(sink),
	)

	pr, pw := io.Pipe()
	defer pw.Close()
	done := make(chan error, 1)
	go func() { done <- a.Run(context.Background(), pr) }()

	_, err := fmt.Fprintln(pw, "start")
	require.NoError(t, err)
	require.Eventually(t, func() bool { return fake.Tickers() == 1 }, 5*time.Second, 5*time.Millisecond)

	fake.Advance(30 * time.Second)
	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "00:30 [GREEN] Green Signal | 1 Minute")
	}, 5*time.Second, 5*time.Millisecond)

	fake.Advance(30 * time.Second)
	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "01:00 [RED] Red Signal | 1 Minute")
	}, 5*time.Second, 5*time.Millisecond)

	_, err = fmt.Fprintln(pw, "pause")
	require.NoError(t, err)
	require.Eventually(t, func() bool { return fake.Tickers() == 0 }, 5*time.Second, 5*time.Millisecond)

	_, err = fmt.Fprintln(pw, "q")
	require.NoError(t, err)
	require.NoError(t, <-done)

	assert.Equal(t, 2, sink.played(), "one cue per transition")

	rec := httptest.NewRecorder()
	a.routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, rec.Body.String(), `speechtimer_signal_transitions_total{signal="green"} 1`)
	assert.Contains(t, rec.Body.String(), `speechtimer_signal_transitions_total{signal="red"} 1`)
	assert.Contains(t, rec.Body.String(), "speechtimer_cues_total 2")
}

func TestServeHealthcheck(t *testing.T) {
	a, _, logs := SetupAppTest(t, Config{})
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.serveHealthcheck(ctx, ln) }()

	url := fmt.Sprintf("http://%s", ln.Addr())
	var resp *http.Response
	require.Eventually(t, func() bool {
		resp, err = http.Get(url + "/health")
		return err == nil
	}, 5*time.Second, 10*time.Millisecond)
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "OK\n", string(body))

	resp, err = http.Get(url + "/metrics")
	require.NoError(t, err)
	body, err = io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.Contains(t, string(body), "speechtimer_running 0")

	cancel()
	require.NoError(t, <-done)
	assert.Contains(t, logs.String(), "Health check endpoint hit.")
}
