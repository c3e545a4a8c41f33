package app

import (
	"testing"
	"time"

	"github.com/specialistvlad/speechtimer/internal/hcl"
	"github.com/specialistvlad/speechtimer/internal/testutil"
)

// SetupAppTest creates a new app instance for system testing with plain
// output and debug logging. It returns the app, its display output and its
// log output.
func SetupAppTest(t *testing.T, cfg Config, opts ...Option) (*App, *testutil.SafeBuffer, *testutil.SafeBuffer) {
	t.Helper()

	if cfg.TickInterval == 0 {
		cfg.TickInterval = 100 * time.Millisecond
	}
	if cfg.Preset == "" {
		cfg.Preset = "Ice Breaker"
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}
	cfg.LogLevel = "debug"
	cfg.Plain = true

	valid, err := NewConfig(cfg)
	if err != nil {
		t.Fatalf("invalid test config: %v", err)
	}

	outBuffer := &testutil.SafeBuffer{}
	logBuffer := &testutil.SafeBuffer{}
	testutil.DumpOnCleanup(t, logBuffer)

	testApp, err := NewApp(outBuffer, logBuffer, valid, hcl.NewLoader(), opts...)
	if err != nil {
		t.Fatalf("failed to create app: %v", err)
	}
	return testApp, outBuffer, logBuffer
}
