package testutil

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/speechtimer/internal/ctxlog"
)

// LogsEnv turns on dumping captured logs at the end of each test.
const LogsEnv = "SPEECHTIMER_TEST_LOGS"

// DiscardLogger returns a logger that drops everything.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Context returns a background context carrying a discarding logger.
func Context() context.Context {
	return ctxlog.WithLogger(context.Background(), DiscardLogger())
}

// CaptureLogger returns a debug-level text logger writing into a SafeBuffer.
// The buffer is printed on cleanup when LogsEnv is "true".
func CaptureLogger(t *testing.T) (*slog.Logger, *SafeBuffer) {
	t.Helper()
	buf := &SafeBuffer{}
	DumpOnCleanup(t, buf)
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})), buf
}

// DumpOnCleanup prints buf on cleanup when LogsEnv is "true".
func DumpOnCleanup(t *testing.T, buf *SafeBuffer) {
	t.Helper()
	t.Cleanup(func() {
		if os.Getenv(LogsEnv) == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), buf.String())
		}
	})
}

// AssertLogged checks that the captured output contains msg.
func AssertLogged(t *testing.T, buf *SafeBuffer, msg string) {
	t.Helper()
	require.True(t,
		strings.Contains(buf.String(), msg),
		"expected log message %q was not found in logs:\n%s", msg, buf.String(),
	)
}
