package testutil

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/speechtimer/internal/ctxlog"
)

func TestWriteFiles(t *testing.T) {
	dir := WriteFiles(t, map[string]string{
		"a.hcl":        "a",
		"nested/b.hcl": "b",
	})

	data, err := os.ReadFile(filepath.Join(dir, "nested", "b.hcl"))
	require.NoError(t, err)
	assert.Equal(t, "b", string(data))
}

func TestSafeBuffer_ConcurrentWrites(t *testing.T) {
	buf := &SafeBuffer{}
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = buf.Write([]byte("x"))
		}()
	}
	wg.Wait()
	assert.Len(t, buf.String(), 10)
}

func TestCaptureLogger(t *testing.T) {
	logger, buf := CaptureLogger(t)
	logger.Debug("Loaded.", "count", 3)
	AssertLogged(t, buf, "Loaded.")
	AssertLogged(t, buf, "count=3")

	assert.NotNil(t, ctxlog.FromContext(Context()))
}
