package logging

import (
	"bytes"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"
)

// TestLogger captures JSON log output for assertions.
type TestLogger struct {
	*zerolog.Logger

	mu  sync.Mutex
	buf bytes.Buffer
}

// NewTestLogger returns a logger that records every level.
func NewTestLogger(t testing.TB) *TestLogger {
	t.Helper()

	tl := &TestLogger{}
	logger := zerolog.New(tl).Level(zerolog.TraceLevel).With().Timestamp().Logger()
	tl.Logger = &logger
	return tl
}

// Write implements io.Writer. Scheduled jobs log from other goroutines.
func (tl *TestLogger) Write(p []byte) (int, error) {
	tl.mu.Lock()
	defer tl.mu.Unlock()
	return tl.buf.Write(p)
}

// Output returns everything logged so far.
func (tl *TestLogger) Output() string {
	tl.mu.Lock()
	defer tl.mu.Unlock()
	return tl.buf.String()
}

// AssertContains fails t unless the output contains substr.
func (tl *TestLogger) AssertContains(t testing.TB, substr string) {
	t.Helper()
	if out := tl.Output(); !strings.Contains(out, substr) {
		t.Errorf("log output does not contain %q\noutput:\n%s", substr, out)
	}
}

// AssertNotContains fails t if the output contains substr.
func (tl *TestLogger) AssertNotContains(t testing.TB, substr string) {
	t.Helper()
	if out := tl.Output(); strings.Contains(out, substr) {
		t.Errorf("log output should not contain %q\noutput:\n%s", substr, out)
	}
}
