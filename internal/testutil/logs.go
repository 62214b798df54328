package testutil

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"cashplan/internal/logger"
)

// ObserveLogs routes the global logger into an in-memory observer for the
// rest of the test and returns the captured entries at level and above.
func ObserveLogs(t *testing.T, level zapcore.Level) *observer.ObservedLogs {
	t.Helper()

	core, logs := observer.New(level)
	restore := logger.Replace(zap.New(core))
	t.Cleanup(restore)
	return logs
}

// AssertLogged fails the test unless exactly want entries with message msg
// were captured.
func AssertLogged(t *testing.T, logs *observer.ObservedLogs, msg string, want int) {
	t.Helper()

	if got := logs.FilterMessage(msg).Len(); got != want {
		t.Errorf("expected %d %q log entries, got %d", want, msg, got)
	}
}
