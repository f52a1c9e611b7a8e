package scope

import (
	"testing"

	"github.com/ausocean/utils/logging"
)

// testLogger adapts *testing.T to logging.Logger so tests can pass a real
// logger without discarding output.
type testLogger testing.T

func (tl *testLogger) Debug(msg string, args ...interface{})   { tl.Log(logging.Debug, msg, args...) }
func (tl *testLogger) Info(msg string, args ...interface{})    { tl.Log(logging.Info, msg, args...) }
func (tl *testLogger) Warning(msg string, args ...interface{}) { tl.Log(logging.Warning, msg, args...) }
func (tl *testLogger) Error(msg string, args ...interface{})   { tl.Log(logging.Error, msg, args...) }
func (tl *testLogger) Fatal(msg string, args ...interface{})   { tl.Log(logging.Fatal, msg, args...) }
func (tl *testLogger) SetLevel(lvl int8)                       {}
func (tl *testLogger) Log(lvl int8, msg string, args ...interface{}) {
	((*testing.T)(tl)).Logf(msg, args...)
}

func TestDisabledScopeExitIsNoop(t *testing.T) {
	s := New((*testLogger)(t), false)
	a := s.Enter("phase")
	a.Exit() // Must not panic or log.
}

func TestEnabledScopeExitReports(t *testing.T) {
	s := New((*testLogger)(t), true)
	a := s.Enter("phase")
	a.Exit()
}
