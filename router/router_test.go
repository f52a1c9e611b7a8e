package router

import (
	"testing"
	"time"
)

func TestSkipRequiresCalibration(t *testing.T) {
	now := time.Unix(0, 0)
	clock := func() time.Time { return now }
	r := New(Config{AllowSkipRoute: true, CalibFrames: 2, CalibMinSeconds: 0, Now: clock}, 1)

	r.BeginFrame()
	r.UpdateTileChange(0, 0)
	if d := r.Decide(0); d == Skip {
		t.Fatalf("expected no skip before calibration, got %v", d)
	}

	r.BeginFrame()
	r.UpdateTileChange(0, 0)
	if !r.Calibrated() {
		t.Fatalf("expected calibrated after CalibFrames elapsed")
	}
	if d := r.Decide(0); d != Skip {
		t.Fatalf("expected skip once calibrated and unchanged, got %v", d)
	}
}

func TestOffloadAboveThreshold(t *testing.T) {
	r := New(Config{KPercent: 5}, 1)
	r.BeginFrame()
	r.UpdateTileChange(0, 10)
	if d := r.Decide(0); d != Offload {
		t.Fatalf("expected offload above threshold, got %v", d)
	}
}

func TestCpuDefault(t *testing.T) {
	r := New(Config{KPercent: 5, AllowSkipRoute: false}, 1)
	r.BeginFrame()
	r.UpdateTileChange(0, 0)
	if d := r.Decide(0); d != Cpu {
		t.Fatalf("expected cpu route when skip disallowed, got %v", d)
	}
}

func TestCalibratedIsMonotone(t *testing.T) {
	now := time.Unix(0, 0)
	clock := func() time.Time { return now }
	r := New(Config{CalibFrames: 1, CalibMinSeconds: 0, Now: clock}, 1)
	r.BeginFrame()
	if !r.Calibrated() {
		t.Fatalf("expected calibrated")
	}
	r.BeginFrame()
	if !r.Calibrated() {
		t.Fatalf("expected calibrated to remain true")
	}
}
