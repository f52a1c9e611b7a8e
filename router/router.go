/*
DESCRIPTION
  router.go provides Or, the per-tile route decision (CPU/Offload/Skip)
  with a calibration window during which Skip is never permitted.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package router provides the per-tile route decision for the static-
// frame render engine: send a tile to the CPU path, an offload ("dirty")
// path, or skip it entirely once the engine has calibrated.
package router

import "time"

// Route is a per-tile routing decision.
type Route int

const (
	Cpu Route = iota
	Offload
	Skip
)

// Clock abstracts wall-clock time for deterministic tests.
type Clock func() time.Time

// Config tunes the router's calibration window and thresholds.
type Config struct {
	Epsilon          float64 // Amplitude-diff threshold below which a pixel isn't "changed" (informational; owned by the caller).
	KPercent         float64 // percent_changed above this routes to Offload.
	CalibFrames      uint64  // Frames that must elapse before calibrated.
	CalibMinSeconds  float64 // Wall-clock time that must elapse before calibrated.
	AllowSkipRoute   bool    // Whether Skip is ever a valid route once calibrated.
	Now              Clock   // Clock source; defaults to time.Now.
}

func (c Config) withDefaults() Config {
	if c.KPercent <= 0 {
		c.KPercent = 5
	}
	if c.CalibFrames == 0 {
		c.CalibFrames = 30
	}
	if c.Now == nil {
		c.Now = time.Now
	}
	return c
}

// Or is the per-tile OR-router: state is per-tile last_change_percent, a
// monotone calibrated flag, a frame counter and a start timestamp.
type Or struct {
	cfg Config

	framesSeen uint64
	start      time.Time
	started    bool
	calibrated bool

	lastChangePercent []float64
}

// New returns an Or router sized for nTiles tiles.
func New(cfg Config, nTiles int) *Or {
	cfg = cfg.withDefaults()
	return &Or{
		cfg:               cfg,
		lastChangePercent: make([]float64, nTiles),
	}
}

// BeginFrame increments the frame counter and latches calibrated once
// both the frame-count and elapsed-time thresholds are met. calibrated is
// monotone: once true it never reverts to false.
func (r *Or) BeginFrame() {
	if !r.started {
		r.start = r.cfg.Now()
		r.started = true
	}
	r.framesSeen++
	if !r.calibrated {
		elapsed := r.cfg.Now().Sub(r.start).Seconds()
		if r.framesSeen >= r.cfg.CalibFrames && elapsed >= r.cfg.CalibMinSeconds {
			r.calibrated = true
		}
	}
}

// UpdateTileChange records the percent-changed value for tile idx.
func (r *Or) UpdateTileChange(idx int, percent float64) {
	if idx >= 0 && idx < len(r.lastChangePercent) {
		r.lastChangePercent[idx] = percent
	}
}

// Calibrated reports whether the calibration window has closed.
func (r *Or) Calibrated() bool { return r.calibrated }

// Decide returns the route for tile idx based on its last recorded
// change percent.
func (r *Or) Decide(idx int) Route {
	percent := r.lastChangePercent[idx]
	switch {
	case percent > r.cfg.KPercent:
		return Offload
	case r.cfg.AllowSkipRoute && r.calibrated && percent == 0:
		return Skip
	default:
		return Cpu
	}
}
