/*
DESCRIPTION
  tracker.go provides Tracker, a per-frame sampled diff-ratio classifier
  (static / mid-band / high-activity) with a latched awake state and a
  dedupe-block window during active motion.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package activity classifies consecutive frames into static/mid-band/
// high-activity bands and drives the allow-dedupe gate that governs
// whether downstream sinks see only unique frames or every frame during
// a transition.
package activity

import "github.com/ausocean/framefab/raster"

// Config tunes the tracker's thresholds and timings. Zero-value fields
// fall back to the documented defaults.
type Config struct {
	Stride          int     // Sample stride over pixels; >=1.
	ChannelThresh   int     // Per-channel delta threshold to count a pixel as changed.
	StaticThreshold float64 // diff_ratio <= this => static. Default 0.03.
	WakeThreshold   float64 // diff_ratio >= this => high activity. Default 0.05.
	DedupePauseSec  float64 // Dedupe-block window length after high activity.
	StaticResetSec  float64 // Time static+quiet required before awake resets.
	FreezeOnMid     bool    // If true, mid-band neither resets nor advances the static streak.
}

func (c Config) withDefaults() Config {
	if c.Stride < 1 {
		c.Stride = 1
	}
	if c.ChannelThresh <= 0 {
		c.ChannelThresh = 16
	}
	if c.StaticThreshold <= 0 {
		c.StaticThreshold = 0.03
	}
	if c.WakeThreshold <= 0 {
		c.WakeThreshold = 0.05
	}
	if c.DedupePauseSec <= 0 {
		c.DedupePauseSec = 1.0
	}
	if c.StaticResetSec <= 0 {
		c.StaticResetSec = 2.0
	}
	return c
}

// Decision is the outcome of one Tracker.Update call.
type Decision struct {
	DiffRatio     float64
	IsStatic      bool
	IsAwake       bool
	IsMidBand     bool
	DedupeBlock   bool
	AllowDedupe   bool
	TSinceStatic  float64
	TSinceHigh    float64
}

// Tracker holds the latched awake/static state machine: activity spikes
// latch an awake flag and a dedupe-block window, which only clear after a
// sustained quiet run.
type Tracker struct {
	cfg Config

	awake           bool
	staticStart     float64
	staticStartSet  bool
	lastHighTime    float64
	dedupeBlockUntil float64
	haveHigh        bool
}

// New returns a Tracker configured per cfg (defaults applied).
func New(cfg Config) *Tracker {
	return &Tracker{cfg: cfg.withDefaults()}
}

// DiffRatio computes the fraction of strided-sampled pixels where any of
// |dB|,|dG|,|dR| exceeds the configured per-channel threshold.
func DiffRatio(cur, prev raster.Image, stride, thresh int) float64 {
	if !cur.Ok() || !prev.Ok() || cur.Width != prev.Width || cur.Height != prev.Height {
		return 0
	}
	if stride < 1 {
		stride = 1
	}
	var sampled, changed int
	for y := 0; y < cur.Height; y += stride {
		for x := 0; x < cur.Width; x += stride {
			b0, g0, r0, _ := cur.At(x, y)
			b1, g1, r1, _ := prev.At(x, y)
			sampled++
			if absInt(int(b0)-int(b1)) > thresh || absInt(int(g0)-int(g1)) > thresh || absInt(int(r0)-int(r1)) > thresh {
				changed++
			}
		}
	}
	if sampled == 0 {
		return 0
	}
	return float64(changed) / float64(sampled)
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Update classifies the transition from prev to cur observed at time t
// (seconds), advancing the tracker's latched state, and returns the
// resulting Decision.
func (tr *Tracker) Update(cur, prev raster.Image, t float64) Decision {
	ratio := DiffRatio(cur, prev, tr.cfg.Stride, tr.cfg.ChannelThresh)

	isStatic := ratio <= tr.cfg.StaticThreshold
	isHigh := ratio >= tr.cfg.WakeThreshold
	isMid := !isStatic && !isHigh

	if isHigh {
		tr.awake = true
		tr.lastHighTime = t
		tr.haveHigh = true
		tr.dedupeBlockUntil = t + tr.cfg.DedupePauseSec
		tr.staticStartSet = false
	} else if isMid {
		tr.awake = true
		if !tr.cfg.FreezeOnMid {
			tr.staticStartSet = false
		}
	} else { // static
		if tr.awake {
			if !tr.staticStartSet {
				tr.staticStart = t
				tr.staticStartSet = true
			}
			sinceStatic := t - tr.staticStart
			sinceHigh := t - tr.lastHighTime
			if !tr.haveHigh {
				sinceHigh = tr.cfg.DedupePauseSec // no high seen yet: don't block on it.
			}
			if sinceStatic >= tr.cfg.StaticResetSec && sinceHigh >= tr.cfg.DedupePauseSec {
				tr.awake = false
			}
		} else if !tr.staticStartSet {
			tr.staticStart = t
			tr.staticStartSet = true
		}
	}

	allowDedupe := t >= tr.dedupeBlockUntil

	var tSinceStatic float64
	if tr.staticStartSet {
		tSinceStatic = t - tr.staticStart
	}

	return Decision{
		DiffRatio:    ratio,
		IsStatic:     isStatic,
		IsAwake:      tr.awake,
		IsMidBand:    isMid,
		DedupeBlock:  !allowDedupe,
		AllowDedupe:  allowDedupe,
		TSinceStatic: tSinceStatic,
		TSinceHigh:   t - tr.lastHighTime,
	}
}
