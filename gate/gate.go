/*
DESCRIPTION
  gate.go provides Run, a blocking preflight that waits until N
  consecutive captures are identical for T seconds, or fails on timeout.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package gate provides the static-scene preflight gate: block until the
// capture source settles on a stable image, or fail with a diagnostic.
package gate

import (
	"time"

	"github.com/ausocean/framefab/raster"
)

// Clock abstracts time so tests can drive the gate deterministically.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

type realClock struct{}

func (realClock) Now() time.Time     { return time.Now() }
func (realClock) Sleep(d time.Duration) { time.Sleep(d) }

// RealClock is the production Clock backed by the time package.
var RealClock Clock = realClock{}

// Capturer is the minimal capture surface the gate needs.
type Capturer interface {
	Capture(display uint32) raster.Image
}

// Config configures a single gate run.
type Config struct {
	Display              uint32
	FPS                   uint
	RequiredStaticSeconds float64
	TimeoutSeconds        float64
	Tolerant              bool // true: signature-only equality, no byte compare.
	Resize                *ResizeTo
	Clock                 Clock
}

// ResizeTo optionally resizes every captured frame before comparison.
type ResizeTo struct{ W, H int }

// Result reports the outcome of a gate run.
type Result struct {
	OK             bool
	StableSeconds  float64
	LastDiffRatio  float64
	Reason         string
}

// Run blocks until cfg.RequiredStaticSeconds of consecutive identical
// captures are observed at the target FPS, or cfg.TimeoutSeconds elapses.
func Run(c Capturer, cfg Config) Result {
	clock := cfg.Clock
	if clock == nil {
		clock = RealClock
	}
	fps := cfg.FPS
	if fps == 0 {
		fps = 30
	}
	period := time.Second / time.Duration(fps)

	start := clock.Now()
	deadline := start.Add(time.Duration(cfg.TimeoutSeconds * float64(time.Second)))

	var prev raster.Image
	var prevSig raster.Signature
	haveSig := false
	var consecutive uint64

	for {
		now := clock.Now()
		if now.After(deadline) {
			return Result{
				OK:     false,
				Reason: "static gate timed out before required stability was reached",
			}
		}

		img := c.Capture(cfg.Display)
		if img.Ok() && cfg.Resize != nil {
			img = raster.Resize(img, cfg.Resize.W, cfg.Resize.H)
		}

		if img.Ok() {
			sig := raster.Sign(img)
			same := false
			if haveSig {
				if cfg.Tolerant {
					same = raster.SignatureEqual(sig, prevSig)
				} else {
					same = raster.Identical(img, prev, sig, prevSig)
				}
			}
			if same {
				consecutive++
			} else {
				consecutive = 1
			}
			prev, prevSig, haveSig = img, sig, true

			stableSeconds := float64(consecutive) / float64(fps)
			if stableSeconds >= cfg.RequiredStaticSeconds {
				return Result{OK: true, StableSeconds: stableSeconds}
			}
		}

		clock.Sleep(period)
	}
}
