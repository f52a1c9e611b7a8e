/*
DESCRIPTION
  orchestrator.go provides Orchestrator, the tick-driven capture loop
  wiring the static gate, activity tracker, correction queue and frame
  pool together, modeled on revid.Revid's Start/Stop lifecycle and
  err-channel error handling.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package capture

import (
	"fmt"
	"math"
	"runtime"
	"time"

	"github.com/ausocean/utils/logging"

	"github.com/ausocean/framefab/activity"
	"github.com/ausocean/framefab/correction"
	"github.com/ausocean/framefab/framepool"
	"github.com/ausocean/framefab/gate"
	"github.com/ausocean/framefab/raster"
	"github.com/ausocean/framefab/scope"
	"github.com/ausocean/framefab/sink"
	"github.com/ausocean/framefab/stats"
)

// Used to indicate package in logging.
const pkg = "capture: "

// SdNotifyFunc matches the signature of coreos/go-systemd/daemon.SdNotify,
// kept as a field so tests can substitute a no-op instead of depending on
// a live systemd.
type SdNotifyFunc func(unsetEnvironment bool, state string) (bool, error)

// ResizeTo optionally resizes every captured frame before further
// processing.
type ResizeTo struct{ W, H int }

// Config tunes a single Orchestrator run.
type Config struct {
	Display uint32
	FPS     uint
	Seconds float64 // <=0 means a single snapshot tick.
	Resize  *ResizeTo

	NoStaticGate   bool
	GateConfig     gate.Config
	ActivityConfig *activity.Config // nil disables adaptive dedupe gating.
	PoolConfig     framepool.Config

	RecordBase string // Nonempty enables BMP recording.

	Logger   logging.Logger
	Stats    stats.Sink
	Scope    *scope.Scope
	Metrics  *sink.Metrics
	SdNotify SdNotifyFunc // nil disables the systemd readiness call.

	Now   func() time.Time
	Sleep func(time.Duration)
}

func (c Config) withDefaults() Config {
	if c.FPS == 0 {
		c.FPS = 30
	}
	if c.Stats == nil {
		c.Stats = stats.Noop{}
	}
	if c.Now == nil {
		c.Now = time.Now
	}
	if c.Sleep == nil {
		c.Sleep = time.Sleep
	}
	return c
}

// Summary reports the outcome of a completed run, per the "final one-line
// summary" convention.
type Summary struct {
	Ticks           int64
	FramesUnique    int64
	FramesDup       int64
	GateOK          bool
	GateStableSec   float64
	Err             error
}

// Orchestrator drives the capture->dedupe->coalesce->retain->emit loop.
type Orchestrator struct {
	cfg    Config
	source Source

	queue   *correction.Queue
	tracker *activity.Tracker
	pool    *framepool.Pool

	startTime time.Time
	index     int64

	havePrev bool
	prev     raster.Image
	prevSig  raster.Signature

	summary Summary

	// err carries the first sink-write failure observed during a run;
	// drained into Summary.Err by finish().
	err chan error
}

// New returns an Orchestrator reading from source, with queue supplying
// the correction transforms to apply each tick (may be empty).
func New(source Source, queue *correction.Queue, cfg Config) *Orchestrator {
	cfg = cfg.withDefaults()
	o := &Orchestrator{
		cfg:    cfg,
		source: source,
		queue:  queue,
		pool:   framepool.New(cfg.PoolConfig),
		err:    make(chan error, 1),
	}
	if cfg.ActivityConfig != nil {
		o.tracker = activity.New(*cfg.ActivityConfig)
	}
	return o
}

// Run blocks for the configured duration (or a single tick if Seconds<=0),
// driving the tick loop at an absolute-deadline cadence, and returns the
// run Summary.
func (o *Orchestrator) Run() Summary {
	o.startTime = o.cfg.Now()

	if !o.cfg.NoStaticGate {
		gcfg := o.cfg.GateConfig
		gcfg.Display = o.cfg.Display
		if o.cfg.Resize != nil {
			gcfg.Resize = &gate.ResizeTo{W: o.cfg.Resize.W, H: o.cfg.Resize.H}
		}
		res := gate.Run(o.source, gcfg)
		o.summary.GateOK = res.OK
		o.summary.GateStableSec = res.StableSeconds
		if !res.OK {
			o.summary.Err = fmt.Errorf("capture: static gate failed: %s", res.Reason)
			o.cfg.Logger.Error(pkg+"static gate failed", "reason", res.Reason)
			return o.summary
		}
		o.cfg.Logger.Info(pkg+"static gate passed", "stable_seconds", res.StableSeconds)
	}

	if o.cfg.SdNotify != nil {
		if _, err := o.cfg.SdNotify(false, "READY=1"); err != nil {
			o.cfg.Logger.Debug(pkg+"sdnotify failed (not running under systemd?)", "error", err.Error())
		}
	}

	period := time.Second / time.Duration(o.cfg.FPS)
	deadline := o.startTime

	if o.cfg.Seconds <= 0 {
		o.tick()
		return o.finish()
	}

	// The loop runs Seconds*FPS tick slots (at least one); a slot whose
	// capture fails still counts toward that bound.
	n := int(math.Round(o.cfg.Seconds * float64(o.cfg.FPS)))
	if n < 1 {
		n = 1
	}
	for i := 0; i < n; i++ {
		o.tick()

		deadline = deadline.Add(period)
		if d := deadline.Sub(o.cfg.Now()); d > 0 {
			o.cfg.Sleep(d)
		}
	}
	return o.finish()
}

// finish drains the first sink-write failure (if any) into Summary.Err
// before returning, so a caller can tell a clean run from one with
// dropped emissions without reading the channel itself.
func (o *Orchestrator) finish() Summary {
	select {
	case err := <-o.err:
		o.summary.Err = err
	default:
	}
	return o.summary
}

// tick runs one full pass of the pipeline: capture, optional resize,
// activity classification, correction, dedupe, pool retention, and
// optional BMP/metrics emission. Sleeping to the next tick deadline is
// handled by the caller.
func (o *Orchestrator) tick() {
	var span *scope.Active
	if o.cfg.Scope != nil {
		span = o.cfg.Scope.Enter("tick")
		defer span.Exit()
	}

	img := o.source.Capture(o.cfg.Display)
	if !img.Ok() {
		o.cfg.Stats.Report(stats.Event{Name: "capture_transient_failure", Value: 1})
		return
	}

	if o.cfg.Resize != nil {
		img = raster.Resize(img, o.cfg.Resize.W, o.cfg.Resize.H)
	}

	t := o.cfg.Now().Sub(o.startTime).Seconds()

	allowDedupe := true
	var decision activity.Decision
	if o.tracker != nil && o.havePrev {
		decision = o.tracker.Update(img, o.prev, t)
		allowDedupe = decision.AllowDedupe
	}

	if o.queue != nil {
		o.queue.ApplyAll(img)
	}

	sig := raster.Sign(img)
	identical := allowDedupe && o.havePrev && raster.Identical(img, o.prev, sig, o.prevSig)

	o.pool.Push(img, o.index, t)

	unique := !identical
	if unique {
		o.summary.FramesUnique++
		o.cfg.Stats.Report(stats.Event{Name: "frames_unique", Value: 1})
	} else {
		o.summary.FramesDup++
		o.cfg.Stats.Report(stats.Event{Name: "frames_duplicates", Value: 1})
	}

	if o.cfg.RecordBase != "" && (decision.DedupeBlock || unique) {
		path := fmt.Sprintf("%s_%06d.bmp", o.cfg.RecordBase, o.index)
		if err := sink.WriteBMP(path, img); err != nil {
			o.cfg.Logger.Error(pkg+"failed to write frame", "path", path, "error", err.Error())
			select {
			case o.err <- err:
			default:
			}
		}
	}

	if o.cfg.Metrics != nil {
		rssMB := float64(0)
		if m := readRSSMB(); m > 0 {
			rssMB = m
		}
		uniqueFlag := 0
		if unique {
			uniqueFlag = 1
		}
		dedupeBlockFlag := 0
		if decision.DedupeBlock {
			dedupeBlockFlag = 1
		}
		rec := sink.FrameRecord{
			T:               t,
			FrameIndex:      o.index,
			TSec:            t,
			Unique:          uniqueFlag,
			DupSkippedTotal: o.summary.FramesDup,
			PoolFrames:      o.pool.Len(),
			RSSMB:           rssMB,
			DiffRatio:       decision.DiffRatio,
			DedupeBlock:     dedupeBlockFlag,
		}
		if err := o.cfg.Metrics.RecordFrame(rec); err != nil {
			o.cfg.Logger.Error(pkg+"failed to write metrics record", "error", err.Error())
		}
	}

	o.prev, o.prevSig, o.havePrev = img, sig, true
	o.index++
	o.summary.Ticks++
}

func readRSSMB() float64 {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return float64(m.Sys) / (1024 * 1024)
}

// Pool exposes the underlying FramePool for a sink/exporter goroutine to
// drain via PopQuick.
func (o *Orchestrator) Pool() *framepool.Pool { return o.pool }
