/*
DESCRIPTION
  pool.go provides Pool, the coalescing frame history: retention by time
  and byte budget, static-run collapse, and a quick-lane SPSC emit of
  changed frames.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package framepool provides the bounded, coalescing in-memory frame
// history (C8): Pool.Push coalesces runs of identical captures, evicts by
// age and byte budget, and publishes genuinely new frames to a quick-lane
// SPSC ring for a downstream sink to drain.
package framepool

import (
	"sync"

	"github.com/ausocean/framefab/raster"
	"github.com/ausocean/framefab/ring"
)

// Frame is one history entry. Image is shared (not copied) between the
// history deque and any quick-lane consumer; image bytes are immutable
// once committed to the pool (corrections are applied before Push).
type Frame struct {
	Index  int64
	TStart float64
	TEnd   float64
	RunLen uint64
	Image  raster.Image
	Sig    raster.Signature
}

// Config tunes retention policy.
type Config struct {
	RetentionSeconds float64 // Time-based eviction horizon on Frame.TEnd.
	ByteBudget       int64   // Budget-based eviction horizon on total bytes.
	StaticGraceSec   float64 // Collapse the deque once a static run exceeds this.
	QuickLaneCap     int     // Quick-lane SPSC ring capacity.
}

func (c Config) withDefaults() Config {
	if c.RetentionSeconds <= 0 {
		c.RetentionSeconds = 30
	}
	if c.ByteBudget <= 0 {
		c.ByteBudget = 256 << 20
	}
	if c.StaticGraceSec <= 0 {
		c.StaticGraceSec = 5
	}
	if c.QuickLaneCap <= 0 {
		c.QuickLaneCap = 64
	}
	return c
}

// Pool is the coalescing frame history. Push is called from exactly one
// (capture) goroutine; PopQuick is called from exactly one (sink/export)
// goroutine, matching the ring's SPSC contract.
type Pool struct {
	cfg Config

	mu         sync.Mutex
	frames     []*Frame
	totalBytes int64
	latest     float64

	inStaticRun bool
	staticSince float64

	quick *ring.SPSC[*Frame]
}

// New returns a Pool configured per cfg (defaults applied).
func New(cfg Config) *Pool {
	cfg = cfg.withDefaults()
	return &Pool{
		cfg:   cfg,
		quick: ring.New[*Frame](cfg.QuickLaneCap),
	}
}

// Push adds a capture to the pool at time t (seconds), coalescing it into
// the current run if it is byte-identical to the tail frame, or starting
// a new entry and publishing it to the quick lane otherwise. It then
// applies time- and budget-based eviction.
func (p *Pool) Push(img raster.Image, index int64, t float64) {
	sig := raster.Sign(img)

	p.mu.Lock()
	defer p.mu.Unlock()

	p.latest = t

	if n := len(p.frames); n > 0 {
		last := p.frames[n-1]
		if raster.Identical(img, last.Image, sig, last.Sig) {
			last.TEnd = t
			last.RunLen++
			if !p.inStaticRun {
				p.inStaticRun = true
				p.staticSince = t
			}
			if t-p.staticSince >= p.cfg.StaticGraceSec {
				p.collapseLocked()
			}
			p.evictLocked()
			return
		}
	}

	p.inStaticRun = false
	f := &Frame{Index: index, TStart: t, TEnd: t, RunLen: 1, Image: img, Sig: sig}
	p.frames = append(p.frames, f)
	p.totalBytes += int64(len(img.Bytes))
	p.quick.Push(f) // Drops silently on full, by design.

	p.evictLocked()
}

// collapseLocked drops all but the most recent element, the memory-saving
// policy for long motionless runs. Caller must hold p.mu.
func (p *Pool) collapseLocked() {
	for len(p.frames) > 1 {
		dropped := p.frames[0]
		p.totalBytes -= int64(len(dropped.Image.Bytes))
		p.frames = p.frames[1:]
	}
}

// evictLocked applies time-based then budget-based eviction, always
// leaving at least one element. Caller must hold p.mu.
func (p *Pool) evictLocked() {
	for len(p.frames) >= 2 && p.frames[0].TEnd < p.latest-p.cfg.RetentionSeconds {
		dropped := p.frames[0]
		p.totalBytes -= int64(len(dropped.Image.Bytes))
		p.frames = p.frames[1:]
	}
	for len(p.frames) >= 2 && p.totalBytes > p.cfg.ByteBudget {
		dropped := p.frames[0]
		p.totalBytes -= int64(len(dropped.Image.Bytes))
		p.frames = p.frames[1:]
	}
}

// PopQuick removes and returns the oldest quick-lane frame, if any.
func (p *Pool) PopQuick() (*Frame, bool) {
	return p.quick.Pop()
}

// Len returns the current number of deque entries.
func (p *Pool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.frames)
}

// TotalBytes returns the current byte-budget usage.
func (p *Pool) TotalBytes() int64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.totalBytes
}

// SnapshotRecent walks the deque newest-to-oldest, collecting frames with
// TStart >= latest-lastSeconds, and returns them in chronological order.
// It always returns at least the newest frame when the deque is
// non-empty.
func (p *Pool) SnapshotRecent(lastSeconds float64) []*Frame {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.frames) == 0 {
		return nil
	}

	horizon := p.latest - lastSeconds
	var out []*Frame
	for i := len(p.frames) - 1; i >= 0; i-- {
		f := p.frames[i]
		if f.TStart >= horizon || len(out) == 0 {
			out = append(out, f)
		} else {
			break
		}
	}
	// Reverse into chronological order.
	for l, r := 0, len(out)-1; l < r; l, r = l+1, r-1 {
		out[l], out[r] = out[r], out[l]
	}
	return out
}
