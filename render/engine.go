/*
DESCRIPTION
  engine.go provides Engine, the tile-parallel supersampled render engine:
  renders a synthetic visible-spectrum gradient, diffs each tile's
  amplitude against the previous frame, routes tiles to CPU/offload/skip,
  and emits a per-tile dirty mask plus a learned baseline amplitude map
  during calibration.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package render provides the tile-parallel static-frame engine: a
// supersampled visible-spectrum gradient renderer that diffs per-tile
// amplitude against the previous frame, routes tiles to CPU, offload or
// skip fates, and learns a baseline amplitude map during calibration.
package render

import (
	"context"
	"math/rand"
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/ausocean/framefab/accum"
	"github.com/ausocean/framefab/raster"
	"github.com/ausocean/framefab/router"
	"github.com/ausocean/framefab/tile"
)

// TileDiffer computes the number of pixels within a tile whose amplitude
// changed more than epsilon relative to the previous frame. The default
// implementation is pure Go; render/tilediff_withcv.go provides an
// optional gocv-accelerated alternative behind the "withcv" build tag.
type TileDiffer func(prevAmp, curAmp []float64, epsilon float64) int

// defaultTileDiffer is the TileDiffer a Config falls back to when none is
// set. It is the pure-Go comparator by default; a "withcv" build swaps it
// for the gocv-accelerated CvTileDiffer via an init in
// tilediff_withcv.go.
var defaultTileDiffer TileDiffer = DefaultTileDiffer

// DefaultTileDiffer is the pure-Go per-pixel amplitude comparator.
func DefaultTileDiffer(prevAmp, curAmp []float64, epsilon float64) int {
	var changed int
	for i := range curAmp {
		if absF(prevAmp[i]-curAmp[i]) > epsilon {
			changed++
		}
	}
	return changed
}

func absF(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// OperandField is the running baseline amplitude map learned during
// calibration via an incremental mean.
type OperandField struct {
	Amplitude         []float64
	FramesAccumulated uint32
}

// Config tunes the render engine.
type Config struct {
	Width, Height  int
	TileW, TileH   int
	SPPX, SPPY     int // Supersamples per pixel, per axis.
	Jitter         bool
	WeightCap      float64
	Gamma          float64
	Workers        int
	RouterConfig   router.Config
	CalibFrames    uint64
	Differ         TileDiffer
}

func (c Config) withDefaults() Config {
	if c.TileW <= 0 {
		c.TileW = 32
	}
	if c.TileH <= 0 {
		c.TileH = 32
	}
	if c.SPPX <= 0 {
		c.SPPX = 1
	}
	if c.SPPY <= 0 {
		c.SPPY = 1
	}
	if c.WeightCap <= 0 {
		c.WeightCap = 4
	}
	if c.Gamma <= 0 {
		c.Gamma = DefaultGamma
	}
	if c.Workers <= 0 {
		c.Workers = workerCount()
	}
	if c.Differ == nil {
		c.Differ = defaultTileDiffer
	}
	if c.CalibFrames == 0 {
		c.CalibFrames = 30
	}
	return c
}

func workerCount() int {
	n := runtime.GOMAXPROCS(0) - 2
	if n < 4 {
		n = 4
	}
	return n
}

// Engine is the tile-parallel static-frame renderer.
type Engine struct {
	cfg    Config
	grid   tile.Grid
	router *router.Or
	acc    *accum.Grid
	gamma  Gamma

	prevAmplitude []float64
	currAmplitude []float64

	op OperandField

	dirty []bool

	frameCounter uint64
}

// New constructs an Engine for the given configuration.
func New(cfg Config) *Engine {
	cfg = cfg.withDefaults()
	g := tile.New(cfg.Width, cfg.Height, cfg.TileW, cfg.TileH)
	cfg.RouterConfig.CalibFrames = cfg.CalibFrames
	npix := cfg.Width * cfg.Height
	return &Engine{
		cfg:           cfg,
		grid:          g,
		router:        router.New(cfg.RouterConfig, len(g.Tiles)),
		acc:           accum.New(cfg.Width, cfg.Height),
		gamma:         NewGamma(cfg.Gamma),
		prevAmplitude: make([]float64, npix),
		currAmplitude: make([]float64, npix),
		op:            OperandField{Amplitude: make([]float64, npix)},
		dirty:         make([]bool, len(g.Tiles)),
	}
}

// Result is the output of one RenderNextFrame call.
type Result struct {
	Image                raster.Image
	DirtyMask            []bool
	CalibrationComplete  bool
}

// RenderNextFrame runs one full tile-parallel render pass: it renders
// every tile's supersampled amplitude, diffs it against the previous
// frame to route and mark dirty tiles, composes the output image, and
// advances the operand-field baseline while calibration is still open.
func (e *Engine) RenderNextFrame(ctx context.Context) (Result, error) {
	e.router.BeginFrame()
	e.frameCounter++

	for i := range e.currAmplitude {
		e.currAmplitude[i] = 0
	}

	epsilon := 0.0
	if e.router.Calibrated() {
		epsilon = e.cfg.RouterConfig.Epsilon
	}

	var nextTile int64 = -1
	grp, _ := errgroup.WithContext(ctx)
	for w := 0; w < e.cfg.Workers; w++ {
		grp.Go(func() error {
			rng := rand.New(rand.NewSource(int64(w) + 1))
			for {
				idx := int(atomic.AddInt64(&nextTile, 1))
				if idx >= len(e.grid.Tiles) {
					return nil
				}
				e.renderTile(e.grid.Tiles[idx], epsilon, rng)
			}
		})
	}
	if err := grp.Wait(); err != nil {
		return Result{}, err
	}

	img := e.compose()

	e.prevAmplitude, e.currAmplitude = e.currAmplitude, e.prevAmplitude

	calibrated := e.router.Calibrated()
	if !calibrated {
		n := float64(e.op.FramesAccumulated)
		for i, a := range e.prevAmplitude {
			e.op.Amplitude[i] = e.op.Amplitude[i]*n/(n+1) + a/(n+1)
		}
		e.op.FramesAccumulated++
	}

	for idx, tl := range e.grid.Tiles {
		if e.dirty[idx] {
			e.acc.ClearRegion(tl.X0, tl.Y0, tl.X1, tl.Y1)
		}
	}

	mask := make([]bool, len(e.dirty))
	copy(mask, e.dirty)

	return Result{Image: img, DirtyMask: mask, CalibrationComplete: calibrated}, nil
}

func (e *Engine) renderTile(tl tile.Tile, epsilon float64, rng *rand.Rand) {
	w := e.cfg.Width
	sppx, sppy := e.cfg.SPPX, e.cfg.SPPY
	nsub := float64(sppx * sppy)

	var changed int
	for y := tl.Y0; y < tl.Y1; y++ {
		for x := tl.X0; x < tl.X1; x++ {
			var sr, sg, sb float64
			for jy := 0; jy < sppy; jy++ {
				for jx := 0; jx < sppx; jx++ {
					var ox, oy float64
					if e.cfg.Jitter {
						ox, oy = rng.Float64(), rng.Float64()
					} else {
						ox, oy = 0.5, 0.5
					}
					sampleX := float64(x) + (float64(jx)+ox)/float64(sppx)
					normX := sampleX / float64(w)
					r, g, b := SampleWavelength(normX, e.gamma)
					sr += r
					sg += g
					sb += b
				}
			}
			r, g, b := sr/nsub, sg/nsub, sb/nsub
			amp := (absF(r) + absF(g) + absF(b)) / 3
			pix := y*w + x
			e.currAmplitude[pix] = amp

			e.acc.At(x, y).Add(r, g, b, 1, e.cfg.WeightCap)
		}
	}

	prevSlice := amplitudeSlice(e.prevAmplitude, tl, w)
	currSlice := amplitudeSlice(e.currAmplitude, tl, w)
	changed = e.cfg.Differ(prevSlice, currSlice, epsilon)

	percent := 0.0
	if n := tl.Pixels(); n > 0 {
		percent = 100 * float64(changed) / float64(n)
	}
	e.router.UpdateTileChange(tl.Index, percent)
	e.dirty[tl.Index] = e.router.Decide(tl.Index) == router.Offload
}

// amplitudeSlice extracts a tile's amplitude samples into a fresh
// contiguous slice (the backing amplitude buffers are row-major over the
// whole frame, not per-tile).
func amplitudeSlice(full []float64, tl tile.Tile, w int) []float64 {
	out := make([]float64, 0, tl.Pixels())
	for y := tl.Y0; y < tl.Y1; y++ {
		row := full[y*w+tl.X0 : y*w+tl.X1]
		out = append(out, row...)
	}
	return out
}

func (e *Engine) compose() raster.Image {
	img := raster.New(e.cfg.Width, e.cfg.Height)
	for y := 0; y < e.cfg.Height; y++ {
		for x := 0; x < e.cfg.Width; x++ {
			r, g, b := e.acc.At(x, y).ToPixel()
			img.Set(x, y, to255(b), to255(g), to255(r), 255)
		}
	}
	return img
}

func to255(v float64) byte {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	return byte(v*255 + 0.5)
}

// DirtyTiles returns the tiles marked dirty in the last RenderNextFrame
// call.
func (e *Engine) DirtyTiles() []tile.Tile {
	var out []tile.Tile
	for idx, d := range e.dirty {
		if d {
			out = append(out, e.grid.Tiles[idx])
		}
	}
	return out
}

// OperandFieldSnapshot returns a copy of the engine's learned baseline
// amplitude map.
func (e *Engine) OperandFieldSnapshot() OperandField {
	cp := make([]float64, len(e.op.Amplitude))
	copy(cp, e.op.Amplitude)
	return OperandField{Amplitude: cp, FramesAccumulated: e.op.FramesAccumulated}
}

// Calibrated reports whether the engine's router has left its
// calibration window.
func (e *Engine) Calibrated() bool { return e.router.Calibrated() }
