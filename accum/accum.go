/*
DESCRIPTION
  accum.go provides Grid, a per-pixel weighted-average accumulator grid
  with a weight cap, implementing the render engine's sharpening clamp.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package accum provides the per-pixel weighted-average accumulator used
// by the static-frame render engine for temporal sharpening with bounded
// memory.
package accum

// Cell is one accumulator cell: running weighted sums plus total weight.
type Cell struct {
	R, G, B, W float64
}

// Add folds in a sample with the given weight, then rescales the cell so
// that W never exceeds cap, preserving the running average (R/W, G/W,
// B/W).
func (c *Cell) Add(r, g, b, weight, wcap float64) {
	c.R += r * weight
	c.G += g * weight
	c.B += b * weight
	c.W += weight
	if c.W > wcap {
		scale := wcap / c.W
		c.R *= scale
		c.G *= scale
		c.B *= scale
		c.W = wcap
	}
}

// ToPixel returns the cell's running average, or (0,0,0) if W==0.
func (c *Cell) ToPixel() (r, g, b float64) {
	if c.W == 0 {
		return 0, 0, 0
	}
	return c.R / c.W, c.G / c.W, c.B / c.W
}

// Clear zeros the cell.
func (c *Cell) Clear() {
	*c = Cell{}
}

// Grid is a W x H array of accumulator cells, row-major.
type Grid struct {
	W, H  int
	Cells []Cell
}

// New allocates a zeroed Grid of the given size.
func New(w, h int) *Grid {
	if w <= 0 || h <= 0 {
		return &Grid{}
	}
	return &Grid{W: w, H: h, Cells: make([]Cell, w*h)}
}

// At returns a pointer to the cell at (x,y) for in-place mutation.
func (g *Grid) At(x, y int) *Cell {
	return &g.Cells[y*g.W+x]
}

// ClearRegion zeros all cells in [x0,x1) x [y0,y1).
func (g *Grid) ClearRegion(x0, y0, x1, y1 int) {
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			g.At(x, y).Clear()
		}
	}
}
