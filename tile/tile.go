/*
DESCRIPTION
  tile.go provides Grid, dividing a W x H frame into rectangular tiles in
  row-major order.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package tile divides a frame into rectangular tiles for the
// tile-parallel static-frame render engine.
package tile

// Tile describes one rectangular region: [X0,X1) x [Y0,Y1).
type Tile struct {
	Index  int
	X0, Y0 int
	X1, Y1 int
}

// Width returns the tile's pixel width.
func (t Tile) Width() int { return t.X1 - t.X0 }

// Height returns the tile's pixel height.
func (t Tile) Height() int { return t.Y1 - t.Y0 }

// Pixels returns the tile's pixel count.
func (t Tile) Pixels() int { return t.Width() * t.Height() }

// Grid is a fixed tiling of a W x H frame, computed once per resolution
// change.
type Grid struct {
	W, H         int
	TileW, TileH int
	TilesX       int
	TilesY       int
	Tiles        []Tile
}

// New builds a Grid dividing a w x h frame into tileW x tileH tiles,
// row-major. The last column/row may be narrower/shorter than
// tileW/tileH. Returns a zero Grid if any dimension is not positive.
func New(w, h, tileW, tileH int) Grid {
	if w <= 0 || h <= 0 || tileW <= 0 || tileH <= 0 {
		return Grid{}
	}
	tilesX := (w + tileW - 1) / tileW
	tilesY := (h + tileH - 1) / tileH

	g := Grid{W: w, H: h, TileW: tileW, TileH: tileH, TilesX: tilesX, TilesY: tilesY}
	g.Tiles = make([]Tile, 0, tilesX*tilesY)
	for ty := 0; ty < tilesY; ty++ {
		for tx := 0; tx < tilesX; tx++ {
			x0 := tx * tileW
			y0 := ty * tileH
			x1 := x0 + tileW
			if x1 > w {
				x1 = w
			}
			y1 := y0 + tileH
			if y1 > h {
				y1 = h
			}
			g.Tiles = append(g.Tiles, Tile{
				Index: ty*tilesX + tx,
				X0:    x0, Y0: y0, X1: x1, Y1: y1,
			})
		}
	}
	return g
}
