/*
DESCRIPTION
  resize.go provides a bilinear BGRA->BGRA resize that preserves the
  top-down, no-padding raster layout.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package raster

// Resize performs a bilinear resize of src to the given dimensions.
// Destination pixel centers at (x+0.5, y+0.5) map to source coordinates
// via ((x+0.5)*W/newW - 0.5, (y+0.5)*H/newH - 0.5), clamped to
// [0, W-1]x[0, H-1]; alpha is forced to 255 in the output. If src is not
// Ok() or newW/newH are not positive, the returned Image has Ok()==false.
func Resize(src Image, newW, newH int) Image {
	if !src.Ok() || newW <= 0 || newH <= 0 {
		return Image{}
	}

	dst := New(newW, newH)
	w, h := float64(src.Width), float64(src.Height)
	sx := w / float64(newW)
	sy := h / float64(newH)

	for y := 0; y < newH; y++ {
		srcY := (float64(y)+0.5)*sy - 0.5
		srcY = clamp(srcY, 0, h-1)
		y0 := int(srcY)
		y1 := y0 + 1
		if y1 > src.Height-1 {
			y1 = src.Height - 1
		}
		fy := srcY - float64(y0)

		for x := 0; x < newW; x++ {
			srcX := (float64(x)+0.5)*sx - 0.5
			srcX = clamp(srcX, 0, w-1)
			x0 := int(srcX)
			x1 := x0 + 1
			if x1 > src.Width-1 {
				x1 = src.Width - 1
			}
			fx := srcX - float64(x0)

			b00, g00, r00, _ := src.At(x0, y0)
			b10, g10, r10, _ := src.At(x1, y0)
			b01, g01, r01, _ := src.At(x0, y1)
			b11, g11, r11, _ := src.At(x1, y1)

			b := bilerp(float64(b00), float64(b10), float64(b01), float64(b11), fx, fy)
			g := bilerp(float64(g00), float64(g10), float64(g01), float64(g11), fx, fy)
			r := bilerp(float64(r00), float64(r10), float64(r01), float64(r11), fx, fy)

			dst.Set(x, y, clampByte(b), clampByte(g), clampByte(r), 255)
		}
	}
	return dst
}

func bilerp(v00, v10, v01, v11, fx, fy float64) float64 {
	top := v00 + (v10-v00)*fx
	bot := v01 + (v11-v01)*fx
	return top + (bot-top)*fy
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampByte(v float64) byte {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return byte(v + 0.5)
}
