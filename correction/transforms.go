/*
DESCRIPTION
  transforms.go provides the standard library of Transforms exposed by the
  CLI: grayscale (BT.601 luma), gamma, brightness, contrast and pixelate.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package correction

import (
	"math"

	"github.com/ausocean/framefab/raster"
)

// Grayscale returns a Transform that applies BT.601 luma
// (0.299R + 0.587G + 0.114B) to every pixel, writing the result to all
// three color channels.
func Grayscale() Transform {
	return func(img raster.Image) {
		b := img.Bytes
		for i := 0; i+3 < len(b); i += 4 {
			bb, gg, rr := float64(b[i]), float64(b[i+1]), float64(b[i+2])
			y := 0.114*bb + 0.587*gg + 0.299*rr
			v := clampByte(y)
			b[i], b[i+1], b[i+2] = v, v, v
		}
	}
}

// Gamma returns a Transform applying (c/255)^(1/g) * 255 per channel.
func Gamma(g float64) Transform {
	if g <= 0 {
		g = 1
	}
	inv := 1 / g
	var lut [256]byte
	for i := range lut {
		lut[i] = clampByte(math.Pow(float64(i)/255, inv) * 255)
	}
	return func(img raster.Image) {
		b := img.Bytes
		for i := 0; i+2 < len(b); i += 4 {
			b[i] = lut[b[i]]
			b[i+1] = lut[b[i+1]]
			b[i+2] = lut[b[i+2]]
		}
	}
}

// Brightness returns a Transform that adds delta in [-1,1] (scaled by 255)
// to every color channel.
func Brightness(delta float64) Transform {
	add := delta * 255
	return func(img raster.Image) {
		b := img.Bytes
		for i := 0; i+2 < len(b); i += 4 {
			b[i] = clampByte(float64(b[i]) + add)
			b[i+1] = clampByte(float64(b[i+1]) + add)
			b[i+2] = clampByte(float64(b[i+2]) + add)
		}
	}
}

// Contrast returns a Transform that scales every color channel around the
// midpoint 127.5 by factor c (c>=0).
func Contrast(c float64) Transform {
	if c < 0 {
		c = 0
	}
	return func(img raster.Image) {
		b := img.Bytes
		for i := 0; i+2 < len(b); i += 4 {
			b[i] = clampByte((float64(b[i])-127.5)*c + 127.5)
			b[i+1] = clampByte((float64(b[i+1])-127.5)*c + 127.5)
			b[i+2] = clampByte((float64(b[i+2])-127.5)*c + 127.5)
		}
	}
}

// Pixelate returns a Transform that box-averages n x n blocks (n>=2),
// writing the block average back over every pixel in the block.
func Pixelate(n int) Transform {
	if n < 2 {
		n = 2
	}
	return func(img raster.Image) {
		w, h := img.Width, img.Height
		for by := 0; by < h; by += n {
			y1 := by + n
			if y1 > h {
				y1 = h
			}
			for bx := 0; bx < w; bx += n {
				x1 := bx + n
				if x1 > w {
					x1 = w
				}
				var sb, sg, sr, count int
				for y := by; y < y1; y++ {
					for x := bx; x < x1; x++ {
						bb, gg, rr, _ := img.At(x, y)
						sb += int(bb)
						sg += int(gg)
						sr += int(rr)
						count++
					}
				}
				if count == 0 {
					continue
				}
				ab := byte(sb / count)
				ag := byte(sg / count)
				ar := byte(sr / count)
				for y := by; y < y1; y++ {
					for x := bx; x < x1; x++ {
						_, _, _, a := img.At(x, y)
						img.Set(x, y, ab, ag, ar, a)
					}
				}
			}
		}
	}
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
