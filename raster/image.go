/*
DESCRIPTION
  image.go provides Image, a fixed-layout 4-channel top-down raster used
  throughout the capture and render fabric.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package raster provides the fixed-layout BGRA raster type shared by the
// capture and render paths, along with content fingerprinting and bilinear
// resizing over that raster.
package raster

// Image is a fixed-layout raster: width>0, height>0, Bytes has length
// width*height*4, channel order B,G,R,A, row-major top-down, no padding.
// A zero-value Image is not valid; use New or NewFromBytes to construct one.
type Image struct {
	Width, Height int
	Bytes         []byte
}

// New allocates an Image of the given size with all bytes zeroed except
// alpha, which is forced to 255 for every pixel per the raster invariant.
// If w or h is not positive, the returned Image has Ok()==false.
func New(w, h int) Image {
	if w <= 0 || h <= 0 {
		return Image{}
	}
	b := make([]byte, w*h*4)
	for i := 3; i < len(b); i += 4 {
		b[i] = 255
	}
	return Image{Width: w, Height: h, Bytes: b}
}

// NewFromBytes wraps an existing byte slice as an Image without copying.
// The caller must ensure len(b) == w*h*4; if it does not, the returned
// Image has Ok()==false.
func NewFromBytes(w, h int, b []byte) Image {
	if w <= 0 || h <= 0 || len(b) != w*h*4 {
		return Image{}
	}
	return Image{Width: w, Height: h, Bytes: b}
}

// Ok reports whether the Image satisfies the raster invariant: positive
// dimensions and a byte buffer of exactly Width*Height*4 bytes.
func (img Image) Ok() bool {
	return img.Width > 0 && img.Height > 0 && len(img.Bytes) == img.Width*img.Height*4
}

// Clone returns a deep copy of img.
func (img Image) Clone() Image {
	if !img.Ok() {
		return Image{}
	}
	b := make([]byte, len(img.Bytes))
	copy(b, img.Bytes)
	return Image{Width: img.Width, Height: img.Height, Bytes: b}
}

// At returns the B,G,R,A channel values of the pixel at (x,y). Behaviour
// is undefined if (x,y) is out of bounds; callers in the hot path are
// expected to stay within Width/Height, which is always the case when
// walking an Ok() image row-major.
func (img Image) At(x, y int) (b, g, r, a byte) {
	i := (y*img.Width + x) * 4
	return img.Bytes[i], img.Bytes[i+1], img.Bytes[i+2], img.Bytes[i+3]
}

// Set writes the B,G,R,A channel values of the pixel at (x,y).
func (img Image) Set(x, y int, b, g, r, a byte) {
	i := (y*img.Width + x) * 4
	img.Bytes[i], img.Bytes[i+1], img.Bytes[i+2], img.Bytes[i+3] = b, g, r, a
}

// BytesEqual reports whether a and b have identical dimensions and byte
// content. Mismatched sizes fail fast without a byte compare: identical-
// frame detection on mis-sized images returns "not identical" rather than
// panicking.
func BytesEqual(a, b Image) bool {
	if a.Width != b.Width || a.Height != b.Height || len(a.Bytes) != len(b.Bytes) {
		return false
	}
	for i := range a.Bytes {
		if a.Bytes[i] != b.Bytes[i] {
			return false
		}
	}
	return true
}
