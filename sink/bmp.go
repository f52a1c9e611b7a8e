/*
DESCRIPTION
  bmp.go provides WriteBMP, encoding a top-down raster.Image as a 32-bit
  BMP (BITMAPINFOHEADER, BI_RGB) written in the file format's native
  bottom-up row order.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package sink provides the output boundaries of the capture/render
// fabric: a BMP frame writer, an FFmpeg concat-manifest exporter, and a
// JSONL metrics stream.
package sink

import (
	"encoding/binary"
	"fmt"
	"os"

	"github.com/ausocean/framefab/raster"
)

const (
	fileHeaderSize = 14
	infoHeaderSize = 40
	bmpBitCount    = 32
	bmpCompression = 0 // BI_RGB
)

// WriteBMP writes img to path as a 32-bit BMP. img is stored top-down in
// memory (row 0 first); the BMP format stores rows bottom-up, so rows are
// emitted in reverse order here.
func WriteBMP(path string, img raster.Image) error {
	if !img.Ok() {
		return fmt.Errorf("sink: cannot write invalid image to %s", path)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("sink: could not create %s: %w", path, err)
	}
	defer f.Close()

	w, h := img.Width, img.Height
	rowBytes := w * 4
	pixelDataSize := rowBytes * h
	fileSize := fileHeaderSize + infoHeaderSize + pixelDataSize

	buf := make([]byte, 0, fileSize)

	// BITMAPFILEHEADER.
	buf = append(buf, 'B', 'M')
	buf = appendU32(buf, uint32(fileSize))
	buf = appendU32(buf, 0) // Reserved.
	buf = appendU32(buf, fileHeaderSize+infoHeaderSize)

	// BITMAPINFOHEADER.
	buf = appendU32(buf, infoHeaderSize)
	buf = appendI32(buf, int32(w))
	buf = appendI32(buf, int32(h)) // Positive height: bottom-up convention.
	buf = appendU16(buf, 1)        // Planes.
	buf = appendU16(buf, bmpBitCount)
	buf = appendU32(buf, bmpCompression)
	buf = appendU32(buf, uint32(pixelDataSize))
	buf = appendI32(buf, 0) // XPelsPerMeter.
	buf = appendI32(buf, 0) // YPelsPerMeter.
	buf = appendU32(buf, 0) // ClrUsed.
	buf = appendU32(buf, 0) // ClrImportant.

	for y := h - 1; y >= 0; y-- {
		row := img.Bytes[y*rowBytes : (y+1)*rowBytes]
		buf = append(buf, row...)
	}

	if _, err := f.Write(buf); err != nil {
		return fmt.Errorf("sink: could not write %s: %w", path, err)
	}
	return nil
}

func appendU32(b []byte, v uint32) []byte {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], v)
	return append(b, tmp[:]...)
}

func appendI32(b []byte, v int32) []byte {
	return appendU32(b, uint32(v))
}

func appendU16(b []byte, v uint16) []byte {
	var tmp [2]byte
	binary.LittleEndian.PutUint16(tmp[:], v)
	return append(b, tmp[:]...)
}
