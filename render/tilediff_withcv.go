//go:build withcv

/*
DESCRIPTION
  tilediff_withcv.go provides a gocv-accelerated TileDiffer, used in place
  of DefaultTileDiffer when the engine is built with the "withcv" tag.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package render

import (
	"math"

	"gocv.io/x/gocv"
)

// init swaps the package's default TileDiffer for the gocv-accelerated
// one whenever this file is compiled in.
func init() {
	defaultTileDiffer = CvTileDiffer
}

// CvTileDiffer counts changed pixels via gocv's AbsDiff + Threshold +
// CountNonZero, avoiding a Go-level loop over the tile's samples. Falls
// back to DefaultTileDiffer if the mats fail to build (e.g. empty tile).
func CvTileDiffer(prevAmp, curAmp []float64, epsilon float64) int {
	n := len(curAmp)
	if n == 0 || n != len(prevAmp) {
		return DefaultTileDiffer(prevAmp, curAmp, epsilon)
	}

	prev := make([]float32, n)
	curr := make([]float32, n)
	for i := range curAmp {
		prev[i] = float32(prevAmp[i])
		curr[i] = float32(curAmp[i])
	}

	prevMat, err := gocv.NewMatFromBytes(1, n, gocv.MatTypeCV32F, float32SliceToBytes(prev))
	if err != nil {
		return DefaultTileDiffer(prevAmp, curAmp, epsilon)
	}
	defer prevMat.Close()
	currMat, err := gocv.NewMatFromBytes(1, n, gocv.MatTypeCV32F, float32SliceToBytes(curr))
	if err != nil {
		return DefaultTileDiffer(prevAmp, curAmp, epsilon)
	}
	defer currMat.Close()

	diff := gocv.NewMat()
	defer diff.Close()
	gocv.AbsDiff(prevMat, currMat, &diff)

	mask := gocv.NewMat()
	defer mask.Close()
	gocv.Threshold(diff, &mask, float32(epsilon), 1, gocv.ThresholdBinary)

	return gocv.CountNonZero(mask)
}

func float32SliceToBytes(f []float32) []byte {
	b := make([]byte, len(f)*4)
	for i, v := range f {
		bits := math.Float32bits(v)
		b[i*4] = byte(bits)
		b[i*4+1] = byte(bits >> 8)
		b[i*4+2] = byte(bits >> 16)
		b[i*4+3] = byte(bits >> 24)
	}
	return b
}
