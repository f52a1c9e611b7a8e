/*
DESCRIPTION
  export.go provides RepeatsFor and Pool.ExportRecent, which expand a
  coalesced run of retained frames back out to real-time duration for a
  video-manifest exporter.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package framepool

import "math"

// RepeatsFor computes how many copies of a frame's image must be emitted
// so that a coalesced static run expands back to real-time duration:
// max(1, round((t_end-t_start)*fps)).
func RepeatsFor(f *Frame, fps float64) int {
	n := int(math.Round((f.TEnd - f.TStart) * fps))
	if n < 1 {
		n = 1
	}
	return n
}

// WriteFunc is a minimal image-sink signature used by ExportRecent so
// callers needn't satisfy a wider sink interface just to export.
type WriteFunc func(f *Frame) error

// ExportRecent writes repeats := RepeatsFor(f, fps) copies of every
// frame's image in the lastSeconds snapshot, in chronological order. The
// total number of writes equals the sum of repeats across the snapshot,
// preserving the original temporal extent to within one frame.
func (p *Pool) ExportRecent(lastSeconds, fps float64, write WriteFunc) (int, error) {
	frames := p.SnapshotRecent(lastSeconds)
	var written int
	for _, f := range frames {
		n := RepeatsFor(f, fps)
		for i := 0; i < n; i++ {
			if err := write(f); err != nil {
				return written, err
			}
			written++
		}
	}
	return written, nil
}
