/*
DESCRIPTION
  source.go defines Source, the capture-side boundary interface, and
  Monitor/display enumeration.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package capture drives the capture->dedupe->coalesce->retain->emit loop:
// CaptureOrchestrator pulls raw frames from a Source, classifies them with
// an activity tracker, dedupes via content fingerprint, feeds them through
// a correction queue, and hands changed frames to a FramePool and sinks.
package capture

import "github.com/ausocean/framefab/raster"

// Source is the consumed capture boundary: capture(display_index) ->
// RawImage. An implementation returns an image with Ok()==false on
// failure (a transient capture error); it never panics or blocks
// indefinitely.
type Source interface {
	// Capture grabs a single frame from the given display index.
	Capture(display uint32) raster.Image

	// Close releases any resources (process handles, file handles, watches)
	// held by the source.
	Close() error
}

// Monitor describes one enumerated display.
type Monitor struct {
	ID      uint32
	Name    string
	X, Y    int
	Width   int
	Height  int
	Primary bool
}

// DisplayEnumerator enumerates available displays/monitors.
type DisplayEnumerator interface {
	Enumerate() ([]Monitor, error)
	ByIndex(i uint32) (Monitor, bool)
}
