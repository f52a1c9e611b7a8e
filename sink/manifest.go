/*
DESCRIPTION
  manifest.go provides WriteManifest, an FFmpeg concat-demuxer manifest
  exporter over a sequence of written frame paths and repeat counts.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package sink

import (
	"bufio"
	"fmt"
	"os"
)

// ManifestEntry is one recorded frame: its written path and the number of
// ticks it was held (its coalesced run length).
type ManifestEntry struct {
	Path   string
	Repeat uint64
}

// WriteManifest writes an FFmpeg concat-demuxer manifest: each entry
// becomes a "file" directive followed by a "duration" directive of
// repeat/fps seconds. FFmpeg's concat demuxer ignores the last entry's
// duration, so per its documented idiom the final file line is repeated
// once more without a trailing duration line.
func WriteManifest(path string, entries []ManifestEntry, fps float64) error {
	if fps <= 0 {
		return fmt.Errorf("sink: invalid fps %v for manifest %s", fps, path)
	}
	if len(entries) == 0 {
		return fmt.Errorf("sink: no entries to write to manifest %s", path)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("sink: could not create manifest %s: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, e := range entries {
		fmt.Fprintf(w, "file '%s'\n", e.Path)
		fmt.Fprintf(w, "duration %f\n", float64(e.Repeat)/fps)
	}
	fmt.Fprintf(w, "file '%s'\n", entries[len(entries)-1].Path)

	return w.Flush()
}
