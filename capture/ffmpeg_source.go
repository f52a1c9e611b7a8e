/*
DESCRIPTION
  ffmpeg_source.go provides FfmpegSource, a capture.Source that grabs one
  raw frame per call by invoking ffmpeg's screen-grab demuxer as a
  short-lived subprocess.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package capture

import (
	"bytes"
	"fmt"
	"os/exec"
	"strings"

	"github.com/ausocean/utils/logging"

	"github.com/ausocean/framefab/raster"
)

// Used to indicate package in logging.
const pkgFfmpeg = "ffmpeg-source: "

// FfmpegSource captures a single still frame per call by shelling out to
// ffmpeg's platform screen-grab demuxer (x11grab/avfoundation/gdigrab,
// selected by Format) and reading exactly Width*Height*4 raw BGRA bytes
// from its stdout. Each Capture call starts and tears down its own
// short-lived ffmpeg process: the capture interface this fabric consumes
// is call-and-return, not a long-lived streaming reader.
type FfmpegSource struct {
	log    logging.Logger
	Format string // e.g. "x11grab", "avfoundation", "gdigrab".
	Device string // platform-specific device/display spec, e.g. ":0.0".
	Width  int
	Height int
}

// NewFfmpegSource returns an FfmpegSource for the given demuxer format,
// device spec and frame size.
func NewFfmpegSource(l logging.Logger, format, device string, w, h int) *FfmpegSource {
	return &FfmpegSource{log: l, Format: format, Device: device, Width: w, Height: h}
}

// Capture runs ffmpeg once and returns the single captured frame. The
// display argument is accepted to satisfy Source but the concrete
// display/device string is set at construction; multi-display selection
// is handled by a DisplayEnumerator upstream of this source.
func (s *FfmpegSource) Capture(display uint32) raster.Image {
	args := []string{
		"-f", s.Format,
		"-video_size", fmt.Sprintf("%dx%d", s.Width, s.Height),
		"-i", s.Device,
		"-frames:v", "1",
		"-pix_fmt", "bgra",
		"-f", "rawvideo",
		"-",
	}
	s.log.Debug(pkgFfmpeg+"capturing frame", "args", strings.Join(args, " "))

	cmd := exec.Command("ffmpeg", args...)
	var out, errBuf bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errBuf

	if err := cmd.Run(); err != nil {
		s.log.Warning(pkgFfmpeg+"capture failed", "error", err.Error(), "stderr", errBuf.String())
		return raster.Image{}
	}

	want := s.Width * s.Height * 4
	buf := out.Bytes()
	if len(buf) < want {
		s.log.Warning(pkgFfmpeg+"short read from ffmpeg", "got", len(buf), "want", want)
		return raster.Image{}
	}

	img := raster.New(s.Width, s.Height)
	copy(img.Bytes, buf[:want])
	return img
}

// Close is a no-op: each Capture call owns its own subprocess lifetime.
func (s *FfmpegSource) Close() error { return nil }
