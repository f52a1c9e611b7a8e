/*
DESCRIPTION
  config.go provides Config, the flat struct holding the CLI-level capture,
  gate, correction and sink settings plus the adaptive-gating on/off
  switch, adapted from revid/config/config.go's "one flat struct plus
  Validate/LogInvalidField" shape. Activity-tracker thresholds, frame-pool
  retention and render-engine settings are not part of it.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package config provides Config, the flat configuration struct for a
// framefab capture run.
package config

import (
	"fmt"

	"github.com/ausocean/utils/logging"

	"github.com/ausocean/framefab/device"
)

// Config holds every tunable for a single capture run.
type Config struct {
	// Logger holds an implementation of the Logger interface. This must be
	// set before Validate is called.
	Logger logging.Logger

	// LogLevel is the logging verbosity level. Valid values are defined by
	// the enums in the logging package: logging.Debug, logging.Info,
	// logging.Warning, logging.Error, logging.Fatal.
	LogLevel int8

	// Display selects which enumerated monitor to capture from.
	Display uint32

	// Live enables a preview window alongside capture.
	Live bool

	// FPS is the target tick rate.
	FPS uint

	// Seconds is the capture duration; <=0 means a single snapshot.
	Seconds float64

	// ResizeWidth and ResizeHeight resize every captured frame when both
	// are nonzero.
	ResizeWidth  int
	ResizeHeight int

	// RecordBase, when nonempty, is the path prefix non-duplicate frames
	// are written under as RecordBase_%06d.bmp.
	RecordBase string

	// NoStaticGate skips the preflight stability wait.
	NoStaticGate bool

	// StaticSec is the required stable-seconds threshold for the gate.
	StaticSec float64

	// StaticTimeout is the gate's overall timeout in seconds.
	StaticTimeout float64

	// StaticTolerant selects signature-only equality in the gate, skipping
	// the full byte compare.
	StaticTolerant bool

	// Grayscale enables a persistent BT.601 luma correction.
	Grayscale bool

	// Gamma, if nonzero, applies a persistent gamma correction.
	Gamma float64

	// Brightness is an additive correction in [-1, 1].
	Brightness float64

	// Contrast is a multiplicative correction around 0.5; 0 means
	// "unset", not "zero contrast".
	Contrast float64

	// Pixelate, if >=2, applies a persistent box-pixelate correction with
	// this block size.
	Pixelate uint

	// NoAdaptive disables the activity tracker's dedupe gating.
	NoAdaptive bool

	// MetricsPath, when nonempty, is the JSONL metrics output path.
	MetricsPath string

	// Guard enables the scope timing/memory wrapper around orchestrator
	// phases.
	Guard bool
}

// Validate defaults any bad or unset fields to their documented default,
// logging each defaulting decision via LogInvalidField, and collects them
// into a device.MultiError (never a hard failure for a defaultable
// field). It returns a plain error only for configuration that cannot be
// defaulted: currently, a recording run with an empty RecordBase isn't
// possible to reach via the CLI parser, so the only such condition is a
// nil Logger, which is a programmer error rather than a config defaulting
// decision.
func (c *Config) Validate() error {
	if c.Logger == nil {
		return fmt.Errorf("config: Logger must be set")
	}

	var errs device.MultiError

	if c.FPS == 0 {
		c.LogInvalidField("FPS", uint(30))
		errs = append(errs, errBadFPS)
		c.FPS = 30
	}
	if c.StaticSec <= 0 {
		c.LogInvalidField("StaticSec", 1.0)
		errs = append(errs, errBadStaticSec)
		c.StaticSec = 1.0
	}
	if c.StaticTimeout <= 0 {
		c.LogInvalidField("StaticTimeout", 10.0)
		errs = append(errs, errBadStaticTimeout)
		c.StaticTimeout = 10.0
	}
	if c.Gamma < 0 {
		c.LogInvalidField("Gamma", 1.0)
		errs = append(errs, errBadGamma)
		c.Gamma = 1.0
	}
	if c.Contrast < 0 {
		c.LogInvalidField("Contrast", 1.0)
		errs = append(errs, errBadContrast)
		c.Contrast = 1.0
	}
	if c.Pixelate == 1 {
		c.LogInvalidField("Pixelate", uint(2))
		errs = append(errs, errBadPixelate)
		c.Pixelate = 2
	}

	if len(errs) != 0 {
		return errs
	}
	return nil
}

// LogInvalidField logs a defaulting decision for a bad or unset field.
func (c *Config) LogInvalidField(name string, def interface{}) {
	c.Logger.Info(name+" bad or unset, defaulting", name, def)
}

var (
	errBadFPS            = fmt.Errorf("FPS bad or unset, defaulting")
	errBadStaticSec      = fmt.Errorf("StaticSec bad or unset, defaulting")
	errBadStaticTimeout  = fmt.Errorf("StaticTimeout bad or unset, defaulting")
	errBadGamma          = fmt.Errorf("Gamma negative, defaulting")
	errBadContrast       = fmt.Errorf("Contrast negative, defaulting")
	errBadPixelate       = fmt.Errorf("Pixelate must be >=2, defaulting")
)
