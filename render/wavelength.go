/*
DESCRIPTION
  wavelength.go provides the piecewise visible-spectrum wavelength->RGB
  mapping, intensity taper and gamma correction used by the synthetic test-frame
  render path.

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

import "math"

// WavelengthMin and WavelengthMax bound the visible-spectrum gradient
// rendered by the test-frame engine.
const (
	WavelengthMin = 380.0
	WavelengthMax = 750.0
)

// DefaultGamma is the default gamma correction applied after the
// intensity taper.
const DefaultGamma = 2.2

// wavelengthToRGB converts a visible-spectrum wavelength in nm to an
// (r,g,b) triple in [0,1] using the standard piecewise approximation of
// the CIE visible spectrum.
func wavelengthToRGB(lambda float64) (r, g, b float64) {
	switch {
	case lambda >= 380 && lambda < 440:
		r, g, b = -(lambda-440)/60, 0, 1
	case lambda >= 440 && lambda < 490:
		r, g, b = 0, (lambda-440)/50, 1
	case lambda >= 490 && lambda < 510:
		r, g, b = 0, 1, -(lambda-510)/20
	case lambda >= 510 && lambda < 580:
		r, g, b = (lambda-510)/70, 1, 0
	case lambda >= 580 && lambda < 645:
		r, g, b = 1, -(lambda-645)/65, 0
	case lambda >= 645 && lambda <= 750:
		r, g, b = 1, 0, 0
	default:
		r, g, b = 0, 0, 0
	}
	return clamp01(r), clamp01(g), clamp01(b)
}

// intensityTaper returns I(lambda): the edge falloff applied before
// gamma correction.
func intensityTaper(lambda float64) float64 {
	switch {
	case lambda >= 380 && lambda < 420:
		return 0.3 + 0.7*(lambda-380)/40
	case lambda > 701 && lambda <= 750:
		return 0.3 + 0.7*(750-lambda)/49
	default:
		return 1
	}
}

// Gamma holds the inverse gamma exponent. It keeps no LUT: Gamma.Apply
// applies the power directly since channel values are continuous floats
// here (the discretization into bytes happens later when composing the
// output image).
type Gamma struct {
	invGamma float64
}

// NewGamma returns a Gamma helper for exponent g (default 2.2 if g<=0).
func NewGamma(g float64) Gamma {
	if g <= 0 {
		g = DefaultGamma
	}
	return Gamma{invGamma: 1 / g}
}

// Apply raises each channel to the power 1/gamma.
func (gm Gamma) Apply(r, g, b float64) (float64, float64, float64) {
	return math.Pow(clamp01(r), gm.invGamma), math.Pow(clamp01(g), gm.invGamma), math.Pow(clamp01(b), gm.invGamma)
}

// SampleWavelength converts a normalized x coordinate in [0,1) to a
// wavelength in [WavelengthMin, WavelengthMax], then to a gamma-corrected,
// intensity-tapered (r,g,b) triple in [0,1].
func SampleWavelength(normX float64, gm Gamma) (r, g, b float64) {
	lambda := WavelengthMin + normX*(WavelengthMax-WavelengthMin)
	r, g, b = wavelengthToRGB(lambda)
	i := intensityTaper(lambda)
	r, g, b = r*i, g*i, b*i
	return gm.Apply(r, g, b)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
