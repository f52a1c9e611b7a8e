package render

import "testing"

func TestWavelengthToRGBBlueAtMin(t *testing.T) {
	r, g, b := wavelengthToRGB(WavelengthMin)
	if b != 1 {
		t.Fatalf("expected full blue at min wavelength, got b=%v", b)
	}
	if r != 1 {
		t.Fatalf("expected full red (violet) at min wavelength, got r=%v", r)
	}
	_ = g
}

func TestWavelengthToRGBRedAtMax(t *testing.T) {
	r, g, b := wavelengthToRGB(WavelengthMax)
	if r != 1 || g != 0 || b != 0 {
		t.Fatalf("expected pure red at max wavelength, got (%v,%v,%v)", r, g, b)
	}
}

func TestWavelengthToRGBOutOfRangeIsBlack(t *testing.T) {
	r, g, b := wavelengthToRGB(200)
	if r != 0 || g != 0 || b != 0 {
		t.Fatalf("expected black outside visible range, got (%v,%v,%v)", r, g, b)
	}
}

func TestIntensityTaperEdgesBelowOne(t *testing.T) {
	if v := intensityTaper(WavelengthMin); v >= 1 {
		t.Fatalf("expected tapered intensity at min edge, got %v", v)
	}
	if v := intensityTaper(WavelengthMax); v >= 1 {
		t.Fatalf("expected tapered intensity at max edge, got %v", v)
	}
	if v := intensityTaper(550); v != 1 {
		t.Fatalf("expected full intensity mid-spectrum, got %v", v)
	}
}

func TestGammaApplyIdentityAtGammaOne(t *testing.T) {
	gm := NewGamma(1)
	r, g, b := gm.Apply(0.5, 0.25, 0.75)
	if r != 0.5 || g != 0.25 || b != 0.75 {
		t.Fatalf("expected identity at gamma 1, got (%v,%v,%v)", r, g, b)
	}
}

func TestGammaZeroFallsBackToDefault(t *testing.T) {
	gm := NewGamma(0)
	if gm.invGamma != 1/DefaultGamma {
		t.Fatalf("expected default gamma fallback, got invGamma=%v", gm.invGamma)
	}
}

func TestSampleWavelengthClampsToUnitRange(t *testing.T) {
	gm := NewGamma(DefaultGamma)
	for _, x := range []float64{0, 0.25, 0.5, 0.75, 1} {
		r, g, b := SampleWavelength(x, gm)
		for _, v := range []float64{r, g, b} {
			if v < 0 || v > 1 {
				t.Fatalf("channel out of unit range at x=%v: %v", x, v)
			}
		}
	}
}

func TestClamp01(t *testing.T) {
	if clamp01(-1) != 0 {
		t.Fatalf("expected clamp to 0")
	}
	if clamp01(2) != 1 {
		t.Fatalf("expected clamp to 1")
	}
	if clamp01(0.5) != 0.5 {
		t.Fatalf("expected untouched mid value")
	}
}
