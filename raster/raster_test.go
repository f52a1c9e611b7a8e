package raster

import "testing"

func solid(w, h int, b, g, r byte) Image {
	img := New(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, b, g, r, 255)
		}
	}
	return img
}

func TestNewInvariant(t *testing.T) {
	img := New(4, 3)
	if !img.Ok() {
		t.Fatalf("expected Ok image")
	}
	if len(img.Bytes) != 4*3*4 {
		t.Fatalf("bad buffer length: %d", len(img.Bytes))
	}
	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			_, _, _, a := img.At(x, y)
			if a != 255 {
				t.Fatalf("alpha not 255 at (%d,%d): %d", x, y, a)
			}
		}
	}
}

func TestNewInvalid(t *testing.T) {
	for _, tc := range []struct{ w, h int }{{0, 5}, {5, 0}, {-1, 5}} {
		if (New(tc.w, tc.h)).Ok() {
			t.Fatalf("expected invalid image for %v", tc)
		}
	}
}

func TestSignatureDeterminism(t *testing.T) {
	img := solid(8, 8, 10, 20, 30)
	s1 := Sign(img)
	s2 := Sign(img.Clone())
	if s1 != s2 {
		t.Fatalf("signature not deterministic: %+v vs %+v", s1, s2)
	}
}

func TestSignatureSoundness(t *testing.T) {
	a := solid(4, 4, 1, 2, 3)
	b := a.Clone()
	sa, sb := Sign(a), Sign(b)
	if !Identical(a, b, sa, sb) {
		t.Fatalf("expected identical clones")
	}
	if !SignatureEqual(sa, sb) {
		t.Fatalf("soundness violated: identical implies signature-equal")
	}
}

func TestSignatureSensitivity(t *testing.T) {
	a := solid(4, 4, 1, 2, 3)
	b := a.Clone()
	b.Bytes[0] ^= 0xFF
	sa, sb := Sign(a), Sign(b)
	if Identical(a, b, sa, sb) {
		t.Fatalf("single byte difference should break identity")
	}
}

func TestIdenticalSizeMismatch(t *testing.T) {
	a := solid(4, 4, 1, 2, 3)
	b := solid(4, 5, 1, 2, 3)
	sa, sb := Sign(a), Sign(b)
	if Identical(a, b, sa, sb) {
		t.Fatalf("mismatched sizes must not be identical")
	}
}

func TestResizeIdentity(t *testing.T) {
	src := solid(10, 10, 5, 128, 250)
	dst := Resize(src, 10, 10)
	if !dst.Ok() {
		t.Fatalf("expected valid resize output")
	}
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			b0, g0, r0, _ := src.At(x, y)
			b1, g1, r1, _ := dst.At(x, y)
			if absDiff(b0, b1) > 1 || absDiff(g0, g1) > 1 || absDiff(r0, r1) > 1 {
				t.Fatalf("identity resize drifted at (%d,%d): (%d,%d,%d) vs (%d,%d,%d)", x, y, b0, g0, r0, b1, g1, r1)
			}
		}
	}
}

func absDiff(a, b byte) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}

func TestResizeTopDown(t *testing.T) {
	src := solid(4, 4, 1, 2, 3)
	dst := Resize(src, 6, 3)
	if !dst.Ok() {
		t.Fatalf("expected valid resize")
	}
	if len(dst.Bytes) != 6*3*4 {
		t.Fatalf("bad resize buffer length: %d", len(dst.Bytes))
	}
	for y := 0; y < 3; y++ {
		for x := 0; x < 6; x++ {
			_, _, _, a := dst.At(x, y)
			if a != 255 {
				t.Fatalf("alpha forced to 255 violated at (%d,%d)", x, y)
			}
		}
	}
}

func TestResizeInvalid(t *testing.T) {
	src := solid(4, 4, 1, 2, 3)
	if (Resize(src, 0, 4)).Ok() {
		t.Fatalf("expected invalid resize for zero width")
	}
	if (Resize(Image{}, 4, 4)).Ok() {
		t.Fatalf("expected invalid resize for invalid source")
	}
}
