package gate

import (
	"testing"
	"time"

	"github.com/ausocean/framefab/raster"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time { return c.t }
func (c *fakeClock) Sleep(d time.Duration) { c.t = c.t.Add(d) }

type fixedCapturer struct{ img raster.Image }

func (f fixedCapturer) Capture(uint32) raster.Image { return f.img }

type alternatingCapturer struct {
	a, b raster.Image
	n    int
}

func (a *alternatingCapturer) Capture(uint32) raster.Image {
	a.n++
	if a.n%2 == 0 {
		return a.b
	}
	return a.a
}

func solid(w, h int, v byte) raster.Image {
	img := raster.New(w, h)
	for i := 0; i < len(img.Bytes); i += 4 {
		img.Bytes[i] = v
	}
	return img
}

func TestGatePassesOnStableImage(t *testing.T) {
	clk := &fakeClock{t: time.Unix(0, 0)}
	img := solid(8, 8, 5)
	res := Run(fixedCapturer{img}, Config{
		Display:               1,
		FPS:                   30,
		RequiredStaticSeconds: 1.0,
		TimeoutSeconds:        5.0,
		Clock:                 clk,
	})
	if !res.OK {
		t.Fatalf("expected gate to pass, reason: %s", res.Reason)
	}
	if res.StableSeconds < 1.0 {
		t.Fatalf("expected stable seconds >= 1.0, got %v", res.StableSeconds)
	}
}

func TestGateFailsOnAlternatingImage(t *testing.T) {
	clk := &fakeClock{t: time.Unix(0, 0)}
	cap := &alternatingCapturer{a: solid(4, 4, 1), b: solid(4, 4, 2)}
	res := Run(cap, Config{
		Display:               1,
		FPS:                   30,
		RequiredStaticSeconds: 2.0,
		TimeoutSeconds:        1.0,
		Clock:                 clk,
	})
	if res.OK {
		t.Fatalf("expected gate to fail on always-alternating input")
	}
}

func TestGateTolerantMode(t *testing.T) {
	clk := &fakeClock{t: time.Unix(0, 0)}
	img := solid(8, 8, 7)
	res := Run(fixedCapturer{img}, Config{
		Display:               1,
		FPS:                   30,
		RequiredStaticSeconds: 0.5,
		TimeoutSeconds:        5.0,
		Tolerant:              true,
		Clock:                 clk,
	})
	if !res.OK {
		t.Fatalf("expected tolerant gate to pass")
	}
}
