package correction

import (
	"testing"

	"github.com/ausocean/framefab/raster"
)

func TestApplyAllEmptyIsIdentity(t *testing.T) {
	q := New()
	img := raster.New(2, 2)
	before := img.Clone()
	if q.ApplyAll(img) {
		t.Fatalf("expected ApplyAll on empty queue to return false")
	}
	if !raster.BytesEqual(before, img) {
		t.Fatalf("expected identity on empty queue")
	}
}

func TestPersistentRunsEveryFrame(t *testing.T) {
	q := New()
	var calls int
	q.EnqueuePersistent(func(img raster.Image) { calls++ })
	img := raster.New(1, 1)
	q.ApplyAll(img)
	q.ApplyAll(img)
	if calls != 2 {
		t.Fatalf("expected persistent transform to run twice, ran %d", calls)
	}
}

func TestOneshotRunsOnce(t *testing.T) {
	q := New()
	var calls int
	q.EnqueueOneshot(func(img raster.Image) { calls++ })
	img := raster.New(1, 1)
	if !q.ApplyAll(img) {
		t.Fatalf("expected true from ApplyAll with pending oneshot")
	}
	q.ApplyAll(img)
	if calls != 1 {
		t.Fatalf("expected oneshot transform to run once, ran %d", calls)
	}
}

func TestOrderingRegistration(t *testing.T) {
	q := New()
	var order []int
	q.EnqueuePersistent(func(raster.Image) { order = append(order, 1) })
	q.EnqueueOneshot(func(raster.Image) { order = append(order, 2) })
	img := raster.New(1, 1)
	q.ApplyAll(img)
	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Fatalf("expected persistent before oneshot, got %v", order)
	}
}

func TestClear(t *testing.T) {
	q := New()
	q.EnqueuePersistent(func(raster.Image) {})
	q.Clear()
	img := raster.New(1, 1)
	if q.ApplyAll(img) {
		t.Fatalf("expected ApplyAll after Clear to be identity")
	}
}

func TestGrayscale(t *testing.T) {
	img := raster.New(1, 1)
	img.Set(0, 0, 10, 20, 30, 255)
	Grayscale()(img)
	b, g, r, _ := img.At(0, 0)
	if b != g || g != r {
		t.Fatalf("expected equal channels after grayscale, got (%d,%d,%d)", b, g, r)
	}
}

func TestPixelateBlockAverage(t *testing.T) {
	img := raster.New(2, 2)
	img.Set(0, 0, 0, 0, 0, 255)
	img.Set(1, 0, 100, 100, 100, 255)
	img.Set(0, 1, 0, 0, 0, 255)
	img.Set(1, 1, 100, 100, 100, 255)
	Pixelate(2)(img)
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			b, _, _, _ := img.At(x, y)
			if b != 50 {
				t.Fatalf("expected averaged value 50 at (%d,%d), got %d", x, y, b)
			}
		}
	}
}
