package accum

import "testing"

func TestAddWeightCap(t *testing.T) {
	var c Cell
	for i := 0; i < 20; i++ {
		c.Add(1, 1, 1, 1, 4)
		if c.W > 4 {
			t.Fatalf("weight cap violated: %v", c.W)
		}
	}
	r, g, b := c.ToPixel()
	if r != 1 || g != 1 || b != 1 {
		t.Fatalf("expected average to remain (1,1,1), got (%v,%v,%v)", r, g, b)
	}
}

func TestToPixelZeroWeight(t *testing.T) {
	var c Cell
	r, g, b := c.ToPixel()
	if r != 0 || g != 0 || b != 0 {
		t.Fatalf("expected zero pixel for zero weight cell")
	}
}

func TestClear(t *testing.T) {
	var c Cell
	c.Add(1, 2, 3, 1, 10)
	c.Clear()
	if c.W != 0 {
		t.Fatalf("expected cleared cell to have zero weight")
	}
}

func TestGridClearRegion(t *testing.T) {
	g := New(4, 4)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			g.At(x, y).Add(1, 1, 1, 1, 10)
		}
	}
	g.ClearRegion(1, 1, 3, 3)
	for y := 1; y < 3; y++ {
		for x := 1; x < 3; x++ {
			if g.At(x, y).W != 0 {
				t.Fatalf("expected cleared region cell to be zero at (%d,%d)", x, y)
			}
		}
	}
	if g.At(0, 0).W == 0 {
		t.Fatalf("expected untouched cell outside region to retain weight")
	}
}
