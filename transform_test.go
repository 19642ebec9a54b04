package canvasview

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func assertNear(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > epsilon {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

func TestQuantizeScale(t *testing.T) {
	lo, hi := DefaultConfig().ScaleBounds()
	tests := []struct {
		name      string
		s, lo, hi float64
		want      float64
	}{
		{"identity", 1, lo, hi, 1},
		{"rounds to two decimals", 1.234, lo, hi, 1.23},
		{"clamps high", 5, lo, hi, 1.69},
		{"clamps low", 0.1, lo, hi, 0.35},
		{"rounding below min steps up", 0.3, 0.344, 2, 0.35},
		{"rounding above max steps down", 5, 0.5, 1.696, 1.69},
		{"NaN becomes identity", math.NaN(), lo, hi, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := quantizeScale(tt.s, tt.lo, tt.hi)
			assertNear(t, "scale", got, tt.want)
			if got < tt.lo || got > tt.hi {
				t.Errorf("scale %v outside [%v, %v]", got, tt.lo, tt.hi)
			}
		})
	}
}

func TestAccumulatorHalfSteps(t *testing.T) {
	var acc pendingAccumulator
	applied := 0.0
	for i := 1; i <= 20; i++ {
		sx, _, flushed := acc.add(0.5, 0, 1)
		if flushed != (i%2 == 0) {
			t.Fatalf("call %d: flushed = %v", i, flushed)
		}
		applied += sx
		if i%2 == 0 {
			assertNear(t, "applied", applied, float64(i/2))
		}
	}
}

func TestAccumulatorTruncatesTowardZero(t *testing.T) {
	var acc pendingAccumulator
	if _, _, flushed := acc.add(-0.75, 0, 1); flushed {
		t.Fatal("flushed below threshold")
	}
	sx, sy, flushed := acc.add(-0.75, 0, 1)
	if !flushed {
		t.Fatal("expected flush at |acc| >= threshold")
	}
	assertNear(t, "stepX", sx, -1)
	assertNear(t, "stepY", sy, 0)
	assertNear(t, "remainder", acc.x, -0.5)
}

func TestAccumulatorPerAxisRemainder(t *testing.T) {
	var acc pendingAccumulator
	sx, sy, flushed := acc.add(2, 0.3, 1)
	if !flushed {
		t.Fatal("expected flush")
	}
	assertNear(t, "stepX", sx, 2)
	assertNear(t, "stepY", sy, 0)
	assertNear(t, "remainder y", acc.y, 0.3)

	acc.reset()
	if acc.x != 0 || acc.y != 0 {
		t.Errorf("reset left (%v, %v)", acc.x, acc.y)
	}
}

func TestAccumulatorLargeThreshold(t *testing.T) {
	var acc pendingAccumulator
	if _, _, flushed := acc.add(3, 0, 4); flushed {
		t.Fatal("flushed below threshold")
	}
	sx, _, _ := acc.add(3, 0, 4)
	assertNear(t, "stepX", sx, 4)
	assertNear(t, "remainder", acc.x, 2)
}

func TestViewportTransformRoundTrip(t *testing.T) {
	vt := ViewportTransform{TranslateX: -40, TranslateY: 25, Scale: 1.5}
	wx, wy := vt.ScreenToWorld(110, 70)
	assertNear(t, "wx", wx, 100)
	assertNear(t, "wy", wy, 30)
	sx, sy := vt.WorldToScreen(wx, wy)
	assertNear(t, "sx", sx, 110)
	assertNear(t, "sy", sy, 70)
}

func TestMatrixMatchesWorldToScreen(t *testing.T) {
	vt := ViewportTransform{TranslateX: 12, TranslateY: -8, Scale: 0.75}
	x, y := transformPoint(vt.matrix(), 40, 60)
	sx, sy := vt.WorldToScreen(40, 60)
	assertNear(t, "x", x, sx)
	assertNear(t, "y", y, sy)
}

func TestInvertAffine(t *testing.T) {
	m := multiplyAffine(ViewportTransform{TranslateX: 5, TranslateY: 7, Scale: 2}.matrix(), translateAffine(3, -4))
	inv := invertAffine(m)
	x, y := transformPoint(m, 11, 13)
	bx, by := transformPoint(inv, x, y)
	assertNear(t, "x", bx, 11)
	assertNear(t, "y", by, 13)
}

func TestInvertAffineSingular(t *testing.T) {
	inv := invertAffine([6]float64{0, 0, 0, 0, 5, 5})
	if inv != [6]float64{1, 0, 0, 1, 0, 0} {
		t.Errorf("singular inverse = %v, want identity", inv)
	}
}
