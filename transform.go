package canvasview

import "math"

// scaleDecimals is the precision the scale is quantized to.
const scaleDecimals = 100

// ViewportTransform is the pan and zoom applied to the space: a screen point
// s and a world point w relate by s = w*Scale + Translate.
type ViewportTransform struct {
	TranslateX float64
	TranslateY float64
	Scale      float64
}

// identityView is the transform of a freshly created controller.
var identityView = ViewportTransform{Scale: 1}

// ScreenToWorld converts a point in layer coordinates to world coordinates.
func (t ViewportTransform) ScreenToWorld(sx, sy float64) (wx, wy float64) {
	return (sx - t.TranslateX) / t.Scale, (sy - t.TranslateY) / t.Scale
}

// WorldToScreen converts a world point to layer coordinates.
func (t ViewportTransform) WorldToScreen(wx, wy float64) (sx, sy float64) {
	return wx*t.Scale + t.TranslateX, wy*t.Scale + t.TranslateY
}

// matrix returns the affine matrix [a, b, c, d, tx, ty] of the transform.
func (t ViewportTransform) matrix() [6]float64 {
	return [6]float64{t.Scale, 0, 0, t.Scale, t.TranslateX, t.TranslateY}
}

// quantizeScale clamps s into [lo, hi] and rounds it to two decimals. When
// rounding would leave the range, the nearest in-range two-decimal value is
// used instead.
func quantizeScale(s, lo, hi float64) float64 {
	if math.IsNaN(s) {
		s = 1
	}
	s = math.Min(math.Max(s, lo), hi)
	q := math.Round(s*scaleDecimals) / scaleDecimals
	if q < lo {
		q = math.Ceil(lo*scaleDecimals) / scaleDecimals
	}
	if q > hi {
		q = math.Floor(hi*scaleDecimals) / scaleDecimals
	}
	return q
}

// pendingAccumulator buffers pan motion below the flush threshold.
type pendingAccumulator struct {
	x, y float64
}

// add accumulates (dx, dy). Once either axis reaches threshold, the integral
// multiple of threshold on each axis (truncated toward zero) is returned as a
// step and removed from the buffer; the remainder stays.
func (a *pendingAccumulator) add(dx, dy, threshold float64) (stepX, stepY float64, flushed bool) {
	a.x += dx
	a.y += dy
	if math.Abs(a.x) < threshold && math.Abs(a.y) < threshold {
		return 0, 0, false
	}
	stepX = math.Trunc(a.x/threshold) * threshold
	stepY = math.Trunc(a.y/threshold) * threshold
	a.x -= stepX
	a.y -= stepY
	return stepX, stepY, true
}

func (a *pendingAccumulator) reset() {
	a.x, a.y = 0, 0
}

// multiplyAffine multiplies two 2D affine matrices: result = parent * child.
//
//	Matrix layout: [a, b, c, d, tx, ty]
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
func multiplyAffine(p, c [6]float64) [6]float64 {
	return [6]float64{
		p[0]*c[0] + p[2]*c[1],
		p[1]*c[0] + p[3]*c[1],
		p[0]*c[2] + p[2]*c[3],
		p[1]*c[2] + p[3]*c[3],
		p[0]*c[4] + p[2]*c[5] + p[4],
		p[1]*c[4] + p[3]*c[5] + p[5],
	}
}

// translateAffine returns the matrix of a pure translation.
func translateAffine(x, y float64) [6]float64 {
	return [6]float64{1, 0, 0, 1, x, y}
}

// invertAffine computes the inverse of a 2D affine matrix.
// Returns the identity matrix if the matrix is singular.
func invertAffine(m [6]float64) [6]float64 {
	det := m[0]*m[3] - m[2]*m[1]
	if det > -1e-12 && det < 1e-12 {
		return [6]float64{1, 0, 0, 1, 0, 0}
	}
	invDet := 1.0 / det
	a := m[3] * invDet
	b := -m[1] * invDet
	c := -m[2] * invDet
	d := m[0] * invDet
	return [6]float64{
		a, b, c, d,
		-(a*m[4] + c*m[5]),
		-(b*m[4] + d*m[5]),
	}
}

// transformPoint applies an affine matrix to a point.
func transformPoint(m [6]float64, x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}
