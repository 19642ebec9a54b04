package canvasview

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// transformTween eases the visual transform toward a committed one.
type transformTween struct {
	tx, ty, scale *gween.Tween
	done          [3]bool
}

func newTransformTween(from, to ViewportTransform, duration float32, fn ease.TweenFunc) *transformTween {
	return &transformTween{
		tx:    gween.New(float32(from.TranslateX), float32(to.TranslateX), duration, fn),
		ty:    gween.New(float32(from.TranslateY), float32(to.TranslateY), duration, fn),
		scale: gween.New(float32(from.Scale), float32(to.Scale), duration, fn),
	}
}

// advance moves the tween forward by dt seconds, writing into v. Returns true
// once all three channels have finished.
func (tw *transformTween) advance(dt float32, v *ViewportTransform) bool {
	step := func(i int, t *gween.Tween, dst *float64) {
		if tw.done[i] {
			return
		}
		val, done := t.Update(dt)
		*dst = float64(val)
		tw.done[i] = done
	}
	step(0, tw.tx, &v.TranslateX)
	step(1, tw.ty, &v.TranslateY)
	step(2, tw.scale, &v.Scale)
	return tw.done[0] && tw.done[1] && tw.done[2]
}

// viewport owns the committed transform, the sub-pixel accumulator and the
// once-per-frame write of the transform into the visual state read by Draw.
type viewport struct {
	t   ViewportTransform
	acc pendingAccumulator

	minScale, maxScale float64
	threshold          float64
	transition         float32
	easeFn             ease.TweenFunc

	// visual is what Draw renders. It only changes in commit.
	visual        ViewportTransform
	pending       bool
	pendingSource InputSource
	writes        int
	tween         *transformTween
}

func newViewport(cfg Config) *viewport {
	lo, hi := cfg.ScaleBounds()
	v := &viewport{
		minScale:   lo,
		maxScale:   hi,
		threshold:  cfg.Threshold,
		transition: cfg.Transition,
		easeFn:     cfg.TransitionEase,
	}
	if v.easeFn == nil {
		v.easeFn = ease.OutQuint
	}
	v.t = identityView
	v.t.Scale = quantizeScale(1, lo, hi)
	v.visual = v.t
	return v
}

// logical returns the committed transform with the pending sub-pixel motion
// folded into the translation.
func (v *viewport) logical() ViewportTransform {
	t := v.t
	t.TranslateX += v.acc.x
	t.TranslateY += v.acc.y
	return t
}

// zoomAt rescales to target about the layer point (ax, ay), keeping the world
// point under it fixed. Returns false when the quantized scale did not change.
func (v *viewport) zoomAt(ax, ay, target float64, src InputSource) bool {
	if quantizeScale(target, v.minScale, v.maxScale) == v.t.Scale {
		return false
	}
	return v.zoomFrom(v.logical(), ax, ay, ax, ay, target, src)
}

// zoomFrom solves the transform against a fixed reference frame: the world
// point under (ax, ay) in ref is placed at (px, py) with scale target. Pinch
// uses the session snapshot as ref so long gestures do not accumulate drift.
func (v *viewport) zoomFrom(ref ViewportTransform, ax, ay, px, py, target float64, src InputSource) bool {
	wx, wy := ref.ScreenToWorld(ax, ay)
	s := quantizeScale(target, v.minScale, v.maxScale)
	next := ViewportTransform{
		TranslateX: px - wx*s,
		TranslateY: py - wy*s,
		Scale:      s,
	}
	if next == v.logical() {
		return false
	}
	v.t = next
	v.acc.reset()
	v.schedule(src)
	return true
}

// pan feeds a screen-space delta through the accumulator. Returns true when a
// step was flushed into the committed translation.
func (v *viewport) pan(dx, dy float64, src InputSource) bool {
	sx, sy, flushed := v.acc.add(dx, dy, v.threshold)
	if !flushed {
		return false
	}
	v.t.TranslateX += sx
	v.t.TranslateY += sy
	v.schedule(src)
	return true
}

// set replaces the transform outright, clamping and quantizing the scale.
func (v *viewport) set(t ViewportTransform, src InputSource) {
	t.Scale = quantizeScale(t.Scale, v.minScale, v.maxScale)
	v.t = t
	v.acc.reset()
	v.schedule(src)
}

// schedule marks the transform for the next frame's write.
func (v *viewport) schedule(src InputSource) {
	v.pending = true
	v.pendingSource = src
}

// commit is the frame callback: it performs at most one transform write and
// advances any running transition.
func (v *viewport) commit(dt float32) {
	if v.pending {
		v.pending = false
		v.writes++
		if v.transition > 0 && v.pendingSource == SourceMouse {
			v.tween = newTransformTween(v.visual, v.t, v.transition, v.easeFn)
		} else {
			v.tween = nil
			v.visual = v.t
		}
	}
	if v.tween != nil && v.tween.advance(dt, &v.visual) {
		v.tween = nil
		v.visual = v.t
	}
}
