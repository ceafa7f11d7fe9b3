package chime

import "github.com/tanema/gween/ease"

// AnimationProgress is a fixed-point animation distance. The scheduler maps
// linear elapsed time onto [AnimationNormalizedMin, AnimationNormalizedMax];
// custom curves may return values outside that range for overshoot and
// bounce effects, so the type is wider than 16 bits.
type AnimationProgress int32

const (
	// AnimationNormalizedMin is the progress value at the start.
	AnimationNormalizedMin AnimationProgress = 0
	// AnimationNormalizedMax is the progress value at the end.
	AnimationNormalizedMax AnimationProgress = 65535
)

// AnimationCurve selects the easing applied to an animation's progress.
type AnimationCurve uint8

const (
	CurveLinear    AnimationCurve = iota // constant speed
	CurveEaseIn                          // accelerate from rest
	CurveEaseOut                         // decelerate to rest
	CurveEaseInOut                       // accelerate then decelerate
	CurveCustom                          // use the animation's CurveFunc

	numBuiltinCurves = int(CurveCustom)
)

// CurveFunc maps a linear progress value to an eased one. Input is in the
// normalized range; output may exceed it.
type CurveFunc func(linear AnimationProgress) AnimationProgress

// CurveFromEase adapts a gween easing function to a CurveFunc, letting the
// full catalog in gween/ease (bounce, elastic, back, ...) drive animations.
func CurveFromEase(fn ease.TweenFunc) CurveFunc {
	return func(linear AnimationProgress) AnimationProgress {
		t := float32(linear) / float32(AnimationNormalizedMax)
		v := fn(t, 0, 1, 1) * float32(AnimationNormalizedMax)
		// Round half away from zero; truncation would bias undershoot
		// values toward zero.
		if v < 0 {
			return AnimationProgress(v - 0.5)
		}
		return AnimationProgress(v + 0.5)
	}
}

// builtinCurves holds the CurveFunc for each non-custom AnimationCurve.
var builtinCurves = [numBuiltinCurves]CurveFunc{
	CurveLinear:    CurveFromEase(ease.Linear),
	CurveEaseIn:    CurveFromEase(ease.InQuad),
	CurveEaseOut:   CurveFromEase(ease.OutQuad),
	CurveEaseInOut: CurveFromEase(ease.InOutQuad),
}
