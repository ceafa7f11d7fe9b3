package chime

// Property animations interpolate a single typed value between two
// endpoints and write it through a setter on every update. The getter and
// setter close over their subject, so no untyped context pointer is needed.
// Setters that mutate a layer mark it dirty as a side effect of the layer's
// own setters; custom setters are responsible for their own dirty marking.

// Int16Interpolate returns the value the given fraction of the way from
// `from` to `to`. Progress outside the normalized range extrapolates, so
// overshoot curves work. The multiply is widened to 64 bits: a full-range
// delta times an overshooting progress exceeds int32.
func Int16Interpolate(progress AnimationProgress, from, to int16) int16 {
	return from + int16(int64(to-from)*int64(progress)/int64(AnimationNormalizedMax))
}

// GPointInterpolate interpolates both coordinates of a point.
func GPointInterpolate(progress AnimationProgress, from, to GPoint) GPoint {
	return GPoint{
		X: Int16Interpolate(progress, from.X, to.X),
		Y: Int16Interpolate(progress, from.Y, to.Y),
	}
}

// GRectInterpolate interpolates a rect's origin and size independently.
func GRectInterpolate(progress AnimationProgress, from, to GRect) GRect {
	return GRect{
		Origin: GPointInterpolate(progress, from.Origin, to.Origin),
		Size: GSize{
			W: Int16Interpolate(progress, from.Size.W, to.Size.W),
			H: Int16Interpolate(progress, from.Size.H, to.Size.H),
		},
	}
}

// NewInt16PropertyAnimation creates an animation that sweeps an int16
// property from one value to another. When from is read lazily (getter
// non-nil), the starting value is captured at setup time, so the animation
// picks up from wherever the property currently sits.
func NewInt16PropertyAnimation(get func() int16, set func(int16), from, to int16) *Animation {
	start := from
	return NewAnimation(AnimationImplementation{
		Setup: func(*Animation) {
			if get != nil {
				start = get()
			}
		},
		Update: func(_ *Animation, p AnimationProgress) {
			set(Int16Interpolate(p, start, to))
		},
	})
}

// NewGPointPropertyAnimation creates an animation that sweeps a GPoint
// property from one value to another.
func NewGPointPropertyAnimation(get func() GPoint, set func(GPoint), from, to GPoint) *Animation {
	start := from
	return NewAnimation(AnimationImplementation{
		Setup: func(*Animation) {
			if get != nil {
				start = get()
			}
		},
		Update: func(_ *Animation, p AnimationProgress) {
			set(GPointInterpolate(p, start, to))
		},
	})
}

// NewGRectPropertyAnimation creates an animation that sweeps a GRect
// property from one value to another.
func NewGRectPropertyAnimation(get func() GRect, set func(GRect), from, to GRect) *Animation {
	start := from
	return NewAnimation(AnimationImplementation{
		Setup: func(*Animation) {
			if get != nil {
				start = get()
			}
		},
		Update: func(_ *Animation, p AnimationProgress) {
			set(GRectInterpolate(p, start, to))
		},
	})
}

// NewLayerFrameAnimation animates a layer's frame between two rects.
// SetFrame marks the layer dirty on every change, so each update schedules
// a repaint.
func NewLayerFrameAnimation(l *Layer, from, to GRect) *Animation {
	return NewGRectPropertyAnimation(
		func() GRect { return l.Frame() },
		func(r GRect) { _ = l.SetFrame(r) },
		from, to,
	)
}

// NewLayerBoundsAnimation animates a layer's bounds between two rects,
// typically to scroll content by sweeping the bounds origin.
func NewLayerBoundsAnimation(l *Layer, from, to GRect) *Animation {
	return NewGRectPropertyAnimation(
		func() GRect { return l.Bounds() },
		func(r GRect) { _ = l.SetBounds(r) },
		from, to,
	)
}
