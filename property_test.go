package chime

import (
	"testing"
	"time"
)

// --- Interpolation ---

func TestInt16Interpolate(t *testing.T) {
	if got := Int16Interpolate(0, 10, 20); got != 10 {
		t.Errorf("progress 0 = %d, want 10", got)
	}
	if got := Int16Interpolate(AnimationNormalizedMax, 10, 20); got != 20 {
		t.Errorf("progress max = %d, want 20", got)
	}
	if got := Int16Interpolate(AnimationNormalizedMax/2, 0, 100); got != 49 && got != 50 {
		t.Errorf("midpoint = %d, want ~50", got)
	}
	// Decreasing ranges work too.
	if got := Int16Interpolate(AnimationNormalizedMax, 100, -100); got != -100 {
		t.Errorf("descending end = %d, want -100", got)
	}
}

func TestInt16InterpolateOvershoot(t *testing.T) {
	// Progress beyond the normalized range extrapolates past `to`.
	over := AnimationNormalizedMax + AnimationNormalizedMax/10
	if got := Int16Interpolate(over, 0, 100); got <= 100 {
		t.Errorf("overshoot = %d, want > 100", got)
	}
	if got := Int16Interpolate(-AnimationNormalizedMax/10, 0, 100); got >= 0 {
		t.Errorf("undershoot = %d, want < 0", got)
	}
}

func TestInt16InterpolateLargeOvershoot(t *testing.T) {
	// 21845 * 98310 exceeds int32; the widened multiply keeps the quotient
	// exact. 98310/65535 of the way from -10000 lands at -10000 + 32770.
	if got := Int16Interpolate(98310, -10000, 11845); got != 22770 {
		t.Errorf("large overshoot = %d, want 22770", got)
	}
}

func TestGRectInterpolateEndpoints(t *testing.T) {
	from := Rect(0, 0, 10, 10)
	to := Rect(20, 40, 50, 30)
	if got := GRectInterpolate(0, from, to); got != from {
		t.Errorf("progress 0 = %v, want %v", got, from)
	}
	if got := GRectInterpolate(AnimationNormalizedMax, from, to); got != to {
		t.Errorf("progress max = %v, want %v", got, to)
	}
}

// --- Property animations ---

func TestInt16PropertyAnimationSweeps(t *testing.T) {
	s := newTestScheduler()
	var value int16
	a := NewInt16PropertyAnimation(nil, func(v int16) { value = v }, 0, 100)
	a.SetCurve(CurveLinear)
	a.SetDuration(100 * time.Millisecond)
	s.Schedule(a)

	s.Tick(testEpoch)
	if value != 0 {
		t.Errorf("value at start = %d, want 0", value)
	}
	s.Tick(testEpoch.Add(100 * time.Millisecond))
	if value != 100 {
		t.Errorf("value at end = %d, want 100", value)
	}
}

func TestPropertyAnimationCapturesStartLazily(t *testing.T) {
	s := newTestScheduler()
	current := int16(42)
	a := NewInt16PropertyAnimation(
		func() int16 { return current },
		func(v int16) { current = v },
		0, // ignored: the getter wins at setup time
		100,
	)
	a.SetCurve(CurveLinear)
	a.SetDuration(100 * time.Millisecond)
	s.Schedule(a)

	s.Tick(testEpoch)
	if current != 42 {
		t.Errorf("start value = %d, want captured 42", current)
	}
	s.Tick(testEpoch.Add(50 * time.Millisecond))
	if current <= 42 || current >= 100 {
		t.Errorf("mid value = %d, want between 42 and 100", current)
	}
}

func TestLayerFrameAnimationMovesLayer(t *testing.T) {
	a := newTestApp(t, 32, 32)
	win := pushTestWindow(t, a, GColorBlack)
	l := NewLayer(Rect(0, 0, 4, 4))
	win.RootLayer().AddChild(l)

	anim := NewLayerFrameAnimation(l, Rect(0, 0, 4, 4), Rect(20, 20, 4, 4))
	anim.SetCurve(CurveLinear)
	anim.SetDuration(100 * time.Millisecond)
	if err := a.Animations().Schedule(anim); err != nil {
		t.Fatal(err)
	}

	a.Tick(testEpoch)
	a.Tick(testEpoch.Add(100 * time.Millisecond))

	if l.Frame().Origin != Pt(20, 20) {
		t.Errorf("frame origin after animation = %v, want (20,20)", l.Frame().Origin)
	}
}

func TestLayerBoundsAnimationScrolls(t *testing.T) {
	s := newTestScheduler()
	l := NewLayer(Rect(0, 0, 10, 10))
	anim := NewLayerBoundsAnimation(l, Rect(0, 0, 10, 10), Rect(0, 40, 10, 10))
	anim.SetCurve(CurveLinear)
	anim.SetDuration(100 * time.Millisecond)
	s.Schedule(anim)

	s.Tick(testEpoch)
	s.Tick(testEpoch.Add(100 * time.Millisecond))
	if l.Bounds().Origin != Pt(0, 40) {
		t.Errorf("bounds origin = %v, want (0,40)", l.Bounds().Origin)
	}
}
