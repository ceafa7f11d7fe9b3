package chime

import "testing"

// --- Standardize ---

func TestStandardizeNegativeExtents(t *testing.T) {
	r := Rect(10, 10, -4, -6).Standardize()
	want := Rect(6, 4, 4, 6)
	if r != want {
		t.Errorf("Standardize = %v, want %v", r, want)
	}
}

func TestStandardizeIdempotent(t *testing.T) {
	r := Rect(3, 7, -5, 2).Standardize()
	if again := r.Standardize(); again != r {
		t.Errorf("second Standardize = %v, want %v", again, r)
	}
}

// --- ContainsPoint ---

func TestContainsPointEdges(t *testing.T) {
	r := Rect(2, 2, 4, 4)
	if !r.ContainsPoint(Pt(2, 2)) {
		t.Error("top-left corner should be inside")
	}
	if r.ContainsPoint(Pt(6, 2)) {
		t.Error("right edge should be exclusive")
	}
	if r.ContainsPoint(Pt(2, 6)) {
		t.Error("bottom edge should be exclusive")
	}
	if !r.ContainsPoint(Pt(5, 5)) {
		t.Error("last covered pixel should be inside")
	}
}

func TestContainsPointNonStandard(t *testing.T) {
	r := Rect(6, 6, -4, -4)
	if !r.ContainsPoint(Pt(3, 3)) {
		t.Error("non-standard rect should cover the same region as its standardized form")
	}
}

// --- Intersection ---

func TestIntersectionOverlap(t *testing.T) {
	got := Rect(0, 0, 10, 10).Intersection(Rect(5, 5, 10, 10))
	want := Rect(5, 5, 5, 5)
	if got != want {
		t.Errorf("Intersection = %v, want %v", got, want)
	}
}

func TestIntersectionDisjoint(t *testing.T) {
	got := Rect(0, 0, 4, 4).Intersection(Rect(10, 10, 4, 4))
	if !got.IsEmpty() {
		t.Errorf("disjoint Intersection = %v, want empty", got)
	}
}

func TestIntersectionAdjacent(t *testing.T) {
	// Sharing only an edge covers no pixels.
	got := Rect(0, 0, 4, 4).Intersection(Rect(4, 0, 4, 4))
	if !got.IsEmpty() {
		t.Errorf("edge-adjacent Intersection = %v, want empty", got)
	}
}

// --- Inset / Crop / Center ---

func TestInsetShrinksBothSides(t *testing.T) {
	got := Rect(0, 0, 10, 10).Inset(2, 3)
	want := Rect(2, 3, 6, 4)
	if got != want {
		t.Errorf("Inset = %v, want %v", got, want)
	}
}

func TestInsetNegativeGrows(t *testing.T) {
	got := Rect(5, 5, 10, 10).Inset(-2, -2)
	want := Rect(3, 3, 14, 14)
	if got != want {
		t.Errorf("Inset(-2,-2) = %v, want %v", got, want)
	}
}

func TestInsetRoundTripPreservesCenter(t *testing.T) {
	r := Rect(0, 0, 11, 7)
	center := r.Center()
	if got := r.Inset(2, 1).Inset(-2, -1); got.Center() != center {
		t.Errorf("center after inset round trip = %v, want %v", got.Center(), center)
	}
}

func TestCropMatchesInset(t *testing.T) {
	r := Rect(1, 2, 10, 8)
	if r.Crop(3) != r.Inset(3, 3) {
		t.Error("Crop should equal symmetric Inset")
	}
}

// --- Align ---

func TestAlignCorners(t *testing.T) {
	r := Rect(0, 0, 100, 100)
	size := Sz(10, 10)

	cases := []struct {
		align GAlign
		want  GRect
	}{
		{GAlignTopLeft, Rect(0, 0, 10, 10)},
		{GAlignTopRight, Rect(90, 0, 10, 10)},
		{GAlignBottomLeft, Rect(0, 90, 10, 10)},
		{GAlignBottomRight, Rect(90, 90, 10, 10)},
		{GAlignCenter, Rect(45, 45, 10, 10)},
		{GAlignTop, Rect(45, 0, 10, 10)},
		{GAlignBottom, Rect(45, 90, 10, 10)},
		{GAlignLeft, Rect(0, 45, 10, 10)},
		{GAlignRight, Rect(90, 45, 10, 10)},
	}
	for _, c := range cases {
		if got := r.Align(size, c.align); got != c.want {
			t.Errorf("Align(%d) = %v, want %v", c.align, got, c.want)
		}
	}
}

func TestAlignOversizedExtendsOutside(t *testing.T) {
	r := Rect(0, 0, 10, 10)
	got := r.Align(Sz(20, 20), GAlignCenter)
	if got.Origin.X >= 0 || got.Origin.Y >= 0 {
		t.Errorf("oversized Align origin = %v, want negative", got.Origin)
	}
}

// --- GColor packing ---

func TestGColorChannels(t *testing.T) {
	c := GColorFrom(3, 2, 1, 0)
	if c.A() != 3 || c.R() != 2 || c.G() != 1 || c.B() != 0 {
		t.Errorf("channels = %d,%d,%d,%d, want 3,2,1,0", c.A(), c.R(), c.G(), c.B())
	}
}

func TestGColorRGBAExpansion(t *testing.T) {
	r, g, b, a := GColorWhite.RGBA()
	if r != 255 || g != 255 || b != 255 || a != 255 {
		t.Errorf("white RGBA = %d,%d,%d,%d, want 255s", r, g, b, a)
	}
	r, g, b, a = GColorBlack.RGBA()
	if r != 0 || g != 0 || b != 0 || a != 255 {
		t.Errorf("black RGBA = %d,%d,%d,%d, want 0,0,0,255", r, g, b, a)
	}
}

func TestGColorFromRGBQuantizes(t *testing.T) {
	if got := GColorFromRGB(255, 0, 0); got != GColorRed {
		t.Errorf("GColorFromRGB(255,0,0) = %#x, want %#x", got, GColorRed)
	}
}
