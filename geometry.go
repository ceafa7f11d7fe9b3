package chime

// GPoint is a position with signed 16-bit coordinates. The coordinate system
// has its origin at the top-left, with Y increasing downward.
type GPoint struct {
	X, Y int16
}

// Pt is shorthand for GPoint{x, y}.
func Pt(x, y int16) GPoint { return GPoint{x, y} }

// GPointZero is the origin point.
var GPointZero = GPoint{}

// Add returns p translated by q.
func (p GPoint) Add(q GPoint) GPoint { return GPoint{p.X + q.X, p.Y + q.Y} }

// Sub returns p translated by the negation of q.
func (p GPoint) Sub(q GPoint) GPoint { return GPoint{p.X - q.X, p.Y - q.Y} }

// GSize is a width/height pair with signed 16-bit components.
type GSize struct {
	W, H int16
}

// Sz is shorthand for GSize{w, h}.
func Sz(w, h int16) GSize { return GSize{w, h} }

// GRect is an axis-aligned rectangle: an origin and a size.
// A rect is standardized when both size components are non-negative.
type GRect struct {
	Origin GPoint
	Size   GSize
}

// Rect is shorthand for a GRect from origin and size components.
func Rect(x, y, w, h int16) GRect {
	return GRect{GPoint{x, y}, GSize{w, h}}
}

// GRectZero is the empty rect at the origin.
var GRectZero = GRect{}

// RectFromSize returns a rect at the origin with the given size.
func RectFromSize(s GSize) GRect { return GRect{Size: s} }

// Standardize returns an equivalent rect with non-negative size components.
// A rect with a negative width or height denotes the same region as one whose
// origin is shifted by the negative extent. Idempotent.
func (r GRect) Standardize() GRect {
	if r.Size.W < 0 {
		r.Origin.X += r.Size.W
		r.Size.W = -r.Size.W
	}
	if r.Size.H < 0 {
		r.Origin.Y += r.Size.H
		r.Size.H = -r.Size.H
	}
	return r
}

// IsEmpty reports whether the standardized rect covers no points.
func (r GRect) IsEmpty() bool {
	r = r.Standardize()
	return r.Size.W <= 0 || r.Size.H <= 0
}

// ContainsPoint reports whether p lies inside the rect. The right and bottom
// edges are exclusive, matching pixel coverage.
func (r GRect) ContainsPoint(p GPoint) bool {
	r = r.Standardize()
	return p.X >= r.Origin.X && p.X < r.Origin.X+r.Size.W &&
		p.Y >= r.Origin.Y && p.Y < r.Origin.Y+r.Size.H
}

// Intersection returns the largest rect contained in both r and o.
// Returns GRectZero when the rects do not overlap.
func (r GRect) Intersection(o GRect) GRect {
	r = r.Standardize()
	o = o.Standardize()
	x0 := max16(r.Origin.X, o.Origin.X)
	y0 := max16(r.Origin.Y, o.Origin.Y)
	x1 := min16(r.Origin.X+r.Size.W, o.Origin.X+o.Size.W)
	y1 := min16(r.Origin.Y+r.Size.H, o.Origin.Y+o.Size.H)
	if x1 <= x0 || y1 <= y0 {
		return GRectZero
	}
	return Rect(x0, y0, x1-x0, y1-y0)
}

// Intersects reports whether r and o share any point.
func (r GRect) Intersects(o GRect) bool {
	return !r.Intersection(o).IsEmpty()
}

// Inset returns the rect shrunk by dx on the left and right and dy on the
// top and bottom. Negative values grow the rect.
func (r GRect) Inset(dx, dy int16) GRect {
	r = r.Standardize()
	return Rect(r.Origin.X+dx, r.Origin.Y+dy, r.Size.W-2*dx, r.Size.H-2*dy)
}

// Crop returns the rect shrunk symmetrically by the same amount on all sides.
func (r GRect) Crop(amount int16) GRect {
	return r.Inset(amount, amount)
}

// Offset returns the rect translated by (dx, dy).
func (r GRect) Offset(dx, dy int16) GRect {
	r.Origin.X += dx
	r.Origin.Y += dy
	return r
}

// Center returns the rect's center point. Odd extents truncate toward the
// origin, so Inset followed by the inverse Inset preserves the center.
func (r GRect) Center() GPoint {
	r = r.Standardize()
	return GPoint{r.Origin.X + r.Size.W/2, r.Origin.Y + r.Size.H/2}
}

// MaxX returns the exclusive right edge.
func (r GRect) MaxX() int16 { return r.Origin.X + r.Size.W }

// MaxY returns the exclusive bottom edge.
func (r GRect) MaxY() int16 { return r.Origin.Y + r.Size.H }

// Equal reports exact equality of origin and size.
func (r GRect) Equal(o GRect) bool { return r == o }

// GAlign selects one of nine positions for placing a size within a rect.
type GAlign uint8

const (
	GAlignCenter GAlign = iota
	GAlignTopLeft
	GAlignTop
	GAlignTopRight
	GAlignLeft
	GAlignRight
	GAlignBottomLeft
	GAlignBottom
	GAlignBottomRight
)

// Align returns a rect of the given size positioned within r according to
// align. The result may extend outside r when size exceeds r's size.
func (r GRect) Align(size GSize, align GAlign) GRect {
	r = r.Standardize()
	out := GRect{Size: size}
	switch align {
	case GAlignTopLeft, GAlignLeft, GAlignBottomLeft:
		out.Origin.X = r.Origin.X
	case GAlignTopRight, GAlignRight, GAlignBottomRight:
		out.Origin.X = r.MaxX() - size.W
	default:
		out.Origin.X = r.Origin.X + (r.Size.W-size.W)/2
	}
	switch align {
	case GAlignTopLeft, GAlignTop, GAlignTopRight:
		out.Origin.Y = r.Origin.Y
	case GAlignBottomLeft, GAlignBottom, GAlignBottomRight:
		out.Origin.Y = r.MaxY() - size.H
	default:
		out.Origin.Y = r.Origin.Y + (r.Size.H-size.H)/2
	}
	return out
}

func min16(a, b int16) int16 {
	if a < b {
		return a
	}
	return b
}

func max16(a, b int16) int16 {
	if a > b {
		return a
	}
	return b
}
