package chime

// CompOp selects how drawn pixels combine with the destination.
type CompOp uint8

const (
	// CompOpAssign overwrites destination pixels unconditionally.
	CompOpAssign CompOp = iota
	// CompOpSet skips fully transparent source pixels, letting the
	// destination show through. There is no fractional blending; the
	// display's 2-bit alpha is treated as on/off.
	CompOpSet
)

// gcState is the saved portion of a GContext restored when the compositor
// returns to a parent layer.
type gcState struct {
	clip   GRect
	origin GPoint
}

// GContext carries per-pass drawing state: colors, stroke width, compositing
// mode, the active clip, and the drawing origin. One GContext exists per App;
// it is reset at the start of every render pass and handed to each layer's
// render callback with the clip and origin set for that layer.
//
// Coordinates passed to drawing methods are local to the current layer's
// bounds. The clip is maintained in absolute framebuffer coordinates.
type GContext struct {
	fb *GBitmap

	strokeColor GColor
	fillColor   GColor
	textColor   GColor
	strokeWidth uint8
	antialiased bool
	compOp      CompOp

	clip   GRect  // absolute framebuffer coordinates
	origin GPoint // local (0,0) in absolute coordinates

	stack []gcState
}

func newGContext() *GContext {
	return &GContext{stack: make([]gcState, 0, 16)}
}

// reset rebinds the context to a framebuffer and restores default state.
// Called at the start of each render pass.
func (g *GContext) reset(fb *GBitmap) {
	g.fb = fb
	g.strokeColor = GColorBlack
	g.fillColor = GColorWhite
	g.textColor = GColorBlack
	g.strokeWidth = 1
	g.antialiased = false
	g.compOp = CompOpAssign
	g.clip = fb.Bounds()
	g.origin = GPointZero
	g.stack = g.stack[:0]
}

// SetStrokeColor sets the color used by Draw* outline primitives.
func (g *GContext) SetStrokeColor(c GColor) { g.strokeColor = c }

// SetFillColor sets the color used by Fill* primitives.
func (g *GContext) SetFillColor(c GColor) { g.fillColor = c }

// SetTextColor sets the color a text renderer should draw glyphs with.
// The core carries this state for its collaborator; it draws no text itself.
func (g *GContext) SetTextColor(c GColor) { g.textColor = c }

// SetStrokeWidth sets the stroke width in pixels. Zero is treated as one.
func (g *GContext) SetStrokeWidth(w uint8) {
	if w == 0 {
		w = 1
	}
	g.strokeWidth = w
}

// SetAntialiased records the antialiasing preference. The software
// rasterizer ignores it; the flag exists so drawing code written against a
// hardware-accelerated context behaves identically here.
func (g *GContext) SetAntialiased(enabled bool) { g.antialiased = enabled }

// SetCompOp sets the compositing mode for subsequent drawing.
func (g *GContext) SetCompOp(op CompOp) { g.compOp = op }

// --- Compositor interface ---

// save pushes the clip and origin. Paired with restore around each layer.
func (g *GContext) save() {
	g.stack = append(g.stack, gcState{g.clip, g.origin})
}

// restore pops the most recently saved clip and origin.
func (g *GContext) restore() {
	n := len(g.stack) - 1
	s := g.stack[n]
	g.stack = g.stack[:n]
	g.clip = s.clip
	g.origin = s.origin
}

// clipTo intersects the active clip with an absolute rect.
func (g *GContext) clipTo(abs GRect) {
	g.clip = g.clip.Intersection(abs)
}

// setOrigin places local (0,0) at the given absolute point.
func (g *GContext) setOrigin(abs GPoint) {
	g.origin = abs
}

// --- Primitives ---

// put writes one absolute-coordinate pixel, honoring clip and comp op.
func (g *GContext) put(abs GPoint, c GColor) {
	if !g.clip.ContainsPoint(abs) {
		return
	}
	if g.compOp == CompOpSet && c.A() == 0 {
		return
	}
	g.fb.SetPixel(abs, c)
}

// DrawPixel draws a single pixel at the local point p in the stroke color.
func (g *GContext) DrawPixel(p GPoint) {
	g.put(p.Add(g.origin), g.strokeColor)
}

// stamp draws a square brush of the current stroke width centered on abs.
func (g *GContext) stamp(abs GPoint, c GColor) {
	if g.strokeWidth <= 1 {
		g.put(abs, c)
		return
	}
	r := int16(g.strokeWidth / 2)
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			g.put(GPoint{abs.X + dx, abs.Y + dy}, c)
		}
	}
}

// DrawLine draws a line from p0 to p1 in the stroke color using the current
// stroke width. Bresenham; endpoints are included.
func (g *GContext) DrawLine(p0, p1 GPoint) {
	a := p0.Add(g.origin)
	b := p1.Add(g.origin)
	dx := abs16(b.X - a.X)
	dy := -abs16(b.Y - a.Y)
	sx := int16(1)
	if a.X > b.X {
		sx = -1
	}
	sy := int16(1)
	if a.Y > b.Y {
		sy = -1
	}
	err := dx + dy
	for {
		g.stamp(a, g.strokeColor)
		if a == b {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			a.X += sx
		}
		if e2 <= dx {
			err += dx
			a.Y += sy
		}
	}
}

// FillRect fills the local rect r with the fill color.
func (g *GContext) FillRect(r GRect) {
	g.fillRectAbs(r.Offset(g.origin.X, g.origin.Y), g.fillColor)
}

// fillRectAbs fills an absolute-coordinate rect, clipped, with spans.
func (g *GContext) fillRectAbs(abs GRect, c GColor) {
	abs = abs.Intersection(g.clip)
	if abs.IsEmpty() {
		return
	}
	if g.compOp == CompOpSet && c.A() == 0 {
		return
	}
	x0 := int(abs.Origin.X)
	x1 := int(abs.MaxX())
	for y := int(abs.Origin.Y); y < int(abs.MaxY()); y++ {
		row := g.fb.rowSlice(y, x0, x1)
		for i := range row {
			row[i] = c
		}
	}
}

// FillRoundRect fills the local rect r with the fill color, rounding all
// four corners to the given radius. A radius of zero fills the plain rect;
// the radius is clamped to half of the shorter side.
func (g *GContext) FillRoundRect(r GRect, radius int16) {
	r = r.Standardize()
	if r.IsEmpty() {
		return
	}
	if radius < 0 {
		radius = 0
	}
	if m := r.Size.W / 2; radius > m {
		radius = m
	}
	if m := r.Size.H / 2; radius > m {
		radius = m
	}
	abs := r.Offset(g.origin.X, g.origin.Y)
	if radius == 0 {
		g.fillRectAbs(abs, g.fillColor)
		return
	}
	// Corner rows shrink by the quarter-circle span width at their distance
	// from the corner arc centers; same scan as FillCircle.
	top := abs.Origin.Y
	bottom := abs.MaxY() - 1
	rr := int(radius) * int(radius)
	for y := top; y <= bottom; y++ {
		var dy int16
		switch {
		case y < top+radius:
			dy = top + radius - y
		case y > bottom-radius:
			dy = y - (bottom - radius)
		}
		inset := int16(0)
		if dy > 0 {
			dd := rr - int(dy)*int(dy)
			dx := int16(0)
			for int(dx+1)*int(dx+1) <= dd {
				dx++
			}
			inset = radius - dx
		}
		g.fillRectAbs(Rect(abs.Origin.X+inset, y, r.Size.W-2*inset, 1), g.fillColor)
	}
}

// DrawRect outlines the local rect r in the stroke color.
func (g *GContext) DrawRect(r GRect) {
	r = r.Standardize()
	if r.IsEmpty() {
		return
	}
	right := r.MaxX() - 1
	bottom := r.MaxY() - 1
	g.DrawLine(Pt(r.Origin.X, r.Origin.Y), Pt(right, r.Origin.Y))
	g.DrawLine(Pt(right, r.Origin.Y), Pt(right, bottom))
	g.DrawLine(Pt(right, bottom), Pt(r.Origin.X, bottom))
	g.DrawLine(Pt(r.Origin.X, bottom), Pt(r.Origin.X, r.Origin.Y))
}

// FillCircle fills a circle of the given radius centered at the local point
// center with the fill color.
func (g *GContext) FillCircle(center GPoint, radius int16) {
	if radius < 0 {
		return
	}
	c := center.Add(g.origin)
	rr := int(radius) * int(radius)
	for dy := -radius; dy <= radius; dy++ {
		dd := rr - int(dy)*int(dy)
		dx := int16(0)
		for int(dx+1)*int(dx+1) <= dd {
			dx++
		}
		g.fillRectAbs(Rect(c.X-dx, c.Y+dy, 2*dx+1, 1), g.fillColor)
	}
}

// DrawCircle outlines a circle of the given radius centered at the local
// point center in the stroke color. Midpoint algorithm.
func (g *GContext) DrawCircle(center GPoint, radius int16) {
	if radius < 0 {
		return
	}
	c := center.Add(g.origin)
	x := radius
	y := int16(0)
	err := int(1 - x)
	for x >= y {
		g.stamp(GPoint{c.X + x, c.Y + y}, g.strokeColor)
		g.stamp(GPoint{c.X + y, c.Y + x}, g.strokeColor)
		g.stamp(GPoint{c.X - y, c.Y + x}, g.strokeColor)
		g.stamp(GPoint{c.X - x, c.Y + y}, g.strokeColor)
		g.stamp(GPoint{c.X - x, c.Y - y}, g.strokeColor)
		g.stamp(GPoint{c.X - y, c.Y - x}, g.strokeColor)
		g.stamp(GPoint{c.X + y, c.Y - x}, g.strokeColor)
		g.stamp(GPoint{c.X + x, c.Y - y}, g.strokeColor)
		y++
		if err < 0 {
			err += 2*int(y) + 1
		} else {
			x--
			err += 2 * (int(y) - int(x) + 1)
		}
	}
}

// DrawBitmapIn blits the bitmap into the local rect r. The bitmap is not
// scaled; it tiles if r is larger than the bitmap and is cropped if smaller.
// CompOpSet skips the bitmap's transparent pixels.
func (g *GContext) DrawBitmapIn(bmp *GBitmap, r GRect) {
	if bmp == nil {
		return
	}
	abs := r.Offset(g.origin.X, g.origin.Y).Standardize()
	visible := abs.Intersection(g.clip)
	if visible.IsEmpty() {
		return
	}
	size := bmp.Size()
	for y := visible.Origin.Y; y < visible.MaxY(); y++ {
		sy := (y - abs.Origin.Y) % size.H
		for x := visible.Origin.X; x < visible.MaxX(); x++ {
			sx := (x - abs.Origin.X) % size.W
			c, _ := bmp.Pixel(GPoint{sx, sy})
			if g.compOp == CompOpSet && c.A() == 0 {
				continue
			}
			g.fb.SetPixel(GPoint{x, y}, c)
		}
	}
}

func abs16(v int16) int16 {
	if v < 0 {
		return -v
	}
	return v
}
