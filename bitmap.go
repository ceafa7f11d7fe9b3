package chime

import "fmt"

// GBitmap is a CPU-side pixel buffer of GColor values. The compositor's
// framebuffer is a GBitmap, and render callbacks ultimately write into one
// through a GContext. A GBitmap may be a view into another bitmap's storage
// (see SubBitmap); views share pixels with their parent.
//
// Decoded image resources arrive from the resource loader already in this
// shape; the core never parses image file formats.
type GBitmap struct {
	pixels []GColor
	stride int   // pixels per backing-store row
	bounds GRect // addressed region, in backing-store coordinates
}

// NewGBitmap allocates a bitmap of the given size, cleared to GColorClear.
// Returns ErrInvalidArgument for non-positive dimensions.
func NewGBitmap(size GSize) (*GBitmap, error) {
	if size.W <= 0 || size.H <= 0 {
		return nil, fmt.Errorf("chime: bitmap size %dx%d: %w", size.W, size.H, ErrInvalidArgument)
	}
	return &GBitmap{
		pixels: make([]GColor, int(size.W)*int(size.H)),
		stride: int(size.W),
		bounds: RectFromSize(size),
	}, nil
}

// Size returns the bitmap's addressable size.
func (b *GBitmap) Size() GSize { return b.bounds.Size }

// Bounds returns the bitmap's addressable region as a rect at the origin.
// For sub-bitmaps this hides the offset into the parent's storage; callers
// always address pixels relative to (0, 0).
func (b *GBitmap) Bounds() GRect { return RectFromSize(b.bounds.Size) }

// SubBitmap returns a view of the region r (relative to b's bounds) that
// shares b's pixel storage. Writes through the view are visible in b.
// The region is clipped to b's bounds; a fully outside region is an error.
func (b *GBitmap) SubBitmap(r GRect) (*GBitmap, error) {
	if b == nil {
		return nil, ErrInvalidReference
	}
	clipped := r.Offset(b.bounds.Origin.X, b.bounds.Origin.Y).Intersection(b.bounds)
	if clipped.IsEmpty() {
		return nil, fmt.Errorf("chime: sub-bitmap region outside bounds: %w", ErrInvalidArgument)
	}
	return &GBitmap{pixels: b.pixels, stride: b.stride, bounds: clipped}, nil
}

// index returns the backing-store index for the local point p, which must be
// inside the bounds.
func (b *GBitmap) index(p GPoint) int {
	return (int(b.bounds.Origin.Y)+int(p.Y))*b.stride + int(b.bounds.Origin.X) + int(p.X)
}

// Pixel returns the color at p and whether p is inside the bitmap.
func (b *GBitmap) Pixel(p GPoint) (GColor, bool) {
	if !b.Bounds().ContainsPoint(p) {
		return 0, false
	}
	return b.pixels[b.index(p)], true
}

// SetPixel writes the color at p. Out-of-bounds points are ignored.
func (b *GBitmap) SetPixel(p GPoint, c GColor) {
	if !b.Bounds().ContainsPoint(p) {
		return
	}
	b.pixels[b.index(p)] = c
}

// Fill sets every pixel in the bitmap to c.
func (b *GBitmap) Fill(c GColor) {
	w := int(b.bounds.Size.W)
	for y := 0; y < int(b.bounds.Size.H); y++ {
		row := b.rowSlice(y, 0, w)
		for i := range row {
			row[i] = c
		}
	}
}

// rowSlice returns the pixels of local row y from column x0 (inclusive) to
// x1 (exclusive). Callers must pre-clip the range to the bounds.
func (b *GBitmap) rowSlice(y, x0, x1 int) []GColor {
	base := (int(b.bounds.Origin.Y)+y)*b.stride + int(b.bounds.Origin.X)
	return b.pixels[base+x0 : base+x1]
}
