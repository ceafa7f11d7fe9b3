package chime

import "errors"

// GColor is an 8-bit color with 2 bits per channel, packed as aarrggbb.
// This matches the display hardware's native encoding, so the framebuffer
// stores GColor values directly and no conversion happens at draw time.
type GColor uint8

// GColorFrom packs 2-bit channel values (each 0-3) into a GColor.
func GColorFrom(a, r, g, b uint8) GColor {
	return GColor(a&3)<<6 | GColor(r&3)<<4 | GColor(g&3)<<2 | GColor(b&3)
}

// GColorFromRGB builds an opaque GColor from 8-bit channel values.
// Each channel is quantized to 2 bits (the top two bits are kept).
func GColorFromRGB(r, g, b uint8) GColor {
	return GColorFrom(3, r>>6, g>>6, b>>6)
}

// GColorFromRGBA builds a GColor from 8-bit channel values including alpha.
func GColorFromRGBA(r, g, b, a uint8) GColor {
	return GColorFrom(a>>6, r>>6, g>>6, b>>6)
}

// A returns the 2-bit alpha channel (0-3).
func (c GColor) A() uint8 { return uint8(c>>6) & 3 }

// R returns the 2-bit red channel (0-3).
func (c GColor) R() uint8 { return uint8(c>>4) & 3 }

// G returns the 2-bit green channel (0-3).
func (c GColor) G() uint8 { return uint8(c>>2) & 3 }

// B returns the 2-bit blue channel (0-3).
func (c GColor) B() uint8 { return uint8(c) & 3 }

// expand2 maps a 2-bit channel to the full 8-bit range: 0, 85, 170, 255.
func expand2(v uint8) uint8 { return v * 85 }

// RGBA expands the color to 8-bit channels for presentation.
func (c GColor) RGBA() (r, g, b, a uint8) {
	return expand2(c.R()), expand2(c.G()), expand2(c.B()), expand2(c.A())
}

// Named colors. The palette follows the watch's 64-color gamut; only the
// handful the core itself needs are named here.
const (
	GColorClear     GColor = 0x00
	GColorBlack     GColor = 0xC0
	GColorWhite     GColor = 0xFF
	GColorRed       GColor = 0xF0
	GColorGreen     GColor = 0xCC
	GColorBlue      GColor = 0xC3
	GColorYellow    GColor = 0xFC
	GColorLightGray GColor = 0xEA
	GColorDarkGray  GColor = 0xD5
)

// ButtonID identifies one of the four physical buttons.
type ButtonID uint8

const (
	ButtonBack ButtonID = iota
	ButtonUp
	ButtonSelect
	ButtonDown

	// NumButtons is the number of physical buttons.
	NumButtons = 4
)

// String returns the button's name.
func (b ButtonID) String() string {
	switch b {
	case ButtonBack:
		return "back"
	case ButtonUp:
		return "up"
	case ButtonSelect:
		return "select"
	case ButtonDown:
		return "down"
	}
	return "unknown"
}

// Error taxonomy. Operations on the tree, the animation scheduler, and the
// input router report failures with these sentinels (possibly wrapped);
// callers test with errors.Is.
var (
	// ErrInvalidReference reports an operation on a nil or destroyed object.
	ErrInvalidReference = errors.New("chime: invalid reference")

	// ErrInvalidArgument reports an out-of-range or nonsensical parameter.
	ErrInvalidArgument = errors.New("chime: invalid argument")

	// ErrImmutable reports an attempt to mutate an animation that has been
	// scheduled or nested in a composite.
	ErrImmutable = errors.New("chime: animation is immutable")

	// ErrBusy reports an operation that conflicts with one in progress,
	// such as pushing a window that is already on the stack.
	ErrBusy = errors.New("chime: busy")

	// ErrNotFound reports a lookup or removal of an absent object.
	ErrNotFound = errors.New("chime: not found")

	// ErrResourceExhausted reports an allocation or queue-capacity failure.
	// On a constrained device this is an expected, recoverable condition.
	ErrResourceExhausted = errors.New("chime: resource exhausted")
)
