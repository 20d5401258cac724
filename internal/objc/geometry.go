package objc

import "math"

// MaxDimension is the largest width or height accepted for geometry that
// crosses the call boundary. Values beyond it indicate corrupted input,
// not a plausible window or view size.
const MaxDimension = 16384

// Point mirrors the runtime's 2D point struct (NSPoint/CGPoint). Passed
// and returned by value.
type Point struct {
	X float64
	Y float64
}

// Size mirrors the runtime's 2D size struct (NSSize/CGSize).
type Size struct {
	Width  float64
	Height float64
}

// Rect mirrors the runtime's rectangle struct (NSRect/CGRect): an origin
// plus a size, all float64, matching the foreign layout field for field.
type Rect struct {
	Origin Point
	Size   Size
}

// MakeRect builds a Rect from its four components.
func MakeRect(x, y, width, height float64) Rect {
	return Rect{Origin: Point{X: x, Y: y}, Size: Size{Width: width, Height: height}}
}

// ValidDimension reports whether v is a sane extent: finite, non-negative,
// and at most MaxDimension.
func ValidDimension(v float64) bool {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return false
	}
	return v >= 0 && v <= MaxDimension
}

// ValidRect reports whether both extents of r pass ValidDimension. The
// origin is unconstrained; windows may legitimately sit at negative
// coordinates on multi-display setups.
func ValidRect(r Rect) bool {
	return ValidDimension(r.Size.Width) && ValidDimension(r.Size.Height)
}
