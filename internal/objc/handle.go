package objc

const (
	// addressFloor is the lowest address accepted for any handle. Anything
	// below it is almost certainly a small integer smuggled into a pointer.
	addressFloor = 0x1000

	// addressAlign is the natural word size; runtime objects are always
	// word aligned.
	addressAlign = 8
)

// ValidPointer reports whether a raw address looks like a plausible
// runtime pointer: non-zero, at or above the address floor, and word
// aligned. It has no side effects and never dereferences the address.
func ValidPointer(p uintptr) bool {
	if p == 0 {
		return false
	}
	if p < addressFloor {
		return false
	}
	return p%addressAlign == 0
}

// ValidHandle reports whether h may be passed to the foreign runtime.
func ValidHandle(h Handle) bool {
	return ValidPointer(uintptr(h))
}

// ValidSelector reports whether s is usable. Selector values come out of
// the runtime's own interning table, so non-zero is the only requirement.
func ValidSelector(s Selector) bool {
	return s != 0
}
