package cocoa

// PointerKind classifies a pointer event.
type PointerKind uint32

const (
	PointerDown PointerKind = 0
	PointerUp   PointerKind = 1
	PointerMove PointerKind = 2
	PointerDrag PointerKind = 3
)

// KeyKind classifies a key event.
type KeyKind uint32

const (
	KeyDown KeyKind = 0
	KeyUp   KeyKind = 1
)

// FocusKind classifies a focus transition.
type FocusKind uint32

const (
	FocusGained FocusKind = 0
	FocusLost   FocusKind = 1
)

// Pointer button ordinals as delivered to Router.PointerEvent. Anything
// the host reports outside {left, right, middle} is normalized to
// ButtonOther.
const (
	ButtonLeft   uint32 = 0
	ButtonRight  uint32 = 1
	ButtonMiddle uint32 = 2
	ButtonOther  uint32 = 3
)

// Router receives normalized events extracted inside host callbacks. It is
// the entire output surface of the bridge.
//
// Calls are synchronous and arrive on whatever thread the host runtime
// delivers its callbacks on (the main thread under normal AppKit
// operation). Implementations must not block and must not call back into
// the bridge's gateway from inside a router method.
type Router interface {
	// PointerEvent delivers a mouse press, release, move, or drag.
	// Coordinates are in window space; modifiers is the host's raw
	// modifier bitmask. Move events always report button 0.
	PointerEvent(token uint64, kind PointerKind, button uint32, x, y float64, modifiers uint32)

	// KeyEvent delivers a key press or release. keyCode is the host's
	// virtual key code; character is the first decoded rune of the
	// event's character string, or 0 when none was produced.
	KeyEvent(token uint64, kind KeyKind, keyCode uint32, character rune, modifiers uint32)

	// FocusEvent delivers a focus gain or loss for the window identified
	// by token.
	FocusEvent(token uint64, kind FocusKind)

	// Tick delivers one firing of an animation timer.
	Tick(token uint64)

	// Resize delivers the new content-area dimensions after a window
	// resize.
	Resize(token uint64, newWidth, newHeight float64)
}
