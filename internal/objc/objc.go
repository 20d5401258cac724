// Package objc provides a validated dispatch layer over the Objective-C
// runtime. All foreign calls are routed through a Gateway that screens
// handles and geometry before the untyped call is made, so that gross
// corruption (nil, small-integer, or misaligned pointers) is rejected at
// the boundary instead of crashing inside libobjc.
//
// The validation is a heuristic, not a liveness proof: a handle that
// passes the screen can still be dangling, and a dangling handle that
// reaches objc_msgSend will crash the process. That residual risk is an
// accepted trade-off of this layer.
package objc

// Handle is an opaque reference to a runtime-resident entity: an object
// instance or a class. The runtime owns the referent; this layer borrows
// it for the duration of a single call or callback.
type Handle uintptr

// Selector is an opaque token naming an invocable behavior. Selectors are
// resolved once per distinct name and reused.
type Selector uintptr

// Imp is a trampoline entry point installed as the implementation of a
// method on a synthesized class. The host runtime invokes it with the
// receiving instance, the selector, and the method's single object
// argument (ignored for zero-argument methods such as capability queries).
type Imp func(self, cmd, arg uintptr) uintptr
