package objc

import (
	"log"
	"sync"
)

// Gateway is the validated invocation surface. It mirrors the Runtime call
// set, but every operation screens its handle arguments with ValidHandle
// and its geometry with ValidRect before the foreign call is made. A
// rejected call emits one diagnostic line and returns the shape's zero
// value; the foreign runtime is never entered with an argument that failed
// the screen.
//
// Rejections are local by design: the caller sees a zero Handle (or zero
// struct) and the process continues.
type Gateway struct {
	rt   Runtime
	diag *log.Logger // nil disables diagnostics

	mu        sync.Mutex
	selectors map[string]Selector
}

// NewGateway wraps rt with boundary validation. diag receives one line per
// rejection; pass nil to silence diagnostics.
func NewGateway(rt Runtime, diag *log.Logger) *Gateway {
	return &Gateway{
		rt:        rt,
		diag:      diag,
		selectors: make(map[string]Selector),
	}
}

func (g *Gateway) rejectf(op, format string, args ...any) {
	if g.diag != nil {
		g.diag.Printf("[gateway] "+op+": "+format, args...)
	}
}

// Selector resolves a behavior name, caching the result so each distinct
// name is registered with the runtime exactly once.
func (g *Gateway) Selector(name string) Selector {
	g.mu.Lock()
	defer g.mu.Unlock()
	if sel, ok := g.selectors[name]; ok {
		return sel
	}
	sel := g.rt.RegisterSelector(name)
	if !ValidSelector(sel) {
		g.rejectf("Selector", "failed to register %q", name)
		return 0
	}
	g.selectors[name] = sel
	return sel
}

// Class looks up a class by name, returning zero if the runtime does not
// know it.
func (g *Gateway) Class(name string) Handle {
	return g.rt.LookupClass(name)
}

// Runtime returns the unvalidated runtime underneath the gateway. It is
// exposed for the class synthesis path, which needs the raw class-pair
// operations; call shims should always go through the gateway.
func (g *Gateway) Runtime() Runtime {
	return g.rt
}

// checkCall validates the receiver/selector pair shared by every shim.
func (g *Gateway) checkCall(op string, recv Handle, sel Selector) bool {
	if !ValidHandle(recv) {
		g.rejectf(op, "invalid receiver %#x", uintptr(recv))
		return false
	}
	if !ValidSelector(sel) {
		g.rejectf(op, "nil selector")
		return false
	}
	return true
}

// Send performs a no-argument call returning a handle.
func (g *Gateway) Send(recv Handle, sel Selector) Handle {
	if !g.checkCall("Send", recv, sel) {
		return 0
	}
	return g.rt.Send(recv, sel)
}

// SendString performs a one-string-argument call returning a handle.
func (g *Gateway) SendString(recv Handle, sel Selector, s string) Handle {
	if !g.checkCall("SendString", recv, sel) {
		return 0
	}
	return g.rt.SendString(recv, sel, s)
}

// SendHandle performs a one-handle-argument call returning a handle.
func (g *Gateway) SendHandle(recv Handle, sel Selector, arg Handle) Handle {
	if !g.checkCall("SendHandle", recv, sel) {
		return 0
	}
	if !ValidHandle(arg) {
		g.rejectf("SendHandle", "invalid argument %#x", uintptr(arg))
		return 0
	}
	return g.rt.SendHandle(recv, sel, arg)
}

// SendRect performs a one-rectangle-argument call returning a handle. The
// rectangle is copied by value and its extents are checked against the
// geometry policy before the call.
func (g *Gateway) SendRect(recv Handle, sel Selector, r Rect) Handle {
	if !g.checkCall("SendRect", recv, sel) {
		return 0
	}
	if !ValidRect(r) {
		g.rejectf("SendRect", "rejected rect w=%v h=%v", r.Size.Width, r.Size.Height)
		return 0
	}
	return g.rt.SendRect(recv, sel, r)
}

// SendRectStyle performs a rectangle-plus-three-scalar call returning a
// handle (the window initializer shape).
func (g *Gateway) SendRectStyle(recv Handle, sel Selector, r Rect, style, backing uint64, deferred bool) Handle {
	if !g.checkCall("SendRectStyle", recv, sel) {
		return 0
	}
	if !ValidRect(r) {
		g.rejectf("SendRectStyle", "rejected rect w=%v h=%v", r.Size.Width, r.Size.Height)
		return 0
	}
	if style > 0xFFFFFFFF || backing > 0xFFFFFFFF {
		g.rejectf("SendRectStyle", "scalar out of range style=%d backing=%d", style, backing)
		return 0
	}
	return g.rt.SendRectStyle(recv, sel, r, style, backing, deferred)
}

// SendUint performs a one-unsigned-integer-argument call returning a
// handle.
func (g *Gateway) SendUint(recv Handle, sel Selector, n uint64) Handle {
	if !g.checkCall("SendUint", recv, sel) {
		return 0
	}
	return g.rt.SendUint(recv, sel, n)
}

// SendSize performs a one-size-argument call returning a handle.
func (g *Gateway) SendSize(recv Handle, sel Selector, s Size) Handle {
	if !g.checkCall("SendSize", recv, sel) {
		return 0
	}
	if !ValidDimension(s.Width) || !ValidDimension(s.Height) {
		g.rejectf("SendSize", "rejected size w=%v h=%v", s.Width, s.Height)
		return 0
	}
	return g.rt.SendSize(recv, sel, s)
}

// SendTimer performs the scheduled-timer call shape: interval, target,
// action selector, user info, repeat flag.
func (g *Gateway) SendTimer(recv Handle, sel Selector, interval float64, target Handle, action Selector, userInfo Handle, repeats bool) Handle {
	if !g.checkCall("SendTimer", recv, sel) {
		return 0
	}
	if !ValidHandle(target) {
		g.rejectf("SendTimer", "invalid target %#x", uintptr(target))
		return 0
	}
	if !ValidSelector(action) {
		g.rejectf("SendTimer", "nil action selector")
		return 0
	}
	if !ValidHandle(userInfo) {
		g.rejectf("SendTimer", "invalid userInfo %#x", uintptr(userInfo))
		return 0
	}
	return g.rt.SendTimer(recv, sel, interval, target, action, userInfo, repeats)
}

// SendVoid performs a no-argument call returning nothing.
func (g *Gateway) SendVoid(recv Handle, sel Selector) {
	if !g.checkCall("SendVoid", recv, sel) {
		return
	}
	g.rt.SendVoid(recv, sel)
}

// SendVoidHandle performs a one-handle-argument call returning nothing.
// A zero argument is allowed; some setters accept nil.
func (g *Gateway) SendVoidHandle(recv Handle, sel Selector, arg Handle) {
	if !g.checkCall("SendVoidHandle", recv, sel) {
		return
	}
	if arg != 0 && !ValidHandle(arg) {
		g.rejectf("SendVoidHandle", "invalid argument %#x", uintptr(arg))
		return
	}
	g.rt.SendVoidHandle(recv, sel, arg)
}

// SendVoidBool performs a one-boolean-argument call returning nothing.
func (g *Gateway) SendVoidBool(recv Handle, sel Selector, flag bool) {
	if !g.checkCall("SendVoidBool", recv, sel) {
		return
	}
	g.rt.SendVoidBool(recv, sel, flag)
}

// RectValue performs a no-argument call returning a rectangle by value.
func (g *Gateway) RectValue(recv Handle, sel Selector) Rect {
	if !g.checkCall("RectValue", recv, sel) {
		return Rect{}
	}
	return g.rt.RectValue(recv, sel)
}

// PointValue performs a no-argument call returning a point by value.
func (g *Gateway) PointValue(recv Handle, sel Selector) Point {
	if !g.checkCall("PointValue", recv, sel) {
		return Point{}
	}
	return g.rt.PointValue(recv, sel)
}

// IntValue performs a no-argument call returning a signed integer.
func (g *Gateway) IntValue(recv Handle, sel Selector) int64 {
	if !g.checkCall("IntValue", recv, sel) {
		return 0
	}
	return g.rt.IntValue(recv, sel)
}

// UintValue performs a no-argument call returning an unsigned integer.
func (g *Gateway) UintValue(recv Handle, sel Selector) uint64 {
	if !g.checkCall("UintValue", recv, sel) {
		return 0
	}
	return g.rt.UintValue(recv, sel)
}

// StringValue performs a no-argument call returning a C string, copied
// into a Go string.
func (g *Gateway) StringValue(recv Handle, sel Selector) string {
	if !g.checkCall("StringValue", recv, sel) {
		return ""
	}
	return g.rt.StringValue(recv, sel)
}
