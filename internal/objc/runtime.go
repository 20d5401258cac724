package objc

// Runtime is the raw, unvalidated surface of the foreign object runtime.
// Each Send* method reconstructs one exact call signature (argument types
// and return type); there is deliberately no variadic entry point, because
// the foreign calling convention only holds when the signature is fixed at
// the call site.
//
// Callers should not use a Runtime directly: the Gateway wraps every
// method with boundary validation. The darwin implementation binds each
// method to objc_msgSend via purego; tests substitute an in-memory fake.
type Runtime interface {
	// Selector and class operations.
	RegisterSelector(name string) Selector
	LookupClass(name string) Handle
	AllocateClassPair(super Handle, name string) Handle
	AddMethod(class Handle, sel Selector, imp Imp, encoding string) bool
	RegisterClassPair(class Handle)

	// Calls returning a handle.
	Send(recv Handle, sel Selector) Handle
	SendString(recv Handle, sel Selector, s string) Handle
	SendHandle(recv Handle, sel Selector, arg Handle) Handle
	SendRect(recv Handle, sel Selector, r Rect) Handle
	SendRectStyle(recv Handle, sel Selector, r Rect, style, backing uint64, deferred bool) Handle
	SendUint(recv Handle, sel Selector, n uint64) Handle
	SendSize(recv Handle, sel Selector, s Size) Handle
	SendTimer(recv Handle, sel Selector, interval float64, target Handle, action Selector, userInfo Handle, repeats bool) Handle

	// Calls returning nothing.
	SendVoid(recv Handle, sel Selector)
	SendVoidHandle(recv Handle, sel Selector, arg Handle)
	SendVoidBool(recv Handle, sel Selector, flag bool)

	// Calls returning a value by value.
	RectValue(recv Handle, sel Selector) Rect
	PointValue(recv Handle, sel Selector) Point
	IntValue(recv Handle, sel Selector) int64
	UintValue(recv Handle, sel Selector) uint64
	StringValue(recv Handle, sel Selector) string
}
