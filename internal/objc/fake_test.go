package objc

// fakeRuntime is an in-memory Runtime for tests. Selectors are interned
// sequentially, classes live in a map, and call results are scripted per
// (receiver, selector name). Every foreign call is recorded so tests can
// assert that rejected operations never reached the runtime.
type fakeRuntime struct {
	selectors map[string]Selector
	selNames  map[Selector]string
	nextSel   Selector

	classes    map[string]Handle
	nextHandle uintptr

	methods    map[Handle][]installedMethod
	registered map[Handle]bool

	failSelectors map[string]bool
	failMethods   map[string]bool
	failAlloc     bool

	results map[callKey]any
	calls   []recordedCall
}

type installedMethod struct {
	sel      Selector
	imp      Imp
	encoding string
}

type callKey struct {
	recv Handle
	sel  string
}

type recordedCall struct {
	op   string
	recv Handle
	sel  string
}

func newFakeRuntime() *fakeRuntime {
	return &fakeRuntime{
		selectors:     make(map[string]Selector),
		selNames:      make(map[Selector]string),
		nextSel:       0x100,
		classes:       make(map[string]Handle),
		nextHandle:    0x10000,
		methods:       make(map[Handle][]installedMethod),
		registered:    make(map[Handle]bool),
		failSelectors: make(map[string]bool),
		failMethods:   make(map[string]bool),
		results:       make(map[callKey]any),
	}
}

func (f *fakeRuntime) newHandle() Handle {
	h := Handle(f.nextHandle)
	f.nextHandle += 0x40
	return h
}

// addClass registers a class the "runtime" already knows, e.g. NSObject.
func (f *fakeRuntime) addClass(name string) Handle {
	h := f.newHandle()
	f.classes[name] = h
	return h
}

func (f *fakeRuntime) script(recv Handle, sel string, result any) {
	f.results[callKey{recv, sel}] = result
}

func (f *fakeRuntime) record(op string, recv Handle, sel Selector) {
	f.calls = append(f.calls, recordedCall{op, recv, f.selNames[sel]})
}

func (f *fakeRuntime) callCount() int { return len(f.calls) }

func (f *fakeRuntime) RegisterSelector(name string) Selector {
	if f.failSelectors[name] {
		return 0
	}
	if sel, ok := f.selectors[name]; ok {
		return sel
	}
	sel := f.nextSel
	f.nextSel += 8
	f.selectors[name] = sel
	f.selNames[sel] = name
	return sel
}

func (f *fakeRuntime) LookupClass(name string) Handle {
	return f.classes[name]
}

func (f *fakeRuntime) AllocateClassPair(super Handle, name string) Handle {
	if f.failAlloc {
		return 0
	}
	return f.newHandle()
}

func (f *fakeRuntime) AddMethod(class Handle, sel Selector, imp Imp, encoding string) bool {
	name := f.selNames[sel]
	if f.failMethods[name] {
		return false
	}
	f.methods[class] = append(f.methods[class], installedMethod{sel, imp, encoding})
	return true
}

func (f *fakeRuntime) RegisterClassPair(class Handle) {
	f.registered[class] = true
}

func (f *fakeRuntime) handleResult(op string, recv Handle, sel Selector) Handle {
	f.record(op, recv, sel)
	if r, ok := f.results[callKey{recv, f.selNames[sel]}]; ok {
		return r.(Handle)
	}
	return f.newHandle()
}

func (f *fakeRuntime) Send(recv Handle, sel Selector) Handle {
	return f.handleResult("Send", recv, sel)
}

func (f *fakeRuntime) SendString(recv Handle, sel Selector, s string) Handle {
	return f.handleResult("SendString", recv, sel)
}

func (f *fakeRuntime) SendHandle(recv Handle, sel Selector, arg Handle) Handle {
	return f.handleResult("SendHandle", recv, sel)
}

func (f *fakeRuntime) SendRect(recv Handle, sel Selector, r Rect) Handle {
	return f.handleResult("SendRect", recv, sel)
}

func (f *fakeRuntime) SendRectStyle(recv Handle, sel Selector, r Rect, style, backing uint64, deferred bool) Handle {
	return f.handleResult("SendRectStyle", recv, sel)
}

func (f *fakeRuntime) SendUint(recv Handle, sel Selector, n uint64) Handle {
	return f.handleResult("SendUint", recv, sel)
}

func (f *fakeRuntime) SendSize(recv Handle, sel Selector, s Size) Handle {
	return f.handleResult("SendSize", recv, sel)
}

func (f *fakeRuntime) SendTimer(recv Handle, sel Selector, interval float64, target Handle, action Selector, userInfo Handle, repeats bool) Handle {
	return f.handleResult("SendTimer", recv, sel)
}

func (f *fakeRuntime) SendVoid(recv Handle, sel Selector) {
	f.record("SendVoid", recv, sel)
}

func (f *fakeRuntime) SendVoidHandle(recv Handle, sel Selector, arg Handle) {
	f.record("SendVoidHandle", recv, sel)
}

func (f *fakeRuntime) SendVoidBool(recv Handle, sel Selector, flag bool) {
	f.record("SendVoidBool", recv, sel)
}

func (f *fakeRuntime) RectValue(recv Handle, sel Selector) Rect {
	f.record("RectValue", recv, sel)
	if r, ok := f.results[callKey{recv, f.selNames[sel]}]; ok {
		return r.(Rect)
	}
	return Rect{}
}

func (f *fakeRuntime) PointValue(recv Handle, sel Selector) Point {
	f.record("PointValue", recv, sel)
	if r, ok := f.results[callKey{recv, f.selNames[sel]}]; ok {
		return r.(Point)
	}
	return Point{}
}

func (f *fakeRuntime) IntValue(recv Handle, sel Selector) int64 {
	f.record("IntValue", recv, sel)
	if r, ok := f.results[callKey{recv, f.selNames[sel]}]; ok {
		return r.(int64)
	}
	return 0
}

func (f *fakeRuntime) UintValue(recv Handle, sel Selector) uint64 {
	f.record("UintValue", recv, sel)
	if r, ok := f.results[callKey{recv, f.selNames[sel]}]; ok {
		return r.(uint64)
	}
	return 0
}

func (f *fakeRuntime) StringValue(recv Handle, sel Selector) string {
	f.record("StringValue", recv, sel)
	if r, ok := f.results[callKey{recv, f.selNames[sel]}]; ok {
		return r.(string)
	}
	return ""
}
