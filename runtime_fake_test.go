package cocoa

import (
	"testing"

	"github.com/glasswind/cocoa/internal/objc"
)

// fakeHost is an in-memory objc.Runtime that simulates just enough of the
// host to drive the bridge end to end: class synthesis is recorded, timer
// scheduling captures its arguments, NSNumber boxing round-trips, and
// arbitrary call results can be scripted per (receiver, selector name).
// Tests fire installed trampolines directly, standing in for the host's
// event delivery.
type fakeHost struct {
	selectors map[string]objc.Selector
	selNames  map[objc.Selector]string
	nextSel   objc.Selector

	classes    map[string]objc.Handle // known to the "runtime"
	classNames map[objc.Handle]string
	nextHandle uintptr

	methods map[string]map[string]objc.Imp // class name -> selector -> imp

	boxed  map[objc.Handle]uint64 // NSNumber handle -> value
	timers []scheduledTimer

	results map[fakeKey]any
	calls   []string // "op selName" per foreign call
}

type scheduledTimer struct {
	timer    objc.Handle
	target   objc.Handle
	action   objc.Selector
	userInfo objc.Handle
	interval float64
	repeats  bool
}

type fakeKey struct {
	recv objc.Handle
	sel  string
}

func newFakeHost() *fakeHost {
	f := &fakeHost{
		selectors:  make(map[string]objc.Selector),
		selNames:   make(map[objc.Selector]string),
		nextSel:    0x100,
		classes:    make(map[string]objc.Handle),
		classNames: make(map[objc.Handle]string),
		nextHandle: 0x10000,
		methods:    make(map[string]map[string]objc.Imp),
		boxed:      make(map[objc.Handle]uint64),
		results:    make(map[fakeKey]any),
	}
	for _, name := range []string{"NSObject", "NSView", "NSNumber", "NSTimer", "NSImage", "NSBitmapImageRep"} {
		h := f.handle()
		f.classes[name] = h
		f.classNames[h] = name
	}
	return f
}

func (f *fakeHost) handle() objc.Handle {
	h := objc.Handle(f.nextHandle)
	f.nextHandle += 0x40
	return h
}

func (f *fakeHost) script(recv objc.Handle, sel string, result any) {
	f.results[fakeKey{recv, sel}] = result
}

func (f *fakeHost) imp(t *testing.T, class, sel string) objc.Imp {
	t.Helper()
	imp := f.methods[class][sel]
	if imp == nil {
		t.Fatalf("no %s installed on %s", sel, class)
	}
	return imp
}

func (f *fakeHost) synthesized(class string) bool {
	_, ok := f.methods[class]
	return ok
}

func (f *fakeHost) record(op string, sel objc.Selector) {
	f.calls = append(f.calls, op+" "+f.selNames[sel])
}

func (f *fakeHost) RegisterSelector(name string) objc.Selector {
	if sel, ok := f.selectors[name]; ok {
		return sel
	}
	sel := f.nextSel
	f.nextSel += 8
	f.selectors[name] = sel
	f.selNames[sel] = name
	return sel
}

func (f *fakeHost) LookupClass(name string) objc.Handle {
	return f.classes[name]
}

func (f *fakeHost) AllocateClassPair(super objc.Handle, name string) objc.Handle {
	h := f.handle()
	f.classNames[h] = name
	f.methods[name] = make(map[string]objc.Imp)
	return h
}

func (f *fakeHost) AddMethod(class objc.Handle, sel objc.Selector, imp objc.Imp, encoding string) bool {
	f.methods[f.classNames[class]][f.selNames[sel]] = imp
	return true
}

func (f *fakeHost) RegisterClassPair(class objc.Handle) {
	f.classes[f.classNames[class]] = class
}

func (f *fakeHost) resultHandle(op string, recv objc.Handle, sel objc.Selector) objc.Handle {
	f.record(op, sel)
	if r, ok := f.results[fakeKey{recv, f.selNames[sel]}]; ok {
		return r.(objc.Handle)
	}
	return f.handle()
}

func (f *fakeHost) Send(recv objc.Handle, sel objc.Selector) objc.Handle {
	if f.selNames[sel] == "userInfo" {
		f.record("Send", sel)
		for _, t := range f.timers {
			if t.timer == recv {
				return t.userInfo
			}
		}
		return 0
	}
	return f.resultHandle("Send", recv, sel)
}

func (f *fakeHost) SendString(recv objc.Handle, sel objc.Selector, s string) objc.Handle {
	return f.resultHandle("SendString", recv, sel)
}

func (f *fakeHost) SendHandle(recv objc.Handle, sel objc.Selector, arg objc.Handle) objc.Handle {
	return f.resultHandle("SendHandle", recv, sel)
}

func (f *fakeHost) SendRect(recv objc.Handle, sel objc.Selector, r objc.Rect) objc.Handle {
	return f.resultHandle("SendRect", recv, sel)
}

func (f *fakeHost) SendRectStyle(recv objc.Handle, sel objc.Selector, r objc.Rect, style, backing uint64, deferred bool) objc.Handle {
	return f.resultHandle("SendRectStyle", recv, sel)
}

func (f *fakeHost) SendUint(recv objc.Handle, sel objc.Selector, n uint64) objc.Handle {
	f.record("SendUint", sel)
	h := f.handle()
	if f.selNames[sel] == "numberWithUnsignedLongLong:" {
		f.boxed[h] = n
	}
	return h
}

func (f *fakeHost) SendSize(recv objc.Handle, sel objc.Selector, s objc.Size) objc.Handle {
	return f.resultHandle("SendSize", recv, sel)
}

func (f *fakeHost) SendTimer(recv objc.Handle, sel objc.Selector, interval float64, target objc.Handle, action objc.Selector, userInfo objc.Handle, repeats bool) objc.Handle {
	f.record("SendTimer", sel)
	timer := f.handle()
	f.timers = append(f.timers, scheduledTimer{
		timer:    timer,
		target:   target,
		action:   action,
		userInfo: userInfo,
		interval: interval,
		repeats:  repeats,
	})
	return timer
}

func (f *fakeHost) SendVoid(recv objc.Handle, sel objc.Selector) {
	f.record("SendVoid", sel)
}

func (f *fakeHost) SendVoidHandle(recv objc.Handle, sel objc.Selector, arg objc.Handle) {
	f.record("SendVoidHandle", sel)
}

func (f *fakeHost) SendVoidBool(recv objc.Handle, sel objc.Selector, flag bool) {
	f.record("SendVoidBool", sel)
}

func (f *fakeHost) RectValue(recv objc.Handle, sel objc.Selector) objc.Rect {
	f.record("RectValue", sel)
	if r, ok := f.results[fakeKey{recv, f.selNames[sel]}]; ok {
		return r.(objc.Rect)
	}
	return objc.Rect{}
}

func (f *fakeHost) PointValue(recv objc.Handle, sel objc.Selector) objc.Point {
	f.record("PointValue", sel)
	if r, ok := f.results[fakeKey{recv, f.selNames[sel]}]; ok {
		return r.(objc.Point)
	}
	return objc.Point{}
}

func (f *fakeHost) IntValue(recv objc.Handle, sel objc.Selector) int64 {
	f.record("IntValue", sel)
	if r, ok := f.results[fakeKey{recv, f.selNames[sel]}]; ok {
		return r.(int64)
	}
	return 0
}

func (f *fakeHost) UintValue(recv objc.Handle, sel objc.Selector) uint64 {
	f.record("UintValue", sel)
	if f.selNames[sel] == "unsignedLongLongValue" {
		if v, ok := f.boxed[recv]; ok {
			return v
		}
	}
	if r, ok := f.results[fakeKey{recv, f.selNames[sel]}]; ok {
		return r.(uint64)
	}
	return 0
}

func (f *fakeHost) StringValue(recv objc.Handle, sel objc.Selector) string {
	f.record("StringValue", sel)
	if r, ok := f.results[fakeKey{recv, f.selNames[sel]}]; ok {
		return r.(string)
	}
	return ""
}
