//go:build darwin

package objc

import (
	"fmt"
	"os"
	"runtime"
	"sync"

	"github.com/ebitengine/purego"
)

const (
	defaultObjcPath     = "/usr/lib/libobjc.A.dylib"
	foundationFramework = "/System/Library/Frameworks/Foundation.framework/Foundation"
	appKitFramework     = "/System/Library/Frameworks/AppKit.framework/AppKit"
)

var (
	loadOnce sync.Once
	loadErr  error
	loaded   *darwinRuntime
)

// Runtime function pointers, one typed variable per call shape. The
// msgSend* variables all bind the same objc_msgSend symbol; the Go
// signature of each variable is what reconstructs the foreign calling
// convention for that shape.
var (
	fnSelRegisterName   func(name string) uintptr
	fnGetClass          func(name string) uintptr
	fnAllocateClassPair func(super uintptr, name string, extraBytes uintptr) uintptr
	fnAddMethod         func(class, sel, imp uintptr, types string) bool
	fnRegisterClassPair func(class uintptr)

	msgSend          func(recv, sel uintptr) uintptr
	msgSendString    func(recv, sel uintptr, s string) uintptr
	msgSendHandle    func(recv, sel, arg uintptr) uintptr
	msgSendRect      func(recv, sel uintptr, r Rect) uintptr
	msgSendRectStyle func(recv, sel uintptr, r Rect, style, backing uint64, deferred bool) uintptr
	msgSendUint      func(recv, sel uintptr, n uint64) uintptr
	msgSendSize      func(recv, sel uintptr, s Size) uintptr
	msgSendTimer     func(recv, sel uintptr, interval float64, target, action, userInfo uintptr, repeats bool) uintptr
	msgSendVoid      func(recv, sel uintptr)
	msgSendVoidPtr   func(recv, sel, arg uintptr)
	msgSendVoidBool  func(recv, sel uintptr, flag bool)
	msgSendRectRet   func(recv, sel uintptr) Rect
	msgSendPointRet  func(recv, sel uintptr) Point
	msgSendIntRet    func(recv, sel uintptr) int64
	msgSendUintRet   func(recv, sel uintptr) uint64
	msgSendStrRet    func(recv, sel uintptr) string
)

// LoadRuntime loads libobjc plus the Foundation and AppKit frameworks and
// binds every call shape. libPath overrides the libobjc location; empty
// uses the GLASSWIND_OBJC_PATH environment variable, then the system
// default. The load happens once per process.
func LoadRuntime(libPath string) (Runtime, error) {
	loadOnce.Do(func() {
		path := libPath
		if path == "" {
			path = os.Getenv("GLASSWIND_OBJC_PATH")
		}
		if path == "" {
			path = defaultObjcPath
		}

		lib, err := purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_GLOBAL)
		if err != nil {
			loadErr = fmt.Errorf("objc: loading %s: %w", path, err)
			return
		}
		// AppKit brings in NSView/NSWindow/NSTimer; Foundation the value
		// classes. Loaded for their side effect of registering classes.
		if _, err := purego.Dlopen(foundationFramework, purego.RTLD_NOW|purego.RTLD_GLOBAL); err != nil {
			loadErr = fmt.Errorf("objc: loading Foundation: %w", err)
			return
		}
		if _, err := purego.Dlopen(appKitFramework, purego.RTLD_NOW|purego.RTLD_GLOBAL); err != nil {
			loadErr = fmt.Errorf("objc: loading AppKit: %w", err)
			return
		}

		purego.RegisterLibFunc(&fnSelRegisterName, lib, "sel_registerName")
		purego.RegisterLibFunc(&fnGetClass, lib, "objc_getClass")
		purego.RegisterLibFunc(&fnAllocateClassPair, lib, "objc_allocateClassPair")
		purego.RegisterLibFunc(&fnAddMethod, lib, "class_addMethod")
		purego.RegisterLibFunc(&fnRegisterClassPair, lib, "objc_registerClassPair")

		purego.RegisterLibFunc(&msgSend, lib, "objc_msgSend")
		purego.RegisterLibFunc(&msgSendString, lib, "objc_msgSend")
		purego.RegisterLibFunc(&msgSendHandle, lib, "objc_msgSend")
		purego.RegisterLibFunc(&msgSendRect, lib, "objc_msgSend")
		purego.RegisterLibFunc(&msgSendRectStyle, lib, "objc_msgSend")
		purego.RegisterLibFunc(&msgSendUint, lib, "objc_msgSend")
		purego.RegisterLibFunc(&msgSendSize, lib, "objc_msgSend")
		purego.RegisterLibFunc(&msgSendTimer, lib, "objc_msgSend")
		purego.RegisterLibFunc(&msgSendVoid, lib, "objc_msgSend")
		purego.RegisterLibFunc(&msgSendVoidPtr, lib, "objc_msgSend")
		purego.RegisterLibFunc(&msgSendVoidBool, lib, "objc_msgSend")
		purego.RegisterLibFunc(&msgSendPointRet, lib, "objc_msgSend")
		purego.RegisterLibFunc(&msgSendIntRet, lib, "objc_msgSend")
		purego.RegisterLibFunc(&msgSendUintRet, lib, "objc_msgSend")
		purego.RegisterLibFunc(&msgSendStrRet, lib, "objc_msgSend")

		// A 32-byte struct return goes through a hidden pointer on amd64,
		// which objc routes through the _stret variant. arm64 returns it
		// in registers through plain objc_msgSend.
		if runtime.GOARCH == "amd64" {
			purego.RegisterLibFunc(&msgSendRectRet, lib, "objc_msgSend_stret")
		} else {
			purego.RegisterLibFunc(&msgSendRectRet, lib, "objc_msgSend")
		}

		loaded = &darwinRuntime{}
	})
	if loadErr != nil {
		return nil, loadErr
	}
	return loaded, nil
}

// darwinRuntime implements Runtime over the bound function pointers.
type darwinRuntime struct{}

func (*darwinRuntime) RegisterSelector(name string) Selector {
	return Selector(fnSelRegisterName(name))
}

func (*darwinRuntime) LookupClass(name string) Handle {
	return Handle(fnGetClass(name))
}

func (*darwinRuntime) AllocateClassPair(super Handle, name string) Handle {
	return Handle(fnAllocateClassPair(uintptr(super), name, 0))
}

func (*darwinRuntime) AddMethod(class Handle, sel Selector, imp Imp, encoding string) bool {
	entry := purego.NewCallback(func(self, cmd, arg uintptr) uintptr {
		return imp(self, cmd, arg)
	})
	return fnAddMethod(uintptr(class), uintptr(sel), entry, encoding)
}

func (*darwinRuntime) RegisterClassPair(class Handle) {
	fnRegisterClassPair(uintptr(class))
}

func (*darwinRuntime) Send(recv Handle, sel Selector) Handle {
	return Handle(msgSend(uintptr(recv), uintptr(sel)))
}

func (*darwinRuntime) SendString(recv Handle, sel Selector, s string) Handle {
	return Handle(msgSendString(uintptr(recv), uintptr(sel), s))
}

func (*darwinRuntime) SendHandle(recv Handle, sel Selector, arg Handle) Handle {
	return Handle(msgSendHandle(uintptr(recv), uintptr(sel), uintptr(arg)))
}

func (*darwinRuntime) SendRect(recv Handle, sel Selector, r Rect) Handle {
	return Handle(msgSendRect(uintptr(recv), uintptr(sel), r))
}

func (*darwinRuntime) SendRectStyle(recv Handle, sel Selector, r Rect, style, backing uint64, deferred bool) Handle {
	return Handle(msgSendRectStyle(uintptr(recv), uintptr(sel), r, style, backing, deferred))
}

func (*darwinRuntime) SendUint(recv Handle, sel Selector, n uint64) Handle {
	return Handle(msgSendUint(uintptr(recv), uintptr(sel), n))
}

func (*darwinRuntime) SendSize(recv Handle, sel Selector, s Size) Handle {
	return Handle(msgSendSize(uintptr(recv), uintptr(sel), s))
}

func (*darwinRuntime) SendTimer(recv Handle, sel Selector, interval float64, target Handle, action Selector, userInfo Handle, repeats bool) Handle {
	return Handle(msgSendTimer(uintptr(recv), uintptr(sel), interval, uintptr(target), uintptr(action), uintptr(userInfo), repeats))
}

func (*darwinRuntime) SendVoid(recv Handle, sel Selector) {
	msgSendVoid(uintptr(recv), uintptr(sel))
}

func (*darwinRuntime) SendVoidHandle(recv Handle, sel Selector, arg Handle) {
	msgSendVoidPtr(uintptr(recv), uintptr(sel), uintptr(arg))
}

func (*darwinRuntime) SendVoidBool(recv Handle, sel Selector, flag bool) {
	msgSendVoidBool(uintptr(recv), uintptr(sel), flag)
}

func (*darwinRuntime) RectValue(recv Handle, sel Selector) Rect {
	return msgSendRectRet(uintptr(recv), uintptr(sel))
}

func (*darwinRuntime) PointValue(recv Handle, sel Selector) Point {
	return msgSendPointRet(uintptr(recv), uintptr(sel))
}

func (*darwinRuntime) IntValue(recv Handle, sel Selector) int64 {
	return msgSendIntRet(uintptr(recv), uintptr(sel))
}

func (*darwinRuntime) UintValue(recv Handle, sel Selector) uint64 {
	return msgSendUintRet(uintptr(recv), uintptr(sel))
}

func (*darwinRuntime) StringValue(recv Handle, sel Selector) string {
	return msgSendStrRet(uintptr(recv), uintptr(sel))
}
