// Package cocoa is a safety-hardening bridge between Go code and the
// Objective-C object runtime that backs the macOS windowing system.
// Application code invokes runtime behavior through a validated call
// gateway, synthesizes callback-bearing classes on first use, attaches a
// context token to each created instance, and receives native input and
// window events back as normalized records through a Router.
//
// Every handle is screened before it crosses the boundary, but the screen
// is heuristic: a stale handle that looks plausible will still crash
// inside the foreign runtime. The bridge narrows the crash surface; it
// does not eliminate it.
package cocoa

import (
	"errors"
	"fmt"
	"log"
	"unicode/utf8"

	"github.com/glasswind/cocoa/internal/objc"
)

// Synthesized class names. One registration per process for each.
const (
	windowDelegateClass = "GWWindowDelegate"
	timerTargetClass    = "GWTimerTarget"
	inputViewClass      = "GWInputView"
)

// Method type encodings: "v@:@" is void return with one object argument,
// "c@:" is BOOL return with no arguments.
const (
	encEventMethod = "v@:@"
	encBoolMethod  = "c@:"
)

// contextKey is the side-table key under which each created instance's
// context token is stored.
const contextKey = "glasswind.token"

// MaxTimerInterval is the upper bound, in seconds, accepted for animation
// timer intervals.
const MaxTimerInterval = 1.0

var (
	// ErrInvalidToken is returned when a constructor is given a zero
	// context token.
	ErrInvalidToken = errors.New("cocoa: context token must be non-zero")

	// ErrInvalidInterval is returned when a timer interval falls outside
	// (0, MaxTimerInterval].
	ErrInvalidInterval = errors.New("cocoa: timer interval must be in (0, 1]")

	// ErrInvalidHandle is returned when a constructor argument fails the
	// handle screen.
	ErrInvalidHandle = errors.New("cocoa: invalid handle")
)

// Bridge owns one validated view of the foreign runtime: a call gateway,
// a synthesized-class registry, and the instance-to-token side table.
// Construct with New (any Runtime, used by tests) or Open (the real
// darwin runtime).
type Bridge struct {
	gw      *objc.Gateway
	classes *objc.ClassRegistry
	state   *objc.StateTable
	router  Router
	diag    *log.Logger
}

// New builds a bridge over rt, routing events to router.
func New(rt objc.Runtime, router Router, cfg Config) (*Bridge, error) {
	if rt == nil {
		return nil, errors.New("cocoa: nil runtime")
	}
	if router == nil {
		return nil, errors.New("cocoa: nil router")
	}
	diag, err := cfg.diagLogger()
	if err != nil {
		return nil, err
	}
	return &Bridge{
		gw:      objc.NewGateway(rt, diag),
		classes: objc.NewClassRegistry(rt, diag),
		state:   objc.NewStateTable(),
		router:  router,
		diag:    diag,
	}, nil
}

// Open loads the host Objective-C runtime and builds a bridge over it.
// Fails off darwin.
func Open(router Router, cfg Config) (*Bridge, error) {
	rt, err := objc.LoadRuntime(cfg.Runtime.LibraryPath)
	if err != nil {
		return nil, err
	}
	return New(rt, router, cfg)
}

// Gateway exposes the validated call-shim set for behavior invocation
// beyond the convenience constructors.
func (b *Bridge) Gateway() *objc.Gateway {
	return b.gw
}

// ReleaseInstance clears the context state attached to an instance. Call
// when the instance is destroyed; the bridge holds no other per-instance
// resources.
func (b *Bridge) ReleaseInstance(h objc.Handle) {
	b.state.Clear(h)
}

func (b *Bridge) diagf(op, format string, args ...any) {
	if b.diag != nil {
		b.diag.Printf("["+op+"] "+format, args...)
	}
}

// newInstance allocates and initializes one instance of cls through the
// gateway.
func (b *Bridge) newInstance(cls objc.Handle) (objc.Handle, error) {
	obj := b.gw.Send(cls, b.gw.Selector("alloc"))
	if obj == 0 {
		return 0, errors.New("cocoa: alloc failed")
	}
	obj = b.gw.Send(obj, b.gw.Selector("init"))
	if obj == 0 {
		return 0, errors.New("cocoa: init failed")
	}
	return obj, nil
}

// attach creates an instance of cls and binds token to it.
func (b *Bridge) attach(cls objc.Handle, token uint64) (objc.Handle, error) {
	inst, err := b.newInstance(cls)
	if err != nil {
		return 0, err
	}
	if err := b.state.Set(inst, contextKey, token); err != nil {
		return 0, err
	}
	return inst, nil
}

// token fetches the context token bound to a callback receiver. A missing
// or zero token means the synthesis/attachment pairing was broken, which
// is a logic error; the callback must abort.
func (b *Bridge) token(op string, self uintptr) (uint64, bool) {
	token, ok := b.state.Get(objc.Handle(self), contextKey)
	if !ok || token == 0 {
		b.diagf(op, "no context token on instance %#x", self)
		return 0, false
	}
	return token, true
}

// ============================================================================
// Constructors
// ============================================================================

// NewWindowDelegate synthesizes (once) a window delegate class handling
// resize and focus notifications, creates an instance, and binds token to
// it. Install the returned handle as an NSWindow's delegate.
func (b *Bridge) NewWindowDelegate(token uint64) (objc.Handle, error) {
	if token == 0 {
		return 0, ErrInvalidToken
	}
	cls, err := b.classes.Ensure(objc.ClassSpec{
		Name:  windowDelegateClass,
		Super: "NSObject",
		Methods: []objc.MethodSpec{
			{Name: "windowDidResize:", Encoding: encEventMethod, Imp: b.resizeImp()},
			{Name: "windowDidBecomeKey:", Encoding: encEventMethod, Imp: b.focusImp(FocusGained)},
			{Name: "windowDidResignKey:", Encoding: encEventMethod, Imp: b.focusImp(FocusLost)},
		},
	})
	if err != nil {
		return 0, err
	}
	return b.attach(cls, token)
}

// NewAnimationTimer synthesizes (once) a timer target class, creates a
// target bound to token, and schedules a repeating host timer with the
// given interval in seconds. The token rides along twice: in the side
// table and boxed into the timer's user info.
func (b *Bridge) NewAnimationTimer(token uint64, interval float64) (objc.Handle, error) {
	if token == 0 {
		return 0, ErrInvalidToken
	}
	if interval <= 0 || interval > MaxTimerInterval {
		return 0, fmt.Errorf("%w: got %v", ErrInvalidInterval, interval)
	}
	cls, err := b.classes.Ensure(objc.ClassSpec{
		Name:  timerTargetClass,
		Super: "NSObject",
		Methods: []objc.MethodSpec{
			{Name: "gwTimerTick:", Encoding: encEventMethod, Imp: b.tickImp()},
		},
	})
	if err != nil {
		return 0, err
	}
	target, err := b.attach(cls, token)
	if err != nil {
		return 0, err
	}

	numberCls := b.gw.Class("NSNumber")
	userInfo := b.gw.SendUint(numberCls, b.gw.Selector("numberWithUnsignedLongLong:"), token)
	if userInfo == 0 {
		return 0, errors.New("cocoa: boxing timer token failed")
	}

	timerCls := b.gw.Class("NSTimer")
	timer := b.gw.SendTimer(timerCls,
		b.gw.Selector("scheduledTimerWithTimeInterval:target:selector:userInfo:repeats:"),
		interval, target, b.gw.Selector("gwTimerTick:"), userInfo, true)
	if timer == 0 {
		return 0, errors.New("cocoa: scheduling timer failed")
	}
	return timer, nil
}

// NewInputSurface synthesizes (once) a view class handling pointer and
// key events, creates an instance bound to token, and returns it. The
// class overrides the first-responder capability query so the surface is
// eligible for keyboard input.
func (b *Bridge) NewInputSurface(token uint64) (objc.Handle, error) {
	if token == 0 {
		return 0, ErrInvalidToken
	}
	cls, err := b.classes.Ensure(objc.ClassSpec{
		Name:  inputViewClass,
		Super: "NSView",
		Methods: []objc.MethodSpec{
			{Name: "acceptsFirstResponder", Encoding: encBoolMethod, Imp: b.acceptsImp()},
			{Name: "mouseDown:", Encoding: encEventMethod, Imp: b.pointerImp(PointerDown, true)},
			{Name: "mouseUp:", Encoding: encEventMethod, Imp: b.pointerImp(PointerUp, true)},
			{Name: "mouseDragged:", Encoding: encEventMethod, Imp: b.pointerImp(PointerDrag, true)},
			{Name: "mouseMoved:", Encoding: encEventMethod, Imp: b.pointerImp(PointerMove, false)},
			{Name: "keyDown:", Encoding: encEventMethod, Imp: b.keyImp(KeyDown)},
			{Name: "keyUp:", Encoding: encEventMethod, Imp: b.keyImp(KeyUp)},
		},
	})
	if err != nil {
		return 0, err
	}
	return b.attach(cls, token)
}

// NewImageFromPixels wraps an existing CGImage handle in a host image of
// the given point size: a bitmap representation is built from the pixel
// source and added to a freshly sized image object.
func (b *Bridge) NewImageFromPixels(cgImage objc.Handle, width, height float64) (objc.Handle, error) {
	if !objc.ValidHandle(cgImage) {
		return 0, fmt.Errorf("%w: pixel source %#x", ErrInvalidHandle, uintptr(cgImage))
	}
	if !objc.ValidDimension(width) || !objc.ValidDimension(height) {
		return 0, fmt.Errorf("cocoa: image dimensions out of range: %vx%v", width, height)
	}

	repCls := b.gw.Class("NSBitmapImageRep")
	rep := b.gw.Send(repCls, b.gw.Selector("alloc"))
	if rep == 0 {
		return 0, errors.New("cocoa: bitmap rep alloc failed")
	}
	rep = b.gw.SendHandle(rep, b.gw.Selector("initWithCGImage:"), cgImage)
	if rep == 0 {
		return 0, errors.New("cocoa: bitmap rep init failed")
	}

	imgCls := b.gw.Class("NSImage")
	img := b.gw.Send(imgCls, b.gw.Selector("alloc"))
	if img == 0 {
		return 0, errors.New("cocoa: image alloc failed")
	}
	img = b.gw.SendSize(img, b.gw.Selector("initWithSize:"), objc.Size{Width: width, Height: height})
	if img == 0 {
		return 0, errors.New("cocoa: image init failed")
	}

	b.gw.SendVoidHandle(img, b.gw.Selector("addRepresentation:"), rep)
	return img, nil
}

// ============================================================================
// Trampolines
// ============================================================================

// checkCallback validates the receiver and event handles every trampoline
// starts from.
func (b *Bridge) checkCallback(op string, self, arg uintptr) bool {
	if !objc.ValidPointer(self) {
		b.diagf(op, "invalid receiver %#x", self)
		return false
	}
	if !objc.ValidPointer(arg) {
		b.diagf(op, "invalid event %#x", arg)
		return false
	}
	return true
}

func (b *Bridge) pointerImp(kind PointerKind, withButton bool) objc.Imp {
	op := "pointer"
	return func(self, _, event uintptr) uintptr {
		if !b.checkCallback(op, self, event) {
			return 0
		}
		token, ok := b.token(op, self)
		if !ok {
			return 0
		}
		loc := b.gw.PointValue(objc.Handle(event), b.gw.Selector("locationInWindow"))
		button := uint32(0)
		if withButton {
			n := b.gw.IntValue(objc.Handle(event), b.gw.Selector("buttonNumber"))
			if n < 0 || n > 2 {
				button = ButtonOther
			} else {
				button = uint32(n)
			}
		}
		mods := uint32(b.gw.UintValue(objc.Handle(event), b.gw.Selector("modifierFlags")))
		b.router.PointerEvent(token, kind, button, loc.X, loc.Y, mods)
		return 0
	}
}

func (b *Bridge) keyImp(kind KeyKind) objc.Imp {
	op := "key"
	return func(self, _, event uintptr) uintptr {
		if !b.checkCallback(op, self, event) {
			return 0
		}
		token, ok := b.token(op, self)
		if !ok {
			return 0
		}
		keyCode := uint32(b.gw.UintValue(objc.Handle(event), b.gw.Selector("keyCode")))
		var character rune
		if chars := b.gw.Send(objc.Handle(event), b.gw.Selector("characters")); chars != 0 {
			if s := b.gw.StringValue(chars, b.gw.Selector("UTF8String")); s != "" {
				r, _ := utf8.DecodeRuneInString(s)
				if r != utf8.RuneError {
					character = r
				}
			}
		}
		mods := uint32(b.gw.UintValue(objc.Handle(event), b.gw.Selector("modifierFlags")))
		b.router.KeyEvent(token, kind, keyCode, character, mods)
		return 0
	}
}

func (b *Bridge) focusImp(kind FocusKind) objc.Imp {
	op := "focus"
	return func(self, _, _ uintptr) uintptr {
		if !objc.ValidPointer(self) {
			b.diagf(op, "invalid receiver %#x", self)
			return 0
		}
		token, ok := b.token(op, self)
		if !ok {
			return 0
		}
		b.router.FocusEvent(token, kind)
		return 0
	}
}

func (b *Bridge) tickImp() objc.Imp {
	op := "tick"
	return func(self, _, timer uintptr) uintptr {
		if !b.checkCallback(op, self, timer) {
			return 0
		}
		token, ok := b.token(op, self)
		if !ok {
			return 0
		}
		// The boxed copy in the timer's user info must agree with the
		// side table; a mismatch means the target was rebound or the
		// timer handle is stale.
		if userInfo := b.gw.Send(objc.Handle(timer), b.gw.Selector("userInfo")); userInfo != 0 {
			boxed := b.gw.UintValue(userInfo, b.gw.Selector("unsignedLongLongValue"))
			if boxed != 0 && boxed != token {
				b.diagf(op, "token mismatch: table %d, user info %d", token, boxed)
				return 0
			}
		}
		b.router.Tick(token)
		return 0
	}
}

func (b *Bridge) resizeImp() objc.Imp {
	op := "resize"
	return func(self, _, notification uintptr) uintptr {
		if !b.checkCallback(op, self, notification) {
			return 0
		}
		token, ok := b.token(op, self)
		if !ok {
			return 0
		}
		window := b.gw.Send(objc.Handle(notification), b.gw.Selector("object"))
		if window == 0 {
			b.diagf(op, "notification has no window")
			return 0
		}
		contentView := b.gw.Send(window, b.gw.Selector("contentView"))
		if contentView == 0 {
			b.diagf(op, "window has no content view")
			return 0
		}
		frame := b.gw.RectValue(contentView, b.gw.Selector("frame"))
		b.router.Resize(token, frame.Size.Width, frame.Size.Height)
		return 0
	}
}

func (b *Bridge) acceptsImp() objc.Imp {
	return func(self, _, _ uintptr) uintptr {
		if !objc.ValidPointer(self) {
			b.diagf("acceptsFirstResponder", "invalid receiver %#x", self)
			return 0
		}
		return 1
	}
}
