package objc

import (
	"fmt"
	"log"
	"sync"
)

// MethodSpec describes one trampoline method installed on a synthesized
// class: the selector name, the objc type-encoding string for its
// signature, and the Go entry point.
type MethodSpec struct {
	Name     string
	Encoding string
	Imp      Imp
}

// ClassSpec describes a class to synthesize: its name, the name of the
// base class it derives from, and the methods to install.
type ClassSpec struct {
	Name    string
	Super   string
	Methods []MethodSpec
}

// ClassRegistry synthesizes runtime classes on first use and reuses them
// afterwards. Registration is idempotent per class name: the first call
// for a name performs lookup, allocation, method installation, and
// registration; later calls (and names the runtime already knows) return
// the existing class without touching the installation path.
//
// Classes persist for the process lifetime; there is no teardown, matching
// the host runtime's own model.
type ClassRegistry struct {
	rt   Runtime
	diag *log.Logger

	mu      sync.Mutex
	classes map[string]Handle
}

// NewClassRegistry builds a registry over rt. diag receives a line per
// failed installation step; nil silences it.
func NewClassRegistry(rt Runtime, diag *log.Logger) *ClassRegistry {
	return &ClassRegistry{
		rt:      rt,
		diag:    diag,
		classes: make(map[string]Handle),
	}
}

func (r *ClassRegistry) diagf(format string, args ...any) {
	if r.diag != nil {
		r.diag.Printf("[class] "+format, args...)
	}
}

// Ensure returns the class named by spec, synthesizing it if this is the
// first use. Installation is all-or-nothing: if any selector fails to
// resolve or any method fails to install, the half-built class pair is
// abandoned, nothing is recorded, and an error is returned.
func (r *ClassRegistry) Ensure(spec ClassSpec) (Handle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if cls, ok := r.classes[spec.Name]; ok {
		return cls, nil
	}

	// The runtime may already know the name (a previous incarnation of
	// this process state, or a host-provided class). Reuse it untouched;
	// re-deriving an existing name would corrupt it.
	if cls := r.rt.LookupClass(spec.Name); ValidHandle(cls) {
		r.classes[spec.Name] = cls
		return cls, nil
	}

	super := r.rt.LookupClass(spec.Super)
	if !ValidHandle(super) {
		r.diagf("Ensure %s: base class %q not found", spec.Name, spec.Super)
		return 0, fmt.Errorf("objc: base class %q not found", spec.Super)
	}

	cls := r.rt.AllocateClassPair(super, spec.Name)
	if !ValidHandle(cls) {
		r.diagf("Ensure %s: class pair allocation failed", spec.Name)
		return 0, fmt.Errorf("objc: allocating class %q failed", spec.Name)
	}

	for _, m := range spec.Methods {
		sel := r.rt.RegisterSelector(m.Name)
		if !ValidSelector(sel) {
			r.diagf("Ensure %s: selector %q failed to resolve", spec.Name, m.Name)
			return 0, fmt.Errorf("objc: selector %q failed to resolve", m.Name)
		}
		if !r.rt.AddMethod(cls, sel, m.Imp, m.Encoding) {
			r.diagf("Ensure %s: installing %q failed", spec.Name, m.Name)
			return 0, fmt.Errorf("objc: installing method %q on %q failed", m.Name, spec.Name)
		}
	}

	r.rt.RegisterClassPair(cls)
	r.classes[spec.Name] = cls
	return cls, nil
}

// Lookup returns a previously ensured class handle, or zero if the name
// has not been synthesized in this registry.
func (r *ClassRegistry) Lookup(name string) Handle {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.classes[name]
}
