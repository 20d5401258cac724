//go:build !darwin

package objc

import (
	"errors"
	"fmt"
	"runtime"
)

// ErrUnsupported is returned by LoadRuntime on platforms without an
// Objective-C runtime.
var ErrUnsupported = errors.New("objc: runtime only available on darwin")

// LoadRuntime always fails off darwin; the rest of the package still
// works against any Runtime implementation (tests use an in-memory one).
func LoadRuntime(libPath string) (Runtime, error) {
	_ = libPath
	return nil, fmt.Errorf("%w (GOOS=%s)", ErrUnsupported, runtime.GOOS)
}
