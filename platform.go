package cocoa

import "runtime"

// Platform represents the current operating system/platform.
type Platform string

const (
	PlatformMacOS   Platform = "darwin"
	PlatformLinux   Platform = "linux"
	PlatformWindows Platform = "windows"
	PlatformUnknown Platform = "unknown"
)

// CurrentPlatform returns the platform the process is running on.
func CurrentPlatform() Platform {
	switch runtime.GOOS {
	case "darwin":
		return PlatformMacOS
	case "linux":
		return PlatformLinux
	case "windows":
		return PlatformWindows
	default:
		return PlatformUnknown
	}
}

// Supported reports whether the host Objective-C runtime is available on
// this platform. Off macOS the bridge still works against a caller
// supplied Runtime, but Open will fail.
func Supported() bool {
	return CurrentPlatform() == PlatformMacOS
}
