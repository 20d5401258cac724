package cocoa

import (
	"fmt"
	"log"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Config controls the bridge's ambient behavior.
type Config struct {
	Diagnostics DiagnosticsConfig `toml:"diagnostics"`
	Runtime     RuntimeConfig     `toml:"runtime"`
}

// DiagnosticsConfig controls the per-rejection diagnostic stream. The
// bridge emits one human-readable line per rejected call or aborted
// callback; the stream is unbuffered so lines survive a crash inside the
// foreign runtime.
type DiagnosticsConfig struct {
	// Enabled turns the diagnostic stream on. Default true.
	Enabled bool `toml:"enabled"`
	// Path appends diagnostics to a file instead of stderr.
	Path string `toml:"path"`
}

// RuntimeConfig controls how the foreign runtime library is located.
type RuntimeConfig struct {
	// LibraryPath overrides the libobjc location. Empty uses the
	// GLASSWIND_OBJC_PATH environment variable, then the system default.
	LibraryPath string `toml:"library_path"`
}

// DefaultConfig returns the configuration used when no file is present:
// diagnostics on, stderr, system runtime library.
func DefaultConfig() Config {
	return Config{
		Diagnostics: DiagnosticsConfig{Enabled: true},
	}
}

// LoadConfig reads a TOML configuration file over the defaults. A missing
// file is not an error; a malformed one is.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("cocoa: reading config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("cocoa: parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// diagLogger opens the configured diagnostic stream. Returns nil when
// diagnostics are disabled.
func (c Config) diagLogger() (*log.Logger, error) {
	if !c.Diagnostics.Enabled {
		return nil, nil
	}
	w := os.Stderr
	if c.Diagnostics.Path != "" {
		f, err := os.OpenFile(c.Diagnostics.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("cocoa: opening diagnostics file: %w", err)
		}
		w = f
	}
	return log.New(w, "", 0), nil
}
