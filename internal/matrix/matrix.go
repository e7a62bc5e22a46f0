// Package matrix defines which browser configurations the login checks run on.
package matrix

import (
	"errors"
	"fmt"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"

	"xbt/internal/domain"
)

// defaultMatrix is the fixed set of browsers validated when no matrix file is given
var defaultMatrix = []domain.Capability{
	{OS: "Windows 10", Version: "11", Browser: "internet explorer"},
	{OS: "macOS 10.13", Version: "11.0", Browser: "safari"},
	{OS: "Linux", Version: "45.0", Browser: "firefox"},
}

// Default returns a copy of the built-in matrix, in order
func Default() []domain.Capability {
	caps := make([]domain.Capability, len(defaultMatrix))
	copy(caps, defaultMatrix)
	return caps
}

// File is the on-disk form of a matrix
type File struct {
	Browsers []domain.Capability `yaml:"browsers"`
}

// Load reads a YAML matrix file:
//
//	browsers:
//	  - os: Linux
//	    version: "45.0"
//	    browser: firefox
//
// An empty browsers list is valid and runs nothing.
func Load(path string) ([]domain.Capability, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read matrix file: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML matrix
func Parse(data []byte) ([]domain.Capability, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse matrix: %w", err)
	}

	var errs []error
	for i, c := range f.Browsers {
		if err := c.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("entry %d: %w", i+1, err))
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return f.Browsers, nil
}

// Local returns the single-browser matrix used for local headless runs
func Local() []domain.Capability {
	return []domain.Capability{{OS: runtime.GOOS, Browser: "chrome"}}
}

// Resolve returns the matrix from path. An empty path selects the built-in
// matrix, or the local one when local is set.
func Resolve(path string, local bool) ([]domain.Capability, error) {
	switch {
	case path != "":
		return Load(path)
	case local:
		return Local(), nil
	default:
		return Default(), nil
	}
}
