package domain

import (
	"errors"
	"fmt"
)

// Capability identifies one point in the browser matrix
type Capability struct {
	OS      string `yaml:"os"`
	Version string `yaml:"version,omitempty"` // Empty means the provider's default version
	Browser string `yaml:"browser"`
}

// Validate checks that the capability names at least an OS and a browser
func (c Capability) Validate() error {
	if c.OS == "" {
		return errors.New("capability is missing an operating system")
	}
	if c.Browser == "" {
		return errors.New("capability is missing a browser name")
	}
	return nil
}

// DisplayVersion returns the version, or "latest" when none was requested
func (c Capability) DisplayVersion() string {
	if c.Version == "" {
		return "latest"
	}
	return c.Version
}

// Label renders the capability as "<browser> <version> on <os>"
func (c Capability) Label() string {
	return fmt.Sprintf("%s %s on %s", c.Browser, c.DisplayVersion(), c.OS)
}

func (c Capability) String() string {
	return c.Label()
}
