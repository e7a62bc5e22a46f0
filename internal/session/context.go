package session

import (
	"sync"

	"github.com/sirupsen/logrus"

	"xbt/internal/browser"
	"xbt/internal/domain"
	"xbt/internal/logging"
)

// TestContext is the state of one scenario run against one capability.
// It is never shared between goroutines running different contexts.
type TestContext struct {
	Capability domain.Capability
	Scenario   string
	// SessionID is set once a browser was acquired and kept after release
	SessionID string
	// Driver is exclusively owned by this context between acquire and release
	Driver browser.Driver
	Log    logrus.FieldLogger

	releaseOnce sync.Once
	released    bool
}

// NewTestContext creates a context for one scenario on one capability
func NewTestContext(c domain.Capability, scenario string, logger logrus.FieldLogger) *TestContext {
	return &TestContext{
		Capability: c,
		Scenario:   scenario,
		Log: logging.OrDiscard(logger).WithFields(logrus.Fields{
			"capability": c.Label(),
			"scenario":   scenario,
		}),
	}
}

// Acquired reports whether a browser was attached
func (tc *TestContext) Acquired() bool {
	return tc.SessionID != "" || tc.Driver != nil
}

// Released reports whether Release ran for an acquired browser
func (tc *TestContext) Released() bool {
	return tc.released
}
