// Package session acquires and releases the browser owned by a test context.
package session

import (
	"context"

	"xbt/internal/domain"
)

// Lifecycle binds browsers from a Provisioner to test contexts
type Lifecycle struct {
	provisioner Provisioner
}

// NewLifecycle creates a Lifecycle backed by provisioner
func NewLifecycle(provisioner Provisioner) *Lifecycle {
	return &Lifecycle{provisioner: provisioner}
}

// Acquire attaches a browser for tc.Capability to tc. Failures are returned as
// *domain.ProvisioningError and affect only this context.
func (l *Lifecycle) Acquire(ctx context.Context, tc *TestContext) error {
	driver, err := l.provisioner.Provision(ctx, tc.Capability)
	if err != nil {
		return &domain.ProvisioningError{Capability: tc.Capability, Err: err}
	}
	tc.Driver = driver
	tc.SessionID = driver.SessionID()
	tc.Log = tc.Log.WithField("session", tc.SessionID)
	tc.Log.Debug("browser session acquired")
	return nil
}

// Release quits the browser attached to tc. Only the first call has an effect.
// A failing quit is logged; the session may already be gone on the farm side.
func (l *Lifecycle) Release(tc *TestContext) {
	tc.releaseOnce.Do(func() {
		if tc.Driver == nil {
			return
		}
		if err := tc.Driver.Quit(); err != nil {
			tc.Log.WithError(err).Warn("failed to quit browser session")
		} else {
			tc.Log.Debug("browser session released")
		}
		tc.Driver = nil
		tc.released = true
	})
}

// With acquires a browser for tc, runs fn and releases the browser however fn
// exits, including by panic.
func (l *Lifecycle) With(ctx context.Context, tc *TestContext, fn func(*TestContext) error) error {
	if err := l.Acquire(ctx, tc); err != nil {
		return err
	}
	defer l.Release(tc)
	return fn(tc)
}
