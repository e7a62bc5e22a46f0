package domain

import (
	"errors"
	"fmt"
	"time"
)

// ErrElementNotFound is returned by the DOM layer when a locator matches nothing.
// Inside a wait it only means "not yet"; anywhere else it fails the context.
var ErrElementNotFound = errors.New("element not found")

// ProvisioningError means a remote browser could not be acquired
type ProvisioningError struct {
	Capability Capability
	Err        error
}

func (e *ProvisioningError) Error() string {
	return fmt.Sprintf("provision %s: %v", e.Capability.Label(), e.Err)
}

func (e *ProvisioningError) Unwrap() error { return e.Err }

// NotRunError marks a context that was never started because the run was
// stopped before it was dispatched
type NotRunError struct {
	Cause error
}

func (e *NotRunError) Error() string {
	if e.Cause == nil {
		return "not run"
	}
	return fmt.Sprintf("not run: %v", e.Cause)
}

func (e *NotRunError) Unwrap() error { return e.Cause }

// TimeoutError means a wait exceeded its budget
type TimeoutError struct {
	Condition string
	Timeout   time.Duration
	Elapsed   time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("timed out after %s waiting for %s (budget %s)",
		e.Elapsed.Round(time.Millisecond), e.Condition, e.Timeout)
}

// AssertionMismatch means an observed value differs from the expected one
type AssertionMismatch struct {
	What     string
	Expected string
	Actual   string
}

func (e *AssertionMismatch) Error() string {
	return fmt.Sprintf("%s: expected %q, got %q", e.What, e.Expected, e.Actual)
}

// ReportingError means the outcome sink could not record a verdict
type ReportingError struct {
	SessionID string
	Err       error
}

func (e *ReportingError) Error() string {
	return fmt.Sprintf("report verdict for session %s: %v", e.SessionID, e.Err)
}

func (e *ReportingError) Unwrap() error { return e.Err }

// PanicError carries a fault recovered from a scenario body
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("scenario panicked: %v", e.Value)
}
