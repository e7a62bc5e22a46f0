package domain

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCapability_Label(t *testing.T) {
	tests := []struct {
		name     string
		cap      Capability
		expected string
	}{
		{"with version", Capability{OS: "Linux", Version: "45.0", Browser: "firefox"}, "firefox 45.0 on Linux"},
		{"provider default", Capability{OS: "Windows 10", Browser: "chrome"}, "chrome latest on Windows 10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.cap.Label())
		})
	}
}

func TestCapability_Validate(t *testing.T) {
	assert.NoError(t, Capability{OS: "Linux", Browser: "firefox"}.Validate())
	assert.Error(t, Capability{Browser: "firefox"}.Validate())
	assert.Error(t, Capability{OS: "Linux", Version: "45.0"}.Validate())
}

func TestErrors_Unwrap(t *testing.T) {
	cause := errors.New("connection refused")

	perr := fmt.Errorf("setup: %w", &ProvisioningError{Capability: Capability{OS: "Linux", Browser: "firefox"}, Err: cause})
	var target *ProvisioningError
	assert.True(t, errors.As(perr, &target))
	assert.ErrorIs(t, perr, cause)
	assert.Contains(t, perr.Error(), "firefox latest on Linux")

	rerr := &ReportingError{SessionID: "abc", Err: cause}
	assert.ErrorIs(t, rerr, cause)
	assert.Contains(t, rerr.Error(), "abc")
}

func TestTimeoutError_Message(t *testing.T) {
	err := &TimeoutError{Condition: "element name=j_username", Timeout: 10 * time.Second, Elapsed: 10 * time.Second}
	assert.Contains(t, err.Error(), "element name=j_username")
	assert.Contains(t, err.Error(), "10s")
}

func TestAssertionMismatch_Message(t *testing.T) {
	err := &AssertionMismatch{What: "page title", Expected: "Rundeck - Login", Actual: "Error"}
	assert.Equal(t, `page title: expected "Rundeck - Login", got "Error"`, err.Error())
}

func TestNotRunError(t *testing.T) {
	err := error(&NotRunError{Cause: context.Canceled})
	assert.Equal(t, "not run: context canceled", err.Error())
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, "not run", (&NotRunError{}).Error())
}
