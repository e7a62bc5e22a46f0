package domain

import "time"

// TestResult represents the result of running one scenario against one capability
type TestResult struct {
	Capability Capability
	Scenario   string
	SessionID  string        // Empty when no session was acquired
	Success    bool          // Whether the scenario passed
	Error      error         // Why it failed
	Duration   time.Duration // Time taken including session setup and teardown
	Reported   bool          // Verdict accepted by the reporting sink
	Released   bool          // Browser session was released
}

// Name returns "<scenario> [<capability>]"
func (r TestResult) Name() string {
	return r.Scenario + " [" + r.Capability.Label() + "]"
}

// TestFailure represents a failed test context prepared for display
type TestFailure struct {
	TestName   string
	Scenario   string
	Capability string
	SessionID  string
	Kind       FailureKind
	Message    string
	SessionURL string
	Duration   time.Duration
}

// FailureKind classifies why a test context failed
type FailureKind string

const (
	FailureProvisioning    FailureKind = "provisioning"
	FailureTimeout         FailureKind = "timeout"
	FailureAssertion       FailureKind = "assertion"
	FailureElementNotFound FailureKind = "element-not-found"
	FailurePanic           FailureKind = "panic"
	FailureError           FailureKind = "error"
	FailureNotRun          FailureKind = "not-run"
)

// RunSummary contains metadata about a matrix run
type RunSummary struct {
	TotalContexts  int
	PassedContexts int
	FailedContexts int
	Unreported     int
	Capabilities   int
	Scenarios      int
	Duration       time.Duration
	Workers        int
	RunID          string
	Timestamp      time.Time
}
