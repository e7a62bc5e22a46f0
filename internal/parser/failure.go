package parser

import (
	"errors"
	"strings"
	"time"

	"xbt/internal/domain"
)

// JobURLFunc returns the farm page of a session, or "" when there is none
type JobURLFunc func(sessionID string) string

var _ Parser = (*FailureParser)(nil)

// FailureParser classifies failed test contexts
type FailureParser struct {
	jobURL JobURLFunc
}

// NewFailureParser creates a new FailureParser
func NewFailureParser(jobURL JobURLFunc) *FailureParser {
	return &FailureParser{jobURL: jobURL}
}

// ParseFailure returns the failure of result, or nothing if it passed
func (p *FailureParser) ParseFailure(result domain.TestResult) []domain.TestFailure {
	if result.Success {
		return nil
	}

	failure := domain.TestFailure{
		TestName:   result.Name(),
		Scenario:   result.Scenario,
		Capability: result.Capability.Label(),
		SessionID:  result.SessionID,
		Kind:       Classify(result.Error),
		Duration:   result.Duration,
	}
	if result.Error != nil {
		failure.Message = firstLine(result.Error.Error())
	}
	if p.jobURL != nil && result.SessionID != "" {
		failure.SessionURL = p.jobURL(result.SessionID)
	}
	return []domain.TestFailure{failure}
}

// ParseFailures collects the failures of all results, in order
func (p *FailureParser) ParseFailures(results []domain.TestResult) []domain.TestFailure {
	var failures []domain.TestFailure
	for _, r := range results {
		failures = append(failures, p.ParseFailure(r)...)
	}
	return failures
}

// ParseTestCounts returns the number of passed and failed contexts
func (p *FailureParser) ParseTestCounts(results []domain.TestResult) (passed, failed int) {
	for _, r := range results {
		if r.Success {
			passed++
		} else {
			failed++
		}
	}
	return passed, failed
}

// Summarize builds the run summary for display
func (p *FailureParser) Summarize(results []domain.TestResult, duration time.Duration, workers int, runID string) domain.RunSummary {
	passed, failed := p.ParseTestCounts(results)
	caps := make(map[domain.Capability]struct{})
	scenarios := make(map[string]struct{})
	unreported := 0
	for _, r := range results {
		caps[r.Capability] = struct{}{}
		scenarios[r.Scenario] = struct{}{}
		if r.SessionID != "" && !r.Reported {
			unreported++
		}
	}

	return domain.RunSummary{
		TotalContexts:  len(results),
		PassedContexts: passed,
		FailedContexts: failed,
		Unreported:     unreported,
		Capabilities:   len(caps),
		Scenarios:      len(scenarios),
		Duration:       duration,
		Workers:        workers,
		RunID:          runID,
		Timestamp:      time.Now(),
	}
}

// Classify maps an error onto the failure taxonomy
func Classify(err error) domain.FailureKind {
	var (
		provisioning *domain.ProvisioningError
		timeout      *domain.TimeoutError
		mismatch     *domain.AssertionMismatch
		panicked     *domain.PanicError
		notRun       *domain.NotRunError
	)
	switch {
	case err == nil:
		return domain.FailureError
	case errors.As(err, &notRun):
		return domain.FailureNotRun
	case errors.As(err, &provisioning):
		return domain.FailureProvisioning
	case errors.As(err, &panicked):
		return domain.FailurePanic
	case errors.As(err, &timeout):
		return domain.FailureTimeout
	case errors.As(err, &mismatch):
		return domain.FailureAssertion
	case errors.Is(err, domain.ErrElementNotFound):
		return domain.FailureElementNotFound
	default:
		return domain.FailureError
	}
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
