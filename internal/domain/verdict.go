package domain

import "time"

// Verdict is the final pass/fail determination for one test context
type Verdict struct {
	SessionID string `json:"-"`
	Passed    bool   `json:"passed"`
}

// PollOutcome is the transient result of one wait
type PollOutcome struct {
	Succeeded bool
	Elapsed   time.Duration
	Attempts  int
}
