package execution

import (
	"xbt/internal/domain"
	"xbt/internal/scenario"
)

// Job is one scenario to run against one capability
type Job struct {
	Capability domain.Capability
	Scenario   scenario.Scenario
}

// Expand builds one job per (capability, scenario) pair, capability-major.
// An empty matrix yields no jobs.
func Expand(caps []domain.Capability, scenarios []scenario.Scenario) []Job {
	jobs := make([]Job, 0, len(caps)*len(scenarios))
	for _, c := range caps {
		for _, s := range scenarios {
			jobs = append(jobs, Job{Capability: c, Scenario: s})
		}
	}
	return jobs
}
