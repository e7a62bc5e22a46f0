package execution

import (
	"context"
	"runtime/debug"
	"time"

	"github.com/sirupsen/logrus"

	"xbt/internal/domain"
	"xbt/internal/logging"
	"xbt/internal/report"
	"xbt/internal/scenario"
	"xbt/internal/session"
)

// ReportTimeout bounds the delivery of one verdict, retries included
const ReportTimeout = 30 * time.Second

// Runner executes a single job in its own test context
type Runner struct {
	lifecycle *session.Lifecycle
	reporter  report.Reporter
	env       scenario.Env
	logger    logrus.FieldLogger
}

// NewRunner creates a new Runner
func NewRunner(lifecycle *session.Lifecycle, reporter report.Reporter, env scenario.Env, logger logrus.FieldLogger) *Runner {
	return &Runner{
		lifecycle: lifecycle,
		reporter:  reporter,
		env:       env,
		logger:    logging.OrDiscard(logger),
	}
}

// Run acquires a browser, runs the scenario, reports the verdict and releases
// the browser. A context that never got a session has nothing to report.
// Once started a context runs to completion: cancelling ctx does not stop it.
func (r *Runner) Run(ctx context.Context, job Job) domain.TestResult {
	ctx = context.WithoutCancel(ctx)
	start := time.Now()
	tc := session.NewTestContext(job.Capability, job.Scenario.Name, r.logger)
	reported := false

	err := r.lifecycle.With(ctx, tc, func(tc *session.TestContext) error {
		bodyErr := r.runScenario(ctx, job.Scenario, tc)
		reported = r.report(ctx, tc, bodyErr == nil)
		return bodyErr
	})

	if err != nil {
		tc.Log.WithError(err).Error("scenario failed")
	} else {
		tc.Log.Debug("scenario passed")
	}

	return domain.TestResult{
		Capability: job.Capability,
		Scenario:   job.Scenario.Name,
		SessionID:  tc.SessionID,
		Success:    err == nil,
		Error:      err,
		Duration:   time.Since(start),
		Reported:   reported,
		Released:   tc.Released(),
	}
}

// runScenario turns a panic in the scenario body into a failure of this context
func (r *Runner) runScenario(ctx context.Context, sc scenario.Scenario, tc *session.TestContext) (err error) {
	defer func() {
		if v := recover(); v != nil {
			err = &domain.PanicError{Value: v, Stack: debug.Stack()}
		}
	}()
	return sc.Run(ctx, tc, r.env)
}

// report hands the verdict to the sink. A sink failure is logged and never
// changes the verdict.
func (r *Runner) report(ctx context.Context, tc *session.TestContext, passed bool) bool {
	ctx, cancel := context.WithTimeout(ctx, ReportTimeout)
	defer cancel()

	v := domain.Verdict{SessionID: tc.SessionID, Passed: passed}
	if err := r.reporter.Report(ctx, v); err != nil {
		tc.Log.WithError(err).Warn("failed to report verdict")
		return false
	}
	return true
}
