// Package report forwards test verdicts to the browser farm.
package report

import (
	"context"

	"github.com/sirupsen/logrus"

	"xbt/internal/domain"
	"xbt/internal/logging"
)

// Reporter records the verdict of one test context against its session
type Reporter interface {
	Report(ctx context.Context, v domain.Verdict) error
}

// LogReporter only logs verdicts. Local runs have no farm to report to.
type LogReporter struct {
	logger logrus.FieldLogger
}

// NewLogReporter creates a LogReporter
func NewLogReporter(logger logrus.FieldLogger) *LogReporter {
	return &LogReporter{logger: logging.OrDiscard(logger)}
}

func (r *LogReporter) Report(_ context.Context, v domain.Verdict) error {
	r.logger.WithFields(logrus.Fields{
		"session": v.SessionID,
		"passed":  v.Passed,
	}).Debug("verdict")
	return nil
}
