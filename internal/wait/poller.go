// Package wait synchronises test steps with asynchronous page loads.
package wait

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"xbt/internal/browser"
	"xbt/internal/domain"
	"xbt/internal/logging"
)

const (
	// DefaultTimeout is used when WaitFor is given no budget
	DefaultTimeout = 10 * time.Second
	// DefaultInterval is the spacing between probe attempts
	DefaultInterval = time.Second
)

// Probe reports whether the awaited condition holds. An error wrapping
// domain.ErrElementNotFound means "not yet"; any other error is a fault.
type Probe func(ctx context.Context) (bool, error)

// Poller evaluates a probe once per interval until it holds or the budget runs out
type Poller struct {
	Interval time.Duration
	Logger   logrus.FieldLogger
}

// NewPoller creates a Poller with the given interval
func NewPoller(interval time.Duration, logger logrus.FieldLogger) *Poller {
	return &Poller{Interval: interval, Logger: logger}
}

// WaitFor blocks until probe holds. It fails with *domain.TimeoutError when the
// budget elapses and returns a probe fault immediately without retrying.
func (p *Poller) WaitFor(ctx context.Context, condition string, probe Probe, timeout time.Duration) error {
	outcome, err := p.Poll(ctx, condition, probe, timeout)
	if err != nil {
		return err
	}
	if !outcome.Succeeded {
		return &domain.TimeoutError{Condition: condition, Timeout: p.budget(timeout), Elapsed: outcome.Elapsed}
	}
	return nil
}

// Poll runs the probe loop and reports how it ended
func (p *Poller) Poll(ctx context.Context, condition string, probe Probe, timeout time.Duration) (domain.PollOutcome, error) {
	timeout = p.budget(timeout)
	interval := p.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}

	start := time.Now()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for attempt := 1; ; attempt++ {
		ok, err := probe(ctx)
		elapsed := time.Since(start)
		if err != nil && !errors.Is(err, domain.ErrElementNotFound) {
			return domain.PollOutcome{Elapsed: elapsed, Attempts: attempt}, fmt.Errorf("waiting for %s: %w", condition, err)
		}
		if ok {
			return domain.PollOutcome{Succeeded: true, Elapsed: elapsed, Attempts: attempt}, nil
		}
		if elapsed >= timeout {
			p.log().WithField("elapsed", elapsed.Round(time.Millisecond)).Debugf("timed out waiting for %s", condition)
			return domain.PollOutcome{Elapsed: elapsed, Attempts: attempt}, nil
		}
		p.log().Debugf("waiting for %s (%s/%s)", condition, elapsed.Round(time.Second), timeout)

		select {
		case <-ctx.Done():
			return domain.PollOutcome{Elapsed: time.Since(start), Attempts: attempt}, fmt.Errorf("waiting for %s: %w", condition, ctx.Err())
		case <-ticker.C:
		}
	}
}

func (p *Poller) budget(timeout time.Duration) time.Duration {
	if timeout <= 0 {
		return DefaultTimeout
	}
	return timeout
}

func (p *Poller) log() logrus.FieldLogger {
	return logging.OrDiscard(p.Logger)
}

// ElementPresent holds once loc matches an element on the current page
func ElementPresent(driver browser.Driver, loc browser.Locator) Probe {
	return func(ctx context.Context) (bool, error) {
		if _, err := driver.FindElement(ctx, loc); err != nil {
			return false, err
		}
		return true, nil
	}
}
