package wait

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xbt/internal/browser"
	"xbt/internal/browser/browsertest"
	"xbt/internal/domain"
)

func trueOnCall(n int32) (Probe, *int32) {
	var calls int32
	return func(context.Context) (bool, error) {
		return atomic.AddInt32(&calls, 1) >= n, nil
	}, &calls
}

func TestWaitFor_SucceedsOnThirdCall(t *testing.T) {
	probe, calls := trueOnCall(3)
	p := NewPoller(time.Second, nil)

	start := time.Now()
	err := p.WaitFor(context.Background(), "third call", probe, 10*time.Second)
	elapsed := time.Since(start)

	require.NoError(t, err)
	assert.EqualValues(t, 3, atomic.LoadInt32(calls))
	assert.GreaterOrEqual(t, elapsed, 2*time.Second)
	assert.Less(t, elapsed, 3500*time.Millisecond)
}

func TestWaitFor_TimesOut(t *testing.T) {
	p := NewPoller(time.Second, nil)
	never := func(context.Context) (bool, error) { return false, nil }

	start := time.Now()
	err := p.WaitFor(context.Background(), "never", never, 2*time.Second)
	elapsed := time.Since(start)

	var timeout *domain.TimeoutError
	require.ErrorAs(t, err, &timeout)
	assert.Equal(t, "never", timeout.Condition)
	assert.Equal(t, 2*time.Second, timeout.Timeout)
	assert.GreaterOrEqual(t, elapsed, 2*time.Second)
	assert.Less(t, elapsed, 3*time.Second)
	assert.GreaterOrEqual(t, timeout.Elapsed, 2*time.Second)
}

func TestWaitFor_FaultAbortsImmediately(t *testing.T) {
	p := NewPoller(time.Second, nil)
	boom := errors.New("session deleted")
	var calls int32
	probe := func(context.Context) (bool, error) {
		atomic.AddInt32(&calls, 1)
		return false, boom
	}

	start := time.Now()
	err := p.WaitFor(context.Background(), "broken probe", probe, 10*time.Second)

	require.ErrorIs(t, err, boom)
	var timeout *domain.TimeoutError
	assert.False(t, errors.As(err, &timeout))
	assert.EqualValues(t, 1, calls)
	assert.Less(t, time.Since(start), 500*time.Millisecond)
}

func TestWaitFor_NotFoundIsNotAFault(t *testing.T) {
	p := NewPoller(10*time.Millisecond, nil)
	var calls int32
	probe := func(context.Context) (bool, error) {
		if atomic.AddInt32(&calls, 1) < 4 {
			return false, fmt.Errorf("name=\"x\": %w", domain.ErrElementNotFound)
		}
		return true, nil
	}

	outcome, err := p.Poll(context.Background(), "x", probe, time.Second)
	require.NoError(t, err)
	assert.True(t, outcome.Succeeded)
	assert.Equal(t, 4, outcome.Attempts)
}

func TestWaitFor_DefaultTimeout(t *testing.T) {
	p := &Poller{}
	assert.Equal(t, DefaultTimeout, p.budget(0))
	assert.Equal(t, DefaultTimeout, p.budget(-time.Second))
	assert.Equal(t, time.Minute, p.budget(time.Minute))
}

func TestWaitFor_ContextCancelled(t *testing.T) {
	p := NewPoller(time.Second, nil)
	ctx, cancel := context.WithCancel(context.Background())
	never := func(context.Context) (bool, error) {
		cancel()
		return false, nil
	}

	err := p.WaitFor(ctx, "cancelled", never, 10*time.Second)
	require.ErrorIs(t, err, context.Canceled)
}

func TestWaitFor_LogsAttempts(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	p := NewPoller(10*time.Millisecond, logger)
	probe, _ := trueOnCall(3)

	require.NoError(t, p.WaitFor(context.Background(), "element name=\"j_username\"", probe, time.Second))
	require.Len(t, hook.AllEntries(), 2)
	assert.Contains(t, hook.LastEntry().Message, "waiting for element")
}

func TestElementPresent(t *testing.T) {
	loc := browser.ByName("j_username")
	site := browsertest.RundeckSite("http://rundeck")
	site["http://rundeck"].AppearAfter = map[browser.Locator]int{loc: 2}
	driver := browsertest.NewDriver("s1", site)
	require.NoError(t, driver.Navigate(context.Background(), "http://rundeck"))

	p := NewPoller(10*time.Millisecond, nil)
	require.NoError(t, p.WaitFor(context.Background(), loc.String(), ElementPresent(driver, loc), time.Second))
	assert.Equal(t, 3, driver.Lookups(loc))

	missing := browser.ByClass("missing")
	err := p.WaitFor(context.Background(), missing.String(), ElementPresent(driver, missing), 50*time.Millisecond)
	var timeout *domain.TimeoutError
	assert.ErrorAs(t, err, &timeout)
}
