package execution

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xbt/internal/browser"
	"xbt/internal/browser/browsertest"
	"xbt/internal/domain"
	"xbt/internal/matrix"
	"xbt/internal/scenario"
	"xbt/internal/session"
	"xbt/internal/wait"
)

const site = "http://rundeck.test"

// farm hands out one fake driver per provisioning call and remembers them all
type farm struct {
	mu      sync.Mutex
	drivers []*browsertest.Driver
	reject  map[string]bool // by browser name
	pages   func() map[string]*browsertest.Page
	quitErr error
}

func (f *farm) Provision(_ context.Context, c domain.Capability) (browser.Driver, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.reject[c.Browser] {
		return nil, errors.New("unsupported OS/browser/version combo")
	}
	pages := browsertest.RundeckSite(site)
	if f.pages != nil {
		pages = f.pages()
	}
	d := browsertest.NewDriver(c.Browser+"-"+string(rune('a'+len(f.drivers))), pages)
	d.QuitErr = f.quitErr
	f.drivers = append(f.drivers, d)
	return d, nil
}

func (f *farm) all() []*browsertest.Driver {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*browsertest.Driver(nil), f.drivers...)
}

// sink records verdicts
type sink struct {
	mu       sync.Mutex
	verdicts []domain.Verdict
	ctxErrs  []error
	err      error
}

func (s *sink) Report(ctx context.Context, v domain.Verdict) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := ctx.Err(); err != nil {
		s.ctxErrs = append(s.ctxErrs, err)
		return err
	}
	s.verdicts = append(s.verdicts, v)
	return s.err
}

func (s *sink) all() []domain.Verdict {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Verdict(nil), s.verdicts...)
}

func newRunner(f *farm, s *sink) (*Runner, *logtest.Hook) {
	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	env := scenario.Env{
		SiteURL:     site,
		Username:    "admin",
		Password:    "admin",
		WaitTimeout: 100 * time.Millisecond,
		Poller:      wait.NewPoller(10*time.Millisecond, logger),
	}
	return NewRunner(session.NewLifecycle(f), s, env, logger), hook
}

var firefox = domain.Capability{OS: "Linux", Version: "45.0", Browser: "firefox"}

func TestRunner_Run_Passes(t *testing.T) {
	f, s := &farm{}, &sink{}
	r, _ := newRunner(f, s)

	for _, sc := range scenario.All() {
		result := r.Run(context.Background(), Job{Capability: firefox, Scenario: sc})
		assert.True(t, result.Success, "%s: %v", sc.Name, result.Error)
		assert.True(t, result.Reported)
		assert.True(t, result.Released)
		assert.NotEmpty(t, result.SessionID)
	}

	drivers := f.all()
	require.Len(t, drivers, 2, "each scenario gets its own session")
	assert.NotEqual(t, drivers[0].ID, drivers[1].ID)
	for _, d := range drivers {
		assert.Equal(t, 1, d.Quits())
	}
	verdicts := s.all()
	require.Len(t, verdicts, 2)
	assert.Equal(t, domain.Verdict{SessionID: drivers[0].ID, Passed: true}, verdicts[0])
}

func TestRunner_Run_AssertionFailure(t *testing.T) {
	f := &farm{pages: func() map[string]*browsertest.Page {
		pages := browsertest.RundeckSite(site)
		pages[site].Title = "502 Bad Gateway"
		return pages
	}}
	s := &sink{}
	r, _ := newRunner(f, s)

	result := r.Run(context.Background(), Job{Capability: firefox, Scenario: scenario.CheckLoginPage})

	assert.False(t, result.Success)
	var mismatch *domain.AssertionMismatch
	assert.ErrorAs(t, result.Error, &mismatch)
	assert.Equal(t, []domain.Verdict{{SessionID: result.SessionID, Passed: false}}, s.all())
	assert.Equal(t, 1, f.all()[0].Quits())
}

func TestRunner_Run_PanicStillReleasesAndReports(t *testing.T) {
	f, s := &farm{}, &sink{}
	r, _ := newRunner(f, s)
	faulty := scenario.Scenario{
		Name: "faulty",
		Run: func(context.Context, *session.TestContext, scenario.Env) error {
			var m map[string]int
			m["boom"]++
			return nil
		},
	}

	result := r.Run(context.Background(), Job{Capability: firefox, Scenario: faulty})

	assert.False(t, result.Success)
	var perr *domain.PanicError
	assert.ErrorAs(t, result.Error, &perr)
	assert.True(t, result.Released)
	assert.Equal(t, 1, f.all()[0].Quits())
	assert.Equal(t, []domain.Verdict{{SessionID: result.SessionID, Passed: false}}, s.all())
}

func TestRunner_Run_ProvisioningFailure(t *testing.T) {
	f, s := &farm{reject: map[string]bool{"firefox": true}}, &sink{}
	r, _ := newRunner(f, s)

	result := r.Run(context.Background(), Job{Capability: firefox, Scenario: scenario.CheckLoginPage})

	assert.False(t, result.Success)
	var perr *domain.ProvisioningError
	assert.ErrorAs(t, result.Error, &perr)
	assert.Empty(t, result.SessionID)
	assert.False(t, result.Released)
	assert.Empty(t, s.all(), "no session means nothing to report")
}

func TestRunner_Run_ReportingFailureKeepsVerdict(t *testing.T) {
	f := &farm{}
	s := &sink{err: &domain.ReportingError{SessionID: "x", Err: errors.New("connection refused")}}
	r, hook := newRunner(f, s)

	result := r.Run(context.Background(), Job{Capability: firefox, Scenario: scenario.CheckLoginPage})

	assert.True(t, result.Success)
	assert.False(t, result.Reported)
	assert.True(t, result.Released)
	assert.Len(t, s.all(), 1)

	var warned bool
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.WarnLevel && e.Message == "failed to report verdict" {
			warned = true
		}
	}
	assert.True(t, warned)
}

func TestRunner_Run_QuitFailureKeepsVerdict(t *testing.T) {
	f, s := &farm{quitErr: errors.New("session already gone")}, &sink{}
	r, _ := newRunner(f, s)

	result := r.Run(context.Background(), Job{Capability: firefox, Scenario: scenario.CheckLoginPage})

	assert.True(t, result.Success)
	assert.True(t, result.Reported)
	assert.Equal(t, []domain.Verdict{{SessionID: result.SessionID, Passed: true}}, s.all())
}

func TestRunner_Run_CancelDuringScenarioStillReports(t *testing.T) {
	f, s := &farm{}, &sink{}
	r, _ := newRunner(f, s)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	interrupted := scenario.Scenario{
		Name: "interrupted",
		Run: func(ctx context.Context, tc *session.TestContext, env scenario.Env) error {
			cancel()
			if err := ctx.Err(); err != nil {
				return err
			}
			return scenario.CheckLoginPage.Run(ctx, tc, env)
		},
	}

	result := r.Run(ctx, Job{Capability: firefox, Scenario: interrupted})

	require.NoError(t, result.Error)
	assert.True(t, result.Success)
	assert.True(t, result.Reported)
	assert.True(t, result.Released)
	assert.Empty(t, s.ctxErrs, "the verdict is sent on a live context")
	assert.Equal(t, []domain.Verdict{{SessionID: result.SessionID, Passed: true}}, s.all())
}

func TestRunner_Run_QuietAtInfoLevel(t *testing.T) {
	f, s := &farm{}, &sink{}
	r, hook := newRunner(f, s)

	for _, sc := range scenario.All() {
		result := r.Run(context.Background(), Job{Capability: firefox, Scenario: sc})
		require.True(t, result.Success, "%s: %v", sc.Name, result.Error)
	}

	for _, e := range hook.AllEntries() {
		assert.Equal(t, logrus.DebugLevel, e.Level, "a passing context only logs at debug: %q", e.Message)
	}
}

func TestExpand(t *testing.T) {
	jobs := Expand(matrix.Default(), scenario.All())
	require.Len(t, jobs, 6)
	assert.Equal(t, "internet explorer", jobs[0].Capability.Browser)
	assert.Equal(t, "checkLoginPage", jobs[0].Scenario.Name)
	assert.Equal(t, "validateLogin", jobs[1].Scenario.Name)
	assert.Equal(t, "firefox", jobs[5].Capability.Browser)

	assert.Empty(t, Expand(nil, scenario.All()))
}
