package scenario

import (
	"context"
	"errors"
	"testing"
	"time"

	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xbt/internal/browser"
	"xbt/internal/browser/browsertest"
	"xbt/internal/domain"
	"xbt/internal/session"
	"xbt/internal/wait"
)

const site = "http://rundeck.test"

func setup(t *testing.T, pages map[string]*browsertest.Page) (*session.TestContext, *browsertest.Driver, Env) {
	t.Helper()
	logger, _ := logtest.NewNullLogger()
	driver := browsertest.NewDriver("sess-1", pages)
	tc := session.NewTestContext(domain.Capability{OS: "Linux", Version: "45.0", Browser: "firefox"}, "test", logger)
	tc.Driver = driver
	tc.SessionID = driver.ID
	env := Env{
		SiteURL:     site,
		Username:    "admin",
		Password:    "admin",
		WaitTimeout: 200 * time.Millisecond,
		Poller:      wait.NewPoller(10*time.Millisecond, logger),
	}
	return tc, driver, env
}

func TestAll(t *testing.T) {
	assert.Equal(t, []string{"checkLoginPage", "validateLogin"}, Names(All()))
}

func TestCheckLoginPage(t *testing.T) {
	t.Run("title matches", func(t *testing.T) {
		tc, driver, env := setup(t, browsertest.RundeckSite(site))
		require.NoError(t, CheckLoginPage.Run(context.Background(), tc, env))
		assert.Equal(t, []string{site}, driver.Visited())
	})

	t.Run("title differs", func(t *testing.T) {
		pages := browsertest.RundeckSite(site)
		pages[site].Title = "Rundeck - Error"
		tc, _, env := setup(t, pages)

		err := CheckLoginPage.Run(context.Background(), tc, env)
		var mismatch *domain.AssertionMismatch
		require.ErrorAs(t, err, &mismatch)
		assert.Equal(t, ExpectedLoginTitle, mismatch.Expected)
		assert.Equal(t, "Rundeck - Error", mismatch.Actual)
	})

	t.Run("site unreachable", func(t *testing.T) {
		tc, _, env := setup(t, browsertest.RundeckSite(site))
		env.SiteURL = "http://elsewhere.test"
		assert.Error(t, CheckLoginPage.Run(context.Background(), tc, env))
	})
}

func TestValidateLogin(t *testing.T) {
	t.Run("logs in", func(t *testing.T) {
		pages := browsertest.RundeckSite(site)
		pages[site].AppearAfter = map[browser.Locator]int{usernameBox: 2}
		tc, driver, env := setup(t, pages)

		require.NoError(t, ValidateLogin.Run(context.Background(), tc, env))

		login := pages[site].Elements
		assert.Equal(t, "admin", login[usernameBox].Value)
		assert.Equal(t, "admin", login[passwordBox].Value)
		assert.Equal(t, 1, login[submitButton].Clicks())
		assert.GreaterOrEqual(t, driver.Lookups(usernameBox), 3)
	})

	t.Run("clears prefilled fields", func(t *testing.T) {
		pages := browsertest.RundeckSite(site)
		pages[site].Elements[usernameBox].Value = "stale"
		tc, _, env := setup(t, pages)

		require.NoError(t, ValidateLogin.Run(context.Background(), tc, env))
		assert.Equal(t, "admin", pages[site].Elements[usernameBox].Value)
	})

	t.Run("login page never loads", func(t *testing.T) {
		pages := browsertest.RundeckSite(site)
		delete(pages[site].Elements, usernameBox)
		tc, _, env := setup(t, pages)

		err := ValidateLogin.Run(context.Background(), tc, env)
		var timeout *domain.TimeoutError
		require.ErrorAs(t, err, &timeout)
		assert.Contains(t, timeout.Condition, "j_username")
	})

	t.Run("missing password box is a hard failure", func(t *testing.T) {
		pages := browsertest.RundeckSite(site)
		delete(pages[site].Elements, passwordBox)
		tc, _, env := setup(t, pages)

		err := ValidateLogin.Run(context.Background(), tc, env)
		assert.ErrorIs(t, err, domain.ErrElementNotFound)
		var timeout *domain.TimeoutError
		assert.False(t, errors.As(err, &timeout))
	})

	t.Run("wrong button text", func(t *testing.T) {
		pages := browsertest.RundeckSite(site)
		pages[site+"/menu/home"].Elements[newProjectButton].Text = "New Project Wizard"
		tc, _, env := setup(t, pages)

		err := ValidateLogin.Run(context.Background(), tc, env)
		var mismatch *domain.AssertionMismatch
		require.ErrorAs(t, err, &mismatch)
		assert.Equal(t, "New Project Wizard", mismatch.Actual)
	})
}
