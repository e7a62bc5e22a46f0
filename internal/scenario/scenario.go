// Package scenario contains the login checks run against every browser in the matrix.
package scenario

import (
	"context"
	"fmt"
	"strings"
	"time"

	"xbt/internal/browser"
	"xbt/internal/domain"
	"xbt/internal/session"
	"xbt/internal/wait"
)

const (
	// ExpectedLoginTitle is the title of the Rundeck login page
	ExpectedLoginTitle = "Rundeck - Login"
	// NewProjectText is the link shown once a user is logged in
	NewProjectText = "New Project"
)

var (
	usernameBox      = browser.ByName("j_username")
	passwordBox      = browser.ByName("j_password")
	submitButton     = browser.ByClass("btn-primary")
	newProjectButton = browser.ByPartialLinkText(NewProjectText)
)

// Env is the read-only input shared by all scenario runs
type Env struct {
	SiteURL     string
	Username    string
	Password    string
	WaitTimeout time.Duration
	Poller      *wait.Poller
}

// Scenario is one ordered sequence of browser steps
type Scenario struct {
	Name string
	Run  func(ctx context.Context, tc *session.TestContext, env Env) error
}

// All returns every scenario in execution order
func All() []Scenario {
	return []Scenario{CheckLoginPage, ValidateLogin}
}

// Names returns the names of scenarios
func Names(scenarios []Scenario) []string {
	names := make([]string, 0, len(scenarios))
	for _, s := range scenarios {
		names = append(names, s.Name)
	}
	return names
}

// CheckLoginPage verifies the title of the login page
var CheckLoginPage = Scenario{
	Name: "checkLoginPage",
	Run: func(ctx context.Context, tc *session.TestContext, env Env) error {
		if err := tc.Driver.Navigate(ctx, env.SiteURL); err != nil {
			return err
		}
		title, err := tc.Driver.Title(ctx)
		if err != nil {
			return err
		}
		tc.Log.Debugf("page title: %q", title)
		if title != ExpectedLoginTitle {
			return &domain.AssertionMismatch{What: "page title", Expected: ExpectedLoginTitle, Actual: title}
		}
		return nil
	},
}

// ValidateLogin logs in and checks the project page is shown
var ValidateLogin = Scenario{
	Name: "validateLogin",
	Run: func(ctx context.Context, tc *session.TestContext, env Env) error {
		d := tc.Driver
		if err := d.Navigate(ctx, env.SiteURL); err != nil {
			return err
		}

		// The username box marks the login page as loaded
		if err := env.Poller.WaitFor(ctx, "element "+usernameBox.String(), wait.ElementPresent(d, usernameBox), env.WaitTimeout); err != nil {
			return err
		}

		if err := fill(ctx, d, usernameBox, env.Username); err != nil {
			return err
		}
		if err := fill(ctx, d, passwordBox, env.Password); err != nil {
			return err
		}
		submit, err := find(ctx, d, submitButton)
		if err != nil {
			return err
		}
		if err := submit.Click(ctx); err != nil {
			return fmt.Errorf("click %s: %w", submitButton, err)
		}

		// The new project button marks the home page as loaded
		if err := env.Poller.WaitFor(ctx, "element "+newProjectButton.String(), wait.ElementPresent(d, newProjectButton), env.WaitTimeout); err != nil {
			return err
		}
		button, err := find(ctx, d, newProjectButton)
		if err != nil {
			return err
		}
		text, err := button.Text(ctx)
		if err != nil {
			return fmt.Errorf("read text of %s: %w", newProjectButton, err)
		}
		tc.Log.Debugf("new project button text: %q", text)

		// Some browsers do not trim rendered link text
		if got := strings.TrimSpace(text); got != NewProjectText {
			return &domain.AssertionMismatch{What: "new project button text", Expected: NewProjectText, Actual: got}
		}
		return nil
	},
}

// find looks an element up outside of a wait, where a missing element is a hard failure
func find(ctx context.Context, d browser.Driver, loc browser.Locator) (browser.Element, error) {
	el, err := d.FindElement(ctx, loc)
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", loc, err)
	}
	return el, nil
}

func fill(ctx context.Context, d browser.Driver, loc browser.Locator, text string) error {
	el, err := find(ctx, d, loc)
	if err != nil {
		return err
	}
	if err := el.Clear(ctx); err != nil {
		return fmt.Errorf("clear %s: %w", loc, err)
	}
	if err := el.SendKeys(ctx, text); err != nil {
		return fmt.Errorf("type into %s: %w", loc, err)
	}
	return nil
}
