package session

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tebeka/selenium"

	"xbt/internal/browser"
	"xbt/internal/config"
	"xbt/internal/domain"
)

// ErrMissingCredentials is returned when the farm username or access key is unset
var ErrMissingCredentials = errors.New("browser farm credentials are not set (SAUCE_USER, SAUCE_ACCESS_KEY)")

// Provisioner hands out live browsers for a capability
type Provisioner interface {
	Provision(ctx context.Context, c domain.Capability) (browser.Driver, error)
}

// Connector opens a remote WebDriver session. selenium.NewRemote satisfies it.
type Connector func(caps selenium.Capabilities, urlPrefix string) (selenium.WebDriver, error)

// RemoteProvisioner requests browsers from a WebDriver hub such as Sauce OnDemand
type RemoteProvisioner struct {
	cfg     *config.Config
	connect Connector
}

// NewRemoteProvisioner creates a provisioner for the configured hub
func NewRemoteProvisioner(cfg *config.Config) *RemoteProvisioner {
	return &RemoteProvisioner{cfg: cfg, connect: selenium.NewRemote}
}

// WithConnector replaces the WebDriver connector
func (p *RemoteProvisioner) WithConnector(connect Connector) *RemoteProvisioner {
	p.connect = connect
	return p
}

// Capabilities builds the desired capabilities for c. The version is omitted
// when unset so the farm picks its default.
func (p *RemoteProvisioner) Capabilities(c domain.Capability) selenium.Capabilities {
	caps := selenium.Capabilities{
		"browserName": c.Browser,
		"platform":    c.OS,
		"name":        p.cfg.RunLabel,
	}
	if c.Version != "" {
		caps["version"] = c.Version
	}
	if p.cfg.RunID != "" {
		caps["build"] = p.cfg.RunID
	}
	return caps
}

// Provision connects to the hub and returns the new session
func (p *RemoteProvisioner) Provision(ctx context.Context, c domain.Capability) (browser.Driver, error) {
	if !p.cfg.Credentials.Complete() {
		return nil, ErrMissingCredentials
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	wd, err := p.connect(p.Capabilities(c), p.cfg.GetHubURL())
	if err != nil {
		return nil, fmt.Errorf("new remote session: %w", err)
	}
	return browser.NewSeleniumDriver(wd), nil
}

// LocalProvisioner starts a headless Chrome on this machine. It serves
// smoke runs without a browser farm and only accepts Chrome capabilities.
type LocalProvisioner struct {
	ExecPath string
	start    func(ctx context.Context, execPath string) (browser.Driver, error)
}

// NewLocalProvisioner creates a provisioner for a local Chrome binary (empty path searches PATH)
func NewLocalProvisioner(execPath string) *LocalProvisioner {
	return &LocalProvisioner{
		ExecPath: execPath,
		start: func(ctx context.Context, execPath string) (browser.Driver, error) {
			return browser.StartChrome(ctx, execPath)
		},
	}
}

// Provision launches Chrome for c
func (p *LocalProvisioner) Provision(ctx context.Context, c domain.Capability) (browser.Driver, error) {
	switch strings.ToLower(c.Browser) {
	case "chrome", "chromium", "googlechrome":
	default:
		return nil, fmt.Errorf("local runs only support chrome, not %q", c.Browser)
	}
	return p.start(ctx, p.ExecPath)
}
