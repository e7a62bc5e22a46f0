package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/google/uuid"
)

// Config holds all configuration for the application
type Config struct {
	// Target settings
	SiteURL       string
	LoginUser     string
	LoginPassword string

	// Browser farm settings
	HubHost  string
	RunLabel string
	RunID    string

	// Execution settings
	Processors   int
	WaitTimeout  time.Duration
	PollInterval time.Duration

	// Reporting settings
	ReportRetries int

	// Credentials are read once from the environment and never mutated afterwards
	Credentials Credentials

	// Command flags
	Flags Flags
}

// Flags holds command-line flags
type Flags struct {
	Processors  int
	NameFilter  string
	MatrixFile  string
	SiteURL     string
	HubHost     string
	RunLabel    string
	Local       bool
	WaitSeconds int
	FailFast    bool
	Inspect     bool
	EnvFile     string
	Verbose     bool

	// ShowScenarios lists every browser and scenario pair
	ShowScenarios bool
}

// New creates a new Config with defaults
func New() *Config {
	return &Config{
		SiteURL:       DefaultSiteURL,
		LoginUser:     DefaultLoginUser,
		LoginPassword: DefaultLoginPassword,
		HubHost:       DefaultHubHost,
		RunLabel:      DefaultRunLabel,
		RunID:         uuid.NewString(),
		Processors:    DefaultProcessors,
		WaitTimeout:   DefaultWaitTimeout,
		PollInterval:  DefaultPollInterval,
		ReportRetries: DefaultReportRetries,
		Flags:         Flags{Processors: DefaultProcessors, EnvFile: DefaultEnvFile},
	}
}

// Load creates a config and applies flags
func Load(flags Flags) *Config {
	cfg := New()
	cfg.Apply(flags)
	return cfg
}

// Apply stores the flags and copies every override that was set
func (c *Config) Apply(flags Flags) {
	c.Flags = flags

	if flags.Processors > 0 {
		c.Processors = flags.Processors
	}
	if flags.SiteURL != "" {
		c.SiteURL = flags.SiteURL
	}
	if flags.HubHost != "" {
		c.HubHost = flags.HubHost
	}
	if flags.RunLabel != "" {
		c.RunLabel = flags.RunLabel
	}
	if flags.WaitSeconds > 0 {
		c.WaitTimeout = time.Duration(flags.WaitSeconds) * time.Second
	}
}

// GetHubURL returns the authenticated WebDriver hub URL
func (c *Config) GetHubURL() string {
	u := url.URL{
		Scheme: "http",
		Host:   c.HubHost,
		Path:   "/wd/hub",
	}
	if c.Credentials.Username != "" {
		u.User = url.UserPassword(c.Credentials.Username, c.Credentials.AccessKey)
	}
	return u.String()
}

// GetSiteURL returns the root URL of the site under test
func (c *Config) GetSiteURL() string {
	return c.SiteURL
}

// GetWaitTimeout returns the budget for page-load waits
func (c *Config) GetWaitTimeout() time.Duration {
	if c.WaitTimeout <= 0 {
		return DefaultWaitTimeout
	}
	return c.WaitTimeout
}

// GetJobURL returns the browser farm page for a session
func (c *Config) GetJobURL(sessionID string) string {
	if sessionID == "" || c.Flags.Local {
		return ""
	}
	return fmt.Sprintf("%s/jobs/%s", c.Credentials.webURL(), sessionID)
}
