package config

import "time"

const (
	// DefaultSiteURL is the Rundeck instance under test
	DefaultSiteURL = "http://35.194.88.217"
	// DefaultHubHost is the Sauce OnDemand WebDriver hub
	DefaultHubHost = "ondemand.saucelabs.com:80"
	// DefaultRunLabel names every job on the browser farm
	DefaultRunLabel = "Rundeck Sample Test"
	// DefaultProcessors is the default number of concurrent browser sessions
	DefaultProcessors = 3
	// DefaultWaitTimeout is the default budget for a single wait
	DefaultWaitTimeout = 10 * time.Second
	// DefaultPollInterval is the spacing between probe attempts
	DefaultPollInterval = time.Second
	// DefaultReportRetries is how often a verdict report is retried
	DefaultReportRetries = 3
	// DefaultLoginUser and DefaultLoginPassword are the Rundeck demo credentials
	DefaultLoginUser     = "admin"
	DefaultLoginPassword = "admin"
	// DefaultEnvFile is loaded before reading credentials, when present
	DefaultEnvFile = ".env"
)
