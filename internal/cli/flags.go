package cli

import "xbt/internal/config"

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

	ShowScenarios bool
}

// ToConfigFlags converts CLI flags to config flags
func (f *Flags) ToConfigFlags() config.Flags {
	return config.Flags{
		Processors:  f.Processors,
		NameFilter:  f.NameFilter,
		MatrixFile:  f.MatrixFile,
		SiteURL:     f.SiteURL,
		HubHost:     f.HubHost,
		RunLabel:    f.RunLabel,
		Local:       f.Local,
		WaitSeconds: f.WaitSeconds,
		FailFast:    f.FailFast,
		Inspect:     f.Inspect,
		EnvFile:     f.EnvFile,
		Verbose:     f.Verbose,

		ShowScenarios: f.ShowScenarios,
	}
}
