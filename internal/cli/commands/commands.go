package commands

import (
	"xbt/internal/cli"
	"xbt/internal/config"
	"xbt/internal/matrix"
	"xbt/internal/ui"

	"github.com/spf13/cobra"
)

// Commands holds all CLI commands
type Commands struct {
	Run  *RunCommand
	List *ListCommand
}

// NewCommands creates all commands with dependencies. The browser stack of the
// run command depends on flags and is assembled when the command executes.
func NewCommands(cfg *config.Config) *Commands {
	filter := matrix.NewFilter()
	formatter := ui.NewFormatter()

	return &Commands{
		Run:  NewRunCommand(cfg, filter, formatter, ui.NewFailureViewer()),
		List: NewListCommand(cfg, filter, formatter),
	}
}

// Register registers all commands with cobra
func (c *Commands) Register(rootCmd *cobra.Command, flags *cli.Flags, cfg *config.Config) {
	applyFlags := func(cmd *cobra.Command, args []string) error {
		// Update config with flags after parsing
		cfg.Apply(flags.ToConfigFlags())
		return nil
	}

	// Run command
	runCmd := &cobra.Command{
		Use:          "run",
		Short:        "Run the login checks on every browser in the matrix",
		Long:         "Open one remote browser session per browser and scenario, run the Rundeck login checks in parallel and report each verdict to the browser farm",
		RunE:         c.Run.Execute,
		PreRunE:      applyFlags,
		SilenceUsage: true,
	}
	runCmd.Flags().IntVarP(&flags.Processors, "processors", "p", config.DefaultProcessors, "Number of browser sessions to run at once")
	runCmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "Filter browsers by label (supports wildcards, e.g., '*firefox*' or 'safari*macOS')")
	runCmd.Flags().StringVar(&flags.MatrixFile, "matrix", "", "YAML file with the browsers to run on (default: built-in matrix)")
	runCmd.Flags().StringVar(&flags.SiteURL, "site", config.DefaultSiteURL, "Root URL of the Rundeck instance under test")
	runCmd.Flags().StringVar(&flags.HubHost, "hub", config.DefaultHubHost, "host:port of the remote WebDriver hub")
	runCmd.Flags().StringVar(&flags.RunLabel, "run-label", config.DefaultRunLabel, "Name attached to every browser session")
	runCmd.Flags().BoolVar(&flags.Local, "local", false, "Run against a local headless Chrome instead of the browser farm")
	runCmd.Flags().IntVar(&flags.WaitSeconds, "timeout", int(config.DefaultWaitTimeout.Seconds()), "Seconds to wait for a page to load")
	runCmd.Flags().BoolVar(&flags.FailFast, "fail-fast", false, "Stop starting new sessions after the first failure")
	runCmd.Flags().BoolVar(&flags.Inspect, "inspect", false, "Open the failure viewer when the run finishes with failures")
	runCmd.Flags().StringVar(&flags.EnvFile, "env-file", config.DefaultEnvFile, "File with SAUCE_USER and SAUCE_ACCESS_KEY")
	runCmd.Flags().BoolVarP(&flags.Verbose, "verbose", "v", false, "Log every wait attempt and session event")
	rootCmd.AddCommand(runCmd)

	// List command
	listCmd := &cobra.Command{
		Use:     "list",
		Short:   "List the browser matrix",
		Long:    "Print the browsers and scenarios a run would cover without starting any session",
		RunE:    c.List.Execute,
		PreRunE: applyFlags,
	}
	listCmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "Filter browsers by label (supports wildcards, e.g., '*firefox*' or 'safari*macOS')")
	listCmd.Flags().StringVar(&flags.MatrixFile, "matrix", "", "YAML file with the browsers to run on (default: built-in matrix)")
	listCmd.Flags().BoolVar(&flags.Local, "local", false, "Show the local headless Chrome matrix")
	listCmd.Flags().BoolVarP(&flags.ShowScenarios, "scenarios", "s", false, "List every browser and scenario pair")
	rootCmd.AddCommand(listCmd)
}
