package commands

import (
	"context"
	"fmt"

	"xbt/internal/config"
	"xbt/internal/execution"
	"xbt/internal/logging"
	"xbt/internal/matrix"
	"xbt/internal/parser"
	"xbt/internal/report"
	"xbt/internal/scenario"
	"xbt/internal/session"
	"xbt/internal/ui"
	"xbt/internal/wait"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// RunCommand handles the run command
type RunCommand struct {
	config    *config.Config
	filter    *matrix.Filter
	formatter *ui.Formatter
	viewer    ui.Viewer

	// provisioner and reporter override the ones chosen from flags
	provisioner session.Provisioner
	reporter    report.Reporter
}

// NewRunCommand creates a new RunCommand
func NewRunCommand(
	cfg *config.Config,
	filter *matrix.Filter,
	formatter *ui.Formatter,
	viewer ui.Viewer,
) *RunCommand {
	return &RunCommand{
		config:    cfg,
		filter:    filter,
		formatter: formatter,
		viewer:    viewer,
	}
}

// WithProvisioner replaces the browser source
func (rc *RunCommand) WithProvisioner(p session.Provisioner) *RunCommand {
	rc.provisioner = p
	return rc
}

// WithReporter replaces the verdict sink
func (rc *RunCommand) WithReporter(r report.Reporter) *RunCommand {
	rc.reporter = r
	return rc
}

// Execute runs the command
func (rc *RunCommand) Execute(cmd *cobra.Command, args []string) error {
	cfg := rc.config

	creds, err := config.LoadCredentials(cfg.Flags.EnvFile)
	if err != nil {
		return err
	}
	cfg.Credentials = creds

	logger := logging.New(cmd.ErrOrStderr(), cfg.Flags.Verbose)

	// Resolve browsers
	caps, err := matrix.Resolve(cfg.Flags.MatrixFile, cfg.Flags.Local)
	if err != nil {
		return err
	}
	caps = rc.filter.FilterByName(caps, cfg.Flags.NameFilter)

	jobs := execution.Expand(caps, scenario.All())
	if len(jobs) == 0 {
		color.New(color.FgYellow).Fprintln(cmd.OutOrStdout(), "No browsers to run")
		return nil
	}

	if !cfg.Flags.Local && !cfg.Credentials.Complete() && rc.provisioner == nil {
		logger.Warn("SAUCE_USER or SAUCE_ACCESS_KEY is not set, sessions will fail to start")
	}

	runner := execution.NewRunner(
		session.NewLifecycle(rc.provisionerFor(cfg)),
		rc.reporterFor(cfg, logger),
		scenario.Env{
			SiteURL:     cfg.GetSiteURL(),
			Username:    cfg.LoginUser,
			Password:    cfg.LoginPassword,
			WaitTimeout: cfg.GetWaitTimeout(),
			Poller:      wait.NewPoller(cfg.PollInterval, logger),
		},
		logger.WithField("run", cfg.RunID),
	)
	executor := execution.NewWorkerPool(cfg, runner)

	// Create and set progress bar
	executor.SetProgress(ui.NewProgressBarTo(cmd.ErrOrStderr(), len(jobs)))

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	results, duration, err := executor.ExecuteWithOptions(ctx, jobs, cfg.Flags.FailFast)
	if err != nil {
		return err
	}

	failureParser := parser.NewFailureParser(cfg.GetJobURL)
	failures := failureParser.ParseFailures(results)
	summary := failureParser.Summarize(results, duration, cfg.Processors, cfg.RunID)

	rc.formatter.PrintSummary(summary, failures)

	if cfg.Flags.Inspect && len(failures) > 0 {
		if err := rc.viewer.View(summary, failures); err != nil {
			return fmt.Errorf("failure viewer: %w", err)
		}
	}

	if summary.FailedContexts > 0 {
		return fmt.Errorf("%d of %d test contexts failed", summary.FailedContexts, summary.TotalContexts)
	}
	return nil
}

func (rc *RunCommand) provisionerFor(cfg *config.Config) session.Provisioner {
	switch {
	case rc.provisioner != nil:
		return rc.provisioner
	case cfg.Flags.Local:
		return session.NewLocalProvisioner("")
	default:
		return session.NewRemoteProvisioner(cfg)
	}
}

func (rc *RunCommand) reporterFor(cfg *config.Config, logger logrus.FieldLogger) report.Reporter {
	switch {
	case rc.reporter != nil:
		return rc.reporter
	case cfg.Flags.Local:
		// A local browser has no farm job to update
		return report.NewLogReporter(logger)
	default:
		return report.NewSauceReporter(cfg, logger)
	}
}
