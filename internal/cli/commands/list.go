package commands

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"xbt/internal/config"
	"xbt/internal/matrix"
	"xbt/internal/scenario"
	"xbt/internal/ui"
)

// ListCommand handles the list command
type ListCommand struct {
	config    *config.Config
	filter    *matrix.Filter
	formatter *ui.Formatter
}

// NewListCommand creates a new ListCommand
func NewListCommand(
	cfg *config.Config,
	filter *matrix.Filter,
	formatter *ui.Formatter,
) *ListCommand {
	return &ListCommand{
		config:    cfg,
		filter:    filter,
		formatter: formatter,
	}
}

// Execute runs the command
func (lc *ListCommand) Execute(cmd *cobra.Command, args []string) error {
	caps, err := matrix.Resolve(lc.config.Flags.MatrixFile, lc.config.Flags.Local)
	if err != nil {
		return err
	}

	// Filter browsers
	caps = lc.filter.FilterByName(caps, lc.config.Flags.NameFilter)

	if len(caps) == 0 {
		color.New(color.FgYellow).Fprintln(cmd.OutOrStdout(), "No browsers found")
		return nil
	}

	lc.formatter.PrintMatrix(caps, scenario.Names(scenario.All()), lc.config.Flags.ShowScenarios)
	return nil
}
