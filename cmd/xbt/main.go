package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"xbt/internal/cli"
	"xbt/internal/cli/commands"
	"xbt/internal/config"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	// Create root command
	rootCmd := &cobra.Command{
		Use:           "xbt",
		Short:         "Cross-browser login checks",
		Long:          `Runs the Rundeck login acceptance checks on a matrix of remote browsers in parallel and reports every verdict back to the browser farm.`,
		Version:       version,
		SilenceErrors: true,
	}

	// Create initial config with defaults
	cfg := config.New()

	// Create flags struct (will be populated by command flags)
	var flags cli.Flags

	// Create commands with dependencies
	cmds := commands.NewCommands(cfg)

	// Register all commands
	cmds.Register(rootCmd, &flags, cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Execute root command
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
