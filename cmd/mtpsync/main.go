package main

import (
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"mtpsync/cmd"
)

var rootCommand = &cobra.Command{
	Use:   "mtpsync",
	Short: "mtpsync synchronizes files between a local filesystem and an MTP device",
}

func init() {
	// Disable Cobra's alphabetical command sorting so help output matches
	// the order commands are registered in below.
	cobra.EnableCommandSorting = false

	// Avoid requiring a console-launched process on Windows; mtpsync has no
	// background service to register.
	cobra.MousetrapHelpText = ""

	rootCommand.AddCommand(
		devicesCommand,
		lsCommand,
		pushCommand,
		pullCommand,
		rmCommand,
	)
}

func main() {
	installSignalWarning()

	if err := rootCommand.Execute(); err != nil {
		os.Exit(1)
	}
}

// installSignalWarning prints a message to standard error when mtpsync
// receives a termination signal mid-command, then exits with status 130.
// mtpsync makes no cancellation guarantee
// beyond process termination (spec.md §5), so this is advisory only.
func installSignalWarning() {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, cmd.TerminationSignals...)
	go func() {
		<-signals
		cmd.Warning("interrupted, exiting without completing the remaining plan")
		os.Exit(130)
	}()
}
