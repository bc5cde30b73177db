package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"

	"mtpsync/pkg/errs"
)

// Warning prints a warning message to standard error.
func Warning(message string) {
	fmt.Fprintln(color.Error, color.YellowString("Warning:"), message)
}

// Error prints an error message to standard error.
func Error(err error) {
	fmt.Fprintln(os.Stderr, "Error:", err)
}

// Fatal prints an error message to standard error and terminates the
// process with the exit code associated with err's ErrorKind (spec.md §7).
// Errors that don't carry a Kind exit with errs.KindGeneric's code.
func Fatal(err error) {
	Error(err)
	os.Exit(errs.KindOf(err).ExitCode())
}
