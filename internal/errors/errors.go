package errors

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/DEVBOX10/Ididit/internal/logger"
	"github.com/DEVBOX10/Ididit/internal/models"
)

// Format formats an error message with a consistent "Error: " prefix,
// followed by a hint when the error has a known remedy
func Format(err error) string {
	if err == nil {
		return ""
	}
	if hint := Hint(err); hint != "" {
		return fmt.Sprintf("Error: %v\nHint: %s", err, hint)
	}
	return fmt.Sprintf("Error: %v", err)
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Hint suggests a next step for errors the user can act on
func Hint(err error) string {
	switch {
	case stderrors.Is(err, models.ErrIdentifierNotFound):
		return "use 'ididit category list' or 'ididit goal show <id>' to look up identifiers"
	case stderrors.Is(err, models.ErrInconsistentOrderState):
		return "the stored order is damaged; run 'ididit doctor' and restore a backup if it persists"
	case stderrors.Is(err, models.ErrIndexOutOfRange):
		return "positions start at 0 and may not exceed the number of siblings"
	}
	return ""
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}

// Fatalf logs and formats an error message, then exits the program with exit code 1
func Fatalf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	logger.Error("Command execution failed", "error", msg)
	fmt.Fprintf(os.Stderr, "%s\n", Formatf(format, args...))
	os.Exit(1)
}
