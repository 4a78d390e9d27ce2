package errors

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// CLIErrorAdapter handles error presentation and exit code determination for CLI applications.
type CLIErrorAdapter struct {
	verbose bool
	logger  *slog.Logger
	stderr  io.Writer
	exit    func(int)
}

// NewCLIErrorAdapter creates a new CLI error adapter.
func NewCLIErrorAdapter(verbose bool, logger *slog.Logger) *CLIErrorAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CLIErrorAdapter{
		verbose: verbose,
		logger:  logger,
		stderr:  os.Stderr,
		exit:    os.Exit,
	}
}

// ExitCodeFor determines the appropriate exit code for an error.
func (a *CLIErrorAdapter) ExitCodeFor(err error) int {
	if err == nil {
		return 0
	}

	if dne, ok := As(err); ok {
		return a.exitCodeFromDocNav(dne)
	}

	return 1
}

// exitCodeFromDocNav maps DocNavError to exit codes.
func (a *CLIErrorAdapter) exitCodeFromDocNav(err *DocNavError) int {
	switch err.Category {
	case CategoryValidation:
		return 2 // Invalid usage
	case CategorySpec:
		return 3 // Sidebar specification rejected
	case CategoryConfig:
		return 7 // Configuration error
	case CategoryExport, CategoryFileSystem:
		return 11 // Output error
	case CategoryRuntime:
		return 12 // Runtime error
	case CategoryInternal:
		return 10 // Internal error
	default:
		return 1 // General error
	}
}

// FormatError formats an error for user-friendly display.
func (a *CLIErrorAdapter) FormatError(err error) string {
	if err == nil {
		return ""
	}

	if dne, ok := As(err); ok {
		return a.formatDocNav(dne)
	}

	return fmt.Sprintf("Error: %v", err)
}

// formatDocNav formats a DocNavError for display.
func (a *CLIErrorAdapter) formatDocNav(err *DocNavError) string {
	if a.verbose {
		return err.Error()
	}

	switch err.Category {
	case CategoryConfig, CategoryValidation:
		return err.Message
	case CategorySpec:
		// The cause names the offending sidebar path, which is what authors need.
		if err.Cause != nil {
			return fmt.Sprintf("%s:\n%v", err.Message, err.Cause)
		}
		return err.Message
	default:
		return fmt.Sprintf("%s: %s", err.Category, err.Message)
	}
}

// HandleError processes an error and exits the program with appropriate code.
func (a *CLIErrorAdapter) HandleError(err error) {
	if err == nil {
		return
	}

	exitCode := a.ExitCodeFor(err)
	message := a.FormatError(err)

	if a.shouldLog(err) {
		a.logError(err)
	}

	_, _ = fmt.Fprintf(a.stderr, "%s\n", message)
	a.exit(exitCode)
}

// shouldLog determines if an error should be logged.
func (a *CLIErrorAdapter) shouldLog(err error) bool {
	if a.verbose {
		return true
	}

	if dne, ok := As(err); ok {
		return dne.Category == CategoryInternal ||
			dne.Category == CategoryRuntime
	}

	return true
}

// logError logs an error with appropriate level and context.
func (a *CLIErrorAdapter) logError(err error) {
	if dne, ok := As(err); ok {
		level := a.slogLevelFromSeverity(dne.Severity)
		attrs := []slog.Attr{
			slog.String("category", string(dne.Category)),
		}
		for k, v := range dne.Context {
			attrs = append(attrs, slog.Any(k, v))
		}
		if dne.Cause != nil {
			attrs = append(attrs, slog.String("error", dne.Cause.Error()))
		}

		a.logger.LogAttrs(context.Background(), level, dne.Message, attrs...)
		return
	}

	a.logger.Error("Unclassified error", "error", err)
}

// slogLevelFromSeverity converts DocNavError severity to slog level.
func (a *CLIErrorAdapter) slogLevelFromSeverity(severity ErrorSeverity) slog.Level {
	switch severity {
	case SeverityInfo:
		return slog.LevelInfo
	case SeverityWarning:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}
