package cli

import (
	"errors"
	"fmt"

	"github.com/sekarsister/pdrdash/internal/pdr"
)

// Exit codes for CLI commands.
const (
	ExitSuccess       = 0
	ExitFailure       = 1 // unreadable table, bad config, I/O failure
	ExitMissingSource = 2 // the project file has not been generated yet
)

// ExitError carries the process exit code for a failed command.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// WrapExitError wraps err with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from err. Errors that are not an
// ExitError map to ExitFailure.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// loadError classifies a table load failure.
func loadError(err error) *ExitError {
	if errors.Is(err, pdr.ErrMissingSource) {
		return WrapExitError(ExitMissingSource, "⚠️ Veuillez générer le fichier CSV d'abord", err)
	}
	return WrapExitError(ExitFailure, "lecture des projets impossible", err)
}
