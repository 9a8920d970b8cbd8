package cmd

import (
	"errors"
	"fmt"
)

const (
	exitCodeFailure      = 1
	exitCodeInvalidInput = 2
	exitCodeRiskFound    = 3
)

// InputError signals that the user supplied an unusable target or setting.
type InputError struct {
	Input string
	Err   error
}

func (e *InputError) Error() string {
	if e.Input == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("invalid %s: %v", e.Input, e.Err)
}

func (e *InputError) Unwrap() error {
	return e.Err
}

// ExitError carries an explicit process exit code.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

func exitCodeFor(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	var inputErr *InputError
	if errors.As(err, &inputErr) {
		return exitCodeInvalidInput
	}
	return exitCodeFailure
}
