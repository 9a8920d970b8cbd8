package errors

import "errors"

// Domain errors
var (
	// Target errors
	ErrEmptyTarget   = errors.New("target cannot be empty")
	ErrInvalidTarget = errors.New("invalid target")

	// Probe errors
	ErrResolutionFailed = errors.New("DNS resolution failed")
	ErrConnectionFailed = errors.New("connection failed")

	// Configuration errors
	ErrInvalidPath      = errors.New("probe path must start with '/'")
	ErrInvalidPattern   = errors.New("invalid sensitive-info pattern")
	ErrInvalidRiskLevel = errors.New("invalid risk level")
	ErrInvalidFormat    = errors.New("unsupported output format")
)
