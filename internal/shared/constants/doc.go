// Package constants centralizes the defaults shared across the CLI and the checker.
//
// The admin path list, the sensitive-info pattern and the probe limits live here so
// cmd/ can seed its configuration from them and internal/checker can fall back to them
// when a caller leaves a field zero. Callers always receive copies of slices, so no
// package can mutate another's defaults.
package constants
