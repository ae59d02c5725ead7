// Package exitcode provides semantic exit codes for CI integration.
//
// Exit codes:
//   - 0: Success (all thresholds met, no failed audits)
//   - 1: Threshold failures (a category scored below its minimum or an audit failed)
//   - 3: Invalid configuration
//   - 4: Browser or engine failure
//   - 5: Scan interrupted
package exitcode

import (
	"context"
	"errors"

	"github.com/lightkeeper-ci/lightkeeper/pkg/config"
)

// Code represents a semantic exit code for CI pipelines.
type Code int

const (
	// Success indicates every threshold was met and no audit failed.
	Success Code = 0
	// ThresholdFailures indicates at least one category scored below its
	// configured minimum or at least one displayed audit failed.
	ThresholdFailures Code = 1
	// Configuration indicates invalid configuration was provided.
	Configuration Code = 3
	// Engine indicates the browser or the auditing engine failed.
	Engine Code = 4
	// Interrupted indicates the scan was interrupted (e.g. SIGINT).
	Interrupted Code = 5
)

var codeStrings = map[Code]string{
	Success:           "success",
	ThresholdFailures: "threshold_failures",
	Configuration:     "invalid_configuration",
	Engine:            "engine_failure",
	Interrupted:       "scan_interrupted",
}

// String returns the machine-readable name of the code.
func (c Code) String() string {
	if s, ok := codeStrings[c]; ok {
		return s
	}
	return "unknown"
}

// Int returns the code as the value to pass to os.Exit.
func (c Code) Int() int { return int(c) }

// FromRun maps a finished run to its exit code. err is whatever the scan
// loop returned; failed is the aggregated threshold-failure flag.
func FromRun(err error, failed bool) Code {
	switch {
	case err == nil:
		if failed {
			return ThresholdFailures
		}
		return Success
	case errors.Is(err, config.ErrInvalidConfig), errors.Is(err, config.ErrMissingRequired):
		return Configuration
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return Interrupted
	default:
		return Engine
	}
}
