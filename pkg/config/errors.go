package config

import "errors"

// Sentinel errors for configuration failure modes.
// Callers should use errors.Is() to check for these.
var (
	// ErrInvalidConfig indicates the configuration is syntactically or
	// semantically invalid (unreadable file, bad JSON/YAML, malformed
	// score threshold, unknown id).
	ErrInvalidConfig = errors.New("config: invalid configuration")

	// ErrMissingRequired indicates a required configuration field was
	// not provided (no URL and no config file).
	ErrMissingRequired = errors.New("config: missing required field")
)
