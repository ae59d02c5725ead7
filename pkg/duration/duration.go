// Package duration provides canonical time constants for the codebase.
// Reference these instead of hardcoding time.Duration literals so that
// every timeout lives in one place.
package duration

import "time"

const (
	// BrowserLaunch bounds starting Chrome and reaching its debugger port.
	BrowserLaunch = 30 * time.Second

	// BrowserStop bounds tearing a Chrome instance down after an audit.
	BrowserStop = 10 * time.Second

	// EngineRun is the default ceiling for a single Lighthouse invocation.
	// Cold pages on slow connections can legitimately take minutes.
	EngineRun = 5 * time.Minute

	// ScanDefault bounds a full single-URL scan (launch + audit + render)
	// when the user does not override it with -timeout.
	ScanDefault = 6 * time.Minute
)
