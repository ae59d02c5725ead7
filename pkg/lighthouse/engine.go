package lighthouse

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/lightkeeper-ci/lightkeeper/pkg/duration"
	"github.com/lightkeeper-ci/lightkeeper/pkg/jsonutil"
)

// Engine runs the Lighthouse CLI against an already-running Chrome instance
// and decodes its JSON report. It never launches a browser itself; callers
// pass the debugging port of one they own.
type Engine struct {
	// Path is the lighthouse executable. Empty means look it up on PATH.
	Path string

	// ConfigPath is an optional engine-specific config file passed through
	// verbatim with --config-path.
	ConfigPath string

	// Timeout bounds a single engine invocation when the caller's context
	// carries no deadline. Zero means duration.EngineRun.
	Timeout time.Duration
}

// NewEngine returns an engine invoking the given lighthouse binary.
func NewEngine(path string) *Engine {
	return &Engine{Path: path}
}

// resolveBinary finds the lighthouse executable. npm installs it as
// "lighthouse" on Unix and "lighthouse.cmd" on Windows.
func (e *Engine) resolveBinary() (string, error) {
	if e.Path != "" {
		return e.Path, nil
	}
	for _, name := range []string{"lighthouse", "lighthouse.cmd"} {
		if p, err := exec.LookPath(name); err == nil && p != "" {
			return p, nil
		}
	}
	return "", fmt.Errorf("lighthouse executable not found on PATH (install with: npm install -g lighthouse)")
}

// Audit runs the engine for url against the Chrome instance listening on
// port and returns the decoded report. The engine writes the report to
// stdout; anything on stderr is kept for error context only.
func (e *Engine) Audit(ctx context.Context, url string, port int) (*Report, error) {
	bin, err := e.resolveBinary()
	if err != nil {
		return nil, err
	}

	timeout := e.Timeout
	if timeout == 0 {
		timeout = duration.EngineRun
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	args := []string{
		url,
		"--port", strconv.Itoa(port),
		"--output", "json",
		"--output-path", "stdout",
		"--quiet",
	}
	if e.ConfigPath != "" {
		args = append(args, "--config-path", e.ConfigPath)
	}

	cmd := exec.CommandContext(ctx, bin, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("lighthouse run for %s: %w", url, ctx.Err())
		}
		return nil, fmt.Errorf("lighthouse run for %s: %w: %s", url, err, firstLine(stderr.String()))
	}

	var report Report
	if err := jsonutil.Unmarshal(stdout.Bytes(), &report); err != nil {
		return nil, fmt.Errorf("decode lighthouse report for %s: %w", url, err)
	}
	if report.RequestedURL == "" {
		report.RequestedURL = url
	}
	return &report, nil
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	if s == "" {
		return "no error output"
	}
	return s
}
