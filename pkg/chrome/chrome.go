// Package chrome launches and tears down the instrumented Chrome instance
// the auditing engine connects to. chromedp owns the process lifecycle; this
// package pins the DevTools port so the engine can be pointed at it.
package chrome

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/exec"
	"strconv"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/lightkeeper-ci/lightkeeper/pkg/duration"
)

// Config holds browser launch configuration.
type Config struct {
	// Path is the Chrome/Chromium binary. Empty means auto-discover.
	Path string

	// Port is the DevTools debugging port. Zero picks a free one.
	Port int

	// ShowBrowser disables headless mode for debugging a flaky page.
	ShowBrowser bool

	// LaunchTimeout bounds waiting for the debugger port to come up.
	// Zero means duration.BrowserLaunch.
	LaunchTimeout time.Duration
}

// Handle is a running Chrome instance. Port is what the engine connects to;
// Stop must be called exactly once when the audit is done.
type Handle struct {
	port        int
	browserCtx  context.Context
	cancelCtx   context.CancelFunc
	cancelAlloc context.CancelFunc
}

// Port returns the DevTools debugging port of the running instance.
func (h *Handle) Port() int { return h.port }

// Stop shuts the browser down, waiting briefly for a clean exit. Safe to
// call via defer on every path after a successful Launch.
func (h *Handle) Stop() error {
	stopCtx, cancel := context.WithTimeout(context.Background(), duration.BrowserStop)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- chromedp.Cancel(h.browserCtx) }()

	var err error
	select {
	case err = <-done:
	case <-stopCtx.Done():
		err = fmt.Errorf("browser did not exit within %s", duration.BrowserStop)
	}

	h.cancelCtx()
	h.cancelAlloc()
	return err
}

// Launch starts Chrome with auditing-friendly flags (headless, GPU off,
// sandbox off, logging on) and a fixed remote debugging port, then blocks
// until the port accepts connections.
func Launch(ctx context.Context, cfg Config) (*Handle, error) {
	bin := cfg.Path
	if bin == "" {
		var err error
		bin, err = FindBinary()
		if err != nil {
			return nil, err
		}
	}

	port := cfg.Port
	if port == 0 {
		var err error
		port, err = freePort()
		if err != nil {
			return nil, fmt.Errorf("pick debugging port: %w", err)
		}
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.ExecPath(bin),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("enable-logging", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("remote-debugging-port", strconv.Itoa(port)),
	)
	if cfg.ShowBrowser {
		opts = append(opts, chromedp.Flag("headless", false))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	browserCtx, cancelCtx := chromedp.NewContext(allocCtx)

	launchTimeout := cfg.LaunchTimeout
	if launchTimeout == 0 {
		launchTimeout = duration.BrowserLaunch
	}
	runCtx, cancelRun := context.WithTimeout(browserCtx, launchTimeout)
	defer cancelRun()

	// An empty task list forces chromedp to exec the browser now rather
	// than on first use.
	if err := chromedp.Run(runCtx); err != nil {
		cancelCtx()
		cancelAlloc()
		return nil, fmt.Errorf("launch %s: %w", bin, err)
	}

	if err := waitForPort(runCtx, port); err != nil {
		cancelCtx()
		cancelAlloc()
		return nil, fmt.Errorf("debugger port %d never came up: %w", port, err)
	}

	return &Handle{
		port:        port,
		browserCtx:  browserCtx,
		cancelCtx:   cancelCtx,
		cancelAlloc: cancelAlloc,
	}, nil
}

// browserNames are tried on PATH first, in order of preference.
var browserNames = []string{
	"google-chrome", "google-chrome-stable", "chromium", "chromium-browser", "chrome",
}

// browserPaths are well-known install locations for systems where PATH
// is not configured.
var browserPaths = []string{
	`/usr/bin/google-chrome`,
	`/usr/bin/chromium-browser`,
	`/usr/bin/chromium`,
	`/snap/bin/chromium`,
	`/Applications/Google Chrome.app/Contents/MacOS/Google Chrome`,
	`/Applications/Chromium.app/Contents/MacOS/Chromium`,
	`C:\Program Files\Google\Chrome\Application\chrome.exe`,
	`C:\Program Files (x86)\Google\Chrome\Application\chrome.exe`,
}

// FindBinary locates a Chrome or Chromium executable.
func FindBinary() (string, error) {
	for _, name := range browserNames {
		if p, err := exec.LookPath(name); err == nil && p != "" {
			return p, nil
		}
	}
	candidates := browserPaths
	if local := os.Getenv("LOCALAPPDATA"); local != "" {
		candidates = append(candidates, local+`\Google\Chrome\Application\chrome.exe`)
	}
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", fmt.Errorf("no Chrome or Chromium binary found; point -chrome-path at one")
}

func freePort() (int, error) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return 0, err
	}
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port, nil
}

// waitForPort polls until the DevTools port accepts TCP connections.
// chromedp reports the browser as started once its stderr announces the
// websocket URL, but the HTTP endpoint can lag by a few milliseconds.
func waitForPort(ctx context.Context, port int) error {
	addr := net.JoinHostPort("127.0.0.1", strconv.Itoa(port))
	tick := time.NewTicker(50 * time.Millisecond)
	defer tick.Stop()
	for {
		conn, err := net.DialTimeout("tcp", addr, time.Second)
		if err == nil {
			conn.Close()
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-tick.C:
		}
	}
}
