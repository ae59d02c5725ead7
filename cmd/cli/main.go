// lightkeeper runs Lighthouse audits against one or more URLs and gates CI
// on configurable score thresholds.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/lightkeeper-ci/lightkeeper/pkg/chrome"
	"github.com/lightkeeper-ci/lightkeeper/pkg/config"
	"github.com/lightkeeper-ci/lightkeeper/pkg/exitcode"
	"github.com/lightkeeper-ci/lightkeeper/pkg/lighthouse"
	"github.com/lightkeeper-ci/lightkeeper/pkg/scan"
	"github.com/lightkeeper-ci/lightkeeper/pkg/ui"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	os.Exit(run().Int())
}

func run() exitcode.Code {
	opts, err := config.ParseFlags()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitcode.Configuration
	}
	if opts.Version {
		fmt.Println("lightkeeper", version)
		return exitcode.Success
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sink := ui.NewSink(os.Stdout, opts.NoColor)
	renderer := ui.NewRenderer(sink)
	if !opts.Quiet {
		renderer.Banner(version)
	}

	scanner := &scan.Scanner{
		Opts: opts,
		Engine: &lighthouse.Engine{
			Path:       opts.LighthousePath,
			ConfigPath: opts.EngineConfigPath,
		},
		Launcher: scan.ChromeLauncher{Config: chrome.Config{
			Path:        opts.ChromePath,
			ShowBrowser: opts.ShowBrowser,
		}},
		Renderer: renderer,
	}

	failed, err := scanner.Run(ctx)
	if err != nil {
		renderer.Errorf("%v", err)
	}
	return exitcode.FromRun(err, failed)
}
