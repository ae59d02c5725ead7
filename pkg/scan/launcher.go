package scan

import (
	"context"

	"github.com/lightkeeper-ci/lightkeeper/pkg/chrome"
)

// ChromeLauncher adapts pkg/chrome to the Launcher interface.
type ChromeLauncher struct {
	Config chrome.Config
}

// Launch starts a Chrome instance with the configured flags.
func (l ChromeLauncher) Launch(ctx context.Context) (BrowserHandle, error) {
	handle, err := chrome.Launch(ctx, l.Config)
	if err != nil {
		return nil, err
	}
	return handle, nil
}
