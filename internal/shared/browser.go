package shared

import (
	"fmt"
	"os/exec"
	"runtime"
)

// getRuntime is a seam for tests that exercise the per-platform branches.
var getRuntime = func() string { return runtime.GOOS }

// OpenBrowser hands url to the platform's default browser. The auth commands
// use it to send the user to the Spotify consent page and the local MusicKit
// authorization page. Launch failures on unsupported platforms are returned
// to the caller, which falls back to printing the URL.
func OpenBrowser(url string) error {
	var cmd *exec.Cmd
	rt := getRuntime()
	switch rt {
	case "darwin":
		cmd = exec.Command("open", url)
	case "linux":
		cmd = exec.Command("xdg-open", url)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", url)
	default:
		return fmt.Errorf("unsupported platform: %s", rt)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to open browser: %w", err)
	}

	return nil
}
