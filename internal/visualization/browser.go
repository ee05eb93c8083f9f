package visualization

import (
	"fmt"
	"os/exec"
	"runtime"
)

// viewerCommand returns the command that opens target with the platform's
// default application.
func viewerCommand(goos, target string) (*exec.Cmd, error) {
	switch goos {
	case "linux":
		return exec.Command("xdg-open", target), nil
	case "darwin":
		return exec.Command("open", target), nil
	case "windows":
		return exec.Command("cmd", "/c", "start", "", target), nil
	default:
		return nil, fmt.Errorf("unsupported platform: %s", goos)
	}
}

// Open shows a rendered heatmap file (or a URL) in the user's default viewer.
// It supports Linux (xdg-open), macOS (open), and Windows (cmd start).
// It does not wait for the viewer to exit.
func Open(target string) error {
	cmd, err := viewerCommand(runtime.GOOS, target)
	if err != nil {
		return err
	}
	return cmd.Start()
}
