package out

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"

	resourcesout "mindful/internal/modules/resources/port/out"
)

type OSExternalLauncher struct{}

func NewOSExternalLauncher() resourcesout.ExternalLauncher {
	return &OSExternalLauncher{}
}

// Open hands a URL or file to the desktop's default handler.
func (l *OSExternalLauncher) Open(ctx context.Context, target string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.CommandContext(ctx, "open", target)
	case "linux":
		cmd = exec.CommandContext(ctx, "xdg-open", target)
	case "windows":
		cmd = exec.CommandContext(ctx, "rundll32", "url.dll,FileProtocolHandler", target)
	default:
		return fmt.Errorf("external open is not supported on %s", runtime.GOOS)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("open external target: %w", err)
	}
	go func() { _ = cmd.Wait() }()
	return nil
}
