// Package toolcheck probes for required external binaries and offers to
// install missing ones through the platform package manager.
package toolcheck

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/gitopsware/gitopsctl/pkg/cli/ui/confirm"
	"github.com/gitopsware/gitopsctl/pkg/utils/notify"
)

var (
	// ErrToolsMissing is returned when required tools are missing and installation was declined.
	ErrToolsMissing = errors.New("required tools are missing")
	// ErrInstallFailed is returned when installation of a tool fails.
	ErrInstallFailed = errors.New("tool installation failed")
	// ErrUnsupportedPlatform is returned when no supported package manager is available.
	ErrUnsupportedPlatform = errors.New("no supported package manager found")
)

// IsAvailable reports whether a binary is available on PATH.
func IsAvailable(name string) bool {
	_, err := exec.LookPath(name)

	return err == nil
}

// Probe returns the subset of names that are not available on PATH.
func Probe(names ...string) []string {
	var missing []string

	for _, name := range names {
		if !IsAvailable(name) {
			missing = append(missing, name)
		}
	}

	return missing
}

// EnsureInstalled checks that all named tools are on PATH. When some are
// missing it lists them and asks whether to install each through the platform
// package manager. Declining, or a failed installation, is an error.
func EnsureInstalled(ctx context.Context, writer io.Writer, names ...string) error {
	missing := Probe(names...)
	if len(missing) == 0 {
		return nil
	}

	notify.Warningf(writer, "missing required CLI tools: %s", strings.Join(missing, ", "))

	install, err := confirm.PromptYesNo(ctx, writer, "Do you want to attempt to install them?")
	if err != nil {
		return err
	}

	if !install {
		return fmt.Errorf("%w: %s", ErrToolsMissing, strings.Join(missing, ", "))
	}

	for _, tool := range missing {
		err := installTool(ctx, writer, tool)
		if err != nil {
			return err
		}

		notify.Successf(writer, "installed %s", tool)
	}

	return nil
}

// installTool installs a single tool using the platform package manager.
func installTool(ctx context.Context, writer io.Writer, tool string) error {
	args, err := installCommand(tool)
	if err != nil {
		return err
	}

	notify.Activityf(writer, "installing %s via %s", tool, args[0])

	cmd := exec.CommandContext(ctx, args[0], args[1:]...)

	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%w: %s: %w\n%s", ErrInstallFailed, tool, err, string(output))
	}

	return nil
}

// installCommand resolves the package manager invocation for the current platform.
func installCommand(tool string) ([]string, error) {
	switch runtime.GOOS {
	case "darwin":
		if IsAvailable("brew") {
			return []string{"brew", "install", tool}, nil
		}

		return nil, fmt.Errorf("%w: install Homebrew or install %s manually", ErrUnsupportedPlatform, tool)

	case "linux":
		var prefix []string
		if IsAvailable("sudo") {
			prefix = []string{"sudo"}
		}

		if fileExists("/etc/debian_version") {
			return append(prefix, "apt-get", "install", "-y", tool), nil
		}

		if fileExists("/etc/redhat-release") {
			return append(prefix, "dnf", "install", "-y", tool), nil
		}

		return nil, fmt.Errorf("%w: install %s with your distribution's package manager", ErrUnsupportedPlatform, tool)

	default:
		return nil, fmt.Errorf("%w: install %s manually", ErrUnsupportedPlatform, tool)
	}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)

	return err == nil
}
