// Package kubectl wraps the kubectl CLI for secret creation.
package kubectl

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"sort"
	"strings"
)

// Client provides kubectl secret creation functionality.
type Client struct{}

// NewClient creates a new kubectl client.
func NewClient() *Client {
	return &Client{}
}

// SecretArgs builds the argument list for kubectl create secret generic.
// Literal keys are emitted in sorted order so the command line is stable.
func SecretArgs(name, namespace string, literals map[string]string, dryRun bool) []string {
	args := []string{"create", "secret", "generic", name, "--namespace", namespace}

	keys := make([]string, 0, len(literals))
	for key := range literals {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	for _, key := range keys {
		args = append(args, "--from-literal", key+"="+literals[key])
	}

	if dryRun {
		args = append(args, "--dry-run=client", "-o", "yaml")
	}

	return args
}

// CommandLine renders the kubectl invocation with shell quoting for display.
func CommandLine(args []string) string {
	parts := make([]string, 0, len(args)+1)
	parts = append(parts, "kubectl")

	for _, arg := range args {
		parts = append(parts, shellQuote(arg))
	}

	return strings.Join(parts, " ")
}

// CreateSecret runs kubectl create secret generic and returns its stdout.
// With dryRun the secret is not created; kubectl renders the manifest instead.
func (c *Client) CreateSecret(
	ctx context.Context,
	name, namespace string,
	literals map[string]string,
	dryRun bool,
) (string, error) {
	args := SecretArgs(name, namespace, literals, dryRun)

	cmd := exec.CommandContext(ctx, "kubectl", args...) //nolint:gosec // kubectl is a trusted tool

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil {
		return "", fmt.Errorf("kubectl create secret %s: %w\n%s", name, err, stderr.String())
	}

	return stdout.String(), nil
}

// shellQuote quotes an argument for safe display on a POSIX shell command line.
func shellQuote(arg string) string {
	if arg == "" {
		return "''"
	}

	if !strings.ContainsAny(arg, " \t\n\"'`$&|;<>()*?[]#~%{}\\") {
		return arg
	}

	return "'" + strings.ReplaceAll(arg, "'", `'"'"'`) + "'"
}
