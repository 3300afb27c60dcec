// Package kustomize wraps the kustomize CLI.
package kustomize

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
)

// Client provides kustomize build functionality.
type Client struct{}

// NewClient creates a new kustomize client.
func NewClient() *Client {
	return &Client{}
}

// Build runs kustomize build on the specified directory and returns the rendered manifests.
func (c *Client) Build(ctx context.Context, path string) (*bytes.Buffer, error) {
	cmd := exec.CommandContext(ctx, "kustomize", buildArgs(path)...) //nolint:gosec // kustomize is a trusted tool

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil {
		return nil, fmt.Errorf("kustomize build %s: %w\n%s", path, err, stderr.String())
	}

	return &stdout, nil
}

// buildArgs keeps the default load restrictions so overlays cannot pull
// files from outside their kustomization root.
func buildArgs(path string) []string {
	return []string{"build", path}
}
