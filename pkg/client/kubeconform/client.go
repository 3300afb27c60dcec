// Package kubeconform wraps the kubeconform CLI.
package kubeconform

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
)

// CRDSchemaLocations are the extra schema locations passed to kubeconform so
// that common custom resources validate alongside core Kubernetes kinds.
//
//nolint:gochecknoglobals // fixed schema catalog shared by all validations
var CRDSchemaLocations = []string{
	"https://raw.githubusercontent.com/datreeio/CRDs-catalog/main/{{.Group}}/{{.ResourceKind}}_{{.ResourceAPIVersion}}.json",
	"https://raw.githubusercontent.com/cert-manager/cert-manager/v1.13.2/deploy/crds/{{.ResourceKind}}_{{.ResourceAPIVersion}}.json",
	"https://raw.githubusercontent.com/argoproj/argo-cd/v2.9.3/manifests/crds/{{.ResourceKind}}.json",
	"https://raw.githubusercontent.com/fluxcd/source-controller/v1.2.3/config/crd/bases/{{.ResourceKind}}_{{.ResourceAPIVersion}}.json",
	"https://raw.githubusercontent.com/traefik/traefik/v2.11/docs/content/reference/api/kubernetes-crd-definition-v1.yml",
}

// Client provides kubeconform validation functionality.
type Client struct{}

// NewClient creates a new kubeconform client.
func NewClient() *Client {
	return &Client{}
}

// ValidationOptions configures validation behavior.
type ValidationOptions struct {
	// KubernetesVersion is the target Kubernetes version to validate against.
	KubernetesVersion string
	// SkipKinds is a list of Kubernetes kinds to skip during validation (e.g., "Secret").
	SkipKinds []string
	// Strict enables strict validation mode.
	Strict bool
}

// Result captures the complete kubeconform output for failure reporting.
type Result struct {
	Stdout string
	Stderr string
	Passed bool
}

// ValidateFile validates a rendered manifest file and returns the complete
// tool output. A validation failure is reported through Result.Passed rather
// than an error; errors are reserved for failures to run the tool at all.
func (c *Client) ValidateFile(ctx context.Context, filePath string, opts *ValidationOptions) (Result, error) {
	if opts == nil {
		opts = &ValidationOptions{}
	}

	args := buildArgs(opts)
	args = append(args, filePath)

	cmd := exec.CommandContext(ctx, "kubeconform", args...) //nolint:gosec // kubeconform is a trusted tool

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err == nil {
		return Result{Stdout: stdout.String(), Stderr: stderr.String(), Passed: true}, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return Result{Stdout: stdout.String(), Stderr: stderr.String(), Passed: false}, nil
	}

	return Result{}, fmt.Errorf("run kubeconform: %w", err)
}

// buildArgs builds kubeconform command arguments from validation options.
func buildArgs(opts *ValidationOptions) []string {
	args := []string{}

	if opts.Strict {
		args = append(args, "-strict")
	}

	if opts.KubernetesVersion != "" {
		args = append(args, "-kubernetes-version="+opts.KubernetesVersion)
	}

	for _, kind := range opts.SkipKinds {
		args = append(args, "-skip="+kind)
	}

	args = append(args, "-schema-location=default")
	for _, location := range CRDSchemaLocations {
		args = append(args, "-schema-location="+location)
	}

	return args
}
