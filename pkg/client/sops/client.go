// Package sops wraps the sops CLI for age-based secret encryption.
package sops

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
)

// encryptedRegex limits encryption to the secret payload fields so that
// metadata stays readable in the encrypted file.
const encryptedRegex = "^(data|stringData)$"

// Client provides sops encryption functionality.
type Client struct{}

// NewClient creates a new sops client.
func NewClient() *Client {
	return &Client{}
}

// EncryptYAML encrypts YAML content with sops using the given age recipient.
// The content is staged in a temporary file because sops encrypts files, not streams.
func (c *Client) EncryptYAML(ctx context.Context, yamlContent, ageRecipient string) (string, error) {
	tmpFile, err := os.CreateTemp("", "secret-*.yaml")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}

	tmpPath := tmpFile.Name()
	defer func() { _ = os.Remove(tmpPath) }()

	_, err = tmpFile.WriteString(yamlContent)
	if err != nil {
		_ = tmpFile.Close()

		return "", fmt.Errorf("write temp file: %w", err)
	}

	err = tmpFile.Close()
	if err != nil {
		return "", fmt.Errorf("close temp file: %w", err)
	}

	args := []string{
		"--encrypt",
		"--age", ageRecipient,
		"--encrypted-regex", encryptedRegex,
		tmpPath,
	}

	cmd := exec.CommandContext(ctx, "sops", args...) //nolint:gosec // sops is a trusted tool

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err = cmd.Run()
	if err != nil {
		return "", fmt.Errorf("sops encrypt: %w\n%s", err, stderr.String())
	}

	return stdout.String(), nil
}
