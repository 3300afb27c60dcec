// Package secret provides commands for constructing Kubernetes Secret manifests.
package secret

import (
	"github.com/spf13/cobra"
)

// NewSecretCmd creates the secret command group.
func NewSecretCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "secret",
		Short: "Create Kubernetes Secret manifests, optionally SOPS-encrypted",
		Long: `Secret commands build Kubernetes Secrets from key/value literals via
kubectl, with optional SOPS encryption of the data fields using an age
recipient, and a bcrypt helper for basic-auth secret values.`,
		SilenceUsage: true,
	}

	cmd.AddCommand(NewCreateCmd())
	cmd.AddCommand(NewBcryptCmd())

	return cmd
}
