// Package cmd assembles the gitopsctl command tree.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gitopsware/gitopsctl/cmd/promote"
	"github.com/gitopsware/gitopsctl/cmd/secret"
	"github.com/gitopsware/gitopsctl/cmd/validate"
	"github.com/gitopsware/gitopsctl/pkg/cli/ui/errorhandler"
)

// NewRootCmd creates and returns the root command with version info and subcommands.
func NewRootCmd(version, commit, date string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gitopsctl",
		Short: "gitopsctl is a CLI toolbox for operating a GitOps deployment pipeline",
		Long: `gitopsctl is a CLI toolbox for operators of a GitOps-style Kubernetes
deployment pipeline. It generates (optionally SOPS-encrypted) Secret
manifests, promotes container image tags from a staging overlay to a base
overlay, and validates rendered kustomizations against Kubernetes and CRD
schemas using kustomize and kubeconform.`,
		RunE:         handleRootRunE,
		SilenceUsage: true,
	}

	cmd.Version = fmt.Sprintf("%s (Built on %s from Git SHA %s)", version, date, commit)

	cmd.AddCommand(secret.NewSecretCmd())
	cmd.AddCommand(promote.NewPromoteCmd())
	cmd.AddCommand(validate.NewValidateCmd())

	return cmd
}

// Execute runs the provided root command and handles errors.
func Execute(cmd *cobra.Command) error {
	executor := errorhandler.NewExecutor()

	err := executor.Execute(cmd)
	if err != nil {
		return fmt.Errorf("command execution failed: %w", err)
	}

	return nil
}

// handleRootRunE handles the root command.
func handleRootRunE(cmd *cobra.Command, _ []string) error {
	// The err can safely be ignored, as it can never fail at runtime.
	_ = cmd.Help()

	return nil
}
