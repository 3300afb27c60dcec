// Package validate provides the kustomization validation command.
package validate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/gitopsware/gitopsctl/pkg/cli/ui/table"
	"github.com/gitopsware/gitopsctl/pkg/client/kubeconform"
	"github.com/gitopsware/gitopsctl/pkg/client/kustomize"
	validatesvc "github.com/gitopsware/gitopsctl/pkg/svc/validate"
	"github.com/gitopsware/gitopsctl/pkg/toolcheck"
	"github.com/gitopsware/gitopsctl/pkg/utils/envvar"
	"github.com/gitopsware/gitopsctl/pkg/utils/notify"
)

var (
	// ErrNotAKustomization is returned when the target has no kustomization.yaml.
	ErrNotAKustomization = errors.New("not a valid kustomization directory")
	// ErrValidationFailed is returned when kubeconform rejects the rendered manifests.
	ErrValidationFailed = errors.New("kubeconform validation failed")
)

const (
	defaultK8sVersion     = "1.28.0"
	renderedFilePerm      = 0o600
	kustomizationFileName = "kustomization.yaml"
)

// NewValidateCmd creates the validate command.
func NewValidateCmd() *cobra.Command {
	var (
		k8sVersion string
		skipKinds  []string
	)

	cmd := &cobra.Command{
		Use:   "validate PATH",
		Short: "Validate a kustomization against Kubernetes and CRD schemas",
		Long: `Build a kustomization with kustomize and validate the rendered manifests
with kubeconform in strict mode, against the default Kubernetes schemas plus
a catalog of common CRD schemas (datree CRD catalog, cert-manager, Argo CD,
Flux source-controller, Traefik).

Validation errors are attributed back to the source files of the
kustomization directory wherever possible.

Examples:
  gitopsctl validate ./clusters/production
  gitopsctl validate ./apps/base --k8s-version 1.29.0 --skip Secret --skip CustomResourceDefinition`,
		SilenceUsage: true,
		Args:         cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidateCmd(cmd.Context(), cmd, args[0], k8sVersion, skipKinds)
		},
	}

	cmd.Flags().StringVar(&k8sVersion, "k8s-version", defaultK8sVersion, "target Kubernetes version")
	cmd.Flags().StringArrayVar(&skipKinds, "skip", []string{"Secret"}, "resource kinds to skip")

	return cmd
}

func runValidateCmd(ctx context.Context, cmd *cobra.Command, path, k8sVersion string, skipKinds []string) error {
	writer := cmd.OutOrStdout()

	kustomizePath := envvar.ExpandPath(path)

	info, err := os.Stat(filepath.Join(kustomizePath, kustomizationFileName))
	if err != nil || info.IsDir() {
		return fmt.Errorf("%w: %s", ErrNotAKustomization, kustomizePath)
	}

	err = toolcheck.EnsureInstalled(ctx, writer, "kustomize", "kubeconform")
	if err != nil {
		return err
	}

	notify.Titlef(writer, "🔍", "validating kustomization: %s", kustomizePath)

	printIncludedFiles(writer, kustomizePath)

	notify.Activityf(writer, "building resource-to-file mapping")

	resourceMap, err := validatesvc.BuildResourceMap(kustomizePath)
	if err != nil {
		return err
	}

	notify.Successf(writer, "resource map created")
	notify.Activityf(writer, "building kustomize manifests")

	rendered, err := kustomize.NewClient().Build(ctx, kustomizePath)
	if err != nil {
		return err
	}

	notify.Successf(writer, "kustomize build successful")

	return validateRendered(ctx, writer, rendered.String(), k8sVersion, skipKinds, resourceMap)
}

// printIncludedFiles renders the summary table of YAML files in the kustomization.
func printIncludedFiles(writer io.Writer, kustomizePath string) {
	files, err := validatesvc.ListYAMLFiles(kustomizePath)
	if err != nil || len(files) == 0 {
		return
	}

	rows := make([][]string, 0, len(files))
	for _, file := range files {
		rows = append(rows, []string{file[0], file[1]})
	}

	notify.Infof(writer, "included files:")
	table.Render(writer, []string{"Filename", "Folder"}, rows)
}

// validateRendered stages the rendered manifests in a temp file and runs kubeconform.
func validateRendered(
	ctx context.Context,
	writer io.Writer,
	rendered string,
	k8sVersion string,
	skipKinds []string,
	resourceMap map[string]string,
) error {
	tmpDir, err := os.MkdirTemp("", "gitopsctl-validate-")
	if err != nil {
		return fmt.Errorf("create temp directory: %w", err)
	}
	defer func() { _ = os.RemoveAll(tmpDir) }()

	manifestFile := filepath.Join(tmpDir, "manifest.yaml")

	err = os.WriteFile(manifestFile, []byte(rendered), renderedFilePerm)
	if err != nil {
		return fmt.Errorf("write rendered manifest: %w", err)
	}

	notify.Activityf(writer, "validating generated manifests with kubeconform")

	result, err := kubeconform.NewClient().ValidateFile(ctx, manifestFile, &kubeconform.ValidationOptions{
		KubernetesVersion: k8sVersion,
		SkipKinds:         skipKinds,
		Strict:            true,
	})
	if err != nil {
		return err
	}

	if result.Passed {
		notify.Successf(writer, "kubeconform validation successful")

		return nil
	}

	reportFindings(writer, result, resourceMap)

	return ErrValidationFailed
}

// reportFindings renders the parsed validation errors, falling back to the raw
// tool output when nothing parseable was found.
func reportFindings(writer io.Writer, result kubeconform.Result, resourceMap map[string]string) {
	notify.Errorf(writer, "kubeconform validation FAILED")

	findings := validatesvc.ParseFindings(result.Stdout, result.Stderr, resourceMap)

	if len(findings) == 0 {
		notify.Warningf(writer, "could not parse specific errors; raw output below")

		if result.Stdout != "" {
			notify.Infof(writer, "stdout:\n%s", result.Stdout)
		}

		if result.Stderr != "" {
			notify.Errorf(writer, "stderr:\n%s", result.Stderr)
		}

		return
	}

	rows := make([][]string, 0, len(findings))
	for _, finding := range findings {
		rows = append(rows, []string{
			finding.ResourceKey,
			validatesvc.ShortenURLs(finding.Location),
			validatesvc.ShortenURLs(finding.Message),
		})
	}

	table.Render(writer, []string{"Failed Resource", "File Location", "Additional Info"}, rows)
}
