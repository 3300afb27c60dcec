// Package promote provides the image promotion command.
package promote

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gitopsware/gitopsctl/pkg/cli/ui/confirm"
	"github.com/gitopsware/gitopsctl/pkg/cli/ui/table"
	promotesvc "github.com/gitopsware/gitopsctl/pkg/svc/promote"
	"github.com/gitopsware/gitopsctl/pkg/utils/envvar"
	"github.com/gitopsware/gitopsctl/pkg/utils/notify"
)

// ErrNotADirectory is returned when a resolved path is not an existing directory.
var ErrNotADirectory = errors.New("not a directory")

const (
	stagingPathEnv = "STAGING_PATH"
	basePathEnv    = "BASE_PATH"
	fluxAppsDirEnv = "FLUX_APPS_DIR"
)

// NewPromoteCmd creates the promote command.
func NewPromoteCmd() *cobra.Command {
	var (
		stagingPath string
		basePath    string
		dryRun      bool
	)

	cmd := &cobra.Command{
		Use:   "promote [STAGING_PATH] [BASE_PATH]",
		Short: "Promote staging image tags to the base overlay",
		Long: `Compare image versions between staging kustomizations and base workload
manifests, and promote tested staging tags to the base overlay with
per-image confirmation.

Paths are resolved from flags, positional arguments, the STAGING_PATH and
BASE_PATH environment variables (or FLUX_APPS_DIR/staging and
FLUX_APPS_DIR/base), or an interactive prompt, in that order.

Examples:
  gitopsctl promote ./apps/staging ./apps/base
  gitopsctl promote --staging-path ./apps/staging --base-path ./apps/base
  FLUX_APPS_DIR=~/repo/apps gitopsctl promote --dry-run`,
		SilenceUsage: true,
		Args:         cobra.MaximumNArgs(2), //nolint:mnd // staging and base positionals
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPromoteCmd(cmd, args, stagingPath, basePath, dryRun)
		},
	}

	cmd.Flags().StringVarP(&stagingPath, "staging-path", "s", "", "path to the staging apps directory")
	cmd.Flags().StringVarP(&basePath, "base-path", "b", "", "path to the base apps directory")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "show what would be promoted without making changes")

	return cmd
}

func runPromoteCmd(cmd *cobra.Command, args []string, stagingFlag, baseFlag string, dryRun bool) error {
	ctx := cmd.Context()
	writer := cmd.OutOrStdout()

	notify.Titlef(writer, "🚀", "GitOps image promotion")

	env := newEnvConfig()

	stagingDir, err := resolveDir(ctx, writer, "staging",
		"path to staging apps directory (contains kustomization.yaml files)",
		stagingFlag, positional(args, 0), env.staging())
	if err != nil {
		return err
	}

	baseDir, err := resolveDir(ctx, writer, "base",
		"path to base apps directory (contains deployment.yaml files)",
		baseFlag, positional(args, 1), env.base())
	if err != nil {
		return err
	}

	if dryRun {
		notify.Warningf(writer, "DRY RUN MODE - no changes will be made")
	}

	notify.Activityf(writer, "scanning staging kustomizations")

	promotions, err := promotesvc.Plan(stagingDir, baseDir, writer)
	if err != nil {
		return err
	}

	if len(promotions) == 0 {
		notify.Successf(writer, "all image versions are already in sync")

		return nil
	}

	renderPromotionTable(writer, promotions)

	if dryRun {
		notify.Warningf(writer, "DRY RUN: these promotions would be available")

		return nil
	}

	return applyPromotions(ctx, writer, promotions)
}

// envConfig resolves path fallbacks from the environment through viper.
type envConfig struct {
	v *viper.Viper
}

func newEnvConfig() envConfig {
	v := viper.New()
	v.AutomaticEnv()

	return envConfig{v: v}
}

func (e envConfig) staging() string {
	if path := e.v.GetString(stagingPathEnv); path != "" {
		return path
	}

	if dir := e.v.GetString(fluxAppsDirEnv); dir != "" {
		return filepath.Join(dir, "staging")
	}

	return ""
}

func (e envConfig) base() string {
	if path := e.v.GetString(basePathEnv); path != "" {
		return path
	}

	if dir := e.v.GetString(fluxAppsDirEnv); dir != "" {
		return filepath.Join(dir, "base")
	}

	return ""
}

func positional(args []string, index int) string {
	if index < len(args) {
		return args[index]
	}

	return ""
}

// resolveDir picks the first non-empty candidate, expands it, and validates it
// is a directory. With no candidate it prompts interactively.
func resolveDir(ctx context.Context, writer io.Writer, kind, hint string, candidates ...string) (string, error) {
	for _, candidate := range candidates {
		if candidate == "" {
			continue
		}

		path := envvar.ExpandPath(candidate)

		err := checkDir(path)
		if err != nil {
			return "", fmt.Errorf("%s directory: %w", kind, err)
		}

		notify.Successf(writer, "using %s directory: %s", kind, path)

		return path, nil
	}

	notify.Infof(writer, "%s", hint)

	input, err := confirm.PromptLine(ctx, writer,
		fmt.Sprintf("Enter the path to the %s apps directory", kind),
		func(input string) error {
			return checkDir(envvar.ExpandPath(input))
		})
	if err != nil {
		return "", err
	}

	return envvar.ExpandPath(input), nil
}

func checkDir(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrNotADirectory, path)
	}

	if !info.IsDir() {
		return fmt.Errorf("%w: %s", ErrNotADirectory, path)
	}

	return nil
}

// renderPromotionTable prints the available promotions.
func renderPromotionTable(writer io.Writer, promotions []promotesvc.Promotion) {
	notify.Infof(writer, "%d promotions available:", len(promotions))

	rows := make([][]string, 0, len(promotions))
	for _, promo := range promotions {
		rows = append(rows, []string{
			promo.App,
			promo.Image.Name,
			promo.Current.Tag,
			promo.Image.Tag,
			promo.Direction(),
			filepath.Base(promo.BaseFile),
		})
	}

	table.Render(writer, []string{"App", "Image", "Current (Base)", "New (Staging)", "Direction", "File"}, rows)
}

// applyPromotions confirms and applies each promotion individually.
func applyPromotions(ctx context.Context, writer io.Writer, promotions []promotesvc.Promotion) error {
	notify.Activityf(writer, "ready to promote images")

	for _, promo := range promotions {
		accepted, err := confirm.PromptYesNo(ctx, writer, "Promote %s/%s from %s to %s?",
			promo.App, promo.Image.Name, promo.Current.Tag, promo.Image.Tag)
		if err != nil {
			return err
		}

		if !accepted {
			notify.Infof(writer, "skipped %s/%s", promo.App, promo.Image.Name)

			continue
		}

		changed, err := promotesvc.UpdateManifestFile(promo.BaseFile, promo.Current, promo.Image)
		if err != nil {
			return err
		}

		if !changed {
			notify.Errorf(writer, "failed to update %s: image line not found", promo.BaseFile)

			continue
		}

		notify.Successf(writer, "updated %s", promo.BaseFile)
	}

	notify.Successf(writer, "promotion process complete")
	notify.Infof(writer, "don't forget to commit and push your changes to trigger production deployment")

	return nil
}
