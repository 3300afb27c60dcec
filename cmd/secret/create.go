package secret

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gitopsware/gitopsctl/pkg/cli/ui/confirm"
	"github.com/gitopsware/gitopsctl/pkg/client/kubectl"
	"github.com/gitopsware/gitopsctl/pkg/client/sops"
	secretsvc "github.com/gitopsware/gitopsctl/pkg/svc/secret"
	"github.com/gitopsware/gitopsctl/pkg/toolcheck"
	"github.com/gitopsware/gitopsctl/pkg/utils/notify"
)

const (
	defaultNamespace = "default"
	previewLines     = 15
)

// createOptions carries the resolved inputs for a secret creation run.
type createOptions struct {
	name      string
	namespace string
	literals  map[string]string
	useSops   bool
	ageKey    string
	dryRun    bool
}

// NewCreateCmd creates the secret create command.
func NewCreateCmd() *cobra.Command {
	var (
		name      string
		namespace string
		literals  string
		ageKey    string
		dryRun    bool
	)

	cmd := &cobra.Command{
		Use:   "create [NAME]",
		Short: "Create a Kubernetes Secret from key/value literals",
		Long: `Create a Kubernetes Secret from semicolon-separated key/value literals.

Inputs not provided through flags are collected interactively. The literal
grammar is:

  KEY1: "VALUE1"; KEY2: "VALUE2"; KEY3: "VALUE3"

With --age the dry-run output is additionally encrypted with
sops --encrypt --age <recipient> and written alongside the plaintext file.
Existing files are never overwritten; a numeric suffix is appended instead.

Examples:
  # Fully interactive
  gitopsctl secret create

  # Non-interactive dry-run with SOPS encryption
  gitopsctl secret create db-credentials \
    --namespace backend \
    --literal 'username: "admin"; password: "s3cret"' \
    --age age1... --dry-run`,
		SilenceUsage: true,
		Args:         cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 && name == "" {
				name = args[0]
			}

			return runCreateCmd(cmd.Context(), cmd, createOptions{
				name:      name,
				namespace: namespace,
				literals:  nil,
				useSops:   ageKey != "",
				ageKey:    ageKey,
				dryRun:    dryRun,
			}, literals)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "secret name (prompted when omitted)")
	cmd.Flags().StringVarP(&namespace, "namespace", "n", "", "target namespace (default \"default\")")
	cmd.Flags().StringVar(&literals, "literal", "", `key/value literals, e.g. 'user: "admin"; token: "abc"'`)
	cmd.Flags().StringVar(&ageKey, "age", "", "age recipient for SOPS encryption of the dry-run output")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "render the secret to YAML files instead of creating it")

	return cmd
}

func runCreateCmd(ctx context.Context, cmd *cobra.Command, opts createOptions, literalInput string) error {
	writer := cmd.OutOrStdout()

	notify.Titlef(writer, "🔐", "Kubernetes Secret creator")

	opts, err := collectInputs(ctx, writer, opts, literalInput)
	if err != nil {
		return err
	}

	choice, err := confirmAction(ctx, writer, opts)
	if err != nil {
		return err
	}

	if choice == choiceCancel {
		return confirm.ErrCancelled
	}

	opts.dryRun = choice == choiceDryRun

	return executeCreate(ctx, writer, opts)
}

// collectInputs fills in any options not provided through flags by prompting.
func collectInputs(ctx context.Context, writer io.Writer, opts createOptions, literalInput string) (createOptions, error) {
	var err error

	opts.name, err = resolveName(ctx, writer, opts.name)
	if err != nil {
		return opts, err
	}

	opts.namespace, err = resolveNamespace(ctx, writer, opts.namespace)
	if err != nil {
		return opts, err
	}

	opts, err = resolveSops(ctx, writer, opts)
	if err != nil {
		return opts, err
	}

	opts.literals, err = resolveLiterals(ctx, writer, literalInput)
	if err != nil {
		return opts, err
	}

	return opts, nil
}

func resolveName(ctx context.Context, writer io.Writer, name string) (string, error) {
	if name != "" {
		return name, secretsvc.ValidateName(name)
	}

	return confirm.PromptLine(ctx, writer, "Enter secret name", secretsvc.ValidateName)
}

// resolveNamespace prompts for the namespace when it was not flagged (empty
// input keeps "default") and validates it, falling back to "default" with a
// warning rather than failing, matching kubectl's forgiving behavior here.
func resolveNamespace(ctx context.Context, writer io.Writer, namespace string) (string, error) {
	if namespace == "" {
		if confirm.ShouldSkipPrompt(false) {
			return defaultNamespace, nil
		}

		input, err := confirm.PromptLine(ctx, writer, "Enter namespace (press Enter for 'default')", nil)
		if err != nil {
			return "", err
		}

		if input == "" {
			return defaultNamespace, nil
		}

		namespace = input
	}

	if err := secretsvc.ValidateName(namespace); err != nil {
		notify.Warningf(writer, "invalid namespace %q, using %q", namespace, defaultNamespace)

		return defaultNamespace, nil
	}

	return namespace, nil
}

// resolveSops decides whether to encrypt and with which recipient. When sops
// is not installed the user may continue without encryption or exit to install it.
func resolveSops(ctx context.Context, writer io.Writer, opts createOptions) (createOptions, error) {
	if opts.ageKey != "" {
		opts.useSops = true

		return opts, secretsvc.ValidateAgeRecipient(opts.ageKey)
	}

	if confirm.ShouldSkipPrompt(false) {
		return opts, nil
	}

	if !toolcheck.IsAvailable("sops") {
		notify.Warningf(writer, "sops not found on your system; it is required for encrypting secrets")
		notify.Infof(writer, "install options:\n"+
			"brew install sops\n"+
			"sudo apt install sops\n"+
			"https://github.com/getsops/sops/releases")

		choice, err := confirm.PromptChoice(ctx, writer, "How do you want to proceed?",
			"Continue without SOPS encryption",
			"Exit to install SOPS",
		)
		if err != nil {
			return opts, err
		}

		if choice == 2 { //nolint:mnd // option number from the prompt above
			return opts, confirm.ErrCancelled
		}

		return opts, nil
	}

	useSops, err := confirm.PromptYesNo(ctx, writer, "Do you want to use SOPS encryption for the secret data?")
	if err != nil {
		return opts, err
	}

	opts.useSops = useSops
	if !useSops {
		return opts, nil
	}

	notify.Infof(writer, "example: age1xxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxx")

	opts.ageKey, err = confirm.PromptLine(ctx, writer, "AGE public key", secretsvc.ValidateAgeRecipient)

	return opts, err
}

func resolveLiterals(ctx context.Context, writer io.Writer, literalInput string) (map[string]string, error) {
	if literalInput != "" {
		return secretsvc.ParseLiterals(literalInput)
	}

	notify.Infof(writer, "enter key/value pairs in the format: KEY1: \"VALUE1\"; KEY2: \"VALUE2\"")

	var literals map[string]string

	_, err := confirm.PromptLine(ctx, writer, "Key/Value pairs", func(input string) error {
		parsed, parseErr := secretsvc.ParseLiterals(input)
		if parseErr != nil {
			return parseErr
		}

		literals = parsed

		return nil
	})
	if err != nil {
		return nil, err
	}

	return literals, nil
}

const (
	choiceCreate = 1
	choiceDryRun = 2
	choiceCancel = 3
)

// confirmAction shows the summary and asks for the create/dry-run/cancel choice.
// A --dry-run flag or a non-interactive stdin resolves the choice without prompting.
func confirmAction(ctx context.Context, writer io.Writer, opts createOptions) (int, error) {
	keys := make([]string, 0, len(opts.literals))
	for key := range opts.literals {
		keys = append(keys, key)
	}

	encryption := "no"
	if opts.useSops {
		encryption = "yes"
	}

	notify.Infof(writer, "secret summary:\n"+
		"name: %s\n"+
		"namespace: %s\n"+
		"keys: %s\n"+
		"SOPS encryption: %s",
		opts.name, opts.namespace, strings.Join(keys, ", "), encryption)

	if opts.dryRun {
		return choiceDryRun, nil
	}

	if confirm.ShouldSkipPrompt(false) {
		return choiceCreate, nil
	}

	return confirm.PromptChoice(ctx, writer, "What do you want to do?",
		"Create secret",
		"Dry run (preview & save to YAML)",
		"Cancel",
	)
}

// executeCreate runs kubectl and, for dry runs, writes the manifest files.
func executeCreate(ctx context.Context, writer io.Writer, opts createOptions) error {
	client := kubectl.NewClient()

	args := kubectl.SecretArgs(opts.name, opts.namespace, opts.literals, opts.dryRun)
	notify.Activityf(writer, "executing: %s", kubectl.CommandLine(args))

	output, err := client.CreateSecret(ctx, opts.name, opts.namespace, opts.literals, opts.dryRun)
	if err != nil {
		return err
	}

	if !opts.dryRun {
		notify.Successf(writer, "secret %q created in namespace %q", opts.name, opts.namespace)
		notify.Infof(writer, "view it with: kubectl get secret %s -n %s", opts.name, opts.namespace)

		return nil
	}

	return writeDryRunFiles(ctx, writer, opts, output)
}

// writeDryRunFiles writes the plaintext manifest and, when requested, the
// SOPS-encrypted variant. A failed encryption keeps the plaintext file.
func writeDryRunFiles(ctx context.Context, writer io.Writer, opts createOptions, yamlContent string) error {
	plainPath, err := secretsvc.WriteManifest(".", opts.name, "", yamlContent)
	if err != nil {
		return err
	}

	reportSavedFile(writer, plainPath)

	if opts.useSops {
		notify.Activityf(writer, "encrypting with SOPS")

		encrypted, err := sops.NewClient().EncryptYAML(ctx, yamlContent, opts.ageKey)
		if err != nil {
			return err
		}

		sopsPath, err := secretsvc.WriteManifest(".", opts.name, "-sops", encrypted)
		if err != nil {
			return err
		}

		reportSavedFile(writer, sopsPath)
		notify.Infof(writer, "apply with: sops -d %s | kubectl apply -f -", sopsPath)
	} else {
		notify.Infof(writer, "apply with: kubectl apply -f %s", plainPath)
	}

	printPreview(writer, yamlContent)

	return nil
}

func reportSavedFile(writer io.Writer, path string) {
	size := int64(0)
	if info, err := os.Stat(path); err == nil {
		size = info.Size()
	}

	notify.Generatef(writer, "saved %s (%d bytes)", path, size)
}

// printPreview shows the first lines of the rendered manifest.
func printPreview(writer io.Writer, yamlContent string) {
	lines := strings.Split(strings.TrimRight(yamlContent, "\n"), "\n")

	preview := lines
	if len(lines) > previewLines {
		preview = lines[:previewLines]
	}

	notify.Infof(writer, "preview of secret content:\n%s", strings.Join(preview, "\n"))

	if len(lines) > previewLines {
		notify.Infof(writer, "... (%d more lines)", len(lines)-previewLines)
	}
}
