package secret

import (
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/gitopsware/gitopsctl/pkg/cli/ui/confirm"
	"github.com/gitopsware/gitopsctl/pkg/utils/notify"
)

// ErrEmptyPassword is returned when no password is provided to hash.
var ErrEmptyPassword = errors.New("password cannot be empty")

// NewBcryptCmd creates the secret bcrypt command.
func NewBcryptCmd() *cobra.Command {
	var cost int

	cmd := &cobra.Command{
		Use:   "bcrypt [PASSWORD]",
		Short: "Generate a bcrypt hash for use in basic-auth secret YAML",
		Long: `Generate a bcrypt hash of a password and its base64 encoding, suitable
for the data field of a basic-auth Secret. The hash is verified against the
password before it is printed.`,
		SilenceUsage: true,
		Args:         cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			password := ""
			if len(args) > 0 {
				password = args[0]
			}

			return runBcryptCmd(cmd, password, cost)
		},
	}

	cmd.Flags().IntVar(&cost, "cost", bcrypt.DefaultCost, "bcrypt cost factor")

	return cmd
}

func runBcryptCmd(cmd *cobra.Command, password string, cost int) error {
	writer := cmd.OutOrStdout()

	if password == "" {
		input, err := confirm.PromptLine(cmd.Context(), writer, "Password", func(input string) error {
			if input == "" {
				return ErrEmptyPassword
			}

			return nil
		})
		if err != nil {
			return err
		}

		password = input
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return fmt.Errorf("generate bcrypt hash: %w", err)
	}

	// Round-trip before printing so a broken hash never reaches a manifest.
	err = bcrypt.CompareHashAndPassword(hashed, []byte(password))
	if err != nil {
		return fmt.Errorf("verify bcrypt hash: %w", err)
	}

	notify.Infof(writer, "raw bcrypt hash: %s", string(hashed))
	notify.Infof(writer, "base64 encoded for YAML: %s", base64.StdEncoding.EncodeToString(hashed))
	notify.Successf(writer, "hash verified against password")

	return nil
}
