package secret_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitopsware/gitopsctl/cmd/secret"
)

func TestNewSecretCmd(t *testing.T) {
	t.Parallel()

	secretCmd := secret.NewSecretCmd()

	assert.Equal(t, "secret", secretCmd.Use)

	names := make([]string, 0, len(secretCmd.Commands()))
	for _, sub := range secretCmd.Commands() {
		names = append(names, sub.Name())
	}

	assert.Contains(t, names, "create")
	assert.Contains(t, names, "bcrypt")
}

func TestSecretCmdShowsHelp(t *testing.T) {
	t.Parallel()

	secretCmd := secret.NewSecretCmd()

	var out bytes.Buffer

	secretCmd.SetOut(&out)
	secretCmd.SetErr(&out)
	secretCmd.SetArgs([]string{})

	require.NoError(t, secretCmd.Execute())
	assert.Contains(t, out.String(), "Available Commands:")
}
