package cmd_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitopsware/gitopsctl/cmd"
)

func TestNewRootCmd(t *testing.T) {
	t.Parallel()

	rootCmd := cmd.NewRootCmd("1.2.3", "abc1234", "2026-01-01")

	assert.Equal(t, "gitopsctl", rootCmd.Use)
	assert.Equal(t, "1.2.3 (Built on 2026-01-01 from Git SHA abc1234)", rootCmd.Version)

	names := make([]string, 0, len(rootCmd.Commands()))
	for _, sub := range rootCmd.Commands() {
		names = append(names, sub.Name())
	}

	assert.Contains(t, names, "secret")
	assert.Contains(t, names, "promote")
	assert.Contains(t, names, "validate")
}

func TestRootCmdShowsHelp(t *testing.T) {
	t.Parallel()

	rootCmd := cmd.NewRootCmd("dev", "none", "unknown")

	var out bytes.Buffer

	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs([]string{})

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "Available Commands:")
	assert.Contains(t, out.String(), "promote")
}

func TestExecuteWrapsErrors(t *testing.T) {
	t.Parallel()

	rootCmd := cmd.NewRootCmd("dev", "none", "unknown")

	var out bytes.Buffer

	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs([]string{"no-such-command"})

	err := cmd.Execute(rootCmd)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "command execution failed")
}

func TestExecuteSuccess(t *testing.T) {
	t.Parallel()

	rootCmd := cmd.NewRootCmd("dev", "none", "unknown")

	var out bytes.Buffer

	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs([]string{"--help"})

	require.NoError(t, cmd.Execute(rootCmd))
	assert.Contains(t, out.String(), "Usage:")
}
