package validate_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitopsware/gitopsctl/cmd/validate"
)

func TestValidateCmdFlags(t *testing.T) {
	t.Parallel()

	validateCmd := validate.NewValidateCmd()

	k8sVersion := validateCmd.Flags().Lookup("k8s-version")
	require.NotNil(t, k8sVersion)
	assert.Equal(t, "1.28.0", k8sVersion.DefValue)

	skip := validateCmd.Flags().Lookup("skip")
	require.NotNil(t, skip)
	assert.Equal(t, "[Secret]", skip.DefValue)
}

func TestValidateCmdRequiresPath(t *testing.T) {
	t.Parallel()

	validateCmd := validate.NewValidateCmd()

	var out bytes.Buffer

	validateCmd.SetOut(&out)
	validateCmd.SetErr(&out)
	validateCmd.SetArgs([]string{})

	require.Error(t, validateCmd.Execute())
}

func TestValidateCmdRejectsNonKustomization(t *testing.T) {
	t.Parallel()

	validateCmd := validate.NewValidateCmd()

	var out bytes.Buffer

	validateCmd.SetOut(&out)
	validateCmd.SetErr(&out)
	validateCmd.SetArgs([]string{t.TempDir()})

	err := validateCmd.Execute()
	require.ErrorIs(t, err, validate.ErrNotAKustomization)
}
