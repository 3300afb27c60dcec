package secret_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitopsware/gitopsctl/pkg/svc/secret"
)

func TestWriteManifest(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	path, err := secret.WriteManifest(dir, "foo", "", "kind: Secret\n")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "foo-secret.yaml"), path)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "kind: Secret\n", string(content))
}

func TestWriteManifestNeverOverwrites(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	first, err := secret.WriteManifest(dir, "foo", "", "original\n")
	require.NoError(t, err)

	second, err := secret.WriteManifest(dir, "foo", "", "new\n")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "foo-secret-1.yaml"), second)

	third, err := secret.WriteManifest(dir, "foo", "", "newer\n")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "foo-secret-2.yaml"), third)

	content, err := os.ReadFile(first)
	require.NoError(t, err)
	assert.Equal(t, "original\n", string(content), "original file must be untouched")
}

func TestWriteManifestSopsSuffix(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	path, err := secret.WriteManifest(dir, "foo", "-sops", "encrypted\n")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "foo-secret-sops.yaml"), path)
}
