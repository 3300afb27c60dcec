package promote_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitopsware/gitopsctl/pkg/svc/promote"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestFindKustomizations(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "app-a", "kustomization.yaml"), "resources: []\n")
	writeFile(t, filepath.Join(dir, "app-b", "Kustomization.yml"), "resources: []\n")
	writeFile(t, filepath.Join(dir, "app-c", "deployment.yaml"), "kind: Deployment\n")

	files, err := promote.FindKustomizations(dir)
	require.NoError(t, err)
	assert.Len(t, files, 2)
}

func TestExtractNewTags(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "kustomization.yaml")
	writeFile(t, path, `apiVersion: kustomize.config.k8s.io/v1beta1
kind: Kustomization
resources:
  - ../../base/my-app
images:
  - name: registry.example.com/my-app
    newTag: 1.3.0
  - name: sidecar
    newName: registry.example.com/sidecar
  - name: other
    newTag: "2.0"
`)

	refs, err := promote.ExtractNewTags(path)
	require.NoError(t, err)
	assert.Equal(t, []promote.ImageRef{
		{Name: "registry.example.com/my-app", Tag: "1.3.0"},
		{Name: "other", Tag: "2.0"},
	}, refs)
}

func TestExtractNewTagsNoImages(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "kustomization.yaml")
	writeFile(t, path, "resources:\n  - deployment.yaml\n")

	refs, err := promote.ExtractNewTags(path)
	require.NoError(t, err)
	assert.Empty(t, refs)
}

func TestExtractNewTagsInvalidYAML(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "kustomization.yaml")
	writeFile(t, path, "images: {not: [valid\n")

	_, err := promote.ExtractNewTags(path)
	require.Error(t, err)
}

func TestImageRefString(t *testing.T) {
	t.Parallel()

	ref := promote.ImageRef{Name: "nginx", Tag: "1.25"}
	assert.Equal(t, "nginx:1.25", ref.String())
}
