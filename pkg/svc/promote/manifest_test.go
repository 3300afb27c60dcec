package promote_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitopsware/gitopsctl/pkg/svc/promote"
)

const deploymentManifest = `apiVersion: apps/v1
kind: Deployment
metadata:
  name: my-app
spec:
  template:
    spec:
      containers:
        - name: my-app
          image: registry.example.com/my-app:1.2.3
        - name: sidecar
          image: "registry.example.com/sidecar:0.5.0"
`

func TestFindWorkloadManifests(t *testing.T) {
	t.Parallel()

	baseDir := t.TempDir()
	writeFile(t, filepath.Join(baseDir, "my-app", "deployment.yaml"), deploymentManifest)
	writeFile(t, filepath.Join(baseDir, "my-app", "my-app-statefulset.yml"), "kind: StatefulSet\n")
	writeFile(t, filepath.Join(baseDir, "my-app", "service.yaml"), "kind: Service\n")
	writeFile(t, filepath.Join(baseDir, "my-app", "README.md"), "docs\n")

	manifests, err := promote.FindWorkloadManifests(baseDir, "my-app")
	require.NoError(t, err)
	assert.Len(t, manifests, 2)
}

func TestFindWorkloadManifestsMissingApp(t *testing.T) {
	t.Parallel()

	manifests, err := promote.FindWorkloadManifests(t.TempDir(), "no-such-app")
	require.NoError(t, err)
	assert.Empty(t, manifests)
}

func TestExtractImages(t *testing.T) {
	t.Parallel()

	refs := promote.ExtractImages(deploymentManifest)
	assert.Equal(t, []promote.ImageRef{
		{Name: "registry.example.com/my-app", Tag: "1.2.3"},
		{Name: "registry.example.com/sidecar", Tag: "0.5.0"},
	}, refs)
}

func TestExtractImagesNone(t *testing.T) {
	t.Parallel()

	refs := promote.ExtractImages("kind: Service\nspec:\n  ports: []\n")
	assert.Empty(t, refs)
}

func TestUpdateImage(t *testing.T) {
	t.Parallel()

	old := promote.ImageRef{Name: "registry.example.com/my-app", Tag: "1.2.3"}
	updated := promote.ImageRef{Name: "registry.example.com/my-app", Tag: "1.3.0"}

	result, changed := promote.UpdateImage(deploymentManifest, old, updated)
	require.True(t, changed)
	assert.Contains(t, result, "image: registry.example.com/my-app:1.3.0")
	assert.Contains(t, result, `image: "registry.example.com/sidecar:0.5.0"`, "other image lines must be untouched")
}

func TestUpdateImageNoMatch(t *testing.T) {
	t.Parallel()

	old := promote.ImageRef{Name: "registry.example.com/other", Tag: "9.9.9"}
	updated := promote.ImageRef{Name: "registry.example.com/other", Tag: "10.0.0"}

	result, changed := promote.UpdateImage(deploymentManifest, old, updated)
	assert.False(t, changed)
	assert.Equal(t, deploymentManifest, result)
}

func TestUpdateManifestFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "deployment.yaml")
	writeFile(t, path, deploymentManifest)

	old := promote.ImageRef{Name: "registry.example.com/my-app", Tag: "1.2.3"}
	updated := promote.ImageRef{Name: "registry.example.com/my-app", Tag: "1.3.0"}

	changed, err := promote.UpdateManifestFile(path, old, updated)
	require.NoError(t, err)
	assert.True(t, changed)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "image: registry.example.com/my-app:1.3.0")
}

func TestUpdateManifestFileNoChange(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "deployment.yaml")
	writeFile(t, path, "kind: Service\n")

	old := promote.ImageRef{Name: "x", Tag: "1"}
	updated := promote.ImageRef{Name: "x", Tag: "2"}

	changed, err := promote.UpdateManifestFile(path, old, updated)
	require.NoError(t, err)
	assert.False(t, changed)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "kind: Service\n", string(content))
}
