package promote_test

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitopsware/gitopsctl/pkg/svc/promote"
)

func setupOverlays(t *testing.T) (string, string) {
	t.Helper()

	stagingDir := t.TempDir()
	baseDir := t.TempDir()

	writeFile(t, filepath.Join(stagingDir, "my-app", "kustomization.yaml"), `resources:
  - ../../base/my-app
images:
  - name: registry.example.com/my-app
    newTag: 1.3.0
`)
	writeFile(t, filepath.Join(stagingDir, "synced-app", "kustomization.yaml"), `images:
  - name: registry.example.com/synced-app
    newTag: 2.0.0
`)
	writeFile(t, filepath.Join(baseDir, "my-app", "deployment.yaml"), deploymentManifest)
	writeFile(t, filepath.Join(baseDir, "synced-app", "deployment.yaml"), `kind: Deployment
spec:
  template:
    spec:
      containers:
        - image: registry.example.com/synced-app:2.0.0
`)

	return stagingDir, baseDir
}

func TestPlan(t *testing.T) {
	t.Parallel()

	stagingDir, baseDir := setupOverlays(t)

	var out bytes.Buffer

	promotions, err := promote.Plan(stagingDir, baseDir, &out)
	require.NoError(t, err)
	require.Len(t, promotions, 1)

	promo := promotions[0]
	assert.Equal(t, "my-app", promo.App)
	assert.Equal(t, promote.ImageRef{Name: "registry.example.com/my-app", Tag: "1.3.0"}, promo.Image)
	assert.Equal(t, promote.ImageRef{Name: "registry.example.com/my-app", Tag: "1.2.3"}, promo.Current)
	assert.Equal(t, filepath.Join(baseDir, "my-app", "deployment.yaml"), promo.BaseFile)

	assert.Contains(t, out.String(), "versions match")
}

func TestPlanNoKustomizations(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	_, err := promote.Plan(t.TempDir(), t.TempDir(), &out)
	require.ErrorIs(t, err, promote.ErrNoKustomizations)
}

func TestPlanMissingBaseApp(t *testing.T) {
	t.Parallel()

	stagingDir := t.TempDir()
	writeFile(t, filepath.Join(stagingDir, "orphan", "kustomization.yaml"), `images:
  - name: orphan
    newTag: 1.0.0
`)

	var out bytes.Buffer

	promotions, err := promote.Plan(stagingDir, t.TempDir(), &out)
	require.NoError(t, err)
	assert.Empty(t, promotions)
	assert.Contains(t, out.String(), "no base deployment files found for orphan")
}

func TestPromotionDirection(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		current  string
		next     string
		expected string
	}{
		{name: "upgrade", current: "1.2.3", next: "1.3.0", expected: "upgrade"},
		{name: "downgrade", current: "2.0.0", next: "1.9.9", expected: "downgrade"},
		{name: "equal", current: "1.0.0", next: "1.0.0", expected: ""},
		{name: "non-semver", current: "latest", next: "1.0.0", expected: ""},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			promo := promote.Promotion{
				Current: promote.ImageRef{Name: "app", Tag: test.current},
				Image:   promote.ImageRef{Name: "app", Tag: test.next},
			}
			assert.Equal(t, test.expected, promo.Direction())
		})
	}
}
