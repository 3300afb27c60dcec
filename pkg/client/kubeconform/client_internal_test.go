package kubeconform

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildArgs(t *testing.T) {
	t.Parallel()

	args := buildArgs(&ValidationOptions{
		KubernetesVersion: "1.28.0",
		SkipKinds:         []string{"Secret", "CustomResourceDefinition"},
		Strict:            true,
	})

	assert.Equal(t, "-strict", args[0])
	assert.Contains(t, args, "-kubernetes-version=1.28.0")
	assert.Contains(t, args, "-skip=Secret")
	assert.Contains(t, args, "-skip=CustomResourceDefinition")
	assert.Contains(t, args, "-schema-location=default")

	for _, location := range CRDSchemaLocations {
		assert.Contains(t, args, "-schema-location="+location)
	}
}

func TestBuildArgsDefaults(t *testing.T) {
	t.Parallel()

	args := buildArgs(&ValidationOptions{})

	assert.NotContains(t, args, "-strict")
	assert.Equal(t, "-schema-location=default", args[0])
	assert.Len(t, args, 1+len(CRDSchemaLocations))
}
