package kustomize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildArgs(t *testing.T) {
	t.Parallel()

	args := buildArgs("./overlay")

	assert.Equal(t, []string{"build", "./overlay"}, args)
}
