package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitopsware/gitopsctl/pkg/svc/validate"
)

func TestParseFindings(t *testing.T) {
	t.Parallel()

	stdout := "/tmp/manifest.yaml - Deployment my-app is invalid: spec.replicas must be integer\n"
	resourceMap := map[string]string{"Deployment/my-app": "apps/my-app/deployment.yaml"}

	findings := validate.ParseFindings(stdout, "", resourceMap)
	require.Len(t, findings, 1)

	assert.Equal(t, "Deployment/my-app", findings[0].ResourceKey)
	assert.Equal(t, "apps/my-app/deployment.yaml", findings[0].Location)
	assert.Equal(t, "is invalid: spec.replicas must be integer", findings[0].Message)
}

func TestParseFindingsUnknownResource(t *testing.T) {
	t.Parallel()

	stdout := "/tmp/manifest.yaml - ConfigMap generated-cfg is invalid: bad data\n"

	findings := validate.ParseFindings(stdout, "", map[string]string{})
	require.Len(t, findings, 1)
	assert.Equal(t, validate.UnknownLocation, findings[0].Location)
}

func TestParseFindingsSkipsUnstructuredLines(t *testing.T) {
	t.Parallel()

	output := "summary: 12 resources found\nno separator here\n"

	findings := validate.ParseFindings(output, "", map[string]string{})
	assert.Empty(t, findings)
}

func TestParseFindingsCombinesStderr(t *testing.T) {
	t.Parallel()

	stderr := "/tmp/manifest.yaml - StatefulSet db failed validation\n"

	findings := validate.ParseFindings("", stderr, map[string]string{})
	require.Len(t, findings, 1)
	assert.Equal(t, "StatefulSet/db", findings[0].ResourceKey)
	assert.Equal(t, "failed validation", findings[0].Message)
}

func TestFormatMessageSchemaURL(t *testing.T) {
	t.Parallel()

	msg := "failed against https://raw.githubusercontent.com/yannh/kubernetes-json-schema/master/v1.28.0/deployment-apps-v1.json in document"

	formatted := validate.FormatMessage(msg)
	assert.Equal(t, "failed against (Kubernetes resource schema) in document", formatted)
}

func TestFormatMessageAdditionalProperties(t *testing.T) {
	t.Parallel()

	msg := "problem: additionalProperties 'replicaCount' not allowed"

	formatted := validate.FormatMessage(msg)
	assert.Equal(t, "property 'replicaCount' is not allowed in this resource type", formatted)
}

func TestFormatMessageEmpty(t *testing.T) {
	t.Parallel()

	assert.Empty(t, validate.FormatMessage(""))
}
