package validate

import (
	"regexp"
	"strings"
)

// UnknownLocation marks an error whose resource has no source file in the map,
// typically because kustomize generated it.
const UnknownLocation = "generated by kustomize?"

// Finding is one parsed kubeconform error attributed back to a source file.
type Finding struct {
	// ResourceKey is the Kind/Name of the failing resource.
	ResourceKey string
	// Location is the source file the resource came from, or UnknownLocation.
	Location string
	// Message is the cleaned-up kubeconform error message.
	Message string
}

// findingPattern splits the remainder of a kubeconform line into kind, name and message.
var findingPattern = regexp.MustCompile(`(\S+)\s+(\S+)\s+(.+)`)

// ParseFindings parses kubeconform's line-oriented output
// ("file - Kind name message") into findings, resolving each resource key
// against the Kind/Name -> file map. Lines without the " - " separator are
// skipped; a line whose remainder does not split into kind/name/message is
// kept with the raw remainder as the message.
func ParseFindings(stdout, stderr string, resourceMap map[string]string) []Finding {
	combined := strings.TrimSpace(strings.TrimSpace(stdout) + "\n" + strings.TrimSpace(stderr))

	var findings []Finding

	for _, line := range strings.Split(combined, "\n") {
		if !strings.Contains(line, " - ") {
			continue
		}

		rest := strings.SplitN(line, " - ", 2)[1]

		kind, name, message := "Unknown", "Unknown", rest
		if match := findingPattern.FindStringSubmatch(rest); match != nil {
			kind, name, message = match[1], match[2], match[3]
		}

		key := kind + "/" + name

		location, found := resourceMap[key]
		if !found {
			location = UnknownLocation
		}

		findings = append(findings, Finding{
			ResourceKey: key,
			Location:    location,
			Message:     FormatMessage(strings.TrimSpace(message)),
		})
	}

	return findings
}

// schemaURLReplacements collapses well-known schema URLs in error messages to
// short readable descriptions.
//
//nolint:gochecknoglobals // fixed display rules
var schemaURLReplacements = []struct {
	pattern     *regexp.Regexp
	replacement string
}{
	{
		regexp.MustCompile(`https://raw\.githubusercontent\.com/yannh/kubernetes-json-schema/[^/]+/[^/]+/persistentvolumeclaim[^.\s]*\.json[^)\s]*`),
		"(PersistentVolumeClaim schema)",
	},
	{
		regexp.MustCompile(`https://raw\.githubusercontent\.com/yannh/kubernetes-json-schema/[^/]+/[^/]+/[^.\s]*\.json[^)\s]*`),
		"(Kubernetes resource schema)",
	},
	{
		regexp.MustCompile(`https://raw\.githubusercontent\.com/[^/]+/[^/]+/[^/]+/[^/]+/crds/[^)\s]*`),
		"(custom resource schema)",
	},
	{
		regexp.MustCompile(`https://[^)\s]*github[^)\s]*schema[^)\s]*`),
		"(resource schema)",
	},
}

// additionalPropertyPattern extracts the offending property from schema errors.
var additionalPropertyPattern = regexp.MustCompile(`additionalProperties '([^']+)' not allowed`)

// FormatMessage replaces long schema URLs with short descriptions and rewrites
// the common additionalProperties error into plain language.
func FormatMessage(msg string) string {
	if msg == "" {
		return msg
	}

	result := msg
	for _, rule := range schemaURLReplacements {
		result = rule.pattern.ReplaceAllString(result, rule.replacement)
	}

	if match := additionalPropertyPattern.FindStringSubmatch(result); match != nil {
		result = "property '" + match[1] + "' is not allowed in this resource type"
	}

	return result
}
