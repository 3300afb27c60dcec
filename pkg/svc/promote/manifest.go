package promote

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

const manifestFilePermissions = 0o644

// imagePattern matches image: lines in rendered workload manifests.
var imagePattern = regexp.MustCompile(`image:\s*([^:\s]+):([^\s]+)`)

// FindWorkloadManifests returns the deployment and statefulset manifests for
// an app under the base directory, following the <base>/<app>/*.yaml layout.
func FindWorkloadManifests(baseDir, app string) ([]string, error) {
	appDir := filepath.Join(baseDir, app)

	info, err := os.Stat(appDir)
	if err != nil || !info.IsDir() {
		return nil, nil
	}

	entries, err := os.ReadDir(appDir)
	if err != nil {
		return nil, fmt.Errorf("read base app directory %s: %w", appDir, err)
	}

	var manifests []string

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := strings.ToLower(entry.Name())
		if !strings.HasSuffix(name, ".yaml") && !strings.HasSuffix(name, ".yml") {
			continue
		}

		if strings.Contains(name, "deployment") || strings.Contains(name, "statefulset") {
			manifests = append(manifests, filepath.Join(appDir, entry.Name()))
		}
	}

	return manifests, nil
}

// ExtractImages returns all image references found in manifest content.
// Surrounding quotes on either component are stripped.
func ExtractImages(content string) []ImageRef {
	matches := imagePattern.FindAllStringSubmatch(content, -1)

	refs := make([]ImageRef, 0, len(matches))
	for _, match := range matches {
		refs = append(refs, ImageRef{
			Name: strings.Trim(match[1], `'"`),
			Tag:  strings.Trim(match[2], `'"`),
		})
	}

	return refs
}

// UpdateImage rewrites the image line matching old to reference new instead.
// Returns the updated content and whether anything changed.
func UpdateImage(content string, old, updated ImageRef) (string, bool) {
	oldPattern := regexp.MustCompile(`image:\s*` + regexp.QuoteMeta(old.Name) + `:` + regexp.QuoteMeta(old.Tag))
	replacement := "image: " + updated.String()

	result := oldPattern.ReplaceAllString(content, replacement)

	return result, result != content
}

// UpdateManifestFile rewrites the image reference in a manifest file in place.
// A substitution that changes nothing is reported as false without touching the file.
func UpdateManifestFile(path string, old, updated ImageRef) (bool, error) {
	content, err := os.ReadFile(path) //nolint:gosec // path comes from a directory walk
	if err != nil {
		return false, fmt.Errorf("read manifest %s: %w", path, err)
	}

	result, changed := UpdateImage(string(content), old, updated)
	if !changed {
		return false, nil
	}

	err = os.WriteFile(path, []byte(result), manifestFilePermissions)
	if err != nil {
		return false, fmt.Errorf("write manifest %s: %w", path, err)
	}

	return true, nil
}
