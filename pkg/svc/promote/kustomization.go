// Package promote implements image tag promotion between a staging overlay
// and a base overlay of a GitOps repository.
package promote

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"sigs.k8s.io/yaml"
)

// ImageRef is a repository-name and tag pair extracted from a kustomization
// override or a rendered image line.
type ImageRef struct {
	Name string
	Tag  string
}

// String renders the reference in name:tag form.
func (r ImageRef) String() string {
	return r.Name + ":" + r.Tag
}

// kustomization models the subset of kustomization.yaml needed for tag extraction.
type kustomization struct {
	Images []imageOverride `json:"images"`
}

type imageOverride struct {
	Name   string `json:"name"`
	NewTag string `json:"newTag"`
}

// FindKustomizations returns all kustomization.yaml/.yml files under dir.
func FindKustomizations(dir string) ([]string, error) {
	var files []string

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() {
			return nil
		}

		name := strings.ToLower(info.Name())
		if name == "kustomization.yaml" || name == "kustomization.yml" {
			files = append(files, path)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk directory %s: %w", dir, err)
	}

	return files, nil
}

// ExtractNewTags reads a kustomization file and returns the image overrides
// that carry both a name and a newTag. Overrides without a newTag (digest or
// newName rewrites) are ignored.
func ExtractNewTags(path string) ([]ImageRef, error) {
	content, err := os.ReadFile(path) //nolint:gosec // path comes from a directory walk
	if err != nil {
		return nil, fmt.Errorf("read kustomization %s: %w", path, err)
	}

	var kust kustomization

	err = yaml.Unmarshal(content, &kust)
	if err != nil {
		return nil, fmt.Errorf("parse kustomization %s: %w", path, err)
	}

	var refs []ImageRef

	for _, override := range kust.Images {
		if override.Name == "" || override.NewTag == "" {
			continue
		}

		refs = append(refs, ImageRef{Name: override.Name, Tag: override.NewTag})
	}

	return refs, nil
}
