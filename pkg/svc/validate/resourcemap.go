// Package validate maps kubeconform findings back to the source files of a
// kustomization directory.
package validate

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	yamlv3 "gopkg.in/yaml.v3"
)

// resourceDoc models the identifying fields of a Kubernetes manifest document.
type resourceDoc struct {
	Kind     string `yaml:"kind"`
	Metadata struct {
		Name string `yaml:"name"`
	} `yaml:"metadata"`
}

// BuildResourceMap scans all YAML documents under dir and indexes them by
// Kind/Name so validation errors can be attributed to their source file.
// Kustomization files and unparseable documents are skipped.
func BuildResourceMap(dir string) (map[string]string, error) {
	resourceMap := map[string]string{}

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() || !isYAMLFile(path) || isKustomizationFile(path) {
			return nil
		}

		indexFile(path, resourceMap)

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk directory %s: %w", dir, err)
	}

	return resourceMap, nil
}

// indexFile adds all identifiable documents of one file to the map.
// Read and parse failures are deliberately ignored; an unreadable file simply
// contributes no entries and its errors surface later through kustomize.
func indexFile(path string, resourceMap map[string]string) {
	content, err := os.ReadFile(path) //nolint:gosec // path comes from a directory walk
	if err != nil {
		return
	}

	decoder := yamlv3.NewDecoder(strings.NewReader(string(content)))

	for {
		var doc resourceDoc

		err := decoder.Decode(&doc)
		if errors.Is(err, io.EOF) {
			return
		}

		if err != nil {
			return
		}

		if doc.Kind != "" && doc.Metadata.Name != "" {
			resourceMap[doc.Kind+"/"+doc.Metadata.Name] = path
		}
	}
}

// ListYAMLFiles returns all YAML files under dir grouped as (relative path, top folder).
// Files directly in dir are grouped under ".".
func ListYAMLFiles(dir string) ([][2]string, error) {
	var files [][2]string

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() || !isYAMLFile(path) {
			return nil
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}

		folder := "."
		if parts := strings.Split(rel, string(filepath.Separator)); len(parts) > 1 {
			folder = parts[0]
		}

		files = append(files, [2]string{rel, folder})

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk directory %s: %w", dir, err)
	}

	return files, nil
}

func isYAMLFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))

	return ext == ".yaml" || ext == ".yml"
}

func isKustomizationFile(path string) bool {
	name := strings.ToLower(filepath.Base(path))

	return name == "kustomization.yaml" || name == "kustomization.yml"
}
