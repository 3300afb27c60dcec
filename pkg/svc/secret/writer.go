package secret

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const outputFilePermissions = 0o600

// WriteManifest writes YAML content to <name>-secret<suffix>.yaml in dir,
// never overwriting an existing file. On collision a numeric suffix is
// appended (foo-secret.yaml, foo-secret-1.yaml, foo-secret-2.yaml, ...).
// Returns the path actually written.
func WriteManifest(dir, name, suffix, yamlContent string) (string, error) {
	base := fmt.Sprintf("%s-secret%s.yaml", name, suffix)
	path := filepath.Join(dir, base)

	for counter := 1; fileExists(path); counter++ {
		ext := filepath.Ext(base)
		stem := strings.TrimSuffix(base, ext)
		path = filepath.Join(dir, fmt.Sprintf("%s-%d%s", stem, counter, ext))
	}

	err := os.WriteFile(path, []byte(yamlContent), outputFilePermissions)
	if err != nil {
		return "", fmt.Errorf("write manifest %s: %w", path, err)
	}

	return path, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)

	return err == nil
}
