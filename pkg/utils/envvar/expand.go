// Package envvar provides utilities for working with environment variables in path arguments.
package envvar

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// pattern matches ${VAR_NAME} and $VAR_NAME placeholders for environment variable expansion.
var pattern = regexp.MustCompile(`\$\{([a-zA-Z_][a-zA-Z0-9_]*)\}|\$([a-zA-Z_][a-zA-Z0-9_]*)`)

// Expand replaces ${VAR_NAME} and $VAR_NAME placeholders with their environment variable values.
// If a referenced environment variable is not set, the placeholder is replaced with an empty string.
func Expand(value string) string {
	if value == "" {
		return value
	}

	return pattern.ReplaceAllStringFunc(value, func(match string) string {
		varName := strings.TrimPrefix(match, "$")
		varName = strings.TrimPrefix(varName, "{")
		varName = strings.TrimSuffix(varName, "}")

		return os.Getenv(varName)
	})
}

// ExpandPath expands environment variables and a leading ~ in a path argument
// and returns the result as an absolute path when possible.
func ExpandPath(value string) string {
	expanded := Expand(value)

	if expanded == "~" || strings.HasPrefix(expanded, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			expanded = filepath.Join(home, strings.TrimPrefix(expanded, "~"))
		}
	}

	abs, err := filepath.Abs(expanded)
	if err != nil {
		return expanded
	}

	return abs
}
