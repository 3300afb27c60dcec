// Package secret implements parsing and validation for secret construction.
package secret

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"filippo.io/age"
	"k8s.io/apimachinery/pkg/util/validation"
)

var (
	// ErrEmptyInput is returned when the literal input contains no pairs.
	ErrEmptyInput = errors.New("input cannot be empty")
	// ErrInvalidPair is returned when a pair does not match the KEY: "VALUE" grammar.
	ErrInvalidPair = errors.New("invalid key/value pair")
	// ErrInvalidKey is returned when a key is not usable as a secret data key.
	ErrInvalidKey = errors.New("invalid key")
	// ErrInvalidName is returned when a secret name is not a valid RFC 1123 label.
	ErrInvalidName = errors.New("invalid secret name")
	// ErrInvalidAgeRecipient is returned when an age public key fails validation.
	ErrInvalidAgeRecipient = errors.New("invalid age public key")
)

var (
	// pairPattern matches KEY: "VALUE", KEY: 'VALUE' and KEY: VALUE.
	pairPattern = regexp.MustCompile(`^([^:]+):\s*["']?([^"']*)["']?$`)
	// keyPattern is the accepted shape for secret data keys.
	keyPattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_.-]*$`)
	// agePattern is the textual shape of an age X25519 recipient.
	agePattern = regexp.MustCompile(`^age1[a-z0-9]{58}$`)
)

// ParseLiterals parses a semicolon-separated list of KEY: "VALUE" pairs into a map.
// Values may be quoted with single or double quotes or left bare; empty values
// are allowed. Keys must start with a letter or underscore and contain only
// alphanumerics, dots, dashes and underscores.
func ParseLiterals(input string) (map[string]string, error) {
	if strings.TrimSpace(input) == "" {
		return nil, ErrEmptyInput
	}

	pairs := map[string]string{}

	for _, pair := range strings.Split(input, ";") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}

		match := pairPattern.FindStringSubmatch(pair)
		if match == nil {
			return nil, fmt.Errorf("%w: %q (expected KEY: \"VALUE\")", ErrInvalidPair, pair)
		}

		key := strings.TrimSpace(match[1])
		value := strings.TrimSpace(match[2])

		if !keyPattern.MatchString(key) {
			return nil, fmt.Errorf(
				"%w: %q (keys must start with a letter or underscore and contain only "+
					"alphanumerics, dots, dashes and underscores)",
				ErrInvalidKey, key)
		}

		pairs[key] = value
	}

	if len(pairs) == 0 {
		return nil, ErrEmptyInput
	}

	return pairs, nil
}

// ValidateName validates a secret or namespace name as an RFC 1123 label.
func ValidateName(name string) error {
	if errs := validation.IsDNS1123Label(name); len(errs) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidName, strings.Join(errs, "; "))
	}

	return nil
}

// ValidateAgeRecipient validates an age public key both textually and by
// parsing it as an X25519 recipient.
func ValidateAgeRecipient(key string) error {
	if !agePattern.MatchString(key) {
		return fmt.Errorf("%w: must start with 'age1' followed by 58 characters", ErrInvalidAgeRecipient)
	}

	_, err := age.ParseX25519Recipient(key)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidAgeRecipient, err)
	}

	return nil
}
