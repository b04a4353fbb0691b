// Package id generates the public identifiers used by the API.
package id

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"

	"github.com/google/uuid"
)

const (
	// Base62 alphabet: 0-9, A-Z, a-z
	alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

	// DefaultLength is the default length for generated short IDs
	DefaultLength = 12
)

// Prefixes for entity types exposed through the API.
const (
	PrefixQuizSession = "qs"
)

// Generate creates a random short ID with the specified length using Base62 encoding.
func Generate(length int) (string, error) {
	if length <= 0 {
		length = DefaultLength
	}

	result := make([]byte, length)
	alphabetLen := big.NewInt(int64(len(alphabet)))

	for i := 0; i < length; i++ {
		num, err := rand.Int(rand.Reader, alphabetLen)
		if err != nil {
			return "", fmt.Errorf("failed to generate random number: %w", err)
		}
		result[i] = alphabet[num.Int64()]
	}

	return string(result), nil
}

// GenerateWithPrefix creates a prefixed ID in the format "prefix_randomstring".
func GenerateWithPrefix(prefix string, length int) (string, error) {
	id, err := Generate(length)
	if err != nil {
		return "", err
	}
	return prefix + "_" + id, nil
}

// NewQuizSessionID returns a new "qs_" prefixed quiz session id.
func NewQuizSessionID() (string, error) {
	return GenerateWithPrefix(PrefixQuizSession, DefaultLength)
}

// NewAuthSessionID returns a random UUID for an auth session row.
func NewAuthSessionID() string {
	return uuid.NewString()
}

// ValidatePrefix checks if the prefixed ID has the expected prefix.
func ValidatePrefix(prefixedID, expectedPrefix string) error {
	prefix, rest, ok := strings.Cut(prefixedID, "_")
	if !ok || rest == "" {
		return fmt.Errorf("invalid prefixed ID format: %s", prefixedID)
	}
	if prefix != expectedPrefix {
		return fmt.Errorf("invalid prefix: expected %s, got %s", expectedPrefix, prefix)
	}
	return nil
}

// IsUUID reports whether s parses as a UUID.
func IsUUID(s string) bool {
	return uuid.Validate(s) == nil
}
