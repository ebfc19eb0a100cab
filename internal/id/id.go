// Package id generates the prefixed NanoID identifiers every ShelfPost
// record carries, like "usr-V1StGXR8_Z5jdHi6B-myT" or "rev-kP3mWnQx9LcYvT2a".
// The prefix makes an ID self-describing in logs and URLs; the NanoID part
// is 21 URL-safe characters.
package id

import (
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Generate returns a new "<prefix>-<nanoid>" identifier. It errors only when
// the system cannot supply secure random bytes.
func Generate(prefix string) (string, error) {
	suffix, err := gonanoid.New()
	if err != nil {
		return "", fmt.Errorf("generate nanoid: %w", err)
	}
	return prefix + "-" + suffix, nil
}

// MustGenerate is Generate for callers with no error path, such as test
// fixtures. It panics when entropy is unavailable.
func MustGenerate(prefix string) string {
	v, err := Generate(prefix)
	if err != nil {
		panic(fmt.Sprintf("generate id: %v", err))
	}
	return v
}
