package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Hashing parameters. The encoded hash records them, so they can be raised
// later without invalidating existing credentials.
const (
	hashMemory  = 64 * 1024
	hashTime    = 3
	hashThreads = 4
	saltLen     = 16
	keyLen      = 32

	// Hashing cost scales with input size, so oversized passwords are
	// rejected before any work happens.
	maxPasswordLength = 1024
)

var b64 = base64.RawStdEncoding

// HashPassword derives an Argon2id hash of password and returns it in the
// standard $argon2id$v=19$m=...,t=...,p=...$salt$key encoded form.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", errors.New("password cannot be empty")
	}
	if len(password) > maxPasswordLength {
		return "", errors.New("password exceeds maximum length")
	}

	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	key := argon2.IDKey([]byte(password), salt, hashTime, hashMemory, hashThreads, keyLen)

	encoded := fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, hashMemory, hashTime, hashThreads,
		b64.EncodeToString(salt), b64.EncodeToString(key))
	return encoded, nil
}

// VerifyPassword reports whether password matches the encoded hash. A
// malformed hash verifies as false rather than erroring, so login failures
// all look the same to the caller.
func VerifyPassword(encodedHash, password string) (bool, error) {
	if len(password) > maxPasswordLength {
		return false, nil
	}

	salt, key, p, err := parseEncodedHash(encodedHash)
	if err != nil {
		return false, nil
	}

	candidate := argon2.IDKey([]byte(password), salt, p.time, p.memory, p.threads, p.keyLen)

	return subtle.ConstantTimeCompare(key, candidate) == 1, nil
}

// hashParams are the cost parameters recorded in an encoded hash.
type hashParams struct {
	memory  uint32
	time    uint32
	threads uint8
	keyLen  uint32
}

// parseEncodedHash splits an encoded hash back into salt, derived key and
// the parameters it was produced with.
func parseEncodedHash(encoded string) (salt, key []byte, p hashParams, err error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 {
		return nil, nil, p, errors.New("malformed hash")
	}
	if parts[1] != "argon2id" {
		return nil, nil, p, fmt.Errorf("unsupported algorithm %q", parts[1])
	}

	var version int
	if _, err = fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return nil, nil, p, fmt.Errorf("parse version: %w", err)
	}
	if version != argon2.Version {
		return nil, nil, p, fmt.Errorf("incompatible argon2 version %d", version)
	}

	if _, err = fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &p.memory, &p.time, &p.threads); err != nil {
		return nil, nil, p, fmt.Errorf("parse parameters: %w", err)
	}

	if salt, err = b64.DecodeString(parts[4]); err != nil {
		return nil, nil, p, fmt.Errorf("decode salt: %w", err)
	}
	if key, err = b64.DecodeString(parts[5]); err != nil {
		return nil, nil, p, fmt.Errorf("decode key: %w", err)
	}
	p.keyLen = uint32(len(key))

	return salt, key, p, nil
}
