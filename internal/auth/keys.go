// Package auth covers credentials and access tokens: argon2id password
// hashing and encrypted PASETO v4.local tokens.
package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// tokenKeyLen is the symmetric key size PASETO v4.local requires: 32 bytes,
// stored on disk as 64 hex characters.
const tokenKeyLen = 32

// LoadOrGenerateKey returns the token key from <dataPath>/auth.key, creating
// both the directory and a fresh random key on first run. Restarting the
// server therefore keeps existing sessions valid.
func LoadOrGenerateKey(dataPath string) ([]byte, error) {
	keyPath := filepath.Join(dataPath, "auth.key")

	//#nosec G304 -- Auth key path is derived from validated data path
	raw, err := os.ReadFile(keyPath)
	if err == nil {
		return decodeKey(strings.TrimSpace(string(raw)))
	}

	key := make([]byte, tokenKeyLen)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("generate auth key: %w", err)
	}

	if err := os.MkdirAll(dataPath, 0o700); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	if err := os.WriteFile(keyPath, []byte(hex.EncodeToString(key)), 0o600); err != nil {
		return nil, fmt.Errorf("save auth key: %w", err)
	}

	return key, nil
}

// decodeKey parses a stored hex key, rejecting anything that is not exactly
// tokenKeyLen bytes.
func decodeKey(keyHex string) ([]byte, error) {
	if len(keyHex) != tokenKeyLen*2 {
		return nil, fmt.Errorf("auth key is %d hex chars, want %d", len(keyHex), tokenKeyLen*2)
	}
	key, err := hex.DecodeString(keyHex)
	if err != nil {
		return nil, fmt.Errorf("auth key is not valid hex: %w", err)
	}
	return key, nil
}
