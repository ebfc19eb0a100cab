package auth

import (
	"bytes"
	"crypto/rand"
	"strings"
	"testing"
	"time"

	"github.com/shelfpostapp/shelfpost-server/internal/domain"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	if !strings.HasPrefix(hash, "$argon2id$") {
		t.Errorf("hash = %q, want argon2id format", hash)
	}

	ok, err := VerifyPassword(hash, "correct horse battery staple")
	if err != nil {
		t.Fatalf("verify password: %v", err)
	}
	if !ok {
		t.Error("correct password rejected")
	}

	ok, err = VerifyPassword(hash, "wrong password")
	if err != nil {
		t.Fatalf("verify wrong password: %v", err)
	}
	if ok {
		t.Error("wrong password accepted")
	}
}

func TestHashPasswordRejectsEmptyAndHuge(t *testing.T) {
	if _, err := HashPassword(""); err == nil {
		t.Error("empty password accepted")
	}
	if _, err := HashPassword(strings.Repeat("a", maxPasswordLength+1)); err == nil {
		t.Error("oversized password accepted")
	}
}

func TestVerifyPasswordMalformedHash(t *testing.T) {
	ok, err := VerifyPassword("not-a-hash", "anything")
	if err != nil {
		t.Fatalf("verify malformed hash: %v", err)
	}
	if ok {
		t.Error("malformed hash verified")
	}
}

func newTestTokenService(t *testing.T, duration time.Duration) *TokenService {
	t.Helper()

	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		t.Fatalf("generate key: %v", err)
	}
	svc, err := NewTokenService(key, duration)
	if err != nil {
		t.Fatalf("new token service: %v", err)
	}
	return svc
}

func TestAccessTokenRoundTrip(t *testing.T) {
	svc := newTestTokenService(t, time.Hour)

	user := &domain.User{Handle: "reader"}
	user.ID = "usr-test"

	token, err := svc.GenerateAccessToken(user)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	claims, err := svc.VerifyAccessToken(token)
	if err != nil {
		t.Fatalf("verify token: %v", err)
	}
	if claims.UserID != "usr-test" {
		t.Errorf("user id = %q", claims.UserID)
	}
	if claims.Handle != "reader" {
		t.Errorf("handle = %q", claims.Handle)
	}
	if claims.Subject != "usr-test" {
		t.Errorf("subject = %q", claims.Subject)
	}
	if !strings.HasPrefix(claims.TokenID, "tok-") {
		t.Errorf("token id = %q, want tok- prefix", claims.TokenID)
	}
}

func TestVerifyAccessTokenRejectsExpired(t *testing.T) {
	svc := newTestTokenService(t, -time.Minute)

	user := &domain.User{Handle: "reader"}
	user.ID = "usr-test"

	token, err := svc.GenerateAccessToken(user)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	if _, err := svc.VerifyAccessToken(token); err == nil {
		t.Error("expired token accepted")
	}
}

func TestVerifyAccessTokenRejectsWrongKey(t *testing.T) {
	a := newTestTokenService(t, time.Hour)
	b := newTestTokenService(t, time.Hour)

	user := &domain.User{Handle: "reader"}
	user.ID = "usr-test"

	token, err := a.GenerateAccessToken(user)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	if _, err := b.VerifyAccessToken(token); err == nil {
		t.Error("token from another key accepted")
	}
}

func TestNewTokenServiceRejectsBadKeyLength(t *testing.T) {
	if _, err := NewTokenService(make([]byte, 16), time.Hour); err == nil {
		t.Error("short key accepted")
	}
}

func TestLoadOrGenerateKey(t *testing.T) {
	dir := t.TempDir()

	first, err := LoadOrGenerateKey(dir)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	if len(first) != 32 {
		t.Fatalf("key length = %d, want 32", len(first))
	}

	// A second call loads the same key back.
	second, err := LoadOrGenerateKey(dir)
	if err != nil {
		t.Fatalf("load key: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Error("loaded key differs from generated key")
	}
}
