package auth

import (
	"time"
)

// AccessClaims is the payload carried inside a v4.local access token. The
// token is encrypted, so user_id and handle travel in it without being
// readable by the client.
type AccessClaims struct {
	UserID string `json:"user_id"`
	Handle string `json:"handle"`

	// Registered claim set, verified on every request.
	Issuer     string    `json:"iss"`
	Subject    string    `json:"sub"`
	Audience   string    `json:"aud"`
	Expiration time.Time `json:"exp"`
	NotBefore  time.Time `json:"nbf"`
	IssuedAt   time.Time `json:"iat"`
	TokenID    string    `json:"jti"`
}
