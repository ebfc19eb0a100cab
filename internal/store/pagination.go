package store

import (
	"encoding/base64"
	"strings"
	"time"
)

// MaxFeedLimit caps the page size of any feed read.
const MaxFeedLimit = 50

// cursorSeparator joins the ordering key and the tie-breaking id inside a token.
const cursorSeparator = "|"

// PaginationParams contains pagination request parameters.
type PaginationParams struct {
	Limit  int    // The number of items per page (capped at MaxFeedLimit)
	Cursor string // Opaque cursor for the next page (empty for first page)
}

// Validate rejects out-of-range limits and caps oversized ones.
// A limit below 1 is a caller error, not something to silently correct.
func (p *PaginationParams) Validate() error {
	if p.Limit < 1 {
		return ErrInvalidInput.WithMessage("limit must be at least 1")
	}
	if p.Limit > MaxFeedLimit {
		p.Limit = MaxFeedLimit
	}
	return nil
}

// PaginatedResult contains paginated data and metadata.
type PaginatedResult[T any] struct {
	Items      []T    `json:"items"`
	NextCursor string `json:"next_cursor,omitempty"` // Empty if no more pages
	HasMore    bool   `json:"has_more"`
}

// EncodeCursor creates an opaque token from an ordering key and a tie-breaking id.
// The key must be serialized losslessly by the caller; for time-keyed sorts use
// EncodeTimeCursor. Base64 keeps the internal layout out of client hands.
func EncodeCursor(key, id string) string {
	return base64.URLEncoding.EncodeToString([]byte(key + cursorSeparator + id))
}

// EncodeTimeCursor creates a cursor token keyed by a timestamp.
func EncodeTimeCursor(key time.Time, id string) string {
	return EncodeCursor(key.UTC().Format(time.RFC3339Nano), id)
}

// DecodeCursor decodes a token back into its ordering key and id.
// Returns ErrInvalidCursor if the token is not base64, is missing the
// separator, or has an empty key or id.
func DecodeCursor(cursor string) (key, id string, err error) {
	decoded, decodeErr := base64.URLEncoding.DecodeString(cursor)
	if decodeErr != nil {
		return "", "", ErrInvalidCursor.WithCause(decodeErr)
	}

	// The id never contains the separator, so split from the right in case a
	// future key type does.
	raw := string(decoded)
	idx := strings.LastIndex(raw, cursorSeparator)
	if idx < 0 {
		return "", "", ErrInvalidCursor.WithMessage("malformed cursor")
	}

	key, id = raw[:idx], raw[idx+1:]
	if key == "" || id == "" {
		return "", "", ErrInvalidCursor.WithMessage("malformed cursor")
	}
	return key, id, nil
}

// DecodeTimeCursor decodes a token whose ordering key is a timestamp.
// Returns ErrInvalidCursor if the key does not parse as RFC3339.
func DecodeTimeCursor(cursor string) (key time.Time, id string, err error) {
	rawKey, id, err := DecodeCursor(cursor)
	if err != nil {
		return time.Time{}, "", err
	}

	key, parseErr := time.Parse(time.RFC3339Nano, rawKey)
	if parseErr != nil {
		return time.Time{}, "", ErrInvalidCursor.WithCause(parseErr)
	}
	return key, id, nil
}
