package store_test

import (
	"encoding/base64"
	"errors"
	"testing"
	"time"

	"github.com/shelfpostapp/shelfpost-server/internal/store"
)

func TestCursorRoundTrip(t *testing.T) {
	token := store.EncodeCursor("2024-05-01T10:00:00Z", "rev-abc123")

	key, id, err := store.DecodeCursor(token)
	if err != nil {
		t.Fatalf("DecodeCursor() error = %v", err)
	}
	if key != "2024-05-01T10:00:00Z" {
		t.Errorf("key = %q, want %q", key, "2024-05-01T10:00:00Z")
	}
	if id != "rev-abc123" {
		t.Errorf("id = %q, want %q", id, "rev-abc123")
	}
}

func TestTimeCursorRoundTrip(t *testing.T) {
	at := time.Date(2024, 5, 1, 10, 30, 0, 123456789, time.UTC)
	token := store.EncodeTimeCursor(at, "rev-xyz")

	key, id, err := store.DecodeTimeCursor(token)
	if err != nil {
		t.Fatalf("DecodeTimeCursor() error = %v", err)
	}
	if !key.Equal(at) {
		t.Errorf("key = %v, want %v", key, at)
	}
	if id != "rev-xyz" {
		t.Errorf("id = %q, want %q", id, "rev-xyz")
	}
}

func TestDecodeCursor_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{"not base64", "%%%not-base64%%%"},
		{"missing separator", base64.URLEncoding.EncodeToString([]byte("no-separator-here"))},
		{"empty key", store.EncodeCursor("", "rev-abc")},
		{"empty id", store.EncodeCursor("2024-05-01T10:00:00Z", "")},
		{"empty token", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := store.DecodeCursor(tt.token)
			if err == nil {
				t.Fatal("DecodeCursor() expected error, got nil")
			}

			var storeErr *store.Error
			if !errors.As(err, &storeErr) {
				t.Fatalf("error type = %T, want *store.Error", err)
			}
			if storeErr.Code != store.ErrInvalidCursor.Code {
				t.Errorf("code = %d, want %d", storeErr.Code, store.ErrInvalidCursor.Code)
			}
		})
	}
}

func TestDecodeTimeCursor_BadTimestamp(t *testing.T) {
	token := store.EncodeCursor("yesterday-ish", "rev-abc")

	_, _, err := store.DecodeTimeCursor(token)
	if err == nil {
		t.Fatal("DecodeTimeCursor() expected error, got nil")
	}

	var storeErr *store.Error
	if !errors.As(err, &storeErr) {
		t.Fatalf("error type = %T, want *store.Error", err)
	}
	if storeErr.Code != store.ErrInvalidCursor.Code {
		t.Errorf("code = %d, want %d", storeErr.Code, store.ErrInvalidCursor.Code)
	}
}

func TestDecodeCursor_OpaqueToClients(t *testing.T) {
	// The raw layout must not leak; a token is valid base64, not a bare "key|id".
	_, _, err := store.DecodeCursor("2024-05-01T10:00:00Z|rev-abc")
	if err == nil {
		t.Fatal("expected raw key|id token to be rejected")
	}
}

func TestPaginationParams_Validate(t *testing.T) {
	tests := []struct {
		name      string
		limit     int
		wantErr   bool
		wantLimit int
	}{
		{"valid", 10, false, 10},
		{"at cap", 50, false, 50},
		{"over cap is clamped", 200, false, 50},
		{"zero is rejected", 0, true, 0},
		{"negative is rejected", -5, true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := store.PaginationParams{Limit: tt.limit}
			err := p.Validate()
			if tt.wantErr {
				if err == nil {
					t.Fatal("Validate() expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("Validate() error = %v", err)
			}
			if p.Limit != tt.wantLimit {
				t.Errorf("limit = %d, want %d", p.Limit, tt.wantLimit)
			}
		})
	}
}
