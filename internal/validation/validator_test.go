package validation_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/shelfpostapp/shelfpost-server/internal/errors"
	"github.com/shelfpostapp/shelfpost-server/internal/validation"
)

type TestRequest struct {
	Handle   string `json:"handle" validate:"required,min=3,max=30,alphanum"`
	Password string `json:"password" validate:"required,min=8,max=1024"`
	Name     string `json:"name" validate:"required"`
}

func TestValidator_ValidateSuccess(t *testing.T) {
	v := validation.New()

	req := TestRequest{
		Handle:   "bookworm42",
		Password: "password123",
		Name:     "Test User",
	}

	err := v.Validate(req)
	assert.NoError(t, err)
}

func TestValidator_ValidateErrors(t *testing.T) {
	v := validation.New()

	//nolint:govet // fieldalignment: Minor memory optimization not worth the complexity in test code
	tests := []struct {
		name      string
		req       TestRequest
		wantField string
	}{
		{
			name: "missing required field",
			req: TestRequest{
				Handle:   "bookworm42",
				Password: "password123",
				Name:     "", // Missing
			},
			wantField: "name",
		},
		{
			name: "handle too short",
			req: TestRequest{
				Handle:   "ab",
				Password: "password123",
				Name:     "Test",
			},
			wantField: "handle",
		},
		{
			name: "handle with symbols",
			req: TestRequest{
				Handle:   "book!worm",
				Password: "password123",
				Name:     "Test",
			},
			wantField: "handle",
		},
		{
			name: "password too short",
			req: TestRequest{
				Handle:   "bookworm42",
				Password: "short",
				Name:     "Test",
			},
			wantField: "password",
		},
		{
			name: "password too long",
			req: TestRequest{
				Handle:   "bookworm42",
				Password: string(make([]byte, 1025)),
				Name:     "Test",
			},
			wantField: "password",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.req)
			assert.Error(t, err)

			var domainErr *domainerrors.Error
			require.True(t, errors.As(err, &domainErr))
			assert.Equal(t, http.StatusBadRequest, domainErr.HTTPStatus())

			fields, ok := domainErr.Details.(map[string]string)
			require.True(t, ok)
			assert.Contains(t, fields, tt.wantField)
		})
	}
}

func TestValidator_Messages(t *testing.T) {
	v := validation.New()

	req := TestRequest{
		Handle:   "a!",
		Password: "short",
		Name:     "",
	}

	err := v.Validate(req)
	require.Error(t, err)

	var domainErr *domainerrors.Error
	require.True(t, errors.As(err, &domainErr))
	fields, ok := domainErr.Details.(map[string]string)
	require.True(t, ok)

	// min runs before alphanum, so the short handle reports length first.
	assert.Equal(t, "must be at least 3 characters", fields["handle"])
	assert.Equal(t, "must be at least 8 characters", fields["password"])
	assert.Equal(t, "is required", fields["name"])

	req = TestRequest{Handle: "book!worm", Password: "password123", Name: "Test"}
	err = v.Validate(req)
	require.Error(t, err)
	require.True(t, errors.As(err, &domainErr))
	fields, ok = domainErr.Details.(map[string]string)
	require.True(t, ok)
	assert.Equal(t, "may only contain letters and digits", fields["handle"])
}

func TestValidator_JSONFieldNames(t *testing.T) {
	v := validation.New()

	req := TestRequest{
		Handle:   "",
		Password: "password123",
		Name:     "Test",
	}

	err := v.Validate(req)
	assert.Error(t, err)

	// Should use JSON tag name "handle", not struct field name "Handle"
	var domainErr *domainerrors.Error
	require.True(t, errors.As(err, &domainErr))
	fields, ok := domainErr.Details.(map[string]string)
	require.True(t, ok)
	assert.Contains(t, fields, "handle")
	assert.NotContains(t, fields, "Handle")
}
