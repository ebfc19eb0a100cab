package api

import (
	"errors"

	"github.com/danielgtaylor/huma/v2"

	domainerrors "github.com/shelfpostapp/shelfpost-server/internal/errors"
	"github.com/shelfpostapp/shelfpost-server/internal/store"
)

// APIError is a custom error type that implements huma.StatusError.
// It maps domain and store errors to HTTP responses with consistent structure.
type APIError struct { //nolint:revive // API prefix is intentional for clarity
	status  int
	Code    string `json:"code" doc:"Machine-readable error code"`
	Message string `json:"message" doc:"Human-readable error message"`
	Details any    `json:"details,omitempty" doc:"Additional error details"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return e.Message
}

// GetStatus implements huma.StatusError.
func (e *APIError) GetStatus() int {
	return e.status
}

// ContentType returns the content type for the error response.
func (e *APIError) ContentType(_ string) string {
	return "application/json"
}

// RegisterErrorHandler configures huma to use domain errors.
// Call this after creating the huma.API but before registering routes.
func RegisterErrorHandler() {
	huma.NewError = func(status int, message string, errs ...error) huma.StatusError {
		for _, err := range errs {
			var domainErr *domainerrors.Error
			if errors.As(err, &domainErr) {
				return &APIError{
					status:  domainErr.HTTPStatus(),
					Code:    string(domainErr.Code),
					Message: domainErr.Message,
					Details: domainErr.Details,
				}
			}

			// Store errors carry their own status; WithMessage copies are
			// caught here too, which is why this is errors.As and not Is.
			var storeErr *store.Error
			if errors.As(err, &storeErr) {
				return &APIError{
					status:  storeErr.HTTPCode(),
					Code:    storeCode(err, storeErr),
					Message: storeErr.Message,
				}
			}
		}

		return &APIError{
			status:  status,
			Code:    statusToCode(status),
			Message: message,
		}
	}
}

// storeCode resolves the machine code for a store error. The engagement and
// cursor sentinels carry specific codes; anything else maps off the status.
func storeCode(err error, storeErr *store.Error) string {
	switch {
	case errors.Is(err, store.ErrEmptyBody):
		return string(domainerrors.CodeEmptyBody)
	case errors.Is(err, store.ErrTooLong):
		return string(domainerrors.CodeTooLong)
	case errors.Is(err, store.ErrNotOwner):
		return string(domainerrors.CodeNotOwner)
	case errors.Is(err, store.ErrInvalidCursor):
		return string(domainerrors.CodeInvalidCursor)
	case errors.Is(err, store.ErrInvalidInput):
		return string(domainerrors.CodeInvalidArgument)
	default:
		return statusToCode(storeErr.HTTPCode())
	}
}

// statusToCode maps HTTP status codes to our domain error codes.
func statusToCode(status int) string {
	switch status {
	case 400:
		return string(domainerrors.CodeValidation)
	case 401:
		return string(domainerrors.CodeUnauthorized)
	case 403:
		return string(domainerrors.CodeForbidden)
	case 404:
		return string(domainerrors.CodeNotFound)
	case 409:
		return string(domainerrors.CodeConflict)
	case 429:
		return string(domainerrors.CodeRateLimited)
	default:
		return string(domainerrors.CodeInternal)
	}
}
