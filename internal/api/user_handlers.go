package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/shelfpostapp/shelfpost-server/internal/domain"
	"github.com/shelfpostapp/shelfpost-server/internal/service"
)

func (s *Server) registerUserRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getCurrentUser",
		Method:      http.MethodGet,
		Path:        "/api/v1/users/me",
		Summary:     "Get current user",
		Description: "Returns the authenticated user's own profile",
		Tags:        []string{"Users"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetCurrentUser)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateProfile",
		Method:      http.MethodPatch,
		Path:        "/api/v1/users/me",
		Summary:     "Update profile",
		Description: "Applies a partial update to the authenticated user's profile. Setting profile_visibility to PRIVATE removes all of the user's reviews from the public feed.",
		Tags:        []string{"Users"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUpdateProfile)
}

// === DTOs ===

// UserResponse contains user information in API responses.
type UserResponse struct {
	ID                string    `json:"id" doc:"User ID"`
	Handle            string    `json:"handle" doc:"Unique handle"`
	DisplayName       string    `json:"display_name,omitempty" doc:"Display name"`
	ProfileVisibility string    `json:"profile_visibility" doc:"Profile visibility (PUBLIC or PRIVATE)"`
	CreatedAt         time.Time `json:"created_at" doc:"Creation timestamp"`
	UpdatedAt         time.Time `json:"updated_at" doc:"Last update timestamp"`
}

// UserOutput wraps the user response for Huma.
type UserOutput struct {
	Body UserResponse
}

// UpdateProfileRequest is the request body for profile updates.
// Absent fields are left unchanged.
type UpdateProfileRequest struct {
	DisplayName       *string `json:"display_name,omitempty" validate:"omitempty,max=80" doc:"New display name"`
	ProfileVisibility *string `json:"profile_visibility,omitempty" validate:"omitempty,oneof=PUBLIC PRIVATE" doc:"New profile visibility"`
}

// UpdateProfileInput wraps the profile update request for Huma.
type UpdateProfileInput struct {
	Body UpdateProfileRequest
}

func toUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:                user.ID,
		Handle:            user.Handle,
		DisplayName:       user.DisplayName,
		ProfileVisibility: string(user.ProfileVisibility),
		CreatedAt:         user.CreatedAt,
		UpdatedAt:         user.UpdatedAt,
	}
}

// === Handlers ===

func (s *Server) handleGetCurrentUser(ctx context.Context, _ *struct{}) (*UserOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	user, err := s.services.Users.Me(ctx, userID)
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to load profile", err)
	}

	return &UserOutput{Body: toUserResponse(user)}, nil
}

func (s *Server) handleUpdateProfile(ctx context.Context, input *UpdateProfileInput) (*UserOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	user, err := s.services.Users.UpdateProfile(ctx, userID, service.UpdateProfileRequest{
		DisplayName:       input.Body.DisplayName,
		ProfileVisibility: input.Body.ProfileVisibility,
	})
	if err != nil {
		return nil, huma.Error400BadRequest("Profile update failed", err)
	}

	return &UserOutput{Body: toUserResponse(user)}, nil
}
