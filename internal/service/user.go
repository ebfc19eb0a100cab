package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shelfpostapp/shelfpost-server/internal/domain"
	domainerrors "github.com/shelfpostapp/shelfpost-server/internal/errors"
	"github.com/shelfpostapp/shelfpost-server/internal/store"
)

// UserService handles profile reads and updates.
type UserService struct {
	store  store.Store
	logger *slog.Logger
}

// NewUserService creates a new user service.
func NewUserService(s store.Store, logger *slog.Logger) *UserService {
	return &UserService{store: s, logger: logger}
}

// UpdateProfileRequest contains the updatable profile fields.
// Nil fields are left unchanged.
type UpdateProfileRequest struct {
	DisplayName       *string `json:"display_name,omitempty" validate:"omitempty,max=80"`
	ProfileVisibility *string `json:"profile_visibility,omitempty" validate:"omitempty,oneof=PUBLIC PRIVATE"`
}

// Me returns the caller's own profile, with the password hash stripped.
func (s *UserService) Me(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	user.PasswordHash = ""
	return user, nil
}

// UpdateProfile applies a partial update to the caller's profile.
// Flipping profile_visibility to PRIVATE takes every review the user owns out
// of the public feed in the same moment; no per-review writes happen.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, req UpdateProfileRequest) (*domain.User, error) {
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	if req.DisplayName != nil {
		user.DisplayName = *req.DisplayName
	}
	if req.ProfileVisibility != nil {
		visibility := domain.Visibility(*req.ProfileVisibility)
		if !visibility.Valid() {
			return nil, domainerrors.InvalidArgument("unknown profile visibility")
		}
		user.ProfileVisibility = visibility
	}
	user.Touch()

	if err := s.store.UpdateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}

	s.logger.Info("profile updated", "user_id", userID)

	user.PasswordHash = ""
	return user, nil
}
