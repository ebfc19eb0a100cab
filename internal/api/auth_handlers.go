package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/shelfpostapp/shelfpost-server/internal/service"
)

func (s *Server) registerAuthRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "register",
		Method:      http.MethodPost,
		Path:        "/api/v1/auth/register",
		Summary:     "Register new user",
		Description: "Creates a new user account and returns an access token. Handles are unique case-insensitively.",
		Tags:        []string{"Authentication"},
	}, s.handleRegister)

	huma.Register(s.api, huma.Operation{
		OperationID: "login",
		Method:      http.MethodPost,
		Path:        "/api/v1/auth/login",
		Summary:     "User login",
		Description: "Authenticates a user and returns an access token",
		Tags:        []string{"Authentication"},
	}, s.handleLogin)
}

// === DTOs ===

// RegisterRequest is the request body for user registration.
type RegisterRequest struct {
	Handle      string `json:"handle" validate:"required,min=3,max=30,alphanum" doc:"Unique handle, letters and digits only"`
	Password    string `json:"password" validate:"required,min=8,max=1024" doc:"Account password"`
	DisplayName string `json:"display_name,omitempty" validate:"omitempty,max=80" doc:"Optional display name"`
}

// RegisterInput wraps the register request for Huma.
type RegisterInput struct {
	Body RegisterRequest
}

// LoginRequest is the request body for user login.
type LoginRequest struct {
	Handle   string `json:"handle" validate:"required" doc:"Account handle"`
	Password string `json:"password" validate:"required,max=1024" doc:"Account password"`
}

// LoginInput wraps the login request for Huma.
type LoginInput struct {
	Body LoginRequest
}

// AuthResponse contains the access token and the authenticated user.
type AuthResponse struct {
	AccessToken string       `json:"access_token" doc:"PASETO access token"`
	TokenType   string       `json:"token_type" doc:"Token type (Bearer)"`
	ExpiresIn   int64        `json:"expires_in" doc:"Token expiry in seconds"`
	User        UserResponse `json:"user" doc:"Authenticated user"`
}

// AuthOutput wraps the auth response for Huma.
type AuthOutput struct {
	Body AuthResponse
}

// === Handlers ===

func (s *Server) handleRegister(ctx context.Context, input *RegisterInput) (*AuthOutput, error) {
	result, err := s.services.Auth.Register(ctx, service.RegisterRequest{
		Handle:      input.Body.Handle,
		Password:    input.Body.Password,
		DisplayName: input.Body.DisplayName,
	})
	if err != nil {
		return nil, huma.Error400BadRequest("Registration failed", err)
	}

	return authOutput(result), nil
}

func (s *Server) handleLogin(ctx context.Context, input *LoginInput) (*AuthOutput, error) {
	result, err := s.services.Auth.Login(ctx, service.LoginRequest{
		Handle:   input.Body.Handle,
		Password: input.Body.Password,
	})
	if err != nil {
		return nil, huma.Error401Unauthorized("Login failed", err)
	}

	return authOutput(result), nil
}

func authOutput(result *service.AuthResponse) *AuthOutput {
	return &AuthOutput{
		Body: AuthResponse{
			AccessToken: result.AccessToken,
			TokenType:   "Bearer",
			ExpiresIn:   result.ExpiresIn,
			User:        toUserResponse(result.User),
		},
	}
}
