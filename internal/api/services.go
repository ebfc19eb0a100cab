package api

import "github.com/shelfpostapp/shelfpost-server/internal/service"

// Services groups the services the API layer depends on.
type Services struct {
	Auth       *service.AuthService
	Users      *service.UserService
	Reviews    *service.ReviewService
	Feed       *service.FeedService
	Engagement *service.EngagementService
}
