package providers

import (
	"github.com/samber/do/v2"

	"github.com/shelfpostapp/shelfpost-server/internal/auth"
	"github.com/shelfpostapp/shelfpost-server/internal/logger"
	"github.com/shelfpostapp/shelfpost-server/internal/service"
)

// ProvideAuthService provides the authentication service.
func ProvideAuthService(i do.Injector) (*service.AuthService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	tokenService := do.MustInvoke[*auth.TokenService](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewAuthService(storeHandle.Store, tokenService, log.Logger), nil
}

// ProvideUserService provides the user profile service.
func ProvideUserService(i do.Injector) (*service.UserService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewUserService(storeHandle.Store, log.Logger), nil
}

// ProvideReviewService provides the review service.
func ProvideReviewService(i do.Injector) (*service.ReviewService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	coverHandle := do.MustInvoke[*CoverServiceHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	// A nil interface disables lookup; a typed nil pointer would not.
	var resolver service.CoverResolver
	if coverHandle.Service != nil {
		resolver = coverHandle.Service
	}

	return service.NewReviewService(storeHandle.Store, resolver, log.Logger), nil
}

// ProvideFeedService provides the public feed service.
func ProvideFeedService(i do.Injector) (*service.FeedService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewFeedService(storeHandle.Store, log.Logger), nil
}

// ProvideEngagementService provides the likes and comments service.
func ProvideEngagementService(i do.Injector) (*service.EngagementService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewEngagementService(storeHandle.Store, log.Logger), nil
}
