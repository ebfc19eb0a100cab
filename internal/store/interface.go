// Package store defines the persistence interface for the ShelfPost server.
package store

import (
	"context"

	"github.com/shelfpostapp/shelfpost-server/internal/domain"
)

// FeedQuery describes one read of the public feed.
type FeedQuery struct {
	Sort       domain.FeedSort   // defaults to newest when empty
	GenreSlug  string            // optional equality filter on the normalized genre
	ReviewType domain.ReviewType // optional equality filter on the derived label
	Limit      int
	Cursor     string // only honored for cursor-paginated sort modes
}

// Store defines the interface for all persistence operations.
type Store interface {
	// Lifecycle
	Close() error

	// Users
	CreateUser(ctx context.Context, user *domain.User) error
	GetUser(ctx context.Context, id string) (*domain.User, error)
	GetUserByHandle(ctx context.Context, handle string) (*domain.User, error)
	UpdateUser(ctx context.Context, user *domain.User) error

	// Reviews (owner-scoped, visibility-agnostic)
	CreateReview(ctx context.Context, review *domain.Review) error
	GetReview(ctx context.Context, id string) (*domain.Review, error)
	UpdateReview(ctx context.Context, review *domain.Review) error
	DeleteReview(ctx context.Context, id string) error
	ListReviewsByOwner(ctx context.Context, ownerID string) ([]*domain.Review, error)

	// Feed (public, visibility-enforced)
	ListFeed(ctx context.Context, q FeedQuery) (*PaginatedResult[*domain.FeedItem], error)
	GetFeedItem(ctx context.Context, reviewID string) (*domain.FeedItem, error)

	// Likes
	HasLiked(ctx context.Context, userID, reviewID string) (bool, error)
	SetLike(ctx context.Context, userID, reviewID string) (int, error)
	UnsetLike(ctx context.Context, userID, reviewID string) (int, error)

	// Comments
	ListComments(ctx context.Context, reviewID string) ([]*domain.Comment, error)
	AddComment(ctx context.Context, reviewID, userID, body string) (*domain.Comment, error)
	DeleteComment(ctx context.Context, commentID, requestingUserID string) (bool, error)
}
