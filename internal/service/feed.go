package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shelfpostapp/shelfpost-server/internal/domain"
	"github.com/shelfpostapp/shelfpost-server/internal/genre"
	"github.com/shelfpostapp/shelfpost-server/internal/store"
)

// FeedService serves public feed reads. All visibility enforcement happens in
// the store's feed queries; this layer only shapes the request.
type FeedService struct {
	store  store.Store
	logger *slog.Logger
}

// NewFeedService creates a new feed service.
func NewFeedService(s store.Store, logger *slog.Logger) *FeedService {
	return &FeedService{store: s, logger: logger}
}

// List returns one page of the public feed.
//
// The genre filter accepts any label form and is normalized to its slug, so
// "Sci-Fi" and "sci fi" filter identically.
func (s *FeedService) List(ctx context.Context, q store.FeedQuery) (*store.PaginatedResult[*domain.FeedItem], error) {
	if q.GenreSlug != "" {
		if slug := genre.Slugify(q.GenreSlug); slug != "" {
			q.GenreSlug = slug
		} else {
			// Slugify never emits a bare hyphen, so this matches no review
			// while the rest of the query still gets validated.
			q.GenreSlug = "-"
		}
	}

	result, err := s.store.ListFeed(ctx, q)
	if err != nil {
		return nil, err
	}
	if result.Items == nil {
		result.Items = []*domain.FeedItem{}
	}
	return result, nil
}

// Get returns the full-body feed view of a single eligible review.
func (s *FeedService) Get(ctx context.Context, reviewID string) (*domain.FeedItem, error) {
	item, err := s.store.GetFeedItem(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	return item, nil
}

// EngagementService handles likes and comments on feed-eligible reviews.
type EngagementService struct {
	store  store.Store
	logger *slog.Logger
}

// NewEngagementService creates a new engagement service.
func NewEngagementService(s store.Store, logger *slog.Logger) *EngagementService {
	return &EngagementService{store: s, logger: logger}
}

// Like records the user's like and returns the review's like count.
func (s *EngagementService) Like(ctx context.Context, userID, reviewID string) (int, error) {
	count, err := s.store.SetLike(ctx, userID, reviewID)
	if err != nil {
		return 0, err
	}
	return count, nil
}

// Unlike removes the user's like and returns the review's like count.
func (s *EngagementService) Unlike(ctx context.Context, userID, reviewID string) (int, error) {
	count, err := s.store.UnsetLike(ctx, userID, reviewID)
	if err != nil {
		return 0, err
	}
	return count, nil
}

// Liked reports whether the user currently likes the review.
func (s *EngagementService) Liked(ctx context.Context, userID, reviewID string) (bool, error) {
	liked, err := s.store.HasLiked(ctx, userID, reviewID)
	if err != nil {
		return false, fmt.Errorf("has liked: %w", err)
	}
	return liked, nil
}

// Comments returns a review's comments, oldest first.
func (s *EngagementService) Comments(ctx context.Context, reviewID string) ([]*domain.Comment, error) {
	comments, err := s.store.ListComments(ctx, reviewID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return comments, nil
}

// AddComment posts a comment on a feed-eligible review.
// Body validation (trim, empty, length) lives in the store transaction.
func (s *EngagementService) AddComment(ctx context.Context, reviewID, userID, body string) (*domain.Comment, error) {
	comment, err := s.store.AddComment(ctx, reviewID, userID, body)
	if err != nil {
		return nil, err
	}

	s.logger.Info("comment added", "comment_id", comment.ID, "review_id", reviewID)
	return comment, nil
}

// DeleteComment removes the user's own comment.
// Reports whether a comment was actually deleted; an absent comment is not an
// error, so repeat deletes stay idempotent.
func (s *EngagementService) DeleteComment(ctx context.Context, commentID, userID string) (bool, error) {
	deleted, err := s.store.DeleteComment(ctx, commentID, userID)
	if err != nil {
		return false, err
	}
	return deleted, nil
}
