package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shelfpostapp/shelfpost-server/internal/covers"
	"github.com/shelfpostapp/shelfpost-server/internal/domain"
	domainerrors "github.com/shelfpostapp/shelfpost-server/internal/errors"
	"github.com/shelfpostapp/shelfpost-server/internal/genre"
	"github.com/shelfpostapp/shelfpost-server/internal/id"
	"github.com/shelfpostapp/shelfpost-server/internal/store"
)

// coverLookupTimeout bounds the create-time cover fetch so a slow upstream
// can't hold a review hostage.
const coverLookupTimeout = 10 * time.Second

// CoverResolver resolves cover art for a title/author pair.
// Satisfied by *covers.Service; nil disables lookup entirely.
type CoverResolver interface {
	Lookup(ctx context.Context, title, author string) (*covers.Cover, error)
}

// ReviewService handles owner-scoped review CRUD.
type ReviewService struct {
	store  store.Store
	covers CoverResolver
	logger *slog.Logger
}

// NewReviewService creates a new review service. coverResolver may be nil.
func NewReviewService(s store.Store, coverResolver CoverResolver, logger *slog.Logger) *ReviewService {
	return &ReviewService{
		store:  s,
		covers: coverResolver,
		logger: logger,
	}
}

// CreateReviewRequest contains the data for a new review.
type CreateReviewRequest struct {
	Title       string     `json:"title" validate:"required,max=200"`
	Author      *string    `json:"author,omitempty" validate:"omitempty,max=200"`
	CoverURL    *string    `json:"cover_url,omitempty" validate:"omitempty,url"`
	Body        string     `json:"body" validate:"required,max=50000"`
	Recommended *bool      `json:"recommended,omitempty"`
	Genre       *string    `json:"genre,omitempty" validate:"omitempty,max=100"`
	Visibility  *string    `json:"visibility,omitempty" validate:"omitempty,oneof=PUBLIC PRIVATE"`
	ReviewDate  *time.Time `json:"review_date,omitempty"`
}

// UpdateReviewRequest contains a partial review update.
// Nil fields are left unchanged.
type UpdateReviewRequest struct {
	Title       *string    `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Author      *string    `json:"author,omitempty" validate:"omitempty,max=200"`
	CoverURL    *string    `json:"cover_url,omitempty" validate:"omitempty,url"`
	Body        *string    `json:"body,omitempty" validate:"omitempty,min=1,max=50000"`
	Recommended *bool      `json:"recommended,omitempty"`
	Genre       *string    `json:"genre,omitempty" validate:"omitempty,max=100"`
	Visibility  *string    `json:"visibility,omitempty" validate:"omitempty,oneof=PUBLIC PRIVATE"`
	ReviewDate  *time.Time `json:"review_date,omitempty"`
}

// Create publishes a new review for the user.
//
// When no cover URL is supplied and a cover resolver is configured, cover art
// is resolved best-effort from the title and author. Lookup failures are
// logged and never block creation.
func (s *ReviewService) Create(ctx context.Context, userID string, req CreateReviewRequest) (*domain.Review, error) {
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	reviewID, err := id.Generate("rev")
	if err != nil {
		return nil, fmt.Errorf("generate review ID: %w", err)
	}

	review := &domain.Review{
		OwnerID:     userID,
		Title:       req.Title,
		Author:      req.Author,
		CoverURL:    req.CoverURL,
		Body:        req.Body,
		Recommended: req.Recommended,
		Visibility:  domain.VisibilityPublic,
		ReviewDate:  req.ReviewDate,
	}
	review.ID = reviewID
	review.InitTimestamps()

	if req.Visibility != nil {
		review.Visibility = domain.Visibility(*req.Visibility)
	}
	setGenre(review, req.Genre)

	if review.CoverURL == nil && s.covers != nil {
		s.resolveCover(ctx, review)
	}

	if err := s.store.CreateReview(ctx, review); err != nil {
		return nil, fmt.Errorf("create review: %w", err)
	}

	s.logger.Info("review created", "review_id", reviewID, "user_id", userID)
	return review, nil
}

// Get returns one of the caller's own reviews, any visibility.
// Someone else's review is reported as absent.
func (s *ReviewService) Get(ctx context.Context, userID, reviewID string) (*domain.Review, error) {
	return s.getOwned(ctx, userID, reviewID)
}

// ListMine returns all of the caller's reviews, newest first.
func (s *ReviewService) ListMine(ctx context.Context, userID string) ([]*domain.Review, error) {
	reviews, err := s.store.ListReviewsByOwner(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	return reviews, nil
}

// Update applies a partial update to one of the caller's reviews.
func (s *ReviewService) Update(ctx context.Context, userID, reviewID string, req UpdateReviewRequest) (*domain.Review, error) {
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	review, err := s.getOwned(ctx, userID, reviewID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		review.Title = *req.Title
	}
	if req.Author != nil {
		review.Author = req.Author
	}
	if req.CoverURL != nil {
		review.CoverURL = req.CoverURL
	}
	if req.Body != nil {
		review.Body = *req.Body
	}
	if req.Recommended != nil {
		review.Recommended = req.Recommended
	}
	if req.Genre != nil {
		setGenre(review, req.Genre)
	}
	if req.Visibility != nil {
		review.Visibility = domain.Visibility(*req.Visibility)
	}
	if req.ReviewDate != nil {
		review.ReviewDate = req.ReviewDate
	}
	review.Touch()

	if err := s.store.UpdateReview(ctx, review); err != nil {
		return nil, fmt.Errorf("update review: %w", err)
	}

	return review, nil
}

// Delete removes one of the caller's reviews. Likes and comments go with it.
func (s *ReviewService) Delete(ctx context.Context, userID, reviewID string) error {
	if _, err := s.getOwned(ctx, userID, reviewID); err != nil {
		return err
	}
	if err := s.store.DeleteReview(ctx, reviewID); err != nil {
		return fmt.Errorf("delete review: %w", err)
	}

	s.logger.Info("review deleted", "review_id", reviewID, "user_id", userID)
	return nil
}

// getOwned fetches a review and verifies ownership. A review owned by someone
// else is reported as absent rather than forbidden so the owner route leaks
// nothing about other users' reviews.
func (s *ReviewService) getOwned(ctx context.Context, userID, reviewID string) (*domain.Review, error) {
	review, err := s.store.GetReview(ctx, reviewID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("review not found")
		}
		return nil, fmt.Errorf("get review: %w", err)
	}
	if review.OwnerID != userID {
		return nil, domainerrors.NotFound("review not found")
	}
	return review, nil
}

// setGenre stores the display label and its normalized slug together.
func setGenre(review *domain.Review, label *string) {
	review.Genre = label
	review.GenreSlug = nil
	if label != nil {
		if slug := genre.Slugify(*label); slug != "" {
			review.GenreSlug = &slug
		}
	}
}

// resolveCover fills in cover art from the resolver, best-effort.
func (s *ReviewService) resolveCover(ctx context.Context, review *domain.Review) {
	lookupCtx, cancel := context.WithTimeout(ctx, coverLookupTimeout)
	defer cancel()

	author := ""
	if review.Author != nil {
		author = *review.Author
	}

	cover, err := s.covers.Lookup(lookupCtx, review.Title, author)
	if errors.Is(err, covers.ErrNoCover) {
		return
	}
	if err != nil {
		s.logger.Warn("cover lookup failed", "title", review.Title, "error", err)
		return
	}

	review.CoverURL = &cover.URL
	if cover.Blurhash != "" {
		review.CoverBlurhash = &cover.Blurhash
	}
}
