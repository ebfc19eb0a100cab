package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/shelfpostapp/shelfpost-server/internal/domain"
	"github.com/shelfpostapp/shelfpost-server/internal/service"
)

func (s *Server) registerReviewRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "createReview",
		Method:      http.MethodPost,
		Path:        "/api/v1/reviews",
		Summary:     "Create review",
		Description: "Publishes a new book review. When no cover URL is supplied, cover art is resolved best-effort from the title and author.",
		Tags:        []string{"Reviews"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleCreateReview)

	huma.Register(s.api, huma.Operation{
		OperationID: "listMyReviews",
		Method:      http.MethodGet,
		Path:        "/api/v1/reviews",
		Summary:     "List own reviews",
		Description: "Returns all of the authenticated user's reviews, newest first, regardless of visibility",
		Tags:        []string{"Reviews"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListMyReviews)

	huma.Register(s.api, huma.Operation{
		OperationID: "getReview",
		Method:      http.MethodGet,
		Path:        "/api/v1/reviews/{id}",
		Summary:     "Get own review",
		Description: "Returns one of the authenticated user's reviews",
		Tags:        []string{"Reviews"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetReview)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateReview",
		Method:      http.MethodPatch,
		Path:        "/api/v1/reviews/{id}",
		Summary:     "Update review",
		Description: "Applies a partial update to one of the authenticated user's reviews. Like and comment counts are untouched.",
		Tags:        []string{"Reviews"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUpdateReview)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteReview",
		Method:      http.MethodDelete,
		Path:        "/api/v1/reviews/{id}",
		Summary:     "Delete review",
		Description: "Deletes one of the authenticated user's reviews along with its likes and comments",
		Tags:        []string{"Reviews"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleDeleteReview)
}

// === DTOs ===

// ReviewResponse contains a review as seen by its owner.
type ReviewResponse struct {
	ID            string     `json:"id" doc:"Review ID"`
	Title         string     `json:"title" doc:"Book title"`
	Author        *string    `json:"author,omitempty" doc:"Book author"`
	CoverURL      *string    `json:"cover_url,omitempty" doc:"Cover image URL"`
	CoverBlurhash *string    `json:"cover_blurhash,omitempty" doc:"Blurhash placeholder for the cover"`
	Body          string     `json:"body" doc:"Review text"`
	Recommended   *bool      `json:"recommended,omitempty" doc:"Recommendation signal, absent when neutral"`
	ReviewType    string     `json:"review_type" doc:"Derived label: RECOMMENDED, NOT_RECOMMENDED, or NEUTRAL"`
	Genre         *string    `json:"genre,omitempty" doc:"Genre label as entered"`
	GenreSlug     *string    `json:"genre_slug,omitempty" doc:"Normalized genre slug"`
	Visibility    string     `json:"visibility" doc:"Review visibility (PUBLIC or PRIVATE)"`
	ReviewDate    *time.Time `json:"review_date,omitempty" doc:"When the book was read"`
	LikeCount     int        `json:"like_count" doc:"Number of likes"`
	CommentCount  int        `json:"comment_count" doc:"Number of comments"`
	CreatedAt     time.Time  `json:"created_at" doc:"Creation timestamp"`
	UpdatedAt     time.Time  `json:"updated_at" doc:"Last update timestamp"`
}

// ReviewOutput wraps a single review for Huma.
type ReviewOutput struct {
	Body ReviewResponse
}

// ReviewListOutput wraps a review list for Huma.
type ReviewListOutput struct {
	Body struct {
		Reviews []ReviewResponse `json:"reviews" doc:"The user's reviews, newest first"`
	}
}

// CreateReviewRequest is the request body for review creation.
type CreateReviewRequest struct {
	Title       string     `json:"title" validate:"required,max=200" doc:"Book title"`
	Author      *string    `json:"author,omitempty" validate:"omitempty,max=200" doc:"Book author"`
	CoverURL    *string    `json:"cover_url,omitempty" validate:"omitempty,url" doc:"Cover image URL, resolved automatically when absent"`
	Body        string     `json:"body" validate:"required,max=50000" doc:"Review text"`
	Recommended *bool      `json:"recommended,omitempty" doc:"Recommendation signal, omit for neutral"`
	Genre       *string    `json:"genre,omitempty" validate:"omitempty,max=100" doc:"Free-text genre label"`
	Visibility  *string    `json:"visibility,omitempty" validate:"omitempty,oneof=PUBLIC PRIVATE" doc:"Review visibility, defaults to PUBLIC"`
	ReviewDate  *time.Time `json:"review_date,omitempty" doc:"When the book was read"`
}

// CreateReviewInput wraps the create request for Huma.
type CreateReviewInput struct {
	Body CreateReviewRequest
}

// UpdateReviewRequest is the request body for partial review updates.
// Absent fields are left unchanged.
type UpdateReviewRequest struct {
	Title       *string    `json:"title,omitempty" validate:"omitempty,min=1,max=200" doc:"New title"`
	Author      *string    `json:"author,omitempty" validate:"omitempty,max=200" doc:"New author"`
	CoverURL    *string    `json:"cover_url,omitempty" validate:"omitempty,url" doc:"New cover image URL"`
	Body        *string    `json:"body,omitempty" validate:"omitempty,min=1,max=50000" doc:"New review text"`
	Recommended *bool      `json:"recommended,omitempty" doc:"New recommendation signal"`
	Genre       *string    `json:"genre,omitempty" validate:"omitempty,max=100" doc:"New genre label"`
	Visibility  *string    `json:"visibility,omitempty" validate:"omitempty,oneof=PUBLIC PRIVATE" doc:"New visibility"`
	ReviewDate  *time.Time `json:"review_date,omitempty" doc:"New review date"`
}

// UpdateReviewInput wraps the update request for Huma.
type UpdateReviewInput struct {
	ID   string `path:"id" doc:"Review ID"`
	Body UpdateReviewRequest
}

// ReviewIDInput identifies a review by path parameter.
type ReviewIDInput struct {
	ID string `path:"id" doc:"Review ID"`
}

// DeletedOutput reports the result of a delete.
type DeletedOutput struct {
	Body struct {
		Deleted bool `json:"deleted" doc:"Whether anything was deleted"`
	}
}

func toReviewResponse(review *domain.Review) ReviewResponse {
	return ReviewResponse{
		ID:            review.ID,
		Title:         review.Title,
		Author:        review.Author,
		CoverURL:      review.CoverURL,
		CoverBlurhash: review.CoverBlurhash,
		Body:          review.Body,
		Recommended:   review.Recommended,
		ReviewType:    string(review.ReviewType()),
		Genre:         review.Genre,
		GenreSlug:     review.GenreSlug,
		Visibility:    string(review.Visibility),
		ReviewDate:    review.ReviewDate,
		LikeCount:     review.LikeCount,
		CommentCount:  review.CommentCount,
		CreatedAt:     review.CreatedAt,
		UpdatedAt:     review.UpdatedAt,
	}
}

// === Handlers ===

func (s *Server) handleCreateReview(ctx context.Context, input *CreateReviewInput) (*ReviewOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	review, err := s.services.Reviews.Create(ctx, userID, service.CreateReviewRequest{
		Title:       input.Body.Title,
		Author:      input.Body.Author,
		CoverURL:    input.Body.CoverURL,
		Body:        input.Body.Body,
		Recommended: input.Body.Recommended,
		Genre:       input.Body.Genre,
		Visibility:  input.Body.Visibility,
		ReviewDate:  input.Body.ReviewDate,
	})
	if err != nil {
		return nil, huma.Error400BadRequest("Review creation failed", err)
	}

	return &ReviewOutput{Body: toReviewResponse(review)}, nil
}

func (s *Server) handleListMyReviews(ctx context.Context, _ *struct{}) (*ReviewListOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	reviews, err := s.services.Reviews.ListMine(ctx, userID)
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to list reviews", err)
	}

	out := &ReviewListOutput{}
	out.Body.Reviews = make([]ReviewResponse, 0, len(reviews))
	for _, review := range reviews {
		out.Body.Reviews = append(out.Body.Reviews, toReviewResponse(review))
	}
	return out, nil
}

func (s *Server) handleGetReview(ctx context.Context, input *ReviewIDInput) (*ReviewOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	review, err := s.services.Reviews.Get(ctx, userID, input.ID)
	if err != nil {
		return nil, huma.Error404NotFound("Review not found", err)
	}

	return &ReviewOutput{Body: toReviewResponse(review)}, nil
}

func (s *Server) handleUpdateReview(ctx context.Context, input *UpdateReviewInput) (*ReviewOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	review, err := s.services.Reviews.Update(ctx, userID, input.ID, service.UpdateReviewRequest{
		Title:       input.Body.Title,
		Author:      input.Body.Author,
		CoverURL:    input.Body.CoverURL,
		Body:        input.Body.Body,
		Recommended: input.Body.Recommended,
		Genre:       input.Body.Genre,
		Visibility:  input.Body.Visibility,
		ReviewDate:  input.Body.ReviewDate,
	})
	if err != nil {
		return nil, huma.Error400BadRequest("Review update failed", err)
	}

	return &ReviewOutput{Body: toReviewResponse(review)}, nil
}

func (s *Server) handleDeleteReview(ctx context.Context, input *ReviewIDInput) (*DeletedOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.services.Reviews.Delete(ctx, userID, input.ID); err != nil {
		return nil, huma.Error404NotFound("Review not found", err)
	}

	out := &DeletedOutput{}
	out.Body.Deleted = true
	return out, nil
}
