package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/shelfpostapp/shelfpost-server/internal/domain"
	"github.com/shelfpostapp/shelfpost-server/internal/store"
)

func (s *Server) registerFeedRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listFeed",
		Method:      http.MethodGet,
		Path:        "/api/v1/feed",
		Summary:     "List the public feed",
		Description: "Returns one page of publicly visible reviews. The newest and oldest sorts support cursor continuation; review_length and review_type return a single page.",
		Tags:        []string{"Feed"},
	}, s.handleListFeed)

	huma.Register(s.api, huma.Operation{
		OperationID: "getFeedItem",
		Method:      http.MethodGet,
		Path:        "/api/v1/feed/{id}",
		Summary:     "Get a feed item",
		Description: "Returns the full-body feed view of a single publicly visible review",
		Tags:        []string{"Feed"},
	}, s.handleGetFeedItem)

	huma.Register(s.api, huma.Operation{
		OperationID: "likeReview",
		Method:      http.MethodPost,
		Path:        "/api/v1/feed/{id}/like",
		Summary:     "Like a review",
		Description: "Records the authenticated user's like. Liking a review twice is a no-op.",
		Tags:        []string{"Engagement"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleLikeReview)

	huma.Register(s.api, huma.Operation{
		OperationID: "unlikeReview",
		Method:      http.MethodDelete,
		Path:        "/api/v1/feed/{id}/like",
		Summary:     "Unlike a review",
		Description: "Removes the authenticated user's like. Unliking a review that was never liked is a no-op.",
		Tags:        []string{"Engagement"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUnlikeReview)

	huma.Register(s.api, huma.Operation{
		OperationID: "getLikeStatus",
		Method:      http.MethodGet,
		Path:        "/api/v1/feed/{id}/liked",
		Summary:     "Get like status",
		Description: "Reports whether the authenticated user currently likes the review",
		Tags:        []string{"Engagement"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetLikeStatus)
}

// === DTOs ===

// FeedListInput contains the feed query parameters.
type FeedListInput struct {
	Sort       string `query:"sort" doc:"Sort mode: newest, oldest, review_length, or review_type. Defaults to newest."`
	Genre      string `query:"genre" doc:"Filter by normalized genre slug"`
	ReviewType string `query:"review_type" doc:"Filter by derived review type: RECOMMENDED, NOT_RECOMMENDED, or NEUTRAL"`
	Limit      int    `query:"limit" default:"20" doc:"Page size, capped at 50"`
	Cursor     string `query:"cursor" doc:"Continuation cursor from a previous page"`
}

// FeedPage is one page of the public feed.
type FeedPage struct {
	Items      []*domain.FeedItem `json:"items" doc:"Feed items with body previews"`
	NextCursor string             `json:"next_cursor,omitempty" doc:"Cursor for the next page, absent on the last page"`
	HasMore    bool               `json:"has_more" doc:"Whether more items exist"`
}

// FeedListOutput wraps a feed page for Huma.
type FeedListOutput struct {
	Body FeedPage
}

// FeedItemOutput wraps a single full-body feed item for Huma.
type FeedItemOutput struct {
	Body *domain.FeedItem
}

// LikeOutput reports the like state and count after a like or unlike.
type LikeOutput struct {
	Body struct {
		Liked     bool `json:"liked" doc:"Whether the user now likes the review"`
		LikeCount int  `json:"like_count" doc:"The review's like count"`
	}
}

// LikedOutput reports whether the user likes a review.
type LikedOutput struct {
	Body struct {
		Liked bool `json:"liked" doc:"Whether the user likes the review"`
	}
}

// === Handlers ===

func (s *Server) handleListFeed(ctx context.Context, input *FeedListInput) (*FeedListOutput, error) {
	result, err := s.services.Feed.List(ctx, store.FeedQuery{
		Sort:       domain.FeedSort(input.Sort),
		GenreSlug:  input.Genre,
		ReviewType: domain.ReviewType(input.ReviewType),
		Limit:      input.Limit,
		Cursor:     input.Cursor,
	})
	if err != nil {
		return nil, huma.Error400BadRequest("Feed query failed", err)
	}

	return &FeedListOutput{
		Body: FeedPage{
			Items:      result.Items,
			NextCursor: result.NextCursor,
			HasMore:    result.HasMore,
		},
	}, nil
}

func (s *Server) handleGetFeedItem(ctx context.Context, input *ReviewIDInput) (*FeedItemOutput, error) {
	item, err := s.services.Feed.Get(ctx, input.ID)
	if err != nil {
		return nil, huma.Error404NotFound("Review not found", err)
	}

	return &FeedItemOutput{Body: item}, nil
}

func (s *Server) handleLikeReview(ctx context.Context, input *ReviewIDInput) (*LikeOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	count, err := s.services.Engagement.Like(ctx, userID, input.ID)
	if err != nil {
		return nil, huma.Error404NotFound("Review not found", err)
	}

	out := &LikeOutput{}
	out.Body.Liked = true
	out.Body.LikeCount = count
	return out, nil
}

func (s *Server) handleUnlikeReview(ctx context.Context, input *ReviewIDInput) (*LikeOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	count, err := s.services.Engagement.Unlike(ctx, userID, input.ID)
	if err != nil {
		return nil, huma.Error404NotFound("Review not found", err)
	}

	out := &LikeOutput{}
	out.Body.Liked = false
	out.Body.LikeCount = count
	return out, nil
}

func (s *Server) handleGetLikeStatus(ctx context.Context, input *ReviewIDInput) (*LikedOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	liked, err := s.services.Engagement.Liked(ctx, userID, input.ID)
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to check like status", err)
	}

	out := &LikedOutput{}
	out.Body.Liked = liked
	return out, nil
}
