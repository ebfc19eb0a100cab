package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/shelfpostapp/shelfpost-server/internal/domain"
)

func (s *Server) registerCommentRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listComments",
		Method:      http.MethodGet,
		Path:        "/api/v1/feed/{id}/comments",
		Summary:     "List comments",
		Description: "Returns a review's comments, oldest first. Comments on reviews that are not publicly visible are not returned.",
		Tags:        []string{"Engagement"},
	}, s.handleListComments)

	huma.Register(s.api, huma.Operation{
		OperationID: "addComment",
		Method:      http.MethodPost,
		Path:        "/api/v1/feed/{id}/comments",
		Summary:     "Add comment",
		Description: "Posts a comment on a publicly visible review",
		Tags:        []string{"Engagement"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleAddComment)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteComment",
		Method:      http.MethodDelete,
		Path:        "/api/v1/comments/{id}",
		Summary:     "Delete comment",
		Description: "Deletes the authenticated user's own comment. Deleting an already-deleted comment is a no-op.",
		Tags:        []string{"Engagement"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleDeleteComment)
}

// === DTOs ===

// CommentResponse contains a comment with its author's public identity.
type CommentResponse struct {
	ID        string         `json:"id" doc:"Comment ID"`
	ReviewID  string         `json:"review_id" doc:"The review this comment belongs to"`
	Author    domain.UserRef `json:"author" doc:"Comment author"`
	Body      string         `json:"body" doc:"Comment text"`
	CreatedAt time.Time      `json:"created_at" doc:"Creation timestamp"`
}

// CommentOutput wraps a single comment for Huma.
type CommentOutput struct {
	Body CommentResponse
}

// CommentListOutput wraps a comment list for Huma.
type CommentListOutput struct {
	Body struct {
		Comments []CommentResponse `json:"comments" doc:"The review's comments, oldest first"`
	}
}

// AddCommentRequest is the request body for posting a comment.
type AddCommentRequest struct {
	Body string `json:"body" validate:"required,max=2000" doc:"Comment text, at most 2000 characters after trimming"`
}

// AddCommentInput wraps the comment request for Huma.
type AddCommentInput struct {
	ID   string `path:"id" doc:"Review ID"`
	Body AddCommentRequest
}

// CommentIDInput identifies a comment by path parameter.
type CommentIDInput struct {
	ID string `path:"id" doc:"Comment ID"`
}

func toCommentResponse(comment *domain.Comment) CommentResponse {
	return CommentResponse{
		ID:        comment.ID,
		ReviewID:  comment.ReviewID,
		Author:    comment.Author,
		Body:      comment.Body,
		CreatedAt: comment.CreatedAt,
	}
}

// === Handlers ===

func (s *Server) handleListComments(ctx context.Context, input *ReviewIDInput) (*CommentListOutput, error) {
	comments, err := s.services.Engagement.Comments(ctx, input.ID)
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to list comments", err)
	}

	out := &CommentListOutput{}
	out.Body.Comments = make([]CommentResponse, 0, len(comments))
	for _, comment := range comments {
		out.Body.Comments = append(out.Body.Comments, toCommentResponse(comment))
	}
	return out, nil
}

func (s *Server) handleAddComment(ctx context.Context, input *AddCommentInput) (*CommentOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	comment, err := s.services.Engagement.AddComment(ctx, input.ID, userID, input.Body.Body)
	if err != nil {
		return nil, huma.Error400BadRequest("Comment failed", err)
	}

	return &CommentOutput{Body: toCommentResponse(comment)}, nil
}

func (s *Server) handleDeleteComment(ctx context.Context, input *CommentIDInput) (*DeletedOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	deleted, err := s.services.Engagement.DeleteComment(ctx, input.ID, userID)
	if err != nil {
		return nil, huma.Error403Forbidden("Cannot delete comment", err)
	}

	out := &DeletedOutput{}
	out.Body.Deleted = deleted
	return out, nil
}
