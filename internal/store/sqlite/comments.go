package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shelfpostapp/shelfpost-server/internal/domain"
	"github.com/shelfpostapp/shelfpost-server/internal/id"
	"github.com/shelfpostapp/shelfpost-server/internal/store"
)

// ListComments returns a review's comments, oldest first, each hydrated with
// its author's public identity. A review that is absent or not feed-eligible
// yields an empty list, not an error, so the response shape never reveals
// which of the two it was.
func (s *Store) ListComments(ctx context.Context, reviewID string) ([]*domain.Comment, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT c.id, c.review_id, c.user_id, c.body, c.created_at,
		       a.id, a.handle
		FROM comments c
		JOIN users a ON a.id = c.user_id
		JOIN reviews r ON r.id = c.review_id
		JOIN users u ON u.id = r.owner_id
		WHERE c.review_id = ? AND `+feedEligible+`
		ORDER BY c.created_at ASC, c.id ASC`, reviewID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := []*domain.Comment{}
	for rows.Next() {
		var c domain.Comment
		var createdAt string
		if err := rows.Scan(
			&c.ID, &c.ReviewID, &c.UserID, &c.Body, &createdAt,
			&c.Author.ID, &c.Author.Handle,
		); err != nil {
			return nil, err
		}
		c.CreatedAt, err = parseTime(createdAt)
		if err != nil {
			return nil, err
		}
		comments = append(comments, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return comments, nil
}

// AddComment validates and inserts a comment, bumping the review's comment
// count in the same transaction.
//
// The body is trimmed before validation: an empty result is rejected with
// store.ErrEmptyBody, and more than domain.MaxCommentLength runes with
// store.ErrTooLong. Returns store.ErrNotFound when the review is absent or
// not feed-eligible.
func (s *Store) AddComment(ctx context.Context, reviewID, userID, body string) (*domain.Comment, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, store.ErrEmptyBody
	}
	if utf8.RuneCountInString(body) > domain.MaxCommentLength {
		return nil, store.ErrTooLong
	}

	commentID, err := id.Generate("cmt")
	if err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	eligible, err := feedEligibleReview(ctx, tx, reviewID)
	if err != nil {
		return nil, err
	}
	if !eligible {
		return nil, store.ErrNotFound
	}

	now := time.Now()
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO comments (id, review_id, user_id, body, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		commentID, reviewID, userID, body, formatTime(now)); err != nil {
		return nil, err
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE reviews SET comment_count = comment_count + 1 WHERE id = ?`,
		reviewID); err != nil {
		return nil, err
	}

	comment := &domain.Comment{
		ID:        commentID,
		ReviewID:  reviewID,
		UserID:    userID,
		Body:      body,
		CreatedAt: now.UTC(),
	}
	if err := tx.QueryRowContext(ctx,
		`SELECT id, handle FROM users WHERE id = ?`, userID).
		Scan(&comment.Author.ID, &comment.Author.Handle); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return comment, nil
}

// DeleteComment removes a comment if the requesting user authored it.
//
// Returns (false, nil) when the comment does not exist, which keeps repeat
// deletes idempotent. Returns store.ErrNotOwner when it exists but belongs
// to someone else. The delete and the counter decrement (clamped at zero)
// commit together.
func (s *Store) DeleteComment(ctx context.Context, commentID, requestingUserID string) (bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	var authorID, reviewID string
	err = tx.QueryRowContext(ctx,
		`SELECT user_id, review_id FROM comments WHERE id = ?`, commentID).
		Scan(&authorID, &reviewID)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if authorID != requestingUserID {
		return false, store.ErrNotOwner
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM comments WHERE id = ?`, commentID); err != nil {
		return false, err
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE reviews SET comment_count = MAX(0, comment_count - 1) WHERE id = ?`,
		reviewID); err != nil {
		return false, err
	}

	if err := tx.Commit(); err != nil {
		return false, err
	}
	return true, nil
}
