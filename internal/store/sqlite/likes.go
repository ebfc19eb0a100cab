package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/shelfpostapp/shelfpost-server/internal/store"
)

// feedEligibleReview checks inside a transaction that a review exists and is
// feed-eligible. Engagement writes must not reveal anything about reviews the
// predicate excludes, so callers translate a miss to store.ErrNotFound.
func feedEligibleReview(ctx context.Context, tx *sql.Tx, reviewID string) (bool, error) {
	var exists int
	err := tx.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM reviews r
			JOIN users u ON u.id = r.owner_id
			WHERE r.id = ? AND `+feedEligible+`
		)`, reviewID).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists == 1, nil
}

// likeCount re-reads the denormalized counter inside the same transaction so
// the value returned to the caller reflects this write.
func likeCount(ctx context.Context, tx *sql.Tx, reviewID string) (int, error) {
	var count int
	err := tx.QueryRowContext(ctx,
		`SELECT like_count FROM reviews WHERE id = ?`, reviewID).Scan(&count)
	return count, err
}

// HasLiked reports whether the user currently likes the review.
func (s *Store) HasLiked(ctx context.Context, userID, reviewID string) (bool, error) {
	var exists int
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM likes WHERE user_id = ? AND review_id = ?
		)`, userID, reviewID).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists == 1, nil
}

// SetLike records a like and returns the review's like count.
//
// The operation is idempotent: liking an already-liked review changes nothing
// and returns the current count. The like row and the counter update commit
// in one transaction. Returns store.ErrNotFound when the review is absent or
// not feed-eligible.
func (s *Store) SetLike(ctx context.Context, userID, reviewID string) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	eligible, err := feedEligibleReview(ctx, tx, reviewID)
	if err != nil {
		return 0, err
	}
	if !eligible {
		return 0, store.ErrNotFound
	}

	result, err := tx.ExecContext(ctx, `
		INSERT OR IGNORE INTO likes (user_id, review_id, created_at)
		VALUES (?, ?, ?)`,
		userID, reviewID, formatTime(time.Now()))
	if err != nil {
		return 0, err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}
	// Only a new like row moves the counter; a repeat is a no-op.
	if n == 1 {
		if _, err := tx.ExecContext(ctx, `
			UPDATE reviews SET like_count = like_count + 1 WHERE id = ?`,
			reviewID); err != nil {
			return 0, err
		}
	}

	count, err := likeCount(ctx, tx, reviewID)
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return count, nil
}

// UnsetLike removes a like and returns the review's like count.
//
// Idempotent like SetLike: removing an absent like changes nothing. The
// counter is clamped at zero so a stray decrement can never drive it
// negative. Returns store.ErrNotFound when the review is absent or not
// feed-eligible.
func (s *Store) UnsetLike(ctx context.Context, userID, reviewID string) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	eligible, err := feedEligibleReview(ctx, tx, reviewID)
	if err != nil {
		return 0, err
	}
	if !eligible {
		return 0, store.ErrNotFound
	}

	result, err := tx.ExecContext(ctx,
		`DELETE FROM likes WHERE user_id = ? AND review_id = ?`,
		userID, reviewID)
	if err != nil {
		return 0, err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}
	if n == 1 {
		if _, err := tx.ExecContext(ctx, `
			UPDATE reviews SET like_count = MAX(0, like_count - 1) WHERE id = ?`,
			reviewID); err != nil {
			return 0, err
		}
	}

	count, err := likeCount(ctx, tx, reviewID)
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return count, nil
}
