package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"github.com/shelfpostapp/shelfpost-server/internal/domain"
	"github.com/shelfpostapp/shelfpost-server/internal/store"
)

// reviewColumns is the ordered list of columns selected in review queries.
// Must match the scan order in scanReview.
const reviewColumns = `id, created_at, updated_at, owner_id, title, author,
	cover_url, cover_blurhash, body, recommended, genre, genre_slug,
	visibility, review_date, like_count, comment_count`

// scanReview scans a sql.Row (or sql.Rows via its Scan method) into a domain.Review.
func scanReview(scanner interface{ Scan(dest ...any) error }) (*domain.Review, error) {
	var r domain.Review

	var (
		createdAt     string
		updatedAt     string
		author        sql.NullString
		coverURL      sql.NullString
		coverBlurhash sql.NullString
		recommended   sql.NullInt64
		genre         sql.NullString
		genreSlug     sql.NullString
		visibility    string
		reviewDate    sql.NullString
	)

	err := scanner.Scan(
		&r.ID,
		&createdAt,
		&updatedAt,
		&r.OwnerID,
		&r.Title,
		&author,
		&coverURL,
		&coverBlurhash,
		&r.Body,
		&recommended,
		&genre,
		&genreSlug,
		&visibility,
		&reviewDate,
		&r.LikeCount,
		&r.CommentCount,
	)
	if err != nil {
		return nil, err
	}

	// Parse timestamps.
	r.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	r.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}
	r.ReviewDate, err = parseNullableTime(reviewDate)
	if err != nil {
		return nil, err
	}

	// Optional fields.
	r.Author = stringPtr(author)
	r.CoverURL = stringPtr(coverURL)
	r.CoverBlurhash = stringPtr(coverBlurhash)
	r.Recommended = boolPtr(recommended)
	r.Genre = stringPtr(genre)
	r.GenreSlug = stringPtr(genreSlug)

	r.Visibility = domain.Visibility(visibility)

	return &r, nil
}

// CreateReview inserts a new review with zeroed counters.
// Returns store.ErrAlreadyExists if the review ID already exists.
func (s *Store) CreateReview(ctx context.Context, review *domain.Review) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO reviews (
			id, created_at, updated_at, owner_id, title, author,
			cover_url, cover_blurhash, body, recommended, genre, genre_slug,
			visibility, review_date, like_count, comment_count
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		review.ID,
		formatTime(review.CreatedAt),
		formatTime(review.UpdatedAt),
		review.OwnerID,
		review.Title,
		nullableString(review.Author),
		nullableString(review.CoverURL),
		nullableString(review.CoverBlurhash),
		review.Body,
		nullableBoolInt(review.Recommended),
		nullableString(review.Genre),
		nullableString(review.GenreSlug),
		string(review.Visibility),
		nullTimeString(review.ReviewDate),
		review.LikeCount,
		review.CommentCount,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return store.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// GetReview retrieves a review by ID regardless of visibility.
// Owner-facing reads use this; public reads go through GetFeedItem.
// Returns store.ErrNotFound if the review does not exist.
func (s *Store) GetReview(ctx context.Context, id string) (*domain.Review, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+reviewColumns+` FROM reviews WHERE id = ?`, id)

	r, err := scanReview(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return r, nil
}

// UpdateReview performs a full row update on an existing review.
// The counters are deliberately not part of the update; only the engagement
// transactions in likes.go and comments.go may touch them.
// Returns store.ErrNotFound if the review does not exist.
func (s *Store) UpdateReview(ctx context.Context, review *domain.Review) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE reviews SET
			updated_at = ?,
			title = ?,
			author = ?,
			cover_url = ?,
			cover_blurhash = ?,
			body = ?,
			recommended = ?,
			genre = ?,
			genre_slug = ?,
			visibility = ?,
			review_date = ?
		WHERE id = ?`,
		formatTime(review.UpdatedAt),
		review.Title,
		nullableString(review.Author),
		nullableString(review.CoverURL),
		nullableString(review.CoverBlurhash),
		review.Body,
		nullableBoolInt(review.Recommended),
		nullableString(review.Genre),
		nullableString(review.GenreSlug),
		string(review.Visibility),
		nullTimeString(review.ReviewDate),
		review.ID,
	)
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

// DeleteReview hard-deletes a review. Likes and comments cascade away with it.
// Returns store.ErrNotFound if the review does not exist.
func (s *Store) DeleteReview(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM reviews WHERE id = ?`, id)
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

// ListReviewsByOwner returns all of a user's reviews, newest first,
// regardless of visibility.
func (s *Store) ListReviewsByOwner(ctx context.Context, ownerID string) ([]*domain.Review, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+reviewColumns+` FROM reviews
		 WHERE owner_id = ?
		 ORDER BY created_at DESC, id DESC`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []*domain.Review
	for rows.Next() {
		r, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return reviews, nil
}
