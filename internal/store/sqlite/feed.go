package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"github.com/shelfpostapp/shelfpost-server/internal/domain"
	"github.com/shelfpostapp/shelfpost-server/internal/store"
)

// feedItemColumns is the ordered list of columns selected in feed queries.
// Must match the scan order in scanFeedItem.
const feedItemColumns = `r.id, r.created_at, r.title, r.author, r.cover_url,
	r.cover_blurhash, r.body, r.recommended, r.genre, r.review_date,
	r.like_count, r.comment_count, u.id, u.handle`

// reviewTypeLabel derives the recommendation label in SQL, mirroring
// domain.DeriveReviewType. The label is computed per read, never stored.
const reviewTypeLabel = `CASE
	WHEN r.recommended IS NULL THEN 'NEUTRAL'
	WHEN r.recommended = 1 THEN 'RECOMMENDED'
	ELSE 'NOT_RECOMMENDED'
END`

// scanFeedItem scans a joined review+owner row into a domain.FeedItem.
// The full body is returned separately so callers decide between the
// list shape (preview only) and the detail shape (full body).
func scanFeedItem(scanner interface{ Scan(dest ...any) error }) (*domain.FeedItem, string, error) {
	var item domain.FeedItem

	var (
		createdAt     string
		author        sql.NullString
		coverURL      sql.NullString
		coverBlurhash sql.NullString
		body          string
		recommended   sql.NullInt64
		genre         sql.NullString
		reviewDate    sql.NullString
	)

	err := scanner.Scan(
		&item.ID,
		&createdAt,
		&item.Title,
		&author,
		&coverURL,
		&coverBlurhash,
		&body,
		&recommended,
		&genre,
		&reviewDate,
		&item.LikeCount,
		&item.CommentCount,
		&item.Owner.ID,
		&item.Owner.Handle,
	)
	if err != nil {
		return nil, "", err
	}

	item.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, "", err
	}
	item.ReviewDate, err = parseNullableTime(reviewDate)
	if err != nil {
		return nil, "", err
	}

	item.Author = stringPtr(author)
	item.CoverURL = stringPtr(coverURL)
	item.CoverBlurhash = stringPtr(coverBlurhash)
	item.Genre = stringPtr(genre)
	item.ReviewType = domain.DeriveReviewType(boolPtr(recommended))

	return &item, body, nil
}

// ListFeed returns one page of the public feed.
//
// The base set is every review joined to its owner and restricted by the
// visibility predicate; optional equality filters narrow by genre slug and
// derived review type. Sort modes newest and oldest use keyset pagination on
// (created_at, id); review_length and review_type return a first page only.
func (s *Store) ListFeed(ctx context.Context, q store.FeedQuery) (*store.PaginatedResult[*domain.FeedItem], error) {
	sort := q.Sort
	if sort == "" {
		sort = domain.FeedSortNewest
	}
	if !sort.Valid() {
		return nil, store.ErrInvalidInput.WithMessage("unknown sort mode: " + string(q.Sort))
	}
	if q.ReviewType != "" && !q.ReviewType.Valid() {
		return nil, store.ErrInvalidInput.WithMessage("unknown review type: " + string(q.ReviewType))
	}

	params := store.PaginationParams{Limit: q.Limit, Cursor: q.Cursor}
	if err := params.Validate(); err != nil {
		return nil, err
	}

	where := []string{feedEligible}
	var args []any

	if q.GenreSlug != "" {
		where = append(where, "r.genre_slug = ?")
		args = append(args, q.GenreSlug)
	}

	switch q.ReviewType {
	case domain.ReviewTypeRecommended:
		where = append(where, "r.recommended = 1")
	case domain.ReviewTypeNotRecommended:
		where = append(where, "r.recommended = 0")
	case domain.ReviewTypeNeutral:
		where = append(where, "r.recommended IS NULL")
	}

	// Keyset boundary: everything strictly after the cursor position in the
	// sort order, with the id as tie-breaker on equal keys.
	if params.Cursor != "" && sort.Paginated() {
		key, lastID, err := store.DecodeTimeCursor(params.Cursor)
		if err != nil {
			return nil, err
		}
		keyStr := formatTime(key)
		if sort == domain.FeedSortNewest {
			where = append(where, "(r.created_at < ? OR (r.created_at = ? AND r.id < ?))")
		} else {
			where = append(where, "(r.created_at > ? OR (r.created_at = ? AND r.id > ?))")
		}
		args = append(args, keyStr, keyStr, lastID)
	}

	var orderBy string
	switch sort {
	case domain.FeedSortNewest:
		orderBy = "r.created_at DESC, r.id DESC"
	case domain.FeedSortOldest:
		orderBy = "r.created_at ASC, r.id ASC"
	case domain.FeedSortReviewLength:
		orderBy = "LENGTH(r.body) DESC, r.id DESC"
	case domain.FeedSortReviewType:
		orderBy = reviewTypeLabel + " ASC, r.created_at DESC, r.id DESC"
	}

	query := `SELECT ` + feedItemColumns + `
		FROM reviews r
		JOIN users u ON u.id = r.owner_id
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY ` + orderBy + `
		LIMIT ?`
	// Fetch one extra row to learn whether another page exists.
	args = append(args, params.Limit+1)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*domain.FeedItem
	for rows.Next() {
		item, body, err := scanFeedItem(rows)
		if err != nil {
			return nil, err
		}
		item.Preview, item.Truncated = domain.PreviewBody(body)
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	hasMore := len(items) > params.Limit
	if hasMore {
		items = items[:params.Limit]
	}

	result := &store.PaginatedResult[*domain.FeedItem]{
		Items:   items,
		HasMore: hasMore,
	}

	// A continuation token is only meaningful for keyset-sorted modes, and
	// only when the page surfaced at least one row to anchor on.
	if sort.Paginated() && len(items) > 0 {
		last := items[len(items)-1]
		result.NextCursor = store.EncodeTimeCursor(last.CreatedAt, last.ID)
	}

	return result, nil
}

// GetFeedItem returns the full-body feed view of a single review.
// Returns store.ErrNotFound when the review does not exist or is not
// feed-eligible; the two cases are indistinguishable on purpose.
func (s *Store) GetFeedItem(ctx context.Context, reviewID string) (*domain.FeedItem, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+feedItemColumns+`
		FROM reviews r
		JOIN users u ON u.id = r.owner_id
		WHERE r.id = ? AND `+feedEligible,
		reviewID)

	item, body, err := scanFeedItem(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	item.Body = body
	return item, nil
}
