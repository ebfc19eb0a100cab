package domain

import "time"

// FeedSort selects the ordering of the public feed.
type FeedSort string

const (
	// FeedSortNewest orders by created_at descending. The default.
	FeedSortNewest FeedSort = "newest"
	// FeedSortOldest orders by created_at ascending.
	FeedSortOldest FeedSort = "oldest"
	// FeedSortReviewLength orders by body length descending. First page only.
	FeedSortReviewLength FeedSort = "review_length"
	// FeedSortReviewType orders by derived label ascending, newest first within
	// a label. First page only.
	FeedSortReviewType FeedSort = "review_type"
)

// Valid reports whether s is a known sort mode.
func (s FeedSort) Valid() bool {
	switch s {
	case FeedSortNewest, FeedSortOldest, FeedSortReviewLength, FeedSortReviewType:
		return true
	}
	return false
}

// Paginated reports whether the sort mode supports cursor continuation.
// Only the created_at orderings form a keyset the cursor can seek on.
func (s FeedSort) Paginated() bool {
	return s == FeedSortNewest || s == FeedSortOldest
}

// FeedItem is the public shape of a review as surfaced by the feed.
// List reads carry Preview and withhold Body; the detail read carries Body.
type FeedItem struct {
	ID            string     `json:"id"`
	Owner         UserRef    `json:"owner"`
	Title         string     `json:"title"`
	Author        *string    `json:"author,omitempty"`
	CoverURL      *string    `json:"cover_url,omitempty"`
	CoverBlurhash *string    `json:"cover_blurhash,omitempty"`
	Preview       string     `json:"preview,omitempty"`
	Body          string     `json:"body,omitempty"`
	Truncated     bool       `json:"truncated,omitempty"`
	ReviewType    ReviewType `json:"review_type"`
	Genre         *string    `json:"genre,omitempty"`
	ReviewDate    *time.Time `json:"review_date,omitempty"`
	LikeCount     int        `json:"like_count"`
	CommentCount  int        `json:"comment_count"`
	CreatedAt     time.Time  `json:"created_at"`
}
