package domain

import "time"

// MaxCommentLength is the maximum comment body length after trimming.
const MaxCommentLength = 2000

// Like records that a user liked a review. A user may like a given review
// at most once; the pair is the identity.
type Like struct {
	UserID    string    `json:"user_id"`
	ReviewID  string    `json:"review_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Comment is a user comment on a review. Only its author may delete it.
type Comment struct {
	ID        string    `json:"id"`
	ReviewID  string    `json:"review_id"`
	UserID    string    `json:"user_id"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`

	// Author is the comment author's public identity, hydrated on reads.
	Author UserRef `json:"author"`
}
