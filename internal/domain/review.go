package domain

import (
	"time"
	"unicode/utf8"
)

// ReviewType is the label derived from a review's recommendation signal.
// It is never stored; deriving it per read keeps the stored boolean the
// single source of truth.
type ReviewType string

const (
	// ReviewTypeRecommended marks reviews with a positive recommendation.
	ReviewTypeRecommended ReviewType = "RECOMMENDED"
	// ReviewTypeNotRecommended marks reviews with a negative recommendation.
	ReviewTypeNotRecommended ReviewType = "NOT_RECOMMENDED"
	// ReviewTypeNeutral marks reviews where no recommendation was given.
	ReviewTypeNeutral ReviewType = "NEUTRAL"
)

// Valid reports whether t is a known review type label.
func (t ReviewType) Valid() bool {
	switch t {
	case ReviewTypeRecommended, ReviewTypeNotRecommended, ReviewTypeNeutral:
		return true
	}
	return false
}

// DeriveReviewType maps the optional recommendation signal to its label.
func DeriveReviewType(recommended *bool) ReviewType {
	switch {
	case recommended == nil:
		return ReviewTypeNeutral
	case *recommended:
		return ReviewTypeRecommended
	default:
		return ReviewTypeNotRecommended
	}
}

// PreviewLength is the maximum rune length of a review body in feed listings.
const PreviewLength = 280

// Review is a published book review. It is the unit of the public feed.
type Review struct {
	Entity
	OwnerID       string     `json:"owner_id"`
	Title         string     `json:"title"`
	Author        *string    `json:"author,omitempty"`
	CoverURL      *string    `json:"cover_url,omitempty"`
	CoverBlurhash *string    `json:"cover_blurhash,omitempty"`
	Body          string     `json:"body"`
	Recommended   *bool      `json:"recommended,omitempty"`
	Genre         *string    `json:"genre,omitempty"`
	GenreSlug     *string    `json:"genre_slug,omitempty"`
	Visibility    Visibility `json:"visibility"`
	ReviewDate    *time.Time `json:"review_date,omitempty"`
	LikeCount     int        `json:"like_count"`
	CommentCount  int        `json:"comment_count"`
}

// ReviewType returns the derived recommendation label.
func (r *Review) ReviewType() ReviewType {
	return DeriveReviewType(r.Recommended)
}

// IsPublic returns true if the review itself is marked public.
// Feed eligibility additionally requires the owner's profile to be public.
func (r *Review) IsPublic() bool {
	return r.Visibility == VisibilityPublic
}

// FeedEligible reports whether the review may appear in the public feed.
// Both the review's own visibility and the owner's profile visibility must
// be public. Every read and engagement path uses this same predicate.
func (r *Review) FeedEligible(owner *User) bool {
	return r.IsPublic() && owner != nil && owner.IsPublic()
}

// Preview returns the body truncated to PreviewLength runes, with a trailing
// ellipsis when truncated.
func (r *Review) Preview() string {
	p, _ := PreviewBody(r.Body)
	return p
}

// PreviewBody truncates a review body to PreviewLength runes for feed
// listings. The second return reports whether truncation happened.
func PreviewBody(body string) (string, bool) {
	if utf8.RuneCountInString(body) <= PreviewLength {
		return body, false
	}
	runes := []rune(body)
	return string(runes[:PreviewLength]) + "…", true
}
