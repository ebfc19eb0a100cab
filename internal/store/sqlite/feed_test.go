package sqlite

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shelfpostapp/shelfpost-server/internal/domain"
	"github.com/shelfpostapp/shelfpost-server/internal/store"
)

// at pins a review's creation time so ordering in feed tests is deterministic.
func at(ts time.Time) func(*domain.Review) {
	return func(r *domain.Review) {
		r.CreatedAt = ts
		r.UpdatedAt = ts
	}
}

func feedIDs(items []*domain.FeedItem) []string {
	ids := make([]string, len(items))
	for i, item := range items {
		ids[i] = item.ID
	}
	return ids
}

func TestListFeedVisibilitySymmetry(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	public := makeTestUser(t, s, "open_shelf", domain.VisibilityPublic)
	private := makeTestUser(t, s, "closed_shelf", domain.VisibilityPrivate)

	visible := makeTestReview(t, s, public)
	hiddenReview := makeTestReview(t, s, public, func(r *domain.Review) {
		r.Visibility = domain.VisibilityPrivate
	})
	hiddenOwner := makeTestReview(t, s, private)

	result, err := s.ListFeed(ctx, store.FeedQuery{Limit: 10})
	if err != nil {
		t.Fatalf("list feed: %v", err)
	}
	if len(result.Items) != 1 || result.Items[0].ID != visible.ID {
		t.Errorf("feed = %v, want only %s", feedIDs(result.Items), visible.ID)
	}

	// Both private flavors are indistinguishable from absence on detail reads.
	for _, id := range []string{hiddenReview.ID, hiddenOwner.ID, "rev-missing"} {
		if _, err := s.GetFeedItem(ctx, id); !errors.Is(err, store.ErrNotFound) {
			t.Errorf("get feed item %s: %v, want ErrNotFound", id, err)
		}
	}

	if _, err := s.GetFeedItem(ctx, visible.ID); err != nil {
		t.Errorf("get visible feed item: %v", err)
	}
}

func TestListFeedPaginationNewest(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	owner := makeTestUser(t, s, "serial_reviewer", domain.VisibilityPublic)
	base := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)

	var want []string
	for i := 0; i < 5; i++ {
		r := makeTestReview(t, s, owner, at(base.Add(time.Duration(i)*time.Minute)))
		// Newest first, so later creations come earlier in the feed.
		want = append([]string{r.ID}, want...)
	}

	var got []string
	cursor := ""
	for page := 0; ; page++ {
		if page > 10 {
			t.Fatal("pagination did not terminate")
		}
		result, err := s.ListFeed(ctx, store.FeedQuery{Limit: 2, Cursor: cursor})
		if err != nil {
			t.Fatalf("page %d: %v", page, err)
		}
		if len(result.Items) == 0 {
			if result.NextCursor != "" {
				t.Error("empty page still carries a cursor")
			}
			break
		}
		got = append(got, feedIDs(result.Items)...)
		if result.NextCursor == "" {
			break
		}
		cursor = result.NextCursor
	}

	if len(got) != len(want) {
		t.Fatalf("collected %d items, want %d", len(got), len(want))
	}
	seen := map[string]bool{}
	for i, id := range got {
		if seen[id] {
			t.Errorf("duplicate item %s across pages", id)
		}
		seen[id] = true
		if id != want[i] {
			t.Errorf("position %d: got %s, want %s", i, id, want[i])
		}
	}
}

func TestListFeedTieBreakOnEqualTimestamps(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	owner := makeTestUser(t, s, "batch_importer", domain.VisibilityPublic)
	same := time.Date(2026, 2, 2, 10, 0, 0, 0, time.UTC)

	for _, revID := range []string{"rev-aaa", "rev-bbb", "rev-ccc"} {
		makeTestReview(t, s, owner, at(same), func(r *domain.Review) {
			r.ID = revID
		})
	}

	newest, err := s.ListFeed(ctx, store.FeedQuery{Sort: domain.FeedSortNewest, Limit: 10})
	if err != nil {
		t.Fatalf("list newest: %v", err)
	}
	if got := feedIDs(newest.Items); !equalStrings(got, []string{"rev-ccc", "rev-bbb", "rev-aaa"}) {
		t.Errorf("newest order = %v", got)
	}

	oldest, err := s.ListFeed(ctx, store.FeedQuery{Sort: domain.FeedSortOldest, Limit: 10})
	if err != nil {
		t.Fatalf("list oldest: %v", err)
	}
	if got := feedIDs(oldest.Items); !equalStrings(got, []string{"rev-aaa", "rev-bbb", "rev-ccc"}) {
		t.Errorf("oldest order = %v", got)
	}

	// Paginating across the tied group must not skip or repeat rows.
	first, err := s.ListFeed(ctx, store.FeedQuery{Sort: domain.FeedSortNewest, Limit: 2})
	if err != nil {
		t.Fatalf("first page: %v", err)
	}
	second, err := s.ListFeed(ctx, store.FeedQuery{
		Sort: domain.FeedSortNewest, Limit: 2, Cursor: first.NextCursor,
	})
	if err != nil {
		t.Fatalf("second page: %v", err)
	}
	all := append(feedIDs(first.Items), feedIDs(second.Items)...)
	if !equalStrings(all, []string{"rev-ccc", "rev-bbb", "rev-aaa"}) {
		t.Errorf("paged order = %v", all)
	}
}

func TestListFeedSortReviewLength(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	owner := makeTestUser(t, s, "wordy", domain.VisibilityPublic)
	makeTestReview(t, s, owner, func(r *domain.Review) { r.Body = "Fine." })
	long := makeTestReview(t, s, owner, func(r *domain.Review) {
		r.Body = strings.Repeat("An elaborate opinion. ", 20)
	})
	medium := makeTestReview(t, s, owner, func(r *domain.Review) {
		r.Body = "A solid middle-length take on the book."
	})

	result, err := s.ListFeed(ctx, store.FeedQuery{Sort: domain.FeedSortReviewLength, Limit: 2})
	if err != nil {
		t.Fatalf("list feed: %v", err)
	}
	if got := feedIDs(result.Items); !equalStrings(got, []string{long.ID, medium.ID}) {
		t.Errorf("order = %v, want [%s, %s]", got, long.ID, medium.ID)
	}
	// First page only: more rows exist but no continuation token is offered.
	if !result.HasMore {
		t.Error("HasMore = false, want true")
	}
	if result.NextCursor != "" {
		t.Errorf("NextCursor = %q, want empty for review_length", result.NextCursor)
	}
}

func TestListFeedSortReviewType(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	owner := makeTestUser(t, s, "labeler", domain.VisibilityPublic)
	base := time.Date(2026, 2, 3, 8, 0, 0, 0, time.UTC)

	rec := makeTestReview(t, s, owner, at(base), func(r *domain.Review) {
		r.Recommended = boolp(true)
	})
	notRec := makeTestReview(t, s, owner, at(base.Add(time.Minute)), func(r *domain.Review) {
		r.Recommended = boolp(false)
	})
	neutralOld := makeTestReview(t, s, owner, at(base.Add(2*time.Minute)))
	neutralNew := makeTestReview(t, s, owner, at(base.Add(3*time.Minute)))

	result, err := s.ListFeed(ctx, store.FeedQuery{Sort: domain.FeedSortReviewType, Limit: 10})
	if err != nil {
		t.Fatalf("list feed: %v", err)
	}
	// Labels ascend (NEUTRAL, NOT_RECOMMENDED, RECOMMENDED); within a label,
	// newest first.
	want := []string{neutralNew.ID, neutralOld.ID, notRec.ID, rec.ID}
	if got := feedIDs(result.Items); !equalStrings(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
	if result.NextCursor != "" {
		t.Errorf("NextCursor = %q, want empty for review_type", result.NextCursor)
	}
}

func TestListFeedFilters(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	owner := makeTestUser(t, s, "curator", domain.VisibilityPublic)

	recSF := makeTestReview(t, s, owner, func(r *domain.Review) {
		r.Recommended = boolp(true)
		r.GenreSlug = strp("science-fiction")
	})
	notRecSF := makeTestReview(t, s, owner, func(r *domain.Review) {
		r.Recommended = boolp(false)
		r.GenreSlug = strp("science-fiction")
	})
	neutralPoetry := makeTestReview(t, s, owner, func(r *domain.Review) {
		r.GenreSlug = strp("poetry")
	})

	cases := []struct {
		name  string
		query store.FeedQuery
		want  []string
	}{
		{"recommended only", store.FeedQuery{ReviewType: domain.ReviewTypeRecommended, Limit: 10}, []string{recSF.ID}},
		{"not recommended only", store.FeedQuery{ReviewType: domain.ReviewTypeNotRecommended, Limit: 10}, []string{notRecSF.ID}},
		{"neutral matches unset signal", store.FeedQuery{ReviewType: domain.ReviewTypeNeutral, Limit: 10}, []string{neutralPoetry.ID}},
		{"genre slug", store.FeedQuery{GenreSlug: "poetry", Limit: 10}, []string{neutralPoetry.ID}},
		{"genre and type combined", store.FeedQuery{GenreSlug: "science-fiction", ReviewType: domain.ReviewTypeRecommended, Limit: 10}, []string{recSF.ID}},
		{"no match", store.FeedQuery{GenreSlug: "cookbooks", Limit: 10}, nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := s.ListFeed(ctx, tc.query)
			if err != nil {
				t.Fatalf("list feed: %v", err)
			}
			if got := feedIDs(result.Items); !equalStrings(got, tc.want) {
				t.Errorf("items = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestListFeedPreviewTruncation(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	owner := makeTestUser(t, s, "long_winded", domain.VisibilityPublic)
	longBody := strings.Repeat("ё", domain.PreviewLength+100)
	long := makeTestReview(t, s, owner, func(r *domain.Review) { r.Body = longBody })

	result, err := s.ListFeed(ctx, store.FeedQuery{Limit: 10})
	if err != nil {
		t.Fatalf("list feed: %v", err)
	}
	item := result.Items[0]
	if !item.Truncated {
		t.Error("Truncated = false, want true")
	}
	if item.Body != "" {
		t.Error("list item carries full body")
	}
	wantPreview := strings.Repeat("ё", domain.PreviewLength) + "…"
	if item.Preview != wantPreview {
		t.Errorf("preview = %d runes, want %d plus ellipsis", len([]rune(item.Preview)), domain.PreviewLength+1)
	}

	detail, err := s.GetFeedItem(ctx, long.ID)
	if err != nil {
		t.Fatalf("get feed item: %v", err)
	}
	if detail.Body != longBody {
		t.Error("detail read did not return the full body")
	}
	if detail.Truncated {
		t.Error("detail read flagged as truncated")
	}
}

func TestListFeedInvalidInputs(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	owner := makeTestUser(t, s, "edge_case", domain.VisibilityPublic)
	makeTestReview(t, s, owner)

	if _, err := s.ListFeed(ctx, store.FeedQuery{Sort: "trending", Limit: 10}); !isStoreCode(err, 400) {
		t.Errorf("unknown sort: %v, want 400", err)
	}
	if _, err := s.ListFeed(ctx, store.FeedQuery{ReviewType: "MAYBE", Limit: 10}); !isStoreCode(err, 400) {
		t.Errorf("unknown review type: %v, want 400", err)
	}
	if _, err := s.ListFeed(ctx, store.FeedQuery{Limit: 0}); !isStoreCode(err, 400) {
		t.Errorf("zero limit: %v, want 400", err)
	}
	if _, err := s.ListFeed(ctx, store.FeedQuery{Limit: -5}); !isStoreCode(err, 400) {
		t.Errorf("negative limit: %v, want 400", err)
	}
	if _, err := s.ListFeed(ctx, store.FeedQuery{Limit: 2, Cursor: "not base64!!"}); !isStoreCode(err, 400) {
		t.Errorf("garbage cursor: %v, want 400", err)
	}

	// Oversized limits are capped, not rejected.
	if _, err := s.ListFeed(ctx, store.FeedQuery{Limit: store.MaxFeedLimit * 2}); err != nil {
		t.Errorf("oversized limit: %v", err)
	}

	// Non-paginated modes never look at the cursor.
	if _, err := s.ListFeed(ctx, store.FeedQuery{
		Sort: domain.FeedSortReviewLength, Limit: 2, Cursor: "not base64!!",
	}); err != nil {
		t.Errorf("cursor on review_length: %v, want ignored", err)
	}
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func isStoreCode(err error, code int) bool {
	var se *store.Error
	return errors.As(err, &se) && se.Code == code
}
