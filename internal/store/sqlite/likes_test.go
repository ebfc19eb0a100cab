package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/shelfpostapp/shelfpost-server/internal/domain"
	"github.com/shelfpostapp/shelfpost-server/internal/store"
)

func TestSetLikeIdempotent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	owner := makeTestUser(t, s, "writer", domain.VisibilityPublic)
	fan := makeTestUser(t, s, "fan", domain.VisibilityPublic)
	r := makeTestReview(t, s, owner)

	count, err := s.SetLike(ctx, fan.ID, r.ID)
	if err != nil {
		t.Fatalf("set like: %v", err)
	}
	if count != 1 {
		t.Errorf("count = %d, want 1", count)
	}

	// Liking again is a no-op that reports the unchanged count.
	count, err = s.SetLike(ctx, fan.ID, r.ID)
	if err != nil {
		t.Fatalf("repeat set like: %v", err)
	}
	if count != 1 {
		t.Errorf("count after repeat = %d, want 1", count)
	}

	liked, err := s.HasLiked(ctx, fan.ID, r.ID)
	if err != nil {
		t.Fatalf("has liked: %v", err)
	}
	if !liked {
		t.Error("HasLiked = false after like")
	}
}

func TestUnsetLikeIdempotentWithZeroFloor(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	owner := makeTestUser(t, s, "writer", domain.VisibilityPublic)
	fan := makeTestUser(t, s, "fan", domain.VisibilityPublic)
	r := makeTestReview(t, s, owner)

	if _, err := s.SetLike(ctx, fan.ID, r.ID); err != nil {
		t.Fatalf("set like: %v", err)
	}

	count, err := s.UnsetLike(ctx, fan.ID, r.ID)
	if err != nil {
		t.Fatalf("unset like: %v", err)
	}
	if count != 0 {
		t.Errorf("count = %d, want 0", count)
	}

	// Removing an absent like changes nothing and never goes negative.
	count, err = s.UnsetLike(ctx, fan.ID, r.ID)
	if err != nil {
		t.Fatalf("repeat unset like: %v", err)
	}
	if count != 0 {
		t.Errorf("count after repeat = %d, want 0", count)
	}

	liked, err := s.HasLiked(ctx, fan.ID, r.ID)
	if err != nil {
		t.Fatalf("has liked: %v", err)
	}
	if liked {
		t.Error("HasLiked = true after unlike")
	}
}

func TestLikeCountMatchesRows(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	owner := makeTestUser(t, s, "writer", domain.VisibilityPublic)
	r := makeTestReview(t, s, owner)

	fans := []*domain.User{
		makeTestUser(t, s, "fan_a", domain.VisibilityPublic),
		makeTestUser(t, s, "fan_b", domain.VisibilityPublic),
		makeTestUser(t, s, "fan_c", domain.VisibilityPublic),
	}
	for _, fan := range fans {
		if _, err := s.SetLike(ctx, fan.ID, r.ID); err != nil {
			t.Fatalf("set like %s: %v", fan.Handle, err)
		}
	}
	if _, err := s.UnsetLike(ctx, fans[1].ID, r.ID); err != nil {
		t.Fatalf("unset like: %v", err)
	}

	got, err := s.GetReview(ctx, r.ID)
	if err != nil {
		t.Fatalf("get review: %v", err)
	}
	if got.LikeCount != 2 {
		t.Errorf("like count = %d, want 2", got.LikeCount)
	}

	item, err := s.GetFeedItem(ctx, r.ID)
	if err != nil {
		t.Fatalf("get feed item: %v", err)
	}
	if item.LikeCount != 2 {
		t.Errorf("feed like count = %d, want 2", item.LikeCount)
	}
}

func TestLikeIneligibleReview(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	publicOwner := makeTestUser(t, s, "open", domain.VisibilityPublic)
	privateOwner := makeTestUser(t, s, "closed", domain.VisibilityPrivate)
	fan := makeTestUser(t, s, "fan", domain.VisibilityPublic)

	privateReview := makeTestReview(t, s, publicOwner, func(r *domain.Review) {
		r.Visibility = domain.VisibilityPrivate
	})
	privateProfile := makeTestReview(t, s, privateOwner)

	for _, revID := range []string{privateReview.ID, privateProfile.ID, "rev-missing"} {
		if _, err := s.SetLike(ctx, fan.ID, revID); !errors.Is(err, store.ErrNotFound) {
			t.Errorf("set like %s: %v, want ErrNotFound", revID, err)
		}
		if _, err := s.UnsetLike(ctx, fan.ID, revID); !errors.Is(err, store.ErrNotFound) {
			t.Errorf("unset like %s: %v, want ErrNotFound", revID, err)
		}
	}
}
