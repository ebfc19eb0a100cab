package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/shelfpostapp/shelfpost-server/internal/domain"
	"github.com/shelfpostapp/shelfpost-server/internal/store"
)

func TestCreateAndGetUser(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	created := makeTestUser(t, s, "reader_one", domain.VisibilityPublic)

	got, err := s.GetUser(ctx, created.ID)
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if got.Handle != "reader_one" {
		t.Errorf("handle = %q, want %q", got.Handle, "reader_one")
	}
	if got.ProfileVisibility != domain.VisibilityPublic {
		t.Errorf("visibility = %q, want PUBLIC", got.ProfileVisibility)
	}
	if got.CreatedAt.IsZero() || got.UpdatedAt.IsZero() {
		t.Error("timestamps not persisted")
	}
}

func TestGetUserNotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetUser(context.Background(), "usr-missing")
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestCreateUserDuplicateHandle(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	makeTestUser(t, s, "Bookworm", domain.VisibilityPublic)

	// Uniqueness is case-insensitive.
	dup := &domain.User{
		Handle:            "bookworm",
		PasswordHash:      "x",
		ProfileVisibility: domain.VisibilityPublic,
	}
	dup.ID = "usr-dup"
	dup.InitTimestamps()

	err := s.CreateUser(ctx, dup)
	if !errors.Is(err, store.ErrAlreadyExists) {
		t.Errorf("err = %v, want ErrAlreadyExists", err)
	}
}

func TestGetUserByHandleCaseInsensitive(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	created := makeTestUser(t, s, "MixedCase", domain.VisibilityPublic)

	got, err := s.GetUserByHandle(ctx, "mixedcase")
	if err != nil {
		t.Fatalf("get by handle: %v", err)
	}
	if got.ID != created.ID {
		t.Errorf("id = %q, want %q", got.ID, created.ID)
	}
	// The stored handle keeps its original casing.
	if got.Handle != "MixedCase" {
		t.Errorf("handle = %q, want %q", got.Handle, "MixedCase")
	}
}

func TestUpdateUser(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := makeTestUser(t, s, "quiet_reader", domain.VisibilityPublic)

	u.DisplayName = "A Quiet Reader"
	u.ProfileVisibility = domain.VisibilityPrivate
	u.Touch()

	if err := s.UpdateUser(ctx, u); err != nil {
		t.Fatalf("update user: %v", err)
	}

	got, err := s.GetUser(ctx, u.ID)
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if got.DisplayName != "A Quiet Reader" {
		t.Errorf("display name = %q", got.DisplayName)
	}
	if got.ProfileVisibility != domain.VisibilityPrivate {
		t.Errorf("visibility = %q, want PRIVATE", got.ProfileVisibility)
	}
}

func TestUpdateUserNotFound(t *testing.T) {
	s := newTestStore(t)

	u := &domain.User{Handle: "ghost", ProfileVisibility: domain.VisibilityPublic}
	u.ID = "usr-ghost"
	u.InitTimestamps()

	err := s.UpdateUser(context.Background(), u)
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}
