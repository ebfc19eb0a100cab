package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelfpostapp/shelfpost-server/internal/store"
)

func TestFeedGenreFilterNormalizesLabel(t *testing.T) {
	st := newTestStore(t)
	user := registerTestUser(t, newTestAuthService(t, st), "ursula")

	reviews := NewReviewService(st, nil, testLogger())
	req := validCreateRequest()
	label := "Sci-Fi"
	req.Genre = &label
	_, err := reviews.Create(context.Background(), user.ID, req)
	require.NoError(t, err)

	feed := NewFeedService(st, testLogger())

	// Every form of the label resolves to the same stored slug.
	for _, filter := range []string{"sci-fi", "Sci-Fi", "sci fi", "SCI_FI"} {
		page, err := feed.List(context.Background(), store.FeedQuery{GenreSlug: filter})
		require.NoError(t, err, filter)
		assert.Len(t, page.Items, 1, filter)
	}

	// A label with nothing left after normalization matches no review.
	page, err := feed.List(context.Background(), store.FeedQuery{GenreSlug: "***"})
	require.NoError(t, err)
	assert.Empty(t, page.Items)
}
