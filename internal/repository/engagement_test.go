package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngagementRepository_Like(t *testing.T) {
	db := setupTestDB(t)
	repo := NewEngagementRepository(db)
	ctx := context.Background()

	author := seedAuthor(t, db)
	post := seedPost(t, db, author.ID, "Likeable Post", "likeable-post", true)

	liked, err := repo.IsLiked(ctx, post.ID, "visitor-1")
	require.NoError(t, err)
	assert.False(t, liked)

	require.NoError(t, repo.Like(ctx, post.ID, "visitor-1"))

	liked, err = repo.IsLiked(ctx, post.ID, "visitor-1")
	require.NoError(t, err)
	assert.True(t, liked)

	// A repeat like is absorbed rather than erroring or double counting.
	require.NoError(t, repo.Like(ctx, post.ID, "visitor-1"))

	count, err := repo.LikeCount(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	require.NoError(t, repo.Like(ctx, post.ID, "visitor-2"))
	count, err = repo.LikeCount(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestEngagementRepository_Unlike(t *testing.T) {
	db := setupTestDB(t)
	repo := NewEngagementRepository(db)
	ctx := context.Background()

	author := seedAuthor(t, db)
	post := seedPost(t, db, author.ID, "Unlikeable Post", "unlikeable-post", true)

	require.NoError(t, repo.Like(ctx, post.ID, "visitor-1"))
	require.NoError(t, repo.Unlike(ctx, post.ID, "visitor-1"))

	liked, err := repo.IsLiked(ctx, post.ID, "visitor-1")
	require.NoError(t, err)
	assert.False(t, liked)

	// Removing a like that does not exist is a no-op.
	require.NoError(t, repo.Unlike(ctx, post.ID, "visitor-1"))
}

func TestEngagementRepository_Bookmark(t *testing.T) {
	db := setupTestDB(t)
	repo := NewEngagementRepository(db)
	ctx := context.Background()

	author := seedAuthor(t, db)
	post := seedPost(t, db, author.ID, "Bookmarkable Post", "bookmarkable-post", true)

	marked, err := repo.IsBookmarked(ctx, post.ID, "visitor-1")
	require.NoError(t, err)
	assert.False(t, marked)

	require.NoError(t, repo.Bookmark(ctx, post.ID, "visitor-1"))
	require.NoError(t, repo.Bookmark(ctx, post.ID, "visitor-1"))

	marked, err = repo.IsBookmarked(ctx, post.ID, "visitor-1")
	require.NoError(t, err)
	assert.True(t, marked)

	require.NoError(t, repo.Unbookmark(ctx, post.ID, "visitor-1"))
	marked, err = repo.IsBookmarked(ctx, post.ID, "visitor-1")
	require.NoError(t, err)
	assert.False(t, marked)
}

func TestEngagementRepository_LikesAreScopedPerPost(t *testing.T) {
	db := setupTestDB(t)
	repo := NewEngagementRepository(db)
	ctx := context.Background()

	author := seedAuthor(t, db)
	first := seedPost(t, db, author.ID, "First Post", "first-post", true)
	second := seedPost(t, db, author.ID, "Second Post", "second-post", true)

	require.NoError(t, repo.Like(ctx, first.ID, "visitor-1"))

	liked, err := repo.IsLiked(ctx, second.ID, "visitor-1")
	require.NoError(t, err)
	assert.False(t, liked)
}
