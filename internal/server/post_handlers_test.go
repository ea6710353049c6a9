package server

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"bioainexus/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetPosts(t *testing.T) {
	_, app, db := setupHandlerTest(t)
	author := createAuthor(t, db, "posts@bioainexus.example", false)

	old := createPost(t, db, author.ID, "Old News", "old-news", true)
	require.NoError(t, db.Model(old).UpdateColumn("created_at", time.Now().Add(-48*time.Hour)).Error)
	createPost(t, db, author.ID, "Fresh News", "fresh-news", true)
	popular := createPost(t, db, author.ID, "Popular Piece", "popular-piece", true)
	require.NoError(t, db.Model(popular).UpdateColumns(map[string]interface{}{
		"views":      900,
		"created_at": time.Now().Add(-24 * time.Hour),
	}).Error)
	createPost(t, db, author.ID, "Hidden Draft", "hidden-draft", false)

	t.Run("recent excludes drafts, newest first", func(t *testing.T) {
		resp, raw := doJSON(t, app, http.MethodGet, "/api/posts", nil, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var posts []models.Post
		require.NoError(t, json.Unmarshal(raw, &posts))
		require.Len(t, posts, 3)
		assert.Equal(t, "fresh-news", posts[0].Slug)
		assert.Equal(t, "old-news", posts[2].Slug)
	})

	t.Run("featured orders by views", func(t *testing.T) {
		resp, raw := doJSON(t, app, http.MethodGet, "/api/posts?sort=featured", nil, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var posts []models.Post
		require.NoError(t, json.Unmarshal(raw, &posts))
		require.Len(t, posts, 3)
		assert.Equal(t, "popular-piece", posts[0].Slug)
	})

	t.Run("invalid sort rejected", func(t *testing.T) {
		resp, _ := doJSON(t, app, http.MethodGet, "/api/posts?sort=trending", nil, nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("empty result is 200 with empty array", func(t *testing.T) {
		_, app2, _ := setupHandlerTest(t)
		resp, raw := doJSON(t, app2, http.MethodGet, "/api/posts", nil, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.JSONEq(t, "[]", string(raw))
	})
}

func TestSearchPosts(t *testing.T) {
	_, app, db := setupHandlerTest(t)
	author := createAuthor(t, db, "search@bioainexus.example", false)
	createPost(t, db, author.ID, "Machine Learning in Genomics", "ml-in-genomics", true)
	createPost(t, db, author.ID, "Machine Vision Draft", "machine-vision-draft", false)

	t.Run("short query rejected", func(t *testing.T) {
		resp, raw := doJSON(t, app, http.MethodGet, "/api/posts/search?q=ab", nil, nil)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Contains(t, string(raw), "VALIDATION_ERROR")
	})

	t.Run("case insensitive, published only", func(t *testing.T) {
		resp, raw := doJSON(t, app, http.MethodGet, "/api/posts/search?q=MACHINE", nil, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var posts []models.Post
		require.NoError(t, json.Unmarshal(raw, &posts))
		require.Len(t, posts, 1)
		assert.Equal(t, "ml-in-genomics", posts[0].Slug)
	})
}

func TestGetPost(t *testing.T) {
	_, app, db := setupHandlerTest(t)
	author := createAuthor(t, db, "detail@bioainexus.example", false)
	post := createPost(t, db, author.ID, "Detail Piece", "detail-piece", true)
	createPost(t, db, author.ID, "Secret Draft", "secret-draft", false)

	t.Run("found with author and counters", func(t *testing.T) {
		resp, raw := doJSON(t, app, http.MethodGet, "/api/posts/detail-piece", nil, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var got models.Post
		require.NoError(t, json.Unmarshal(raw, &got))
		assert.Equal(t, post.ID, got.ID)
		assert.Equal(t, "Test Author", got.Author.FullName)

		// The read itself is the view.
		var reloaded models.Post
		require.NoError(t, db.First(&reloaded, post.ID).Error)
		assert.Equal(t, 1, reloaded.Views)
	})

	t.Run("draft is 404", func(t *testing.T) {
		resp, raw := doJSON(t, app, http.MethodGet, "/api/posts/secret-draft", nil, nil)
		require.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Contains(t, string(raw), "NOT_FOUND")
	})

	t.Run("unknown slug is 404", func(t *testing.T) {
		resp, _ := doJSON(t, app, http.MethodGet, "/api/posts/nope", nil, nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestGetShareLinks(t *testing.T) {
	_, app, db := setupHandlerTest(t)
	author := createAuthor(t, db, "share@bioainexus.example", false)
	createPost(t, db, author.ID, "Shareable Piece", "shareable-piece", true)

	resp, raw := doJSON(t, app, http.MethodGet, "/api/posts/shareable-piece/share-links", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var links struct {
		Facebook string `json:"facebook"`
		Twitter  string `json:"twitter"`
		LinkedIn string `json:"linkedin"`
		Copy     string `json:"copy"`
		Text     string `json:"text"`
	}
	require.NoError(t, json.Unmarshal(raw, &links))
	assert.Equal(t, "https://bioainexus.example/post/shareable-piece", links.Copy)
	assert.Equal(t, "Check out this post: Shareable Piece", links.Text)
	assert.Contains(t, links.Facebook, "facebook.com/sharer")
	assert.Contains(t, links.Twitter, "twitter.com/intent/tweet")
	assert.Contains(t, links.LinkedIn, "linkedin.com/sharing")

	resp, _ = doJSON(t, app, http.MethodGet, "/api/posts/missing/share-links", nil, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
