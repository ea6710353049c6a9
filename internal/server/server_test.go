package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"bioainexus/internal/config"
	"bioainexus/internal/middleware"
	"bioainexus/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:    "test-secret-which-is-long-enough-123456",
		Port:         "8460",
		Env:          "test",
		BaseURL:      "https://bioainexus.example",
		SiteName:     "BioAi Nexus",
		SiteTagline:  "Exploring the intersection of biotechnology and artificial intelligence",
		FeatureFlags: "view_tracking=on,comment_captcha=on",
	}
}

func setupHandlerTest(t *testing.T) (*Server, *fiber.App, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Author{},
		&models.Post{},
		&models.Comment{},
		&models.Like{},
		&models.Bookmark{},
		&models.Subscriber{},
		&models.Setting{},
		&models.Category{},
	); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}

	s, err := NewServerWithDeps(testConfig(), db, nil)
	require.NoError(t, err)

	app := fiber.New()
	app.Use(middleware.VisitorIdentity())
	s.SetupRoutes(app)

	return s, app, db
}

func createAuthor(t *testing.T, db *gorm.DB, email string, isAdmin bool) *models.Author {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	author := &models.Author{
		Email:    email,
		FullName: "Test Author",
		Password: string(hash),
		IsAdmin:  isAdmin,
	}
	require.NoError(t, db.Create(author).Error)
	return author
}

func createPost(t *testing.T, db *gorm.DB, authorID uint, title, slug string, published bool) *models.Post {
	t.Helper()
	post := &models.Post{
		Title:     title,
		Slug:      slug,
		Excerpt:   "excerpt for " + title,
		Content:   "content for " + title,
		AuthorID:  authorID,
		Published: published,
	}
	require.NoError(t, db.Create(post).Error)
	return post
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}, headers map[string]string) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	_ = resp.Body.Close()
	return resp, raw
}

func adminToken(t *testing.T, s *Server, db *gorm.DB) string {
	t.Helper()
	admin := createAuthor(t, db, "admin@bioainexus.example", true)
	token, err := s.generateToken(admin)
	require.NoError(t, err)
	return token
}
