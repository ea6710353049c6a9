package server

import (
	"errors"

	"bioainexus/internal/models"
	"bioainexus/internal/service"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// GetPosts handles GET /api/posts?sort=recent|featured
func (s *Server) GetPosts(c *fiber.Ctx) error {
	ctx := c.UserContext()
	page := parsePagination(c, 20)

	posts, err := s.postService.ListPublished(ctx, service.ListPostsInput{
		Sort:      c.Query("sort"),
		Limit:     page.Limit,
		Offset:    page.Offset,
		VisitorID: s.engagementIdentity(c),
	})
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	if posts == nil {
		posts = []*models.Post{}
	}
	return c.JSON(posts)
}

// SearchPosts handles GET /api/posts/search?q=...
func (s *Server) SearchPosts(c *fiber.Ctx) error {
	ctx := c.UserContext()
	page := parsePagination(c, 10)

	posts, err := s.postService.SearchPosts(ctx, c.Query("q"), page.Limit, page.Offset, s.engagementIdentity(c))
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	if posts == nil {
		posts = []*models.Post{}
	}
	return c.JSON(posts)
}

// GetPost handles GET /api/posts/:slug
func (s *Server) GetPost(c *fiber.Ctx) error {
	ctx := c.UserContext()
	slug := c.Params("slug")

	post, err := s.postService.GetBySlug(ctx, slug, s.engagementIdentity(c))
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	return c.JSON(post)
}

// GetShareLinks handles GET /api/posts/:slug/share-links
func (s *Server) GetShareLinks(c *fiber.Ctx) error {
	ctx := c.UserContext()
	slug := c.Params("slug")

	post, err := s.postRepo.GetBySlug(ctx, slug, false, "")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			notFound := models.NewNotFoundError("post", slug)
			return models.RespondWithError(c, fiber.StatusNotFound, notFound)
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(service.BuildShareLinks(s.config.BaseURL, post.Slug, post.Title))
}
