package server

import (
	"bioainexus/internal/models"
	"bioainexus/internal/service"

	"github.com/gofiber/fiber/v2"
)

// AdminGetPosts handles GET /api/admin/posts. Unlike the public listing it
// includes unpublished rows.
func (s *Server) AdminGetPosts(c *fiber.Ctx) error {
	ctx := c.UserContext()
	page := parsePagination(c, 50)

	posts, err := s.postService.ListAll(ctx, page.Limit, page.Offset)
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	if posts == nil {
		posts = []*models.Post{}
	}
	return c.JSON(posts)
}

// AdminGetPost handles GET /api/admin/posts/:id
func (s *Server) AdminGetPost(c *fiber.Ctx) error {
	ctx := c.UserContext()

	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postService.GetForEditor(ctx, id)
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}
	return c.JSON(post)
}

// AdminCreatePost handles POST /api/admin/posts
func (s *Server) AdminCreatePost(c *fiber.Ctx) error {
	ctx := c.UserContext()
	authorID := c.Locals("authorID").(uint)

	var req struct {
		Title           string   `json:"title"`
		Excerpt         string   `json:"excerpt"`
		Content         string   `json:"content"`
		FeaturedImage   string   `json:"featured_image"`
		Tags            []string `json:"tags"`
		MetaTitle       string   `json:"meta_title"`
		MetaDescription string   `json:"meta_description"`
		Published       bool     `json:"published"`
		Featured        bool     `json:"featured"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.CreatePost(ctx, service.CreatePostInput{
		AuthorID:        authorID,
		Title:           req.Title,
		Excerpt:         req.Excerpt,
		Content:         req.Content,
		FeaturedImage:   req.FeaturedImage,
		Tags:            req.Tags,
		MetaTitle:       req.MetaTitle,
		MetaDescription: req.MetaDescription,
		Published:       req.Published,
		Featured:        req.Featured,
	})
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	return c.Status(fiber.StatusCreated).JSON(post)
}

// AdminSetPostFlag handles PUT /api/admin/posts/:id/flag
func (s *Server) AdminSetPostFlag(c *fiber.Ctx) error {
	ctx := c.UserContext()

	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Flag  string `json:"flag"`
		Value bool   `json:"value"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if err := s.postService.SetFlag(ctx, id, req.Flag, req.Value); err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	return c.JSON(fiber.Map{
		"id":    id,
		"flag":  req.Flag,
		"value": req.Value,
	})
}

// AdminPutSetting handles PUT /api/admin/settings/:key
func (s *Server) AdminPutSetting(c *fiber.Ctx) error {
	ctx := c.UserContext()
	key := c.Params("key")

	var req struct {
		Value string `json:"value"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.Value == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Value is required"))
	}

	setting := &models.Setting{Key: key, Value: req.Value}
	if err := s.settingRepo.Upsert(ctx, setting); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(setting)
}

// GetFeatureFlags handles GET /api/admin/feature-flags
func (s *Server) GetFeatureFlags(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"flags": s.featureFlags.Raw(),
	})
}
