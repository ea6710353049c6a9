package server

import (
	"bioainexus/internal/models"

	"github.com/gofiber/fiber/v2"
)

// ToggleLike handles POST /api/posts/:slug/like
func (s *Server) ToggleLike(c *fiber.Ctx) error {
	ctx := c.UserContext()

	identity := s.engagementIdentity(c)
	if identity == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Missing visitor identity"))
	}

	state, err := s.engagementService.ToggleLike(ctx, c.Params("slug"), identity)
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}
	return c.JSON(state)
}

// ToggleBookmark handles POST /api/posts/:slug/bookmark
func (s *Server) ToggleBookmark(c *fiber.Ctx) error {
	ctx := c.UserContext()

	identity := s.engagementIdentity(c)
	if identity == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Missing visitor identity"))
	}

	state, err := s.engagementService.ToggleBookmark(ctx, c.Params("slug"), identity)
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}
	return c.JSON(state)
}
