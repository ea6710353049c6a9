package server

import (
	"errors"
	"strings"

	"bioainexus/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// GetCategories handles GET /api/categories
func (s *Server) GetCategories(c *fiber.Ctx) error {
	categories, err := s.categoryRepo.List(c.UserContext())
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if categories == nil {
		categories = []models.Category{}
	}
	return c.JSON(categories)
}

// GetSetting handles GET /api/settings/:key (public chrome like the footer
// blob) and the admin read of the same resource.
func (s *Server) GetSetting(c *fiber.Ctx) error {
	key := c.Params("key")

	setting, err := s.settingRepo.Get(c.UserContext(), key)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			notFound := models.NewNotFoundError("setting", key)
			return models.RespondWithError(c, fiber.StatusNotFound, notFound)
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return c.JSON(setting)
}

// CreateSubscriber handles POST /api/subscribers
func (s *Server) CreateSubscriber(c *fiber.Ctx) error {
	var req struct {
		Email string `json:"email"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	email := strings.TrimSpace(strings.ToLower(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("A valid email is required"))
	}

	sub := &models.Subscriber{Email: email}
	if err := s.subscriberRepo.Create(c.UserContext(), sub); err != nil {
		// A repeat signup is fine from the subscriber's point of view.
		if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(strings.ToLower(err.Error()), "unique") {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{"email": email, "subscribed": true})
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"email": email, "subscribed": true})
}
