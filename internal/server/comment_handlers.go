package server

import (
	"bioainexus/internal/models"
	"bioainexus/internal/observability"
	"bioainexus/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetCaptcha handles GET /api/captcha
func (s *Server) GetCaptcha(c *fiber.Ctx) error {
	challenge, err := s.captchaService.Issue(c.UserContext())
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}
	observability.CaptchaChallenges.Inc()
	return c.JSON(challenge)
}

// GetComments handles GET /api/posts/:slug/comments
func (s *Server) GetComments(c *fiber.Ctx) error {
	ctx := c.UserContext()
	slug := c.Params("slug")

	comments, err := s.commentService.ListForPost(ctx, slug)
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	if comments == nil {
		comments = []*models.Comment{}
	}
	return c.JSON(comments)
}

// CreateComment handles POST /api/posts/:slug/comments
func (s *Server) CreateComment(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req struct {
		AuthorName    string `json:"author_name"`
		Content       string `json:"content"`
		CaptchaID     string `json:"captcha_id"`
		CaptchaAnswer string `json:"captcha_answer"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	comment, challenge, err := s.commentService.Create(ctx, service.CreateCommentInput{
		Slug:          c.Params("slug"),
		AuthorName:    req.AuthorName,
		Content:       req.Content,
		CaptchaID:     req.CaptchaID,
		CaptchaAnswer: req.CaptchaAnswer,
		VisitorID:     visitorID(c),
	})
	if err != nil {
		if challenge != nil {
			// Captcha mismatch: hand the client a fresh challenge to retry with.
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error":   err.Error(),
				"code":    "VALIDATION_ERROR",
				"captcha": challenge,
			})
		}
		return models.RespondWithError(c, statusForError(err), err)
	}

	return c.Status(fiber.StatusCreated).JSON(comment)
}
