package server

import (
	"bioainexus/internal/models"
	"bioainexus/internal/observability"
	"bioainexus/internal/service"

	"github.com/gofiber/fiber/v2"
)

// Sitemap handles GET /sitemap.xml
func (s *Server) Sitemap(c *fiber.Ctx) error {
	posts, err := s.postService.ListPublishedSummaries(c.UserContext())
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	body, err := service.BuildSitemap(s.config.BaseURL, posts)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	observability.SitemapRenders.Inc()
	c.Set(fiber.HeaderContentType, "application/xml; charset=utf-8")
	c.Set(fiber.HeaderCacheControl, "public, max-age=3600")
	return c.SendString(body)
}

// RSSFeed handles GET /rss.xml
func (s *Server) RSSFeed(c *fiber.Ctx) error {
	posts, err := s.postService.ListPublishedSummaries(c.UserContext())
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	body, err := service.BuildRSSFeed(
		s.config.BaseURL, s.config.SiteName, s.config.SiteTagline, posts)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	c.Set(fiber.HeaderContentType, "application/rss+xml; charset=utf-8")
	c.Set(fiber.HeaderCacheControl, "public, max-age=3600")
	return c.SendString(body)
}
