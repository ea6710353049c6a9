package middleware

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// VisitorCookieName is the cookie carrying the anonymous visitor identity
// used for likes and bookmarks.
const VisitorCookieName = "bn_visitor"

const visitorCookieMaxAge = 365 * 24 * time.Hour

// VisitorIdentity ensures every request carries a stable per-visitor UUID.
// A missing or malformed cookie is replaced with a fresh identity; the value
// is exposed via c.Locals("visitorID") for handlers and the rate limiter.
func VisitorIdentity() fiber.Handler {
	return func(c *fiber.Ctx) error {
		vid := c.Cookies(VisitorCookieName)
		if _, err := uuid.Parse(vid); err != nil {
			vid = uuid.NewString()
			c.Cookie(&fiber.Cookie{
				Name:     VisitorCookieName,
				Value:    vid,
				Expires:  time.Now().Add(visitorCookieMaxAge),
				HTTPOnly: true,
				SameSite: fiber.CookieSameSiteLaxMode,
				Path:     "/",
			})
		}

		c.Locals("visitorID", vid)
		// Sync to the user context so the context-aware logger sees it.
		c.SetUserContext(context.WithValue(c.UserContext(), VisitorIDKey, vid))
		return c.Next()
	}
}
