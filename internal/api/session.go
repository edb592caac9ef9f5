package api

import (
	"time"

	"farm-advisor/internal/services"
	"github.com/gofiber/fiber/v2"
)

const (
	sessionCookie = "farm_session"
	sessionLocal  = "session_id"
)

// sessionMiddleware makes sure every request carries a live page session and
// stores its id in the request locals.
func sessionMiddleware(sessions *services.SessionStore, ttl time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Cookies(sessionCookie)
		state := sessions.GetOrCreate(id)

		if state.ID != id {
			c.Cookie(&fiber.Cookie{
				Name:     sessionCookie,
				Value:    state.ID,
				Path:     "/",
				MaxAge:   int(ttl.Seconds()),
				HTTPOnly: true,
				SameSite: fiber.CookieSameSiteLaxMode,
			})
		}

		c.Locals(sessionLocal, state.ID)
		return c.Next()
	}
}

func sessionID(c *fiber.Ctx) string {
	id, _ := c.Locals(sessionLocal).(string)
	return id
}
