package middleware

import (
	"net/url"

	"github.com/gofiber/fiber/v2"

	"github.com/namishh/bubble/models"
	"github.com/namishh/bubble/session"
	"github.com/namishh/bubble/store"
)

const ContextUserKey = "currentUser"

// RequireAuth guards protected routes. Without a principal the client is
// redirected to the login page with the originally requested URL captured in
// the next parameter; a session whose user no longer resolves is destroyed
// and treated the same way.
func RequireAuth(sessions *session.Manager, users store.UserStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := sessions.CurrentUserID(c)
		if !ok {
			return redirectToLogin(c)
		}

		user, err := users.FindByID(userID)
		if err != nil {
			_ = sessions.Logout(c)
			return redirectToLogin(c)
		}

		c.Locals(ContextUserKey, user)
		return c.Next()
	}
}

// CurrentUser returns the principal RequireAuth stored for this request.
func CurrentUser(c *fiber.Ctx) (*models.User, bool) {
	user, ok := c.Locals(ContextUserKey).(*models.User)
	return user, ok
}

func redirectToLogin(c *fiber.Ctx) error {
	next := url.QueryEscape(c.OriginalURL())
	return c.Redirect("/login?next="+next, fiber.StatusFound)
}
