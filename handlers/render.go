package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/namishh/bubble/middleware"
	"github.com/namishh/bubble/session"
)

// render executes the named view with queued flashes and the current
// principal merged into the bind data.
func render(c *fiber.Ctx, sessions *session.Manager, name string, bind fiber.Map) error {
	if bind == nil {
		bind = fiber.Map{}
	}

	bind["Flashes"] = sessions.ConsumeFlashes(c)
	if _, ok := bind["User"]; !ok {
		if user, found := middleware.CurrentUser(c); found {
			bind["User"] = user
		}
	}

	return c.Render(name, bind)
}

// renderError writes a status-appropriate error page. The message never
// discloses whether a resource exists for someone else.
func renderError(c *fiber.Ctx, sessions *session.Manager, status int, message string) error {
	return render(c.Status(status), sessions, "error", fiber.Map{
		"Status":  status,
		"Message": message,
	})
}
