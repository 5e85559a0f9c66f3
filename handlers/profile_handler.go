package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/namishh/bubble/middleware"
	"github.com/namishh/bubble/session"
	"github.com/namishh/bubble/store"
)

// ProfileHandler serves the view/update form for the principal's own
// account details.
type ProfileHandler struct {
	users    store.UserStore
	sessions *session.Manager
	logger   *zap.Logger
}

func NewProfileHandler(users store.UserStore, sessions *session.Manager, logger *zap.Logger) *ProfileHandler {
	return &ProfileHandler{users: users, sessions: sessions, logger: logger}
}

// GET /profile — pre-filled with the current values.
func (h *ProfileHandler) Page(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return renderError(c, h.sessions, fiber.StatusUnauthorized, "unauthorized")
	}

	return render(c, h.sessions, "profile", fiber.Map{
		"Form":   ProfileForm{Username: user.Username, Email: user.Email},
		"Errors": map[string]string{},
	})
}

// POST /profile — keeping your own username or email is not a conflict.
func (h *ProfileHandler) Update(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return renderError(c, h.sessions, fiber.StatusUnauthorized, "unauthorized")
	}

	var form ProfileForm
	if err := c.BodyParser(&form); err != nil {
		return renderError(c, h.sessions, fiber.StatusBadRequest, "invalid form submission")
	}

	formErrors := form.Validate()
	if len(formErrors) == 0 {
		user.Username = form.Username
		user.Email = form.Email

		err := h.users.Update(user)
		switch {
		case errors.Is(err, store.ErrDuplicateUsername):
			formErrors["username"] = "Username Already Taken"
		case errors.Is(err, store.ErrDuplicateEmail):
			formErrors["email"] = "Email Already Taken"
		case err != nil:
			h.logger.Error("update profile", zap.Error(err))
			return renderError(c, h.sessions, fiber.StatusInternalServerError, "something went wrong")
		default:
			if err := h.sessions.Flash(c, "success", "Your account has been updated"); err != nil {
				h.logger.Warn("queue flash", zap.Error(err))
			}
			return c.Redirect("/profile", fiber.StatusFound)
		}
	}

	return render(c, h.sessions, "profile", fiber.Map{
		"Form":   form,
		"Errors": formErrors,
	})
}
