package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/namishh/bubble/session"
)

// PageHandler serves the static pages.
type PageHandler struct {
	sessions *session.Manager
}

func NewPageHandler(sessions *session.Manager) *PageHandler {
	return &PageHandler{sessions: sessions}
}

// GET /
func (h *PageHandler) Index(c *fiber.Ctx) error {
	return render(c, h.sessions, "index", fiber.Map{})
}
