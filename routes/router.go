package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/namishh/bubble/handlers"
	"github.com/namishh/bubble/middleware"
	"github.com/namishh/bubble/session"
	"github.com/namishh/bubble/store"
)

// Handlers bundles everything Register wires into the app.
type Handlers struct {
	Pages   *handlers.PageHandler
	Auth    *handlers.AuthHandler
	Profile *handlers.ProfileHandler
	Posts   *handlers.PostHandler

	Sessions *session.Manager
	Users    store.UserStore
}

func Register(app *fiber.App, h Handlers) {
	requireAuth := middleware.RequireAuth(h.Sessions, h.Users)

	app.Get("/", h.Pages.Index)

	// Account
	app.Get("/register", h.Auth.RegisterPage)
	app.Post("/register", h.Auth.Register)
	app.Get("/login", h.Auth.LoginPage)
	app.Post("/login", h.Auth.Login)
	app.Get("/logout", h.Auth.Logout)

	// Password recovery
	app.Get("/reset/password", h.Auth.ResetRequestPage)
	app.Post("/reset/password", h.Auth.ResetRequest)
	app.Get("/reset/password/:token", h.Auth.ResetTokenPage)
	app.Post("/reset/password/:token", h.Auth.ResetToken)

	// Everything below requires a principal
	app.Get("/your-bubbles", requireAuth, h.Posts.Home)
	app.Get("/profile", requireAuth, h.Profile.Page)
	app.Post("/profile", requireAuth, h.Profile.Update)
	app.Get("/post/new", requireAuth, h.Posts.NewPage)
	app.Post("/post/new", requireAuth, h.Posts.Create)
	app.Get("/post/view/:id", requireAuth, h.Posts.View)
	app.Get("/post/view/:id/update", requireAuth, h.Posts.UpdatePage)
	app.Post("/post/view/:id/update", requireAuth, h.Posts.Update)
	app.Get("/post/view/:id/delete", requireAuth, h.Posts.DeletePage)
	app.Post("/post/view/:id/delete", requireAuth, h.Posts.DeletePage)
	app.Get("/post/view/:id/deleted", requireAuth, h.Posts.Deleted)
}
