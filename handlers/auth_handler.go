package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/namishh/bubble/auth"
	"github.com/namishh/bubble/mailer"
	"github.com/namishh/bubble/session"
	"github.com/namishh/bubble/store"
)

const loginFailedMessage = "Login Unsuccessful. Please check email and password"

// AuthHandler orchestrates registration, login, logout and the password
// recovery flow.
type AuthHandler struct {
	users    store.UserStore
	sessions *session.Manager
	tokens   *auth.TokenCodec
	mail     mailer.Notifier
	logger   *zap.Logger
	baseURL  string
}

func NewAuthHandler(users store.UserStore, sessions *session.Manager, tokens *auth.TokenCodec, mail mailer.Notifier, logger *zap.Logger, baseURL string) *AuthHandler {
	return &AuthHandler{
		users:    users,
		sessions: sessions,
		tokens:   tokens,
		mail:     mail,
		logger:   logger,
		baseURL:  strings.TrimRight(baseURL, "/"),
	}
}

// GET /register
func (h *AuthHandler) RegisterPage(c *fiber.Ctx) error {
	return render(c, h.sessions, "register", fiber.Map{
		"Form":   RegisterForm{},
		"Errors": map[string]string{},
	})
}

// POST /register
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var form RegisterForm
	if err := c.BodyParser(&form); err != nil {
		return renderError(c, h.sessions, fiber.StatusBadRequest, "invalid form submission")
	}

	formErrors := form.Validate()
	if len(formErrors) == 0 {
		hash, err := auth.HashPassword(form.Password)
		if err != nil {
			h.logger.Error("hash password", zap.Error(err))
			return renderError(c, h.sessions, fiber.StatusInternalServerError, "something went wrong")
		}

		_, err = h.users.Create(form.Username, form.Email, hash)
		switch {
		case errors.Is(err, store.ErrDuplicateUsername):
			formErrors["username"] = "Username Already Taken"
		case errors.Is(err, store.ErrDuplicateEmail):
			formErrors["email"] = "Email Already Taken"
		case err != nil:
			h.logger.Error("create user", zap.Error(err))
			return renderError(c, h.sessions, fiber.StatusInternalServerError, "something went wrong")
		default:
			if err := h.sessions.Flash(c, "success", "Your account has been created! You are now able to log in"); err != nil {
				h.logger.Warn("queue flash", zap.Error(err))
			}
			return c.Redirect("/login", fiber.StatusFound)
		}
	}

	return render(c, h.sessions, "register", fiber.Map{
		"Form":   form,
		"Errors": formErrors,
	})
}

// GET /login
func (h *AuthHandler) LoginPage(c *fiber.Ctx) error {
	if _, ok := h.sessions.CurrentUserID(c); ok {
		if err := h.sessions.Flash(c, "info", "Already Logged In"); err != nil {
			h.logger.Warn("queue flash", zap.Error(err))
		}
		return c.Redirect("/your-bubbles", fiber.StatusFound)
	}

	return render(c, h.sessions, "login", fiber.Map{
		"Form":   LoginForm{},
		"Errors": map[string]string{},
		"Next":   c.Query("next"),
	})
}

// POST /login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	if _, ok := h.sessions.CurrentUserID(c); ok {
		if err := h.sessions.Flash(c, "info", "Already Logged In"); err != nil {
			h.logger.Warn("queue flash", zap.Error(err))
		}
		return c.Redirect("/your-bubbles", fiber.StatusFound)
	}

	var form LoginForm
	if err := c.BodyParser(&form); err != nil {
		return renderError(c, h.sessions, fiber.StatusBadRequest, "invalid form submission")
	}

	if formErrors := form.Validate(); len(formErrors) > 0 {
		return render(c, h.sessions, "login", fiber.Map{
			"Form":   form,
			"Errors": formErrors,
			"Next":   form.Next,
		})
	}

	// One generic message for unknown email and wrong password alike, so the
	// response cannot be used to enumerate accounts.
	user, err := h.users.FindByEmail(form.Email)
	if err != nil || !auth.CheckPassword(user.PasswordHash, form.Password) {
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			h.logger.Error("find user by email", zap.Error(err))
		}
		if err := h.sessions.Flash(c, "danger", loginFailedMessage); err != nil {
			h.logger.Warn("queue flash", zap.Error(err))
		}
		return render(c, h.sessions, "login", fiber.Map{
			"Form":   form,
			"Errors": map[string]string{},
			"Next":   form.Next,
		})
	}

	if err := h.sessions.Login(c, user.ID, form.Remember); err != nil {
		h.logger.Error("session login", zap.Error(err))
		return renderError(c, h.sessions, fiber.StatusInternalServerError, "something went wrong")
	}

	if err := h.sessions.Flash(c, "success", "Login Successful. Logged in as "+user.Username); err != nil {
		h.logger.Warn("queue flash", zap.Error(err))
	}

	return c.Redirect(safeRedirectTarget(form.Next), fiber.StatusFound)
}

// GET /logout — idempotent whether or not a principal was set.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.sessions.Logout(c); err != nil {
		h.logger.Warn("session logout", zap.Error(err))
	}
	return render(c, h.sessions, "logout", fiber.Map{})
}

// GET /reset/password
func (h *AuthHandler) ResetRequestPage(c *fiber.Ctx) error {
	return render(c, h.sessions, "pass_reset_query", fiber.Map{
		"Form":   ResetQueryForm{},
		"Errors": map[string]string{},
	})
}

// POST /reset/password
//
// The confirmation is identical whether or not the address belongs to an
// account; mail is only enqueued when one matched. Delivery is fire and
// forget, so a slow or failing relay cannot change the response either.
func (h *AuthHandler) ResetRequest(c *fiber.Ctx) error {
	var form ResetQueryForm
	if err := c.BodyParser(&form); err != nil {
		return renderError(c, h.sessions, fiber.StatusBadRequest, "invalid form submission")
	}

	if formErrors := form.Validate(); len(formErrors) > 0 {
		return render(c, h.sessions, "pass_reset_query", fiber.Map{
			"Form":   form,
			"Errors": formErrors,
		})
	}

	user, err := h.users.FindByEmail(form.Email)
	switch {
	case err == nil:
		token, issueErr := h.tokens.Issue(user.ID)
		if issueErr != nil {
			h.logger.Error("issue reset token", zap.Error(issueErr))
		} else if sendErr := h.mail.SendPasswordReset(user.Email, h.baseURL+"/reset/password/"+token); sendErr != nil {
			h.logger.Error("enqueue reset mail", zap.Error(sendErr))
		}
	case errors.Is(err, store.ErrNotFound):
		// No account; respond exactly as if there were one.
	default:
		h.logger.Error("find user by email", zap.Error(err))
	}

	if err := h.sessions.Flash(c, "info", "An email has been sent to the given email address"); err != nil {
		h.logger.Warn("queue flash", zap.Error(err))
	}
	return c.Redirect("/login", fiber.StatusFound)
}

// GET /reset/password/:token
func (h *AuthHandler) ResetTokenPage(c *fiber.Ctx) error {
	token := c.Params("token")
	if _, ok := h.verifyResetToken(c, token); !ok {
		return h.invalidTokenRedirect(c)
	}

	return render(c, h.sessions, "reset_pass", fiber.Map{
		"Token":  token,
		"Errors": map[string]string{},
	})
}

// POST /reset/password/:token
func (h *AuthHandler) ResetToken(c *fiber.Ctx) error {
	token := c.Params("token")
	userID, ok := h.verifyResetToken(c, token)
	if !ok {
		return h.invalidTokenRedirect(c)
	}

	var form PasswordUpdateForm
	if err := c.BodyParser(&form); err != nil {
		return renderError(c, h.sessions, fiber.StatusBadRequest, "invalid form submission")
	}

	if formErrors := form.Validate(); len(formErrors) > 0 {
		return render(c, h.sessions, "reset_pass", fiber.Map{
			"Token":  token,
			"Errors": formErrors,
		})
	}

	hash, err := auth.HashPassword(form.Password)
	if err != nil {
		h.logger.Error("hash password", zap.Error(err))
		return renderError(c, h.sessions, fiber.StatusInternalServerError, "something went wrong")
	}

	if err := h.users.SetPassword(userID, hash); err != nil {
		h.logger.Error("set password", zap.Error(err))
		return renderError(c, h.sessions, fiber.StatusInternalServerError, "something went wrong")
	}

	// Never auto-login here; the user proves the new password at /login.
	if err := h.sessions.Flash(c, "success", "Your password has been updated! You are now able to log in"); err != nil {
		h.logger.Warn("queue flash", zap.Error(err))
	}
	return c.Redirect("/login", fiber.StatusFound)
}

// verifyResetToken checks signature, expiry and that the subject still
// resolves to a user. The failure reason is logged, never shown.
func (h *AuthHandler) verifyResetToken(c *fiber.Ctx, token string) (uint, bool) {
	userID, err := h.tokens.Verify(token)
	if err != nil {
		h.logger.Info("reset token rejected", zap.Error(err))
		return 0, false
	}

	if _, err := h.users.FindByID(userID); err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			h.logger.Error("find user by id", zap.Error(err))
		}
		return 0, false
	}

	return userID, true
}

func (h *AuthHandler) invalidTokenRedirect(c *fiber.Ctx) error {
	if err := h.sessions.Flash(c, "warning", "Invalid/Expired Token"); err != nil {
		h.logger.Warn("queue flash", zap.Error(err))
	}
	return c.Redirect("/reset/password", fiber.StatusFound)
}

// safeRedirectTarget keeps post-login redirects on this site. Anything that
// is not a plain local path falls back to the home view.
func safeRedirectTarget(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") {
		return "/your-bubbles"
	}
	return next
}
