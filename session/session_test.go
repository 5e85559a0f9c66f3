package session

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/namishh/bubble/config"
)

func testManager() *Manager {
	return NewManager(config.SessionConfig{
		TTL:         time.Hour,
		RememberTTL: 24 * time.Hour,
	})
}

func testApp(m *Manager) *fiber.App {
	app := fiber.New()

	app.Get("/login", func(c *fiber.Ctx) error {
		return m.Login(c, 7, c.QueryBool("remember"))
	})
	app.Get("/me", func(c *fiber.Ctx) error {
		id, ok := m.CurrentUserID(c)
		if !ok {
			return c.SendStatus(fiber.StatusUnauthorized)
		}
		return c.SendString(fmt.Sprint(id))
	})
	app.Get("/logout", func(c *fiber.Ctx) error {
		return m.Logout(c)
	})
	app.Get("/flash", func(c *fiber.Ctx) error {
		return m.Flash(c, "info", "hello")
	})
	app.Get("/flashes", func(c *fiber.Ctx) error {
		flashes := m.ConsumeFlashes(c)
		if len(flashes) == 0 {
			return c.SendString("none")
		}
		return c.SendString(flashes[0].Level + ":" + flashes[0].Message)
	})

	return app
}

func do(t *testing.T, app *fiber.App, target string, cookies []*http.Cookie) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestLoginLogoutRoundTrip(t *testing.T) {
	app := testApp(testManager())

	// Anonymous by default.
	resp := do(t, app, "/me", nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp = do(t, app, "/login", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	cookies := resp.Cookies()
	require.NotEmpty(t, cookies)

	resp = do(t, app, "/me", cookies)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = do(t, app, "/logout", cookies)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = do(t, app, "/me", cookies)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestLogoutWithoutSessionIsNoop(t *testing.T) {
	app := testApp(testManager())

	resp := do(t, app, "/logout", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestFlashesAreConsumedOnce(t *testing.T) {
	app := testApp(testManager())

	resp := do(t, app, "/flash", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	cookies := resp.Cookies()
	require.NotEmpty(t, cookies)

	resp = do(t, app, "/flashes", cookies)
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "info:hello", string(b))

	// Second read finds nothing.
	resp = do(t, app, "/flashes", cookies)
	b, err = io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "none", string(b))
}
