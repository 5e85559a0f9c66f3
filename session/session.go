package session

import (
	"encoding/json"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/google/uuid"

	"github.com/namishh/bubble/config"
)

const (
	userIDKey  = "user_id"
	flashesKey = "flashes"
)

// Flash is a one-shot notice rendered on the next page and then discarded.
type Flash struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

// Manager tracks which user, if any, is authenticated for the current
// client. A session holds at most one principal.
type Manager struct {
	store *session.Store
	cfg   config.SessionConfig
}

func NewManager(cfg config.SessionConfig) *Manager {
	store := session.New(session.Config{
		Expiration:     cfg.TTL,
		KeyLookup:      "cookie:bubble_session",
		CookieHTTPOnly: true,
		CookieSameSite: "Lax",
		KeyGenerator:   uuid.NewString,
	})

	return &Manager{store: store, cfg: cfg}
}

// Login marks userID as the authenticated principal. With remember set the
// session outlives the default TTL so the client stays logged in across
// browser restarts.
func (m *Manager) Login(c *fiber.Ctx, userID uint, remember bool) error {
	sess, err := m.store.Get(c)
	if err != nil {
		return fmt.Errorf("get session: %w", err)
	}

	sess.Set(userIDKey, userID)
	if remember {
		sess.SetExpiry(m.cfg.RememberTTL)
	}

	if err := sess.Save(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Logout clears the principal. Calling it without a principal is a no-op.
func (m *Manager) Logout(c *fiber.Ctx) error {
	sess, err := m.store.Get(c)
	if err != nil {
		return fmt.Errorf("get session: %w", err)
	}
	if err := sess.Destroy(); err != nil {
		return fmt.Errorf("destroy session: %w", err)
	}
	return nil
}

// CurrentUserID returns the authenticated principal's id, if any.
func (m *Manager) CurrentUserID(c *fiber.Ctx) (uint, bool) {
	sess, err := m.store.Get(c)
	if err != nil {
		return 0, false
	}

	id, ok := sess.Get(userIDKey).(uint)
	if !ok || id == 0 {
		return 0, false
	}
	return id, true
}

// Flash queues a notice for the next rendered page.
func (m *Manager) Flash(c *fiber.Ctx, level, message string) error {
	sess, err := m.store.Get(c)
	if err != nil {
		return fmt.Errorf("get session: %w", err)
	}

	flashes := decodeFlashes(sess.Get(flashesKey))
	flashes = append(flashes, Flash{Level: level, Message: message})

	encoded, err := json.Marshal(flashes)
	if err != nil {
		return fmt.Errorf("encode flashes: %w", err)
	}

	sess.Set(flashesKey, string(encoded))
	if err := sess.Save(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// ConsumeFlashes returns all queued notices and clears them.
func (m *Manager) ConsumeFlashes(c *fiber.Ctx) []Flash {
	sess, err := m.store.Get(c)
	if err != nil {
		return nil
	}

	flashes := decodeFlashes(sess.Get(flashesKey))
	if len(flashes) == 0 {
		return nil
	}

	sess.Delete(flashesKey)
	_ = sess.Save()
	return flashes
}

func decodeFlashes(raw interface{}) []Flash {
	encoded, ok := raw.(string)
	if !ok || encoded == "" {
		return nil
	}

	var flashes []Flash
	if err := json.Unmarshal([]byte(encoded), &flashes); err != nil {
		return nil
	}
	return flashes
}
