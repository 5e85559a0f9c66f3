package handlers_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/namishh/bubble/auth"
	"github.com/namishh/bubble/config"
	"github.com/namishh/bubble/handlers"
	"github.com/namishh/bubble/routes"
	"github.com/namishh/bubble/session"
	"github.com/namishh/bubble/store"
	"github.com/namishh/bubble/views"
)

// fakeNotifier satisfies mailer.Notifier and records sends synchronously so
// tests can count deliveries without racing a worker goroutine.
type fakeNotifier struct {
	mu    sync.Mutex
	sent  []string
	links []string
}

func (f *fakeNotifier) SendPasswordReset(toEmail, resetLink string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, toEmail)
	f.links = append(f.links, resetLink)
	return nil
}

func (f *fakeNotifier) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

type testEnv struct {
	app   *fiber.App
	users store.UserStore
	posts store.PostStore
	codec *auth.TokenCodec
	mail  *fakeNotifier
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "bubble.db")), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, store.Migrate(db))

	users := store.NewUserStore(db)
	posts := store.NewPostStore(db)
	sessions := session.NewManager(config.SessionConfig{
		TTL:         time.Hour,
		RememberTTL: 24 * time.Hour,
	})
	codec := auth.NewTokenCodec([]byte("test-secret"), config.TokenConfig{
		Issuer:   "bubble",
		ResetTTL: 30 * time.Minute,
	})
	mail := &fakeNotifier{}
	logger := zap.NewNop()

	app := fiber.New(fiber.Config{Views: views.New()})
	routes.Register(app, routes.Handlers{
		Pages:    handlers.NewPageHandler(sessions),
		Auth:     handlers.NewAuthHandler(users, sessions, codec, mail, logger, "http://localhost:8080"),
		Profile:  handlers.NewProfileHandler(users, sessions, logger),
		Posts:    handlers.NewPostHandler(posts, sessions, logger),
		Sessions: sessions,
		Users:    users,
	})

	return &testEnv{app: app, users: users, posts: posts, codec: codec, mail: mail}
}

func (e *testEnv) get(t *testing.T, target string, cookies []*http.Cookie) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func (e *testEnv) post(t *testing.T, target string, form url.Values, cookies []*http.Cookie) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func body(t *testing.T, resp *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	_ = resp.Body.Close()
	return string(b)
}

func (e *testEnv) register(t *testing.T, username, email, password string) {
	t.Helper()
	resp := e.post(t, "/register", url.Values{
		"username":         {username},
		"email":            {email},
		"password":         {password},
		"confirm_password": {password},
	}, nil)
	require.Equal(t, http.StatusFound, resp.StatusCode)
	require.Equal(t, "/login", resp.Header.Get("Location"))
}

// login authenticates and returns the session cookies for later requests.
func (e *testEnv) login(t *testing.T, email, password string) []*http.Cookie {
	t.Helper()
	resp := e.post(t, "/login", url.Values{
		"email":    {email},
		"password": {password},
	}, nil)
	require.Equal(t, http.StatusFound, resp.StatusCode)
	cookies := resp.Cookies()
	require.NotEmpty(t, cookies)
	return cookies
}
