package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/namishh/bubble/middleware"
	"github.com/namishh/bubble/models"
	"github.com/namishh/bubble/session"
	"github.com/namishh/bubble/store"
)

const postsPerPage = 4

// PostHandler serves the bubble listing and CRUD routes. Every route runs
// behind RequireAuth, and every access to a single post re-checks ownership.
type PostHandler struct {
	posts    store.PostStore
	sessions *session.Manager
	logger   *zap.Logger
}

func NewPostHandler(posts store.PostStore, sessions *session.Manager, logger *zap.Logger) *PostHandler {
	return &PostHandler{posts: posts, sessions: sessions, logger: logger}
}

// GET /your-bubbles?page=
func (h *PostHandler) Home(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return renderError(c, h.sessions, fiber.StatusUnauthorized, "unauthorized")
	}

	page := c.QueryInt("page", 1)
	posts, pagination, err := h.posts.ListByOwner(user.ID, page, postsPerPage)
	if err != nil {
		h.logger.Error("list posts", zap.Error(err))
		return renderError(c, h.sessions, fiber.StatusInternalServerError, "something went wrong")
	}

	return render(c, h.sessions, "home", fiber.Map{
		"Posts":      posts,
		"Pagination": pagination,
	})
}

// GET /post/new
func (h *PostHandler) NewPage(c *fiber.Ctx) error {
	return render(c, h.sessions, "create_post", fiber.Map{
		"Legend": "Create",
		"Form":   PostForm{},
		"Errors": map[string]string{},
	})
}

// POST /post/new
func (h *PostHandler) Create(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return renderError(c, h.sessions, fiber.StatusUnauthorized, "unauthorized")
	}

	var form PostForm
	if err := c.BodyParser(&form); err != nil {
		return renderError(c, h.sessions, fiber.StatusBadRequest, "invalid form submission")
	}

	if formErrors := form.Validate(); len(formErrors) > 0 {
		return render(c, h.sessions, "create_post", fiber.Map{
			"Legend": "Create",
			"Form":   form,
			"Errors": formErrors,
		})
	}

	if _, err := h.posts.Create(form.Title, form.Content, user.ID); err != nil {
		h.logger.Error("create post", zap.Error(err))
		return renderError(c, h.sessions, fiber.StatusInternalServerError, "something went wrong")
	}

	if err := h.sessions.Flash(c, "success", "Post Created"); err != nil {
		h.logger.Warn("queue flash", zap.Error(err))
	}
	return c.Redirect("/your-bubbles", fiber.StatusFound)
}

// GET /post/view/:id
func (h *PostHandler) View(c *fiber.Ctx) error {
	post, err := h.ownedPost(c)
	if post == nil {
		return err
	}

	return render(c, h.sessions, "view_post", fiber.Map{
		"Post": post,
	})
}

// GET /post/view/:id/update
func (h *PostHandler) UpdatePage(c *fiber.Ctx) error {
	post, err := h.ownedPost(c)
	if post == nil {
		return err
	}

	return render(c, h.sessions, "create_post", fiber.Map{
		"Legend": "Update Post",
		"Form":   PostForm{Title: post.Title, Content: post.Content},
		"Errors": map[string]string{},
	})
}

// POST /post/view/:id/update
func (h *PostHandler) Update(c *fiber.Ctx) error {
	post, err := h.ownedPost(c)
	if post == nil {
		return err
	}

	var form PostForm
	if err := c.BodyParser(&form); err != nil {
		return renderError(c, h.sessions, fiber.StatusBadRequest, "invalid form submission")
	}

	if formErrors := form.Validate(); len(formErrors) > 0 {
		return render(c, h.sessions, "create_post", fiber.Map{
			"Legend": "Update Post",
			"Form":   form,
			"Errors": formErrors,
		})
	}

	if err := h.posts.Update(post, form.Title, form.Content); err != nil {
		h.logger.Error("update post", zap.Error(err))
		return renderError(c, h.sessions, fiber.StatusInternalServerError, "something went wrong")
	}

	if err := h.sessions.Flash(c, "success", "Your post has been updated!"); err != nil {
		h.logger.Warn("queue flash", zap.Error(err))
	}
	return c.Redirect("/post/view/"+strconv.FormatUint(uint64(post.ID), 10), fiber.StatusFound)
}

// GET /post/view/:id/delete — confirmation step before the actual delete.
func (h *PostHandler) DeletePage(c *fiber.Ctx) error {
	post, err := h.ownedPost(c)
	if post == nil {
		return err
	}

	return render(c, h.sessions, "confirm_delete", fiber.Map{
		"Post": post,
	})
}

// GET /post/view/:id/deleted — executes the deletion.
func (h *PostHandler) Deleted(c *fiber.Ctx) error {
	post, err := h.ownedPost(c)
	if post == nil {
		return err
	}

	if err := h.posts.Delete(post); err != nil {
		h.logger.Error("delete post", zap.Error(err))
		return renderError(c, h.sessions, fiber.StatusInternalServerError, "something went wrong")
	}

	if err := h.sessions.Flash(c, "danger", "Post deleted."); err != nil {
		h.logger.Warn("queue flash", zap.Error(err))
	}
	return c.Redirect("/your-bubbles", fiber.StatusFound)
}

// ownedPost resolves :id and enforces ownership: a missing post is 404, an
// existing post owned by someone else is 403 with no content disclosed.
// When it returns a nil post the error response has already been rendered.
func (h *PostHandler) ownedPost(c *fiber.Ctx) (*models.Post, error) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return nil, renderError(c, h.sessions, fiber.StatusUnauthorized, "unauthorized")
	}

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return nil, renderError(c, h.sessions, fiber.StatusNotFound, "post not found")
	}

	post, err := h.posts.Get(uint(id))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, renderError(c, h.sessions, fiber.StatusNotFound, "post not found")
		}
		h.logger.Error("get post", zap.Error(err))
		return nil, renderError(c, h.sessions, fiber.StatusInternalServerError, "something went wrong")
	}

	if post.UserID != user.ID {
		return nil, renderError(c, h.sessions, fiber.StatusForbidden, "you do not have permission to access this post")
	}

	return post, nil
}
