package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/devconnector/connector-api/internal/core/domain"
	"github.com/devconnector/connector-api/internal/core/ports"
	"github.com/devconnector/connector-api/internal/metrics"
)

// PostHandler serves /api/posts.
type PostHandler struct {
	service ports.PostService
}

func NewPostHandler(service ports.PostService) *PostHandler {
	return &PostHandler{service: service}
}

// Create handles POST /api/posts.
//
// @Summary      Create a post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     ApiKeyAuth
// @Param        body  body      textRequest  true  "Post text"
// @Success      200   {object}  domain.Post
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /api/posts [post]
func (h *PostHandler) Create(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	var req textRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	post, err := h.service.Create(c.Request().Context(), id, req.Text)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, post)
}

// List handles GET /api/posts.
//
// @Summary      All posts, newest first
// @Tags         posts
// @Produce      json
// @Security     ApiKeyAuth
// @Success      200  {array}   domain.Post
// @Router       /api/posts [get]
func (h *PostHandler) List(c echo.Context) error {
	posts, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, posts)
}

// Get handles GET /api/posts/:id.
//
// @Summary      Post by id
// @Tags         posts
// @Produce      json
// @Security     ApiKeyAuth
// @Param        id   path      string  true  "Post id"
// @Success      200  {object}  domain.Post
// @Failure      404  {object}  errorResponse
// @Router       /api/posts/{id} [get]
func (h *PostHandler) Get(c echo.Context) error {
	post, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, post)
}

// Delete handles DELETE /api/posts/:id.
//
// @Summary      Delete a post (author only)
// @Tags         posts
// @Produce      json
// @Security     ApiKeyAuth
// @Param        id   path      string  true  "Post id"
// @Success      200  {object}  messageResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/posts/{id} [delete]
func (h *PostHandler) Delete(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), id, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Msg: "Post removed"})
}

// Like handles PUT /api/posts/like/:id.
//
// @Summary      Like a post
// @Tags         posts
// @Produce      json
// @Security     ApiKeyAuth
// @Param        id   path      string  true  "Post id"
// @Success      200  {array}   domain.Like
// @Failure      404  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Router       /api/posts/like/{id} [put]
func (h *PostHandler) Like(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	likes, err := h.service.Like(c.Request().Context(), id, c.Param("id"))
	observeLike(domain.LikeAdded, err)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, likes)
}

// Unlike handles PUT /api/posts/unlike/:id.
//
// @Summary      Unlike a post
// @Tags         posts
// @Produce      json
// @Security     ApiKeyAuth
// @Param        id   path      string  true  "Post id"
// @Success      200  {array}   domain.Like
// @Failure      404  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Router       /api/posts/unlike/{id} [put]
func (h *PostHandler) Unlike(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	likes, err := h.service.Unlike(c.Request().Context(), id, c.Param("id"))
	observeLike(domain.LikeRemoved, err)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, likes)
}

// Comment handles POST /api/posts/comment/:id.
//
// @Summary      Comment on a post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     ApiKeyAuth
// @Param        id    path      string       true  "Post id"
// @Param        body  body      textRequest  true  "Comment text"
// @Success      200   {array}   domain.Comment
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/posts/comment/{id} [post]
func (h *PostHandler) Comment(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	var req textRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	comments, err := h.service.Comment(c.Request().Context(), id, c.Param("id"), req.Text)
	if err != nil {
		return err
	}
	metrics.CommentsTotal.WithLabelValues("add").Inc()
	return c.JSON(http.StatusOK, comments)
}

// RemoveComment handles DELETE /api/posts/comment/:id/:comment_id.
//
// @Summary      Remove a comment (comment author or post author)
// @Tags         posts
// @Produce      json
// @Security     ApiKeyAuth
// @Param        id          path      string  true  "Post id"
// @Param        comment_id  path      string  true  "Comment id"
// @Success      200         {array}   domain.Comment
// @Failure      403         {object}  errorResponse
// @Failure      404         {object}  errorResponse
// @Router       /api/posts/comment/{id}/{comment_id} [delete]
func (h *PostHandler) RemoveComment(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	comments, err := h.service.RemoveComment(c.Request().Context(), id, c.Param("id"), c.Param("comment_id"))
	if err != nil {
		return err
	}
	metrics.CommentsTotal.WithLabelValues("remove").Inc()
	return c.JSON(http.StatusOK, comments)
}

// observeLike records the outcome of a like or unlike; other errors are not
// counted.
func observeLike(success domain.LikeResult, err error) {
	result := success
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrAlreadyLiked):
		result = domain.LikeAlreadyPresent
	case errors.Is(err, domain.ErrNotLiked):
		result = domain.LikeNotPresent
	default:
		return
	}
	metrics.LikesTotal.WithLabelValues(result.String()).Inc()
}
