package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/inkwell/blog/internal/api/middleware"
	"github.com/inkwell/blog/internal/core/domain"
	"github.com/inkwell/blog/internal/core/ports"
)

type PostHandler struct {
	posts ports.PostService
}

func NewPostHandler(posts ports.PostService) *PostHandler {
	return &PostHandler{posts: posts}
}

// Create handles POST /posts.
//
// @Summary      Write a post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      postRequest  true  "Post body"
// @Success      201   {object}  postResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /posts [post]
func (h *PostHandler) Create(c echo.Context) error {
	var req postRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	post, err := h.posts.Create(c.Request().Context(), middleware.IdentityFrom(c), req.Body)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, presentPost(post))
}

// Get handles GET /posts/:sid.
//
// @Summary      Get a post
// @Tags         posts
// @Produce      json
// @Param        sid  path      int  true  "Post number"
// @Success      200  {object}  postResponse
// @Failure      404  {object}  errorResponse
// @Router       /posts/{sid} [get]
func (h *PostHandler) Get(c echo.Context) error {
	sid, err := postSID(c)
	if err != nil {
		return err
	}

	post, err := h.posts.Get(c.Request().Context(), sid)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, presentPost(post))
}

// Edit handles PUT /posts/:sid.
//
// @Summary      Edit a post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        sid   path      int          true  "Post number"
// @Param        body  body      postRequest  true  "New body"
// @Success      200   {object}  postResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /posts/{sid} [put]
func (h *PostHandler) Edit(c echo.Context) error {
	sid, err := postSID(c)
	if err != nil {
		return err
	}
	var req postRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	post, err := h.posts.Edit(c.Request().Context(), middleware.IdentityFrom(c), sid, req.Body)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, presentPost(post))
}

// postSID parses the :sid path parameter. Anything that is not a positive
// integer cannot name a post.
func postSID(c echo.Context) (int64, error) {
	sid, err := strconv.ParseInt(c.Param("sid"), 10, 64)
	if err != nil || sid <= 0 {
		return 0, domain.ErrPostNotFound
	}
	return sid, nil
}
