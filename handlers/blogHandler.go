package handlers

import (
	"net/http"

	"MedicApp/logger"
	"MedicApp/middlewares"
	"MedicApp/models"
	"MedicApp/services"

	"github.com/gin-gonic/gin"
)

// BlogView tells the client whether to show the edit and delete controls.
type BlogView struct {
	models.Blog
	CanEdit bool `json:"can_edit"`
}

type BlogHandler struct {
	service *services.BlogService
	log     *logger.Logger
}

func NewBlogHandler(service *services.BlogService, log *logger.Logger) *BlogHandler {
	return &BlogHandler{service: service, log: log}
}

func (h *BlogHandler) ListBlogs(c *gin.Context) {
	userID, _, ok := identity(c, h.log)
	if !ok {
		return
	}

	blogs, err := h.service.ListBlogs(c.Request.Context())
	if err != nil {
		middlewares.RespondError(c, h.log, err)
		return
	}

	views := make([]BlogView, 0, len(blogs))
	for _, b := range blogs {
		views = append(views, BlogView{Blog: b, CanEdit: services.CanModify(userID, b)})
	}
	middlewares.RespondJSON(c, views, http.StatusOK)
}

func (h *BlogHandler) GetBlog(c *gin.Context) {
	userID, _, ok := identity(c, h.log)
	if !ok {
		return
	}
	id, ok := pathID(c, h.log, "id")
	if !ok {
		return
	}

	blog, err := h.service.GetBlog(c.Request.Context(), id)
	if err != nil {
		middlewares.RespondError(c, h.log, err)
		return
	}
	middlewares.RespondJSON(c, BlogView{Blog: *blog, CanEdit: services.CanModify(userID, *blog)}, http.StatusOK)
}

func (h *BlogHandler) CreateBlog(c *gin.Context) {
	userID, _, ok := identity(c, h.log)
	if !ok {
		return
	}

	var input services.BlogInput
	if err := c.ShouldBindJSON(&input); err != nil {
		middlewares.HttpError(c, h.log, "Invalid request body", http.StatusBadRequest, err)
		return
	}

	blog, err := h.service.CreateBlog(c.Request.Context(), userID, input)
	if err != nil {
		middlewares.RespondError(c, h.log, err)
		return
	}
	middlewares.RespondJSON(c, BlogView{Blog: *blog, CanEdit: true}, http.StatusCreated)
}

func (h *BlogHandler) UpdateBlog(c *gin.Context) {
	id, ok := h.authoredBlog(c)
	if !ok {
		return
	}

	var input services.BlogInput
	if err := c.ShouldBindJSON(&input); err != nil {
		middlewares.HttpError(c, h.log, "Invalid request body", http.StatusBadRequest, err)
		return
	}

	ctx := c.Request.Context()
	if err := h.service.UpdateBlog(ctx, id, input); err != nil {
		middlewares.RespondError(c, h.log, err)
		return
	}

	blog, err := h.service.GetBlog(ctx, id)
	if err != nil {
		middlewares.RespondError(c, h.log, err)
		return
	}
	middlewares.RespondJSON(c, BlogView{Blog: *blog, CanEdit: true}, http.StatusOK)
}

func (h *BlogHandler) DeleteBlog(c *gin.Context) {
	id, ok := h.authoredBlog(c)
	if !ok {
		return
	}

	if err := h.service.DeleteBlog(c.Request.Context(), id); err != nil {
		middlewares.RespondError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// authoredBlog loads the post named in the path and refuses callers who did not write it.
func (h *BlogHandler) authoredBlog(c *gin.Context) (int64, bool) {
	userID, _, ok := identity(c, h.log)
	if !ok {
		return 0, false
	}
	id, ok := pathID(c, h.log, "id")
	if !ok {
		return 0, false
	}

	blog, err := h.service.GetBlog(c.Request.Context(), id)
	if err != nil {
		middlewares.RespondError(c, h.log, err)
		return 0, false
	}
	if !services.CanModify(userID, *blog) {
		middlewares.RespondError(c, h.log, models.NewForbiddenError("Only the author can change this post"))
		return 0, false
	}
	return id, true
}
