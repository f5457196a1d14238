package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/KhalidTheCoder/scarlet-aid-server/internal/application"
	"github.com/KhalidTheCoder/scarlet-aid-server/internal/domain/entity"
	"github.com/KhalidTheCoder/scarlet-aid-server/internal/interface/middleware"
	"github.com/KhalidTheCoder/scarlet-aid-server/pkg/response"
	"github.com/KhalidTheCoder/scarlet-aid-server/pkg/validation"
)

type BlogHandler struct {
	Svc    *application.BlogService
	Logger *logrus.Logger
}

func NewBlogHandler(svc *application.BlogService, logger *logrus.Logger) *BlogHandler {
	return &BlogHandler{Svc: svc, Logger: logger}
}

type createBlogRequest struct {
	Title     string `json:"title" binding:"required"`
	Thumbnail string `json:"thumbnail" binding:"required"`
	Content   string `json:"content" binding:"required"`
}

func (h *BlogHandler) Create(c *gin.Context) {
	var req createBlogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "all fields are required", validation.ToDetails(err))
		return
	}
	b, err := h.Svc.Create(c.Request.Context(), middleware.ActorEmail(c), application.BlogInput{
		Title:     req.Title,
		Thumbnail: req.Thumbnail,
		Content:   req.Content,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"id": b.ID}, "blog created successfully", nil)
}

func (h *BlogHandler) List(c *gin.Context) {
	st := entity.BlogStatus(c.Query("status"))
	if st != "" && !st.Valid() {
		response.Error(c, http.StatusBadRequest, "invalid status", nil)
		return
	}
	blogs, err := h.Svc.List(c.Request.Context(), st)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, blogsJSON(blogs), "blogs", nil)
}

func (h *BlogHandler) Get(c *gin.Context) {
	id := c.Param("id")
	if !validID(id) {
		response.Error(c, http.StatusBadRequest, "invalid blog ID", nil)
		return
	}
	b, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, blogJSON(b), "blog", nil)
}

type setBlogStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=draft published"`
}

// SetStatus publishes or unpublishes a blog. Admin-only; authorship grants
// no rights here.
func (h *BlogHandler) SetStatus(c *gin.Context) {
	id := c.Param("id")
	if !validID(id) {
		response.Error(c, http.StatusBadRequest, "invalid blog ID", nil)
		return
	}
	var req setBlogStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid status", validation.ToDetails(err))
		return
	}
	if err := h.Svc.SetStatus(c.Request.Context(), id, entity.BlogStatus(req.Status)); err != nil {
		response.FromError(c, err)
		return
	}
	msg := "blog unpublished successfully"
	if req.Status == string(entity.BlogPublished) {
		msg = "blog published successfully"
	}
	response.Success[any](c, http.StatusOK, nil, msg, nil)
}

func (h *BlogHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if !validID(id) {
		response.Error(c, http.StatusBadRequest, "invalid blog ID", nil)
		return
	}
	if err := h.Svc.Delete(c.Request.Context(), id); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "blog deleted successfully", nil)
}
