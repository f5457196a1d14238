package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/KhalidTheCoder/scarlet-aid-server/internal/container"
	"github.com/KhalidTheCoder/scarlet-aid-server/internal/domain/policy"
	"github.com/KhalidTheCoder/scarlet-aid-server/internal/domain/repository"
	handlers "github.com/KhalidTheCoder/scarlet-aid-server/internal/interface/http"
	"github.com/KhalidTheCoder/scarlet-aid-server/internal/interface/middleware"
)

// BlogModule wires blog routes. Reads and creation need a bearer token;
// publishing, unpublishing, and deletion are admin-only regardless of
// authorship.
type BlogModule struct {
	Handler *handlers.BlogHandler
	Users   repository.UserRepository
}

func NewBlogModule(h *handlers.BlogHandler, users repository.UserRepository) *BlogModule {
	return &BlogModule{Handler: h, Users: users}
}

func (m *BlogModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.Auth(container.GetVerifier()))
	{
		auth.GET("/blogs", m.Handler.List)
		auth.GET("/blogs/:id", m.Handler.Get)
		auth.POST("/blogs", m.Handler.Create)
	}

	admin := rg.Group("/")
	admin.Use(middleware.Auth(container.GetVerifier()))
	admin.Use(middleware.RequireRole(m.Users, policy.CanManageBlogs))
	{
		admin.PATCH("/blogs/:id/status", m.Handler.SetStatus)
		admin.DELETE("/blogs/:id", m.Handler.Delete)
	}
}
