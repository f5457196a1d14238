package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/KhalidTheCoder/scarlet-aid-server/internal/container"
	"github.com/KhalidTheCoder/scarlet-aid-server/internal/domain/policy"
	"github.com/KhalidTheCoder/scarlet-aid-server/internal/domain/repository"
	handlers "github.com/KhalidTheCoder/scarlet-aid-server/internal/interface/http"
	"github.com/KhalidTheCoder/scarlet-aid-server/internal/interface/middleware"
)

// UserModule wires the user directory routes.
// Public: POST /users, GET /donors/search
// Protected: GET/PUT /users/profile, POST /users/avatar, GET /users/:email/role
// Admin: GET /users, PATCH /users/:id/status, PATCH /users/:id/role
type UserModule struct {
	Handler *handlers.UserHandler
	Users   repository.UserRepository
}

func NewUserModule(h *handlers.UserHandler, users repository.UserRepository) *UserModule {
	return &UserModule{Handler: h, Users: users}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	registerLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIP(), nil) // 10 req/min per IP
	searchLimiter := middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByIPAndPath(), nil)

	rg.POST("/users", registerLimiter, m.Handler.Register)
	rg.GET("/donors/search", searchLimiter, m.Handler.SearchDonors)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(container.GetVerifier()))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByActor(), nil))
	{
		auth.GET("/users/profile", m.Handler.GetProfile)
		auth.PUT("/users/profile", m.Handler.UpdateProfile)
		auth.POST("/users/avatar", m.Handler.UploadAvatar)
		auth.GET("/users/:email/role", m.Handler.RoleOf)
	}

	admin := rg.Group("/")
	admin.Use(middleware.Auth(container.GetVerifier()))
	admin.Use(middleware.RequireRole(m.Users, policy.CanManageUsers))
	{
		admin.GET("/users", m.Handler.List)
		admin.PATCH("/users/:id/status", m.Handler.SetStatus)
		admin.PATCH("/users/:id/role", m.Handler.SetRole)
	}
}
