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

// RequestModule wires the donation request lifecycle routes.
// Public: GET /donation-requests/public
// Protected: create, recent, my-requests, read, update, status, donate, delete
// Elevated (admin or volunteer): GET /donation-requests, GET /admin/stats
type RequestModule struct {
	Handler *handlers.RequestHandler
	Users   repository.UserRepository
}

func NewRequestModule(h *handlers.RequestHandler, users repository.UserRepository) *RequestModule {
	return &RequestModule{Handler: h, Users: users}
}

func (m *RequestModule) Register(rg *gin.RouterGroup) {
	publicLimiter := middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByIPAndPath(), nil)

	rg.GET("/donation-requests/public", publicLimiter, m.Handler.Public)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(container.GetVerifier()))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByActor(), nil))
	{
		auth.POST("/donation-requests", m.Handler.Create)
		auth.GET("/donation-requests/recent", m.Handler.Recent)
		auth.GET("/donation-requests/my-requests", m.Handler.Mine)
		auth.GET("/donation-requests/:id", m.Handler.Get)
		auth.PUT("/donation-requests/:id", m.Handler.Update)
		auth.PATCH("/donation-requests/:id/status", m.Handler.Transition)
		auth.PATCH("/donation-requests/:id/donate", m.Handler.Donate)
		auth.DELETE("/donation-requests/:id", m.Handler.Delete)
	}

	elevated := rg.Group("/")
	elevated.Use(middleware.Auth(container.GetVerifier()))
	elevated.Use(middleware.RequireRole(m.Users, policy.CanListAllRequests))
	{
		elevated.GET("/donation-requests", m.Handler.ListAll)
		elevated.GET("/admin/stats", m.Handler.Stats)
	}
}
