package router

import (
	"github.com/KhalidTheCoder/scarlet-aid-server/internal/application"
	"github.com/KhalidTheCoder/scarlet-aid-server/internal/container"
	"github.com/KhalidTheCoder/scarlet-aid-server/internal/domain/repository"
	pginfra "github.com/KhalidTheCoder/scarlet-aid-server/internal/infrastructure/postgres"
	handlers "github.com/KhalidTheCoder/scarlet-aid-server/internal/interface/http"
	"github.com/KhalidTheCoder/scarlet-aid-server/internal/router/modules"
)

type Deps struct {
	Users    repository.UserRepository
	Requests repository.DonationRequestRepository
	Blogs    repository.BlogRepository

	UserService    *application.UserService
	RequestService *application.RequestService
	BlogService    *application.BlogService

	UserHandler    *handlers.UserHandler
	RequestHandler *handlers.RequestHandler
	BlogHandler    *handlers.BlogHandler
}

func buildDeps() Deps {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	pool := container.GetPGPool()

	users := pginfra.NewUserRepository(pool)
	requests := pginfra.NewDonationRequestRepository(pool)
	blogs := pginfra.NewBlogRepository(pool)

	userSvc := application.NewUserService(
		users,
		container.GetGCS(),
		cfg.GCSBucket,
		container.GetES(),
		cfg.ESDonorsIndex,
		logger,
	)
	requestSvc := application.NewRequestService(
		requests,
		users,
		container.GetRedis(),
		container.GetPublisher(),
		logger,
		cfg.StatsCacheTTL,
	)
	blogSvc := application.NewBlogService(blogs, users, logger)

	return Deps{
		Users:    users,
		Requests: requests,
		Blogs:    blogs,

		UserService:    userSvc,
		RequestService: requestSvc,
		BlogService:    blogSvc,

		UserHandler:    handlers.NewUserHandler(userSvc, logger),
		RequestHandler: handlers.NewRequestHandler(requestSvc, logger),
		BlogHandler:    handlers.NewBlogHandler(blogSvc, logger),
	}
}

// InitModules wires repositories, services and handlers and registers every
// feature module with the registry. Called once during startup.
func InitModules(r *Registry) {
	deps := buildDeps()

	r.Add(modules.NewUserModule(deps.UserHandler, deps.Users))
	r.Add(modules.NewRequestModule(deps.RequestHandler, deps.Users))
	r.Add(modules.NewBlogModule(deps.BlogHandler, deps.Users))
}
