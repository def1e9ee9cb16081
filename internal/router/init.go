package router

import (
	"github.com/librarium/librarium/internal/application"
	"github.com/librarium/librarium/internal/container"
	pginfra "github.com/librarium/librarium/internal/infrastructure/postgres"
	handlers "github.com/librarium/librarium/internal/interface/http"
	"github.com/librarium/librarium/internal/router/modules"
)

// Deps holds everything the route modules need, built once from the
// container singletons.
type Deps struct {
	Access    *application.AccessService
	Users     *application.UserService
	Books     *application.BookService
	Authors   *application.AuthorService
	Libraries *application.LibraryService
	Dashboard *application.DashboardService
}

func buildDeps() Deps {
	cfg := container.GetConfig()
	pool := container.GetPGPool()
	logger := container.GetLogger()

	authorRepo := pginfra.NewAuthorRepository(pool)
	bookRepo := pginfra.NewBookRepository(pool)
	libraryRepo := pginfra.NewLibraryRepository(pool)
	userRepo := pginfra.NewUserRepository(pool)
	accessRepo := pginfra.NewAccessRepository(pool)

	access := application.NewAccessService(accessRepo, userRepo, container.GetRedis(), logger, cfg.PermissionCacheTTL)

	var pub application.EmailPublisher
	if rp := container.GetRabbitPub(); rp != nil {
		pub = rp
	}
	users := application.NewUserService(
		userRepo,
		accessRepo,
		container.GetJWT(),
		container.GetGCS(),
		cfg.GCSBucket,
		container.GetRedis(),
		logger,
		pub,
		cfg.MailSendEnabled,
		cfg.AppName,
	)

	books := application.NewBookService(bookRepo, authorRepo, logger, container.GetES(), cfg.ESBooksIndex)
	authors := application.NewAuthorService(authorRepo, bookRepo, logger)
	libraries := application.NewLibraryService(libraryRepo, bookRepo, logger)
	dashboard := application.NewDashboardService(bookRepo, authorRepo, libraryRepo, userRepo, logger)

	return Deps{
		Access:    access,
		Users:     users,
		Books:     books,
		Authors:   authors,
		Libraries: libraries,
		Dashboard: dashboard,
	}
}

// InitModules builds all feature modules and registers them with the registry.
// Called once during startup after the container is populated.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	deps := buildDeps()

	userHandler := handlers.NewUserHandler(deps.Users, logger, cfg.CookieDomain, cfg.CookieSecure)
	bookHandler := handlers.NewBookHandler(deps.Books, logger)
	authorHandler := handlers.NewAuthorHandler(deps.Authors, logger)
	libraryHandler := handlers.NewLibraryHandler(deps.Libraries, logger)
	accessHandler := handlers.NewAccessHandler(deps.Access, logger)
	dashboardHandler := handlers.NewDashboardHandler(deps.Dashboard, logger)

	r.Add(modules.NewUserModule(userHandler, container.GetJWT()))
	r.Add(modules.NewBookModule(bookHandler, container.GetJWT(), deps.Access))
	r.Add(modules.NewAuthorModule(authorHandler, container.GetJWT(), deps.Access))
	r.Add(modules.NewLibraryModule(libraryHandler, container.GetJWT(), deps.Access))
	r.Add(modules.NewAccessModule(accessHandler, container.GetJWT(), deps.Access))
	r.Add(modules.NewDashboardModule(dashboardHandler, container.GetJWT(), deps.Access))
	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
