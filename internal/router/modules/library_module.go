package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/librarium/librarium/internal/container"
	"github.com/librarium/librarium/internal/domain/entity"
	handlers "github.com/librarium/librarium/internal/interface/http"
	"github.com/librarium/librarium/internal/interface/middleware"
	"github.com/librarium/librarium/pkg/helpers"
)

// LibraryModule wires library and librarian routes under /api/libraries
// and /api/librarians.
type LibraryModule struct {
	Handler *handlers.LibraryHandler
	JWT     *helpers.JWTManager
	Access  middleware.PermissionChecker
}

func NewLibraryModule(h *handlers.LibraryHandler, jwt *helpers.JWTManager, access middleware.PermissionChecker) *LibraryModule {
	return &LibraryModule{Handler: h, JWT: jwt, Access: access}
}

func (m *LibraryModule) Register(rg *gin.RouterGroup) {
	limiter := middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil)

	libs := rg.Group("/libraries")
	libs.Use(middleware.Auth(container.GetRedis(), m.JWT), limiter)
	{
		libs.GET("", middleware.RequirePermission(m.Access, entity.PermBookView), m.Handler.List)
		libs.GET("/:id", middleware.RequirePermission(m.Access, entity.PermBookView), m.Handler.Get)
		libs.GET("/:id/stats", middleware.RequirePermission(m.Access, entity.PermLibStats), m.Handler.Stats)
		libs.POST("", middleware.RequirePermission(m.Access, entity.PermLibManage), m.Handler.Create)
		libs.PUT("/:id", middleware.RequirePermission(m.Access, entity.PermLibManage), m.Handler.Update)
		libs.DELETE("/:id", middleware.RequirePermission(m.Access, entity.PermLibManage), m.Handler.Delete)
		libs.POST("/:id/books", middleware.RequirePermission(m.Access, entity.PermLibManage), m.Handler.AttachBook)
		libs.DELETE("/:id/books/:bookID", middleware.RequirePermission(m.Access, entity.PermLibManage), m.Handler.DetachBook)
	}

	lbs := rg.Group("/librarians")
	lbs.Use(middleware.Auth(container.GetRedis(), m.JWT), limiter)
	{
		lbs.GET("", middleware.RequirePermission(m.Access, entity.PermLibManage), m.Handler.ListLibrarians)
		lbs.POST("", middleware.RequirePermission(m.Access, entity.PermLibManage), m.Handler.AssignLibrarian)
		lbs.DELETE("/:id", middleware.RequirePermission(m.Access, entity.PermLibManage), m.Handler.RemoveLibrarian)
	}
}
