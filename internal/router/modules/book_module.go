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

// BookModule wires catalog book routes under /api/books. Every route
// requires authentication plus the relevant permission code.
type BookModule struct {
	Handler *handlers.BookHandler
	JWT     *helpers.JWTManager
	Access  middleware.PermissionChecker
}

func NewBookModule(h *handlers.BookHandler, jwt *helpers.JWTManager, access middleware.PermissionChecker) *BookModule {
	return &BookModule{Handler: h, JWT: jwt, Access: access}
}

func (m *BookModule) Register(rg *gin.RouterGroup) {
	books := rg.Group("/books")
	books.Use(middleware.Auth(container.GetRedis(), m.JWT))
	books.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		books.GET("", middleware.RequirePermission(m.Access, entity.PermBookViewAll), m.Handler.List)
		books.GET("/search", middleware.RequirePermission(m.Access, entity.PermBookViewAll), m.Handler.Search)
		books.GET("/:id", middleware.RequirePermission(m.Access, entity.PermBookView), m.Handler.Get)
		books.POST("", middleware.RequirePermission(m.Access, entity.PermBookCreate), m.Handler.Create)
		books.PUT("/:id", middleware.RequirePermission(m.Access, entity.PermBookEdit), m.Handler.Update)
		books.DELETE("/:id", middleware.RequirePermission(m.Access, entity.PermBookDelete), m.Handler.Delete)
		books.POST("/bulk/delete", middleware.RequirePermission(m.Access, entity.PermBookBulk), m.Handler.BulkDelete)
		books.POST("/bulk/publication-year", middleware.RequirePermission(m.Access, entity.PermBookBulk), m.Handler.BulkSetYear)
	}
}
