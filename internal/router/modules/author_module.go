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

// AuthorModule wires author routes under /api/authors. Reads need
// book:view; writes need author:manage.
type AuthorModule struct {
	Handler *handlers.AuthorHandler
	JWT     *helpers.JWTManager
	Access  middleware.PermissionChecker
}

func NewAuthorModule(h *handlers.AuthorHandler, jwt *helpers.JWTManager, access middleware.PermissionChecker) *AuthorModule {
	return &AuthorModule{Handler: h, JWT: jwt, Access: access}
}

func (m *AuthorModule) Register(rg *gin.RouterGroup) {
	authors := rg.Group("/authors")
	authors.Use(middleware.Auth(container.GetRedis(), m.JWT))
	authors.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		authors.GET("", middleware.RequirePermission(m.Access, entity.PermBookView), m.Handler.List)
		authors.GET("/:id", middleware.RequirePermission(m.Access, entity.PermBookView), m.Handler.Get)
		authors.POST("", middleware.RequirePermission(m.Access, entity.PermAuthorManage), m.Handler.Create)
		authors.PUT("/:id", middleware.RequirePermission(m.Access, entity.PermAuthorManage), m.Handler.Update)
		authors.DELETE("/:id", middleware.RequirePermission(m.Access, entity.PermAuthorManage), m.Handler.Delete)
	}
}
