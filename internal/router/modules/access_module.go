package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/librarium/librarium/internal/application"
	"github.com/librarium/librarium/internal/container"
	"github.com/librarium/librarium/internal/domain/entity"
	handlers "github.com/librarium/librarium/internal/interface/http"
	"github.com/librarium/librarium/internal/interface/middleware"
	"github.com/librarium/librarium/pkg/helpers"
)

// AccessModule wires the admin-only group and role management routes
// under /api/access.
type AccessModule struct {
	Handler *handlers.AccessHandler
	JWT     *helpers.JWTManager
	Access  *application.AccessService
}

func NewAccessModule(h *handlers.AccessHandler, jwt *helpers.JWTManager, access *application.AccessService) *AccessModule {
	return &AccessModule{Handler: h, JWT: jwt, Access: access}
}

func (m *AccessModule) Register(rg *gin.RouterGroup) {
	admin := rg.Group("/access")
	admin.Use(middleware.Auth(container.GetRedis(), m.JWT))
	admin.Use(middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByUserID(), nil))
	admin.Use(middleware.RequireRole(m.Access, entity.RoleAdmin))
	{
		admin.GET("/groups", m.Handler.ListGroups)
		admin.GET("/users/:id/permissions", m.Handler.UserPermissions)
		admin.PUT("/users/:id/groups", m.Handler.SetUserGroups)
		admin.PUT("/users/:id/role", m.Handler.SetRole)
	}
}
