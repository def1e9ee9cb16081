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

// DashboardModule wires the role-gated dashboard routes.
type DashboardModule struct {
	Handler *handlers.DashboardHandler
	JWT     *helpers.JWTManager
	Access  *application.AccessService
}

func NewDashboardModule(h *handlers.DashboardHandler, jwt *helpers.JWTManager, access *application.AccessService) *DashboardModule {
	return &DashboardModule{Handler: h, JWT: jwt, Access: access}
}

func (m *DashboardModule) Register(rg *gin.RouterGroup) {
	dash := rg.Group("/dashboard")
	dash.Use(middleware.Auth(container.GetRedis(), m.JWT))
	dash.Use(middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByUserID(), nil))
	{
		dash.GET("/admin", middleware.RequireRole(m.Access, entity.RoleAdmin), m.Handler.Admin)
		dash.GET("/librarian", middleware.RequireRole(m.Access, entity.RoleLibrarian), m.Handler.Librarian)
		dash.GET("/member", middleware.RequireRole(m.Access, entity.RoleMember), m.Handler.Member)
	}
}
