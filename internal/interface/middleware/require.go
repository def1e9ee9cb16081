package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/librarium/librarium/pkg/response"
)

// PermissionChecker resolves whether a user holds a permission code.
type PermissionChecker interface {
	HasPermission(ctx context.Context, userID, perm string) (bool, error)
}

// RoleLookup resolves a user's profile role.
type RoleLookup interface {
	RoleOf(ctx context.Context, userID string) (string, error)
}

// RequirePermission gates a route on a permission code. Must run after Auth.
func RequirePermission(checker PermissionChecker, perm string) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.GetString(CtxUserIDKey)
		if uid == "" {
			resp := response.Error[any](c, http.StatusUnauthorized, "missing access token", nil)
			c.AbortWithStatusJSON(resp.Status, resp)
			return
		}
		ok, err := checker.HasPermission(c.Request.Context(), uid, perm)
		if err != nil {
			resp := response.Error[any](c, http.StatusInternalServerError, "permission check failed", err.Error())
			c.AbortWithStatusJSON(resp.Status, resp)
			return
		}
		if !ok {
			resp := response.Error[any](c, http.StatusForbidden, "permission denied", gin.H{"required": perm})
			c.AbortWithStatusJSON(resp.Status, resp)
			return
		}
		c.Next()
	}
}

// RequireRole gates a route on the profile role. The session role set by
// Auth is trusted first; the lookup is the fallback when it is absent.
func RequireRole(roles RoleLookup, want string) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.GetString(CtxUserIDKey)
		if uid == "" {
			resp := response.Error[any](c, http.StatusUnauthorized, "missing access token", nil)
			c.AbortWithStatusJSON(resp.Status, resp)
			return
		}
		role := c.GetString(CtxUserRoleKey)
		if role == "" && roles != nil {
			r, err := roles.RoleOf(c.Request.Context(), uid)
			if err != nil {
				resp := response.Error[any](c, http.StatusInternalServerError, "role check failed", err.Error())
				c.AbortWithStatusJSON(resp.Status, resp)
				return
			}
			role = r
		}
		if role != want {
			resp := response.Error[any](c, http.StatusForbidden, "role required", gin.H{"required": want})
			c.AbortWithStatusJSON(resp.Status, resp)
			return
		}
		c.Next()
	}
}
