package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeChecker struct {
	perms map[string]bool
	err   error
}

func (f *fakeChecker) HasPermission(_ context.Context, _, perm string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.perms[perm], nil
}

type fakeRoles struct {
	role string
	err  error
}

func (f *fakeRoles) RoleOf(_ context.Context, _ string) (string, error) {
	return f.role, f.err
}

func serve(handlers ...gin.HandlerFunc) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	all := append(handlers, func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	r.GET("/t", all...)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/t", nil)
	r.ServeHTTP(w, req)
	return w
}

func asUser(id, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(CtxUserIDKey, id)
		if role != "" {
			c.Set(CtxUserRoleKey, role)
		}
	}
}

func TestRequirePermission(t *testing.T) {
	checker := &fakeChecker{perms: map[string]bool{"book:view": true}}

	w := serve(asUser("u1", ""), RequirePermission(checker, "book:view"))
	assert.Equal(t, http.StatusOK, w.Code)

	w = serve(asUser("u1", ""), RequirePermission(checker, "book:delete"))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "permission denied")
}

func TestRequirePermissionUnauthenticated(t *testing.T) {
	checker := &fakeChecker{perms: map[string]bool{"book:view": true}}
	w := serve(RequirePermission(checker, "book:view"))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequirePermissionCheckerError(t *testing.T) {
	checker := &fakeChecker{err: errors.New("db down")}
	w := serve(asUser("u1", ""), RequirePermission(checker, "book:view"))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestRequireRoleFromContext(t *testing.T) {
	w := serve(asUser("u1", "Admin"), RequireRole(nil, "Admin"))
	assert.Equal(t, http.StatusOK, w.Code)

	w = serve(asUser("u1", "Member"), RequireRole(nil, "Admin"))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireRoleFallbackLookup(t *testing.T) {
	w := serve(asUser("u1", ""), RequireRole(&fakeRoles{role: "Librarian"}, "Librarian"))
	assert.Equal(t, http.StatusOK, w.Code)

	w = serve(asUser("u1", ""), RequireRole(&fakeRoles{err: errors.New("db down")}, "Librarian"))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestRequireRoleUnauthenticated(t *testing.T) {
	w := serve(RequireRole(&fakeRoles{role: "Admin"}, "Admin"))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
