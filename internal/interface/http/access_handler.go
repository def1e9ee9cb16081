package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/librarium/librarium/internal/application"
	"github.com/librarium/librarium/pkg/response"
	"github.com/librarium/librarium/pkg/validation"
)

// AccessHandler exposes the admin surface for groups and roles.
type AccessHandler struct {
	Svc    *application.AccessService
	Logger *logrus.Logger
}

func NewAccessHandler(svc *application.AccessService, logger *logrus.Logger) *AccessHandler {
	return &AccessHandler{Svc: svc, Logger: logger}
}

type setGroupsRequest struct {
	Groups []string `json:"groups" binding:"required"`
}

type setRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=Admin Librarian Member"`
}

func failAccess(c *gin.Context, err error) {
	switch {
	case errors.Is(err, application.ErrUserNotFound):
		response.Fail(c, http.StatusNotFound, "user not found", nil)
	case errors.Is(err, application.ErrNotFound):
		response.Fail(c, http.StatusNotFound, "group not found", nil)
	case errors.Is(err, application.ErrInvalidRole):
		response.Fail(c, http.StatusBadRequest, "invalid role", nil)
	default:
		response.Fail(c, http.StatusInternalServerError, "internal error", nil)
	}
}

func (h *AccessHandler) ListGroups(c *gin.Context) {
	groups, err := h.Svc.ListGroups(c.Request.Context())
	if err != nil {
		failAccess(c, err)
		return
	}
	response.Success(c, http.StatusOK, groups, "groups", map[string]any{"count": len(groups)})
}

func (h *AccessHandler) UserPermissions(c *gin.Context) {
	perms, err := h.Svc.UserPermissions(c.Request.Context(), c.Param("id"))
	if err != nil {
		failAccess(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"permissions": perms}, "user permissions", nil)
}

func (h *AccessHandler) SetUserGroups(c *gin.Context) {
	var req setGroupsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	if err := h.Svc.SetUserGroups(c.Request.Context(), c.Param("id"), req.Groups); err != nil {
		failAccess(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, map[string]any{"updated": true}, "groups updated", nil)
}

func (h *AccessHandler) SetRole(c *gin.Context) {
	var req setRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	if err := h.Svc.SetRole(c.Request.Context(), c.Param("id"), req.Role); err != nil {
		failAccess(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, map[string]any{"updated": true}, "role updated", nil)
}
