package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/librarium/librarium/internal/application"
	"github.com/librarium/librarium/pkg/response"
)

type DashboardHandler struct {
	Svc    *application.DashboardService
	Logger *logrus.Logger
}

func NewDashboardHandler(svc *application.DashboardService, logger *logrus.Logger) *DashboardHandler {
	return &DashboardHandler{Svc: svc, Logger: logger}
}

func (h *DashboardHandler) Admin(c *gin.Context) {
	d, err := h.Svc.Admin(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, "internal error", nil)
		return
	}
	response.Success(c, http.StatusOK, d, "admin dashboard", nil)
}

func (h *DashboardHandler) Librarian(c *gin.Context) {
	d, err := h.Svc.Librarian(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, "internal error", nil)
		return
	}
	response.Success(c, http.StatusOK, d, "librarian dashboard", nil)
}

func (h *DashboardHandler) Member(c *gin.Context) {
	d, err := h.Svc.Member(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, "internal error", nil)
		return
	}
	response.Success(c, http.StatusOK, d, "member dashboard", nil)
}
