package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/librarium/librarium/internal/application"
	"github.com/librarium/librarium/pkg/response"
	"github.com/librarium/librarium/pkg/sanitize"
	"github.com/librarium/librarium/pkg/validation"
)

type AuthorHandler struct {
	Svc    *application.AuthorService
	Logger *logrus.Logger
}

func NewAuthorHandler(svc *application.AuthorService, logger *logrus.Logger) *AuthorHandler {
	return &AuthorHandler{Svc: svc, Logger: logger}
}

type authorRequest struct {
	Name string `json:"name" binding:"required,min=2,max=100"`
}

func failAuthor(c *gin.Context, err error) {
	switch {
	case errors.Is(err, application.ErrNotFound):
		response.Fail(c, http.StatusNotFound, "not found", nil)
	case errors.Is(err, application.ErrDuplicate):
		response.Fail(c, http.StatusConflict, "author already exists", nil)
	case errors.Is(err, sanitize.ErrSuspicious), errors.Is(err, sanitize.ErrInvalidName):
		response.Fail(c, http.StatusBadRequest, "invalid name", err.Error())
	default:
		response.Fail(c, http.StatusInternalServerError, "internal error", nil)
	}
}

func (h *AuthorHandler) List(c *gin.Context) {
	authors, err := h.Svc.List(c.Request.Context())
	if err != nil {
		failAuthor(c, err)
		return
	}
	response.Success(c, http.StatusOK, authors, "authors", map[string]any{"count": len(authors)})
}

// Get returns the author with its books and computed publication stats.
func (h *AuthorHandler) Get(c *gin.Context) {
	detail, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		failAuthor(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"author": detail.Author,
		"books":  detail.Books,
		"stats":  detail.Stats,
	}, "author", nil)
}

func (h *AuthorHandler) Create(c *gin.Context) {
	var req authorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	a, err := h.Svc.Create(c.Request.Context(), req.Name)
	if err != nil {
		failAuthor(c, err)
		return
	}
	response.Success(c, http.StatusCreated, a, "author created", nil)
}

func (h *AuthorHandler) Update(c *gin.Context) {
	var req authorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	a, err := h.Svc.Update(c.Request.Context(), c.Param("id"), req.Name)
	if err != nil {
		failAuthor(c, err)
		return
	}
	response.Success(c, http.StatusOK, a, "author updated", nil)
}

func (h *AuthorHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		failAuthor(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, map[string]any{"deleted": true}, "author deleted", nil)
}
