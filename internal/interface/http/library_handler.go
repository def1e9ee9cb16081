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

type LibraryHandler struct {
	Svc    *application.LibraryService
	Logger *logrus.Logger
}

func NewLibraryHandler(svc *application.LibraryService, logger *logrus.Logger) *LibraryHandler {
	return &LibraryHandler{Svc: svc, Logger: logger}
}

type libraryRequest struct {
	Name string `json:"name" binding:"required,min=2,max=100"`
}

type libraryBookRequest struct {
	BookID string `json:"book_id" binding:"required,uuid"`
}

type librarianRequest struct {
	Name      string `json:"name" binding:"required,min=2,max=100"`
	LibraryID string `json:"library_id" binding:"required,uuid"`
}

func failLibrary(c *gin.Context, err error) {
	switch {
	case errors.Is(err, application.ErrNotFound):
		response.Fail(c, http.StatusNotFound, "not found", nil)
	case errors.Is(err, application.ErrDuplicate):
		response.Fail(c, http.StatusConflict, "library already exists", nil)
	case errors.Is(err, application.ErrLibrarianAssigned):
		response.Fail(c, http.StatusConflict, "library already has a librarian", nil)
	case errors.Is(err, sanitize.ErrSuspicious), errors.Is(err, sanitize.ErrInvalidName), errors.Is(err, sanitize.ErrTooShort):
		response.Fail(c, http.StatusBadRequest, "invalid name", err.Error())
	default:
		response.Fail(c, http.StatusInternalServerError, "internal error", nil)
	}
}

func (h *LibraryHandler) List(c *gin.Context) {
	libs, err := h.Svc.List(c.Request.Context())
	if err != nil {
		failLibrary(c, err)
		return
	}
	response.Success(c, http.StatusOK, libs, "libraries", map[string]any{"count": len(libs)})
}

func (h *LibraryHandler) Get(c *gin.Context) {
	detail, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		failLibrary(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"library": detail.Library,
		"books":   detail.Books,
	}, "library", nil)
}

func (h *LibraryHandler) Create(c *gin.Context) {
	var req libraryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	l, err := h.Svc.Create(c.Request.Context(), req.Name)
	if err != nil {
		failLibrary(c, err)
		return
	}
	response.Success(c, http.StatusCreated, l, "library created", nil)
}

func (h *LibraryHandler) Update(c *gin.Context) {
	var req libraryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	l, err := h.Svc.Update(c.Request.Context(), c.Param("id"), req.Name)
	if err != nil {
		failLibrary(c, err)
		return
	}
	response.Success(c, http.StatusOK, l, "library updated", nil)
}

func (h *LibraryHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		failLibrary(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, map[string]any{"deleted": true}, "library deleted", nil)
}

func (h *LibraryHandler) AttachBook(c *gin.Context) {
	var req libraryBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	if err := h.Svc.AttachBook(c.Request.Context(), c.Param("id"), req.BookID); err != nil {
		failLibrary(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, map[string]any{"attached": true}, "book attached", nil)
}

func (h *LibraryHandler) DetachBook(c *gin.Context) {
	if err := h.Svc.DetachBook(c.Request.Context(), c.Param("id"), c.Param("bookID")); err != nil {
		failLibrary(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, map[string]any{"detached": true}, "book detached", nil)
}

func (h *LibraryHandler) Stats(c *gin.Context) {
	st, err := h.Svc.Stats(c.Request.Context(), c.Param("id"))
	if err != nil {
		failLibrary(c, err)
		return
	}
	response.Success(c, http.StatusOK, st, "library stats", nil)
}

func (h *LibraryHandler) AssignLibrarian(c *gin.Context) {
	var req librarianRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	lb, err := h.Svc.AssignLibrarian(c.Request.Context(), req.Name, req.LibraryID)
	if err != nil {
		failLibrary(c, err)
		return
	}
	response.Success(c, http.StatusCreated, lb, "librarian assigned", nil)
}

func (h *LibraryHandler) ListLibrarians(c *gin.Context) {
	lbs, err := h.Svc.ListLibrarians(c.Request.Context())
	if err != nil {
		failLibrary(c, err)
		return
	}
	response.Success(c, http.StatusOK, lbs, "librarians", map[string]any{"count": len(lbs)})
}

func (h *LibraryHandler) RemoveLibrarian(c *gin.Context) {
	if err := h.Svc.RemoveLibrarian(c.Request.Context(), c.Param("id")); err != nil {
		failLibrary(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, map[string]any{"removed": true}, "librarian removed", nil)
}
