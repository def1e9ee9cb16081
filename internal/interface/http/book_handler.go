package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/librarium/librarium/internal/application"
	"github.com/librarium/librarium/pkg/response"
	"github.com/librarium/librarium/pkg/sanitize"
	"github.com/librarium/librarium/pkg/validation"
)

type BookHandler struct {
	Svc    *application.BookService
	Logger *logrus.Logger
}

func NewBookHandler(svc *application.BookService, logger *logrus.Logger) *BookHandler {
	return &BookHandler{Svc: svc, Logger: logger}
}

type bookRequest struct {
	Title           string `json:"title" binding:"required,min=2,max=200"`
	AuthorID        string `json:"author_id" binding:"required,uuid"`
	PublicationYear int    `json:"publication_year" binding:"required,bookyear"`
}

type bulkDeleteRequest struct {
	IDs []string `json:"ids" binding:"required,min=1"`
}

type bulkYearRequest struct {
	IDs             []string `json:"ids" binding:"required,min=1"`
	PublicationYear int      `json:"publication_year" binding:"required,bookyear"`
}

// failBook maps catalog service errors to HTTP responses.
func failBook(c *gin.Context, err error) {
	switch {
	case errors.Is(err, application.ErrNotFound):
		response.Fail(c, http.StatusNotFound, "not found", nil)
	case errors.Is(err, application.ErrDuplicate):
		response.Fail(c, http.StatusConflict, "book already exists for this author", nil)
	case errors.Is(err, sanitize.ErrSuspicious), errors.Is(err, sanitize.ErrTooShort):
		response.Fail(c, http.StatusBadRequest, "input rejected", err.Error())
	case errors.Is(err, application.ErrNoValidIDs):
		response.Fail(c, http.StatusBadRequest, "no valid ids", nil)
	default:
		response.Fail(c, http.StatusInternalServerError, "internal error", nil)
	}
}

func (h *BookHandler) List(c *gin.Context) {
	books, err := h.Svc.List(c.Request.Context())
	if err != nil {
		failBook(c, err)
		return
	}
	response.Success(c, http.StatusOK, books, "books", map[string]any{"count": len(books)})
}

func (h *BookHandler) Get(c *gin.Context) {
	b, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		failBook(c, err)
		return
	}
	response.Success(c, http.StatusOK, b, "book", nil)
}

func (h *BookHandler) Create(c *gin.Context) {
	var req bookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	b, err := h.Svc.Create(c.Request.Context(), application.BookInput{Title: req.Title, AuthorID: req.AuthorID, PublicationYear: req.PublicationYear})
	if err != nil {
		failBook(c, err)
		return
	}
	response.Success(c, http.StatusCreated, b, "book created", nil)
}

func (h *BookHandler) Update(c *gin.Context) {
	var req bookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	b, err := h.Svc.Update(c.Request.Context(), c.Param("id"), application.BookInput{Title: req.Title, AuthorID: req.AuthorID, PublicationYear: req.PublicationYear})
	if err != nil {
		failBook(c, err)
		return
	}
	response.Success(c, http.StatusOK, b, "book updated", nil)
}

func (h *BookHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		failBook(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, map[string]any{"deleted": true}, "book deleted", nil)
}

func (h *BookHandler) BulkDelete(c *gin.Context) {
	var req bulkDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	n, err := h.Svc.BulkDelete(c.Request.Context(), req.IDs)
	if err != nil {
		failBook(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": n}, "bulk delete complete", map[string]any{"requested": len(req.IDs)})
}

func (h *BookHandler) BulkSetYear(c *gin.Context) {
	var req bulkYearRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	n, err := h.Svc.BulkSetPublicationYear(c.Request.Context(), req.IDs, req.PublicationYear)
	if err != nil {
		failBook(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"updated": n}, "bulk update complete", map[string]any{"requested": len(req.IDs)})
}

// Search queries the book index. ?q= is required, ?size= optional.
func (h *BookHandler) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.Fail(c, http.StatusBadRequest, "missing query", nil)
		return
	}
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	hits, err := h.Svc.Search(c.Request.Context(), q, size)
	if err != nil {
		if h.Logger != nil {
			h.Logger.WithError(err).Warn("book search failed")
		}
		response.Fail(c, http.StatusBadGateway, "search unavailable", nil)
		return
	}
	response.Success(c, http.StatusOK, hits, "search results", map[string]any{"count": len(hits)})
}
