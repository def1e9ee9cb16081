package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/librarium/librarium/internal/application"
	"github.com/librarium/librarium/pkg/helpers"
	"github.com/librarium/librarium/pkg/response"
	"github.com/librarium/librarium/pkg/sanitize"
	"github.com/librarium/librarium/pkg/validation"
)

// maxPhotoSize caps profile photo uploads at 5 MiB.
const maxPhotoSize = 5 << 20

type UserHandler struct {
	Svc     *application.UserService
	Logger  *logrus.Logger
	Cookies *helpers.Manager
}

func NewUserHandler(svc *application.UserService, logger *logrus.Logger, cookieDomain string, cookieSecure bool) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger, Cookies: helpers.NewCookie(cookieDomain, cookieSecure)}
}

type registerRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
	Name     string `json:"name" binding:"required,min=2,max=100"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
}

type updateProfileRequest struct {
	Name        string `json:"name"`
	DateOfBirth string `json:"date_of_birth" binding:"omitempty,datetime=2006-01-02"`
}

func (h *UserHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Svc.Register(c.Request.Context(), application.RegisterInput{Email: req.Email, Password: req.Password, Name: req.Name})
	if err != nil {
		switch {
		case errors.Is(err, application.ErrDuplicate):
			response.Fail(c, http.StatusConflict, "email already registered", nil)
		case errors.Is(err, sanitize.ErrSuspicious), errors.Is(err, sanitize.ErrInvalidName):
			response.Fail(c, http.StatusBadRequest, "invalid name", err.Error())
		default:
			response.Fail(c, http.StatusInternalServerError, "registration failed", nil)
		}
		return
	}
	response.Success(c, http.StatusCreated, gin.H{
		"id":    u.ID,
		"email": u.Email,
		"name":  u.Name,
	}, "registered", nil)
}

func (h *UserHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	res, pair, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.Fail(c, http.StatusUnauthorized, "invalid credentials", nil)
		return
	}
	h.Cookies.SetPair(c, pair.AccessToken, pair.AccessTokenExpiry, pair.RefreshToken, pair.RefreshTokenExpiry)
	response.Success(c, http.StatusOK, res, "login successful", map[string]any{
		"access_expires_at":  pair.AccessTokenExpiry,
		"refresh_expires_at": pair.RefreshTokenExpiry,
	})
}

func (h *UserHandler) Refresh(c *gin.Context) {
	refresh, err := c.Cookie("refresh_token")
	if err != nil || refresh == "" {
		response.Fail(c, http.StatusUnauthorized, "missing refresh token", nil)
		return
	}
	pair, _, err := h.Svc.Refresh(c.Request.Context(), refresh)
	if err != nil {
		response.Fail(c, http.StatusUnauthorized, "invalid refresh token", nil)
		return
	}
	h.Cookies.SetPair(c, pair.AccessToken, pair.AccessTokenExpiry, pair.RefreshToken, pair.RefreshTokenExpiry)
	response.Success[any](c, http.StatusOK, map[string]any{"refreshed": true}, "token refreshed", map[string]any{
		"access_expires_at":  pair.AccessTokenExpiry,
		"refresh_expires_at": pair.RefreshTokenExpiry,
	})
}

func (h *UserHandler) Logout(c *gin.Context) {
	h.Svc.Logout(c.Request.Context(), c.GetString("userID"))
	h.Cookies.Clear(c)
	response.Success[any](c, http.StatusOK, map[string]any{"logged_out": true}, "logged out", nil)
}

func profilePayload(acc *application.AccountProfile) gin.H {
	var dob any
	if acc.Profile.DateOfBirth != nil {
		dob = acc.Profile.DateOfBirth.Format("2006-01-02")
	}
	return gin.H{
		"id":            acc.User.ID,
		"email":         acc.User.Email,
		"name":          acc.User.Name,
		"role":          acc.Profile.Role,
		"date_of_birth": dob,
		"photo_url":     acc.Profile.PhotoURL,
		"created_at":    acc.User.CreatedAt,
		"updated_at":    acc.User.UpdatedAt,
	}
}

func (h *UserHandler) GetProfile(c *gin.Context) {
	acc, err := h.Svc.GetProfile(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		response.Fail(c, http.StatusNotFound, "user not found", nil)
		return
	}
	response.Success(c, http.StatusOK, profilePayload(acc), "profile", nil)
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	in := application.UpdateProfileInput{Name: req.Name}
	if req.DateOfBirth != "" {
		dob, err := time.Parse("2006-01-02", req.DateOfBirth)
		if err != nil {
			response.Fail(c, http.StatusBadRequest, "invalid date_of_birth", nil)
			return
		}
		in.DateOfBirth = &dob
	}
	acc, err := h.Svc.UpdateProfile(c.Request.Context(), c.GetString("userID"), in)
	if err != nil {
		switch {
		case errors.Is(err, sanitize.ErrSuspicious), errors.Is(err, sanitize.ErrInvalidName):
			response.Fail(c, http.StatusBadRequest, "invalid name", err.Error())
		case errors.Is(err, application.ErrUserNotFound):
			response.Fail(c, http.StatusNotFound, "user not found", nil)
		default:
			response.Fail(c, http.StatusInternalServerError, "failed to update profile", nil)
		}
		return
	}
	response.Success(c, http.StatusOK, profilePayload(acc), "profile updated", nil)
}

// UploadPhoto accepts a multipart "photo" file and stores it in object storage.
func (h *UserHandler) UploadPhoto(c *gin.Context) {
	fh, err := c.FormFile("photo")
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "missing photo file", nil)
		return
	}
	if fh.Size > maxPhotoSize {
		response.Fail(c, http.StatusRequestEntityTooLarge, "photo too large", gin.H{"max_bytes": maxPhotoSize})
		return
	}
	f, err := fh.Open()
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "unreadable photo file", nil)
		return
	}
	defer func() { _ = f.Close() }()

	url, err := h.Svc.UploadPhoto(c.Request.Context(), c.GetString("userID"), f, fh.Filename, fh.Header.Get("Content-Type"))
	if err != nil {
		switch {
		case errors.Is(err, application.ErrNotImage):
			response.Fail(c, http.StatusUnsupportedMediaType, "file is not an image", nil)
		case errors.Is(err, application.ErrUserNotFound):
			response.Fail(c, http.StatusNotFound, "user not found", nil)
		default:
			if h.Logger != nil {
				h.Logger.WithError(err).Error("photo upload failed")
			}
			response.Fail(c, http.StatusInternalServerError, "photo upload failed", nil)
		}
		return
	}
	response.Success(c, http.StatusOK, gin.H{"photo_url": url}, "photo uploaded", nil)
}
