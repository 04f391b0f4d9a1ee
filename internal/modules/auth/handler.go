package auth

import (
	"errors"
	"net/http"

	"congrego/internal/middleware"
	"congrego/internal/pkg/response"
	"congrego/internal/repository"

	"github.com/gin-gonic/gin"
)

// Handler manages all HTTP interactions for authentication.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(v1 *gin.RouterGroup) {
	authGroup := v1.Group("/auth")
	{
		authGroup.POST("/login", middleware.Require(middleware.Public), h.Login)
		authGroup.POST("/register", middleware.Require(middleware.Admin), h.Register)
		authGroup.GET("/profile", middleware.Require(middleware.Authenticated), h.GetProfile)
		authGroup.PUT("/edit", middleware.Require(middleware.Authenticated), h.UpdateProfile)
		authGroup.POST("/logout", middleware.Require(middleware.Authenticated), h.Logout)
		authGroup.DELETE("/delete", middleware.Require(middleware.Authenticated), h.DeleteAccount)
	}
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	user, token, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmailAlreadyExists):
			response.Error(c, http.StatusConflict, "EMAIL_EXISTS", "This email is already registered")
		case errors.Is(err, repository.ErrStoreUnavailable):
			response.Error(c, http.StatusServiceUnavailable, "STORE_UNAVAILABLE", "Storage temporarily unavailable, retry later")
		default:
			response.Error(c, http.StatusInternalServerError, "REGISTRATION_FAILED", "Failed to register user")
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"user":  toUserResponse(user),
		"token": token,
	})
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	user, token, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidCredentials):
			response.Error(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Email or password is incorrect")
		case errors.Is(err, repository.ErrStoreUnavailable):
			response.Error(c, http.StatusServiceUnavailable, "STORE_UNAVAILABLE", "Storage temporarily unavailable, retry later")
		default:
			response.Error(c, http.StatusInternalServerError, "LOGIN_FAILED", "Failed to login")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"user":  toUserResponse(user),
		"token": token,
	})
}

func (h *Handler) GetProfile(c *gin.Context) {
	user, err := h.service.GetProfile(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrUserNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "User not found")
		case errors.Is(err, repository.ErrStoreUnavailable):
			response.Error(c, http.StatusServiceUnavailable, "STORE_UNAVAILABLE", "Storage temporarily unavailable, retry later")
		default:
			response.Error(c, http.StatusInternalServerError, "PROFILE_FAILED", "Failed to load profile")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"user": toUserResponse(user)})
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	user, err := h.service.UpdateProfile(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrUserNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "User not found")
		case errors.Is(err, repository.ErrStoreUnavailable):
			response.Error(c, http.StatusServiceUnavailable, "STORE_UNAVAILABLE", "Storage temporarily unavailable, retry later")
		default:
			response.Error(c, http.StatusInternalServerError, "UPDATE_FAILED", "Could not update profile")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"user": toUserResponse(user)})
}

// Logout is stateless: tokens are short-lived JWTs, so the server only
// acknowledges and the client discards its copy.
func (h *Handler) Logout(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"message": "Logged out"})
}

func (h *Handler) DeleteAccount(c *gin.Context) {
	if err := h.service.DeleteAccount(c.Request.Context(), c.GetInt64("user_id")); err != nil {
		switch {
		case errors.Is(err, ErrUserNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "User not found")
		case errors.Is(err, repository.ErrStoreUnavailable):
			response.Error(c, http.StatusServiceUnavailable, "STORE_UNAVAILABLE", "Storage temporarily unavailable, retry later")
		default:
			response.Error(c, http.StatusInternalServerError, "DELETE_FAILED", "Could not delete account")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Account deleted"})
}
