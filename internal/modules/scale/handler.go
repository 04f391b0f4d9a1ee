package scale

import (
	"errors"
	"net/http"
	"strconv"

	"congrego/internal/middleware"
	"congrego/internal/pkg/response"
	"congrego/internal/repository"
	"congrego/internal/schedule"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(v1 *gin.RouterGroup) {
	group := v1.Group("/scales")
	{
		group.POST("", middleware.Require(middleware.Admin), h.Create)
		group.GET("", middleware.Require(middleware.Authenticated), h.List)
		group.POST("/confirm", middleware.Require(middleware.Authenticated), h.Confirm)
		group.GET("/my", middleware.Require(middleware.Authenticated), h.ListMine)
		group.PUT("/search", middleware.Require(middleware.Admin), h.Search)
		group.POST("/duplicate/:id", middleware.Require(middleware.Admin), h.Duplicate)
		group.GET("/:id", middleware.Require(middleware.Authenticated), h.Get)
		group.PUT("/:id", middleware.Require(middleware.Admin), h.Update)
		group.DELETE("/:id", middleware.Require(middleware.Admin), h.Delete)
	}
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrScaleNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Scale not found")
	case errors.Is(err, ErrNotOnScale):
		response.Error(c, http.StatusForbidden, "NOT_ON_SCALE", "You hold no position on this scale")
	case errors.Is(err, schedule.ErrInvalidDate):
		response.Error(c, http.StatusBadRequest, "INVALID_DATE", "Dates must be valid DD/MM/YYYY")
	case errors.Is(err, repository.ErrStoreUnavailable):
		response.Error(c, http.StatusServiceUnavailable, "STORE_UNAVAILABLE", "Storage temporarily unavailable, retry later")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong")
	}
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateScaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	scale, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"scale": toScaleResponse(scale, nil)})
}

func (h *Handler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	scales, pagination, err := h.service.ListPage(c.Request.Context(), page, pageSize)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"scales":     scales,
		"pagination": pagination,
	})
}

func (h *Handler) Confirm(c *gin.Context) {
	var req ConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	confirmation, err := h.service.Confirm(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"confirmation": confirmation})
}

func (h *Handler) ListMine(c *gin.Context) {
	scales, err := h.service.ListMine(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"scales": scales})
}

func (h *Handler) Search(c *gin.Context) {
	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	scales, err := h.service.Search(c.Request.Context(), req.Name)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"scales": scales})
}

func (h *Handler) Duplicate(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid scale ID")
		return
	}

	scale, err := h.service.Duplicate(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"scale": toScaleResponse(scale, nil)})
}

func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid scale ID")
		return
	}

	scale, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"scale": scale})
}

func (h *Handler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid scale ID")
		return
	}

	var req UpdateScaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	scale, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"scale": toScaleResponse(scale, nil)})
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid scale ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Scale deleted"})
}
