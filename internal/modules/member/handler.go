package member

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
	group := v1.Group("/members")
	{
		group.POST("", middleware.Require(middleware.Admin), h.Create)
		group.GET("", middleware.Require(middleware.Public), h.List)
		group.GET("/search", middleware.Require(middleware.Public), h.Search)
		group.POST("/filter", middleware.Require(middleware.Public), h.Filter)
		group.GET("/analytics", middleware.Require(middleware.Admin), h.Analytics)
		group.GET("/:id", middleware.Require(middleware.Public), h.Get)
		group.PUT("/:id", middleware.Require(middleware.Admin), h.Update)
		group.DELETE("/:id", middleware.Require(middleware.Admin), h.Delete)
	}
}

func writeError(c *gin.Context, err error) {
	var validation *ValidationError
	switch {
	case errors.As(err, &validation):
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR",
			"One or more member fields are invalid", validation.Fields)
	case errors.Is(err, ErrMemberNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Member not found")
	case errors.Is(err, schedule.ErrInvalidDate):
		response.Error(c, http.StatusBadRequest, "INVALID_DATE", "Dates must be valid DD/MM/YYYY")
	case errors.Is(err, repository.ErrInvalidFilter):
		response.Error(c, http.StatusBadRequest, "INVALID_FILTER", "Unsupported filter field or operator")
	case errors.Is(err, repository.ErrStoreUnavailable):
		response.Error(c, http.StatusServiceUnavailable, "STORE_UNAVAILABLE", "Storage temporarily unavailable, retry later")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong")
	}
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	m, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"member": toMemberResponse(m)})
}

func (h *Handler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	members, pagination, err := h.service.ListPage(c.Request.Context(), page, pageSize)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"members":    toMemberResponses(members),
		"pagination": pagination,
	})
}

func (h *Handler) Search(c *gin.Context) {
	name := c.Query("name")
	if name == "" {
		response.Error(c, http.StatusBadRequest, "MISSING_QUERY", "name query parameter is required")
		return
	}

	members, err := h.service.Search(c.Request.Context(), name)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"members": toMemberResponses(members)})
}

func (h *Handler) Filter(c *gin.Context) {
	var req FilterMembersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	members, err := h.service.Filter(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"members": toMemberResponses(members)})
}

func (h *Handler) Analytics(c *gin.Context) {
	analytics, err := h.service.Analytics(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, analytics)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid member ID")
		return
	}

	m, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"member": toMemberResponse(m)})
}

func (h *Handler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid member ID")
		return
	}

	var req UpdateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	m, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"member": toMemberResponse(m)})
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid member ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Member deleted"})
}
