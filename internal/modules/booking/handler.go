package booking

import (
	"errors"
	"net/http"
	"strconv"
	"time"

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
	group := v1.Group("/bookings")
	{
		group.POST("", middleware.Require(middleware.Authenticated), h.Create)
		group.GET("", middleware.Require(middleware.Public), h.List)
		group.GET("/my", middleware.Require(middleware.Authenticated), h.ListMine)
		group.POST("/filter", middleware.Require(middleware.Authenticated), h.Filter)
		group.GET("/today", middleware.Require(middleware.Public), h.Today)
		group.GET("/week", middleware.Require(middleware.Public), h.Week)
		group.GET("/month", middleware.Require(middleware.Public), h.Month)
		group.GET("/calendar", middleware.Require(middleware.Public), h.Calendar)
		group.GET("/:id", middleware.Require(middleware.Public), h.Get)
		group.PUT("/:id", middleware.Require(middleware.Admin), h.Update)
		group.DELETE("/:id", middleware.Require(middleware.Admin), h.Delete)
	}
}

// writeError translates schedule and repository failures into the
// envelope; every booking endpoint funnels through it.
func writeError(c *gin.Context, err error) {
	var conflict *schedule.ConflictError
	switch {
	case errors.As(err, &conflict):
		response.ErrorWithDetails(c, http.StatusConflict, "BOOKING_CONFLICT",
			"The room is already booked in this interval", gin.H{"conflicting_ids": conflict.IDs})
	case errors.Is(err, ErrConflict):
		response.Error(c, http.StatusConflict, "BOOKING_CONFLICT", "The room is already booked in this interval")
	case errors.Is(err, schedule.ErrInvalidInterval):
		response.Error(c, http.StatusBadRequest, "INVALID_INTERVAL", "start_time must be before end_time")
	case errors.Is(err, schedule.ErrMissingField):
		response.Error(c, http.StatusBadRequest, "MISSING_FIELD", "Provide either a date or a valid recurrence rule")
	case errors.Is(err, schedule.ErrInvalidDate):
		response.Error(c, http.StatusBadRequest, "INVALID_DATE", "Dates must be valid DD/MM/YYYY")
	case errors.Is(err, schedule.ErrInvalidTime):
		response.Error(c, http.StatusBadRequest, "INVALID_TIME", "Times must be valid HH:mm")
	case errors.Is(err, ErrBookingNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Booking not found")
	case errors.Is(err, ErrRoomNotFound):
		response.Error(c, http.StatusNotFound, "ROOM_NOT_FOUND", "Room not found")
	case errors.Is(err, repository.ErrStoreUnavailable):
		response.Error(c, http.StatusServiceUnavailable, "STORE_UNAVAILABLE", "Storage temporarily unavailable, retry later")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong")
	}
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	b, err := h.service.Create(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"booking": toBookingResponse(b)})
}

func (h *Handler) List(c *gin.Context) {
	bookings, err := h.service.ListAll(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"bookings": toBookingResponses(bookings)})
}

func (h *Handler) ListMine(c *gin.Context) {
	bookings, err := h.service.ListMine(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"bookings": toBookingResponses(bookings)})
}

func (h *Handler) Filter(c *gin.Context) {
	var req FilterBookingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	bookings, err := h.service.Filter(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"bookings": toBookingResponses(bookings)})
}

func (h *Handler) Today(c *gin.Context) {
	bookings, err := h.service.Today(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"bookings": toBookingResponses(bookings)})
}

func (h *Handler) Week(c *gin.Context) {
	bookings, err := h.service.Week(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"bookings": toBookingResponses(bookings)})
}

func (h *Handler) Month(c *gin.Context) {
	bookings, err := h.service.Month(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"bookings": toBookingResponses(bookings)})
}

func (h *Handler) Calendar(c *gin.Context) {
	now := time.Now()
	year := now.Year()
	month := now.Month()

	if v := c.Query("year"); v != "" {
		y, err := strconv.Atoi(v)
		if err != nil || y < 1 {
			response.Error(c, http.StatusBadRequest, "INVALID_YEAR", "year must be a positive number")
			return
		}
		year = y
	}
	if v := c.Query("month"); v != "" {
		m, err := strconv.Atoi(v)
		if err != nil || m < 1 || m > 12 {
			response.Error(c, http.StatusBadRequest, "INVALID_MONTH", "month must be between 1 and 12")
			return
		}
		month = time.Month(m)
	}

	entries, err := h.service.Calendar(c.Request.Context(), year, month)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"calendar": entries})
}

func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid booking ID")
		return
	}

	b, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking": toBookingResponse(b)})
}

func (h *Handler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid booking ID")
		return
	}

	var req UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	b, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking": toBookingResponse(b)})
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid booking ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Booking deleted"})
}
