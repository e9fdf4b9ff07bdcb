package handler

import (
	"errors"
	"net/http"
	"time"

	"gymbeauty/internal/middleware"
	"gymbeauty/internal/service"
	"gymbeauty/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AppointmentHandler struct {
	appointmentService service.AppointmentService
}

func NewAppointmentHandler(appointmentService service.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{appointmentService: appointmentService}
}

func (h *AppointmentHandler) RegisterRoutes(router *gin.RouterGroup) {
	appointments := router.Group("/appointments", middleware.RequireRole("admin", "staff"))
	{
		appointments.GET("", h.List)
		appointments.POST("", h.Create)
		appointments.GET("/:id", h.Get)
		appointments.PATCH("/:id/status", h.UpdateStatus)
	}
	staff := router.Group("/staff", middleware.RequireRole("admin", "staff"))
	{
		staff.GET("", h.ListStaff)
		staff.POST("", middleware.RequireRole("admin"), h.CreateStaff)
	}
	rooms := router.Group("/rooms", middleware.RequireRole("admin", "staff"))
	{
		rooms.GET("", h.ListRooms)
		rooms.POST("", middleware.RequireRole("admin"), h.CreateRoom)
	}
}

// List returns bookings inside a time window
// @Summary      List appointments
// @Tags         appointments
// @Security     BearerAuth
// @Produce      json
// @Param        from     query     string  false  "Window start (RFC3339, default today)"
// @Param        to       query     string  false  "Window end (RFC3339, default +7 days)"
// @Param        staffId  query     string  false  "Filter by staff member"
// @Param        status   query     string  false  "Filter by status"
// @Success      200      {object}  response.Response{data=[]model.Appointment}
// @Router       /api/appointments [get]
func (h *AppointmentHandler) List(c *gin.Context) {
	from := time.Now().Truncate(24 * time.Hour)
	to := from.AddDate(0, 0, 7)
	if v := c.Query("from"); v != "" {
		parsed, err := time.Parse(time.RFC3339, v)
		if err != nil {
			c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid from: "+err.Error()))
			return
		}
		from = parsed
	}
	if v := c.Query("to"); v != "" {
		parsed, err := time.Parse(time.RFC3339, v)
		if err != nil {
			c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid to: "+err.Error()))
			return
		}
		to = parsed
	}

	var staffID *uuid.UUID
	if v := c.Query("staffId"); v != "" {
		parsed, err := uuid.Parse(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid staffId"))
			return
		}
		staffID = &parsed
	}

	rows, err := h.appointmentService.List(c.Request.Context(), from, to, staffID, c.Query("status"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, rows))
}

// Create books a salon visit
// @Summary      Create appointment
// @Description  Books a visit for a member or guest; rejects overlaps with the same staff or room
// @Tags         appointments
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CreateAppointmentRequest  true  "Booking"
// @Success      201      {object}  response.Response{data=model.Appointment}
// @Failure      400      {object}  response.Response  "Schedule conflict"
// @Router       /api/appointments [post]
func (h *AppointmentHandler) Create(c *gin.Context) {
	var req service.CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	appointment, err := h.appointmentService.Create(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrScheduleConflict):
			c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		case errors.Is(err, service.ErrMemberNotFound):
			c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
		default:
			c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		}
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, appointment))
}

// Get returns one booking
// @Summary      Get appointment
// @Tags         appointments
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Appointment ID"
// @Success      200  {object}  response.Response{data=model.Appointment}
// @Failure      404  {object}  response.Response
// @Router       /api/appointments/{id} [get]
func (h *AppointmentHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid appointment ID"))
		return
	}
	appointment, err := h.appointmentService.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, appointment))
}

// UpdateStatus transitions a booking's lifecycle state
// @Summary      Update appointment status
// @Tags         appointments
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                                  true  "Appointment ID"
// @Param        payload  body      service.UpdateAppointmentStatusRequest  true  "New status"
// @Success      200      {object}  response.Response{data=model.Appointment}
// @Failure      404      {object}  response.Response
// @Router       /api/appointments/{id}/status [patch]
func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid appointment ID"))
		return
	}
	var req service.UpdateAppointmentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	appointment, err := h.appointmentService.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
			return
		}
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, appointment))
}

// ListStaff returns salon staff
// @Summary      List staff
// @Tags         appointments
// @Security     BearerAuth
// @Produce      json
// @Param        active  query     bool  false  "Only active staff"
// @Success      200     {object}  response.Response{data=[]model.Staff}
// @Router       /api/staff [get]
func (h *AppointmentHandler) ListStaff(c *gin.Context) {
	activeOnly := c.Query("active") == "true"
	rows, err := h.appointmentService.ListStaff(c.Request.Context(), activeOnly)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, rows))
}

// CreateStaff adds a staff member
// @Summary      Create staff
// @Tags         appointments
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CreateStaffRequest  true  "Staff member"
// @Success      201      {object}  response.Response{data=model.Staff}
// @Router       /api/staff [post]
func (h *AppointmentHandler) CreateStaff(c *gin.Context) {
	var req service.CreateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}
	staff, err := h.appointmentService.CreateStaff(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, staff))
}

// ListRooms returns treatment rooms
// @Summary      List rooms
// @Tags         appointments
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=[]model.Room}
// @Router       /api/rooms [get]
func (h *AppointmentHandler) ListRooms(c *gin.Context) {
	rows, err := h.appointmentService.ListRooms(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, rows))
}

// CreateRoom adds a treatment room
// @Summary      Create room
// @Tags         appointments
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CreateRoomRequest  true  "Room"
// @Success      201      {object}  response.Response{data=model.Room}
// @Router       /api/rooms [post]
func (h *AppointmentHandler) CreateRoom(c *gin.Context) {
	var req service.CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}
	room, err := h.appointmentService.CreateRoom(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, room))
}
