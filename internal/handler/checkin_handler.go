package handler

import (
	"errors"
	"net/http"
	"strconv"

	"gymbeauty/internal/middleware"
	"gymbeauty/internal/service"
	"gymbeauty/pkg/pagination"
	"gymbeauty/pkg/response"

	"github.com/gin-gonic/gin"
)

type CheckInHandler struct {
	checkinService service.CheckInService
}

func NewCheckInHandler(checkinService service.CheckInService) *CheckInHandler {
	return &CheckInHandler{checkinService: checkinService}
}

func (h *CheckInHandler) RegisterRoutes(router *gin.RouterGroup) {
	checkins := router.Group("/checkins", middleware.RequireRole("admin", "staff"))
	{
		checkins.POST("", h.Create)
		checkins.GET("", h.Recent)
		checkins.GET("/member/:id", h.History)
		checkins.GET("/date/:startDate/:endDate", h.ByDateRange)
		checkins.DELETE("/:id", h.Delete)
	}
}

// Create records a gym check-in from a scanned code
// @Summary      Check in
// @Description  Validates the member code, membership state and the one-visit-per-day rule, then records the visit
// @Tags         checkins
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CheckInRequest  true  "Scanned code"
// @Success      201      {object}  response.Response{data=service.CheckInResult}
// @Failure      400      {object}  response.Response  "Membership inactive or expired, or already checked in today"
// @Failure      404      {object}  response.Response  "Unknown code"
// @Router       /api/checkins [post]
func (h *CheckInHandler) Create(c *gin.Context) {
	var req service.CheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	result, err := h.checkinService.Create(c.Request.Context(), req)
	if err != nil {
		var expired service.ExpiredError
		switch {
		case errors.Is(err, service.ErrMemberNotFound):
			c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
		case errors.Is(err, service.ErrInactiveMembership):
			c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		case errors.As(err, &expired):
			c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, expired.Error()))
		case errors.Is(err, service.ErrAlreadyCheckedInToday):
			c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		default:
			c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		}
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, result))
}

// Recent lists the latest check-ins across all members
// @Summary      Recent check-ins
// @Tags         checkins
// @Security     BearerAuth
// @Produce      json
// @Param        page   query     int  false  "Page number"
// @Param        limit  query     int  false  "Items per page"
// @Success      200    {object}  response.Response{data=[]model.CheckInWithMember}
// @Router       /api/checkins [get]
func (h *CheckInHandler) Recent(c *gin.Context) {
	p := pagination.Parse(c)
	rows, total, err := h.checkinService.Recent(c.Request.Context(), p.Page, p.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Paginated(http.StatusOK, rows, p.Page, p.Limit, total))
}

// History lists one member's check-ins
// @Summary      Member check-in history
// @Tags         checkins
// @Security     BearerAuth
// @Produce      json
// @Param        id     path      int  true   "Member ID"
// @Param        limit  query     int  false  "Max rows (default all)"
// @Success      200    {object}  response.Response{data=[]model.CheckIn}
// @Failure      404    {object}  response.Response
// @Router       /api/checkins/member/{id} [get]
func (h *CheckInHandler) History(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid member ID"))
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	rows, err := h.checkinService.History(c.Request.Context(), uint(id), limit)
	if err != nil {
		if errors.Is(err, service.ErrMemberNotFound) {
			c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, rows))
}

// ByDateRange lists check-ins between two dates inclusive
// @Summary      Check-ins by date range
// @Tags         checkins
// @Security     BearerAuth
// @Produce      json
// @Param        startDate  path      string  true  "Start date (YYYY-MM-DD)"
// @Param        endDate    path      string  true  "End date (YYYY-MM-DD)"
// @Success      200        {object}  response.Response{data=[]model.CheckInWithMember}
// @Failure      400        {object}  response.Response
// @Router       /api/checkins/date/{startDate}/{endDate} [get]
func (h *CheckInHandler) ByDateRange(c *gin.Context) {
	rows, err := h.checkinService.ListByDateRange(c.Request.Context(), c.Param("startDate"), c.Param("endDate"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, rows))
}

// Delete removes one check-in record
// @Summary      Delete check-in
// @Tags         checkins
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      int  true  "Check-in ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/checkins/{id} [delete]
func (h *CheckInHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid check-in ID"))
		return
	}
	if err := h.checkinService.Delete(c.Request.Context(), uint(id)); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, "Check-in deleted"))
}
