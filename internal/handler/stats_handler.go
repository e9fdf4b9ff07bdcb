package handler

import (
	"net/http"
	"strconv"

	"gymbeauty/internal/middleware"
	"gymbeauty/internal/service"
	"gymbeauty/pkg/response"

	"github.com/gin-gonic/gin"
)

type StatsHandler struct {
	statsService      service.StatsService
	membershipService service.MembershipService
}

func NewStatsHandler(statsService service.StatsService, membershipService service.MembershipService) *StatsHandler {
	return &StatsHandler{statsService: statsService, membershipService: membershipService}
}

func (h *StatsHandler) RegisterRoutes(router *gin.RouterGroup) {
	stats := router.Group("/stats", middleware.RequireRole("admin", "staff"))
	{
		stats.GET("", h.Overview)
		stats.GET("/daily-checkins", h.DailyCheckins)
		stats.GET("/active-memberships", h.ActiveMemberships)
	}
}

// Overview returns the dashboard summary
// @Summary      Stats overview
// @Description  Visit counts for today/week/month, membership state counts and salon totals
// @Tags         stats
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=model.StatsOverview}
// @Router       /api/stats [get]
func (h *StatsHandler) Overview(c *gin.Context) {
	overview, err := h.statsService.Overview(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, overview))
}

// DailyCheckins returns the per-day visit series
// @Summary      Daily check-in counts
// @Tags         stats
// @Security     BearerAuth
// @Produce      json
// @Param        days  query     int  false  "Window in days (default 30)"
// @Success      200   {object}  response.Response{data=[]model.DailyCheckinCount}
// @Router       /api/stats/daily-checkins [get]
func (h *StatsHandler) DailyCheckins(c *gin.Context) {
	days, _ := strconv.Atoi(c.DefaultQuery("days", "30"))
	rows, err := h.statsService.DailyCheckins(c.Request.Context(), days)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, rows))
}

// ActiveMemberships returns active subscriptions with derived status
// @Summary      Active memberships report
// @Description  Lists active subscriptions with status and remaining days: open-ended first, then expired, expiring soon and active
// @Tags         stats
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=[]model.ActiveMembershipRow}
// @Router       /api/stats/active-memberships [get]
func (h *StatsHandler) ActiveMemberships(c *gin.Context) {
	rows, err := h.membershipService.ListActive(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, rows))
}
