package handler

import (
	"errors"
	"net/http"
	"strconv"

	"gymbeauty/internal/middleware"
	"gymbeauty/internal/service"
	"gymbeauty/pkg/response"

	"github.com/gin-gonic/gin"
)

type MembershipHandler struct {
	membershipService service.MembershipService
	paymentService    service.PaymentService
}

func NewMembershipHandler(membershipService service.MembershipService, paymentService service.PaymentService) *MembershipHandler {
	return &MembershipHandler{membershipService: membershipService, paymentService: paymentService}
}

func (h *MembershipHandler) RegisterRoutes(router *gin.RouterGroup) {
	memberships := router.Group("/gym-memberships", middleware.RequireRole("admin", "staff"))
	{
		memberships.GET("", h.List)
		memberships.POST("", h.Create)
		memberships.GET("/member/:id", h.ListByMember)
		memberships.GET("/active/:id", h.GetActive)
		memberships.PUT("/:id", h.Update)
		memberships.PATCH("/:id/deactivate", h.Deactivate)
		memberships.DELETE("/:id", h.Delete)
	}
	payments := router.Group("/payments", middleware.RequireRole("admin", "staff"))
	{
		payments.POST("", h.CreatePayment)
		payments.GET("", h.ListPayments)
		payments.GET("/member/:id", h.ListPaymentsByMember)
	}
}

// Create opens a new subscription period
// @Summary      Create membership
// @Description  Opens a subscription period and closes the member's previous active one
// @Tags         memberships
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CreateMembershipRequest  true  "New membership"
// @Success      201      {object}  response.Response{data=model.GymMembership}
// @Failure      404      {object}  response.Response
// @Router       /api/gym-memberships [post]
func (h *MembershipHandler) Create(c *gin.Context) {
	var req service.CreateMembershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	m, err := h.membershipService.Create(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrMemberNotFound) {
			c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
			return
		}
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, m))
}

// List returns all subscription periods, newest first
// @Summary      List memberships
// @Tags         memberships
// @Security     BearerAuth
// @Produce      json
// @Param        page   query     int  false  "Page number"
// @Param        limit  query     int  false  "Items per page"
// @Success      200    {object}  response.Response{data=[]model.GymMembership}
// @Router       /api/gym-memberships [get]
func (h *MembershipHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	rows, total, err := h.membershipService.List(c.Request.Context(), page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Paginated(http.StatusOK, rows, page, limit, total))
}

// Update edits a subscription period
// @Summary      Update membership
// @Tags         memberships
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      int                              true  "Membership ID"
// @Param        payload  body      service.UpdateMembershipRequest  true  "Updated fields"
// @Success      200      {object}  response.Response{data=model.GymMembership}
// @Failure      404      {object}  response.Response
// @Router       /api/gym-memberships/{id} [put]
func (h *MembershipHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid membership ID"))
		return
	}
	var req service.UpdateMembershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	m, err := h.membershipService.Update(c.Request.Context(), uint(id), req)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
			return
		}
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, m))
}

// ListByMember returns one member's subscription history
// @Summary      Member memberships
// @Tags         memberships
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      int  true  "Member ID"
// @Success      200  {object}  response.Response{data=[]model.GymMembership}
// @Router       /api/gym-memberships/member/{id} [get]
func (h *MembershipHandler) ListByMember(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid member ID"))
		return
	}
	rows, err := h.membershipService.ListByMember(c.Request.Context(), uint(id))
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, rows))
}

// GetActive returns a member's current subscription
// @Summary      Member active membership
// @Tags         memberships
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      int  true  "Member ID"
// @Success      200  {object}  response.Response{data=model.GymMembership}
// @Failure      404  {object}  response.Response
// @Router       /api/gym-memberships/active/{id} [get]
func (h *MembershipHandler) GetActive(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid member ID"))
		return
	}
	m, err := h.membershipService.GetActive(c.Request.Context(), uint(id))
	if err != nil {
		if errors.Is(err, service.ErrNoActiveMembership) {
			c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, m))
}

// Deactivate closes one subscription period
// @Summary      Deactivate membership
// @Tags         memberships
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      int  true  "Membership ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/gym-memberships/{id}/deactivate [patch]
func (h *MembershipHandler) Deactivate(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid membership ID"))
		return
	}
	if err := h.membershipService.Deactivate(c.Request.Context(), uint(id)); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, "Membership deactivated"))
}

// Delete removes one subscription period
// @Summary      Delete membership
// @Tags         memberships
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      int  true  "Membership ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/gym-memberships/{id} [delete]
func (h *MembershipHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid membership ID"))
		return
	}
	if err := h.membershipService.Delete(c.Request.Context(), uint(id)); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, "Membership deleted"))
}

// CreatePayment records a gym fee payment
// @Summary      Create payment
// @Tags         payments
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CreatePaymentRequest  true  "Payment"
// @Success      201      {object}  response.Response{data=model.GymPayment}
// @Failure      404      {object}  response.Response
// @Router       /api/payments [post]
func (h *MembershipHandler) CreatePayment(c *gin.Context) {
	var req service.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	payment, err := h.paymentService.Create(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrMemberNotFound) {
			c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
			return
		}
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, payment))
}

// ListPayments returns all gym payments
// @Summary      List payments
// @Tags         payments
// @Security     BearerAuth
// @Produce      json
// @Param        page   query     int  false  "Page number"
// @Param        limit  query     int  false  "Items per page"
// @Success      200    {object}  response.Response{data=[]model.GymPayment}
// @Router       /api/payments [get]
func (h *MembershipHandler) ListPayments(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	rows, total, err := h.paymentService.List(c.Request.Context(), page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Paginated(http.StatusOK, rows, page, limit, total))
}

// ListPaymentsByMember returns one member's payment history
// @Summary      Member payments
// @Tags         payments
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      int  true  "Member ID"
// @Success      200  {object}  response.Response{data=[]model.GymPayment}
// @Failure      404  {object}  response.Response
// @Router       /api/payments/member/{id} [get]
func (h *MembershipHandler) ListPaymentsByMember(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid member ID"))
		return
	}
	rows, err := h.paymentService.ListByMember(c.Request.Context(), uint(id))
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
