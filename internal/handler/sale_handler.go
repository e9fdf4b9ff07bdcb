package handler

import (
	"errors"
	"net/http"
	"time"

	"gymbeauty/internal/middleware"
	"gymbeauty/internal/service"
	"gymbeauty/pkg/pagination"
	"gymbeauty/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type SaleHandler struct {
	saleService service.SaleService
}

func NewSaleHandler(saleService service.SaleService) *SaleHandler {
	return &SaleHandler{saleService: saleService}
}

func (h *SaleHandler) RegisterRoutes(router *gin.RouterGroup) {
	sales := router.Group("/sales", middleware.RequireRole("admin", "staff"))
	{
		sales.GET("", h.List)
		sales.POST("", h.Checkout)
		sales.GET("/:id", h.Get)
		sales.POST("/:id/refund", middleware.RequireRole("admin"), h.Refund)
	}
}

// Checkout sells products at the front desk
// @Summary      Checkout
// @Description  Creates a sale, decrements stock and journals the movements in one transaction
// @Tags         sales
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CheckoutRequest  true  "Cart"
// @Success      201      {object}  response.Response{data=model.Sale}
// @Failure      400      {object}  response.Response  "Insufficient stock"
// @Router       /api/sales [post]
func (h *SaleHandler) Checkout(c *gin.Context) {
	var req service.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	sale, err := h.saleService.Checkout(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInsufficientStock):
			c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		case errors.Is(err, service.ErrMemberNotFound):
			c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
		default:
			c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		}
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, sale))
}

// List returns sales, optionally filtered by date window
// @Summary      List sales
// @Tags         sales
// @Security     BearerAuth
// @Produce      json
// @Param        page   query     int     false  "Page number"
// @Param        limit  query     int     false  "Items per page"
// @Param        from   query     string  false  "Window start (RFC3339)"
// @Param        to     query     string  false  "Window end (RFC3339)"
// @Success      200    {object}  response.Response{data=[]model.Sale}
// @Router       /api/sales [get]
func (h *SaleHandler) List(c *gin.Context) {
	p := pagination.Parse(c)

	var from, to *time.Time
	if v := c.Query("from"); v != "" {
		parsed, err := time.Parse(time.RFC3339, v)
		if err != nil {
			c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid from: "+err.Error()))
			return
		}
		from = &parsed
	}
	if v := c.Query("to"); v != "" {
		parsed, err := time.Parse(time.RFC3339, v)
		if err != nil {
			c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid to: "+err.Error()))
			return
		}
		to = &parsed
	}

	sales, total, err := h.saleService.List(c.Request.Context(), p.Page, p.Limit, from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Paginated(http.StatusOK, sales, p.Page, p.Limit, total))
}

// Get returns one sale with its lines
// @Summary      Get sale
// @Tags         sales
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Sale ID"
// @Success      200  {object}  response.Response{data=model.Sale}
// @Failure      404  {object}  response.Response
// @Router       /api/sales/{id} [get]
func (h *SaleHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid sale ID"))
		return
	}
	sale, err := h.saleService.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, sale))
}

// Refund reverses sale lines
// @Summary      Refund sale
// @Description  Refunds selected lines at the captured unit price, optionally restocking the quantity
// @Tags         sales
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                 true  "Sale ID"
// @Param        payload  body      service.RefundRequest  true  "Lines to refund"
// @Success      201      {object}  response.Response{data=model.Refund}
// @Failure      404      {object}  response.Response
// @Router       /api/sales/{id}/refund [post]
func (h *SaleHandler) Refund(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid sale ID"))
		return
	}
	var req service.RefundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	refund, err := h.saleService.Refund(c.Request.Context(), id, req)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
			return
		}
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, refund))
}
