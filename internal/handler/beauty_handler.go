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

type BeautyHandler struct {
	beautyService service.BeautyService
}

func NewBeautyHandler(beautyService service.BeautyService) *BeautyHandler {
	return &BeautyHandler{beautyService: beautyService}
}

func (h *BeautyHandler) RegisterRoutes(router *gin.RouterGroup) {
	beauty := router.Group("/beauty", middleware.RequireRole("admin", "staff"))
	{
		beauty.GET("", h.List)
		beauty.POST("", h.Create)
		beauty.GET("/service-types", h.Catalog)
		beauty.GET("/member/:id", h.ListByMember)
		beauty.GET("/:id", h.Get)
		beauty.PUT("/:id", h.Update)
		beauty.DELETE("/:id", h.Delete)
	}
}

func beautyID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid record ID"))
		return 0, false
	}
	return uint(id), true
}

// List returns salon service records with member names
// @Summary      List beauty services
// @Tags         beauty
// @Security     BearerAuth
// @Produce      json
// @Param        page   query     int     false  "Page number"
// @Param        limit  query     int     false  "Items per page"
// @Param        type   query     string  false  "Filter by service type"
// @Success      200    {object}  response.Response{data=[]model.BeautyServiceWithMember}
// @Router       /api/beauty [get]
func (h *BeautyHandler) List(c *gin.Context) {
	p := pagination.Parse(c)
	rows, total, err := h.beautyService.List(c.Request.Context(), p.Page, p.Limit, c.Query("type"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Paginated(http.StatusOK, rows, p.Page, p.Limit, total))
}

// Create records a rendered salon service
// @Summary      Create beauty service
// @Tags         beauty
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CreateBeautyServiceRequest  true  "Service record"
// @Success      201      {object}  response.Response{data=model.BeautyService}
// @Failure      404      {object}  response.Response
// @Router       /api/beauty [post]
func (h *BeautyHandler) Create(c *gin.Context) {
	var req service.CreateBeautyServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	svc, err := h.beautyService.Create(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrMemberNotFound) {
			c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
			return
		}
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, svc))
}

// Catalog returns the closed service-type catalog
// @Summary      Service type catalog
// @Tags         beauty
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=map[string]string}
// @Router       /api/beauty/service-types [get]
func (h *BeautyHandler) Catalog(c *gin.Context) {
	c.JSON(http.StatusOK, response.Success(http.StatusOK, h.beautyService.Catalog()))
}

// Get returns one salon record
// @Summary      Get beauty service
// @Tags         beauty
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      int  true  "Record ID"
// @Success      200  {object}  response.Response{data=model.BeautyService}
// @Failure      404  {object}  response.Response
// @Router       /api/beauty/{id} [get]
func (h *BeautyHandler) Get(c *gin.Context) {
	id, ok := beautyID(c)
	if !ok {
		return
	}
	svc, err := h.beautyService.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, svc))
}

// ListByMember returns one member's salon history
// @Summary      Member beauty history
// @Tags         beauty
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      int  true  "Member ID"
// @Success      200  {object}  response.Response{data=[]model.BeautyService}
// @Failure      404  {object}  response.Response
// @Router       /api/beauty/member/{id} [get]
func (h *BeautyHandler) ListByMember(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid member ID"))
		return
	}

	rows, err := h.beautyService.ListByMember(c.Request.Context(), uint(id))
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

// Update edits a salon record
// @Summary      Update beauty service
// @Tags         beauty
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      int                                 true  "Record ID"
// @Param        payload  body      service.UpdateBeautyServiceRequest  true  "Updated record"
// @Success      200      {object}  response.Response{data=model.BeautyService}
// @Failure      404      {object}  response.Response
// @Router       /api/beauty/{id} [put]
func (h *BeautyHandler) Update(c *gin.Context) {
	id, ok := beautyID(c)
	if !ok {
		return
	}
	var req service.UpdateBeautyServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	svc, err := h.beautyService.Update(c.Request.Context(), id, req)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
			return
		}
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, svc))
}

// Delete removes a salon record
// @Summary      Delete beauty service
// @Tags         beauty
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      int  true  "Record ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/beauty/{id} [delete]
func (h *BeautyHandler) Delete(c *gin.Context) {
	id, ok := beautyID(c)
	if !ok {
		return
	}
	if err := h.beautyService.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, "Record deleted"))
}
