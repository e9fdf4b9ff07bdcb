package handler

import (
	"errors"
	"net/http"

	"gymbeauty/internal/middleware"
	"gymbeauty/internal/service"
	"gymbeauty/pkg/pagination"
	"gymbeauty/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type InventoryHandler struct {
	inventoryService service.InventoryService
}

func NewInventoryHandler(inventoryService service.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventoryService: inventoryService}
}

func (h *InventoryHandler) RegisterRoutes(router *gin.RouterGroup) {
	products := router.Group("/products", middleware.RequireRole("admin", "staff"))
	{
		products.GET("", h.ListProducts)
		products.POST("", middleware.RequireRole("admin"), h.CreateProduct)
		products.GET("/low-stock", h.LowStock)
		products.GET("/:id", h.GetProduct)
		products.PUT("/:id", middleware.RequireRole("admin"), h.UpdateProduct)
		products.DELETE("/:id", middleware.RequireRole("admin"), h.DeleteProduct)
	}
	categories := router.Group("/categories", middleware.RequireRole("admin", "staff"))
	{
		categories.GET("", h.ListCategories)
		categories.POST("", middleware.RequireRole("admin"), h.CreateCategory)
	}
	inventory := router.Group("/inventory", middleware.RequireRole("admin", "staff"))
	{
		inventory.GET("/stock", h.Stock)
		inventory.POST("/stock-in", h.StockIn)
		inventory.POST("/adjust", middleware.RequireRole("admin"), h.Adjust)
		inventory.GET("/movements", h.Movements)
	}
}

func productID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid product ID"))
		return uuid.Nil, false
	}
	return id, true
}

// ListProducts returns retail products
// @Summary      List products
// @Tags         inventory
// @Security     BearerAuth
// @Produce      json
// @Param        page    query     int     false  "Page number"
// @Param        limit   query     int     false  "Items per page"
// @Param        search  query     string  false  "Search by name, SKU or barcode"
// @Param        active  query     bool    false  "Only active products"
// @Success      200     {object}  response.Response{data=[]model.Product}
// @Router       /api/products [get]
func (h *InventoryHandler) ListProducts(c *gin.Context) {
	p := pagination.Parse(c)
	products, total, err := h.inventoryService.ListProducts(c.Request.Context(), p.Page, p.Limit, c.Query("search"), c.Query("active") == "true")
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Paginated(http.StatusOK, products, p.Page, p.Limit, total))
}

// CreateProduct adds a retail product
// @Summary      Create product
// @Tags         inventory
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CreateProductRequest  true  "New product"
// @Success      201      {object}  response.Response{data=model.Product}
// @Failure      400      {object}  response.Response  "Duplicate SKU"
// @Router       /api/products [post]
func (h *InventoryHandler) CreateProduct(c *gin.Context) {
	var req service.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}
	product, err := h.inventoryService.CreateProduct(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, product))
}

// GetProduct returns one product
// @Summary      Get product
// @Tags         inventory
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Product ID"
// @Success      200  {object}  response.Response{data=model.Product}
// @Failure      404  {object}  response.Response
// @Router       /api/products/{id} [get]
func (h *InventoryHandler) GetProduct(c *gin.Context) {
	id, ok := productID(c)
	if !ok {
		return
	}
	product, err := h.inventoryService.GetProduct(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, product))
}

// UpdateProduct edits a product
// @Summary      Update product
// @Tags         inventory
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                        true  "Product ID"
// @Param        payload  body      service.UpdateProductRequest  true  "Updated product"
// @Success      200      {object}  response.Response{data=model.Product}
// @Failure      404      {object}  response.Response
// @Router       /api/products/{id} [put]
func (h *InventoryHandler) UpdateProduct(c *gin.Context) {
	id, ok := productID(c)
	if !ok {
		return
	}
	var req service.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}
	product, err := h.inventoryService.UpdateProduct(c.Request.Context(), id, req)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
			return
		}
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, product))
}

// DeleteProduct removes a product
// @Summary      Delete product
// @Tags         inventory
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Product ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/products/{id} [delete]
func (h *InventoryHandler) DeleteProduct(c *gin.Context) {
	id, ok := productID(c)
	if !ok {
		return
	}
	if err := h.inventoryService.DeleteProduct(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, "Product deleted"))
}

// LowStock returns products at or below their reorder level
// @Summary      Low stock report
// @Tags         inventory
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=[]model.Product}
// @Router       /api/products/low-stock [get]
func (h *InventoryHandler) LowStock(c *gin.Context) {
	products, err := h.inventoryService.LowStock(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, products))
}

// Stock returns on-hand quantities for all active products
// @Summary      Stock snapshot
// @Tags         inventory
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=[]model.Product}
// @Router       /api/inventory/stock [get]
func (h *InventoryHandler) Stock(c *gin.Context) {
	products, err := h.inventoryService.StockLevels(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, products))
}

// StockIn receives goods into inventory
// @Summary      Stock in
// @Tags         inventory
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.StockInRequest  true  "Received goods"
// @Success      200      {object}  response.Response{data=model.Product}
// @Failure      404      {object}  response.Response
// @Router       /api/inventory/stock-in [post]
func (h *InventoryHandler) StockIn(c *gin.Context) {
	var req service.StockInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}
	product, err := h.inventoryService.StockIn(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
			return
		}
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, product))
}

// Adjust sets the counted stock level
// @Summary      Adjust stock
// @Tags         inventory
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.StockAdjustRequest  true  "Counted quantity"
// @Success      200      {object}  response.Response{data=model.Product}
// @Failure      404      {object}  response.Response
// @Router       /api/inventory/adjust [post]
func (h *InventoryHandler) Adjust(c *gin.Context) {
	var req service.StockAdjustRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}
	product, err := h.inventoryService.Adjust(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
			return
		}
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, product))
}

// Movements returns the stock journal
// @Summary      List inventory movements
// @Tags         inventory
// @Security     BearerAuth
// @Produce      json
// @Param        productId  query     string  false  "Filter by product"
// @Param        page       query     int     false  "Page number"
// @Param        limit      query     int     false  "Items per page"
// @Success      200        {object}  response.Response{data=[]model.InventoryMovement}
// @Router       /api/inventory/movements [get]
func (h *InventoryHandler) Movements(c *gin.Context) {
	p := pagination.Parse(c)

	var pid *uuid.UUID
	if v := c.Query("productId"); v != "" {
		parsed, err := uuid.Parse(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid productId"))
			return
		}
		pid = &parsed
	}

	rows, total, err := h.inventoryService.Movements(c.Request.Context(), pid, p.Page, p.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Paginated(http.StatusOK, rows, p.Page, p.Limit, total))
}

// ListCategories returns product categories
// @Summary      List product categories
// @Tags         inventory
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=[]model.ProductCategory}
// @Router       /api/categories [get]
func (h *InventoryHandler) ListCategories(c *gin.Context) {
	rows, err := h.inventoryService.ListCategories(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, rows))
}

// CreateCategory adds a product category
// @Summary      Create product category
// @Tags         inventory
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CreateCategoryRequest  true  "Category"
// @Success      201      {object}  response.Response{data=model.ProductCategory}
// @Router       /api/categories [post]
func (h *InventoryHandler) CreateCategory(c *gin.Context) {
	var req service.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}
	category, err := h.inventoryService.CreateCategory(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, category))
}
