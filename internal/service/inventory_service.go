package service

import (
	"context"
	"fmt"

	"gymbeauty/internal/model"
	"gymbeauty/internal/repository"
	ws "gymbeauty/internal/websocket"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DTOs
type CreateProductRequest struct {
	Name         string `json:"name" binding:"required"`
	Brand        string `json:"brand"`
	CategoryID   string `json:"categoryId"`
	SKU          string `json:"sku" binding:"required"`
	Barcode      string `json:"barcode"`
	Unit         string `json:"unit"`
	SalePrice    string `json:"salePrice" binding:"required"`
	CostPrice    string `json:"costPrice"`
	ReorderLevel int    `json:"reorderLevel"`
	ImageURL     string `json:"imageUrl"`
}

type UpdateProductRequest struct {
	Name         string `json:"name" binding:"required"`
	Brand        string `json:"brand"`
	CategoryID   string `json:"categoryId"`
	Barcode      string `json:"barcode"`
	Unit         string `json:"unit"`
	SalePrice    string `json:"salePrice" binding:"required"`
	CostPrice    string `json:"costPrice"`
	IsActive     *bool  `json:"isActive"`
	ReorderLevel int    `json:"reorderLevel"`
	ImageURL     string `json:"imageUrl"`
}

type StockInRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Qty       int    `json:"qty" binding:"required,gt=0"`
	UnitCost  string `json:"unitCost"`
	Reason    string `json:"reason"`
}

type StockAdjustRequest struct {
	ProductID string `json:"productId" binding:"required"`
	NewQty    int    `json:"newQty" binding:"min=0"`
	Reason    string `json:"reason" binding:"required"`
}

type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required"`
}

type InventoryService interface {
	CreateProduct(ctx context.Context, req CreateProductRequest) (*model.Product, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, req UpdateProductRequest) (*model.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
	GetProduct(ctx context.Context, id uuid.UUID) (*model.Product, error)
	ListProducts(ctx context.Context, page, limit int, search string, activeOnly bool) ([]model.Product, int64, error)
	StockLevels(ctx context.Context) ([]model.Product, error)
	LowStock(ctx context.Context) ([]model.Product, error)
	StockIn(ctx context.Context, req StockInRequest) (*model.Product, error)
	Adjust(ctx context.Context, req StockAdjustRequest) (*model.Product, error)
	Movements(ctx context.Context, productID *uuid.UUID, page, limit int) ([]model.InventoryMovement, int64, error)
	CreateCategory(ctx context.Context, req CreateCategoryRequest) (*model.ProductCategory, error)
	ListCategories(ctx context.Context) ([]model.ProductCategory, error)
}

type inventoryService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	movementRepo repository.MovementRepository
	txManager    repository.TransactionManager
	hub          *ws.Hub
}

func NewInventoryService(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	movementRepo repository.MovementRepository,
	txManager repository.TransactionManager,
	hub *ws.Hub,
) InventoryService {
	return &inventoryService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		movementRepo: movementRepo,
		txManager:    txManager,
		hub:          hub,
	}
}

func (s *inventoryService) CreateProduct(ctx context.Context, req CreateProductRequest) (*model.Product, error) {
	salePrice, err := decimal.NewFromString(req.SalePrice)
	if err != nil {
		return nil, fmt.Errorf("invalid salePrice: %w", err)
	}
	costPrice := decimal.Zero
	if req.CostPrice != "" {
		if costPrice, err = decimal.NewFromString(req.CostPrice); err != nil {
			return nil, fmt.Errorf("invalid costPrice: %w", err)
		}
	}

	product := &model.Product{
		Name:             req.Name,
		Brand:            req.Brand,
		SKU:              req.SKU,
		Barcode:          req.Barcode,
		Unit:             req.Unit,
		SalePrice:        salePrice,
		CostPriceDefault: costPrice,
		IsActive:         true,
		ReorderLevel:     req.ReorderLevel,
		ImageURL:         req.ImageURL,
	}
	if product.CategoryID, err = parseOptionalUUID(req.CategoryID); err != nil {
		return nil, fmt.Errorf("invalid categoryId: %w", err)
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, fmt.Errorf("sku %q already exists", req.SKU)
		}
		return nil, err
	}
	return product, nil
}

func (s *inventoryService) UpdateProduct(ctx context.Context, id uuid.UUID, req UpdateProductRequest) (*model.Product, error) {
	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	salePrice, err := decimal.NewFromString(req.SalePrice)
	if err != nil {
		return nil, fmt.Errorf("invalid salePrice: %w", err)
	}

	product.Name = req.Name
	product.Brand = req.Brand
	product.Barcode = req.Barcode
	product.Unit = req.Unit
	product.SalePrice = salePrice
	product.ReorderLevel = req.ReorderLevel
	product.ImageURL = req.ImageURL
	if req.CostPrice != "" {
		if product.CostPriceDefault, err = decimal.NewFromString(req.CostPrice); err != nil {
			return nil, fmt.Errorf("invalid costPrice: %w", err)
		}
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}
	if product.CategoryID, err = parseOptionalUUID(req.CategoryID); err != nil {
		return nil, fmt.Errorf("invalid categoryId: %w", err)
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *inventoryService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetProduct(ctx, id); err != nil {
		return err
	}
	return s.productRepo.Delete(ctx, id)
}

func (s *inventoryService) GetProduct(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return product, nil
}

func (s *inventoryService) ListProducts(ctx context.Context, page, limit int, search string, activeOnly bool) ([]model.Product, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}
	return s.productRepo.List(ctx, page, limit, search, activeOnly)
}

// StockLevels is the full on-hand snapshot for active products.
func (s *inventoryService) StockLevels(ctx context.Context) ([]model.Product, error) {
	return s.productRepo.ListAll(ctx, true)
}

func (s *inventoryService) LowStock(ctx context.Context) ([]model.Product, error) {
	return s.productRepo.ListBelowReorderLevel(ctx)
}

// StockIn receives goods: bumps the on-hand quantity and writes an IN
// movement in one transaction.
func (s *inventoryService) StockIn(ctx context.Context, req StockInRequest) (*model.Product, error) {
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, fmt.Errorf("invalid productId: %w", err)
	}

	var unitCost *decimal.Decimal
	if req.UnitCost != "" {
		parsed, err := decimal.NewFromString(req.UnitCost)
		if err != nil {
			return nil, fmt.Errorf("invalid unitCost: %w", err)
		}
		unitCost = &parsed
	}

	var product *model.Product
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		product, err = s.productRepo.FindByIDForUpdate(txCtx, productID)
		if err != nil {
			if repository.IsNotFound(err) {
				return ErrNotFound
			}
			return err
		}

		product.CurrentStock += req.Qty
		if err := s.productRepo.UpdateStock(txCtx, productID, product.CurrentStock); err != nil {
			return err
		}

		movement := &model.InventoryMovement{
			ProductID: productID,
			Type:      model.MovementIn,
			Qty:       req.Qty,
			UnitCost:  unitCost,
			Reason:    req.Reason,
		}
		return s.movementRepo.Create(txCtx, movement)
	})
	if err != nil {
		return nil, err
	}

	s.broadcastStock(product)
	return product, nil
}

// Adjust corrects the on-hand quantity to a counted value and records the
// delta as an ADJUST movement.
func (s *inventoryService) Adjust(ctx context.Context, req StockAdjustRequest) (*model.Product, error) {
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, fmt.Errorf("invalid productId: %w", err)
	}

	var product *model.Product
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		product, err = s.productRepo.FindByIDForUpdate(txCtx, productID)
		if err != nil {
			if repository.IsNotFound(err) {
				return ErrNotFound
			}
			return err
		}

		delta := req.NewQty - product.CurrentStock
		if delta == 0 {
			return nil
		}

		product.CurrentStock = req.NewQty
		if err := s.productRepo.UpdateStock(txCtx, productID, req.NewQty); err != nil {
			return err
		}

		movement := &model.InventoryMovement{
			ProductID: productID,
			Type:      model.MovementAdjust,
			Qty:       delta,
			Reason:    req.Reason,
		}
		return s.movementRepo.Create(txCtx, movement)
	})
	if err != nil {
		return nil, err
	}

	s.broadcastStock(product)
	return product, nil
}

func (s *inventoryService) Movements(ctx context.Context, productID *uuid.UUID, page, limit int) ([]model.InventoryMovement, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}
	if productID != nil {
		return s.movementRepo.ListByProduct(ctx, *productID, page, limit)
	}
	return s.movementRepo.List(ctx, page, limit)
}

func (s *inventoryService) CreateCategory(ctx context.Context, req CreateCategoryRequest) (*model.ProductCategory, error) {
	category := &model.ProductCategory{Name: req.Name}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *inventoryService) ListCategories(ctx context.Context) ([]model.ProductCategory, error) {
	return s.categoryRepo.List(ctx)
}

func (s *inventoryService) broadcastStock(product *model.Product) {
	if s.hub == nil || product == nil {
		return
	}
	s.hub.BroadcastEvent(ws.EventStockChanged, map[string]interface{}{
		"productId":    product.ID,
		"currentStock": product.CurrentStock,
	})
}

func parseOptionalUUID(s string) (*uuid.UUID, error) {
	if s == "" {
		return nil, nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
