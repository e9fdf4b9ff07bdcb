package service

import (
	"context"
	"strings"
	"testing"

	"gymbeauty/internal/model"
	"gymbeauty/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func newInventoryService(db *gorm.DB) InventoryService {
	return NewInventoryService(
		repository.NewProductRepository(db),
		repository.NewCategoryRepository(db),
		repository.NewMovementRepository(db),
		repository.NewTransactionManager(db),
		nil,
	)
}

func TestCreateProductDuplicateSKU(t *testing.T) {
	db := newTestDB(t)
	svc := newInventoryService(db)
	ctx := context.Background()

	if _, err := svc.CreateProduct(ctx, CreateProductRequest{Name: "Shampoo", SKU: "SKU-1", SalePrice: "50000"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	_, err := svc.CreateProduct(ctx, CreateProductRequest{Name: "Other", SKU: "SKU-1", SalePrice: "10000"})
	if err == nil || !strings.Contains(err.Error(), "SKU-1") {
		t.Fatalf("err = %v, want duplicate sku error", err)
	}
}

func TestStockInJournalsMovement(t *testing.T) {
	db := newTestDB(t)
	svc := newInventoryService(db)
	ctx := context.Background()

	product, err := svc.CreateProduct(ctx, CreateProductRequest{Name: "Cream", SKU: "SKU-2", SalePrice: "80000"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := svc.StockIn(ctx, StockInRequest{ProductID: product.ID.String(), Qty: 12, UnitCost: "40000", Reason: "delivery"})
	if err != nil {
		t.Fatalf("stock in: %v", err)
	}
	if updated.CurrentStock != 12 {
		t.Fatalf("stock = %d, want 12", updated.CurrentStock)
	}

	var movement model.InventoryMovement
	if err := db.First(&movement, "product_id = ?", product.ID).Error; err != nil {
		t.Fatalf("movement not journaled: %v", err)
	}
	if movement.Type != model.MovementIn || movement.Qty != 12 {
		t.Fatalf("movement = %+v", movement)
	}
	if movement.UnitCost == nil || !movement.UnitCost.Equal(decimal.RequireFromString("40000")) {
		t.Fatalf("unit cost = %v, want 40000", movement.UnitCost)
	}
}

func TestAdjustRecordsDelta(t *testing.T) {
	db := newTestDB(t)
	svc := newInventoryService(db)
	ctx := context.Background()

	product, err := svc.CreateProduct(ctx, CreateProductRequest{Name: "Mask", SKU: "SKU-3", SalePrice: "30000"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.StockIn(ctx, StockInRequest{ProductID: product.ID.String(), Qty: 10}); err != nil {
		t.Fatalf("stock in: %v", err)
	}

	updated, err := svc.Adjust(ctx, StockAdjustRequest{ProductID: product.ID.String(), NewQty: 7, Reason: "stock count"})
	if err != nil {
		t.Fatalf("adjust: %v", err)
	}
	if updated.CurrentStock != 7 {
		t.Fatalf("stock = %d, want 7", updated.CurrentStock)
	}

	var adjust model.InventoryMovement
	if err := db.First(&adjust, "product_id = ? AND type = ?", product.ID, model.MovementAdjust).Error; err != nil {
		t.Fatalf("adjust movement missing: %v", err)
	}
}

func TestLowStockReport(t *testing.T) {
	db := newTestDB(t)
	svc := newInventoryService(db)
	ctx := context.Background()

	low, err := svc.CreateProduct(ctx, CreateProductRequest{Name: "Low", SKU: "SKU-4", SalePrice: "1000", ReorderLevel: 5})
	if err != nil {
		t.Fatalf("create low: %v", err)
	}
	ok, err := svc.CreateProduct(ctx, CreateProductRequest{Name: "OK", SKU: "SKU-5", SalePrice: "1000", ReorderLevel: 5})
	if err != nil {
		t.Fatalf("create ok: %v", err)
	}
	if _, err := svc.StockIn(ctx, StockInRequest{ProductID: low.ID.String(), Qty: 3}); err != nil {
		t.Fatalf("stock in low: %v", err)
	}
	if _, err := svc.StockIn(ctx, StockInRequest{ProductID: ok.ID.String(), Qty: 20}); err != nil {
		t.Fatalf("stock in ok: %v", err)
	}

	rows, err := svc.LowStock(ctx)
	if err != nil {
		t.Fatalf("low stock: %v", err)
	}
	if len(rows) != 1 || rows[0].ID != low.ID {
		t.Fatalf("low stock rows = %+v", rows)
	}
}
