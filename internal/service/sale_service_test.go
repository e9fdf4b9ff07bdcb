package service

import (
	"context"
	"errors"
	"testing"

	"gymbeauty/internal/model"
	"gymbeauty/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func newSaleService(db *gorm.DB) SaleService {
	return NewSaleService(
		repository.NewSaleRepository(db),
		repository.NewProductRepository(db),
		repository.NewMovementRepository(db),
		repository.NewMemberRepository(db),
		repository.NewTransactionManager(db),
		nil,
	)
}

func seedProduct(t *testing.T, db *gorm.DB, sku string, price string, stock int) *model.Product {
	t.Helper()
	p := &model.Product{
		Name:             "Product " + sku,
		SKU:              sku,
		SalePrice:        decimal.RequireFromString(price),
		CostPriceDefault: decimal.RequireFromString(price).Div(decimal.NewFromInt(2)),
		IsActive:         true,
		CurrentStock:     stock,
	}
	if err := db.Create(p).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}
	return p
}

func TestCheckoutDecrementsStock(t *testing.T) {
	db := newTestDB(t)
	svc := newSaleService(db)
	shampoo := seedProduct(t, db, "SHAMP-01", "50000", 10)
	cream := seedProduct(t, db, "CREAM-01", "80000", 5)

	sale, err := svc.Checkout(context.Background(), CheckoutRequest{
		Items: []CheckoutItemRequest{
			{ProductID: shampoo.ID.String(), Qty: 2},
			{ProductID: cream.ID.String(), Qty: 1},
		},
	})
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}

	if !sale.TotalAmount.Equal(decimal.RequireFromString("180000")) {
		t.Fatalf("total = %s, want 180000", sale.TotalAmount)
	}
	if sale.PaymentMethod != model.SalePaymentCash {
		t.Fatalf("paymentMethod = %q, want cash default", sale.PaymentMethod)
	}

	var fresh model.Product
	db.First(&fresh, "id = ?", shampoo.ID)
	if fresh.CurrentStock != 8 {
		t.Fatalf("shampoo stock = %d, want 8", fresh.CurrentStock)
	}

	var movements int64
	db.Model(&model.InventoryMovement{}).Where("type = ?", model.MovementOut).Count(&movements)
	if movements != 2 {
		t.Fatalf("out movements = %d, want 2", movements)
	}
}

func TestCheckoutInsufficientStockAbortsWholeSale(t *testing.T) {
	db := newTestDB(t)
	svc := newSaleService(db)
	shampoo := seedProduct(t, db, "SHAMP-02", "50000", 10)
	cream := seedProduct(t, db, "CREAM-02", "80000", 1)

	_, err := svc.Checkout(context.Background(), CheckoutRequest{
		Items: []CheckoutItemRequest{
			{ProductID: shampoo.ID.String(), Qty: 3},
			{ProductID: cream.ID.String(), Qty: 2},
		},
	})
	if !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("err = %v, want ErrInsufficientStock", err)
	}

	// The first line must roll back with the failed one.
	var fresh model.Product
	db.First(&fresh, "id = ?", shampoo.ID)
	if fresh.CurrentStock != 10 {
		t.Fatalf("shampoo stock = %d, want 10 after rollback", fresh.CurrentStock)
	}
	var sales int64
	db.Model(&model.Sale{}).Count(&sales)
	if sales != 0 {
		t.Fatalf("sales = %d, want 0", sales)
	}
}

func TestCheckoutRejectsExcessiveDiscount(t *testing.T) {
	db := newTestDB(t)
	svc := newSaleService(db)
	shampoo := seedProduct(t, db, "SHAMP-03", "50000", 10)

	_, err := svc.Checkout(context.Background(), CheckoutRequest{
		Items:          []CheckoutItemRequest{{ProductID: shampoo.ID.String(), Qty: 1}},
		DiscountAmount: "60000",
	})
	if err == nil {
		t.Fatal("discount above total accepted")
	}
}

func TestRefundRestocksAndCapturesPrice(t *testing.T) {
	db := newTestDB(t)
	svc := newSaleService(db)
	shampoo := seedProduct(t, db, "SHAMP-04", "50000", 10)

	sale, err := svc.Checkout(context.Background(), CheckoutRequest{
		Items: []CheckoutItemRequest{{ProductID: shampoo.ID.String(), Qty: 3}},
	})
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}

	// A later price change must not affect the refund amount.
	db.Model(&model.Product{}).Where("id = ?", shampoo.ID).
		Update("sale_price", decimal.RequireFromString("99000"))

	refund, err := svc.Refund(context.Background(), sale.ID, RefundRequest{
		Items:  []RefundItemRequest{{SaleItemID: sale.Items[0].ID.String(), Qty: 2, Restock: true}},
		Reason: "damaged packaging",
	})
	if err != nil {
		t.Fatalf("refund: %v", err)
	}

	if !refund.TotalRefund.Equal(decimal.RequireFromString("100000")) {
		t.Fatalf("refund total = %s, want 100000", refund.TotalRefund)
	}

	var fresh model.Product
	db.First(&fresh, "id = ?", shampoo.ID)
	if fresh.CurrentStock != 9 {
		t.Fatalf("stock = %d, want 9 after restock", fresh.CurrentStock)
	}

	var inMoves int64
	db.Model(&model.InventoryMovement{}).Where("type = ?", model.MovementIn).Count(&inMoves)
	if inMoves != 1 {
		t.Fatalf("in movements = %d, want 1", inMoves)
	}
}

func TestRefundRejectsForeignSaleItem(t *testing.T) {
	db := newTestDB(t)
	svc := newSaleService(db)
	shampoo := seedProduct(t, db, "SHAMP-05", "50000", 10)
	cream := seedProduct(t, db, "CREAM-05", "80000", 10)

	first, err := svc.Checkout(context.Background(), CheckoutRequest{
		Items: []CheckoutItemRequest{{ProductID: shampoo.ID.String(), Qty: 1}},
	})
	if err != nil {
		t.Fatalf("first checkout: %v", err)
	}
	second, err := svc.Checkout(context.Background(), CheckoutRequest{
		Items: []CheckoutItemRequest{{ProductID: cream.ID.String(), Qty: 1}},
	})
	if err != nil {
		t.Fatalf("second checkout: %v", err)
	}

	_, err = svc.Refund(context.Background(), first.ID, RefundRequest{
		Items: []RefundItemRequest{{SaleItemID: second.Items[0].ID.String(), Qty: 1}},
	})
	if err == nil {
		t.Fatal("refund accepted a sale item from another sale")
	}
}

func TestRefundRejectsOverQuantity(t *testing.T) {
	db := newTestDB(t)
	svc := newSaleService(db)
	shampoo := seedProduct(t, db, "SHAMP-06", "50000", 10)

	sale, err := svc.Checkout(context.Background(), CheckoutRequest{
		Items: []CheckoutItemRequest{{ProductID: shampoo.ID.String(), Qty: 1}},
	})
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}

	_, err = svc.Refund(context.Background(), sale.ID, RefundRequest{
		Items: []RefundItemRequest{{SaleItemID: sale.Items[0].ID.String(), Qty: 5}},
	})
	if err == nil {
		t.Fatal("refund quantity above sold quantity accepted")
	}
}
