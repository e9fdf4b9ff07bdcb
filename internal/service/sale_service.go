package service

import (
	"context"
	"fmt"
	"time"

	"gymbeauty/internal/model"
	"gymbeauty/internal/repository"
	ws "gymbeauty/internal/websocket"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DTOs
type CheckoutItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Qty       int    `json:"qty" binding:"required,gt=0"`
}

type CheckoutRequest struct {
	MemberID       *uint                 `json:"memberId"`
	Items          []CheckoutItemRequest `json:"items" binding:"required,min=1,dive"`
	DiscountAmount string                `json:"discountAmount"`
	PaymentMethod  string                `json:"paymentMethod"`
	Notes          string                `json:"notes"`
}

type RefundItemRequest struct {
	SaleItemID string `json:"saleItemId" binding:"required"`
	Qty        int    `json:"qty" binding:"required,gt=0"`
	Restock    bool   `json:"restock"`
}

type RefundRequest struct {
	Items  []RefundItemRequest `json:"items" binding:"required,min=1,dive"`
	Reason string              `json:"reason"`
}

type SaleService interface {
	Checkout(ctx context.Context, req CheckoutRequest) (*model.Sale, error)
	Refund(ctx context.Context, saleID uuid.UUID, req RefundRequest) (*model.Refund, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Sale, error)
	List(ctx context.Context, page, limit int, from, to *time.Time) ([]model.Sale, int64, error)
}

type saleService struct {
	saleRepo     repository.SaleRepository
	productRepo  repository.ProductRepository
	movementRepo repository.MovementRepository
	memberRepo   repository.MemberRepository
	txManager    repository.TransactionManager
	hub          *ws.Hub
}

func NewSaleService(
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
	movementRepo repository.MovementRepository,
	memberRepo repository.MemberRepository,
	txManager repository.TransactionManager,
	hub *ws.Hub,
) SaleService {
	return &saleService{
		saleRepo:     saleRepo,
		productRepo:  productRepo,
		movementRepo: movementRepo,
		memberRepo:   memberRepo,
		txManager:    txManager,
		hub:          hub,
	}
}

// Checkout sells products at the front desk. Stock is locked, decremented and
// journaled per line inside one transaction; any shortage aborts the whole
// sale.
func (s *saleService) Checkout(ctx context.Context, req CheckoutRequest) (*model.Sale, error) {
	if req.MemberID != nil {
		if _, err := s.memberRepo.FindByID(ctx, *req.MemberID); err != nil {
			if repository.IsNotFound(err) {
				return nil, ErrMemberNotFound
			}
			return nil, err
		}
	}

	discount := decimal.Zero
	var err error
	if req.DiscountAmount != "" {
		if discount, err = decimal.NewFromString(req.DiscountAmount); err != nil {
			return nil, fmt.Errorf("invalid discountAmount: %w", err)
		}
	}

	paymentMethod := req.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = model.SalePaymentCash
	}

	sale := &model.Sale{
		MemberID:       req.MemberID,
		DiscountAmount: discount,
		PaymentMethod:  paymentMethod,
		PaymentStatus:  model.SaleStatusPaid,
		Notes:          req.Notes,
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		total := decimal.Zero
		items := make([]model.SaleItem, 0, len(req.Items))

		for _, line := range req.Items {
			productID, err := uuid.Parse(line.ProductID)
			if err != nil {
				return fmt.Errorf("invalid productId %q: %w", line.ProductID, err)
			}

			product, err := s.productRepo.FindByIDForUpdate(txCtx, productID)
			if err != nil {
				if repository.IsNotFound(err) {
					return fmt.Errorf("product %s not found", line.ProductID)
				}
				return err
			}
			if product.CurrentStock < line.Qty {
				return fmt.Errorf("%w: %s has %d left", ErrInsufficientStock, product.Name, product.CurrentStock)
			}

			if err := s.productRepo.UpdateStock(txCtx, productID, product.CurrentStock-line.Qty); err != nil {
				return err
			}

			lineTotal := product.SalePrice.Mul(decimal.NewFromInt(int64(line.Qty)))
			total = total.Add(lineTotal)
			items = append(items, model.SaleItem{
				ProductID:        productID,
				Qty:              line.Qty,
				UnitPrice:        product.SalePrice,
				UnitCostSnapshot: product.CostPriceDefault,
				LineTotal:        lineTotal,
			})
		}

		sale.TotalAmount = total.Sub(discount)
		if sale.TotalAmount.IsNegative() {
			return fmt.Errorf("discount exceeds sale total")
		}
		sale.Items = items
		if err := s.saleRepo.Create(txCtx, sale); err != nil {
			return err
		}

		for _, item := range sale.Items {
			movement := &model.InventoryMovement{
				ProductID:     item.ProductID,
				Type:          model.MovementOut,
				Qty:           item.Qty,
				Reason:        "sale",
				ReferenceType: "sale",
				ReferenceID:   &sale.ID,
			}
			if err := s.movementRepo.Create(txCtx, movement); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.broadcastSale(sale)
	return sale, nil
}

// Refund reverses sale lines, restocking the quantity when asked to. The
// refund amount is derived from the captured unit prices, never recomputed
// from current prices.
func (s *saleService) Refund(ctx context.Context, saleID uuid.UUID, req RefundRequest) (*model.Refund, error) {
	sale, err := s.Get(ctx, saleID)
	if err != nil {
		return nil, err
	}

	itemsByID := make(map[uuid.UUID]model.SaleItem, len(sale.Items))
	for _, item := range sale.Items {
		itemsByID[item.ID] = item
	}

	refund := &model.Refund{SaleID: saleID, Reason: req.Reason}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		total := decimal.Zero
		items := make([]model.RefundItem, 0, len(req.Items))

		for _, line := range req.Items {
			itemID, err := uuid.Parse(line.SaleItemID)
			if err != nil {
				return fmt.Errorf("invalid saleItemId %q: %w", line.SaleItemID, err)
			}
			saleItem, ok := itemsByID[itemID]
			if !ok {
				return fmt.Errorf("sale item %s does not belong to this sale", line.SaleItemID)
			}
			if line.Qty > saleItem.Qty {
				return fmt.Errorf("refund qty %d exceeds sold qty %d", line.Qty, saleItem.Qty)
			}

			amount := saleItem.UnitPrice.Mul(decimal.NewFromInt(int64(line.Qty)))
			total = total.Add(amount)
			items = append(items, model.RefundItem{
				SaleItemID: itemID,
				Qty:        line.Qty,
				Amount:     amount,
				Restock:    line.Restock,
			})

			if line.Restock {
				product, err := s.productRepo.FindByIDForUpdate(txCtx, saleItem.ProductID)
				if err != nil {
					return err
				}
				if err := s.productRepo.UpdateStock(txCtx, saleItem.ProductID, product.CurrentStock+line.Qty); err != nil {
					return err
				}
			}
		}

		refund.TotalRefund = total
		refund.Items = items
		if err := s.saleRepo.CreateRefund(txCtx, refund); err != nil {
			return err
		}

		for _, item := range refund.Items {
			if !item.Restock {
				continue
			}
			saleItem := itemsByID[item.SaleItemID]
			movement := &model.InventoryMovement{
				ProductID:     saleItem.ProductID,
				Type:          model.MovementIn,
				Qty:           item.Qty,
				Reason:        "refund",
				ReferenceType: "refund",
				ReferenceID:   &refund.ID,
			}
			if err := s.movementRepo.Create(txCtx, movement); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return refund, nil
}

func (s *saleService) Get(ctx context.Context, id uuid.UUID) (*model.Sale, error) {
	sale, err := s.saleRepo.FindByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return sale, nil
}

func (s *saleService) List(ctx context.Context, page, limit int, from, to *time.Time) ([]model.Sale, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}
	return s.saleRepo.List(ctx, page, limit, from, to)
}

func (s *saleService) broadcastSale(sale *model.Sale) {
	if s.hub == nil {
		return
	}
	for _, item := range sale.Items {
		s.hub.BroadcastEvent(ws.EventStockChanged, map[string]interface{}{
			"productId": item.ProductID,
			"soldQty":   item.Qty,
		})
	}
}
