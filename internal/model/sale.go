package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Sale payment defaults.
const (
	SalePaymentCash = "CASH"
	SalePaymentCard = "CARD"
	SaleStatusPaid  = "PAID"
)

// Sale is one point-of-sale checkout.
type Sale struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	MemberID       *uint           `gorm:"index" json:"memberId"`
	TotalAmount    decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"totalAmount"`
	DiscountAmount decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"discountAmount"`
	PaymentMethod  string          `gorm:"type:varchar(30);default:'CASH'" json:"paymentMethod"`
	PaymentStatus  string          `gorm:"type:varchar(30);default:'PAID'" json:"paymentStatus"`
	Notes          string          `gorm:"type:text" json:"notes"`
	Items          []SaleItem      `gorm:"foreignKey:SaleID" json:"items"`
	CreatedAt      time.Time       `gorm:"index" json:"createdAt"`
}

func (s *Sale) BeforeCreate(*gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// SaleItem is one line of a checkout. UnitCostSnapshot freezes the cost price
// at sale time for margin reporting.
type SaleItem struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	SaleID           uuid.UUID       `gorm:"type:uuid;not null;index" json:"saleId"`
	ProductID        uuid.UUID       `gorm:"type:uuid;not null;index" json:"productId"`
	Product          *Product        `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Qty              int             `gorm:"not null" json:"qty"`
	UnitPrice        decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"unitPrice"`
	UnitCostSnapshot decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"unitCostSnapshot"`
	LineTotal        decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"lineTotal"`
}

func (i *SaleItem) BeforeCreate(*gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// Refund reverses part or all of a sale.
type Refund struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	SaleID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"saleId"`
	TotalRefund decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"totalRefund"`
	Reason      string          `gorm:"type:text" json:"reason"`
	Items       []RefundItem    `gorm:"foreignKey:RefundID" json:"items"`
	CreatedAt   time.Time       `json:"createdAt"`
}

func (r *Refund) BeforeCreate(*gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// RefundItem reverses one sale line; Restock controls whether the quantity
// returns to inventory.
type RefundItem struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	RefundID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"refundId"`
	SaleItemID uuid.UUID       `gorm:"type:uuid;not null" json:"saleItemId"`
	Qty        int             `gorm:"not null" json:"qty"`
	Amount     decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	Restock    bool            `gorm:"default:false" json:"restock"`
}

func (i *RefundItem) BeforeCreate(*gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
