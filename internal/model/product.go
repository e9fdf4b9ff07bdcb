package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Inventory movement types.
const (
	MovementIn     = "IN"
	MovementOut    = "OUT"
	MovementAdjust = "ADJUST"
)

// ProductCategory groups retail products.
type ProductCategory struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name string    `gorm:"type:varchar(100);not null" json:"name"`
}

func (c *ProductCategory) BeforeCreate(*gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// Product is a retail item sold at the front desk. CurrentStock is the
// on-hand quantity maintained by the inventory movements.
type Product struct {
	ID               uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	Name             string           `gorm:"type:varchar(255);not null" json:"name"`
	Brand            string           `gorm:"type:varchar(100)" json:"brand"`
	CategoryID       *uuid.UUID       `gorm:"type:uuid;index" json:"categoryId"`
	Category         *ProductCategory `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	SKU              string           `gorm:"type:varchar(100);uniqueIndex" json:"sku"`
	Barcode          string           `gorm:"type:varchar(100)" json:"barcode"`
	Unit             string           `gorm:"type:varchar(30)" json:"unit"`
	SalePrice        decimal.Decimal  `gorm:"type:decimal(12,2);default:0" json:"salePrice"`
	CostPriceDefault decimal.Decimal  `gorm:"type:decimal(12,2);default:0" json:"costPriceDefault"`
	IsActive         bool             `gorm:"default:true" json:"isActive"`
	ReorderLevel     int              `gorm:"default:0" json:"reorderLevel"`
	ImageURL         string           `gorm:"type:text" json:"imageUrl"`
	CurrentStock     int              `gorm:"default:0" json:"currentStock"`
	CreatedAt        time.Time        `json:"createdAt"`
	UpdatedAt        time.Time        `json:"updatedAt"`
}

func (p *Product) BeforeCreate(*gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// InventoryMovement records every stock change with its reason and, when
// applicable, the sale or refund that caused it.
type InventoryMovement struct {
	ID            uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	ProductID     uuid.UUID        `gorm:"type:uuid;not null;index" json:"productId"`
	Product       *Product         `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Type          string           `gorm:"type:varchar(10);not null" json:"type"`
	Qty           int              `gorm:"not null" json:"qty"`
	UnitCost      *decimal.Decimal `gorm:"type:decimal(12,2)" json:"unitCost"`
	Reason        string           `gorm:"type:varchar(100)" json:"reason"`
	ReferenceType string           `gorm:"type:varchar(30)" json:"referenceType"`
	ReferenceID   *uuid.UUID       `gorm:"type:uuid" json:"referenceId"`
	CreatedAt     time.Time        `gorm:"index" json:"createdAt"`
}

func (m *InventoryMovement) BeforeCreate(*gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
