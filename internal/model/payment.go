package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// GymPayment is one gym fee payment covering a period.
type GymPayment struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	MemberID      uint            `gorm:"not null;index" json:"memberId"`
	Amount        decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	PaymentDate   time.Time       `gorm:"not null;index" json:"paymentDate"`
	PeriodStart   time.Time       `gorm:"not null" json:"periodStart"`
	PeriodEnd     time.Time       `gorm:"not null" json:"periodEnd"`
	PaymentMethod string          `gorm:"type:varchar(50)" json:"paymentMethod"`
	PaymentStatus string          `gorm:"type:varchar(30);default:'paid'" json:"paymentStatus"`
	Note          string          `gorm:"type:text" json:"note"`
	CreatedAt     time.Time       `json:"createdAt"`
}
