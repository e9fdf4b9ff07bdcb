package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment status values are free-form in the API; these are the ones the UI
// sets.
const (
	PaymentPending = "pending"
	PaymentPaid    = "paid"
	PaymentPartial = "partial"
)

// BeautyServiceTypes is the closed catalog of service types. The server
// rejects anything outside it; a nil/empty type is allowed for legacy rows.
var BeautyServiceTypes = []string{
	"laser_epilation",
	"facial_cleaning",
	"massage",
	"manicure",
	"pedicure",
	"hair_styling",
	"makeup",
	"cosmetology",
	"other",
}

// BeautyServiceLabels maps catalog keys to operator-facing names.
var BeautyServiceLabels = map[string]string{
	"laser_epilation": "Lazer epilyatsiya",
	"facial_cleaning": "Yuz tozalash",
	"massage":         "Massaj",
	"manicure":        "Manikyur",
	"pedicure":        "Pedikyur",
	"hair_styling":    "Soch turmagi",
	"makeup":          "Vizaj",
	"cosmetology":     "Kosmetologiya",
	"other":           "Boshqa",
}

func ValidBeautyServiceType(t string) bool {
	for _, v := range BeautyServiceTypes {
		if v == t {
			return true
		}
	}
	return false
}

// BeautyService is one rendered salon service together with its payment
// record. Creating the first row for a member flips Member.BeautyHasRecord;
// deleting the last one flips it back.
type BeautyService struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	MemberID        uint            `gorm:"not null;index" json:"memberId"`
	ServiceName     string          `gorm:"type:varchar(255);not null" json:"serviceName"`
	ServiceType     string          `gorm:"type:varchar(50)" json:"serviceType"`
	ServiceDate     time.Time       `gorm:"not null;index" json:"serviceDate"`
	Note            string          `gorm:"type:text" json:"note"`
	Amount          decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"amount"`
	DiscountPercent float64         `gorm:"default:0" json:"discountPercent"`
	PaymentStatus   string          `gorm:"type:varchar(30);default:'pending'" json:"paymentStatus"`
	PaymentMethod   string          `gorm:"type:varchar(50)" json:"paymentMethod"`
	PaymentDate     *time.Time      `json:"paymentDate"`
}

// BeautyServiceWithMember joins the member columns the service history shows.
type BeautyServiceWithMember struct {
	BeautyService
	FullName string `json:"fullName"`
	Phone    string `json:"phone"`
	QRCodeID string `json:"qrCodeId"`
}
