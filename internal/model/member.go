package model

import (
	"time"
)

// QRCodePrefix is the fixed prefix of every member code; the remainder is six
// characters from the 36-symbol alphanumeric alphabet.
const (
	QRCodePrefix       = "TGC"
	QRCodeRandomLength = 6
	QRCodeAlphabet     = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// Member is the central identity record shared by the gym and the salon.
// BeautyHasRecord is a cached aggregate: true iff at least one beauty service
// row exists for the member. LastUpdated is bumped on every mutation.
type Member struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	FullName        string     `gorm:"type:varchar(255);not null" json:"fullName"`
	Phone           string     `gorm:"type:varchar(30)" json:"phone"`
	QRCodeID        string     `gorm:"column:qr_code_id;type:varchar(16);uniqueIndex;not null" json:"qrCodeId"`
	JoinDate        *time.Time `json:"joinDate"`
	GymStart        *time.Time `json:"gymStart"`
	GymEnd          *time.Time `json:"gymEnd"`
	GymActive       bool       `gorm:"default:true" json:"gymActive"`
	BeautyHasRecord bool       `gorm:"default:false" json:"beautyHasRecord"`
	Photo           string     `gorm:"type:text" json:"photo,omitempty"`
	BirthDate       *time.Time `json:"birthDate"`
	Email           string     `gorm:"type:varchar(255)" json:"email"`
	Region          string     `gorm:"type:varchar(100)" json:"region"`
	District        string     `gorm:"type:varchar(100)" json:"district"`
	CreatedAt       time.Time  `json:"createdAt"`
	LastUpdated     time.Time  `gorm:"autoUpdateTime" json:"lastUpdated"`
}

// MemberSummary is the trimmed shape returned alongside a check-in.
type MemberSummary struct {
	ID       uint   `json:"id"`
	FullName string `json:"fullName"`
	Phone    string `json:"phone"`
	QRCodeID string `json:"qrCodeId"`
}

func (m *Member) Summary() MemberSummary {
	return MemberSummary{ID: m.ID, FullName: m.FullName, Phone: m.Phone, QRCodeID: m.QRCodeID}
}
