package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Appointment status constants.
const (
	AppointmentScheduled = "SCHEDULED"
	AppointmentConfirmed = "CONFIRMED"
	AppointmentCompleted = "COMPLETED"
	AppointmentCancelled = "CANCELLED"
	AppointmentNoShow    = "NO_SHOW"
)

// Staff is a salon employee appointments are booked against.
type Staff struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	FullName         string    `gorm:"type:varchar(255);not null" json:"fullName"`
	Role             string    `gorm:"type:varchar(100)" json:"role"`
	IsActive         bool      `gorm:"default:true" json:"isActive"`
	WorkingHoursJSON string    `gorm:"type:text" json:"workingHours"`
	CreatedAt        time.Time `json:"createdAt"`
}

func (Staff) TableName() string { return "staff" }

func (s *Staff) BeforeCreate(*gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// Room is a treatment room an appointment can occupy.
type Room struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name string    `gorm:"type:varchar(100);not null" json:"name"`
}

func (r *Room) BeforeCreate(*gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// Appointment is a booked salon visit. Either MemberID or the guest fields
// identify who it is for.
type Appointment struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	MemberID      *uint           `gorm:"index" json:"memberId"`
	GuestName     string          `gorm:"type:varchar(255)" json:"guestName"`
	GuestPhone    string          `gorm:"type:varchar(30)" json:"guestPhone"`
	ServiceName   string          `gorm:"type:varchar(255)" json:"serviceName"`
	StaffID       uuid.UUID       `gorm:"type:uuid;not null;index" json:"staffId"`
	Staff         *Staff          `gorm:"foreignKey:StaffID" json:"staff,omitempty"`
	RoomID        *uuid.UUID      `gorm:"type:uuid" json:"roomId"`
	Room          *Room           `gorm:"foreignKey:RoomID" json:"room,omitempty"`
	StartTime     time.Time       `gorm:"not null;index" json:"startTime"`
	EndTime       time.Time       `gorm:"not null" json:"endTime"`
	Price         decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"price"`
	Discount      decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"discount"`
	DepositAmount decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"depositAmount"`
	Notes         string          `gorm:"type:text" json:"notes"`
	Status        string          `gorm:"type:varchar(20);default:'SCHEDULED';index" json:"status"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

func (a *Appointment) BeforeCreate(*gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

func ValidAppointmentStatus(s string) bool {
	switch s {
	case AppointmentScheduled, AppointmentConfirmed, AppointmentCompleted, AppointmentCancelled, AppointmentNoShow:
		return true
	}
	return false
}
