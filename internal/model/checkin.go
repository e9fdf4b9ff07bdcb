package model

import "time"

// CheckIn is one attendance event. CheckinDay stores the civil date
// (YYYY-MM-DD, business timezone) so the composite unique index enforces the
// one-check-in-per-day rule at the store level instead of a racy
// select-then-insert.
type CheckIn struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	MemberID   uint      `gorm:"not null;index;uniqueIndex:idx_checkins_member_day" json:"memberId"`
	QRCodeID   string    `gorm:"column:qr_code_id;type:varchar(16)" json:"qrCodeId"`
	Date       time.Time `gorm:"not null;index" json:"date"`
	CheckinDay string    `gorm:"type:varchar(10);not null;uniqueIndex:idx_checkins_member_day" json:"-"`
	VerifiedBy string    `gorm:"type:varchar(100);default:'system'" json:"verifiedBy"`
}

func (CheckIn) TableName() string { return "checkins" }

// CheckInWithMember joins the denormalized member columns the attendance
// screens show next to each event.
type CheckInWithMember struct {
	CheckIn
	FullName string `json:"fullName"`
	Phone    string `json:"phone"`
}
