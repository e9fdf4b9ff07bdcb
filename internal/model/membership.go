package model

import "time"

// Membership type enum. "other" covers custom arrangements.
const (
	MembershipMonthly   = "monthly"
	MembershipQuarterly = "quarterly"
	MembershipYearly    = "yearly"
	MembershipOther     = "other"
)

// GymMembership is one subscription period. A member accumulates many rows
// over time but typically has a single active one. Lifecycle status
// (active/expired/expiring soon) is derived from EndDate, never stored.
type GymMembership struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	MemberID       uint       `gorm:"not null;index" json:"memberId"`
	StartDate      time.Time  `gorm:"not null" json:"startDate"`
	EndDate        *time.Time `json:"endDate"`
	MembershipType string     `gorm:"type:varchar(20);default:'monthly'" json:"membershipType"`
	Active         bool       `gorm:"default:true" json:"active"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

// GymMembershipWithMember joins the member columns the subscription list shows.
type GymMembershipWithMember struct {
	GymMembership
	FullName string `json:"fullName"`
	Phone    string `json:"phone"`
	QRCodeID string `json:"qrCodeId"`
}

func ValidMembershipType(t string) bool {
	switch t {
	case MembershipMonthly, MembershipQuarterly, MembershipYearly, MembershipOther:
		return true
	}
	return false
}
