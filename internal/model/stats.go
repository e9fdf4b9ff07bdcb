package model

// CheckinStats aggregates visit counts over standard windows.
type CheckinStats struct {
	Today     int64 `json:"today"`
	ThisWeek  int64 `json:"thisWeek"`
	ThisMonth int64 `json:"thisMonth"`
}

// MemberStats aggregates membership counts by state.
type MemberStats struct {
	Total        int64 `json:"total"`
	Active       int64 `json:"active"`
	ExpiringSoon int64 `json:"expiringSoon"`
	Expired      int64 `json:"expired"`
}

// BeautyStats aggregates salon service counts.
type BeautyStats struct {
	Total int64 `json:"total"`
	Today int64 `json:"today"`
}

// StatsOverview is the dashboard summary payload.
type StatsOverview struct {
	Checkins       CheckinStats `json:"checkins"`
	Members        MemberStats  `json:"members"`
	BeautyServices BeautyStats  `json:"beautyServices"`
}

// DailyCheckinCount is one row of the per-day visit series.
type DailyCheckinCount struct {
	Day   string `json:"day"`
	Count int64  `json:"count"`
}

// ActiveMembershipRow is one row of the active membership report, carrying
// the computed status and remaining days alongside the member identity.
type ActiveMembershipRow struct {
	MemberID       uint    `json:"memberId"`
	FullName       string  `json:"fullName"`
	Phone          string  `json:"phone"`
	QRCodeID       string  `json:"qrCodeId"`
	StartDate      *string `json:"startDate"`
	EndDate        *string `json:"endDate"`
	MembershipType string  `json:"membershipType"`
	Status         string  `json:"status"`
	DaysRemaining  *int    `json:"daysRemaining"`
}
