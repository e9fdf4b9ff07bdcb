package model

// GymInfo is the gym-side questionnaire, one row per member (upserted).
type GymInfo struct {
	ID                  uint   `gorm:"primaryKey" json:"id"`
	MemberID            uint   `gorm:"not null;uniqueIndex" json:"memberId"`
	EmergencyName       string `gorm:"type:varchar(255)" json:"emergencyName"`
	EmergencyPhone      string `gorm:"type:varchar(30)" json:"emergencyPhone"`
	EmergencyRelation   string `gorm:"type:varchar(100)" json:"emergencyRelation"`
	MedicalConditions   string `gorm:"type:text" json:"medicalConditions"`
	Medications         string `gorm:"type:text" json:"medications"`
	FitnessGoals        string `gorm:"type:text" json:"fitnessGoals"`
	MembershipType      string `gorm:"type:varchar(50)" json:"membershipType"`
	MembershipTypeOther string `gorm:"type:varchar(100)" json:"membershipTypeOther"`
	PaymentMethod       string `gorm:"type:varchar(50)" json:"paymentMethod"`
	PaymentMethodOther  string `gorm:"type:varchar(100)" json:"paymentMethodOther"`
}

func (GymInfo) TableName() string { return "gym_info" }
