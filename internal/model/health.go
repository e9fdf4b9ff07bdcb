package model

import "time"

// BeautyHealthInfo is the salon-side health questionnaire, one row per member
// (upserted). Answers are kept as free text the way the intake form collects
// them.
type BeautyHealthInfo struct {
	ID                     uint       `gorm:"primaryKey" json:"id"`
	MemberID               uint       `gorm:"not null;uniqueIndex" json:"memberId"`
	BloodPressure          string     `gorm:"type:varchar(50)" json:"bloodPressure"`
	Diabetes               string     `gorm:"type:varchar(50)" json:"diabetes"`
	Cancer                 string     `gorm:"type:varchar(50)" json:"cancer"`
	CancerDetails          string     `gorm:"type:text" json:"cancerDetails"`
	CancerTreatment        string     `gorm:"type:varchar(50)" json:"cancerTreatment"`
	CancerTreatmentDetails string     `gorm:"type:text" json:"cancerTreatmentDetails"`
	Hormonal               string     `gorm:"type:varchar(50)" json:"hormonal"`
	Thyroid                string     `gorm:"type:varchar(50)" json:"thyroid"`
	Skin                   string     `gorm:"type:varchar(50)" json:"skin"`
	SkinDetails            string     `gorm:"type:text" json:"skinDetails"`
	Alcohol                string     `gorm:"type:varchar(50)" json:"alcohol"`
	Prosthesis             string     `gorm:"type:varchar(50)" json:"prosthesis"`
	Platinum               string     `gorm:"type:varchar(50)" json:"platinum"`
	Implants               string     `gorm:"type:varchar(50)" json:"implants"`
	Crowns                 string     `gorm:"type:varchar(50)" json:"crowns"`
	Surgery                string     `gorm:"type:varchar(50)" json:"surgery"`
	SurgeryDetails         string     `gorm:"type:text" json:"surgeryDetails"`
	SurgeryDate            *time.Time `json:"surgeryDate"`
	Smoking                string     `gorm:"type:varchar(50)" json:"smoking"`
	Medications            string     `gorm:"type:text" json:"medications"`
}

func (BeautyHealthInfo) TableName() string { return "beauty_health_info" }
