package dbmodels

import (
	"time"

	"hr-eval-backend/models"
)

// Candidate - кандидат, участвует ровно в одном плане набора.
type Candidate struct {
	BaseModel
	Name                 string `gorm:"type:varchar(255)"`
	BirthDate            *time.Time
	Gender               string `gorm:"type:varchar(6)"`
	PrimaryQualification string `gorm:"type:varchar(100)"`
	University           string `gorm:"type:varchar(200)"`
	GeneralDegree        string `gorm:"type:varchar(15)"`
	GraduationYear       int
	MaritalStatus        string `gorm:"type:varchar(8)"`
	NumberOfChildren     int
	Address              string
	PhoneNumber          string `gorm:"type:varchar(20)"`
	Email                string `gorm:"type:varchar(255)"`
	PhotoObjectKey       string `gorm:"type:varchar(255)"`
	Notes                string

	PlanID            string `gorm:"index"`
	Plan              *Plan
	ApplicationStatus models.ApplicationStatus `gorm:"type:varchar(20);default:applied"`
	ApplicationDate   time.Time                `gorm:"autoCreateTime"`

	Qualifications []CandidateQualification `gorm:"foreignKey:CandidateID"`
	Experiences    []CandidateExperience    `gorm:"foreignKey:CandidateID"`
}

func (r Candidate) Age(now time.Time) int {
	if r.BirthDate == nil {
		return 0
	}
	age := now.Year() - r.BirthDate.Year()
	if now.Month() < r.BirthDate.Month() ||
		(now.Month() == r.BirthDate.Month() && now.Day() < r.BirthDate.Day()) {
		age--
	}
	if age < 0 {
		return 0
	}
	return age
}

type CandidateQualification struct {
	BaseModel
	CandidateID string `gorm:"index"`
	DegreeName  string `gorm:"type:varchar(255)"`
	DegreeDate  *time.Time
}

type CandidateExperience struct {
	BaseModel
	CandidateID string `gorm:"index"`
	JobTitle    string `gorm:"type:varchar(255)"`
	CompanyName string `gorm:"type:varchar(255)"`
	StartDate   *time.Time
	EndDate     *time.Time
}
