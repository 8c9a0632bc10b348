package dbmodels

// Plan - план набора, объединяет кандидатов одного конкурса.
type Plan struct {
	BaseModel
	Title      string `gorm:"type:varchar(200)"`
	Department string `gorm:"type:varchar(100)"`
	Notes      string
	IsActive   bool

	Candidates []Candidate `gorm:"foreignKey:PlanID"`
}
