package dbmodels

import (
	"time"

	"hr-eval-backend/models"
)

// TestCategory - категория стандартизированного теста (шаблон).
type TestCategory struct {
	BaseModel
	Name        string `gorm:"type:varchar(255)"`
	Description string
	MaxScore    float64                 `gorm:"default:100"`
	Type        models.ExaminationType  `gorm:"type:varchar(30);column:exam_type"`
	IsActive    bool                    `gorm:"default:true"`
}

// CandidateTestResult - результат ранее пройденного теста кандидата.
type CandidateTestResult struct {
	BaseModel
	CandidateID string `gorm:"index;uniqueIndex:idx_test_result_key"`
	Candidate   *Candidate

	CategoryID string `gorm:"uniqueIndex:idx_test_result_key"`
	Category   *TestCategory

	Score       float64
	TakenAt     *time.Time
	Notes       string
	EnteredByID string
	EnteredBy   *AppUser `gorm:"foreignKey:EnteredByID"`
}

// Percent - результат в процентах от максимума категории.
func (r CandidateTestResult) Percent() float64 {
	if r.Category == nil || r.Category.MaxScore <= 0 {
		return 0
	}
	return r.Score / r.Category.MaxScore * 100
}
