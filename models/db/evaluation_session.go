package dbmodels

import (
	"time"

	"gorm.io/datatypes"

	"hr-eval-backend/models"
)

// EvaluationSession - сессия оценивания по плану набора.
// На одну дату по плану допускается одна сессия, активной может быть
// только одна сессия одновременно.
type EvaluationSession struct {
	BaseModel
	Title       string               `gorm:"type:varchar(255)"`
	PlanID      string               `gorm:"index;uniqueIndex:idx_session_plan_date"`
	Plan        *Plan
	SessionDate datatypes.Date       `gorm:"uniqueIndex:idx_session_plan_date"`
	Status      models.SessionStatus `gorm:"type:varchar(10);default:setup"`

	CurrentCandidateID *string
	CurrentCandidate   *Candidate `gorm:"foreignKey:CurrentCandidateID"`

	// Слабый указатель на текущий вопрос, очищается при удалении вопроса.
	CurrentQuestionID *string
	CurrentQuestion   *EvaluationQuestion `gorm:"foreignKey:CurrentQuestionID"`

	CreatedByID string
	CreatedBy   *AppUser `gorm:"foreignKey:CreatedByID"`

	StartTime *time.Time
	EndTime   *time.Time

	Evaluators []AppUser `gorm:"many2many:session_evaluators;"`
}

func (r EvaluationSession) IsActive() bool {
	return r.Status == models.SessionStatusActive
}
