package dbmodels

import (
	"time"

	"gorm.io/datatypes"

	"hr-eval-backend/models"
)

// EvaluationReport - итоговый отчёт одного члена комиссии по кандидату
// в рамках сессии. Один снимок на тройку (сессия, кандидат, оценивающий),
// повторная финализация перезаписывает прежний.
type EvaluationReport struct {
	BaseModel
	SessionID string `gorm:"index;uniqueIndex:idx_report_key"`
	Session   *EvaluationSession

	CandidateID string `gorm:"index;uniqueIndex:idx_report_key"`
	Candidate   *Candidate

	EvaluatorID string   `gorm:"uniqueIndex:idx_report_key"`
	Evaluator   *AppUser `gorm:"foreignKey:EvaluatorID"`

	TotalScore     float64
	Grade          string                `gorm:"type:varchar(20)"`
	Recommendation models.Recommendation `gorm:"type:varchar(20)"`

	// Разбивка по темам: номер темы, средний процент, взвешенный вклад.
	TopicBreakdown datatypes.JSON
	// Собственный выбор критериев финализировавшего, для аудита.
	EvaluatorSelections datatypes.JSON

	Notes        string
	FinalizedAt  time.Time `gorm:"autoCreateTime"`
	NotifiedAt   *time.Time
	PdfObjectKey string `gorm:"type:varchar(255)"`
}

// EvaluatorSelectionItem - выбор критерия финализировавшим по одной теме.
type EvaluatorSelectionItem struct {
	TopicID      string  `json:"topic_id"`
	TopicName    string  `json:"topic_name"`
	CriteriaID   string  `json:"criteria_id"`
	CriteriaName string  `json:"criteria_name"`
	Percent      float64 `json:"percent"`
}

// TopicBreakdownItem - элемент разбивки итогового балла по темам.
type TopicBreakdownItem struct {
	TopicID        string  `json:"topic_id"`
	TopicName      string  `json:"topic_name"`
	Weight         float64 `json:"weight"`
	AveragePercent float64 `json:"average_percent"`
	WeightedScore  float64 `json:"weighted_score"`
	Evaluated      bool    `json:"evaluated"`
}
