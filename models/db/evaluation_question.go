package dbmodels

import (
	"hr-eval-backend/models"
)

// EvaluationQuestion - вопрос для дополнительного трека опроса.
type EvaluationQuestion struct {
	BaseModel
	Text       string
	Type       models.QuestionType `gorm:"type:varchar(10)"`
	MaxScore   float64             `gorm:"default:10"`
	OrderIndex int                 `gorm:"default:0"`
	IsActive   bool                `gorm:"default:true"`

	Options []QuestionOption `gorm:"foreignKey:QuestionID"`
}

// QuestionOption - вариант ответа для вопросов с выбором.
type QuestionOption struct {
	BaseModel
	QuestionID string `gorm:"index"`
	Text       string
	IsCorrect  bool `gorm:"default:false"`
	OrderIndex int  `gorm:"default:0"`
}
