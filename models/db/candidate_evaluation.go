package dbmodels

// CandidateEvaluation - лист опроса кандидата одним членом комиссии
// в рамках сессии. Содержит ответы по вопросам.
type CandidateEvaluation struct {
	BaseModel
	SessionID string `gorm:"index;uniqueIndex:idx_cand_eval_key"`
	Session   *EvaluationSession

	CandidateID string `gorm:"index;uniqueIndex:idx_cand_eval_key"`
	Candidate   *Candidate

	EvaluatorID string   `gorm:"uniqueIndex:idx_cand_eval_key"`
	Evaluator   *AppUser `gorm:"foreignKey:EvaluatorID"`

	IsCompleted bool `gorm:"default:false"`
	Notes       string

	Answers []EvaluationAnswer `gorm:"foreignKey:EvaluationID"`
}

// EvaluationAnswer - ответ на отдельный вопрос в листе опроса.
type EvaluationAnswer struct {
	BaseModel
	EvaluationID string `gorm:"index;uniqueIndex:idx_eval_answer_key"`
	QuestionID   string `gorm:"uniqueIndex:idx_eval_answer_key"`
	Question     *EvaluationQuestion

	SelectedOptionID *string
	SelectedOption   *QuestionOption `gorm:"foreignKey:SelectedOptionID"`
	AnswerText       string
	Score            float64
}
