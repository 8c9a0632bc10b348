package dbmodels

// CandidateTopicEvaluation - выбор критерия членом комиссии по теме.
// Уникальность по (сессия, кандидат, оценивающий, тема): повторное
// сохранение перезаписывает прежний выбор.
type CandidateTopicEvaluation struct {
	BaseModel
	SessionID string `gorm:"index;uniqueIndex:idx_topic_eval_key"`
	Session   *EvaluationSession

	CandidateID string `gorm:"index;uniqueIndex:idx_topic_eval_key"`
	Candidate   *Candidate

	EvaluatorID string `gorm:"uniqueIndex:idx_topic_eval_key"`
	Evaluator   *AppUser `gorm:"foreignKey:EvaluatorID"`

	TopicID string `gorm:"uniqueIndex:idx_topic_eval_key"`
	Topic   *EvaluationTopic

	CriteriaID string
	Criteria   *EvaluationCriteria `gorm:"foreignKey:CriteriaID"`

	Notes string
}
