package dbmodels

// EvaluationCriteria - критерий внутри темы.
// Процент критерия не хранится, он выводится из позиции в упорядоченном
// списке активных критериев темы.
type EvaluationCriteria struct {
	BaseModel
	TopicID     string `gorm:"index"`
	Topic       *EvaluationTopic
	Name        string `gorm:"type:varchar(255)"`
	Description string
	OrderIndex  int  `gorm:"default:0"`
	IsActive    bool `gorm:"default:true"`
}
