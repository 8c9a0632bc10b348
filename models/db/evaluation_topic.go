package dbmodels

// EvaluationTopic - тема оценивания с весом в итоговой сумме.
type EvaluationTopic struct {
	BaseModel
	Name        string `gorm:"type:varchar(255)"`
	Description string
	Weight      float64 `gorm:"default:1"`
	OrderIndex  int     `gorm:"default:0"`
	IsActive    bool    `gorm:"default:true"`

	Criteria []EvaluationCriteria `gorm:"foreignKey:TopicID"`
}
