package dbmodels

// FileStorage - метаданные файла в объектном хранилище.
type FileStorage struct {
	BaseModel
	Name        string `gorm:"type:varchar(255)"`
	ObjectKey   string `gorm:"type:varchar(255);uniqueIndex"`
	ContentType string `gorm:"type:varchar(100)"`
	Size        int64
	CandidateID *string `gorm:"index"`
	ReportID    *string `gorm:"index"`
}
