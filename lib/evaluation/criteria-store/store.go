package criteriastore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	dbmodels "hr-eval-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.EvaluationCriteria) (criteriaID string, err error)
	GetByID(criteriaID string) (*dbmodels.EvaluationCriteria, error)
	Update(criteriaID string, updMap map[string]interface{}) error
	Delete(criteriaID string) error
	ListByTopic(topicID string, onlyActive bool) ([]dbmodels.EvaluationCriteria, error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.EvaluationCriteria) (criteriaID string, err error) {
	err = i.db.
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(criteriaID string) (*dbmodels.EvaluationCriteria, error) {
	rec := dbmodels.EvaluationCriteria{}
	err := i.db.
		Where("id = ?", criteriaID).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) Update(criteriaID string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	err := i.db.
		Model(&dbmodels.EvaluationCriteria{}).
		Where("id = ?", criteriaID).
		Updates(updMap).
		Error
	if err != nil {
		return err
	}
	return nil
}

func (i impl) Delete(criteriaID string) error {
	return i.db.
		Where("id = ?", criteriaID).
		Delete(&dbmodels.EvaluationCriteria{}).
		Error
}

// ListByTopic возвращает критерии темы в порядке следования,
// он определяет процент каждого критерия.
func (i impl) ListByTopic(topicID string, onlyActive bool) ([]dbmodels.EvaluationCriteria, error) {
	list := []dbmodels.EvaluationCriteria{}
	tx := i.db.Where("topic_id = ?", topicID)
	if onlyActive {
		tx = tx.Where("is_active = ?", true)
	}
	err := tx.
		Order("order_index, created_at").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
