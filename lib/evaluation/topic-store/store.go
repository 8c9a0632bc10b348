package topicstore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	dbmodels "hr-eval-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.EvaluationTopic) (topicID string, err error)
	GetByID(topicID string) (*dbmodels.EvaluationTopic, error)
	Update(topicID string, updMap map[string]interface{}) error
	Delete(topicID string) error
	List(onlyActive bool) ([]dbmodels.EvaluationTopic, error)
	Count() (int64, error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.EvaluationTopic) (topicID string, err error) {
	err = i.db.
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(topicID string) (*dbmodels.EvaluationTopic, error) {
	rec := dbmodels.EvaluationTopic{}
	err := i.db.
		Preload("Criteria").
		Where("id = ?", topicID).
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

func (i impl) Update(topicID string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	err := i.db.
		Model(&dbmodels.EvaluationTopic{}).
		Where("id = ?", topicID).
		Updates(updMap).
		Error
	if err != nil {
		return err
	}
	return nil
}

func (i impl) Delete(topicID string) error {
	err := i.db.
		Where("topic_id = ?", topicID).
		Delete(&dbmodels.EvaluationCriteria{}).
		Error
	if err != nil {
		return err
	}
	return i.db.
		Where("id = ?", topicID).
		Delete(&dbmodels.EvaluationTopic{}).
		Error
}

func (i impl) List(onlyActive bool) ([]dbmodels.EvaluationTopic, error) {
	list := []dbmodels.EvaluationTopic{}
	tx := i.db.Preload("Criteria")
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

func (i impl) Count() (int64, error) {
	count := int64(0)
	err := i.db.
		Model(&dbmodels.EvaluationTopic{}).
		Count(&count).
		Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
