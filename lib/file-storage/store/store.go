package filestore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	dbmodels "hr-eval-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.FileStorage) error
	GetByObjectKey(objectKey string) (*dbmodels.FileStorage, error)
	ListByCandidate(candidateID string) ([]dbmodels.FileStorage, error)
	Delete(objectKey string) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.FileStorage) error {
	return i.db.
		Save(&rec).
		Error
}

func (i impl) GetByObjectKey(objectKey string) (*dbmodels.FileStorage, error) {
	rec := dbmodels.FileStorage{}
	err := i.db.
		Where("object_key = ?", objectKey).
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

func (i impl) ListByCandidate(candidateID string) ([]dbmodels.FileStorage, error) {
	list := []dbmodels.FileStorage{}
	err := i.db.
		Where("candidate_id = ?", candidateID).
		Order("created_at").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) Delete(objectKey string) error {
	return i.db.
		Where("object_key = ?", objectKey).
		Delete(&dbmodels.FileStorage{}).
		Error
}
