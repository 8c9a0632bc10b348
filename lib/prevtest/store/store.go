package prevteststore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	dbmodels "hr-eval-backend/models/db"
)

type Provider interface {
	CreateCategory(rec dbmodels.TestCategory) (categoryID string, err error)
	GetCategory(categoryID string) (*dbmodels.TestCategory, error)
	UpdateCategory(categoryID string, updMap map[string]interface{}) error
	DeleteCategory(categoryID string) error
	ListCategories(onlyActive bool) ([]dbmodels.TestCategory, error)
	CategoryCount() (int64, error)

	// UpsertResult перезаписывает результат той же пары (кандидат, категория).
	UpsertResult(rec dbmodels.CandidateTestResult) (id string, err error)
	GetResult(resultID string) (*dbmodels.CandidateTestResult, error)
	DeleteResult(resultID string) error
	ListByCandidate(candidateID string) ([]dbmodels.CandidateTestResult, error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) CreateCategory(rec dbmodels.TestCategory) (categoryID string, err error) {
	err = i.db.
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetCategory(categoryID string) (*dbmodels.TestCategory, error) {
	rec := dbmodels.TestCategory{}
	err := i.db.
		Where("id = ?", categoryID).
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

func (i impl) UpdateCategory(categoryID string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	err := i.db.
		Model(&dbmodels.TestCategory{}).
		Where("id = ?", categoryID).
		Updates(updMap).
		Error
	if err != nil {
		return err
	}
	return nil
}

func (i impl) DeleteCategory(categoryID string) error {
	return i.db.
		Where("id = ?", categoryID).
		Delete(&dbmodels.TestCategory{}).
		Error
}

func (i impl) ListCategories(onlyActive bool) ([]dbmodels.TestCategory, error) {
	list := []dbmodels.TestCategory{}
	tx := i.db.Model(&dbmodels.TestCategory{})
	if onlyActive {
		tx = tx.Where("is_active = ?", true)
	}
	err := tx.
		Order("name").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) CategoryCount() (int64, error) {
	count := int64(0)
	err := i.db.
		Model(&dbmodels.TestCategory{}).
		Count(&count).
		Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (i impl) UpsertResult(rec dbmodels.CandidateTestResult) (id string, err error) {
	existed := dbmodels.CandidateTestResult{}
	err = i.db.
		Where("candidate_id = ? AND category_id = ?", rec.CandidateID, rec.CategoryID).
		First(&existed).
		Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}
	if err == nil {
		err = i.db.
			Model(&dbmodels.CandidateTestResult{}).
			Where("id = ?", existed.ID).
			Updates(map[string]interface{}{
				"Score":       rec.Score,
				"TakenAt":     rec.TakenAt,
				"Notes":       rec.Notes,
				"EnteredByID": rec.EnteredByID,
			}).
			Error
		if err != nil {
			return "", err
		}
		return existed.ID, nil
	}
	err = i.db.
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetResult(resultID string) (*dbmodels.CandidateTestResult, error) {
	rec := dbmodels.CandidateTestResult{}
	err := i.db.
		Preload("Category").
		Preload("EnteredBy").
		Where("id = ?", resultID).
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

func (i impl) DeleteResult(resultID string) error {
	return i.db.
		Where("id = ?", resultID).
		Delete(&dbmodels.CandidateTestResult{}).
		Error
}

func (i impl) ListByCandidate(candidateID string) ([]dbmodels.CandidateTestResult, error) {
	list := []dbmodels.CandidateTestResult{}
	err := i.db.
		Preload("Category").
		Preload("EnteredBy").
		Where("candidate_id = ?", candidateID).
		Order("created_at").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
