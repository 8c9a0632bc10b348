package planstore

import (
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	planapimodels "hr-eval-backend/models/api/plan"
	dbmodels "hr-eval-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.Plan) (planID string, err error)
	GetByID(planID string) (*dbmodels.Plan, error)
	Update(planID string, updMap map[string]interface{}) error
	Delete(planID string) error
	List(filter planapimodels.PlanFilter) ([]dbmodels.Plan, int64, error)
	CandidateCount(planID string) (int64, error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Plan) (planID string, err error) {
	err = i.db.
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(planID string) (*dbmodels.Plan, error) {
	rec := dbmodels.Plan{}
	err := i.db.
		Where("id = ?", planID).
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

func (i impl) Update(planID string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	err := i.db.
		Model(&dbmodels.Plan{}).
		Where("id = ?", planID).
		Updates(updMap).
		Error
	if err != nil {
		return err
	}
	return nil
}

func (i impl) Delete(planID string) error {
	err := i.db.
		Where("id = ?", planID).
		Delete(&dbmodels.Plan{}).
		Error
	if err != nil {
		return err
	}
	return nil
}

func (i impl) List(filter planapimodels.PlanFilter) ([]dbmodels.Plan, int64, error) {
	list := []dbmodels.Plan{}
	tx := i.db.Model(&dbmodels.Plan{})
	if filter.Search != "" {
		like := "%" + strings.ToLower(filter.Search) + "%"
		tx = tx.Where("LOWER(title) LIKE ? OR LOWER(department) LIKE ?", like, like)
	}
	if filter.IsActive != nil {
		tx = tx.Where("is_active = ?", *filter.IsActive)
	}
	rowCount := int64(0)
	err := tx.Count(&rowCount).Error
	if err != nil {
		return nil, 0, err
	}
	page, limit := filter.GetPage()
	err = tx.
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&list).
		Error
	if err != nil {
		return nil, 0, err
	}
	return list, rowCount, nil
}

func (i impl) CandidateCount(planID string) (int64, error) {
	count := int64(0)
	err := i.db.
		Model(&dbmodels.Candidate{}).
		Where("plan_id = ?", planID).
		Count(&count).
		Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
