package sessionstore

import (
	"time"

	"github.com/pkg/errors"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"hr-eval-backend/models"
	sessionapimodels "hr-eval-backend/models/api/session"
	dbmodels "hr-eval-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.EvaluationSession, evaluatorIDs []string) (sessionID string, err error)
	GetByID(sessionID string) (*dbmodels.EvaluationSession, error)
	Update(sessionID string, updMap map[string]interface{}) error
	List(filter sessionapimodels.SessionFilter) ([]dbmodels.EvaluationSession, int64, error)
	SetEvaluators(sessionID string, evaluatorIDs []string) error
	// ActivateExclusive в одной транзакции приостанавливает все прочие
	// активные сессии и активирует указанную. Ненулевой candidateID
	// одновременно назначает текущего кандидата.
	ActivateExclusive(sessionID string, startTime *time.Time, candidateID *string) error
	FindActive() (*dbmodels.EvaluationSession, error)
	FindByPlanAndDate(planID string, date datatypes.Date) (*dbmodels.EvaluationSession, error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.EvaluationSession, evaluatorIDs []string) (sessionID string, err error) {
	err = i.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&rec).Error; err != nil {
			return err
		}
		if len(evaluatorIDs) == 0 {
			return nil
		}
		evaluators := []dbmodels.AppUser{}
		if err := tx.Where("id IN ?", evaluatorIDs).Find(&evaluators).Error; err != nil {
			return err
		}
		if len(evaluators) != len(evaluatorIDs) {
			return errors.New("часть членов комиссии не найдена")
		}
		return tx.Model(&rec).Association("Evaluators").Replace(evaluators)
	})
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(sessionID string) (*dbmodels.EvaluationSession, error) {
	rec := dbmodels.EvaluationSession{}
	err := i.db.
		Preload("Plan").
		Preload("CurrentCandidate").
		Preload("CreatedBy").
		Preload("Evaluators").
		Where("id = ?", sessionID).
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

func (i impl) Update(sessionID string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	err := i.db.
		Model(&dbmodels.EvaluationSession{}).
		Where("id = ?", sessionID).
		Updates(updMap).
		Error
	if err != nil {
		return err
	}
	return nil
}

func (i impl) List(filter sessionapimodels.SessionFilter) ([]dbmodels.EvaluationSession, int64, error) {
	list := []dbmodels.EvaluationSession{}
	tx := i.db.Model(&dbmodels.EvaluationSession{})
	if filter.PlanID != "" {
		tx = tx.Where("plan_id = ?", filter.PlanID)
	}
	if filter.Status != "" {
		tx = tx.Where("status = ?", filter.Status)
	}
	rowCount := int64(0)
	err := tx.Count(&rowCount).Error
	if err != nil {
		return nil, 0, err
	}
	page, limit := filter.GetPage()
	err = tx.
		Preload("Plan").
		Preload("CurrentCandidate").
		Preload("CreatedBy").
		Preload("Evaluators").
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

func (i impl) SetEvaluators(sessionID string, evaluatorIDs []string) error {
	rec := dbmodels.EvaluationSession{}
	rec.ID = sessionID
	evaluators := []dbmodels.AppUser{}
	if len(evaluatorIDs) > 0 {
		if err := i.db.Where("id IN ?", evaluatorIDs).Find(&evaluators).Error; err != nil {
			return err
		}
		if len(evaluators) != len(evaluatorIDs) {
			return errors.New("часть членов комиссии не найдена")
		}
	}
	return i.db.Model(&rec).Association("Evaluators").Replace(evaluators)
}

func (i impl) ActivateExclusive(sessionID string, startTime *time.Time, candidateID *string) error {
	return i.db.Transaction(func(tx *gorm.DB) error {
		err := tx.
			Model(&dbmodels.EvaluationSession{}).
			Where("status = ? AND id <> ?", models.SessionStatusActive, sessionID).
			Update("status", models.SessionStatusPaused).
			Error
		if err != nil {
			return err
		}
		updMap := map[string]interface{}{"Status": models.SessionStatusActive}
		if startTime != nil {
			updMap["StartTime"] = *startTime
		}
		if candidateID != nil {
			updMap["CurrentCandidateID"] = *candidateID
		}
		return tx.
			Model(&dbmodels.EvaluationSession{}).
			Where("id = ?", sessionID).
			Updates(updMap).
			Error
	})
}

func (i impl) FindByPlanAndDate(planID string, date datatypes.Date) (*dbmodels.EvaluationSession, error) {
	rec := dbmodels.EvaluationSession{}
	err := i.db.
		Where("plan_id = ? AND session_date = ?", planID, date).
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

func (i impl) FindActive() (*dbmodels.EvaluationSession, error) {
	rec := dbmodels.EvaluationSession{}
	err := i.db.
		Preload("Plan").
		Preload("CurrentCandidate").
		Where("status = ?", models.SessionStatusActive).
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
