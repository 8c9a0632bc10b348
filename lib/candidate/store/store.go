package candidatestore

import (
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	candidateapimodels "hr-eval-backend/models/api/candidate"
	dbmodels "hr-eval-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.Candidate) (candidateID string, err error)
	GetByID(candidateID string) (*dbmodels.Candidate, error)
	Update(candidateID string, updMap map[string]interface{}) error
	Delete(candidateID string) error
	List(filter candidateapimodels.CandidateFilter) ([]dbmodels.Candidate, int64, error)
	ListByPlan(planID string) ([]dbmodels.Candidate, error)
	ListUnevaluatedByPlan(planID, sessionID string) ([]dbmodels.Candidate, error)
	AddQualification(rec dbmodels.CandidateQualification) (id string, err error)
	DeleteQualification(candidateID, qualificationID string) error
	AddExperience(rec dbmodels.CandidateExperience) (id string, err error)
	DeleteExperience(candidateID, experienceID string) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Candidate) (candidateID string, err error) {
	err = i.db.
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(candidateID string) (*dbmodels.Candidate, error) {
	rec := dbmodels.Candidate{}
	err := i.db.
		Preload("Plan").
		Preload("Qualifications").
		Preload("Experiences").
		Where("id = ?", candidateID).
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

func (i impl) Update(candidateID string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	err := i.db.
		Model(&dbmodels.Candidate{}).
		Where("id = ?", candidateID).
		Updates(updMap).
		Error
	if err != nil {
		return err
	}
	return nil
}

func (i impl) Delete(candidateID string) error {
	err := i.db.
		Where("candidate_id = ?", candidateID).
		Delete(&dbmodels.CandidateQualification{}).
		Error
	if err != nil {
		return err
	}
	err = i.db.
		Where("candidate_id = ?", candidateID).
		Delete(&dbmodels.CandidateExperience{}).
		Error
	if err != nil {
		return err
	}
	err = i.db.
		Where("id = ?", candidateID).
		Delete(&dbmodels.Candidate{}).
		Error
	if err != nil {
		return err
	}
	return nil
}

func (i impl) List(filter candidateapimodels.CandidateFilter) ([]dbmodels.Candidate, int64, error) {
	list := []dbmodels.Candidate{}
	tx := i.db.Model(&dbmodels.Candidate{})
	if filter.PlanID != "" {
		tx = tx.Where("plan_id = ?", filter.PlanID)
	}
	if filter.ApplicationStatus != "" {
		tx = tx.Where("application_status = ?", filter.ApplicationStatus)
	}
	if filter.Search != "" {
		like := "%" + strings.ToLower(filter.Search) + "%"
		tx = tx.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ?", like, like)
	}
	rowCount := int64(0)
	err := tx.Count(&rowCount).Error
	if err != nil {
		return nil, 0, err
	}
	page, limit := filter.GetPage()
	err = tx.
		Preload("Plan").
		Order("created_at").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&list).
		Error
	if err != nil {
		return nil, 0, err
	}
	return list, rowCount, nil
}

// ListByPlan возвращает кандидатов плана в порядке создания,
// порядок определяет очередь прохода сессии.
func (i impl) ListByPlan(planID string) ([]dbmodels.Candidate, error) {
	list := []dbmodels.Candidate{}
	err := i.db.
		Where("plan_id = ?", planID).
		Order("created_at, id").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

// ListUnevaluatedByPlan возвращает кандидатов плана, по которым в сессии
// нет ни завершённого листа опроса, ни финализированного отчёта.
func (i impl) ListUnevaluatedByPlan(planID, sessionID string) ([]dbmodels.Candidate, error) {
	list := []dbmodels.Candidate{}
	completed := i.db.
		Model(&dbmodels.CandidateEvaluation{}).
		Select("candidate_id").
		Where("session_id = ? AND is_completed = ?", sessionID, true)
	finalized := i.db.
		Model(&dbmodels.EvaluationReport{}).
		Select("candidate_id").
		Where("session_id = ?", sessionID)
	err := i.db.
		Where("plan_id = ?", planID).
		Where("id NOT IN (?)", completed).
		Where("id NOT IN (?)", finalized).
		Order("created_at, id").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) AddQualification(rec dbmodels.CandidateQualification) (id string, err error) {
	err = i.db.
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) DeleteQualification(candidateID, qualificationID string) error {
	return i.db.
		Where("id = ? AND candidate_id = ?", qualificationID, candidateID).
		Delete(&dbmodels.CandidateQualification{}).
		Error
}

func (i impl) AddExperience(rec dbmodels.CandidateExperience) (id string, err error) {
	err = i.db.
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) DeleteExperience(candidateID, experienceID string) error {
	return i.db.
		Where("id = ? AND candidate_id = ?", experienceID, candidateID).
		Delete(&dbmodels.CandidateExperience{}).
		Error
}
