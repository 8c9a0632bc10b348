package reportstore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	reportapimodels "hr-eval-backend/models/api/report"
	dbmodels "hr-eval-backend/models/db"
)

type Provider interface {
	Save(rec dbmodels.EvaluationReport) (reportID string, err error)
	GetByID(reportID string) (*dbmodels.EvaluationReport, error)
	// Find ищет отчёт по сессии и кандидату. Пустой evaluatorID
	// означает любого члена комиссии, берётся самый свежий снимок.
	Find(sessionID, candidateID, evaluatorID string) (*dbmodels.EvaluationReport, error)
	Update(reportID string, updMap map[string]interface{}) error
	List(filter reportapimodels.ReportFilter) ([]dbmodels.EvaluationReport, int64, error)
	CountBySession(sessionID string) (int64, error)
	ListUnnotified() ([]dbmodels.EvaluationReport, error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Save(rec dbmodels.EvaluationReport) (reportID string, err error) {
	err = i.db.
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(reportID string) (*dbmodels.EvaluationReport, error) {
	rec := dbmodels.EvaluationReport{}
	err := i.db.
		Preload("Session").
		Preload("Candidate").
		Preload("Evaluator").
		Where("id = ?", reportID).
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

func (i impl) Find(sessionID, candidateID, evaluatorID string) (*dbmodels.EvaluationReport, error) {
	rec := dbmodels.EvaluationReport{}
	tx := i.db.
		Preload("Session").
		Preload("Candidate").
		Preload("Evaluator").
		Where("session_id = ? AND candidate_id = ?", sessionID, candidateID)
	if evaluatorID != "" {
		tx = tx.Where("evaluator_id = ?", evaluatorID)
	}
	err := tx.
		Order("finalized_at DESC").
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

func (i impl) Update(reportID string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	err := i.db.
		Model(&dbmodels.EvaluationReport{}).
		Where("id = ?", reportID).
		Updates(updMap).
		Error
	if err != nil {
		return err
	}
	return nil
}

func (i impl) List(filter reportapimodels.ReportFilter) ([]dbmodels.EvaluationReport, int64, error) {
	list := []dbmodels.EvaluationReport{}
	tx := i.db.Model(&dbmodels.EvaluationReport{})
	if filter.SessionID != "" {
		tx = tx.Where("session_id = ?", filter.SessionID)
	}
	if filter.CandidateID != "" {
		tx = tx.Where("candidate_id = ?", filter.CandidateID)
	}
	if filter.EvaluatorID != "" {
		tx = tx.Where("evaluator_id = ?", filter.EvaluatorID)
	}
	rowCount := int64(0)
	err := tx.Count(&rowCount).Error
	if err != nil {
		return nil, 0, err
	}
	page, limit := filter.GetPage()
	err = tx.
		Preload("Session").
		Preload("Candidate").
		Preload("Evaluator").
		Order("finalized_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&list).
		Error
	if err != nil {
		return nil, 0, err
	}
	return list, rowCount, nil
}

func (i impl) CountBySession(sessionID string) (int64, error) {
	count := int64(0)
	err := i.db.
		Model(&dbmodels.EvaluationReport{}).
		Where("session_id = ?", sessionID).
		Count(&count).
		Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (i impl) ListUnnotified() ([]dbmodels.EvaluationReport, error) {
	list := []dbmodels.EvaluationReport{}
	err := i.db.
		Preload("Session").
		Preload("Session.CreatedBy").
		Preload("Candidate").
		Where("notified_at IS NULL").
		Order("finalized_at").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
