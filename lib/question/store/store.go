package questionstore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"hr-eval-backend/models"
	dbmodels "hr-eval-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.EvaluationQuestion, options []dbmodels.QuestionOption) (questionID string, err error)
	GetByID(questionID string) (*dbmodels.EvaluationQuestion, error)
	Update(questionID string, updMap map[string]interface{}) error
	ReplaceOptions(questionID string, options []dbmodels.QuestionOption) error
	Delete(questionID string) error
	List(onlyActive bool) ([]dbmodels.EvaluationQuestion, error)
	Random(questionType models.QuestionType) (*dbmodels.EvaluationQuestion, error)

	FindEvaluation(sessionID, candidateID, evaluatorID string) (*dbmodels.CandidateEvaluation, error)
	// EnsureEvaluation создаёт пустой лист опроса, если его ещё нет.
	EnsureEvaluation(sessionID, candidateID, evaluatorID string) (id string, err error)
	SaveEvaluation(rec dbmodels.CandidateEvaluation, answers []dbmodels.EvaluationAnswer) (id string, err error)
	ListEvaluations(sessionID, candidateID string) ([]dbmodels.CandidateEvaluation, error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.EvaluationQuestion, options []dbmodels.QuestionOption) (questionID string, err error) {
	err = i.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&rec).Error; err != nil {
			return err
		}
		for idx := range options {
			options[idx].QuestionID = rec.ID
			if err := tx.Save(&options[idx]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(questionID string) (*dbmodels.EvaluationQuestion, error) {
	rec := dbmodels.EvaluationQuestion{}
	err := i.db.
		Preload("Options", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("order_index, created_at")
		}).
		Where("id = ?", questionID).
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

func (i impl) Update(questionID string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	err := i.db.
		Model(&dbmodels.EvaluationQuestion{}).
		Where("id = ?", questionID).
		Updates(updMap).
		Error
	if err != nil {
		return err
	}
	return nil
}

func (i impl) ReplaceOptions(questionID string, options []dbmodels.QuestionOption) error {
	return i.db.Transaction(func(tx *gorm.DB) error {
		err := tx.
			Where("question_id = ?", questionID).
			Delete(&dbmodels.QuestionOption{}).
			Error
		if err != nil {
			return err
		}
		for idx := range options {
			options[idx].QuestionID = questionID
			if err := tx.Save(&options[idx]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (i impl) Delete(questionID string) error {
	return i.db.Transaction(func(tx *gorm.DB) error {
		// слабые указатели сессий на вопрос очищаются при удалении
		err := tx.
			Model(&dbmodels.EvaluationSession{}).
			Where("current_question_id = ?", questionID).
			Update("current_question_id", nil).
			Error
		if err != nil {
			return err
		}
		err = tx.
			Where("question_id = ?", questionID).
			Delete(&dbmodels.QuestionOption{}).
			Error
		if err != nil {
			return err
		}
		return tx.
			Where("id = ?", questionID).
			Delete(&dbmodels.EvaluationQuestion{}).
			Error
	})
}

func (i impl) List(onlyActive bool) ([]dbmodels.EvaluationQuestion, error) {
	list := []dbmodels.EvaluationQuestion{}
	tx := i.db.Preload("Options", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("order_index, created_at")
	})
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

func (i impl) Random(questionType models.QuestionType) (*dbmodels.EvaluationQuestion, error) {
	rec := dbmodels.EvaluationQuestion{}
	err := i.db.
		Preload("Options", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("order_index, created_at")
		}).
		Where("is_active = ? AND type = ?", true, questionType).
		Order("RANDOM()").
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

func (i impl) EnsureEvaluation(sessionID, candidateID, evaluatorID string) (id string, err error) {
	existed, err := i.FindEvaluation(sessionID, candidateID, evaluatorID)
	if err != nil {
		return "", err
	}
	if existed != nil {
		return existed.ID, nil
	}
	rec := dbmodels.CandidateEvaluation{
		SessionID:   sessionID,
		CandidateID: candidateID,
		EvaluatorID: evaluatorID,
	}
	if err := i.db.Save(&rec).Error; err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) FindEvaluation(sessionID, candidateID, evaluatorID string) (*dbmodels.CandidateEvaluation, error) {
	rec := dbmodels.CandidateEvaluation{}
	err := i.db.
		Preload("Answers").
		Preload("Answers.Question").
		Where("session_id = ? AND candidate_id = ? AND evaluator_id = ?", sessionID, candidateID, evaluatorID).
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

// SaveEvaluation перезаписывает лист опроса целиком вместе с ответами.
func (i impl) SaveEvaluation(rec dbmodels.CandidateEvaluation, answers []dbmodels.EvaluationAnswer) (id string, err error) {
	existed, err := i.FindEvaluation(rec.SessionID, rec.CandidateID, rec.EvaluatorID)
	if err != nil {
		return "", err
	}
	err = i.db.Transaction(func(tx *gorm.DB) error {
		if existed != nil {
			rec.ID = existed.ID
			rec.CreatedAt = existed.CreatedAt
			err := tx.
				Where("evaluation_id = ?", existed.ID).
				Delete(&dbmodels.EvaluationAnswer{}).
				Error
			if err != nil {
				return err
			}
		}
		if err := tx.Save(&rec).Error; err != nil {
			return err
		}
		for idx := range answers {
			answers[idx].EvaluationID = rec.ID
			if err := tx.Save(&answers[idx]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) ListEvaluations(sessionID, candidateID string) ([]dbmodels.CandidateEvaluation, error) {
	list := []dbmodels.CandidateEvaluation{}
	err := i.db.
		Preload("Evaluator").
		Preload("Answers").
		Preload("Answers.Question").
		Where("session_id = ? AND candidate_id = ?", sessionID, candidateID).
		Order("created_at").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
