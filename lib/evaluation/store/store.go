package evaluationstore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	dbmodels "hr-eval-backend/models/db"
)

type Provider interface {
	Upsert(rec dbmodels.CandidateTopicEvaluation) (id string, err error)
	Find(sessionID, candidateID, evaluatorID, topicID string) (*dbmodels.CandidateTopicEvaluation, error)
	ListByCandidate(sessionID, candidateID string) ([]dbmodels.CandidateTopicEvaluation, error)
	ListByEvaluator(sessionID, candidateID, evaluatorID string) ([]dbmodels.CandidateTopicEvaluation, error)
	EvaluatedCandidateCount(sessionID string) (int64, error)
	EvaluatedTopicIDs(sessionID, candidateID string) ([]string, error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

// Upsert перезаписывает прежний выбор той же четвёрки
// (сессия, кандидат, оценивающий, тема).
func (i impl) Upsert(rec dbmodels.CandidateTopicEvaluation) (id string, err error) {
	existed, err := i.Find(rec.SessionID, rec.CandidateID, rec.EvaluatorID, rec.TopicID)
	if err != nil {
		return "", err
	}
	if existed != nil {
		err = i.db.
			Model(&dbmodels.CandidateTopicEvaluation{}).
			Where("id = ?", existed.ID).
			Updates(map[string]interface{}{
				"CriteriaID": rec.CriteriaID,
				"Notes":      rec.Notes,
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

func (i impl) Find(sessionID, candidateID, evaluatorID, topicID string) (*dbmodels.CandidateTopicEvaluation, error) {
	rec := dbmodels.CandidateTopicEvaluation{}
	err := i.db.
		Where("session_id = ? AND candidate_id = ? AND evaluator_id = ? AND topic_id = ?",
			sessionID, candidateID, evaluatorID, topicID).
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

func (i impl) ListByCandidate(sessionID, candidateID string) ([]dbmodels.CandidateTopicEvaluation, error) {
	list := []dbmodels.CandidateTopicEvaluation{}
	err := i.db.
		Preload("Evaluator").
		Preload("Topic").
		Preload("Criteria").
		Where("session_id = ? AND candidate_id = ?", sessionID, candidateID).
		Order("created_at").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) ListByEvaluator(sessionID, candidateID, evaluatorID string) ([]dbmodels.CandidateTopicEvaluation, error) {
	list := []dbmodels.CandidateTopicEvaluation{}
	err := i.db.
		Preload("Topic").
		Preload("Criteria").
		Where("session_id = ? AND candidate_id = ? AND evaluator_id = ?", sessionID, candidateID, evaluatorID).
		Order("created_at").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) EvaluatedCandidateCount(sessionID string) (int64, error) {
	count := int64(0)
	err := i.db.
		Model(&dbmodels.CandidateTopicEvaluation{}).
		Where("session_id = ?", sessionID).
		Distinct("candidate_id").
		Count(&count).
		Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (i impl) EvaluatedTopicIDs(sessionID, candidateID string) ([]string, error) {
	ids := []string{}
	err := i.db.
		Model(&dbmodels.CandidateTopicEvaluation{}).
		Where("session_id = ? AND candidate_id = ?", sessionID, candidateID).
		Distinct("topic_id").
		Pluck("topic_id", &ids).
		Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}
