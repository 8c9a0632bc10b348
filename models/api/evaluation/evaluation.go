package evaluationapimodels

import (
	"github.com/pkg/errors"

	dbmodels "hr-eval-backend/models/db"
)

type TopicData struct {
	Name        string  `json:"name"`        // название темы
	Description string  `json:"description"` // описание
	Weight      float64 `json:"weight"`      // вес темы в итоговой сумме
	OrderIndex  int     `json:"order_index"` // позиция в списке
	IsActive    *bool   `json:"is_active"`   // признак активности
}

func (r TopicData) Validate() error {
	if r.Name == "" {
		return errors.New("не указано название темы")
	}
	if r.Weight <= 0 {
		return errors.New("вес темы должен быть положительным")
	}
	return nil
}

type CriteriaData struct {
	Name        string `json:"name"`        // название критерия
	Description string `json:"description"` // описание
	OrderIndex  int    `json:"order_index"` // позиция в упорядоченном списке
	IsActive    *bool  `json:"is_active"`   // признак активности
}

func (r CriteriaData) Validate() error {
	if r.Name == "" {
		return errors.New("не указано название критерия")
	}
	return nil
}

type CriteriaView struct {
	CriteriaData
	ID      string  `json:"id"`
	TopicID string  `json:"topic_id"`
	Percent float64 `json:"percent"` // процент, выводится из позиции критерия
}

type TopicView struct {
	TopicData
	ID       string         `json:"id"`
	Criteria []CriteriaView `json:"criteria"`
}

type SaveEvaluationRequest struct {
	CandidateID string `json:"candidate_id"` // ид кандидата
	TopicID     string `json:"topic_id"`     // ид темы
	CriteriaID  string `json:"criteria_id"`  // ид выбранного критерия
	Notes       string `json:"notes"`        // комментарий оценивающего
}

func (r SaveEvaluationRequest) Validate() error {
	if r.CandidateID == "" {
		return errors.New("не указан кандидат")
	}
	if r.TopicID == "" {
		return errors.New("не указана тема")
	}
	if r.CriteriaID == "" {
		return errors.New("не указан критерий")
	}
	return nil
}

type EvaluationView struct {
	ID            string  `json:"id"`
	SessionID     string  `json:"session_id"`
	CandidateID   string  `json:"candidate_id"`
	EvaluatorID   string  `json:"evaluator_id"`
	EvaluatorName string  `json:"evaluator_name"`
	TopicID       string  `json:"topic_id"`
	TopicName     string  `json:"topic_name"`
	CriteriaID    string  `json:"criteria_id"`
	CriteriaName  string  `json:"criteria_name"`
	Percent       float64 `json:"percent"` // процент выбранного критерия
	Notes         string  `json:"notes"`
}

// TopicSummaryView - сводка по теме для текущего кандидата.
type TopicSummaryView struct {
	TopicID        string  `json:"topic_id"`
	TopicName      string  `json:"topic_name"`
	Weight         float64 `json:"weight"`
	Evaluated      bool    `json:"evaluated"`       // есть ли хотя бы одна оценка
	EvaluatorCount int     `json:"evaluator_count"` // сколько членов комиссии оценило
	AveragePercent float64 `json:"average_percent"` // средний процент по оценкам
	WeightedScore  float64 `json:"weighted_score"`  // вклад темы в итоговый балл
}

// SummaryView - текущая сводка оценивания кандидата в сессии.
type SummaryView struct {
	CandidateID     string             `json:"candidate_id"`
	CandidateName   string             `json:"candidate_name"`
	Topics          []TopicSummaryView `json:"topics"`
	TotalScore      float64            `json:"total_score"` // 0..100
	Grade           string             `json:"grade"`
	EvaluatedTopics int                `json:"evaluated_topics"`
	TotalTopics     int                `json:"total_topics"`
}

func CriteriaConvert(rec dbmodels.EvaluationCriteria, percent float64) CriteriaView {
	isActive := rec.IsActive
	return CriteriaView{
		CriteriaData: CriteriaData{
			Name:        rec.Name,
			Description: rec.Description,
			OrderIndex:  rec.OrderIndex,
			IsActive:    &isActive,
		},
		ID:      rec.ID,
		TopicID: rec.TopicID,
		Percent: percent,
	}
}

func TopicConvert(rec dbmodels.EvaluationTopic, criteria []CriteriaView) TopicView {
	isActive := rec.IsActive
	return TopicView{
		TopicData: TopicData{
			Name:        rec.Name,
			Description: rec.Description,
			Weight:      rec.Weight,
			OrderIndex:  rec.OrderIndex,
			IsActive:    &isActive,
		},
		ID:       rec.ID,
		Criteria: criteria,
	}
}
