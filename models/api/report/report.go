package reportapimodels

import (
	"time"

	"github.com/pkg/errors"

	"hr-eval-backend/models"
	apimodels "hr-eval-backend/models/api"
	dbmodels "hr-eval-backend/models/db"
)

type FinalizeRequest struct {
	CandidateID    string                `json:"candidate_id"`   // ид кандидата
	Recommendation models.Recommendation `json:"recommendation"` // рекомендация комиссии
	Notes          string                `json:"notes"`          // заключение
}

func (r FinalizeRequest) Validate() error {
	if r.CandidateID == "" {
		return errors.New("не указан кандидат")
	}
	if r.Recommendation != "" && !r.Recommendation.IsValid() {
		return errors.New("неизвестная рекомендация")
	}
	return nil
}

type ReportView struct {
	ID                 string                            `json:"id"`
	SessionID          string                            `json:"session_id"`
	SessionTitle       string                            `json:"session_title"`
	CandidateID        string                            `json:"candidate_id"`
	CandidateName      string                            `json:"candidate_name"`
	EvaluatorID        string                            `json:"evaluator_id"`
	EvaluatorName      string                            `json:"evaluator_name"`
	TotalScore         float64                           `json:"total_score"`
	Grade              string                            `json:"grade"`
	Recommendation     string                            `json:"recommendation"`
	RecommendationName string                            `json:"recommendation_name"`
	TopicBreakdown     []dbmodels.TopicBreakdownItem     `json:"topic_breakdown"`
	Selections         []dbmodels.EvaluatorSelectionItem `json:"selections"`
	Notes              string                            `json:"notes"`
	FinalizedAt        time.Time                         `json:"finalized_at"`
	NotifiedAt         *time.Time                        `json:"notified_at,omitempty"`
}

type ReportFilter struct {
	apimodels.Pagination
	SessionID   string `json:"session_id"`   // фильтр по сессии
	CandidateID string `json:"candidate_id"` // фильтр по кандидату
	EvaluatorID string `json:"evaluator_id"` // фильтр по члену комиссии
}

func ReportConvert(rec dbmodels.EvaluationReport, breakdown []dbmodels.TopicBreakdownItem,
	selections []dbmodels.EvaluatorSelectionItem) ReportView {
	view := ReportView{
		ID:                 rec.ID,
		SessionID:          rec.SessionID,
		CandidateID:        rec.CandidateID,
		EvaluatorID:        rec.EvaluatorID,
		TotalScore:         rec.TotalScore,
		Grade:              rec.Grade,
		Recommendation:     string(rec.Recommendation),
		RecommendationName: rec.Recommendation.ToHuman(),
		TopicBreakdown:     breakdown,
		Selections:         selections,
		Notes:              rec.Notes,
		FinalizedAt:        rec.FinalizedAt,
		NotifiedAt:         rec.NotifiedAt,
	}
	if rec.Session != nil {
		view.SessionTitle = rec.Session.Title
	}
	if rec.Candidate != nil {
		view.CandidateName = rec.Candidate.Name
	}
	if rec.Evaluator != nil {
		view.EvaluatorName = rec.Evaluator.GetFullName()
	}
	return view
}
