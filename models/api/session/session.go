package sessionapimodels

import (
	"time"

	"github.com/pkg/errors"
	"gorm.io/datatypes"

	apimodels "hr-eval-backend/models/api"
	dbmodels "hr-eval-backend/models/db"
)

type SessionData struct {
	Title        string         `json:"title"`         // название сессии
	PlanID       string         `json:"plan_id"`       // ид плана набора
	SessionDate  datatypes.Date `json:"session_date"`  // дата проведения, по умолчанию сегодня
	EvaluatorIDs []string       `json:"evaluator_ids"` // ид членов комиссии
}

func (r SessionData) Validate() error {
	if r.Title == "" {
		return errors.New("не указано название сессии")
	}
	if r.PlanID == "" {
		return errors.New("отсутствует ссылка на план набора")
	}
	return nil
}

type EvaluatorView struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}

type SessionView struct {
	SessionData
	ID                   string          `json:"id"`
	PlanTitle            string          `json:"plan_title"`
	Status               string          `json:"status"`
	StatusName           string          `json:"status_name"`
	CurrentCandidateID   string          `json:"current_candidate_id,omitempty"`
	CurrentCandidateName string          `json:"current_candidate_name,omitempty"`
	CurrentQuestionID    string          `json:"current_question_id,omitempty"`
	CreatedByName        string          `json:"created_by_name"`
	StartTime            *time.Time      `json:"start_time"`
	EndTime              *time.Time      `json:"end_time"`
	Evaluators           []EvaluatorView `json:"evaluators"`
	CreationDate         time.Time       `json:"creation_date"`
}

type SessionFilter struct {
	apimodels.Pagination
	PlanID string `json:"plan_id"` // фильтр по плану
	Status string `json:"status"`  // фильтр по статусу
}

type SetCandidateRequest struct {
	CandidateID string `json:"candidate_id"` // ид текущего кандидата
}

func (r SetCandidateRequest) Validate() error {
	if r.CandidateID == "" {
		return errors.New("не указан кандидат")
	}
	return nil
}

// AdvanceResult - результат перехода к следующему кандидату.
type AdvanceResult struct {
	CandidateID           string `json:"candidate_id,omitempty"`
	CandidateName         string `json:"candidate_name,omitempty"`
	NoCandidatesRemaining bool   `json:"no_candidates_remaining"`
}

// ProgressView - сводка хода сессии.
type ProgressView struct {
	TotalCandidates     int64   `json:"total_candidates"`     // всего кандидатов в плане
	EvaluatedCandidates int64   `json:"evaluated_candidates"` // кандидатов хотя бы с одной оценкой
	FinalizedReports    int64   `json:"finalized_reports"`    // сформировано отчётов
	ProgressPercent     float64 `json:"progress_percent"`
}

func SessionConvert(rec dbmodels.EvaluationSession) SessionView {
	view := SessionView{
		SessionData: SessionData{
			Title:        rec.Title,
			PlanID:       rec.PlanID,
			SessionDate:  rec.SessionDate,
			EvaluatorIDs: make([]string, 0, len(rec.Evaluators)),
		},
		ID:           rec.ID,
		Status:       string(rec.Status),
		StatusName:   rec.Status.ToHuman(),
		StartTime:    rec.StartTime,
		EndTime:      rec.EndTime,
		Evaluators:   make([]EvaluatorView, 0, len(rec.Evaluators)),
		CreationDate: rec.CreatedAt,
	}
	if rec.Plan != nil {
		view.PlanTitle = rec.Plan.Title
	}
	if rec.CurrentCandidateID != nil {
		view.CurrentCandidateID = *rec.CurrentCandidateID
	}
	if rec.CurrentCandidate != nil {
		view.CurrentCandidateName = rec.CurrentCandidate.Name
	}
	if rec.CurrentQuestionID != nil {
		view.CurrentQuestionID = *rec.CurrentQuestionID
	}
	if rec.CreatedBy != nil {
		view.CreatedByName = rec.CreatedBy.GetFullName()
	}
	for _, ev := range rec.Evaluators {
		view.EvaluatorIDs = append(view.EvaluatorIDs, ev.ID)
		view.Evaluators = append(view.Evaluators, EvaluatorView{
			ID:       ev.ID,
			FullName: ev.GetFullName(),
			Email:    ev.Email,
		})
	}
	return view
}
