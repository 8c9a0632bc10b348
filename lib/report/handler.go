package reporthandler

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"hr-eval-backend/db"
	candidatestore "hr-eval-backend/lib/candidate/store"
	evaluationhandler "hr-eval-backend/lib/evaluation"
	"hr-eval-backend/lib/evaluation/scoring"
	evaluationstore "hr-eval-backend/lib/evaluation/store"
	topicstore "hr-eval-backend/lib/evaluation/topic-store"
	pdfexport "hr-eval-backend/lib/export/pdf"
	reportstore "hr-eval-backend/lib/report/store"
	sessionstore "hr-eval-backend/lib/session/store"
	"hr-eval-backend/lib/utils/helpers"
	"hr-eval-backend/models"
	reportapimodels "hr-eval-backend/models/api/report"
	dbmodels "hr-eval-backend/models/db"
)

type Provider interface {
	// Finalize формирует снимок отчёта финализирующего члена комиссии
	// по кандидату. Требует, чтобы финализирующий оценил все активные
	// темы; повторная финализация перезаписывает прежний снимок.
	Finalize(ctx context.Context, sessionID, finalizerID string, request reportapimodels.FinalizeRequest) (reportID string, err error)
	Get(reportID string) (reportapimodels.ReportView, error)
	Find(sessionID, candidateID, evaluatorID string) (reportapimodels.ReportView, error)
	List(filter reportapimodels.ReportFilter) ([]reportapimodels.ReportView, int64, error)
	ExportPDF(reportID string) (fileName string, pdfFile []byte, err error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store:           reportstore.NewInstance(db.DB),
		sessionStore:    sessionstore.NewInstance(db.DB),
		candidateStore:  candidatestore.NewInstance(db.DB),
		topicStore:      topicstore.NewInstance(db.DB),
		evaluationStore: evaluationstore.NewInstance(db.DB),
	}
}

type impl struct {
	store           reportstore.Provider
	sessionStore    sessionstore.Provider
	candidateStore  candidatestore.Provider
	topicStore      topicstore.Provider
	evaluationStore evaluationstore.Provider
}

func (i impl) Finalize(ctx context.Context, sessionID, finalizerID string, request reportapimodels.FinalizeRequest) (reportID string, err error) {
	logger := log.
		WithField("session_id", sessionID).
		WithField("candidate_id", request.CandidateID).
		WithField("evaluator_id", finalizerID)
	session, err := i.sessionStore.GetByID(sessionID)
	if err != nil {
		logger.WithError(err).Error("Ошибка получения сессии")
		return "", err
	}
	if session == nil {
		return "", models.NotFoundError("сессия не найдена")
	}
	if session.Status != models.SessionStatusActive && session.Status != models.SessionStatusPaused {
		return "", models.ConflictError("отчёт формируется только по запущенной сессии")
	}
	candidate, err := i.candidateStore.GetByID(request.CandidateID)
	if err != nil {
		return "", err
	}
	if candidate == nil {
		return "", models.NotFoundError("кандидат не найден")
	}
	if candidate.PlanID != session.PlanID {
		return "", models.NotFoundError("кандидат не относится к плану сессии")
	}
	topics, err := i.topicStore.List(true)
	if err != nil {
		return "", err
	}
	mine, err := i.evaluationStore.ListByEvaluator(sessionID, request.CandidateID, finalizerID)
	if err != nil {
		return "", err
	}
	judged := judgedTopicCount(topics, mine)
	if judged < len(topics) {
		return "", models.ConflictError(
			fmt.Sprintf("оценены не все темы: %d из %d", judged, len(topics)))
	}
	// Итог считается по оценкам всей комиссии, не только финализировавшего
	evaluations, err := i.evaluationStore.ListByCandidate(sessionID, request.CandidateID)
	if err != nil {
		return "", err
	}
	scores := evaluationhandler.TopicScores(topics, evaluations)

	totalScore := helpers.Round1(scoring.TotalScore(scores))
	breakdown := make([]dbmodels.TopicBreakdownItem, 0, len(scores))
	for _, score := range scores {
		breakdown = append(breakdown, dbmodels.TopicBreakdownItem{
			TopicID:        score.TopicID,
			TopicName:      score.TopicName,
			Weight:         score.Weight,
			AveragePercent: helpers.Round1(score.AveragePercent),
			WeightedScore:  helpers.Round1(score.WeightedScore),
			Evaluated:      score.Evaluated,
		})
	}
	breakdownJSON, err := json.Marshal(breakdown)
	if err != nil {
		return "", err
	}
	selectionsJSON, err := json.Marshal(evaluatorSelections(topics, mine))
	if err != nil {
		return "", err
	}
	rec := dbmodels.EvaluationReport{
		SessionID:           sessionID,
		CandidateID:         request.CandidateID,
		EvaluatorID:         finalizerID,
		TotalScore:          totalScore,
		Grade:               scoring.Grade(totalScore),
		Recommendation:      request.Recommendation,
		TopicBreakdown:      breakdownJSON,
		EvaluatorSelections: selectionsJSON,
		Notes:               request.Notes,
		FinalizedAt:         time.Now(),
	}
	existed, err := i.store.Find(sessionID, request.CandidateID, finalizerID)
	if err != nil {
		return "", err
	}
	if existed != nil {
		rec.ID = existed.ID
		rec.CreatedAt = existed.CreatedAt
	}
	reportID, err = i.store.Save(rec)
	if err != nil {
		logger.WithError(err).Error("Ошибка сохранения отчёта")
		return "", err
	}
	err = i.candidateStore.Update(request.CandidateID,
		map[string]interface{}{"ApplicationStatus": models.ApplicationStatusInterviewed})
	if err != nil {
		logger.WithError(err).Warn("Ошибка смены статуса заявки кандидата")
	}
	logger.
		WithField("report_id", reportID).
		WithField("total_score", totalScore).
		Info("Сформирован итоговый отчёт")
	return reportID, nil
}

func (i impl) Get(reportID string) (reportapimodels.ReportView, error) {
	rec, err := i.store.GetByID(reportID)
	if err != nil {
		log.WithField("report_id", reportID).WithError(err).Error("Ошибка получения отчёта")
		return reportapimodels.ReportView{}, err
	}
	if rec == nil {
		return reportapimodels.ReportView{}, models.NotFoundError("отчёт не найден")
	}
	return convert(*rec)
}

func (i impl) Find(sessionID, candidateID, evaluatorID string) (reportapimodels.ReportView, error) {
	rec, err := i.store.Find(sessionID, candidateID, evaluatorID)
	if err != nil {
		return reportapimodels.ReportView{}, err
	}
	if rec == nil {
		return reportapimodels.ReportView{}, models.NotFoundError("отчёт не найден")
	}
	return convert(*rec)
}

func (i impl) List(filter reportapimodels.ReportFilter) ([]reportapimodels.ReportView, int64, error) {
	list, rowCount, err := i.store.List(filter)
	if err != nil {
		log.WithError(err).Error("Ошибка получения списка отчётов")
		return nil, 0, err
	}
	result := make([]reportapimodels.ReportView, 0, len(list))
	for _, rec := range list {
		view, err := convert(rec)
		if err != nil {
			return nil, 0, err
		}
		result = append(result, view)
	}
	return result, rowCount, nil
}

func (i impl) ExportPDF(reportID string) (fileName string, pdfFile []byte, err error) {
	view, err := i.Get(reportID)
	if err != nil {
		return "", nil, err
	}
	pdfFile, err = pdfexport.GenerateReport(view)
	if err != nil {
		log.WithField("report_id", reportID).WithError(err).Error("Ошибка формирования pdf отчёта")
		return "", nil, err
	}
	fileName = fmt.Sprintf("report-%s.pdf", reportID)
	return fileName, pdfFile, nil
}

func convert(rec dbmodels.EvaluationReport) (reportapimodels.ReportView, error) {
	breakdown := []dbmodels.TopicBreakdownItem{}
	if len(rec.TopicBreakdown) > 0 {
		if err := json.Unmarshal(rec.TopicBreakdown, &breakdown); err != nil {
			return reportapimodels.ReportView{}, err
		}
	}
	selections := []dbmodels.EvaluatorSelectionItem{}
	if len(rec.EvaluatorSelections) > 0 {
		if err := json.Unmarshal(rec.EvaluatorSelections, &selections); err != nil {
			return reportapimodels.ReportView{}, err
		}
	}
	return reportapimodels.ReportConvert(rec, breakdown, selections), nil
}

// judgedTopicCount считает активные темы, по которым у финализировавшего
// есть собственная оценка.
func judgedTopicCount(topics []dbmodels.EvaluationTopic, mine []dbmodels.CandidateTopicEvaluation) int {
	judged := map[string]bool{}
	for _, ev := range mine {
		judged[ev.TopicID] = true
	}
	count := 0
	for _, topic := range topics {
		if judged[topic.ID] {
			count++
		}
	}
	return count
}

func evaluatorSelections(topics []dbmodels.EvaluationTopic, mine []dbmodels.CandidateTopicEvaluation) []dbmodels.EvaluatorSelectionItem {
	result := make([]dbmodels.EvaluatorSelectionItem, 0, len(mine))
	for _, topic := range topics {
		percents := scoring.PercentMap(topic.Criteria)
		for _, ev := range mine {
			if ev.TopicID != topic.ID {
				continue
			}
			item := dbmodels.EvaluatorSelectionItem{
				TopicID:    topic.ID,
				TopicName:  topic.Name,
				CriteriaID: ev.CriteriaID,
				Percent:    helpers.Round1(percents[ev.CriteriaID]),
			}
			if ev.Criteria != nil {
				item.CriteriaName = ev.Criteria.Name
			}
			result = append(result, item)
		}
	}
	return result
}
