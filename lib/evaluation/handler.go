package evaluationhandler

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"hr-eval-backend/db"
	candidatestore "hr-eval-backend/lib/candidate/store"
	criteriastore "hr-eval-backend/lib/evaluation/criteria-store"
	"hr-eval-backend/lib/evaluation/scoring"
	evaluationstore "hr-eval-backend/lib/evaluation/store"
	topicstore "hr-eval-backend/lib/evaluation/topic-store"
	sessionstore "hr-eval-backend/lib/session/store"
	"hr-eval-backend/lib/utils/helpers"
	"hr-eval-backend/models"
	evaluationapimodels "hr-eval-backend/models/api/evaluation"
	dbmodels "hr-eval-backend/models/db"
)

type Provider interface {
	// Темы и критерии
	CreateTopic(request evaluationapimodels.TopicData) (topicID string, err error)
	UpdateTopic(topicID string, request evaluationapimodels.TopicData) error
	DeleteTopic(topicID string) error
	ListTopics(onlyActive bool) ([]evaluationapimodels.TopicView, error)
	CreateCriteria(topicID string, request evaluationapimodels.CriteriaData) (criteriaID string, err error)
	UpdateCriteria(criteriaID string, request evaluationapimodels.CriteriaData) error
	DeleteCriteria(criteriaID string) error

	// Оценки
	SaveEvaluation(sessionID, evaluatorID string, request evaluationapimodels.SaveEvaluationRequest) (id string, err error)
	ListByCandidate(sessionID, candidateID string) ([]evaluationapimodels.EvaluationView, error)
	ListMine(sessionID, candidateID, evaluatorID string) ([]evaluationapimodels.EvaluationView, error)
	Summary(sessionID, candidateID string) (evaluationapimodels.SummaryView, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		topicStore:     topicstore.NewInstance(db.DB),
		criteriaStore:  criteriastore.NewInstance(db.DB),
		store:          evaluationstore.NewInstance(db.DB),
		sessionStore:   sessionstore.NewInstance(db.DB),
		candidateStore: candidatestore.NewInstance(db.DB),
	}
}

type impl struct {
	topicStore     topicstore.Provider
	criteriaStore  criteriastore.Provider
	store          evaluationstore.Provider
	sessionStore   sessionstore.Provider
	candidateStore candidatestore.Provider
}

func (i impl) CreateTopic(request evaluationapimodels.TopicData) (topicID string, err error) {
	rec := dbmodels.EvaluationTopic{
		Name:        request.Name,
		Description: request.Description,
		Weight:      request.Weight,
		OrderIndex:  request.OrderIndex,
		IsActive:    true,
	}
	if request.IsActive != nil {
		rec.IsActive = *request.IsActive
	}
	topicID, err = i.topicStore.Create(rec)
	if err != nil {
		log.
			WithField("request", fmt.Sprintf("%+v", request)).
			WithError(err).
			Error("Ошибка создания темы")
		return "", err
	}
	log.
		WithField("topic_id", topicID).
		Info("Создана тема оценивания")
	return topicID, nil
}

func (i impl) UpdateTopic(topicID string, request evaluationapimodels.TopicData) error {
	logger := log.WithField("topic_id", topicID)
	rec, err := i.topicStore.GetByID(topicID)
	if err != nil {
		logger.WithError(err).Error("Ошибка получения темы")
		return err
	}
	if rec == nil {
		return models.NotFoundError("тема не найдена")
	}
	updMap := map[string]interface{}{
		"Name":        request.Name,
		"Description": request.Description,
		"Weight":      request.Weight,
		"OrderIndex":  request.OrderIndex,
	}
	if request.IsActive != nil {
		updMap["IsActive"] = *request.IsActive
	}
	err = i.topicStore.Update(topicID, updMap)
	if err != nil {
		logger.WithError(err).Error("Ошибка обновления темы")
		return err
	}
	logger.Info("Обновлена тема оценивания")
	return nil
}

func (i impl) DeleteTopic(topicID string) error {
	logger := log.WithField("topic_id", topicID)
	rec, err := i.topicStore.GetByID(topicID)
	if err != nil {
		logger.WithError(err).Error("Ошибка получения темы")
		return err
	}
	if rec == nil {
		return models.NotFoundError("тема не найдена")
	}
	err = i.topicStore.Delete(topicID)
	if err != nil {
		logger.WithError(err).Error("Ошибка удаления темы")
		return err
	}
	logger.Info("Удалена тема оценивания")
	return nil
}

func (i impl) ListTopics(onlyActive bool) ([]evaluationapimodels.TopicView, error) {
	list, err := i.topicStore.List(onlyActive)
	if err != nil {
		log.WithError(err).Error("Ошибка получения списка тем")
		return nil, err
	}
	result := make([]evaluationapimodels.TopicView, 0, len(list))
	for _, topic := range list {
		percents := scoring.PercentMap(topic.Criteria)
		criteria := make([]evaluationapimodels.CriteriaView, 0, len(topic.Criteria))
		for _, c := range topic.Criteria {
			if onlyActive && !c.IsActive {
				continue
			}
			criteria = append(criteria, evaluationapimodels.CriteriaConvert(c, percents[c.ID]))
		}
		result = append(result, evaluationapimodels.TopicConvert(topic, criteria))
	}
	return result, nil
}

func (i impl) CreateCriteria(topicID string, request evaluationapimodels.CriteriaData) (criteriaID string, err error) {
	topic, err := i.topicStore.GetByID(topicID)
	if err != nil {
		return "", err
	}
	if topic == nil {
		return "", models.NotFoundError("тема не найдена")
	}
	rec := dbmodels.EvaluationCriteria{
		TopicID:     topicID,
		Name:        request.Name,
		Description: request.Description,
		OrderIndex:  request.OrderIndex,
		IsActive:    true,
	}
	if request.IsActive != nil {
		rec.IsActive = *request.IsActive
	}
	criteriaID, err = i.criteriaStore.Create(rec)
	if err != nil {
		log.
			WithField("topic_id", topicID).
			WithError(err).
			Error("Ошибка создания критерия")
		return "", err
	}
	log.
		WithField("criteria_id", criteriaID).
		Info("Создан критерий оценивания")
	return criteriaID, nil
}

func (i impl) UpdateCriteria(criteriaID string, request evaluationapimodels.CriteriaData) error {
	logger := log.WithField("criteria_id", criteriaID)
	rec, err := i.criteriaStore.GetByID(criteriaID)
	if err != nil {
		logger.WithError(err).Error("Ошибка получения критерия")
		return err
	}
	if rec == nil {
		return models.NotFoundError("критерий не найден")
	}
	updMap := map[string]interface{}{
		"Name":        request.Name,
		"Description": request.Description,
		"OrderIndex":  request.OrderIndex,
	}
	if request.IsActive != nil {
		updMap["IsActive"] = *request.IsActive
	}
	err = i.criteriaStore.Update(criteriaID, updMap)
	if err != nil {
		logger.WithError(err).Error("Ошибка обновления критерия")
		return err
	}
	logger.Info("Обновлен критерий оценивания")
	return nil
}

func (i impl) DeleteCriteria(criteriaID string) error {
	logger := log.WithField("criteria_id", criteriaID)
	rec, err := i.criteriaStore.GetByID(criteriaID)
	if err != nil {
		logger.WithError(err).Error("Ошибка получения критерия")
		return err
	}
	if rec == nil {
		return models.NotFoundError("критерий не найден")
	}
	err = i.criteriaStore.Delete(criteriaID)
	if err != nil {
		logger.WithError(err).Error("Ошибка удаления критерия")
		return err
	}
	logger.Info("Удален критерий оценивания")
	return nil
}

// SaveEvaluation сохраняет выбор критерия членом комиссии. Повторное
// сохранение по той же теме перезаписывает прежний выбор.
func (i impl) SaveEvaluation(sessionID, evaluatorID string, request evaluationapimodels.SaveEvaluationRequest) (id string, err error) {
	logger := log.
		WithField("session_id", sessionID).
		WithField("evaluator_id", evaluatorID)
	session, err := i.sessionStore.GetByID(sessionID)
	if err != nil {
		logger.WithError(err).Error("Ошибка получения сессии")
		return "", err
	}
	if session == nil {
		return "", models.NotFoundError("сессия не найдена")
	}
	if session.Status != models.SessionStatusActive {
		return "", models.ConflictError("оценки принимаются только в активной сессии")
	}
	if !isEvaluator(*session, evaluatorID) {
		return "", models.ForbiddenError("пользователь не входит в комиссию сессии")
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
	// оценка принимается только по кандидату, который сейчас на рассмотрении
	if session.CurrentCandidateID == nil || *session.CurrentCandidateID != request.CandidateID {
		return "", models.ConflictError("кандидат не является текущим в сессии")
	}
	topic, err := i.topicStore.GetByID(request.TopicID)
	if err != nil {
		return "", err
	}
	if topic == nil || !topic.IsActive {
		return "", models.NotFoundError("тема не найдена или не активна")
	}
	criteria, err := i.criteriaStore.GetByID(request.CriteriaID)
	if err != nil {
		return "", err
	}
	if criteria == nil || !criteria.IsActive {
		return "", models.NotFoundError("критерий не найден или не активен")
	}
	if criteria.TopicID != topic.ID {
		return "", models.ConflictError("критерий не относится к выбранной теме")
	}
	id, err = i.store.Upsert(dbmodels.CandidateTopicEvaluation{
		SessionID:   sessionID,
		CandidateID: request.CandidateID,
		EvaluatorID: evaluatorID,
		TopicID:     request.TopicID,
		CriteriaID:  request.CriteriaID,
		Notes:       request.Notes,
	})
	if err != nil {
		logger.WithError(err).Error("Ошибка сохранения оценки")
		return "", err
	}
	logger.
		WithField("candidate_id", request.CandidateID).
		WithField("topic_id", request.TopicID).
		Info("Сохранена оценка по теме")
	return id, nil
}

func (i impl) ListByCandidate(sessionID, candidateID string) ([]evaluationapimodels.EvaluationView, error) {
	list, err := i.store.ListByCandidate(sessionID, candidateID)
	if err != nil {
		log.WithError(err).Error("Ошибка получения оценок кандидата")
		return nil, err
	}
	return i.convertList(list)
}

func (i impl) ListMine(sessionID, candidateID, evaluatorID string) ([]evaluationapimodels.EvaluationView, error) {
	list, err := i.store.ListByEvaluator(sessionID, candidateID, evaluatorID)
	if err != nil {
		log.WithError(err).Error("Ошибка получения оценок члена комиссии")
		return nil, err
	}
	return i.convertList(list)
}

// Summary собирает текущую сводку по кандидату: средние проценты по
// темам, взвешенные вклады и итоговый балл.
func (i impl) Summary(sessionID, candidateID string) (evaluationapimodels.SummaryView, error) {
	candidate, err := i.candidateStore.GetByID(candidateID)
	if err != nil {
		return evaluationapimodels.SummaryView{}, err
	}
	if candidate == nil {
		return evaluationapimodels.SummaryView{}, models.NotFoundError("кандидат не найден")
	}
	topics, err := i.topicStore.List(true)
	if err != nil {
		return evaluationapimodels.SummaryView{}, err
	}
	evaluations, err := i.store.ListByCandidate(sessionID, candidateID)
	if err != nil {
		return evaluationapimodels.SummaryView{}, err
	}
	scores := TopicScores(topics, evaluations)
	view := evaluationapimodels.SummaryView{
		CandidateID:   candidateID,
		CandidateName: candidate.Name,
		Topics:        make([]evaluationapimodels.TopicSummaryView, 0, len(scores)),
		TotalTopics:   len(scores),
	}
	for _, score := range scores {
		if score.Evaluated {
			view.EvaluatedTopics++
		}
		view.Topics = append(view.Topics, evaluationapimodels.TopicSummaryView{
			TopicID:        score.TopicID,
			TopicName:      score.TopicName,
			Weight:         score.Weight,
			Evaluated:      score.Evaluated,
			EvaluatorCount: len(score.Percents),
			AveragePercent: helpers.Round1(score.AveragePercent),
			WeightedScore:  helpers.Round1(score.WeightedScore),
		})
	}
	view.TotalScore = helpers.Round1(scoring.TotalScore(scores))
	view.Grade = scoring.Grade(view.TotalScore)
	return view, nil
}

// TopicScores агрегирует оценки по активным темам. Используется и для
// живой сводки, и при формировании итогового отчёта.
func TopicScores(topics []dbmodels.EvaluationTopic, evaluations []dbmodels.CandidateTopicEvaluation) []scoring.TopicScore {
	byTopic := map[string][]float64{}
	for _, topic := range topics {
		percents := scoring.PercentMap(topic.Criteria)
		for _, ev := range evaluations {
			if ev.TopicID != topic.ID {
				continue
			}
			if percent, ok := percents[ev.CriteriaID]; ok {
				byTopic[topic.ID] = append(byTopic[topic.ID], percent)
			}
		}
	}
	scores := make([]scoring.TopicScore, 0, len(topics))
	for _, topic := range topics {
		scores = append(scores, scoring.AggregateTopic(topic, byTopic[topic.ID]))
	}
	return scores
}

func (i impl) convertList(list []dbmodels.CandidateTopicEvaluation) ([]evaluationapimodels.EvaluationView, error) {
	percentCache := map[string]map[string]float64{}
	result := make([]evaluationapimodels.EvaluationView, 0, len(list))
	for _, rec := range list {
		percents, ok := percentCache[rec.TopicID]
		if !ok {
			criteria, err := i.criteriaStore.ListByTopic(rec.TopicID, true)
			if err != nil {
				return nil, err
			}
			percents = scoring.PercentMap(criteria)
			percentCache[rec.TopicID] = percents
		}
		view := evaluationapimodels.EvaluationView{
			ID:          rec.ID,
			SessionID:   rec.SessionID,
			CandidateID: rec.CandidateID,
			EvaluatorID: rec.EvaluatorID,
			TopicID:     rec.TopicID,
			CriteriaID:  rec.CriteriaID,
			Percent:     percents[rec.CriteriaID],
			Notes:       rec.Notes,
		}
		if rec.Evaluator != nil {
			view.EvaluatorName = rec.Evaluator.GetFullName()
		}
		if rec.Topic != nil {
			view.TopicName = rec.Topic.Name
		}
		if rec.Criteria != nil {
			view.CriteriaName = rec.Criteria.Name
		}
		result = append(result, view)
	}
	return result, nil
}

func isEvaluator(session dbmodels.EvaluationSession, userID string) bool {
	if session.CreatedByID == userID {
		return true
	}
	for _, evaluator := range session.Evaluators {
		if evaluator.ID == userID {
			return true
		}
	}
	return false
}
