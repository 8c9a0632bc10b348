package questionhandler

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"hr-eval-backend/db"
	candidatestore "hr-eval-backend/lib/candidate/store"
	questionstore "hr-eval-backend/lib/question/store"
	sessionstore "hr-eval-backend/lib/session/store"
	"hr-eval-backend/models"
	questionapimodels "hr-eval-backend/models/api/question"
	dbmodels "hr-eval-backend/models/db"
)

type Provider interface {
	CreateQuestion(request questionapimodels.QuestionData) (questionID string, err error)
	UpdateQuestion(questionID string, request questionapimodels.QuestionData) error
	DeleteQuestion(questionID string) error
	ListQuestions(onlyActive bool) ([]questionapimodels.QuestionView, error)
	PickRandom(sessionID string, questionType models.QuestionType) (questionapimodels.QuestionView, error)

	SaveAnswers(sessionID, evaluatorID string, request questionapimodels.SaveAnswersRequest) (id string, err error)
	GetEvaluation(sessionID, candidateID, evaluatorID string) (questionapimodels.CandidateEvaluationView, error)
	ListEvaluations(sessionID, candidateID string) ([]questionapimodels.CandidateEvaluationView, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store:          questionstore.NewInstance(db.DB),
		sessionStore:   sessionstore.NewInstance(db.DB),
		candidateStore: candidatestore.NewInstance(db.DB),
	}
}

type impl struct {
	store          questionstore.Provider
	sessionStore   sessionstore.Provider
	candidateStore candidatestore.Provider
}

func (i impl) CreateQuestion(request questionapimodels.QuestionData) (questionID string, err error) {
	rec := dbmodels.EvaluationQuestion{
		Text:       request.Text,
		Type:       request.Type,
		MaxScore:   request.MaxScore,
		OrderIndex: request.OrderIndex,
		IsActive:   true,
	}
	if request.IsActive != nil {
		rec.IsActive = *request.IsActive
	}
	questionID, err = i.store.Create(rec, optionsConvert(request.Options))
	if err != nil {
		log.
			WithField("request", fmt.Sprintf("%+v", request)).
			WithError(err).
			Error("Ошибка создания вопроса")
		return "", err
	}
	log.
		WithField("question_id", questionID).
		Info("Создан вопрос")
	return questionID, nil
}

func (i impl) UpdateQuestion(questionID string, request questionapimodels.QuestionData) error {
	logger := log.WithField("question_id", questionID)
	rec, err := i.store.GetByID(questionID)
	if err != nil {
		logger.WithError(err).Error("Ошибка получения вопроса")
		return err
	}
	if rec == nil {
		return models.NotFoundError("вопрос не найден")
	}
	updMap := map[string]interface{}{
		"Text":       request.Text,
		"Type":       request.Type,
		"MaxScore":   request.MaxScore,
		"OrderIndex": request.OrderIndex,
	}
	if request.IsActive != nil {
		updMap["IsActive"] = *request.IsActive
	}
	if err = i.store.Update(questionID, updMap); err != nil {
		logger.WithError(err).Error("Ошибка обновления вопроса")
		return err
	}
	if request.Options != nil {
		if err = i.store.ReplaceOptions(questionID, optionsConvert(request.Options)); err != nil {
			logger.WithError(err).Error("Ошибка обновления вариантов ответа")
			return err
		}
	}
	logger.Info("Обновлен вопрос")
	return nil
}

func (i impl) DeleteQuestion(questionID string) error {
	logger := log.WithField("question_id", questionID)
	rec, err := i.store.GetByID(questionID)
	if err != nil {
		logger.WithError(err).Error("Ошибка получения вопроса")
		return err
	}
	if rec == nil {
		return models.NotFoundError("вопрос не найден")
	}
	if err = i.store.Delete(questionID); err != nil {
		logger.WithError(err).Error("Ошибка удаления вопроса")
		return err
	}
	logger.Info("Удален вопрос")
	return nil
}

func (i impl) ListQuestions(onlyActive bool) ([]questionapimodels.QuestionView, error) {
	list, err := i.store.List(onlyActive)
	if err != nil {
		log.WithError(err).Error("Ошибка получения списка вопросов")
		return nil, err
	}
	result := make([]questionapimodels.QuestionView, 0, len(list))
	for _, rec := range list {
		result = append(result, questionapimodels.QuestionConvert(rec))
	}
	return result, nil
}

// PickRandom выбирает случайный активный вопрос заданного типа и
// запоминает его как текущий вопрос сессии.
func (i impl) PickRandom(sessionID string, questionType models.QuestionType) (questionapimodels.QuestionView, error) {
	logger := log.WithField("session_id", sessionID)
	if !questionType.IsValid() {
		return questionapimodels.QuestionView{}, models.ValidationError("неизвестный тип вопроса")
	}
	session, err := i.sessionStore.GetByID(sessionID)
	if err != nil {
		logger.WithError(err).Error("Ошибка получения сессии")
		return questionapimodels.QuestionView{}, err
	}
	if session == nil {
		return questionapimodels.QuestionView{}, models.NotFoundError("сессия не найдена")
	}
	if session.Status != models.SessionStatusActive {
		return questionapimodels.QuestionView{}, models.ConflictError("выбор вопроса доступен только в активной сессии")
	}
	question, err := i.store.Random(questionType)
	if err != nil {
		logger.WithError(err).Error("Ошибка выбора случайного вопроса")
		return questionapimodels.QuestionView{}, err
	}
	if question == nil {
		return questionapimodels.QuestionView{}, models.NotFoundError("активных вопросов такого типа нет")
	}
	if err = i.sessionStore.Update(sessionID, map[string]interface{}{"CurrentQuestionID": question.ID}); err != nil {
		logger.WithError(err).Error("Ошибка сохранения текущего вопроса сессии")
		return questionapimodels.QuestionView{}, err
	}
	logger.
		WithField("question_id", question.ID).
		Info("Выбран случайный вопрос сессии")
	return questionapimodels.QuestionConvert(*question), nil
}

// SaveAnswers сохраняет лист опроса члена комиссии. Баллы по вопросам
// с вариантами выставляются автоматически по признаку правильного
// ответа, свободные ответы оцениваются вручную.
func (i impl) SaveAnswers(sessionID, evaluatorID string, request questionapimodels.SaveAnswersRequest) (id string, err error) {
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
		return "", models.ConflictError("ответы принимаются только в активной сессии")
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
	answers := make([]dbmodels.EvaluationAnswer, 0, len(request.Answers))
	for _, answer := range request.Answers {
		question, err := i.store.GetByID(answer.QuestionID)
		if err != nil {
			return "", err
		}
		if question == nil {
			return "", models.NotFoundError("вопрос не найден")
		}
		rec := dbmodels.EvaluationAnswer{
			QuestionID:       answer.QuestionID,
			SelectedOptionID: answer.SelectedOptionID,
			AnswerText:       answer.AnswerText,
		}
		switch question.Type {
		case models.QuestionTypeQA:
			if answer.Score > question.MaxScore {
				return "", models.ValidationError("балл за ответ превышает максимум вопроса")
			}
			rec.Score = answer.Score
		default:
			rec.Score = optionScore(*question, answer.SelectedOptionID)
		}
		answers = append(answers, rec)
	}
	id, err = i.store.SaveEvaluation(dbmodels.CandidateEvaluation{
		SessionID:   sessionID,
		CandidateID: request.CandidateID,
		EvaluatorID: evaluatorID,
		IsCompleted: request.IsCompleted,
		Notes:       request.Notes,
	}, answers)
	if err != nil {
		logger.WithError(err).Error("Ошибка сохранения листа опроса")
		return "", err
	}
	logger.
		WithField("candidate_id", request.CandidateID).
		Info("Сохранен лист опроса")
	return id, nil
}

func (i impl) GetEvaluation(sessionID, candidateID, evaluatorID string) (questionapimodels.CandidateEvaluationView, error) {
	rec, err := i.store.FindEvaluation(sessionID, candidateID, evaluatorID)
	if err != nil {
		return questionapimodels.CandidateEvaluationView{}, err
	}
	if rec == nil {
		return questionapimodels.CandidateEvaluationView{}, models.NotFoundError("лист опроса не найден")
	}
	return evaluationConvert(*rec), nil
}

func (i impl) ListEvaluations(sessionID, candidateID string) ([]questionapimodels.CandidateEvaluationView, error) {
	list, err := i.store.ListEvaluations(sessionID, candidateID)
	if err != nil {
		log.WithError(err).Error("Ошибка получения листов опроса")
		return nil, err
	}
	result := make([]questionapimodels.CandidateEvaluationView, 0, len(list))
	for _, rec := range list {
		result = append(result, evaluationConvert(rec))
	}
	return result, nil
}

func optionsConvert(options []questionapimodels.OptionData) []dbmodels.QuestionOption {
	result := make([]dbmodels.QuestionOption, 0, len(options))
	for _, option := range options {
		result = append(result, dbmodels.QuestionOption{
			Text:       option.Text,
			IsCorrect:  option.IsCorrect,
			OrderIndex: option.OrderIndex,
		})
	}
	return result
}

func optionScore(question dbmodels.EvaluationQuestion, selectedOptionID *string) float64 {
	if selectedOptionID == nil {
		return 0
	}
	for _, option := range question.Options {
		if option.ID == *selectedOptionID && option.IsCorrect {
			return question.MaxScore
		}
	}
	return 0
}

func evaluationConvert(rec dbmodels.CandidateEvaluation) questionapimodels.CandidateEvaluationView {
	view := questionapimodels.CandidateEvaluationView{
		ID:          rec.ID,
		SessionID:   rec.SessionID,
		CandidateID: rec.CandidateID,
		EvaluatorID: rec.EvaluatorID,
		IsCompleted: rec.IsCompleted,
		Notes:       rec.Notes,
		Answers:     make([]questionapimodels.AnswerView, 0, len(rec.Answers)),
	}
	if rec.Evaluator != nil {
		view.EvaluatorName = rec.Evaluator.GetFullName()
	}
	for _, answer := range rec.Answers {
		answerView := questionapimodels.AnswerView{
			AnswerData: questionapimodels.AnswerData{
				QuestionID:       answer.QuestionID,
				SelectedOptionID: answer.SelectedOptionID,
				AnswerText:       answer.AnswerText,
				Score:            answer.Score,
			},
			ID: answer.ID,
		}
		if answer.Question != nil {
			answerView.QuestionText = answer.Question.Text
			view.MaxScore += answer.Question.MaxScore
		}
		view.TotalScore += answer.Score
		view.Answers = append(view.Answers, answerView)
	}
	return view
}
