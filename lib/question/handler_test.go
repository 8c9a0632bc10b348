package questionhandler

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	candidatestore "hr-eval-backend/lib/candidate/store"
	questionstore "hr-eval-backend/lib/question/store"
	sessionstore "hr-eval-backend/lib/session/store"
	"hr-eval-backend/models"
	questionapimodels "hr-eval-backend/models/api/question"
	dbmodels "hr-eval-backend/models/db"
)

type fixture struct {
	handler   impl
	db        *gorm.DB
	session   dbmodels.EvaluationSession
	candidate dbmodels.Candidate
	evaluator dbmodels.AppUser
}

func setupFixture(t *testing.T) fixture {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&dbmodels.AppUser{},
		&dbmodels.Plan{},
		&dbmodels.Candidate{},
		&dbmodels.CandidateQualification{},
		&dbmodels.CandidateExperience{},
		&dbmodels.EvaluationQuestion{},
		&dbmodels.EvaluationSession{},
		&dbmodels.QuestionOption{},
		&dbmodels.CandidateEvaluation{},
		&dbmodels.EvaluationAnswer{},
	))

	evaluator := dbmodels.AppUser{Email: "petrov@example.com", Role: models.UserRoleEvaluator, IsActive: true}
	require.NoError(t, db.Create(&evaluator).Error)

	plan := dbmodels.Plan{Title: "Набор", IsActive: true}
	require.NoError(t, db.Create(&plan).Error)

	candidate := dbmodels.Candidate{Name: "Иванов Иван", PlanID: plan.ID}
	require.NoError(t, db.Create(&candidate).Error)

	session := dbmodels.EvaluationSession{
		Title:       "Сессия",
		PlanID:      plan.ID,
		Status:      models.SessionStatusActive,
		CreatedByID: evaluator.ID,
	}
	require.NoError(t, db.Create(&session).Error)

	handler := impl{
		store:          questionstore.NewInstance(db),
		sessionStore:   sessionstore.NewInstance(db),
		candidateStore: candidatestore.NewInstance(db),
	}
	return fixture{
		handler:   handler,
		db:        db,
		session:   session,
		candidate: candidate,
		evaluator: evaluator,
	}
}

func TestQuestionCrud(t *testing.T) {
	f := setupFixture(t)

	id, err := f.handler.CreateQuestion(questionapimodels.QuestionData{
		Text:     "Назначение устава",
		Type:     models.QuestionTypeMCQ,
		MaxScore: 10,
		Options: []questionapimodels.OptionData{
			{Text: "Верный вариант", IsCorrect: true, OrderIndex: 1},
			{Text: "Неверный вариант", OrderIndex: 2},
		},
	})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	list, err := f.handler.ListQuestions(true)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Len(t, list[0].Options, 2)

	err = f.handler.UpdateQuestion(id, questionapimodels.QuestionData{
		Text:     "Назначение устава службы",
		Type:     models.QuestionTypeMCQ,
		MaxScore: 5,
		Options: []questionapimodels.OptionData{
			{Text: "Единственно верный", IsCorrect: true, OrderIndex: 1},
			{Text: "Прочее", OrderIndex: 2},
		},
	})
	require.NoError(t, err)

	list, err = f.handler.ListQuestions(true)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "Назначение устава службы", list[0].Text)
	require.Equal(t, 5.0, list[0].MaxScore)

	// сессия указывает на удаляемый вопрос
	require.NoError(t, f.db.Model(&f.session).Update("current_question_id", id).Error)

	require.NoError(t, f.handler.DeleteQuestion(id))
	list, err = f.handler.ListQuestions(false)
	require.NoError(t, err)
	require.Empty(t, list)

	// указатель сессии очищен вместе с вопросом
	session := dbmodels.EvaluationSession{}
	require.NoError(t, f.db.First(&session, "id = ?", f.session.ID).Error)
	require.Nil(t, session.CurrentQuestionID)
}

func TestPickRandom(t *testing.T) {
	f := setupFixture(t)

	qaID, err := f.handler.CreateQuestion(questionapimodels.QuestionData{
		Text:     "Свободный вопрос",
		Type:     models.QuestionTypeQA,
		MaxScore: 20,
	})
	require.NoError(t, err)

	inactive := false
	_, err = f.handler.CreateQuestion(questionapimodels.QuestionData{
		Text:     "Выключенный вопрос",
		Type:     models.QuestionTypeQA,
		MaxScore: 10,
		IsActive: &inactive,
	})
	require.NoError(t, err)

	t.Run(`выбор среди активных вопросов типа`, func(t *testing.T) {
		view, err := f.handler.PickRandom(f.session.ID, models.QuestionTypeQA)
		require.NoError(t, err)
		require.Equal(t, qaID, view.ID, "неактивный вопрос не выбирается")

		session := dbmodels.EvaluationSession{}
		require.NoError(t, f.db.First(&session, "id = ?", f.session.ID).Error)
		require.NotNil(t, session.CurrentQuestionID)
		require.Equal(t, qaID, *session.CurrentQuestionID)
	})

	t.Run(`нет вопросов такого типа`, func(t *testing.T) {
		_, err := f.handler.PickRandom(f.session.ID, models.QuestionTypeMCQ)
		require.Error(t, err)
		kind, ok := models.GetErrorKind(err)
		require.True(t, ok)
		require.Equal(t, models.ErrKindNotFound, kind)
	})

	t.Run(`неизвестный тип`, func(t *testing.T) {
		_, err := f.handler.PickRandom(f.session.ID, models.QuestionType("oral"))
		require.Error(t, err)
		kind, ok := models.GetErrorKind(err)
		require.True(t, ok)
		require.Equal(t, models.ErrKindValidation, kind)
	})

	t.Run(`выбор недоступен вне активной сессии`, func(t *testing.T) {
		require.NoError(t, f.db.Model(&f.session).Update("status", models.SessionStatusPaused).Error)
		defer func() {
			require.NoError(t, f.db.Model(&f.session).Update("status", models.SessionStatusActive).Error)
		}()

		_, err := f.handler.PickRandom(f.session.ID, models.QuestionTypeQA)
		require.Error(t, err)
		kind, ok := models.GetErrorKind(err)
		require.True(t, ok)
		require.Equal(t, models.ErrKindConflict, kind)
	})
}

func TestSaveAnswers(t *testing.T) {
	f := setupFixture(t)

	mcqID, err := f.handler.CreateQuestion(questionapimodels.QuestionData{
		Text:     "Вопрос с выбором",
		Type:     models.QuestionTypeMCQ,
		MaxScore: 10,
		Options: []questionapimodels.OptionData{
			{Text: "Верный", IsCorrect: true, OrderIndex: 1},
			{Text: "Неверный", OrderIndex: 2},
		},
	})
	require.NoError(t, err)
	qaID, err := f.handler.CreateQuestion(questionapimodels.QuestionData{
		Text:     "Свободный вопрос",
		Type:     models.QuestionTypeQA,
		MaxScore: 20,
	})
	require.NoError(t, err)

	questions, err := f.handler.ListQuestions(true)
	require.NoError(t, err)
	var correctOptionID, wrongOptionID string
	for _, q := range questions {
		if q.ID != mcqID {
			continue
		}
		for _, o := range q.Options {
			if o.IsCorrect {
				correctOptionID = o.ID
			} else {
				wrongOptionID = o.ID
			}
		}
	}
	require.NotEmpty(t, correctOptionID)
	require.NotEmpty(t, wrongOptionID)

	t.Run(`автооценка и ручной балл`, func(t *testing.T) {
		id, err := f.handler.SaveAnswers(f.session.ID, f.evaluator.ID, questionapimodels.SaveAnswersRequest{
			CandidateID: f.candidate.ID,
			Answers: []questionapimodels.AnswerData{
				{QuestionID: mcqID, SelectedOptionID: &correctOptionID},
				{QuestionID: qaID, AnswerText: "развёрнутый ответ", Score: 15},
			},
			IsCompleted: true,
		})
		require.NoError(t, err)
		require.NotEmpty(t, id)

		view, err := f.handler.GetEvaluation(f.session.ID, f.candidate.ID, f.evaluator.ID)
		require.NoError(t, err)
		require.True(t, view.IsCompleted)
		require.Equal(t, 25.0, view.TotalScore)
		require.Equal(t, 30.0, view.MaxScore)
		require.Len(t, view.Answers, 2)
	})

	t.Run(`перезапись листа`, func(t *testing.T) {
		_, err := f.handler.SaveAnswers(f.session.ID, f.evaluator.ID, questionapimodels.SaveAnswersRequest{
			CandidateID: f.candidate.ID,
			Answers: []questionapimodels.AnswerData{
				{QuestionID: mcqID, SelectedOptionID: &wrongOptionID},
			},
		})
		require.NoError(t, err)

		view, err := f.handler.GetEvaluation(f.session.ID, f.candidate.ID, f.evaluator.ID)
		require.NoError(t, err)
		require.Len(t, view.Answers, 1)
		require.Equal(t, 0.0, view.TotalScore)
	})

	t.Run(`ручной балл выше максимума`, func(t *testing.T) {
		_, err := f.handler.SaveAnswers(f.session.ID, f.evaluator.ID, questionapimodels.SaveAnswersRequest{
			CandidateID: f.candidate.ID,
			Answers: []questionapimodels.AnswerData{
				{QuestionID: qaID, AnswerText: "ответ", Score: 25},
			},
		})
		require.Error(t, err)
		kind, ok := models.GetErrorKind(err)
		require.True(t, ok)
		require.Equal(t, models.ErrKindValidation, kind)
	})
}
