package reporthandler

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	candidatestore "hr-eval-backend/lib/candidate/store"
	evaluationstore "hr-eval-backend/lib/evaluation/store"
	topicstore "hr-eval-backend/lib/evaluation/topic-store"
	reportstore "hr-eval-backend/lib/report/store"
	sessionstore "hr-eval-backend/lib/session/store"
	"hr-eval-backend/models"
	reportapimodels "hr-eval-backend/models/api/report"
	dbmodels "hr-eval-backend/models/db"
)

type fixture struct {
	handler   impl
	db        *gorm.DB
	session   dbmodels.EvaluationSession
	candidate dbmodels.Candidate
	evaluator dbmodels.AppUser
	topics    []dbmodels.EvaluationTopic
	criteria  map[string][]dbmodels.EvaluationCriteria
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
		&dbmodels.EvaluationTopic{},
		&dbmodels.EvaluationCriteria{},
		&dbmodels.CandidateTopicEvaluation{},
		&dbmodels.EvaluationReport{},
	))

	evaluator := dbmodels.AppUser{Email: "petrov@example.com", Role: models.UserRoleExaminer, IsActive: true}
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

	topics := []dbmodels.EvaluationTopic{
		{Name: "Профессиональные знания", Weight: 2, OrderIndex: 1, IsActive: true},
		{Name: "Коммуникация", Weight: 1, OrderIndex: 2, IsActive: true},
	}
	criteria := map[string][]dbmodels.EvaluationCriteria{}
	for idx := range topics {
		require.NoError(t, db.Create(&topics[idx]).Error)
		for pos, name := range []string{"Ниже ожиданий", "Соответствует ожиданиям", "Выше ожиданий"} {
			c := dbmodels.EvaluationCriteria{TopicID: topics[idx].ID, Name: name, OrderIndex: pos + 1, IsActive: true}
			require.NoError(t, db.Create(&c).Error)
			criteria[topics[idx].ID] = append(criteria[topics[idx].ID], c)
		}
	}

	handler := impl{
		store:           reportstore.NewInstance(db),
		sessionStore:    sessionstore.NewInstance(db),
		candidateStore:  candidatestore.NewInstance(db),
		topicStore:      topicstore.NewInstance(db),
		evaluationStore: evaluationstore.NewInstance(db),
	}
	return fixture{
		handler:   handler,
		db:        db,
		session:   session,
		candidate: candidate,
		evaluator: evaluator,
		topics:    topics,
		criteria:  criteria,
	}
}

func (f fixture) evaluate(t *testing.T, evaluatorID string, topic dbmodels.EvaluationTopic, criteriaPos int) {
	t.Helper()
	rec := dbmodels.CandidateTopicEvaluation{
		SessionID:   f.session.ID,
		CandidateID: f.candidate.ID,
		EvaluatorID: evaluatorID,
		TopicID:     topic.ID,
		CriteriaID:  f.criteria[topic.ID][criteriaPos].ID,
	}
	require.NoError(t, f.db.Create(&rec).Error)
}

func TestFinalize(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()
	request := reportapimodels.FinalizeRequest{
		CandidateID:    f.candidate.ID,
		Recommendation: models.RecommendationPositive,
	}

	secondEvaluator := dbmodels.AppUser{Email: "sidorov@example.com", Role: models.UserRoleEvaluator, IsActive: true}
	require.NoError(t, f.db.Create(&secondEvaluator).Error)

	t.Run(`порог считается по оценкам финализирующего`, func(t *testing.T) {
		f.evaluate(t, f.evaluator.ID, f.topics[0], 2)
		// чужая оценка по второй теме порог не закрывает
		f.evaluate(t, secondEvaluator.ID, f.topics[1], 1)

		_, err := f.handler.Finalize(ctx, f.session.ID, f.evaluator.ID, request)
		require.Error(t, err)
		kind, ok := models.GetErrorKind(err)
		require.True(t, ok)
		require.Equal(t, models.ErrKindConflict, kind)
		require.Equal(t, "оценены не все темы: 1 из 2", err.Error())
	})

	t.Run(`успешное формирование`, func(t *testing.T) {
		f.evaluate(t, f.evaluator.ID, f.topics[1], 1)

		reportID, err := f.handler.Finalize(ctx, f.session.ID, f.evaluator.ID, request)
		require.NoError(t, err)
		require.NotEmpty(t, reportID)

		view, err := f.handler.Get(reportID)
		require.NoError(t, err)
		// (100*2 + 66.7*1) / 300 * 100
		require.InDelta(t, 88.9, view.TotalScore, 0.1)
		require.Equal(t, "Отлично", view.Grade)
		require.Equal(t, f.evaluator.ID, view.EvaluatorID)
		require.Len(t, view.TopicBreakdown, 2)
		require.True(t, view.TopicBreakdown[0].Evaluated)
		require.True(t, view.TopicBreakdown[1].Evaluated)
		// снимок хранит собственный выбор финализировавшего по обеим темам
		require.Len(t, view.Selections, 2)
		require.InDelta(t, 100.0, view.Selections[0].Percent, 0.1)
		require.InDelta(t, 66.7, view.Selections[1].Percent, 0.1)

		candidate := dbmodels.Candidate{}
		require.NoError(t, f.db.First(&candidate, "id = ?", f.candidate.ID).Error)
		require.Equal(t, models.ApplicationStatusInterviewed, candidate.ApplicationStatus)
	})

	t.Run(`повторная финализация перезаписывает снимок`, func(t *testing.T) {
		first, err := f.handler.Find(f.session.ID, f.candidate.ID, f.evaluator.ID)
		require.NoError(t, err)

		reportID, err := f.handler.Finalize(ctx, f.session.ID, f.evaluator.ID, reportapimodels.FinalizeRequest{
			CandidateID:    f.candidate.ID,
			Recommendation: models.RecommendationRejected,
			Notes:          "после обсуждения",
		})
		require.NoError(t, err)
		require.Equal(t, first.ID, reportID, "снимок перезаписывается, а не дублируется")

		count := int64(0)
		require.NoError(t, f.db.
			Model(&dbmodels.EvaluationReport{}).
			Where("session_id = ? AND candidate_id = ? AND evaluator_id = ?",
				f.session.ID, f.candidate.ID, f.evaluator.ID).
			Count(&count).
			Error)
		require.Equal(t, int64(1), count)

		view, err := f.handler.Get(reportID)
		require.NoError(t, err)
		require.Equal(t, string(models.RecommendationRejected), view.Recommendation)
		require.Equal(t, "после обсуждения", view.Notes)
	})

	t.Run(`у каждого члена комиссии свой снимок`, func(t *testing.T) {
		f.evaluate(t, secondEvaluator.ID, f.topics[0], 0)

		reportID, err := f.handler.Finalize(ctx, f.session.ID, secondEvaluator.ID, request)
		require.NoError(t, err)

		own, err := f.handler.Find(f.session.ID, f.candidate.ID, secondEvaluator.ID)
		require.NoError(t, err)
		require.Equal(t, reportID, own.ID)

		count := int64(0)
		require.NoError(t, f.db.
			Model(&dbmodels.EvaluationReport{}).
			Where("session_id = ? AND candidate_id = ?", f.session.ID, f.candidate.ID).
			Count(&count).
			Error)
		require.Equal(t, int64(2), count)
	})

	t.Run(`отчёт не формируется по завершённой сессии`, func(t *testing.T) {
		require.NoError(t, f.db.Model(&f.session).Update("status", models.SessionStatusCompleted).Error)

		_, err := f.handler.Finalize(ctx, f.session.ID, f.evaluator.ID, request)
		require.Error(t, err)
		kind, ok := models.GetErrorKind(err)
		require.True(t, ok)
		require.Equal(t, models.ErrKindConflict, kind)
	})
}

func TestFinalizeAggregatesCommittee(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	secondEvaluator := dbmodels.AppUser{Email: "sidorov@example.com", Role: models.UserRoleEvaluator, IsActive: true}
	require.NoError(t, f.db.Create(&secondEvaluator).Error)

	// финализирующий выбирает высший критерий по обеим темам,
	// второй член комиссии низший по первой
	f.evaluate(t, f.evaluator.ID, f.topics[0], 2)
	f.evaluate(t, f.evaluator.ID, f.topics[1], 2)
	f.evaluate(t, secondEvaluator.ID, f.topics[0], 0)

	reportID, err := f.handler.Finalize(ctx, f.session.ID, f.evaluator.ID, reportapimodels.FinalizeRequest{
		CandidateID:    f.candidate.ID,
		Recommendation: models.RecommendationPositive,
	})
	require.NoError(t, err)

	view, err := f.handler.Get(reportID)
	require.NoError(t, err)
	// итог по всей комиссии: ((100+33.3)/2*2 + 100*1) / 300 * 100
	require.InDelta(t, 77.8, view.TotalScore, 0.1)
	// собственный выбор финализировавшего чужими оценками не разбавлен
	require.Len(t, view.Selections, 2)
	require.InDelta(t, 100.0, view.Selections[0].Percent, 0.1)
	require.InDelta(t, 100.0, view.Selections[1].Percent, 0.1)
}

func TestFindAndList(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()
	f.evaluate(t, f.evaluator.ID, f.topics[0], 0)
	f.evaluate(t, f.evaluator.ID, f.topics[1], 0)

	reportID, err := f.handler.Finalize(ctx, f.session.ID, f.evaluator.ID, reportapimodels.FinalizeRequest{
		CandidateID:    f.candidate.ID,
		Recommendation: models.RecommendationRejected,
	})
	require.NoError(t, err)

	t.Run(`поиск по конкретному члену комиссии`, func(t *testing.T) {
		view, err := f.handler.Find(f.session.ID, f.candidate.ID, f.evaluator.ID)
		require.NoError(t, err)
		require.Equal(t, reportID, view.ID)
		// обе темы оценены низшим критерием
		require.InDelta(t, 33.3, view.TotalScore, 0.1)
		require.Equal(t, "Слабо", view.Grade)
	})

	t.Run(`поиск без члена комиссии возвращает свежий снимок`, func(t *testing.T) {
		view, err := f.handler.Find(f.session.ID, f.candidate.ID, "")
		require.NoError(t, err)
		require.Equal(t, reportID, view.ID)
	})

	list, rowCount, err := f.handler.List(reportapimodels.ReportFilter{SessionID: f.session.ID})
	require.NoError(t, err)
	require.Equal(t, int64(1), rowCount)
	require.Len(t, list, 1)

	_, err = f.handler.Find(f.session.ID, "missing", "")
	require.Error(t, err)
	kind, ok := models.GetErrorKind(err)
	require.True(t, ok)
	require.Equal(t, models.ErrKindNotFound, kind)
}
