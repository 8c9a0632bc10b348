package sessionhandler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	candidatestore "hr-eval-backend/lib/candidate/store"
	evaluationstore "hr-eval-backend/lib/evaluation/store"
	planstore "hr-eval-backend/lib/plan/store"
	questionstore "hr-eval-backend/lib/question/store"
	reportstore "hr-eval-backend/lib/report/store"
	sessionstore "hr-eval-backend/lib/session/store"
	"hr-eval-backend/models"
	sessionapimodels "hr-eval-backend/models/api/session"
	dbmodels "hr-eval-backend/models/db"
)

func setupHandler(t *testing.T) (impl, *gorm.DB) {
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
		&dbmodels.QuestionOption{},
		&dbmodels.CandidateEvaluation{},
		&dbmodels.EvaluationAnswer{},
	))
	handler := impl{
		store:           sessionstore.NewInstance(db),
		planStore:       planstore.NewInstance(db),
		candidateStore:  candidatestore.NewInstance(db),
		evaluationStore: evaluationstore.NewInstance(db),
		reportStore:     reportstore.NewInstance(db),
		questionStore:   questionstore.NewInstance(db),
	}
	return handler, db
}

func seedPlanWithCandidates(t *testing.T, db *gorm.DB, count int) (dbmodels.Plan, []dbmodels.Candidate) {
	t.Helper()
	plan := dbmodels.Plan{Title: "Осенний набор", IsActive: true}
	require.NoError(t, db.Create(&plan).Error)
	candidates := make([]dbmodels.Candidate, 0, count)
	names := []string{"Иванов Иван", "Петров Пётр", "Сидоров Сидор"}
	for idx := 0; idx < count; idx++ {
		candidate := dbmodels.Candidate{Name: names[idx%len(names)], PlanID: plan.ID}
		require.NoError(t, db.Create(&candidate).Error)
		candidates = append(candidates, candidate)
	}
	return plan, candidates
}

func seedExaminer(t *testing.T, db *gorm.DB) dbmodels.AppUser {
	t.Helper()
	examiner := dbmodels.AppUser{Email: "examiner@example.com", Role: models.UserRoleExaminer, IsActive: true}
	require.NoError(t, db.Create(&examiner).Error)
	return examiner
}

func seedSession(t *testing.T, db *gorm.DB, plan dbmodels.Plan, createdByID, date string) dbmodels.EvaluationSession {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", date)
	require.NoError(t, err)
	session := dbmodels.EvaluationSession{
		Title:       "Сессия " + date,
		PlanID:      plan.ID,
		SessionDate: datatypes.Date(parsed),
		Status:      models.SessionStatusSetup,
		CreatedByID: createdByID,
	}
	require.NoError(t, db.Create(&session).Error)
	return session
}

func requireErrKind(t *testing.T, err error, expected models.ErrorKind) {
	t.Helper()
	require.Error(t, err)
	kind, ok := models.GetErrorKind(err)
	require.True(t, ok)
	require.Equal(t, expected, kind)
}

func TestSessionCreate(t *testing.T) {
	handler, db := setupHandler(t)
	plan, _ := seedPlanWithCandidates(t, db, 1)
	examiner := seedExaminer(t, db)

	date := datatypes.Date(time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC))

	t.Run(`создание сессии`, func(t *testing.T) {
		id, err := handler.Create(sessionapimodels.SessionData{
			Title:       "Первая",
			PlanID:      plan.ID,
			SessionDate: date,
		}, examiner.ID)
		require.NoError(t, err)
		require.NotEmpty(t, id)

		rec, err := handler.Get(id)
		require.NoError(t, err)
		require.Equal(t, string(models.SessionStatusSetup), rec.Status)
	})

	t.Run(`вторая сессия плана на ту же дату`, func(t *testing.T) {
		_, err := handler.Create(sessionapimodels.SessionData{
			Title:       "Дубль",
			PlanID:      plan.ID,
			SessionDate: date,
		}, examiner.ID)
		requireErrKind(t, err, models.ErrKindConflict)
	})

	t.Run(`на другую дату создаётся`, func(t *testing.T) {
		other := datatypes.Date(time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC))
		id, err := handler.Create(sessionapimodels.SessionData{
			Title:       "Вторая",
			PlanID:      plan.ID,
			SessionDate: other,
		}, examiner.ID)
		require.NoError(t, err)
		require.NotEmpty(t, id)
	})
}

func TestSessionLifecycle(t *testing.T) {
	handler, db := setupHandler(t)
	ctx := context.Background()
	plan, candidates := seedPlanWithCandidates(t, db, 1)
	examiner := seedExaminer(t, db)

	session := seedSession(t, db, plan, examiner.ID, "2026-09-01")

	t.Run(`запуск из подготовки назначает первого кандидата`, func(t *testing.T) {
		require.NoError(t, handler.Start(ctx, session.ID))

		rec, err := handler.Get(session.ID)
		require.NoError(t, err)
		require.Equal(t, string(models.SessionStatusActive), rec.Status)
		require.NotNil(t, rec.StartTime)
		require.Equal(t, candidates[0].ID, rec.CurrentCandidateID)
	})

	t.Run(`повторный запуск без ошибки`, func(t *testing.T) {
		require.NoError(t, handler.Start(ctx, session.ID))
	})

	t.Run(`пауза и возобновление`, func(t *testing.T) {
		require.NoError(t, handler.Pause(ctx, session.ID))
		rec, err := handler.Get(session.ID)
		require.NoError(t, err)
		require.Equal(t, string(models.SessionStatusPaused), rec.Status)

		require.NoError(t, handler.Resume(ctx, session.ID))
		rec, err = handler.Get(session.ID)
		require.NoError(t, err)
		require.Equal(t, string(models.SessionStatusActive), rec.Status)
	})

	t.Run(`возобновление активной недоступно`, func(t *testing.T) {
		requireErrKind(t, handler.Resume(ctx, session.ID), models.ErrKindConflict)
	})

	t.Run(`завершение очищает текущего кандидата`, func(t *testing.T) {
		require.NoError(t, handler.Complete(ctx, session.ID))
		rec, err := handler.Get(session.ID)
		require.NoError(t, err)
		require.Equal(t, string(models.SessionStatusCompleted), rec.Status)
		require.NotNil(t, rec.EndTime)
		require.Empty(t, rec.CurrentCandidateID)
		require.Empty(t, rec.CurrentQuestionID)
	})

	t.Run(`запуск завершённой недоступен`, func(t *testing.T) {
		requireErrKind(t, handler.Start(ctx, session.ID), models.ErrKindConflict)
	})
}

func TestSessionStartSkipsEvaluated(t *testing.T) {
	handler, db := setupHandler(t)
	ctx := context.Background()
	plan, candidates := seedPlanWithCandidates(t, db, 2)
	examiner := seedExaminer(t, db)

	session := seedSession(t, db, plan, examiner.ID, "2026-09-01")

	// по первому кандидату уже есть отчёт, автоназначение его пропускает
	report := dbmodels.EvaluationReport{
		SessionID:   session.ID,
		CandidateID: candidates[0].ID,
		EvaluatorID: examiner.ID,
		FinalizedAt: time.Now(),
	}
	require.NoError(t, db.Create(&report).Error)

	require.NoError(t, handler.Start(ctx, session.ID))

	rec, err := handler.Get(session.ID)
	require.NoError(t, err)
	require.Equal(t, candidates[1].ID, rec.CurrentCandidateID)
}

func TestSessionStartPausesOther(t *testing.T) {
	handler, db := setupHandler(t)
	ctx := context.Background()
	plan, _ := seedPlanWithCandidates(t, db, 1)
	examiner := seedExaminer(t, db)

	first := seedSession(t, db, plan, examiner.ID, "2026-09-01")
	second := seedSession(t, db, plan, examiner.ID, "2026-09-02")

	require.NoError(t, handler.Start(ctx, first.ID))
	require.NoError(t, handler.Start(ctx, second.ID))

	rec, err := handler.Get(first.ID)
	require.NoError(t, err)
	require.Equal(t, string(models.SessionStatusPaused), rec.Status)

	rec, err = handler.Get(second.ID)
	require.NoError(t, err)
	require.Equal(t, string(models.SessionStatusActive), rec.Status)
}

func TestSessionCancel(t *testing.T) {
	handler, db := setupHandler(t)
	ctx := context.Background()
	plan, candidates := seedPlanWithCandidates(t, db, 1)
	examiner := seedExaminer(t, db)

	session := seedSession(t, db, plan, examiner.ID, "2026-09-01")

	require.NoError(t, handler.Start(ctx, session.ID))
	_, err := handler.SetCurrentCandidate(ctx, session.ID, candidates[0].ID, examiner.ID)
	require.NoError(t, err)

	require.NoError(t, handler.Cancel(ctx, session.ID))

	rec, err := handler.Get(session.ID)
	require.NoError(t, err)
	require.Equal(t, string(models.SessionStatusCancelled), rec.Status)
	require.Empty(t, rec.CurrentCandidateID)
	require.Nil(t, rec.EndTime)
}

func TestSetCurrentCandidate(t *testing.T) {
	handler, db := setupHandler(t)
	ctx := context.Background()
	plan, candidates := seedPlanWithCandidates(t, db, 2)
	examiner := seedExaminer(t, db)

	session := seedSession(t, db, plan, examiner.ID, "2026-09-01")

	t.Run(`смена недоступна вне активной сессии`, func(t *testing.T) {
		_, err := handler.SetCurrentCandidate(ctx, session.ID, candidates[0].ID, examiner.ID)
		requireErrKind(t, err, models.ErrKindConflict)
	})

	require.NoError(t, handler.Start(ctx, session.ID))

	t.Run(`смена доступна только создателю сессии`, func(t *testing.T) {
		evaluator := dbmodels.AppUser{Email: "evaluator@example.com", Role: models.UserRoleEvaluator, IsActive: true}
		require.NoError(t, db.Create(&evaluator).Error)

		_, err := handler.SetCurrentCandidate(ctx, session.ID, candidates[1].ID, evaluator.ID)
		requireErrKind(t, err, models.ErrKindForbidden)

		// указатель не изменился
		rec, err := handler.Get(session.ID)
		require.NoError(t, err)
		require.Equal(t, candidates[0].ID, rec.CurrentCandidateID)
	})

	t.Run(`кандидат из чужого плана`, func(t *testing.T) {
		otherPlan := dbmodels.Plan{Title: "Другой план", IsActive: true}
		require.NoError(t, db.Create(&otherPlan).Error)
		stranger := dbmodels.Candidate{Name: "Чужой", PlanID: otherPlan.ID}
		require.NoError(t, db.Create(&stranger).Error)

		_, err := handler.SetCurrentCandidate(ctx, session.ID, stranger.ID, examiner.ID)
		requireErrKind(t, err, models.ErrKindNotFound)
	})

	t.Run(`успешная смена`, func(t *testing.T) {
		name, err := handler.SetCurrentCandidate(ctx, session.ID, candidates[1].ID, examiner.ID)
		require.NoError(t, err)
		require.Equal(t, candidates[1].Name, name)

		rec, err := handler.Get(session.ID)
		require.NoError(t, err)
		require.Equal(t, candidates[1].ID, rec.CurrentCandidateID)
	})
}

func TestAdvanceNext(t *testing.T) {
	handler, db := setupHandler(t)
	ctx := context.Background()
	plan, candidates := seedPlanWithCandidates(t, db, 3)
	examiner := seedExaminer(t, db)
	evaluator := dbmodels.AppUser{Email: "evaluator@example.com", Role: models.UserRoleEvaluator, IsActive: true}
	require.NoError(t, db.Create(&evaluator).Error)

	session := seedSession(t, db, plan, examiner.ID, "2026-09-01")
	require.NoError(t, handler.Start(ctx, session.ID))

	// запуск уже назначил первого, переход ведёт ко второму
	result, err := handler.AdvanceNext(ctx, session.ID, evaluator.ID)
	require.NoError(t, err)
	require.False(t, result.NoCandidatesRemaining)
	require.Equal(t, candidates[1].ID, result.CandidateID)

	t.Run(`переход заводит пустой лист опроса`, func(t *testing.T) {
		placeholder := dbmodels.CandidateEvaluation{}
		err := db.
			Where("session_id = ? AND candidate_id = ? AND evaluator_id = ?",
				session.ID, candidates[1].ID, evaluator.ID).
			First(&placeholder).
			Error
		require.NoError(t, err)
		require.False(t, placeholder.IsCompleted)
	})

	result, err = handler.AdvanceNext(ctx, session.ID, evaluator.ID)
	require.NoError(t, err)
	require.Equal(t, candidates[2].ID, result.CandidateID)

	// после последнего кандидата указатель очищается
	result, err = handler.AdvanceNext(ctx, session.ID, evaluator.ID)
	require.NoError(t, err)
	require.True(t, result.NoCandidatesRemaining)
	require.Empty(t, result.CandidateID)

	rec, err := handler.Get(session.ID)
	require.NoError(t, err)
	require.Empty(t, rec.CurrentCandidateID)
}

func TestAdvanceNextSkipsEvaluated(t *testing.T) {
	handler, db := setupHandler(t)
	ctx := context.Background()
	plan, candidates := seedPlanWithCandidates(t, db, 3)
	examiner := seedExaminer(t, db)
	evaluator := dbmodels.AppUser{Email: "evaluator@example.com", Role: models.UserRoleEvaluator, IsActive: true}
	require.NoError(t, db.Create(&evaluator).Error)

	session := seedSession(t, db, plan, examiner.ID, "2026-09-01")
	require.NoError(t, handler.Start(ctx, session.ID))

	// по второму кандидату другой член комиссии уже завершил лист опроса
	completed := dbmodels.CandidateEvaluation{
		SessionID:   session.ID,
		CandidateID: candidates[1].ID,
		EvaluatorID: examiner.ID,
		IsCompleted: true,
	}
	require.NoError(t, db.Create(&completed).Error)

	result, err := handler.AdvanceNext(ctx, session.ID, evaluator.ID)
	require.NoError(t, err)
	require.False(t, result.NoCandidatesRemaining)
	require.Equal(t, candidates[2].ID, result.CandidateID)
}

func TestSessionProgress(t *testing.T) {
	handler, db := setupHandler(t)
	ctx := context.Background()
	plan, candidates := seedPlanWithCandidates(t, db, 2)
	examiner := seedExaminer(t, db)

	topic := dbmodels.EvaluationTopic{Name: "Алгоритмы", Weight: 1, IsActive: true}
	require.NoError(t, db.Create(&topic).Error)
	criteria := dbmodels.EvaluationCriteria{TopicID: topic.ID, Name: "Уверенно", IsActive: true}
	require.NoError(t, db.Create(&criteria).Error)

	session := seedSession(t, db, plan, examiner.ID, "2026-09-01")
	require.NoError(t, handler.Start(ctx, session.ID))

	// оценка есть только по первому кандидату, отчётов нет
	evaluation := dbmodels.CandidateTopicEvaluation{
		SessionID:   session.ID,
		CandidateID: candidates[0].ID,
		EvaluatorID: examiner.ID,
		TopicID:     topic.ID,
		CriteriaID:  criteria.ID,
	}
	require.NoError(t, db.Create(&evaluation).Error)

	view, err := handler.Progress(session.ID)
	require.NoError(t, err)
	require.Equal(t, int64(2), view.TotalCandidates)
	require.Equal(t, int64(1), view.EvaluatedCandidates)
	require.Equal(t, int64(0), view.FinalizedReports)
	require.InDelta(t, 50.0, view.ProgressPercent, 0.001)
}
