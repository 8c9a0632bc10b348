package sessionstore

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"hr-eval-backend/models"
	dbmodels "hr-eval-backend/models/db"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&dbmodels.AppUser{},
		&dbmodels.Plan{},
		&dbmodels.Candidate{},
		&dbmodels.EvaluationQuestion{},
		&dbmodels.EvaluationSession{},
	))
	return db
}

func createPlan(t *testing.T, db *gorm.DB) dbmodels.Plan {
	t.Helper()
	plan := dbmodels.Plan{Title: "Весенний набор", IsActive: true}
	require.NoError(t, db.Create(&plan).Error)
	return plan
}

func sessionDate(t *testing.T, value string) datatypes.Date {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", value)
	require.NoError(t, err)
	return datatypes.Date(parsed)
}

func TestSessionStoreCreate(t *testing.T) {
	db := setupTestDB(t)
	store := NewInstance(db)
	plan := createPlan(t, db)

	evaluator := dbmodels.AppUser{Email: "ivanov@example.com", Role: models.UserRoleEvaluator, IsActive: true}
	require.NoError(t, db.Create(&evaluator).Error)

	t.Run(`создание с составом комиссии`, func(t *testing.T) {
		id, err := store.Create(dbmodels.EvaluationSession{
			Title:       "Сессия 1",
			PlanID:      plan.ID,
			SessionDate: sessionDate(t, "2026-03-10"),
			Status:      models.SessionStatusSetup,
		}, []string{evaluator.ID})
		require.NoError(t, err)
		require.NotEmpty(t, id)

		rec, err := store.GetByID(id)
		require.NoError(t, err)
		require.NotNil(t, rec)
		require.Len(t, rec.Evaluators, 1)
		require.Equal(t, evaluator.ID, rec.Evaluators[0].ID)
	})

	t.Run(`неизвестный член комиссии`, func(t *testing.T) {
		_, err := store.Create(dbmodels.EvaluationSession{
			Title:       "Сессия 2",
			PlanID:      plan.ID,
			SessionDate: sessionDate(t, "2026-03-11"),
			Status:      models.SessionStatusSetup,
		}, []string{"missing-id"})
		require.Error(t, err)
	})

	t.Run(`вторая сессия плана на ту же дату`, func(t *testing.T) {
		_, err := store.Create(dbmodels.EvaluationSession{
			Title:       "Дубль",
			PlanID:      plan.ID,
			SessionDate: sessionDate(t, "2026-03-10"),
			Status:      models.SessionStatusSetup,
		}, nil)
		require.Error(t, err)
	})
}

func TestSessionStoreFindByPlanAndDate(t *testing.T) {
	db := setupTestDB(t)
	store := NewInstance(db)
	plan := createPlan(t, db)

	rec := dbmodels.EvaluationSession{
		Title:       "Сессия",
		PlanID:      plan.ID,
		SessionDate: sessionDate(t, "2026-04-01"),
		Status:      models.SessionStatusSetup,
	}
	require.NoError(t, db.Create(&rec).Error)

	found, err := store.FindByPlanAndDate(plan.ID, sessionDate(t, "2026-04-01"))
	require.NoError(t, err)
	require.NotNil(t, found)
	require.Equal(t, rec.ID, found.ID)

	missing, err := store.FindByPlanAndDate(plan.ID, sessionDate(t, "2026-04-02"))
	require.NoError(t, err)
	require.Nil(t, missing)
}

func TestSessionStoreActivateExclusive(t *testing.T) {
	db := setupTestDB(t)
	store := NewInstance(db)
	plan := createPlan(t, db)

	candidate := dbmodels.Candidate{Name: "Иванов Иван", PlanID: plan.ID}
	require.NoError(t, db.Create(&candidate).Error)

	first := dbmodels.EvaluationSession{
		Title:       "Первая",
		PlanID:      plan.ID,
		SessionDate: sessionDate(t, "2026-03-10"),
		Status:      models.SessionStatusSetup,
	}
	second := dbmodels.EvaluationSession{
		Title:       "Вторая",
		PlanID:      plan.ID,
		SessionDate: sessionDate(t, "2026-03-11"),
		Status:      models.SessionStatusSetup,
	}
	require.NoError(t, db.Create(&first).Error)
	require.NoError(t, db.Create(&second).Error)

	now := time.Now()
	require.NoError(t, store.ActivateExclusive(first.ID, &now, &candidate.ID))

	active, err := store.FindActive()
	require.NoError(t, err)
	require.NotNil(t, active)
	require.Equal(t, first.ID, active.ID)
	require.NotNil(t, active.StartTime)
	require.NotNil(t, active.CurrentCandidateID)
	require.Equal(t, candidate.ID, *active.CurrentCandidateID)

	// запуск второй сессии переводит первую в паузу,
	// нулевой candidateID текущего кандидата не трогает
	require.NoError(t, store.ActivateExclusive(second.ID, &now, nil))

	active, err = store.FindActive()
	require.NoError(t, err)
	require.NotNil(t, active)
	require.Equal(t, second.ID, active.ID)
	require.Nil(t, active.CurrentCandidateID)

	rec, err := store.GetByID(first.ID)
	require.NoError(t, err)
	require.Equal(t, models.SessionStatusPaused, rec.Status)
	require.NotNil(t, rec.CurrentCandidateID)
}

func TestSessionStoreFindActiveEmpty(t *testing.T) {
	db := setupTestDB(t)
	store := NewInstance(db)

	active, err := store.FindActive()
	require.NoError(t, err)
	require.Nil(t, active)
}
