package planstore

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	apimodels "hr-eval-backend/models/api"
	planapimodels "hr-eval-backend/models/api/plan"
	dbmodels "hr-eval-backend/models/db"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&dbmodels.Plan{},
		&dbmodels.Candidate{},
	))
	return db
}

func TestPlanStoreCrud(t *testing.T) {
	db := setupTestDB(t)
	store := NewInstance(db)

	planID, err := store.Create(dbmodels.Plan{
		Title:      "Инженеры-программисты",
		Department: "Отдел разработки",
		IsActive:   true,
	})
	require.NoError(t, err)
	require.NotEmpty(t, planID)

	t.Run(`получение по ид`, func(t *testing.T) {
		rec, err := store.GetByID(planID)
		require.NoError(t, err)
		require.NotNil(t, rec)
		require.Equal(t, "Инженеры-программисты", rec.Title)
	})

	t.Run(`обновление`, func(t *testing.T) {
		err := store.Update(planID, map[string]interface{}{
			"Title":    "Инженеры-испытатели",
			"IsActive": false,
		})
		require.NoError(t, err)
		rec, err := store.GetByID(planID)
		require.NoError(t, err)
		require.NotNil(t, rec)
		require.Equal(t, "Инженеры-испытатели", rec.Title)
		require.False(t, rec.IsActive)
	})

	t.Run(`удаление`, func(t *testing.T) {
		require.NoError(t, store.Delete(planID))
		rec, err := store.GetByID(planID)
		require.NoError(t, err)
		require.Nil(t, rec)
	})
}

func TestPlanStoreList(t *testing.T) {
	db := setupTestDB(t)
	store := NewInstance(db)

	plans := []dbmodels.Plan{
		{Title: "Инженеры-программисты", Department: "Отдел разработки", IsActive: true},
		{Title: "Экономисты", Department: "Финансовый отдел", IsActive: true},
		{Title: "Архивный набор", Department: "Отдел разработки", IsActive: false},
	}
	for idx := range plans {
		_, err := store.Create(plans[idx])
		require.NoError(t, err)
	}

	t.Run(`поиск по названию без учета регистра`, func(t *testing.T) {
		list, rowCount, err := store.List(planapimodels.PlanFilter{Search: "ЭКОНОМ"})
		require.NoError(t, err)
		require.Equal(t, int64(1), rowCount)
		require.Len(t, list, 1)
		require.Equal(t, "Экономисты", list[0].Title)
	})

	t.Run(`поиск по подразделению`, func(t *testing.T) {
		_, rowCount, err := store.List(planapimodels.PlanFilter{Search: "разработки"})
		require.NoError(t, err)
		require.Equal(t, int64(2), rowCount)
	})

	t.Run(`фильтр по активности`, func(t *testing.T) {
		active := true
		list, rowCount, err := store.List(planapimodels.PlanFilter{IsActive: &active})
		require.NoError(t, err)
		require.Equal(t, int64(2), rowCount)
		for _, rec := range list {
			require.True(t, rec.IsActive)
		}
	})

	t.Run(`пагинация`, func(t *testing.T) {
		list, rowCount, err := store.List(planapimodels.PlanFilter{
			Pagination: apimodels.Pagination{Page: 2, Limit: 2},
		})
		require.NoError(t, err)
		require.Equal(t, int64(3), rowCount)
		require.Len(t, list, 1)
	})
}

func TestPlanStoreCandidateCount(t *testing.T) {
	db := setupTestDB(t)
	store := NewInstance(db)

	planID, err := store.Create(dbmodels.Plan{Title: "Весенний набор", IsActive: true})
	require.NoError(t, err)
	emptyPlanID, err := store.Create(dbmodels.Plan{Title: "Осенний набор", IsActive: true})
	require.NoError(t, err)

	for _, name := range []string{"Иванов Иван", "Петров Петр"} {
		require.NoError(t, db.Create(&dbmodels.Candidate{Name: name, PlanID: planID}).Error)
	}

	count, err := store.CandidateCount(planID)
	require.NoError(t, err)
	require.Equal(t, int64(2), count)

	count, err = store.CandidateCount(emptyPlanID)
	require.NoError(t, err)
	require.Equal(t, int64(0), count)
}
