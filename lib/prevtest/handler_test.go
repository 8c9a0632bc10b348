package prevtesthandler

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	candidatestore "hr-eval-backend/lib/candidate/store"
	prevteststore "hr-eval-backend/lib/prevtest/store"
	"hr-eval-backend/models"
	prevtestapimodels "hr-eval-backend/models/api/prevtest"
	dbmodels "hr-eval-backend/models/db"
)

type fixture struct {
	db        *gorm.DB
	handler   impl
	user      dbmodels.AppUser
	candidate dbmodels.Candidate
}

func setupFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&dbmodels.AppUser{},
		&dbmodels.Plan{},
		&dbmodels.Candidate{},
		&dbmodels.CandidateQualification{},
		&dbmodels.CandidateExperience{},
		&dbmodels.TestCategory{},
		&dbmodels.CandidateTestResult{},
	))

	f := &fixture{db: db}
	f.handler = impl{
		store:          prevteststore.NewInstance(db),
		candidateStore: candidatestore.NewInstance(db),
	}

	f.user = dbmodels.AppUser{FirstName: "Мария", LastName: "Сидорова", Email: "msidorova@example.com"}
	require.NoError(t, db.Create(&f.user).Error)

	plan := dbmodels.Plan{Title: "Весенний набор", IsActive: true}
	require.NoError(t, db.Create(&plan).Error)

	f.candidate = dbmodels.Candidate{Name: "Иванов Иван", PlanID: plan.ID}
	require.NoError(t, db.Create(&f.candidate).Error)
	return f
}

func (f *fixture) createCategory(t *testing.T, name string, maxScore float64) string {
	t.Helper()
	categoryID, err := f.handler.CreateCategory(prevtestapimodels.CategoryData{
		Name:     name,
		MaxScore: maxScore,
	})
	require.NoError(t, err)
	return categoryID
}

func TestCategoryLifecycle(t *testing.T) {
	f := setupFixture(t)

	categoryID := f.createCategory(t, "Тест по математике", 20)
	f.createCategory(t, "Тест по физике", 50)

	t.Run(`список категорий`, func(t *testing.T) {
		list, err := f.handler.ListCategories(false)
		require.NoError(t, err)
		require.Len(t, list, 2)
	})

	t.Run(`деактивация скрывает из активного списка`, func(t *testing.T) {
		inactive := false
		err := f.handler.UpdateCategory(categoryID, prevtestapimodels.CategoryData{
			Name:     "Тест по математике",
			MaxScore: 20,
			IsActive: &inactive,
		})
		require.NoError(t, err)

		list, err := f.handler.ListCategories(true)
		require.NoError(t, err)
		require.Len(t, list, 1)
		require.Equal(t, "Тест по физике", list[0].Name)
	})

	t.Run(`обновление несуществующей категории`, func(t *testing.T) {
		err := f.handler.UpdateCategory("missing", prevtestapimodels.CategoryData{Name: "x", MaxScore: 1})
		kind, ok := models.GetErrorKind(err)
		require.True(t, ok)
		require.Equal(t, models.ErrKindNotFound, kind)
	})

	t.Run(`удаление`, func(t *testing.T) {
		require.NoError(t, f.handler.DeleteCategory(categoryID))
		list, err := f.handler.ListCategories(false)
		require.NoError(t, err)
		require.Len(t, list, 1)
	})
}

func TestSaveResult(t *testing.T) {
	f := setupFixture(t)
	categoryID := f.createCategory(t, "Тест по математике", 20)

	t.Run(`сохранение и процент от максимума`, func(t *testing.T) {
		_, err := f.handler.SaveResult(f.user.ID, prevtestapimodels.ResultData{
			CandidateID: f.candidate.ID,
			CategoryID:  categoryID,
			Score:       15,
		})
		require.NoError(t, err)

		list, err := f.handler.ListByCandidate(f.candidate.ID)
		require.NoError(t, err)
		require.Len(t, list, 1)
		require.Equal(t, 15.0, list[0].Score)
		require.InDelta(t, 75.0, list[0].Percent, 0.01)
		require.Equal(t, "Тест по математике", list[0].CategoryName)
		require.Equal(t, "Мария Сидорова", list[0].EnteredByName)
	})

	t.Run(`повторный ввод перезаписывает результат`, func(t *testing.T) {
		_, err := f.handler.SaveResult(f.user.ID, prevtestapimodels.ResultData{
			CandidateID: f.candidate.ID,
			CategoryID:  categoryID,
			Score:       18,
		})
		require.NoError(t, err)

		list, err := f.handler.ListByCandidate(f.candidate.ID)
		require.NoError(t, err)
		require.Len(t, list, 1)
		require.Equal(t, 18.0, list[0].Score)
	})

	t.Run(`балл выше максимума категории`, func(t *testing.T) {
		_, err := f.handler.SaveResult(f.user.ID, prevtestapimodels.ResultData{
			CandidateID: f.candidate.ID,
			CategoryID:  categoryID,
			Score:       25,
		})
		kind, ok := models.GetErrorKind(err)
		require.True(t, ok)
		require.Equal(t, models.ErrKindValidation, kind)
	})

	t.Run(`несуществующий кандидат`, func(t *testing.T) {
		_, err := f.handler.SaveResult(f.user.ID, prevtestapimodels.ResultData{
			CandidateID: "missing",
			CategoryID:  categoryID,
			Score:       5,
		})
		kind, ok := models.GetErrorKind(err)
		require.True(t, ok)
		require.Equal(t, models.ErrKindNotFound, kind)
	})

	t.Run(`неактивная категория`, func(t *testing.T) {
		inactive := false
		err := f.handler.UpdateCategory(categoryID, prevtestapimodels.CategoryData{
			Name:     "Тест по математике",
			MaxScore: 20,
			IsActive: &inactive,
		})
		require.NoError(t, err)

		_, err = f.handler.SaveResult(f.user.ID, prevtestapimodels.ResultData{
			CandidateID: f.candidate.ID,
			CategoryID:  categoryID,
			Score:       5,
		})
		kind, ok := models.GetErrorKind(err)
		require.True(t, ok)
		require.Equal(t, models.ErrKindNotFound, kind)
	})
}

func TestDeleteResult(t *testing.T) {
	f := setupFixture(t)
	categoryID := f.createCategory(t, "Тест по математике", 20)

	resultID, err := f.handler.SaveResult(f.user.ID, prevtestapimodels.ResultData{
		CandidateID: f.candidate.ID,
		CategoryID:  categoryID,
		Score:       10,
	})
	require.NoError(t, err)

	require.NoError(t, f.handler.DeleteResult(resultID))

	list, err := f.handler.ListByCandidate(f.candidate.ID)
	require.NoError(t, err)
	require.Empty(t, list)

	err = f.handler.DeleteResult(resultID)
	kind, ok := models.GetErrorKind(err)
	require.True(t, ok)
	require.Equal(t, models.ErrKindNotFound, kind)
}
